package normalizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"productsearch/internal/models"
)

const (
	// UnknownProductName replaces a blank product name.
	UnknownProductName = "Unknown product"

	// DefaultMaxRating is the rating ceiling used when max_rating is missing,
	// non-numeric or not positive.
	DefaultMaxRating = 5.0

	inStockPhrase = "in stock"
)

// Coercer turns loosely typed backend fields into typed values. All field
// level defaulting lives here so the transformer only assembles results.
type Coercer struct {
	itemPattern *regexp.Regexp
}

// NewCoercer creates a new coercer instance.
func NewCoercer() *Coercer {
	return &Coercer{
		itemPattern: regexp.MustCompile(`(?i)/dp/([A-Z0-9]{8,20})`),
	}
}

// Text returns the untouched value, or "" when the field is blank.
func (c *Coercer) Text(s models.LooseString) string {
	if s.IsBlank() {
		return ""
	}

	return s.Value
}

// Name returns the untouched name, or UnknownProductName when blank.
func (c *Coercer) Name(s models.LooseString) string {
	if s.IsBlank() {
		return UnknownProductName
	}

	return s.Value
}

// ItemID extracts the uppercased item token from a /dp/<token> path segment.
func (c *Coercer) ItemID(rawURL string) (string, bool) {
	match := c.itemPattern.FindStringSubmatch(rawURL)
	if len(match) < 2 {
		return "", false
	}

	return strings.ToUpper(match[1]), true
}

// MaxRating returns the effective rating ceiling. It is always finite and
// positive.
func (c *Coercer) MaxRating(n models.LooseNumber) float64 {
	f, ok := n.Float()
	if !ok || f <= 0 || math.IsInf(f, 0) {
		return DefaultMaxRating
	}

	return f
}

// Rating returns the rating clamped to [0, ceiling]; infinities land on the
// bounds. Non-numeric input is 0.
func (c *Coercer) Rating(n models.LooseNumber, ceiling float64) float64 {
	f, ok := n.Float()
	if !ok {
		return 0
	}

	return math.Min(math.Max(f, 0), ceiling)
}

// Reviews parses a review count such as "1,234". Commas are dropped and the
// leading run of digits is read; anything else yields 0.
func (c *Coercer) Reviews(s models.LooseString) int {
	if !s.Valid {
		return 0
	}

	text := strings.TrimLeftFunc(strings.ReplaceAll(s.Value, ",", ""), unicode.IsSpace)

	negative := false
	if text != "" && (text[0] == '+' || text[0] == '-') {
		negative = text[0] == '-'
		text = text[1:]
	}

	end := 0
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}

	if end == 0 || negative {
		return 0
	}

	count, err := strconv.Atoi(text[:end])
	if err != nil {
		return 0
	}

	return count
}

// InStock reports whether the availability text mentions "in stock" in any case.
func (c *Coercer) InStock(s models.LooseString) bool {
	if !s.Valid {
		return false
	}

	// A cases.Caser must not be shared between goroutines.
	return strings.Contains(cases.Fold().String(s.Value), inStockPhrase)
}
