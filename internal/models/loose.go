// Package models defines the data structures exchanged with the search backend
// and handed to presentation, export and storage.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// LooseString holds a backend value that is expected to be a string but may be
// absent, null, or arrive as a number or bool. Number and bool literals keep
// their JSON text; objects and arrays are treated as absent.
type LooseString struct {
	Value string
	Valid bool
}

// String returns a set LooseString.
func String(v string) LooseString {
	return LooseString{Value: v, Valid: true}
}

// Text returns the value and whether it was present at all.
func (s LooseString) Text() (string, bool) {
	return s.Value, s.Valid
}

// IsBlank reports whether the value is absent or only whitespace.
func (s LooseString) IsBlank() bool {
	return !s.Valid || strings.TrimSpace(s.Value) == ""
}

// Trimmed returns the value without surrounding whitespace, or "" when absent.
func (s LooseString) Trimmed() string {
	if !s.Valid {
		return ""
	}

	return strings.TrimSpace(s.Value)
}

// IsZero reports whether the value was absent. Used by the omitzero tag option.
func (s LooseString) IsZero() bool {
	return !s.Valid
}

// UnmarshalJSON never fails: unexpected JSON kinds decode as absent.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	*s = LooseString{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case 'n', '{', '[':
		return nil
	case '"':
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil
		}

		s.Value, s.Valid = v, true
	default:
		s.Value, s.Valid = string(trimmed), true
	}

	return nil
}

// MarshalJSON writes the value as a JSON string, or null when absent.
func (s LooseString) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(s.Value)
}

// LooseNumber holds a backend value that should be numeric but may be absent,
// null, a JSON number, or a string of arbitrary content. The text is kept
// verbatim; interpretation happens during normalization.
type LooseNumber struct {
	Text   string
	Valid  bool
	Quoted bool
}

// Number returns a LooseNumber holding f as a JSON number.
func Number(f float64) LooseNumber {
	return LooseNumber{Text: strconv.FormatFloat(f, 'f', -1, 64), Valid: true}
}

// NumberText returns a LooseNumber that arrived as a JSON string.
func NumberText(s string) LooseNumber {
	return LooseNumber{Text: s, Valid: true, Quoted: true}
}

// IsZero reports whether the value was absent. Used by the omitzero tag option.
func (n LooseNumber) IsZero() bool {
	return !n.Valid
}

// Float interprets the value. A quoted blank string counts as 0. Infinities,
// including out-of-range numbers, are numeric and come back as ±Inf; absent,
// non-numeric and NaN values report false.
func (n LooseNumber) Float() (float64, bool) {
	if !n.Valid {
		return 0, false
	}

	text := strings.TrimSpace(n.Text)
	if text == "" {
		return 0, n.Quoted
	}

	f, err := strconv.ParseFloat(text, 64)
	switch {
	case err == nil:
	case errors.Is(err, strconv.ErrRange):
		// f is ±Inf on overflow.
	default:
		return prefixedInt(text)
	}

	if math.IsNaN(f) {
		return 0, false
	}

	return f, true
}

// prefixedInt reads unsigned 0x, 0o and 0b integers.
func prefixedInt(text string) (float64, bool) {
	if len(text) < 3 || text[0] != '0' || !strings.ContainsRune("xXoObB", rune(text[1])) {
		return 0, false
	}

	if strings.ContainsRune(text, '_') {
		return 0, false
	}

	u, err := strconv.ParseUint(text, 0, 64)
	if errors.Is(err, strconv.ErrRange) {
		return math.Inf(1), true
	}

	if err != nil {
		return 0, false
	}

	return float64(u), true
}

// UnmarshalJSON never fails: booleans keep their literal text, objects and
// arrays decode as absent.
func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	*n = LooseNumber{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case 'n', '{', '[':
		return nil
	case '"':
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil
		}

		n.Text, n.Valid, n.Quoted = v, true, true
	default:
		n.Text, n.Valid = string(trimmed), true
	}

	return nil
}

// MarshalJSON writes the original shape back: a string when it arrived quoted,
// a bare literal otherwise.
func (n LooseNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}

	if n.Quoted || !json.Valid([]byte(n.Text)) {
		return json.Marshal(n.Text)
	}

	return []byte(n.Text), nil
}
