package normalizer

import (
	"testing"

	"productsearch/internal/models"
)

func TestCoercer_Text(t *testing.T) {
	c := NewCoercer()

	tests := []struct {
		name  string
		input models.LooseString
		want  string
	}{
		{name: "absent", input: models.LooseString{}, want: ""},
		{name: "empty", input: models.String(""), want: ""},
		{name: "whitespace", input: models.String(" \t\n"), want: ""},
		{name: "kept verbatim", input: models.String(" $19.99 "), want: " $19.99 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Text(tt.input); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCoercer_Name(t *testing.T) {
	c := NewCoercer()

	if got := c.Name(models.String("  ")); got != UnknownProductName {
		t.Errorf("Name(blank) = %q, want %q", got, UnknownProductName)
	}

	if got := c.Name(models.LooseString{}); got != UnknownProductName {
		t.Errorf("Name(absent) = %q, want %q", got, UnknownProductName)
	}

	if got := c.Name(models.String("Widget")); got != "Widget" {
		t.Errorf("Name(Widget) = %q, want Widget", got)
	}
}

func TestCoercer_ItemID(t *testing.T) {
	c := NewCoercer()

	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{name: "product path", url: "https://x.com/dp/B08N5WRWNW/ref=foo", want: "B08N5WRWNW", wantOK: true},
		{name: "lowercase token", url: "https://x.com/Some-Name/dp/b08n5wrwnw?th=1", want: "B08N5WRWNW", wantOK: true},
		{name: "uppercase segment", url: "https://x.com/DP/B08N5WRWNW", want: "B08N5WRWNW", wantOK: true},
		{name: "token too short", url: "https://x.com/dp/ABC1234", wantOK: false},
		{name: "long token cut at 20", url: "https://x.com/dp/ABCDEFGHIJKLMNOPQRSTUVWXYZ", want: "ABCDEFGHIJKLMNOPQRST", wantOK: true},
		{name: "no product path", url: "https://x.com/p", wantOK: false},
		{name: "empty", url: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.ItemID(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ItemID(%q) ok = %v, want %v", tt.url, ok, tt.wantOK)
			}

			if got != tt.want {
				t.Errorf("ItemID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestCoercer_Rating(t *testing.T) {
	c := NewCoercer()

	tests := []struct {
		name        string
		rating      models.LooseNumber
		maxRating   models.LooseNumber
		wantRating  float64
		wantCeiling float64
	}{
		{name: "plain", rating: models.Number(4.5), wantRating: 4.5, wantCeiling: 5},
		{name: "above default ceiling", rating: models.Number(7), wantRating: 5, wantCeiling: 5},
		{name: "negative", rating: models.Number(-1), wantRating: 0, wantCeiling: 5},
		{name: "absent", wantRating: 0, wantCeiling: 5},
		{name: "non-numeric string", rating: models.NumberText("abc"), wantRating: 0, wantCeiling: 5},
		{name: "numeric strings", rating: models.NumberText("4.2"), maxRating: models.NumberText("10"), wantRating: 4.2, wantCeiling: 10},
		{name: "padded string", rating: models.NumberText(" 3.5 "), maxRating: models.NumberText("x"), wantRating: 3.5, wantCeiling: 5},
		{name: "custom ceiling", rating: models.Number(8), maxRating: models.Number(10), wantRating: 8, wantCeiling: 10},
		{name: "clamped to custom ceiling", rating: models.Number(12), maxRating: models.Number(10), wantRating: 10, wantCeiling: 10},
		{name: "zero ceiling", rating: models.Number(3), maxRating: models.Number(0), wantRating: 3, wantCeiling: 5},
		{name: "negative ceiling", rating: models.Number(6), maxRating: models.Number(-2), wantRating: 5, wantCeiling: 5},
		{name: "empty string ceiling", rating: models.Number(2), maxRating: models.NumberText(""), wantRating: 2, wantCeiling: 5},
		{name: "infinity", rating: models.NumberText("Infinity"), maxRating: models.NumberText("inf"), wantRating: 5, wantCeiling: 5},
		{name: "infinity with custom ceiling", rating: models.NumberText("Infinity"), maxRating: models.Number(10), wantRating: 10, wantCeiling: 10},
		{name: "negative infinity", rating: models.NumberText("-Infinity"), wantRating: 0, wantCeiling: 5},
		{name: "overflowing number", rating: models.LooseNumber{Text: "1e400", Valid: true}, wantRating: 5, wantCeiling: 5},
		{name: "overflowing string", rating: models.NumberText("1e309"), maxRating: models.NumberText("1e309"), wantRating: 5, wantCeiling: 5},
		{name: "hex string", rating: models.NumberText("0x10"), wantRating: 5, wantCeiling: 5},
		{name: "hex ceiling", rating: models.Number(12), maxRating: models.NumberText("0x10"), wantRating: 12, wantCeiling: 16},
		{name: "nan", rating: models.NumberText("NaN"), wantRating: 0, wantCeiling: 5},
		{name: "bool literal", rating: models.LooseNumber{Text: "true", Valid: true}, wantRating: 0, wantCeiling: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ceiling := c.MaxRating(tt.maxRating)
			if ceiling != tt.wantCeiling {
				t.Errorf("MaxRating() = %v, want %v", ceiling, tt.wantCeiling)
			}

			if got := c.Rating(tt.rating, ceiling); got != tt.wantRating {
				t.Errorf("Rating() = %v, want %v", got, tt.wantRating)
			}
		})
	}
}

func TestCoercer_Reviews(t *testing.T) {
	c := NewCoercer()

	tests := []struct {
		name  string
		input models.LooseString
		want  int
	}{
		{name: "thousands separator", input: models.String("1,234"), want: 1234},
		{name: "millions", input: models.String("1,234,567"), want: 1234567},
		{name: "letters", input: models.String("abc"), want: 0},
		{name: "empty", input: models.String(""), want: 0},
		{name: "absent", input: models.LooseString{}, want: 0},
		{name: "leading space and suffix", input: models.String("  42 ratings"), want: 42},
		{name: "decimal", input: models.String("12.9"), want: 12},
		{name: "negative", input: models.String("-5"), want: 0},
		{name: "explicit plus", input: models.String("+7"), want: 7},
		{name: "overflow", input: models.String("99999999999999999999999"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Reviews(tt.input); got != tt.want {
				t.Errorf("Reviews(%q) = %d, want %d", tt.input.Value, got, tt.want)
			}
		})
	}
}

func TestCoercer_InStock(t *testing.T) {
	c := NewCoercer()

	tests := []struct {
		input models.LooseString
		want  bool
	}{
		{input: models.String("In Stock"), want: true},
		{input: models.String("IN STOCK - ships tomorrow"), want: true},
		{input: models.String("Only 3 left in stock."), want: true},
		{input: models.String("Out of Stock"), want: false},
		{input: models.String("Instock"), want: false},
		{input: models.String(""), want: false},
		{input: models.LooseString{}, want: false},
	}

	for _, tt := range tests {
		if got := c.InStock(tt.input); got != tt.want {
			t.Errorf("InStock(%q) = %v, want %v", tt.input.Value, got, tt.want)
		}
	}
}
