package formatter

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"productsearch/internal/models"
)

func sampleResults() *models.SearchResults {
	return &models.SearchResults{
		Query:   "lamp",
		Message: "Here are some lamps",
		Products: []models.NormalizedProduct{
			{ID: "1", Name: "Desk Lamp", Price: "$19.99", Rating: 4.5, MaxRating: 5, Reviews: 1234, InStock: true},
			{ID: "2", Name: "北欧風 フロアランプ", Price: "", Rating: 3, MaxRating: 10, Reviews: 7, SourceURL: "https://shop.example/dp/B000000001"},
			{ID: "3", Name: "Lamp | Shade", Price: "€5", Rating: 0, MaxRating: 5},
		},
		Received: 4,
		Dropped:  1,
	}
}

func TestAlignTable(t *testing.T) {
	tests := []struct {
		name     string
		input    [][]string
		expected []string
	}{
		{
			name:  "Basic table formatting",
			input: [][]string{{"Header 1", "Header 2"}, {"---", "---"}, {"val 1", "val 2"}},
			expected: []string{
				"| Header 1 | Header 2 |",
				"| -------- | -------- |",
				"| val 1    | val 2    |",
			},
		},
		{
			name:  "Minimum separator width",
			input: [][]string{{"A", "B"}, {"-", "-"}, {"x", "y"}},
			expected: []string{
				"| A   | B   |",
				"| --- | --- |",
				"| x   | y   |",
			},
		},
		{
			name:  "Ragged rows",
			input: [][]string{{"H1", "H2"}, {"---", "---"}, {"only"}},
			expected: []string{
				"| H1   | H2  |",
				"| ---- | --- |",
				"| only |     |",
			},
		},
		{
			name:  "Wide characters",
			input: [][]string{{"Name", "Qty"}, {"---", "---"}, {"日本語", "1"}},
			expected: []string{
				"| Name   | Qty |",
				"| ------ | --- |",
				"| 日本語 | 1   |",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := alignTable(tt.input, 1)
			if strings.Join(got, "\n") != strings.Join(tt.expected, "\n") {
				t.Errorf("alignTable() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(tt.expected, "\n"))
			}
		})
	}
}

func TestFormatMarkdown(t *testing.T) {
	out := FormatMarkdown(sampleResults())

	if !strings.HasPrefix(out, "## Results for \"lamp\"\n\nHere are some lamps\n\n") {
		t.Errorf("unexpected heading:\n%s", out)
	}

	var tableLines []string

	for line := range strings.SplitSeq(out, "\n") {
		if strings.HasPrefix(line, "|") {
			tableLines = append(tableLines, line)
		}
	}

	if len(tableLines) != 5 {
		t.Fatalf("expected 5 table lines, got %d:\n%s", len(tableLines), out)
	}

	want := runewidth.StringWidth(tableLines[0])
	for _, line := range tableLines {
		if w := runewidth.StringWidth(line); w != want {
			t.Errorf("line %q has display width %d, want %d", line, w, want)
		}
	}

	for _, fragment := range []string{
		"[北欧風 フロアランプ](https://shop.example/dp/B000000001)",
		`Lamp \| Shade`,
		"| 4.5/5 ",
		"| 1,234 ",
		"| 3/10 ",
		"| in stock ",
		"| out of stock |",
		"3 products (1 unusable records dropped)",
	} {
		if !strings.Contains(out, fragment) {
			t.Errorf("output missing %q:\n%s", fragment, out)
		}
	}
}

func TestFormatMarkdown_Empty(t *testing.T) {
	out := FormatMarkdown(&models.SearchResults{Query: "nothing", Products: []models.NormalizedProduct{}})

	if !strings.Contains(out, "_No products found._") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if strings.Contains(out, "|") {
		t.Errorf("empty results should not render a table:\n%s", out)
	}
}
