// Package formatter renders search results for the terminal.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"productsearch/internal/models"
)

var columns = []string{"#", "Name", "Price", "Rating", "Reviews", "Stock"}

// FormatMarkdown renders results as a markdown document with a table whose
// columns are padded to a common display width.
func FormatMarkdown(results *models.SearchResults) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## Results for %q\n\n", results.Query)

	if msg := strings.TrimSpace(results.Message); msg != "" {
		sb.WriteString(msg)
		sb.WriteString("\n\n")
	}

	if len(results.Products) == 0 {
		sb.WriteString("_No products found._\n")

		return sb.String()
	}

	table := make([][]string, 0, len(results.Products)+2)
	table = append(table, columns)

	sep := make([]string, len(columns))
	for i := range sep {
		sep[i] = "---"
	}

	table = append(table, sep)

	for i, p := range results.Products {
		name := escapeCell(p.Name)
		if p.HasSourceURL() {
			name = "[" + name + "](" + escapeCell(p.SourceURL) + ")"
		}

		table = append(table, []string{
			strconv.Itoa(i + 1),
			name,
			escapeCell(PriceText(p)),
			RatingText(p),
			ReviewsText(p),
			StockText(p),
		})
	}

	for _, line := range alignTable(table, 1) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(Summary(results))
	sb.WriteString("\n")

	return sb.String()
}

// escapeCell keeps a value on one line and inside its table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r", " ")

	return strings.ReplaceAll(s, "\n", " ")
}

// alignTable pads every cell to its column's display width. The row at
// separatorRowIdx (or none, when negative) is redrawn as dashes.
func alignTable(table [][]string, separatorRowIdx int) []string {
	if len(table) == 0 {
		return nil
	}

	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	// Calculate max widths (using display width)
	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == separatorRowIdx {
			continue
		}

		for i, cell := range row {
			colWidths[i] = max(colWidths[i], runewidth.StringWidth(cell))
		}
	}

	// Ensure min width for separator "---"
	for i := range colWidths {
		colWidths[i] = max(colWidths[i], 3)
	}

	result := make([]string, 0, len(table))

	for i, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := range colCount {
			sb.WriteString(" ")

			content := ""
			if j < len(row) {
				content = row[j]
			}

			if i == separatorRowIdx {
				sb.WriteString(strings.Repeat("-", colWidths[j]))
			} else {
				sb.WriteString(runewidth.FillRight(content, colWidths[j]))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}
