package formatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"productsearch/internal/models"
)

// Output formats.
const (
	FormatTableName    = "table"
	FormatMarkdownName = "markdown"
	FormatJSONName     = "json"
)

// ErrUnknownFormat is returned by Write for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

const (
	columnGap    = "  "
	minNameWidth = 10
	ellipsis     = "…"
)

// CheckFormat returns ErrUnknownFormat unless Write supports format.
func CheckFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatTableName, FormatMarkdownName, FormatJSONName, "":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// Write renders results in the named format.
func Write(w io.Writer, format string, results *models.SearchResults, width int) error {
	switch strings.ToLower(format) {
	case FormatTableName, "":
		return FormatTable(w, results, width)
	case FormatMarkdownName:
		_, err := io.WriteString(w, FormatMarkdown(results))

		return err
	case FormatJSONName:
		return FormatJSON(w, results)
	default:
		return CheckFormat(format)
	}
}

// FormatTable writes results as aligned plain-text columns. Names are
// truncated so that each line fits in width display cells; width <= 0
// disables truncation.
func FormatTable(w io.Writer, results *models.SearchResults, width int) error {
	var sb strings.Builder

	if msg := strings.TrimSpace(results.Message); msg != "" {
		sb.WriteString(msg)
		sb.WriteString("\n\n")
	}

	if len(results.Products) == 0 {
		sb.WriteString("No products found.\n")

		_, err := io.WriteString(w, sb.String())

		return err
	}

	rows := make([][]string, 0, len(results.Products)+1)
	rows = append(rows, columns)

	for i, p := range results.Products {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			oneLine(p.Name),
			oneLine(PriceText(p)),
			RatingText(p),
			ReviewsText(p),
			StockText(p),
		})
	}

	widths := make([]int, len(columns))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	const nameCol = 1

	if width > 0 {
		others := len(columnGap) * (len(columns) - 1)
		for i, cw := range widths {
			if i != nameCol {
				others += cw
			}
		}

		widths[nameCol] = min(widths[nameCol], max(width-others, minNameWidth))
	}

	sb.WriteString(renderColumns(rows, widths, nameCol))
	sb.WriteString("\n")
	sb.WriteString(Summary(results))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())

	return err
}

// WriteColumns writes rows as plain-text columns aligned by display width.
func WriteColumns(w io.Writer, rows [][]string) error {
	var widths []int

	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}

			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	_, err := io.WriteString(w, renderColumns(rows, widths, -1))

	return err
}

// renderColumns pads each cell to its column width. Cells in column
// truncateCol are shortened to fit first.
func renderColumns(rows [][]string, widths []int, truncateCol int) string {
	var sb strings.Builder

	for _, row := range rows {
		cells := make([]string, len(row))

		for i, cell := range row {
			if i == truncateCol {
				cell = runewidth.Truncate(cell, widths[i], ellipsis)
			}

			cells[i] = runewidth.FillRight(cell, widths[i])
		}

		sb.WriteString(strings.TrimRight(strings.Join(cells, columnGap), " "))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatJSON writes results as indented JSON.
func FormatJSON(w io.Writer, results *models.SearchResults) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
