// Package export writes normalized products to spreadsheet files.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"productsearch/internal/models"
)

// SheetName is the worksheet holding the products.
const SheetName = "Products"

// ErrNoPath is returned when no output path is given.
var ErrNoPath = errors.New("export path is empty")

// Headers are the column titles of the products sheet, in order.
var Headers = []string{
	"id", "name", "price", "rating", "max_rating", "reviews",
	"in_stock", "description", "image", "source_url",
}

// ToXLSX writes one header row and one row per product to path, creating
// parent directories as needed.
func ToXLSX(products []models.NormalizedProduct, path string) (err error) {
	if path == "" {
		return ErrNoPath
	}

	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	if style, styleErr := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); styleErr == nil {
		last, _ := excelize.CoordinatesToCellName(len(Headers), 1)
		_ = f.SetCellStyle(SheetName, "A1", last, style)
	}

	for i, p := range products {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(SheetName, cell, value)
		}

		set(1, p.ID)
		set(2, p.Name)
		set(3, p.Price)
		set(4, p.Rating)
		set(5, p.MaxRating)
		set(6, p.Reviews)
		set(7, yesNo(p.InStock))
		set(8, p.Description)
		set(9, p.Image)
		set(10, p.SourceURL)
	}

	_ = f.SetColWidth(SheetName, "B", "B", 40)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
