package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"productsearch/internal/models"
)

func TestToXLSX(t *testing.T) {
	products := []models.NormalizedProduct{
		{ID: "B08N5WRWNW", Name: "Desk Lamp", Price: "$19.99", Rating: 4.5, MaxRating: 5, Reviews: 1234, InStock: true, SourceURL: "https://shop.example/dp/B08N5WRWNW"},
		{ID: "gen-1", Name: "Unknown product", Rating: 0, MaxRating: 5},
	}

	path := filepath.Join(t.TempDir(), "nested", "dir", "results.xlsx")
	require.NoError(t, ToXLSX(products, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, []string{"B08N5WRWNW", "Desk Lamp", "$19.99", "4.5", "5", "1234", "yes"}, rows[1][:7])
	assert.Equal(t, "https://shop.example/dp/B08N5WRWNW", rows[1][9])
	assert.Equal(t, "gen-1", rows[2][0])
	assert.Equal(t, "no", rows[2][6])
}

func TestToXLSX_EmptyProducts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, ToXLSX(nil, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Headers, rows[0])
}

func TestToXLSX_NoPath(t *testing.T) {
	assert.ErrorIs(t, ToXLSX(nil, ""), ErrNoPath)
}
