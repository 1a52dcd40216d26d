package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productsearch/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "nested", "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func results(query string, at time.Time, products ...models.NormalizedProduct) *models.SearchResults {
	if products == nil {
		products = []models.NormalizedProduct{}
	}

	return &models.SearchResults{
		FetchedAt: at,
		Query:     query,
		Message:   "found " + query,
		Products:  products,
		Received:  len(products) + 1,
		Dropped:   1,
	}
}

func TestSaveSearch_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	at := time.Date(2026, 5, 1, 10, 30, 0, 123456789, time.UTC)
	in := results("lamp", at,
		models.NormalizedProduct{ID: "B", Name: "Second by id", Price: "$2", Rating: 4.5, MaxRating: 5, Reviews: 12, InStock: true, SourceURL: "https://shop.example/dp/B000000002"},
		models.NormalizedProduct{ID: "A", Name: "First by id", Description: "desc", Image: "https://img.example/a.png", MaxRating: 10},
		models.NormalizedProduct{ID: "C", Name: "北欧風 ランプ", Price: "¥3,000", Rating: 2.25, MaxRating: 5, Reviews: 1000000},
	)

	id, err := db.SaveSearch(ctx, in)
	require.NoError(t, err)
	assert.Positive(t, id)

	products, err := db.GetProducts(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, in.Products, products)

	got, err := db.GetSearch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, in.Query, got.Query)
	assert.Equal(t, in.Message, got.Message)
	assert.Equal(t, in.Received, got.Received)
	assert.Equal(t, in.Dropped, got.Dropped)
	assert.True(t, at.Equal(got.FetchedAt))
	assert.Equal(t, in.Products, got.Products)
}

func TestSaveSearch_EmptyProducts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := db.SaveSearch(ctx, results("nothing", time.Time{}))
	require.NoError(t, err)

	products, err := db.GetProducts(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	got, err := db.GetSearch(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.FetchedAt.IsZero())
}

func TestListSearches_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	_, err := db.SaveSearch(ctx, results("old", base, models.NormalizedProduct{ID: "1", Name: "x"}))
	require.NoError(t, err)

	_, err = db.SaveSearch(ctx, results("newest", base.Add(2*time.Hour)))
	require.NoError(t, err)

	_, err = db.SaveSearch(ctx, results("middle", base.Add(500*time.Millisecond),
		models.NormalizedProduct{ID: "1", Name: "x"}, models.NormalizedProduct{ID: "2", Name: "y"}))
	require.NoError(t, err)

	all, err := db.ListSearches(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "newest", all[0].Query)
	assert.Equal(t, "middle", all[1].Query)
	assert.Equal(t, "old", all[2].Query)
	assert.Equal(t, 0, all[0].ProductCount)
	assert.Equal(t, 2, all[1].ProductCount)
	assert.Equal(t, 1, all[2].ProductCount)

	limited, err := db.ListSearches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "newest", limited[0].Query)
}

func TestGetSearch_NotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetSearch(context.Background(), 42)
	assert.ErrorIs(t, err, ErrSearchNotFound)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)

	id, err := db.SaveSearch(ctx, results("persisted", time.Now()))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	got, err := db.GetSearch(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Query)
}
