// Package storage keeps snapshots of normalized search results in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"productsearch/internal/models"
)

// timeLayout sorts lexically in chronological order for UTC times.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrSearchNotFound is returned when a snapshot id does not exist.
var ErrSearchNotFound = errors.New("search not found")

// SearchRecord summarizes a stored search.
type SearchRecord struct {
	ID           int64
	Query        string
	Message      string
	Received     int
	Dropped      int
	ProductCount int
	FetchedAt    time.Time
}

// DB is a snapshot store backed by a single SQLite file.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if _, err := conn.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS searches (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  query TEXT NOT NULL,
  message TEXT NOT NULL DEFAULT '',
  received INTEGER NOT NULL DEFAULT 0,
  dropped INTEGER NOT NULL DEFAULT 0,
  fetchedAt TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_searches_fetchedAt ON searches(fetchedAt);

CREATE TABLE IF NOT EXISTS products (
  searchId INTEGER NOT NULL,
  position INTEGER NOT NULL,
  id TEXT NOT NULL,
  name TEXT NOT NULL,
  price TEXT NOT NULL,
  description TEXT NOT NULL,
  image TEXT NOT NULL,
  rating REAL NOT NULL,
  maxRating REAL NOT NULL,
  reviews INTEGER NOT NULL,
  inStock INTEGER NOT NULL,
  sourceUrl TEXT NOT NULL DEFAULT '',
  PRIMARY KEY(searchId, position),
  FOREIGN KEY(searchId) REFERENCES searches(id) ON DELETE CASCADE
);
`

	_, err := d.conn.Exec(schema)

	return err
}

// SaveSearch stores results and their products in one transaction and
// returns the new search id.
func (d *DB) SaveSearch(ctx context.Context, results *models.SearchResults) (int64, error) {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	fetchedAt := results.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	res, err := tx.ExecContext(ctx, `
INSERT INTO searches (query, message, received, dropped, fetchedAt)
VALUES (?, ?, ?, ?, ?)`,
		results.Query, results.Message, results.Received, results.Dropped,
		fetchedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert search: %w", err)
	}

	searchID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO products (
  searchId, position, id, name, price, description, image,
  rating, maxRating, reviews, inStock, sourceUrl
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, p := range results.Products {
		if _, err := stmt.ExecContext(ctx,
			searchID, i, p.ID, p.Name, p.Price, p.Description, p.Image,
			p.Rating, p.MaxRating, p.Reviews, p.InStock, p.SourceURL,
		); err != nil {
			return 0, fmt.Errorf("failed to insert product %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return searchID, nil
}

// ListSearches returns stored searches, newest first. limit <= 0 returns all.
func (d *DB) ListSearches(ctx context.Context, limit int) ([]SearchRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := d.conn.QueryContext(ctx, `
SELECT s.id, s.query, s.message, s.received, s.dropped, s.fetchedAt,
       (SELECT COUNT(*) FROM products p WHERE p.searchId = s.id)
FROM searches s
ORDER BY s.fetchedAt DESC, s.id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SearchRecord, 0)

	for rows.Next() {
		var rec SearchRecord

		var fetchedAt string
		if err := rows.Scan(&rec.ID, &rec.Query, &rec.Message, &rec.Received, &rec.Dropped, &fetchedAt, &rec.ProductCount); err != nil {
			return nil, err
		}

		rec.FetchedAt = parseTime(fetchedAt)
		out = append(out, rec)
	}

	return out, rows.Err()
}

// GetSearch loads a stored search with its products.
func (d *DB) GetSearch(ctx context.Context, searchID int64) (*models.SearchResults, error) {
	var (
		res       models.SearchResults
		fetchedAt string
	)

	err := d.conn.QueryRowContext(ctx, `
SELECT query, message, received, dropped, fetchedAt FROM searches WHERE id = ?`, searchID).
		Scan(&res.Query, &res.Message, &res.Received, &res.Dropped, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrSearchNotFound, searchID)
	}

	if err != nil {
		return nil, err
	}

	res.FetchedAt = parseTime(fetchedAt)

	res.Products, err = d.GetProducts(ctx, searchID)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

// GetProducts returns the products of a search in their original order.
func (d *DB) GetProducts(ctx context.Context, searchID int64) ([]models.NormalizedProduct, error) {
	rows, err := d.conn.QueryContext(ctx, `
SELECT id, name, price, description, image, rating, maxRating, reviews, inStock, sourceUrl
FROM products
WHERE searchId = ?
ORDER BY position`, searchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.NormalizedProduct, 0)

	for rows.Next() {
		var p models.NormalizedProduct
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.Description, &p.Image,
			&p.Rating, &p.MaxRating, &p.Reviews, &p.InStock, &p.SourceURL,
		); err != nil {
			return nil, err
		}

		out = append(out, p)
	}

	return out, rows.Err()
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}

	return t
}
