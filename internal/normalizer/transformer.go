package normalizer

import (
	"strings"

	"github.com/google/uuid"

	"productsearch/internal/models"
)

// Transformer maps raw records onto normalized records.
type Transformer struct {
	coercer *Coercer
	ids     IDGenerator
}

// NewTransformer creates a new transformer using ids for the id fallback.
func NewTransformer(ids IDGenerator) *Transformer {
	if ids == nil {
		ids = UUIDGenerator{}
	}

	return &Transformer{
		coercer: NewCoercer(),
		ids:     ids,
	}
}

// Transform converts any raw record, including an empty one, into a fully
// defined product.
func (t *Transformer) Transform(raw models.RawProduct) models.NormalizedProduct {
	ceiling := t.coercer.MaxRating(raw.MaxRating)

	return models.NormalizedProduct{
		ID:          t.resolveID(raw),
		Name:        t.coercer.Name(raw.Name),
		Price:       t.coercer.Text(raw.Price),
		Description: t.coercer.Text(raw.Description),
		Image:       t.coercer.Text(raw.ImageURL),
		Rating:      t.coercer.Rating(raw.Rating, ceiling),
		MaxRating:   ceiling,
		Reviews:     t.coercer.Reviews(raw.ReviewCount),
		InStock:     t.coercer.InStock(raw.Availability),
		SourceURL:   raw.URL.Trimmed(),
	}
}

// resolveID prefers the upstream id, then the item token in the URL, then a
// generated value.
func (t *Transformer) resolveID(raw models.RawProduct) string {
	if id := raw.ID.Trimmed(); id != "" {
		return id
	}

	if link := raw.URL.Trimmed(); link != "" {
		if id, ok := t.coercer.ItemID(link); ok {
			return id
		}
	}

	if id := strings.TrimSpace(t.ids.NewID()); id != "" {
		return id
	}

	return uuid.NewString()
}
