// Package normalizer turns loosely typed product records from the search
// backend into fully defined records. It never fails: malformed or missing
// fields degrade to defaults and unusable records are filtered out of batches.
package normalizer

import (
	"productsearch/internal/models"
)

// Processor filters and transforms raw product records.
// It holds no mutable state and is safe for concurrent use.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// Option configures a Processor.
type Option func(*processorOptions)

type processorOptions struct {
	ids IDGenerator
}

// WithIDGenerator sets the generator used when a record has no usable id.
func WithIDGenerator(ids IDGenerator) Option {
	return func(o *processorOptions) {
		if ids != nil {
			o.ids = ids
		}
	}
}

// NewProcessor creates a new processor instance.
func NewProcessor(opts ...Option) *Processor {
	o := processorOptions{ids: UUIDGenerator{}}
	for _, opt := range opts {
		opt(&o)
	}

	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(o.ids),
	}
}

// Normalize maps a single raw record. It does not apply the batch filter.
func (p *Processor) Normalize(raw models.RawProduct) models.NormalizedProduct {
	return p.transformer.Transform(raw)
}

// Filter splits raws into usable records, in input order, and rejections.
func (p *Processor) Filter(raws []models.RawProduct) ([]models.RawProduct, []Rejection) {
	kept := make([]models.RawProduct, 0, len(raws))

	var rejected []Rejection

	for i, raw := range raws {
		if err := p.validator.Check(raw); err != nil {
			rejected = append(rejected, Rejection{Index: i, Err: err})

			continue
		}

		kept = append(kept, raw)
	}

	return kept, rejected
}

// Process filters raws and normalizes the survivors in order, reporting
// what was dropped. The product slice is never nil.
func (p *Processor) Process(raws []models.RawProduct) ([]models.NormalizedProduct, []Rejection) {
	kept, rejected := p.Filter(raws)

	out := make([]models.NormalizedProduct, 0, len(kept))
	for _, raw := range kept {
		out = append(out, p.Normalize(raw))
	}

	return out, rejected
}

// NormalizeBatch drops unusable records and normalizes the rest in order.
// The result is never nil.
func (p *Processor) NormalizeBatch(raws []models.RawProduct) []models.NormalizedProduct {
	out, _ := p.Process(raws)

	return out
}

var defaultProcessor = NewProcessor()

// Normalize maps a single raw record using random ids for the fallback.
func Normalize(raw models.RawProduct) models.NormalizedProduct {
	return defaultProcessor.Normalize(raw)
}

// NormalizeBatch filters and maps raws using random ids for the fallback.
func NormalizeBatch(raws []models.RawProduct) []models.NormalizedProduct {
	return defaultProcessor.NormalizeBatch(raws)
}
