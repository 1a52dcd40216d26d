package search

import (
	"context"
	"strings"
	"time"

	"productsearch/internal/logger"
	"productsearch/internal/models"
	"productsearch/internal/normalizer"
)

// Searcher fetches raw search envelopes. *Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
}

// Service runs a search and normalizes what comes back.
type Service struct {
	searcher  Searcher
	processor *normalizer.Processor
	log       *logger.Logger
	limit     int
	now       func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLimit keeps at most n products after normalization. n <= 0 keeps all.
func WithLimit(n int) ServiceOption {
	return func(s *Service) {
		s.limit = n
	}
}

// WithProcessor replaces the default normalizer.
func WithProcessor(p *normalizer.Processor) ServiceOption {
	return func(s *Service) {
		if p != nil {
			s.processor = p
		}
	}
}

// WithClock sets the time source used for FetchedAt.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a search service.
func NewService(searcher Searcher, log *logger.Logger, opts ...ServiceOption) *Service {
	if log == nil {
		log = logger.Discard()
	}

	s := &Service{
		searcher:  searcher,
		processor: normalizer.NewProcessor(),
		log:       log.With("component", "search-service"),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Search queries the backend and returns the normalized products.
func (s *Service) Search(ctx context.Context, query string) (*models.SearchResults, error) {
	resp, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	products, rejected := s.processor.Process(resp.Products)
	for _, r := range rejected {
		s.log.Debug("dropping product record", "index", r.Index, "reason", r.Err)
	}

	if s.limit > 0 && len(products) > s.limit {
		products = products[:s.limit]
	}

	s.log.Info("search completed",
		"query", strings.TrimSpace(query),
		"received", len(resp.Products),
		"dropped", len(rejected),
		"returned", len(products))

	return &models.SearchResults{
		FetchedAt: s.now().UTC(),
		Query:     strings.TrimSpace(query),
		Message:   resp.Response,
		Products:  products,
		Received:  len(resp.Products),
		Dropped:   len(rejected),
	}, nil
}
