package models

import "time"

// SearchRequest is the body posted to the search endpoint.
type SearchRequest struct {
	Message string `json:"message"`
}

// SearchResponse is the envelope returned by the search endpoint.
type SearchResponse struct {
	Response string       `json:"response"`
	Products []RawProduct `json:"products"`
}

// HealthResponse is whatever JSON object the health endpoint returns.
type HealthResponse map[string]any

// SearchResults is a normalized search ready for presentation or storage.
type SearchResults struct {
	FetchedAt time.Time           `json:"fetchedAt"`
	Query     string              `json:"query"`
	Message   string              `json:"message"`
	Products  []NormalizedProduct `json:"products"`
	Received  int                 `json:"received"`
	Dropped   int                 `json:"dropped"`
}
