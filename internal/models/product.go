package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Availability texts written by NormalizedProduct.ToRaw.
const (
	AvailabilityInStock    = "In Stock"
	AvailabilityOutOfStock = "Out of Stock"
)

// RawProduct is a product record as the backend sends it. Every field is
// optional and untrusted.
type RawProduct struct {
	ID           LooseString `json:"id,omitzero"`
	Name         LooseString `json:"name,omitzero"`
	Price        LooseString `json:"price,omitzero"`
	Description  LooseString `json:"description,omitzero"`
	ImageURL     LooseString `json:"image_url,omitzero"`
	Rating       LooseNumber `json:"rating,omitzero"`
	MaxRating    LooseNumber `json:"max_rating,omitzero"`
	ReviewCount  LooseString `json:"review_count,omitzero"`
	URL          LooseString `json:"url,omitzero"`
	Availability LooseString `json:"availability,omitzero"`
}

// UnmarshalJSON decodes anything that is not a JSON object as an empty record.
func (p *RawProduct) UnmarshalJSON(data []byte) error {
	*p = RawProduct{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	type plain RawProduct

	return json.Unmarshal(trimmed, (*plain)(p))
}

// NormalizedProduct is a fully defined product record ready for display.
type NormalizedProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	MaxRating   float64 `json:"maxRating"`
	Reviews     int     `json:"reviews"`
	InStock     bool    `json:"inStock"`
	SourceURL   string  `json:"sourceUrl,omitempty"`
}

// HasSourceURL reports whether the record links back to a product page.
func (p NormalizedProduct) HasSourceURL() bool {
	return p.SourceURL != ""
}

// ToRaw maps the record back into the backend shape. Normalizing the result
// yields the same displayable fields.
func (p NormalizedProduct) ToRaw() RawProduct {
	availability := AvailabilityOutOfStock
	if p.InStock {
		availability = AvailabilityInStock
	}

	raw := RawProduct{
		ID:           String(p.ID),
		Name:         String(p.Name),
		Price:        String(p.Price),
		Description:  String(p.Description),
		ImageURL:     String(p.Image),
		Rating:       Number(p.Rating),
		MaxRating:    Number(p.MaxRating),
		ReviewCount:  String(strconv.Itoa(p.Reviews)),
		Availability: String(availability),
	}

	if p.HasSourceURL() {
		raw.URL = String(p.SourceURL)
	}

	return raw
}
