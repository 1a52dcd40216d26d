package normalizer

import (
	"errors"
	"fmt"

	"productsearch/internal/models"
)

// Reasons a raw record is dropped from a batch.
var (
	ErrNoIdentity       = errors.New("record has neither id nor url")
	ErrNothingToDisplay = errors.New("record has no url and no name, image or price")
)

// Rejection describes a record dropped from a batch.
type Rejection struct {
	Err   error
	Index int
}

func (r Rejection) Error() string {
	return fmt.Sprintf("record %d: %v", r.Index, r.Err)
}

func (r Rejection) Unwrap() error {
	return r.Err
}

// Validator decides whether a raw record is worth normalizing.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Check returns nil for usable records, or the reason the record is dropped.
// A record without id and url is dropped even when it has display content.
func (v *Validator) Check(raw models.RawProduct) error {
	if raw.ID.IsBlank() && raw.URL.IsBlank() {
		return ErrNoIdentity
	}

	if raw.URL.IsBlank() && raw.Name.IsBlank() && raw.ImageURL.IsBlank() && raw.Price.IsBlank() {
		return ErrNothingToDisplay
	}

	return nil
}
