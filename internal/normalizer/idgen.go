package normalizer

import "github.com/google/uuid"

// IDGenerator produces identifiers for records that carry neither an id nor a
// recognisable product URL. Values from the default generator are random and
// differ on every call, so such records get a new id each time they are
// normalized.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a plain function to IDGenerator.
type IDGeneratorFunc func() string

// NewID calls f.
func (f IDGeneratorFunc) NewID() string {
	return f()
}

// UUIDGenerator returns random version 4 UUIDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
