// Package idgen provides identifier issuance for new entities.
package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// Issuer issues globally unique identifiers.
type Issuer interface {
	// NewID returns a new globally unique identifier.
	NewID() string
}

// UUID issues random UUIDv4 identifiers.
type UUID struct{}

// NewUUID creates a new UUID issuer.
func NewUUID() UUID {
	return UUID{}
}

// NewID returns a new UUIDv4 string.
func (UUID) NewID() string {
	return uuid.NewString()
}

// ShortCode returns an 8-character uppercase code suitable for sharing
// event and team links. Uniqueness is enforced by the database.
func ShortCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
