//nolint:dupl // ID types are intentionally similar for type safety in DDD
package picture

import (
	"fmt"

	"github.com/google/uuid"
)

// PictureID is a value object representing a unique picture identifier.
// It wraps a UUID to provide type safety and prevent mixing with other ID types.
type PictureID struct {
	value uuid.UUID
}

// NewPictureID creates a new PictureID with a generated UUID.
func NewPictureID() PictureID {
	return PictureID{value: uuid.New()}
}

// ParsePictureID parses a string into a PictureID.
// Returns an error if the string is not a valid UUID.
func ParsePictureID(s string) (PictureID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return PictureID{}, fmt.Errorf("invalid picture id: %w", err)
	}
	return PictureID{value: id}, nil
}

// MustParsePictureID parses a string into a PictureID and panics on error.
// Only use in tests or when the input is guaranteed to be valid.
func MustParsePictureID(s string) PictureID {
	id, err := ParsePictureID(s)
	if err != nil {
		panic(err) // Intentional panic for Must* function
	}
	return id
}

// String returns the string representation of the PictureID.
func (id PictureID) String() string {
	return id.value.String()
}

// IsZero returns true if this is the zero value (nil UUID).
func (id PictureID) IsZero() bool {
	return id.value == uuid.Nil
}

// Equals returns true if this PictureID equals the other PictureID.
func (id PictureID) Equals(other PictureID) bool {
	return id.value == other.value
}
