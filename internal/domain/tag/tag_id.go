//nolint:dupl // ID types are intentionally similar for type safety in DDD
package tag

import (
	"fmt"

	"github.com/google/uuid"
)

// TagID is a value object representing a unique tag identifier.
type TagID struct {
	value uuid.UUID
}

// NewTagID creates a new TagID with a generated UUID.
func NewTagID() TagID {
	return TagID{value: uuid.New()}
}

// ParseTagID parses a string into a TagID.
func ParseTagID(s string) (TagID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TagID{}, fmt.Errorf("invalid tag id: %w", err)
	}
	return TagID{value: id}, nil
}

// MustParseTagID parses a string into a TagID and panics on error.
func MustParseTagID(s string) TagID {
	id, err := ParseTagID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation of the TagID.
func (id TagID) String() string { return id.value.String() }

// IsZero returns true if this is the zero value.
func (id TagID) IsZero() bool { return id.value == uuid.Nil }

// Equals returns true if this TagID equals the other.
func (id TagID) Equals(other TagID) bool { return id.value == other.value }
