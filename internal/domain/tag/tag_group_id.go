//nolint:dupl // ID types are intentionally similar for type safety in DDD
package tag

import (
	"fmt"

	"github.com/google/uuid"
)

// TagGroupID is a value object representing a unique tag group identifier.
type TagGroupID struct {
	value uuid.UUID
}

// NewTagGroupID creates a new TagGroupID with a generated UUID.
func NewTagGroupID() TagGroupID {
	return TagGroupID{value: uuid.New()}
}

// ParseTagGroupID parses a string into a TagGroupID.
func ParseTagGroupID(s string) (TagGroupID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TagGroupID{}, fmt.Errorf("invalid tag group id: %w", err)
	}
	return TagGroupID{value: id}, nil
}

// MustParseTagGroupID parses a string into a TagGroupID and panics on error.
func MustParseTagGroupID(s string) TagGroupID {
	id, err := ParseTagGroupID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation of the TagGroupID.
func (id TagGroupID) String() string { return id.value.String() }

// IsZero returns true if this is the zero value.
func (id TagGroupID) IsZero() bool { return id.value == uuid.Nil }

// Equals returns true if this TagGroupID equals the other.
func (id TagGroupID) Equals(other TagGroupID) bool { return id.value == other.value }
