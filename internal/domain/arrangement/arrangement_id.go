//nolint:dupl // ID types are intentionally similar for type safety in DDD
package arrangement

import (
	"fmt"

	"github.com/google/uuid"
)

// ArrangementID is a value object representing a unique arrangement
// identifier.
type ArrangementID struct {
	value uuid.UUID
}

// NewArrangementID creates a new ArrangementID with a generated UUID.
func NewArrangementID() ArrangementID {
	return ArrangementID{value: uuid.New()}
}

// ParseArrangementID parses a string into an ArrangementID.
func ParseArrangementID(s string) (ArrangementID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ArrangementID{}, fmt.Errorf("invalid arrangement id: %w", err)
	}
	return ArrangementID{value: id}, nil
}

// MustParseArrangementID parses a string into an ArrangementID and panics on error.
func MustParseArrangementID(s string) ArrangementID {
	id, err := ParseArrangementID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation of the ArrangementID.
func (id ArrangementID) String() string { return id.value.String() }

// IsZero returns true if this is the zero value.
func (id ArrangementID) IsZero() bool { return id.value == uuid.Nil }

// Equals returns true if this ArrangementID equals the other.
func (id ArrangementID) Equals(other ArrangementID) bool { return id.value == other.value }
