//nolint:dupl // ID types are intentionally similar for type safety in DDD
package hierarchy

import (
	"fmt"

	"github.com/google/uuid"
)

// HierarchyID is a value object representing a unique hierarchy identifier.
type HierarchyID struct {
	value uuid.UUID
}

// NewHierarchyID creates a new HierarchyID with a generated UUID.
func NewHierarchyID() HierarchyID {
	return HierarchyID{value: uuid.New()}
}

// ParseHierarchyID parses a string into a HierarchyID.
func ParseHierarchyID(s string) (HierarchyID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return HierarchyID{}, fmt.Errorf("invalid hierarchy id: %w", err)
	}
	return HierarchyID{value: id}, nil
}

// MustParseHierarchyID parses a string into a HierarchyID and panics on error.
func MustParseHierarchyID(s string) HierarchyID {
	id, err := ParseHierarchyID(s)
	if err != nil {
		panic(err) // Intentional panic for Must* function
	}
	return id
}

func (id HierarchyID) String() string { return id.value.String() }

func (id HierarchyID) IsZero() bool { return id.value == uuid.Nil }

func (id HierarchyID) Equals(other HierarchyID) bool { return id.value == other.value }
