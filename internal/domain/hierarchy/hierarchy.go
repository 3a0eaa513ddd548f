// Package hierarchy provides the Hierarchy aggregate: a user-defined
// display tree over arrangements, supplementing the classification
// engine proper with a way to nest arrangements under parent groups for
// presentation. Hierarchies never feed the dependency scheduler — they
// are read-only structure over arrangements that already exist.
package hierarchy

import (
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// Hierarchy is a named, owned collection of arrangement placements.
type Hierarchy struct {
	id      HierarchyID
	ownerID identity.UserID
	name    string
	events  []shared.DomainEvent
}

// NewHierarchy creates a new, empty Hierarchy.
func NewHierarchy(ownerID identity.UserID, name string) (*Hierarchy, error) {
	if ownerID.IsZero() {
		return nil, fmt.Errorf("%w: owner id is required", shared.ErrInvalidInput)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	h := &Hierarchy{id: NewHierarchyID(), ownerID: ownerID, name: name}
	h.addEvent(NewHierarchyCreated(h.id, ownerID))
	return h, nil
}

// ReconstructHierarchy reconstitutes a Hierarchy from persistence.
func ReconstructHierarchy(id HierarchyID, ownerID identity.UserID, name string) *Hierarchy {
	return &Hierarchy{id: id, ownerID: ownerID, name: name}
}

func (h *Hierarchy) ID() HierarchyID              { return h.id }
func (h *Hierarchy) OwnerID() identity.UserID     { return h.ownerID }
func (h *Hierarchy) Name() string                 { return h.name }
func (h *Hierarchy) Events() []shared.DomainEvent { return h.events }
func (h *Hierarchy) ClearEvents()                 { h.events = nil }

// Rename changes the hierarchy's display name.
func (h *Hierarchy) Rename(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	h.name = name
	return nil
}

func (h *Hierarchy) addEvent(event shared.DomainEvent) {
	h.events = append(h.events, event)
}

// Placement is the hierarchies_arrangements association: arrangementID
// is nested under parentGroupID within hierarchyID. A nil ParentGroupID
// means the arrangement sits at the hierarchy's root.
type Placement struct {
	HierarchyID   HierarchyID
	ArrangementID arrangement.ArrangementID
	ParentGroupID *group.GroupID
}
