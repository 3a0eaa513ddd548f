// Package group provides the Group aggregate: the actual bucket of
// pictures produced (for automatic arrangements) or maintained directly
// (for manual arrangements) under an Arrangement, plus the sharing and
// ungroup-tracking types that travel with it.
package group

import (
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// Group is one classification bucket within an Arrangement.
type Group struct {
	id                    GroupID
	arrangementID         arrangement.ArrangementID
	name                  string
	shareMatchConversion  bool
	toBeDeleted           bool
	events                []shared.DomainEvent
}

// NewGroup creates a new Group under arrangementID. A freshly created
// group is never toBeDeleted.
func NewGroup(arrangementID arrangement.ArrangementID, name string) (*Group, error) {
	if arrangementID.IsZero() {
		return nil, fmt.Errorf("%w: arrangement id is required", shared.ErrInvalidInput)
	}
	name = shared.SanitizeName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	g := &Group{id: NewGroupID(), arrangementID: arrangementID, name: name}
	g.addEvent(NewGroupCreated(g.id, arrangementID))
	return g, nil
}

// ReconstructGroup reconstitutes a Group from persistence.
//
// toBeDeleted is carried even though original_source's schema.rs table
// definition for `groups` has no such column (only the Rust struct
// Group does) — SPEC_FULL.md's migration adds the column back, since
// without it a group mid-deletion (pictures being moved out before the
// row itself is dropped) has no way to signal "don't classify new
// pictures into me" to the coordinator.
func ReconstructGroup(id GroupID, arrangementID arrangement.ArrangementID, name string, shareMatchConversion, toBeDeleted bool) *Group {
	return &Group{
		id:                   id,
		arrangementID:        arrangementID,
		name:                 name,
		shareMatchConversion: shareMatchConversion,
		toBeDeleted:          toBeDeleted,
	}
}

func (g *Group) ID() GroupID                         { return g.id }
func (g *Group) ArrangementID() arrangement.ArrangementID { return g.arrangementID }
func (g *Group) Name() string                        { return g.name }
func (g *Group) ShareMatchConversion() bool           { return g.shareMatchConversion }
func (g *Group) ToBeDeleted() bool                    { return g.toBeDeleted }
func (g *Group) Events() []shared.DomainEvent         { return g.events }
func (g *Group) ClearEvents()                         { g.events = nil }

// Rename changes the group's display name. Only meaningful for groups
// under a manual arrangement, or for a user override on an automatic
// one; classification never calls this itself.
func (g *Group) Rename(name string) error {
	name = shared.SanitizeName(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	g.name = name
	return nil
}

// MarkForDeletion tombstones the group: re-evaluation will stop
// classifying new pictures into it and the coordinator will finish
// removing its remaining membership before the row itself is deleted.
// Idempotent.
func (g *Group) MarkForDeletion() {
	if g.toBeDeleted {
		return
	}
	g.toBeDeleted = true
	g.addEvent(NewGroupMarkedForDeletion(g.id))
}

func (g *Group) addEvent(event shared.DomainEvent) {
	g.events = append(g.events, event)
}
