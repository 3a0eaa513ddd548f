// Package tag provides the TagGroup/Tag aggregates: user-defined
// vocabularies used both for direct picture tagging and as the dependency
// source for TagGrouping strategies.
package tag

import (
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// TagGroup is a named collection of mutually related Tags, owned by a
// single user. Multiple controls whether a picture may carry more than
// one tag from this group at once; Required marks whether every picture
// is expected to carry a tag from this group. Required is stored and
// persisted; TagGrouping does not read it.
type TagGroup struct {
	id       TagGroupID
	ownerID  identity.UserID
	name     string
	multiple bool
	required bool
	events   []shared.DomainEvent
}

// NewTagGroup creates a new TagGroup.
func NewTagGroup(ownerID identity.UserID, name string, multiple, required bool) (*TagGroup, error) {
	if ownerID.IsZero() {
		return nil, fmt.Errorf("%w: owner id is required", shared.ErrInvalidInput)
	}
	name = shared.SanitizeName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	tg := &TagGroup{
		id:       NewTagGroupID(),
		ownerID:  ownerID,
		name:     name,
		multiple: multiple,
		required: required,
	}
	tg.addEvent(NewTagGroupCreated(tg.id, ownerID))
	return tg, nil
}

// ReconstructTagGroup reconstitutes a TagGroup from persistence.
func ReconstructTagGroup(id TagGroupID, ownerID identity.UserID, name string, multiple, required bool) *TagGroup {
	return &TagGroup{id: id, ownerID: ownerID, name: name, multiple: multiple, required: required}
}

func (g *TagGroup) ID() TagGroupID            { return g.id }
func (g *TagGroup) OwnerID() identity.UserID  { return g.ownerID }
func (g *TagGroup) Name() string              { return g.name }
func (g *TagGroup) Multiple() bool            { return g.multiple }
func (g *TagGroup) Required() bool            { return g.required }
func (g *TagGroup) Events() []shared.DomainEvent { return g.events }
func (g *TagGroup) ClearEvents()              { g.events = nil }

// Rename changes the tag group's display name.
func (g *TagGroup) Rename(name string) error {
	name = shared.SanitizeName(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	g.name = name
	return nil
}

// ValidateAssignment checks that assigning tagCount tags from this group to
// a single picture respects the Multiple invariant.
func (g *TagGroup) ValidateAssignment(tagCount int) error {
	if !g.multiple && tagCount > 1 {
		return fmt.Errorf("%w: tag group %s does not allow multiple tags per picture", shared.ErrInvalidInput, g.id)
	}
	return nil
}

func (g *TagGroup) addEvent(event shared.DomainEvent) {
	g.events = append(g.events, event)
}
