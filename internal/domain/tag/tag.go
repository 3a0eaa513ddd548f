package tag

import (
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// Tag is a single label within a TagGroup. IsDefault marks the tag
// auto-applied to pictures that otherwise wouldn't match any tag in a
// required group.
type Tag struct {
	id         TagID
	tagGroupID TagGroupID
	name       string
	color      string
	isDefault  bool
	events     []shared.DomainEvent
}

// NewTag creates a new Tag within tagGroupID.
func NewTag(tagGroupID TagGroupID, name, color string, isDefault bool) (*Tag, error) {
	if tagGroupID.IsZero() {
		return nil, fmt.Errorf("%w: tag group id is required", shared.ErrInvalidInput)
	}
	name = shared.SanitizeName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	t := &Tag{
		id:         NewTagID(),
		tagGroupID: tagGroupID,
		name:       name,
		color:      color,
		isDefault:  isDefault,
	}
	t.addEvent(NewTagCreated(t.id, tagGroupID))
	return t, nil
}

// ReconstructTag reconstitutes a Tag from persistence.
func ReconstructTag(id TagID, tagGroupID TagGroupID, name, color string, isDefault bool) *Tag {
	return &Tag{id: id, tagGroupID: tagGroupID, name: name, color: color, isDefault: isDefault}
}

func (t *Tag) ID() TagID                   { return t.id }
func (t *Tag) TagGroupID() TagGroupID      { return t.tagGroupID }
func (t *Tag) Name() string                { return t.name }
func (t *Tag) Color() string               { return t.color }
func (t *Tag) IsDefault() bool             { return t.isDefault }
func (t *Tag) Events() []shared.DomainEvent { return t.events }
func (t *Tag) ClearEvents()                { t.events = nil }

func (t *Tag) addEvent(event shared.DomainEvent) {
	t.events = append(t.events, event)
}
