package tag

import (
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// TagGroupCreated is emitted when a new tag group is created.
type TagGroupCreated struct {
	shared.BaseEvent
	TagGroupID TagGroupID
	OwnerID    identity.UserID
}

// NewTagGroupCreated constructs a TagGroupCreated event.
func NewTagGroupCreated(id TagGroupID, ownerID identity.UserID) *TagGroupCreated {
	return &TagGroupCreated{
		BaseEvent:  shared.NewBaseEvent("tag.group_created", id.String()),
		TagGroupID: id,
		OwnerID:    ownerID,
	}
}

// EventType returns the event type identifier.
func (e *TagGroupCreated) EventType() string { return "tag.group_created" }

// TagCreated is emitted when a new tag is created within a tag group.
type TagCreated struct {
	shared.BaseEvent
	TagID      TagID
	TagGroupID TagGroupID
}

// NewTagCreated constructs a TagCreated event.
func NewTagCreated(id TagID, tagGroupID TagGroupID) *TagCreated {
	return &TagCreated{
		BaseEvent:  shared.NewBaseEvent("tag.created", id.String()),
		TagID:      id,
		TagGroupID: tagGroupID,
	}
}

// EventType returns the event type identifier.
func (e *TagCreated) EventType() string { return "tag.created" }
