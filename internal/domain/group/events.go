package group

import (
	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// GroupCreated is emitted when a new group is created under an
// arrangement.
type GroupCreated struct {
	shared.BaseEvent
	GroupID       GroupID
	ArrangementID arrangement.ArrangementID
}

func NewGroupCreated(id GroupID, arrangementID arrangement.ArrangementID) *GroupCreated {
	return &GroupCreated{
		BaseEvent:     shared.NewBaseEvent("group.created", id.String()),
		GroupID:       id,
		ArrangementID: arrangementID,
	}
}

func (e *GroupCreated) EventType() string { return "group.created" }

// GroupMarkedForDeletion is emitted when a group is tombstoned pending
// its membership being emptied by the coordinator.
type GroupMarkedForDeletion struct {
	shared.BaseEvent
	GroupID GroupID
}

func NewGroupMarkedForDeletion(id GroupID) *GroupMarkedForDeletion {
	return &GroupMarkedForDeletion{
		BaseEvent: shared.NewBaseEvent("group.marked_for_deletion", id.String()),
		GroupID:   id,
	}
}

func (e *GroupMarkedForDeletion) EventType() string { return "group.marked_for_deletion" }

// PictureUngrouped is emitted when a picture is removed from a group
// during re-evaluation (as opposed to the user removing it directly),
// so the coordinator can assemble UngroupRecords for the caller.
type PictureUngrouped struct {
	shared.BaseEvent
	GroupID   GroupID
	PictureID picture.PictureID
}

func NewPictureUngrouped(groupID GroupID, pictureID picture.PictureID) *PictureUngrouped {
	return &PictureUngrouped{
		BaseEvent: shared.NewBaseEvent("group.picture_ungrouped", groupID.String()),
		GroupID:   groupID,
		PictureID: pictureID,
	}
}

func (e *PictureUngrouped) EventType() string { return "group.picture_ungrouped" }
