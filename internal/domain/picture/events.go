package picture

import "github.com/archypix/arrangement-engine/internal/domain/shared"

// PictureRenamed is emitted when a picture's display name changes.
type PictureRenamed struct {
	shared.BaseEvent
	PictureID PictureID
	Name      string
}

// NewPictureRenamed constructs a PictureRenamed event.
func NewPictureRenamed(id PictureID, name string) *PictureRenamed {
	return &PictureRenamed{
		BaseEvent: shared.NewBaseEvent("picture.renamed", id.String()),
		PictureID: id,
		Name:      name,
	}
}

// EventType returns the event type identifier.
func (e *PictureRenamed) EventType() string { return "picture.renamed" }

// PictureExifUpdated is emitted when a picture's EXIF metadata is
// (re)extracted. Dependent arrangements using ExifValuesGrouping or
// ExifIntervalGrouping may need re-evaluation as a result.
type PictureExifUpdated struct {
	shared.BaseEvent
	PictureID PictureID
}

// NewPictureExifUpdated constructs a PictureExifUpdated event.
func NewPictureExifUpdated(id PictureID) *PictureExifUpdated {
	return &PictureExifUpdated{
		BaseEvent: shared.NewBaseEvent("picture.exif_updated", id.String()),
		PictureID: id,
	}
}

// EventType returns the event type identifier.
func (e *PictureExifUpdated) EventType() string { return "picture.exif_updated" }

// PictureDeleted is emitted when a picture is soft-deleted.
type PictureDeleted struct {
	shared.BaseEvent
	PictureID PictureID
}

// NewPictureDeleted constructs a PictureDeleted event.
func NewPictureDeleted(id PictureID) *PictureDeleted {
	return &PictureDeleted{
		BaseEvent: shared.NewBaseEvent("picture.deleted", id.String()),
		PictureID: id,
	}
}

// EventType returns the event type identifier.
func (e *PictureDeleted) EventType() string { return "picture.deleted" }
