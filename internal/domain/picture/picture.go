// Package picture provides the Picture aggregate: an owned photograph with
// its EXIF-derived metadata, the attribute the Filter Predicate Algebra and
// Strategy Variants classify pictures against.
package picture

import (
	"fmt"
	"time"

	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// Orientation mirrors the EXIF orientation tag, following
// original_source's PictureOrientation enum.
type Orientation string

const (
	OrientationUnspecified            Orientation = "unspecified"
	OrientationNormal                 Orientation = "normal"
	OrientationHorizontalFlip         Orientation = "horizontal_flip"
	OrientationRotate180              Orientation = "rotate_180"
	OrientationVerticalFlip           Orientation = "vertical_flip"
	OrientationRotate90HorizontalFlip Orientation = "rotate_90_horizontal_flip"
	OrientationRotate90              Orientation = "rotate_90"
	OrientationRotate90VerticalFlip  Orientation = "rotate_90_vertical_flip"
	OrientationRotate270             Orientation = "rotate_270"
)

// IsValid reports whether o is one of the known orientation values.
func (o Orientation) IsValid() bool {
	switch o {
	case OrientationUnspecified, OrientationNormal, OrientationHorizontalFlip,
		OrientationRotate180, OrientationVerticalFlip, OrientationRotate90HorizontalFlip,
		OrientationRotate90, OrientationRotate90VerticalFlip, OrientationRotate270:
		return true
	default:
		return false
	}
}

// Exif holds the nullable EXIF-derived fields a Picture carries. Every
// field is a pointer: nil means the extractor could not read that field,
// which the Filter Predicate Algebra must treat as SQL NULL (three-valued
// logic), never as a sentinel zero value.
type Exif struct {
	CameraBrand     *string
	CameraModel     *string
	FocalLengthMM   *float64
	ExposureTimeNum *int64
	ExposureTimeDen *int64
	ISOSpeed        *int64
	FNumber         *float64
	Latitude        *float64
	Longitude       *float64
	AltitudeMeters  *int64
}

// Picture is the aggregate root for a single owned photograph.
type Picture struct {
	id           PictureID
	ownerID      identity.UserID
	authorID     identity.UserID
	name         string
	comment      string
	copied       bool
	width        int64
	height       int64
	orientation  Orientation
	exif         Exif
	createdAt    time.Time
	editedAt     time.Time
	deletedAt    *time.Time
	events       []shared.DomainEvent
}

// NewPicture creates a new Picture owned by ownerID, authored by authorID
// (they differ when a shared picture is copied into another user's
// library). width and height are the decoded pixel dimensions.
func NewPicture(ownerID, authorID identity.UserID, name string, width, height int64) (*Picture, error) {
	if ownerID.IsZero() {
		return nil, fmt.Errorf("%w: owner id is required", shared.ErrInvalidInput)
	}
	if authorID.IsZero() {
		return nil, fmt.Errorf("%w: author id is required", shared.ErrInvalidInput)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width and height must be positive", shared.ErrInvalidInput)
	}

	now := time.Now().UTC()
	return &Picture{
		id:          NewPictureID(),
		ownerID:     ownerID,
		authorID:    authorID,
		name:        name,
		orientation: OrientationUnspecified,
		width:       width,
		height:      height,
		createdAt:   now,
		editedAt:    now,
	}, nil
}

// ReconstructPicture reconstitutes a Picture from persistence without
// validation or events.
func ReconstructPicture(
	id PictureID,
	ownerID, authorID identity.UserID,
	name, comment string,
	copied bool,
	width, height int64,
	orientation Orientation,
	exif Exif,
	createdAt, editedAt time.Time,
	deletedAt *time.Time,
) *Picture {
	return &Picture{
		id:          id,
		ownerID:     ownerID,
		authorID:    authorID,
		name:        name,
		comment:     comment,
		copied:      copied,
		width:       width,
		height:      height,
		orientation: orientation,
		exif:        exif,
		createdAt:   createdAt,
		editedAt:    editedAt,
		deletedAt:   deletedAt,
	}
}

func (p *Picture) ID() PictureID               { return p.id }
func (p *Picture) OwnerID() identity.UserID    { return p.ownerID }
func (p *Picture) AuthorID() identity.UserID   { return p.authorID }
func (p *Picture) Name() string                { return p.name }
func (p *Picture) Comment() string             { return p.comment }
func (p *Picture) Copied() bool                { return p.copied }
func (p *Picture) Width() int64                { return p.width }
func (p *Picture) Height() int64               { return p.height }
func (p *Picture) Orientation() Orientation    { return p.orientation }
func (p *Picture) Exif() Exif                  { return p.exif }
func (p *Picture) CreatedAt() time.Time        { return p.createdAt }
func (p *Picture) EditedAt() time.Time         { return p.editedAt }
func (p *Picture) DeletedAt() *time.Time       { return p.deletedAt }
func (p *Picture) IsDeleted() bool             { return p.deletedAt != nil }

// Events returns the domain events recorded on this aggregate.
func (p *Picture) Events() []shared.DomainEvent { return p.events }

// ClearEvents clears recorded domain events.
func (p *Picture) ClearEvents() { p.events = nil }

// Rename changes the picture's display name.
func (p *Picture) Rename(name string) error {
	if len(name) > 255 {
		return fmt.Errorf("%w: name cannot exceed 255 characters", shared.ErrInvalidInput)
	}
	p.name = name
	p.editedAt = time.Now().UTC()
	p.addEvent(NewPictureRenamed(p.id, name))
	return nil
}

// ApplyExif replaces the picture's EXIF-derived metadata, as produced by
// an ExifExtractor collaborator. Emits PictureExifUpdated so dependent
// arrangements can be re-evaluated (spec: tags_changed/groups_changed
// analogue for EXIF is folded into pictures_added / a future
// exif_changed entry point extension).
func (p *Picture) ApplyExif(orientation Orientation, exif Exif) error {
	if !orientation.IsValid() {
		return fmt.Errorf("%w: unknown orientation", shared.ErrInvalidInput)
	}
	p.orientation = orientation
	p.exif = exif
	p.editedAt = time.Now().UTC()
	p.addEvent(NewPictureExifUpdated(p.id))
	return nil
}

// SoftDelete marks the picture as deleted without removing its row,
// preserving group/tag membership history.
func (p *Picture) SoftDelete() {
	if p.deletedAt != nil {
		return
	}
	now := time.Now().UTC()
	p.deletedAt = &now
	p.addEvent(NewPictureDeleted(p.id))
}

func (p *Picture) addEvent(event shared.DomainEvent) {
	p.events = append(p.events, event)
}
