package tag

import (
	"context"

	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
)

// GroupRepository defines the interface for persisting and retrieving
// TagGroup aggregates.
type GroupRepository interface {
	NextID() TagGroupID

	// FindByID retrieves a tag group by its ID.
	// Returns shared.ErrTagGroupNotFound if it doesn't exist.
	FindByID(ctx context.Context, id TagGroupID) (*TagGroup, error)

	// FindByOwner retrieves all tag groups owned by a user.
	FindByOwner(ctx context.Context, ownerID identity.UserID) ([]*TagGroup, error)

	Save(ctx context.Context, group *TagGroup) error
	Delete(ctx context.Context, id TagGroupID) error
	ExistsByID(ctx context.Context, id TagGroupID) (bool, error)
}

// Repository defines the interface for persisting and retrieving Tag
// aggregates, and the picture<->tag association.
type Repository interface {
	NextID() TagID

	// FindByID retrieves a tag by its ID.
	// Returns shared.ErrTagNotFound if it doesn't exist.
	FindByID(ctx context.Context, id TagID) (*Tag, error)

	// FindByGroup retrieves every tag belonging to a tag group, in no
	// particular order.
	FindByGroup(ctx context.Context, groupID TagGroupID) ([]*Tag, error)

	Save(ctx context.Context, t *Tag) error
	Delete(ctx context.Context, id TagID) error
	ExistsByID(ctx context.Context, id TagID) (bool, error)
}

// PictureTagRepository manages the many-to-many pictures_tags association.
type PictureTagRepository interface {
	// Assign attaches tagID to pictureID. Idempotent.
	Assign(ctx context.Context, pictureID picture.PictureID, tagID TagID) error

	// Unassign detaches tagID from pictureID. Idempotent.
	Unassign(ctx context.Context, pictureID picture.PictureID, tagID TagID) error

	// TagsForPicture returns every TagID assigned to pictureID.
	TagsForPicture(ctx context.Context, pictureID picture.PictureID) ([]TagID, error)

	// PicturesForTag returns every picture ID tagged with tagID.
	PicturesForTag(ctx context.Context, tagID TagID) ([]picture.PictureID, error)
}
