package group

import (
	"context"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
)

// Repository persists and retrieves Group aggregates.
type Repository interface {
	NextID() GroupID
	FindByID(ctx context.Context, id GroupID) (*Group, error)
	FindByArrangement(ctx context.Context, arrangementID arrangement.ArrangementID) ([]*Group, error)
	Save(ctx context.Context, g *Group) error
	Delete(ctx context.Context, id GroupID) error
	ExistsByID(ctx context.Context, id GroupID) (bool, error)
}

// MembershipRepository manages group/picture associations.
type MembershipRepository interface {
	Add(ctx context.Context, groupID GroupID, pictureID picture.PictureID) error
	Remove(ctx context.Context, groupID GroupID, pictureID picture.PictureID) error
	PicturesForGroup(ctx context.Context, groupID GroupID) ([]picture.PictureID, error)
	GroupsForPicture(ctx context.Context, pictureID picture.PictureID) ([]GroupID, error)
	Contains(ctx context.Context, groupID GroupID, pictureID picture.PictureID) (bool, error)
}

// SharedGroupRepository persists and retrieves SharedGroup entities.
type SharedGroupRepository interface {
	FindByRecipientAndGroup(ctx context.Context, recipientID identity.UserID, groupID GroupID) (*SharedGroup, error)
	FindByGroup(ctx context.Context, groupID GroupID) ([]*SharedGroup, error)
	FindByRecipient(ctx context.Context, recipientID identity.UserID) ([]*SharedGroup, error)
	Save(ctx context.Context, s *SharedGroup) error
	Delete(ctx context.Context, recipientID identity.UserID, groupID GroupID) error
}
