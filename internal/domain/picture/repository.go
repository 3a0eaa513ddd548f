package picture

import (
	"context"

	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// Repository defines the interface for persisting and retrieving Picture
// aggregates. Implementations reside in the infrastructure layer.
type Repository interface {
	// NextID generates a new unique PictureID.
	NextID() PictureID

	// FindByID retrieves a picture by its ID.
	// Returns shared.ErrNotFound if the picture doesn't exist.
	FindByID(ctx context.Context, id PictureID) (*Picture, error)

	// FindByIDs retrieves every picture whose ID is in ids, skipping any
	// that don't exist. Order is unspecified.
	FindByIDs(ctx context.Context, ids []PictureID) ([]*Picture, error)

	// FindByOwner retrieves all non-deleted pictures owned by a user with
	// pagination.
	FindByOwner(ctx context.Context, ownerID identity.UserID, pagination shared.Pagination) ([]*Picture, int64, error)

	// FindAllIDsByOwner retrieves every non-deleted picture ID owned by a
	// user, unpaginated. Used by the Re-evaluation Coordinator's
	// arrangement_edited entry point, which re-runs a strategy against the
	// owner's entire library rather than a page of it.
	FindAllIDsByOwner(ctx context.Context, ownerID identity.UserID) ([]PictureID, error)

	// Save persists a picture (insert or update).
	Save(ctx context.Context, pic *Picture) error

	// Delete permanently removes a picture row. Prefer Picture.SoftDelete
	// plus Save for normal deletion flows.
	Delete(ctx context.Context, id PictureID) error

	// ExistsByID checks if a picture exists.
	ExistsByID(ctx context.Context, id PictureID) (bool, error)
}
