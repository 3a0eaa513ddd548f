package arrangement

import (
	"context"

	"github.com/archypix/arrangement-engine/internal/domain/identity"
)

// Repository defines the interface for persisting and retrieving
// Arrangement aggregates.
type Repository interface {
	NextID() ArrangementID

	// FindByID retrieves an arrangement by its ID.
	// Returns shared.ErrArrangementNotFound if it doesn't exist.
	FindByID(ctx context.Context, id ArrangementID) (*Arrangement, error)

	// FindByOwner retrieves every arrangement owned by a user.
	FindByOwner(ctx context.Context, ownerID identity.UserID) ([]*Arrangement, error)

	Save(ctx context.Context, a *Arrangement) error
	Delete(ctx context.Context, id ArrangementID) error
	ExistsByID(ctx context.Context, id ArrangementID) (bool, error)
}
