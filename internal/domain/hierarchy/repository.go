package hierarchy

import (
	"context"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/identity"
)

// Repository persists and retrieves Hierarchy aggregates.
type Repository interface {
	NextID() HierarchyID
	FindByID(ctx context.Context, id HierarchyID) (*Hierarchy, error)
	FindByOwner(ctx context.Context, ownerID identity.UserID) ([]*Hierarchy, error)
	Save(ctx context.Context, h *Hierarchy) error
	Delete(ctx context.Context, id HierarchyID) error
}

// PlacementRepository manages hierarchies_arrangements rows.
type PlacementRepository interface {
	FindByHierarchy(ctx context.Context, hierarchyID HierarchyID) ([]Placement, error)
	FindByArrangement(ctx context.Context, arrangementID arrangement.ArrangementID) ([]Placement, error)
	Save(ctx context.Context, p Placement) error
	Delete(ctx context.Context, hierarchyID HierarchyID, arrangementID arrangement.ArrangementID) error
}
