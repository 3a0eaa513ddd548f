package hierarchy

import (
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// HierarchyCreated is emitted when a new hierarchy is created.
type HierarchyCreated struct {
	shared.BaseEvent
	HierarchyID HierarchyID
	OwnerID     identity.UserID
}

func NewHierarchyCreated(id HierarchyID, ownerID identity.UserID) *HierarchyCreated {
	return &HierarchyCreated{
		BaseEvent:   shared.NewBaseEvent("hierarchy.created", id.String()),
		HierarchyID: id,
		OwnerID:     ownerID,
	}
}

func (e *HierarchyCreated) EventType() string { return "hierarchy.created" }
