package arrangement

import (
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// ArrangementCreated is emitted when a new arrangement is created.
type ArrangementCreated struct {
	shared.BaseEvent
	ArrangementID ArrangementID
	OwnerID       identity.UserID
}

// NewArrangementCreated constructs an ArrangementCreated event.
func NewArrangementCreated(id ArrangementID, ownerID identity.UserID) *ArrangementCreated {
	return &ArrangementCreated{
		BaseEvent:     shared.NewBaseEvent("arrangement.created", id.String()),
		ArrangementID: id,
		OwnerID:       ownerID,
	}
}

// EventType returns the event type identifier.
func (e *ArrangementCreated) EventType() string { return "arrangement.created" }

// ArrangementStrategyUpdated is emitted when an arrangement's strategy is
// replaced, which triggers the Re-evaluation Coordinator's
// ArrangementEdited entry point.
type ArrangementStrategyUpdated struct {
	shared.BaseEvent
	ArrangementID ArrangementID
}

// NewArrangementStrategyUpdated constructs an ArrangementStrategyUpdated event.
func NewArrangementStrategyUpdated(id ArrangementID) *ArrangementStrategyUpdated {
	return &ArrangementStrategyUpdated{
		BaseEvent:     shared.NewBaseEvent("arrangement.strategy_updated", id.String()),
		ArrangementID: id,
	}
}

// EventType returns the event type identifier.
func (e *ArrangementStrategyUpdated) EventType() string { return "arrangement.strategy_updated" }
