// Package arrangement provides the Arrangement aggregate and the
// Arrangement Store component: the owned, strategy-driven (or purely
// manual) classification unit pictures are grouped under.
package arrangement

import (
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/filter"
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// Arrangement is the aggregate root that selects pictures (via its own
// selectionFilter), owns a strategy (or, if Strategy is nil, is purely
// manual), and the set of Groups it classifies selected pictures into.
//
// selectionFilter and strategy are independent: selectionFilter narrows
// which pictures the arrangement considers at all (evaluated first, by
// the Re-evaluation Coordinator, against the changed picture set); the
// strategy then buckets the surviving candidates into groups.
type Arrangement struct {
	id                    ArrangementID
	ownerID               identity.UserID
	name                  string
	strongMatchConversion bool
	selectionFilter       filter.Filter
	strategy              []byte
	dependencyKind        shared.DependencyKind
	events                []shared.DomainEvent
}

// NewManualArrangement creates an Arrangement with no strategy: its groups
// are created, renamed, and populated directly by the owner rather than by
// classification. selectionFilter may be the zero Filter, in which case
// every owned picture is a candidate.
func NewManualArrangement(ownerID identity.UserID, name string) (*Arrangement, error) {
	if ownerID.IsZero() {
		return nil, fmt.Errorf("%w: owner id is required", shared.ErrInvalidInput)
	}
	name = shared.SanitizeName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	a := &Arrangement{id: NewArrangementID(), ownerID: ownerID, name: name}
	a.addEvent(NewArrangementCreated(a.id, ownerID))
	return a, nil
}

// NewAutomaticArrangement creates an Arrangement driven by strategy, an
// opaque forward-compatible envelope produced by the strategy package's
// encoder. dependencyKind must be derived from the decoded strategy by the
// caller (internal/domain/strategy.DependencyKind) since this package does
// not know strategy internals.
func NewAutomaticArrangement(ownerID identity.UserID, name string, strategy []byte, dependencyKind shared.DependencyKind) (*Arrangement, error) {
	a, err := NewManualArrangement(ownerID, name)
	if err != nil {
		return nil, err
	}
	if len(strategy) == 0 {
		return nil, fmt.Errorf("%w: strategy payload is empty", shared.ErrInvalidInput)
	}
	a.strategy = strategy
	a.dependencyKind = dependencyKind
	return a, nil
}

// ReconstructArrangement reconstitutes an Arrangement from persistence.
func ReconstructArrangement(
	id ArrangementID,
	ownerID identity.UserID,
	name string,
	strongMatchConversion bool,
	selectionFilter filter.Filter,
	strategy []byte,
	dependencyKind shared.DependencyKind,
) *Arrangement {
	return &Arrangement{
		id:                    id,
		ownerID:               ownerID,
		name:                  name,
		strongMatchConversion: strongMatchConversion,
		selectionFilter:       selectionFilter,
		strategy:              strategy,
		dependencyKind:        dependencyKind,
	}
}

func (a *Arrangement) ID() ArrangementID                     { return a.id }
func (a *Arrangement) OwnerID() identity.UserID              { return a.ownerID }
func (a *Arrangement) Name() string                          { return a.name }
func (a *Arrangement) SelectionFilter() filter.Filter        { return a.selectionFilter }
func (a *Arrangement) Strategy() []byte                      { return a.strategy }
func (a *Arrangement) IsManual() bool                        { return len(a.strategy) == 0 }
func (a *Arrangement) DependencyKind() shared.DependencyKind { return a.dependencyKind }
func (a *Arrangement) Events() []shared.DomainEvent          { return a.events }
func (a *Arrangement) ClearEvents()                          { a.events = nil }

// SetSelectionFilter replaces the arrangement's top-level candidate
// filter. Unlike UpdateStrategy this never affects the dependency graph
// directly — a selection filter may itself reference other arrangements'
// groups (IncludeGroups leaves), but those are folded into dependencyKind
// via UpdateStrategy's caller computing the union of strategy and
// selectionFilter dependency kinds before calling it.
func (a *Arrangement) SetSelectionFilter(f filter.Filter) {
	a.selectionFilter = f
}

// StrongMatchConversion reports whether shared copies of this
// arrangement's groups convert the recipient's matching group into a
// strong (non-reference) copy on first share-accept, rather than mirroring
// membership live. Carried from the persisted schema; owned by the shared
// group acceptance flow, not by re-evaluation.
func (a *Arrangement) StrongMatchConversion() bool { return a.strongMatchConversion }

// Rename changes the arrangement's display name.
func (a *Arrangement) Rename(name string) error {
	name = shared.SanitizeName(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	a.name = name
	return nil
}

// UpdateStrategy replaces the arrangement's strategy (or clears it,
// converting the arrangement to manual if strategy is nil) and its derived
// dependency kind. Callers must run this through
// arrangementstore.Store.UpdateStrategy rather than calling it directly, so the
// dependant-arrangement derivation and cycle check run.
func (a *Arrangement) UpdateStrategy(strategy []byte, dependencyKind shared.DependencyKind) {
	a.strategy = strategy
	a.dependencyKind = dependencyKind
	a.addEvent(NewArrangementStrategyUpdated(a.id))
}

func (a *Arrangement) addEvent(event shared.DomainEvent) {
	a.events = append(a.events, event)
}
