// Package arrangementstore implements the Arrangement Store component: the
// orchestration layer in front of the arrangement aggregate's repository
// that enforces the dependency-cycle policy on every strategy edit and
// derives the dependant-arrangement read-model the scheduler consumes.
//
// It lives alongside the scheduler rather than inside internal/domain/arrangement
// itself, since the cycle check it performs on every UpdateStrategy call
// requires the scheduler's topological sort, and the scheduler in turn
// operates over arrangement.Details — putting the cycle check in the
// arrangement package would create an import cycle.
package arrangementstore

import (
	"context"
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
	"github.com/archypix/arrangement-engine/internal/domain/strategy"
	"github.com/archypix/arrangement-engine/internal/engine/scheduler"
	"github.com/rs/zerolog"
)

// AttributeSource is the collaborator bundle a strategy.Grouping needs to
// materialize or reconcile its groups outside of a full classification
// pass — the same union the Re-evaluation Coordinator threads through
// GroupPictures, declared again here (rather than imported) since
// coordinator already imports this package and a cross-import would
// cycle.
type AttributeSource interface {
	strategy.PictureFilterer
	strategy.TagReader
	strategy.ExifValueReader
	strategy.LocationSource
}

// Store is the Arrangement Store component.
type Store struct {
	repo   arrangement.Repository
	groups group.Repository
	source AttributeSource
	policy scheduler.CyclePolicy
	logger zerolog.Logger
}

// New constructs a Store. policy governs what UpdateStrategy does when an
// edit would introduce a dependency cycle. source may be nil for a Store
// that only ever handles manual arrangements.
func New(repo arrangement.Repository, groups group.Repository, source AttributeSource, policy scheduler.CyclePolicy, logger zerolog.Logger) *Store {
	return &Store{repo: repo, groups: groups, source: source, policy: policy, logger: logger}
}

// Create persists a brand new arrangement (manual or automatic — the
// caller builds it via arrangement.NewManualArrangement or
// arrangement.NewAutomaticArrangement before calling Create), then, for
// an automatic arrangement, runs its strategy's Create step so the
// arrangement's groups exist before the first re-evaluation pass.
func (s *Store) Create(ctx context.Context, a *arrangement.Arrangement) error {
	if err := s.repo.Save(ctx, a); err != nil {
		return err
	}
	if a.IsManual() {
		return nil
	}

	g, err := strategy.Decode(a.Strategy())
	if err != nil {
		return fmt.Errorf("decode strategy for arrangement %s: %w", a.ID(), err)
	}
	if err := g.Create(ctx, s.groups, s.source, a.ID()); err != nil {
		return fmt.Errorf("materialize groups for arrangement %s: %w", a.ID(), err)
	}
	encoded, err := g.Encode()
	if err != nil {
		return fmt.Errorf("encode initialized strategy for arrangement %s: %w", a.ID(), err)
	}
	a.UpdateStrategy(encoded, a.DependencyKind())
	return s.repo.Save(ctx, a)
}

// EditStrategy implements spec.md §4.2's edit reconciliation: it decodes
// id's current strategy and newStrategy, tombstones every group the
// current one owns that newStrategy doesn't, lets newStrategy
// materialize whatever it owns that doesn't exist yet, then persists the
// reconciled result through UpdateStrategy (cycle check included). Use
// this rather than UpdateStrategy directly whenever the caller is the
// owner editing their strategy request, as opposed to the coordinator
// persisting groups a classification pass lazily created.
func (s *Store) EditStrategy(ctx context.Context, id arrangement.ArrangementID, newStrategy []byte, dependencyKind shared.DependencyKind) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find arrangement %s: %w", id, err)
	}
	if a.IsManual() {
		return fmt.Errorf("%w: arrangement %s has no strategy to reconcile", shared.ErrInvalidInput, id)
	}

	oldGrouping, err := strategy.Decode(a.Strategy())
	if err != nil {
		return fmt.Errorf("decode current strategy for arrangement %s: %w", id, err)
	}
	newGrouping, err := strategy.Decode(newStrategy)
	if err != nil {
		return fmt.Errorf("decode replacement strategy for arrangement %s: %w", id, err)
	}
	if err := newGrouping.Edit(ctx, s.groups, s.source, id, oldGrouping); err != nil {
		return fmt.Errorf("reconcile groups for arrangement %s: %w", id, err)
	}
	reconciled, err := newGrouping.Encode()
	if err != nil {
		return fmt.Errorf("encode reconciled strategy for arrangement %s: %w", id, err)
	}

	return s.UpdateStrategy(ctx, id, reconciled, dependencyKind)
}

// Delete tombstones every group an automatic arrangement's strategy
// owns, then removes the arrangement itself. A manual arrangement has no
// strategy-owned groups to tombstone.
func (s *Store) Delete(ctx context.Context, id arrangement.ArrangementID) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find arrangement %s: %w", id, err)
	}
	if !a.IsManual() {
		g, err := strategy.Decode(a.Strategy())
		if err != nil {
			return fmt.Errorf("decode strategy for arrangement %s: %w", id, err)
		}
		if err := g.Delete(ctx, s.groups); err != nil {
			return fmt.Errorf("tombstone groups for arrangement %s: %w", id, err)
		}
	}
	return s.repo.Delete(ctx, id)
}

// UpdateStrategy replaces an arrangement's strategy and dependency kind,
// then re-derives the full dependant-arrangement graph for the owner and
// checks it for cycles under s.policy. A CyclePolicyRejectEdit store
// returns scheduler.ErrCycleDetected (and does not persist the edit) when
// the new strategy would introduce one; a CyclePolicyLogAndContinue store
// logs a warning and persists the edit regardless.
func (s *Store) UpdateStrategy(ctx context.Context, id arrangement.ArrangementID, strategy []byte, dependencyKind shared.DependencyKind) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find arrangement %s: %w", id, err)
	}

	owned, err := s.repo.FindByOwner(ctx, a.OwnerID())
	if err != nil {
		return fmt.Errorf("find owner arrangements: %w", err)
	}

	trial := cloneWithStrategy(owned, id, strategy, dependencyKind)
	details := arrangement.DeriveDependants(trial)

	if _, err := scheduler.TopologicalSort(details, s.policy, s.logger); err != nil {
		return fmt.Errorf("arrangement %s: %w", id, err)
	}

	a.UpdateStrategy(strategy, dependencyKind)
	return s.repo.Save(ctx, a)
}

// cloneWithStrategy returns owned with the arrangement matching id given
// the trial strategy/dependencyKind, so the cycle check runs against the
// graph the edit would produce rather than the graph that exists today.
func cloneWithStrategy(owned []*arrangement.Arrangement, id arrangement.ArrangementID, strategy []byte, dependencyKind shared.DependencyKind) []*arrangement.Arrangement {
	trial := make([]*arrangement.Arrangement, len(owned))
	for i, a := range owned {
		if a.ID().Equals(id) {
			clone := arrangement.ReconstructArrangement(a.ID(), a.OwnerID(), a.Name(), a.StrongMatchConversion(), a.SelectionFilter(), strategy, dependencyKind)
			trial[i] = clone
			continue
		}
		trial[i] = a
	}
	return trial
}

// ListDetails returns the Details read-model — every arrangement the
// owner has, each with its derived DependantArrangementIDs — for the
// scheduler and the re-evaluation coordinator to consume.
func (s *Store) ListDetails(ctx context.Context, ownerID identity.UserID) ([]arrangement.Details, error) {
	owned, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find owner arrangements: %w", err)
	}
	return arrangement.DeriveDependants(owned), nil
}
