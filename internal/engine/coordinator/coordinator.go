// Package coordinator implements the Re-evaluation Coordinator: the four
// entry points that re-run affected arrangements' strategies whenever
// pictures, tags, groups, or an arrangement's own strategy change.
package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
	"github.com/archypix/arrangement-engine/internal/domain/strategy"
	"github.com/archypix/arrangement-engine/internal/engine/arrangementstore"
	"github.com/archypix/arrangement-engine/internal/engine/scheduler"
	"github.com/archypix/arrangement-engine/internal/infrastructure/metrics"
	"github.com/rs/zerolog"
)

// AttributeSource is the union of every collaborator the Strategy
// Variants need to classify pictures: filter evaluation, tag
// enumeration, EXIF bucket reads and location clustering. A single
// postgres-backed implementation satisfies all four so the coordinator
// only has to carry one collaborator reference through to
// strategy.Grouping.GroupPictures.
type AttributeSource interface {
	strategy.PictureFilterer
	strategy.TagReader
	strategy.ExifValueReader
	strategy.LocationSource
}

// Coordinator wires the domain repositories and the AttributeSource
// collaborator together to run the four re-evaluation entry points. Each
// entry point is meant to be called inside a single *sqlx.Tx by its
// infrastructure-layer caller; every error this package returns is a
// *shared.EngineError so the caller can decide whether to roll back via
// shared.MustRollback rather than assuming every failure is fatal to the
// transaction.
type Coordinator struct {
	arrangements *arrangementstore.Store
	groups       group.Repository
	memberships  group.MembershipRepository
	sharedGroups group.SharedGroupRepository
	pictures     picture.Repository
	source       AttributeSource
	policy       scheduler.CyclePolicy
	logger       zerolog.Logger
	metrics      *metrics.Collector
}

// SetMetrics attaches a metrics.Collector the coordinator reports
// re-evaluation duration and arrangement throughput to, and hooks the
// scheduler's cycle-degradation log line for cycle_detected_total. Optional;
// a Coordinator with no collector attached skips all instrumentation.
func (c *Coordinator) SetMetrics(collector *metrics.Collector) {
	c.metrics = collector
	c.logger = c.logger.Hook(collector.CycleHook())
}

// New constructs a Coordinator.
func New(
	arrangements *arrangementstore.Store,
	groups group.Repository,
	memberships group.MembershipRepository,
	sharedGroups group.SharedGroupRepository,
	pictures picture.Repository,
	source AttributeSource,
	policy scheduler.CyclePolicy,
	logger zerolog.Logger,
) *Coordinator {
	return &Coordinator{
		arrangements: arrangements,
		groups:       groups,
		memberships:  memberships,
		sharedGroups: sharedGroups,
		pictures:     pictures,
		source:       source,
		policy:       policy,
		logger:       logger,
	}
}

// PicturesAdded re-evaluates every one of userID's arrangements against
// newly-registered pictureIDs, in full dependency order, since a freshly
// added picture could in principle match any arrangement regardless of
// what the arrangement reads. Ungroup recording is disabled: a picture
// that has never belonged anywhere has nothing to be removed from.
func (c *Coordinator) PicturesAdded(ctx context.Context, userID identity.UserID, pictureIDs []picture.PictureID) error {
	defer c.observeDuration("pictures_added", time.Now())
	details, err := c.listDetails(ctx, userID)
	if err != nil {
		return err
	}
	sorted, err := scheduler.TopologicalSort(details, c.policy, c.logger)
	if err != nil {
		return shared.NewEngineError(fmt.Errorf("topological sort: %w", err))
	}
	rec := strategy.NewRecorder(false)
	return c.runAll(ctx, sorted, pictureIDs, rec, "pictures_added")
}

// TagsChanged re-evaluates only the arrangements that could possibly be
// affected by a tag membership change: everything seeded by
// topological_sort_filtered({tags}), plus whatever transitively depends
// on those via group references. Ungroup recording is enabled; every
// recorded removal is applied once all arrangements have run.
func (c *Coordinator) TagsChanged(ctx context.Context, userID identity.UserID, pictureIDs []picture.PictureID) error {
	defer c.observeDuration("tags_changed", time.Now())
	return c.runFiltered(ctx, userID, pictureIDs, shared.DependsOnTags, "tags_changed")
}

// GroupsChanged re-evaluates every arrangement reachable from a
// group-membership change, mirroring TagsChanged's shape but seeded on
// shared.DependsOnGroups.
func (c *Coordinator) GroupsChanged(ctx context.Context, userID identity.UserID, pictureIDs []picture.PictureID) error {
	defer c.observeDuration("groups_changed", time.Now())
	return c.runFiltered(ctx, userID, pictureIDs, shared.DependsOnGroups, "groups_changed")
}

func (c *Coordinator) runFiltered(ctx context.Context, userID identity.UserID, pictureIDs []picture.PictureID, mask shared.DependencyKind, entryPoint string) error {
	details, err := c.listDetails(ctx, userID)
	if err != nil {
		return err
	}
	sorted, err := scheduler.TopologicalSortFiltered(details, mask, nil, c.policy, c.logger)
	if err != nil {
		return shared.NewEngineError(fmt.Errorf("topological sort filtered: %w", err))
	}
	rec := strategy.NewRecorder(true)
	if err := c.runAll(ctx, sorted, pictureIDs, rec, entryPoint); err != nil {
		return err
	}
	return c.applyUngroupRecord(ctx, rec.Records())
}

// ArrangementEdited re-runs arrangementID and every arrangement
// transitively dependent on it (topological_sort_from), against the
// owner's entire non-deleted picture library rather than a narrow
// changed set, since the edit itself may have changed which pictures the
// arrangement's selection filter or strategy now accepts.
func (c *Coordinator) ArrangementEdited(ctx context.Context, userID identity.UserID, arrangementID arrangement.ArrangementID) error {
	defer c.observeDuration("arrangement_edited", time.Now())
	details, err := c.listDetails(ctx, userID)
	if err != nil {
		return err
	}
	sorted, err := scheduler.TopologicalSortFrom(details, []arrangement.ArrangementID{arrangementID}, c.policy, c.logger)
	if err != nil {
		return shared.NewEngineError(fmt.Errorf("topological sort from %s: %w", arrangementID, err))
	}
	universe, err := c.pictures.FindAllIDsByOwner(ctx, userID)
	if err != nil {
		return shared.NewEngineError(fmt.Errorf("list owner's pictures: %w", err))
	}
	rec := strategy.NewRecorder(true)
	if err := c.runAll(ctx, sorted, universe, rec, "arrangement_edited"); err != nil {
		return err
	}
	return c.applyUngroupRecord(ctx, rec.Records())
}

// runAll evaluates each arrangement in sorted against scope (the changed
// picture set, or the owner's full library for arrangement_edited),
// narrowing to each arrangement's own selection filter first.
func (c *Coordinator) runAll(ctx context.Context, sorted []arrangement.Details, scope []picture.PictureID, rec *strategy.Recorder, entryPoint string) error {
	for _, d := range sorted {
		a := d.Arrangement
		if a.IsManual() {
			continue
		}
		candidates, err := c.selectCandidates(ctx, a, scope)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			continue
		}
		if c.metrics != nil {
			c.metrics.RecordArrangementRun(entryPoint)
		}
		if _, err := c.runArrangement(ctx, a, candidates, rec); err != nil {
			return err
		}
	}
	return c.applyMirrorAdds(ctx, rec.Adds())
}

// observeDuration records how long a coordinator entry point took, if a
// metrics.Collector is attached. Intended for `defer c.observeDuration(name, time.Now())`.
func (c *Coordinator) observeDuration(entryPoint string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveReEvaluation(entryPoint, time.Since(start).Seconds())
}

// selectCandidates applies arrangement a's own selection filter to
// scope, corresponding to `arrangement.filter.compile(picture_ids).query()`.
// An arrangement with no selection filter considers the whole scope a
// candidate.
func (c *Coordinator) selectCandidates(ctx context.Context, a *arrangement.Arrangement, scope []picture.PictureID) ([]picture.PictureID, error) {
	f := a.SelectionFilter()
	candidates, err := c.source.FilterPictures(ctx, f, scope)
	if err != nil {
		return nil, shared.NewEngineError(fmt.Errorf("apply selection filter for arrangement %s: %w", a.ID(), err))
	}
	return candidates, nil
}

// runArrangement decodes a's strategy and classifies candidates against
// it, persisting the strategy back if classification lazily created a
// group (did_mutate_strategy). preserveUnicity is read from the decoded
// strategy itself rather than threaded in by the caller, matching
// group_pictures(..., preserve_unicity=strategy.preserve_unicity, ...).
func (c *Coordinator) runArrangement(ctx context.Context, a *arrangement.Arrangement, candidates []picture.PictureID, rec *strategy.Recorder) (bool, error) {
	g, err := strategy.Decode(a.Strategy())
	if err != nil {
		return false, shared.NewEngineError(fmt.Errorf("decode strategy for arrangement %s: %w", a.ID(), err))
	}

	mutated, err := g.GroupPictures(ctx, c.groups, c.memberships, c.source, a.ID(), g.PreserveUnicity(), candidates, rec)
	if err != nil {
		return false, shared.NewEngineError(fmt.Errorf("classify arrangement %s: %w", a.ID(), err))
	}
	if !mutated {
		return false, nil
	}

	encoded, err := g.Encode()
	if err != nil {
		return false, shared.NewEngineError(fmt.Errorf("encode updated strategy for arrangement %s: %w", a.ID(), err))
	}
	if err := c.arrangements.UpdateStrategy(ctx, a.ID(), encoded, a.DependencyKind()); err != nil {
		return false, shared.NewEngineError(fmt.Errorf("persist updated strategy for arrangement %s: %w", a.ID(), err))
	}
	if c.metrics != nil {
		c.metrics.RecordGroupMutation()
	}
	return true, nil
}

// applyUngroupRecord removes every recorded (group, picture) pair from
// membership, after every arrangement in a re-evaluation pass has run —
// removals are applied once at the end rather than inline, so a picture
// reassigned from one group to another within the same pass is never
// observed briefly absent from both.
func (c *Coordinator) applyUngroupRecord(ctx context.Context, records []group.UngroupRecord) error {
	for _, rec := range records {
		if err := c.memberships.Remove(ctx, rec.GroupID, rec.PictureID); err != nil {
			return shared.NewEngineError(fmt.Errorf("remove picture %s from group %s: %w", rec.PictureID, rec.GroupID, err))
		}
		if err := c.mirror(ctx, rec.GroupID, rec.PictureID, c.memberships.Remove); err != nil {
			return err
		}
	}
	return nil
}

// applyMirrorAdds propagates every group-membership add a classification
// pass performed to that group's shared, copied mirrors — the add-side
// counterpart to applyUngroupRecord's removal mirroring. spec.md §4.5
// mirrors any write that modifies a group, not only removals.
func (c *Coordinator) applyMirrorAdds(ctx context.Context, adds []group.Membership) error {
	for _, add := range adds {
		if err := c.mirror(ctx, add.GroupID, add.PictureID, c.memberships.Add); err != nil {
			return err
		}
	}
	return nil
}

// mirror applies op (Add or Remove) to every shared, copied mirror of
// groupID, propagating a membership change the same way it was just
// applied to the source group. This is intentionally shallow: it never
// re-triggers re-evaluation of whatever arrangement the mirror group
// belongs to.
func (c *Coordinator) mirror(ctx context.Context, groupID group.GroupID, pictureID picture.PictureID, op func(context.Context, group.GroupID, picture.PictureID) error) error {
	if c.sharedGroups == nil {
		return nil
	}
	shares, err := c.sharedGroups.FindByGroup(ctx, groupID)
	if err != nil {
		return shared.NewEngineError(fmt.Errorf("find shares of group %s: %w", groupID, err))
	}
	for _, share := range shares {
		if !share.Copied() {
			continue
		}
		if err := op(ctx, share.MatchConversionGroupID(), pictureID); err != nil {
			return shared.NewEngineError(fmt.Errorf("mirror to shared group %s: %w", share.MatchConversionGroupID(), err))
		}
	}
	return nil
}

func (c *Coordinator) listDetails(ctx context.Context, ownerID identity.UserID) ([]arrangement.Details, error) {
	details, err := c.arrangements.ListDetails(ctx, ownerID)
	if err != nil {
		return nil, shared.NewEngineError(fmt.Errorf("list arrangement details: %w", err))
	}
	return details, nil
}
