package strategy

import (
	"context"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
)

// rule is one group-producing rule of a variant: it knows which group it
// targets (resolving/creating it lazily) and which pictures in a pool it
// claims.
type rule interface {
	resolveGroup(ctx context.Context, repo group.Repository, arrangementID arrangement.ArrangementID) (group.GroupID, bool, error)
	match(ctx context.Context, filterer PictureFilterer, pool []picture.PictureID) ([]picture.PictureID, error)
	reason() string

	// cachedGroup reports the rule's already-resolved group id, if any,
	// without creating one. classify uses this to decide whether a rule
	// with zero matches still needs resolveGroup called at all.
	cachedGroup() (group.GroupID, bool)
}

// classify implements the common Grouping classification skeleton: walk
// rules in order, consuming from remaining when preserveUnicity is set,
// routing whatever's left to otherRule. Returns true if any rule's
// resolveGroup lazily created a group row.
func classify(
	ctx context.Context,
	repo group.Repository,
	membership group.MembershipRepository,
	filterer PictureFilterer,
	arrangementID arrangement.ArrangementID,
	rules []rule,
	otherRule rule,
	candidates []picture.PictureID,
	preserveUnicity bool,
	rec *Recorder,
) (bool, error) {
	remaining := append([]picture.PictureID(nil), candidates...)
	mutated := false

	for _, r := range rules {
		pool := candidates
		if preserveUnicity {
			pool = remaining
		}
		matched, err := r.match(ctx, filterer, pool)
		if err != nil {
			return mutated, err
		}

		if _, cached := r.cachedGroup(); len(matched) == 0 && !cached {
			// A rule with nothing matched and no group created yet has no
			// edge to add and no cached group to emit removals against —
			// per spec.md §4.2 it contributes no writes at all, so it must
			// not lazily create a group just to sit empty.
			continue
		}

		groupID, created, err := r.resolveGroup(ctx, repo, arrangementID)
		if err != nil {
			return mutated, err
		}
		mutated = mutated || created

		if err := addAll(ctx, membership, groupID, matched, rec); err != nil {
			return mutated, err
		}
		rec.Record(groupID, subtract(candidates, matched), r.reason())
		remaining = subtract(remaining, matched)
	}

	if len(remaining) > 0 && otherRule != nil {
		groupID, created, err := otherRule.resolveGroup(ctx, repo, arrangementID)
		if err != nil {
			return mutated, err
		}
		mutated = mutated || created
		if err := addAll(ctx, membership, groupID, remaining, rec); err != nil {
			return mutated, err
		}
	}

	return mutated, nil
}

func addAll(ctx context.Context, membership group.MembershipRepository, groupID group.GroupID, pictureIDs []picture.PictureID, rec *Recorder) error {
	for _, pid := range pictureIDs {
		if err := membership.Add(ctx, groupID, pid); err != nil {
			return err
		}
	}
	rec.RecordAdd(groupID, pictureIDs)
	return nil
}

// subtract returns the elements of all not present in remove.
func subtract(all, remove []picture.PictureID) []picture.PictureID {
	if len(remove) == 0 {
		return append([]picture.PictureID(nil), all...)
	}
	excluded := make(map[picture.PictureID]bool, len(remove))
	for _, id := range remove {
		excluded[id] = true
	}
	out := make([]picture.PictureID, 0, len(all))
	for _, id := range all {
		if !excluded[id] {
			out = append(out, id)
		}
	}
	return out
}
