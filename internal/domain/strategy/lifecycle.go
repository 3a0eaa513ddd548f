package strategy

import (
	"context"
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/group"
)

// reconcileGroups implements the tombstone-unmatched-old half of
// spec.md §4.2's reconciliation algorithm: every group old owns that
// next does not own any more is marked for deletion. A group both
// strategies own is left untouched, preserving its identity (and any
// user rename) across the edit.
func reconcileGroups(ctx context.Context, repo group.Repository, old, next Grouping) error {
	if old == nil {
		return nil
	}
	kept := make(map[group.GroupID]bool, len(next.OwnedGroups()))
	for _, id := range next.OwnedGroups() {
		kept[id] = true
	}
	for _, id := range old.OwnedGroups() {
		if kept[id] {
			continue
		}
		g, err := repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find group %s for tombstone: %w", id, err)
		}
		g.MarkForDeletion()
		if err := repo.Save(ctx, g); err != nil {
			return fmt.Errorf("save tombstoned group %s: %w", id, err)
		}
	}
	return nil
}

// editGrouping runs the full §4.2 edit reconciliation for next against
// old: tombstone what next dropped, then materialize whatever next owns
// that doesn't have a group row yet — the create-unmatched-new half,
// reusing next's own Create since a rule with an already-cached group id
// resolves to it instead of creating a duplicate.
func editGrouping(ctx context.Context, repo group.Repository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, next, old Grouping) error {
	if err := reconcileGroups(ctx, repo, old, next); err != nil {
		return err
	}
	return next.Create(ctx, repo, filterer, arrangementID)
}

// deleteGrouping tombstones every group g owns, used when the owning
// arrangement is itself deleted.
func deleteGrouping(ctx context.Context, repo group.Repository, g Grouping) error {
	for _, id := range g.OwnedGroups() {
		owned, err := repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find group %s for tombstone: %w", id, err)
		}
		owned.MarkForDeletion()
		if err := repo.Save(ctx, owned); err != nil {
			return fmt.Errorf("save tombstoned group %s: %w", id, err)
		}
	}
	return nil
}
