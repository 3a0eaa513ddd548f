package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/filter"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// FilterRule pairs a persisted group with the sub-filter that selects
// its members.
type FilterRule struct {
	GroupID   group.GroupID
	SubFilter filter.Filter
}

// FilterGrouping routes pictures into groups by an ordered list of
// (group, sub-filter) rules, evaluated against the pool in request
// order, with an optional catch-all "Other" group for leftovers.
type FilterGrouping struct {
	Rules               []FilterRule
	OtherGroupID        *group.GroupID
	PreserveUnicityFlag bool
}

type filterGroupingPayload struct {
	Rules []struct {
		GroupID   string          `json:"group_id"`
		SubFilter json.RawMessage `json:"sub_filter"`
	} `json:"rules"`
	OtherGroupID    *string `json:"other_group_id,omitempty"`
	PreserveUnicity bool    `json:"preserve_unicity"`
}

func (g *FilterGrouping) PreserveUnicity() bool { return g.PreserveUnicityFlag }

func (g *FilterGrouping) OwnedGroups() []group.GroupID {
	ids := make([]group.GroupID, 0, len(g.Rules)+1)
	for _, r := range g.Rules {
		ids = append(ids, r.GroupID)
	}
	if g.OtherGroupID != nil {
		ids = append(ids, *g.OtherGroupID)
	}
	return ids
}

func (g *FilterGrouping) DependencyKind() shared.DependencyKind {
	var kind shared.DependencyKind
	for _, r := range g.Rules {
		kind = kind.Union(filter.DependencyKind(r.SubFilter))
	}
	return kind
}

func (g *FilterGrouping) DependantGroupIDs() []string {
	var ids []string
	for _, r := range g.Rules {
		ids = append(ids, filter.DependantGroupIDs(r.SubFilter)...)
	}
	return ids
}

func (g *FilterGrouping) buildRules() []rule {
	rules := make([]rule, 0, len(g.Rules))
	for i := range g.Rules {
		rules = append(rules, &filterSubRule{owner: g, index: i})
	}
	return rules
}

func (g *FilterGrouping) otherRule() rule {
	if g.OtherGroupID != nil {
		return &staticGroupRule{groupID: *g.OtherGroupID, matchAll: true}
	}
	return &lazyOtherRule{target: &g.OtherGroupID, name: "Other"}
}

func (g *FilterGrouping) GroupPictures(ctx context.Context, repo group.Repository, membership group.MembershipRepository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, preserveUnicity bool, candidates []picture.PictureID, rec *Recorder) (bool, error) {
	return classify(ctx, repo, membership, filterer, arrangementID, g.buildRules(), g.otherRule(), candidates, preserveUnicity, rec)
}

// Create materializes every configured rule's group plus the "Other"
// catch-all, so an arrangement created with a FilterGrouping has all of
// its groups in place before the first re-evaluation pass.
func (g *FilterGrouping) Create(ctx context.Context, repo group.Repository, _ PictureFilterer, arrangementID arrangement.ArrangementID) error {
	for _, r := range g.buildRules() {
		if _, _, err := r.resolveGroup(ctx, repo, arrangementID); err != nil {
			return err
		}
	}
	_, _, err := g.otherRule().resolveGroup(ctx, repo, arrangementID)
	return err
}

func (g *FilterGrouping) Edit(ctx context.Context, repo group.Repository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, old Grouping) error {
	return editGrouping(ctx, repo, filterer, arrangementID, g, old)
}

func (g *FilterGrouping) Delete(ctx context.Context, repo group.Repository) error {
	return deleteGrouping(ctx, repo, g)
}

func (g *FilterGrouping) Encode() ([]byte, error) {
	payload := filterGroupingPayload{PreserveUnicity: g.PreserveUnicityFlag}
	for _, r := range g.Rules {
		subFilterJSON, err := json.Marshal(r.SubFilter)
		if err != nil {
			return nil, fmt.Errorf("marshal sub-filter: %w", err)
		}
		payload.Rules = append(payload.Rules, struct {
			GroupID   string          `json:"group_id"`
			SubFilter json.RawMessage `json:"sub_filter"`
		}{GroupID: r.GroupID.String(), SubFilter: subFilterJSON})
	}
	if g.OtherGroupID != nil {
		id := g.OtherGroupID.String()
		payload.OtherGroupID = &id
	}
	return encode(KindFilter, payload)
}

func decodeFilterGrouping(raw json.RawMessage) (Grouping, error) {
	var payload filterGroupingPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal filter grouping payload: %w", err)
	}
	g := &FilterGrouping{PreserveUnicityFlag: payload.PreserveUnicity}
	for _, r := range payload.Rules {
		groupID, err := group.ParseGroupID(r.GroupID)
		if err != nil {
			return nil, fmt.Errorf("parse rule group id: %w", err)
		}
		var f filter.Filter
		if err := json.Unmarshal(r.SubFilter, &f); err != nil {
			return nil, fmt.Errorf("unmarshal sub-filter: %w", err)
		}
		g.Rules = append(g.Rules, FilterRule{GroupID: groupID, SubFilter: f})
	}
	if payload.OtherGroupID != nil {
		id, err := group.ParseGroupID(*payload.OtherGroupID)
		if err != nil {
			return nil, fmt.Errorf("parse other group id: %w", err)
		}
		g.OtherGroupID = &id
	}
	return g, nil
}

// filterSubRule evaluates one FilterGrouping rule's sub-filter against a
// pool by delegating to the injected PictureFilterer, which compiles the
// filter to SQL (filter.Compile) and runs it scoped to the pool.
type filterSubRule struct {
	owner *FilterGrouping
	index int
}

func (r *filterSubRule) resolveGroup(ctx context.Context, repo group.Repository, arrangementID arrangement.ArrangementID) (group.GroupID, bool, error) {
	rule := r.owner.Rules[r.index]
	if !rule.GroupID.IsZero() {
		return rule.GroupID, false, nil
	}
	g, err := group.NewGroup(arrangementID, "Untitled")
	if err != nil {
		return group.GroupID{}, false, err
	}
	if err := repo.Save(ctx, g); err != nil {
		return group.GroupID{}, false, err
	}
	r.owner.Rules[r.index].GroupID = g.ID()
	return g.ID(), true, nil
}

func (r *filterSubRule) match(ctx context.Context, filterer PictureFilterer, pool []picture.PictureID) ([]picture.PictureID, error) {
	if filterer == nil {
		return nil, fmt.Errorf("%w: FilterGrouping requires a PictureFilterer", shared.ErrInternal)
	}
	return filterer.FilterPictures(ctx, r.owner.Rules[r.index].SubFilter, pool)
}

func (r *filterSubRule) reason() string { return group.UngroupReasonStrategyMismatch }

func (r *filterSubRule) cachedGroup() (group.GroupID, bool) {
	id := r.owner.Rules[r.index].GroupID
	return id, !id.IsZero()
}

// staticGroupRule matches everything in its pool against a fixed group
// id — used for an already-created "Other" group.
type staticGroupRule struct {
	groupID  group.GroupID
	matchAll bool
}

func (r *staticGroupRule) resolveGroup(context.Context, group.Repository, arrangement.ArrangementID) (group.GroupID, bool, error) {
	return r.groupID, false, nil
}

func (r *staticGroupRule) match(_ context.Context, _ PictureFilterer, pool []picture.PictureID) ([]picture.PictureID, error) {
	if r.matchAll {
		return pool, nil
	}
	return nil, nil
}

func (r *staticGroupRule) reason() string { return group.UngroupReasonStrategyMismatch }

func (r *staticGroupRule) cachedGroup() (group.GroupID, bool) { return r.groupID, true }

// lazyOtherRule creates its group on first use and writes the new id
// back into target so subsequent calls reuse it.
type lazyOtherRule struct {
	target *(*group.GroupID)
	name   string
}

func (r *lazyOtherRule) resolveGroup(ctx context.Context, repo group.Repository, arrangementID arrangement.ArrangementID) (group.GroupID, bool, error) {
	if *r.target != nil {
		return **r.target, false, nil
	}
	g, err := group.NewGroup(arrangementID, r.name)
	if err != nil {
		return group.GroupID{}, false, err
	}
	if err := repo.Save(ctx, g); err != nil {
		return group.GroupID{}, false, err
	}
	id := g.ID()
	*r.target = &id
	return id, true, nil
}

func (r *lazyOtherRule) match(_ context.Context, _ PictureFilterer, pool []picture.PictureID) ([]picture.PictureID, error) {
	return pool, nil
}

func (r *lazyOtherRule) reason() string { return group.UngroupReasonStrategyMismatch }

func (r *lazyOtherRule) cachedGroup() (group.GroupID, bool) {
	if *r.target != nil {
		return **r.target, true
	}
	return group.GroupID{}, false
}
