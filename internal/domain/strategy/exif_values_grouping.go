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

// ExifValuesGrouping creates one group per distinct EXIF value observed
// for Field, matching by exact equality.
type ExifValuesGrouping struct {
	Field               filter.ExifField
	Values              []interface{}
	ValuesToGroup       []group.GroupID // ValuesToGroup[i] owns Values[i]
	OtherGroupID        *group.GroupID
	PreserveUnicityFlag bool
}

func (g *ExifValuesGrouping) PreserveUnicity() bool { return g.PreserveUnicityFlag }

type exifValuesGroupingPayload struct {
	Field           string        `json:"field"`
	Values          []interface{} `json:"values"`
	ValuesToGroup   []string      `json:"values_to_group"`
	OtherGroupID    *string       `json:"other_group_id,omitempty"`
	PreserveUnicity bool          `json:"preserve_unicity"`
}

func (g *ExifValuesGrouping) OwnedGroups() []group.GroupID {
	ids := append([]group.GroupID(nil), g.ValuesToGroup...)
	if g.OtherGroupID != nil {
		ids = append(ids, *g.OtherGroupID)
	}
	return ids
}

func (g *ExifValuesGrouping) DependencyKind() shared.DependencyKind { return shared.DependsOnExif }
func (g *ExifValuesGrouping) DependantGroupIDs() []string           { return nil }

func (g *ExifValuesGrouping) GroupPictures(ctx context.Context, repo group.Repository, membership group.MembershipRepository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, preserveUnicity bool, candidates []picture.PictureID, rec *Recorder) (bool, error) {
	if len(g.Values) != len(g.ValuesToGroup) {
		// A new value was appended without its group assigned yet; grow
		// ValuesToGroup with zero GroupIDs so resolveGroup lazily creates
		// them in lockstep with Values.
		grown := make([]group.GroupID, len(g.Values))
		copy(grown, g.ValuesToGroup)
		g.ValuesToGroup = grown
	}

	rules := make([]rule, 0, len(g.Values))
	for i := range g.Values {
		rules = append(rules, &exifValueRule{owner: g, index: i, filterer: filterer})
	}

	return classify(ctx, repo, membership, filterer, arrangementID, rules, g.otherRule(), candidates, preserveUnicity, rec)
}

func (g *ExifValuesGrouping) otherRule() rule {
	if g.OtherGroupID != nil {
		return &staticGroupRule{groupID: *g.OtherGroupID, matchAll: true}
	}
	return &lazyOtherRule{target: &g.OtherGroupID, name: "Other"}
}

// Create materializes a group for every configured Value plus the
// "Other" catch-all.
func (g *ExifValuesGrouping) Create(ctx context.Context, repo group.Repository, filterer PictureFilterer, arrangementID arrangement.ArrangementID) error {
	if len(g.Values) != len(g.ValuesToGroup) {
		grown := make([]group.GroupID, len(g.Values))
		copy(grown, g.ValuesToGroup)
		g.ValuesToGroup = grown
	}
	for i := range g.Values {
		r := &exifValueRule{owner: g, index: i, filterer: filterer}
		if _, _, err := r.resolveGroup(ctx, repo, arrangementID); err != nil {
			return err
		}
	}
	_, _, err := g.otherRule().resolveGroup(ctx, repo, arrangementID)
	return err
}

func (g *ExifValuesGrouping) Edit(ctx context.Context, repo group.Repository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, old Grouping) error {
	return editGrouping(ctx, repo, filterer, arrangementID, g, old)
}

func (g *ExifValuesGrouping) Delete(ctx context.Context, repo group.Repository) error {
	return deleteGrouping(ctx, repo, g)
}

func (g *ExifValuesGrouping) Encode() ([]byte, error) {
	payload := exifValuesGroupingPayload{Field: string(g.Field), Values: g.Values, PreserveUnicity: g.PreserveUnicityFlag}
	for _, gid := range g.ValuesToGroup {
		payload.ValuesToGroup = append(payload.ValuesToGroup, gid.String())
	}
	if g.OtherGroupID != nil {
		id := g.OtherGroupID.String()
		payload.OtherGroupID = &id
	}
	return encode(KindExifValues, payload)
}

func decodeExifValuesGrouping(raw json.RawMessage) (Grouping, error) {
	var payload exifValuesGroupingPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal exif values grouping payload: %w", err)
	}
	g := &ExifValuesGrouping{Field: filter.ExifField(payload.Field), Values: payload.Values, PreserveUnicityFlag: payload.PreserveUnicity}
	for _, idStr := range payload.ValuesToGroup {
		id, err := group.ParseGroupID(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse value group id: %w", err)
		}
		g.ValuesToGroup = append(g.ValuesToGroup, id)
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

type exifValueRule struct {
	owner    *ExifValuesGrouping
	index    int
	filterer PictureFilterer
}

func (r *exifValueRule) resolveGroup(ctx context.Context, repo group.Repository, arrangementID arrangement.ArrangementID) (group.GroupID, bool, error) {
	if !r.owner.ValuesToGroup[r.index].IsZero() {
		return r.owner.ValuesToGroup[r.index], false, nil
	}
	g, err := group.NewGroup(arrangementID, fmt.Sprintf("%v", r.owner.Values[r.index]))
	if err != nil {
		return group.GroupID{}, false, err
	}
	if err := repo.Save(ctx, g); err != nil {
		return group.GroupID{}, false, err
	}
	r.owner.ValuesToGroup[r.index] = g.ID()
	return g.ID(), true, nil
}

func (r *exifValueRule) match(ctx context.Context, _ PictureFilterer, pool []picture.PictureID) ([]picture.PictureID, error) {
	f := filter.Leaf(filter.ExifEquals(r.owner.Field, r.owner.Values[r.index]))
	return r.filterer.FilterPictures(ctx, f, pool)
}

func (r *exifValueRule) reason() string { return group.UngroupReasonStrategyMismatch }

func (r *exifValueRule) cachedGroup() (group.GroupID, bool) {
	id := r.owner.ValuesToGroup[r.index]
	return id, !id.IsZero()
}
