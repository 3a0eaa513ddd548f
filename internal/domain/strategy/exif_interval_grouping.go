package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/filter"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// ExifIntervalGrouping buckets pictures into fixed-width intervals of a
// numeric EXIF field, growing two lists of groups outward from Origin as
// values are encountered: GroupIDsIncreasing[k] holds bucket
// [Origin+k*IntervalLength, Origin+(k+1)*IntervalLength), and
// GroupIDsDecreasing[k] holds bucket
// [Origin-(k+1)*IntervalLength, Origin-k*IntervalLength).
type ExifIntervalGrouping struct {
	Field              filter.ExifField
	Origin             float64
	IntervalLength     float64
	NameFormat         string
	GroupIDsIncreasing  []group.GroupID
	GroupIDsDecreasing  []group.GroupID
	OtherGroupID        *group.GroupID
	PreserveUnicityFlag bool
}

func (g *ExifIntervalGrouping) PreserveUnicity() bool { return g.PreserveUnicityFlag }

type exifIntervalGroupingPayload struct {
	Field              string   `json:"field"`
	Origin             float64  `json:"origin"`
	IntervalLength     float64  `json:"interval_length"`
	NameFormat         string   `json:"name_format"`
	GroupIDsIncreasing []string `json:"group_ids_increasing"`
	GroupIDsDecreasing []string `json:"group_ids_decreasing"`
	OtherGroupID       *string  `json:"other_group_id,omitempty"`
	PreserveUnicity    bool     `json:"preserve_unicity"`
}

func (g *ExifIntervalGrouping) OwnedGroups() []group.GroupID {
	ids := make([]group.GroupID, 0, len(g.GroupIDsIncreasing)+len(g.GroupIDsDecreasing)+1)
	ids = append(ids, g.GroupIDsIncreasing...)
	ids = append(ids, g.GroupIDsDecreasing...)
	if g.OtherGroupID != nil {
		ids = append(ids, *g.OtherGroupID)
	}
	return ids
}

func (g *ExifIntervalGrouping) DependencyKind() shared.DependencyKind { return shared.DependsOnExif }
func (g *ExifIntervalGrouping) DependantGroupIDs() []string           { return nil }

// bucketIndex computes the signed (list, k) pair for value: list is
// true for "increasing", false for "decreasing". Decreasing indices use
// -k-1 per spec so bucket 0 in both lists sits immediately against
// Origin with no overlap or gap.
func (g *ExifIntervalGrouping) bucketIndex(value float64) (increasing bool, k int) {
	raw := math.Floor((value - g.Origin) / g.IntervalLength)
	if raw >= 0 {
		return true, int(raw)
	}
	return false, int(-raw) - 1
}

func (g *ExifIntervalGrouping) ensureCapacity(increasing bool, k int) {
	if increasing {
		for len(g.GroupIDsIncreasing) <= k {
			g.GroupIDsIncreasing = append(g.GroupIDsIncreasing, group.GroupID{})
		}
		return
	}
	for len(g.GroupIDsDecreasing) <= k {
		g.GroupIDsDecreasing = append(g.GroupIDsDecreasing, group.GroupID{})
	}
}

func (g *ExifIntervalGrouping) bucketValue(increasing bool, k int) float64 {
	if increasing {
		return g.Origin + float64(k)*g.IntervalLength
	}
	return g.Origin - float64(k+1)*g.IntervalLength
}

// GroupPictures buckets candidates by scanning each one's field value via
// the injected filterer (an ExifValueReader) rather than by querying per
// bucket, since bucket boundaries are computed in Go, not SQL.
func (g *ExifIntervalGrouping) GroupPictures(ctx context.Context, repo group.Repository, membership group.MembershipRepository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, preserveUnicity bool, candidates []picture.PictureID, rec *Recorder) (bool, error) {
	reader, ok := filterer.(ExifValueReader)
	if !ok || reader == nil {
		return false, fmt.Errorf("%w: ExifIntervalGrouping requires an ExifValueReader", shared.ErrInternal)
	}

	values, err := reader.ExifValues(ctx, g.Field, candidates)
	if err != nil {
		return false, fmt.Errorf("read exif values: %w", err)
	}

	buckets := make(map[string][]picture.PictureID)
	for pid, v := range values {
		increasing, k := g.bucketIndex(v)
		key := bucketKey(increasing, k)
		buckets[key] = append(buckets[key], pid)
		g.ensureCapacity(increasing, k)
	}

	rules := make([]rule, 0, len(buckets))
	for key, matched := range buckets {
		increasing, k := parseBucketKey(key)
		rules = append(rules, &intervalBucketRule{owner: g, increasing: increasing, k: k, matched: matched})
	}

	return classify(ctx, repo, membership, filterer, arrangementID, rules, g.otherRule(), candidates, preserveUnicity, rec)
}

func (g *ExifIntervalGrouping) otherRule() rule {
	if g.OtherGroupID != nil {
		return &staticGroupRule{groupID: *g.OtherGroupID, matchAll: true}
	}
	return &lazyOtherRule{target: &g.OtherGroupID, name: "Other"}
}

// Create materializes only the "Other" catch-all: bucket membership is
// only known once candidates' EXIF values are read, so bucket groups are
// left to GroupPictures's lazy creation.
func (g *ExifIntervalGrouping) Create(ctx context.Context, repo group.Repository, _ PictureFilterer, arrangementID arrangement.ArrangementID) error {
	_, _, err := g.otherRule().resolveGroup(ctx, repo, arrangementID)
	return err
}

func (g *ExifIntervalGrouping) Edit(ctx context.Context, repo group.Repository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, old Grouping) error {
	return editGrouping(ctx, repo, filterer, arrangementID, g, old)
}

func (g *ExifIntervalGrouping) Delete(ctx context.Context, repo group.Repository) error {
	return deleteGrouping(ctx, repo, g)
}

func bucketKey(increasing bool, k int) string {
	if increasing {
		return fmt.Sprintf("+%d", k)
	}
	return fmt.Sprintf("-%d", k)
}

func parseBucketKey(key string) (bool, int) {
	var k int
	if key[0] == '+' {
		fmt.Sscanf(key[1:], "%d", &k)
		return true, k
	}
	fmt.Sscanf(key[1:], "%d", &k)
	return false, k
}

func (g *ExifIntervalGrouping) Encode() ([]byte, error) {
	payload := exifIntervalGroupingPayload{
		Field:           string(g.Field),
		Origin:          g.Origin,
		IntervalLength:  g.IntervalLength,
		NameFormat:      g.NameFormat,
		PreserveUnicity: g.PreserveUnicityFlag,
	}
	for _, gid := range g.GroupIDsIncreasing {
		payload.GroupIDsIncreasing = append(payload.GroupIDsIncreasing, gid.String())
	}
	for _, gid := range g.GroupIDsDecreasing {
		payload.GroupIDsDecreasing = append(payload.GroupIDsDecreasing, gid.String())
	}
	if g.OtherGroupID != nil {
		id := g.OtherGroupID.String()
		payload.OtherGroupID = &id
	}
	return encode(KindExifInterval, payload)
}

func decodeExifIntervalGrouping(raw json.RawMessage) (Grouping, error) {
	var payload exifIntervalGroupingPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal exif interval grouping payload: %w", err)
	}
	g := &ExifIntervalGrouping{
		Field:               filter.ExifField(payload.Field),
		Origin:              payload.Origin,
		IntervalLength:      payload.IntervalLength,
		NameFormat:          payload.NameFormat,
		PreserveUnicityFlag: payload.PreserveUnicity,
	}
	for _, idStr := range payload.GroupIDsIncreasing {
		id, err := group.ParseGroupID(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse increasing bucket group id: %w", err)
		}
		g.GroupIDsIncreasing = append(g.GroupIDsIncreasing, id)
	}
	for _, idStr := range payload.GroupIDsDecreasing {
		id, err := group.ParseGroupID(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse decreasing bucket group id: %w", err)
		}
		g.GroupIDsDecreasing = append(g.GroupIDsDecreasing, id)
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

// ExifValueReader resolves each candidate picture's numeric value for an
// EXIF field, used by ExifIntervalGrouping to compute bucket membership
// in Go rather than in SQL.
type ExifValueReader interface {
	ExifValues(ctx context.Context, field filter.ExifField, candidates []picture.PictureID) (map[picture.PictureID]float64, error)
}

type intervalBucketRule struct {
	owner      *ExifIntervalGrouping
	increasing bool
	k          int
	matched    []picture.PictureID
}

func (r *intervalBucketRule) resolveGroup(ctx context.Context, repo group.Repository, arrangementID arrangement.ArrangementID) (group.GroupID, bool, error) {
	r.owner.ensureCapacity(r.increasing, r.k)
	list := r.owner.GroupIDsIncreasing
	if !r.increasing {
		list = r.owner.GroupIDsDecreasing
	}
	if !list[r.k].IsZero() {
		return list[r.k], false, nil
	}
	name := GroupName(r.owner.NameFormat, fmt.Sprintf("%v", r.owner.bucketValue(r.increasing, r.k)))
	g, err := group.NewGroup(arrangementID, name)
	if err != nil {
		return group.GroupID{}, false, err
	}
	if err := repo.Save(ctx, g); err != nil {
		return group.GroupID{}, false, err
	}
	list[r.k] = g.ID()
	return g.ID(), true, nil
}

func (r *intervalBucketRule) match(context.Context, PictureFilterer, []picture.PictureID) ([]picture.PictureID, error) {
	return r.matched, nil
}

func (r *intervalBucketRule) reason() string { return group.UngroupReasonStrategyMismatch }

func (r *intervalBucketRule) cachedGroup() (group.GroupID, bool) {
	r.owner.ensureCapacity(r.increasing, r.k)
	list := r.owner.GroupIDsIncreasing
	if !r.increasing {
		list = r.owner.GroupIDsDecreasing
	}
	id := list[r.k]
	return id, !id.IsZero()
}
