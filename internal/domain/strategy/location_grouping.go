package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/archypix/arrangement-engine/internal/collaborators"
	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// LocationGrouping delegates clustering of candidates by GPS coordinate
// to an external collaborator (collaborators.LocationClusterer) and
// persists only the resulting cluster→group mapping.
type LocationGrouping struct {
	ClusterIDs          []group.GroupID
	IsDateOrdered       bool
	Sharpness           float64
	OtherGroupID        *group.GroupID
	PreserveUnicityFlag bool
}

func (g *LocationGrouping) PreserveUnicity() bool { return g.PreserveUnicityFlag }

type locationGroupingPayload struct {
	ClusterIDs      []string `json:"cluster_ids"`
	IsDateOrdered   bool     `json:"is_date_ordered"`
	Sharpness       float64  `json:"sharpness"`
	OtherGroupID    *string  `json:"other_group_id,omitempty"`
	PreserveUnicity bool     `json:"preserve_unicity"`
}

func (g *LocationGrouping) OwnedGroups() []group.GroupID {
	ids := append([]group.GroupID(nil), g.ClusterIDs...)
	if g.OtherGroupID != nil {
		ids = append(ids, *g.OtherGroupID)
	}
	return ids
}

func (g *LocationGrouping) DependencyKind() shared.DependencyKind { return shared.DependsOnExif }
func (g *LocationGrouping) DependantGroupIDs() []string           { return nil }

// GroupPictures requires filterer to also implement LocationSource, the
// collaborator bridge that resolves candidates' coordinates and runs
// collaborators.LocationClusterer.
func (g *LocationGrouping) GroupPictures(ctx context.Context, repo group.Repository, membership group.MembershipRepository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, preserveUnicity bool, candidates []picture.PictureID, rec *Recorder) (bool, error) {
	source, ok := filterer.(LocationSource)
	if !ok || source == nil {
		return false, fmt.Errorf("%w: LocationGrouping requires a LocationSource", shared.ErrInternal)
	}

	points, err := source.GeoPoints(ctx, candidates)
	if err != nil {
		return false, fmt.Errorf("read geo points: %w", err)
	}
	clusters, err := source.Cluster(ctx, points, g.Sharpness)
	if err != nil {
		return false, fmt.Errorf("cluster points: %w", err)
	}

	for len(g.ClusterIDs) < len(clusters) {
		g.ClusterIDs = append(g.ClusterIDs, group.GroupID{})
	}

	rules := make([]rule, 0, len(clusters))
	for i, cluster := range clusters {
		rules = append(rules, &clusterRule{owner: g, index: i, matched: cluster.PictureIDs})
	}

	return classify(ctx, repo, membership, filterer, arrangementID, rules, g.otherRule(), candidates, preserveUnicity, rec)
}

func (g *LocationGrouping) otherRule() rule {
	if g.OtherGroupID != nil {
		return &staticGroupRule{groupID: *g.OtherGroupID, matchAll: true}
	}
	return &lazyOtherRule{target: &g.OtherGroupID, name: "Other"}
}

// Create materializes only the "Other" catch-all: clusters only exist
// once candidates' coordinates are read and clustered, so cluster groups
// are left to GroupPictures's lazy creation.
func (g *LocationGrouping) Create(ctx context.Context, repo group.Repository, _ PictureFilterer, arrangementID arrangement.ArrangementID) error {
	_, _, err := g.otherRule().resolveGroup(ctx, repo, arrangementID)
	return err
}

func (g *LocationGrouping) Edit(ctx context.Context, repo group.Repository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, old Grouping) error {
	return editGrouping(ctx, repo, filterer, arrangementID, g, old)
}

func (g *LocationGrouping) Delete(ctx context.Context, repo group.Repository) error {
	return deleteGrouping(ctx, repo, g)
}

func (g *LocationGrouping) Encode() ([]byte, error) {
	payload := locationGroupingPayload{IsDateOrdered: g.IsDateOrdered, Sharpness: g.Sharpness, PreserveUnicity: g.PreserveUnicityFlag}
	for _, id := range g.ClusterIDs {
		payload.ClusterIDs = append(payload.ClusterIDs, id.String())
	}
	if g.OtherGroupID != nil {
		id := g.OtherGroupID.String()
		payload.OtherGroupID = &id
	}
	return encode(KindLocation, payload)
}

func decodeLocationGrouping(raw json.RawMessage) (Grouping, error) {
	var payload locationGroupingPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal location grouping payload: %w", err)
	}
	g := &LocationGrouping{IsDateOrdered: payload.IsDateOrdered, Sharpness: payload.Sharpness, PreserveUnicityFlag: payload.PreserveUnicity}
	for _, idStr := range payload.ClusterIDs {
		id, err := group.ParseGroupID(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse cluster group id: %w", err)
		}
		g.ClusterIDs = append(g.ClusterIDs, id)
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

// LocationSource bridges candidate pictures to their GPS coordinates and
// runs the clustering collaborator over them.
type LocationSource interface {
	GeoPoints(ctx context.Context, candidates []picture.PictureID) ([]collaborators.GeoPoint, error)
	Cluster(ctx context.Context, points []collaborators.GeoPoint, sharpness float64) ([]collaborators.LocationCluster, error)
}

type clusterRule struct {
	owner   *LocationGrouping
	index   int
	matched []picture.PictureID
}

func (r *clusterRule) resolveGroup(ctx context.Context, repo group.Repository, arrangementID arrangement.ArrangementID) (group.GroupID, bool, error) {
	if !r.owner.ClusterIDs[r.index].IsZero() {
		return r.owner.ClusterIDs[r.index], false, nil
	}
	name := fmt.Sprintf("Location cluster %d", r.index+1)
	g, err := group.NewGroup(arrangementID, name)
	if err != nil {
		return group.GroupID{}, false, err
	}
	if err := repo.Save(ctx, g); err != nil {
		return group.GroupID{}, false, err
	}
	r.owner.ClusterIDs[r.index] = g.ID()
	return g.ID(), true, nil
}

func (r *clusterRule) match(context.Context, PictureFilterer, []picture.PictureID) ([]picture.PictureID, error) {
	return r.matched, nil
}

func (r *clusterRule) reason() string { return group.UngroupReasonStrategyMismatch }

func (r *clusterRule) cachedGroup() (group.GroupID, bool) {
	id := r.owner.ClusterIDs[r.index]
	return id, !id.IsZero()
}
