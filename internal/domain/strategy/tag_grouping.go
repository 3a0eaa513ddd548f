package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
	"github.com/archypix/arrangement-engine/internal/domain/tag"
)

// TagGrouping creates one group per tag in a tag group, deriving its
// rules at runtime by enumerating the tag group's current tags rather
// than persisting a fixed rule list. TagIDToGroupID caches the binding
// from tag to owned group across re-evaluations so a tag's group keeps
// its identity (and any user rename) even as tags are added or removed
// from the source tag group.
type TagGrouping struct {
	TagGroupID          tag.TagGroupID
	GroupNamesFormat    string
	TagIDToGroupID      map[tag.TagID]group.GroupID
	OtherGroupID        *group.GroupID
	PreserveUnicityFlag bool
}

func (g *TagGrouping) PreserveUnicity() bool { return g.PreserveUnicityFlag }

// TagReader resolves the current tags in a tag group and which pictures
// in a pool carry a given tag — the runtime-derived-rules counterpart to
// PictureFilterer.
type TagReader interface {
	TagsInGroup(ctx context.Context, tagGroupID tag.TagGroupID) ([]tag.TagID, error)
	PicturesWithTag(ctx context.Context, tagID tag.TagID, pool []picture.PictureID) ([]picture.PictureID, error)
}

type tagGroupingPayload struct {
	TagGroupID       string            `json:"tag_group_id"`
	GroupNamesFormat string            `json:"group_names_format"`
	TagIDToGroupID   map[string]string `json:"tag_id_to_group_id"`
	OtherGroupID     *string           `json:"other_group_id,omitempty"`
	PreserveUnicity  bool              `json:"preserve_unicity"`
}

func (g *TagGrouping) OwnedGroups() []group.GroupID {
	ids := make([]group.GroupID, 0, len(g.TagIDToGroupID)+1)
	for _, gid := range g.TagIDToGroupID {
		ids = append(ids, gid)
	}
	if g.OtherGroupID != nil {
		ids = append(ids, *g.OtherGroupID)
	}
	return ids
}

func (g *TagGrouping) DependencyKind() shared.DependencyKind {
	return shared.DependsOnTags
}

func (g *TagGrouping) DependantGroupIDs() []string { return nil }

// GroupPictures requires the tagReader parameter to be a TagReader,
// passed through the PictureFilterer slot: TagGrouping has no use for
// filter evaluation, but reusing the slot keeps the Grouping interface
// uniform across variants rather than growing a second collaborator
// parameter only this variant needs. Callers wire a type implementing
// both PictureFilterer and TagReader (internal/infrastructure/persistence/postgres's
// picture query helper satisfies both).
func (g *TagGrouping) GroupPictures(ctx context.Context, repo group.Repository, membership group.MembershipRepository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, preserveUnicity bool, candidates []picture.PictureID, rec *Recorder) (bool, error) {
	reader, ok := filterer.(TagReader)
	if !ok || reader == nil {
		return false, fmt.Errorf("%w: TagGrouping requires a TagReader", shared.ErrInternal)
	}

	tagIDs, err := reader.TagsInGroup(ctx, g.TagGroupID)
	if err != nil {
		return false, fmt.Errorf("list tags in group: %w", err)
	}

	if g.TagIDToGroupID == nil {
		g.TagIDToGroupID = make(map[tag.TagID]group.GroupID)
	}

	rules := make([]rule, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rules = append(rules, &tagRule{owner: g, tagID: tagID, reader: reader})
	}

	return classify(ctx, repo, membership, filterer, arrangementID, rules, g.otherRule(), candidates, preserveUnicity, rec)
}

func (g *TagGrouping) otherRule() rule {
	if g.OtherGroupID != nil {
		return &staticGroupRule{groupID: *g.OtherGroupID, matchAll: true}
	}
	return &lazyOtherRule{target: &g.OtherGroupID, name: "Other"}
}

// Create enumerates the tag group's current tags and materializes one
// group per tag plus the "Other" catch-all, mirroring what the first
// GroupPictures pass would lazily create.
func (g *TagGrouping) Create(ctx context.Context, repo group.Repository, filterer PictureFilterer, arrangementID arrangement.ArrangementID) error {
	reader, ok := filterer.(TagReader)
	if !ok || reader == nil {
		return fmt.Errorf("%w: TagGrouping requires a TagReader", shared.ErrInternal)
	}
	tagIDs, err := reader.TagsInGroup(ctx, g.TagGroupID)
	if err != nil {
		return fmt.Errorf("list tags in group: %w", err)
	}
	if g.TagIDToGroupID == nil {
		g.TagIDToGroupID = make(map[tag.TagID]group.GroupID)
	}
	for _, tagID := range tagIDs {
		r := &tagRule{owner: g, tagID: tagID, reader: reader}
		if _, _, err := r.resolveGroup(ctx, repo, arrangementID); err != nil {
			return err
		}
	}
	_, _, err = g.otherRule().resolveGroup(ctx, repo, arrangementID)
	return err
}

func (g *TagGrouping) Edit(ctx context.Context, repo group.Repository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, old Grouping) error {
	return editGrouping(ctx, repo, filterer, arrangementID, g, old)
}

func (g *TagGrouping) Delete(ctx context.Context, repo group.Repository) error {
	return deleteGrouping(ctx, repo, g)
}

func (g *TagGrouping) Encode() ([]byte, error) {
	payload := tagGroupingPayload{
		TagGroupID:       g.TagGroupID.String(),
		GroupNamesFormat: g.GroupNamesFormat,
		TagIDToGroupID:   make(map[string]string, len(g.TagIDToGroupID)),
		PreserveUnicity:  g.PreserveUnicityFlag,
	}
	for tagID, groupID := range g.TagIDToGroupID {
		payload.TagIDToGroupID[tagID.String()] = groupID.String()
	}
	if g.OtherGroupID != nil {
		id := g.OtherGroupID.String()
		payload.OtherGroupID = &id
	}
	return encode(KindTag, payload)
}

func decodeTagGrouping(raw json.RawMessage) (Grouping, error) {
	var payload tagGroupingPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal tag grouping payload: %w", err)
	}
	tagGroupID, err := tag.ParseTagGroupID(payload.TagGroupID)
	if err != nil {
		return nil, fmt.Errorf("parse tag group id: %w", err)
	}
	g := &TagGrouping{TagGroupID: tagGroupID, GroupNamesFormat: payload.GroupNamesFormat, TagIDToGroupID: make(map[tag.TagID]group.GroupID, len(payload.TagIDToGroupID)), PreserveUnicityFlag: payload.PreserveUnicity}
	for tagIDStr, groupIDStr := range payload.TagIDToGroupID {
		tagID, err := tag.ParseTagID(tagIDStr)
		if err != nil {
			return nil, fmt.Errorf("parse cached tag id: %w", err)
		}
		groupID, err := group.ParseGroupID(groupIDStr)
		if err != nil {
			return nil, fmt.Errorf("parse cached group id: %w", err)
		}
		g.TagIDToGroupID[tagID] = groupID
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

// GroupName derives a group's display name from the format template and
// the tag's own name, supporting a single "%s" placeholder.
func GroupName(format, tagName string) string {
	if strings.Contains(format, "%s") {
		return fmt.Sprintf(format, tagName)
	}
	return format
}

type tagRule struct {
	owner  *TagGrouping
	tagID  tag.TagID
	reader TagReader
}

func (r *tagRule) resolveGroup(ctx context.Context, repo group.Repository, arrangementID arrangement.ArrangementID) (group.GroupID, bool, error) {
	if id, ok := r.owner.TagIDToGroupID[r.tagID]; ok {
		return id, false, nil
	}
	g, err := group.NewGroup(arrangementID, GroupName(r.owner.GroupNamesFormat, r.tagID.String()))
	if err != nil {
		return group.GroupID{}, false, err
	}
	if err := repo.Save(ctx, g); err != nil {
		return group.GroupID{}, false, err
	}
	r.owner.TagIDToGroupID[r.tagID] = g.ID()
	return g.ID(), true, nil
}

func (r *tagRule) match(ctx context.Context, _ PictureFilterer, pool []picture.PictureID) ([]picture.PictureID, error) {
	return r.reader.PicturesWithTag(ctx, r.tagID, pool)
}

func (r *tagRule) reason() string { return group.UngroupReasonStrategyMismatch }

func (r *tagRule) cachedGroup() (group.GroupID, bool) {
	id, ok := r.owner.TagIDToGroupID[r.tagID]
	return id, ok
}
