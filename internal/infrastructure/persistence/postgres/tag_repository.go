package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
	"github.com/archypix/arrangement-engine/internal/domain/tag"
)

const (
	sqlInsertTagGroup = `
		INSERT INTO tag_groups (id, owner_id, name, multiple, required)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, multiple = EXCLUDED.multiple, required = EXCLUDED.required
	`
	sqlSelectTagGroupByID   = `SELECT id, owner_id, name, multiple, required FROM tag_groups WHERE id = $1`
	sqlSelectTagGroupsByOwner = `SELECT id, owner_id, name, multiple, required FROM tag_groups WHERE owner_id = $1`
	sqlDeleteTagGroup       = `DELETE FROM tag_groups WHERE id = $1`
	sqlExistsTagGroup       = `SELECT EXISTS(SELECT 1 FROM tag_groups WHERE id = $1)`

	sqlInsertTag = `
		INSERT INTO tags (id, tag_group_id, name, color, is_default)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, color = EXCLUDED.color, is_default = EXCLUDED.is_default
	`
	sqlSelectTagByID     = `SELECT id, tag_group_id, name, color, is_default FROM tags WHERE id = $1`
	sqlSelectTagsByGroup = `SELECT id, tag_group_id, name, color, is_default FROM tags WHERE tag_group_id = $1`
	sqlDeleteTag         = `DELETE FROM tags WHERE id = $1`
	sqlExistsTag         = `SELECT EXISTS(SELECT 1 FROM tags WHERE id = $1)`

	sqlAssignPictureTag     = `INSERT INTO pictures_tags (picture_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	sqlUnassignPictureTag   = `DELETE FROM pictures_tags WHERE picture_id = $1 AND tag_id = $2`
	sqlSelectTagsForPicture = `SELECT tag_id FROM pictures_tags WHERE picture_id = $1`
	sqlSelectPicturesForTag = `SELECT picture_id FROM pictures_tags WHERE tag_id = $1`
)

type tagGroupRow struct {
	ID       string `db:"id"`
	OwnerID  string `db:"owner_id"`
	Name     string `db:"name"`
	Multiple bool   `db:"multiple"`
	Required bool   `db:"required"`
}

type tagRow struct {
	ID         string `db:"id"`
	TagGroupID string `db:"tag_group_id"`
	Name       string `db:"name"`
	Color      string `db:"color"`
	IsDefault  bool   `db:"is_default"`
}

// TagGroupRepository implements tag.GroupRepository against PostgreSQL.
type TagGroupRepository struct {
	db sqlExecer
}

func NewTagGroupRepository(db sqlExecer) *TagGroupRepository { return &TagGroupRepository{db: db} }

func (r *TagGroupRepository) NextID() tag.TagGroupID { return tag.NewTagGroupID() }

func (r *TagGroupRepository) FindByID(ctx context.Context, id tag.TagGroupID) (*tag.TagGroup, error) {
	var row tagGroupRow
	if err := r.db.GetContext(ctx, &row, sqlSelectTagGroupByID, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrTagGroupNotFound
		}
		return nil, fmt.Errorf("find tag group by id: %w", err)
	}
	return rowToTagGroup(row)
}

func (r *TagGroupRepository) FindByOwner(ctx context.Context, ownerID identity.UserID) ([]*tag.TagGroup, error) {
	var rows []tagGroupRow
	if err := r.db.SelectContext(ctx, &rows, sqlSelectTagGroupsByOwner, ownerID.String()); err != nil {
		return nil, fmt.Errorf("find tag groups by owner: %w", err)
	}
	out := make([]*tag.TagGroup, 0, len(rows))
	for _, row := range rows {
		tg, err := rowToTagGroup(row)
		if err != nil {
			return nil, err
		}
		out = append(out, tg)
	}
	return out, nil
}

func (r *TagGroupRepository) Save(ctx context.Context, g *tag.TagGroup) error {
	_, err := r.db.ExecContext(ctx, sqlInsertTagGroup, g.ID().String(), g.OwnerID().String(), g.Name(), g.Multiple(), g.Required())
	if err != nil {
		return fmt.Errorf("save tag group: %w", err)
	}
	return nil
}

func (r *TagGroupRepository) Delete(ctx context.Context, id tag.TagGroupID) error {
	if _, err := r.db.ExecContext(ctx, sqlDeleteTagGroup, id.String()); err != nil {
		return fmt.Errorf("delete tag group: %w", err)
	}
	return nil
}

func (r *TagGroupRepository) ExistsByID(ctx context.Context, id tag.TagGroupID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, sqlExistsTagGroup, id.String()); err != nil {
		return false, fmt.Errorf("check tag group existence: %w", err)
	}
	return exists, nil
}

func rowToTagGroup(row tagGroupRow) (*tag.TagGroup, error) {
	id, err := tag.ParseTagGroupID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("parse tag group id: %w", err)
	}
	ownerID, err := identity.ParseUserID(row.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("parse owner id: %w", err)
	}
	return tag.ReconstructTagGroup(id, ownerID, row.Name, row.Multiple, row.Required), nil
}

// TagRepository implements tag.Repository against PostgreSQL.
type TagRepository struct {
	db sqlExecer
}

func NewTagRepository(db sqlExecer) *TagRepository { return &TagRepository{db: db} }

func (r *TagRepository) NextID() tag.TagID { return tag.NewTagID() }

func (r *TagRepository) FindByID(ctx context.Context, id tag.TagID) (*tag.Tag, error) {
	var row tagRow
	if err := r.db.GetContext(ctx, &row, sqlSelectTagByID, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrTagNotFound
		}
		return nil, fmt.Errorf("find tag by id: %w", err)
	}
	return rowToTag(row)
}

func (r *TagRepository) FindByGroup(ctx context.Context, groupID tag.TagGroupID) ([]*tag.Tag, error) {
	var rows []tagRow
	if err := r.db.SelectContext(ctx, &rows, sqlSelectTagsByGroup, groupID.String()); err != nil {
		return nil, fmt.Errorf("find tags by group: %w", err)
	}
	out := make([]*tag.Tag, 0, len(rows))
	for _, row := range rows {
		t, err := rowToTag(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TagRepository) Save(ctx context.Context, t *tag.Tag) error {
	_, err := r.db.ExecContext(ctx, sqlInsertTag, t.ID().String(), t.TagGroupID().String(), t.Name(), t.Color(), t.IsDefault())
	if err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, id tag.TagID) error {
	if _, err := r.db.ExecContext(ctx, sqlDeleteTag, id.String()); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

func (r *TagRepository) ExistsByID(ctx context.Context, id tag.TagID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, sqlExistsTag, id.String()); err != nil {
		return false, fmt.Errorf("check tag existence: %w", err)
	}
	return exists, nil
}

func rowToTag(row tagRow) (*tag.Tag, error) {
	id, err := tag.ParseTagID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("parse tag id: %w", err)
	}
	groupID, err := tag.ParseTagGroupID(row.TagGroupID)
	if err != nil {
		return nil, fmt.Errorf("parse tag group id: %w", err)
	}
	return tag.ReconstructTag(id, groupID, row.Name, row.Color, row.IsDefault), nil
}

// PictureTagRepository implements tag.PictureTagRepository against the
// pictures_tags join table.
type PictureTagRepository struct {
	db sqlExecer
}

func NewPictureTagRepository(db sqlExecer) *PictureTagRepository { return &PictureTagRepository{db: db} }

func (r *PictureTagRepository) Assign(ctx context.Context, pictureID picture.PictureID, tagID tag.TagID) error {
	if _, err := r.db.ExecContext(ctx, sqlAssignPictureTag, pictureID.String(), tagID.String()); err != nil {
		return fmt.Errorf("assign tag to picture: %w", err)
	}
	return nil
}

func (r *PictureTagRepository) Unassign(ctx context.Context, pictureID picture.PictureID, tagID tag.TagID) error {
	if _, err := r.db.ExecContext(ctx, sqlUnassignPictureTag, pictureID.String(), tagID.String()); err != nil {
		return fmt.Errorf("unassign tag from picture: %w", err)
	}
	return nil
}

func (r *PictureTagRepository) TagsForPicture(ctx context.Context, pictureID picture.PictureID) ([]tag.TagID, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, sqlSelectTagsForPicture, pictureID.String()); err != nil {
		return nil, fmt.Errorf("find tags for picture: %w", err)
	}
	out := make([]tag.TagID, 0, len(ids))
	for _, s := range ids {
		id, err := tag.ParseTagID(s)
		if err != nil {
			return nil, fmt.Errorf("parse tag id: %w", err)
		}
		out = append(out, id)
	}
	return out, nil
}

func (r *PictureTagRepository) PicturesForTag(ctx context.Context, tagID tag.TagID) ([]picture.PictureID, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, sqlSelectPicturesForTag, tagID.String()); err != nil {
		return nil, fmt.Errorf("find pictures for tag: %w", err)
	}
	out := make([]picture.PictureID, 0, len(ids))
	for _, s := range ids {
		id, err := picture.ParsePictureID(s)
		if err != nil {
			return nil, fmt.Errorf("parse picture id: %w", err)
		}
		out = append(out, id)
	}
	return out, nil
}
