package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

const (
	sqlInsertGroup = `
		INSERT INTO groups (id, arrangement_id, name, share_match_conversion, to_be_deleted)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			share_match_conversion = EXCLUDED.share_match_conversion,
			to_be_deleted = EXCLUDED.to_be_deleted
	`
	sqlSelectGroupByID = `
		SELECT id, arrangement_id, name, share_match_conversion, to_be_deleted
		FROM groups WHERE id = $1
	`
	sqlSelectGroupsByArrangement = `
		SELECT id, arrangement_id, name, share_match_conversion, to_be_deleted
		FROM groups WHERE arrangement_id = $1
	`
	sqlDeleteGroup = `DELETE FROM groups WHERE id = $1`
	sqlExistsGroup = `SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)`

	sqlAddGroupMembership      = `INSERT INTO groups_pictures (group_id, picture_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	sqlRemoveGroupMembership   = `DELETE FROM groups_pictures WHERE group_id = $1 AND picture_id = $2`
	sqlSelectPicturesForGroup  = `SELECT picture_id FROM groups_pictures WHERE group_id = $1`
	sqlSelectGroupsForPicture  = `SELECT group_id FROM groups_pictures WHERE picture_id = $1`
	sqlContainsGroupMembership = `SELECT EXISTS(SELECT 1 FROM groups_pictures WHERE group_id = $1 AND picture_id = $2)`

	sqlInsertSharedGroup = `
		INSERT INTO shared_groups (recipient_id, group_id, permissions, match_conversion_group_id, copied, confirmed)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (recipient_id, group_id) DO UPDATE SET
			permissions = EXCLUDED.permissions,
			match_conversion_group_id = EXCLUDED.match_conversion_group_id,
			copied = EXCLUDED.copied,
			confirmed = EXCLUDED.confirmed
	`
	sqlSelectSharedGroupByRecipientAndGroup = `
		SELECT recipient_id, group_id, permissions, match_conversion_group_id, copied, confirmed
		FROM shared_groups WHERE recipient_id = $1 AND group_id = $2
	`
	sqlSelectSharedGroupsByGroup = `
		SELECT recipient_id, group_id, permissions, match_conversion_group_id, copied, confirmed
		FROM shared_groups WHERE group_id = $1
	`
	sqlSelectSharedGroupsByRecipient = `
		SELECT recipient_id, group_id, permissions, match_conversion_group_id, copied, confirmed
		FROM shared_groups WHERE recipient_id = $1
	`
	sqlDeleteSharedGroup = `DELETE FROM shared_groups WHERE recipient_id = $1 AND group_id = $2`
)

type groupRow struct {
	ID                   string `db:"id"`
	ArrangementID        string `db:"arrangement_id"`
	Name                 string `db:"name"`
	ShareMatchConversion bool   `db:"share_match_conversion"`
	ToBeDeleted          bool   `db:"to_be_deleted"`
}

type sharedGroupRow struct {
	RecipientID            string        `db:"recipient_id"`
	GroupID                string        `db:"group_id"`
	Permissions            int64         `db:"permissions"`
	MatchConversionGroupID sql.NullString `db:"match_conversion_group_id"`
	Copied                 bool          `db:"copied"`
	Confirmed              bool          `db:"confirmed"`
}

// GroupRepository implements group.Repository against PostgreSQL.
type GroupRepository struct {
	db sqlExecer
}

func NewGroupRepository(db sqlExecer) *GroupRepository { return &GroupRepository{db: db} }

func (r *GroupRepository) NextID() group.GroupID { return group.NewGroupID() }

func (r *GroupRepository) FindByID(ctx context.Context, id group.GroupID) (*group.Group, error) {
	var row groupRow
	if err := r.db.GetContext(ctx, &row, sqlSelectGroupByID, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, group.ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group by id: %w", err)
	}
	return rowToGroup(row)
}

func (r *GroupRepository) FindByArrangement(ctx context.Context, arrangementID arrangement.ArrangementID) ([]*group.Group, error) {
	var rows []groupRow
	if err := r.db.SelectContext(ctx, &rows, sqlSelectGroupsByArrangement, arrangementID.String()); err != nil {
		return nil, fmt.Errorf("find groups by arrangement: %w", err)
	}
	out := make([]*group.Group, 0, len(rows))
	for _, row := range rows {
		g, err := rowToGroup(row)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *GroupRepository) Save(ctx context.Context, g *group.Group) error {
	_, err := r.db.ExecContext(ctx, sqlInsertGroup, g.ID().String(), g.ArrangementID().String(), g.Name(), g.ShareMatchConversion(), g.ToBeDeleted())
	if err != nil {
		return fmt.Errorf("save group: %w", err)
	}
	return nil
}

func (r *GroupRepository) Delete(ctx context.Context, id group.GroupID) error {
	if _, err := r.db.ExecContext(ctx, sqlDeleteGroup, id.String()); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

func (r *GroupRepository) ExistsByID(ctx context.Context, id group.GroupID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, sqlExistsGroup, id.String()); err != nil {
		return false, fmt.Errorf("check group existence: %w", err)
	}
	return exists, nil
}

func rowToGroup(row groupRow) (*group.Group, error) {
	id, err := group.ParseGroupID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("parse group id: %w", err)
	}
	arrangementID, err := arrangement.ParseArrangementID(row.ArrangementID)
	if err != nil {
		return nil, fmt.Errorf("parse arrangement id: %w", err)
	}
	return group.ReconstructGroup(id, arrangementID, row.Name, row.ShareMatchConversion, row.ToBeDeleted), nil
}

// MembershipRepository implements group.MembershipRepository against the
// groups_pictures join table.
type MembershipRepository struct {
	db sqlExecer
}

func NewMembershipRepository(db sqlExecer) *MembershipRepository { return &MembershipRepository{db: db} }

func (r *MembershipRepository) Add(ctx context.Context, groupID group.GroupID, pictureID picture.PictureID) error {
	if _, err := r.db.ExecContext(ctx, sqlAddGroupMembership, groupID.String(), pictureID.String()); err != nil {
		return fmt.Errorf("add group membership: %w", err)
	}
	return nil
}

func (r *MembershipRepository) Remove(ctx context.Context, groupID group.GroupID, pictureID picture.PictureID) error {
	if _, err := r.db.ExecContext(ctx, sqlRemoveGroupMembership, groupID.String(), pictureID.String()); err != nil {
		return fmt.Errorf("remove group membership: %w", err)
	}
	return nil
}

func (r *MembershipRepository) PicturesForGroup(ctx context.Context, groupID group.GroupID) ([]picture.PictureID, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, sqlSelectPicturesForGroup, groupID.String()); err != nil {
		return nil, fmt.Errorf("find pictures for group: %w", err)
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

func (r *MembershipRepository) GroupsForPicture(ctx context.Context, pictureID picture.PictureID) ([]group.GroupID, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, sqlSelectGroupsForPicture, pictureID.String()); err != nil {
		return nil, fmt.Errorf("find groups for picture: %w", err)
	}
	out := make([]group.GroupID, 0, len(ids))
	for _, s := range ids {
		id, err := group.ParseGroupID(s)
		if err != nil {
			return nil, fmt.Errorf("parse group id: %w", err)
		}
		out = append(out, id)
	}
	return out, nil
}

func (r *MembershipRepository) Contains(ctx context.Context, groupID group.GroupID, pictureID picture.PictureID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, sqlContainsGroupMembership, groupID.String(), pictureID.String()); err != nil {
		return false, fmt.Errorf("check group membership: %w", err)
	}
	return exists, nil
}

// SharedGroupRepository implements group.SharedGroupRepository against
// PostgreSQL.
type SharedGroupRepository struct {
	db sqlExecer
}

func NewSharedGroupRepository(db sqlExecer) *SharedGroupRepository { return &SharedGroupRepository{db: db} }

func (r *SharedGroupRepository) FindByRecipientAndGroup(ctx context.Context, recipientID identity.UserID, groupID group.GroupID) (*group.SharedGroup, error) {
	var row sharedGroupRow
	if err := r.db.GetContext(ctx, &row, sqlSelectSharedGroupByRecipientAndGroup, recipientID.String(), groupID.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find shared group: %w", err)
	}
	return rowToSharedGroup(row)
}

func (r *SharedGroupRepository) FindByGroup(ctx context.Context, groupID group.GroupID) ([]*group.SharedGroup, error) {
	var rows []sharedGroupRow
	if err := r.db.SelectContext(ctx, &rows, sqlSelectSharedGroupsByGroup, groupID.String()); err != nil {
		return nil, fmt.Errorf("find shared groups by group: %w", err)
	}
	return rowsToSharedGroups(rows)
}

func (r *SharedGroupRepository) FindByRecipient(ctx context.Context, recipientID identity.UserID) ([]*group.SharedGroup, error) {
	var rows []sharedGroupRow
	if err := r.db.SelectContext(ctx, &rows, sqlSelectSharedGroupsByRecipient, recipientID.String()); err != nil {
		return nil, fmt.Errorf("find shared groups by recipient: %w", err)
	}
	return rowsToSharedGroups(rows)
}

func (r *SharedGroupRepository) Save(ctx context.Context, s *group.SharedGroup) error {
	var matchConversionGroupID *string
	if !s.MatchConversionGroupID().IsZero() {
		id := s.MatchConversionGroupID().String()
		matchConversionGroupID = &id
	}
	_, err := r.db.ExecContext(ctx, sqlInsertSharedGroup,
		s.RecipientID().String(), s.GroupID().String(), int64(s.Permissions()),
		matchConversionGroupID, s.Copied(), s.Confirmed(),
	)
	if err != nil {
		return fmt.Errorf("save shared group: %w", err)
	}
	return nil
}

func (r *SharedGroupRepository) Delete(ctx context.Context, recipientID identity.UserID, groupID group.GroupID) error {
	if _, err := r.db.ExecContext(ctx, sqlDeleteSharedGroup, recipientID.String(), groupID.String()); err != nil {
		return fmt.Errorf("delete shared group: %w", err)
	}
	return nil
}

func rowToSharedGroup(row sharedGroupRow) (*group.SharedGroup, error) {
	recipientID, err := identity.ParseUserID(row.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("parse recipient id: %w", err)
	}
	groupID, err := group.ParseGroupID(row.GroupID)
	if err != nil {
		return nil, fmt.Errorf("parse group id: %w", err)
	}
	var matchConversionGroupID group.GroupID
	if row.MatchConversionGroupID.Valid {
		matchConversionGroupID, err = group.ParseGroupID(row.MatchConversionGroupID.String)
		if err != nil {
			return nil, fmt.Errorf("parse match conversion group id: %w", err)
		}
	}
	return group.ReconstructSharedGroup(recipientID, groupID, group.Permissions(row.Permissions), matchConversionGroupID, row.Copied, row.Confirmed), nil
}

func rowsToSharedGroups(rows []sharedGroupRow) ([]*group.SharedGroup, error) {
	out := make([]*group.SharedGroup, 0, len(rows))
	for _, row := range rows {
		s, err := rowToSharedGroup(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
