package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/hierarchy"
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

const (
	sqlInsertHierarchy = `
		INSERT INTO hierarchies (id, owner_id, name) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`
	sqlSelectHierarchyByID    = `SELECT id, owner_id, name FROM hierarchies WHERE id = $1`
	sqlSelectHierarchiesByOwner = `SELECT id, owner_id, name FROM hierarchies WHERE owner_id = $1`
	sqlDeleteHierarchy        = `DELETE FROM hierarchies WHERE id = $1`

	sqlInsertPlacement = `
		INSERT INTO hierarchies_arrangements (hierarchy_id, arrangement_id, parent_group_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (hierarchy_id, arrangement_id) DO UPDATE SET parent_group_id = EXCLUDED.parent_group_id
	`
	sqlSelectPlacementsByHierarchy = `
		SELECT hierarchy_id, arrangement_id, parent_group_id
		FROM hierarchies_arrangements WHERE hierarchy_id = $1
	`
	sqlSelectPlacementsByArrangement = `
		SELECT hierarchy_id, arrangement_id, parent_group_id
		FROM hierarchies_arrangements WHERE arrangement_id = $1
	`
	sqlDeletePlacement = `
		DELETE FROM hierarchies_arrangements WHERE hierarchy_id = $1 AND arrangement_id = $2
	`
)

type hierarchyRow struct {
	ID      string `db:"id"`
	OwnerID string `db:"owner_id"`
	Name    string `db:"name"`
}

type placementRow struct {
	HierarchyID   string         `db:"hierarchy_id"`
	ArrangementID string         `db:"arrangement_id"`
	ParentGroupID sql.NullString `db:"parent_group_id"`
}

// HierarchyRepository implements hierarchy.Repository against PostgreSQL.
type HierarchyRepository struct {
	db sqlExecer
}

func NewHierarchyRepository(db sqlExecer) *HierarchyRepository { return &HierarchyRepository{db: db} }

func (r *HierarchyRepository) NextID() hierarchy.HierarchyID { return hierarchy.NewHierarchyID() }

func (r *HierarchyRepository) FindByID(ctx context.Context, id hierarchy.HierarchyID) (*hierarchy.Hierarchy, error) {
	var row hierarchyRow
	if err := r.db.GetContext(ctx, &row, sqlSelectHierarchyByID, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find hierarchy by id: %w", err)
	}
	return rowToHierarchy(row)
}

func (r *HierarchyRepository) FindByOwner(ctx context.Context, ownerID identity.UserID) ([]*hierarchy.Hierarchy, error) {
	var rows []hierarchyRow
	if err := r.db.SelectContext(ctx, &rows, sqlSelectHierarchiesByOwner, ownerID.String()); err != nil {
		return nil, fmt.Errorf("find hierarchies by owner: %w", err)
	}
	out := make([]*hierarchy.Hierarchy, 0, len(rows))
	for _, row := range rows {
		h, err := rowToHierarchy(row)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func (r *HierarchyRepository) Save(ctx context.Context, h *hierarchy.Hierarchy) error {
	_, err := r.db.ExecContext(ctx, sqlInsertHierarchy, h.ID().String(), h.OwnerID().String(), h.Name())
	if err != nil {
		return fmt.Errorf("save hierarchy: %w", err)
	}
	return nil
}

func (r *HierarchyRepository) Delete(ctx context.Context, id hierarchy.HierarchyID) error {
	if _, err := r.db.ExecContext(ctx, sqlDeleteHierarchy, id.String()); err != nil {
		return fmt.Errorf("delete hierarchy: %w", err)
	}
	return nil
}

func rowToHierarchy(row hierarchyRow) (*hierarchy.Hierarchy, error) {
	id, err := hierarchy.ParseHierarchyID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("parse hierarchy id: %w", err)
	}
	ownerID, err := identity.ParseUserID(row.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("parse owner id: %w", err)
	}
	return hierarchy.ReconstructHierarchy(id, ownerID, row.Name), nil
}

// PlacementRepository implements hierarchy.PlacementRepository against
// the hierarchies_arrangements join table.
type PlacementRepository struct {
	db sqlExecer
}

func NewPlacementRepository(db sqlExecer) *PlacementRepository { return &PlacementRepository{db: db} }

func (r *PlacementRepository) FindByHierarchy(ctx context.Context, hierarchyID hierarchy.HierarchyID) ([]hierarchy.Placement, error) {
	var rows []placementRow
	if err := r.db.SelectContext(ctx, &rows, sqlSelectPlacementsByHierarchy, hierarchyID.String()); err != nil {
		return nil, fmt.Errorf("find placements by hierarchy: %w", err)
	}
	return rowsToPlacements(rows)
}

func (r *PlacementRepository) FindByArrangement(ctx context.Context, arrangementID arrangement.ArrangementID) ([]hierarchy.Placement, error) {
	var rows []placementRow
	if err := r.db.SelectContext(ctx, &rows, sqlSelectPlacementsByArrangement, arrangementID.String()); err != nil {
		return nil, fmt.Errorf("find placements by arrangement: %w", err)
	}
	return rowsToPlacements(rows)
}

func (r *PlacementRepository) Save(ctx context.Context, p hierarchy.Placement) error {
	var parentGroupID *string
	if p.ParentGroupID != nil {
		id := p.ParentGroupID.String()
		parentGroupID = &id
	}
	_, err := r.db.ExecContext(ctx, sqlInsertPlacement, p.HierarchyID.String(), p.ArrangementID.String(), parentGroupID)
	if err != nil {
		return fmt.Errorf("save placement: %w", err)
	}
	return nil
}

func (r *PlacementRepository) Delete(ctx context.Context, hierarchyID hierarchy.HierarchyID, arrangementID arrangement.ArrangementID) error {
	if _, err := r.db.ExecContext(ctx, sqlDeletePlacement, hierarchyID.String(), arrangementID.String()); err != nil {
		return fmt.Errorf("delete placement: %w", err)
	}
	return nil
}

func rowsToPlacements(rows []placementRow) ([]hierarchy.Placement, error) {
	out := make([]hierarchy.Placement, 0, len(rows))
	for _, row := range rows {
		hierarchyID, err := hierarchy.ParseHierarchyID(row.HierarchyID)
		if err != nil {
			return nil, fmt.Errorf("parse hierarchy id: %w", err)
		}
		arrangementID, err := arrangement.ParseArrangementID(row.ArrangementID)
		if err != nil {
			return nil, fmt.Errorf("parse arrangement id: %w", err)
		}
		var parentGroupID *group.GroupID
		if row.ParentGroupID.Valid {
			id, err := group.ParseGroupID(row.ParentGroupID.String)
			if err != nil {
				return nil, fmt.Errorf("parse parent group id: %w", err)
			}
			parentGroupID = &id
		}
		out = append(out, hierarchy.Placement{HierarchyID: hierarchyID, ArrangementID: arrangementID, ParentGroupID: parentGroupID})
	}
	return out, nil
}
