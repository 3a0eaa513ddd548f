package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/filter"
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

const (
	sqlInsertArrangement = `
		INSERT INTO arrangements (
			id, owner_id, name, strong_match_conversion, selection_filter, strategy, dependency_kind
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			strong_match_conversion = EXCLUDED.strong_match_conversion,
			selection_filter = EXCLUDED.selection_filter,
			strategy = EXCLUDED.strategy,
			dependency_kind = EXCLUDED.dependency_kind
	`

	sqlSelectArrangementByID = `
		SELECT id, owner_id, name, strong_match_conversion, selection_filter, strategy, dependency_kind
		FROM arrangements WHERE id = $1
	`

	sqlSelectArrangementsByOwner = `
		SELECT id, owner_id, name, strong_match_conversion, selection_filter, strategy, dependency_kind
		FROM arrangements WHERE owner_id = $1
	`

	sqlDeleteArrangement = `DELETE FROM arrangements WHERE id = $1`
	sqlExistsArrangement = `SELECT EXISTS(SELECT 1 FROM arrangements WHERE id = $1)`
)

type arrangementRow struct {
	ID                    string         `db:"id"`
	OwnerID               string         `db:"owner_id"`
	Name                  string         `db:"name"`
	StrongMatchConversion bool           `db:"strong_match_conversion"`
	SelectionFilter       []byte         `db:"selection_filter"`
	Strategy              []byte         `db:"strategy"`
	DependencyKind        int64          `db:"dependency_kind"`
}

// ArrangementRepository implements arrangement.Repository against
// PostgreSQL. selectionFilter and strategy are both stored as jsonb: the
// former through filter.Filter's own MarshalJSON/UnmarshalJSON, the
// latter as the opaque envelope the strategy package's Encode/Decode
// already produce.
type ArrangementRepository struct {
	db sqlExecer
}

func NewArrangementRepository(db sqlExecer) *ArrangementRepository {
	return &ArrangementRepository{db: db}
}

func (r *ArrangementRepository) NextID() arrangement.ArrangementID { return arrangement.NewArrangementID() }

func (r *ArrangementRepository) FindByID(ctx context.Context, id arrangement.ArrangementID) (*arrangement.Arrangement, error) {
	var row arrangementRow
	if err := r.db.GetContext(ctx, &row, sqlSelectArrangementByID, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrArrangementNotFound
		}
		return nil, fmt.Errorf("find arrangement by id: %w", err)
	}
	return rowToArrangement(row)
}

func (r *ArrangementRepository) FindByOwner(ctx context.Context, ownerID identity.UserID) ([]*arrangement.Arrangement, error) {
	var rows []arrangementRow
	if err := r.db.SelectContext(ctx, &rows, sqlSelectArrangementsByOwner, ownerID.String()); err != nil {
		return nil, fmt.Errorf("find arrangements by owner: %w", err)
	}
	out := make([]*arrangement.Arrangement, 0, len(rows))
	for _, row := range rows {
		a, err := rowToArrangement(row)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *ArrangementRepository) Save(ctx context.Context, a *arrangement.Arrangement) error {
	selectionFilterJSON, err := json.Marshal(a.SelectionFilter())
	if err != nil {
		return fmt.Errorf("marshal selection filter: %w", err)
	}
	_, err = r.db.ExecContext(ctx, sqlInsertArrangement,
		a.ID().String(), a.OwnerID().String(), a.Name(), a.StrongMatchConversion(),
		selectionFilterJSON, a.Strategy(), int64(a.DependencyKind()),
	)
	if err != nil {
		return fmt.Errorf("save arrangement: %w", err)
	}
	return nil
}

func (r *ArrangementRepository) Delete(ctx context.Context, id arrangement.ArrangementID) error {
	if _, err := r.db.ExecContext(ctx, sqlDeleteArrangement, id.String()); err != nil {
		return fmt.Errorf("delete arrangement: %w", err)
	}
	return nil
}

func (r *ArrangementRepository) ExistsByID(ctx context.Context, id arrangement.ArrangementID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, sqlExistsArrangement, id.String()); err != nil {
		return false, fmt.Errorf("check arrangement existence: %w", err)
	}
	return exists, nil
}

func rowToArrangement(row arrangementRow) (*arrangement.Arrangement, error) {
	id, err := arrangement.ParseArrangementID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("parse arrangement id: %w", err)
	}
	ownerID, err := identity.ParseUserID(row.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("parse owner id: %w", err)
	}
	var selectionFilter filter.Filter
	if len(row.SelectionFilter) > 0 {
		if err := json.Unmarshal(row.SelectionFilter, &selectionFilter); err != nil {
			return nil, fmt.Errorf("unmarshal selection filter: %w", err)
		}
	}
	return arrangement.ReconstructArrangement(
		id, ownerID, row.Name, row.StrongMatchConversion, selectionFilter, row.Strategy,
		shared.DependencyKind(row.DependencyKind),
	), nil
}
