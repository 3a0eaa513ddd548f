package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

const (
	sqlInsertPicture = `
		INSERT INTO pictures (
			id, owner_id, author_id, name, comment, copied, width, height, orientation,
			camera_brand, camera_model, focal_length, exposure_time_num, exposure_time_den,
			iso_speed, f_number, latitude, longitude, altitude,
			creation_date, edition_date, deleted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, comment = EXCLUDED.comment, width = EXCLUDED.width,
			height = EXCLUDED.height, orientation = EXCLUDED.orientation,
			camera_brand = EXCLUDED.camera_brand, camera_model = EXCLUDED.camera_model,
			focal_length = EXCLUDED.focal_length, exposure_time_num = EXCLUDED.exposure_time_num,
			exposure_time_den = EXCLUDED.exposure_time_den, iso_speed = EXCLUDED.iso_speed,
			f_number = EXCLUDED.f_number, latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude,
			altitude = EXCLUDED.altitude, edition_date = EXCLUDED.edition_date,
			deleted_at = EXCLUDED.deleted_at
	`

	sqlSelectPictureByID = `
		SELECT id, owner_id, author_id, name, comment, copied, width, height, orientation,
		       camera_brand, camera_model, focal_length, exposure_time_num, exposure_time_den,
		       iso_speed, f_number, latitude, longitude, altitude,
		       creation_date, edition_date, deleted_at
		FROM pictures WHERE id = $1
	`

	sqlSelectPicturesByIDs = `
		SELECT id, owner_id, author_id, name, comment, copied, width, height, orientation,
		       camera_brand, camera_model, focal_length, exposure_time_num, exposure_time_den,
		       iso_speed, f_number, latitude, longitude, altitude,
		       creation_date, edition_date, deleted_at
		FROM pictures WHERE id = ANY($1)
	`

	sqlSelectPicturesByOwner = `
		SELECT id, owner_id, author_id, name, comment, copied, width, height, orientation,
		       camera_brand, camera_model, focal_length, exposure_time_num, exposure_time_den,
		       iso_speed, f_number, latitude, longitude, altitude,
		       creation_date, edition_date, deleted_at
		FROM pictures
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY creation_date DESC
		LIMIT $2 OFFSET $3
	`

	sqlCountPicturesByOwner = `SELECT COUNT(*) FROM pictures WHERE owner_id = $1 AND deleted_at IS NULL`

	sqlSelectPictureIDsByOwner = `SELECT id FROM pictures WHERE owner_id = $1 AND deleted_at IS NULL`

	sqlDeletePicture = `DELETE FROM pictures WHERE id = $1`

	sqlExistsPicture = `SELECT EXISTS(SELECT 1 FROM pictures WHERE id = $1)`
)

type pictureRow struct {
	ID              string         `db:"id"`
	OwnerID         string         `db:"owner_id"`
	AuthorID        string         `db:"author_id"`
	Name            string         `db:"name"`
	Comment         string         `db:"comment"`
	Copied          bool           `db:"copied"`
	Width           int64          `db:"width"`
	Height          int64          `db:"height"`
	Orientation     string         `db:"orientation"`
	CameraBrand     sql.NullString `db:"camera_brand"`
	CameraModel     sql.NullString `db:"camera_model"`
	FocalLengthMM   sql.NullFloat64 `db:"focal_length"`
	ExposureTimeNum sql.NullInt64  `db:"exposure_time_num"`
	ExposureTimeDen sql.NullInt64  `db:"exposure_time_den"`
	ISOSpeed        sql.NullInt64  `db:"iso_speed"`
	FNumber         sql.NullFloat64 `db:"f_number"`
	Latitude        sql.NullFloat64 `db:"latitude"`
	Longitude       sql.NullFloat64 `db:"longitude"`
	AltitudeMeters  sql.NullInt64  `db:"altitude"`
	CreatedAt       time.Time      `db:"creation_date"`
	EditedAt        time.Time      `db:"edition_date"`
	DeletedAt       sql.NullTime   `db:"deleted_at"`
}

// PictureRepository implements picture.Repository against PostgreSQL.
type PictureRepository struct {
	db sqlExecer
}

// NewPictureRepository constructs a PictureRepository. db may be a
// *sqlx.DB or a *sqlx.Tx, so the same constructor serves both ad hoc
// reads and coordinator-scoped transactional writes.
func NewPictureRepository(db sqlExecer) *PictureRepository {
	return &PictureRepository{db: db}
}

func (r *PictureRepository) NextID() picture.PictureID { return picture.NewPictureID() }

func (r *PictureRepository) FindByID(ctx context.Context, id picture.PictureID) (*picture.Picture, error) {
	var row pictureRow
	if err := r.db.GetContext(ctx, &row, sqlSelectPictureByID, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("find picture by id: %w", err)
	}
	return rowToPicture(row)
}

func (r *PictureRepository) FindByIDs(ctx context.Context, ids []picture.PictureID) ([]*picture.Picture, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ids2 := make([]string, len(ids))
	for i, id := range ids {
		ids2[i] = id.String()
	}
	var rows []pictureRow
	if err := r.db.SelectContext(ctx, &rows, sqlSelectPicturesByIDs, pq.Array(ids2)); err != nil {
		return nil, fmt.Errorf("find pictures by ids: %w", err)
	}
	return rowsToPictures(rows)
}

func (r *PictureRepository) FindByOwner(ctx context.Context, ownerID identity.UserID, pagination shared.Pagination) ([]*picture.Picture, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, sqlCountPicturesByOwner, ownerID.String()); err != nil {
		return nil, 0, fmt.Errorf("count pictures by owner: %w", err)
	}
	var rows []pictureRow
	if err := r.db.SelectContext(ctx, &rows, sqlSelectPicturesByOwner, ownerID.String(), pagination.Limit(), pagination.Offset()); err != nil {
		return nil, 0, fmt.Errorf("find pictures by owner: %w", err)
	}
	pics, err := rowsToPictures(rows)
	if err != nil {
		return nil, 0, err
	}
	return pics, total, nil
}

func (r *PictureRepository) FindAllIDsByOwner(ctx context.Context, ownerID identity.UserID) ([]picture.PictureID, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, sqlSelectPictureIDsByOwner, ownerID.String()); err != nil {
		return nil, fmt.Errorf("find picture ids by owner: %w", err)
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

func (r *PictureRepository) Save(ctx context.Context, p *picture.Picture) error {
	exif := p.Exif()
	var deletedAt *time.Time
	if p.DeletedAt() != nil {
		deletedAt = p.DeletedAt()
	}
	_, err := r.db.ExecContext(ctx, sqlInsertPicture,
		p.ID().String(), p.OwnerID().String(), p.AuthorID().String(), p.Name(), p.Comment(), p.Copied(),
		p.Width(), p.Height(), string(p.Orientation()),
		exif.CameraBrand, exif.CameraModel, exif.FocalLengthMM, exif.ExposureTimeNum, exif.ExposureTimeDen,
		exif.ISOSpeed, exif.FNumber, exif.Latitude, exif.Longitude, exif.AltitudeMeters,
		p.CreatedAt(), p.EditedAt(), deletedAt,
	)
	if err != nil {
		return fmt.Errorf("save picture: %w", err)
	}
	return nil
}

func (r *PictureRepository) Delete(ctx context.Context, id picture.PictureID) error {
	if _, err := r.db.ExecContext(ctx, sqlDeletePicture, id.String()); err != nil {
		return fmt.Errorf("delete picture: %w", err)
	}
	return nil
}

func (r *PictureRepository) ExistsByID(ctx context.Context, id picture.PictureID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, sqlExistsPicture, id.String()); err != nil {
		return false, fmt.Errorf("check picture existence: %w", err)
	}
	return exists, nil
}

func rowToPicture(row pictureRow) (*picture.Picture, error) {
	id, err := picture.ParsePictureID(row.ID)
	if err != nil {
		return nil, fmt.Errorf("parse picture id: %w", err)
	}
	ownerID, err := identity.ParseUserID(row.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("parse owner id: %w", err)
	}
	authorID, err := identity.ParseUserID(row.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("parse author id: %w", err)
	}
	var deletedAt *time.Time
	if row.DeletedAt.Valid {
		deletedAt = &row.DeletedAt.Time
	}
	exif := picture.Exif{
		CameraBrand:     nullString(row.CameraBrand),
		CameraModel:     nullString(row.CameraModel),
		FocalLengthMM:   nullFloat(row.FocalLengthMM),
		ExposureTimeNum: nullInt(row.ExposureTimeNum),
		ExposureTimeDen: nullInt(row.ExposureTimeDen),
		ISOSpeed:        nullInt(row.ISOSpeed),
		FNumber:         nullFloat(row.FNumber),
		Latitude:        nullFloat(row.Latitude),
		Longitude:       nullFloat(row.Longitude),
		AltitudeMeters:  nullInt(row.AltitudeMeters),
	}
	return picture.ReconstructPicture(
		id, ownerID, authorID, row.Name, row.Comment, row.Copied,
		row.Width, row.Height, picture.Orientation(row.Orientation), exif,
		row.CreatedAt, row.EditedAt, deletedAt,
	), nil
}

func rowsToPictures(rows []pictureRow) ([]*picture.Picture, error) {
	out := make([]*picture.Picture, 0, len(rows))
	for _, row := range rows {
		p, err := rowToPicture(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}
