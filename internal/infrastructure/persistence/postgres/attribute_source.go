package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/archypix/arrangement-engine/internal/collaborators"
	"github.com/archypix/arrangement-engine/internal/domain/filter"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/domain/tag"
)

// AttributeSource implements coordinator.AttributeSource (the union of
// strategy.PictureFilterer, strategy.TagReader, strategy.ExifValueReader,
// and strategy.LocationSource) directly against PostgreSQL, rather than
// going through the Picture/Tag aggregates: every Strategy Variant that
// needs attribute data wants a set-oriented answer (which of these
// candidates match?) that the database is better positioned to compute
// than row-by-row Go code.
type AttributeSource struct {
	db         sqlExecer
	clusterer  collaborators.LocationClusterer
}

// NewAttributeSource constructs an AttributeSource. clusterer performs the
// actual geographic clustering; this adapter only resolves candidate
// pictures to GeoPoints and forwards them.
func NewAttributeSource(db sqlExecer, clusterer collaborators.LocationClusterer) *AttributeSource {
	return &AttributeSource{db: db, clusterer: clusterer}
}

// FilterPictures compiles f to SQL via filter.Compile and restricts the
// result to candidateIDs, fulfilling strategy.PictureFilterer.
func (s *AttributeSource) FilterPictures(ctx context.Context, f filter.Filter, candidateIDs []picture.PictureID) ([]picture.PictureID, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(candidateIDs))
	for i, id := range candidateIDs {
		ids[i] = id.String()
	}
	expr, args, _ := filter.Compile(f, ids, 1)
	query := fmt.Sprintf("SELECT p.id FROM pictures p WHERE %s", expr)
	pqArgs := make([]interface{}, len(args))
	for i, a := range args {
		if ss, ok := a.([]string); ok {
			pqArgs[i] = pq.Array(ss)
			continue
		}
		pqArgs[i] = a
	}
	var rows []string
	if err := s.db.SelectContext(ctx, &rows, query, pqArgs...); err != nil {
		return nil, fmt.Errorf("filter pictures: %w", err)
	}
	out := make([]picture.PictureID, 0, len(rows))
	for _, r := range rows {
		id, err := picture.ParsePictureID(r)
		if err != nil {
			return nil, fmt.Errorf("parse picture id: %w", err)
		}
		out = append(out, id)
	}
	return out, nil
}

// TagsInGroup fulfills strategy.TagReader.
func (s *AttributeSource) TagsInGroup(ctx context.Context, tagGroupID tag.TagGroupID) ([]tag.TagID, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, sqlSelectTagsByGroup, tagGroupID.String()); err != nil {
		return nil, fmt.Errorf("tags in group: %w", err)
	}
	out := make([]tag.TagID, 0, len(ids))
	for _, idStr := range ids {
		id, err := tag.ParseTagID(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse tag id: %w", err)
		}
		out = append(out, id)
	}
	return out, nil
}

// PicturesWithTag fulfills strategy.TagReader, restricting to pool.
func (s *AttributeSource) PicturesWithTag(ctx context.Context, tagID tag.TagID, pool []picture.PictureID) ([]picture.PictureID, error) {
	if len(pool) == 0 {
		return nil, nil
	}
	poolIDs := make([]string, len(pool))
	for i, id := range pool {
		poolIDs[i] = id.String()
	}
	const query = `
		SELECT picture_id FROM pictures_tags
		WHERE tag_id = $1 AND picture_id = ANY($2)
	`
	var rows []string
	if err := s.db.SelectContext(ctx, &rows, query, tagID.String(), pq.Array(poolIDs)); err != nil {
		return nil, fmt.Errorf("pictures with tag: %w", err)
	}
	out := make([]picture.PictureID, 0, len(rows))
	for _, r := range rows {
		id, err := picture.ParsePictureID(r)
		if err != nil {
			return nil, fmt.Errorf("parse picture id: %w", err)
		}
		out = append(out, id)
	}
	return out, nil
}

// ExifValues fulfills strategy.ExifValueReader, reading one numeric
// column per candidate. field names a column validated against the
// fixed ExifField enum by the filter package, never user input directly.
func (s *AttributeSource) ExifValues(ctx context.Context, field filter.ExifField, candidates []picture.PictureID) (map[picture.PictureID]float64, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	ids := make([]string, len(candidates))
	for i, id := range candidates {
		ids[i] = id.String()
	}
	query := fmt.Sprintf("SELECT id, %s AS value FROM pictures WHERE %s IS NOT NULL AND id = ANY($1)", field, field)
	type valueRow struct {
		ID    string  `db:"id"`
		Value float64 `db:"value"`
	}
	var rows []valueRow
	if err := s.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("exif values: %w", err)
	}
	out := make(map[picture.PictureID]float64, len(rows))
	for _, row := range rows {
		id, err := picture.ParsePictureID(row.ID)
		if err != nil {
			return nil, fmt.Errorf("parse picture id: %w", err)
		}
		out[id] = row.Value
	}
	return out, nil
}

// GeoPoints fulfills strategy.LocationSource, resolving candidates with
// both latitude and longitude set.
func (s *AttributeSource) GeoPoints(ctx context.Context, candidates []picture.PictureID) ([]collaborators.GeoPoint, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	ids := make([]string, len(candidates))
	for i, id := range candidates {
		ids[i] = id.String()
	}
	const query = `
		SELECT id, latitude, longitude FROM pictures
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL AND id = ANY($1)
	`
	type geoRow struct {
		ID        string  `db:"id"`
		Latitude  float64 `db:"latitude"`
		Longitude float64 `db:"longitude"`
	}
	var rows []geoRow
	if err := s.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("geo points: %w", err)
	}
	out := make([]collaborators.GeoPoint, 0, len(rows))
	for _, row := range rows {
		id, err := picture.ParsePictureID(row.ID)
		if err != nil {
			return nil, fmt.Errorf("parse picture id: %w", err)
		}
		out = append(out, collaborators.GeoPoint{PictureID: id, Latitude: row.Latitude, Longitude: row.Longitude})
	}
	return out, nil
}

// Cluster fulfills strategy.LocationSource by delegating to the injected
// collaborators.LocationClusterer.
func (s *AttributeSource) Cluster(ctx context.Context, points []collaborators.GeoPoint, sharpness float64) ([]collaborators.LocationCluster, error) {
	return s.clusterer.Cluster(ctx, points, sharpness)
}
