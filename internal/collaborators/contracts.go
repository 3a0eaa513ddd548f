// Package collaborators declares the interfaces the arrangement engine
// depends on but does not implement: binary storage, EXIF extraction,
// thumbnail generation, outbound email, TOTP verification, and geographic
// clustering. Every one of these is an external collaborator per the
// engine's scope; only contracts live here.
package collaborators

import (
	"context"
	"time"

	"github.com/archypix/arrangement-engine/internal/domain/picture"
)

// ExifMetadata is the set of fields an ExifExtractor reads off a decoded
// picture. Field presence mirrors picture.Picture's nullable EXIF columns.
type ExifMetadata struct {
	Make            *string
	Model           *string
	ExposureTimeNum *int64
	ExposureTimeDen *int64
	FNumber         *float64
	FocalLength     *float64
	ISOSpeed        *int64
	Latitude        *float64
	Longitude       *float64
	Altitude        *float64
	Orientation     *picture.Orientation
	CapturedAt      *time.Time
	Width           *int64
	Height          *int64
}

// ExifExtractor reads EXIF metadata from raw picture bytes. Implementations
// live outside this module; the engine only consumes the parsed result when
// a picture is registered.
type ExifExtractor interface {
	Extract(ctx context.Context, data []byte) (ExifMetadata, error)
}

// ThumbnailGenerator produces resized picture variants. The engine never
// calls this synchronously — it enqueues a thumbnail-generation task
// (internal/infrastructure/jobs) and a worker process invokes this
// collaborator out of band.
type ThumbnailGenerator interface {
	Generate(ctx context.Context, original []byte, variant string) ([]byte, error)
}

// Mailer sends outbound email. The engine enqueues mailer-send tasks; it
// never awaits delivery.
type Mailer interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// TOTPValidator verifies a time-based one-time password against a user's
// enrolled secret. Out of scope for the arrangement engine itself; nothing
// in this module calls it.
type TOTPValidator interface {
	Validate(ctx context.Context, secret string, code string) (bool, error)
}

// GeoPoint is a single picture's coordinate, used as LocationClusterer
// input.
type GeoPoint struct {
	PictureID picture.PictureID
	Latitude  float64
	Longitude float64
}

// LocationCluster is one cluster produced by a LocationClusterer, holding
// the picture IDs assigned to it.
type LocationCluster struct {
	PictureIDs []picture.PictureID
}

// LocationClusterer groups geotagged pictures by proximity. LocationGrouping
// (internal/domain/strategy) delegates clustering to this collaborator and
// only consumes its result; the clustering algorithm itself (e.g. DBSCAN,
// k-means, grid bucketing) is implementation-defined and may run as a
// background task for large libraries. sharpness is the strategy's own
// per-arrangement tuning knob (e.g. a DBSCAN epsilon in kilometers) —
// passed through rather than configured once at construction time, since
// two arrangements may want different granularities from the same
// collaborator instance.
type LocationClusterer interface {
	Cluster(ctx context.Context, points []GeoPoint, sharpness float64) ([]LocationCluster, error)
}
