package filter

import "github.com/archypix/arrangement-engine/internal/domain/shared"

// Kind identifies which of the four term shapes a Term carries.
type Kind int

const (
	TermIncludeTags Kind = iota
	TermIncludeGroups
	TermExifEquals
	TermExifInInterval
)

// ExifField names one of the picture's EXIF-derived columns a Term can
// compare against.
type ExifField string

const (
	ExifFieldCreationDate  ExifField = "creation_date"
	ExifFieldEditionDate   ExifField = "edition_date"
	ExifFieldLatitude      ExifField = "latitude"
	ExifFieldLongitude     ExifField = "longitude"
	ExifFieldAltitude      ExifField = "altitude"
	ExifFieldOrientation   ExifField = "orientation"
	ExifFieldWidth         ExifField = "width"
	ExifFieldHeight        ExifField = "height"
	ExifFieldCameraBrand   ExifField = "camera_brand"
	ExifFieldCameraModel   ExifField = "camera_model"
	ExifFieldFocalLength   ExifField = "focal_length"
	ExifFieldExposureTime  ExifField = "exposure_time"
	ExifFieldIsoSpeed      ExifField = "iso_speed"
	ExifFieldFNumber       ExifField = "f_number"
)

// nullableFields is the set of EXIF columns that may be null, requiring
// the explicit is-not-null guard before equality/interval comparison.
// creation_date, edition_date, orientation, width and height are set
// unconditionally at upload time and never null.
var nullableFields = map[ExifField]bool{
	ExifFieldLatitude:     true,
	ExifFieldLongitude:    true,
	ExifFieldAltitude:     true,
	ExifFieldCameraBrand:  true,
	ExifFieldCameraModel:  true,
	ExifFieldFocalLength:  true,
	ExifFieldExposureTime: true,
	ExifFieldIsoSpeed:     true,
	ExifFieldFNumber:      true,
}

// ExposureTime is the (numerator, denominator) pair compared by exact
// equality, never by reduced-fraction value — callers must pre-normalize
// before constructing an ExifEquals term over ExifFieldExposureTime.
type ExposureTime struct {
	Num int64
	Den int64
}

// Term is one leaf of a Filter.
type Term struct {
	Kind Kind

	// IDs holds tag or group ids for TermIncludeTags/TermIncludeGroups.
	IDs []string

	// Field, Values and Interval are used by TermExifEquals/TermExifInInterval
	// for every field except exposure_time, which uses ExposureTimePairs
	// instead so the (num, den) pair survives a JSON round-trip as a
	// concrete struct rather than as an untyped map.
	Field            ExifField
	Values           []interface{}
	Interval         [2]interface{}
	ExposureTimePairs []ExposureTime
}

// IncludeTags builds a Term matching pictures carrying any of the given
// tag ids.
func IncludeTags(tagIDs ...string) Term {
	return Term{Kind: TermIncludeTags, IDs: tagIDs}
}

// IncludeGroups builds a Term matching pictures that are members of any
// of the given group ids.
func IncludeGroups(groupIDs ...string) Term {
	return Term{Kind: TermIncludeGroups, IDs: groupIDs}
}

// ExifEquals builds a Term matching pictures whose field equals any of
// values. For a nullable field, pictures where the column is null never
// match. Do not call this with field == ExifFieldExposureTime; use
// ExifEqualsExposureTime instead.
func ExifEquals(field ExifField, values ...interface{}) Term {
	return Term{Kind: TermExifEquals, Field: field, Values: values}
}

// ExifEqualsExposureTime builds a Term matching pictures whose exposure
// time equals any of the given exact (num, den) pairs. Callers must
// pre-normalize pairs to the same representation the picture was stored
// with — equality is exact, not on reduced fractions.
func ExifEqualsExposureTime(pairs ...ExposureTime) Term {
	return Term{Kind: TermExifEquals, Field: ExifFieldExposureTime, ExposureTimePairs: pairs}
}

// ExifInInterval builds a Term matching pictures whose field falls within
// the closed interval [lo, hi]. For a nullable field, pictures where the
// column is null never match.
func ExifInInterval(field ExifField, lo, hi interface{}) Term {
	return Term{Kind: TermExifInInterval, Field: field, Interval: [2]interface{}{lo, hi}}
}

// DependencyKind reports which dependency bit this term contributes.
func (t Term) DependencyKind() shared.DependencyKind {
	switch t.Kind {
	case TermIncludeTags:
		return shared.DependsOnTags
	case TermIncludeGroups:
		return shared.DependsOnGroups
	default:
		return shared.DependsOnExif
	}
}

// IsNullable reports whether t's EXIF field may be null in the pictures
// table, and therefore needs the explicit is-not-null guard at compile
// time.
func (t Term) IsNullable() bool {
	return nullableFields[t.Field]
}
