package shared

// DependencyKind is a bitmask describing which inputs an arrangement's
// strategy reads: tag membership, group membership (of other
// arrangements), and EXIF metadata. The Dependency Scheduler uses it to
// seed a filtered topological sort (topological_sort_filtered) without
// visiting arrangements the triggering change cannot possibly affect.
type DependencyKind uint8

const (
	// DependsOnTags is set when a strategy reads tag or tag-group
	// membership (FilterGrouping with an IncludeTags leaf, TagGrouping).
	DependsOnTags DependencyKind = 1 << iota

	// DependsOnGroups is set when a strategy reads another arrangement's
	// group membership (FilterGrouping with an IncludeGroups leaf).
	DependsOnGroups

	// DependsOnExif is set when a strategy reads EXIF-derived fields
	// (FilterGrouping with ExifEquals/ExifInInterval leaves,
	// ExifValuesGrouping, ExifIntervalGrouping, LocationGrouping).
	DependsOnExif
)

// Intersects reports whether d and other share at least one bit, mirroring
// original_source's ArrangementDependencyType::match_any.
func (d DependencyKind) Intersects(other DependencyKind) bool {
	return d&other != 0
}

// Has reports whether d includes every bit set in other.
func (d DependencyKind) Has(other DependencyKind) bool {
	return d&other == other
}

// Union returns the bitwise union of d and other.
func (d DependencyKind) Union(other DependencyKind) DependencyKind {
	return d | other
}
