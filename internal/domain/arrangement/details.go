package arrangement

import "github.com/archypix/arrangement-engine/internal/domain/shared"

// Details is a read-model derived from an Arrangement: its own dependency
// kind plus the set of other arrangements whose strategy depends on this
// one (DependantArrangementIDs). The Dependency Scheduler walks Details,
// not Arrangement, since it needs the reverse edges.
//
// Details equality is by ArrangementID alone, matching
// original_source's ArrangementDetails PartialEq implementation (two
// Details are "the same arrangement" regardless of how their derived
// dependant set currently reads).
type Details struct {
	Arrangement             *Arrangement
	DependantArrangementIDs []ArrangementID
}

// Equal reports whether d and other refer to the same arrangement.
func (d Details) Equal(other Details) bool {
	return d.Arrangement.ID().Equals(other.Arrangement.ID())
}

// DependencyKind returns the arrangement's own dependency kind (what it
// reads), not what depends on it.
func (d Details) DependencyKind() shared.DependencyKind {
	return d.Arrangement.DependencyKind()
}

// DeriveDependants computes, for every arrangement in all, the set of
// other arrangements whose DependencyKind intersects DependsOnGroups and
// which therefore may depend on this arrangement's groups. This is a
// conservative over-approximation: any arrangement with a
// group-dependent strategy is treated as a potential dependant of every
// other arrangement, since which specific groups a FilterGrouping leaf
// names is only known by decoding its strategy — the scheduler only needs
// a safe superset to seed topological_sort_filtered.
//
// original_source's set_dependant_arrangements_auto loops
// `0..arrangements.len()-1`, silently skipping the last arrangement in the
// slice; that omission is not carried forward here — every arrangement in
// all is considered both as a subject and as a candidate dependant.
func DeriveDependants(all []*Arrangement) []Details {
	details := make([]Details, len(all))
	for i, a := range all {
		details[i] = Details{Arrangement: a}
	}
	for i := range details {
		var dependants []ArrangementID
		for j := range details {
			if i == j {
				continue
			}
			candidate := details[j].Arrangement
			if candidate.DependencyKind().Intersects(shared.DependsOnGroups) {
				dependants = append(dependants, candidate.ID())
			}
		}
		details[i].DependantArrangementIDs = dependants
	}
	return details
}
