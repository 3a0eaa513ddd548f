// Package filter implements the Filter Predicate Algebra: a recursive
// boolean sum type over pictures that compiles to a SQL WHERE fragment
// the picture store's search query can fold in, rather than to an
// in-memory predicate function — membership evaluation always happens in
// the database, never picture-by-picture in Go.
package filter

import "github.com/archypix/arrangement-engine/internal/domain/shared"

// Filter is the recursive sum type And(Filter*) | Or(Filter*) |
// Not(Filter) | Leaf(Term). Exactly one of the fields is non-nil/non-empty
// on any constructed value — use the And/Or/Not/Leaf constructors rather
// than building a Filter literal directly.
type Filter struct {
	and  []Filter
	or   []Filter
	not  *Filter
	leaf *Term
}

// And builds a conjunction. An empty And compiles to an always-true
// predicate, matching the algebra's stated identity even though the
// Strategy Variants never actually construct one.
func And(filters ...Filter) Filter { return Filter{and: filters} }

// Or builds a disjunction. An empty Or compiles to an always-false
// predicate.
func Or(filters ...Filter) Filter {
	if filters == nil {
		filters = []Filter{}
	}
	return Filter{or: filters}
}

// Not negates a filter.
func Not(f Filter) Filter { return Filter{not: &f} }

// Leaf wraps a single Term.
func Leaf(t Term) Filter { return Filter{leaf: &t} }

// isEmpty reports whether f is the zero Filter{} (or an And() with no
// operands), which Compile treats as always-true.
func (f Filter) isEmpty() bool {
	return f.and == nil && f.or == nil && f.not == nil && f.leaf == nil
}

// CollectLeaves returns every Term in f in pre-order, duplicates
// preserved.
func CollectLeaves(f Filter) []Term {
	var out []Term
	collectLeaves(f, &out)
	return out
}

func collectLeaves(f Filter, out *[]Term) {
	switch {
	case f.leaf != nil:
		*out = append(*out, *f.leaf)
	case f.not != nil:
		collectLeaves(*f.not, out)
	case f.and != nil:
		for _, child := range f.and {
			collectLeaves(child, out)
		}
	case f.or != nil:
		for _, child := range f.or {
			collectLeaves(child, out)
		}
	}
}

// DependencyKind unions the dependency kind of every term in f: groups
// iff any IncludeGroups leaf, tags iff any IncludeTags leaf, exif iff any
// Exif* leaf.
func DependencyKind(f Filter) shared.DependencyKind {
	var kind shared.DependencyKind
	for _, t := range CollectLeaves(f) {
		kind = kind.Union(t.DependencyKind())
	}
	return kind
}

// DependantGroupIDs returns the flat union of every IncludeGroups leaf's
// ids in f.
func DependantGroupIDs(f Filter) []string {
	var ids []string
	for _, t := range CollectLeaves(f) {
		if t.Kind == TermIncludeGroups {
			ids = append(ids, t.IDs...)
		}
	}
	return ids
}
