// Package scheduler implements the Dependency Scheduler: ordering
// arrangements so that, whenever one arrangement's groups feed another's
// FilterGrouping strategy, the producer is re-evaluated before its
// dependants.
package scheduler

import (
	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
	"github.com/rs/zerolog"
)

// CyclePolicy controls what happens when a strategy edit would introduce a
// cycle into the arrangement dependency graph.
type CyclePolicy int

const (
	// CyclePolicyLogAndContinue logs the cycle and degrades gracefully:
	// cyclic arrangements are still processed, just not in a guaranteed
	// dependency-respecting order. This is the default, matching the
	// behaviour observed in original_source's topological_sort, whose
	// caller discards the cycle error (`let _res = visit(...)`).
	CyclePolicyLogAndContinue CyclePolicy = iota

	// CyclePolicyRejectEdit rejects the strategy edit that would
	// introduce the cycle instead of degrading at evaluation time.
	CyclePolicyRejectEdit
)

// ErrCycleDetected is returned by TopologicalSort when policy is
// CyclePolicyRejectEdit and a cycle exists; under
// CyclePolicyLogAndContinue it is logged but never returned.
var ErrCycleDetected = shared.ErrDependencyCycle

type visitState int

const (
	stateUnvisited visitState = iota
	stateVisiting
	stateVisited
)

// TopologicalSort orders all of details so that, for every arrangement a
// and every other arrangement b listed in a.DependantArrangementIDs, a
// appears before b in the result. Traversal order among independent
// arrangements follows input order (stable), matching the DFS-with
// insertion-order tie-break of original_source's topological_sort.
//
// On a cycle: under CyclePolicyLogAndContinue, the edge that closes the
// cycle is skipped, every arrangement still appears exactly once in DFS
// order (logger receives a Warn), and a nil error is returned.
// Under CyclePolicyRejectEdit, ErrCycleDetected is returned immediately
// and the partial order is still returned for diagnostic use.
func TopologicalSort(details []arrangement.Details, policy CyclePolicy, logger zerolog.Logger) ([]arrangement.Details, error) {
	// producers maps each arrangement to the arrangements that list it in
	// their DependantArrangementIDs, i.e. the ones that must precede it.
	producers := make(map[string][]*arrangement.Details, len(details))
	for i := range details {
		for _, dependantID := range details[i].DependantArrangementIDs {
			k := dependantID.String()
			producers[k] = append(producers[k], &details[i])
		}
	}

	state := make(map[string]visitState, len(details))
	var sorted []arrangement.Details
	var cyclic []arrangement.Details
	var cycleDetected bool

	var visit func(d *arrangement.Details) error
	visit = func(d *arrangement.Details) error {
		key := d.Arrangement.ID().String()
		switch state[key] {
		case stateVisited:
			return nil
		case stateVisiting:
			cycleDetected = true
			return ErrCycleDetected
		}
		state[key] = stateVisiting
		for _, next := range producers[key] {
			if err := visit(next); err != nil {
				if policy == CyclePolicyRejectEdit {
					return err
				}
			}
		}
		state[key] = stateVisited
		sorted = append(sorted, *d)
		return nil
	}

	for i := range details {
		key := details[i].Arrangement.ID().String()
		if state[key] == stateVisited {
			continue
		}
		if err := visit(&details[i]); err != nil && policy == CyclePolicyRejectEdit {
			return sorted, err
		}
	}

	if cycleDetected {
		logger.Warn().Msg("dependency cycle detected among arrangements; degrading to best-effort order")
		if policy == CyclePolicyRejectEdit {
			return sorted, ErrCycleDetected
		}
	}

	// The DFS above appends producers before dependants. The loop visits
	// every arrangement and visit appends each one it enters exactly once,
	// so sorted already holds all of details here; this pass appends, in
	// input order, any arrangement missing from sorted, which in practice
	// is none.
	seen := make(map[string]bool, len(sorted))
	for _, d := range sorted {
		seen[d.Arrangement.ID().String()] = true
	}
	for _, d := range details {
		key := d.Arrangement.ID().String()
		if !seen[key] {
			cyclic = append(cyclic, d)
			seen[key] = true
		}
	}

	return append(sorted, cyclic...), nil
}

// reverseDependencyEdges maps each arrangement's id to the ids in its own
// DependantArrangementIDs (the arrangements that depend on it, in the
// same direction as that field). TopologicalSortFrom and
// TopologicalSortFiltered use this to find everything reachable from a
// seed set by walking forward through dependants.
func reverseDependencyEdges(details []arrangement.Details) map[string][]string {
	edges := make(map[string][]string, len(details))
	for _, d := range details {
		for _, dependantID := range d.DependantArrangementIDs {
			key := d.Arrangement.ID().String()
			edges[key] = append(edges[key], dependantID.String())
		}
	}
	return edges
}

// TopologicalSortFrom returns the dependency-ordered subset of details
// reachable from seed — seed itself plus every arrangement that
// transitively depends on one of the seeds (via DependantArrangementIDs),
// found by breadth-first search before sorting just that subset.
func TopologicalSortFrom(details []arrangement.Details, seed []arrangement.ArrangementID, policy CyclePolicy, logger zerolog.Logger) ([]arrangement.Details, error) {
	byID := make(map[string]arrangement.Details, len(details))
	for _, d := range details {
		byID[d.Arrangement.ID().String()] = d
	}
	edges := reverseDependencyEdges(details)

	visited := make(map[string]bool)
	queue := make([]string, 0, len(seed))
	for _, s := range seed {
		key := s.String()
		if !visited[key] {
			visited[key] = true
			queue = append(queue, key)
		}
	}
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		for _, next := range edges[key] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	subset := make([]arrangement.Details, 0, len(visited))
	for _, d := range details {
		if visited[d.Arrangement.ID().String()] {
			subset = append(subset, d)
		}
	}
	_ = byID
	return TopologicalSort(subset, policy, logger)
}

// TopologicalSortFiltered behaves like TopologicalSortFrom, but the seed
// set is derived automatically: every arrangement whose own
// DependencyKind intersects mask is included as a seed, in addition to
// any explicit seeds passed in. This lets a caller answer "which
// arrangements could possibly need re-evaluation after a tags-changed
// event" without first computing which arrangements specifically read
// tags, matching original_source's ArrangementDependencyType::match_any
// seeding.
func TopologicalSortFiltered(details []arrangement.Details, mask shared.DependencyKind, explicitSeed []arrangement.ArrangementID, policy CyclePolicy, logger zerolog.Logger) ([]arrangement.Details, error) {
	seed := make([]arrangement.ArrangementID, 0, len(explicitSeed)+len(details))
	seed = append(seed, explicitSeed...)
	for _, d := range details {
		if d.Arrangement.DependencyKind().Intersects(mask) {
			seed = append(seed, d.Arrangement.ID())
		}
	}
	return TopologicalSortFrom(details, seed, policy, logger)
}
