package strategy

import (
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
)

// Recorder accumulates UngroupRecords during a single classification
// pass, so the Re-evaluation Coordinator can report exactly which
// pictures left which groups as a consequence of re-running a strategy.
// It also unconditionally accumulates every membership add classify
// performs, regardless of enabled, since shared-group mirroring
// (spec.md §4.5) must propagate every write that modifies a group, not
// just the ones an entry point chooses to report as ungroups.
type Recorder struct {
	enabled bool
	records []group.UngroupRecord
	adds    []group.Membership
}

// NewRecorder constructs a Recorder. When enabled is false, Record is a
// no-op — callers that only need the mutated flag (e.g. a dry-run cycle
// check) can skip the bookkeeping entirely.
func NewRecorder(enabled bool) *Recorder {
	return &Recorder{enabled: enabled}
}

// Record appends one UngroupRecord per picture id, all against groupID
// with the same reason.
func (r *Recorder) Record(groupID group.GroupID, pictureIDs []picture.PictureID, reason string) {
	if !r.enabled {
		return
	}
	for _, pid := range pictureIDs {
		r.records = append(r.records, group.UngroupRecord{GroupID: groupID, PictureID: pid, Reason: reason})
	}
}

// Records returns everything recorded so far.
func (r *Recorder) Records() []group.UngroupRecord {
	return r.records
}

// RecordAdd appends one group.Membership per picture id, all against
// groupID. Unlike Record, this always runs — mirroring needs to see
// every add a classification pass performed.
func (r *Recorder) RecordAdd(groupID group.GroupID, pictureIDs []picture.PictureID) {
	for _, pid := range pictureIDs {
		r.adds = append(r.adds, group.Membership{GroupID: groupID, PictureID: pid})
	}
}

// Adds returns every membership add recorded so far.
func (r *Recorder) Adds() []group.Membership {
	return r.adds
}
