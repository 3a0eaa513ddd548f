// Package strategy implements the Strategy Variants: the five group-
// producing rule sets an automatic Arrangement can run, each
// implementing the common Grouping contract and the shared
// classification skeleton.
package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/filter"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// PictureFilterer evaluates a filter.Filter against a candidate set,
// delegating the actual comparison to the picture store rather than
// pulling picture attribute data into the domain layer. Every variant
// receives it: FilterGrouping and ExifValuesGrouping call FilterPictures,
// and the other variants type-assert the same value to the reader
// interface they need.
type PictureFilterer interface {
	FilterPictures(ctx context.Context, f filter.Filter, candidateIDs []picture.PictureID) ([]picture.PictureID, error)
}

// Grouping is the common contract every strategy variant implements.
type Grouping interface {
	// OwnedGroups returns every group whose lifecycle this strategy
	// controls, including any auxiliary "Other" group.
	OwnedGroups() []group.GroupID

	// DependencyKind unions the variant's intrinsic dependency with any
	// embedded filter's dependency.
	DependencyKind() shared.DependencyKind

	// DependantGroupIDs lists the group ids this strategy's filters read
	// (not the groups it owns).
	DependantGroupIDs() []string

	// PreserveUnicity reports whether a picture may belong to at most one
	// of this strategy's groups (true) or to every group it matches
	// (false). Stored on the strategy itself and read by the
	// Re-evaluation Coordinator before calling GroupPictures, per
	// group_pictures(..., preserve_unicity=strategy.preserve_unicity, ...).
	PreserveUnicity() bool

	// GroupPictures classifies candidates into this strategy's groups.
	// filterer is consulted by every variant (see PictureFilterer), so
	// none of them can classify with a nil filterer. Returns true if
	// classification lazily created a new group row.
	GroupPictures(ctx context.Context, repo group.Repository, membership group.MembershipRepository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, preserveUnicity bool, candidates []picture.PictureID, rec *Recorder) (bool, error)

	// Create materializes every group row this strategy already knows
	// the identity of (its statically configured rules, plus the "Other"
	// catch-all) so a freshly created automatic arrangement has its
	// groups in place before the first re-evaluation pass ever runs.
	// Rules whose membership can only be discovered from data at
	// classification time (EXIF-interval buckets, location clusters)
	// have nothing to create yet and leave lazy creation to GroupPictures.
	Create(ctx context.Context, repo group.Repository, filterer PictureFilterer, arrangementID arrangement.ArrangementID) error

	// Edit reconciles this (the replacement) strategy against old, the
	// strategy it is replacing, per spec.md §4.2: every group old owns
	// that this strategy no longer owns is tombstoned via
	// group.Group.MarkForDeletion, and every group this strategy owns
	// that doesn't exist yet is created, exactly as Create would for a
	// brand new arrangement. A rule kept across the edit (same group id
	// in both strategies' OwnedGroups) is untouched — its identity and
	// any user rename survive.
	Edit(ctx context.Context, repo group.Repository, filterer PictureFilterer, arrangementID arrangement.ArrangementID, old Grouping) error

	// Delete tombstones every group this strategy owns, used when the
	// owning arrangement itself is deleted.
	Delete(ctx context.Context, repo group.Repository) error

	// Encode serializes the variant into the opaque forward-compatible
	// envelope persisted on the Arrangement.
	Encode() ([]byte, error)
}

// Kind identifies the concrete Grouping variant in the persisted
// envelope.
type Kind string

const (
	KindFilter       Kind = "filter"
	KindTag          Kind = "tag"
	KindExifValues   Kind = "exif_values"
	KindExifInterval Kind = "exif_interval"
	KindLocation     Kind = "location"
)

// envelopeVersion is bumped whenever a variant's payload shape changes
// in a way that isn't self-describing from the JSON alone.
const envelopeVersion = 1

type envelope struct {
	Type    Kind            `json:"type"`
	Version int             `json:"version"`
	Payload json.RawMessage `json:"payload"`
}

func encode(kind Kind, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	return json.Marshal(envelope{Type: kind, Version: envelopeVersion, Payload: raw})
}

// Decode deserializes a persisted strategy blob into its concrete
// Grouping. Per spec.md §4.3, readers must ignore unknown variant tags
// rather than fail: an unrecognized Type decodes to unknownGrouping, a
// neutral no-op Grouping that owns nothing and classifies nothing but
// round-trips its payload byte-for-byte on re-encode, so a strategy
// written by a newer version is never corrupted by an older reader. The
// envelope's Payload is otherwise preserved field-by-field by each
// variant's own json tags, so adding a new optional field to an existing
// variant never breaks decoding of data written by an older version.
func Decode(data []byte) (Grouping, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal strategy envelope: %w", err)
	}
	switch env.Type {
	case KindFilter:
		return decodeFilterGrouping(env.Payload)
	case KindTag:
		return decodeTagGrouping(env.Payload)
	case KindExifValues:
		return decodeExifValuesGrouping(env.Payload)
	case KindExifInterval:
		return decodeExifIntervalGrouping(env.Payload)
	case KindLocation:
		return decodeLocationGrouping(env.Payload)
	default:
		return &unknownGrouping{kind: env.Type, raw: env.Payload}, nil
	}
}

// unknownGrouping is the neutral Grouping Decode returns for an
// unrecognized envelope type. It owns no groups, depends on nothing, and
// contributes no classification writes — a re-evaluation pass walks past
// it exactly as it would an arrangement with no candidates.
type unknownGrouping struct {
	kind Kind
	raw  json.RawMessage
}

func (g *unknownGrouping) OwnedGroups() []group.GroupID          { return nil }
func (g *unknownGrouping) DependencyKind() shared.DependencyKind { return shared.DependencyKind(0) }
func (g *unknownGrouping) DependantGroupIDs() []string           { return nil }
func (g *unknownGrouping) PreserveUnicity() bool                 { return false }

func (g *unknownGrouping) GroupPictures(context.Context, group.Repository, group.MembershipRepository, PictureFilterer, arrangement.ArrangementID, bool, []picture.PictureID, *Recorder) (bool, error) {
	return false, nil
}

func (g *unknownGrouping) Create(context.Context, group.Repository, PictureFilterer, arrangement.ArrangementID) error {
	return nil
}

func (g *unknownGrouping) Edit(context.Context, group.Repository, PictureFilterer, arrangement.ArrangementID, Grouping) error {
	return nil
}

func (g *unknownGrouping) Delete(context.Context, group.Repository) error { return nil }

func (g *unknownGrouping) Encode() ([]byte, error) {
	return json.Marshal(envelope{Type: g.kind, Version: envelopeVersion, Payload: g.raw})
}
