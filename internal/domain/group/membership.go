package group

import "github.com/archypix/arrangement-engine/internal/domain/picture"

// Membership is the group_id/picture_id association row. It carries no
// identity of its own beyond the pair.
type Membership struct {
	GroupID   GroupID
	PictureID picture.PictureID
}

// UngroupRecord tracks a picture that re-evaluation removed from a
// group, so callers of the Re-evaluation Coordinator's entry points can
// report exactly what changed rather than just "done". Re-added pictures
// (removed from one group, added to another on the same pass) appear in
// both the ungroup and group-membership results — the coordinator does
// not collapse them, since a caller may care about the group a picture
// left even if it ended up back in an equivalent one.
type UngroupRecord struct {
	GroupID   GroupID
	PictureID picture.PictureID
	// Reason is a short machine-readable cause: "strategy_no_longer_matches",
	// "group_deleted", or "picture_deleted".
	Reason string
}

const (
	UngroupReasonStrategyMismatch = "strategy_no_longer_matches"
	UngroupReasonGroupDeleted     = "group_deleted"
	UngroupReasonPictureDeleted   = "picture_deleted"
)
