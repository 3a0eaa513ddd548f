package group

import (
	"fmt"

	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

// Permissions is a bitmask of what a recipient may do with a group
// shared with them.
type Permissions uint8

const (
	PermissionView Permissions = 1 << iota
	PermissionDownload
	PermissionAddPictures
	PermissionManage
)

func (p Permissions) Has(other Permissions) bool { return p&other == other }

// SharedGroup is a direct user-to-user share of a group. While Copied is
// false the recipient sees the source group itself. When Copied is true
// the share was converted on acceptance into the recipient's own group at
// MatchConversionGroupID, and the coordinator mirrors every membership
// add and removal of the source group onto that group.
type SharedGroup struct {
	recipientID             identity.UserID
	groupID                 GroupID
	permissions             Permissions
	matchConversionGroupID  GroupID
	copied                  bool
	confirmed               bool
}

// NewSharedGroup creates a pending share: confirmed is false until the
// recipient accepts it.
func NewSharedGroup(recipientID identity.UserID, groupID GroupID, permissions Permissions) (*SharedGroup, error) {
	if recipientID.IsZero() {
		return nil, fmt.Errorf("%w: recipient id is required", shared.ErrInvalidInput)
	}
	if groupID.IsZero() {
		return nil, fmt.Errorf("%w: group id is required", shared.ErrInvalidInput)
	}
	return &SharedGroup{recipientID: recipientID, groupID: groupID, permissions: permissions}, nil
}

// ReconstructSharedGroup reconstitutes a SharedGroup from persistence.
func ReconstructSharedGroup(recipientID identity.UserID, groupID GroupID, permissions Permissions, matchConversionGroupID GroupID, copied, confirmed bool) *SharedGroup {
	return &SharedGroup{
		recipientID:            recipientID,
		groupID:                groupID,
		permissions:            permissions,
		matchConversionGroupID: matchConversionGroupID,
		copied:                 copied,
		confirmed:              confirmed,
	}
}

func (s *SharedGroup) RecipientID() identity.UserID          { return s.recipientID }
func (s *SharedGroup) GroupID() GroupID                      { return s.groupID }
func (s *SharedGroup) Permissions() Permissions              { return s.permissions }
func (s *SharedGroup) MatchConversionGroupID() GroupID        { return s.matchConversionGroupID }
func (s *SharedGroup) Copied() bool                           { return s.copied }
func (s *SharedGroup) Confirmed() bool                        { return s.confirmed }

// Confirm accepts the share. If the source arrangement's
// StrongMatchConversion is set, matchConversionGroupID names the
// recipient's own independent copy of the group and copied is true;
// otherwise the share stays a live mirror of the source group's
// membership and matchConversionGroupID is the zero GroupID.
func (s *SharedGroup) Confirm(strongMatchConversion bool, matchConversionGroupID GroupID) {
	s.confirmed = true
	if strongMatchConversion {
		s.copied = true
		s.matchConversionGroupID = matchConversionGroupID
	}
}
