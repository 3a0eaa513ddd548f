package postgres

// This file exists solely for compile-time verification that repositories implement their interfaces.
// These variables will never be instantiated at runtime.

import (
	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/hierarchy"
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/domain/tag"
	"github.com/archypix/arrangement-engine/internal/engine/coordinator"
)

// Compile-time interface implementation checks.
var (
	_ identity.UserRepository        = (*UserRepository)(nil)
	_ picture.Repository             = (*PictureRepository)(nil)
	_ tag.GroupRepository            = (*TagGroupRepository)(nil)
	_ tag.Repository                 = (*TagRepository)(nil)
	_ tag.PictureTagRepository       = (*PictureTagRepository)(nil)
	_ arrangement.Repository         = (*ArrangementRepository)(nil)
	_ group.Repository               = (*GroupRepository)(nil)
	_ group.MembershipRepository     = (*MembershipRepository)(nil)
	_ group.SharedGroupRepository    = (*SharedGroupRepository)(nil)
	_ hierarchy.Repository           = (*HierarchyRepository)(nil)
	_ hierarchy.PlacementRepository  = (*PlacementRepository)(nil)
	_ coordinator.AttributeSource    = (*AttributeSource)(nil)
)
