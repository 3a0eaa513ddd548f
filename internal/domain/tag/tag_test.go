package tag_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
	"github.com/archypix/arrangement-engine/internal/domain/tag"
)

func TestNewTag(t *testing.T) {
	t.Parallel()

	tagGroupID := tag.NewTagGroupID()

	t.Run("valid input creates a tag", func(t *testing.T) {
		t.Parallel()

		tg, err := tag.NewTag(tagGroupID, "Beach", "#00ff00", false)
		require.NoError(t, err)
		assert.Equal(t, tagGroupID, tg.TagGroupID())
		assert.Equal(t, "Beach", tg.Name())
		assert.Equal(t, "#00ff00", tg.Color())
		assert.False(t, tg.IsDefault())
	})

	t.Run("name is sanitized before storage", func(t *testing.T) {
		t.Parallel()

		tg, err := tag.NewTag(tagGroupID, "<script>x</script>Beach", "", true)
		require.NoError(t, err)
		assert.Equal(t, "Beach", tg.Name())
		assert.True(t, tg.IsDefault())
	})

	t.Run("zero tag group id is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := tag.NewTag(tag.TagGroupID{}, "Beach", "", false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := tag.NewTag(tagGroupID, "", "", false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestNewTagGroup(t *testing.T) {
	t.Parallel()

	owner := identity.NewUserID()

	t.Run("valid input creates a tag group", func(t *testing.T) {
		t.Parallel()

		tg, err := tag.NewTagGroup(owner, "Seasons", true, false)
		require.NoError(t, err)
		assert.Equal(t, owner, tg.OwnerID())
		assert.Equal(t, "Seasons", tg.Name())
		assert.True(t, tg.Multiple())
		assert.False(t, tg.Required())
	})

	t.Run("name is sanitized before storage", func(t *testing.T) {
		t.Parallel()

		tg, err := tag.NewTagGroup(owner, "  <b>Seasons</b>  ", false, false)
		require.NoError(t, err)
		assert.Equal(t, "Seasons", tg.Name())
	})
}

func TestTagGroup_Rename(t *testing.T) {
	t.Parallel()

	tg, err := tag.NewTagGroup(identity.NewUserID(), "Seasons", false, false)
	require.NoError(t, err)

	t.Run("sanitizes the new name", func(t *testing.T) {
		err := tg.Rename("<i>Seasons</i> 2024")
		require.NoError(t, err)
		assert.Equal(t, "Seasons 2024", tg.Name())
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		err := tg.Rename("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestTagGroup_ValidateAssignment(t *testing.T) {
	t.Parallel()

	single, err := tag.NewTagGroup(identity.NewUserID(), "Seasons", false, false)
	require.NoError(t, err)

	assert.NoError(t, single.ValidateAssignment(0))
	assert.NoError(t, single.ValidateAssignment(1))
	assert.Error(t, single.ValidateAssignment(2))

	multi, err := tag.NewTagGroup(identity.NewUserID(), "Themes", true, false)
	require.NoError(t, err)
	assert.NoError(t, multi.ValidateAssignment(3))
}
