package group_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/group"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

func TestNewGroup(t *testing.T) {
	t.Parallel()

	arrangementID := arrangement.NewArrangementID()

	t.Run("valid input creates a group", func(t *testing.T) {
		t.Parallel()

		g, err := group.NewGroup(arrangementID, "Paris 2024")
		require.NoError(t, err)
		assert.Equal(t, arrangementID, g.ArrangementID())
		assert.Equal(t, "Paris 2024", g.Name())
		assert.False(t, g.ToBeDeleted())
		assert.Len(t, g.Events(), 1)
	})

	t.Run("name is sanitized before storage", func(t *testing.T) {
		t.Parallel()

		g, err := group.NewGroup(arrangementID, `<img src=x onerror=alert(1)>Paris`)
		require.NoError(t, err)
		assert.Equal(t, "Paris", g.Name())
	})

	t.Run("zero arrangement id is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := group.NewGroup(arrangement.ArrangementID{}, "Paris")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestGroup_Rename(t *testing.T) {
	t.Parallel()

	g, err := group.NewGroup(arrangement.NewArrangementID(), "Paris")
	require.NoError(t, err)

	t.Run("sanitizes the new name", func(t *testing.T) {
		err := g.Rename("<b>Paris</b> 2024")
		require.NoError(t, err)
		assert.Equal(t, "Paris 2024", g.Name())
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		err := g.Rename("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestGroup_MarkForDeletion(t *testing.T) {
	t.Parallel()

	g, err := group.NewGroup(arrangement.NewArrangementID(), "Paris")
	require.NoError(t, err)
	g.ClearEvents()

	g.MarkForDeletion()
	assert.True(t, g.ToBeDeleted())
	assert.Len(t, g.Events(), 1)

	// Idempotent: calling again doesn't add a second event.
	g.MarkForDeletion()
	assert.Len(t, g.Events(), 1)
}
