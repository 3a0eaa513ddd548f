package arrangement_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archypix/arrangement-engine/internal/domain/arrangement"
	"github.com/archypix/arrangement-engine/internal/domain/identity"
	"github.com/archypix/arrangement-engine/internal/domain/shared"
)

func TestNewManualArrangement(t *testing.T) {
	t.Parallel()

	t.Run("valid input creates a manual arrangement", func(t *testing.T) {
		t.Parallel()

		owner := identity.NewUserID()
		a, err := arrangement.NewManualArrangement(owner, "Trips")
		require.NoError(t, err)
		assert.Equal(t, owner, a.OwnerID())
		assert.Equal(t, "Trips", a.Name())
		assert.True(t, a.IsManual())
		assert.Len(t, a.Events(), 1)
	})

	t.Run("name is sanitized before storage", func(t *testing.T) {
		t.Parallel()

		owner := identity.NewUserID()
		a, err := arrangement.NewManualArrangement(owner, `<script>alert(1)</script>Trips`)
		require.NoError(t, err)
		assert.Equal(t, "Trips", a.Name())
	})

	t.Run("name that is only markup is rejected", func(t *testing.T) {
		t.Parallel()

		owner := identity.NewUserID()
		_, err := arrangement.NewManualArrangement(owner, "<b></b>")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("zero owner id is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := arrangement.NewManualArrangement(identity.UserID{}, "Trips")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestNewAutomaticArrangement(t *testing.T) {
	t.Parallel()

	owner := identity.NewUserID()

	t.Run("valid strategy creates an automatic arrangement", func(t *testing.T) {
		t.Parallel()

		a, err := arrangement.NewAutomaticArrangement(owner, "By Tag", []byte(`{"type":"tag"}`), shared.DependsOnTags)
		require.NoError(t, err)
		assert.False(t, a.IsManual())
		assert.Equal(t, shared.DependsOnTags, a.DependencyKind())
	})

	t.Run("empty strategy is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := arrangement.NewAutomaticArrangement(owner, "By Tag", nil, shared.DependsOnTags)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestArrangement_Rename(t *testing.T) {
	t.Parallel()

	a, err := arrangement.NewManualArrangement(identity.NewUserID(), "Trips")
	require.NoError(t, err)

	t.Run("sanitizes and trims the new name", func(t *testing.T) {
		err := a.Rename("  <i>Summer</i> Trips  ")
		require.NoError(t, err)
		assert.Equal(t, "Summer Trips", a.Name())
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		err := a.Rename("")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}
