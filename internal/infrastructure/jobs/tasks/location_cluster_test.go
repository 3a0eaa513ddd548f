package tasks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archypix/arrangement-engine/internal/collaborators"
	"github.com/archypix/arrangement-engine/internal/domain/picture"
	"github.com/archypix/arrangement-engine/internal/infrastructure/jobs/tasks"
)

type fakeLocationClusterer struct {
	clusters []collaborators.LocationCluster
	err      error
	sharpness float64
}

func (f *fakeLocationClusterer) Cluster(_ context.Context, _ []collaborators.GeoPoint, sharpness float64) ([]collaborators.LocationCluster, error) {
	f.sharpness = sharpness
	if f.err != nil {
		return nil, f.err
	}
	return f.clusters, nil
}

func TestLocationClusterHandler_ProcessTask(t *testing.T) {
	t.Parallel()

	t.Run("clusters the given points", func(t *testing.T) {
		t.Parallel()

		clusterer := &fakeLocationClusterer{
			clusters: []collaborators.LocationCluster{
				{PictureIDs: []picture.PictureID{picture.NewPictureID()}},
			},
		}
		handler := tasks.NewLocationClusterHandler(clusterer, zerolog.Nop())

		payload := tasks.LocationClusterPayload{
			ArrangementID: "arr-1",
			Points: []collaborators.GeoPoint{
				{PictureID: picture.NewPictureID(), Latitude: 48.8, Longitude: 2.3},
			},
			Sharpness: 0.5,
		}
		task, err := tasks.NewLocationClusterTask(payload)
		require.NoError(t, err)

		err = handler.ProcessTask(context.Background(), task)
		require.NoError(t, err)
		assert.Equal(t, 0.5, clusterer.sharpness)
	})

	t.Run("clusterer failure is wrapped with arrangement id", func(t *testing.T) {
		t.Parallel()

		clusterer := &fakeLocationClusterer{err: errors.New("clustering backend down")}
		handler := tasks.NewLocationClusterHandler(clusterer, zerolog.Nop())

		payload := tasks.LocationClusterPayload{ArrangementID: "arr-2"}
		task, err := tasks.NewLocationClusterTask(payload)
		require.NoError(t, err)

		err = handler.ProcessTask(context.Background(), task)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "arr-2")
	})
}
