package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/archypix/arrangement-engine/internal/collaborators"
)

const (
	// TypeLocationCluster is the task type for geographic clustering of a
	// picture pool. No code in this module enqueues it.
	TypeLocationCluster = "picture:location_cluster"

	// DefaultClusterMaxRetry is the default number of retry attempts for clustering.
	DefaultClusterMaxRetry = 2

	// DefaultClusterTimeout is the default timeout for a clustering run.
	DefaultClusterTimeout = 2 * time.Minute
)

// LocationClusterPayload contains the data needed to cluster a picture pool
// by geographic proximity.
type LocationClusterPayload struct {
	// ArrangementID identifies the arrangement the points belong to; the
	// handler only logs it and writes no groups.
	ArrangementID string `json:"arrangement_id"`

	// Points are the geotagged pictures to cluster.
	Points []collaborators.GeoPoint `json:"points"`

	// Sharpness is the strategy's per-arrangement clustering tuning knob.
	Sharpness float64 `json:"sharpness"`

	// EnqueuedAt is when the task was enqueued.
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// LocationClusterResult is the shape of a clustering run's outcome.
// LocationClusterHandler does not build or report one, and nothing in
// this module consumes it.
type LocationClusterResult struct {
	ArrangementID string                         `json:"arrangement_id"`
	Clusters      []collaborators.LocationCluster `json:"clusters"`
}

// LocationClusterHandler handles location-clustering tasks by delegating to
// a collaborators.LocationClusterer. It logs how many clusters were found
// and discards the clusters themselves.
type LocationClusterHandler struct {
	clusterer collaborators.LocationClusterer
	logger    zerolog.Logger
}

// NewLocationClusterHandler creates a new location-clustering task handler.
func NewLocationClusterHandler(clusterer collaborators.LocationClusterer, logger zerolog.Logger) *LocationClusterHandler {
	return &LocationClusterHandler{clusterer: clusterer, logger: logger}
}

// ProcessTask implements asynq.Handler.
func (h *LocationClusterHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload LocationClusterPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error().
			Err(err).
			Str("task_type", t.Type()).
			Msg("failed to unmarshal location cluster payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	startTime := time.Now()
	h.logger.Info().
		Str("arrangement_id", payload.ArrangementID).
		Int("points", len(payload.Points)).
		Float64("sharpness", payload.Sharpness).
		Msg("starting location clustering")

	clusters, err := h.clusterer.Cluster(ctx, payload.Points, payload.Sharpness)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("arrangement_id", payload.ArrangementID).
			Msg("location clustering failed")
		return fmt.Errorf("cluster arrangement %s: %w", payload.ArrangementID, err)
	}

	h.logger.Info().
		Str("arrangement_id", payload.ArrangementID).
		Int("clusters", len(clusters)).
		Dur("duration_ms", time.Since(startTime)).
		Msg("location clustering completed")

	return nil
}

// NewLocationClusterTask creates a new location-clustering task with default options.
func NewLocationClusterTask(payload LocationClusterPayload) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	return asynq.NewTask(
		TypeLocationCluster,
		payloadBytes,
		asynq.MaxRetry(DefaultClusterMaxRetry),
		asynq.Timeout(DefaultClusterTimeout),
		asynq.Queue("default"),
	), nil
}

// NewLocationClusterTaskWithOptions creates a new location-clustering task with custom options.
func NewLocationClusterTaskWithOptions(payload LocationClusterPayload, opts ...asynq.Option) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	defaultOpts := []asynq.Option{
		asynq.MaxRetry(DefaultClusterMaxRetry),
		asynq.Timeout(DefaultClusterTimeout),
		asynq.Queue("default"),
	}
	defaultOpts = append(defaultOpts, opts...)

	return asynq.NewTask(TypeLocationCluster, payloadBytes, defaultOpts...), nil
}
