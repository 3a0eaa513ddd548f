package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/archypix/arrangement-engine/internal/collaborators"
	"github.com/archypix/arrangement-engine/internal/collaborators/picturestore"
)

const (
	// TypeThumbnailGenerate is the task type for thumbnail/variant generation.
	TypeThumbnailGenerate = "picture:thumbnail_generate"

	// DefaultMaxRetry is the default number of retry attempts for thumbnail generation.
	DefaultMaxRetry = 3

	// DefaultTimeout is the default timeout for thumbnail generation.
	DefaultTimeout = 5 * time.Minute
)

// thumbnailVariants are the variant names generated for every picture.
var thumbnailVariants = []string{"thumbnail", "small", "medium", "large"}

// ThumbnailGeneratePayload contains the data needed to generate variants for a picture.
type ThumbnailGeneratePayload struct {
	// PictureID is the unique identifier for the picture.
	PictureID string `json:"picture_id"`

	// StorageKey is the key where the original picture is stored.
	StorageKey string `json:"storage_key"`

	// OwnerID is the user who owns the picture.
	OwnerID string `json:"owner_id"`

	// EnqueuedAt is when the task was enqueued.
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// ThumbnailGenerateHandler handles thumbnail-generation tasks.
// It delegates the actual resizing work to a collaborators.ThumbnailGenerator
// and persists every variant back through picturestore.Storage.
type ThumbnailGenerateHandler struct {
	generator collaborators.ThumbnailGenerator
	storage   picturestore.Storage
	logger    zerolog.Logger
}

// NewThumbnailGenerateHandler creates a new thumbnail-generation task handler.
func NewThumbnailGenerateHandler(
	generator collaborators.ThumbnailGenerator,
	storage picturestore.Storage,
	logger zerolog.Logger,
) *ThumbnailGenerateHandler {
	return &ThumbnailGenerateHandler{
		generator: generator,
		storage:   storage,
		logger:    logger,
	}
}

// ProcessTask implements asynq.Handler. It reads the original picture bytes,
// generates every variant, and stores each one under its own key.
func (h *ThumbnailGenerateHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload ThumbnailGeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error().
			Err(err).
			Str("task_type", t.Type()).
			Msg("failed to unmarshal thumbnail generate payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	startTime := time.Now()
	h.logger.Info().
		Str("picture_id", payload.PictureID).
		Str("storage_key", payload.StorageKey).
		Str("owner_id", payload.OwnerID).
		Msg("starting thumbnail generation")

	original, err := h.storage.GetBytes(ctx, payload.StorageKey)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("picture_id", payload.PictureID).
			Str("storage_key", payload.StorageKey).
			Msg("failed to retrieve original picture from storage")
		return fmt.Errorf("retrieve picture %s: %w", payload.StorageKey, err)
	}

	for _, variant := range thumbnailVariants {
		data, err := h.generator.Generate(ctx, original, variant)
		if err != nil {
			h.logger.Error().
				Err(err).
				Str("picture_id", payload.PictureID).
				Str("variant", variant).
				Msg("failed to generate variant")
			return fmt.Errorf("generate variant %s for picture %s: %w", variant, payload.PictureID, err)
		}

		variantKey := h.buildVariantKey(payload.PictureID, variant)
		if err := h.storage.PutBytes(ctx, variantKey, data, picturestore.PutOptions{}); err != nil {
			h.logger.Error().
				Err(err).
				Str("picture_id", payload.PictureID).
				Str("variant", variant).
				Str("storage_key", variantKey).
				Msg("failed to store variant")
			return fmt.Errorf("store variant %s: %w", variant, err)
		}

		h.logger.Debug().
			Str("picture_id", payload.PictureID).
			Str("variant", variant).
			Int("size_bytes", len(data)).
			Msg("stored picture variant")
	}

	h.logger.Info().
		Str("picture_id", payload.PictureID).
		Dur("duration_ms", time.Since(startTime)).
		Int("variants_count", len(thumbnailVariants)).
		Msg("thumbnail generation completed")

	return nil
}

// buildVariantKey constructs the storage key for a picture variant.
func (h *ThumbnailGenerateHandler) buildVariantKey(pictureID, variant string) string {
	return fmt.Sprintf("pictures/%s/%s.webp", pictureID, variant)
}

// NewThumbnailGenerateTask creates a new thumbnail-generation task with default options.
func NewThumbnailGenerateTask(payload ThumbnailGeneratePayload) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	return asynq.NewTask(
		TypeThumbnailGenerate,
		payloadBytes,
		asynq.MaxRetry(DefaultMaxRetry),
		asynq.Timeout(DefaultTimeout),
		asynq.Queue("default"),
	), nil
}

// NewThumbnailGenerateTaskWithOptions creates a new thumbnail-generation task with custom options.
func NewThumbnailGenerateTaskWithOptions(payload ThumbnailGeneratePayload, opts ...asynq.Option) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	defaultOpts := []asynq.Option{
		asynq.MaxRetry(DefaultMaxRetry),
		asynq.Timeout(DefaultTimeout),
		asynq.Queue("default"),
	}
	defaultOpts = append(defaultOpts, opts...)

	return asynq.NewTask(TypeThumbnailGenerate, payloadBytes, defaultOpts...), nil
}
