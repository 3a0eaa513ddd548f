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
	// TypeMailerSend is the task type for outbound email delivery.
	TypeMailerSend = "mailer:send"

	// DefaultMailMaxRetry is the default number of retry attempts for email delivery.
	DefaultMailMaxRetry = 5

	// DefaultMailTimeout is the default timeout for a single send attempt.
	DefaultMailTimeout = 30 * time.Second
)

// MailerSendPayload contains the data needed to send a notification email.
type MailerSendPayload struct {
	// To is the recipient email address.
	To string `json:"to"`

	// Subject is the email subject line.
	Subject string `json:"subject"`

	// Body is the email body.
	Body string `json:"body"`

	// EnqueuedAt is when the task was enqueued.
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// MailerSendHandler handles outbound email tasks by delegating to a
// collaborators.Mailer. Sends are enqueued rather than performed inline so
// that a slow or unavailable mail provider never blocks a coordinator
// re-evaluation.
type MailerSendHandler struct {
	mailer collaborators.Mailer
	logger zerolog.Logger
}

// NewMailerSendHandler creates a new mailer-send task handler.
func NewMailerSendHandler(mailer collaborators.Mailer, logger zerolog.Logger) *MailerSendHandler {
	return &MailerSendHandler{mailer: mailer, logger: logger}
}

// ProcessTask implements asynq.Handler.
func (h *MailerSendHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload MailerSendPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error().
			Err(err).
			Str("task_type", t.Type()).
			Msg("failed to unmarshal mailer send payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := h.mailer.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		h.logger.Error().
			Err(err).
			Str("to", payload.To).
			Str("subject", payload.Subject).
			Msg("failed to send email")
		return fmt.Errorf("send mail to %s: %w", payload.To, err)
	}

	h.logger.Info().
		Str("to", payload.To).
		Str("subject", payload.Subject).
		Msg("email sent")

	return nil
}

// NewMailerSendTask creates a new mailer-send task with default options.
func NewMailerSendTask(payload MailerSendPayload) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	return asynq.NewTask(
		TypeMailerSend,
		payloadBytes,
		asynq.MaxRetry(DefaultMailMaxRetry),
		asynq.Timeout(DefaultMailTimeout),
		asynq.Queue("low"),
	), nil
}

// NewMailerSendTaskWithOptions creates a new mailer-send task with custom options.
func NewMailerSendTaskWithOptions(payload MailerSendPayload, opts ...asynq.Option) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	defaultOpts := []asynq.Option{
		asynq.MaxRetry(DefaultMailMaxRetry),
		asynq.Timeout(DefaultMailTimeout),
		asynq.Queue("low"),
	}
	defaultOpts = append(defaultOpts, opts...)

	return asynq.NewTask(TypeMailerSend, payloadBytes, defaultOpts...), nil
}
