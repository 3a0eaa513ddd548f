package tasks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archypix/arrangement-engine/internal/infrastructure/jobs/tasks"
)

type fakeMailer struct {
	sendErr error
	sentTo  string
}

func (f *fakeMailer) Send(_ context.Context, to, _ string, _ string) error {
	f.sentTo = to
	return f.sendErr
}

func TestMailerSendHandler_ProcessTask(t *testing.T) {
	t.Parallel()

	t.Run("delivers via mailer", func(t *testing.T) {
		t.Parallel()

		mailer := &fakeMailer{}
		handler := tasks.NewMailerSendHandler(mailer, zerolog.Nop())

		payload := tasks.MailerSendPayload{
			To:         "owner@example.com",
			Subject:    "Arrangement updated",
			Body:       "Your arrangement was re-evaluated.",
			EnqueuedAt: time.Now(),
		}
		task, err := tasks.NewMailerSendTask(payload)
		require.NoError(t, err)

		err = handler.ProcessTask(context.Background(), task)
		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", mailer.sentTo)
	})

	t.Run("mailer failure is wrapped", func(t *testing.T) {
		t.Parallel()

		mailer := &fakeMailer{sendErr: errors.New("smtp unavailable")}
		handler := tasks.NewMailerSendHandler(mailer, zerolog.Nop())

		payload := tasks.MailerSendPayload{To: "owner@example.com", Subject: "x", Body: "y"}
		task, err := tasks.NewMailerSendTask(payload)
		require.NoError(t, err)

		err = handler.ProcessTask(context.Background(), task)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "smtp unavailable")
	})
}
