package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for quote notification emails.
	TaskTypeSendEmail = "quote:email"
)

// SendEmailPayload carries one fully rendered message.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	QuoteID string `json:"quote_id"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// EmailSender delivers a rendered message over the outbound transport.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewSendEmailHandler builds the worker handler for TaskTypeSendEmail.
// A send failure is logged and swallowed so the task is not retried;
// notification is best-effort end to end.
func NewSendEmailHandler(sender EmailSender, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		if sender == nil {
			return errors.New("send email: sender not configured")
		}
		var payload SendEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		log := logger
		if log == nil {
			log = slog.Default()
		}
		log = log.With(
			slog.String("job", TaskTypeSendEmail),
			slog.String("quote_id", payload.QuoteID),
			slog.String("to", payload.To),
		)

		if err := sender.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
			log.Error("send email failed", slog.Any("error", err))
			return asynq.SkipRetry
		}
		log.Info("sent quote email", slog.String("subject", payload.Subject))
		return nil
	}
}
