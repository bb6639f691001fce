package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kmiservices/quotetracker/internal/quotes"
	"github.com/kmiservices/quotetracker/jobs"
)

// QueueDispatcher implements quotes.Notifier by enqueueing rendered
// emails onto the background queue; the worker performs the SMTP send.
type QueueDispatcher struct {
	logger      *slog.Logger
	client      *jobs.Client
	officeEmail string
}

// NewQueueDispatcher constructs a dispatcher over the jobs client.
func NewQueueDispatcher(logger *slog.Logger, client *jobs.Client, officeEmail string) *QueueDispatcher {
	return &QueueDispatcher{logger: logger, client: client, officeEmail: officeEmail}
}

// QuoteSubmitted renders and enqueues the office and customer emails.
// Partial failure enqueues what it can and reports the first error.
func (d *QueueDispatcher) QuoteSubmitted(ctx context.Context, rec quotes.Record) error {
	messages, err := RenderQuoteEmails(rec, d.officeEmail)
	if err != nil {
		return err
	}

	var firstErr error
	for _, msg := range messages {
		_, err := d.client.EnqueueSendEmail(ctx, jobs.SendEmailPayload{
			To:      msg.To,
			Subject: msg.Subject,
			Body:    msg.Body,
			QuoteID: rec.ID,
		})
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("notify: enqueue email to %s: %w", msg.To, err)
			}
			continue
		}
		d.logger.Info("enqueued quote email",
			slog.String("quote_id", rec.ID),
			slog.String("to", msg.To))
	}
	return firstErr
}

// LogDispatcher implements quotes.Notifier by logging the rendered
// subjects only. Used when no queue is configured.
type LogDispatcher struct {
	logger      *slog.Logger
	officeEmail string
}

// NewLogDispatcher constructs a log-only dispatcher.
func NewLogDispatcher(logger *slog.Logger, officeEmail string) *LogDispatcher {
	return &LogDispatcher{logger: logger, officeEmail: officeEmail}
}

func (d *LogDispatcher) QuoteSubmitted(ctx context.Context, rec quotes.Record) error {
	messages, err := RenderQuoteEmails(rec, d.officeEmail)
	if err != nil {
		return err
	}
	for _, msg := range messages {
		d.logger.Info("quote email (not sent, no queue configured)",
			slog.String("quote_id", rec.ID),
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject))
	}
	return nil
}
