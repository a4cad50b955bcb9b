package mailer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// DevSender implements Sender for local development. It logs the message
// instead of delivering it and fabricates a delivery id, so the full
// dispatch path can run without provider credentials.
type DevSender struct {
	log *slog.Logger
}

// NewDevSender creates a development sender logging through the given logger.
func NewDevSender(log *slog.Logger) *DevSender {
	return &DevSender{log: log}
}

func (d *DevSender) Send(ctx context.Context, apiKey string, params SendParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	id := "dev-" + uuid.NewString()
	d.log.InfoContext(ctx, "dev sender: email not delivered",
		slog.String("delivery_id", id),
		slog.String("from", params.FromHeader),
		slog.Any("to", params.To),
		slog.String("subject", params.Subject),
		slog.String("scheduled_at", params.ScheduledAt),
	)
	return id, nil
}
