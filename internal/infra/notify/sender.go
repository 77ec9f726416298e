package notify

import (
	"context"
	"log/slog"

	"slot-booking/internal/usecase/shared"
)

// Sender delivers one notification to an external channel.
type Sender interface {
	Send(ctx context.Context, n shared.Notification) error
	Close() error
}

// LogSender writes notifications to the structured log. It is the default
// when no push channel is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, n shared.Notification) error {
	s.logger.InfoContext(ctx, "notification", "recipient", n.Recipient, "text", n.Text)
	return nil
}

func (s *LogSender) Close() error { return nil }
