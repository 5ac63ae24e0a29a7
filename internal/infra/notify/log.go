package notify

import (
	"context"
	"log/slog"

	"order-core/internal/domain/outbox"
)

// LogNotifier writes transitions to the structured log. It is the local-run driver.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, p outbox.NotificationPayload) error {
	n.logger.InfoContext(ctx, "order notification",
		"order_id", p.OrderID.String(),
		"order_number", p.OrderNumber,
		"owner", p.Owner,
		"from", p.From,
		"to", p.To,
		"reason", p.Reason,
		"at", p.At)
	return nil
}

func (n *LogNotifier) Close() error { return nil }
