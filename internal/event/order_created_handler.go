package event

import (
	"context"
	"log/slog"
	"time"
)

const TopicOrderCreated = "order.created"

type OrderCreatedEvent struct {
	OrderID        string    `json:"order_id"`
	ProductNumbers []string  `json:"product_numbers"`
	TotalPrice     int64     `json:"total_price"`
	RegisteredAt   time.Time `json:"registered_at"`
}

// handleOrderCreatedEvent is the fanout point for downstream kiosk consumers
// (kitchen display, analytics). For now receipt is logged.
func (s *Service) handleOrderCreatedEvent(ctx context.Context, ev OrderCreatedEvent) error {
	s.logger.InfoContext(ctx, "handling order created event",
		slog.String("order_id", ev.OrderID),
		slog.Int64("total_price", ev.TotalPrice),
		slog.Int("line_count", len(ev.ProductNumbers)),
	)
	return nil
}
