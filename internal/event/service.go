package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cafekiosk/kiosk/internal/storage/mq"
)

// Service is the event service.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
) *Service {
	return &Service{
		logger:     logger,
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.mqConsumer.RegisterHandler(
		TopicOrderCreated,
		func(ctx context.Context, topic string, payload []byte) error {
			var ev OrderCreatedEvent
			if err := json.Unmarshal(payload, &ev); err != nil {
				return fmt.Errorf("unmarshal order created event: %w", err)
			}

			if err := s.handleOrderCreatedEvent(ctx, ev); err != nil {
				return fmt.Errorf("handle order created event: %w", err)
			}

			return nil
		},
	); err != nil {
		return nil, fmt.Errorf("register order created event handler: %w", err)
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}
