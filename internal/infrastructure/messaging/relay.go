package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cloudvigil/zombiescan/pkg/events"
	"github.com/cloudvigil/zombiescan/pkg/kafka"
)

// Relay drains the transactional outbox into Kafka. One relay per
// process; entries are fetched oldest-first and marked published only
// after the broker acknowledges them, so delivery is at-least-once.
type Relay struct {
	outbox    events.OutboxRepository
	producer  *kafka.Producer
	topic     string
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

// NewRelay creates a relay polling the outbox at the given interval.
func NewRelay(outbox events.OutboxRepository, producer *kafka.Producer, topic string, interval time.Duration, logger *slog.Logger) *Relay {
	return &Relay{
		outbox:    outbox,
		producer:  producer,
		topic:     topic,
		interval:  interval,
		batchSize: 100,
		logger:    logger,
	}
}

// Run polls until ctx is cancelled. Errors are logged and retried on
// the next tick; the relay never gives up.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				r.logger.Error("outbox relay pass failed", "error", err)
			}
		}
	}
}

func (r *Relay) drainOnce(ctx context.Context) error {
	entries, err := r.outbox.FetchUnpublished(ctx, r.batchSize)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(entries))
	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		messages = append(messages, kafka.Message{
			Key:   []byte(entry.AggregateID.String()),
			Value: entry.Payload,
			Headers: map[string]string{
				"event_type": entry.EventType,
				"event_id":   entry.ID.String(),
			},
		})
		ids = append(ids, entry.ID)
	}

	if err := r.producer.Publish(ctx, r.topic, messages...); err != nil {
		return err
	}
	if err := r.outbox.MarkPublished(ctx, ids); err != nil {
		return err
	}

	r.logger.Debug("outbox relay pass", "published", len(ids))
	return nil
}
