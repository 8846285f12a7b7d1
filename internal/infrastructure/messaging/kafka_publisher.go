package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cloudvigil/zombiescan/pkg/events"
	"github.com/cloudvigil/zombiescan/pkg/kafka"
)

// EventsTopic carries all zombiescan domain events. Consumers filter
// on the event_type header.
const EventsTopic = "zombiescan.events"

// KafkaPublisher implements port.EventPublisher by writing events
// straight to Kafka. Messages are keyed by aggregate ID so all events
// of one aggregate land in one partition, in order.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher creates a Kafka event publisher.
func NewKafkaPublisher(producer *kafka.Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka.
func (p *KafkaPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
				"event_id":   evt.EventID().String(),
			},
		})
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return err
	}

	for _, evt := range evts {
		p.logger.Debug("event published",
			"event_type", evt.EventType(),
			"event_id", evt.EventID(),
			"topic", p.topic,
		)
	}
	return nil
}
