package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the contract every domain event must satisfy. Events
// are immutable facts recorded by aggregates during state transitions.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	OccurredAt() time.Time
}

// Metadata provides a ready-made DomainEvent implementation for
// embedding in concrete event structs. The embedding struct carries the
// event-specific payload fields; Metadata carries identity and timing.
type Metadata struct {
	ID            uuid.UUID `json:"event_id"`
	Type          string    `json:"event_type"`
	Aggregate     uuid.UUID `json:"aggregate_id"`
	AggregateKind string    `json:"aggregate_type"`
	Occurred      time.Time `json:"occurred_at"`
}

// NewMetadata stamps a fresh event identity with the current UTC time.
func NewMetadata(eventType string, aggregateID uuid.UUID, aggregateType string) Metadata {
	return Metadata{
		ID:            uuid.New(),
		Type:          eventType,
		Aggregate:     aggregateID,
		AggregateKind: aggregateType,
		Occurred:      time.Now().UTC(),
	}
}

func (m Metadata) EventID() uuid.UUID     { return m.ID }
func (m Metadata) EventType() string      { return m.Type }
func (m Metadata) AggregateID() uuid.UUID { return m.Aggregate }
func (m Metadata) AggregateType() string  { return m.AggregateKind }
func (m Metadata) OccurredAt() time.Time  { return m.Occurred }
