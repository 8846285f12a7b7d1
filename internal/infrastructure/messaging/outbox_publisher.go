package messaging

import (
	"context"
	"fmt"

	"github.com/cloudvigil/zombiescan/pkg/events"
)

// OutboxPublisher implements port.EventPublisher by staging events in
// the transactional outbox instead of calling the broker inline. The
// SQLite repositories stage an aggregate's events inside the
// aggregate's own save transaction, so this publisher only sees events
// that were not drained by a repository save. The Relay drains the
// outbox in the background either way.
type OutboxPublisher struct {
	outbox events.OutboxRepository
}

// NewOutboxPublisher creates an outbox-backed publisher.
func NewOutboxPublisher(outbox events.OutboxRepository) *OutboxPublisher {
	return &OutboxPublisher{outbox: outbox}
}

// Publish stages the events for relay.
func (p *OutboxPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	entries := make([]events.OutboxEntry, 0, len(evts))
	for _, evt := range evts {
		entry, err := events.NewOutboxEntry(evt)
		if err != nil {
			return fmt.Errorf("failed to stage event %s: %w", evt.EventType(), err)
		}
		entries = append(entries, entry)
	}
	return p.outbox.StoreEntries(ctx, entries)
}
