package messaging_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudvigil/zombiescan/internal/domain/event"
	"github.com/cloudvigil/zombiescan/internal/infrastructure/messaging"
	"github.com/cloudvigil/zombiescan/pkg/events"
)

type memoryOutbox struct {
	entries []events.OutboxEntry
}

func (m *memoryOutbox) StoreEntries(_ context.Context, entries []events.OutboxEntry) error {
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *memoryOutbox) FetchUnpublished(_ context.Context, batchSize int) ([]events.OutboxEntry, error) {
	if len(m.entries) > batchSize {
		return m.entries[:batchSize], nil
	}
	return m.entries, nil
}

func (m *memoryOutbox) MarkPublished(_ context.Context, ids []uuid.UUID) error {
	published := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		published[id] = true
	}
	kept := m.entries[:0]
	for _, entry := range m.entries {
		if !published[entry.ID] {
			kept = append(kept, entry)
		}
	}
	m.entries = kept
	return nil
}

func TestOutboxPublisher_StagesEvents(t *testing.T) {
	outbox := &memoryOutbox{}
	publisher := messaging.NewOutboxPublisher(outbox)

	assessmentID := uuid.New()
	evt := event.NewHighRiskDetected(assessmentID, "i-0abc", "ec2", "us-east-1", 0.9, "70.08")

	require.NoError(t, publisher.Publish(context.Background(), evt))

	require.Len(t, outbox.entries, 1)
	entry := outbox.entries[0]
	assert.Equal(t, event.EventTypeHighRiskDetected, entry.EventType)
	assert.Equal(t, assessmentID, entry.AggregateID)
	assert.Equal(t, "ResourceAssessment", entry.AggregateType)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(entry.Payload, &payload))
	assert.Equal(t, "i-0abc", payload["resource_id"])
	assert.Equal(t, "70.08", payload["estimated_monthly_cost"])
}
