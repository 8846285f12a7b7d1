package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/cloudvigil/zombiescan/pkg/events"
	"github.com/cloudvigil/zombiescan/pkg/sqlitepool"
)

// OutboxRepository implements events.OutboxRepository on SQLite.
type OutboxRepository struct {
	pool *sqlitepool.Pool
}

// NewOutboxRepository creates a repository on the given pool.
func NewOutboxRepository(pool *sqlitepool.Pool) *OutboxRepository {
	return &OutboxRepository{pool: pool}
}

// StoreEntries stages outbox entries in one transaction.
func (r *OutboxRepository) StoreEntries(ctx context.Context, entries []events.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}

	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("store outbox entries: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	for _, entry := range entries {
		if err = insertOutboxEntry(conn, entry); err != nil {
			return err
		}
	}
	return nil
}

// stageEvents writes the events as outbox rows on the caller's
// connection, inside whatever transaction is open there. Repositories
// use it to stage an aggregate's events atomically with the aggregate.
func (r *OutboxRepository) stageEvents(conn *sqlite.Conn, evts []events.DomainEvent) error {
	for _, evt := range evts {
		entry, err := events.NewOutboxEntry(evt)
		if err != nil {
			return fmt.Errorf("stage event %s: %w", evt.EventType(), err)
		}
		if err := insertOutboxEntry(conn, entry); err != nil {
			return err
		}
	}
	return nil
}

func insertOutboxEntry(conn *sqlite.Conn, entry events.OutboxEntry) error {
	err := sqlitex.Execute(conn, `INSERT INTO outbox
		(id, aggregate_id, aggregate_type, event_type, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				entry.ID.String(),
				entry.AggregateID.String(),
				entry.AggregateType,
				entry.EventType,
				entry.Payload,
				nanos(entry.CreatedAt),
			},
		})
	if err != nil {
		return fmt.Errorf("store outbox entry %s: %w", entry.ID, err)
	}
	return nil
}

// FetchUnpublished returns staged entries oldest-first.
func (r *OutboxRepository) FetchUnpublished(ctx context.Context, batchSize int) ([]events.OutboxEntry, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var entries []events.OutboxEntry
	err = sqlitex.Execute(conn, `SELECT id, aggregate_id, aggregate_type, event_type, payload, created_at
		FROM outbox WHERE published_at IS NULL ORDER BY created_at LIMIT ?`,
		&sqlitex.ExecOptions{
			Args: []any{batchSize},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				entry, err := outboxRowToEntry(stmt)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("fetch unpublished outbox entries: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps the entries with the publish time.
func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, 0, len(ids)+1)
	args = append(args, time.Now().UTC().UnixNano())
	for _, id := range ids {
		args = append(args, id.String())
	}

	err = sqlitex.Execute(conn,
		`UPDATE outbox SET published_at = ? WHERE id IN (`+placeholders+`)`,
		&sqlitex.ExecOptions{Args: args})
	if err != nil {
		return fmt.Errorf("mark outbox entries published: %w", err)
	}
	return nil
}

func outboxRowToEntry(stmt *sqlite.Stmt) (events.OutboxEntry, error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return events.OutboxEntry{}, fmt.Errorf("parse outbox id: %w", err)
	}
	aggregateID, err := uuid.Parse(stmt.ColumnText(1))
	if err != nil {
		return events.OutboxEntry{}, fmt.Errorf("parse outbox aggregate id: %w", err)
	}

	payload := make([]byte, stmt.ColumnLen(4))
	stmt.ColumnBytes(4, payload)

	return events.OutboxEntry{
		ID:            id,
		AggregateID:   aggregateID,
		AggregateType: stmt.ColumnText(2),
		EventType:     stmt.ColumnText(3),
		Payload:       payload,
		CreatedAt:     fromNanos(stmt.ColumnInt64(5)),
	}, nil
}
