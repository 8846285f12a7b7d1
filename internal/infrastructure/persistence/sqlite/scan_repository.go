package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/cloudvigil/zombiescan/internal/domain/model"
	"github.com/cloudvigil/zombiescan/pkg/sqlitepool"
)

// ScanRepository implements port.ScanRepository on SQLite. Regions and
// tier counts are small and only read back whole, so they are stored
// as JSON columns rather than join tables.
type ScanRepository struct {
	pool   *sqlitepool.Pool
	outbox *OutboxRepository
}

// NewScanRepository creates a repository on the given pool. A non-nil
// outbox makes Save stage the scan's recorded events in the same
// transaction as the scan row; pass nil when events are published
// directly to the broker.
func NewScanRepository(pool *sqlitepool.Pool, outbox *OutboxRepository) *ScanRepository {
	return &ScanRepository{pool: pool, outbox: outbox}
}

const scanColumns = `id, regions, status, started_at, completed_at,
	total_resources, counts_by_tier, monthly_savings`

// Save upserts the scan row and, when the repository carries an
// outbox, stages the scan's recorded events in the same transaction.
// Staged events are drained from the aggregate so the caller never
// publishes them a second time.
func (r *ScanRepository) Save(ctx context.Context, scan *model.Scan) error {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("save scan %s: begin transaction: %w", scan.ID(), err)
	}
	defer endTransaction(&err)

	regionsJSON, err := json.Marshal(scan.Regions())
	if err != nil {
		return fmt.Errorf("save scan %s: marshal regions: %w", scan.ID(), err)
	}
	countsJSON, err := json.Marshal(scan.CountsByTier())
	if err != nil {
		return fmt.Errorf("save scan %s: marshal counts: %w", scan.ID(), err)
	}

	err = sqlitex.Execute(conn, `INSERT INTO scans (`+scanColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status          = excluded.status,
			completed_at    = excluded.completed_at,
			total_resources = excluded.total_resources,
			counts_by_tier  = excluded.counts_by_tier,
			monthly_savings = excluded.monthly_savings`,
		&sqlitex.ExecOptions{
			Args: []any{
				scan.ID().String(),
				string(regionsJSON),
				scan.Status(),
				nanos(scan.StartedAt()),
				nanos(scan.CompletedAt()),
				scan.TotalResources(),
				string(countsJSON),
				scan.MonthlySavings().String(),
			},
		})
	if err != nil {
		return fmt.Errorf("save scan %s: %w", scan.ID(), err)
	}

	if r.outbox != nil {
		if err = r.outbox.stageEvents(conn, scan.Events()); err != nil {
			return fmt.Errorf("save scan %s: %w", scan.ID(), err)
		}
		scan.ClearEvents()
	}

	return nil
}

// FindByID retrieves a scan. Returns (nil, nil) when no row matches.
func (r *ScanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Scan, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var scan *model.Scan
	err = sqlitex.Execute(conn, `SELECT `+scanColumns+` FROM scans WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				found, err := scanRowToModel(stmt)
				if err != nil {
					return err
				}
				scan = found
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("find scan %s: %w", id, err)
	}
	return scan, nil
}

// ListRecent retrieves the most recently started scans.
func (r *ScanRepository) ListRecent(ctx context.Context, limit int) ([]*model.Scan, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var scans []*model.Scan
	err = sqlitex.Execute(conn, `SELECT `+scanColumns+` FROM scans
		ORDER BY started_at DESC LIMIT ?`,
		&sqlitex.ExecOptions{
			Args: []any{limit},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				scan, err := scanRowToModel(stmt)
				if err != nil {
					return err
				}
				scans = append(scans, scan)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("list recent scans: %w", err)
	}
	return scans, nil
}

func scanRowToModel(stmt *sqlite.Stmt) (*model.Scan, error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return nil, fmt.Errorf("parse scan id: %w", err)
	}

	var regions []string
	if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &regions); err != nil {
		return nil, fmt.Errorf("parse scan regions: %w", err)
	}

	var counts map[string]int
	if err := json.Unmarshal([]byte(stmt.ColumnText(6)), &counts); err != nil {
		return nil, fmt.Errorf("parse scan tier counts: %w", err)
	}

	savings, err := decimal.NewFromString(stmt.ColumnText(7))
	if err != nil {
		return nil, fmt.Errorf("parse scan savings: %w", err)
	}

	return model.ReconstructScan(
		id,
		regions,
		stmt.ColumnText(2),
		fromNanos(stmt.ColumnInt64(3)),
		fromNanos(stmt.ColumnInt64(4)),
		int(stmt.ColumnInt64(5)),
		counts,
		savings,
	), nil
}
