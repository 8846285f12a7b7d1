package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/cloudvigil/zombiescan/internal/domain/model"
	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
	"github.com/cloudvigil/zombiescan/pkg/sqlitepool"
)

// AssessmentRepository implements port.AssessmentRepository on SQLite.
type AssessmentRepository struct {
	pool   *sqlitepool.Pool
	outbox *OutboxRepository
}

// NewAssessmentRepository creates a repository on the given pool. A
// non-nil outbox makes Save stage the assessment's recorded events in
// the same transaction as the aggregate; pass nil when events are
// published directly to the broker.
func NewAssessmentRepository(pool *sqlitepool.Pool, outbox *OutboxRepository) *AssessmentRepository {
	return &AssessmentRepository{pool: pool, outbox: outbox}
}

const assessmentColumns = `id, scan_id, resource_id, resource_type, region, name,
	instance_type, monthly_cost, probability, risk_tier, action, summary,
	assessed_at, version, created_at, updated_at`

// Save upserts the assessment and its reason rows in one transaction.
// When the repository carries an outbox, the assessment's recorded
// events are staged in that same transaction and drained from the
// aggregate so the caller never publishes them a second time.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *model.ResourceAssessment) error {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer r.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("save assessment: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	err = sqlitex.Execute(conn, `INSERT INTO resource_assessments (`+assessmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			probability = excluded.probability,
			risk_tier   = excluded.risk_tier,
			action      = excluded.action,
			summary     = excluded.summary,
			assessed_at = excluded.assessed_at,
			version     = excluded.version,
			updated_at  = excluded.updated_at`,
		&sqlitex.ExecOptions{
			Args: []any{
				assessment.ID().String(),
				assessment.ScanID().String(),
				assessment.ResourceID(),
				assessment.ResourceType().String(),
				assessment.Region(),
				assessment.Name(),
				assessment.InstanceType(),
				assessment.MonthlyCost().String(),
				assessment.Probability(),
				assessment.Tier().String(),
				assessment.Action().String(),
				assessment.Summary(),
				nanos(assessment.AssessedAt()),
				assessment.Version(),
				nanos(assessment.CreatedAt()),
				nanos(assessment.UpdatedAt()),
			},
		})
	if err != nil {
		return fmt.Errorf("save assessment %s: %w", assessment.ID(), err)
	}

	err = sqlitex.Execute(conn, `DELETE FROM assessment_reasons WHERE assessment_id = ?`,
		&sqlitex.ExecOptions{Args: []any{assessment.ID().String()}})
	if err != nil {
		return fmt.Errorf("save assessment %s: clear reasons: %w", assessment.ID(), err)
	}

	for i, reason := range assessment.Reasons() {
		err = sqlitex.Execute(conn, `INSERT INTO assessment_reasons (assessment_id, position, reason)
			VALUES (?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{assessment.ID().String(), i, reason}})
		if err != nil {
			return fmt.Errorf("save assessment %s: reason %d: %w", assessment.ID(), i, err)
		}
	}

	if r.outbox != nil {
		if err = r.outbox.stageEvents(conn, assessment.Events()); err != nil {
			return fmt.Errorf("save assessment %s: %w", assessment.ID(), err)
		}
		assessment.ClearEvents()
	}

	return nil
}

// FindByID retrieves an assessment. Returns (nil, nil) when no row
// matches.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ResourceAssessment, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	return r.findOne(conn, `SELECT `+assessmentColumns+` FROM resource_assessments WHERE id = ?`,
		[]any{id.String()})
}

// FindLatestByResourceID retrieves the most recent assessment for a
// cloud resource. Returns (nil, nil) when no row matches.
func (r *AssessmentRepository) FindLatestByResourceID(ctx context.Context, resourceID string) (*model.ResourceAssessment, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	return r.findOne(conn, `SELECT `+assessmentColumns+` FROM resource_assessments
		WHERE resource_id = ? ORDER BY assessed_at DESC LIMIT 1`,
		[]any{resourceID})
}

// ListByScan retrieves the assessments of one scan, most recently
// assessed first.
func (r *AssessmentRepository) ListByScan(ctx context.Context, scanID uuid.UUID, limit, offset int) ([]*model.ResourceAssessment, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	var assessments []*model.ResourceAssessment
	err = sqlitex.Execute(conn, `SELECT `+assessmentColumns+` FROM resource_assessments
		WHERE scan_id = ? ORDER BY assessed_at DESC, id LIMIT ? OFFSET ?`,
		&sqlitex.ExecOptions{
			Args: []any{scanID.String(), limit, offset},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				assessment, err := r.scanRow(conn, stmt)
				if err != nil {
					return err
				}
				assessments = append(assessments, assessment)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("list assessments for scan %s: %w", scanID, err)
	}
	return assessments, nil
}

// RegionZombieRates returns the historical fraction of HIGH-tier
// assessments per region.
func (r *AssessmentRepository) RegionZombieRates(ctx context.Context) (map[string]float64, error) {
	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.pool.Put(conn)

	rates := make(map[string]float64)
	err = sqlitex.Execute(conn, `SELECT region,
			AVG(CASE WHEN risk_tier = 'HIGH' THEN 1.0 ELSE 0.0 END)
		FROM resource_assessments GROUP BY region`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				rates[stmt.ColumnText(0)] = stmt.ColumnFloat(1)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("region zombie rates: %w", err)
	}
	return rates, nil
}

func (r *AssessmentRepository) findOne(conn *sqlite.Conn, query string, args []any) (*model.ResourceAssessment, error) {
	var assessment *model.ResourceAssessment
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found, err := r.scanRow(conn, stmt)
			if err != nil {
				return err
			}
			assessment = found
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("find assessment: %w", err)
	}
	return assessment, nil
}

func (r *AssessmentRepository) scanRow(conn *sqlite.Conn, stmt *sqlite.Stmt) (*model.ResourceAssessment, error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return nil, fmt.Errorf("parse assessment id: %w", err)
	}
	scanID, err := uuid.Parse(stmt.ColumnText(1))
	if err != nil {
		return nil, fmt.Errorf("parse scan id: %w", err)
	}
	resourceType, err := valueobject.ResourceTypeFromString(stmt.ColumnText(3))
	if err != nil {
		return nil, err
	}
	monthlyCost, err := decimal.NewFromString(stmt.ColumnText(7))
	if err != nil {
		return nil, fmt.Errorf("parse monthly cost: %w", err)
	}
	tier, err := valueobject.RiskTierFromString(stmt.ColumnText(9))
	if err != nil {
		return nil, err
	}
	action, err := valueobject.RecommendedActionFromString(stmt.ColumnText(10))
	if err != nil {
		return nil, err
	}

	reasons, err := r.loadReasons(conn, id)
	if err != nil {
		return nil, err
	}

	return model.ReconstructAssessment(
		id, scanID,
		stmt.ColumnText(2),
		resourceType,
		stmt.ColumnText(4), stmt.ColumnText(5), stmt.ColumnText(6),
		monthlyCost,
		stmt.ColumnFloat(8),
		tier,
		action,
		reasons,
		stmt.ColumnText(11),
		fromNanos(stmt.ColumnInt64(12)),
		int(stmt.ColumnInt64(13)),
		fromNanos(stmt.ColumnInt64(14)),
		fromNanos(stmt.ColumnInt64(15)),
	), nil
}

func (r *AssessmentRepository) loadReasons(conn *sqlite.Conn, assessmentID uuid.UUID) ([]string, error) {
	var reasons []string
	err := sqlitex.Execute(conn, `SELECT reason FROM assessment_reasons
		WHERE assessment_id = ? ORDER BY position`,
		&sqlitex.ExecOptions{
			Args: []any{assessmentID.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				reasons = append(reasons, stmt.ColumnText(0))
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("load reasons for %s: %w", assessmentID, err)
	}
	return reasons, nil
}

func nanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
