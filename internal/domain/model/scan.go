package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cloudvigil/zombiescan/internal/domain/event"
	"github.com/cloudvigil/zombiescan/pkg/events"
)

// Scan records one scan run: the regions covered, how many resources
// were assessed, the tier breakdown, and the total estimated monthly
// waste of HIGH-tier resources.
type Scan struct {
	events.EventCollector

	id             uuid.UUID
	regions        []string
	status         string
	startedAt      time.Time
	completedAt    time.Time
	totalResources int
	countsByTier   map[string]int
	monthlySavings decimal.Decimal
}

// Scan status values.
const (
	ScanStatusRunning   = "running"
	ScanStatusCompleted = "completed"
	ScanStatusFailed    = "failed"
)

// NewScan starts a scan over the given regions.
func NewScan(regions []string) (*Scan, error) {
	if len(regions) == 0 {
		return nil, fmt.Errorf("at least one region is required")
	}
	return &Scan{
		id:           uuid.New(),
		regions:      regions,
		status:       ScanStatusRunning,
		startedAt:    time.Now().UTC(),
		countsByTier: make(map[string]int),
	}, nil
}

// Complete marks the scan finished and emits the ScanCompleted event.
func (s *Scan) Complete(totalResources int, countsByTier map[string]int, monthlySavings decimal.Decimal) error {
	if s.status != ScanStatusRunning {
		return fmt.Errorf("scan %s is not running", s.id)
	}

	s.status = ScanStatusCompleted
	s.completedAt = time.Now().UTC()
	s.totalResources = totalResources
	s.countsByTier = countsByTier
	s.monthlySavings = monthlySavings

	s.Record(event.NewScanCompleted(
		s.id,
		s.regions,
		totalResources,
		countsByTier,
		monthlySavings.StringFixed(2),
		s.Duration().Seconds(),
	))

	return nil
}

// Fail marks the scan as failed.
func (s *Scan) Fail() {
	s.status = ScanStatusFailed
	s.completedAt = time.Now().UTC()
}

// Duration returns the wall-clock length of the scan, zero while still
// running.
func (s *Scan) Duration() time.Duration {
	if s.completedAt.IsZero() {
		return 0
	}
	return s.completedAt.Sub(s.startedAt)
}

// ReconstructScan rebuilds a Scan from persisted data.
func ReconstructScan(
	id uuid.UUID,
	regions []string,
	status string,
	startedAt, completedAt time.Time,
	totalResources int,
	countsByTier map[string]int,
	monthlySavings decimal.Decimal,
) *Scan {
	if countsByTier == nil {
		countsByTier = make(map[string]int)
	}
	return &Scan{
		id:             id,
		regions:        regions,
		status:         status,
		startedAt:      startedAt,
		completedAt:    completedAt,
		totalResources: totalResources,
		countsByTier:   countsByTier,
		monthlySavings: monthlySavings,
	}
}

// --- Accessors ---

func (s *Scan) ID() uuid.UUID                   { return s.id }
func (s *Scan) Regions() []string               { return s.regions }
func (s *Scan) Status() string                  { return s.status }
func (s *Scan) StartedAt() time.Time            { return s.startedAt }
func (s *Scan) CompletedAt() time.Time          { return s.completedAt }
func (s *Scan) TotalResources() int             { return s.totalResources }
func (s *Scan) CountsByTier() map[string]int    { return s.countsByTier }
func (s *Scan) MonthlySavings() decimal.Decimal { return s.monthlySavings }
