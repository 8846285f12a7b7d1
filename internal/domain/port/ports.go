package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cloudvigil/zombiescan/internal/domain/model"
	"github.com/cloudvigil/zombiescan/pkg/events"
)

// AssessmentRepository is the persistence port for resource assessments.
type AssessmentRepository interface {
	// Save persists a new or re-scored assessment.
	Save(ctx context.Context, assessment *model.ResourceAssessment) error

	// FindByID retrieves an assessment by its unique identifier.
	// Returns (nil, nil) when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*model.ResourceAssessment, error)

	// FindLatestByResourceID retrieves the most recent assessment for
	// a cloud resource. Returns (nil, nil) when no row matches.
	FindLatestByResourceID(ctx context.Context, resourceID string) (*model.ResourceAssessment, error)

	// ListByScan retrieves the assessments produced by one scan run.
	ListByScan(ctx context.Context, scanID uuid.UUID, limit, offset int) ([]*model.ResourceAssessment, error)

	// RegionZombieRates returns, per region, the historical fraction
	// of assessments that landed in the HIGH tier. Regions with no
	// history are absent from the map.
	RegionZombieRates(ctx context.Context) (map[string]float64, error)
}

// ScanRepository is the persistence port for scan runs.
type ScanRepository interface {
	Save(ctx context.Context, scan *model.Scan) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Scan, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Scan, error)
}

// EventPublisher is the port for handing domain events to the
// messaging infrastructure.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// ModelClient is the port to an external trained classifier. The
// heuristic scorer and a trained model share the same feature
// encoding, so a real model can replace the stub without touching the
// scoring seam.
type ModelClient interface {
	// Predict returns a zombie probability in [0,1] for the encoded
	// feature vector.
	Predict(ctx context.Context, features map[string]float64) (float64, error)
}

// DiscoveredResource is a raw inventory record as reported by a cloud
// provider, before feature extraction.
type DiscoveredResource struct {
	ResourceID   string
	ResourceType string
	Region       string
	Name         string
	InstanceType string
	State        string
	LaunchedAt   time.Time
	Tags         map[string]string
}

// FeatureSource is the port to resource discovery. Implementations
// own all provider API calls, pagination, and region iteration.
type FeatureSource interface {
	Discover(ctx context.Context, regions []string) ([]DiscoveredResource, error)
}
