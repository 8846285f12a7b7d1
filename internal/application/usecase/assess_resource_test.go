package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudvigil/zombiescan/internal/application/dto"
	"github.com/cloudvigil/zombiescan/internal/application/usecase"
	"github.com/cloudvigil/zombiescan/internal/domain/model"
	"github.com/cloudvigil/zombiescan/internal/domain/port"
	"github.com/cloudvigil/zombiescan/internal/domain/service"
	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
	"github.com/cloudvigil/zombiescan/pkg/events"
)

// --- Mock implementations ---

type mockAssessmentRepository struct {
	saved          []*model.ResourceAssessment
	rates          map[string]float64
	ratesErr       error
	saveFunc       func(ctx context.Context, assessment *model.ResourceAssessment) error
	findByIDFunc   func(ctx context.Context, id uuid.UUID) (*model.ResourceAssessment, error)
	findLatestFunc func(ctx context.Context, resourceID string) (*model.ResourceAssessment, error)
	listFunc       func(ctx context.Context, scanID uuid.UUID, limit, offset int) ([]*model.ResourceAssessment, error)
}

func (m *mockAssessmentRepository) Save(ctx context.Context, assessment *model.ResourceAssessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, assessment)
	}
	m.saved = append(m.saved, assessment)
	return nil
}

func (m *mockAssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ResourceAssessment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockAssessmentRepository) FindLatestByResourceID(ctx context.Context, resourceID string) (*model.ResourceAssessment, error) {
	if m.findLatestFunc != nil {
		return m.findLatestFunc(ctx, resourceID)
	}
	return nil, nil
}

func (m *mockAssessmentRepository) ListByScan(ctx context.Context, scanID uuid.UUID, limit, offset int) ([]*model.ResourceAssessment, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, scanID, limit, offset)
	}
	return nil, nil
}

func (m *mockAssessmentRepository) RegionZombieRates(_ context.Context) (map[string]float64, error) {
	if m.ratesErr != nil {
		return nil, m.ratesErr
	}
	return m.rates, nil
}

type mockScanRepository struct {
	saved        []*model.Scan
	statuses     []string
	saveFunc     func(ctx context.Context, scan *model.Scan) error
	findByIDFunc func(ctx context.Context, id uuid.UUID) (*model.Scan, error)
	listFunc     func(ctx context.Context, limit int) ([]*model.Scan, error)
}

func (m *mockScanRepository) Save(ctx context.Context, scan *model.Scan) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, scan)
	}
	m.saved = append(m.saved, scan)
	m.statuses = append(m.statuses, scan.Status())
	return nil
}

func (m *mockScanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Scan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockScanRepository) ListRecent(ctx context.Context, limit int) ([]*model.Scan, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit)
	}
	return nil, nil
}

type mockEventPublisher struct {
	published   []events.DomainEvent
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

type mockFeatureSource struct {
	resources []port.DiscoveredResource
	err       error
}

func (m *mockFeatureSource) Discover(_ context.Context, _ []string) ([]port.DiscoveredResource, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.resources, nil
}

func testClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newAssessFixture(repo *mockAssessmentRepository, publisher *mockEventPublisher) *usecase.AssessResource {
	return usecase.NewAssessResource(
		repo,
		publisher,
		service.NewHeuristicScorer(service.DefaultScoringProfile(), valueobject.DefaultTierBands()),
		service.NewFeatureExtractorAt(testClock),
		service.NewCostEstimator(),
	)
}

func stoppedUntaggedRequest() dto.AssessResourceRequest {
	return dto.AssessResourceRequest{
		ScanID:       uuid.New(),
		ResourceID:   "i-0abc1234",
		ResourceType: "ec2",
		Region:       "us-east-1",
		Name:         "forgotten-batch",
		InstanceType: "m5.large",
		State:        "stopped",
		LaunchedAt:   testClock().AddDate(0, 0, -200),
		Tags:         map[string]string{"Name": "forgotten-batch"},
	}
}

// --- Tests ---

func TestAssessResource_Execute(t *testing.T) {
	t.Run("scores a stopped untagged instance as high risk", func(t *testing.T) {
		repo := &mockAssessmentRepository{rates: map[string]float64{"us-east-1": 0.0}}
		publisher := &mockEventPublisher{}
		uc := newAssessFixture(repo, publisher)

		req := stoppedUntaggedRequest()
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, req.ScanID, resp.ScanID)
		assert.Equal(t, "HIGH", resp.RiskTier)
		assert.Equal(t, "#ff6b6b", resp.RiskColor)
		assert.Equal(t, "CLEANUP_CANDIDATE", resp.RecommendedAction)
		assert.Contains(t, resp.Reasons, "resource is stopped")
		// 0.096/h * 730 h
		assert.Equal(t, "70.08", resp.EstimatedMonthlyCost)
		require.Len(t, repo.saved, 1)
		assert.Len(t, publisher.published, 2)
	})

	t.Run("generates a scan ID for ad-hoc assessments", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		uc := newAssessFixture(repo, publisher)

		req := stoppedUntaggedRequest()
		req.ScanID = uuid.Nil
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.ScanID)
	})

	t.Run("fails for unknown resource type", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		uc := newAssessFixture(repo, publisher)

		req := stoppedUntaggedRequest()
		req.ResourceType = "lambda"
		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid resource type")
		assert.Empty(t, repo.saved)
	})

	t.Run("fails when region rates cannot be loaded", func(t *testing.T) {
		repo := &mockAssessmentRepository{ratesErr: fmt.Errorf("database unavailable")}
		publisher := &mockEventPublisher{}
		uc := newAssessFixture(repo, publisher)

		_, err := uc.Execute(context.Background(), stoppedUntaggedRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load region zombie rates")
	})

	t.Run("fails when repository save fails", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			saveFunc: func(ctx context.Context, assessment *model.ResourceAssessment) error {
				return fmt.Errorf("database unavailable")
			},
		}
		publisher := &mockEventPublisher{}
		uc := newAssessFixture(repo, publisher)

		_, err := uc.Execute(context.Background(), stoppedUntaggedRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save assessment")
	})

	t.Run("fails when event publishing fails", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{
			publishFunc: func(ctx context.Context, evts ...events.DomainEvent) error {
				return fmt.Errorf("kafka unavailable")
			},
		}
		uc := newAssessFixture(repo, publisher)

		_, err := uc.Execute(context.Background(), stoppedUntaggedRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish events")
	})
}
