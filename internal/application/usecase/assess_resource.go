package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cloudvigil/zombiescan/internal/application/dto"
	"github.com/cloudvigil/zombiescan/internal/domain/model"
	"github.com/cloudvigil/zombiescan/internal/domain/port"
	"github.com/cloudvigil/zombiescan/internal/domain/service"
)

// AssessResource is the use case for scoring a single resource outside
// a full scan run.
type AssessResource struct {
	repo      port.AssessmentRepository
	publisher port.EventPublisher
	scorer    service.Scorer
	extractor *service.FeatureExtractor
	estimator *service.CostEstimator
}

// NewAssessResource creates a new AssessResource use case.
func NewAssessResource(
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	scorer service.Scorer,
	extractor *service.FeatureExtractor,
	estimator *service.CostEstimator,
) *AssessResource {
	return &AssessResource{
		repo:      repo,
		publisher: publisher,
		scorer:    scorer,
		extractor: extractor,
		estimator: estimator,
	}
}

// Execute extracts features, scores the resource, persists the
// assessment, and publishes the resulting events. A zero ScanID is
// replaced with a fresh one, marking an ad-hoc assessment.
func (uc *AssessResource) Execute(ctx context.Context, req dto.AssessResourceRequest) (dto.AssessmentResponse, error) {
	rates, err := uc.repo.RegionZombieRates(ctx)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to load region zombie rates: %w", err)
	}

	features, err := uc.extractor.Extract(port.DiscoveredResource{
		ResourceID:   req.ResourceID,
		ResourceType: req.ResourceType,
		Region:       req.Region,
		Name:         req.Name,
		InstanceType: req.InstanceType,
		State:        req.State,
		LaunchedAt:   req.LaunchedAt,
		Tags:         req.Tags,
	}, rates)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}

	result, err := uc.scorer.Score(features)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}

	scanID := req.ScanID
	if scanID == uuid.Nil {
		scanID = uuid.New()
	}

	assessment, err := model.NewResourceAssessment(
		scanID,
		req.ResourceID,
		features.ResourceType,
		req.Region,
		req.Name,
		req.InstanceType,
		uc.estimator.MonthlyCost(features.ResourceType, req.InstanceType),
	)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	if err := assessment.Assess(result.Probability, result.Tier, result.Reasons, result.Summary); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to assess resource: %w", err)
	}

	if err := uc.repo.Save(ctx, assessment); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to save assessment: %w", err)
	}

	if evts := assessment.ClearEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.FromModel(assessment), nil
}
