package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/cloudvigil/zombiescan/internal/application/dto"
	"github.com/cloudvigil/zombiescan/internal/domain/model"
	"github.com/cloudvigil/zombiescan/internal/domain/port"
	"github.com/cloudvigil/zombiescan/internal/domain/service"
	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
)

// RunScan orchestrates a full scan: discover resources, score each one
// independently, persist the assessments, and publish a summary. One
// bad resource never fails the scan; it is logged and skipped.
type RunScan struct {
	scans       port.ScanRepository
	assessments port.AssessmentRepository
	publisher   port.EventPublisher
	source      port.FeatureSource
	scorer      service.Scorer
	extractor   *service.FeatureExtractor
	estimator   *service.CostEstimator
	logger      *slog.Logger
}

// NewRunScan creates a new RunScan use case.
func NewRunScan(
	scans port.ScanRepository,
	assessments port.AssessmentRepository,
	publisher port.EventPublisher,
	source port.FeatureSource,
	scorer service.Scorer,
	extractor *service.FeatureExtractor,
	estimator *service.CostEstimator,
	logger *slog.Logger,
) *RunScan {
	return &RunScan{
		scans:       scans,
		assessments: assessments,
		publisher:   publisher,
		source:      source,
		scorer:      scorer,
		extractor:   extractor,
		estimator:   estimator,
		logger:      logger,
	}
}

// Execute runs a scan over the requested regions.
func (uc *RunScan) Execute(ctx context.Context, req dto.RunScanRequest) (dto.ScanResponse, error) {
	scan, err := model.NewScan(req.Regions)
	if err != nil {
		return dto.ScanResponse{}, fmt.Errorf("failed to start scan: %w", err)
	}
	if err := uc.scans.Save(ctx, scan); err != nil {
		return dto.ScanResponse{}, fmt.Errorf("failed to save scan: %w", err)
	}

	rates, err := uc.assessments.RegionZombieRates(ctx)
	if err != nil {
		return uc.fail(ctx, scan, fmt.Errorf("failed to load region zombie rates: %w", err))
	}

	resources, err := uc.source.Discover(ctx, req.Regions)
	if err != nil {
		return uc.fail(ctx, scan, fmt.Errorf("resource discovery failed: %w", err))
	}

	uc.logger.Info("scan discovery finished",
		"scan_id", scan.ID(),
		"regions", req.Regions,
		"resources", len(resources),
	)

	var (
		assessed     int
		countsByTier = make(map[string]int)
		savings      = decimal.Zero
	)

	for _, res := range resources {
		assessment, err := uc.assessOne(ctx, scan, res, rates)
		if err != nil {
			uc.logger.Warn("skipping resource",
				"scan_id", scan.ID(),
				"resource_id", res.ResourceID,
				"error", err,
			)
			continue
		}

		assessed++
		countsByTier[assessment.Tier().String()]++
		if assessment.Tier().Equal(valueobject.TierHigh) {
			savings = savings.Add(assessment.MonthlyCost())
		}
	}

	if err := scan.Complete(assessed, countsByTier, savings); err != nil {
		return dto.ScanResponse{}, fmt.Errorf("failed to complete scan: %w", err)
	}
	if err := uc.scans.Save(ctx, scan); err != nil {
		return dto.ScanResponse{}, fmt.Errorf("failed to save scan: %w", err)
	}
	if evts := scan.ClearEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			return dto.ScanResponse{}, fmt.Errorf("failed to publish scan events: %w", err)
		}
	}

	uc.logger.Info("scan completed",
		"scan_id", scan.ID(),
		"assessed", assessed,
		"counts_by_tier", countsByTier,
		"estimated_monthly_savings", savings.StringFixed(2),
	)

	return dto.ScanFromModel(scan), nil
}

func (uc *RunScan) assessOne(ctx context.Context, scan *model.Scan, res port.DiscoveredResource, rates map[string]float64) (*model.ResourceAssessment, error) {
	features, err := uc.extractor.Extract(res, rates)
	if err != nil {
		return nil, err
	}

	result, err := uc.scorer.Score(features)
	if err != nil {
		return nil, err
	}

	assessment, err := model.NewResourceAssessment(
		scan.ID(),
		res.ResourceID,
		features.ResourceType,
		res.Region,
		res.Name,
		res.InstanceType,
		uc.estimator.MonthlyCost(features.ResourceType, res.InstanceType),
	)
	if err != nil {
		return nil, err
	}

	if err := assessment.Assess(result.Probability, result.Tier, result.Reasons, result.Summary); err != nil {
		return nil, err
	}

	if err := uc.assessments.Save(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}

	if evts := assessment.ClearEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			return nil, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return assessment, nil
}

func (uc *RunScan) fail(ctx context.Context, scan *model.Scan, cause error) (dto.ScanResponse, error) {
	scan.Fail()
	if err := uc.scans.Save(ctx, scan); err != nil {
		uc.logger.Error("failed to persist scan failure", "scan_id", scan.ID(), "error", err)
	}
	return dto.ScanResponse{}, cause
}
