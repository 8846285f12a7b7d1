package service

import (
	"context"
	"log/slog"

	"github.com/cloudvigil/zombiescan/internal/domain/port"
)

// HybridScorer blends the heuristic probability with a trained model
// prediction. When the model call fails the heuristic result is used
// alone, so a model outage degrades quality, not availability.
type HybridScorer struct {
	heuristic *HeuristicScorer
	model     port.ModelClient
	mlWeight  float64
	logger    *slog.Logger
}

// NewHybridScorer creates a HybridScorer with the given ML weight in
// [0,1]. Weight 0 means heuristic-only, 1 means model-only.
func NewHybridScorer(heuristic *HeuristicScorer, model port.ModelClient, mlWeight float64, logger *slog.Logger) *HybridScorer {
	return &HybridScorer{
		heuristic: heuristic,
		model:     model,
		mlWeight:  clamp01(mlWeight),
		logger:    logger,
	}
}

// Score runs the heuristic first, then attempts a model prediction and
// blends the two probabilities.
func (h *HybridScorer) Score(f ResourceFeatures) (RiskAssessment, error) {
	base, err := h.heuristic.Score(f)
	if err != nil {
		return RiskAssessment{}, err
	}

	prediction, err := h.model.Predict(context.Background(), EncodeFeatures(f))
	if err != nil {
		h.logger.Warn("model prediction failed, using heuristic-only scoring",
			"resource_id", f.ResourceID,
			"error", err,
		)
		return base, nil
	}

	blended := clamp01(base.Probability*(1-h.mlWeight) + clamp01(prediction)*h.mlWeight)
	tier := h.heuristic.bands.Classify(blended)

	reasons := make([]string, len(base.Reasons), len(base.Reasons)+1)
	copy(reasons, base.Reasons)
	reasons = append(reasons, "score blended with trained model prediction")

	return RiskAssessment{
		Probability: blended,
		Tier:        tier,
		Reasons:     reasons,
		Summary:     composeSummary(tier, blended, reasons),
	}, nil
}

// EncodeFeatures flattens a ResourceFeatures record into the numeric
// vector shared by the heuristic and any trained model.
func EncodeFeatures(f ResourceFeatures) map[string]float64 {
	return map[string]float64{
		"days_since_creation": float64(f.DaysSinceCreation),
		"has_name_tag":        boolFeature(f.HasNameTag),
		"has_owner_tag":       boolFeature(f.HasOwnerTag),
		"has_environment_tag": boolFeature(f.HasEnvironmentTag),
		"is_stopped":          boolFeature(f.IsStopped),
		"instance_size_score": f.InstanceSizeScore,
		"region_zombie_rate":  f.RegionZombieRate,
	}
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
