package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudvigil/zombiescan/internal/domain/service"
	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
)

type fakeModelClient struct {
	prediction float64
	err        error
	lastInput  map[string]float64
}

func (f *fakeModelClient) Predict(_ context.Context, features map[string]float64) (float64, error) {
	f.lastInput = features
	if f.err != nil {
		return 0, f.err
	}
	return f.prediction, nil
}

func newHybrid(model *fakeModelClient, weight float64) *service.HybridScorer {
	return service.NewHybridScorer(newScorer(), model, weight, slog.New(slog.DiscardHandler))
}

func TestHybridScore_BlendsModelPrediction(t *testing.T) {
	model := &fakeModelClient{prediction: 0.95}
	scorer := newHybrid(model, 0.4)

	features := wellManaged()
	features.IsStopped = true // heuristic: 0.65

	result, err := scorer.Score(features)
	require.NoError(t, err)

	// 0.65*0.6 + 0.95*0.4 = 0.77
	assert.InDelta(t, 0.77, result.Probability, 1e-9)
	assert.Equal(t, valueobject.TierHigh, result.Tier)
	assert.Contains(t, result.Reasons, "resource is stopped")
	assert.Contains(t, result.Reasons, "score blended with trained model prediction")
}

func TestHybridScore_FallsBackOnModelError(t *testing.T) {
	model := &fakeModelClient{err: errors.New("model unavailable")}
	scorer := newHybrid(model, 0.4)

	features := wellManaged()
	features.IsStopped = true

	result, err := scorer.Score(features)
	require.NoError(t, err)

	// Heuristic-only: 0.05 + 0.60.
	assert.InDelta(t, 0.65, result.Probability, 1e-9)
	assert.NotContains(t, result.Reasons, "score blended with trained model prediction")
}

func TestHybridScore_PropagatesContractViolations(t *testing.T) {
	model := &fakeModelClient{prediction: 0.5}
	scorer := newHybrid(model, 0.4)

	features := wellManaged()
	features.ResourceID = ""

	_, err := scorer.Score(features)
	require.Error(t, err)
	assert.True(t, service.IsContractViolation(err))
	assert.Nil(t, model.lastInput, "model must not be called for invalid input")
}

func TestHybridScore_ClampsModelPrediction(t *testing.T) {
	model := &fakeModelClient{prediction: 4.0}
	scorer := newHybrid(model, 1.0)

	result, err := scorer.Score(wellManaged())
	require.NoError(t, err)

	assert.Equal(t, 1.0, result.Probability)
}

func TestEncodeFeatures(t *testing.T) {
	features := wellManaged()
	features.IsStopped = true
	features.HasOwnerTag = false
	features.DaysSinceCreation = 42
	features.InstanceSizeScore = 0.3
	features.RegionZombieRate = 0.15

	encoded := service.EncodeFeatures(features)

	assert.Equal(t, map[string]float64{
		"days_since_creation": 42,
		"has_name_tag":        1,
		"has_owner_tag":       0,
		"has_environment_tag": 1,
		"is_stopped":          1,
		"instance_size_score": 0.3,
		"region_zombie_rate":  0.15,
	}, encoded)
}
