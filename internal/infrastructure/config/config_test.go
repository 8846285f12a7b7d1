package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloudvigil/zombiescan/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8098", cfg.GRPCAddress())
	assert.Equal(t, ":9098", cfg.HTTPAddress())
	assert.Equal(t, "heuristic", cfg.Scorer)
	assert.Equal(t, []string{"us-east-1"}, cfg.DefaultRegions)
	assert.Equal(t, 0.05, cfg.Scoring.BaseRate)
	assert.Equal(t, 0.60, cfg.Scoring.StoppedPenalty)
	assert.Equal(t, 0.10, cfg.Scoring.SizeReasonThreshold)
	assert.Equal(t, 0.05, cfg.Scoring.RegionReasonThreshold)
	assert.Equal(t, 0.70, cfg.Bands.High)
	assert.Equal(t, "outbox", cfg.EventPublishMode)
	assert.False(t, cfg.KafkaTLS)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GRPC_PORT", "7001")
	t.Setenv("SCORER", "hybrid")
	t.Setenv("ML_WEIGHT", "0.25")
	t.Setenv("SCORE_STOPPED_PENALTY", "0.5")
	t.Setenv("SCORE_AGE_THRESHOLD_DAYS", "30")
	t.Setenv("SCORE_SIZE_REASON_THRESHOLD", "0.2")
	t.Setenv("SCORE_REGION_REASON_THRESHOLD", "0.01")
	t.Setenv("TIER_HIGH", "0.8")
	t.Setenv("SCAN_REGIONS", "us-east-1, eu-west-1")
	t.Setenv("KAFKA_TLS", "true")
	t.Setenv("KAFKA_SASL_MECHANISM", "SCRAM-SHA-512")
	t.Setenv("EVENT_PUBLISH_MODE", "direct")

	cfg := config.Load()

	assert.Equal(t, ":7001", cfg.GRPCAddress())
	assert.Equal(t, "hybrid", cfg.Scorer)
	assert.Equal(t, 0.25, cfg.MLWeight)
	assert.Equal(t, 0.5, cfg.Scoring.StoppedPenalty)
	assert.Equal(t, 30, cfg.Scoring.AgeThresholdDays)
	assert.Equal(t, 0.2, cfg.Scoring.SizeReasonThreshold)
	assert.Equal(t, 0.01, cfg.Scoring.RegionReasonThreshold)
	assert.Equal(t, 0.8, cfg.Bands.High)
	assert.Equal(t, []string{"us-east-1", "eu-west-1"}, cfg.DefaultRegions)
	assert.True(t, cfg.KafkaTLS)
	assert.Equal(t, "SCRAM-SHA-512", cfg.KafkaSASLMechanism)
	assert.Equal(t, "direct", cfg.EventPublishMode)
}

func TestLoad_InvalidNumericFallsBackToDefault(t *testing.T) {
	t.Setenv("ML_WEIGHT", "not-a-number")
	t.Setenv("SCORE_AGE_THRESHOLD_DAYS", "ninety")

	cfg := config.Load()

	assert.Equal(t, 0.4, cfg.MLWeight)
	assert.Equal(t, 90, cfg.Scoring.AgeThresholdDays)
}
