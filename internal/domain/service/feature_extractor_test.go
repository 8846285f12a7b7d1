package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudvigil/zombiescan/internal/domain/port"
	"github.com/cloudvigil/zombiescan/internal/domain/service"
	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
)

var extractorNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newExtractor() *service.FeatureExtractor {
	return service.NewFeatureExtractorAt(func() time.Time { return extractorNow })
}

func TestExtract_StoppedInstance(t *testing.T) {
	extractor := newExtractor()

	features, err := extractor.Extract(port.DiscoveredResource{
		ResourceID:   "i-0abc1234",
		ResourceType: "ec2",
		Region:       "us-east-1",
		InstanceType: "m5.large",
		State:        "stopped",
		LaunchedAt:   extractorNow.AddDate(0, 0, -120),
		Tags:         map[string]string{"Name": "batch-runner", "Owner": "data-eng"},
	}, map[string]float64{"us-east-1": 0.25})
	require.NoError(t, err)

	assert.Equal(t, valueobject.ResourceEC2, features.ResourceType)
	assert.Equal(t, 120, features.DaysSinceCreation)
	assert.True(t, features.IsStopped)
	assert.True(t, features.HasNameTag)
	assert.True(t, features.HasOwnerTag)
	assert.False(t, features.HasEnvironmentTag)
	assert.Equal(t, 0.4, features.InstanceSizeScore)
	assert.Equal(t, 0.25, features.RegionZombieRate)
}

func TestExtract_RegionWithoutHistoryGetsPrior(t *testing.T) {
	extractor := newExtractor()

	features, err := extractor.Extract(port.DiscoveredResource{
		ResourceID:   "i-0new",
		ResourceType: "ec2",
		Region:       "ap-south-1",
		State:        "running",
	}, map[string]float64{"us-east-1": 0.5})
	require.NoError(t, err)

	assert.Equal(t, service.DefaultRegionRatePrior, features.RegionZombieRate)
}

func TestExtract_UnattachedVolumeIsIdle(t *testing.T) {
	extractor := newExtractor()

	features, err := extractor.Extract(port.DiscoveredResource{
		ResourceID:   "vol-0abc",
		ResourceType: "ebs",
		Region:       "us-east-1",
		State:        "available",
	}, nil)
	require.NoError(t, err)

	assert.True(t, features.IsStopped)
}

func TestExtract_LoadBalancerNeverIdle(t *testing.T) {
	extractor := newExtractor()

	features, err := extractor.Extract(port.DiscoveredResource{
		ResourceID:   "arn:aws:elasticloadbalancing:lb/app/x",
		ResourceType: "elb",
		Region:       "us-east-1",
		State:        "stopped",
	}, nil)
	require.NoError(t, err)

	assert.False(t, features.IsStopped)
}

func TestExtract_WhitespaceTagValueCountsAsMissing(t *testing.T) {
	extractor := newExtractor()

	features, err := extractor.Extract(port.DiscoveredResource{
		ResourceID:   "i-0blank",
		ResourceType: "ec2",
		Region:       "us-east-1",
		State:        "running",
		Tags:         map[string]string{"Owner": "   "},
	}, nil)
	require.NoError(t, err)

	assert.False(t, features.HasOwnerTag)
}

func TestExtract_UnknownResourceTypeFails(t *testing.T) {
	extractor := newExtractor()

	_, err := extractor.Extract(port.DiscoveredResource{
		ResourceID:   "fn-1",
		ResourceType: "lambda",
		Region:       "us-east-1",
	}, nil)

	assert.ErrorContains(t, err, "invalid resource type")
}

func TestInstanceSizeScore(t *testing.T) {
	tests := []struct {
		instanceType string
		expected     float64
	}{
		{"t3.nano", 0.1},
		{"t2.micro", 0.15},
		{"m5.large", 0.4},
		{"m5.24xlarge", 1.0},
		{"c5.metal", 1.0},
		{"weird-shape", 0.5},
		{"", 0.5},
		{"db.t3.micro", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.instanceType, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.InstanceSizeScore(tt.instanceType))
		})
	}
}
