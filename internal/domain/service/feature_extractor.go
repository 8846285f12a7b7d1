package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/cloudvigil/zombiescan/internal/domain/port"
	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
)

// DefaultRegionRatePrior is the region zombie rate assumed for regions
// with no assessment history yet.
const DefaultRegionRatePrior = 0.15

// sizeScoreBySuffix maps the size suffix of an instance type
// ("t3.medium" -> "medium") to a relative size score in [0,1]. Bigger
// instances waste more money when forgotten.
var sizeScoreBySuffix = map[string]float64{
	"nano":     0.1,
	"micro":    0.15,
	"small":    0.2,
	"medium":   0.3,
	"large":    0.4,
	"xlarge":   0.55,
	"2xlarge":  0.7,
	"4xlarge":  0.85,
	"8xlarge":  1.0,
	"12xlarge": 1.0,
	"16xlarge": 1.0,
	"24xlarge": 1.0,
	"metal":    1.0,
}

const defaultSizeScore = 0.5

// FeatureExtractor turns raw inventory records into the feature vector
// consumed by scorers. Extraction is pure: same record, same rates,
// same clock, same features.
type FeatureExtractor struct {
	now func() time.Time
}

// NewFeatureExtractor creates an extractor using the real clock.
func NewFeatureExtractor() *FeatureExtractor {
	return &FeatureExtractor{now: time.Now}
}

// NewFeatureExtractorAt creates an extractor with a fixed clock, for
// deterministic extraction in tests and replays.
func NewFeatureExtractorAt(now func() time.Time) *FeatureExtractor {
	return &FeatureExtractor{now: now}
}

// Extract builds the feature vector for one discovered resource.
// regionRates carries the historical per-region HIGH-tier fraction;
// regions absent from the map get the default prior.
func (e *FeatureExtractor) Extract(res port.DiscoveredResource, regionRates map[string]float64) (ResourceFeatures, error) {
	resourceType, err := valueobject.ResourceTypeFromString(res.ResourceType)
	if err != nil {
		return ResourceFeatures{}, fmt.Errorf("extract features for %s: %w", res.ResourceID, err)
	}

	rate, ok := regionRates[res.Region]
	if !ok {
		rate = DefaultRegionRatePrior
	}

	return ResourceFeatures{
		ResourceID:        res.ResourceID,
		ResourceType:      resourceType,
		Region:            res.Region,
		DaysSinceCreation: e.daysSince(res.LaunchedAt),
		HasNameTag:        hasTag(res.Tags, "Name"),
		HasOwnerTag:       hasTag(res.Tags, "Owner"),
		HasEnvironmentTag: hasTag(res.Tags, "Environment"),
		IsStopped:         isIdleState(resourceType, res.State),
		InstanceSizeScore: InstanceSizeScore(res.InstanceType),
		RegionZombieRate:  rate,
	}, nil
}

func (e *FeatureExtractor) daysSince(launchedAt time.Time) int {
	if launchedAt.IsZero() {
		return 0
	}
	return int(e.now().UTC().Sub(launchedAt).Hours() / 24)
}

// InstanceSizeScore maps an instance type to its relative size score.
// Unknown or empty types get a neutral middle score.
func InstanceSizeScore(instanceType string) float64 {
	if instanceType == "" {
		return defaultSizeScore
	}
	parts := strings.SplitN(instanceType, ".", 2)
	if len(parts) != 2 {
		return defaultSizeScore
	}
	score, ok := sizeScoreBySuffix[strings.ToLower(parts[1])]
	if !ok {
		return defaultSizeScore
	}
	return score
}

// isIdleState reports whether the provider state means the resource is
// provisioned but doing no work. For volumes that is "available"
// (created but unattached); load balancers have no idle state.
func isIdleState(resourceType valueobject.ResourceType, state string) bool {
	switch resourceType {
	case valueobject.ResourceEBS:
		return strings.EqualFold(state, "available")
	case valueobject.ResourceELB:
		return false
	default:
		return strings.EqualFold(state, "stopped")
	}
}

func hasTag(tags map[string]string, key string) bool {
	value, ok := tags[key]
	return ok && strings.TrimSpace(value) != ""
}
