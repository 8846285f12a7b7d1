package service

import "github.com/cloudvigil/zombiescan/internal/domain/valueobject"

// ResourceFeatures is the normalized per-resource input to risk
// scoring, produced once per scan by the feature extractor. Records
// are immutable after creation.
type ResourceFeatures struct {
	ResourceID        string
	ResourceType      valueobject.ResourceType
	Region            string
	DaysSinceCreation int
	HasNameTag        bool
	HasOwnerTag       bool
	HasEnvironmentTag bool
	IsStopped         bool

	// InstanceSizeScore is in [0,1], monotonically increasing with the
	// resource's size class (nano near 0, the largest classes at 1).
	InstanceSizeScore float64

	// RegionZombieRate is the historical fraction of zombies observed
	// in the resource's region, in [0,1].
	RegionZombieRate float64
}

// RiskAssessment is the result of scoring one ResourceFeatures record.
type RiskAssessment struct {
	// Probability is the zombie-risk probability, always in [0,1].
	Probability float64

	// Tier is a pure function of Probability.
	Tier valueobject.RiskTier

	// Reasons lists one human-readable line per contributing feature,
	// in scoring order. Empty when no risk factor fired.
	Reasons []string

	// Summary is a single sentence combining the tier label, rounded
	// percentage, and the reason list.
	Summary string
}

// Scorer is the strategy interface for risk scoring. HeuristicScorer
// is rule-based; HybridScorer blends the rules with a trained model
// prediction. The orchestrator selects one by configuration.
type Scorer interface {
	Score(features ResourceFeatures) (RiskAssessment, error)
}
