package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
)

// ScoringProfile holds the additive weights of the heuristic scorer.
// Operators retune sensitivity by overriding individual weights in
// configuration; the zero value is not usable, start from
// DefaultScoringProfile.
type ScoringProfile struct {
	// BaseRate is the prior zombie likelihood absent any signal.
	BaseRate float64

	// StoppedPenalty is added when the resource is in a non-running state.
	StoppedPenalty float64

	// Per-tag penalties added when the tag is absent.
	MissingOwnerTagPenalty       float64
	MissingEnvironmentTagPenalty float64
	MissingNameTagPenalty        float64

	// AgePenalty is added when the resource is older than
	// AgeThresholdDays.
	AgeThresholdDays int
	AgePenalty       float64

	// SizeWeight scales InstanceSizeScore; the size reason line is
	// emitted when the resulting term reaches SizeReasonThreshold.
	SizeWeight          float64
	SizeReasonThreshold float64

	// RegionRateWeight scales RegionZombieRate; the region reason line
	// is emitted when the resulting term reaches RegionReasonThreshold.
	RegionRateWeight      float64
	RegionReasonThreshold float64
}

// DefaultScoringProfile returns the standard weight profile.
func DefaultScoringProfile() ScoringProfile {
	return ScoringProfile{
		BaseRate:                     0.05,
		StoppedPenalty:               0.60,
		MissingOwnerTagPenalty:       0.15,
		MissingEnvironmentTagPenalty: 0.10,
		MissingNameTagPenalty:        0.10,
		AgeThresholdDays:             90,
		AgePenalty:                   0.20,
		SizeWeight:                   0.20,
		SizeReasonThreshold:          0.10,
		RegionRateWeight:             0.15,
		RegionReasonThreshold:        0.05,
	}
}

// HeuristicScorer computes zombie-risk probabilities with an additive
// rule set. It is a pure function of its input: no I/O, no shared
// state, identical input always yields identical output, so one
// instance may be shared across goroutines.
type HeuristicScorer struct {
	profile ScoringProfile
	bands   valueobject.TierBands
}

// NewHeuristicScorer creates a HeuristicScorer with the given weight
// profile and tier bands.
func NewHeuristicScorer(profile ScoringProfile, bands valueobject.TierBands) *HeuristicScorer {
	return &HeuristicScorer{profile: profile, bands: bands}
}

// Score converts a ResourceFeatures record into a RiskAssessment.
//
// Identity fields are required: a missing resource ID or type is a
// contract violation. Out-of-range numeric fields are clamped to their
// nearest valid bound and scoring proceeds; repeated occurrences
// indicate an upstream extractor bug and are the caller's job to flag.
func (s *HeuristicScorer) Score(f ResourceFeatures) (RiskAssessment, error) {
	if f.ResourceID == "" {
		return RiskAssessment{}, &ContractViolationError{Field: "resource_id"}
	}
	if f.ResourceType.IsZero() {
		return RiskAssessment{}, &ContractViolationError{Field: "resource_type"}
	}

	f = clampFeatures(f)

	probability := s.profile.BaseRate
	reasons := make([]string, 0, 7)

	if f.IsStopped {
		probability += s.profile.StoppedPenalty
		reasons = append(reasons, "resource is stopped")
	}

	if !f.HasOwnerTag {
		probability += s.profile.MissingOwnerTagPenalty
		reasons = append(reasons, "missing Owner tag")
	}
	if !f.HasEnvironmentTag {
		probability += s.profile.MissingEnvironmentTagPenalty
		reasons = append(reasons, "missing Environment tag")
	}
	if !f.HasNameTag {
		probability += s.profile.MissingNameTagPenalty
		reasons = append(reasons, "missing Name tag")
	}

	if f.DaysSinceCreation > s.profile.AgeThresholdDays {
		probability += s.profile.AgePenalty
		reasons = append(reasons, fmt.Sprintf("resource is %d days old", f.DaysSinceCreation))
	}

	sizeTerm := f.InstanceSizeScore * s.profile.SizeWeight
	probability += sizeTerm
	if sizeTerm >= s.profile.SizeReasonThreshold {
		reasons = append(reasons, "large instance size increases risk")
	}

	regionTerm := f.RegionZombieRate * s.profile.RegionRateWeight
	probability += regionTerm
	if regionTerm >= s.profile.RegionReasonThreshold {
		reasons = append(reasons, "region has elevated historical zombie rate")
	}

	probability = clamp01(probability)
	tier := s.bands.Classify(probability)

	return RiskAssessment{
		Probability: probability,
		Tier:        tier,
		Reasons:     reasons,
		Summary:     composeSummary(tier, probability, reasons),
	}, nil
}

// clampFeatures pulls out-of-range numeric fields back to their
// documented domains.
func clampFeatures(f ResourceFeatures) ResourceFeatures {
	if f.DaysSinceCreation < 0 {
		f.DaysSinceCreation = 0
	}
	f.InstanceSizeScore = clamp01(f.InstanceSizeScore)
	f.RegionZombieRate = clamp01(f.RegionZombieRate)
	return f
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// composeSummary builds the single-sentence explanation: tier label,
// rounded percentage, and the comma-joined reason list.
func composeSummary(tier valueobject.RiskTier, probability float64, reasons []string) string {
	pct := int(math.Round(probability * 100))
	if len(reasons) == 0 {
		return fmt.Sprintf("%s: %d%% chance of becoming a zombie; no elevated-risk factors detected", tier.Label(), pct)
	}
	return fmt.Sprintf("%s: %d%% chance of becoming a zombie because %s", tier.Label(), pct, strings.Join(reasons, ", "))
}
