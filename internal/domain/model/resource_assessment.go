package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cloudvigil/zombiescan/internal/domain/event"
	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
	"github.com/cloudvigil/zombiescan/pkg/events"
)

// ResourceAssessment is the aggregate root for zombie-risk
// assessments. One assessment records the scoring outcome for one
// cloud resource in one scan.
type ResourceAssessment struct {
	events.EventCollector

	id           uuid.UUID
	scanID       uuid.UUID
	resourceID   string
	resourceType valueobject.ResourceType
	region       string
	name         string
	instanceType string
	monthlyCost  decimal.Decimal

	probability float64
	tier        valueobject.RiskTier
	action      valueobject.RecommendedAction
	reasons     []string
	summary     string

	assessedAt time.Time
	createdAt  time.Time
	updatedAt  time.Time
	version    int
}

// NewResourceAssessment creates an unscored assessment for a
// discovered resource; call Assess to apply a scoring result. Identity
// fields are required — defaulting them here would let contract
// violations slip through to reports.
func NewResourceAssessment(
	scanID uuid.UUID,
	resourceID string,
	resourceType valueobject.ResourceType,
	region string,
	name string,
	instanceType string,
	monthlyCost decimal.Decimal,
) (*ResourceAssessment, error) {
	if scanID == uuid.Nil {
		return nil, fmt.Errorf("scan ID is required")
	}
	if resourceID == "" {
		return nil, fmt.Errorf("resource ID is required")
	}
	if resourceType.IsZero() {
		return nil, fmt.Errorf("resource type is required")
	}
	if region == "" {
		return nil, fmt.Errorf("region is required")
	}
	if monthlyCost.IsNegative() {
		return nil, fmt.Errorf("monthly cost must not be negative")
	}

	now := time.Now().UTC()

	return &ResourceAssessment{
		id:           uuid.New(),
		scanID:       scanID,
		resourceID:   resourceID,
		resourceType: resourceType,
		region:       region,
		name:         name,
		instanceType: instanceType,
		monthlyCost:  monthlyCost,
		tier:         valueobject.TierVeryLow,
		action:       valueobject.ActionKeep,
		reasons:      make([]string, 0),
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Assess applies a scoring result, deriving the risk tier and
// recommended action and emitting domain events.
func (a *ResourceAssessment) Assess(probability float64, tier valueobject.RiskTier, reasons []string, summary string) error {
	if probability < 0 || probability > 1 {
		return fmt.Errorf("probability must be in [0,1], got %v", probability)
	}
	if tier.IsZero() {
		return fmt.Errorf("risk tier is required")
	}

	a.probability = probability
	a.tier = tier
	a.action = valueobject.ActionFromTier(tier)
	a.reasons = reasons
	a.summary = summary
	a.assessedAt = time.Now().UTC()
	a.updatedAt = a.assessedAt
	a.version++

	a.Record(event.NewAssessmentCompleted(
		a.id, a.scanID,
		a.resourceID, a.resourceType.String(), a.region,
		a.probability, a.tier.String(), a.action.String(),
		a.reasons,
	))

	if a.tier.Equal(valueobject.TierHigh) {
		a.Record(event.NewHighRiskDetected(
			a.id,
			a.resourceID, a.resourceType.String(), a.region,
			a.probability,
			a.monthlyCost.StringFixed(2),
		))
	}

	return nil
}

// ReconstructAssessment rebuilds an assessment from persisted data. No
// validation, no events.
func ReconstructAssessment(
	id, scanID uuid.UUID,
	resourceID string,
	resourceType valueobject.ResourceType,
	region, name, instanceType string,
	monthlyCost decimal.Decimal,
	probability float64,
	tier valueobject.RiskTier,
	action valueobject.RecommendedAction,
	reasons []string,
	summary string,
	assessedAt time.Time,
	version int,
	createdAt, updatedAt time.Time,
) *ResourceAssessment {
	return &ResourceAssessment{
		id:           id,
		scanID:       scanID,
		resourceID:   resourceID,
		resourceType: resourceType,
		region:       region,
		name:         name,
		instanceType: instanceType,
		monthlyCost:  monthlyCost,
		probability:  probability,
		tier:         tier,
		action:       action,
		reasons:      reasons,
		summary:      summary,
		assessedAt:   assessedAt,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Accessors ---

func (a *ResourceAssessment) ID() uuid.UUID                          { return a.id }
func (a *ResourceAssessment) ScanID() uuid.UUID                      { return a.scanID }
func (a *ResourceAssessment) ResourceID() string                     { return a.resourceID }
func (a *ResourceAssessment) ResourceType() valueobject.ResourceType { return a.resourceType }
func (a *ResourceAssessment) Region() string                         { return a.region }
func (a *ResourceAssessment) Name() string                           { return a.name }
func (a *ResourceAssessment) InstanceType() string                   { return a.instanceType }
func (a *ResourceAssessment) MonthlyCost() decimal.Decimal           { return a.monthlyCost }
func (a *ResourceAssessment) Probability() float64                   { return a.probability }
func (a *ResourceAssessment) Tier() valueobject.RiskTier             { return a.tier }
func (a *ResourceAssessment) Action() valueobject.RecommendedAction  { return a.action }
func (a *ResourceAssessment) Reasons() []string                      { return a.reasons }
func (a *ResourceAssessment) Summary() string                        { return a.summary }
func (a *ResourceAssessment) AssessedAt() time.Time                  { return a.assessedAt }
func (a *ResourceAssessment) Version() int                           { return a.version }
func (a *ResourceAssessment) CreatedAt() time.Time                   { return a.createdAt }
func (a *ResourceAssessment) UpdatedAt() time.Time                   { return a.updatedAt }
