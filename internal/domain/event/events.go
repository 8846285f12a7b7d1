package event

import (
	"github.com/google/uuid"

	"github.com/cloudvigil/zombiescan/pkg/events"
)

const (
	// EventTypeAssessmentCompleted is emitted for every scored resource.
	EventTypeAssessmentCompleted = "zombiescan.assessment.completed"

	// EventTypeHighRiskDetected is emitted when a resource lands in
	// the HIGH tier, for alerting and cleanup workflows.
	EventTypeHighRiskDetected = "zombiescan.high_risk.detected"

	// EventTypeScanCompleted is emitted when a scan run finishes.
	EventTypeScanCompleted = "zombiescan.scan.completed"
)

// AssessmentCompleted is published when a resource assessment finishes.
type AssessmentCompleted struct {
	events.Metadata
	AssessmentID uuid.UUID `json:"assessment_id"`
	ScanID       uuid.UUID `json:"scan_id"`
	ResourceID   string    `json:"resource_id"`
	ResourceType string    `json:"resource_type"`
	Region       string    `json:"region"`
	Probability  float64   `json:"probability"`
	RiskTier     string    `json:"risk_tier"`
	Action       string    `json:"action"`
	Reasons      []string  `json:"reasons"`
}

// NewAssessmentCompleted creates an AssessmentCompleted event.
func NewAssessmentCompleted(
	assessmentID, scanID uuid.UUID,
	resourceID, resourceType, region string,
	probability float64,
	riskTier, action string,
	reasons []string,
) AssessmentCompleted {
	return AssessmentCompleted{
		Metadata:     events.NewMetadata(EventTypeAssessmentCompleted, assessmentID, "ResourceAssessment"),
		AssessmentID: assessmentID,
		ScanID:       scanID,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		Region:       region,
		Probability:  probability,
		RiskTier:     riskTier,
		Action:       action,
		Reasons:      reasons,
	}
}

// HighRiskDetected is published when an assessment lands in the HIGH
// tier.
type HighRiskDetected struct {
	events.Metadata
	AssessmentID string  `json:"assessment_id"`
	ResourceID   string  `json:"resource_id"`
	ResourceType string  `json:"resource_type"`
	Region       string  `json:"region"`
	Probability  float64 `json:"probability"`
	MonthlyCost  string  `json:"estimated_monthly_cost"`
}

// NewHighRiskDetected creates a HighRiskDetected event.
func NewHighRiskDetected(
	assessmentID uuid.UUID,
	resourceID, resourceType, region string,
	probability float64,
	monthlyCost string,
) HighRiskDetected {
	return HighRiskDetected{
		Metadata:     events.NewMetadata(EventTypeHighRiskDetected, assessmentID, "ResourceAssessment"),
		AssessmentID: assessmentID.String(),
		ResourceID:   resourceID,
		ResourceType: resourceType,
		Region:       region,
		Probability:  probability,
		MonthlyCost:  monthlyCost,
	}
}

// ScanCompleted is published when a scan run finishes.
type ScanCompleted struct {
	events.Metadata
	ScanID          uuid.UUID      `json:"scan_id"`
	Regions         []string       `json:"regions"`
	TotalResources  int            `json:"total_resources"`
	CountsByTier    map[string]int `json:"counts_by_tier"`
	MonthlySavings  string         `json:"estimated_monthly_savings"`
	DurationSeconds float64        `json:"duration_seconds"`
}

// NewScanCompleted creates a ScanCompleted event.
func NewScanCompleted(
	scanID uuid.UUID,
	regions []string,
	totalResources int,
	countsByTier map[string]int,
	monthlySavings string,
	durationSeconds float64,
) ScanCompleted {
	return ScanCompleted{
		Metadata:        events.NewMetadata(EventTypeScanCompleted, scanID, "Scan"),
		ScanID:          scanID,
		Regions:         regions,
		TotalResources:  totalResources,
		CountsByTier:    countsByTier,
		MonthlySavings:  monthlySavings,
		DurationSeconds: durationSeconds,
	}
}
