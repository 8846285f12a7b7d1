package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/cloudvigil/zombiescan/internal/domain/model"
)

// AssessResourceRequest is the input DTO for the AssessResource use
// case. It carries one raw inventory record; feature extraction and
// scoring happen inside the use case.
type AssessResourceRequest struct {
	Tags         map[string]string `json:"tags"`
	ScanID       uuid.UUID         `json:"scan_id"`
	ResourceID   string            `json:"resource_id"`
	ResourceType string            `json:"resource_type"`
	Region       string            `json:"region"`
	Name         string            `json:"name"`
	InstanceType string            `json:"instance_type"`
	State        string            `json:"state"`
	LaunchedAt   time.Time         `json:"launched_at"`
}

// AssessmentResponse is the output DTO returned for an assessment.
type AssessmentResponse struct {
	AssessedAt           time.Time `json:"assessed_at"`
	CreatedAt            time.Time `json:"created_at"`
	Reasons              []string  `json:"reasons"`
	ID                   uuid.UUID `json:"id"`
	ScanID               uuid.UUID `json:"scan_id"`
	ResourceID           string    `json:"resource_id"`
	ResourceType         string    `json:"resource_type"`
	Region               string    `json:"region"`
	Name                 string    `json:"name"`
	InstanceType         string    `json:"instance_type"`
	Probability          float64   `json:"probability"`
	RiskTier             string    `json:"risk_tier"`
	RiskColor            string    `json:"risk_color"`
	RecommendedAction    string    `json:"recommended_action"`
	Summary              string    `json:"summary"`
	EstimatedMonthlyCost string    `json:"estimated_monthly_cost"`
}

// GetAssessmentRequest is the input DTO for retrieving an assessment.
type GetAssessmentRequest struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// ListScanAssessmentsRequest is the input DTO for listing the
// assessments produced by one scan.
type ListScanAssessmentsRequest struct {
	ScanID uuid.UUID `json:"scan_id"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// RunScanRequest is the input DTO for the RunScan use case.
type RunScanRequest struct {
	Regions []string `json:"regions"`
}

// ScanResponse is the output DTO summarizing a scan run.
type ScanResponse struct {
	StartedAt               time.Time      `json:"started_at"`
	CompletedAt             time.Time      `json:"completed_at"`
	CountsByTier            map[string]int `json:"counts_by_tier"`
	Regions                 []string       `json:"regions"`
	ID                      uuid.UUID      `json:"id"`
	Status                  string         `json:"status"`
	TotalResources          int            `json:"total_resources"`
	EstimatedMonthlySavings string         `json:"estimated_monthly_savings"`
	DurationSeconds         float64        `json:"duration_seconds"`
}

// FromModel maps an assessment aggregate to the response DTO.
func FromModel(a *model.ResourceAssessment) AssessmentResponse {
	return AssessmentResponse{
		ID:                   a.ID(),
		ScanID:               a.ScanID(),
		ResourceID:           a.ResourceID(),
		ResourceType:         a.ResourceType().String(),
		Region:               a.Region(),
		Name:                 a.Name(),
		InstanceType:         a.InstanceType(),
		Probability:          a.Probability(),
		RiskTier:             a.Tier().String(),
		RiskColor:            a.Tier().Color(),
		RecommendedAction:    a.Action().String(),
		Reasons:              a.Reasons(),
		Summary:              a.Summary(),
		EstimatedMonthlyCost: a.MonthlyCost().StringFixed(2),
		AssessedAt:           a.AssessedAt(),
		CreatedAt:            a.CreatedAt(),
	}
}

// ScanFromModel maps a scan aggregate to the response DTO.
func ScanFromModel(s *model.Scan) ScanResponse {
	return ScanResponse{
		ID:                      s.ID(),
		Regions:                 s.Regions(),
		Status:                  s.Status(),
		StartedAt:               s.StartedAt(),
		CompletedAt:             s.CompletedAt(),
		TotalResources:          s.TotalResources(),
		CountsByTier:            s.CountsByTier(),
		EstimatedMonthlySavings: s.MonthlySavings().StringFixed(2),
		DurationSeconds:         s.Duration().Seconds(),
	}
}
