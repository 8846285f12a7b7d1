package usecase

import (
	"context"
	"fmt"

	"github.com/cloudvigil/zombiescan/internal/application/dto"
	"github.com/cloudvigil/zombiescan/internal/domain/port"
)

const defaultListLimit = 100

// ListScanAssessments is the use case for listing the assessments
// produced by one scan run.
type ListScanAssessments struct {
	repo port.AssessmentRepository
}

// NewListScanAssessments creates a new ListScanAssessments use case.
func NewListScanAssessments(repo port.AssessmentRepository) *ListScanAssessments {
	return &ListScanAssessments{repo: repo}
}

// Execute lists assessments for a scan, newest first.
func (uc *ListScanAssessments) Execute(ctx context.Context, req dto.ListScanAssessmentsRequest) ([]dto.AssessmentResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	assessments, err := uc.repo.ListByScan(ctx, req.ScanID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	responses := make([]dto.AssessmentResponse, 0, len(assessments))
	for _, assessment := range assessments {
		responses = append(responses, dto.FromModel(assessment))
	}
	return responses, nil
}
