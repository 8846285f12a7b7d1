package usecase

import (
	"context"
	"fmt"

	"github.com/cloudvigil/zombiescan/internal/application/dto"
	"github.com/cloudvigil/zombiescan/internal/domain/port"
)

// GetLatestAssessment is the use case for retrieving the most recent
// assessment recorded for a cloud resource, across scans.
type GetLatestAssessment struct {
	repo port.AssessmentRepository
}

// NewGetLatestAssessment creates a new GetLatestAssessment use case.
func NewGetLatestAssessment(repo port.AssessmentRepository) *GetLatestAssessment {
	return &GetLatestAssessment{repo: repo}
}

// Execute retrieves the newest assessment for the given resource ID.
func (uc *GetLatestAssessment) Execute(ctx context.Context, resourceID string) (dto.AssessmentResponse, error) {
	assessment, err := uc.repo.FindLatestByResourceID(ctx, resourceID)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to find assessment: %w", err)
	}
	if assessment == nil {
		return dto.AssessmentResponse{}, fmt.Errorf("assessment for resource %s: %w", resourceID, ErrNotFound)
	}

	return dto.FromModel(assessment), nil
}
