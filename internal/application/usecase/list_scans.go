package usecase

import (
	"context"
	"fmt"

	"github.com/cloudvigil/zombiescan/internal/application/dto"
	"github.com/cloudvigil/zombiescan/internal/domain/port"
)

// ListScans is the use case for listing recent scan runs.
type ListScans struct {
	repo port.ScanRepository
}

// NewListScans creates a new ListScans use case.
func NewListScans(repo port.ScanRepository) *ListScans {
	return &ListScans{repo: repo}
}

// Execute lists recent scans, newest first.
func (uc *ListScans) Execute(ctx context.Context, limit int) ([]dto.ScanResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	scans, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}

	responses := make([]dto.ScanResponse, 0, len(scans))
	for _, scan := range scans {
		responses = append(responses, dto.ScanFromModel(scan))
	}
	return responses, nil
}
