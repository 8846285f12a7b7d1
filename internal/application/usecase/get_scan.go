package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cloudvigil/zombiescan/internal/application/dto"
	"github.com/cloudvigil/zombiescan/internal/domain/port"
)

// GetScan is the use case for retrieving a scan run by ID.
type GetScan struct {
	repo port.ScanRepository
}

// NewGetScan creates a new GetScan use case.
func NewGetScan(repo port.ScanRepository) *GetScan {
	return &GetScan{repo: repo}
}

// Execute retrieves a scan by ID.
func (uc *GetScan) Execute(ctx context.Context, scanID uuid.UUID) (dto.ScanResponse, error) {
	scan, err := uc.repo.FindByID(ctx, scanID)
	if err != nil {
		return dto.ScanResponse{}, fmt.Errorf("failed to find scan: %w", err)
	}
	if scan == nil {
		return dto.ScanResponse{}, fmt.Errorf("scan %s: %w", scanID, ErrNotFound)
	}

	return dto.ScanFromModel(scan), nil
}
