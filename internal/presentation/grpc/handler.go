package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cloudvigil/zombiescan/internal/application/dto"
	"github.com/cloudvigil/zombiescan/internal/application/usecase"
	"github.com/cloudvigil/zombiescan/internal/domain/service"
	"github.com/cloudvigil/zombiescan/internal/domain/valueobject"
	"github.com/cloudvigil/zombiescan/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// Compile-time assertion that ZombieScanHandler implements ZombieScanServiceServer.
var _ ZombieScanServiceServer = (*ZombieScanHandler)(nil)

// ZombieScanHandler implements the gRPC ZombieScanServiceServer interface.
type ZombieScanHandler struct {
	UnimplementedZombieScanServiceServer
	assessResource  *usecase.AssessResource
	getAssessment   *usecase.GetAssessment
	getLatest       *usecase.GetLatestAssessment
	listAssessments *usecase.ListScanAssessments
	runScan         *usecase.RunScan
	getScan         *usecase.GetScan
	listScans       *usecase.ListScans
	defaultRegions  []string
	logger          *slog.Logger
}

// NewZombieScanHandler creates a new gRPC handler. defaultRegions are
// scanned when a RunScan request names no regions.
func NewZombieScanHandler(
	assessResource *usecase.AssessResource,
	getAssessment *usecase.GetAssessment,
	getLatest *usecase.GetLatestAssessment,
	listAssessments *usecase.ListScanAssessments,
	runScan *usecase.RunScan,
	getScan *usecase.GetScan,
	listScans *usecase.ListScans,
	defaultRegions []string,
	logger *slog.Logger,
) *ZombieScanHandler {
	return &ZombieScanHandler{
		assessResource:  assessResource,
		getAssessment:   getAssessment,
		getLatest:       getLatest,
		listAssessments: listAssessments,
		runScan:         runScan,
		getScan:         getScan,
		listScans:       listScans,
		defaultRegions:  defaultRegions,
		logger:          logger,
	}
}

// Proto-aligned request/response message types.

// AssessResourceRequest represents the proto AssessResourceRequest message.
type AssessResourceRequest struct {
	Tags         map[string]string `json:"tags"`
	ScanID       string            `json:"scan_id"`
	ResourceID   string            `json:"resource_id"`
	ResourceType string            `json:"resource_type"`
	Region       string            `json:"region"`
	Name         string            `json:"name"`
	InstanceType string            `json:"instance_type"`
	State        string            `json:"state"`
	LaunchedAt   string            `json:"launched_at"`
}

// ResourceAssessmentMsg represents the proto ResourceAssessment message.
type ResourceAssessmentMsg struct {
	ID                   string   `json:"id"`
	ScanID               string   `json:"scan_id"`
	ResourceID           string   `json:"resource_id"`
	ResourceType         string   `json:"resource_type"`
	Region               string   `json:"region"`
	Name                 string   `json:"name"`
	InstanceType         string   `json:"instance_type"`
	Probability          float64  `json:"probability"`
	RiskTier             string   `json:"risk_tier"`
	RiskColor            string   `json:"risk_color"`
	RecommendedAction    string   `json:"recommended_action"`
	Reasons              []string `json:"reasons"`
	Summary              string   `json:"summary"`
	EstimatedMonthlyCost string   `json:"estimated_monthly_cost"`
	AssessedAt           string   `json:"assessed_at"`
}

// AssessResourceResponse represents the proto AssessResourceResponse message.
type AssessResourceResponse struct {
	Assessment *ResourceAssessmentMsg `json:"assessment"`
}

// GetAssessmentRequest represents the proto GetAssessmentRequest message.
type GetAssessmentRequest struct {
	ID string `json:"id"`
}

// GetAssessmentResponse represents the proto GetAssessmentResponse message.
type GetAssessmentResponse struct {
	Assessment *ResourceAssessmentMsg `json:"assessment"`
}

// GetLatestAssessmentRequest represents the proto GetLatestAssessmentRequest message.
type GetLatestAssessmentRequest struct {
	ResourceID string `json:"resource_id"`
}

// GetLatestAssessmentResponse represents the proto GetLatestAssessmentResponse message.
type GetLatestAssessmentResponse struct {
	Assessment *ResourceAssessmentMsg `json:"assessment"`
}

// ListScanAssessmentsRequest represents the proto ListScanAssessmentsRequest message.
type ListScanAssessmentsRequest struct {
	ScanID string `json:"scan_id"`
	Limit  int32  `json:"limit"`
	Offset int32  `json:"offset"`
}

// ListScanAssessmentsResponse represents the proto ListScanAssessmentsResponse message.
type ListScanAssessmentsResponse struct {
	Assessments []*ResourceAssessmentMsg `json:"assessments"`
}

// RunScanRequest represents the proto RunScanRequest message.
type RunScanRequest struct {
	Regions []string `json:"regions"`
}

// ScanMsg represents the proto Scan message.
type ScanMsg struct {
	CountsByTier            map[string]int32 `json:"counts_by_tier"`
	Regions                 []string         `json:"regions"`
	ID                      string           `json:"id"`
	Status                  string           `json:"status"`
	StartedAt               string           `json:"started_at"`
	CompletedAt             string           `json:"completed_at"`
	EstimatedMonthlySavings string           `json:"estimated_monthly_savings"`
	TotalResources          int32            `json:"total_resources"`
	DurationSeconds         float64          `json:"duration_seconds"`
}

// RunScanResponse represents the proto RunScanResponse message.
type RunScanResponse struct {
	Scan *ScanMsg `json:"scan"`
}

// GetScanRequest represents the proto GetScanRequest message.
type GetScanRequest struct {
	ID string `json:"id"`
}

// GetScanResponse represents the proto GetScanResponse message.
type GetScanResponse struct {
	Scan *ScanMsg `json:"scan"`
}

// ListScansRequest represents the proto ListScansRequest message.
type ListScansRequest struct {
	Limit int32 `json:"limit"`
}

// ListScansResponse represents the proto ListScansResponse message.
type ListScansResponse struct {
	Scans []*ScanMsg `json:"scans"`
}

// AssessResource handles an ad-hoc single-resource assessment request.
func (h *ZombieScanHandler) AssessResource(ctx context.Context, req *AssessResourceRequest) (*AssessResourceResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if _, err := valueobject.ResourceTypeFromString(req.ResourceType); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid resource_type: %v", err)
	}

	scanID := uuid.Nil
	if req.ScanID != "" {
		parsed, err := uuid.Parse(req.ScanID)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid scan_id: %v", err)
		}
		scanID = parsed
	}

	var launchedAt time.Time
	if req.LaunchedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.LaunchedAt)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid launched_at: %v", err)
		}
		launchedAt = parsed
	}

	h.logger.Info("assessing resource",
		slog.String("resource_id", req.ResourceID),
		slog.String("resource_type", req.ResourceType),
		slog.String("region", req.Region),
	)

	result, err := h.assessResource.Execute(ctx, dto.AssessResourceRequest{
		ScanID:       scanID,
		ResourceID:   req.ResourceID,
		ResourceType: req.ResourceType,
		Region:       req.Region,
		Name:         req.Name,
		InstanceType: req.InstanceType,
		State:        req.State,
		LaunchedAt:   launchedAt,
		Tags:         req.Tags,
	})
	if err != nil {
		return nil, h.mapError("assess resource", req.ResourceID, err)
	}

	return &AssessResourceResponse{Assessment: assessmentMsg(result)}, nil
}

// GetAssessment handles a get assessment request.
func (h *ZombieScanHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAuditor, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	assessmentID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.getAssessment.Execute(ctx, dto.GetAssessmentRequest{AssessmentID: assessmentID})
	if err != nil {
		return nil, h.mapError("get assessment", req.ID, err)
	}

	return &GetAssessmentResponse{Assessment: assessmentMsg(result)}, nil
}

// GetLatestAssessment handles a request for a resource's most recent
// assessment.
func (h *ZombieScanHandler) GetLatestAssessment(ctx context.Context, req *GetLatestAssessmentRequest) (*GetLatestAssessmentResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAuditor, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.ResourceID == "" {
		return nil, status.Error(codes.InvalidArgument, "resource_id is required")
	}

	result, err := h.getLatest.Execute(ctx, req.ResourceID)
	if err != nil {
		return nil, h.mapError("get latest assessment", req.ResourceID, err)
	}

	return &GetLatestAssessmentResponse{Assessment: assessmentMsg(result)}, nil
}

// ListScanAssessments handles a list request for one scan's assessments.
func (h *ZombieScanHandler) ListScanAssessments(ctx context.Context, req *ListScanAssessmentsRequest) (*ListScanAssessmentsResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAuditor, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	scanID, err := uuid.Parse(req.ScanID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid scan_id: %v", err)
	}

	results, err := h.listAssessments.Execute(ctx, dto.ListScanAssessmentsRequest{
		ScanID: scanID,
		Limit:  int(req.Limit),
		Offset: int(req.Offset),
	})
	if err != nil {
		return nil, h.mapError("list assessments", req.ScanID, err)
	}

	assessments := make([]*ResourceAssessmentMsg, 0, len(results))
	for _, result := range results {
		assessments = append(assessments, assessmentMsg(result))
	}
	return &ListScanAssessmentsResponse{Assessments: assessments}, nil
}

// RunScan handles a full scan request.
func (h *ZombieScanHandler) RunScan(ctx context.Context, req *RunScanRequest) (*RunScanResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	regions := req.Regions
	if len(regions) == 0 {
		regions = h.defaultRegions
	}
	if len(regions) == 0 {
		return nil, status.Error(codes.InvalidArgument, "at least one region is required")
	}

	h.logger.Info("scan requested", slog.Any("regions", regions))

	result, err := h.runScan.Execute(ctx, dto.RunScanRequest{Regions: regions})
	if err != nil {
		return nil, h.mapError("run scan", "", err)
	}

	return &RunScanResponse{Scan: scanMsg(result)}, nil
}

// GetScan handles a get scan request.
func (h *ZombieScanHandler) GetScan(ctx context.Context, req *GetScanRequest) (*GetScanResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAuditor, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	scanID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.getScan.Execute(ctx, scanID)
	if err != nil {
		return nil, h.mapError("get scan", req.ID, err)
	}

	return &GetScanResponse{Scan: scanMsg(result)}, nil
}

// ListScans handles a list scans request.
func (h *ZombieScanHandler) ListScans(ctx context.Context, req *ListScansRequest) (*ListScansResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAuditor, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	results, err := h.listScans.Execute(ctx, int(req.Limit))
	if err != nil {
		return nil, h.mapError("list scans", "", err)
	}

	scans := make([]*ScanMsg, 0, len(results))
	for _, result := range results {
		scans = append(scans, scanMsg(result))
	}
	return &ListScansResponse{Scans: scans}, nil
}

// mapError translates application errors into gRPC status codes
// without leaking internals to the caller.
func (h *ZombieScanHandler) mapError(op, subject string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case service.IsContractViolation(err):
		return status.Errorf(codes.InvalidArgument, "%v", err)
	default:
		h.logger.Error("request failed",
			slog.String("operation", op),
			slog.String("subject", subject),
			slog.String("error", err.Error()),
		)
		return status.Error(codes.Internal, "internal error")
	}
}

func assessmentMsg(result dto.AssessmentResponse) *ResourceAssessmentMsg {
	return &ResourceAssessmentMsg{
		ID:                   result.ID.String(),
		ScanID:               result.ScanID.String(),
		ResourceID:           result.ResourceID,
		ResourceType:         result.ResourceType,
		Region:               result.Region,
		Name:                 result.Name,
		InstanceType:         result.InstanceType,
		Probability:          result.Probability,
		RiskTier:             result.RiskTier,
		RiskColor:            result.RiskColor,
		RecommendedAction:    result.RecommendedAction,
		Reasons:              result.Reasons,
		Summary:              result.Summary,
		EstimatedMonthlyCost: result.EstimatedMonthlyCost,
		AssessedAt:           result.AssessedAt.Format(time.RFC3339),
	}
}

func scanMsg(result dto.ScanResponse) *ScanMsg {
	counts := make(map[string]int32, len(result.CountsByTier))
	for tier, count := range result.CountsByTier {
		counts[tier] = int32(count)
	}

	completedAt := ""
	if !result.CompletedAt.IsZero() {
		completedAt = result.CompletedAt.Format(time.RFC3339)
	}

	return &ScanMsg{
		ID:                      result.ID.String(),
		Regions:                 result.Regions,
		Status:                  result.Status,
		StartedAt:               result.StartedAt.Format(time.RFC3339),
		CompletedAt:             completedAt,
		TotalResources:          int32(result.TotalResources),
		CountsByTier:            counts,
		EstimatedMonthlySavings: result.EstimatedMonthlySavings,
		DurationSeconds:         result.DurationSeconds,
	}
}
