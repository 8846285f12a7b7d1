package grpc

// proto.go defines the gRPC server interface derived from
// zombiescan/v1/zombiescan.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file
// with the import from github.com/cloudvigil/zombiescan/api/gen/go/zombiescan/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ZombieScanServiceServer is the server API for ZombieScanService.
type ZombieScanServiceServer interface {
	AssessResource(context.Context, *AssessResourceRequest) (*AssessResourceResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error)
	GetLatestAssessment(context.Context, *GetLatestAssessmentRequest) (*GetLatestAssessmentResponse, error)
	ListScanAssessments(context.Context, *ListScanAssessmentsRequest) (*ListScanAssessmentsResponse, error)
	RunScan(context.Context, *RunScanRequest) (*RunScanResponse, error)
	GetScan(context.Context, *GetScanRequest) (*GetScanResponse, error)
	ListScans(context.Context, *ListScansRequest) (*ListScansResponse, error)
	mustEmbedUnimplementedZombieScanServiceServer()
}

// UnimplementedZombieScanServiceServer provides forward-compatible default implementations.
type UnimplementedZombieScanServiceServer struct{}

func (UnimplementedZombieScanServiceServer) AssessResource(context.Context, *AssessResourceRequest) (*AssessResourceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessResource not implemented")
}
func (UnimplementedZombieScanServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedZombieScanServiceServer) GetLatestAssessment(context.Context, *GetLatestAssessmentRequest) (*GetLatestAssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLatestAssessment not implemented")
}
func (UnimplementedZombieScanServiceServer) ListScanAssessments(context.Context, *ListScanAssessmentsRequest) (*ListScanAssessmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListScanAssessments not implemented")
}
func (UnimplementedZombieScanServiceServer) RunScan(context.Context, *RunScanRequest) (*RunScanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunScan not implemented")
}
func (UnimplementedZombieScanServiceServer) GetScan(context.Context, *GetScanRequest) (*GetScanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetScan not implemented")
}
func (UnimplementedZombieScanServiceServer) ListScans(context.Context, *ListScansRequest) (*ListScansResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListScans not implemented")
}
func (UnimplementedZombieScanServiceServer) mustEmbedUnimplementedZombieScanServiceServer() {}

// RegisterZombieScanServiceServer registers the ZombieScanServiceServer with the gRPC server.
func RegisterZombieScanServiceServer(s *grpclib.Server, srv ZombieScanServiceServer) {
	s.RegisterService(&_ZombieScanService_serviceDesc, srv)
}

var _ZombieScanService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "zombiescan.v1.ZombieScanService",
	HandlerType: (*ZombieScanServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "AssessResource", Handler: _ZombieScanService_AssessResource_Handler},
		{MethodName: "GetAssessment", Handler: _ZombieScanService_GetAssessment_Handler},
		{MethodName: "GetLatestAssessment", Handler: _ZombieScanService_GetLatestAssessment_Handler},
		{MethodName: "ListScanAssessments", Handler: _ZombieScanService_ListScanAssessments_Handler},
		{MethodName: "RunScan", Handler: _ZombieScanService_RunScan_Handler},
		{MethodName: "GetScan", Handler: _ZombieScanService_GetScan_Handler},
		{MethodName: "ListScans", Handler: _ZombieScanService_ListScans_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _ZombieScanService_AssessResource_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AssessResourceRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ZombieScanServiceServer).AssessResource(ctx, req)
}

func _ZombieScanService_GetAssessment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetAssessmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ZombieScanServiceServer).GetAssessment(ctx, req)
}

func _ZombieScanService_GetLatestAssessment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetLatestAssessmentRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ZombieScanServiceServer).GetLatestAssessment(ctx, req)
}

func _ZombieScanService_ListScanAssessments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListScanAssessmentsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ZombieScanServiceServer).ListScanAssessments(ctx, req)
}

func _ZombieScanService_RunScan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RunScanRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ZombieScanServiceServer).RunScan(ctx, req)
}

func _ZombieScanService_GetScan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetScanRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ZombieScanServiceServer).GetScan(ctx, req)
}

func _ZombieScanService_ListScans_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListScansRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(ZombieScanServiceServer).ListScans(ctx, req)
}
