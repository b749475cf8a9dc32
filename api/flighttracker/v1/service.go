package flighttrackerv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "flighttracker.v1.FlightTracker"

// Full method names.
const (
	FlightTracker_Identify_FullMethodName        = "/" + ServiceName + "/Identify"
	FlightTracker_GetDataset_FullMethodName      = "/" + ServiceName + "/GetDataset"
	FlightTracker_AddFlight_FullMethodName       = "/" + ServiceName + "/AddFlight"
	FlightTracker_DeleteFlight_FullMethodName    = "/" + ServiceName + "/DeleteFlight"
	FlightTracker_AnalyzeFlight_FullMethodName   = "/" + ServiceName + "/AnalyzeFlight"
	FlightTracker_ListGroups_FullMethodName      = "/" + ServiceName + "/ListGroups"
	FlightTracker_CreateShare_FullMethodName     = "/" + ServiceName + "/CreateShare"
	FlightTracker_ListShares_FullMethodName      = "/" + ServiceName + "/ListShares"
	FlightTracker_DeactivateShare_FullMethodName = "/" + ServiceName + "/DeactivateShare"
	FlightTracker_OpenShare_FullMethodName       = "/" + ServiceName + "/OpenShare"
)

// FlightTrackerServer is the server API of the service.
type FlightTrackerServer interface {
	Identify(context.Context, *IdentifyRequest) (*IdentifyResponse, error)
	GetDataset(context.Context, *GetDatasetRequest) (*DatasetResponse, error)
	AddFlight(context.Context, *AddFlightRequest) (*AddFlightResponse, error)
	DeleteFlight(context.Context, *DeleteFlightRequest) (*DeleteFlightResponse, error)
	AnalyzeFlight(context.Context, *AnalyzeFlightRequest) (*AnalyzeFlightResponse, error)
	ListGroups(context.Context, *ListGroupsRequest) (*ListGroupsResponse, error)
	CreateShare(context.Context, *CreateShareRequest) (*CreateShareResponse, error)
	ListShares(context.Context, *ListSharesRequest) (*ListSharesResponse, error)
	DeactivateShare(context.Context, *DeactivateShareRequest) (*DeactivateShareResponse, error)
	OpenShare(context.Context, *OpenShareRequest) (*OpenShareResponse, error)
}

// UnimplementedFlightTrackerServer answers every method with codes.Unimplemented.
type UnimplementedFlightTrackerServer struct{}

func (UnimplementedFlightTrackerServer) Identify(context.Context, *IdentifyRequest) (*IdentifyResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Identify not implemented")
}
func (UnimplementedFlightTrackerServer) GetDataset(context.Context, *GetDatasetRequest) (*DatasetResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDataset not implemented")
}
func (UnimplementedFlightTrackerServer) AddFlight(context.Context, *AddFlightRequest) (*AddFlightResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddFlight not implemented")
}
func (UnimplementedFlightTrackerServer) DeleteFlight(context.Context, *DeleteFlightRequest) (*DeleteFlightResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteFlight not implemented")
}
func (UnimplementedFlightTrackerServer) AnalyzeFlight(context.Context, *AnalyzeFlightRequest) (*AnalyzeFlightResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AnalyzeFlight not implemented")
}
func (UnimplementedFlightTrackerServer) ListGroups(context.Context, *ListGroupsRequest) (*ListGroupsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListGroups not implemented")
}
func (UnimplementedFlightTrackerServer) CreateShare(context.Context, *CreateShareRequest) (*CreateShareResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateShare not implemented")
}
func (UnimplementedFlightTrackerServer) ListShares(context.Context, *ListSharesRequest) (*ListSharesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListShares not implemented")
}
func (UnimplementedFlightTrackerServer) DeactivateShare(context.Context, *DeactivateShareRequest) (*DeactivateShareResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeactivateShare not implemented")
}
func (UnimplementedFlightTrackerServer) OpenShare(context.Context, *OpenShareRequest) (*OpenShareResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method OpenShare not implemented")
}

// unary adapts a typed server method to grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(FlightTrackerServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FlightTrackerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FlightTrackerServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FlightTracker_ServiceDesc is the grpc.ServiceDesc of the service.
var FlightTracker_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FlightTrackerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Identify", Handler: unary(FlightTracker_Identify_FullMethodName, FlightTrackerServer.Identify)},
		{MethodName: "GetDataset", Handler: unary(FlightTracker_GetDataset_FullMethodName, FlightTrackerServer.GetDataset)},
		{MethodName: "AddFlight", Handler: unary(FlightTracker_AddFlight_FullMethodName, FlightTrackerServer.AddFlight)},
		{MethodName: "DeleteFlight", Handler: unary(FlightTracker_DeleteFlight_FullMethodName, FlightTrackerServer.DeleteFlight)},
		{MethodName: "AnalyzeFlight", Handler: unary(FlightTracker_AnalyzeFlight_FullMethodName, FlightTrackerServer.AnalyzeFlight)},
		{MethodName: "ListGroups", Handler: unary(FlightTracker_ListGroups_FullMethodName, FlightTrackerServer.ListGroups)},
		{MethodName: "CreateShare", Handler: unary(FlightTracker_CreateShare_FullMethodName, FlightTrackerServer.CreateShare)},
		{MethodName: "ListShares", Handler: unary(FlightTracker_ListShares_FullMethodName, FlightTrackerServer.ListShares)},
		{MethodName: "DeactivateShare", Handler: unary(FlightTracker_DeactivateShare_FullMethodName, FlightTrackerServer.DeactivateShare)},
		{MethodName: "OpenShare", Handler: unary(FlightTracker_OpenShare_FullMethodName, FlightTrackerServer.OpenShare)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flighttracker/v1/flighttracker.json",
}

// RegisterFlightTrackerServer registers srv on s.
func RegisterFlightTrackerServer(s grpc.ServiceRegistrar, srv FlightTrackerServer) {
	s.RegisterService(&FlightTracker_ServiceDesc, srv)
}
