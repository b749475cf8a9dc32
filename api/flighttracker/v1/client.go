package flighttrackerv1

import (
	"context"

	"google.golang.org/grpc"
)

// FlightTrackerClient is the client API of the service.
type FlightTrackerClient interface {
	Identify(ctx context.Context, in *IdentifyRequest, opts ...grpc.CallOption) (*IdentifyResponse, error)
	GetDataset(ctx context.Context, in *GetDatasetRequest, opts ...grpc.CallOption) (*DatasetResponse, error)
	AddFlight(ctx context.Context, in *AddFlightRequest, opts ...grpc.CallOption) (*AddFlightResponse, error)
	DeleteFlight(ctx context.Context, in *DeleteFlightRequest, opts ...grpc.CallOption) (*DeleteFlightResponse, error)
	AnalyzeFlight(ctx context.Context, in *AnalyzeFlightRequest, opts ...grpc.CallOption) (*AnalyzeFlightResponse, error)
	ListGroups(ctx context.Context, in *ListGroupsRequest, opts ...grpc.CallOption) (*ListGroupsResponse, error)
	CreateShare(ctx context.Context, in *CreateShareRequest, opts ...grpc.CallOption) (*CreateShareResponse, error)
	ListShares(ctx context.Context, in *ListSharesRequest, opts ...grpc.CallOption) (*ListSharesResponse, error)
	DeactivateShare(ctx context.Context, in *DeactivateShareRequest, opts ...grpc.CallOption) (*DeactivateShareResponse, error)
	OpenShare(ctx context.Context, in *OpenShareRequest, opts ...grpc.CallOption) (*OpenShareResponse, error)
}

type flightTrackerClient struct {
	cc grpc.ClientConnInterface
}

// NewFlightTrackerClient returns a client speaking the JSON codec over cc.
func NewFlightTrackerClient(cc grpc.ClientConnInterface) FlightTrackerClient {
	return &flightTrackerClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *flightTrackerClient) Identify(ctx context.Context, in *IdentifyRequest, opts ...grpc.CallOption) (*IdentifyResponse, error) {
	return invoke[IdentifyResponse](ctx, c.cc, FlightTracker_Identify_FullMethodName, in, opts)
}

func (c *flightTrackerClient) GetDataset(ctx context.Context, in *GetDatasetRequest, opts ...grpc.CallOption) (*DatasetResponse, error) {
	return invoke[DatasetResponse](ctx, c.cc, FlightTracker_GetDataset_FullMethodName, in, opts)
}

func (c *flightTrackerClient) AddFlight(ctx context.Context, in *AddFlightRequest, opts ...grpc.CallOption) (*AddFlightResponse, error) {
	return invoke[AddFlightResponse](ctx, c.cc, FlightTracker_AddFlight_FullMethodName, in, opts)
}

func (c *flightTrackerClient) DeleteFlight(ctx context.Context, in *DeleteFlightRequest, opts ...grpc.CallOption) (*DeleteFlightResponse, error) {
	return invoke[DeleteFlightResponse](ctx, c.cc, FlightTracker_DeleteFlight_FullMethodName, in, opts)
}

func (c *flightTrackerClient) AnalyzeFlight(ctx context.Context, in *AnalyzeFlightRequest, opts ...grpc.CallOption) (*AnalyzeFlightResponse, error) {
	return invoke[AnalyzeFlightResponse](ctx, c.cc, FlightTracker_AnalyzeFlight_FullMethodName, in, opts)
}

func (c *flightTrackerClient) ListGroups(ctx context.Context, in *ListGroupsRequest, opts ...grpc.CallOption) (*ListGroupsResponse, error) {
	return invoke[ListGroupsResponse](ctx, c.cc, FlightTracker_ListGroups_FullMethodName, in, opts)
}

func (c *flightTrackerClient) CreateShare(ctx context.Context, in *CreateShareRequest, opts ...grpc.CallOption) (*CreateShareResponse, error) {
	return invoke[CreateShareResponse](ctx, c.cc, FlightTracker_CreateShare_FullMethodName, in, opts)
}

func (c *flightTrackerClient) ListShares(ctx context.Context, in *ListSharesRequest, opts ...grpc.CallOption) (*ListSharesResponse, error) {
	return invoke[ListSharesResponse](ctx, c.cc, FlightTracker_ListShares_FullMethodName, in, opts)
}

func (c *flightTrackerClient) DeactivateShare(ctx context.Context, in *DeactivateShareRequest, opts ...grpc.CallOption) (*DeactivateShareResponse, error) {
	return invoke[DeactivateShareResponse](ctx, c.cc, FlightTracker_DeactivateShare_FullMethodName, in, opts)
}

func (c *flightTrackerClient) OpenShare(ctx context.Context, in *OpenShareRequest, opts ...grpc.CallOption) (*OpenShareResponse, error) {
	return invoke[OpenShareResponse](ctx, c.cc, FlightTracker_OpenShare_FullMethodName, in, opts)
}
