package grpcserver

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"

	pb "github.com/kayatkin/flight-tracker-sub000/api/flighttracker/v1"
	"github.com/kayatkin/flight-tracker-sub000/internal/metrics"
)

// NewGRPCServer builds a grpc.Server with the interceptor chain
// (logging, recover, metrics, auth) and registers srv on it.
func NewGRPCServer(log *zap.Logger, m *metrics.Metrics, srv *Server, extra ...grpc.ServerOption) *grpc.Server {
	opts := append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			LoggingUnary(log),
			RecoverUnary(log),
			MetricsUnary(m),
			AuthUnary(srv.identity, srv.resolver),
		),
	}, extra...)
	gs := grpc.NewServer(opts...)
	pb.RegisterFlightTrackerServer(gs, srv)
	return gs
}
