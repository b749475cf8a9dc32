// Package grpcserver exposes the flight tracker gRPC API handlers.
package grpcserver

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/kayatkin/flight-tracker-sub000/api/flighttracker/v1"
	"github.com/kayatkin/flight-tracker-sub000/internal/analyzer"
	"github.com/kayatkin/flight-tracker-sub000/internal/convert"
	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
	"github.com/kayatkin/flight-tracker-sub000/internal/service"
)

// ShareResolver opens share tokens.
type ShareResolver interface {
	GuestAuthorizer
	Resolve(ctx context.Context, token string) (model.Guest, model.OwnerDataset, error)
}

// Server wires services into gRPC handlers.
type Server struct {
	pb.UnimplementedFlightTrackerServer
	identity service.IdentityService
	flights  service.FlightService
	sessions service.SessionService
	resolver ShareResolver
	links    service.ShareLinks
	now      func() time.Time
}

// New constructs a gRPC server with injected services.
func New(identity service.IdentityService, flights service.FlightService, sessions service.SessionService,
	resolver ShareResolver, links service.ShareLinks) *Server {
	return &Server{
		identity: identity,
		flights:  flights,
		sessions: sessions,
		resolver: resolver,
		links:    links,
		now:      time.Now,
	}
}

// --- Identity ---

// Identify issues an owner access token for a platform user id.
func (s *Server) Identify(ctx context.Context, req *pb.IdentifyRequest) (*pb.IdentifyResponse, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, status.Error(codes.InvalidArgument, "empty user id")
	}
	tok, err := s.identity.Identify(ctx, req.UserID, req.Label)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.IdentifyResponse{AccessToken: tok.AccessToken, ExpiresAt: tok.ExpiresAt, UserID: strings.TrimSpace(req.UserID)}, nil
}

func identity(ctx context.Context) (model.Identity, error) {
	who, ok := IdentityFromCtx(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no auth")
	}
	return who, nil
}

func ownerOnly(ctx context.Context) (model.Owner, error) {
	who, err := identity(ctx)
	if err != nil {
		return model.Owner{}, err
	}
	switch v := who.(type) {
	case model.Owner:
		return v, nil
	default:
		return model.Owner{}, status.Error(codes.PermissionDenied, "only the owner manages share links")
	}
}

// --- Flights ---

// GetDataset returns the records the caller addresses.
func (s *Server) GetDataset(ctx context.Context, _ *pb.GetDatasetRequest) (*pb.DatasetResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	d, st, err := s.flights.Dataset(ctx, who)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := convert.ToWireDataset(who, d, st)
	return &resp, nil
}

// AddFlight validates, classifies and stores a record.
func (s *Server) AddFlight(ctx context.Context, req *pb.AddFlightRequest) (*pb.AddFlightResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	rec, v, st, err := s.flights.Add(ctx, who, convert.FromWireFlight(req.Flight))
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.AddFlightResponse{
		Flight:  convert.ToWireFlight(rec),
		Verdict: convert.ToWireVerdict(v),
		Save:    convert.ToWireSaveStatus(st),
	}, nil
}

// DeleteFlight removes a record by id.
func (s *Server) DeleteFlight(ctx context.Context, req *pb.DeleteFlightRequest) (*pb.DeleteFlightResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	removed, st, err := s.flights.Delete(ctx, who, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.DeleteFlightResponse{Removed: removed, Save: convert.ToWireSaveStatus(st)}, nil
}

// AnalyzeFlight classifies a record without storing it.
func (s *Server) AnalyzeFlight(ctx context.Context, req *pb.AnalyzeFlightRequest) (*pb.AnalyzeFlightResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	v, err := s.flights.Analyze(ctx, who, convert.FromWireFlight(req.Flight))
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.AnalyzeFlightResponse{Verdict: convert.ToWireVerdict(v)}, nil
}

// ListGroups returns the history grouped by destination.
func (s *Server) ListGroups(ctx context.Context, _ *pb.ListGroupsRequest) (*pb.ListGroupsResponse, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	gs, err := s.flights.Groups(ctx, who)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.ListGroupsResponse{Groups: convert.ToWireGroups(gs)}, nil
}

// --- Sharing ---

// CreateShare mints a share token for the calling owner.
func (s *Server) CreateShare(ctx context.Context, req *pb.CreateShareRequest) (*pb.CreateShareResponse, error) {
	owner, err := ownerOnly(ctx)
	if err != nil {
		return nil, err
	}
	sess, err := s.sessions.Create(ctx, owner.ID, model.Permission(req.Permission), req.TTLDays)
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.CreateShareResponse{Session: convert.ToWireSession(sess, s.links.For(sess))}, nil
}

// ListShares returns the owner's tokens split into active and inactive.
func (s *Server) ListShares(ctx context.Context, _ *pb.ListSharesRequest) (*pb.ListSharesResponse, error) {
	owner, err := ownerOnly(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.sessions.List(ctx, owner.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	active, inactive := service.Partition(all, s.now())
	resp := &pb.ListSharesResponse{
		Active:   make([]pb.Session, 0, len(active)),
		Inactive: make([]pb.Session, 0, len(inactive)),
	}
	for _, ss := range active {
		resp.Active = append(resp.Active, convert.ToWireSession(ss, s.links.For(ss)))
	}
	for _, ss := range inactive {
		resp.Inactive = append(resp.Inactive, convert.ToWireSession(ss, s.links.For(ss)))
	}
	return resp, nil
}

// DeactivateShare revokes one of the owner's tokens.
func (s *Server) DeactivateShare(ctx context.Context, req *pb.DeactivateShareRequest) (*pb.DeactivateShareResponse, error) {
	owner, err := ownerOnly(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Deactivate(ctx, owner.ID, strings.TrimSpace(req.Token)); err != nil {
		return nil, toStatus(err)
	}
	return &pb.DeactivateShareResponse{}, nil
}

// OpenShare resolves a share token and returns the owner's records as the guest sees them.
func (s *Server) OpenShare(ctx context.Context, req *pb.OpenShareRequest) (*pb.OpenShareResponse, error) {
	g, d, err := s.resolver.Resolve(ctx, strings.TrimSpace(req.Token))
	if err != nil {
		if errors.Is(err, errs.ErrInvalidToken) {
			return nil, status.Error(codes.NotFound, errs.ErrInvalidToken.Error())
		}
		return nil, toStatus(err)
	}
	return &pb.OpenShareResponse{
		Dataset: convert.ToWireDataset(g, d, model.SaveStatus{}),
		Groups:  convert.ToWireGroups(analyzer.GroupByDestination(d.Flights)),
	}, nil
}
