package grpcserver

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	pb "github.com/kayatkin/flight-tracker-sub000/api/flighttracker/v1"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

// ShareTokenHeader carries a guest's share token.
const ShareTokenHeader = "x-share-token"

// OwnerVerifier turns a bearer token into an owner.
type OwnerVerifier interface {
	Verify(token string) (model.Owner, error)
}

// GuestAuthorizer turns a share token into a guest.
type GuestAuthorizer interface {
	Authorize(ctx context.Context, token string) (model.Guest, error)
}

var publicMethods = map[string]bool{
	pb.FlightTracker_Identify_FullMethodName:  true,
	pb.FlightTracker_OpenShare_FullMethodName: true,
}

// AuthUnary resolves the caller's identity on every protected call: a bearer JWT
// makes an owner, a share token makes a guest. Share tokens are re-checked per
// call so revocation applies immediately.
func AuthUnary(owners OwnerVerifier, guests GuestAuthorizer) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if publicMethods[info.FullMethod] {
			return next(ctx, req)
		}
		if tok, err := bearerTokenFromMD(ctx); err == nil {
			owner, err := owners.Verify(tok)
			if err != nil {
				return nil, status.Error(codes.Unauthenticated, "invalid token")
			}
			return next(WithIdentity(ctx, owner), req)
		}
		if tok, ok := shareTokenFromMD(ctx); ok {
			guest, err := guests.Authorize(ctx, tok)
			if err != nil {
				return nil, toStatus(err)
			}
			return next(WithIdentity(ctx, guest), req)
		}
		return nil, status.Error(codes.Unauthenticated, "no auth")
	}
}

func bearerTokenFromMD(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.New("no metadata")
	}
	for _, v := range md.Get("authorization") {
		v = strings.TrimSpace(v)
		if len(v) >= 7 && strings.EqualFold(v[:7], "bearer ") {
			t := strings.TrimSpace(v[7:])
			if t != "" {
				return t, nil
			}
		}
	}
	return "", errors.New("no bearer token")
}

func shareTokenFromMD(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	for _, v := range md.Get(ShareTokenHeader) {
		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	}
	return "", false
}
