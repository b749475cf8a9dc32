package grpcserver

import (
	"context"

	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

type ctxKey string

const identityKey ctxKey = "ft.identity"

// WithIdentity stores the caller's identity in context.
func WithIdentity(ctx context.Context, who model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, who)
}

// IdentityFromCtx fetches the caller's identity from context.
func IdentityFromCtx(ctx context.Context) (model.Identity, bool) {
	who, ok := ctx.Value(identityKey).(model.Identity)
	return who, ok && who != nil
}
