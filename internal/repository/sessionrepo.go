package repository

import (
	"context"

	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

// SessionRepository stores share sessions. Sessions are never deleted.
type SessionRepository interface {
	// Create inserts a new session; errs.ErrAlreadyExists on token collision.
	Create(ctx context.Context, s model.SharedSession) error
	// SetActive updates the active flag of the session with the given token.
	SetActive(ctx context.Context, token string, active bool) error
	// ListByOwner returns all sessions of the owner, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.SharedSession, error)
	// FindByToken loads a session by exact token; errs.ErrNotFound when absent.
	FindByToken(ctx context.Context, token string) (*model.SharedSession, error)
}
