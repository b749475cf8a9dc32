package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/kayatkin/flight-tracker-sub000/internal/crypto"
	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/metrics"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
	"github.com/kayatkin/flight-tracker-sub000/internal/repository"
)

// MaxShareDays bounds a share token's lifetime; it is also the lifetime of tokens
// created without one.
const MaxShareDays = 365

const createAttempts = 3

// SessionService mints, lists and revokes share tokens of an owner.
type SessionService interface {
	// Create mints a new active token. ttlDays <= 0 means the longest lifetime.
	Create(ctx context.Context, ownerID string, perm model.Permission, ttlDays int) (model.SharedSession, error)
	// Deactivate revokes the owner's token. Revoking twice is not an error.
	Deactivate(ctx context.Context, ownerID, token string) error
	// List returns every token of the owner, newest first.
	List(ctx context.Context, ownerID string) ([]model.SharedSession, error)
}

type SessionServiceImpl struct {
	repo    repository.SessionRepository
	metrics *metrics.Metrics
	now     func() time.Time
	newTok  func() (string, error)
}

// NewSessionService constructs SessionService.
func NewSessionService(repo repository.SessionRepository, m *metrics.Metrics) *SessionServiceImpl {
	return &SessionServiceImpl{repo: repo, metrics: m, now: time.Now, newTok: pkgcrypto.NewShareToken}
}

// Create validates input and persists a fresh session. A token collision is retried
// with another token.
func (s *SessionServiceImpl) Create(ctx context.Context, ownerID string, perm model.Permission, ttlDays int) (model.SharedSession, error) {
	if ownerID == "" {
		return model.SharedSession{}, invalid("empty owner id")
	}
	if !perm.Valid() {
		return model.SharedSession{}, invalid("unknown permission %q", perm)
	}
	switch {
	case ttlDays < 0 || ttlDays > MaxShareDays:
		return model.SharedSession{}, invalid("share lifetime must be between 1 and %d days", MaxShareDays)
	case ttlDays == 0:
		ttlDays = MaxShareDays
	}
	id, err := uuid.NewV4()
	if err != nil {
		return model.SharedSession{}, err
	}
	now := s.now().UTC()
	sess := model.SharedSession{
		ID:         id.String(),
		OwnerID:    ownerID,
		Permission: perm,
		CreatedAt:  now,
		ExpiresAt:  now.AddDate(0, 0, ttlDays),
		Active:     true,
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		if sess.Token, err = s.newTok(); err != nil {
			return model.SharedSession{}, err
		}
		err = s.repo.Create(ctx, sess)
		if err == nil {
			s.metrics.SessionCreated(string(perm))
			return sess, nil
		}
		if !errors.Is(err, errs.ErrAlreadyExists) {
			return model.SharedSession{}, err
		}
	}
	return model.SharedSession{}, fmt.Errorf("create session: %w", err)
}

// Deactivate clears the active flag. Tokens of other owners look absent.
func (s *SessionServiceImpl) Deactivate(ctx context.Context, ownerID, token string) error {
	if ownerID == "" || token == "" {
		return invalid("empty owner id/token")
	}
	sess, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if sess.OwnerID != ownerID {
		return errs.ErrNotFound
	}
	if !sess.Active {
		return nil
	}
	return s.repo.SetActive(ctx, token, false)
}

// List returns all sessions including revoked and expired ones.
func (s *SessionServiceImpl) List(ctx context.Context, ownerID string) ([]model.SharedSession, error) {
	if ownerID == "" {
		return nil, invalid("empty owner id")
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// Partition splits sessions into usable ones and revoked-or-expired ones, keeping order.
func Partition(sessions []model.SharedSession, now time.Time) (active, inactive []model.SharedSession) {
	active, inactive = []model.SharedSession{}, []model.SharedSession{}
	for _, s := range sessions {
		if s.Usable(now) {
			active = append(active, s)
		} else {
			inactive = append(inactive, s)
		}
	}
	return active, inactive
}

// ShareLinks renders the links handed to guests: view tokens open on the web,
// edit tokens open inside the chat platform's mini-app.
type ShareLinks struct {
	AppOrigin   string
	SharePath   string
	MiniAppLink string
}

// For returns the link for s.
func (l ShareLinks) For(s model.SharedSession) string {
	if s.Permission.CanEdit() {
		return l.MiniAppLink + "?startapp=" + url.QueryEscape(s.Token)
	}
	return l.AppOrigin + l.SharePath + "?token=" + url.QueryEscape(s.Token)
}
