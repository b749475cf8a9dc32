package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

// SessionRepo implements SessionRepository using PostgreSQL.
type SessionRepo struct{ db *DB }

// NewSessionRepo constructs a share session repository.
func NewSessionRepo(db *DB) *SessionRepo { return &SessionRepo{db: db} }

// Create inserts a new session row.
func (r *SessionRepo) Create(ctx context.Context, s model.SharedSession) error {
	const q = `
INSERT INTO shared_sessions (id, owner_id, token, permissions, expires_at, created_at, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Pool.Exec(ctx, q, s.ID, s.OwnerID, s.Token, string(s.Permission), s.ExpiresAt, s.CreatedAt, s.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		return storageErr("create session", err)
	}
	return nil
}

// SetActive flips is_active for the session with the given token.
func (r *SessionRepo) SetActive(ctx context.Context, token string, active bool) error {
	const q = `UPDATE shared_sessions SET is_active=$2 WHERE token=$1`
	tag, err := r.db.Pool.Exec(ctx, q, token, active)
	if err != nil {
		return storageErr("set session active", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListByOwner returns every session the owner created, newest first.
func (r *SessionRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.SharedSession, error) {
	const q = `
SELECT id, owner_id, token, permissions, expires_at, created_at, is_active
FROM shared_sessions
WHERE owner_id=$1
ORDER BY created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, storageErr("list sessions", err)
	}
	defer rows.Close()

	out := []model.SharedSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, storageErr("scan session", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list sessions", err)
	}
	return out, nil
}

// FindByToken loads a single session by exact token.
func (r *SessionRepo) FindByToken(ctx context.Context, token string) (*model.SharedSession, error) {
	const q = `
SELECT id, owner_id, token, permissions, expires_at, created_at, is_active
FROM shared_sessions WHERE token=$1`
	s, err := scanSession(r.db.Pool.QueryRow(ctx, q, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, storageErr("find session", err)
	}
	return &s, nil
}

func scanSession(row pgx.Row) (model.SharedSession, error) {
	var (
		s    model.SharedSession
		perm string
		exp  time.Time
		cat  time.Time
	)
	if err := row.Scan(&s.ID, &s.OwnerID, &s.Token, &perm, &exp, &cat, &s.Active); err != nil {
		return model.SharedSession{}, err
	}
	s.Permission = model.Permission(perm)
	s.ExpiresAt, s.CreatedAt = exp, cat
	return s, nil
}
