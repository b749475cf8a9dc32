package sqlite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

// SessionRepo implements SessionRepository on SQLite.
type SessionRepo struct{ db *DB }

// NewSessionRepo constructs a share session repository.
func NewSessionRepo(db *DB) *SessionRepo { return &SessionRepo{db: db} }

// Create inserts a new session row.
func (r *SessionRepo) Create(ctx context.Context, s model.SharedSession) error {
	row := fromSession(s)
	if err := r.db.gorm.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		return storageErr("create session", err)
	}
	return nil
}

// SetActive flips is_active for the session with the given token.
func (r *SessionRepo) SetActive(ctx context.Context, token string, active bool) error {
	res := r.db.gorm.WithContext(ctx).
		Model(&sessionRow{}).
		Where("token = ?", token).
		Update("is_active", active)
	if res.Error != nil {
		return storageErr("set session active", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListByOwner returns every session the owner created, newest first.
func (r *SessionRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.SharedSession, error) {
	var rows []sessionRow
	err := r.db.gorm.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, storageErr("list sessions", err)
	}
	out := make([]model.SharedSession, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// FindByToken loads a single session by exact token.
func (r *SessionRepo) FindByToken(ctx context.Context, token string) (*model.SharedSession, error) {
	var row sessionRow
	err := r.db.gorm.WithContext(ctx).First(&row, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, storageErr("find session", err)
	}
	s := row.toModel()
	return &s, nil
}
