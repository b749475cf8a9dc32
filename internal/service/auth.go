// Package service contains application services for identity, flights and sharing.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

// IdentityService issues and verifies owner bearer tokens. The user id is an opaque
// platform identifier; no password is involved.
type IdentityService interface {
	// Identify issues an access token for userID.
	Identify(ctx context.Context, userID, label string) (model.Tokens, error)
	// Verify parses an access token and returns the owner it was issued to.
	Verify(token string) (model.Owner, error)
}

type IdentityServiceImpl struct {
	signKey   []byte
	accessTTL time.Duration
	now       func() time.Time
}

// NewIdentityService constructs IdentityService.
func NewIdentityService(signKey []byte, accessTTL time.Duration) *IdentityServiceImpl {
	return &IdentityServiceImpl{signKey: signKey, accessTTL: accessTTL, now: time.Now}
}

type ownerClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Identify issues a signed HS256 JWT with sub=userID.
func (s *IdentityServiceImpl) Identify(_ context.Context, userID, label string) (model.Tokens, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return model.Tokens{}, fmt.Errorf("%w: empty user id", errs.ErrValidation)
	}
	if label == "" {
		label = model.OwnerLabelFor(userID)
	}
	now := s.now()
	exp := now.Add(s.accessTTL)
	claims := ownerClaims{
		Name: label,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: signed, ExpiresAt: exp}, nil
}

// Verify checks signature, algorithm and expiry (30s leeway).
func (s *IdentityServiceImpl) Verify(token string) (model.Owner, error) {
	var claims ownerClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.signKey, nil
	}, jwt.WithLeeway(30*time.Second), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return model.Owner{}, errs.ErrUnauthorized
	}
	if claims.Subject == "" {
		return model.Owner{}, errs.ErrUnauthorized
	}
	label := claims.Name
	if label == "" {
		label = model.OwnerLabelFor(claims.Subject)
	}
	return model.Owner{ID: claims.Subject, Label: label}, nil
}
