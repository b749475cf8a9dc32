package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/kayatkin/flight-tracker-sub000/internal/crypto"
	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/metrics"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
	"github.com/kayatkin/flight-tracker-sub000/internal/repository"
)

// DatasetSource returns the current dataset of an owner, unsaved changes included.
type DatasetSource interface {
	Snapshot(ctx context.Context, ownerID string) (model.OwnerDataset, error)
}

// Resolver turns a share token into a guest identity.
type Resolver struct {
	sessions repository.SessionRepository
	datasets DatasetSource
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewResolver constructs a Resolver.
func NewResolver(sessions repository.SessionRepository, datasets DatasetSource, m *metrics.Metrics) *Resolver {
	return &Resolver{sessions: sessions, datasets: datasets, metrics: m, now: time.Now}
}

// Authorize validates token and returns a fresh guest identity. Malformed, unknown,
// revoked and expired tokens all yield errs.ErrInvalidToken.
func (r *Resolver) Authorize(ctx context.Context, token string) (model.Guest, error) {
	if !pkgcrypto.WellFormed(token) {
		r.metrics.Resolved(metrics.OutcomeInvalid)
		return model.Guest{}, errs.ErrInvalidToken
	}
	sess, err := r.sessions.FindByToken(ctx, token)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		r.metrics.Resolved(metrics.OutcomeInvalid)
		return model.Guest{}, errs.ErrInvalidToken
	case err != nil:
		r.metrics.Resolved(metrics.OutcomeError)
		return model.Guest{}, err
	}
	if !sess.Usable(r.now()) {
		r.metrics.Resolved(metrics.OutcomeInvalid)
		return model.Guest{}, errs.ErrInvalidToken
	}
	gid, err := uuid.NewV4()
	if err != nil {
		return model.Guest{}, err
	}
	r.metrics.Resolved(metrics.OutcomeOK)
	return model.Guest{
		GuestID:    gid.String(),
		OwnerID:    sess.OwnerID,
		Permission: sess.Permission,
		OwnerLabel: model.OwnerLabelFor(sess.OwnerID),
	}, nil
}

// Resolve authorizes token and loads the owner's dataset.
func (r *Resolver) Resolve(ctx context.Context, token string) (model.Guest, model.OwnerDataset, error) {
	g, err := r.Authorize(ctx, token)
	if err != nil {
		return model.Guest{}, model.OwnerDataset{}, err
	}
	d, err := r.Dataset(ctx, g)
	if err != nil {
		return model.Guest{}, model.OwnerDataset{}, err
	}
	return g, d, nil
}

// Dataset loads the dataset an authorized guest may see.
func (r *Resolver) Dataset(ctx context.Context, g model.Guest) (model.OwnerDataset, error) {
	return r.datasets.Snapshot(ctx, g.OwnerID)
}
