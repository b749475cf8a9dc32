// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

// DatasetRepository stores one dataset document per owner.
type DatasetRepository interface {
	// Get loads the owner's dataset; errs.ErrNotFound when the owner has never saved.
	Get(ctx context.Context, ownerID string) (*model.OwnerDataset, error)
	// Put replaces the owner's dataset as a whole (idempotent upsert keyed by owner id).
	Put(ctx context.Context, d model.OwnerDataset) error
}

// Gateway is everything the core needs from persistence.
type Gateway interface {
	DatasetRepository
	SessionRepository
}
