package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

// DatasetRepo implements DatasetRepository using PostgreSQL. The flights list is a
// JSONB document; the known-value sets are text arrays.
type DatasetRepo struct{ db *DB }

// NewDatasetRepo constructs a dataset repository.
func NewDatasetRepo(db *DB) *DatasetRepo { return &DatasetRepo{db: db} }

// Get selects the dataset row of an owner.
func (r *DatasetRepo) Get(ctx context.Context, ownerID string) (*model.OwnerDataset, error) {
	const q = `
SELECT flights, airlines, origin_cities, destination_cities, updated_at
FROM user_flights WHERE user_id=$1`
	d := model.OwnerDataset{OwnerID: ownerID}
	var flights []byte
	err := r.db.Pool.QueryRow(ctx, q, ownerID).
		Scan(&flights, &d.Airlines, &d.OriginCities, &d.DestinationCities, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, storageErr("get dataset", err)
	}
	if len(flights) > 0 {
		if err := json.Unmarshal(flights, &d.Flights); err != nil {
			return nil, fmt.Errorf("decode flights of %s: %w", ownerID, err)
		}
	}
	return &d, nil
}

// Put upserts the whole dataset row.
func (r *DatasetRepo) Put(ctx context.Context, d model.OwnerDataset) error {
	const q = `
INSERT INTO user_flights (user_id, flights, airlines, origin_cities, destination_cities, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (user_id) DO UPDATE SET
  flights = EXCLUDED.flights,
  airlines = EXCLUDED.airlines,
  origin_cities = EXCLUDED.origin_cities,
  destination_cities = EXCLUDED.destination_cities,
  updated_at = now()`
	flights, err := encodeFlights(d.Flights)
	if err != nil {
		return err
	}
	_, err = r.db.Pool.Exec(ctx, q, d.OwnerID, flights,
		nonNil(d.Airlines), nonNil(d.OriginCities), nonNil(d.DestinationCities))
	if err != nil {
		return storageErr("put dataset", err)
	}
	return nil
}

func encodeFlights(fs []model.FlightRecord) ([]byte, error) {
	if fs == nil {
		fs = []model.FlightRecord{}
	}
	b, err := json.Marshal(fs)
	if err != nil {
		return nil, fmt.Errorf("encode flights: %w", err)
	}
	return b, nil
}

// nonNil keeps NULL out of NOT NULL array columns.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
