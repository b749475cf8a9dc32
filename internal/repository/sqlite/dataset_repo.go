package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

// DatasetRepo implements DatasetRepository on SQLite.
type DatasetRepo struct{ db *DB }

// NewDatasetRepo constructs a dataset repository.
func NewDatasetRepo(db *DB) *DatasetRepo { return &DatasetRepo{db: db} }

// Get loads the owner's dataset.
func (r *DatasetRepo) Get(ctx context.Context, ownerID string) (*model.OwnerDataset, error) {
	var row datasetRow
	err := r.db.gorm.WithContext(ctx).First(&row, "user_id = ?", ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, storageErr("get dataset", err)
	}
	return &model.OwnerDataset{
		OwnerID:           row.UserID,
		Flights:           nonNil(row.Flights),
		Airlines:          nonNil(row.Airlines),
		OriginCities:      nonNil(row.OriginCities),
		DestinationCities: nonNil(row.DestinationCities),
		UpdatedAt:         row.UpdatedAt,
	}, nil
}

// Put upserts the whole dataset row.
func (r *DatasetRepo) Put(ctx context.Context, d model.OwnerDataset) error {
	row := datasetRow{
		UserID:            d.OwnerID,
		Flights:           nonNil(d.Flights),
		Airlines:          nonNil(d.Airlines),
		OriginCities:      nonNil(d.OriginCities),
		DestinationCities: nonNil(d.DestinationCities),
		UpdatedAt:         time.Now().UTC(),
	}
	err := r.db.gorm.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return storageErr("put dataset", err)
	}
	return nil
}
