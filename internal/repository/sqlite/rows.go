package sqlite

import (
	"time"

	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

type datasetRow struct {
	UserID            string               `gorm:"primaryKey"`
	Flights           []model.FlightRecord `gorm:"serializer:json;not null"`
	Airlines          []string             `gorm:"serializer:json;not null"`
	OriginCities      []string             `gorm:"serializer:json;not null"`
	DestinationCities []string             `gorm:"serializer:json;not null"`
	UpdatedAt         time.Time
}

func (datasetRow) TableName() string { return "user_flights" }

type sessionRow struct {
	ID          string    `gorm:"primaryKey"`
	OwnerID     string    `gorm:"not null;index:idx_sessions_owner_created,priority:1"`
	Token       string    `gorm:"not null;uniqueIndex"`
	Permissions string    `gorm:"not null"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;index:idx_sessions_owner_created,priority:2,sort:desc"`
	IsActive    bool      `gorm:"not null"`
}

func (sessionRow) TableName() string { return "shared_sessions" }

func fromSession(s model.SharedSession) sessionRow {
	return sessionRow{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Token:       s.Token,
		Permissions: string(s.Permission),
		ExpiresAt:   s.ExpiresAt.UTC(),
		CreatedAt:   s.CreatedAt.UTC(),
		IsActive:    s.Active,
	}
}

func (r sessionRow) toModel() model.SharedSession {
	return model.SharedSession{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		Token:      r.Token,
		Permission: model.Permission(r.Permissions),
		CreatedAt:  r.CreatedAt,
		ExpiresAt:  r.ExpiresAt,
		Active:     r.IsActive,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
