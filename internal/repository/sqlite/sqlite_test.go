package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

func openDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "ft.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDatasetRepo_RoundTrip(t *testing.T) {
	db := openDB(t)
	r := NewDatasetRepo(db)
	ctx := context.Background()

	_, err := r.Get(ctx, "42")
	require.ErrorIs(t, err, errs.ErrNotFound)

	d := model.OwnerDataset{
		OwnerID: "42",
		Flights: []model.FlightRecord{{
			ID: "f1", Origin: "Moscow", Destination: "Istanbul", Type: model.TripOneWay,
			DepartureDate: "2026-05-01", Airline: "Pegasus", Passengers: 2, TotalPrice: 18000,
		}},
		Airlines:     []string{"Pegasus"},
		OriginCities: []string{"Moscow"},
	}
	require.NoError(t, r.Put(ctx, d))

	got, err := r.Get(ctx, "42")
	require.NoError(t, err)
	require.Equal(t, d.Flights, got.Flights)
	require.Equal(t, []string{"Pegasus"}, got.Airlines)
	require.Equal(t, []string{}, got.DestinationCities)
	require.False(t, got.UpdatedAt.IsZero())
}

func TestDatasetRepo_PutReplacesWholeDocument(t *testing.T) {
	db := openDB(t)
	r := NewDatasetRepo(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, model.OwnerDataset{
		OwnerID: "42",
		Flights: []model.FlightRecord{{ID: "a"}, {ID: "b"}},
	}))
	require.NoError(t, r.Put(ctx, model.OwnerDataset{
		OwnerID: "42",
		Flights: []model.FlightRecord{{ID: "b"}},
	}))

	got, err := r.Get(ctx, "42")
	require.NoError(t, err)
	require.Len(t, got.Flights, 1)
	require.Equal(t, "b", got.Flights[0].ID)
}

func session(id, owner, token string, created time.Time) model.SharedSession {
	return model.SharedSession{
		ID: id, OwnerID: owner, Token: token,
		Permission: model.PermissionView,
		CreatedAt:  created,
		ExpiresAt:  created.Add(7 * 24 * time.Hour),
		Active:     true,
	}
}

func TestSessionRepo_Lifecycle(t *testing.T) {
	db := openDB(t)
	r := NewSessionRepo(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	older := session("s1", "42", "aaaaaaaaaaaaaaaaaaaaaaaaaa", now.Add(-time.Hour))
	newer := session("s2", "42", "bbbbbbbbbbbbbbbbbbbbbbbbbb", now)
	newer.Permission = model.PermissionEdit
	require.NoError(t, r.Create(ctx, older))
	require.NoError(t, r.Create(ctx, newer))
	require.NoError(t, r.Create(ctx, session("s3", "7", "cccccccccccccccccccccccccc", now)))

	list, err := r.ListByOwner(ctx, "42")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "s2", list[0].ID)
	require.Equal(t, model.PermissionEdit, list[0].Permission)
	require.Equal(t, "s1", list[1].ID)

	got, err := r.FindByToken(ctx, older.Token)
	require.NoError(t, err)
	require.True(t, got.Active)
	require.True(t, got.ExpiresAt.Equal(older.ExpiresAt))

	require.NoError(t, r.SetActive(ctx, older.Token, false))
	require.NoError(t, r.SetActive(ctx, older.Token, false))
	got, err = r.FindByToken(ctx, older.Token)
	require.NoError(t, err)
	require.False(t, got.Active)

	require.ErrorIs(t, r.SetActive(ctx, "missing", false), errs.ErrNotFound)
	_, err = r.FindByToken(ctx, "missing")
	require.ErrorIs(t, err, errs.ErrNotFound)

	empty, err := r.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestSessionRepo_DuplicateToken(t *testing.T) {
	db := openDB(t)
	r := NewSessionRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, r.Create(ctx, session("s1", "42", "dddddddddddddddddddddddddd", now)))
	err := r.Create(ctx, session("s2", "42", "dddddddddddddddddddddddddd", now))
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}
