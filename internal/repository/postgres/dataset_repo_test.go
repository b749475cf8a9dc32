package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

const selectDataset = `SELECT flights, airlines, origin_cities, destination_cities, updated_at FROM user_flights WHERE user_id=\$1`

func TestDatasetRepo_Get_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewDatasetRepo(db)

	ts := time.Now().UTC()
	flights := []model.FlightRecord{{ID: "f1", Origin: "Moscow", Destination: "Istanbul", Passengers: 1, TotalPrice: 9000}}
	raw, err := json.Marshal(flights)
	require.NoError(t, err)

	mock.ExpectQuery(selectDataset).
		WithArgs("42").
		WillReturnRows(pgxmock.NewRows([]string{"flights", "airlines", "origin_cities", "destination_cities", "updated_at"}).
			AddRow(raw, []string{"Pegasus"}, []string{"Moscow"}, []string{"Istanbul"}, ts))

	d, err := r.Get(context.Background(), "42")
	require.NoError(t, err)
	require.Equal(t, "42", d.OwnerID)
	require.Len(t, d.Flights, 1)
	require.Equal(t, "f1", d.Flights[0].ID)
	require.Equal(t, []string{"Pegasus"}, d.Airlines)
	require.Equal(t, ts, d.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetRepo_Get_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewDatasetRepo(db)

	mock.ExpectQuery(selectDataset).WithArgs("nobody").WillReturnError(pgx.ErrNoRows)

	_, err := r.Get(context.Background(), "nobody")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDatasetRepo_Get_StorageError(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewDatasetRepo(db)

	mock.ExpectQuery(selectDataset).WithArgs("42").WillReturnError(errors.New("conn reset"))

	_, err := r.Get(context.Background(), "42")
	require.ErrorIs(t, err, errs.ErrStorage)
	require.NotErrorIs(t, err, errs.ErrNotFound)
}

func TestDatasetRepo_Put_Upserts(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewDatasetRepo(db)

	d := model.OwnerDataset{
		OwnerID:  "42",
		Flights:  []model.FlightRecord{{ID: "f1", TotalPrice: 100, Passengers: 1}},
		Airlines: []string{"Pegasus"},
	}
	raw, err := json.Marshal(d.Flights)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO user_flights \(user_id, flights, airlines, origin_cities, destination_cities, updated_at\)`).
		WithArgs("42", raw, []string{"Pegasus"}, []string{}, []string{}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, r.Put(context.Background(), d))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDatasetRepo_Put_EmptyFlightsEncodeAsArray(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewDatasetRepo(db)

	mock.ExpectExec(`INSERT INTO user_flights`).
		WithArgs("7", []byte("[]"), []string{}, []string{}, []string{}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, r.Put(context.Background(), model.OwnerDataset{OwnerID: "7"}))
}

func TestDatasetRepo_Put_StorageError(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewDatasetRepo(db)

	mock.ExpectExec(`INSERT INTO user_flights`).
		WithArgs("7", []byte("[]"), []string{}, []string{}, []string{}).
		WillReturnError(errors.New("timeout"))

	err := r.Put(context.Background(), model.OwnerDataset{OwnerID: "7"})
	require.ErrorIs(t, err, errs.ErrStorage)
}
