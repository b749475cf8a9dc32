package workspace

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

type fakeRepo struct {
	mu      sync.Mutex
	data    map[string]model.OwnerDataset
	puts    []model.OwnerDataset
	failPut error
	failGet error
}

func newFakeRepo() *fakeRepo { return &fakeRepo{data: map[string]model.OwnerDataset{}} }

func (f *fakeRepo) Get(_ context.Context, ownerID string) (*model.OwnerDataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return nil, f.failGet
	}
	d, ok := f.data[ownerID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := d.Clone()
	return &c, nil
}

func (f *fakeRepo) Put(_ context.Context, d model.OwnerDataset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut != nil {
		return f.failPut
	}
	f.puts = append(f.puts, d.Clone())
	f.data[d.OwnerID] = d.Clone()
	return nil
}

func (f *fakeRepo) setFailPut(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPut = err
}

func (f *fakeRepo) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.puts)
}

func (f *fakeRepo) stored(ownerID string) model.OwnerDataset {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[ownerID]
}

func newManager(t *testing.T, repo *fakeRepo, delay time.Duration) *Manager {
	t.Helper()
	m := NewManager(repo, Options{Delay: delay, Logger: zaptest.NewLogger(t)})
	t.Cleanup(func() { _ = m.Close(context.Background()) })
	return m
}

func flight(id, dest, airline string) model.FlightRecord {
	return model.FlightRecord{ID: id, Origin: "Moscow", Destination: dest, Airline: airline, Passengers: 1, TotalPrice: 1000}
}

func TestManager_GetUnknownOwnerIsEmpty(t *testing.T) {
	m := newManager(t, newFakeRepo(), time.Hour)

	w, err := m.Get(context.Background(), "42")
	require.NoError(t, err)
	require.Equal(t, "42", w.OwnerID())
	require.Empty(t, w.List())

	again, err := m.Get(context.Background(), "42")
	require.NoError(t, err)
	require.Same(t, w, again)
}

func TestManager_GetStorageError(t *testing.T) {
	repo := newFakeRepo()
	repo.failGet = errs.ErrStorage
	m := newManager(t, repo, time.Hour)

	_, err := m.Get(context.Background(), "42")
	require.ErrorIs(t, err, errs.ErrStorage)
}

func TestWorkspace_AddGrowsKnownSetsWithoutDuplicates(t *testing.T) {
	m := newManager(t, newFakeRepo(), time.Hour)
	w, err := m.Get(context.Background(), "42")
	require.NoError(t, err)

	w.Add(flight("a", "Istanbul", "Pegasus"))
	w.Add(flight("b", "Istanbul", "Pegasus"))
	w.Add(flight("c", "istanbul", "Turkish"))

	snap := w.Snapshot()
	require.Len(t, snap.Flights, 3)
	require.Equal(t, []string{"Pegasus", "Turkish"}, snap.Airlines)
	require.Equal(t, []string{"Moscow"}, snap.OriginCities)
	require.Equal(t, []string{"Istanbul", "istanbul"}, snap.DestinationCities)
}

func TestWorkspace_DeleteAbsentIsNoop(t *testing.T) {
	repo := newFakeRepo()
	m := newManager(t, repo, time.Hour)
	w, err := m.Get(context.Background(), "42")
	require.NoError(t, err)
	w.Add(flight("a", "Istanbul", "Pegasus"))

	removed, _ := w.Delete("zzz")
	require.False(t, removed)
	require.Len(t, w.List(), 1)

	removed, st := w.Delete("a")
	require.True(t, removed)
	require.True(t, st.Pending)
	require.Empty(t, w.List())
	require.Equal(t, []string{"Istanbul"}, w.Snapshot().DestinationCities)
}

func TestWorkspace_BurstIsFlushedOnce(t *testing.T) {
	repo := newFakeRepo()
	m := newManager(t, repo, 30*time.Millisecond)
	w, err := m.Get(context.Background(), "42")
	require.NoError(t, err)

	st := w.Add(flight("a", "Istanbul", "Pegasus"))
	require.True(t, st.Pending)
	w.Add(flight("b", "Antalya", "Pegasus"))
	w.Delete("a")

	require.Eventually(t, func() bool { return repo.putCount() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, 1, repo.putCount())

	stored := repo.stored("42")
	require.Len(t, stored.Flights, 1)
	require.Equal(t, "b", stored.Flights[0].ID)
	require.False(t, w.Status().Pending)
	require.False(t, w.Status().LastSavedAt.IsZero())
}

func TestWorkspace_FailedFlushKeepsDataAndRetries(t *testing.T) {
	repo := newFakeRepo()
	repo.setFailPut(errors.New("storage: connection refused"))
	m := newManager(t, repo, time.Hour)
	w, err := m.Get(context.Background(), "42")
	require.NoError(t, err)

	w.Add(flight("a", "Istanbul", "Pegasus"))
	require.Error(t, w.Flush(context.Background()))

	st := w.Status()
	require.True(t, st.Pending)
	require.Contains(t, st.LastError, "connection refused")
	require.Len(t, w.List(), 1)

	repo.setFailPut(nil)
	require.NoError(t, w.Flush(context.Background()))
	st = w.Status()
	require.False(t, st.Pending)
	require.Empty(t, st.LastError)
	require.Len(t, repo.stored("42").Flights, 1)
}

func TestWorkspace_FlushWhenCleanSkipsStore(t *testing.T) {
	repo := newFakeRepo()
	m := newManager(t, repo, time.Hour)
	w, err := m.Get(context.Background(), "42")
	require.NoError(t, err)

	require.NoError(t, w.Flush(context.Background()))
	require.Zero(t, repo.putCount())
}

func TestManager_CloseFlushesPending(t *testing.T) {
	repo := newFakeRepo()
	m := NewManager(repo, Options{Delay: time.Hour, Logger: zaptest.NewLogger(t)})
	w, err := m.Get(context.Background(), "42")
	require.NoError(t, err)
	w.Add(flight("a", "Istanbul", "Pegasus"))

	require.NoError(t, m.Close(context.Background()))
	require.Len(t, repo.stored("42").Flights, 1)

	_, err = m.Get(context.Background(), "42")
	require.ErrorIs(t, err, ErrClosed)
}

func TestManager_SnapshotSeesUnsavedChanges(t *testing.T) {
	repo := newFakeRepo()
	repo.data["42"] = model.OwnerDataset{OwnerID: "42", Flights: []model.FlightRecord{flight("old", "Rome", "ITA")}}
	m := newManager(t, repo, time.Hour)

	w, err := m.Get(context.Background(), "42")
	require.NoError(t, err)
	w.Add(flight("new", "Rome", "ITA"))

	snap, err := m.Snapshot(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, snap.Flights, 2)
	require.Len(t, repo.stored("42").Flights, 1)
}

func TestWorkspace_ConcurrentMutations(t *testing.T) {
	repo := newFakeRepo()
	m := newManager(t, repo, 5*time.Millisecond)
	w, err := m.Get(context.Background(), "42")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w.Add(flight(string(rune('A'+i%26))+string(rune('a'+i/26)), "Istanbul", "Pegasus"))
		}(i)
	}
	wg.Wait()

	require.NoError(t, m.FlushAll(context.Background()))
	require.Len(t, repo.stored("42").Flights, 50)
}
