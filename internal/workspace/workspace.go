// Package workspace keeps each owner's flight dataset in memory and writes it back
// to the store after a quiet period.
package workspace

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kayatkin/flight-tracker-sub000/internal/autosave"
	"github.com/kayatkin/flight-tracker-sub000/internal/metrics"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
	"github.com/kayatkin/flight-tracker-sub000/internal/repository"
)

// Workspace is the live dataset of one owner. Guests with edit permission mutate
// the same workspace as the owner.
type Workspace struct {
	repo    repository.DatasetRepository
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	mu     sync.Mutex
	data   model.OwnerDataset
	dirty  bool
	seq    uint64
	status model.SaveStatus

	// flushSem orders writes to the store; taken before mu. A channel so that
	// waiting for it respects the caller's context.
	flushSem chan struct{}
	saver    *autosave.Debouncer

	// lastUsed is guarded by the manager's mutex.
	lastUsed time.Time
}

func newWorkspace(d model.OwnerDataset, repo repository.DatasetRepository, opts Options) *Workspace {
	w := &Workspace{
		repo:     repo,
		log:      opts.Logger.With(zap.String("owner", d.OwnerID)),
		metrics:  opts.Metrics,
		now:      opts.Now,
		data:     d,
		status:   model.SaveStatus{LastSavedAt: d.UpdatedAt},
		flushSem: make(chan struct{}, 1),
	}
	w.saver = autosave.New(opts.Delay, func(ctx context.Context) { _ = w.Flush(ctx) },
		autosave.WithRunTimeout(opts.FlushTimeout))
	return w
}

// OwnerID returns the owner the workspace belongs to.
func (w *Workspace) OwnerID() string { return w.data.OwnerID }

// Add appends a record and grows the known-value sets.
func (w *Workspace) Add(rec model.FlightRecord) model.SaveStatus {
	w.mu.Lock()
	w.data.Flights = append(w.data.Flights, rec)
	w.data.Airlines = addKnown(w.data.Airlines, rec.Airline)
	w.data.OriginCities = addKnown(w.data.OriginCities, rec.Origin)
	w.data.DestinationCities = addKnown(w.data.DestinationCities, rec.Destination)
	st := w.touchLocked()
	w.mu.Unlock()

	w.saver.Trigger()
	return st
}

// Delete removes the record with id. Removing an absent id is a no-op.
func (w *Workspace) Delete(id string) (bool, model.SaveStatus) {
	w.mu.Lock()
	idx := -1
	for i := range w.data.Flights {
		if w.data.Flights[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		st := w.status
		w.mu.Unlock()
		return false, st
	}
	w.data.Flights = append(w.data.Flights[:idx:idx], w.data.Flights[idx+1:]...)
	st := w.touchLocked()
	w.mu.Unlock()

	w.saver.Trigger()
	return true, st
}

func (w *Workspace) touchLocked() model.SaveStatus {
	w.seq++
	w.dirty = true
	w.status.Pending = true
	return w.status
}

// List returns a copy of the records in insertion order.
func (w *Workspace) List() []model.FlightRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]model.FlightRecord(nil), w.data.Flights...)
}

// Snapshot returns a deep copy of the dataset.
func (w *Workspace) Snapshot() model.OwnerDataset {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.data.Clone()
}

// Status reports the persistence state.
func (w *Workspace) Status() model.SaveStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Flush writes the dataset to the store when it has unsaved changes. On failure
// the changes stay in memory and are retried by the next flush.
func (w *Workspace) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case w.flushSem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-w.flushSem }()

	w.mu.Lock()
	if !w.dirty {
		w.mu.Unlock()
		return nil
	}
	snap := w.data.Clone()
	seq := w.seq
	w.mu.Unlock()

	err := w.repo.Put(ctx, snap)
	w.metrics.Flushed(err)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.log.Warn("dataset flush failed", zap.Int("flights", len(snap.Flights)), zap.Error(err))
		w.status.LastError = err.Error()
		w.status.Pending = true
		return err
	}
	w.status.LastError = ""
	w.status.LastSavedAt = w.now()
	if w.seq == seq {
		w.dirty = false
		w.status.Pending = false
	}
	w.log.Debug("dataset flushed", zap.Int("flights", len(snap.Flights)))
	return nil
}

// idle reports whether nothing is waiting to be written.
func (w *Workspace) idle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.dirty && !w.saver.Pending()
}

// close stops the autosave timer and writes pending changes. Both steps give up
// when ctx ends; unsaved changes are then lost and reported as the error.
func (w *Workspace) close(ctx context.Context) error {
	if err := w.saver.Stop(ctx); err != nil {
		return err
	}
	return w.Flush(ctx)
}

func addKnown(set []string, v string) []string {
	if v == "" {
		return set
	}
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}
