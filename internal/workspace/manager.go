package workspace

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/metrics"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
	"github.com/kayatkin/flight-tracker-sub000/internal/repository"
)

// DefaultDelay is the autosave quiet window.
const DefaultDelay = 2 * time.Second

// DefaultFlushTimeout bounds one background write.
const DefaultFlushTimeout = 10 * time.Second

// Options configures a Manager.
type Options struct {
	Delay        time.Duration
	FlushTimeout time.Duration
	// IdleTTL is how long an unused, fully saved workspace stays in memory.
	// Zero keeps workspaces until Close.
	IdleTTL time.Duration
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Manager hands out one workspace per owner, loading it from the store on first use.
type Manager struct {
	repo  repository.DatasetRepository
	opts  Options
	loads singleflight.Group

	mu     sync.Mutex
	spaces map[string]*Workspace
	closed bool
}

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("workspace manager closed")

// NewManager constructs a Manager.
func NewManager(repo repository.DatasetRepository, opts Options) *Manager {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.FlushTimeout <= 0 {
		opts.FlushTimeout = DefaultFlushTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{repo: repo, opts: opts, spaces: make(map[string]*Workspace)}
}

// Get returns the workspace of ownerID. An owner that never saved gets an empty dataset.
// Concurrent first calls for one owner share a single store read; other owners are not held up.
func (m *Manager) Get(ctx context.Context, ownerID string) (*Workspace, error) {
	if w, ok, err := m.cached(ownerID); ok || err != nil {
		return w, err
	}
	v, err, _ := m.loads.Do(ownerID, func() (any, error) { return m.load(ctx, ownerID) })
	if err != nil {
		return nil, err
	}
	return v.(*Workspace), nil
}

func (m *Manager) cached(ownerID string) (*Workspace, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, false, ErrClosed
	}
	w, ok := m.spaces[ownerID]
	if ok {
		w.lastUsed = m.opts.Now()
	}
	return w, ok, nil
}

func (m *Manager) load(ctx context.Context, ownerID string) (*Workspace, error) {
	// a load that finished just before this one started
	if w, ok, err := m.cached(ownerID); ok || err != nil {
		return w, err
	}

	d, err := m.repo.Get(ctx, ownerID)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		d = &model.OwnerDataset{OwnerID: ownerID}
	case err != nil:
		return nil, err
	}
	d.OwnerID = ownerID

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	w := newWorkspace(*d, m.repo, m.opts)
	w.lastUsed = m.opts.Now()
	m.spaces[ownerID] = w
	return w, nil
}

// Snapshot returns a copy of the owner's current dataset, including unsaved changes.
func (m *Manager) Snapshot(ctx context.Context, ownerID string) (model.OwnerDataset, error) {
	w, err := m.Get(ctx, ownerID)
	if err != nil {
		return model.OwnerDataset{}, err
	}
	return w.Snapshot(), nil
}

// FlushAll writes every dirty workspace and returns the first error.
func (m *Manager) FlushAll(ctx context.Context) error {
	var first error
	for _, w := range m.all() {
		if err := w.Flush(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// EvictIdle drops workspaces that are fully saved and were not handed out for
// IdleTTL, so the next Get reloads them from the store. It returns how many were dropped.
func (m *Manager) EvictIdle(ctx context.Context) int {
	if m.opts.IdleTTL <= 0 {
		return 0
	}
	cutoff := m.opts.Now().Add(-m.opts.IdleTTL)

	m.mu.Lock()
	var evicted []*Workspace
	for id, w := range m.spaces {
		if w.lastUsed.Before(cutoff) && w.idle() {
			delete(m.spaces, id)
			evicted = append(evicted, w)
		}
	}
	m.mu.Unlock()

	for _, w := range evicted {
		if err := w.close(ctx); err != nil {
			m.opts.Logger.Warn("evicted workspace flush failed", zap.String("owner", w.OwnerID()), zap.Error(err))
		}
	}
	if len(evicted) > 0 {
		m.opts.Logger.Debug("evicted idle workspaces", zap.Int("count", len(evicted)))
	}
	return len(evicted)
}

// RunEviction calls EvictIdle every interval until ctx ends.
func (m *Manager) RunEviction(ctx context.Context, every time.Duration) {
	if m.opts.IdleTTL <= 0 || every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.EvictIdle(ctx)
		}
	}
}

// Close stops autosave timers and writes everything still pending. It gives up
// when ctx ends, cancelling writes still in flight.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	var first error
	for _, w := range m.all() {
		if err := w.close(ctx); err != nil {
			m.opts.Logger.Error("final flush failed", zap.String("owner", w.OwnerID()), zap.Error(err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func (m *Manager) all() []*Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Workspace, 0, len(m.spaces))
	for _, w := range m.spaces {
		out = append(out, w)
	}
	return out
}
