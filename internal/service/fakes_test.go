package service

import (
	"context"
	"sort"
	"sync"

	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
	"github.com/kayatkin/flight-tracker-sub000/internal/repository"
)

type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]model.SharedSession
	datasets map[string]model.OwnerDataset

	createErr error
	findErr   error
	putErr    error

	createCalls int
	setCalls    int
	findCalls   int
	putCalls    int
}

var _ repository.Gateway = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: map[string]model.SharedSession{},
		datasets: map[string]model.OwnerDataset{},
	}
}

func (f *fakeStore) Create(_ context.Context, s model.SharedSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.sessions[s.Token]; ok {
		return errs.ErrAlreadyExists
	}
	f.sessions[s.Token] = s
	return nil
}

func (f *fakeStore) SetActive(_ context.Context, token string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	s, ok := f.sessions[token]
	if !ok {
		return errs.ErrNotFound
	}
	s.Active = active
	f.sessions[token] = s
	return nil
}

func (f *fakeStore) ListByOwner(_ context.Context, ownerID string) ([]model.SharedSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := []model.SharedSession{}
	for _, s := range f.sessions {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) FindByToken(_ context.Context, token string) (*model.SharedSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	s, ok := f.sessions[token]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &s, nil
}

func (f *fakeStore) Get(_ context.Context, ownerID string) (*model.OwnerDataset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.datasets[ownerID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := d.Clone()
	return &c, nil
}

func (f *fakeStore) Put(_ context.Context, d model.OwnerDataset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls++
	if f.putErr != nil {
		return f.putErr
	}
	f.datasets[d.OwnerID] = d.Clone()
	return nil
}

func (f *fakeStore) dataset(ownerID string) model.OwnerDataset {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.datasets[ownerID]
}
