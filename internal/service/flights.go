package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/kayatkin/flight-tracker-sub000/internal/analyzer"
	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
	"github.com/kayatkin/flight-tracker-sub000/internal/workspace"
)

// Workspaces hands out the live dataset of an owner.
type Workspaces interface {
	Get(ctx context.Context, ownerID string) (*workspace.Workspace, error)
}

// FlightService defines operations over the flight records an identity addresses.
type FlightService interface {
	// Dataset returns the records and known-value sets.
	Dataset(ctx context.Context, who model.Identity) (model.OwnerDataset, model.SaveStatus, error)
	// Add validates rec, classifies it against the current records and stores it.
	Add(ctx context.Context, who model.Identity, rec model.FlightRecord) (model.FlightRecord, analyzer.Verdict, model.SaveStatus, error)
	// Delete removes a record by id; an unknown id is not an error.
	Delete(ctx context.Context, who model.Identity, id string) (bool, model.SaveStatus, error)
	// Analyze classifies rec without storing it.
	Analyze(ctx context.Context, who model.Identity, rec model.FlightRecord) (analyzer.Verdict, error)
	// Groups returns the records grouped by destination.
	Groups(ctx context.Context, who model.Identity) ([]analyzer.DestinationGroup, error)
}

type FlightServiceImpl struct {
	spaces Workspaces
	now    func() time.Time
}

// NewFlightService constructs FlightService.
func NewFlightService(spaces Workspaces) *FlightServiceImpl {
	return &FlightServiceImpl{spaces: spaces, now: time.Now}
}

func (s *FlightServiceImpl) workspace(ctx context.Context, who model.Identity) (*workspace.Workspace, error) {
	if who == nil || who.DatasetOwner() == "" {
		return nil, errs.ErrUnauthorized
	}
	return s.spaces.Get(ctx, who.DatasetOwner())
}

func (s *FlightServiceImpl) Dataset(ctx context.Context, who model.Identity) (model.OwnerDataset, model.SaveStatus, error) {
	ws, err := s.workspace(ctx, who)
	if err != nil {
		return model.OwnerDataset{}, model.SaveStatus{}, err
	}
	return ws.Snapshot(), ws.Status(), nil
}

// Add rejects guests without edit permission before touching the workspace.
func (s *FlightServiceImpl) Add(ctx context.Context, who model.Identity, rec model.FlightRecord) (model.FlightRecord, analyzer.Verdict, model.SaveStatus, error) {
	if who != nil && !who.CanEdit() {
		return model.FlightRecord{}, analyzer.Verdict{}, model.SaveStatus{}, errs.ErrForbidden
	}
	now := s.now()
	if err := NormalizeFlight(&rec, now); err != nil {
		return model.FlightRecord{}, analyzer.Verdict{}, model.SaveStatus{}, err
	}
	ws, err := s.workspace(ctx, who)
	if err != nil {
		return model.FlightRecord{}, analyzer.Verdict{}, model.SaveStatus{}, err
	}
	if rec.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return model.FlightRecord{}, analyzer.Verdict{}, model.SaveStatus{}, err
		}
		rec.ID = id.String()
	}
	rec.CreatedAt = now.UTC()

	verdict := analyzer.Analyze(rec, ws.List())
	st := ws.Add(rec)
	return rec, verdict, st, nil
}

func (s *FlightServiceImpl) Delete(ctx context.Context, who model.Identity, id string) (bool, model.SaveStatus, error) {
	if who != nil && !who.CanEdit() {
		return false, model.SaveStatus{}, errs.ErrForbidden
	}
	if id == "" {
		return false, model.SaveStatus{}, invalid("empty id")
	}
	ws, err := s.workspace(ctx, who)
	if err != nil {
		return false, model.SaveStatus{}, err
	}
	removed, st := ws.Delete(id)
	return removed, st, nil
}

func (s *FlightServiceImpl) Analyze(ctx context.Context, who model.Identity, rec model.FlightRecord) (analyzer.Verdict, error) {
	if err := NormalizeFlight(&rec, s.now()); err != nil {
		return analyzer.Verdict{}, err
	}
	ws, err := s.workspace(ctx, who)
	if err != nil {
		return analyzer.Verdict{}, err
	}
	return analyzer.Analyze(rec, ws.List()), nil
}

func (s *FlightServiceImpl) Groups(ctx context.Context, who model.Identity) ([]analyzer.DestinationGroup, error) {
	ws, err := s.workspace(ctx, who)
	if err != nil {
		return nil, err
	}
	return analyzer.GroupByDestination(ws.List()), nil
}
