package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	pkgcrypto "github.com/kayatkin/flight-tracker-sub000/internal/crypto"
	"github.com/kayatkin/flight-tracker-sub000/internal/errs"
	"github.com/kayatkin/flight-tracker-sub000/internal/model"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time      { return c.t }
func (c *clock) add(d time.Duration) { c.t = c.t.Add(d) }

func newSessions(store *fakeStore, c *clock) *SessionServiceImpl {
	s := NewSessionService(store, nil)
	s.now = c.now
	return s
}

func TestSessions_Create(t *testing.T) {
	t.Parallel()
	c := &clock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	store := newFakeStore()
	s := newSessions(store, c)

	sess, err := s.Create(context.Background(), "42", model.PermissionView, 7)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !pkgcrypto.WellFormed(sess.Token) {
		t.Fatalf("token not well formed: %q", sess.Token)
	}
	if !sess.Active || sess.OwnerID != "42" || sess.Permission != model.PermissionView {
		t.Fatalf("bad session: %+v", sess)
	}
	if want := c.t.AddDate(0, 0, 7); !sess.ExpiresAt.Equal(want) {
		t.Fatalf("expiresAt=%v, want %v", sess.ExpiresAt, want)
	}
	if _, ok := store.sessions[sess.Token]; !ok {
		t.Fatalf("session not persisted")
	}
}

func TestSessions_CreateLifetimeBounds(t *testing.T) {
	t.Parallel()
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := newSessions(newFakeStore(), c)

	for _, ttl := range []int{0, MaxShareDays} {
		sess, err := s.Create(context.Background(), "42", model.PermissionEdit, ttl)
		if err != nil {
			t.Fatalf("Create(ttl=%d): %v", ttl, err)
		}
		if want := c.t.AddDate(0, 0, MaxShareDays); !sess.ExpiresAt.Equal(want) {
			t.Fatalf("ttl=%d: expiresAt=%v, want %v", ttl, sess.ExpiresAt, want)
		}
	}
}

func TestSessions_CreateRejectsLifetimeOutOfRange(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	s := newSessions(store, &clock{t: time.Now()})

	for _, ttl := range []int{-3, MaxShareDays + 1, 1000} {
		_, err := s.Create(context.Background(), "42", model.PermissionView, ttl)
		if !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("Create(ttl=%d) err=%v, want validation error", ttl, err)
		}
	}
	if store.createCalls != 0 {
		t.Fatalf("store called %d times for rejected lifetimes", store.createCalls)
	}
}

func TestSessions_CreateValidation(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	s := newSessions(store, &clock{t: time.Now()})

	if _, err := s.Create(context.Background(), "", model.PermissionView, 1); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation on empty owner, got %v", err)
	}
	if _, err := s.Create(context.Background(), "42", "admin", 1); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation on bad permission, got %v", err)
	}
	if store.createCalls != 0 {
		t.Fatalf("store touched on invalid input")
	}
}

func TestSessions_CreateRetriesCollision(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	s := newSessions(store, &clock{t: time.Now()})

	taken := strings.Repeat("a", pkgcrypto.TokenLen)
	store.sessions[taken] = model.SharedSession{Token: taken, OwnerID: "other"}
	fresh := strings.Repeat("b", pkgcrypto.TokenLen)
	queue := []string{taken, fresh}
	s.newTok = func() (string, error) {
		tok := queue[0]
		queue = queue[1:]
		return tok, nil
	}

	sess, err := s.Create(context.Background(), "42", model.PermissionView, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.Token != fresh || store.createCalls != 2 {
		t.Fatalf("token=%q calls=%d", sess.Token, store.createCalls)
	}

	s.newTok = func() (string, error) { return taken, nil }
	if _, err := s.Create(context.Background(), "42", model.PermissionView, 1); !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists after exhausting attempts, got %v", err)
	}
}

func TestSessions_CreateStorageError(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	store.createErr = fmt.Errorf("create session: %w", errs.ErrStorage)
	s := newSessions(store, &clock{t: time.Now()})

	if _, err := s.Create(context.Background(), "42", model.PermissionView, 1); !errors.Is(err, errs.ErrStorage) {
		t.Fatalf("want ErrStorage, got %v", err)
	}
	if store.createCalls != 1 {
		t.Fatalf("storage errors must not be retried, calls=%d", store.createCalls)
	}
}

func TestSessions_DeactivateIdempotentAndOwnerOnly(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	s := newSessions(store, &clock{t: time.Now()})
	ctx := context.Background()

	sess, err := s.Create(ctx, "42", model.PermissionEdit, 30)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Deactivate(ctx, "7", sess.Token); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("foreign owner: want ErrNotFound, got %v", err)
	}
	if !store.sessions[sess.Token].Active {
		t.Fatalf("foreign owner deactivated the session")
	}

	if err := s.Deactivate(ctx, "42", sess.Token); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if err := s.Deactivate(ctx, "42", sess.Token); err != nil {
		t.Fatalf("second Deactivate: %v", err)
	}
	if store.sessions[sess.Token].Active {
		t.Fatalf("session still active")
	}

	if err := s.Deactivate(ctx, "42", "unknown"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("unknown token: want ErrNotFound, got %v", err)
	}
}

func TestSessions_ListAndPartition(t *testing.T) {
	t.Parallel()
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newFakeStore()
	s := newSessions(store, c)
	ctx := context.Background()

	short, err := s.Create(ctx, "42", model.PermissionView, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	c.add(time.Hour)
	revoked, err := s.Create(ctx, "42", model.PermissionEdit, 30)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	c.add(time.Hour)
	live, err := s.Create(ctx, "42", model.PermissionView, 30)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Deactivate(ctx, "42", revoked.Token); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	all, err := s.List(ctx, "42")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Token != live.Token || all[2].Token != short.Token {
		t.Fatalf("want newest first, got %+v", all)
	}

	active, inactive := Partition(all, c.t.Add(48*time.Hour))
	if len(active) != 1 || active[0].Token != live.Token {
		t.Fatalf("active=%+v", active)
	}
	if len(inactive) != 2 {
		t.Fatalf("inactive=%+v", inactive)
	}

	empty, err := s.List(ctx, "nobody")
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty list: %v %+v", err, empty)
	}
}

func TestShareLinks(t *testing.T) {
	t.Parallel()
	l := ShareLinks{AppOrigin: "https://ft.example", SharePath: "/shared", MiniAppLink: "https://t.me/ft_bot/app"}

	view := l.For(model.SharedSession{Token: "abc", Permission: model.PermissionView})
	if view != "https://ft.example/shared?token=abc" {
		t.Fatalf("view link=%q", view)
	}
	edit := l.For(model.SharedSession{Token: "abc", Permission: model.PermissionEdit})
	if edit != "https://t.me/ft_bot/app?startapp=abc" {
		t.Fatalf("edit link=%q", edit)
	}
}
