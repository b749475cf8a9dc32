// Package autosave provides a cancellable delayed task used to coalesce bursts of
// mutations into a single write.
package autosave

import (
	"context"
	"sync"
	"time"
)

// Debouncer runs task once after delay has elapsed since the last Trigger.
// Every Trigger cancels the pending run and schedules a new one.
type Debouncer struct {
	delay      time.Duration
	runTimeout time.Duration
	task       func(context.Context)

	// base is the parent of every run context; Stop cancels it when its
	// caller gives up waiting.
	base   context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
	wg      sync.WaitGroup
}

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithRunTimeout bounds every run of the task. Zero means no bound.
func WithRunTimeout(d time.Duration) Option {
	return func(db *Debouncer) { db.runTimeout = d }
}

// New returns a debouncer that calls task after delay of inactivity.
func New(delay time.Duration, task func(context.Context), opts ...Option) *Debouncer {
	d := &Debouncer{delay: delay, task: task}
	for _, o := range opts {
		o(d)
	}
	d.base, d.cancel = context.WithCancel(context.Background())
	return d
}

// Trigger (re)schedules the task.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.wg.Add(1)
	d.mu.Unlock()

	defer d.wg.Done()
	ctx, cancel := d.base, context.CancelFunc(func() {})
	if d.runTimeout > 0 {
		ctx, cancel = context.WithTimeout(d.base, d.runTimeout)
	}
	defer cancel()
	d.task(ctx)
}

// Pending reports whether a run is scheduled and has not fired yet.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops the pending run, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Stop cancels the pending run, refuses further triggers and waits for a run
// already in progress to return. When ctx ends first, the running task's
// context is cancelled and ctx.Err() is returned without further waiting.
func (d *Debouncer) Stop(ctx context.Context) error {
	d.mu.Lock()
	d.stopped = true
	d.cancelLocked()
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		return ctx.Err()
	}
}
