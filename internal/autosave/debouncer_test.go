package autosave

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var runs atomic.Int32
	d := New(30*time.Millisecond, func(context.Context) { runs.Add(1) })
	defer func() { _ = d.Stop(context.Background()) }()

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}
	require.True(t, d.Pending())

	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	require.EqualValues(t, 1, runs.Load())
	require.False(t, d.Pending())
}

func TestDebouncer_SeparateBurstsRunSeparately(t *testing.T) {
	var runs atomic.Int32
	d := New(10*time.Millisecond, func(context.Context) { runs.Add(1) })
	defer func() { _ = d.Stop(context.Background()) }()

	d.Trigger()
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 2*time.Millisecond)
	d.Trigger()
	require.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, 2*time.Millisecond)
}

func TestDebouncer_Cancel(t *testing.T) {
	var runs atomic.Int32
	d := New(20*time.Millisecond, func(context.Context) { runs.Add(1) })
	defer func() { _ = d.Stop(context.Background()) }()

	d.Trigger()
	d.Cancel()
	require.False(t, d.Pending())
	time.Sleep(60 * time.Millisecond)
	require.Zero(t, runs.Load())
}

func TestDebouncer_StopRefusesTriggers(t *testing.T) {
	var runs atomic.Int32
	d := New(5*time.Millisecond, func(context.Context) { runs.Add(1) })

	require.NoError(t, d.Stop(context.Background()))
	d.Trigger()
	time.Sleep(30 * time.Millisecond)
	require.Zero(t, runs.Load())
	require.False(t, d.Pending())
}

func TestDebouncer_StopWaitsForRunningTask(t *testing.T) {
	started := make(chan struct{})
	var finished atomic.Bool
	d := New(time.Millisecond, func(context.Context) {
		close(started)
		time.Sleep(30 * time.Millisecond)
		finished.Store(true)
	})

	d.Trigger()
	<-started
	require.NoError(t, d.Stop(context.Background()))
	require.True(t, finished.Load())
}

func TestDebouncer_RunTimeoutBoundsTask(t *testing.T) {
	got := make(chan error, 1)
	d := New(time.Millisecond, func(ctx context.Context) {
		<-ctx.Done()
		got <- ctx.Err()
	}, WithRunTimeout(20*time.Millisecond))
	defer func() { _ = d.Stop(context.Background()) }()

	d.Trigger()
	select {
	case err := <-got:
		require.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("task context never expired")
	}
}

func TestDebouncer_StopHonoursDeadline(t *testing.T) {
	started := make(chan struct{})
	sawCancel := make(chan struct{})
	d := New(time.Millisecond, func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(sawCancel)
	})

	d.Trigger()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	begin := time.Now()
	err := d.Stop(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(begin), time.Second)

	select {
	case <-sawCancel:
	case <-time.After(time.Second):
		t.Fatal("running task was not cancelled")
	}
}
