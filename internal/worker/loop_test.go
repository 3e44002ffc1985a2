package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"newshub/internal/worker"
)

func TestLoop_KeepsRunningAfterFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32

	loop := worker.New("Test", 0, time.Millisecond, func(ctx context.Context) (time.Duration, error) {
		n := calls.Add(1)
		switch n {
		case 1:
			return time.Millisecond, errors.New("boom")
		case 2:
			panic("worse")
		case 4:
			cancel()
		}
		return time.Millisecond, nil
	})

	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancellation")
	}
	assert.Equal(t, int32(4), calls.Load())
}

func TestLoop_TickIsNotCancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var sawCancelled atomic.Bool

	loop := worker.New("Test", 0, time.Hour, func(tickCtx context.Context) (time.Duration, error) {
		cancel()
		sawCancelled.Store(tickCtx.Err() != nil)
		return time.Hour, nil
	})

	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop during its sleep")
	}
	assert.False(t, sawCancelled.Load())
}

func TestLoop_StopsBeforeFirstTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32

	worker.New("Test", time.Hour, time.Hour, func(ctx context.Context) (time.Duration, error) {
		calls.Add(1)
		return time.Hour, nil
	}).Run(ctx)

	assert.Equal(t, int32(0), calls.Load())
}
