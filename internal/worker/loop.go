package worker

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Tick runs one iteration and returns how long to wait before the next one.
// A non-nil error is logged; the returned delay is still honoured.
type Tick func(ctx context.Context) (time.Duration, error)

// Loop is a single-goroutine periodic job. The only cancellation point is the
// sleep between ticks: a running tick always finishes.
type Loop struct {
	name         string
	initialDelay time.Duration
	retryDelay   time.Duration
	tick         Tick
}

func New(name string, initialDelay, retryDelay time.Duration, tick Tick) *Loop {
	return &Loop{
		name:         name,
		initialDelay: initialDelay,
		retryDelay:   retryDelay,
		tick:         tick,
	}
}

// Run blocks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	log.Printf("[%s] loop started", l.name)
	delay := l.initialDelay

	for {
		if !sleep(ctx, delay) {
			log.Printf("[%s] loop stopped", l.name)
			return
		}

		next, err := l.runTick(context.WithoutCancel(ctx))
		if err != nil {
			log.Printf("[%s] tick failed: %v (next run in %s)", l.name, err, next)
		}
		delay = next
	}
}

func (l *Loop) runTick(ctx context.Context) (next time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			next, err = l.retryDelay, fmt.Errorf("panic: %v", r)
		}
	}()

	next, err = l.tick(ctx)
	if next <= 0 {
		next = l.retryDelay
	}
	return next, err
}

func sleep(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
