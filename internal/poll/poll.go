// Package poll is the stand-in for server push: a cancellable periodic
// task whose lifetime is tied to its owning context. Replacing the two
// polling loops with a push channel later would not change callers.
package poll

import (
	"context"
	"time"
)

// Runner invokes fn every interval until the context is cancelled. The
// first invocation happens immediately, matching the UI behaviour of
// showing a value before the first tick.
type Runner struct {
	interval time.Duration
	fn       func(context.Context)
	done     chan struct{}
}

func NewRunner(interval time.Duration, fn func(context.Context)) *Runner {
	return &Runner{
		interval: interval,
		fn:       fn,
		done:     make(chan struct{}),
	}
}

// Start launches the loop. It returns immediately; cancel ctx to stop.
func (r *Runner) Start(ctx context.Context) {
	go func() {
		defer close(r.done)
		r.fn(ctx)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.fn(ctx)
			}
		}
	}()
}

// Wait blocks until the loop has fully stopped, so callers can tear down
// a view without leaking the ticker goroutine.
func (r *Runner) Wait() {
	<-r.done
}
