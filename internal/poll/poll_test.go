package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunnerFiresImmediately(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{})
	r := NewRunner(time.Hour, func(context.Context) {
		close(fired)
	})
	r.Start(ctx)

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("first invocation should not wait for the ticker")
	}
}

func TestRunnerTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	r := NewRunner(5*time.Millisecond, func(context.Context) {
		calls.Add(1)
	})
	r.Start(ctx)

	deadline := time.After(time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d calls before deadline", calls.Load())
		case <-time.After(time.Millisecond):
		}
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	r := NewRunner(time.Millisecond, func(context.Context) {
		calls.Add(1)
	})
	r.Start(ctx)

	time.Sleep(10 * time.Millisecond)
	cancel()
	r.Wait()

	after := calls.Load()
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != after {
		t.Error("runner kept firing after Wait() returned")
	}
}
