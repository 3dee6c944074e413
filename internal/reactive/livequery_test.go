package reactive

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

const waitTimeout = 5 * time.Second

func awaitResult[T any](t *testing.T, q *LiveQuery[T]) Result[T] {
	t.Helper()
	select {
	case r, ok := <-q.Results():
		if !ok {
			t.Fatal("results channel closed while waiting for a result")
		}
		return r
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for a live query result")
	}
	panic("unreachable")
}

func TestLiveQueryDeliversInitialResult(t *testing.T) {
	bus := NewBus()
	q := NewLiveQuery(bus, func(ctx context.Context) (int, error) {
		Touch(ctx, "habits")
		return 42, nil
	})
	defer q.Close()

	if r := awaitResult(t, q); r.Err != nil || r.Value != 42 {
		t.Fatalf("initial result = (%v, %v), want (42, nil)", r.Value, r.Err)
	}
}

func TestLiveQueryRerunsOnTouchedTableChange(t *testing.T) {
	bus := NewBus()
	var counter atomic.Int64
	q := NewLiveQuery(bus, func(ctx context.Context) (int64, error) {
		Touch(ctx, "habits")
		return counter.Add(1), nil
	})
	defer q.Close()

	if r := awaitResult(t, q); r.Value != 1 {
		t.Fatalf("first value = %d, want 1", r.Value)
	}

	bus.Publish("habits")
	if r := awaitResult(t, q); r.Value != 2 {
		t.Fatalf("value after publish = %d, want 2", r.Value)
	}
}

func TestLiveQueryIgnoresUntouchedTables(t *testing.T) {
	bus := NewBus()
	var runs atomic.Int64
	q := NewLiveQuery(bus, func(ctx context.Context) (int64, error) {
		Touch(ctx, "habits")
		return runs.Add(1), nil
	})
	defer q.Close()

	awaitResult(t, q)
	bus.Publish("resources")

	// Give a wrongly triggered re-run time to happen.
	time.Sleep(50 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("query ran %d times, want 1 (write to untouched table)", got)
	}
}

func TestLiveQueryCoalescesRapidWrites(t *testing.T) {
	bus := NewBus()
	var runs atomic.Int64
	q := NewLiveQuery(bus, func(ctx context.Context) (int64, error) {
		Touch(ctx, "habits")
		return runs.Add(1), nil
	})
	defer q.Close()

	awaitResult(t, q)

	// Publish a burst without consuming results. The query may skip
	// intermediate states, but the final delivered value must reflect
	// the last execution.
	for i := 0; i < 10; i++ {
		bus.Publish("habits")
	}

	// Wait for the loop to settle: no publish is outstanding once the
	// version stops moving and a result is pending.
	deadline := time.Now().Add(waitTimeout)
	var last int64
	for time.Now().Before(deadline) {
		select {
		case r, ok := <-q.Results():
			if !ok {
				t.Fatal("results channel closed early")
			}
			last = r.Value
		case <-time.After(100 * time.Millisecond):
		}
		if last == runs.Load() {
			return
		}
	}
	t.Fatalf("final state never delivered: last %d, runs %d", last, runs.Load())
}

func TestLiveQueryCatchesWriteDuringExecution(t *testing.T) {
	bus := NewBus()
	started := make(chan struct{})
	release := make(chan struct{})
	var runs atomic.Int64

	q := NewLiveQuery(bus, func(ctx context.Context) (int64, error) {
		n := runs.Add(1)
		if n == 1 {
			close(started)
			// A write lands now, before SetTables has registered our
			// read set. The version check must still trigger a re-run.
			<-release
		}
		Touch(ctx, "habits")
		return n, nil
	})
	defer q.Close()

	<-started
	bus.Publish("habits")
	close(release)

	// The raced first result may be replaced by the re-run's before we
	// read it; either way a second execution must happen and its value
	// must arrive.
	r := awaitResult(t, q)
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.Value == 1 {
		r = awaitResult(t, q)
	}
	if r.Value != 2 {
		t.Fatalf("expected re-run after mid-execution write, got value %d", r.Value)
	}
}

func TestLiveQueryDeliversErrors(t *testing.T) {
	bus := NewBus()
	fail := atomic.Bool{}
	sentinel := errors.New("query broke")

	q := NewLiveQuery(bus, func(ctx context.Context) (string, error) {
		Touch(ctx, "habits")
		if fail.Load() {
			return "", sentinel
		}
		return "ok", nil
	})
	defer q.Close()

	if r := awaitResult(t, q); r.Err != nil || r.Value != "ok" {
		t.Fatalf("initial result = (%q, %v)", r.Value, r.Err)
	}

	fail.Store(true)
	bus.Publish("habits")
	if r := awaitResult(t, q); !errors.Is(r.Err, sentinel) {
		t.Fatalf("expected sentinel error delivery, got (%q, %v)", r.Value, r.Err)
	}

	// Recovery: the stream keeps going after an error.
	fail.Store(false)
	bus.Publish("habits")
	if r := awaitResult(t, q); r.Err != nil || r.Value != "ok" {
		t.Fatalf("expected recovery result, got (%q, %v)", r.Value, r.Err)
	}
}

func TestLiveQueryCloseReleasesObservers(t *testing.T) {
	bus := NewBus()
	q := NewLiveQuery(bus, func(ctx context.Context) (int, error) {
		Touch(ctx, "habits")
		return 1, nil
	})

	awaitResult(t, q)
	q.Close()

	// Channel closes.
	if _, ok := <-q.Results(); ok {
		// A final buffered result may still be pending; the next receive
		// must observe the close.
		if _, ok := <-q.Results(); ok {
			t.Fatal("results channel not closed after Close")
		}
	}

	// No observers remain on the bus.
	bus.mu.RLock()
	remaining := len(bus.byTable)
	bus.mu.RUnlock()
	if remaining != 0 {
		t.Errorf("bus still has %d observed tables after Close", remaining)
	}

	// Closing twice is fine.
	q.Close()
}
