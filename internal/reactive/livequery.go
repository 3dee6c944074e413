package reactive

import "context"

// Result is one delivery from a live query: the query's value or the
// error its execution returned. An error delivery does not retract a
// previously delivered value; the subscriber keeps whatever it last saw.
type Result[T any] struct {
	Value T
	Err   error
}

// LiveQuery re-executes a read whenever any table it touched during its
// last execution changes, and pushes the newest result to Results.
// Delivery is latest-wins: a subscriber that falls behind skips
// intermediate states but always eventually observes the final one.
//
// The query function must be a pure read over the store, using the
// context it is given so table touches are recorded.
type LiveQuery[T any] struct {
	out    chan Result[T]
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLiveQuery starts a live query on the bus. The first execution
// begins immediately; results arrive on Results. Callers must Close the
// query when they stop listening, or its bus observers leak.
func NewLiveQuery[T any](bus *Bus, query func(ctx context.Context) (T, error)) *LiveQuery[T] {
	ctx, cancel := context.WithCancel(context.Background())
	q := &LiveQuery[T]{
		out:    make(chan Result[T], 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go q.run(ctx, bus, query)
	return q
}

// Results delivers query results, newest first when the consumer lags.
// The channel is closed by Close.
func (q *LiveQuery[T]) Results() <-chan Result[T] { return q.out }

// Close stops recomputation, releases the bus observers, and closes the
// results channel. Safe to call more than once.
func (q *LiveQuery[T]) Close() {
	q.cancel()
	<-q.done
}

func (q *LiveQuery[T]) run(ctx context.Context, bus *Bus, query func(ctx context.Context) (T, error)) {
	defer close(q.done)
	defer close(q.out)

	sub := bus.Subscribe()
	defer sub.Close()

	for {
		// Note the bus version before executing: a write that lands while
		// the query is running, against tables we only register afterward,
		// must still trigger a re-run.
		before := bus.Version()

		rctx, rec := WithRecorder(ctx)
		value, err := query(rctx)
		sub.SetTables(rec.Tables()...)

		if ctx.Err() != nil {
			return
		}
		q.deliver(Result[T]{Value: value, Err: err})

		if bus.Version() != before {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-sub.C():
		}
	}
}

// deliver replaces any undelivered stale result with the newest one.
func (q *LiveQuery[T]) deliver(r Result[T]) {
	for {
		select {
		case q.out <- r:
			return
		default:
		}
		select {
		case <-q.out:
		default:
		}
	}
}
