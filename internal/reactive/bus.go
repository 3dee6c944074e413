// Package reactive implements the live-query layer: a table-keyed change
// bus plus queries that re-run whenever a table they read from changes.
package reactive

import (
	"context"
	"sync"
	"sync/atomic"
)

// Bus fans table-change events out to subscriptions. Writers publish the
// names of the tables they touched after their transaction commits;
// subscriptions signal through a one-slot channel so rapid successive
// writes coalesce into a single wake-up.
type Bus struct {
	mu      sync.RWMutex
	byTable map[string]map[*Subscription]struct{}
	version atomic.Uint64
}

// NewBus creates an empty change bus.
func NewBus() *Bus {
	return &Bus{byTable: make(map[string]map[*Subscription]struct{})}
}

// Publish signals every subscription registered for any of the given
// tables. The send is non-blocking: a subscription that already has a
// pending signal is not signaled again (coalescing), which is safe
// because the subscriber re-reads the latest state when it wakes.
func (b *Bus) Publish(tables ...string) {
	b.version.Add(1)

	b.mu.RLock()
	defer b.mu.RUnlock()
	notified := make(map[*Subscription]struct{})
	for _, table := range tables {
		for sub := range b.byTable[table] {
			if _, done := notified[sub]; done {
				continue
			}
			notified[sub] = struct{}{}
			sub.signal()
		}
	}
}

// PublishAll signals every subscription regardless of table, used when
// the whole database may have changed out of band.
func (b *Bus) PublishAll() {
	b.version.Add(1)

	b.mu.RLock()
	defer b.mu.RUnlock()
	notified := make(map[*Subscription]struct{})
	for _, subs := range b.byTable {
		for sub := range subs {
			if _, done := notified[sub]; done {
				continue
			}
			notified[sub] = struct{}{}
			sub.signal()
		}
	}
}

// Version returns a counter incremented by every publish. Live queries
// compare it across an execution to detect writes that landed while the
// query was running.
func (b *Bus) Version() uint64 {
	return b.version.Load()
}

// Subscribe registers a subscription for the given tables. The table set
// can be retargeted later as the query's read set changes.
func (b *Bus) Subscribe(tables ...string) *Subscription {
	sub := &Subscription{
		bus: b,
		ch:  make(chan struct{}, 1),
	}
	sub.setTables(tables)
	return sub
}

// Subscription is one listener on the bus. C fires (coalesced) whenever
// any registered table changes.
type Subscription struct {
	bus    *Bus
	ch     chan struct{}
	mu     sync.Mutex
	tables []string
	closed bool
}

// C returns the signal channel.
func (s *Subscription) C() <-chan struct{} { return s.ch }

// SetTables replaces the subscription's table set.
func (s *Subscription) SetTables(tables ...string) {
	s.setTables(tables)
}

func (s *Subscription) setTables(tables []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, table := range s.tables {
		delete(b.byTable[table], s)
		if len(b.byTable[table]) == 0 {
			delete(b.byTable, table)
		}
	}
	s.tables = append([]string(nil), tables...)
	for _, table := range s.tables {
		if b.byTable[table] == nil {
			b.byTable[table] = make(map[*Subscription]struct{})
		}
		b.byTable[table][s] = struct{}{}
	}
}

func (s *Subscription) signal() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Close deregisters the subscription from every table. No further
// signals are delivered after Close returns.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true

	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, table := range s.tables {
		delete(b.byTable[table], s)
		if len(b.byTable[table]) == 0 {
			delete(b.byTable, table)
		}
	}
	s.tables = nil
}

// Recorder collects the tables a query touches during one execution.
type Recorder struct {
	mu     sync.Mutex
	tables map[string]struct{}
}

// Tables returns the recorded table names.
func (r *Recorder) Tables() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.tables))
	for t := range r.tables {
		out = append(out, t)
	}
	return out
}

func (r *Recorder) add(tables ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tables {
		r.tables[t] = struct{}{}
	}
}

type recorderKey struct{}

// WithRecorder returns a context that records table touches and the
// recorder itself.
func WithRecorder(ctx context.Context) (context.Context, *Recorder) {
	r := &Recorder{tables: make(map[string]struct{})}
	return context.WithValue(ctx, recorderKey{}, r), r
}

// Touch records that the given tables were read under ctx. Reads outside
// a live query (no recorder on the context) are a no-op, so repository
// code can call this unconditionally.
func Touch(ctx context.Context, tables ...string) {
	if r, ok := ctx.Value(recorderKey{}).(*Recorder); ok {
		r.add(tables...)
	}
}
