// Package store holds the shared animation state: one rotation vector per
// declared object, advanced by Mutate and observed through subscriptions.
//
// Subscribers register a projection of the state and are notified
// synchronously, on the goroutine calling Mutate, whenever the projected
// value changes. A Store is explicitly owned and passed by pointer; there is
// no package-level instance.
package store

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/maniartech/signals"

	"github.com/lixenwraith/boxfield/constant"
)

// Unsubscribe releases a subscription. Safe to call multiple times
type Unsubscribe func()

// Store owns the current Table and the signal its subscribers listen on
type Store struct {
	mu      sync.RWMutex
	table   Table
	changed *signals.SyncSignal[Table]
	mutMu   sync.Mutex // Serializes Mutate so notifications arrive in state order
	step    float64
	mutCnt  atomic.Uint64
	nextKey atomic.Uint64
}

// New creates a store holding t
func New(t Table) *Store {
	return &Store{
		table:   t,
		changed: signals.NewSync[Table](),
		step:    constant.RotationStep,
	}
}

// State returns the current snapshot
func (s *Store) State() Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// IDs returns the declared object ids in order
func (s *Store) IDs() []ObjectID {
	return s.State().IDs()
}

// Mutations returns the number of completed Mutate calls
func (s *Store) Mutations() uint64 {
	return s.mutCnt.Load()
}

// Mutate replaces the table with one where every component is advanced by the rotation step
// Subscribers are notified before Mutate returns
func (s *Store) Mutate() {
	s.mutMu.Lock()
	defer s.mutMu.Unlock()

	s.mu.Lock()
	next := s.table.Advance(s.step)
	s.table = next
	s.mu.Unlock()

	s.mutCnt.Add(1)

	// Listeners run outside the lock so they may read State or unsubscribe
	s.changed.Emit(context.Background(), next)
}

// SubscribeID registers listener for changes of the vector held by id
func (s *Store) SubscribeID(id ObjectID, listener func(Vec3)) Unsubscribe {
	return Subscribe(s, func(t Table) Vec3 {
		v, _ := t.Get(id)
		return v
	}, listener)
}

// Subscribe registers a projection of the state. listener fires with the new
// projected value after a mutation only if it differs from the last one seen.
// Listeners are called in registration order; unsubscribing one may reorder
// those registered after it.
//
// Once Unsubscribe returns, no Mutate that starts afterwards calls listener. A
// Mutate already notifying on another goroutine may still deliver one value.
func Subscribe[T comparable](s *Store, selector func(Table) T, listener func(T)) Unsubscribe {
	key := "sub-" + strconv.FormatUint(s.nextKey.Add(1), 10)
	var active atomic.Bool
	active.Store(true)

	s.mu.Lock()
	prev := selector(s.table)
	s.changed.AddListener(func(_ context.Context, t Table) {
		// Skips delivery when removed earlier in the same Mutate
		if !active.Load() {
			return
		}
		cur := selector(t)
		if cur == prev {
			return
		}
		prev = cur
		listener(cur)
	}, key)
	s.mu.Unlock()

	return func() {
		if !active.CompareAndSwap(true, false) {
			return
		}
		s.changed.RemoveListener(key)
	}
}

// SubscriberCount returns the number of active subscriptions
func (s *Store) SubscriberCount() int {
	return s.changed.Len()
}
