package control

import (
	"slices"
	"sync"
	"sync/atomic"

	"voxkey/log"
)

// Observer is a callback bound to one channel. Identity is the pointer, so
// registering the same *Observer twice is a no-op.
type Observer[T any] struct {
	name string
	fn   func(T)
	seen atomic.Uint64
}

func NewObserver[T any](name string, fn func(T)) *Observer[T] {
	return &Observer[T]{name: name, fn: fn}
}

func (o *Observer[T]) Name() string { return o.name }

// Notify calls the callback. A panic is logged and reported as false; it
// never reaches the caller.
func (o *Observer[T]) Notify(v T) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("observer %s failed: %v", o.name, r)
			ok = false
		}
	}()
	o.fn(v)
	return true
}

// deliver notifies only if version is newer than anything already seen, so
// an observer never goes back to an older value.
func (o *Observer[T]) deliver(version uint64, v T) {
	for {
		s := o.seen.Load()
		if version <= s {
			return
		}
		if o.seen.CompareAndSwap(s, version) {
			break
		}
	}
	o.Notify(v)
}

// Topic is a value plus the observers interested in it. It has no lock of
// its own: every method must be called with the owner's lock held. The
// returned delivery funcs must run after that lock is released.
type Topic[T comparable] struct {
	name      string
	value     T
	version   uint64
	observers []*Observer[T]
}

func NewTopic[T comparable](name string, initial T) *Topic[T] {
	return &Topic[T]{name: name, value: initial, version: 1}
}

func (t *Topic[T]) Value() T { return t.value }

// Set stores v. If it differs from the current value it returns a delivery
// to every observer registered right now.
func (t *Topic[T]) Set(v T) (func(), bool) {
	if v == t.value {
		return nil, false
	}
	t.value = v
	t.version++
	obs := slices.Clone(t.observers)
	version := t.version
	return func() {
		for _, o := range obs {
			o.deliver(version, v)
		}
	}, true
}

// Add registers o and returns a delivery of the current value to o alone.
func (t *Topic[T]) Add(o *Observer[T]) (func(), bool) {
	if o == nil || slices.Contains(t.observers, o) {
		return nil, false
	}
	t.observers = append(t.observers, o)
	o.seen.Store(0)
	version, v := t.version, t.value
	return func() { o.deliver(version, v) }, true
}

func (t *Topic[T]) Remove(o *Observer[T]) bool {
	i := slices.Index(t.observers, o)
	if i < 0 {
		return false
	}
	t.observers = slices.Delete(t.observers, i, i+1)
	return true
}

func (t *Topic[T]) Len() int { return len(t.observers) }

func (t *Topic[T]) Clear() { t.observers = nil }

// Queue orders deliveries. Push is called with the owner's lock held; Drain
// takes that lock itself and runs queued deliveries outside it, one caller
// at a time. A delivery that triggers another transition (on any goroutine)
// has it queued behind it instead of deadlocking.
type Queue struct {
	pending  []func()
	draining bool
}

func (q *Queue) Push(fn func()) {
	if fn != nil {
		q.pending = append(q.pending, fn)
	}
}

func (q *Queue) Drain(mu sync.Locker) {
	mu.Lock()
	if q.draining {
		mu.Unlock()
		return
	}
	q.draining = true
	for len(q.pending) > 0 {
		batch := q.pending
		q.pending = nil
		mu.Unlock()
		for _, fn := range batch {
			fn()
		}
		mu.Lock()
	}
	q.draining = false
	mu.Unlock()
}
