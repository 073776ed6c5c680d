// Package idle provides a single-threaded queue of deferred callbacks.
//
// Callbacks are queued with a priority and run once, in priority order and
// FIFO within a priority, when the owning goroutine calls Dispatch. Add and
// Remove may be called from any goroutine.
package idle

import (
	"sort"
	"sync"
)

// Priority orders pending callbacks. Lower values run first.
type Priority int

const (
	PriorityDefault     Priority = 0
	PriorityDefaultIdle Priority = 200
	PriorityLow         Priority = 300
)

func (p Priority) String() string {
	switch p {
	case PriorityDefault:
		return "default"
	case PriorityDefaultIdle:
		return "default-idle"
	case PriorityLow:
		return "low"
	default:
		return "custom"
	}
}

// SourceID identifies a queued callback. Zero is never issued.
type SourceID uint64

type source struct {
	id       SourceID
	priority Priority
	fn       func()
}

// Loop holds pending callbacks until Dispatch runs them.
type Loop struct {
	mu      sync.Mutex
	nextID  SourceID
	pending map[SourceID]*source
	wake    chan struct{}
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{
		pending: make(map[SourceID]*source),
		wake:    make(chan struct{}, 1),
	}
}

// Add queues fn to run once at priority p.
func (l *Loop) Add(p Priority, fn func()) SourceID {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.pending[id] = &source{id: id, priority: p, fn: fn}
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return id
}

// Post queues fn at default priority.
func (l *Loop) Post(fn func()) SourceID {
	return l.Add(PriorityDefault, fn)
}

// Remove cancels a pending callback. It reports whether the callback was
// still pending.
func (l *Loop) Remove(id SourceID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.pending[id]; !ok {
		return false
	}
	delete(l.pending, id)
	return true
}

// Pending returns the number of queued callbacks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Wake is signalled whenever a callback is queued.
func (l *Loop) Wake() <-chan struct{} {
	return l.wake
}

// Dispatch runs the callbacks that were pending when it was called and
// returns how many ran. Callbacks queued while dispatching wait for the next
// call; callbacks removed while dispatching are skipped.
func (l *Loop) Dispatch() int {
	l.mu.Lock()
	batch := make([]*source, 0, len(l.pending))
	for _, s := range l.pending {
		batch = append(batch, s)
	}
	l.mu.Unlock()

	sort.Slice(batch, func(i, j int) bool {
		if batch[i].priority != batch[j].priority {
			return batch[i].priority < batch[j].priority
		}
		return batch[i].id < batch[j].id
	})

	ran := 0
	for _, s := range batch {
		if !l.Remove(s.id) {
			continue
		}
		s.fn()
		ran++
	}
	return ran
}
