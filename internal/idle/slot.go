package idle

// Slot holds at most one pending callback for a single purpose. Scheduling
// replaces whatever the slot held before. A Slot must only be used from the
// goroutine that dispatches its loop.
type Slot struct {
	loop *Loop
	id   SourceID
}

// NewSlot returns an empty slot bound to loop.
func NewSlot(loop *Loop) *Slot {
	return &Slot{loop: loop}
}

// Schedule cancels any pending callback and queues fn at priority p.
func (s *Slot) Schedule(p Priority, fn func()) {
	s.Cancel()

	var id SourceID
	id = s.loop.Add(p, func() {
		if s.id == id {
			s.id = 0
		}
		fn()
	})
	s.id = id
}

// Cancel drops the pending callback, if any, and reports whether one was
// pending.
func (s *Slot) Cancel() bool {
	if s.id == 0 {
		return false
	}
	id := s.id
	s.id = 0
	return s.loop.Remove(id)
}

// Pending reports whether the slot holds a callback that has not run yet.
func (s *Slot) Pending() bool {
	return s.id != 0
}
