package idle

import "testing"

func TestSlot_ScheduleReplacesPending(t *testing.T) {
	l := NewLoop()
	s := NewSlot(l)
	var got []int

	s.Schedule(PriorityLow, func() { got = append(got, 1) })
	s.Schedule(PriorityLow, func() { got = append(got, 2) })

	if l.Pending() != 1 {
		t.Fatalf("expected 1 pending callback, got %d", l.Pending())
	}
	l.Dispatch()
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected only the replacement to run, got %v", got)
	}
	if s.Pending() {
		t.Fatalf("expected slot to be empty after dispatch")
	}
}

func TestSlot_Cancel(t *testing.T) {
	l := NewLoop()
	s := NewSlot(l)
	ran := false

	if s.Cancel() {
		t.Fatalf("expected Cancel on empty slot to report false")
	}
	s.Schedule(PriorityDefault, func() { ran = true })
	if !s.Cancel() {
		t.Fatalf("expected Cancel to report a pending callback")
	}
	l.Dispatch()
	if ran {
		t.Fatalf("expected cancelled callback not to run")
	}
}

func TestSlot_RescheduleFromCallback(t *testing.T) {
	l := NewLoop()
	s := NewSlot(l)
	count := 0

	s.Schedule(PriorityDefault, func() {
		count++
		s.Schedule(PriorityDefault, func() { count++ })
	})

	l.Dispatch()
	if !s.Pending() {
		t.Fatalf("expected rescheduled callback to be pending")
	}
	l.Dispatch()
	if count != 2 {
		t.Fatalf("expected 2 runs, got %d", count)
	}
}
