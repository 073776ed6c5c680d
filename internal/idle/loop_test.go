package idle

import (
	"reflect"
	"testing"
)

func TestDispatch_OrdersByPriorityThenFIFO(t *testing.T) {
	l := NewLoop()
	var got []string

	l.Add(PriorityLow, func() { got = append(got, "low-1") })
	l.Add(PriorityDefault, func() { got = append(got, "default-1") })
	l.Add(PriorityLow, func() { got = append(got, "low-2") })
	l.Add(PriorityDefault, func() { got = append(got, "default-2") })

	if n := l.Dispatch(); n != 4 {
		t.Fatalf("expected 4 callbacks to run, got %d", n)
	}
	want := []string{"default-1", "default-2", "low-1", "low-2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if l.Pending() != 0 {
		t.Fatalf("expected empty loop, got %d pending", l.Pending())
	}
}

func TestRemove_CancelsPending(t *testing.T) {
	l := NewLoop()
	ran := false
	id := l.Add(PriorityDefault, func() { ran = true })

	if !l.Remove(id) {
		t.Fatalf("expected Remove to report a pending callback")
	}
	if l.Remove(id) {
		t.Fatalf("expected second Remove to report nothing pending")
	}
	l.Dispatch()
	if ran {
		t.Fatalf("expected removed callback not to run")
	}
}

func TestDispatch_SkipsCallbacksRemovedMidDispatch(t *testing.T) {
	l := NewLoop()
	ran := false
	var second SourceID
	l.Add(PriorityDefault, func() { l.Remove(second) })
	second = l.Add(PriorityDefault, func() { ran = true })

	if n := l.Dispatch(); n != 1 {
		t.Fatalf("expected 1 callback to run, got %d", n)
	}
	if ran {
		t.Fatalf("expected removed callback not to run")
	}
}

func TestDispatch_DefersCallbacksAddedMidDispatch(t *testing.T) {
	l := NewLoop()
	count := 0
	l.Add(PriorityDefault, func() {
		l.Add(PriorityDefault, func() { count++ })
	})

	l.Dispatch()
	if count != 0 {
		t.Fatalf("expected nested callback to wait, got count %d", count)
	}
	l.Dispatch()
	if count != 1 {
		t.Fatalf("expected nested callback to run on next dispatch, got count %d", count)
	}
}

func TestAdd_SignalsWake(t *testing.T) {
	l := NewLoop()
	l.Post(func() {})
	select {
	case <-l.Wake():
	default:
		t.Fatalf("expected wake signal after Add")
	}
}
