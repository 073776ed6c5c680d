// Package highlight draws a colored frame behind the focused window and keeps
// it glued to the window as it moves, resizes and changes stacking parent.
package highlight

import (
	"math"

	"github.com/1broseidon/snaptile/internal/idle"
	"github.com/1broseidon/snaptile/internal/platform"
)

// margin is how far the highlight extends past the frame, in density units.
const margin = 4

type trackedWindow struct {
	window platform.WindowHandle
	actor  platform.Actor
	parent platform.Container

	sizeChanged     platform.HandlerID
	positionChanged platform.HandlerID
	parentSet       platform.HandlerID
}

// ActiveHint tracks one window at a time. Its methods must be called from the
// goroutine that dispatches the idle loop it was created with.
type ActiveHint struct {
	dpi     float64
	overlay platform.Overlay
	chrome  platform.Chrome

	window *trackedWindow

	tracking    *idle.Slot
	reparenting *idle.Slot
}

// New registers overlay as input-transparent chrome and returns an idle
// tracker. dpi scales the highlight margin.
func New(overlay platform.Overlay, chrome platform.Chrome, loop *idle.Loop, dpi float64) *ActiveHint {
	if dpi <= 0 {
		dpi = 1
	}
	overlay.Hide()
	chrome.Track(overlay)
	return &ActiveHint{
		dpi:         dpi,
		overlay:     overlay,
		chrome:      chrome,
		tracking:    idle.NewSlot(loop),
		reparenting: idle.NewSlot(loop),
	}
}

// Tracked returns the window currently highlighted.
func (h *ActiveHint) Tracked() (platform.WindowID, bool) {
	if h.window == nil {
		return 0, false
	}
	return h.window.window.ID(), true
}

// Pending reports whether a placement is waiting for the idle loop.
func (h *ActiveHint) Pending() bool {
	return h.tracking.Pending() || h.reparenting.Pending()
}

// Track moves the highlight to win. Tracking the same window again does
// nothing; a window without a parented frame actor is ignored.
func (h *ActiveHint) Track(win platform.WindowHandle) {
	if h.window != nil && h.window.window.ID() == win.ID() {
		return
	}
	h.cancel()
	if h.window != nil {
		h.Untrack()
	}

	actor, ok := win.Actor()
	if !ok {
		return
	}
	parent, ok := actor.Parent()
	if !ok {
		return
	}

	h.window = &trackedWindow{
		window:          win,
		actor:           actor,
		parent:          parent,
		sizeChanged:     win.Connect(platform.SignalSizeChanged, h.UpdateOverlay),
		positionChanged: win.Connect(platform.SignalPositionChanged, h.UpdateOverlay),
		parentSet:       actor.Connect(platform.SignalParentSet, h.Reparent),
	}

	h.tracking.Schedule(idle.PriorityLow, func() {
		h.UpdateOverlay()
		parent.AddChild(h.overlay)
		h.restack(parent, actor)
	})
}

// UpdateOverlay places the highlight around the tracked window's frame.
func (h *ActiveHint) UpdateOverlay() {
	if h.window == nil {
		return
	}
	m := int(math.Round(margin * h.dpi))
	h.overlay.SetGeometry(h.window.window.FrameRect().Expand(m))
}

// Reparent follows the tracked window's actor to its new parent. The
// highlight is hidden until the idle loop re-inserts it; a newer reparent
// replaces one still pending.
func (h *ActiveHint) Reparent() {
	if h.window == nil {
		return
	}
	actor, ok := h.window.window.Actor()
	if !ok {
		return
	}
	parent, ok := actor.Parent()
	if !ok {
		return
	}

	h.overlay.Hide()
	h.window.parent.RemoveChild(h.overlay)
	h.window.parent = parent
	h.window.actor = actor

	h.tracking.Cancel()
	h.reparenting.Schedule(idle.PriorityLow, func() {
		h.UpdateOverlay()
		parent.AddChild(h.overlay)
		h.restack(parent, actor)
	})
}

// Untrack hides the highlight and drops every subscription on the tracked
// window.
func (h *ActiveHint) Untrack() {
	h.cancel()
	h.overlay.Hide()

	if h.window == nil {
		return
	}
	w := h.window
	h.window = nil

	w.window.Disconnect(w.sizeChanged)
	w.window.Disconnect(w.positionChanged)
	w.actor.Disconnect(w.parentSet)
	w.parent.RemoveChild(h.overlay)
}

// Destroy untracks and releases the chrome registration.
func (h *ActiveHint) Destroy() {
	h.Untrack()
	h.chrome.Untrack(h.overlay)
}

// restack places the highlight directly under actor, raises actor back to
// the top and reveals the highlight.
func (h *ActiveHint) restack(parent platform.Container, actor platform.Actor) {
	parent.SetChildBelowSibling(h.overlay, actor)
	parent.SetChildAboveSibling(actor, nil)
	h.overlay.Show()
}

func (h *ActiveHint) cancel() {
	h.reparenting.Cancel()
	h.tracking.Cancel()
}
