// Package tiler implements the modal tiling session: a preview overlay that
// the user moves and resizes on a grid (or drives through the auto-tiling
// forest), then accepts or rejects.
package tiler

import (
	"log"
	"sync"

	"github.com/1broseidon/snaptile/internal/hotkeys"
	"github.com/1broseidon/snaptile/internal/idle"
	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/1broseidon/snaptile/internal/windows"
	"github.com/google/uuid"
)

// OverlayView renders the preview rectangle.
type OverlayView interface {
	Show(r tiling.Rect)
	Hide()
}

// Keybindings enables and disables binding sets.
type Keybindings interface {
	Enable(b hotkeys.Bindings)
	Disable(b hotkeys.Bindings)
}

// Options configures a Tiler.
type Options struct {
	Grid     tiling.Grid
	Registry *windows.Registry
	Selector *windows.Selector
	// AutoTiler, when set, routes move and resize through the forest.
	AutoTiler AutoTiler
	Keys      Keybindings
	// FocusBindings are disabled for the duration of a session.
	FocusBindings hotkeys.Bindings
	View          OverlayView
	Loop          *idle.Loop
}

// Status is a snapshot of the session state.
type Status struct {
	Active     bool
	Session    string
	Window     platform.WindowID
	SwapWindow platform.WindowID
	Overlay    tiling.Rect
	Visible    bool
	AutoTile   bool
}

// Tiler is the modal tiling session. Its methods must be called from the
// goroutine that dispatches Options.Loop.
type Tiler struct {
	mu sync.Mutex

	grid          tiling.Grid
	registry      *windows.Registry
	selector      *windows.Selector
	auto          AutoTiler
	keys          Keybindings
	focusBindings hotkeys.Bindings
	view          OverlayView
	resync        *idle.Slot

	bindings hotkeys.Bindings

	window     platform.WindowID
	swapWindow platform.WindowID
	session    string
	overlay    tiling.Rect
	visible    bool
}

// New creates an idle tiler.
func New(opts Options) *Tiler {
	t := &Tiler{
		grid:          opts.Grid,
		registry:      opts.Registry,
		selector:      opts.Selector,
		auto:          opts.AutoTiler,
		keys:          opts.Keys,
		focusBindings: opts.FocusBindings,
		view:          opts.View,
		resync:        idle.NewSlot(opts.Loop),
	}
	t.bindings = hotkeys.Bindings{
		"management-orientation": t.ToggleOrientation,

		"tile-move-left":    func() { t.Move(tiling.Left) },
		"tile-move-down":    func() { t.Move(tiling.Down) },
		"tile-move-up":      func() { t.Move(tiling.Up) },
		"tile-move-right":   func() { t.Move(tiling.Right) },
		"tile-resize-left":  func() { t.Resize(tiling.Left) },
		"tile-resize-down":  func() { t.Resize(tiling.Down) },
		"tile-resize-up":    func() { t.Resize(tiling.Up) },
		"tile-resize-right": func() { t.Resize(tiling.Right) },
		"tile-swap-left":    func() { t.Swap(tiling.Left) },
		"tile-swap-down":    func() { t.Swap(tiling.Down) },
		"tile-swap-up":      func() { t.Swap(tiling.Up) },
		"tile-swap-right":   func() { t.Swap(tiling.Right) },
		"tile-accept":       t.Accept,
		"tile-reject":       t.Exit,
	}
	return t
}

// Bindings returns the binding set active during a session.
func (t *Tiler) Bindings() hotkeys.Bindings {
	return t.bindings
}

// SetGrid replaces the grid used by later commands.
func (t *Tiler) SetGrid(g tiling.Grid) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grid = g
}

// SetAutoTiler switches between auto-tiling (non-nil) and manual mode.
func (t *Tiler) SetAutoTiler(a AutoTiler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.auto = a
}

// Active reports whether a session is in progress.
func (t *Tiler) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.window != 0
}

// Window returns the window being tiled, or zero.
func (t *Tiler) Window() platform.WindowID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.window
}

// Status returns a snapshot of the session.
func (t *Tiler) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{
		Active:     t.window != 0,
		Session:    t.session,
		Window:     t.window,
		SwapWindow: t.swapWindow,
		Overlay:    t.overlay,
		Visible:    t.visible,
		AutoTile:   t.auto != nil,
	}
}

// Enter starts a session for the focused window. It does nothing when a
// session is already active or nothing is focused.
func (t *Tiler) Enter() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.window != 0 {
		return
	}
	win, ok := t.registry.Focused()
	if !ok {
		return
	}

	t.window = win.ID
	t.session = uuid.NewString()

	if win.IsMaximized() {
		win.Unmaximize()
	}

	t.overlay = win.Rect()
	t.visible = true

	if t.auto == nil {
		t.rectByActiveArea(func(monitor, cell tiling.Rect) {
			t.change(monitor, cell, tiling.Rect{})
		})
	}
	t.render()

	t.keys.Disable(t.focusBindings)
	t.keys.Enable(t.bindings)
	log.Printf("Tiler: session %s started for window %d", t.session, t.window)
}

// Accept applies the preview: a pending swap partner takes the active
// window's pose, the active window moves to the overlay and is tagged as
// tiled. The session then ends.
func (t *Tiler) Accept() {
	t.mu.Lock()
	if t.window != 0 {
		if meta, ok := t.registry.Get(t.window); ok {
			if t.swapWindow != 0 {
				if swap, ok := t.registry.Get(t.swapWindow); ok {
					if t.auto != nil {
						t.auto.AttachSwap(t.swapWindow, t.window)
					}
					swap.Move(meta.Rect())
					t.swapWindow = 0
				}
			}

			meta.Move(t.overlay)
			t.registry.AddTag(t.window, windows.Tiled)
			log.Printf("Tiler: session %s accepted at %s", t.session, t.overlay)
		}
	}
	t.mu.Unlock()

	t.Exit()
}

// Exit ends the session without moving anything.
func (t *Tiler) Exit() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.window == 0 {
		return
	}
	log.Printf("Tiler: session %s ended", t.session)

	t.window = 0
	t.swapWindow = 0
	t.session = ""
	t.visible = false
	t.resync.Cancel()
	t.render()

	t.keys.Disable(t.bindings)
	t.keys.Enable(t.focusBindings)
}

// Move shifts the overlay one cell in dir, or in auto-tiling mode moves the
// window next to its neighbor in dir (or onto the neighboring monitor).
func (t *Tiler) Move(dir tiling.Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.window == 0 {
		return
	}
	if t.auto != nil {
		t.moveAuto(t.moveTarget(dir))
		return
	}

	t.swapWindow = 0
	dx, dy := dir.Step()
	t.rectByActiveArea(func(monitor, cell tiling.Rect) {
		t.change(monitor, cell, tiling.Rect{X: dx, Y: dy})
	})
	t.render()
}

// Resize grows or shrinks the overlay one cell: Right and Down grow, Left
// and Up shrink. In auto-tiling mode the forest is resized instead.
func (t *Tiler) Resize(dir tiling.Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.window == 0 {
		return
	}
	if t.auto != nil {
		t.resizeAuto(dir)
		return
	}

	var delta tiling.Rect
	switch dir {
	case tiling.Down:
		delta.Height = 1
	case tiling.Left:
		delta.Width = -1
	case tiling.Up:
		delta.Height = -1
	default:
		delta.Width = 1
	}

	t.swapWindow = 0
	t.rectByActiveArea(func(monitor, cell tiling.Rect) {
		t.change(monitor, cell, delta)
	})
	t.render()
}

// Swap selects the neighbor in dir as the swap partner and previews its
// pose. Repeated swaps walk outward from the current partner.
func (t *Tiler) Swap(dir tiling.Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.window == 0 {
		return
	}

	var from *windows.Window
	if t.swapWindow != 0 {
		w, ok := t.registry.Get(t.swapWindow)
		if !ok {
			return
		}
		from = w
	}

	candidate, ok := t.selector.Select(dir, from)
	if !ok {
		return
	}

	t.setOverlay(candidate.Rect())
	if candidate.ID == t.window {
		t.swapWindow = 0
		return
	}
	t.swapWindow = candidate.ID
}

// ToggleOrientation flips the orientation of the auto-tiling fork holding
// the session window.
func (t *Tiler) ToggleOrientation() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.auto == nil || t.window == 0 {
		return
	}
	win, ok := t.registry.Get(t.window)
	if !ok {
		return
	}
	t.auto.ToggleOrientation()
	t.setOverlay(win.Rect())
}

// Snap aligns a window to the grid of its monitor, outside of any session.
func (t *Tiler) Snap(win *windows.Window) {
	t.mu.Lock()
	defer t.mu.Unlock()

	monitor, ok := t.registry.MonitorOf(win)
	if !ok {
		return
	}
	area, ok := t.registry.WorkArea(monitor)
	if !ok {
		return
	}

	rect := win.Rect()
	if changed, ok := t.grid.Change(rect, area, t.grid.Cell(area), tiling.Rect{}, t.registry.WorkAreas()); ok {
		rect = changed
	}

	win.Move(rect)
	t.registry.MarkSnapped(win.ID)
}

// cell returns the grid cell for monitor while the overlay is visible.
func (t *Tiler) cell(monitor tiling.Rect) (tiling.Rect, bool) {
	if !t.visible {
		return tiling.Rect{}, false
	}
	return t.grid.Cell(monitor), true
}

// rectByActiveArea calls fn with the work area and grid cell of the session
// window's monitor.
func (t *Tiler) rectByActiveArea(fn func(monitor, cell tiling.Rect)) {
	if t.window == 0 {
		return
	}
	win, ok := t.registry.Get(t.window)
	if !ok {
		return
	}
	index, ok := t.registry.MonitorOf(win)
	if !ok {
		return
	}
	monitor, ok := t.registry.WorkArea(index)
	if !ok {
		return
	}
	if cell, ok := t.cell(monitor); ok {
		fn(monitor, cell)
	}
}

// change applies delta to the overlay, then re-snaps in place so the result
// is stable under another zero change.
func (t *Tiler) change(monitor, cell, delta tiling.Rect) {
	areas := t.registry.WorkAreas()
	if r, ok := t.grid.Change(t.overlay, monitor, cell, delta, areas); ok {
		t.overlay = r
	}
	if delta != (tiling.Rect{}) {
		if r, ok := t.grid.Change(t.overlay, monitor, cell, tiling.Rect{}, areas); ok {
			t.overlay = r
		}
	}
}

func (t *Tiler) setOverlay(r tiling.Rect) {
	t.overlay = r
	t.render()
}

func (t *Tiler) render() {
	if t.view == nil {
		return
	}
	if t.visible {
		t.view.Show(t.overlay)
		return
	}
	t.view.Hide()
}
