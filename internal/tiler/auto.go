package tiler

import (
	"log"

	"github.com/1broseidon/snaptile/internal/idle"
	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/1broseidon/snaptile/internal/windows"
)

// autoResizeStep is the distance in pixels of one auto-tiling resize step.
const autoResizeStep = 64

// ForkID identifies a fork in the auto-tiling forest.
type ForkID uint64

// Fork is a node of the auto-tiling tree joining two branches.
type Fork interface {
	Area() tiling.Rect
	Workspace() int
	// SwapBranches exchanges the left and right branches.
	SwapBranches()
}

// AutoTiler is the binary-tree tiling forest that owns window placement
// when auto-tiling is on.
type AutoTiler interface {
	// AttachedFork returns the fork a window is attached to.
	AttachedFork(win platform.WindowID) (ForkID, bool)
	Fork(id ForkID) (Fork, bool)
	// FindToplevel returns the root fork of a workspace.
	FindToplevel(ws windows.WorkspaceID) (ForkID, bool)
	Resize(id ForkID, fork Fork, win platform.WindowID, movement Movement, crect tiling.Rect)
	Arrange(workspace int)
	// WindowsAreSiblings returns the fork two windows share as direct
	// children.
	WindowsAreSiblings(a, b platform.WindowID) (ForkID, bool)
	Tile(fork Fork, area tiling.Rect)
	DetachWindow(win platform.WindowID)
	AttachToWindow(attachee, attacher platform.WindowID, cursor tiling.Rect)
	AttachToMonitor(win platform.WindowID, ws windows.WorkspaceID)
	AttachSwap(a, b platform.WindowID)
	ToggleOrientation()
}

// target is where an auto-tiling move goes: a neighbor window, or a
// monitor index when window is nil.
type target struct {
	window  *windows.Window
	monitor int
}

// moveTarget resolves the neighbor window in dir, falling back to the
// neighboring monitor.
func (t *Tiler) moveTarget(dir tiling.Direction) (target, bool) {
	if w, ok := t.selector.Select(dir, nil); ok {
		return target{window: w}, true
	}
	monitor, ok := tiling.LocateMonitor(t.registry.MonitorBounds(), t.registry.ActiveMonitor(), dir)
	if !ok {
		return target{}, false
	}
	return target{monitor: monitor}, true
}

func (t *Tiler) moveAuto(to target, ok bool) {
	if !ok || t.auto == nil {
		return
	}
	focused, ok := t.registry.Focused()
	if !ok {
		return
	}

	if to.window != nil {
		if parent, ok := t.auto.WindowsAreSiblings(focused.ID, to.window.ID); ok {
			if fork, ok := t.auto.Fork(parent); ok {
				fork.SwapBranches()
				t.auto.Tile(fork, fork.Area())
				t.setOverlay(focused.Rect())
				return
			}
		}

		t.auto.DetachWindow(focused.ID)
		t.auto.AttachToWindow(to.window.ID, focused.ID, t.registry.CursorRect())
		t.setOverlay(focused.Rect())
		return
	}

	log.Printf("attach to monitor %d", to.monitor)
	t.auto.DetachWindow(focused.ID)
	t.auto.AttachToMonitor(focused.ID, windows.WorkspaceID{
		Monitor:   to.monitor,
		Workspace: t.registry.ActiveWorkspace(),
	})
}

// resizeStep adjusts a candidate rectangle within the monitor work area.
type resizeStep func(workArea tiling.Rect, crect *tiling.Rect)

// resizeAuto resizes the session window's fork in two phases: first the
// edge facing dir, then the opposite edge.
func (t *Tiler) resizeAuto(dir tiling.Direction) {
	const h = autoResizeStep

	var mov1, mov2 tiling.Rect
	switch dir {
	case tiling.Left:
		mov1 = tiling.Rect{Width: -h}
		mov2 = tiling.Rect{X: h, Width: -h}
	case tiling.Right:
		mov1 = tiling.Rect{X: -h, Width: h}
		mov2 = tiling.Rect{Width: h}
	case tiling.Up:
		mov1 = tiling.Rect{Height: -h}
		mov2 = tiling.Rect{Y: h, Height: -h}
	default:
		mov1 = tiling.Rect{Y: -h, Height: h}
		mov2 = tiling.Rect{Height: h}
	}

	t.resizeAutoPhases(applyWithin(mov1), applyWithin(mov2))
}

// applyWithin applies mov; when the result starts before the work area the
// overshoot is added back to the size.
func applyWithin(mov tiling.Rect) resizeStep {
	return func(workArea tiling.Rect, crect *tiling.Rect) {
		*crect = crect.Apply(mov)
		if crect.X < workArea.X {
			crect.Width += workArea.X - crect.X
		}
		if crect.Y < workArea.Y {
			crect.Height += workArea.Y - crect.Y
		}
	}
}

func (t *Tiler) resizeAutoPhases(phases ...resizeStep) {
	if t.auto == nil || t.window == 0 {
		return
	}
	id := t.window

	forkID, ok := t.auto.AttachedFork(id)
	if !ok {
		return
	}
	fork, ok := t.auto.Fork(forkID)
	if !ok {
		return
	}
	win, ok := t.registry.Get(id)
	if !ok {
		return
	}
	ws, ok := t.registry.WorkspaceOf(win)
	if !ok {
		return
	}
	toplevel, ok := t.auto.FindToplevel(ws)
	if !ok {
		return
	}
	topfork, ok := t.auto.Fork(toplevel)
	if !ok {
		return
	}
	toparea := topfork.Area()
	workArea, _ := t.registry.WorkArea(ws.Monitor)

	before := win.Rect()
	for _, phase := range phases {
		op := GrabOp{Window: id, Rect: before}
		crect := op.Rect
		phase(workArea, &crect)
		crect = crect.ClampDiff(toparea)

		if crect == op.Rect {
			continue
		}
		t.auto.Resize(forkID, fork, id, op.Operation(crect), crect)
	}

	t.auto.Arrange(fork.Workspace())

	t.resync.Schedule(idle.PriorityDefault, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if w, ok := t.registry.Get(id); ok {
			t.setOverlay(w.Rect())
		}
	})
}
