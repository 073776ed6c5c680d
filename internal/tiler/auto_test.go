package tiler

import (
	"testing"

	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/1broseidon/snaptile/internal/windows"
)

type fakeFork struct {
	area      tiling.Rect
	workspace int
	swaps     int
}

func (f *fakeFork) Area() tiling.Rect { return f.area }
func (f *fakeFork) Workspace() int    { return f.workspace }
func (f *fakeFork) SwapBranches()     { f.swaps++ }

type resizeCall struct {
	fork     ForkID
	window   platform.WindowID
	movement Movement
	crect    tiling.Rect
}

type attachCall struct {
	attachee platform.WindowID
	attacher platform.WindowID
	cursor   tiling.Rect
}

type fakeAuto struct {
	forks    map[ForkID]*fakeFork
	attached map[platform.WindowID]ForkID
	toplevel ForkID
	siblings map[[2]platform.WindowID]ForkID

	resizes  []resizeCall
	arranged []int
	tiled    []tiling.Rect
	detached []platform.WindowID
	attaches []attachCall
	monitors map[platform.WindowID]windows.WorkspaceID
	swaps    [][2]platform.WindowID
	toggles  int
}

func newFakeAuto() *fakeAuto {
	return &fakeAuto{
		forks:    make(map[ForkID]*fakeFork),
		attached: make(map[platform.WindowID]ForkID),
		siblings: make(map[[2]platform.WindowID]ForkID),
		monitors: make(map[platform.WindowID]windows.WorkspaceID),
	}
}

func (a *fakeAuto) AttachedFork(win platform.WindowID) (ForkID, bool) {
	id, ok := a.attached[win]
	return id, ok
}

func (a *fakeAuto) Fork(id ForkID) (Fork, bool) {
	f, ok := a.forks[id]
	if !ok {
		return nil, false
	}
	return f, true
}

func (a *fakeAuto) FindToplevel(windows.WorkspaceID) (ForkID, bool) {
	_, ok := a.forks[a.toplevel]
	return a.toplevel, ok
}

func (a *fakeAuto) Resize(id ForkID, _ Fork, win platform.WindowID, movement Movement, crect tiling.Rect) {
	a.resizes = append(a.resizes, resizeCall{fork: id, window: win, movement: movement, crect: crect})
}

func (a *fakeAuto) Arrange(workspace int) { a.arranged = append(a.arranged, workspace) }

func (a *fakeAuto) WindowsAreSiblings(x, y platform.WindowID) (ForkID, bool) {
	id, ok := a.siblings[[2]platform.WindowID{x, y}]
	return id, ok
}

func (a *fakeAuto) Tile(_ Fork, area tiling.Rect) { a.tiled = append(a.tiled, area) }

func (a *fakeAuto) DetachWindow(win platform.WindowID) { a.detached = append(a.detached, win) }

func (a *fakeAuto) AttachToWindow(attachee, attacher platform.WindowID, cursor tiling.Rect) {
	a.attaches = append(a.attaches, attachCall{attachee: attachee, attacher: attacher, cursor: cursor})
}

func (a *fakeAuto) AttachToMonitor(win platform.WindowID, ws windows.WorkspaceID) {
	a.monitors[win] = ws
}

func (a *fakeAuto) AttachSwap(x, y platform.WindowID) {
	a.swaps = append(a.swaps, [2]platform.WindowID{x, y})
}

func (a *fakeAuto) ToggleOrientation() { a.toggles++ }

var (
	leftHalf  = tiling.Rect{X: 0, Y: 0, Width: 640, Height: 1024}
	rightHalf = tiling.Rect{X: 640, Y: 0, Width: 640, Height: 1024}
	screen    = tiling.Rect{X: 0, Y: 0, Width: 1280, Height: 1024}
)

func newAutoFixture(monitors ...tiling.Rect) (*fixture, *fakeAuto) {
	f := newFixture(monitors...)
	auto := newFakeAuto()
	f.tiler.SetAutoTiler(auto)
	return f, auto
}

func TestAutoEnter_KeepsWindowPose(t *testing.T) {
	f, _ := newAutoFixture()
	f.focus(1, leftHalf)

	f.tiler.Enter()

	st := f.tiler.Status()
	if !st.AutoTile {
		t.Fatalf("expected auto-tile status")
	}
	if st.Overlay != leftHalf {
		t.Fatalf("expected overlay %s without snapping, got %s", leftHalf, st.Overlay)
	}
}

func TestAutoMove_SwapsSiblingBranches(t *testing.T) {
	f, auto := newAutoFixture()
	f.backend.AddWindow(2, rightHalf)
	f.focus(1, leftHalf)
	fork := &fakeFork{area: screen}
	auto.forks[5] = fork
	auto.siblings[[2]platform.WindowID{1, 2}] = 5

	f.tiler.Enter()
	f.tiler.Move(tiling.Right)

	if fork.swaps != 1 {
		t.Fatalf("expected branches swapped once, got %d", fork.swaps)
	}
	if len(auto.tiled) != 1 || auto.tiled[0] != screen {
		t.Fatalf("expected fork retiled in %s, got %v", screen, auto.tiled)
	}
	if len(auto.detached) != 0 {
		t.Fatalf("expected no detach for siblings, got %v", auto.detached)
	}
}

func TestAutoMove_AttachesToNeighbor(t *testing.T) {
	f, auto := newAutoFixture()
	f.backend.AddWindow(2, rightHalf)
	f.focus(1, leftHalf)
	f.backend.SetPointer(900, 500)

	f.tiler.Enter()
	f.tiler.Move(tiling.Right)

	if len(auto.detached) != 1 || auto.detached[0] != 1 {
		t.Fatalf("expected window 1 detached, got %v", auto.detached)
	}
	want := attachCall{attachee: 2, attacher: 1, cursor: tiling.Rect{X: 900, Y: 500, Width: 1, Height: 1}}
	if len(auto.attaches) != 1 || auto.attaches[0] != want {
		t.Fatalf("expected %+v, got %+v", want, auto.attaches)
	}
}

func TestAutoMove_FallsBackToNeighborMonitor(t *testing.T) {
	f, auto := newAutoFixture(screen, tiling.Rect{X: 1280, Y: 0, Width: 1280, Height: 1024})
	f.focus(1, leftHalf)

	f.tiler.Enter()
	f.tiler.Move(tiling.Right)

	ws, ok := auto.monitors[1]
	if !ok {
		t.Fatalf("expected window attached to a monitor")
	}
	if ws.Monitor != 1 || ws.Workspace != 0 {
		t.Fatalf("expected monitor 1 workspace 0, got %+v", ws)
	}
	if len(auto.detached) != 1 {
		t.Fatalf("expected window detached first, got %v", auto.detached)
	}
}

func TestAutoMove_NoTarget(t *testing.T) {
	f, auto := newAutoFixture()
	f.focus(1, leftHalf)

	f.tiler.Enter()
	f.tiler.Move(tiling.Left)

	if len(auto.detached) != 0 || len(auto.monitors) != 0 {
		t.Fatalf("expected nothing to happen at the layout edge")
	}
}

func newResizeFixture(t *testing.T, win tiling.Rect) (*fixture, *fakeAuto) {
	t.Helper()
	f, auto := newAutoFixture()
	f.focus(1, win)
	auto.forks[1] = &fakeFork{area: screen}
	auto.forks[3] = &fakeFork{area: screen}
	auto.toplevel = 1
	auto.attached[1] = 3
	f.tiler.Enter()
	return f, auto
}

func TestAutoResize_GrowsRightInTwoPhases(t *testing.T) {
	f, auto := newResizeFixture(t, leftHalf)

	f.tiler.Resize(tiling.Right)

	want := tiling.Rect{X: 0, Y: 0, Width: 704, Height: 1024}
	if len(auto.resizes) != 2 {
		t.Fatalf("expected 2 resize phases, got %d", len(auto.resizes))
	}
	for i, call := range auto.resizes {
		if call.fork != 3 || call.window != 1 {
			t.Fatalf("phase %d: expected fork 3 window 1, got %+v", i, call)
		}
		if call.crect != want || call.movement != Grow|MoveRight {
			t.Fatalf("phase %d: expected %s grow|right, got %s %s", i, want, call.crect, call.movement)
		}
	}
	if len(auto.arranged) != 1 || auto.arranged[0] != 0 {
		t.Fatalf("expected workspace 0 arranged, got %v", auto.arranged)
	}
}

func TestAutoResize_ShrinksLeft(t *testing.T) {
	f, auto := newResizeFixture(t, rightHalf)

	f.tiler.Resize(tiling.Left)

	if len(auto.resizes) != 2 {
		t.Fatalf("expected 2 resize phases, got %d", len(auto.resizes))
	}
	first := auto.resizes[0]
	if first.crect != (tiling.Rect{X: 640, Y: 0, Width: 576, Height: 1024}) || first.movement != Shrink|MoveLeft {
		t.Fatalf("expected right edge pulled in, got %s %s", first.crect, first.movement)
	}
	second := auto.resizes[1]
	if second.crect != (tiling.Rect{X: 704, Y: 0, Width: 576, Height: 1024}) || second.movement != Shrink|MoveRight {
		t.Fatalf("expected left edge pushed in, got %s %s", second.crect, second.movement)
	}
}

func TestAutoResize_ResyncsOverlayWhenIdle(t *testing.T) {
	f, _ := newResizeFixture(t, leftHalf)

	f.tiler.Resize(tiling.Right)
	resized := tiling.Rect{X: 0, Y: 0, Width: 704, Height: 1024}
	if err := f.backend.MoveResize(1, resized); err != nil {
		t.Fatalf("move: %v", err)
	}
	if got := f.tiler.Status().Overlay; got != leftHalf {
		t.Fatalf("expected overlay unchanged before dispatch, got %s", got)
	}

	f.loop.Dispatch()

	if got := f.tiler.Status().Overlay; got != resized {
		t.Fatalf("expected overlay resynced to %s, got %s", resized, got)
	}
}

func TestAutoResize_ExitCancelsResync(t *testing.T) {
	f, _ := newResizeFixture(t, leftHalf)

	f.tiler.Resize(tiling.Right)
	f.tiler.Exit()
	renders := f.view.renders

	f.loop.Dispatch()

	if f.view.renders != renders {
		t.Fatalf("expected no render after exit, got %d more", f.view.renders-renders)
	}
}

func TestAutoResize_UnattachedWindow(t *testing.T) {
	f, auto := newAutoFixture()
	f.focus(1, leftHalf)
	f.tiler.Enter()

	f.tiler.Resize(tiling.Right)

	if len(auto.resizes) != 0 || len(auto.arranged) != 0 {
		t.Fatalf("expected no resize for a window outside the tree")
	}
	if f.loop.Pending() != 0 {
		t.Fatalf("expected no resync scheduled, got %d", f.loop.Pending())
	}
}

func TestAutoAccept_AttachesSwap(t *testing.T) {
	f, auto := newAutoFixture()
	f.backend.AddWindow(2, rightHalf)
	f.focus(1, leftHalf)

	f.tiler.Enter()
	f.tiler.Swap(tiling.Right)
	f.tiler.Accept()

	if len(auto.swaps) != 1 || auto.swaps[0] != [2]platform.WindowID{2, 1} {
		t.Fatalf("expected swap of 2 and 1 attached, got %v", auto.swaps)
	}
}

func TestToggleOrientation(t *testing.T) {
	f, auto := newAutoFixture()
	f.focus(1, leftHalf)

	f.tiler.ToggleOrientation()
	if auto.toggles != 0 {
		t.Fatalf("expected toggle ignored while idle")
	}

	f.tiler.Enter()
	f.tiler.ToggleOrientation()
	if auto.toggles != 1 {
		t.Fatalf("expected one toggle, got %d", auto.toggles)
	}

	f.tiler.SetAutoTiler(nil)
	f.tiler.ToggleOrientation()
	if auto.toggles != 1 {
		t.Fatalf("expected toggle ignored in manual mode")
	}
}
