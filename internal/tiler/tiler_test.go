package tiler

import (
	"testing"

	"github.com/1broseidon/snaptile/internal/hotkeys"
	"github.com/1broseidon/snaptile/internal/idle"
	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/platform/platformtest"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/1broseidon/snaptile/internal/windows"
)

type fakeKeys struct {
	enabled map[string]bool
}

func newFakeKeys() *fakeKeys { return &fakeKeys{enabled: make(map[string]bool)} }

func (k *fakeKeys) Enable(b hotkeys.Bindings) {
	for name := range b {
		k.enabled[name] = true
	}
}

func (k *fakeKeys) Disable(b hotkeys.Bindings) {
	for name := range b {
		delete(k.enabled, name)
	}
}

type fakeView struct {
	shown   bool
	rect    tiling.Rect
	renders int
}

func (v *fakeView) Show(r tiling.Rect) {
	v.shown, v.rect = true, r
	v.renders++
}

func (v *fakeView) Hide() {
	v.shown = false
	v.renders++
}

type fixture struct {
	backend  *platformtest.Backend
	registry *windows.Registry
	keys     *fakeKeys
	view     *fakeView
	loop     *idle.Loop
	tiler    *Tiler
}

var testGrid = tiling.Grid{
	ColumnSize: 64,
	RowSize:    64,
	Gaps:       tiling.Gaps{Inner: 4, InnerHalf: 2, Outer: 8},
}

func newFixture(monitors ...tiling.Rect) *fixture {
	if len(monitors) == 0 {
		monitors = []tiling.Rect{{X: 0, Y: 0, Width: 1280, Height: 1024}}
	}
	f := &fixture{
		backend: platformtest.New(monitors...),
		keys:    newFakeKeys(),
		view:    &fakeView{},
		loop:    idle.NewLoop(),
	}
	f.registry = windows.NewRegistry(f.backend)
	f.tiler = New(Options{
		Grid:          testGrid,
		Registry:      f.registry,
		Selector:      windows.NewSelector(f.registry),
		Keys:          f.keys,
		FocusBindings: hotkeys.Bindings{"focus-left": func() {}},
		View:          f.view,
		Loop:          f.loop,
	})
	f.keys.Enable(hotkeys.Bindings{"focus-left": nil})
	return f
}

func (f *fixture) focus(id platform.WindowID, r tiling.Rect) {
	f.backend.AddWindow(id, r)
	f.backend.SetActive(id)
}

func TestEnter_NoFocusedWindow(t *testing.T) {
	f := newFixture()
	f.tiler.Enter()
	if f.tiler.Active() {
		t.Fatalf("expected no session without a focused window")
	}
	if f.view.renders != 0 {
		t.Fatalf("expected overlay untouched, got %d renders", f.view.renders)
	}
}

func TestEnter_SnapsOverlayAndSwapsBindings(t *testing.T) {
	f := newFixture()
	f.focus(1, tiling.Rect{X: 100, Y: 90, Width: 300, Height: 200})

	f.tiler.Enter()

	st := f.tiler.Status()
	if !st.Active || st.Window != 1 || st.Session == "" {
		t.Fatalf("expected active session for window 1, got %+v", st)
	}
	want := tiling.Rect{X: 130, Y: 66, Width: 316, Height: 188}
	if st.Overlay != want {
		t.Fatalf("expected overlay %s, got %s", want, st.Overlay)
	}
	if !f.view.shown || f.view.rect != want {
		t.Fatalf("expected overlay rendered at %s, got shown=%v %s", want, f.view.shown, f.view.rect)
	}
	if f.keys.enabled["focus-left"] {
		t.Fatalf("expected focus bindings disabled during session")
	}
	if !f.keys.enabled["tile-accept"] || !f.keys.enabled["tile-move-left"] {
		t.Fatalf("expected tiling bindings enabled, got %v", f.keys.enabled)
	}
}

func TestEnter_IgnoredWhileActive(t *testing.T) {
	f := newFixture()
	f.focus(1, tiling.Rect{X: 100, Y: 90, Width: 300, Height: 200})
	f.tiler.Enter()
	session := f.tiler.Status().Session

	f.focus(2, tiling.Rect{X: 700, Y: 90, Width: 300, Height: 200})
	f.tiler.Enter()

	st := f.tiler.Status()
	if st.Window != 1 || st.Session != session {
		t.Fatalf("expected original session to continue, got %+v", st)
	}
}

func TestEnter_UnmaximizesWindow(t *testing.T) {
	f := newFixture()
	w := f.backend.AddWindow(1, tiling.Rect{X: 0, Y: 0, Width: 1280, Height: 1024})
	w.Maximized = true
	f.backend.SetActive(1)

	f.tiler.Enter()

	state, _ := f.backend.Window(1)
	if state.Maximized {
		t.Fatalf("expected window to be unmaximized on enter")
	}
}

func TestMove_ShiftsOverlayOneCell(t *testing.T) {
	f := newFixture()
	f.focus(1, tiling.Rect{X: 100, Y: 90, Width: 300, Height: 200})
	f.tiler.Enter()
	start := f.tiler.Status().Overlay

	f.tiler.Move(tiling.Right)
	got := f.tiler.Status().Overlay
	if got.X != start.X+64 || got.Y != start.Y || got.Width != start.Width {
		t.Fatalf("expected overlay moved right by 64 from %s, got %s", start, got)
	}

	f.tiler.Move(tiling.Down)
	got = f.tiler.Status().Overlay
	if got.Y != start.Y+64 {
		t.Fatalf("expected overlay moved down by 64, got %s", got)
	}
	if len(f.backend.Moves()) != 0 {
		t.Fatalf("expected no window moves before accept")
	}
}

func TestMove_StopsAtMonitorEdge(t *testing.T) {
	f := newFixture()
	f.focus(1, tiling.Rect{X: 1216, Y: 0, Width: 64, Height: 64})
	f.tiler.Enter()
	start := f.tiler.Status().Overlay

	f.tiler.Move(tiling.Right)
	f.tiler.Move(tiling.Up)
	if got := f.tiler.Status().Overlay; got != start {
		t.Fatalf("expected overlay to stay at %s, got %s", start, got)
	}
}

func TestResize_GrowsAndShrinks(t *testing.T) {
	f := newFixture()
	f.focus(1, tiling.Rect{X: 100, Y: 90, Width: 300, Height: 200})
	f.tiler.Enter()
	start := f.tiler.Status().Overlay

	f.tiler.Resize(tiling.Right)
	if got := f.tiler.Status().Overlay; got.Width != start.Width+64 || got.X != start.X {
		t.Fatalf("expected width +64 from %s, got %s", start, got)
	}
	f.tiler.Resize(tiling.Down)
	if got := f.tiler.Status().Overlay; got.Height != start.Height+64 {
		t.Fatalf("expected height +64 from %s, got %s", start, got)
	}
	f.tiler.Resize(tiling.Left)
	f.tiler.Resize(tiling.Up)
	if got := f.tiler.Status().Overlay; got != start {
		t.Fatalf("expected overlay back at %s, got %s", start, got)
	}
}

func TestResize_NeverBelowOneCell(t *testing.T) {
	f := newFixture()
	f.focus(1, tiling.Rect{X: 256, Y: 256, Width: 64, Height: 64})
	f.tiler.Enter()
	start := f.tiler.Status().Overlay

	for i := 0; i < 3; i++ {
		f.tiler.Resize(tiling.Left)
		f.tiler.Resize(tiling.Up)
	}
	if got := f.tiler.Status().Overlay; got != start {
		t.Fatalf("expected single cell %s to be kept, got %s", start, got)
	}
}

func TestAccept_MovesWindowAndTags(t *testing.T) {
	f := newFixture()
	f.focus(1, tiling.Rect{X: 100, Y: 90, Width: 300, Height: 200})
	f.tiler.Enter()
	f.tiler.Move(tiling.Right)
	overlay := f.tiler.Status().Overlay

	f.tiler.Accept()

	state, _ := f.backend.Window(1)
	if state.Bounds != overlay {
		t.Fatalf("expected window at %s, got %s", overlay, state.Bounds)
	}
	if !f.registry.HasTag(1, windows.Tiled) {
		t.Fatalf("expected window to be tagged tiled")
	}
	if f.tiler.Active() || f.view.shown {
		t.Fatalf("expected session ended and overlay hidden")
	}
	if !f.keys.enabled["focus-left"] || f.keys.enabled["tile-accept"] {
		t.Fatalf("expected focus bindings restored, got %v", f.keys.enabled)
	}
}

func TestExit_LeavesWindowInPlace(t *testing.T) {
	f := newFixture()
	original := tiling.Rect{X: 100, Y: 90, Width: 300, Height: 200}
	f.focus(1, original)
	f.tiler.Enter()
	f.tiler.Move(tiling.Right)

	f.tiler.Exit()

	if len(f.backend.Moves()) != 0 {
		t.Fatalf("expected no moves on exit, got %v", f.backend.Moves())
	}
	if f.tiler.Active() || f.view.shown {
		t.Fatalf("expected session ended and overlay hidden")
	}
	if f.registry.HasTag(1, windows.Tiled) {
		t.Fatalf("expected no tag after exit")
	}
}

func TestCommandsWhileIdleAreNoOps(t *testing.T) {
	f := newFixture()
	f.focus(1, tiling.Rect{X: 100, Y: 90, Width: 300, Height: 200})

	f.tiler.Move(tiling.Right)
	f.tiler.Resize(tiling.Down)
	f.tiler.Swap(tiling.Left)
	f.tiler.Accept()
	f.tiler.Exit()

	if f.view.renders != 0 || len(f.backend.Moves()) != 0 {
		t.Fatalf("expected no effect while idle")
	}
	if !f.keys.enabled["focus-left"] {
		t.Fatalf("expected focus bindings untouched")
	}
}

func TestSwap_PreviewAndAccept(t *testing.T) {
	f := newFixture()
	left := tiling.Rect{X: 8, Y: 8, Width: 622, Height: 1008}
	right := tiling.Rect{X: 650, Y: 8, Width: 622, Height: 1008}
	f.backend.AddWindow(2, right)
	f.focus(1, left)

	f.tiler.Enter()
	f.tiler.Swap(tiling.Right)

	st := f.tiler.Status()
	if st.SwapWindow != 2 || st.Overlay != right {
		t.Fatalf("expected swap with 2 previewed at %s, got %+v", right, st)
	}

	f.tiler.Accept()

	w1, _ := f.backend.Window(1)
	w2, _ := f.backend.Window(2)
	if w1.Bounds != right || w2.Bounds != left {
		t.Fatalf("expected windows swapped, got 1=%s 2=%s", w1.Bounds, w2.Bounds)
	}
}

func TestSwap_WalksFromPartner(t *testing.T) {
	f := newFixture()
	f.backend.AddWindow(2, tiling.Rect{X: 400, Y: 0, Width: 300, Height: 300})
	f.backend.AddWindow(3, tiling.Rect{X: 800, Y: 0, Width: 300, Height: 300})
	f.focus(1, tiling.Rect{X: 0, Y: 0, Width: 300, Height: 300})

	f.tiler.Enter()
	f.tiler.Swap(tiling.Right)
	f.tiler.Swap(tiling.Right)
	if got := f.tiler.Status().SwapWindow; got != 3 {
		t.Fatalf("expected swap partner 3, got %d", got)
	}

	f.tiler.Swap(tiling.Left)
	f.tiler.Swap(tiling.Left)
	if got := f.tiler.Status().SwapWindow; got != 0 {
		t.Fatalf("expected walking back to the session window to clear the partner, got %d", got)
	}
}

func TestMove_ClearsSwapPartner(t *testing.T) {
	f := newFixture()
	f.backend.AddWindow(2, tiling.Rect{X: 650, Y: 8, Width: 622, Height: 1008})
	f.focus(1, tiling.Rect{X: 8, Y: 8, Width: 622, Height: 1008})

	f.tiler.Enter()
	f.tiler.Swap(tiling.Right)
	f.tiler.Move(tiling.Down)
	if got := f.tiler.Status().SwapWindow; got != 0 {
		t.Fatalf("expected move to clear swap partner, got %d", got)
	}
}

func TestSnap_AlignsWindowToGrid(t *testing.T) {
	f := newFixture()
	f.backend.AddWindow(1, tiling.Rect{X: 100, Y: 90, Width: 300, Height: 200})
	w, _ := f.registry.Get(1)

	f.tiler.Snap(w)

	state, _ := f.backend.Window(1)
	want := tiling.Rect{X: 130, Y: 66, Width: 316, Height: 188}
	if state.Bounds != want {
		t.Fatalf("expected snapped bounds %s, got %s", want, state.Bounds)
	}
	if !f.registry.IsSnapped(1) {
		t.Fatalf("expected window recorded as snapped")
	}
	if f.tiler.Active() {
		t.Fatalf("expected snap to leave the tiler idle")
	}
}

func TestBindings_CoverSessionCommands(t *testing.T) {
	f := newFixture()
	names := []string{
		"management-orientation",
		"tile-move-left", "tile-move-down", "tile-move-up", "tile-move-right",
		"tile-resize-left", "tile-resize-down", "tile-resize-up", "tile-resize-right",
		"tile-swap-left", "tile-swap-down", "tile-swap-up", "tile-swap-right",
		"tile-accept", "tile-reject",
	}
	b := f.tiler.Bindings()
	for _, name := range names {
		if b[name] == nil {
			t.Fatalf("expected binding %q", name)
		}
	}
	if len(b) != len(names) {
		t.Fatalf("expected %d bindings, got %d", len(names), len(b))
	}
}
