package windows

import (
	"testing"

	"github.com/1broseidon/snaptile/internal/platform/platformtest"
	"github.com/1broseidon/snaptile/internal/tiling"
)

func twoMonitors() *platformtest.Backend {
	return platformtest.New(
		tiling.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
		tiling.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080},
	)
}

func TestRegistry_FocusedAndGet(t *testing.T) {
	b := twoMonitors()
	b.AddWindow(7, tiling.Rect{X: 10, Y: 10, Width: 100, Height: 100})
	r := NewRegistry(b)

	if _, ok := r.Focused(); ok {
		t.Fatalf("expected no focused window")
	}
	b.SetActive(7)
	w, ok := r.Focused()
	if !ok || w.ID != 7 {
		t.Fatalf("expected focused window 7, got %v", w)
	}
	if _, ok := r.Get(99); ok {
		t.Fatalf("expected unknown window to be missing")
	}
}

func TestRegistry_MonitorAndWorkspace(t *testing.T) {
	b := twoMonitors()
	b.AddWindow(1, tiling.Rect{X: 2000, Y: 100, Width: 400, Height: 300})
	b.SetUsable(1, tiling.Rect{X: 1920, Y: 32, Width: 1920, Height: 1048})
	r := NewRegistry(b)

	w, _ := r.Get(1)
	ws, ok := r.WorkspaceOf(w)
	if !ok {
		t.Fatalf("expected workspace for window")
	}
	if ws.Monitor != 1 || ws.Workspace != 0 {
		t.Fatalf("expected monitor 1 workspace 0, got %+v", ws)
	}
	area, ok := r.WorkArea(ws.Monitor)
	if !ok || area.Y != 32 {
		t.Fatalf("expected work area below the panel, got %s", area)
	}
	if _, ok := r.WorkArea(5); ok {
		t.Fatalf("expected no work area for unknown monitor")
	}
}

func TestRegistry_ActiveMonitorFallsBackToPointer(t *testing.T) {
	b := twoMonitors()
	b.SetPointer(3000, 500)
	r := NewRegistry(b)

	if got := r.ActiveMonitor(); got != 1 {
		t.Fatalf("expected pointer monitor 1, got %d", got)
	}
}

func TestRegistry_Tags(t *testing.T) {
	r := NewRegistry(twoMonitors())

	if r.HasTag(3, Tiled) {
		t.Fatalf("expected untagged window")
	}
	r.AddTag(3, Tiled)
	r.MarkSnapped(4)
	if !r.HasTag(3, Tiled) || !r.IsSnapped(4) {
		t.Fatalf("expected tag and snapped records")
	}
	if len(r.Known()) != 2 {
		t.Fatalf("expected 2 known windows, got %d", len(r.Known()))
	}
	r.Forget(3)
	r.Forget(4)
	if r.HasTag(3, Tiled) || r.IsSnapped(4) {
		t.Fatalf("expected records to be forgotten")
	}
}

func TestWindow_MoveAndUnmaximize(t *testing.T) {
	b := twoMonitors()
	fw := b.AddWindow(5, tiling.Rect{X: 0, Y: 0, Width: 1920, Height: 1080})
	fw.Maximized = true
	r := NewRegistry(b)

	w, _ := r.Get(5)
	if !w.IsMaximized() {
		t.Fatalf("expected maximized window")
	}
	w.Unmaximize()
	if w.IsMaximized() {
		t.Fatalf("expected window to be unmaximized")
	}
	target := tiling.Rect{X: 8, Y: 8, Width: 500, Height: 400}
	w.Move(target)
	if got := w.Rect(); got != target {
		t.Fatalf("expected %s, got %s", target, got)
	}
}
