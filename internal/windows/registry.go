// Package windows tracks the managed windows the tiler works with: their
// geometry, the monitor and workspace they live on, and the tags the tiler
// attaches to them.
package windows

import (
	"fmt"
	"log"
	"sync"

	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// Tag marks a window with the outcome of a tiling operation.
type Tag int

const (
	// Tiled is added when a tiling session places a window.
	Tiled Tag = iota
)

func (t Tag) String() string {
	switch t {
	case Tiled:
		return "tiled"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// WorkspaceID locates a window: monitor index and virtual desktop.
type WorkspaceID struct {
	Monitor   int
	Workspace int
}

// Window is a handle to a managed window.
type Window struct {
	ID      platform.WindowID
	backend platform.Backend
}

// Rect returns the window's frame rectangle, or the zero Rect if the window
// is gone.
func (w *Window) Rect() tiling.Rect {
	r, err := w.backend.WindowBounds(w.ID)
	if err != nil {
		log.Printf("Windows: failed to read bounds of %d: %v", w.ID, err)
		return tiling.Rect{}
	}
	return r
}

// IsMaximized reports whether the window is maximized.
func (w *Window) IsMaximized() bool {
	maximized, err := w.backend.IsMaximized(w.ID)
	return err == nil && maximized
}

// Unmaximize restores a maximized window.
func (w *Window) Unmaximize() {
	if err := w.backend.Unmaximize(w.ID); err != nil {
		log.Printf("Windows: failed to unmaximize %d: %v", w.ID, err)
	}
}

// Move places the window's frame at r.
func (w *Window) Move(r tiling.Rect) {
	if err := w.backend.MoveResize(w.ID, r); err != nil {
		log.Printf("Windows: failed to move %d to %s: %v", w.ID, r, err)
	}
}

// Registry resolves window handles and remembers per-window tags.
type Registry struct {
	backend platform.Backend

	mu      sync.Mutex
	tags    map[platform.WindowID]map[Tag]struct{}
	snapped map[platform.WindowID]struct{}
}

// NewRegistry creates a registry over backend.
func NewRegistry(backend platform.Backend) *Registry {
	return &Registry{
		backend: backend,
		tags:    make(map[platform.WindowID]map[Tag]struct{}),
		snapped: make(map[platform.WindowID]struct{}),
	}
}

// Backend returns the platform backend the registry wraps.
func (r *Registry) Backend() platform.Backend {
	return r.backend
}

// Get returns a handle for id if the window still exists.
func (r *Registry) Get(id platform.WindowID) (*Window, bool) {
	if id == 0 {
		return nil, false
	}
	if _, err := r.backend.WindowBounds(id); err != nil {
		return nil, false
	}
	return &Window{ID: id, backend: r.backend}, true
}

// Focused returns the focused window.
func (r *Registry) Focused() (*Window, bool) {
	id, err := r.backend.ActiveWindow()
	if err != nil {
		return nil, false
	}
	return r.Get(id)
}

// Focus activates w.
func (r *Registry) Focus(w *Window) {
	if err := r.backend.Focus(w.ID); err != nil {
		log.Printf("Windows: failed to focus %d: %v", w.ID, err)
	}
}

// List returns the windows on the current desktop.
func (r *Registry) List() []*Window {
	listed, err := r.backend.ListWindows()
	if err != nil {
		log.Printf("Windows: failed to list windows: %v", err)
		return nil
	}
	out := make([]*Window, 0, len(listed))
	for _, w := range listed {
		out = append(out, &Window{ID: w.ID, backend: r.backend})
	}
	return out
}

// Exists reports whether id is still a managed window.
func (r *Registry) Exists(id platform.WindowID) bool {
	_, ok := r.Get(id)
	return ok
}

func (r *Registry) displays() []platform.Display {
	displays, err := r.backend.Displays()
	if err != nil {
		log.Printf("Windows: failed to query displays: %v", err)
		return nil
	}
	return displays
}

// MonitorBounds returns the full bounds of every monitor, by index.
func (r *Registry) MonitorBounds() []tiling.Rect {
	displays := r.displays()
	out := make([]tiling.Rect, len(displays))
	for i, d := range displays {
		out[i] = d.Bounds
	}
	return out
}

// WorkAreas returns the work area of every monitor, by index.
func (r *Registry) WorkAreas() []tiling.Rect {
	displays := r.displays()
	out := make([]tiling.Rect, len(displays))
	for i, d := range displays {
		out[i] = d.Usable
	}
	return out
}

// WorkArea returns the work area of one monitor.
func (r *Registry) WorkArea(monitor int) (tiling.Rect, bool) {
	areas := r.WorkAreas()
	if monitor < 0 || monitor >= len(areas) {
		return tiling.Rect{}, false
	}
	return areas[monitor], true
}

// MonitorOf returns the index of the monitor holding w.
func (r *Registry) MonitorOf(w *Window) (int, bool) {
	rect, err := r.backend.WindowBounds(w.ID)
	if err != nil {
		return 0, false
	}
	return tiling.MonitorAt(r.MonitorBounds(), rect)
}

// ActiveMonitor returns the monitor of the focused window, falling back to
// the monitor under the pointer and then the first monitor.
func (r *Registry) ActiveMonitor() int {
	if w, ok := r.Focused(); ok {
		if m, ok := r.MonitorOf(w); ok {
			return m
		}
	}
	if x, y, err := r.backend.Pointer(); err == nil {
		for i, b := range r.MonitorBounds() {
			if b.ContainsPoint(x, y) {
				return i
			}
		}
	}
	return 0
}

// ActiveWorkspace returns the current virtual desktop.
func (r *Registry) ActiveWorkspace() int {
	desktop, err := r.backend.CurrentDesktop()
	if err != nil {
		return 0
	}
	return desktop
}

// WorkspaceOf returns the monitor and desktop of w. Windows shown on every
// desktop report the active one.
func (r *Registry) WorkspaceOf(w *Window) (WorkspaceID, bool) {
	monitor, ok := r.MonitorOf(w)
	if !ok {
		return WorkspaceID{}, false
	}
	desktop, err := r.backend.WindowDesktop(w.ID)
	if err != nil || desktop == platform.AllDesktops {
		desktop = r.ActiveWorkspace()
	}
	return WorkspaceID{Monitor: monitor, Workspace: desktop}, true
}

// CursorRect returns a 1x1 rectangle at the pointer.
func (r *Registry) CursorRect() tiling.Rect {
	x, y, err := r.backend.Pointer()
	if err != nil {
		return tiling.Rect{}
	}
	return tiling.Rect{X: x, Y: y, Width: 1, Height: 1}
}

// AddTag tags a window.
func (r *Registry) AddTag(id platform.WindowID, tag Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.tags[id]
	if !ok {
		set = make(map[Tag]struct{})
		r.tags[id] = set
	}
	set[tag] = struct{}{}
}

// HasTag reports whether a window carries tag.
func (r *Registry) HasTag(id platform.WindowID, tag Tag) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tags[id][tag]
	return ok
}

// MarkSnapped records that a window was snapped to the grid.
func (r *Registry) MarkSnapped(id platform.WindowID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapped[id] = struct{}{}
}

// IsSnapped reports whether a window was snapped to the grid.
func (r *Registry) IsSnapped(id platform.WindowID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.snapped[id]
	return ok
}

// Forget drops every record about a window.
func (r *Registry) Forget(id platform.WindowID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tags, id)
	delete(r.snapped, id)
}

// Known returns the ids the registry holds records for.
func (r *Registry) Known() []platform.WindowID {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[platform.WindowID]struct{}, len(r.tags)+len(r.snapped))
	for id := range r.tags {
		seen[id] = struct{}{}
	}
	for id := range r.snapped {
		seen[id] = struct{}{}
	}
	out := make([]platform.WindowID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	return out
}
