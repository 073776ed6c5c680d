// Package platformtest provides an in-memory platform.Backend for tests.
package platformtest

import (
	"fmt"
	"sort"
	"sync"

	"github.com/1broseidon/snaptile/internal/platform"
)

// Window is the state the fake keeps per window.
type Window struct {
	Bounds    platform.Rect
	Desktop   int
	Maximized bool
}

// Move records a MoveResize call.
type Move struct {
	ID     platform.WindowID
	Bounds platform.Rect
}

// Backend is a fake window system. The zero value is not usable; call New.
type Backend struct {
	mu sync.Mutex

	displays []platform.Display
	windows  map[platform.WindowID]*Window
	active   platform.WindowID
	desktop  int
	pointerX int
	pointerY int

	moves   []Move
	focused []platform.WindowID
}

var _ platform.Backend = (*Backend)(nil)

// New creates a fake backend with displays whose work areas equal their
// bounds.
func New(bounds ...platform.Rect) *Backend {
	b := &Backend{windows: make(map[platform.WindowID]*Window)}
	for i, r := range bounds {
		b.displays = append(b.displays, platform.Display{
			ID:     i,
			Name:   fmt.Sprintf("FAKE-%d", i),
			Bounds: r,
			Usable: r,
		})
	}
	return b
}

// SetUsable overrides the work area of display i.
func (b *Backend) SetUsable(i int, r platform.Rect) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.displays[i].Usable = r
}

// AddWindow registers a window on the current desktop.
func (b *Backend) AddWindow(id platform.WindowID, bounds platform.Rect) *Window {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := &Window{Bounds: bounds, Desktop: b.desktop}
	b.windows[id] = w
	return w
}

// RemoveWindow forgets a window, as if it was closed.
func (b *Backend) RemoveWindow(id platform.WindowID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.windows, id)
	if b.active == id {
		b.active = 0
	}
}

// SetActive sets the focused window.
func (b *Backend) SetActive(id platform.WindowID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = id
}

// SetPointer sets the pointer position.
func (b *Backend) SetPointer(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pointerX, b.pointerY = x, y
}

// Moves returns every MoveResize call so far.
func (b *Backend) Moves() []Move {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Move(nil), b.moves...)
}

// FocusCalls returns every window passed to Focus.
func (b *Backend) FocusCalls() []platform.WindowID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]platform.WindowID(nil), b.focused...)
}

// Window returns the fake state of a window.
func (b *Backend) Window(id platform.WindowID) (Window, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, ok := b.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

func (b *Backend) Displays() ([]platform.Display, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]platform.Display(nil), b.displays...), nil
}

func (b *Backend) ActiveWindow() (platform.WindowID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active, nil
}

func (b *Backend) CurrentDesktop() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.desktop, nil
}

func (b *Backend) ListWindows() ([]platform.Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]platform.Window, 0, len(b.windows))
	for id, w := range b.windows {
		if w.Desktop != b.desktop && w.Desktop != platform.AllDesktops {
			continue
		}
		out = append(out, platform.Window{ID: id, Desktop: w.Desktop, Bounds: w.Bounds})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *Backend) lookup(id platform.WindowID) (*Window, error) {
	w, ok := b.windows[id]
	if !ok {
		return nil, fmt.Errorf("window %d not found", id)
	}
	return w, nil
}

func (b *Backend) WindowBounds(id platform.WindowID) (platform.Rect, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, err := b.lookup(id)
	if err != nil {
		return platform.Rect{}, err
	}
	return w.Bounds, nil
}

func (b *Backend) WindowDesktop(id platform.WindowID) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, err := b.lookup(id)
	if err != nil {
		return 0, err
	}
	return w.Desktop, nil
}

func (b *Backend) IsMaximized(id platform.WindowID) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, err := b.lookup(id)
	if err != nil {
		return false, err
	}
	return w.Maximized, nil
}

func (b *Backend) Unmaximize(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, err := b.lookup(id)
	if err != nil {
		return err
	}
	w.Maximized = false
	return nil
}

func (b *Backend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	w, err := b.lookup(id)
	if err != nil {
		return err
	}
	w.Bounds = bounds
	b.moves = append(b.moves, Move{ID: id, Bounds: bounds})
	return nil
}

func (b *Backend) Focus(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.lookup(id); err != nil {
		return err
	}
	b.active = id
	b.focused = append(b.focused, id)
	return nil
}

func (b *Backend) Pointer() (int, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pointerX, b.pointerY, nil
}
