package platform

import "github.com/1broseidon/snaptile/internal/tiling"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect = tiling.Rect

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID      WindowID
	PID     int
	AppID   string
	Title   string
	Desktop int
	Bounds  Rect
}

// AllDesktops is the desktop reported for windows shown on every desktop.
const AllDesktops = -1

// Backend abstracts window-system operations across platforms.
//
// Window bounds are frame rectangles: they include decorations, in root
// coordinates.
type Backend interface {
	Displays() ([]Display, error)
	ActiveWindow() (WindowID, error)
	CurrentDesktop() (int, error)
	ListWindows() ([]Window, error)
	WindowBounds(windowID WindowID) (Rect, error)
	WindowDesktop(windowID WindowID) (int, error)
	IsMaximized(windowID WindowID) (bool, error)
	Unmaximize(windowID WindowID) error
	MoveResize(windowID WindowID, bounds Rect) error
	Focus(windowID WindowID) error
	Pointer() (x, y int, err error)
}
