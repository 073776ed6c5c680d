//go:build linux

package platform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/snaptile/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// Connection returns the underlying X11 connection.
func (b *LinuxBackend) Connection() *x11.Connection {
	if b == nil {
		return nil
	}
	return b.conn
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Displays returns all active displays ordered by ID.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, Display{
			ID:     m.ID,
			Name:   m.Name,
			Bounds: m.Bounds,
			Usable: m.WorkArea,
		})
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// ActiveWindow returns the currently active/focused window ID.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// CurrentDesktop returns the active virtual desktop.
func (b *LinuxBackend) CurrentDesktop() (int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	return conn.CurrentDesktop()
}

// ListWindows lists visible normal windows on the current desktop.
func (b *LinuxBackend) ListWindows() ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	clients, err := conn.ClientList()
	if err != nil {
		return nil, err
	}

	currentDesktop, desktopErr := conn.CurrentDesktop()
	hasCurrentDesktop := desktopErr == nil

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		if !conn.IsNormalWindow(windowID) || conn.IsHidden(windowID) {
			continue
		}

		desktop, err := conn.WindowDesktop(windowID)
		if err != nil || desktop == x11.Sticky {
			desktop = AllDesktops
		}
		if hasCurrentDesktop && desktop != AllDesktops && desktop != currentDesktop {
			continue
		}

		rect, err := conn.FrameRect(windowID)
		if err != nil {
			continue
		}

		pid := 0
		if p, err := ewmh.WmPidGet(conn.XUtil, windowID); err == nil {
			pid = int(p)
		}

		windows = append(windows, Window{
			ID:      WindowID(windowID),
			PID:     pid,
			AppID:   b.windowAppID(windowID),
			Title:   b.windowTitle(windowID),
			Desktop: desktop,
			Bounds:  rect,
		})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].ID < windows[j].ID
	})

	return windows, nil
}

// WindowBounds returns the frame rectangle of a window.
func (b *LinuxBackend) WindowBounds(windowID WindowID) (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}
	return conn.FrameRect(xproto.Window(windowID))
}

// WindowDesktop returns the desktop a window is on, or AllDesktops.
func (b *LinuxBackend) WindowDesktop(windowID WindowID) (int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	desktop, err := conn.WindowDesktop(xproto.Window(windowID))
	if err != nil {
		return 0, err
	}
	if desktop == x11.Sticky {
		return AllDesktops, nil
	}
	return desktop, nil
}

// IsMaximized reports whether a window is maximized.
func (b *LinuxBackend) IsMaximized(windowID WindowID) (bool, error) {
	conn, err := b.connection()
	if err != nil {
		return false, err
	}
	return conn.IsMaximized(xproto.Window(windowID))
}

// Unmaximize clears both maximized states.
func (b *LinuxBackend) Unmaximize(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.Unmaximize(xproto.Window(windowID))
}

// MoveResize places a window's frame at bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeFrame(xproto.Window(windowID), bounds)
}

// Focus activates and raises a window.
func (b *LinuxBackend) Focus(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.Activate(xproto.Window(windowID))
}

// Pointer returns the pointer position in root coordinates.
func (b *LinuxBackend) Pointer() (int, int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, 0, err
	}
	return conn.QueryPointer()
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func (b *LinuxBackend) windowAppID(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(b.conn.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

func (b *LinuxBackend) windowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(b.conn.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(b.conn.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	return ""
}

// OnActiveWindowChange calls fn whenever the focused window changes.
func (b *LinuxBackend) OnActiveWindowChange(fn func(WindowID)) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.OnActiveWindowChange(func(wid xproto.Window) {
		fn(WindowID(wid))
	})
}

// OnWindowClosed calls fn when a managed window goes away.
func (b *LinuxBackend) OnWindowClosed(fn func(WindowID)) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.OnWindowDestroyed(func(wid xproto.Window) {
		fn(WindowID(wid))
	})
}

// NewTileOverlay creates the border that previews a tiling session.
func (b *LinuxBackend) NewTileOverlay(color uint32) (*x11.TileOverlay, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	return conn.NewTileOverlay(color)
}
