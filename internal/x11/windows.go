package x11

import (
	"fmt"

	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	stateMaxHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateMaxVert = "_NET_WM_STATE_MAXIMIZED_VERT"
)

// MoveResizeFrame places a window so that its frame, decorations included,
// covers r.
func (c *Connection) MoveResizeFrame(windowID xproto.Window, r tiling.Rect) error {
	left, right, top, bottom := c.GetFrameExtents(windowID)
	width := max(1, r.Width-left-right)
	height := max(1, r.Height-top-bottom)

	// Use EWMH MoveResize for better WM compatibility
	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, r.X, r.Y, width, height); err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(r.X, r.Y, width, height)
	}
	return nil
}

// IsMaximized reports whether the window is maximized on either axis.
func (c *Connection) IsMaximized(windowID xproto.Window) (bool, error) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false, err
	}
	for _, state := range states {
		if state == stateMaxHorz || state == stateMaxVert {
			return true, nil
		}
	}
	return false, nil
}

// Unmaximize removes both maximized states from a window.
func (c *Connection) Unmaximize(windowID xproto.Window) error {
	if err := ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, stateMaxHorz); err != nil {
		return fmt.Errorf("unmaximize horizontal: %w", err)
	}
	if err := ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, stateMaxVert); err != nil {
		return fmt.Errorf("unmaximize vertical: %w", err)
	}
	return nil
}

// GetFrameExtents returns the window decoration sizes, or zeros when the
// window manager does not publish them.
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		return 0, 0, 0, 0
	}
	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom)
}

// ClientRect returns the client area of a window in root coordinates.
func (c *Connection) ClientRect(windowID xproto.Window) (tiling.Rect, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return tiling.Rect{}, err
	}

	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return tiling.Rect{}, err
	}

	return tiling.Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// FrameRect returns the client area grown by the frame extents.
func (c *Connection) FrameRect(windowID xproto.Window) (tiling.Rect, error) {
	r, err := c.ClientRect(windowID)
	if err != nil {
		return tiling.Rect{}, err
	}
	left, right, top, bottom := c.GetFrameExtents(windowID)
	return tiling.Rect{
		X:      r.X - left,
		Y:      r.Y - top,
		Width:  r.Width + left + right,
		Height: r.Height + top + bottom,
	}, nil
}

// FrameWindow returns the top-level ancestor of a client window: the frame
// of a reparenting window manager, or the client itself otherwise.
func (c *Connection) FrameWindow(windowID xproto.Window) (xproto.Window, error) {
	current := windowID
	for {
		tree, err := xproto.QueryTree(c.XUtil.Conn(), current).Reply()
		if err != nil {
			return 0, err
		}
		if tree.Parent == tree.Root || tree.Parent == 0 {
			return current, nil
		}
		current = tree.Parent
	}
}

// ParentWindow returns the direct parent of a window.
func (c *Connection) ParentWindow(windowID xproto.Window) (xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return 0, err
	}
	return tree.Parent, nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// IsHidden reports whether a window is minimized or fullscreen.
func (c *Connection) IsHidden(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_HIDDEN", "_NET_WM_STATE_FULLSCREEN":
			return true
		}
	}
	return false
}

func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// ClientList returns the managed client windows.
func (c *Connection) ClientList() ([]xproto.Window, error) {
	return ewmh.ClientListGet(c.XUtil)
}

// Restack places wid directly above or below sibling. A zero sibling
// restacks relative to all siblings.
func (c *Connection) Restack(wid, sibling xproto.Window, below bool) {
	mode := uint32(xproto.StackModeAbove)
	if below {
		mode = xproto.StackModeBelow
	}
	if sibling == 0 {
		xproto.ConfigureWindow(c.XUtil.Conn(), wid, xproto.ConfigWindowStackMode, []uint32{mode})
		return
	}
	xproto.ConfigureWindow(c.XUtil.Conn(), wid,
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(sibling), mode})
}
