package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Sticky is the desktop number reported for windows shown on every desktop.
const Sticky = -1

// _NET_WM_DESKTOP value of a sticky window.
const stickyDesktop = 0xFFFFFFFF

// CurrentDesktop returns the 0-indexed _NET_CURRENT_DESKTOP.
func (c *Connection) CurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// WindowDesktop returns the _NET_WM_DESKTOP of win, or Sticky.
func (c *Connection) WindowDesktop(win xproto.Window) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, win)
	if err != nil {
		return 0, fmt.Errorf("failed to get desktop of window %d: %w", win, err)
	}
	if desktop == stickyDesktop {
		return Sticky, nil
	}
	return int(desktop), nil
}

// Activate asks the window manager to focus and raise win.
//
// ewmh.ActiveWindowReq type-asserts its data as int and panics on this
// xgbutil version, so the client message is assembled here.
func (c *Connection) Activate(win xproto.Window) error {
	atom, err := xprop.Atm(c.XUtil, "_NET_ACTIVE_WINDOW")
	if err != nil {
		return fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}

	const sourcePager = 2
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourcePager, 0, 0, 0, 0}),
	}
	mask := xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify
	return xproto.SendEventChecked(c.XUtil.Conn(), false, c.Root, uint32(mask), string(ev.Bytes())).Check()
}
