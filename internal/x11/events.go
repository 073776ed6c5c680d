package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// OnActiveWindowChange calls fn with the new active window whenever the
// window manager updates _NET_ACTIVE_WINDOW on the root window. A zero
// window means nothing has focus.
func (c *Connection) OnActiveWindowChange(fn func(xproto.Window)) error {
	atom, err := xprop.Atm(c.XUtil, "_NET_ACTIVE_WINDOW")
	if err != nil {
		return err
	}

	if err := xwindow.New(c.XUtil, c.Root).Listen(xproto.EventMaskPropertyChange); err != nil {
		return err
	}

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		if ev.Atom != atom {
			return
		}
		active, err := ewmh.ActiveWindowGet(xu)
		if err != nil {
			active = 0
		}
		fn(active)
	}).Connect(c.XUtil, c.Root)
	return nil
}

// OnWindowDestroyed calls fn when a client disappears from _NET_CLIENT_LIST.
func (c *Connection) OnWindowDestroyed(fn func(xproto.Window)) error {
	atom, err := xprop.Atm(c.XUtil, "_NET_CLIENT_LIST")
	if err != nil {
		return err
	}

	known := make(map[xproto.Window]bool)
	if clients, err := ewmh.ClientListGet(c.XUtil); err == nil {
		for _, wid := range clients {
			known[wid] = true
		}
	}

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		if ev.Atom != atom {
			return
		}
		clients, err := ewmh.ClientListGet(xu)
		if err != nil {
			return
		}
		current := make(map[xproto.Window]bool, len(clients))
		for _, wid := range clients {
			current[wid] = true
		}
		for wid := range known {
			if !current[wid] {
				fn(wid)
			}
		}
		known = current
	}).Connect(c.XUtil, c.Root)
	return nil
}
