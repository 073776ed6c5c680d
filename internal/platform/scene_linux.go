//go:build linux

package platform

import (
	"github.com/1broseidon/snaptile/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

var notifyForSignal = map[Signal]x11.Notify{
	SignalSizeChanged:     x11.NotifySize,
	SignalPositionChanged: x11.NotifyPosition,
	SignalParentSet:       x11.NotifyReparent,
}

// WindowHandle returns a client window as a scene node whose actor is the
// window manager frame.
func (b *LinuxBackend) WindowHandle(id WindowID) WindowHandle {
	return &x11Window{conn: b.conn, client: xproto.Window(id)}
}

// NewHintOverlay creates the focus highlight window.
func (b *LinuxBackend) NewHintOverlay(color uint32) (*HintOverlay, error) {
	hint, err := b.conn.NewHintWindow(color)
	if err != nil {
		return nil, err
	}
	return &HintOverlay{conn: b.conn, hint: hint}, nil
}

// Chrome returns the input-region registry for overlays.
func (b *LinuxBackend) Chrome() Chrome {
	return x11Chrome{conn: b.conn}
}

type x11Accessor interface {
	xwindow() xproto.Window
}

func xwindowOf(a Actor) (xproto.Window, bool) {
	if a == nil {
		return 0, false
	}
	w, ok := a.(x11Accessor)
	if !ok {
		return 0, false
	}
	return w.xwindow(), true
}

type x11Window struct {
	conn   *x11.Connection
	client xproto.Window
}

var _ WindowHandle = (*x11Window)(nil)

func (w *x11Window) ID() WindowID { return WindowID(w.client) }

func (w *x11Window) FrameRect() Rect {
	r, err := w.conn.FrameRect(w.client)
	if err != nil {
		return Rect{}
	}
	return r
}

func (w *x11Window) Actor() (Actor, bool) {
	frame, err := w.conn.FrameWindow(w.client)
	if err != nil {
		return nil, false
	}
	return &x11Actor{conn: w.conn, wid: frame}, true
}

// Connect watches the frame: the client never moves relative to it.
func (w *x11Window) Connect(sig Signal, fn func()) HandlerID {
	target := w.client
	if frame, err := w.conn.FrameWindow(w.client); err == nil {
		target = frame
	}
	return HandlerID(w.conn.Watch(target, notifyForSignal[sig], fn))
}

func (w *x11Window) Disconnect(id HandlerID) { w.conn.Unwatch(x11.HandlerID(id)) }

type x11Actor struct {
	conn *x11.Connection
	wid  xproto.Window
}

func (a *x11Actor) xwindow() xproto.Window { return a.wid }

func (a *x11Actor) Parent() (Container, bool) {
	parent, err := a.conn.ParentWindow(a.wid)
	if err != nil || parent == 0 {
		return nil, false
	}
	return &x11Container{conn: a.conn, wid: parent}, true
}

func (a *x11Actor) Connect(sig Signal, fn func()) HandlerID {
	return HandlerID(a.conn.Watch(a.wid, notifyForSignal[sig], fn))
}

func (a *x11Actor) Disconnect(id HandlerID) { a.conn.Unwatch(x11.HandlerID(id)) }

type x11Container struct {
	conn *x11.Connection
	wid  xproto.Window
}

func (c *x11Container) AddChild(child Actor) {
	if o, ok := child.(*HintOverlay); ok {
		o.hint.Reparent(c.wid)
		return
	}
	if wid, ok := xwindowOf(child); ok {
		xproto.ReparentWindow(c.conn.XUtil.Conn(), wid, c.wid, 0, 0)
	}
}

// RemoveChild unmaps the child and hands it back to the root window.
func (c *x11Container) RemoveChild(child Actor) {
	wid, ok := xwindowOf(child)
	if !ok {
		return
	}
	xproto.UnmapWindow(c.conn.XUtil.Conn(), wid)
	if o, ok := child.(*HintOverlay); ok && o.hint.ParentWindow() == c.wid && c.wid != c.conn.Root {
		o.hint.Reparent(c.conn.Root)
	}
}

func (c *x11Container) SetChildBelowSibling(child, sibling Actor) {
	if wid, ok := xwindowOf(child); ok {
		sib, _ := xwindowOf(sibling)
		c.conn.Restack(wid, sib, true)
	}
}

func (c *x11Container) SetChildAboveSibling(child, sibling Actor) {
	if wid, ok := xwindowOf(child); ok {
		sib, _ := xwindowOf(sibling)
		c.conn.Restack(wid, sib, false)
	}
}

// HintOverlay adapts the X11 highlight window to the Overlay interface.
type HintOverlay struct {
	conn *x11.Connection
	hint *x11.HintWindow
}

var _ Overlay = (*HintOverlay)(nil)

func (o *HintOverlay) xwindow() xproto.Window { return o.hint.XWindow() }

func (o *HintOverlay) SetGeometry(r Rect) { o.hint.SetGeometry(r) }

func (o *HintOverlay) Show() { o.hint.Show() }

func (o *HintOverlay) Hide() { o.hint.Hide() }

// SetColor changes the highlight color.
func (o *HintOverlay) SetColor(color uint32) { o.hint.SetColor(color) }

// Destroy releases the highlight window.
func (o *HintOverlay) Destroy() { o.hint.Destroy() }

func (o *HintOverlay) Parent() (Container, bool) {
	parent := o.hint.ParentWindow()
	return &x11Container{conn: o.conn, wid: parent}, parent != 0
}

func (o *HintOverlay) Connect(sig Signal, fn func()) HandlerID {
	return HandlerID(o.conn.Watch(o.hint.XWindow(), notifyForSignal[sig], fn))
}

func (o *HintOverlay) Disconnect(id HandlerID) { o.conn.Unwatch(x11.HandlerID(id)) }

type x11Chrome struct {
	conn *x11.Connection
}

func (c x11Chrome) Track(o Overlay) {
	if wid, ok := xwindowOf(o); ok {
		c.conn.SetInputPassThrough(wid, true)
	}
}

func (c x11Chrome) Untrack(o Overlay) {
	if wid, ok := xwindowOf(o); ok {
		c.conn.SetInputPassThrough(wid, false)
	}
}
