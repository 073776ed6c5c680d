package x11

import (
	"log"
	"sort"

	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Notify identifies a structure change on a watched window.
type Notify int

const (
	NotifySize Notify = iota
	NotifyPosition
	NotifyReparent
)

// HandlerID identifies a connected notification handler. Zero is never issued.
type HandlerID uint64

type handler struct {
	wid xproto.Window
	sig Notify
	fn  func()
}

type watch struct {
	geom tiling.Rect
	refs int
}

// signalHub turns ConfigureNotify and ReparentNotify events into size,
// position and reparent notifications. A window is
// watched while at least one handler is connected to it. Handlers run on
// the X event goroutine.
type signalHub struct {
	conn     *Connection
	nextID   HandlerID
	handlers map[HandlerID]handler
	watched  map[xproto.Window]*watch
}

func newSignalHub(c *Connection) *signalHub {
	return &signalHub{
		conn:     c,
		handlers: make(map[HandlerID]handler),
		watched:  make(map[xproto.Window]*watch),
	}
}

// Watch runs fn whenever wid reports the given change.
func (c *Connection) Watch(wid xproto.Window, n Notify, fn func()) HandlerID {
	return c.signals.connect(wid, n, fn)
}

// Unwatch disconnects a handler registered with Watch.
func (c *Connection) Unwatch(id HandlerID) {
	c.signals.disconnect(id)
}

func (h *signalHub) connect(wid xproto.Window, n Notify, fn func()) HandlerID {
	h.nextID++
	id := h.nextID
	h.handlers[id] = handler{wid: wid, sig: n, fn: fn}
	h.watch(wid)
	return id
}

func (h *signalHub) disconnect(id HandlerID) {
	hd, ok := h.handlers[id]
	if !ok {
		return
	}
	delete(h.handlers, id)

	w := h.watched[hd.wid]
	if w == nil {
		return
	}
	w.refs--
	if w.refs > 0 {
		return
	}
	delete(h.watched, hd.wid)
	xevent.Detach(h.conn.XUtil, hd.wid)
	// The window may already be gone; nothing to undo then.
	if err := xwindow.New(h.conn.XUtil, hd.wid).Listen(xproto.EventMaskNoEvent); err != nil {
		log.Printf("X11: failed to stop listening on window %d: %v", hd.wid, err)
	}
}

func (h *signalHub) watch(wid xproto.Window) {
	if w, ok := h.watched[wid]; ok {
		w.refs++
		return
	}

	w := &watch{refs: 1}
	if geom, err := xproto.GetGeometry(h.conn.XUtil.Conn(), xproto.Drawable(wid)).Reply(); err == nil {
		w.geom = tiling.Rect{X: int(geom.X), Y: int(geom.Y), Width: int(geom.Width), Height: int(geom.Height)}
	}
	h.watched[wid] = w

	if err := xwindow.New(h.conn.XUtil, wid).Listen(xproto.EventMaskStructureNotify); err != nil {
		log.Printf("X11: failed to watch structure changes on window %d: %v", wid, err)
	}

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		if ev.Window != wid {
			return
		}
		h.configured(wid, tiling.Rect{
			X:      int(ev.X),
			Y:      int(ev.Y),
			Width:  int(ev.Width),
			Height: int(ev.Height),
		})
	}).Connect(h.conn.XUtil, wid)

	xevent.ReparentNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ReparentNotifyEvent) {
		if ev.Window == wid {
			h.emit(wid, NotifyReparent)
		}
	}).Connect(h.conn.XUtil, wid)
}

func (h *signalHub) configured(wid xproto.Window, geom tiling.Rect) {
	w := h.watched[wid]
	if w == nil {
		return
	}
	prev := w.geom
	w.geom = geom

	if prev.Width != geom.Width || prev.Height != geom.Height {
		h.emit(wid, NotifySize)
	}
	if prev.X != geom.X || prev.Y != geom.Y {
		h.emit(wid, NotifyPosition)
	}
}

// emit runs the handlers connected to (wid, n). Handlers may connect or
// disconnect while it runs.
func (h *signalHub) emit(wid xproto.Window, n Notify) {
	var ids []HandlerID
	for id, hd := range h.handlers {
		if hd.wid == wid && hd.sig == n {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if hd, ok := h.handlers[id]; ok {
			hd.fn()
		}
	}
}
