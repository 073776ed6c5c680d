package x11

import (
	"log"

	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
)

// Border thickness in pixels
const BorderThickness = 4

// createOverrideRedirectWindow creates a single unmapped override-redirect
// window under parent.
func (c *Connection) createOverrideRedirectWindow(parent xproto.Window, color uint32) (xproto.Window, error) {
	conn := c.XUtil.Conn()
	screen := c.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		parent,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect,
		// Value list order follows the bit positions of the mask (low to high).
		[]uint32{color, 1},
	).Check()
	if err != nil {
		return 0, err
	}
	return wid, nil
}

func (c *Connection) configureWindow(wid xproto.Window, r tiling.Rect) {
	xproto.ConfigureWindow(
		c.XUtil.Conn(),
		wid,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{
			uint32(int32(r.X)),
			uint32(int32(r.Y)),
			uint32(max(1, r.Width)),
			uint32(max(1, r.Height)),
		},
	)
}

// TileOverlay draws the tiling preview rectangle as a border made of four
// thin windows kept above everything else.
type TileOverlay struct {
	conn   *Connection
	sides  [4]xproto.Window
	color  uint32
	mapped bool
}

// NewTileOverlay creates the border windows, initially hidden.
func (c *Connection) NewTileOverlay(color uint32) (*TileOverlay, error) {
	o := &TileOverlay{conn: c, color: color}
	for i := range o.sides {
		wid, err := c.createOverrideRedirectWindow(c.Root, color)
		if err != nil {
			o.Destroy()
			return nil, err
		}
		o.sides[i] = wid
		c.SetInputPassThrough(wid, true)
	}
	return o, nil
}

// Show places the border around r and raises it.
func (o *TileOverlay) Show(r tiling.Rect) {
	t := BorderThickness
	rects := [4]tiling.Rect{
		{X: r.X, Y: r.Y, Width: r.Width, Height: t},
		{X: r.X, Y: r.Y + r.Height - t, Width: r.Width, Height: t},
		{X: r.X, Y: r.Y + t, Width: t, Height: r.Height - 2*t},
		{X: r.X + r.Width - t, Y: r.Y + t, Width: t, Height: r.Height - 2*t},
	}

	conn := o.conn.XUtil.Conn()
	for i, wid := range o.sides {
		if wid == 0 {
			continue
		}
		o.conn.configureWindow(wid, rects[i])
		xproto.ConfigureWindow(conn, wid, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
		xproto.MapWindow(conn, wid)
	}
	o.mapped = true
}

// Hide unmaps the border windows (but doesn't destroy them)
func (o *TileOverlay) Hide() {
	if !o.mapped {
		return
	}
	for _, wid := range o.sides {
		if wid != 0 {
			xproto.UnmapWindow(o.conn.XUtil.Conn(), wid)
		}
	}
	o.mapped = false
}

// SetColor changes the border color.
func (o *TileOverlay) SetColor(color uint32) {
	conn := o.conn.XUtil.Conn()
	o.color = color
	for _, wid := range o.sides {
		if wid == 0 {
			continue
		}
		xproto.ChangeWindowAttributes(conn, wid, xproto.CwBackPixel, []uint32{color})
		xproto.ClearArea(conn, false, wid, 0, 0, 0, 0)
	}
}

// Destroy destroys the border windows
func (o *TileOverlay) Destroy() {
	for i, wid := range o.sides {
		if wid != 0 {
			xproto.DestroyWindow(o.conn.XUtil.Conn(), wid)
			o.sides[i] = 0
		}
	}
	o.mapped = false
}

// HintWindow is a solid override-redirect window used as the focus
// highlight. It is stacked directly below a window frame and sized slightly
// larger, so only a margin of it shows around the frame.
type HintWindow struct {
	conn   *Connection
	wid    xproto.Window
	parent xproto.Window
	geom   tiling.Rect
}

// NewHintWindow creates the highlight window, initially hidden.
func (c *Connection) NewHintWindow(color uint32) (*HintWindow, error) {
	wid, err := c.createOverrideRedirectWindow(c.Root, color)
	if err != nil {
		return nil, err
	}
	return &HintWindow{conn: c, wid: wid, parent: c.Root}, nil
}

// XWindow returns the X window backing the highlight.
func (h *HintWindow) XWindow() xproto.Window { return h.wid }

// SetColor changes the highlight color.
func (h *HintWindow) SetColor(color uint32) {
	conn := h.conn.XUtil.Conn()
	xproto.ChangeWindowAttributes(conn, h.wid, xproto.CwBackPixel, []uint32{color})
	xproto.ClearArea(conn, false, h.wid, 0, 0, 0, 0)
}

// SetGeometry places the highlight at r, given in root coordinates.
func (h *HintWindow) SetGeometry(r tiling.Rect) {
	h.geom = r
	h.conn.configureWindow(h.wid, h.relative(r))
}

func (h *HintWindow) Show() { xproto.MapWindow(h.conn.XUtil.Conn(), h.wid) }

func (h *HintWindow) Hide() { xproto.UnmapWindow(h.conn.XUtil.Conn(), h.wid) }

// ParentWindow returns the window currently holding the highlight.
func (h *HintWindow) ParentWindow() xproto.Window { return h.parent }

// Reparent moves the highlight under parent, keeping its root position.
func (h *HintWindow) Reparent(parent xproto.Window) {
	h.parent = parent
	r := h.relative(h.geom)
	xproto.ReparentWindow(h.conn.XUtil.Conn(), h.wid, parent, int16(r.X), int16(r.Y))
	h.conn.configureWindow(h.wid, r)
}

// relative converts a root rectangle to the parent's coordinate space.
func (h *HintWindow) relative(r tiling.Rect) tiling.Rect {
	if h.parent == 0 || h.parent == h.conn.Root {
		return r
	}
	origin, err := xproto.TranslateCoordinates(h.conn.XUtil.Conn(), h.parent, h.conn.Root, 0, 0).Reply()
	if err != nil {
		return r
	}
	r.X -= int(origin.DstX)
	r.Y -= int(origin.DstY)
	return r
}

// Destroy destroys the highlight window.
func (h *HintWindow) Destroy() {
	if h.wid != 0 {
		xproto.DestroyWindow(h.conn.XUtil.Conn(), h.wid)
		h.wid = 0
	}
}

// SetInputPassThrough removes a window from the input region with the SHAPE
// extension, so pointer events fall through to the windows below, or
// restores its default input region.
func (c *Connection) SetInputPassThrough(wid xproto.Window, passThrough bool) {
	if !c.hasShape || wid == 0 {
		return
	}
	conn := c.XUtil.Conn()
	var err error
	if passThrough {
		err = shape.RectanglesChecked(conn, shape.SoSet, shape.SkInput, xproto.ClipOrderingUnsorted, wid, 0, 0, nil).Check()
	} else {
		err = shape.MaskChecked(conn, shape.SoSet, shape.SkInput, wid, 0, 0, xproto.PixmapNone).Check()
	}
	if err != nil {
		log.Printf("Overlay: failed to update input shape for window %d: %v", wid, err)
	}
}
