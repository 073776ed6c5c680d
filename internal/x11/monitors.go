package x11

import (
	"fmt"

	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display and the part of it not covered by
// docks and panels.
type Monitor struct {
	ID       int
	Name     string
	Bounds   tiling.Rect
	WorkArea tiling.Rect
}

// GetMonitors retrieves all active monitors using XRandR, with per-monitor
// work areas.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor

	// Query each CRTC for active monitors
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		bounds := tiling.Rect{
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		}
		monitors = append(monitors, Monitor{
			ID:       i,
			Name:     outputName,
			Bounds:   bounds,
			WorkArea: bounds,
		})
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	docks := c.dockStrutList()
	for i := range monitors {
		if len(docks) > 0 {
			monitors[i].WorkArea = applyDockStruts(monitors[i].Bounds, c.rootSize(), docks)
			continue
		}
		monitors[i].WorkArea = c.clipToDesktopWorkarea(monitors[i].Bounds)
	}

	return monitors, nil
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

type rootSize struct {
	width  int
	height int
}

func (c *Connection) rootSize() rootSize {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return rootSize{}
	}
	return rootSize{width: int(rootGeom.Width), height: int(rootGeom.Height)}
}

// dockStrutList collects the partial struts of every dock window.
func (c *Connection) dockStrutList() []*ewmh.WmStrutPartial {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil
	}
	root := c.rootSize()

	var out []*ewmh.WmStrutPartial
	for _, windowID := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
		if err != nil {
			continue
		}

		isDock := false
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DOCK" {
				isDock = true
				break
			}
		}
		if !isDock {
			continue
		}

		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			out = append(out, sp)
			continue
		}

		// Some docks only set _NET_WM_STRUT (no partial ranges).
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			out = append(out, &ewmh.WmStrutPartial{
				Left:         s.Left,
				Right:        s.Right,
				Top:          s.Top,
				Bottom:       s.Bottom,
				LeftStartY:   0,
				LeftEndY:     uint(root.height - 1),
				RightStartY:  0,
				RightEndY:    uint(root.height - 1),
				TopStartX:    0,
				TopEndX:      uint(root.width - 1),
				BottomStartX: 0,
				BottomEndX:   uint(root.width - 1),
			})
		}
	}
	return out
}

func applyDockStruts(monitor tiling.Rect, root rootSize, docks []*ewmh.WmStrutPartial) tiling.Rect {
	var struts dockStruts
	for _, sp := range docks {
		updateStrutsForMonitor(monitor, root, sp, &struts)
	}

	monitor.X += struts.left
	monitor.Y += struts.top
	monitor.Width -= struts.left + struts.right
	monitor.Height -= struts.top + struts.bottom

	if monitor.Width < 1 {
		monitor.Width = 1
	}
	if monitor.Height < 1 {
		monitor.Height = 1
	}
	return monitor
}

func updateStrutsForMonitor(monitor tiling.Rect, root rootSize, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	// Top strut: y=[0,Top), x=[TopStartX,TopEndX]
	if sp.Top > 0 {
		r := tiling.Rect{X: int(sp.TopStartX), Y: 0, Width: int(sp.TopEndX) + 1 - int(sp.TopStartX), Height: int(sp.Top)}
		acc.top = max(acc.top, monitor.Intersection(r).Height)
	}

	// Bottom strut: y=[rootHeight-Bottom,rootHeight), x=[BottomStartX,BottomEndX]
	if sp.Bottom > 0 {
		r := tiling.Rect{X: int(sp.BottomStartX), Y: root.height - int(sp.Bottom), Width: int(sp.BottomEndX) + 1 - int(sp.BottomStartX), Height: int(sp.Bottom)}
		acc.bottom = max(acc.bottom, monitor.Intersection(r).Height)
	}

	// Left strut: x=[0,Left), y=[LeftStartY,LeftEndY]
	if sp.Left > 0 {
		r := tiling.Rect{X: 0, Y: int(sp.LeftStartY), Width: int(sp.Left), Height: int(sp.LeftEndY) + 1 - int(sp.LeftStartY)}
		acc.left = max(acc.left, monitor.Intersection(r).Width)
	}

	// Right strut: x=[rootWidth-Right,rootWidth), y=[RightStartY,RightEndY]
	if sp.Right > 0 {
		r := tiling.Rect{X: root.width - int(sp.Right), Y: int(sp.RightStartY), Width: int(sp.Right), Height: int(sp.RightEndY) + 1 - int(sp.RightStartY)}
		acc.right = max(acc.right, monitor.Intersection(r).Width)
	}
}

// clipToDesktopWorkarea intersects a monitor with _NET_WORKAREA for the
// current desktop, for window managers that publish no dock struts.
func (c *Connection) clipToDesktopWorkarea(monitor tiling.Rect) tiling.Rect {
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return monitor
	}

	desktopIndex := 0
	if currentDesktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil {
		if int(currentDesktop) >= 0 && int(currentDesktop) < len(workArea) {
			desktopIndex = int(currentDesktop)
		}
	}

	wa := workArea[desktopIndex]
	clipped := monitor.Intersection(tiling.Rect{
		X:      wa.X,
		Y:      wa.Y,
		Width:  int(wa.Width),
		Height: int(wa.Height),
	})
	if clipped.Area() == 0 {
		return monitor
	}
	return clipped
}

// QueryPointer returns the pointer position in root coordinates.
func (c *Connection) QueryPointer() (int, int, error) {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(pointer.RootX), int(pointer.RootY), nil
}
