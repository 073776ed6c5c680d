package daemon

import (
	"context"
	"fmt"

	"github.com/1broseidon/snaptile/internal/idle"
	"github.com/1broseidon/snaptile/internal/ipc"
	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiler"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/1broseidon/snaptile/internal/windows"
)

// Controller serves IPC requests by running them on the event loop, so
// session state is only ever touched from one goroutine.
type Controller struct {
	loop     *idle.Loop
	tiler    *tiler.Tiler
	registry *windows.Registry
	hint     Highlight
	reload   func() error
}

var _ ipc.Controller = (*Controller)(nil)

// NewController creates a controller. reload may be nil.
func NewController(loop *idle.Loop, t *tiler.Tiler, registry *windows.Registry, reload func() error) *Controller {
	return &Controller{
		loop:     loop,
		tiler:    t,
		registry: registry,
		reload:   reload,
	}
}

// SetHighlight reports h in status, or nothing when h is nil.
func (c *Controller) SetHighlight(h Highlight) {
	c.hint = h
}

// Tile runs a session command.
func (c *Controller) Tile(ctx context.Context, action ipc.TileAction, dir tiling.Direction) error {
	return c.run(ctx, func() error {
		switch action {
		case ipc.TileEnter:
			c.tiler.Enter()
		case ipc.TileAccept:
			c.tiler.Accept()
		case ipc.TileExit:
			c.tiler.Exit()
		case ipc.TileMove:
			c.tiler.Move(dir)
		case ipc.TileResize:
			c.tiler.Resize(dir)
		case ipc.TileSwap:
			c.tiler.Swap(dir)
		case ipc.TileOrientation:
			c.tiler.ToggleOrientation()
		default:
			return fmt.Errorf("unknown tile action %q", action)
		}
		return nil
	})
}

// Snap aligns a window to the grid. Zero means the focused window.
func (c *Controller) Snap(ctx context.Context, window uint32) error {
	return c.run(ctx, func() error {
		var win *windows.Window
		var ok bool
		if window == 0 {
			win, ok = c.registry.Focused()
			if !ok {
				return fmt.Errorf("no focused window")
			}
		} else {
			win, ok = c.registry.Get(platform.WindowID(window))
			if !ok {
				return fmt.Errorf("window %d not found", window)
			}
		}
		c.tiler.Snap(win)
		return nil
	})
}

// Status reports the session and highlight state.
func (c *Controller) Status(ctx context.Context) (ipc.StatusData, error) {
	var data ipc.StatusData
	err := c.run(ctx, func() error {
		st := c.tiler.Status()
		data = ipc.StatusData{
			SessionActive: st.Active,
			SessionID:     st.Session,
			Window:        uint32(st.Window),
			SwapWindow:    uint32(st.SwapWindow),
			AutoTile:      st.AutoTile,
		}
		if st.Visible {
			data.Overlay = ipc.NewRectData(st.Overlay)
		}
		if c.hint != nil {
			if id, ok := c.hint.Tracked(); ok {
				data.HintWindow = uint32(id)
			}
		}
		return nil
	})
	return data, err
}

// Monitors lists the displays and their work areas.
func (c *Controller) Monitors(ctx context.Context) ([]ipc.MonitorInfo, error) {
	var out []ipc.MonitorInfo
	err := c.run(ctx, func() error {
		displays, err := c.registry.Backend().Displays()
		if err != nil {
			return err
		}
		out = make([]ipc.MonitorInfo, 0, len(displays))
		for _, d := range displays {
			out = append(out, ipc.MonitorInfo{
				ID:       d.ID,
				Name:     d.Name,
				Bounds:   ipc.NewRectData(d.Bounds),
				WorkArea: ipc.NewRectData(d.Usable),
			})
		}
		return nil
	})
	return out, err
}

// Reload re-reads the configuration.
func (c *Controller) Reload(ctx context.Context) error {
	if c.reload == nil {
		return fmt.Errorf("reload not supported")
	}
	return c.run(ctx, c.reload)
}

// run posts fn to the loop and waits for it. A request that times out
// before the loop picks it up is withdrawn.
func (c *Controller) run(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	id := c.loop.Post(func() {
		done <- fn()
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if c.loop.Remove(id) {
			return ctx.Err()
		}
		return <-done
	}
}
