package x11

import (
	"context"
	"fmt"

	"github.com/1broseidon/snaptile/internal/idle"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	hasShape bool
	signals  *signalHub
}

// NewConnection establishes a connection to the X11 server and initializes required extensions
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	// Initialize keybind module (required for global hotkeys)
	keybind.Initialize(xu)

	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}
	// Without SHAPE the overlays still render, they just swallow clicks.
	c.hasShape = shape.Init(xu.Conn()) == nil
	c.signals = newSignalHub(c)
	return c, nil
}

// Run processes X events and idle callbacks until ctx is cancelled.
// Idle callbacks never run concurrently with X event handlers.
func (c *Connection) Run(ctx context.Context, loop *idle.Loop) {
	pingBefore, pingAfter, pingQuit := xevent.MainPing(c.XUtil)
	for {
		select {
		case <-ctx.Done():
			xevent.Quit(c.XUtil)
			loop.Dispatch()
			return
		case <-pingBefore:
			<-pingAfter
			loop.Dispatch()
		case <-loop.Wake():
			loop.Dispatch()
		case <-pingQuit:
			return
		}
	}
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
