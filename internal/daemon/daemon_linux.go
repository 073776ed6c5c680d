//go:build linux

package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/highlight"
	"github.com/1broseidon/snaptile/internal/hotkeys"
	"github.com/1broseidon/snaptile/internal/idle"
	"github.com/1broseidon/snaptile/internal/ipc"
	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/runtimepath"
	"github.com/1broseidon/snaptile/internal/tiler"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/1broseidon/snaptile/internal/windows"
	"github.com/1broseidon/snaptile/internal/x11"
)

type daemon struct {
	path   string
	logger *slog.Logger
	level  *slog.LevelVar

	backend  *platform.LinuxBackend
	registry *windows.Registry
	selector *windows.Selector
	loop     *idle.Loop
	keys     *hotkeys.Registry
	view     *x11.TileOverlay
	tiler    *tiler.Tiler
	sync     *StateSynchronizer
	ctrl     *Controller

	globals       hotkeys.Bindings
	focusBindings hotkeys.Bindings

	hintOverlay *platform.HintOverlay
	hint        *highlight.ActiveHint
	focus       *FocusWatcher
}

// Run starts the daemon and blocks until ctx is cancelled or the process
// receives SIGINT or SIGTERM.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	path := opts.ConfigPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	res, err := config.LoadFromPath(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := res.Config
	if opts.Level != nil {
		opts.Level.Set(cfg.SlogLevel())
	}
	logger.Info("configuration loaded", "path", path, "column_size", cfg.ColumnSize, "row_size", cfg.RowSize)

	conn, err := x11.NewConnection()
	if err != nil {
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	defer conn.Close()

	d := &daemon{
		path:    path,
		logger:  logger,
		level:   opts.Level,
		backend: platform.NewLinuxBackend(conn),
		loop:    idle.NewLoop(),
	}
	d.registry = windows.NewRegistry(d.backend)
	d.selector = windows.NewSelector(d.registry)

	d.view, err = d.backend.NewTileOverlay(cfg.OverlayColorValue())
	if err != nil {
		return fmt.Errorf("failed to create tile overlay: %w", err)
	}
	defer d.view.Destroy()

	d.keys = hotkeys.NewRegistry(d.backend, cfg.Sequences())
	d.focusBindings = hotkeys.Bindings{
		config.FocusLeft:  func() { d.selector.FocusDirection(tiling.Left) },
		config.FocusDown:  func() { d.selector.FocusDirection(tiling.Down) },
		config.FocusUp:    func() { d.selector.FocusDirection(tiling.Up) },
		config.FocusRight: func() { d.selector.FocusDirection(tiling.Right) },
	}

	d.tiler = tiler.New(tiler.Options{
		Grid:          cfg.Grid(),
		Registry:      d.registry,
		Selector:      d.selector,
		Keys:          d.keys,
		FocusBindings: d.focusBindings,
		View:          d.view,
		Loop:          d.loop,
	})
	if cfg.AutoTile {
		logger.Warn("auto_tile is set but no auto-tiling backend is available, using manual mode")
	}

	d.globals = hotkeys.Bindings{config.TileEnter: d.tiler.Enter}
	d.keys.Enable(d.globals)
	d.keys.Enable(d.focusBindings)

	d.sync = NewStateSynchronizer(d.tiler, d.registry, logger)
	d.ctrl = NewController(d.loop, d.tiler, d.registry, d.reload)
	d.applyHint(cfg)
	defer d.dropHint()

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return err
	}
	server := ipc.NewServer(socketPath, d.ctrl)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start IPC server: %w", err)
	}
	defer server.Stop()

	if err := d.backend.OnActiveWindowChange(d.focusChanged); err != nil {
		logger.Warn("focus tracking unavailable", "error", err)
	}
	if err := d.backend.OnWindowClosed(d.sync.HandleWindowClosed); err != nil {
		logger.Warn("close tracking unavailable", "error", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reconciler := NewReconciler(ReconcilerConfig{
		Interval: time.Duration(cfg.ReconcileIntervalSeconds) * time.Second,
		Logger:   logger,
	}, d.sync, d.loop, WindowExistsFromBackend(d.backend))
	go reconciler.Run(ctx)

	go func() {
		err := config.Watch(ctx, path, logger, func(res *config.LoadResult) {
			d.loop.Post(func() { d.apply(res.Config) })
		})
		if err != nil {
			logger.Warn("config watch stopped", "error", err)
		}
	}()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				logger.Info("received SIGHUP, reloading config")
				d.loop.Post(func() {
					if err := d.reload(); err != nil {
						logger.Error("config reload failed", "error", err)
					}
				})
			}
		}
	}()

	logger.Info("snaptile daemon started", "socket", socketPath)
	conn.Run(ctx, d.loop)

	logger.Info("shutting down snaptile daemon")
	d.tiler.Exit()
	return nil
}

func (d *daemon) reload() error {
	res, err := config.LoadFromPath(d.path)
	if err != nil {
		return err
	}
	d.apply(res.Config)
	return nil
}

// apply swaps in a new configuration. A running session is rejected first
// so its bindings are not regrabbed under the old sequences.
func (d *daemon) apply(cfg *config.Config) {
	if d.tiler.Active() {
		d.tiler.Exit()
	}

	d.keys.Disable(d.globals)
	d.keys.Disable(d.focusBindings)
	d.keys.SetSequences(cfg.Sequences())
	d.keys.Enable(d.globals)
	d.keys.Enable(d.focusBindings)

	d.tiler.SetGrid(cfg.Grid())
	d.view.SetColor(cfg.OverlayColorValue())
	d.applyHint(cfg)

	if d.level != nil {
		d.level.Set(cfg.SlogLevel())
	}
	d.logger.Info("configuration reloaded")
}

func (d *daemon) applyHint(cfg *config.Config) {
	if !cfg.ActiveHint {
		d.dropHint()
		return
	}
	if d.hint != nil {
		d.hintOverlay.SetColor(cfg.HintColorValue())
		return
	}

	overlay, err := d.backend.NewHintOverlay(cfg.HintColorValue())
	if err != nil {
		d.logger.Warn("active hint disabled", "error", err)
		return
	}
	d.hintOverlay = overlay
	d.hint = highlight.New(overlay, d.backend.Chrome(), d.loop, cfg.Scale)
	d.focus = NewFocusWatcher(d.hint, d.backend.WindowHandle, d.logger)
	d.sync.SetHighlight(d.hint)
	d.ctrl.SetHighlight(d.hint)

	if id, err := d.backend.ActiveWindow(); err == nil && id != 0 {
		d.focus.FocusChanged(id)
	}
}

func (d *daemon) dropHint() {
	if d.hint == nil {
		return
	}
	d.sync.SetHighlight(nil)
	d.ctrl.SetHighlight(nil)
	d.focus = nil
	d.hint.Destroy()
	d.hintOverlay.Destroy()
	d.hint = nil
	d.hintOverlay = nil
}

func (d *daemon) focusChanged(id platform.WindowID) {
	if d.focus != nil {
		d.focus.FocusChanged(id)
	}
}
