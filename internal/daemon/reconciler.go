package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/snaptile/internal/idle"
	"github.com/1broseidon/snaptile/internal/platform"
)

// WindowExists reports whether a window is still managed.
type WindowExists func(platform.WindowID) bool

// WindowExistsFromBackend asks the backend for the window's geometry.
func WindowExistsFromBackend(backend platform.Backend) WindowExists {
	return func(id platform.WindowID) bool {
		_, err := backend.WindowBounds(id)
		return err == nil
	}
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically drops state held for windows that have gone away
// without a close notification.
type Reconciler struct {
	interval time.Duration
	sync     *StateSynchronizer
	exists   WindowExists
	loop     *idle.Loop
	logger   *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
// Passes run on loop when it is non-nil.
func NewReconciler(cfg ReconcilerConfig, sync *StateSynchronizer, loop *idle.Loop, exists WindowExists) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		interval: interval,
		sync:     sync,
		exists:   exists,
		loop:     loop,
		logger:   logger,
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			if r.loop != nil {
				r.loop.Post(r.reconcile)
			} else {
				r.reconcile()
			}
		}
	}
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() {
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	for _, id := range r.sync.Tracked() {
		if r.exists(id) {
			continue
		}
		r.logger.Info("reconciler: window gone", "window_id", id)
		r.sync.HandleWindowClosed(id)
	}
}

// ReconcileNow runs a pass on the calling goroutine.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}
