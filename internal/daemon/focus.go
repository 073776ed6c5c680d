package daemon

import (
	"log/slog"

	"github.com/1broseidon/snaptile/internal/platform"
)

// Tracker follows one window at a time.
type Tracker interface {
	Track(win platform.WindowHandle)
	Untrack()
}

// FocusWatcher moves the highlight to whichever window gains focus.
type FocusWatcher struct {
	hint   Tracker
	handle func(platform.WindowID) platform.WindowHandle
	logger *slog.Logger
}

// NewFocusWatcher creates a watcher resolving ids through handle.
func NewFocusWatcher(hint Tracker, handle func(platform.WindowID) platform.WindowHandle, logger *slog.Logger) *FocusWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &FocusWatcher{hint: hint, handle: handle, logger: logger}
}

// FocusChanged tracks id, or drops the highlight when id is zero.
func (w *FocusWatcher) FocusChanged(id platform.WindowID) {
	if id == 0 {
		w.logger.Debug("focus cleared")
		w.hint.Untrack()
		return
	}
	w.logger.Debug("focus changed", "window_id", id)
	w.hint.Track(w.handle(id))
}
