package daemon

import (
	"log/slog"
	"sort"

	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/windows"
)

// Session is the part of a tiling session the synchronizer needs.
type Session interface {
	Window() platform.WindowID
	Exit()
}

// Highlight is the part of the focus highlight the synchronizer needs.
type Highlight interface {
	Tracked() (platform.WindowID, bool)
	Untrack()
}

// StateSynchronizer handles cleanup when windows close or state drifts.
type StateSynchronizer struct {
	session  Session
	hint     Highlight
	registry *windows.Registry
	logger   *slog.Logger
}

// NewStateSynchronizer creates a new state synchronizer.
func NewStateSynchronizer(session Session, registry *windows.Registry, logger *slog.Logger) *StateSynchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateSynchronizer{
		session:  session,
		registry: registry,
		logger:   logger,
	}
}

// SetHighlight attaches the focus highlight, or detaches it when h is nil.
func (s *StateSynchronizer) SetHighlight(h Highlight) {
	s.hint = h
}

// HandleWindowClosed is called when a window is destroyed. It ends a
// session on that window, drops the highlight and forgets the window's tags.
func (s *StateSynchronizer) HandleWindowClosed(windowID platform.WindowID) {
	if s.session != nil && s.session.Window() == windowID {
		s.logger.Info("window closed during tiling session, exiting", "window_id", windowID)
		s.session.Exit()
	}

	if s.hint != nil {
		if tracked, ok := s.hint.Tracked(); ok && tracked == windowID {
			s.logger.Debug("window closed, dropping highlight", "window_id", windowID)
			s.hint.Untrack()
		}
	}

	if s.registry != nil {
		s.registry.Forget(windowID)
	}
}

// Tracked returns every window the daemon holds state for, in id order.
func (s *StateSynchronizer) Tracked() []platform.WindowID {
	seen := make(map[platform.WindowID]struct{})
	if s.registry != nil {
		for _, id := range s.registry.Known() {
			seen[id] = struct{}{}
		}
	}
	if s.session != nil {
		if id := s.session.Window(); id != 0 {
			seen[id] = struct{}{}
		}
	}
	if s.hint != nil {
		if id, ok := s.hint.Tracked(); ok {
			seen[id] = struct{}{}
		}
	}

	ids := make([]platform.WindowID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
