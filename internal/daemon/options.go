package daemon

import "log/slog"

// Options configures Run.
type Options struct {
	// ConfigPath overrides the default config location.
	ConfigPath string
	Logger     *slog.Logger
	// Level, when set, follows log_level across reloads.
	Level *slog.LevelVar
}
