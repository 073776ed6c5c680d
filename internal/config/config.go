package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/1broseidon/snaptile/internal/tiling"
	"gopkg.in/yaml.v3"
)

// Config is the effective snaptile configuration.
type Config struct {
	// Grid cell size in pixels, before scaling.
	ColumnSize int `mapstructure:"column_size" yaml:"column_size"`
	RowSize    int `mapstructure:"row_size" yaml:"row_size"`

	GapInner int `mapstructure:"gap_inner" yaml:"gap_inner"`
	// GapInnerHalf is applied on each side of an interior edge. Zero means
	// gap_inner / 2.
	GapInnerHalf int `mapstructure:"gap_inner_half" yaml:"gap_inner_half,omitempty"`
	GapOuter     int `mapstructure:"gap_outer" yaml:"gap_outer"`

	// Scale is the display density factor applied to the grid, the gaps and
	// the highlight margin.
	Scale float64 `mapstructure:"scale" yaml:"scale"`

	// AutoTile is accepted for compatibility but has no effect: no
	// auto-tiling backend ships with the daemon, which logs a warning and
	// stays in manual mode when it is set.
	AutoTile     bool   `mapstructure:"auto_tile" yaml:"auto_tile"`
	ActiveHint   bool   `mapstructure:"active_hint" yaml:"active_hint"`
	HintColor    string `mapstructure:"hint_color" yaml:"hint_color"`
	OverlayColor string `mapstructure:"overlay_color" yaml:"overlay_color"`

	// Keys maps binding names to key sequences such as "Mod4-Return".
	Keys map[string]string `mapstructure:"keys" yaml:"keys"`

	LogLevel                 string `mapstructure:"log_level" yaml:"log_level"`
	ReconcileIntervalSeconds int    `mapstructure:"reconcile_interval_seconds" yaml:"reconcile_interval_seconds"`
}

// Binding names. TileEnter is global, the focus set is active outside a
// session and the rest only during one.
const (
	TileEnter = "tile-enter"

	FocusLeft  = "focus-left"
	FocusDown  = "focus-down"
	FocusUp    = "focus-up"
	FocusRight = "focus-right"
)

// DefaultKeys returns the default sequence for every known binding.
func DefaultKeys() map[string]string {
	return map[string]string{
		TileEnter: "Mod4-Return",

		FocusLeft:  "Mod4-Left",
		FocusDown:  "Mod4-Down",
		FocusUp:    "Mod4-Up",
		FocusRight: "Mod4-Right",

		"tile-move-left":    "Left",
		"tile-move-down":    "Down",
		"tile-move-up":      "Up",
		"tile-move-right":   "Right",
		"tile-resize-left":  "Shift-Left",
		"tile-resize-down":  "Shift-Down",
		"tile-resize-up":    "Shift-Up",
		"tile-resize-right": "Shift-Right",
		"tile-swap-left":    "Control-Left",
		"tile-swap-down":    "Control-Down",
		"tile-swap-up":      "Control-Up",
		"tile-swap-right":   "Control-Right",
		"tile-accept":       "Return",
		"tile-reject":       "Escape",

		"management-orientation": "o",
	}
}

func DefaultConfig() *Config {
	return &Config{
		ColumnSize:               64,
		RowSize:                  64,
		GapInner:                 2,
		GapOuter:                 2,
		Scale:                    1.0,
		AutoTile:                 false,
		ActiveHint:               true,
		HintColor:                "#fbb86c",
		OverlayColor:             "#48b9c7",
		Keys:                     DefaultKeys(),
		LogLevel:                 "info",
		ReconcileIntervalSeconds: 5,
	}
}

// ValidationError reports an invalid option.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" {
		return fmt.Sprintf("%s: %s: %v", e.Source.File, e.Path, e.Err)
	}
	if e.Source.Kind == SourceEnv && e.Source.Name != "" {
		return fmt.Sprintf("$%s: %s: %v", e.Source.Name, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.ColumnSize <= 0 {
		return &ValidationError{Path: "column_size", Err: fmt.Errorf("column_size must be > 0")}
	}
	if c.RowSize <= 0 {
		return &ValidationError{Path: "row_size", Err: fmt.Errorf("row_size must be > 0")}
	}
	if c.GapInner < 0 {
		return &ValidationError{Path: "gap_inner", Err: fmt.Errorf("gap_inner must be >= 0")}
	}
	if c.GapInnerHalf < 0 {
		return &ValidationError{Path: "gap_inner_half", Err: fmt.Errorf("gap_inner_half must be >= 0")}
	}
	if c.GapOuter < 0 {
		return &ValidationError{Path: "gap_outer", Err: fmt.Errorf("gap_outer must be >= 0")}
	}
	if c.Scale <= 0 || math.IsNaN(c.Scale) || math.IsInf(c.Scale, 0) {
		return &ValidationError{Path: "scale", Err: fmt.Errorf("scale must be > 0")}
	}
	if err := c.validateGaps(); err != nil {
		return err
	}
	if _, err := ParseColor(c.HintColor); err != nil {
		return &ValidationError{Path: "hint_color", Err: err}
	}
	if _, err := ParseColor(c.OverlayColor); err != nil {
		return &ValidationError{Path: "overlay_color", Err: err}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	if c.ReconcileIntervalSeconds < 0 {
		return &ValidationError{Path: "reconcile_interval_seconds", Err: fmt.Errorf("reconcile_interval_seconds must be >= 0")}
	}

	known := DefaultKeys()
	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := known[name]; !ok {
			return &ValidationError{Path: "keys." + name, Err: fmt.Errorf("unknown binding %q", name)}
		}
		if strings.TrimSpace(c.Keys[name]) == "" {
			return &ValidationError{Path: "keys." + name, Err: fmt.Errorf("key sequence must not be empty")}
		}
	}
	return nil
}

// validateGaps keeps every gap within half of the smallest cell the grid can
// produce. Ultrawide monitors halve one cell side, so the limit is a quarter
// of the scaled column or row size. Larger gaps make a snapped tile shrink or
// drift each time it is snapped again.
func (c *Config) validateGaps() error {
	g := c.Grid()
	limit := min(g.ColumnSize, g.RowSize) / 4
	gaps := g.Gaps

	if 2*gaps.Outer > limit {
		return &ValidationError{Path: "gap_outer", Err: fmt.Errorf("gap_outer must be at most an eighth of a cell (%d scaled pixels)", limit/2)}
	}
	if gaps.Inner > limit {
		return &ValidationError{Path: "gap_inner", Err: fmt.Errorf("gap_inner must be at most a quarter of a cell (%d scaled pixels)", limit)}
	}
	if (gaps.InnerHalf > 0 && gaps.InnerHalf >= limit) || gaps.InnerHalf+gaps.Outer > limit {
		return &ValidationError{Path: "gap_inner_half", Err: fmt.Errorf("gap_inner_half plus gap_outer must be at most a quarter of a cell (%d scaled pixels)", limit)}
	}
	return nil
}

func (c *Config) innerHalf() int {
	if c.GapInnerHalf > 0 {
		return c.GapInnerHalf
	}
	return c.GapInner / 2
}

func (c *Config) scaled(v int) int {
	return int(math.Round(float64(v) * c.Scale))
}

// Grid returns the tiling grid with scale applied.
func (c *Config) Grid() tiling.Grid {
	return tiling.Grid{
		ColumnSize: c.scaled(c.ColumnSize),
		RowSize:    c.scaled(c.RowSize),
		Gaps: tiling.Gaps{
			Inner:     c.scaled(c.GapInner),
			InnerHalf: c.scaled(c.innerHalf()),
			Outer:     c.scaled(c.GapOuter),
		},
	}
}

// Sequences returns the key sequence of every binding, defaults filled in.
func (c *Config) Sequences() map[string]string {
	out := DefaultKeys()
	for name, seq := range c.Keys {
		out[name] = seq
	}
	return out
}

// HintColorValue returns hint_color as 0xRRGGBB.
func (c *Config) HintColorValue() uint32 {
	v, _ := ParseColor(c.HintColor)
	return v
}

// OverlayColorValue returns overlay_color as 0xRRGGBB.
func (c *Config) OverlayColorValue() uint32 {
	v, _ := ParseColor(c.OverlayColor)
	return v
}

// SlogLevel returns log_level as a slog level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := ParseLogLevel(c.LogLevel)
	return level
}

// ParseColor parses "#rrggbb" (or "rrggbb", "0xrrggbb").
func ParseColor(s string) (uint32, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")
	hex = strings.TrimPrefix(strings.ToLower(hex), "0x")
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q must be #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q must be #rrggbb", s)
	}
	return uint32(v), nil
}

// ParseLogLevel maps debug, info, warn (or warning) and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// SaveTo validates the configuration and writes it to path.
//
// Note: this marshals the effective config and will not preserve comments
// from the original YAML.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}
