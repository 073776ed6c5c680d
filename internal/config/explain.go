package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given option path and its
// source.
//
// Supported paths include:
//
//	column_size
//	row_size
//	gap_inner
//	gap_inner_half
//	gap_outer
//	scale
//	auto_tile (accepted, currently without effect)
//	active_hint
//	hint_color
//	overlay_color
//	log_level
//	reconcile_interval_seconds
//	keys
//	keys.<binding>
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	if path == "keys" {
		for key, src := range res.Sources {
			if strings.HasPrefix(key, "keys.") && src.Kind != SourceDefault {
				return value, src, nil
			}
		}
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	if name, ok := strings.CutPrefix(path, "keys."); ok {
		seq, ok := cfg.Sequences()[name]
		if !ok {
			return nil, fmt.Errorf("unknown binding %q", name)
		}
		return seq, nil
	}

	switch path {
	case "column_size":
		return cfg.ColumnSize, nil
	case "row_size":
		return cfg.RowSize, nil
	case "gap_inner":
		return cfg.GapInner, nil
	case "gap_inner_half":
		return cfg.innerHalf(), nil
	case "gap_outer":
		return cfg.GapOuter, nil
	case "scale":
		return cfg.Scale, nil
	case "auto_tile":
		return cfg.AutoTile, nil
	case "active_hint":
		return cfg.ActiveHint, nil
	case "hint_color":
		return cfg.HintColor, nil
	case "overlay_color":
		return cfg.OverlayColor, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "reconcile_interval_seconds":
		return cfg.ReconcileIntervalSeconds, nil
	case "keys":
		return cfg.Sequences(), nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}

// FormatSource renders a source for display.
func FormatSource(src Source) string {
	switch src.Kind {
	case SourceFile:
		return "file " + src.File
	case SourceEnv:
		return "env $" + src.Name
	default:
		return "default"
	}
}
