package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SNAPTILE_COLUMN_SIZE.
const EnvPrefix = "SNAPTILE"

// PathEnv overrides the config file location.
const PathEnv = EnvPrefix + "_CONFIG"

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
	SourceEnv     SourceKind = "env"
)

type Source struct {
	Kind SourceKind
	Name string // env variable for SourceEnv
	File string
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // option path -> where its value came from
	File    string            // loaded file, empty when none existed
}

func DefaultConfigPath() (string, error) {
	if path := strings.TrimSpace(os.Getenv(PathEnv)); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "snaptile", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	res, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadFromPath reads path over the defaults, applies SNAPTILE_* environment
// overrides and validates the result. A missing file yields the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("column_size", defaults.ColumnSize)
	v.SetDefault("row_size", defaults.RowSize)
	v.SetDefault("gap_inner", defaults.GapInner)
	v.SetDefault("gap_inner_half", defaults.GapInnerHalf)
	v.SetDefault("gap_outer", defaults.GapOuter)
	v.SetDefault("scale", defaults.Scale)
	v.SetDefault("auto_tile", defaults.AutoTile)
	v.SetDefault("active_hint", defaults.ActiveHint)
	v.SetDefault("hint_color", defaults.HintColor)
	v.SetDefault("overlay_color", defaults.OverlayColor)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("reconcile_interval_seconds", defaults.ReconcileIntervalSeconds)
	for name, seq := range defaults.Keys {
		v.SetDefault("keys."+name, seq)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	file := ""
	if exists, err := pathExists(path); err != nil {
		return nil, err
	} else if exists {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		file = path
	}

	cfg := &Config{}
	if err := v.UnmarshalExact(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	sources := collectSources(v, file)
	if err := cfg.Validate(); err != nil {
		return nil, attachSourceContext(err, sources)
	}

	return &LoadResult{Config: cfg, Sources: sources, File: file}, nil
}

func collectSources(v *viper.Viper, file string) map[string]Source {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	sources := make(map[string]Source)
	for _, key := range v.AllKeys() {
		env := EnvPrefix + "_" + strings.ToUpper(replacer.Replace(key))
		switch {
		case envSet(env):
			sources[key] = Source{Kind: SourceEnv, Name: env}
		case file != "" && v.InConfig(key):
			sources[key] = Source{Kind: SourceFile, File: file}
		default:
			sources[key] = Source{Kind: SourceDefault, Name: "defaults"}
		}
	}
	return sources
}

func envSet(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

func attachSourceContext(err error, sources map[string]Source) error {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	if src, ok := sources[ve.Path]; ok {
		ve.Source = src
	}
	return ve
}

// Keys returns the option paths known to a load result, sorted.
func (r *LoadResult) Keys() []string {
	keys := make([]string, 0, len(r.Sources))
	for key := range r.Sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}
