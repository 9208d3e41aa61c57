// Package config handles loading taskgraph.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amonks/taskgraph/internal/logging"
	"github.com/amonks/taskgraph/internal/paths"
	"github.com/amonks/taskgraph/internal/validation"
	"github.com/amonks/taskgraph/todo"
)

// EnvListPath names the environment variable that overrides the list path.
const EnvListPath = "TASKGRAPH_FILE"

// LocalFileName is the name of the per-directory config file.
const LocalFileName = "taskgraph.toml"

// Color modes for terminal output.
const (
	ColorAuto  = "auto"
	ColorNever = "never"
)

// ErrInvalidColor is returned for an unknown display.color mode.
var ErrInvalidColor = errors.New("unknown color mode")

// Config represents the taskgraph.toml configuration file.
type Config struct {
	List    List    `toml:"list"`
	Log     Log     `toml:"log"`
	Display Display `toml:"display"`
}

// List contains task list configuration.
type List struct {
	// Path is the task list document. Relative paths are resolved against
	// the directory of the file that set them.
	Path string `toml:"path"`

	// CheckBlocked is "reject" (default) or "allow".
	CheckBlocked string `toml:"check-blocked"`
}

// Log contains logging configuration.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`

	// Format is one of text, json, logfmt.
	Format string `toml:"format"`
}

// Display contains terminal output configuration.
type Display struct {
	// Color is "auto" (default) or "never".
	Color string `toml:"color"`
}

// Load loads configuration from dir and the global config file. The local
// file overrides any key it defines, including with an empty value.
// Returns an empty config if no config files exist.
func Load(dir string) (*Config, error) {
	globalDir, err := paths.ConfigDir()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(filepath.Join(globalDir, "config.toml"))
	if err != nil {
		return nil, err
	}

	localCfg, localMeta, err := loadConfigFile(filepath.Join(dir, LocalFileName))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, localCfg, globalMeta, localMeta, globalDir, dir)
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %s", path, undecoded[0])
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, localCfg *Config, globalMeta, localMeta toml.MetaData, globalDir, localDir string) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if localCfg == nil {
		localCfg = &Config{}
	}

	merged := Config{}
	switch {
	case localMeta.IsDefined("list", "path"):
		merged.List.Path = resolvePath(localCfg.List.Path, localDir)
	case globalMeta.IsDefined("list", "path"):
		merged.List.Path = resolvePath(globalCfg.List.Path, globalDir)
	}
	merged.List.CheckBlocked = mergeString(localMeta.IsDefined("list", "check-blocked"), localCfg.List.CheckBlocked, globalCfg.List.CheckBlocked)
	merged.Log.Level = mergeString(localMeta.IsDefined("log", "level"), localCfg.Log.Level, globalCfg.Log.Level)
	merged.Log.Format = mergeString(localMeta.IsDefined("log", "format"), localCfg.Log.Format, globalCfg.Log.Format)
	merged.Display.Color = mergeString(localMeta.IsDefined("display", "color"), localCfg.Display.Color, globalCfg.Display.Color)

	return &merged
}

func mergeString(localDefined bool, localValue, globalValue string) string {
	value := globalValue
	if localDefined {
		value = localValue
	}
	return strings.TrimSpace(value)
}

func resolvePath(path, base string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := paths.HomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func (c *Config) validate() error {
	if _, err := todo.ParseCheckPolicy(c.List.CheckBlocked); err != nil {
		return fmt.Errorf("list.check-blocked: %w", err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logging.ParseFormatter(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	switch strings.ToLower(c.Display.Color) {
	case "", ColorAuto, ColorNever:
	default:
		err := validation.FormatInvalidValueError(ErrInvalidColor, c.Display.Color, []string{ColorAuto, ColorNever})
		return fmt.Errorf("display.color: %w", err)
	}
	return nil
}

// ListPath returns the task list location: $TASKGRAPH_FILE, then the
// configured path, then the default under the user's data directory.
func (c *Config) ListPath() (string, error) {
	if env := strings.TrimSpace(os.Getenv(EnvListPath)); env != "" {
		return env, nil
	}
	return paths.ResolveWithDefault(c.List.Path, paths.DefaultListPath)
}

// CheckPolicy returns the configured check policy.
func (c *Config) CheckPolicy() todo.CheckPolicy {
	policy, err := todo.ParseCheckPolicy(c.List.CheckBlocked)
	if err != nil {
		return todo.CheckRejectBlocked
	}
	return policy
}

// ColorEnabled reports whether color output is allowed at all.
func (c *Config) ColorEnabled() bool {
	return !strings.EqualFold(c.Display.Color, ColorNever)
}
