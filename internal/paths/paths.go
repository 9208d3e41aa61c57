// Package paths resolves default file locations.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the taskgraph directories under the data and config roots.
const AppName = "taskgraph"

// Environment variables consulted before falling back to paths under $HOME.
const (
	EnvDataHome   = "XDG_DATA_HOME"
	EnvConfigHome = "XDG_CONFIG_HOME"
)

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}

// DataDir returns the directory holding the default task list:
// $XDG_DATA_HOME/taskgraph, or ~/.local/share/taskgraph.
func DataDir() (string, error) {
	return appDir(EnvDataHome, ".local", "share")
}

// ConfigDir returns the directory holding the global config file:
// $XDG_CONFIG_HOME/taskgraph, or ~/.config/taskgraph.
func ConfigDir() (string, error) {
	return appDir(EnvConfigHome, ".config")
}

// DefaultListPath returns the default location of the task list document.
func DefaultListPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tasks.json"), nil
}

// ResolveWithDefault returns override when set and the result of defaultFn
// otherwise.
func ResolveWithDefault(override string, defaultFn func() (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	return defaultFn()
}

// appDir joins AppName onto the absolute root named by env, falling back
// to homeRelative under $HOME.
func appDir(env string, homeRelative ...string) (string, error) {
	if root := os.Getenv(env); root != "" && filepath.IsAbs(root) {
		return filepath.Join(root, AppName), nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, homeRelative...), AppName)...), nil
}
