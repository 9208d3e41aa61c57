package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/taskgraph/internal/config"
	"github.com/amonks/taskgraph/internal/paths"
)

// EnsureHomeDirs creates the default data and config directories under homeDir.
func EnsureHomeDirs(homeDir string) error {
	for _, dir := range [][]string{{".local", "share"}, {".config"}} {
		path := filepath.Join(append(append([]string{homeDir}, dir...), paths.AppName)...)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
	}
	return nil
}

// SetupTestHome creates a temp home directory with the default data and
// config dirs, points HOME at it, and clears the XDG overrides.
func SetupTestHome(t testing.TB) string {
	t.Helper()

	homeDir := t.TempDir()
	if err := EnsureHomeDirs(homeDir); err != nil {
		t.Fatalf("setup home dir: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv(paths.EnvDataHome, "")
	t.Setenv(paths.EnvConfigHome, "")
	t.Setenv(config.EnvListPath, "")
	return homeDir
}
