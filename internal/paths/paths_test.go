package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := filepath.Join("/tmp", "test-home")
	t.Setenv("HOME", home)
	t.Setenv(EnvDataHome, "")
	t.Setenv(EnvConfigHome, "")
	return home
}

func TestDefaultsUnderHome(t *testing.T) {
	home := setHome(t)

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"list", DefaultListPath, filepath.Join(home, ".local", "share", "taskgraph", "tasks.json")},
		{"data", DataDir, filepath.Join(home, ".local", "share", "taskgraph")},
		{"config", ConfigDir, filepath.Join(home, ".config", "taskgraph")},
		{"home", HomeDir, home},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestXDGOverrides(t *testing.T) {
	setHome(t)
	t.Setenv(EnvDataHome, "/srv/data")
	t.Setenv(EnvConfigHome, "/srv/config")

	if got, _ := DefaultListPath(); got != filepath.Join("/srv/data", "taskgraph", "tasks.json") {
		t.Fatalf("expected list under XDG_DATA_HOME, got %s", got)
	}
	if got, _ := ConfigDir(); got != filepath.Join("/srv/config", "taskgraph") {
		t.Fatalf("expected config under XDG_CONFIG_HOME, got %s", got)
	}
}

func TestXDGRelativeValueIgnored(t *testing.T) {
	home := setHome(t)
	t.Setenv(EnvDataHome, "relative/data")

	got, err := DataDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(home, ".local", "share", "taskgraph"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestWorkingDirReturnsCurrentDir(t *testing.T) {
	workDir := t.TempDir()
	t.Chdir(workDir)

	resolved, err := WorkingDir()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resolved != workDir {
		t.Fatalf("expected %s, got %s", workDir, resolved)
	}
}

func TestResolveWithDefault(t *testing.T) {
	got, err := ResolveWithDefault("/custom/tasks.json", DefaultListPath)
	if err != nil || got != "/custom/tasks.json" {
		t.Fatalf("expected override, got %q (%v)", got, err)
	}

	failing := func() (string, error) { return "", os.ErrNotExist }
	if _, err := ResolveWithDefault("", failing); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
