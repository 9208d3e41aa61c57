package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amonks/taskgraph/internal/config"
	"github.com/amonks/taskgraph/internal/logging"
	"github.com/amonks/taskgraph/internal/testsupport"
	"github.com/amonks/taskgraph/todo"
)

func writeGlobalConfig(t *testing.T, homeDir, content string) {
	t.Helper()
	configDir := filepath.Join(homeDir, ".config", "taskgraph")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}
}

func writeLocalConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, config.LocalFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write local config: %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	t.Setenv(config.EnvListPath, "")
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.CheckPolicy() != todo.CheckRejectBlocked {
		t.Errorf("expected default check policy, got %q", cfg.CheckPolicy())
	}
	if !cfg.ColorEnabled() {
		t.Error("expected color enabled by default")
	}

	path, err := cfg.ListPath()
	if err != nil {
		t.Fatalf("list path: %v", err)
	}
	expected := filepath.Join(homeDir, ".local", "share", "taskgraph", "tasks.json")
	if path != expected {
		t.Errorf("ListPath() = %q, expected %q", path, expected)
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	t.Setenv(config.EnvListPath, "")
	tmpDir := t.TempDir()

	writeLocalConfig(t, tmpDir, `
[list]
path = "tasks/list.json"
check-blocked = "allow"

[log]
level = "debug"

[display]
color = "never"
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.CheckPolicy() != todo.CheckAllowBlocked {
		t.Errorf("CheckPolicy() = %q, expected allow", cfg.CheckPolicy())
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, expected debug", cfg.Log.Level)
	}
	if cfg.ColorEnabled() {
		t.Error("expected color disabled")
	}
	path, _ := cfg.ListPath()
	if path != filepath.Join(tmpDir, "tasks", "list.json") {
		t.Errorf("expected relative path resolved against config dir, got %q", path)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeLocalConfig(t, tmpDir, `this is not valid toml [`)

	if _, err := config.Load(tmpDir); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeLocalConfig(t, tmpDir, `
[list]
pth = "typo.json"
`)

	_, err := config.Load(tmpDir)
	if err == nil || !strings.Contains(err.Error(), "list.pth") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	testsupport.SetupTestHome(t)

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"check policy", "[list]\ncheck-blocked = \"sometimes\"\n", todo.ErrInvalidCheckPolicy},
		{"color", "[display]\ncolor = \"rainbow\"\n", config.ErrInvalidColor},
		{"log level", "[log]\nlevel = \"loud\"\n", logging.ErrUnknownLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeLocalConfig(t, tmpDir, tt.content)
			_, err := config.Load(tmpDir)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !strings.Contains(err.Error(), "(valid: ") {
				t.Fatalf("expected valid choices in %q", err)
			}
		})
	}
}

func TestLoad_UsesGlobalWhenLocalMissing(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	t.Setenv(config.EnvListPath, "")
	writeGlobalConfig(t, homeDir, `
[list]
path = "~/notes/tasks.json"
check-blocked = "allow"

[log]
level = "warn"
`)

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	path, _ := cfg.ListPath()
	if path != filepath.Join(homeDir, "notes", "tasks.json") {
		t.Errorf("ListPath() = %q, expected home-relative path", path)
	}
	if cfg.CheckPolicy() != todo.CheckAllowBlocked {
		t.Errorf("CheckPolicy() = %q, expected allow", cfg.CheckPolicy())
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, expected warn", cfg.Log.Level)
	}
}

func TestLoad_LocalOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	t.Setenv(config.EnvListPath, "")
	writeGlobalConfig(t, homeDir, `
[list]
path = "/global/tasks.json"
check-blocked = "allow"

[log]
level = "warn"
`)

	localDir := t.TempDir()
	writeLocalConfig(t, localDir, `
[list]
path = "/local/tasks.json"

[log]
level = ""
`)

	cfg, err := config.Load(localDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	path, _ := cfg.ListPath()
	if path != "/local/tasks.json" {
		t.Errorf("ListPath() = %q, expected local path", path)
	}
	if cfg.CheckPolicy() != todo.CheckAllowBlocked {
		t.Errorf("expected global check policy to survive, got %q", cfg.CheckPolicy())
	}
	if cfg.Log.Level != "" {
		t.Errorf("expected empty local level to override global, got %q", cfg.Log.Level)
	}
}

func TestListPath_EnvOverrides(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()
	writeLocalConfig(t, tmpDir, "[list]\npath = \"/config/tasks.json\"\n")
	t.Setenv(config.EnvListPath, "/env/tasks.json")

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	path, err := cfg.ListPath()
	if err != nil {
		t.Fatalf("list path: %v", err)
	}
	if path != "/env/tasks.json" {
		t.Errorf("ListPath() = %q, expected env override", path)
	}
}
