package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/amonks/taskgraph/internal/config"
	"github.com/amonks/taskgraph/internal/paths"
	"github.com/amonks/taskgraph/todo"
)

var (
	buildOnce sync.Once
	tgPath    string
	buildErr  error
)

// BuildTG builds the tg binary once and returns its path.
func BuildTG(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "tg-bin-")
		if err != nil {
			buildErr = err
			return
		}

		tgPath = filepath.Join(binDir, "tg")
		cmd := exec.Command("go", "build", "-o", tgPath, "./cmd/tg")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build tg: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return tgPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TG", BuildTG(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv(config.EnvListPath, "")
	env.Setenv(paths.EnvDataHome, "")
	env.Setenv(paths.EnvConfigHome, "")
	env.Setenv("EDITOR", "")
	env.Setenv("VISUAL", "")
	env.Setenv("NO_COLOR", "1")
	env.Setenv("TZ", "UTC")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdTaskNumber finds a task by description in `tg list --json` output and
// stores its display number in an env var.
func CmdTaskNumber(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("tasknum does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: tasknum FILE DESC VAR")
	}

	var items []todo.ExportedTask
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}

	desc := args[1]
	for _, item := range items {
		if item.Desc == desc {
			ts.Setenv(args[2], strconv.Itoa(item.Number))
			return
		}
	}

	ts.Fatalf("task %q not found", desc)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
