package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/amonks/taskgraph/internal/config"
	"github.com/amonks/taskgraph/internal/logging"
	"github.com/amonks/taskgraph/internal/paths"
	"github.com/amonks/taskgraph/internal/ui"
	"github.com/amonks/taskgraph/todo"
)

// envNow pins the clock, for scripted tests.
const envNow = "TASKGRAPH_NOW"

// cliEnv is everything a command needs to touch the task list.
type cliEnv struct {
	cfg    *config.Config
	store  *todo.Store
	logger *log.Logger
	styles ui.Styles
	color  bool
	clock  todo.Clock
	out    io.Writer
}

type openOptions struct {
	// lenient accepts out-of-sync orderings so clean can repair them.
	lenient bool
}

func openEnv(cmd *cobra.Command, opts openOptions) (*cliEnv, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if cmd.Flags().Changed("log-level") {
		level = rootLogLevel
	}
	format := cfg.Log.Format
	if cmd.Flags().Changed("log-format") {
		format = rootLogFormat
	}
	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: level, Format: format, Prefix: "tg"})
	if err != nil {
		return nil, err
	}

	path := strings.TrimSpace(rootFile)
	if path == "" {
		path, err = cfg.ListPath()
		if err != nil {
			return nil, err
		}
	}

	clock, err := cliClock()
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	color := cfg.ColorEnabled() && !rootNoColor && ui.ColorEnabled(out)
	logger.Debug("opening task list", "path", path, "check_policy", cfg.CheckPolicy(), "lenient", opts.lenient)

	store := todo.OpenStore(path, todo.StoreOptions{
		List: todo.Options{
			Clock:       clock,
			CheckPolicy: cfg.CheckPolicy(),
		},
		Logger:  logger,
		Lenient: opts.lenient,
	})

	return &cliEnv{
		cfg:    cfg,
		store:  store,
		logger: logger,
		styles: ui.NewStyles(color),
		color:  color,
		clock:  clock,
		out:    out,
	}, nil
}

func cliClock() (todo.Clock, error) {
	value := strings.TrimSpace(os.Getenv(envNow))
	if value == "" {
		return todo.SystemClock{}, nil
	}
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", envNow, err)
	}
	return todo.ClockFunc(func() time.Time { return now }), nil
}

func (env *cliEnv) printf(format string, args ...any) {
	fmt.Fprintf(env.out, format, args...)
}

// describe renders "N: desc" for a live task.
func (env *cliEnv) describe(l *todo.List, id todo.ID) string {
	number, err := l.Number(id)
	if err != nil {
		return id.String()
	}
	task, _ := l.Get(id)
	return fmt.Sprintf("%s: %s", env.styles.Number(number), task.Desc)
}

func (env *cliEnv) printLines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(env.out, line)
	}
}
