// Package main implements the tg CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tg",
	Short: "Taskgraph - a todo list where tasks block other tasks",
	Long: `Taskgraph keeps an ordered todo list in which tasks may block one another.

Tasks are named by display number (1, 2, ... for incomplete tasks in order;
0, -1, ... for completed tasks, most recent first) or by a substring of their
description that matches exactly one task.`,
	SilenceUsage: true,
}

var (
	rootFile      string
	rootLogLevel  string
	rootLogFormat string
	rootNoColor   bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootFile, "file", "f", "", "Task list file (default $TASKGRAPH_FILE, config list.path, or ~/.local/share/taskgraph/tasks.json)")
	flags.StringVar(&rootLogLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
	flags.StringVar(&rootLogFormat, "log-format", "", "Diagnostic log format (text, json, logfmt)")
	flags.BoolVar(&rootNoColor, "no-color", false, "Disable colored output")
}
