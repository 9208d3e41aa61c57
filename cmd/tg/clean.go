package main

import (
	"github.com/spf13/cobra"

	"github.com/amonks/taskgraph/todo"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Rebuild the task order from the dependency graph",
	Long: `Rebuild the task order from the dependency graph.

Incomplete tasks are sorted so blockers come before the tasks they block,
then by priority, then by due date, keeping the current order otherwise.
Clean also repairs a task list whose orderings have drifted out of sync
with the tasks it holds.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{lenient: true})
	if err != nil {
		return err
	}

	var lines []string
	err = env.store.Update(func(l *todo.List) error {
		changed := l.Clean()
		for _, id := range l.Ordered(changed) {
			lines = append(lines, "Renumbered "+env.describe(l, id))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(lines) == 0 {
		env.printf("Nothing to clean.\n")
		return nil
	}
	env.printLines(lines)
	return nil
}
