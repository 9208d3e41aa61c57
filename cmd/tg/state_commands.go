package main

import (
	"github.com/spf13/cobra"

	"github.com/amonks/taskgraph/todo"
)

// check
var checkCmd = &cobra.Command{
	Use:   "check <key>...",
	Short: "Complete tasks",
	Long: `Complete tasks.

Checked tasks move to the completion history and are renumbered 0, -1, ...
from the most recent. Tasks they were blocking are reported when nothing
else blocks them. Checking a blocked task fails unless list.check-blocked
is "allow".`,
	Aliases: []string{"do", "x"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runCheck,
}

// restore
var restoreCmd = &cobra.Command{
	Use:   "restore <key>...",
	Short: "Mark completed tasks incomplete again",
	Long: `Mark completed tasks incomplete again.

Restored tasks go to the end of the list. Restoring a task that completed
tasks depend on fails unless --force is given, which restores those
dependents too. Completed tasks have numbers 0, -1, ...; pass negative
numbers after --, as in "tg restore -- -1".`,
	Aliases: []string{"uncheck", "undo"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRestore,
}

var restoreForce bool

func init() {
	rootCmd.AddCommand(checkCmd, restoreCmd)

	restoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Also restore completed tasks that depend on these")
}

func runCheck(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	var lines []string
	err = env.store.Update(func(l *todo.List) error {
		ids, err := resolveKeys(l, args)
		if err != nil {
			return err
		}
		unblocked := todo.NewTaskSet()
		for _, id := range ids {
			freed, err := l.Check(id)
			if err != nil {
				return err
			}
			unblocked = unblocked.Union(freed)
		}
		for _, id := range ids {
			lines = append(lines, "Checked "+env.describe(l, id))
		}
		for _, id := range l.Ordered(unblocked) {
			if status, _ := l.Status(id); status == todo.StatusIncomplete {
				lines = append(lines, "Unblocked "+env.describe(l, id))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	env.printLines(lines)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	var lines []string
	err = env.store.Update(func(l *todo.List) error {
		ids, err := resolveKeys(l, args)
		if err != nil {
			return err
		}
		restored := todo.NewTaskSet()
		for _, id := range ids {
			if restored.Contains(id) {
				continue
			}
			set, err := l.Restore(id, restoreForce)
			if err != nil {
				return err
			}
			restored = restored.Union(set)
		}
		for _, id := range l.Ordered(restored) {
			lines = append(lines, "Restored "+env.describe(l, id))
		}
		return nil
	})
	if err != nil {
		return err
	}

	env.printLines(lines)
	return nil
}
