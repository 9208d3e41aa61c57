package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/taskgraph/todo"
)

// block
var blockCmd = &cobra.Command{
	Use:   "block <key> --on <key>...",
	Short: "Make a task wait on other tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlock,
}

var blockOn []string

// unblock
var unblockCmd = &cobra.Command{
	Use:   "unblock <key> [--from <key>]...",
	Short: "Remove blockers from a task (all of them unless --from is given)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnblock,
}

var unblockFrom []string

// chain
var chainCmd = &cobra.Command{
	Use:   "chain <key> <key>...",
	Short: "Make each task block the next",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runChain,
}

// merge
var mergeCmd = &cobra.Command{
	Use:   "merge <key> <key>... --into <desc>",
	Short: "Replace tasks with one task that inherits their edges",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMerge,
}

var mergeInto string

// path
var pathCmd = &cobra.Command{
	Use:   "path <from> <to>",
	Short: "Show the tasks between two tasks in the dependency graph",
	Args:  cobra.ExactArgs(2),
	RunE:  runPath,
}

// tree
var treeCmd = &cobra.Command{
	Use:   "tree <key>",
	Short: "Show the tree of tasks blocking a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func init() {
	rootCmd.AddCommand(blockCmd, unblockCmd, chainCmd, mergeCmd, pathCmd, treeCmd)

	blockCmd.Flags().StringArrayVar(&blockOn, "on", nil, "Task that must be done first (repeatable)")
	_ = blockCmd.MarkFlagRequired("on")
	unblockCmd.Flags().StringArrayVar(&unblockFrom, "from", nil, "Blocker to remove (repeatable)")
	mergeCmd.Flags().StringVar(&mergeInto, "into", "", "Description of the merged task")
	_ = mergeCmd.MarkFlagRequired("into")
}

func runBlock(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	var line string
	err = env.store.Update(func(l *todo.List) error {
		blocked, err := resolveKey(l, args[0])
		if err != nil {
			return err
		}
		blockers, err := resolveKeys(l, blockOn)
		if err != nil {
			return err
		}
		for _, blocker := range blockers {
			if err := l.Block(blocker, blocked); err != nil {
				return err
			}
		}
		line = fmt.Sprintf("Blocked %s on %s", env.describe(l, blocked), formatNumbers(l, blockers, env.styles))
		return nil
	})
	if err != nil {
		return err
	}

	env.printf("%s\n", line)
	return nil
}

func runUnblock(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	var line string
	err = env.store.Update(func(l *todo.List) error {
		blocked, err := resolveKey(l, args[0])
		if err != nil {
			return err
		}
		from, err := resolveKeys(l, unblockFrom)
		if err != nil {
			return err
		}
		if err := l.UnblockFrom(blocked, from...); err != nil {
			return err
		}
		line = "Unblocked " + env.describe(l, blocked)
		return nil
	})
	if err != nil {
		return err
	}

	env.printf("%s\n", line)
	return nil
}

func runChain(cmd *cobra.Command, args []string) error {
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
		if err := l.Chain(ids); err != nil {
			return err
		}
		for _, id := range ids {
			lines = append(lines, "Chained "+env.describe(l, id))
		}
		return nil
	})
	if err != nil {
		return err
	}

	env.printLines(lines)
	return nil
}

func runMerge(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	var line string
	err = env.store.Update(func(l *todo.List) error {
		ids, err := resolveKeys(l, args)
		if err != nil {
			return err
		}
		merged, err := l.Merge(ids, todo.NormalizeDesc(mergeInto))
		if err != nil {
			return err
		}
		line = "Merged into " + env.describe(l, merged)
		return nil
	})
	if err != nil {
		return err
	}

	env.printf("%s\n", line)
	return nil
}

func runPath(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	return env.store.View(func(l *todo.List) error {
		ids, err := resolveKeys(l, args)
		if err != nil {
			return err
		}
		path, err := l.Path(ids[0], ids[1])
		if err != nil {
			return err
		}
		lines := make([]string, 0, len(path))
		for _, id := range path {
			lines = append(lines, env.describe(l, id))
		}
		env.printf("%s\n", strings.Join(lines, "\n"))
		return nil
	})
}

func runTree(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	return env.store.View(func(l *todo.List) error {
		id, err := resolveKey(l, args[0])
		if err != nil {
			return err
		}
		tree, err := l.DepTree(id)
		if err != nil {
			return err
		}
		printDepTree(env.out, l, tree, "", true, env.styles)
		return nil
	})
}
