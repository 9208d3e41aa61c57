package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/taskgraph/internal/editor"
	"github.com/amonks/taskgraph/todo"
)

// add
var addCmd = &cobra.Command{
	Use:   "add <desc>...",
	Short: "Add a task to the end of the list",
	Long: `Add a task to the end of the list.

The description is the arguments joined by spaces; use '-' to read it from
stdin. With no description, opens $EDITOR when running interactively. Use
--edit to force the editor, or --no-edit to skip it.`,
	Aliases: []string{"a"},
	RunE:    runAdd,
}

var (
	addPriority  int
	addDue       = dateValue{optional: true}
	addSnooze    dateValue
	addBlockedBy []string
	addBlocks    []string
	addEdit      bool
	addNoEdit    bool
)

// edit
var editCmd = &cobra.Command{
	Use:   "edit <key>",
	Short: "Edit a task",
	Long: `Edit a task.

By default, opens $EDITOR to edit a TOML representation of the task when
running interactively and no update flags are provided. Use --no-edit to
skip the editor, or --edit to force opening it.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editDesc     string
	editPriority int
	editDue      = dateValue{optional: true}
	editSnooze   dateValue
	editEdit     bool
	editNoEdit   bool
)

// rm
var rmCmd = &cobra.Command{
	Use:     "rm <key>...",
	Short:   "Remove tasks and their dependency edges",
	Aliases: []string{"remove", "delete"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRm,
}

// prio
var prioCmd = &cobra.Command{
	Use:     "prio <key>... <priority>",
	Short:   "Set the priority of tasks (higher is more urgent)",
	Aliases: []string{"priority"},
	Args:    cobra.MinimumNArgs(2),
	RunE:    runPrio,
}

// due
var dueCmd = &cobra.Command{
	Use:   "due <key>... <date|none>",
	Short: "Set or clear the due date of tasks",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runDue,
}

// snooze
var snoozeCmd = &cobra.Command{
	Use:   "snooze <key>... <date>",
	Short: "Hide tasks until a date",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSnooze,
}

// unsnooze
var unsnoozeCmd = &cobra.Command{
	Use:   "unsnooze <key>...",
	Short: "Start snoozed tasks now",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUnsnooze,
}

// punt
var puntCmd = &cobra.Command{
	Use:   "punt <key>...",
	Short: "Move tasks to the end of the list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPunt,
}

func init() {
	rootCmd.AddCommand(addCmd, editCmd, rmCmd, prioCmd, dueCmd, snoozeCmd, unsnoozeCmd, puntCmd)
	addTaskFlagAliases(addCmd, editCmd)

	addCmd.Flags().IntVarP(&addPriority, "priority", "p", 0, "Priority (higher is more urgent)")
	addDateFlag(addCmd.Flags(), &addDue, "due", "Due date, or none")
	addDateFlag(addCmd.Flags(), &addSnooze, "snooze", "Hide the task until this date")
	addCmd.Flags().StringArrayVarP(&addBlockedBy, "blocked-by", "b", nil, "Task that must be done first (repeatable)")
	addCmd.Flags().StringArrayVar(&addBlocks, "blocks", nil, "Task that waits on the new task (repeatable)")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Open $EDITOR (default if interactive and no description)")
	addCmd.Flags().BoolVar(&addNoEdit, "no-edit", false, "Do not open $EDITOR")

	editCmd.Flags().StringVarP(&editDesc, "desc", "d", "", "New description (use '-' to read from stdin)")
	editCmd.Flags().IntVarP(&editPriority, "priority", "p", 0, "New priority")
	addDateFlag(editCmd.Flags(), &editDue, "due", "New due date, or none")
	addDateFlag(editCmd.Flags(), &editSnooze, "snooze", "Hide the task until this date")
	editCmd.Flags().BoolVarP(&editEdit, "edit", "e", false, "Open $EDITOR (default if interactive and no update flags)")
	editCmd.Flags().BoolVar(&editNoEdit, "no-edit", false, "Do not open $EDITOR")
}

func resolveDescriptionFromStdin(description string, reader io.Reader) (string, error) {
	if description != "-" {
		return description, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}

	return strings.TrimRight(string(input), "\r\n"), nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}
	now := env.clock.Now()

	desc, err := resolveDescriptionFromStdin(strings.Join(args, " "), cmd.InOrStdin())
	if err != nil {
		return err
	}
	desc = todo.NormalizeDesc(desc)

	parsed := &editor.ParsedTask{Desc: desc, Priority: addPriority}
	if parsed.DueDate, err = resolveDateFlag(cmd, "due", &addDue, now); err != nil {
		return err
	}
	if parsed.StartDate, err = resolveDateFlag(cmd, "snooze", &addSnooze, now); err != nil {
		return err
	}

	if shouldUseEditor(desc != "", addEdit, addNoEdit, editor.IsInteractive()) {
		data := editor.DefaultCreateData()
		data.Desc = parsed.Desc
		data.Priority = parsed.Priority
		data.DueDate = parsed.DueDate
		data.StartDate = parsed.StartDate
		parsed, err = editor.EditTaskWithData(data, now)
		if err != nil {
			return err
		}
	} else if desc == "" {
		return fmt.Errorf("description is required (use --edit to open editor)")
	}

	var added string
	err = env.store.Update(func(l *todo.List) error {
		blockers, err := resolveKeys(l, addBlockedBy)
		if err != nil {
			return err
		}
		blocked, err := resolveKeys(l, addBlocks)
		if err != nil {
			return err
		}

		id, err := l.Add(parsed.Desc)
		if err != nil {
			return err
		}
		if err := parsed.Apply(l, id); err != nil {
			return err
		}
		for _, blocker := range blockers {
			if err := l.Block(blocker, id); err != nil {
				return err
			}
		}
		for _, waiting := range blocked {
			if err := l.Block(id, waiting); err != nil {
				return err
			}
		}
		added = env.describe(l, id)
		return nil
	})
	if err != nil {
		return err
	}

	env.printf("Added %s\n", added)
	return nil
}

func resolveDateFlag(cmd *cobra.Command, name string, value *dateValue, now time.Time) (*time.Time, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	resolved, err := value.Resolve(now)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return resolved, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}
	now := env.clock.Now()

	if cmd.Flags().Changed("desc") {
		if editDesc, err = resolveDescriptionFromStdin(editDesc, cmd.InOrStdin()); err != nil {
			return err
		}
	}

	hasFlags := hasChangedFlags(cmd, "desc", "priority", "due", "snooze")
	useEditor := shouldUseEditor(hasFlags, editEdit, editNoEdit, editor.IsInteractive())
	if !useEditor && !hasFlags {
		return fmt.Errorf("at least one update flag is required (use --edit to open editor)")
	}

	var updated string
	err = env.store.Update(func(l *todo.List) error {
		id, err := resolveKey(l, args[0])
		if err != nil {
			return err
		}
		task, err := l.Get(id)
		if err != nil {
			return err
		}
		number, _ := l.Number(id)

		data := editor.DataFromTask(number, task, now)
		if cmd.Flags().Changed("desc") {
			data.Desc = todo.NormalizeDesc(editDesc)
		}
		if cmd.Flags().Changed("priority") {
			data.Priority = editPriority
		}
		if cmd.Flags().Changed("due") {
			if data.DueDate, err = editDue.Resolve(now); err != nil {
				return fmt.Errorf("--due: %w", err)
			}
		}
		if cmd.Flags().Changed("snooze") {
			if data.StartDate, err = editSnooze.Resolve(now); err != nil {
				return fmt.Errorf("--snooze: %w", err)
			}
		}

		parsed := &editor.ParsedTask{
			Desc:      data.Desc,
			Priority:  data.Priority,
			DueDate:   data.DueDate,
			StartDate: data.StartDate,
		}
		if useEditor {
			if parsed, err = editor.EditTaskWithData(data, now); err != nil {
				return err
			}
		}
		if err := parsed.Apply(l, id); err != nil {
			return err
		}
		updated = env.describe(l, id)
		return nil
	})
	if err != nil {
		return err
	}

	env.printf("Updated %s\n", updated)
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
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
		for _, id := range ids {
			if !l.Contains(id) {
				continue
			}
			lines = append(lines, "Removed "+env.describe(l, id))
			if err := l.Remove(id); err != nil {
				return err
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

func runPrio(cmd *cobra.Command, args []string) error {
	keys, value := splitTrailing(args)
	priority, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid priority %q: must be an integer", value)
	}

	return updateEach(cmd, keys, "Set priority", func(l *todo.List, id todo.ID) error {
		return l.SetPriority(id, priority)
	})
}

func runDue(cmd *cobra.Command, args []string) error {
	keys, value := splitTrailing(args)
	due := dateValue{optional: true}
	if err := due.Set(value); err != nil {
		return err
	}

	return updateEach(cmd, keys, "Set due date", func(l *todo.List, id todo.ID) error {
		resolved, err := due.Resolve(l.Now())
		if err != nil {
			return err
		}
		return l.SetDueDate(id, resolved)
	})
}

func runSnooze(cmd *cobra.Command, args []string) error {
	keys, value := splitTrailing(args)
	var start dateValue
	if err := start.Set(value); err != nil {
		return err
	}

	return updateEach(cmd, keys, "Snoozed", func(l *todo.List, id todo.ID) error {
		resolved, err := start.Resolve(l.Now())
		if err != nil {
			return err
		}
		return l.SetStartDate(id, *resolved)
	})
}

func runUnsnooze(cmd *cobra.Command, args []string) error {
	return updateEach(cmd, args, "Unsnoozed", func(l *todo.List, id todo.ID) error {
		return l.SetStartDate(id, l.Now())
	})
}

func runPunt(cmd *cobra.Command, args []string) error {
	return updateEach(cmd, args, "Punted", func(l *todo.List, id todo.ID) error {
		return l.Punt(id)
	})
}

// updateEach resolves keys, applies fn to each task and reports each one
// with its number after the change.
func updateEach(cmd *cobra.Command, keys []string, verb string, fn func(l *todo.List, id todo.ID) error) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	var lines []string
	err = env.store.Update(func(l *todo.List) error {
		ids, err := resolveKeys(l, keys)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := fn(l, id); err != nil {
				return err
			}
		}
		for _, id := range ids {
			lines = append(lines, verb+" "+env.describe(l, id))
		}
		return nil
	})
	if err != nil {
		return err
	}

	env.printLines(lines)
	return nil
}
