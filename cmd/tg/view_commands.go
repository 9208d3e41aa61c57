package main

import (
	"errors"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/taskgraph/internal/listflags"
	"github.com/amonks/taskgraph/internal/validation"
	"github.com/amonks/taskgraph/todo"
)

// list
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List incomplete tasks in order",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listAll  bool
	listJSON bool
)

// ready
var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "List tasks ready to work on (not blocked or snoozed)",
	Args:  cobra.NoArgs,
	RunE:  runReady,
}

var (
	readyLimit int
	readyJSON  bool
)

// done
var doneCmd = &cobra.Command{
	Use:   "done",
	Short: "List completed tasks, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runDone,
}

var (
	doneLimit int
	doneJSON  bool
)

// show
var showCmd = &cobra.Command{
	Use:   "show <key>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

var showJSON bool

// find
var findCmd = &cobra.Command{
	Use:   "find <text>",
	Short: "List tasks whose description contains text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFind,
}

var findJSON bool

// export
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print every task with derived fields as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var exportFormat string

var errUnknownExportFormat = errors.New("unknown export format")

func init() {
	rootCmd.AddCommand(listCmd, readyCmd, doneCmd, showCmd, findCmd, exportCmd)

	listflags.AddAllFlag(listCmd, &listAll)
	listflags.AddJSONFlag(listCmd, &listJSON)

	readyCmd.Flags().IntVar(&readyLimit, "limit", 20, "Maximum number of tasks to show (0 for all)")
	listflags.AddJSONFlag(readyCmd, &readyJSON)

	doneCmd.Flags().IntVar(&doneLimit, "limit", 20, "Maximum number of tasks to show (0 for all)")
	listflags.AddJSONFlag(doneCmd, &doneJSON)

	listflags.AddJSONFlag(showCmd, &showJSON)
	listflags.AddJSONFlag(findCmd, &findJSON)

	exportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "Output format (yaml, json)")
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	return env.store.View(func(l *todo.List) error {
		total := 0
		var ids []todo.ID
		for id := range l.IncompleteTasks() {
			total++
			if snoozed, _ := l.IsSnoozed(id); snoozed && !listAll {
				continue
			}
			ids = append(ids, id)
		}

		if listJSON {
			return encodeJSON(env.out, todo.Export(l, slices.Values(ids)))
		}
		if len(ids) == 0 {
			env.printf("%s\n", taskEmptyListMessage(total, listAll))
			return nil
		}
		env.printf("%s", formatTaskTable(l, ids, env.styles, l.Now()))
		return nil
	})
}

func runReady(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	return env.store.View(func(l *todo.List) error {
		ids := limitIDs(l.Actionable(), readyLimit)

		if readyJSON {
			return encodeJSON(env.out, todo.Export(l, slices.Values(ids)))
		}
		if len(ids) == 0 {
			env.printf("No ready tasks.\n")
			return nil
		}
		env.printf("%s", formatTaskTable(l, ids, env.styles, l.Now()))
		return nil
	})
}

func runDone(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	return env.store.View(func(l *todo.List) error {
		ids := slices.Collect(l.CompleteTasks())
		slices.Reverse(ids)
		ids = limitIDs(ids, doneLimit)

		if doneJSON {
			return encodeJSON(env.out, todo.Export(l, slices.Values(ids)))
		}
		if len(ids) == 0 {
			env.printf("%s\n", doneEmptyListMessage())
			return nil
		}
		env.printf("%s", formatDoneTable(l, ids, env.styles, l.Now()))
		return nil
	})
}

func limitIDs(ids []todo.ID, limit int) []todo.ID {
	if limit > 0 && len(ids) > limit {
		return ids[:limit]
	}
	return ids
}

func runShow(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	return env.store.View(func(l *todo.List) error {
		ids, err := resolveKeys(l, args)
		if err != nil {
			return err
		}

		if showJSON {
			return encodeJSON(env.out, todo.Export(l, slices.Values(ids)))
		}
		for i, id := range ids {
			if i > 0 {
				env.printf("---\n")
			}
			if err := printTaskDetail(env.out, l, id, env.styles, env.color, l.Now()); err != nil {
				return err
			}
		}
		return nil
	})
}

func runFind(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}
	text := strings.Join(args, " ")

	return env.store.View(func(l *todo.List) error {
		ids := l.LookupByName(text)

		if findJSON {
			return encodeJSON(env.out, todo.Export(l, slices.Values(ids)))
		}
		if len(ids) == 0 {
			env.printf("No tasks match %q.\n", text)
			return nil
		}
		env.printf("%s", formatMatchTable(l, ids, env.styles))
		return nil
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd, openOptions{})
	if err != nil {
		return err
	}

	return env.store.View(func(l *todo.List) error {
		switch strings.ToLower(strings.TrimSpace(exportFormat)) {
		case "yaml", "yml":
			return todo.WriteYAML(env.out, l)
		case "json":
			return todo.WriteJSON(env.out, l)
		default:
			return validation.FormatInvalidValueError(errUnknownExportFormat, exportFormat, []string{"yaml", "json"})
		}
	})
}
