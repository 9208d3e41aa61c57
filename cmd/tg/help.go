package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/taskgraph/internal/config"
)

// helpTopics are the non-command pages reachable through `tg help TOPIC`.
var helpTopics = map[string]string{
	"keys": `Task keys

Commands that take a KEY accept either a display number or a piece of a
task's description.

  1, 2, 3 ...   incomplete tasks, in list order
  0, -1, -2 ... completed tasks, most recently checked first
  text          any task whose description contains text (case-sensitive)

A text key must match exactly one task. Numbers shift as tasks are added,
checked and removed, so every key on a command line is resolved before the
command changes anything.

Negative numbers look like flags to the parser. Put them after --:

  tg restore -- -1
`,
	"dates": `Date values

Flags such as --due and --snooze, and the due and snooze commands, accept:

  now                 the current time
  today, tomorrow     midnight at the start of that day
  monday ... sunday   midnight on the next such day, never today
  +3d, 2w, 5h, 90m    an offset from now
  2026-01-02          midnight on that day, local time
  2026-01-02 15:04    a local time (2026-01-02T15:04 also works)
  RFC 3339            for example 2026-01-02T15:04:05Z

Optional dates also accept none or never, which clear the value.
`,
	"config": `Configuration

Settings are read from config.toml in $XDG_CONFIG_HOME/taskgraph (default
~/.config/taskgraph) and then from ` + config.LocalFileName + ` in the working
directory. A key set in the local file wins, even when it is set to an empty
value.

  [list]
  path = "tasks.json"        # relative to the file that sets it
  check-blocked = "reject"   # or "allow"

  [log]
  level = "warn"             # debug, info, warn, error
  format = "text"            # text, json, logfmt

  [display]
  color = "auto"             # or "never"

Without list.path the list lives in $XDG_DATA_HOME/taskgraph/tasks.json
(default ~/.local/share/taskgraph/tasks.json). $` + config.EnvListPath + ` overrides
list.path, and --file overrides both.
`,
}

var helpCmd = &cobra.Command{
	Use:   "help [command | topic]",
	Short: "Help about any command or topic",
	Long: `Help about any command.

Additional topics: ` + strings.Join(helpTopicNames(), ", ") + `.`,
	Args: cobra.ArbitraryArgs,
	RunE: runHelp,
}

func init() {
	rootCmd.SetHelpCommand(helpCmd)
}

func helpTopicNames() []string {
	names := make([]string, 0, len(helpTopics))
	for name := range helpTopics {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func runHelp(cmd *cobra.Command, args []string) error {
	root := cmd.Root()
	if len(args) == 0 {
		return root.Help()
	}

	if len(args) == 1 {
		if text, ok := helpTopics[strings.ToLower(args[0])]; ok {
			_, err := fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		}
	}

	target, _, err := root.Find(args)
	if err != nil || target == nil || target == root {
		fmt.Fprintf(cmd.ErrOrStderr(), "Unknown help topic %q\n", strings.Join(args, " "))
		return root.Help()
	}

	return target.Help()
}
