// Package listflags holds flags shared by list-style commands.
package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all flag to list commands.
func AddAllFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("all", false, "Include snoozed tasks")
		return
	}

	cmd.Flags().BoolVar(target, "all", false, "Include snoozed tasks")
}

// AddJSONFlag adds a shared --json flag to list commands.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "json", false, "Output JSON")
}
