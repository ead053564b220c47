// internal/cli/show.go
package tuxlaunch

import "github.com/spf13/cobra"

// showCmd represents the 'show' command group for inspection commands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for showing application state",
	Long:  `The 'show' command groups subcommands that display configuration and state.`,
}

func init() {
	rootCmd.AddCommand(showCmd)
}
