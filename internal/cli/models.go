// internal/cli/models.go
package tuxlaunch

import "github.com/spf13/cobra"

// modelsCmd represents the 'models' command group.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Group commands for the simulated model variants",
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
