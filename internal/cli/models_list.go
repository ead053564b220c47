// internal/cli/models_list.go
package tuxlaunch

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tuxai/tuxlaunch/internal/modelmgr"
)

// modelsListCmd implements 'models list', reporting each model variant's
// on-disk presence and its simulated load time.
var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List model variants and their status",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		mgr := modelmgr.Manager{ModelsDir: cfg.ModelsDir()}

		present := color.New(color.FgGreen).SprintFunc()
		absent := color.New(color.FgRed).SprintFunc()

		for _, info := range mgr.Available() {
			status := absent("missing")
			if info.Present {
				status = present("present")
			}
			plan := modelmgr.LoadPlan(info.Mode)
			fmt.Printf("  %-6s %-8s %s (load ~%s)\n", info.Mode, status, info.Path, modelmgr.PlanDuration(plan))
		}
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
}
