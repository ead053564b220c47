// internal/cli/show_config.go
package tuxlaunch

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

// showConfigCmd implements 'show config', which prints the merged
// configuration (file values overridden by flags).
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config is loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		if cfg.ConfigPath == "" {
			fmt.Println("No config file loaded (using defaults).")
		} else {
			fmt.Printf("Config file: %s\n\n", cfg.ConfigPath)
		}

		root, err := cfg.EnvRoot()
		if err != nil {
			root = fmt.Sprintf("(unresolvable: %v)", err)
		}

		fmt.Println("Current configuration:")
		fmt.Printf("  Runtime root:  %s\n", root)
		fmt.Printf("  Data dir:      %s\n", cfg.DataDirPath())
		fmt.Printf("  Manifest:      %s\n", cfg.RequirementsPath())
		fmt.Printf("  Model mode:    %s\n", cfg.DefaultModelMode())
		fmt.Printf("  Reply delay:   %s\n", cfg.ReplyDelay())
		fmt.Printf("  Log file:      %s\n", cfg.LogFilePath())
		fmt.Printf("  Debug:         %v\n", cfg.Debug)

		if cfg.Debug {
			fmt.Println()
			pp.Println(cfg)
		}
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
