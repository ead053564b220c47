// internal/cli/install.go
package tuxlaunch

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tuxai/tuxlaunch/internal/installer"
)

// installCmd represents the 'install' command. It is the independent setup
// procedure the launcher's error messages point at; the launch path never
// runs it implicitly.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Create the isolated runtime and install dependencies",
	Long: `The 'install' command materializes the project layout, creates the isolated
Python runtime, and installs the dependency manifest into it. Every step is
idempotent, so re-running after a partial install is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		root, err := cfg.EnvRoot()
		if err != nil {
			return err
		}
		in := &installer.Installer{
			EnvRoot:           root,
			DataDir:           cfg.DataDirPath(),
			ManifestPath:      cfg.RequirementsPath(),
			SystemInterpreter: installer.SystemInterpreterDefault(runtime.GOOS),
		}
		return in.Install(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
