// internal/cli/launch.go
package tuxlaunch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tuxai/tuxlaunch/internal/bootstrap"
	"github.com/tuxai/tuxlaunch/internal/installer"
	"github.com/tuxai/tuxlaunch/internal/logging"
	"github.com/tuxai/tuxlaunch/internal/manifest"
	"github.com/tuxai/tuxlaunch/internal/tui"
)

var warnMark = color.New(color.FgYellow).SprintFunc()

// launchCmd represents the 'launch' command, the default action of the bare
// binary: guarantee a working environment, then start the application.
var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Ensure the environment is ready, then start the chat UI",
	Long: `The 'launch' command verifies that the isolated Python runtime exists and is
active — re-executing the launcher inside it when necessary — checks the
dependency manifest, and hands control to the chat application.`,
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

// runLaunch drives the full launch pipeline. A bootstrap failure is terminal
// for this invocation and exits 1 with a remediation hint; a failure of the
// application itself triggers the one-shot recovery path: run the installer,
// tell the user to re-run, and do not retry in-process.
func runLaunch(cmd *cobra.Command, args []string) error {
	cfg := getConfig()

	root, err := cfg.EnvRoot()
	if err != nil {
		return err
	}

	proc, err := bootstrap.CurrentProcess()
	if err != nil {
		return err
	}

	state, err := bootstrap.Classify(bootstrap.Descriptor{RootPath: root}, proc.ActiveRoot)
	if err != nil {
		return err
	}
	logging.LogStage("bootstrap", "state="+state.String(), "root="+root)

	// On success with an inactive runtime this call does not return: the
	// launcher is re-executed inside the runtime and re-enters here active.
	ready, err := bootstrap.EnsureReady(bootstrap.Descriptor{RootPath: root}, proc)
	if err != nil {
		fmt.Fprintln(os.Stderr, remediation(err))
		return err
	}
	logging.LogStage("bootstrap", "state=active", "interpreter="+ready.Interpreter)

	// Opportunistic dependency re-check. The bootstrapper only guarantees an
	// interpreter; missing packages are worth a warning, not a refusal.
	deps, err := manifest.LoadFile(cfg.RequirementsPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s could not read dependency manifest: %v\n", warnMark("!"), err)
	} else {
		checker := manifest.Checker{Interpreter: ready.Interpreter}
		if missing := checker.Missing(cmd.Context(), deps); len(missing) > 0 {
			names := make([]string, len(missing))
			for i, d := range missing {
				names[i] = d.Name
			}
			fmt.Fprintf(os.Stderr, "%s missing dependencies: %s (run `tuxlaunch install`)\n",
				warnMark("!"), strings.Join(names, ", "))
			logging.LogStage("launch", "missing="+strings.Join(names, ","))
		}
	}

	logging.LogStage("launch", "event=handoff")
	if err := tui.Start(cfg); err != nil {
		logging.LogStage("launch", "event=startup-failure", "err="+err.Error())
		fmt.Fprintf(os.Stderr, "Startup failed: %v\nRunning setup to repair the installation...\n", err)
		in := &installer.Installer{
			EnvRoot:           root,
			DataDir:           cfg.DataDirPath(),
			ManifestPath:      cfg.RequirementsPath(),
			SystemInterpreter: installer.SystemInterpreterDefault(runtime.GOOS),
		}
		if setupErr := in.Install(context.Background()); setupErr != nil {
			fmt.Fprintf(os.Stderr, "Setup also failed: %v\n", setupErr)
		}
		fmt.Fprintln(os.Stderr, "Re-run `tuxlaunch` to start the application.")
		return err
	}
	return nil
}

// remediation maps a bootstrap failure to the action most likely to fix it.
func remediation(err error) string {
	switch {
	case errors.Is(err, bootstrap.ErrEnvironmentMissing):
		return "No isolated runtime found. Run `tuxlaunch install` first."
	case errors.Is(err, bootstrap.ErrInterpreterMissing):
		return "The runtime exists but its interpreter is missing — the installation looks corrupted. Run `tuxlaunch install` to rebuild it."
	default:
		var reExec *bootstrap.ReExecError
		if errors.As(err, &reExec) {
			return fmt.Sprintf("Could not re-execute the launcher (%v). Check file permissions on %s.", reExec.Err, reExec.Path)
		}
		return err.Error()
	}
}
