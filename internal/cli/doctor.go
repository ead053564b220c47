// internal/cli/doctor.go
package tuxlaunch

import (
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tuxai/tuxlaunch/internal/bootstrap"
	"github.com/tuxai/tuxlaunch/internal/manifest"
)

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
)

// doctorCmd represents the 'doctor' command, which reports the environment's
// lifecycle state, the interpreter's presence, and per-dependency
// importability without mutating anything.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the isolated runtime and its dependencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()
		root, err := cfg.EnvRoot()
		if err != nil {
			return err
		}

		d := bootstrap.Descriptor{RootPath: root}
		state, err := bootstrap.Classify(d, os.Getenv(bootstrap.ActiveRootEnv))
		if err != nil {
			return err
		}

		fmt.Printf("Runtime root:  %s\n", root)
		fmt.Printf("State:         %s\n", state)

		if state == bootstrap.StateAbsent {
			fmt.Printf("%s no isolated runtime — run `tuxlaunch install`\n", failMark("✘"))
			return fmt.Errorf("isolated runtime missing at %s", root)
		}

		interp := bootstrap.InterpreterPath(root, runtime.GOOS)
		if _, err := os.Stat(interp); err != nil {
			fmt.Printf("%s interpreter missing at %s — run `tuxlaunch install`\n", failMark("✘"), interp)
			return fmt.Errorf("interpreter missing at %s", interp)
		}
		fmt.Printf("%s interpreter %s\n", okMark("✔"), interp)

		deps, err := manifest.LoadFile(cfg.RequirementsPath())
		if err != nil {
			return err
		}
		checker := manifest.Checker{Interpreter: interp}
		missing := checker.Missing(cmd.Context(), deps)
		missingSet := make(map[string]bool, len(missing))
		for _, d := range missing {
			missingSet[d.Name] = true
		}
		for _, dep := range deps {
			if missingSet[dep.Name] {
				fmt.Printf("%s %s (not importable)\n", failMark("✘"), dep)
			} else {
				fmt.Printf("%s %s\n", okMark("✔"), dep)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("%d dependencies are not importable — run `tuxlaunch install`", len(missing))
		}
		fmt.Println("Everything looks good.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
