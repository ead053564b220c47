//go:build windows

// internal/bootstrap/reexec_windows.go
package bootstrap

import (
	"os"
	"os/exec"
)

// replaceProcess approximates exec on Windows, which has no process
// replacement: spawn the launcher again with the activated environment,
// wait for it, and exit with its status so the caller observes a single
// logical process.
func replaceProcess(argv0 string, argv []string, env []string) error {
	cmd := exec.Command(argv0, argv[1:]...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	os.Exit(0)
	return nil
}
