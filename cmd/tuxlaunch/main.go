// cmd/tuxlaunch/main.go
package main

import (
	cmd "github.com/tuxai/tuxlaunch/internal/cli"
)

// Build-time variables injected via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the tuxlaunch CLI application by delegating to the
// cobra root command defined in the cli package.
func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
