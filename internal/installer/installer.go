// internal/installer/installer.go
// Package installer materializes everything the launcher expects to find: the
// project directory layout, the isolated Python runtime, and the dependency
// set. It is the "separate installation procedure" the bootstrapper's error
// messages point at, and it never runs implicitly on the launch path.
//
// Every step is individually idempotent, so re-running the installer after a
// partial or failed run is always safe.
package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/tuxai/tuxlaunch/internal/logging"
	"github.com/tuxai/tuxlaunch/internal/manifest"
)

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
)

// RunCommand executes an external command. The default implementation runs it
// through os/exec with inherited stdio; tests substitute a recorder.
type RunCommand func(ctx context.Context, name string, args ...string) error

// defaultRunCommand shells out with the installer's stdio attached so pip
// progress stays visible.
func defaultRunCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Installer provisions the isolated runtime and project layout.
type Installer struct {
	// EnvRoot is the runtime directory to create.
	EnvRoot string
	// DataDir is the application data directory (models, uploads).
	DataDir string
	// ManifestPath is the dependency manifest consumed when present.
	ManifestPath string
	// SystemInterpreter creates the runtime. Empty selects the platform default.
	SystemInterpreter string
	// Run executes external commands. Nil selects the os/exec default.
	Run RunCommand
	// Out receives human-readable progress. Nil selects stdout.
	Out io.Writer
}

// SystemInterpreterDefault returns the interpreter name used to create the
// runtime when none is configured.
func SystemInterpreterDefault(goos string) string {
	if goos == "windows" {
		return "python"
	}
	return "python3"
}

// PipPath derives the package-manager location inside root for the given
// platform family, the same split as bootstrap.InterpreterPath. Pure function.
func PipPath(root, goos string) string {
	if goos == "windows" {
		return filepath.Join(root, "Scripts", "pip.exe")
	}
	return filepath.Join(root, "bin", "pip")
}

// Install runs the full provisioning sequence: layout, runtime, pip upgrade,
// dependencies. It stops on the first error that leaves the runtime unusable
// but tolerates individual dependency failures, reporting them at the end.
func (in *Installer) Install(ctx context.Context) error {
	if err := in.createLayout(); err != nil {
		return err
	}
	pip, err := in.ensureRuntime(ctx)
	if err != nil {
		return err
	}
	if err := in.installDependencies(ctx, pip); err != nil {
		return err
	}
	in.statusf("%s installation complete — run `tuxlaunch` to start", okMark("✔"))
	return nil
}

// createLayout materializes the project directory tree. MkdirAll makes this a
// no-op for directories that already exist.
func (in *Installer) createLayout() error {
	dirs := []string{
		filepath.Join(in.DataDir, "models", "full"),
		filepath.Join(in.DataDir, "models", "lite"),
		filepath.Join(in.DataDir, "uploads"),
		"logs",
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			in.statusf("%s create %s: %v", failMark("✘"), dir, err)
			return fmt.Errorf("create project directory %q: %w", dir, err)
		}
		in.statusf("%s directory %s", okMark("✔"), dir)
	}
	logging.LogStage("install", "step=layout", "dirs="+fmt.Sprint(len(dirs)))
	return nil
}

// ensureRuntime creates the isolated runtime unless it already exists, then
// verifies the package manager materialized and upgrades it. Returns the pip
// path.
func (in *Installer) ensureRuntime(ctx context.Context) (string, error) {
	run := in.runner()

	if _, err := os.Stat(in.EnvRoot); err == nil {
		in.statusf("%s runtime already exists at %s", okMark("✔"), in.EnvRoot)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("probe runtime root %q: %w", in.EnvRoot, err)
	} else {
		sysInterp := in.SystemInterpreter
		if sysInterp == "" {
			sysInterp = SystemInterpreterDefault(runtime.GOOS)
		}
		logging.LogStage("install", "step=venv", "root="+in.EnvRoot)
		if err := run(ctx, sysInterp, "-m", "venv", in.EnvRoot); err != nil {
			in.statusf("%s create runtime: %v", failMark("✘"), err)
			return "", fmt.Errorf("create isolated runtime at %q: %w", in.EnvRoot, err)
		}
		in.statusf("%s runtime created at %s", okMark("✔"), in.EnvRoot)
	}

	pip := PipPath(in.EnvRoot, runtime.GOOS)
	if _, err := os.Stat(pip); err != nil {
		in.statusf("%s runtime is incomplete (no %s)", failMark("✘"), pip)
		return "", fmt.Errorf("runtime created incorrectly, %q missing: %w", pip, err)
	}

	if err := run(ctx, pip, "install", "--upgrade", "pip"); err != nil {
		// A stale pip still installs packages; record and continue.
		in.statusf("%s pip upgrade failed, continuing: %v", failMark("✘"), err)
		logging.LogStage("install", "step=pip-upgrade", "result=failed")
	}
	return pip, nil
}

// installDependencies installs the manifest through pip. A manifest file is
// handed to pip wholesale; the built-in default set installs one package at a
// time so a single broken package does not sink the rest.
func (in *Installer) installDependencies(ctx context.Context, pip string) error {
	run := in.runner()

	if _, err := os.Stat(in.ManifestPath); err == nil {
		logging.LogStage("install", "step=deps", "manifest="+in.ManifestPath)
		if err := run(ctx, pip, "install", "-r", in.ManifestPath); err != nil {
			in.statusf("%s install from %s: %v", failMark("✘"), in.ManifestPath, err)
			return fmt.Errorf("install dependency manifest %q: %w", in.ManifestPath, err)
		}
		in.statusf("%s dependencies installed from %s", okMark("✔"), in.ManifestPath)
		return nil
	}

	var failed []string
	for _, dep := range manifest.DefaultDependencies {
		spec := dep.String()
		if err := run(ctx, pip, "install", spec); err != nil {
			in.statusf("%s %s: %v", failMark("✘"), spec, err)
			failed = append(failed, spec)
			continue
		}
		in.statusf("%s %s", okMark("✔"), spec)
	}
	logging.LogStage("install", "step=deps", fmt.Sprintf("failed=%d", len(failed)))
	if len(failed) > 0 {
		return fmt.Errorf("failed to install: %s", strings.Join(failed, ", "))
	}
	return nil
}

func (in *Installer) runner() RunCommand {
	if in.Run != nil {
		return in.Run
	}
	return defaultRunCommand
}

func (in *Installer) statusf(format string, args ...any) {
	out := in.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, format+"\n", args...)
}
