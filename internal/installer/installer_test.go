// internal/installer/installer_test.go
package installer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/tuxai/tuxlaunch/internal/manifest"
)

// call records one external command invocation made by the installer.
type call struct {
	name string
	args []string
}

// recordingRunner returns a RunCommand that records invocations and lets the
// test decide per-command success. When materialize is true, a `-m venv`
// invocation creates the pip binary the installer checks for afterward.
func recordingRunner(t *testing.T, calls *[]call, materialize bool, fail func(call) error) RunCommand {
	t.Helper()
	return func(_ context.Context, name string, args ...string) error {
		c := call{name: name, args: append([]string(nil), args...)}
		*calls = append(*calls, c)
		if materialize && len(args) >= 2 && args[0] == "-m" && args[1] == "venv" {
			pip := PipPath(args[2], runtime.GOOS)
			if err := os.MkdirAll(filepath.Dir(pip), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(pip, []byte{}, 0o755); err != nil {
				t.Fatal(err)
			}
		}
		if fail != nil {
			return fail(c)
		}
		return nil
	}
}

// TestPipPath verifies the platform-family pip derivation.
func TestPipPath(t *testing.T) {
	if got := PipPath("env", "windows"); got != filepath.Join("env", "Scripts", "pip.exe") {
		t.Fatalf("PipPath(windows) = %q", got)
	}
	if got := PipPath("env", "linux"); got != filepath.Join("env", "bin", "pip") {
		t.Fatalf("PipPath(linux) = %q", got)
	}
}

// TestSystemInterpreterDefault verifies the per-platform interpreter names.
func TestSystemInterpreterDefault(t *testing.T) {
	if got := SystemInterpreterDefault("windows"); got != "python" {
		t.Fatalf("SystemInterpreterDefault(windows) = %q", got)
	}
	if got := SystemInterpreterDefault("linux"); got != "python3" {
		t.Fatalf("SystemInterpreterDefault(linux) = %q", got)
	}
}

// TestInstallFreshRuntime verifies the happy path on an empty workspace:
// layout directories appear, the runtime is created with the system
// interpreter, pip is upgraded, and the default dependency set installs one
// package at a time.
func TestInstallFreshRuntime(t *testing.T) {
	work := t.TempDir()
	envRoot := filepath.Join(work, "tux_ai_venv")
	dataDir := filepath.Join(work, "data")

	var calls []call
	var out bytes.Buffer
	in := &Installer{
		EnvRoot:           envRoot,
		DataDir:           dataDir,
		ManifestPath:      filepath.Join(work, "requirements.txt"),
		SystemInterpreter: "python3",
		Run:               recordingRunner(t, &calls, true, nil),
		Out:               &out,
	}

	if err := in.Install(context.Background()); err != nil {
		t.Fatalf("Install() failed: %v", err)
	}

	for _, dir := range []string{
		filepath.Join(dataDir, "models", "full"),
		filepath.Join(dataDir, "models", "lite"),
		filepath.Join(dataDir, "uploads"),
	} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}

	if len(calls) < 2 {
		t.Fatalf("expected at least venv + pip calls, got %d", len(calls))
	}
	if calls[0].name != "python3" || calls[0].args[0] != "-m" || calls[0].args[1] != "venv" {
		t.Fatalf("first call should create the venv, got %+v", calls[0])
	}
	pip := PipPath(envRoot, runtime.GOOS)
	if calls[1].name != pip || calls[1].args[0] != "install" || calls[1].args[1] != "--upgrade" {
		t.Fatalf("second call should upgrade pip, got %+v", calls[1])
	}

	installed := calls[2:]
	if len(installed) != len(manifest.DefaultDependencies) {
		t.Fatalf("expected %d dependency installs, got %d", len(manifest.DefaultDependencies), len(installed))
	}
	if !strings.Contains(out.String(), "installation complete") {
		t.Fatalf("expected completion message, got: %s", out.String())
	}
}

// TestInstallSkipsExistingRuntime verifies idempotence: an existing runtime
// is never re-created.
func TestInstallSkipsExistingRuntime(t *testing.T) {
	work := t.TempDir()
	envRoot := filepath.Join(work, "tux_ai_venv")
	pip := PipPath(envRoot, runtime.GOOS)
	if err := os.MkdirAll(filepath.Dir(pip), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pip, []byte{}, 0o755); err != nil {
		t.Fatal(err)
	}

	var calls []call
	in := &Installer{
		EnvRoot:      envRoot,
		DataDir:      filepath.Join(work, "data"),
		ManifestPath: filepath.Join(work, "requirements.txt"),
		Run:          recordingRunner(t, &calls, false, nil),
		Out:          &bytes.Buffer{},
	}
	if err := in.Install(context.Background()); err != nil {
		t.Fatalf("Install() failed: %v", err)
	}
	for _, c := range calls {
		if len(c.args) >= 2 && c.args[0] == "-m" && c.args[1] == "venv" {
			t.Fatalf("venv creation ran despite existing runtime: %+v", c)
		}
	}
}

// TestInstallUsesManifestFile verifies that a present manifest is handed to
// pip wholesale instead of per-package installs.
func TestInstallUsesManifestFile(t *testing.T) {
	work := t.TempDir()
	manifestPath := filepath.Join(work, "requirements.txt")
	if err := os.WriteFile(manifestPath, []byte("rich\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls []call
	in := &Installer{
		EnvRoot:      filepath.Join(work, "tux_ai_venv"),
		DataDir:      filepath.Join(work, "data"),
		ManifestPath: manifestPath,
		Run:          recordingRunner(t, &calls, true, nil),
		Out:          &bytes.Buffer{},
	}
	if err := in.Install(context.Background()); err != nil {
		t.Fatalf("Install() failed: %v", err)
	}

	last := calls[len(calls)-1]
	if last.args[0] != "install" || last.args[1] != "-r" || last.args[2] != manifestPath {
		t.Fatalf("expected `pip install -r %s`, got %+v", manifestPath, last)
	}
}

// TestInstallToleratesSingleDependencyFailure verifies that one broken
// package from the default set does not stop the rest, but is reported in the
// final error.
func TestInstallToleratesSingleDependencyFailure(t *testing.T) {
	work := t.TempDir()
	var calls []call
	in := &Installer{
		EnvRoot:      filepath.Join(work, "tux_ai_venv"),
		DataDir:      filepath.Join(work, "data"),
		ManifestPath: filepath.Join(work, "requirements.txt"),
		Run: recordingRunner(t, &calls, true, func(c call) error {
			if len(c.args) == 2 && c.args[0] == "install" && c.args[1] == "torch" {
				return errors.New("no matching distribution")
			}
			return nil
		}),
		Out: &bytes.Buffer{},
	}

	err := in.Install(context.Background())
	if err == nil {
		t.Fatal("Install() should report the failed package")
	}
	if !strings.Contains(err.Error(), "torch") {
		t.Fatalf("error should name the failed package: %v", err)
	}

	installs := 0
	for _, c := range calls {
		if len(c.args) == 2 && c.args[0] == "install" {
			installs++
		}
	}
	if installs != len(manifest.DefaultDependencies) {
		t.Fatalf("expected all %d installs attempted, got %d", len(manifest.DefaultDependencies), installs)
	}
}

// TestInstallFailsWhenRuntimeIncomplete verifies that a venv creation that
// does not materialize pip is treated as a corrupted install.
func TestInstallFailsWhenRuntimeIncomplete(t *testing.T) {
	work := t.TempDir()
	var calls []call
	in := &Installer{
		EnvRoot:      filepath.Join(work, "tux_ai_venv"),
		DataDir:      filepath.Join(work, "data"),
		ManifestPath: filepath.Join(work, "requirements.txt"),
		Run:          recordingRunner(t, &calls, false, nil),
		Out:          &bytes.Buffer{},
	}
	err := in.Install(context.Background())
	if err == nil || !strings.Contains(err.Error(), "runtime created incorrectly") {
		t.Fatalf("expected incomplete-runtime error, got %v", err)
	}
}
