// internal/bootstrap/bootstrap.go
// Package bootstrap guarantees a working isolated Python runtime before the
// rest of the application starts. It implements a small state machine over an
// environment descriptor: detect whether the process already runs inside the
// runtime, locate the runtime's interpreter for the current platform family,
// and re-exec the launcher with the runtime activated when it does not.
package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ActiveRootEnv is the process-level marker that the runtime's own activation
// scripts set. A launcher re-exec sets it too, so the re-executed process can
// classify itself as active without touching the filesystem.
const ActiveRootEnv = "VIRTUAL_ENV"

// State describes where an environment is in its lifecycle.
type State int

const (
	// StateAbsent means the runtime directory does not exist.
	StateAbsent State = iota
	// StatePresentInactive means the runtime exists on disk but the current
	// process is not running inside it.
	StatePresentInactive
	// StateActive means the current process is running inside the runtime.
	StateActive
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StatePresentInactive:
		return "present-inactive"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrEnvironmentMissing indicates no runtime directory was found. The
	// remedy is running the installer; EnsureReady never creates anything.
	ErrEnvironmentMissing = errors.New("isolated runtime not found")
	// ErrInterpreterMissing indicates the runtime directory exists but the
	// expected interpreter binary is absent (partial or corrupted install).
	ErrInterpreterMissing = errors.New("interpreter not found in isolated runtime")
)

// ReExecError wraps a failure to hand the process over to itself with the
// runtime activated. The interpreter existed but the exec call failed.
type ReExecError struct {
	Path string
	Err  error
}

// Error returns the formatted error message.
func (e *ReExecError) Error() string {
	return fmt.Sprintf("re-exec via %s failed: %v", e.Path, e.Err)
}

// Unwrap returns the underlying exec error.
func (e *ReExecError) Unwrap() error { return e.Err }

// Descriptor identifies an isolated runtime on disk.
type Descriptor struct {
	// RootPath is the runtime directory. Relative paths are resolved against
	// the working directory before any filesystem probe.
	RootPath string
}

// Ready is returned once the environment is confirmed active.
type Ready struct {
	// Root is the absolute runtime directory.
	Root string
	// Interpreter is the absolute path of the runtime's interpreter binary.
	Interpreter string
}

// ExecFunc replaces the current process image. Implementations must not
// return on success. The default is process replacement on POSIX systems and
// spawn-and-exit on Windows, where true replacement is unavailable.
type ExecFunc func(argv0 string, argv []string, env []string) error

// Process captures the ambient process state EnsureReady consults. Callers
// normally build it with CurrentProcess; tests substitute their own fields.
type Process struct {
	// Executable is the path of the running launcher binary.
	Executable string
	// Argv is the full original argument vector, Argv[0] included. A re-exec
	// passes it through unchanged.
	Argv []string
	// Environ is the process environment in "KEY=value" form.
	Environ []string
	// ActiveRoot is the current value of ActiveRootEnv ("" when unset).
	ActiveRoot string
	// Exec performs the process replacement. Nil selects the platform default.
	Exec ExecFunc
}

// CurrentProcess snapshots the running process for EnsureReady.
func CurrentProcess() (Process, error) {
	exe, err := os.Executable()
	if err != nil {
		return Process{}, fmt.Errorf("resolve executable path: %w", err)
	}
	return Process{
		Executable: exe,
		Argv:       os.Args,
		Environ:    os.Environ(),
		ActiveRoot: os.Getenv(ActiveRootEnv),
	}, nil
}

// InterpreterPath derives the interpreter location inside root for the given
// platform family. Windows-family runtimes keep binaries under Scripts with
// an .exe suffix; every other family uses a flat bin directory. Pure function.
func InterpreterPath(root, goos string) string {
	if goos == "windows" {
		return filepath.Join(root, "Scripts", "python.exe")
	}
	return filepath.Join(root, "bin", "python")
}

// IsActive reports whether an activation marker value refers to the runtime
// root. Both sides are cleaned before comparison so trailing separators and
// "./" segments do not defeat the check. Pure function.
func IsActive(activeRoot, root string) bool {
	if activeRoot == "" || root == "" {
		return false
	}
	return filepath.Clean(activeRoot) == filepath.Clean(root)
}

// Classify computes the descriptor's lifecycle state for a process whose
// activation marker holds activeRoot. Used by diagnostic surfaces; EnsureReady
// performs the same checks inline so it can stop at the first terminal state.
func Classify(d Descriptor, activeRoot string) (State, error) {
	root, err := filepath.Abs(d.RootPath)
	if err != nil {
		return StateAbsent, fmt.Errorf("resolve runtime root %q: %w", d.RootPath, err)
	}
	if IsActive(activeRoot, root) {
		return StateActive, nil
	}
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return StateAbsent, nil
		}
		return StateAbsent, fmt.Errorf("probe runtime root %s: %w", root, err)
	}
	if !info.IsDir() {
		return StateAbsent, nil
	}
	return StatePresentInactive, nil
}

// EnsureReady drives the environment descriptor to the active state.
//
// The sequence mirrors the launcher contract: an already-active process
// returns immediately; a missing runtime or interpreter is terminal and is
// reported without retries or filesystem mutation; an intact but inactive
// runtime triggers a re-exec of the launcher with the runtime activated and
// the original argument vector preserved. On a successful re-exec this
// function never returns.
func EnsureReady(d Descriptor, proc Process) (Ready, error) {
	root, err := filepath.Abs(d.RootPath)
	if err != nil {
		return Ready{}, fmt.Errorf("resolve runtime root %q: %w", d.RootPath, err)
	}

	interp := InterpreterPath(root, runtime.GOOS)

	if IsActive(proc.ActiveRoot, root) {
		return Ready{Root: root, Interpreter: interp}, nil
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Ready{}, fmt.Errorf("%w at %s", ErrEnvironmentMissing, root)
		}
		return Ready{}, fmt.Errorf("probe runtime root %s: %w", root, err)
	}
	if !info.IsDir() {
		return Ready{}, fmt.Errorf("%w at %s", ErrEnvironmentMissing, root)
	}

	if _, err := os.Stat(interp); err != nil {
		if os.IsNotExist(err) {
			return Ready{}, fmt.Errorf("%w (expected %s)", ErrInterpreterMissing, interp)
		}
		return Ready{}, fmt.Errorf("probe interpreter %s: %w", interp, err)
	}

	execFn := proc.Exec
	if execFn == nil {
		execFn = replaceProcess
	}
	env := activatedEnv(proc.Environ, root)
	if err := execFn(proc.Executable, proc.Argv, env); err != nil {
		return Ready{}, &ReExecError{Path: proc.Executable, Err: err}
	}
	// Only reachable with an injected ExecFunc that returns nil: treat the
	// hand-off as performed and report active.
	return Ready{Root: root, Interpreter: interp}, nil
}

// activatedEnv rewrites a process environment the way the runtime's own
// activation script would: marker set to root, the runtime bin directory
// prepended to PATH, any stale PYTHONHOME dropped.
func activatedEnv(environ []string, root string) []string {
	binDir := filepath.Dir(InterpreterPath(root, runtime.GOOS))
	out := make([]string, 0, len(environ)+2)
	sawPath := false
	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			out = append(out, kv)
			continue
		}
		switch {
		case key == ActiveRootEnv, key == "PYTHONHOME":
			// replaced or dropped below
		case key == "PATH":
			sawPath = true
			out = append(out, "PATH="+binDir+string(os.PathListSeparator)+val)
		default:
			out = append(out, kv)
		}
	}
	if !sawPath {
		out = append(out, "PATH="+binDir)
	}
	out = append(out, ActiveRootEnv+"="+root)
	return out
}
