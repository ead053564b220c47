//go:build !windows

// internal/bootstrap/reexec_unix.go
package bootstrap

import "syscall"

// replaceProcess performs a true in-place exec: the launcher's process image
// is replaced, the PID is kept, and on success the call never returns.
func replaceProcess(argv0 string, argv []string, env []string) error {
	return syscall.Exec(argv0, argv, env)
}
