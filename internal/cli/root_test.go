// internal/cli/root_test.go
package tuxlaunch

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/tuxai/tuxlaunch/internal/bootstrap"
)

// TestCommandRegistry verifies that every documented subcommand is attached
// to the root command.
func TestCommandRegistry(t *testing.T) {
	want := map[string]bool{
		"launch":  false,
		"install": false,
		"doctor":  false,
		"chat":    false,
		"show":    false,
		"models":  false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

// TestRemediation checks that each bootstrap failure maps to a message naming
// the most likely fix.
func TestRemediation(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{bootstrap.ErrEnvironmentMissing, "tuxlaunch install"},
		{bootstrap.ErrInterpreterMissing, "rebuild"},
		{&bootstrap.ReExecError{Path: "/opt/bin/tuxlaunch", Err: os.ErrPermission}, "permissions"},
		{errors.New("odd failure"), "odd failure"},
	}
	for _, tc := range cases {
		got := remediation(tc.err)
		if !strings.Contains(got, tc.want) {
			t.Errorf("remediation(%v) = %q, want mention of %q", tc.err, got, tc.want)
		}
	}
}

// TestVersionInfoInjection verifies the build-metadata hook used by main.
func TestVersionInfoInjection(t *testing.T) {
	defer SetVersionInfo("dev", "none", "unknown")
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	if appVersion != "1.2.3" || appCommit != "abc123" || appDate != "2026-01-01" {
		t.Fatal("SetVersionInfo did not update build metadata")
	}
}

// TestGetConfigDefault verifies that commands get a usable zero config before
// any loading has happened.
func TestGetConfigDefault(t *testing.T) {
	saved := currentConfig
	defer func() { currentConfig = saved }()
	currentConfig = nil

	cfg := getConfig()
	if cfg == nil {
		t.Fatal("getConfig() returned nil")
	}
	if cfg.DefaultModelMode() != "full" {
		t.Fatalf("zero config should use defaults, got mode %q", cfg.DefaultModelMode())
	}
}
