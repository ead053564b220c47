// internal/util/util_test.go
package util

import (
	"strings"
	"testing"
)

// TestTruncateRunes covers the no-op, exact-length, and truncation cases,
// including multi-byte runes.
func TestTruncateRunes(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello…"},
		{"привет мир", 6, "привет…"},
	}
	for _, tc := range cases {
		if got := TruncateRunes(tc.in, tc.max); got != tc.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

// TestWrapToWidth verifies word wrapping, long-word breaking, and the
// zero-width passthrough.
func TestWrapToWidth(t *testing.T) {
	if got := WrapToWidth("one two three four", 9); got != "one two\nthree\nfour" {
		t.Errorf("unexpected wrap: %q", got)
	}

	got := WrapToWidth("abcdefghij", 4)
	for _, line := range strings.Split(got, "\n") {
		if len([]rune(line)) > 4 {
			t.Errorf("line %q exceeds width", line)
		}
	}

	if got := WrapToWidth("untouched text", 0); got != "untouched text" {
		t.Errorf("width 0 should be passthrough, got %q", got)
	}

	if got := WrapToWidth("a\n\nb", 10); got != "a\n\nb" {
		t.Errorf("blank lines should survive, got %q", got)
	}
}
