package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHumanizeDuration(t *testing.T) {
	cases := []struct {
		name string
		in   int64 // seconds
		want string
	}{
		{"negative", -5, "0s"},
		{"subsecond", 0, "0s"},
		{"seconds", 12, "12s"},
		{"minutes", 61, "1m"},
		{"hours_only", 2*60*60 + 10, "2h"},
		{"hours_minutes", 2*60*60 + 3*60, "2h 3m"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := humanizeDuration(timeSeconds(tc.in))
			if got != tc.want {
				t.Fatalf("humanizeDuration(%d) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("  ", 10); got != "" {
		t.Fatalf("truncate blank = %q, want empty", got)
	}
	if got := truncate("abcd", 2); got != "ab" {
		t.Fatalf("truncate limit<=3 = %q, want ab", got)
	}
	if got := truncate("Deep Work Session", 9); got != "Deep W..." {
		t.Fatalf("truncate = %q, want %q", got, "Deep W...")
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q, want %q", got, "ab  ")
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight long = %q, want unchanged", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome(" ~/Pictures/a.png "); got != filepath.Join(home, "Pictures/a.png") {
		t.Fatalf("expandHome = %q", got)
	}
	if got := expandHome("/tmp/a.png"); got != "/tmp/a.png" {
		t.Fatalf("expandHome absolute = %q, want unchanged", got)
	}
}

func timeSeconds(sec int64) time.Duration {
	return time.Duration(sec) * time.Second
}

func TestExitError(t *testing.T) {
	live := context.Background()
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	wrapped := fmt.Errorf("program: %w", tea.ErrProgramKilled)
	if err := exitError(cancelled, wrapped); err != nil {
		t.Fatalf("exitError(cancelled, wrapped kill) = %v, want nil", err)
	}
	if err := exitError(live, wrapped); !errors.Is(err, tea.ErrProgramKilled) {
		t.Fatalf("exitError(live, kill) = %v, want the kill error", err)
	}
	other := errors.New("boom")
	if err := exitError(cancelled, other); err != other {
		t.Fatalf("exitError(cancelled, other) = %v, want %v", err, other)
	}
	if err := exitError(live, nil); err != nil {
		t.Fatalf("exitError(live, nil) = %v, want nil", err)
	}
}
