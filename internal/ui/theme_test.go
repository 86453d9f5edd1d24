package ui

import (
	"testing"

	"github.com/five82/sanctuary/internal/ambient"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%s).Name = %q, want %q", name, got, name)
		}
	}

	unknown := GetTheme("Unknown")
	if unknown.Name != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", unknown.Name)
	}
}

func TestThemesColorEveryAmbientState(t *testing.T) {
	states := []ambient.State{
		ambient.StateIdle,
		ambient.StateLoading,
		ambient.StatePlaying,
		ambient.StatePaused,
		ambient.StateError,
		ambient.StateBlocked,
	}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, s := range states {
			if th.AmbientColors[string(s)] == "" {
				t.Fatalf("theme %s has no color for ambient state %q", name, s)
			}
		}
	}
}
