package ui

import (
	"os"
	"testing"
)

// Theme state is global; these tests do not run in parallel.

func unsetNoColor(t *testing.T) {
	t.Helper()
	if v, ok := os.LookupEnv("NO_COLOR"); ok {
		os.Unsetenv("NO_COLOR")
		t.Cleanup(func() { os.Setenv("NO_COLOR", v) })
	}
}

func TestInitTheme_Names(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	unsetNoColor(t)

	tests := []struct {
		name    string
		want    string
		wantTUI TUITheme
	}{
		{"dark", "dark", DarkTUITheme},
		{"light", "light", LightTUITheme},
		{"none", "none", NoColorTUITheme},
		{"", "dark", DarkTUITheme},
		{"bogus", "dark", DarkTUITheme},
	}
	for _, tt := range tests {
		InitTheme(tt.name, false)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("InitTheme(%q) -> %q, want %q", tt.name, got, tt.want)
		}
		if GetCurrentTUITheme() != tt.wantTUI {
			t.Errorf("InitTheme(%q) selected the wrong dashboard palette", tt.name)
		}
	}
}

func TestInitTheme_NoColor(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	t.Setenv("NO_COLOR", "")
	InitTheme("light", false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR set (even empty) should disable colors")
	}
	if GetCurrentTUITheme() != NoColorTUITheme {
		t.Error("no-color theme should select the no-color dashboard palette")
	}

	os.Unsetenv("NO_COLOR")
	InitTheme("light", true)
	if GetCurrentTheme().Success != "" || GetCurrentTheme().Reset != "" {
		t.Error("--no-color should override the named theme")
	}
}
