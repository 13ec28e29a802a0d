package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for UI output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for banners and titles.
	Primary string
	// Secondary is used for less prominent elements such as hints.
	Secondary string
	// Success is the color the live table is drawn in.
	Success string
	// Warning is used for the loading indicator and non-critical issues.
	Warning string
	// Error indicates failures.
	Error string
	// Bold is the escape code for bold text.
	Bold string
	// Reset clears all formatting.
	Reset string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[32m",       // Green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme defines lipgloss-compatible colors for the dashboard.
type TUITheme struct {
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Table   lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default dashboard palette.
	DarkTUITheme = TUITheme{
		Border:  lipgloss.Color("#4488FF"),
		Accent:  lipgloss.Color("#4488FF"),
		Table:   lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
	}

	// LightTUITheme is the dashboard palette for light backgrounds.
	LightTUITheme = TUITheme{
		Border:  lipgloss.Color("#1F4FBF"),
		Accent:  lipgloss.Color("#1F4FBF"),
		Table:   lipgloss.Color("#2E7D32"),
		Warning: lipgloss.Color("#B35900"),
		Error:   lipgloss.Color("#B71C1C"),
		Dim:     lipgloss.Color("#585858"),
	}

	// NoColorTUITheme disables all dashboard colors.
	NoColorTUITheme = TUITheme{
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Table:   lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the dashboard theme matching the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	switch currentTheme.Name {
	case NoColorTheme.Name:
		return NoColorTUITheme
	case LightTheme.Name:
		return LightTUITheme
	default:
		return DarkTUITheme
	}
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// themeByName maps a theme name to its palette. Unknown names select dark.
func themeByName(name string) Theme {
	switch name {
	case LightTheme.Name:
		return LightTheme
	case NoColorTheme.Name:
		return NoColorTheme
	default:
		return DarkTheme
	}
}

// InitTheme selects the named theme ("dark", "light" or "none").
// It respects the NO_COLOR environment variable (https://no-color.org/):
// if noColor is true or NO_COLOR is set, colors are disabled whatever the name.
func InitTheme(name string, noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}

	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}

	currentTheme = themeByName(name)
}
