package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/monitorthing/internal/ui"
)

// Style variables for the dashboard.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle      lipgloss.Style
	titleStyle      lipgloss.Style
	dimStyle        lipgloss.Style
	tableStyle      lipgloss.Style
	loadingStyle    lipgloss.Style
	errorStyle      lipgloss.Style
	pausedStyle     lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	tableStyle = lipgloss.NewStyle().
		Foreground(t.Table)

	loadingStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	pausedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Warning)

	footerKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
