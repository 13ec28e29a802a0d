// Package cli provides the presentation helpers of the plain redraw loop:
// screen clearing, colored table output, cell formatting, the warm-up spinner
// and the quit key listener.
//
// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayTable], [DisplayLoading], [DisplayWarmup].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatCPUCell], [FormatMemoryCell].
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/monitorthing/internal/table"
	"github.com/agbru/monitorthing/internal/ui"
)

// clearScreen is the terminal reset sequence (RIS).
const clearScreen = "\033c\n"

// Column headers of the live table.
var Headers = []string{"CPU", "Memory"}

// FormatCPUCell formats a CPU percentage for the CPU column.
func FormatCPUCell(pct float64) string {
	return fmt.Sprintf("Usage: %.1f%%", pct)
}

// FormatMemoryCell formats used memory in GB for the Memory column.
func FormatMemoryCell(gb float64) string {
	return fmt.Sprintf("Usage: %.1fGB", gb)
}

// ClearScreen resets the terminal.
func ClearScreen(out io.Writer) {
	fmt.Fprint(out, clearScreen)
}

// DisplayTable renders t to out in the theme's table color.
func DisplayTable(out io.Writer, t *table.Table) error {
	theme := ui.GetCurrentTheme()
	fmt.Fprint(out, theme.Success)
	err := t.Render(out)
	fmt.Fprint(out, theme.Reset)
	return err
}

// DisplayBanner writes the start-up banner.
func DisplayBanner(out io.Writer, version string) {
	theme := ui.GetCurrentTheme()
	fmt.Fprintf(out, "%s%smonitorthing %s%s\n", theme.Bold, theme.Primary, version, theme.Reset)
	fmt.Fprintf(out, "%sSystem CPU and memory monitor. Press q to quit.%s\n", theme.Secondary, theme.Reset)
}

// DisplayLoading writes the placeholder shown until a usable reading exists.
func DisplayLoading(out io.Writer) {
	theme := ui.GetCurrentTheme()
	fmt.Fprintf(out, "%sLoading...%s\n", theme.Warning, theme.Reset)
}

// DisplayShutdown writes the notice printed when a signal stops the monitor.
func DisplayShutdown(out io.Writer, signal string) {
	fmt.Fprintf(out, "Received %s, shutting down...\n", signal)
}

// DisplayExit writes the final line printed after the screen is cleared.
func DisplayExit(out io.Writer) {
	fmt.Fprintln(out, "Exiting...")
}

// DisplayWarmup shows a spinner with a countdown message for d, returning
// early with ctx.Err() if ctx is done first.
func DisplayWarmup(ctx context.Context, out io.Writer, d time.Duration) error {
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(fmt.Sprintf(" Starting in %s...", d))
	s.Start()
	defer s.Stop()
	return Sleep(ctx, d)
}
