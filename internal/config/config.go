// Package config handles command-line and environment configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/monitorthing/internal/errors"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "MONITOR_"

// Poll rate bounds and default, in milliseconds.
const (
	MinPollRateMs     = 10
	MaxPollRateMs     = 36000
	DefaultPollRateMs = 500
)

// Counter source names.
const (
	SourceGopsutil = "gopsutil"
	SourceProcfs   = "procfs"
)

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeNone  = "none"
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// PollRateMs is the delay between two ticks, in milliseconds.
	PollRateMs uint
	// Source selects the counter backend ("gopsutil" or "procfs").
	Source string
	// ProcfsMount is the procfs mount point used by the procfs source.
	ProcfsMount string
	// TUI runs the bubbletea dashboard instead of the plain redraw loop.
	TUI bool
	// Theme names the color theme ("dark", "light" or "none").
	Theme string
	// NoColor disables ANSI colors.
	NoColor bool
	// Count stops after that many rendered ticks; 0 runs until quit.
	Count int
	// MetricsAddr, when set, serves Prometheus metrics on that address.
	MetricsAddr string
	// LogFile receives the log output; empty means stderr.
	LogFile string
	// Verbose lowers the log level to debug.
	Verbose bool
}

// PollRate returns the poll interval as a duration.
func (c AppConfig) PollRate() time.Duration {
	return time.Duration(c.PollRateMs) * time.Millisecond
}

// Validate checks value ranges.
func (c AppConfig) Validate() error {
	if c.PollRateMs < MinPollRateMs || c.PollRateMs > MaxPollRateMs {
		return apperrors.NewConfigError("poll rate must be between %d and %d milliseconds, got %d",
			MinPollRateMs, MaxPollRateMs, c.PollRateMs)
	}
	switch c.Source {
	case SourceGopsutil, SourceProcfs:
	default:
		return apperrors.NewConfigError("unknown source %q (want %s or %s)", c.Source, SourceGopsutil, SourceProcfs)
	}
	switch c.Theme {
	case ThemeDark, ThemeLight, ThemeNone:
	default:
		return apperrors.NewConfigError("unknown theme %q (want %s, %s or %s)", c.Theme, ThemeDark, ThemeLight, ThemeNone)
	}
	if c.Count < 0 {
		return apperrors.NewConfigError("count must not be negative, got %d", c.Count)
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Priority: CLI flags > MONITOR_* environment variables > defaults.
// On -h/--help it writes the usage to out and returns flag.ErrHelp. Parse
// and validation errors are reported on errWriter.
func ParseConfig(programName string, args []string, out, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {}

	cfg := AppConfig{}
	fs.UintVar(&cfg.PollRateMs, "poll-rate", DefaultPollRateMs, "Polling interval in milliseconds.")
	fs.UintVar(&cfg.PollRateMs, "p", DefaultPollRateMs, "Shorthand for --poll-rate.")
	fs.StringVar(&cfg.Source, "source", SourceGopsutil, "Counter source: gopsutil or procfs.")
	fs.StringVar(&cfg.ProcfsMount, "procfs", "/proc", "procfs mount point (procfs source only).")
	fs.BoolVar(&cfg.TUI, "tui", false, "Run the interactive dashboard.")
	fs.StringVar(&cfg.Theme, "theme", ThemeDark, "Color theme: dark, light or none.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.IntVar(&cfg.Count, "count", 0, "Stop after N refreshes (0 = until quit).")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9100).")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Write logs to this file instead of stderr.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			PrintUsage(out, programName)
			return AppConfig{}, err
		}
		PrintUsage(errWriter, programName)
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unrecognized argument: %s", fs.Arg(0))
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		PrintUsage(errWriter, programName)
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// PrintUsage writes the help text.
func PrintUsage(w io.Writer, programName string) {
	fmt.Fprintf(w, "Usage: %s [OPTIONS]\n\n", programName)
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprintf(w, "  -h, --help               Show this help message\n")
	fmt.Fprintf(w, "  -p, --poll-rate RATE     Set polling rate in milliseconds (default: %d)\n", DefaultPollRateMs)
	fmt.Fprintf(w, "                           Valid range: %d-%d milliseconds\n", MinPollRateMs, MaxPollRateMs)
	fmt.Fprintf(w, "      --source NAME        Counter source: %s or %s (default: %s)\n", SourceGopsutil, SourceProcfs, SourceGopsutil)
	fmt.Fprintf(w, "      --procfs PATH        procfs mount point (default: /proc)\n")
	fmt.Fprintf(w, "      --tui                Run the interactive dashboard\n")
	fmt.Fprintf(w, "      --count N            Stop after N refreshes\n")
	fmt.Fprintf(w, "      --metrics-addr ADDR  Serve Prometheus metrics on ADDR\n")
	fmt.Fprintf(w, "      --log-file PATH      Write logs to PATH instead of stderr\n")
	fmt.Fprintf(w, "      --theme NAME         Color theme: %s, %s or %s (default: %s)\n", ThemeDark, ThemeLight, ThemeNone, ThemeDark)
	fmt.Fprintf(w, "      --no-color           Disable colored output\n")
	fmt.Fprintf(w, "  -v, --verbose            Enable debug logging\n")
	fmt.Fprintf(w, "      --version            Print version and exit\n")
	fmt.Fprintf(w, "\nPress q to quit. Every option can also be set through a %s* environment variable.\n", EnvPrefix)
}
