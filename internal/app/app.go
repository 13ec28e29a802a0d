// Package app wires configuration, logging, the counter source and the
// selected display driver into a runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/monitorthing/internal/cli"
	"github.com/agbru/monitorthing/internal/config"
	apperrors "github.com/agbru/monitorthing/internal/errors"
	"github.com/agbru/monitorthing/internal/format"
	"github.com/agbru/monitorthing/internal/logging"
	"github.com/agbru/monitorthing/internal/monitor"
	"github.com/agbru/monitorthing/internal/server"
	"github.com/agbru/monitorthing/internal/sysmon"
	"github.com/agbru/monitorthing/internal/tui"
	"github.com/agbru/monitorthing/internal/ui"
)

// Application represents the monitorthing application instance.
type Application struct {
	Config    config.AppConfig
	Stdout    io.Writer
	ErrWriter io.Writer
	Stdin     *os.File
	Source    sysmon.CounterSource
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSource sets the counter source instead of building one from the config.
func WithSource(src sysmon.CounterSource) AppOption {
	return func(a *Application) { a.Source = src }
}

// WithStdout sets the writer that receives the help text. Defaults to os.Stdout.
func WithStdout(w io.Writer) AppOption {
	return func(a *Application) { a.Stdout = w }
}

// WithStdin sets the file watched for the quit key. nil disables the listener.
func WithStdin(f *os.File) AppOption {
	return func(a *Application) { a.Stdin = f }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{Stdout: os.Stdout, ErrWriter: errWriter, Stdin: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "monitorthing"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, app.Stdout, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	logger, closeLog, err := a.newLogger()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer closeLog()

	src := a.Source
	if src == nil {
		src, err = sysmon.NewSource(a.Config.Source, a.Config.ProcfsMount)
		if err != nil {
			logger.Error("cannot open counter source", err, logging.String("source", a.Config.Source))
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return exitCode(err)
		}
	}
	a.logStartup(ctx, logger, src)

	ctx, stopSignals := withSignalCause(ctx)
	defer stopSignals()

	err = a.runDrivers(ctx, out, logger, sysmon.NewSampler(src))
	if err != nil {
		logger.Error("monitor stopped", err)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	}
	return exitCode(err)
}

// runDrivers runs the display driver and, when configured, the metrics
// exporter. The exporter stops when the driver returns.
func (a *Application) runDrivers(ctx context.Context, out io.Writer, logger logging.Logger, sampler *sysmon.Sampler) error {
	g, gctx := errgroup.WithContext(ctx)
	driverCtx, stopExporter := context.WithCancel(gctx)
	defer stopExporter()

	var observer monitor.Observer
	if a.Config.MetricsAddr != "" {
		metrics := server.NewMetrics()
		observer = metrics
		srv := server.New(a.Config.MetricsAddr, metrics, logger)
		g.Go(func() error {
			return srv.Serve(driverCtx)
		})
	}

	g.Go(func() error {
		defer stopExporter()
		if a.Config.TUI {
			return a.runTUI(driverCtx, out, logger, sampler, observer)
		}
		return a.runMonitor(driverCtx, out, logger, sampler, observer)
	})

	return g.Wait()
}

// runMonitor runs the plain redraw loop.
func (a *Application) runMonitor(ctx context.Context, out io.Writer, logger logging.Logger, sampler *sysmon.Sampler, observer monitor.Observer) error {
	opts := monitor.DefaultOptions()
	opts.PollRate = a.Config.PollRate()
	opts.MaxTicks = a.Config.Count
	opts.Version = Version
	opts.Input = a.Stdin
	opts.Observer = observer
	return monitor.New(sampler, out, logger, opts).Run(ctx)
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context, out io.Writer, logger logging.Logger, sampler *sysmon.Sampler, observer monitor.Observer) error {
	code := tui.Run(ctx, sampler, tui.Options{
		PollRate:     a.Config.PollRate(),
		LoadingDelay: cli.LoadingDelay,
		MaxTicks:     a.Config.Count,
		Version:      Version,
		Observer:     observer,
		Logger:       logger,
	})
	if code != apperrors.ExitSuccess {
		return errors.New("dashboard exited abnormally")
	}
	if sig, ok := cli.InterruptSignal(ctx); ok {
		cli.DisplayShutdown(out, sig)
	}
	return nil
}

// withSignalCause returns a context canceled by the first SIGINT or SIGTERM,
// with a cli.InterruptError naming the signal as its cause.
func withSignalCause(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			cancel(cli.InterruptError{Signal: signalName(sig)})
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel(nil)
	}
}

func signalName(sig os.Signal) string {
	switch sig {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return sig.String()
	}
}

// newLogger builds the application logger. Logs go to the log file when one
// is configured, otherwise to ErrWriter.
func (a *Application) newLogger() (logging.Logger, func(), error) {
	level := zerolog.WarnLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}

	if a.Config.LogFile != "" {
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, apperrors.NewConfigError("cannot open log file: %v", err)
		}
		return logging.NewLogger(f, "monitorthing", level), func() { _ = f.Close() }, nil
	}
	return logging.NewConsoleLogger(a.ErrWriter, a.Config.NoColor, level), func() {}, nil
}

func (a *Application) logStartup(ctx context.Context, logger logging.Logger, src sysmon.CounterSource) {
	fields := []logging.Field{
		logging.String("version", Version),
		logging.String("source", src.Name()),
		logging.Duration("poll_rate", a.Config.PollRate()),
	}
	if m, err := src.Memory(ctx); err == nil {
		fields = append(fields, logging.String("total_memory", format.FormatBytes(m.Total)))
	}
	logger.Info("starting monitor", fields...)
}

// StartupExitCode maps an error returned by New to a process exit code.
// A help request exits cleanly; bad arguments exit with the generic code.
func StartupExitCode(err error) int {
	if err == nil || IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	return apperrors.ExitErrorGeneric
}

// exitCode maps a run error to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case apperrors.IsSourceError(err):
		return apperrors.ExitErrorSource
	case apperrors.IsContextError(err):
		return apperrors.ExitErrorCanceled
	default:
		var cfgErr apperrors.ConfigError
		var valErr apperrors.ValidationError
		if errors.As(err, &cfgErr) || errors.As(err, &valErr) {
			return apperrors.ExitErrorConfig
		}
		return apperrors.ExitErrorGeneric
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
