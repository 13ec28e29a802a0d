// Package monitor implements the plain terminal driver: it clears the
// screen, samples the system, prints a one-row table and waits for the next
// tick until the user quits.
package monitor

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/monitorthing/internal/cli"
	"github.com/agbru/monitorthing/internal/logging"
	"github.com/agbru/monitorthing/internal/sysmon"
	"github.com/agbru/monitorthing/internal/table"
)

// Observer receives every sample the driver takes.
type Observer interface {
	Observe(sysmon.Stats)
	ObserveError(kind string)
}

// Options configures a Monitor.
type Options struct {
	// PollRate is the wait between rendered ticks.
	PollRate time.Duration
	// MaxTicks stops the driver after that many rendered tables. 0 means no limit.
	MaxTicks int
	// Version is shown in the banner.
	Version string
	// Warmup is how long the banner stays up. 0 skips it.
	Warmup time.Duration
	// LoadingDelay is the retry delay while no usable reading exists.
	LoadingDelay time.Duration
	// Input is watched for the quit key. nil disables the listener.
	Input *os.File
	// Observer, if set, is fed every sample.
	Observer Observer
}

// DefaultOptions returns the options used by the command line.
func DefaultOptions() Options {
	return Options{
		PollRate:     500 * time.Millisecond,
		Warmup:       cli.WarmupDelay,
		LoadingDelay: cli.LoadingDelay,
	}
}

// Monitor is the plain polling driver.
type Monitor struct {
	sampler *sysmon.Sampler
	out     io.Writer
	logger  logging.Logger
	opts    Options
}

// New creates a driver that samples with sampler and draws to out.
func New(sampler *sysmon.Sampler, out io.Writer, logger logging.Logger, opts Options) *Monitor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Monitor{sampler: sampler, out: out, logger: logger, opts: opts}
}

// Run drives the display until ctx is done, the quit key is pressed or
// MaxTicks tables have been rendered. Quitting is not an error. The screen
// is cleared and "Exiting..." printed on every return path, preceded by a
// shutdown notice when ctx was canceled by a signal.
func (m *Monitor) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	loopCtx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		defer stop()
		return m.loop(loopCtx)
	})
	if m.opts.Input != nil {
		g.Go(func() error {
			return cli.ListenForQuit(loopCtx, m.opts.Input)
		})
	}

	err := g.Wait()
	cli.ClearScreen(m.out)
	if sig, ok := cli.InterruptSignal(ctx); ok {
		m.logger.Debug("interrupted", logging.String("signal", sig))
		cli.DisplayShutdown(m.out, sig)
	}
	cli.DisplayExit(m.out)

	if errors.Is(err, cli.ErrQuit) {
		m.logger.Debug("quit key pressed")
		return nil
	}
	return err
}

func (m *Monitor) loop(ctx context.Context) error {
	cli.ClearScreen(m.out)
	cli.DisplayBanner(m.out, m.opts.Version)
	if m.opts.Warmup > 0 {
		if err := cli.DisplayWarmup(ctx, m.out, m.opts.Warmup); err != nil {
			return nil
		}
	}

	ticks := 0
	for ctx.Err() == nil {
		cli.ClearScreen(m.out)

		stats, ok := m.sample(ctx)
		if !ok {
			cli.DisplayLoading(m.out)
			if err := cli.Sleep(ctx, m.opts.LoadingDelay); err != nil {
				return nil
			}
			continue
		}

		t := table.New(cli.Headers...)
		t.AddRow(cli.FormatCPUCell(stats.CPUPercent), cli.FormatMemoryCell(stats.MemUsedGB))
		if err := cli.DisplayTable(m.out, t); err != nil {
			return err
		}

		ticks++
		if m.opts.MaxTicks > 0 && ticks >= m.opts.MaxTicks {
			return nil
		}
		if err := cli.Sleep(ctx, m.opts.PollRate); err != nil {
			return nil
		}
	}
	return nil
}

// sample takes one reading. ok is false for baseline readings, failed reads
// and zero readings, which are shown as "Loading...".
func (m *Monitor) sample(ctx context.Context) (sysmon.Stats, bool) {
	stats, err := m.sampler.Sample(ctx)
	if err != nil {
		for _, re := range sysmon.ReadErrors(err) {
			m.readFailed(re.Kind, re.Err)
		}
		return sysmon.Stats{}, false
	}

	m.logger.Debug("sample",
		logging.Float64("cpu_percent", stats.CPUPercent),
		logging.Float64("mem_used_gb", stats.MemUsedGB),
	)
	if stats.Baseline || stats.CPUPercent == 0 || stats.MemUsedGB == 0 {
		return stats, false
	}
	if m.opts.Observer != nil {
		m.opts.Observer.Observe(stats)
	}
	return stats, true
}

func (m *Monitor) readFailed(kind string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	m.logger.Warn("counter read failed",
		logging.String("kind", kind),
		logging.String("source", m.sampler.Source().Name()),
		logging.Err(err),
	)
	if m.opts.Observer != nil {
		m.opts.Observer.ObserveError(kind)
	}
}
