// Package tui implements the optional full-screen dashboard driver. It
// samples with the same Sampler as the plain driver and draws the same
// table inside a bordered panel.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/monitorthing/internal/cli"
	apperrors "github.com/agbru/monitorthing/internal/errors"
	"github.com/agbru/monitorthing/internal/logging"
	"github.com/agbru/monitorthing/internal/monitor"
	"github.com/agbru/monitorthing/internal/sysmon"
	"github.com/agbru/monitorthing/internal/table"
)

// TickMsg triggers the next sample.
type TickMsg time.Time

// SampleMsg carries the outcome of one sample.
type SampleMsg struct {
	Stats sysmon.Stats
	Err   error
}

// ContextCancelledMsg is sent when the parent context is done.
type ContextCancelledMsg struct {
	Err error
}

// Options configures the dashboard.
type Options struct {
	PollRate     time.Duration
	LoadingDelay time.Duration
	MaxTicks     int
	Version      string
	Observer     monitor.Observer
	Logger       logging.Logger
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	header HeaderModel
	keymap KeyMap

	ctx     context.Context
	sampler *sysmon.Sampler
	table   *table.Table
	opts    Options

	rendered     string
	lastErr      error
	paused       bool
	resetPending bool
	ticks        int
	width        int
}

// NewModel creates a dashboard model sampling with sampler.
func NewModel(ctx context.Context, sampler *sysmon.Sampler, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.LoadingDelay <= 0 {
		opts.LoadingDelay = cli.LoadingDelay
	}
	return Model{
		header:  NewHeaderModel(opts.Version, sampler.Source().Name()),
		keymap:  DefaultKeyMap(),
		ctx:     ctx,
		sampler: sampler,
		table:   table.New(cli.Headers...),
		opts:    opts,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		sampleCmd(m.ctx, m.sampler, false),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case TickMsg:
		if m.paused {
			return m, tickCmd(m.opts.PollRate)
		}
		reset := m.resetPending
		m.resetPending = false
		return m, sampleCmd(m.ctx, m.sampler, reset)

	case SampleMsg:
		return m.handleSample(msg)

	case ContextCancelledMsg:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.resetPending = true
		m.rendered = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleSample(msg SampleMsg) (tea.Model, tea.Cmd) {
	m.lastErr = nil
	for _, re := range sysmon.ReadErrors(msg.Err) {
		m.readFailed(re.Kind, re.Err)
	}

	s := msg.Stats
	if m.lastErr != nil || s.Baseline || s.CPUPercent == 0 || s.MemUsedGB == 0 {
		m.rendered = ""
		return m, tickCmd(m.opts.LoadingDelay)
	}

	if m.opts.Observer != nil {
		m.opts.Observer.Observe(s)
	}
	m.table.AddRow(cli.FormatCPUCell(s.CPUPercent), cli.FormatMemoryCell(s.MemUsedGB))
	m.rendered = m.table.Header() + m.table.String()
	m.table.Reset()

	m.ticks++
	if m.opts.MaxTicks > 0 && m.ticks >= m.opts.MaxTicks {
		return m, tea.Quit
	}
	return m, tickCmd(m.opts.PollRate)
}

func (m *Model) readFailed(kind string, err error) {
	m.lastErr = err
	m.opts.Logger.Warn("counter read failed", logging.String("kind", kind), logging.Err(err))
	if m.opts.Observer != nil {
		m.opts.Observer.ObserveError(kind)
	}
}

// View renders the dashboard.
func (m Model) View() string {
	var body string
	if m.rendered == "" {
		body = loadingStyle.Render("Loading...")
	} else {
		body = tableStyle.Render(strings.TrimSuffix(m.rendered, "\n"))
	}
	if m.lastErr != nil {
		body += "\n" + errorStyle.Render(m.lastErr.Error())
	}

	status := ""
	if m.paused {
		status = pausedStyle.Render(" PAUSED")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View()+status,
		panelStyle.Render(body),
		m.footerView(),
	)
}

func (m Model) footerView() string {
	bindings := []key.Binding{m.keymap.Quit, m.keymap.Pause, m.keymap.Reset}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, footerDescStyle.Render(" • "))
}

// Run is the public entry point for the dashboard mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, sampler *sysmon.Sampler, opts Options) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	p := tea.NewProgram(NewModel(ctx, sampler, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if opts.Logger != nil {
			opts.Logger.Error("dashboard failed", err)
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after d.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleCmd takes one reading. Commands run off the update loop; only one
// sample is in flight at a time, so the sampler has a single user.
func sampleCmd(ctx context.Context, sampler *sysmon.Sampler, reset bool) tea.Cmd {
	return func() tea.Msg {
		if reset {
			sampler.Reset()
		}
		stats, err := sampler.Sample(ctx)
		return SampleMsg{Stats: stats, Err: err}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
