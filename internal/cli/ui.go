package cli

import (
	"context"
	"time"

	"github.com/briandowns/spinner"
)

const (
	// WarmupDelay is how long the start-up banner stays up before the first tick.
	WarmupDelay = time.Second
	// LoadingDelay is the retry delay while the sampler has no usable reading yet.
	LoadingDelay = 500 * time.Millisecond
	// SpinnerRefreshRate defines the refresh frequency of the warm-up spinner.
	SpinnerRefreshRate = 100 * time.Millisecond
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This decouples DisplayWarmup from a specific spinner implementation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// Sleep waits for d or until ctx is done, whichever comes first.
// It returns ctx.Err() when interrupted.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
