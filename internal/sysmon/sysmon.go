//go:generate mockgen -source=sysmon.go -destination=mocks/mock_source.go -package=mocks

// Package sysmon provides system-wide CPU and memory usage sampling.
//
// CPU usage is derived from cumulative tick counters: each call diffs the
// current counters against the ones kept from the previous call, so the
// first call after construction only establishes a baseline.
package sysmon

import (
	"context"
	"errors"

	apperrors "github.com/agbru/monitorthing/internal/errors"
)

// GB is the byte unit memory readings are reported in.
const GB = 1024 * 1024 * 1024

// ClockTicks is the number of counter ticks per second of CPU time
// (USER_HZ on Linux).
const ClockTicks = 100

// CPUCounters holds cumulative CPU time per state, in ticks. Sources that
// only expose user/nice/system/idle leave the remaining fields at zero.
type CPUCounters struct {
	User    uint64
	Nice    uint64
	System  uint64
	Idle    uint64
	IOWait  uint64
	IRQ     uint64
	SoftIRQ uint64
}

// Sub returns the per-state deltas c - prev. Subtraction is unsigned: a
// counter that went backwards (reset, overflow) wraps around to a huge
// delta, so a Usage computed across such a step can fall outside 0..100.
// The following call diffs against the new snapshot and is back in range.
func (c CPUCounters) Sub(prev CPUCounters) CPUCounters {
	return CPUCounters{
		User:    c.User - prev.User,
		Nice:    c.Nice - prev.Nice,
		System:  c.System - prev.System,
		Idle:    c.Idle - prev.Idle,
		IOWait:  c.IOWait - prev.IOWait,
		IRQ:     c.IRQ - prev.IRQ,
		SoftIRQ: c.SoftIRQ - prev.SoftIRQ,
	}
}

// Active is the time spent in every state except idle. IOWait counts as busy.
func (c CPUCounters) Active() uint64 {
	return c.User + c.Nice + c.System + c.IOWait + c.IRQ + c.SoftIRQ
}

// Total is the time spent in all states.
func (c CPUCounters) Total() uint64 {
	return c.Active() + c.Idle
}

// MemorySnapshot is an instantaneous memory reading, in bytes.
type MemorySnapshot struct {
	Total     uint64
	Available uint64
}

// Used returns Total - Available, or 0 if the source reports more available
// memory than it has.
func (m MemorySnapshot) Used() uint64 {
	if m.Available > m.Total {
		return 0
	}
	return m.Total - m.Available
}

// UsedGB returns Used converted to GB.
func (m MemorySnapshot) UsedGB() float64 {
	return float64(m.Used()) / GB
}

// CounterSource reads raw OS counters.
type CounterSource interface {
	// Name identifies the backend in errors and logs.
	Name() string
	// CPUCounters returns the current cumulative CPU tick counters.
	CPUCounters(ctx context.Context) (CPUCounters, error)
	// Memory returns the current memory totals.
	Memory(ctx context.Context) (MemorySnapshot, error)
}

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemUsedGB  float64
	// Baseline is set when CPUPercent came from a baseline call.
	Baseline bool
}

// Usage computes the CPU busy percentage between two counter snapshots.
// It returns 0 when no time elapsed between them. Across a counter that
// went backwards the result is not clamped (see Sub).
func Usage(prev, cur CPUCounters) float64 {
	d := cur.Sub(prev)
	total := d.Total()
	if total == 0 {
		return 0
	}
	return 100 * float64(d.Active()) / float64(total)
}

// Sampler turns cumulative counters into point-in-time readings.
// It keeps the previous CPU snapshot between calls and is not safe for
// concurrent use.
type Sampler struct {
	src  CounterSource
	prev *CPUCounters
}

// NewSampler creates a sampler reading from src.
func NewSampler(src CounterSource) *Sampler {
	return &Sampler{src: src}
}

// Source returns the counter source the sampler reads from.
func (s *Sampler) Source() CounterSource { return s.src }

// Baselined reports whether a previous CPU snapshot is held.
func (s *Sampler) Baselined() bool { return s.prev != nil }

// Reset forgets the previous CPU snapshot; the next SampleCPU is a baseline call.
func (s *Sampler) Reset() { s.prev = nil }

// SampleCPU returns CPU usage in percent since the previous call.
//
// The first call after construction or Reset stores the counters and
// returns 0. A failed read returns an error matching
// apperrors.ErrSourceUnreadable and leaves the stored snapshot untouched.
func (s *Sampler) SampleCPU(ctx context.Context) (float64, error) {
	cur, err := s.src.CPUCounters(ctx)
	if err != nil {
		return 0, s.wrap(KindCPU, err)
	}
	prev := s.prev
	s.prev = &cur
	if prev == nil {
		return 0, nil
	}
	return Usage(*prev, cur), nil
}

// SampleMemoryGB returns used memory in GB. It keeps no history.
func (s *Sampler) SampleMemoryGB(ctx context.Context) (float64, error) {
	m, err := s.src.Memory(ctx)
	if err != nil {
		return 0, s.wrap(KindMemory, err)
	}
	return m.UsedGB(), nil
}

// Reading kinds reported in ReadError.
const (
	KindCPU    = "cpu"
	KindMemory = "memory"
)

// ReadError tags a failed reading with its kind.
type ReadError struct {
	Kind string
	Err  error
}

func (e *ReadError) Error() string { return e.Err.Error() }

func (e *ReadError) Unwrap() error { return e.Err }

// ReadErrors splits an error returned by Sample into its failed readings,
// CPU first.
func ReadErrors(err error) []*ReadError {
	if err == nil {
		return nil
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	var out []*ReadError
	for _, e := range errs {
		var re *ReadError
		if errors.As(e, &re) {
			out = append(out, re)
		}
	}
	return out
}

// Sample collects both readings. Each reading is attempted independently;
// the returned error joins a *ReadError for whichever failed.
func (s *Sampler) Sample(ctx context.Context) (Stats, error) {
	baseline := !s.Baselined()
	cpuPct, cpuErr := s.SampleCPU(ctx)
	memGB, memErr := s.SampleMemoryGB(ctx)

	var errs []error
	if cpuErr != nil {
		errs = append(errs, &ReadError{Kind: KindCPU, Err: cpuErr})
	}
	if memErr != nil {
		errs = append(errs, &ReadError{Kind: KindMemory, Err: memErr})
	}
	return Stats{
		CPUPercent: cpuPct,
		MemUsedGB:  memGB,
		Baseline:   baseline && cpuErr == nil,
	}, errors.Join(errs...)
}

func (s *Sampler) wrap(op string, err error) error {
	if apperrors.IsSourceError(err) || apperrors.IsContextError(err) {
		return err
	}
	return apperrors.NewSourceError(s.src.Name(), op, err)
}

// Legacy maps a reading to the numeric contract where -1 signals an
// unreadable source.
func Legacy(v float64, err error) float64 {
	if err != nil {
		return -1.0
	}
	return v
}
