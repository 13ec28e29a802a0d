package sysmon

import (
	"context"
	"math"

	"github.com/prometheus/procfs"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	apperrors "github.com/agbru/monitorthing/internal/errors"
)

// Source names accepted by NewSource.
const (
	SourceGopsutil = "gopsutil"
	SourceProcfs   = "procfs"
)

// DefaultProcfsMount is the procfs mount point used when none is configured.
const DefaultProcfsMount = procfs.DefaultMountPoint

// NewSource returns the counter source registered under name.
// procfsMount is only used by the procfs source.
func NewSource(name, procfsMount string) (CounterSource, error) {
	switch name {
	case "", SourceGopsutil:
		return GopsutilSource{}, nil
	case SourceProcfs:
		return NewProcfsSource(procfsMount)
	default:
		return nil, apperrors.ValidationError{Field: "source", Message: "unknown counter source " + name}
	}
}

// secondsToTicks converts CPU seconds to clock ticks.
func secondsToTicks(s float64) uint64 {
	if s <= 0 {
		return 0
	}
	return uint64(math.Round(s * ClockTicks))
}

// GopsutilSource reads counters through gopsutil, which covers Linux, macOS
// (reduced user/nice/system/idle set), BSD and Windows.
type GopsutilSource struct{}

// Name implements CounterSource.
func (GopsutilSource) Name() string { return SourceGopsutil }

// CPUCounters implements CounterSource.
func (GopsutilSource) CPUCounters(ctx context.Context) (CPUCounters, error) {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return CPUCounters{}, apperrors.NewSourceError(SourceGopsutil, KindCPU, err)
	}
	if len(times) == 0 {
		return CPUCounters{}, apperrors.NewSourceError(SourceGopsutil, KindCPU, nil)
	}
	t := times[0]
	return CPUCounters{
		User:    secondsToTicks(t.User),
		Nice:    secondsToTicks(t.Nice),
		System:  secondsToTicks(t.System),
		Idle:    secondsToTicks(t.Idle),
		IOWait:  secondsToTicks(t.Iowait),
		IRQ:     secondsToTicks(t.Irq),
		SoftIRQ: secondsToTicks(t.Softirq),
	}, nil
}

// Memory implements CounterSource.
func (GopsutilSource) Memory(ctx context.Context) (MemorySnapshot, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemorySnapshot{}, apperrors.NewSourceError(SourceGopsutil, KindMemory, err)
	}
	if vm == nil || vm.Total == 0 {
		return MemorySnapshot{}, apperrors.NewSourceError(SourceGopsutil, KindMemory, nil)
	}
	return MemorySnapshot{Total: vm.Total, Available: vm.Available}, nil
}

// ProcfsSource reads the aggregate cpu line of /proc/stat and
// MemTotal/MemAvailable of /proc/meminfo. Linux only.
type ProcfsSource struct {
	fs procfs.FS
}

// NewProcfsSource opens procfs at mount (DefaultProcfsMount if empty).
func NewProcfsSource(mount string) (*ProcfsSource, error) {
	if mount == "" {
		mount = DefaultProcfsMount
	}
	fs, err := procfs.NewFS(mount)
	if err != nil {
		return nil, apperrors.NewSourceError(SourceProcfs, "mount", err)
	}
	return &ProcfsSource{fs: fs}, nil
}

// Name implements CounterSource.
func (*ProcfsSource) Name() string { return SourceProcfs }

// CPUCounters implements CounterSource.
func (p *ProcfsSource) CPUCounters(ctx context.Context) (CPUCounters, error) {
	if err := ctx.Err(); err != nil {
		return CPUCounters{}, err
	}
	st, err := p.fs.Stat()
	if err != nil {
		return CPUCounters{}, apperrors.NewSourceError(SourceProcfs, KindCPU, err)
	}
	c := st.CPUTotal
	return CPUCounters{
		User:    secondsToTicks(c.User),
		Nice:    secondsToTicks(c.Nice),
		System:  secondsToTicks(c.System),
		Idle:    secondsToTicks(c.Idle),
		IOWait:  secondsToTicks(c.Iowait),
		IRQ:     secondsToTicks(c.IRQ),
		SoftIRQ: secondsToTicks(c.SoftIRQ),
	}, nil
}

// Memory implements CounterSource.
func (p *ProcfsSource) Memory(ctx context.Context) (MemorySnapshot, error) {
	if err := ctx.Err(); err != nil {
		return MemorySnapshot{}, err
	}
	mi, err := p.fs.Meminfo()
	if err != nil {
		return MemorySnapshot{}, apperrors.NewSourceError(SourceProcfs, KindMemory, err)
	}
	// Kernels older than 3.14 have no MemAvailable.
	if mi.MemTotal == nil || mi.MemAvailable == nil {
		return MemorySnapshot{}, apperrors.NewSourceError(SourceProcfs, KindMemory, nil)
	}
	return MemorySnapshot{
		Total:     *mi.MemTotal * 1024,
		Available: *mi.MemAvailable * 1024,
	}, nil
}
