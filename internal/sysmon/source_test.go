package sysmon_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	apperrors "github.com/agbru/monitorthing/internal/errors"
	"github.com/agbru/monitorthing/internal/sysmon"
)

const fakeStat = `cpu  100 0 50 850 0 0 0 0 0 0
cpu0 100 0 50 850 0 0 0 0 0 0
intr 0
ctxt 0
btime 1700000000
processes 1
procs_running 1
procs_blocked 0
`

const fakeMeminfo = `MemTotal:       16777216 kB
MemFree:         1048576 kB
MemAvailable:   14680064 kB
`

func writeFakeProc(t *testing.T, stat, meminfo string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stat"), []byte(stat), 0o644); err != nil {
		t.Fatal(err)
	}
	if meminfo != "" {
		if err := os.WriteFile(filepath.Join(dir, "meminfo"), []byte(meminfo), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestProcfsSource_ReadsCounters(t *testing.T) {
	t.Parallel()
	src, err := sysmon.NewProcfsSource(writeFakeProc(t, fakeStat, fakeMeminfo))
	if err != nil {
		t.Fatalf("NewProcfsSource: %v", err)
	}
	ctx := context.Background()

	c, err := src.CPUCounters(ctx)
	if err != nil {
		t.Fatalf("CPUCounters: %v", err)
	}
	want := sysmon.CPUCounters{User: 100, System: 50, Idle: 850}
	if c != want {
		t.Errorf("CPUCounters = %+v, want %+v", c, want)
	}

	m, err := src.Memory(ctx)
	if err != nil {
		t.Fatalf("Memory: %v", err)
	}
	if got := m.UsedGB(); got != 2 {
		t.Errorf("UsedGB = %v, want 2", got)
	}
}

func TestProcfsSource_MissingMeminfo(t *testing.T) {
	t.Parallel()
	src, err := sysmon.NewProcfsSource(writeFakeProc(t, fakeStat, ""))
	if err != nil {
		t.Fatalf("NewProcfsSource: %v", err)
	}
	_, err = src.Memory(context.Background())
	if !errors.Is(err, apperrors.ErrSourceUnreadable) {
		t.Errorf("expected ErrSourceUnreadable, got %v", err)
	}
}

func TestProcfsSource_BadMount(t *testing.T) {
	t.Parallel()
	_, err := sysmon.NewProcfsSource(filepath.Join(t.TempDir(), "missing"))
	if !apperrors.IsSourceError(err) {
		t.Errorf("expected source error, got %v", err)
	}
}

func TestNewSource(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		source   string
		wantName string
		wantErr  bool
	}{
		{"default", "", sysmon.SourceGopsutil, false},
		{"gopsutil", sysmon.SourceGopsutil, sysmon.SourceGopsutil, false},
		{"unknown", "wmi", "", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src, err := sysmon.NewSource(tt.source, "")
			if tt.wantErr {
				var vErr apperrors.ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if src.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", src.Name(), tt.wantName)
			}
		})
	}
}

func TestGopsutilSource_ReturnsValidRanges(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("live counters only checked on linux and darwin")
	}
	s := sysmon.NewSampler(sysmon.GopsutilSource{})
	ctx := context.Background()

	if _, err := s.SampleCPU(ctx); err != nil {
		t.Skipf("cpu counters unavailable: %v", err)
	}
	pct, err := s.SampleCPU(ctx)
	if err != nil {
		t.Fatalf("SampleCPU: %v", err)
	}
	if pct < 0 || pct > 100 {
		t.Errorf("CPU percent out of range: %f", pct)
	}

	gb, err := s.SampleMemoryGB(ctx)
	if err != nil {
		t.Fatalf("SampleMemoryGB: %v", err)
	}
	if gb <= 0 {
		t.Error("expected non-zero used memory on a running system")
	}
}
