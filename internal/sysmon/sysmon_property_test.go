package sysmon_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/monitorthing/internal/sysmon"
)

// TestUsage_BoundedProperty verifies that for any non-decreasing pair of
// counter snapshots the computed usage stays within [0, 100].
func TestUsage_BoundedProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("usage is within [0, 100]", prop.ForAll(
		func(base, du, ds, di, dw uint64) bool {
			prev := sysmon.CPUCounters{User: base, System: base, Idle: base, IOWait: base}
			cur := sysmon.CPUCounters{User: base + du, System: base + ds, Idle: base + di, IOWait: base + dw}
			u := sysmon.Usage(prev, cur)
			return u >= 0 && u <= 100
		},
		gen.UInt64Range(0, 1<<40),
		gen.UInt64Range(0, 1<<20),
		gen.UInt64Range(0, 1<<20),
		gen.UInt64Range(0, 1<<20),
		gen.UInt64Range(0, 1<<20),
	))

	properties.Property("identical snapshots yield zero", prop.ForAll(
		func(u, s, i uint64) bool {
			c := sysmon.CPUCounters{User: u, System: s, Idle: i}
			return sysmon.Usage(c, c) == 0
		},
		gen.UInt64(),
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.Property("all-idle delta yields zero", prop.ForAll(
		func(base, di uint64) bool {
			prev := sysmon.CPUCounters{User: base, Idle: base}
			cur := sysmon.CPUCounters{User: base, Idle: base + di}
			return sysmon.Usage(prev, cur) == 0
		},
		gen.UInt64Range(0, 1<<40),
		gen.UInt64Range(1, 1<<20),
	))

	properties.TestingRun(t)
}
