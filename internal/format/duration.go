// Package format holds small human-readable formatting helpers shared by the
// terminal drivers and the logs.
package format

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and whole seconds otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Second).String()
}

// FormatBytes formats a byte count with binary units ("16 GiB").
func FormatBytes(b uint64) string {
	return humanize.IBytes(b)
}
