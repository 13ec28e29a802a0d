package tui

import (
	"fmt"
	"time"

	"github.com/agbru/monitorthing/internal/format"
)

// HeaderModel renders the top bar: title, version, source, uptime.
type HeaderModel struct {
	startTime time.Time
	version   string
	source    string
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version, source string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		source:    source,
	}
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "monitorthing"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	uptime := format.FormatExecutionDuration(time.Since(h.startTime))
	return titleStyle.Render(titleText) +
		dimStyle.Render(fmt.Sprintf(" | source: %s | up %s", h.source, uptime))
}
