// Package ui provides theme and color support for the terminal drivers.
// It defines the ANSI color schemes used by the plain redraw loop and the
// matching lipgloss palettes used by the dashboard, and honors NO_COLOR.
package ui
