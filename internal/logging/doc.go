// Package logging provides a unified logging interface for the monitor.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components while supporting multiple backends.
//
// Log output never goes to the terminal the table is drawn on: the driver
// points it at stderr or at the file named by --log-file.
package logging
