// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New builds one explicitly constructed logger, threaded through the CLI
// layer into the core packages rather than reached for as a package-level
// singleton. verbose raises the level to Debug; otherwise Info.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "cabinet",
		ReportTimestamp: false,
	})
	logger.SetLevel(level)
	return logger
}

// Stderr is a convenience constructor for the common case: log to the
// process's standard error.
func Stderr(verbose bool) *log.Logger {
	return New(os.Stderr, verbose)
}
