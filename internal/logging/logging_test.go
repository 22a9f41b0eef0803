// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewSetsLevelFromVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		want    log.Level
	}{
		{name: "quiet defaults to info", verbose: false, want: log.InfoLevel},
		{name: "verbose raises to debug", verbose: true, want: log.DebugLevel},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l := New(&buf, tt.verbose)
			if l == nil {
				t.Fatal("New() = nil")
			}
			if got := l.GetLevel(); got != tt.want {
				t.Errorf("GetLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStderrReturnsNonNilLogger(t *testing.T) {
	t.Parallel()
	if Stderr(false) == nil {
		t.Fatal("Stderr() = nil")
	}
}
