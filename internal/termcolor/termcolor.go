// SPDX-License-Identifier: MPL-2.0

package termcolor

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Mode is one of the three CABIN_TERM_COLOR settings, per spec §6.
type Mode int

const (
	Auto Mode = iota
	Always
	Never
)

func (m Mode) String() string {
	switch m {
	case Always:
		return "always"
	case Never:
		return "never"
	default:
		return "auto"
	}
}

// WarnFunc receives a warning message; wired to internal/logging by the
// CLI layer, or a no-op in tests.
type WarnFunc func(msg string)

// ParseMode parses one of "always"/"auto"/"never". An unrecognized value
// warns and falls back to Auto, per spec §7's "unknown color mode"
// warning case.
func ParseMode(s string, warn WarnFunc) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto
	case "always":
		return Always
	case "never":
		return Never
	default:
		if warn != nil {
			warn("unknown color mode " + s + ", falling back to auto")
		}
		return Auto
	}
}

// EnvOverride reads CABIN_TERM_COLOR, returning Auto (and ok=false) if it
// is unset.
func EnvOverride(warn WarnFunc) (mode Mode, ok bool) {
	v, present := os.LookupEnv("CABIN_TERM_COLOR")
	if !present {
		return Auto, false
	}
	return ParseMode(v, warn), true
}

// Resolve decides whether command echo output should carry ANSI styling:
// Always/Never are absolute, Auto defers to whether out is a terminal.
func Resolve(mode Mode, out *os.File) bool {
	switch mode {
	case Always:
		return true
	case Never:
		return false
	default:
		return isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	}
}
