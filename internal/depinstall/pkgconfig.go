// SPDX-License-Identifier: MPL-2.0

package depinstall

import (
	"context"
	"fmt"
	"strings"

	"github.com/cabinet/cabinet/internal/manifest"
	"github.com/cabinet/cabinet/internal/procrunner"
)

// PkgConfigError names the dependency and the failing pkg-config
// invocation, per §4.D's "propagate as errors naming the dependency".
type PkgConfigError struct {
	Name    string
	Command string
	Err     error
}

func (e *PkgConfigError) Error() string {
	return fmt.Sprintf("system dependency %q: %s: %v", e.Name, e.Command, e.Err)
}

func (e *PkgConfigError) Unwrap() error { return e.Err }

// resolveSystem shells out to pkg-config for --cflags and --libs against
// the canonicalized requirement string, per §4.D, and classifies each
// resulting token into the flag categories the emitter needs.
func resolveSystem(ctx context.Context, dep manifest.Dependency) (ResolvedDep, error) {
	query := dep.Requirement.ToPkgConfigString(dep.Name)

	cflags, err := runPkgConfig(ctx, dep.Name, "--cflags", query)
	if err != nil {
		return ResolvedDep{}, err
	}
	libs, err := runPkgConfig(ctx, dep.Name, "--libs", query)
	if err != nil {
		return ResolvedDep{}, err
	}

	out := ResolvedDep{Name: dep.Name}
	classify(&out, cflags, false)
	classify(&out, libs, true)
	return out, nil
}

func runPkgConfig(ctx context.Context, name, mode, query string) (string, error) {
	cmd := procrunner.Command{Path: "pkg-config", Args: []string{mode, query}}
	res, err := procrunner.RunChecked(ctx, cmd)
	if err != nil {
		return "", &PkgConfigError{Name: name, Command: cmd.String(), Err: err}
	}
	return res.Stdout, nil
}

// classify splits pkg-config's space-separated output into the -D/-I/-L/-l
// categories §4.D names, appending anything else verbatim to the "other"
// bucket matching which pkg-config mode (--cflags or --libs) produced it.
// A bare flag like "-framework" that takes a following argument (e.g.
// "Metal") keeps that argument in the same bucket.
func classify(out *ResolvedDep, output string, isLibs bool) {
	appendOther := func(tok string) {
		if isLibs {
			out.OtherLdflags = append(out.OtherLdflags, tok)
		} else {
			out.OtherCxxflags = append(out.OtherCxxflags, tok)
		}
	}

	takesArg := false
	for _, tok := range strings.Fields(output) {
		if takesArg {
			appendOther(tok)
			takesArg = false
			continue
		}
		switch {
		case strings.HasPrefix(tok, "-D"):
			out.Macros = append(out.Macros, strings.TrimPrefix(tok, "-D"))
		case strings.HasPrefix(tok, "-I"):
			out.IncludeDirs = append(out.IncludeDirs, strings.TrimPrefix(tok, "-I"))
		case strings.HasPrefix(tok, "-L"):
			out.LibDirs = append(out.LibDirs, strings.TrimPrefix(tok, "-L"))
		case strings.HasPrefix(tok, "-l"):
			out.Libs = append(out.Libs, strings.TrimPrefix(tok, "-l"))
		case tok == "-framework":
			appendOther(tok)
			takesArg = true
		default:
			appendOther(tok)
		}
	}
}
