// SPDX-License-Identifier: MPL-2.0

package sourcegraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/cabinet/cabinet/internal/procrunner"
)

// RunFunc executes a subprocess and reports its result; Compiler.Run
// defaults to procrunner.RunChecked but tests substitute a fake to avoid
// shelling out to a real compiler.
type RunFunc func(ctx context.Context, cmd procrunner.Command) (*procrunner.Result, error)

// Compiler names the C++ compiler and the active preprocessor
// defines/include paths used for -MM dependency extraction.
type Compiler struct {
	Path     string
	Defines  []string
	Includes []string

	// Run overrides subprocess execution; nil uses procrunner.RunChecked.
	Run RunFunc
}

func (c Compiler) runner() RunFunc {
	if c.Run != nil {
		return c.Run
	}
	return procrunner.RunChecked
}

// MMError names the source file a -MM invocation failed for.
type MMError struct {
	Source string
	Err    error
}

func (e *MMError) Error() string {
	return fmt.Sprintf("dependency scan of %q: %v", e.Source, e.Err)
}

func (e *MMError) Unwrap() error { return e.Err }

// ExtractPrereqs invokes the compiler in -MM mode against sourceFile
// (relative to dir), adding -DCABIN_TEST when isTest, per §4.E step 3.
func ExtractPrereqs(ctx context.Context, c Compiler, dir, sourceFile string, isTest bool) (target string, prereqs []string, err error) {
	args := make([]string, 0, len(c.Defines)+len(c.Includes)+3)
	args = append(args, c.Defines...)
	args = append(args, c.Includes...)
	if isTest {
		args = append(args, "-DCABIN_TEST")
	}
	args = append(args, "-MM", sourceFile)

	res, err := c.runner()(ctx, procrunner.Command{Path: c.Path, Args: args, Dir: dir})
	if err != nil {
		return "", nil, &MMError{Source: sourceFile, Err: err}
	}

	return ParseMMOutput(res.Stdout)
}

// ParseMMOutput parses one line of -MM output of the form
// "obj: src header1 header2 …", splitting on unescaped whitespace and
// discarding a trailing "\" line-continuation marker, per §4.E step 3.
func ParseMMOutput(output string) (target string, prereqs []string, err error) {
	idx := strings.IndexByte(output, ':')
	if idx < 0 {
		return "", nil, fmt.Errorf("malformed -MM output: %q", output)
	}

	target = strings.TrimSpace(output[:idx])
	rest := strings.ReplaceAll(output[idx+1:], "\\ ", "\x00")
	for _, tok := range strings.Fields(rest) {
		tok = strings.TrimSuffix(tok, "\\")
		if tok == "" {
			continue
		}
		prereqs = append(prereqs, strings.ReplaceAll(tok, "\x00", " "))
	}
	return target, prereqs, nil
}
