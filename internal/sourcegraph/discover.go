// SPDX-License-Identifier: MPL-2.0

package sourcegraph

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ObjExt is the extension every discovered source or header maps to when
// forming an object target name.
const ObjExt = ".o"

// TestSentinel is the macro name whose presence in a translation unit marks
// it as containing unit tests, per §4.E step 5.
const TestSentinel = "CABIN_TEST"

// SourceExts is the recognized set of C++ source-file extensions.
var SourceExts = map[string]bool{
	".c": true, ".cc": true, ".cpp": true, ".cxx": true, ".c++": true,
}

// HeaderExts is the recognized set of C++ header-file extensions.
var HeaderExts = map[string]bool{
	".h": true, ".hh": true, ".hpp": true, ".hxx": true, ".h++": true,
}

// ErrMissingSrcDir and ErrMissingMain are the sentinels §4.E step 1 requires.
var (
	ErrMissingSrcDir = errors.New("src directory not found")
	ErrMissingMain   = errors.New("src/main.cc not found")
)

// MissingSrcDirError reports a project root without a src/ directory.
type MissingSrcDirError struct{ Root string }

func (e *MissingSrcDirError) Error() string {
	return fmt.Sprintf("%s: src directory not found", e.Root)
}
func (e *MissingSrcDirError) Unwrap() error { return ErrMissingSrcDir }

// MissingMainError reports a src/ directory without main.cc.
type MissingMainError struct{ Root string }

func (e *MissingMainError) Error() string {
	return fmt.Sprintf("%s: src/main.cc not found", e.Root)
}
func (e *MissingMainError) Unwrap() error { return ErrMissingMain }

// DiscoverSources validates that src/ and src/main.cc exist, then
// recursively enumerates every file under src/ whose extension is in
// SourceExts, returning them relative to root in a deterministic
// (lexically sorted) order. Header files are not part of this discovery
// pass; they only appear as compiler-reported prerequisites.
func DiscoverSources(root string) ([]string, error) {
	srcDir := filepath.Join(root, "src")
	if info, err := os.Stat(srcDir); err != nil || !info.IsDir() {
		return nil, &MissingSrcDirError{Root: root}
	}
	if info, err := os.Stat(filepath.Join(srcDir, "main.cc")); err != nil || info.IsDir() {
		return nil, &MissingMainError{Root: root}
	}

	var sources []string
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if SourceExts[filepath.Ext(path)] {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return relErr
			}
			sources = append(sources, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(sources)
	return sources, nil
}

// ContainsTestSentinel substring-scans a file's content for TestSentinel.
func ContainsTestSentinel(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return bytes.Contains(data, []byte(TestSentinel)), nil
}
