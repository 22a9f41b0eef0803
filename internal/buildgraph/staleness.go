// SPDX-License-Identifier: MPL-2.0

package buildgraph

import (
	"io/fs"
	"os"
	"path/filepath"
)

// IsUpToDate reports whether generatedPath (a Makefile or
// compile_commands.json) is newer than every file under srcDir and newer
// than manifestPath, letting a caller skip regeneration entirely, per the
// original emitter's isUpToDate check.
func IsUpToDate(generatedPath, srcDir, manifestPath string) (bool, error) {
	genInfo, err := os.Stat(generatedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	genTime := genInfo.ModTime()

	stale := false
	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(genTime) {
			stale = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if stale {
		return false, nil
	}

	manifestInfo, err := os.Stat(manifestPath)
	if err != nil {
		return false, err
	}
	return !manifestInfo.ModTime().After(genTime), nil
}
