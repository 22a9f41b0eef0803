// SPDX-License-Identifier: MPL-2.0

package buildgraph

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsUpToDate(t *testing.T) {
	t.Parallel()

	writeAt := func(t *testing.T, path string, mtime time.Time) {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}
	}

	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	t.Run("missing generated file is stale", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		srcDir := filepath.Join(dir, "src")
		manifestPath := filepath.Join(dir, "cabinet.toml")
		writeAt(t, filepath.Join(srcDir, "main.cc"), older)
		writeAt(t, manifestPath, older)

		got, err := IsUpToDate(filepath.Join(dir, "Makefile"), srcDir, manifestPath)
		if err != nil {
			t.Fatalf("IsUpToDate: %v", err)
		}
		if got {
			t.Error("IsUpToDate() = true, want false for missing generated file")
		}
	})

	t.Run("generated file newer than source and manifest is up to date", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		srcDir := filepath.Join(dir, "src")
		manifestPath := filepath.Join(dir, "cabinet.toml")
		writeAt(t, filepath.Join(srcDir, "main.cc"), older)
		writeAt(t, manifestPath, older)
		writeAt(t, filepath.Join(dir, "Makefile"), newer)

		got, err := IsUpToDate(filepath.Join(dir, "Makefile"), srcDir, manifestPath)
		if err != nil {
			t.Fatalf("IsUpToDate: %v", err)
		}
		if !got {
			t.Error("IsUpToDate() = false, want true")
		}
	})

	t.Run("source file touched after generated file is stale", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		srcDir := filepath.Join(dir, "src")
		manifestPath := filepath.Join(dir, "cabinet.toml")
		writeAt(t, manifestPath, older)
		writeAt(t, filepath.Join(dir, "Makefile"), older)
		writeAt(t, filepath.Join(srcDir, "main.cc"), newer)

		got, err := IsUpToDate(filepath.Join(dir, "Makefile"), srcDir, manifestPath)
		if err != nil {
			t.Fatalf("IsUpToDate: %v", err)
		}
		if got {
			t.Error("IsUpToDate() = true, want false when a source file is newer")
		}
	})

	t.Run("manifest touched after generated file is stale", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		srcDir := filepath.Join(dir, "src")
		manifestPath := filepath.Join(dir, "cabinet.toml")
		writeAt(t, filepath.Join(srcDir, "main.cc"), older)
		writeAt(t, filepath.Join(dir, "Makefile"), older)
		writeAt(t, manifestPath, newer)

		got, err := IsUpToDate(filepath.Join(dir, "Makefile"), srcDir, manifestPath)
		if err != nil {
			t.Fatalf("IsUpToDate: %v", err)
		}
		if got {
			t.Error("IsUpToDate() = true, want false when the manifest is newer")
		}
	})
}
