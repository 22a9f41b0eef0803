// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cabinet/cabinet/internal/buildgraph"
	"github.com/cabinet/cabinet/internal/depinstall"
	"github.com/cabinet/cabinet/internal/manifest"
)

func TestProfileFromFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		release bool
		test    bool
		want    manifest.BuildProfile
	}{
		{name: "neither flag defaults to dev", release: false, test: false, want: manifest.ProfileDev},
		{name: "release wins", release: true, test: false, want: manifest.ProfileRelease},
		{name: "test flag selects test profile", release: false, test: true, want: manifest.ProfileTest},
		{name: "release takes priority over test", release: true, test: true, want: manifest.ProfileRelease},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := profileFromFlags(tt.release, tt.test); got != tt.want {
				t.Errorf("profileFromFlags(%v, %v) = %v, want %v", tt.release, tt.test, got, tt.want)
			}
		})
	}
}

func TestToDefineArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		macros []string
		want   []string
	}{
		{name: "no macros", macros: nil, want: []string{}},
		{name: "one macro", macros: []string{"FOO"}, want: []string{"-DFOO"}},
		{name: "several macros preserve order", macros: []string{"FOO", "BAR=1"}, want: []string{"-DFOO", "-DBAR=1"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := toDefineArgs(tt.macros); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("toDefineArgs(%v) = %v, want %v", tt.macros, got, tt.want)
			}
		})
	}
}

func newConfigured(t *testing.T, projectRoot string, compdb bool) *configured {
	t.Helper()
	m := &manifest.Manifest{
		Path:    filepath.Join(projectRoot, manifest.FileName),
		Package: manifest.Package{Name: "pkg"},
	}
	return &configured{
		manifest: m,
		config:   buildgraph.NewConfig("pkg", "pkg.d"),
		profile:  manifest.Profile{Compdb: compdb},
		outDir:   "cabinet-out/dev",
	}
}

func TestWriteBuildFilesSkipsCompdbWhenProfileDisablesIt(t *testing.T) {
	t.Parallel()

	projectRoot := t.TempDir()
	if err := os.MkdirAll(filepath.Join(projectRoot, "src"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(projectRoot, manifest.FileName), []byte("[package]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile manifest: %v", err)
	}

	c := newConfigured(t, projectRoot, false)
	if err := writeBuildFiles(projectRoot, c); err != nil {
		t.Fatalf("writeBuildFiles: %v", err)
	}

	dir := outDirAbs(projectRoot, c)
	if _, err := os.Stat(filepath.Join(dir, "Makefile")); err != nil {
		t.Errorf("Makefile not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "compile_commands.json")); !os.IsNotExist(err) {
		t.Errorf("compile_commands.json written despite profile.Compdb = false (err = %v)", err)
	}
}

func TestWriteBuildFilesEmitsCompdbWhenProfileEnablesIt(t *testing.T) {
	t.Parallel()

	projectRoot := t.TempDir()
	if err := os.MkdirAll(filepath.Join(projectRoot, "src"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(projectRoot, manifest.FileName), []byte("[package]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile manifest: %v", err)
	}

	c := newConfigured(t, projectRoot, true)
	if err := writeBuildFiles(projectRoot, c); err != nil {
		t.Fatalf("writeBuildFiles: %v", err)
	}

	dir := outDirAbs(projectRoot, c)
	if _, err := os.Stat(filepath.Join(dir, "compile_commands.json")); err != nil {
		t.Errorf("compile_commands.json not written despite profile.Compdb = true: %v", err)
	}
}

func TestWriteBuildFilesSkipsRegenerationWhenUpToDate(t *testing.T) {
	t.Parallel()

	projectRoot := t.TempDir()
	if err := os.MkdirAll(filepath.Join(projectRoot, "src"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(projectRoot, manifest.FileName), []byte("[package]\n"), 0o644); err != nil {
		t.Fatalf("WriteFile manifest: %v", err)
	}

	c := newConfigured(t, projectRoot, true)
	if err := writeBuildFiles(projectRoot, c); err != nil {
		t.Fatalf("writeBuildFiles (initial): %v", err)
	}

	dir := outDirAbs(projectRoot, c)
	makefilePath := filepath.Join(dir, "Makefile")
	before, err := os.Stat(makefilePath)
	if err != nil {
		t.Fatalf("Stat Makefile: %v", err)
	}

	// A config that would panic on EmitMakefile if actually invoked again,
	// proving the second call short-circuits before touching the emitter.
	c.config = nil
	if err := writeBuildFiles(projectRoot, c); err != nil {
		t.Fatalf("writeBuildFiles (second, up to date): %v", err)
	}

	after, err := os.Stat(makefilePath)
	if err != nil {
		t.Fatalf("Stat Makefile after second call: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("Makefile was rewritten despite being up to date")
	}
}

func TestToIncludeArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags depinstall.AggregatedFlags
		want  []string
	}{
		{
			name:  "always includes the project include dir",
			flags: depinstall.AggregatedFlags{},
			want:  []string{"-Iinclude"},
		},
		{
			name: "include and isystem dirs both contribute",
			flags: depinstall.AggregatedFlags{
				IncludeDirs: []string{"vendor/fmt/include"},
				IsystemDirs: []string{"/usr/include/eigen3"},
			},
			want: []string{"-Iinclude", "-Ivendor/fmt/include", "-isystem", "/usr/include/eigen3"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := toIncludeArgs(tt.flags); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("toIncludeArgs(%+v) = %v, want %v", tt.flags, got, tt.want)
			}
		})
	}
}
