// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/cabinet/cabinet/internal/semver"
)

// FileName is the manifest's configurable filename constant, per §4.C.
const FileName = "cabinet.toml"

// ErrManifestNotFound is returned when FileName cannot be located walking
// from the start directory to the filesystem root.
var ErrManifestNotFound = errors.New("could not find manifest here or in its parents")

// ManifestNotFoundError carries the directory the search started from.
type ManifestNotFoundError struct {
	SearchedFrom string
}

func (e *ManifestNotFoundError) Error() string {
	return fmt.Sprintf("could not find %s starting at %s and walking to its parents", FileName, e.SearchedFrom)
}

func (e *ManifestNotFoundError) Unwrap() error { return ErrManifestNotFound }

// Package identifies the project: name, language edition, and version.
type Package struct {
	Name    string
	Edition Edition
	Version semver.Version
}

// Manifest is the fully parsed and validated cabinet.toml.
type Manifest struct {
	Path            string
	Package         Package
	Dependencies    []Dependency
	DevDependencies []Dependency
	Profiles        map[BuildProfile]Profile
	LintFilters     []string
	// CmdEnv is the opaque [cmd.env] passthrough table (SUPPLEMENTED
	// FEATURE): the core reads it into this field but never interprets it;
	// no command in cmd/cabinet reads it.
	CmdEnv map[string]string
}

type tomlPackage struct {
	Name    string `toml:"name"`
	Edition string `toml:"edition"`
	Version string `toml:"version"`
}

type tomlProfileTable struct {
	Cxxflags    []string          `toml:"cxxflags"`
	Ldflags     []string          `toml:"ldflags"`
	LTO         *bool             `toml:"lto"`
	Debug       *bool             `toml:"debug"`
	Compdb      *bool             `toml:"compdb"`
	OptLevel    *int              `toml:"opt-level"`
	InheritMode *string           `toml:"inherit-mode"`
	Dev         *tomlProfileTable `toml:"dev"`
	Release     *tomlProfileTable `toml:"release"`
	Test        *tomlProfileTable `toml:"test"`
}

func (t *tomlProfileTable) toRaw() rawProfile {
	if t == nil {
		return rawProfile{}
	}
	return rawProfile{
		Cxxflags:    t.Cxxflags,
		Ldflags:     t.Ldflags,
		LTO:         t.LTO,
		Debug:       t.Debug,
		Compdb:      t.Compdb,
		OptLevel:    t.OptLevel,
		InheritMode: t.InheritMode,
		hasCxxflags: t.Cxxflags != nil,
		hasLdflags:  t.Ldflags != nil,
	}
}

type tomlLint struct {
	Cpplint struct {
		Filters []string `toml:"filters"`
	} `toml:"cpplint"`
}

type tomlCmd struct {
	Env map[string]string `toml:"env"`
}

type tomlManifest struct {
	Package         tomlPackage              `toml:"package"`
	Dependencies    map[string]rawDependency `toml:"dependencies"`
	DevDependencies map[string]rawDependency `toml:"dev-dependencies"`
	Profile         tomlProfileTable         `toml:"profile"`
	Lint            tomlLint                 `toml:"lint"`
	Cmd             tomlCmd                  `toml:"cmd"`
}

// Find walks from startDir toward the filesystem root looking for FileName,
// returning the first match.
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", &ManifestNotFoundError{SearchedFrom: startDir}
}

// Load finds and parses the manifest starting at startDir.
func Load(startDir string) (*Manifest, error) {
	path, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile parses a manifest at an already-known path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw tomlManifest
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	pkg, err := parsePackage(raw.Package)
	if err != nil {
		return nil, err
	}

	deps, err := parseDependencyTable(raw.Dependencies)
	if err != nil {
		return nil, err
	}
	devDeps, err := parseDependencyTable(raw.DevDependencies)
	if err != nil {
		return nil, err
	}

	profiles, err := resolveProfiles(raw.Profile)
	if err != nil {
		return nil, err
	}

	return &Manifest{
		Path:            path,
		Package:         pkg,
		Dependencies:    deps,
		DevDependencies: devDeps,
		Profiles:        profiles,
		LintFilters:     raw.Lint.Cpplint.Filters,
		CmdEnv:          raw.Cmd.Env,
	}, nil
}

func parsePackage(raw tomlPackage) (Package, error) {
	if err := ValidatePackageName(raw.Name); err != nil {
		return Package{}, err
	}
	edition, err := ParseEdition(raw.Edition)
	if err != nil {
		return Package{}, err
	}
	version, err := semver.Parse(raw.Version)
	if err != nil {
		return Package{}, err
	}
	return Package{Name: raw.Name, Edition: edition, Version: version}, nil
}

func parseDependencyTable(table map[string]rawDependency) ([]Dependency, error) {
	if len(table) == 0 {
		return nil, nil
	}
	// map iteration order is nondeterministic; sort names for reproducible
	// output, matching the emitter's determinism requirement downstream.
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make([]Dependency, 0, len(names))
	for _, name := range names {
		dep, err := parseDependency(name, table[name])
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

// Profile returns the fully resolved Profile for kind.
func (m *Manifest) Profile(kind BuildProfile) Profile {
	return m.Profiles[kind]
}

func resolveProfiles(base tomlProfileTable) (map[BuildProfile]Profile, error) {
	baseRaw := base.toRaw()

	dev := defaultProfile(ProfileDev)
	dev = baseRaw.applyOver(dev)
	dev = base.Dev.toRaw().applyOver(dev)
	if err := validateProfileFlags(dev); err != nil {
		return nil, err
	}

	release := defaultProfile(ProfileRelease)
	release = baseRaw.applyOver(release)
	release = base.Release.toRaw().applyOver(release)
	if err := validateProfileFlags(release); err != nil {
		return nil, err
	}

	testRaw := base.Test.toRaw()
	mode := InheritAppend
	if testRaw.InheritMode != nil && *testRaw.InheritMode == "overwrite" {
		mode = InheritOverwrite
	}
	test := mergeTestInherit(dev, testRaw, mode)
	if err := validateProfileFlags(test); err != nil {
		return nil, err
	}

	return map[BuildProfile]Profile{
		ProfileDev:     dev,
		ProfileRelease: release,
		ProfileTest:    test,
	}, nil
}
