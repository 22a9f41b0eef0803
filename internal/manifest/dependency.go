// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"

	"github.com/cabinet/cabinet/internal/semver"
)

// DependencyKind discriminates the tagged union of dependency sources.
type DependencyKind int

const (
	DependencyGit DependencyKind = iota
	DependencyPath
	DependencySystem
)

// GitTargetKind names which of rev/tag/branch was supplied.
type GitTargetKind int

const (
	GitTargetNone GitTargetKind = iota
	GitTargetRev
	GitTargetTag
	GitTargetBranch
)

// Dependency is the tagged-union dependency declaration from §3: exactly
// one of the Git/Path/System fields is meaningful, selected by Kind.
type Dependency struct {
	Name string
	Kind DependencyKind

	// Git
	URL        string
	Target     string
	TargetKind GitTargetKind

	// Path
	Path string

	// System
	Requirement semver.VersionReq
}

// ErrInvalidDependencyShape is the sentinel wrapped by
// InvalidDependencyShapeError.
var ErrInvalidDependencyShape = errors.New("invalid dependency shape")

// InvalidDependencyShapeError reports a dependency table matching none of
// the three recognized shapes (git/path/system).
type InvalidDependencyShapeError struct {
	Name string
}

func (e *InvalidDependencyShapeError) Error() string {
	return fmt.Sprintf(
		"dependency %q: must be exactly one of a git, path, or system dependency", e.Name,
	)
}

func (e *InvalidDependencyShapeError) Unwrap() error { return ErrInvalidDependencyShape }

// rawDependency mirrors the shape go-toml decodes each [dependencies.<name>]
// (or [dev-dependencies.<name>]) table into, before shape dispatch.
type rawDependency struct {
	Git     string `toml:"git"`
	Rev     string `toml:"rev"`
	Tag     string `toml:"tag"`
	Branch  string `toml:"branch"`
	Path    string `toml:"path"`
	System  bool   `toml:"system"`
	Version string `toml:"version"`
}

func parseDependency(name string, raw rawDependency) (Dependency, error) {
	if err := ValidateDependencyName(name); err != nil {
		return Dependency{}, err
	}

	switch {
	case raw.Git != "":
		dep := Dependency{Name: name, Kind: DependencyGit, URL: raw.Git}
		switch {
		case raw.Rev != "":
			dep.Target, dep.TargetKind = raw.Rev, GitTargetRev
		case raw.Tag != "":
			dep.Target, dep.TargetKind = raw.Tag, GitTargetTag
		case raw.Branch != "":
			dep.Target, dep.TargetKind = raw.Branch, GitTargetBranch
		}
		return dep, nil

	case raw.Path != "":
		return Dependency{Name: name, Kind: DependencyPath, Path: raw.Path}, nil

	case raw.System && raw.Version != "":
		req, err := semver.ParseReq(raw.Version)
		if err != nil {
			return Dependency{}, err
		}
		return Dependency{Name: name, Kind: DependencySystem, Requirement: req}, nil

	default:
		return Dependency{}, &InvalidDependencyShapeError{Name: name}
	}
}
