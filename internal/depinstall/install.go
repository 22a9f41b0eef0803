// SPDX-License-Identifier: MPL-2.0

package depinstall

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cabinet/cabinet/internal/manifest"
)

// OutDirName is the build output directory a Path dependency's own build
// is expected to have populated, named after the original tool's
// "poac-out" convention.
const OutDirName = "cabinet-out"

// ProfileOutDir maps a build profile to its subdirectory under OutDirName.
func ProfileOutDir(kind manifest.BuildProfile) string {
	switch kind {
	case manifest.ProfileRelease:
		return "release"
	case manifest.ProfileTest:
		return "test"
	default:
		return "debug"
	}
}

// PathError names the dependency and reason a Path dependency could not be
// installed, per §4.D's "propagate as errors naming the dependency".
type PathError struct {
	Name string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path dependency %q (%s): %v", e.Name, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// CycleError reports a Path dependency cycle discovered during transitive
// resolution.
type CycleError struct {
	Name string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular path dependency detected at %q", e.Name)
}

// Options configures Install.
type Options struct {
	// CacheRoot is the base directory Git dependencies are cloned under.
	CacheRoot string
	// IncludeDevDeps installs the manifest's [dev-dependencies] in
	// addition to [dependencies], per §4.D's install(includeDevDeps bool).
	IncludeDevDeps bool
	// Profile selects which build profile's output directory a Path
	// dependency's library is expected to live in.
	Profile manifest.BuildProfile
}

// installer carries state shared across one Install call's transitive Path
// resolution: the dual visited/inProgress map cycle-detection pattern.
type installer struct {
	opts       Options
	git        *GitFetcher
	visited    map[string]bool
	inProgress map[string]bool
}

// Install resolves every dependency (and, for Path dependencies,
// transitively every dependency they declare) into its ResolvedDep flag
// contribution, per §4.D.
func Install(ctx context.Context, m *manifest.Manifest, opts Options) ([]ResolvedDep, error) {
	in := &installer{
		opts:       opts,
		git:        NewGitFetcher(opts.CacheRoot),
		visited:    make(map[string]bool),
		inProgress: make(map[string]bool),
	}

	deps := m.Dependencies
	if opts.IncludeDevDeps {
		deps = append(append([]manifest.Dependency{}, deps...), m.DevDependencies...)
	}

	var resolved []ResolvedDep
	for _, dep := range deps {
		rs, err := in.installOne(ctx, filepath.Dir(m.Path), dep)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rs...)
	}
	return resolved, nil
}

func (in *installer) installOne(ctx context.Context, fromDir string, dep manifest.Dependency) ([]ResolvedDep, error) {
	switch dep.Kind {
	case manifest.DependencyGit:
		dir, err := in.git.Fetch(ctx, dep)
		if err != nil {
			return nil, err
		}
		return []ResolvedDep{resolveGit(dep, dir)}, nil

	case manifest.DependencySystem:
		rd, err := resolveSystem(ctx, dep)
		if err != nil {
			return nil, err
		}
		return []ResolvedDep{rd}, nil

	case manifest.DependencyPath:
		return in.installPath(ctx, fromDir, dep)

	default:
		return nil, &PathError{Name: dep.Name, Path: dep.Path, Err: fmt.Errorf("unrecognized dependency kind")}
	}
}

// installPath resolves a Path dependency and, transitively, its own
// [dependencies] (never its [dev-dependencies], mirroring the non-transitive
// dev-dependency convention this design otherwise follows). Cycle detection
// follows the dual visited/inProgress map pattern: an entry is added to
// inProgress when resolution of a project begins and removed when it ends,
// so only ancestors on the current path are flagged as cycles.
func (in *installer) installPath(ctx context.Context, fromDir string, dep manifest.Dependency) ([]ResolvedDep, error) {
	depRoot, err := filepath.Abs(filepath.Join(fromDir, dep.Path))
	if err != nil {
		return nil, &PathError{Name: dep.Name, Path: dep.Path, Err: err}
	}

	if in.inProgress[depRoot] {
		return nil, &CycleError{Name: dep.Name}
	}
	if in.visited[depRoot] {
		return nil, nil
	}

	in.inProgress[depRoot] = true
	defer delete(in.inProgress, depRoot)

	depManifest, err := manifest.Load(depRoot)
	if err != nil {
		return nil, &PathError{Name: dep.Name, Path: dep.Path, Err: err}
	}

	own := resolvePathInclude(dep, depManifest, depRoot, in.opts.Profile)

	resolved := []ResolvedDep{own}
	for _, transitive := range depManifest.Dependencies {
		rs, err := in.installOne(ctx, depRoot, transitive)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rs...)
	}

	in.visited[depRoot] = true
	return resolved, nil
}

// resolvePathInclude exports the dependency's include/ directory (preferred)
// or its root as an ordinary -I include path, and, when the dependency
// manifest names a package (every manifest does), its expected library
// under ProfileOutDir for -L/-l linking, per §4.D.
func resolvePathInclude(dep manifest.Dependency, depManifest *manifest.Manifest, depRoot string, profile manifest.BuildProfile) ResolvedDep {
	includeDir := filepath.Join(depRoot, "include")
	rd := ResolvedDep{Name: dep.Name}

	empty, err := dirMissingOrEmpty(includeDir)
	if err == nil && !empty {
		rd.IncludeDirs = []string{includeDir}
	} else {
		rd.IncludeDirs = []string{depRoot}
	}

	rd.LibDirs = []string{filepath.Join(depRoot, OutDirName, ProfileOutDir(profile))}
	rd.Libs = []string{depManifest.Package.Name}
	return rd
}
