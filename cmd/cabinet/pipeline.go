// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cabinet/cabinet/internal/buildgraph"
	"github.com/cabinet/cabinet/internal/config"
	"github.com/cabinet/cabinet/internal/depinstall"
	"github.com/cabinet/cabinet/internal/manifest"
	"github.com/cabinet/cabinet/internal/parallel"
	"github.com/cabinet/cabinet/internal/sourcegraph"
)

// configured is the result of running one project through the full
// resolve/discover/configure pipeline for a chosen profile.
type configured struct {
	manifest *manifest.Manifest
	graph    *sourcegraph.Graph
	config   *buildgraph.Config
	profile  manifest.Profile
	outDir   string
}

func cacheRoot() string {
	if cfg != nil && cfg.CacheRoot != "" {
		return cfg.CacheRoot
	}
	root, err := config.DefaultCacheRoot()
	if err != nil {
		return filepath.Join(os.TempDir(), "cabinet-cache")
	}
	return root
}

func parallelCap() parallel.Cap {
	if parallelism > 0 {
		return parallel.NewCap(parallelism, warnLog)
	}
	return parallel.Default()
}

// runPipeline loads the manifest at root, installs dependencies, discovers
// the source tree, and emits a build configuration for profile.
func runPipeline(ctx context.Context, root string, profile manifest.BuildProfile, includeDevDeps bool) (*configured, error) {
	m, err := manifest.Load(root)
	if err != nil {
		return nil, err
	}
	projectRoot := filepath.Dir(m.Path)

	resolved, err := depinstall.Install(ctx, m, depinstall.Options{
		CacheRoot:      cacheRoot(),
		IncludeDevDeps: includeDevDeps,
		Profile:        profile,
	})
	if err != nil {
		return nil, err
	}
	flags := depinstall.Aggregate(resolved)

	compiler := sourcegraph.Compiler{
		Path:     resolveCXX(),
		Defines:  toDefineArgs(flags.Macros),
		Includes: toIncludeArgs(flags),
	}
	graph, err := sourcegraph.BuildGraph(ctx, projectRoot, compiler, parallelCap())
	if err != nil {
		return nil, err
	}

	bc, err := buildgraph.Configure(buildgraph.Options{
		Manifest: m,
		Profile:  profile,
		Graph:    graph,
		Flags:    flags,
		CXX:      resolveCXX(),
		Verbose:  verbose,
		Color:    color,
	})
	if err != nil {
		return nil, err
	}

	return &configured{manifest: m, graph: graph, config: bc, profile: m.Profile(profile), outDir: bc.OutDir}, nil
}

func resolveCXX() string {
	if v := os.Getenv("CXX"); v != "" {
		return v
	}
	return "clang++"
}

func toDefineArgs(macros []string) []string {
	args := make([]string, 0, len(macros))
	for _, m := range macros {
		args = append(args, "-D"+m)
	}
	return args
}

func toIncludeArgs(flags depinstall.AggregatedFlags) []string {
	var args []string
	args = append(args, "-Iinclude")
	for _, d := range flags.IncludeDirs {
		args = append(args, "-I"+d)
	}
	for _, d := range flags.IsystemDirs {
		args = append(args, "-isystem", d)
	}
	return args
}

// outDirAbs returns c's output directory as an absolute path under
// projectRoot.
func outDirAbs(projectRoot string, c *configured) string {
	return filepath.Join(projectRoot, c.outDir)
}

// projectRootOf returns the directory the manifest was loaded from.
func projectRootOf(m *manifest.Manifest) string {
	return filepath.Dir(m.Path)
}

// writeBuildFiles writes the Makefile and, when the active profile requests
// it, compile_commands.json for c into c.outDir, relative to projectRoot,
// creating the directory as needed. Regeneration is skipped entirely when
// the existing Makefile is already newer than every source file and the
// manifest, per the up-to-date policy.
func writeBuildFiles(projectRoot string, c *configured) error {
	dir := outDirAbs(projectRoot, c)
	makefilePath := filepath.Join(dir, "Makefile")
	srcDir := filepath.Join(projectRoot, "src")

	upToDate, err := buildgraph.IsUpToDate(makefilePath, srcDir, c.manifest.Path)
	if err != nil {
		return err
	}
	if upToDate {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	makefile, err := c.config.EmitMakefile()
	if err != nil {
		return err
	}
	if err := os.WriteFile(makefilePath, []byte(makefile), 0o644); err != nil {
		return err
	}

	if !c.profile.Compdb {
		return nil
	}
	compdb, err := c.config.EmitCompdb(dir)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "compile_commands.json"), compdb, 0o644); err != nil {
		return err
	}
	return nil
}

func profileFromFlags(release, test bool) manifest.BuildProfile {
	switch {
	case release:
		return manifest.ProfileRelease
	case test:
		return manifest.ProfileTest
	default:
		return manifest.ProfileDev
	}
}

func statusLine(colorOn bool, header, body string) string {
	label := fmt.Sprintf("%12s", header)
	return styled(SuccessStyle.Bold(true), colorOn, label) + " " + body
}
