// SPDX-License-Identifier: MPL-2.0

package buildgraph

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cabinet/cabinet/internal/depinstall"
	"github.com/cabinet/cabinet/internal/manifest"
	"github.com/cabinet/cabinet/internal/sourcegraph"
)

// pathFromOutDir is how a Makefile living two directories below the
// project root (<cabinet-out>/<profile>/Makefile) references the root,
// mirroring the original tool's poac-out/<mode>/ layout depth.
const pathFromOutDir = "../.."

const testOutDir = "tests"

var statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

// Options configures Configure.
type Options struct {
	Manifest *manifest.Manifest
	// Profile selects which manifest profile governs the main compile/link
	// flags and the output directory; the test pass always uses the Test
	// profile's flags.
	Profile manifest.BuildProfile
	Graph   *sourcegraph.Graph
	Flags   depinstall.AggregatedFlags
	// CXX overrides the compiler baked into the generated CXX ?= default;
	// empty defers to $CXX, then to "clang++".
	CXX     string
	Verbose bool
	Color   bool
}

func buildCmd(verbose bool, cmd string) string {
	if verbose {
		return cmd
	}
	return "@" + cmd
}

func echoCmd(color bool, header, body string) string {
	label := fmt.Sprintf("%12s", header)
	if color {
		label = statusStyle.Render(label)
	}
	return fmt.Sprintf("@echo '%s %s'", label, body)
}

func rootRelToOutDirRel(rootRel string) string {
	return filepath.Join(pathFromOutDir, rootRel)
}

// resolveCXX picks the compiler baked into the generated Makefile's
// "CXX ?=" default: an explicit override, then $CXX, then "clang++".
func resolveCXX(override string) string {
	if override != "" {
		return override
	}
	if v := os.Getenv("CXX"); v != "" {
		return v
	}
	return "clang++"
}

func packageDefineName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_")) + "_VERSION"
}

// buildCxxflags assembles the -std/-fdiagnostics-color/-g|-DNDEBUG/-O<n>/
// -flto/profile.Cxxflags chain shared by the main and test compile
// variables, per §4.F's setVariables/configureBuild.
func buildCxxflags(edition manifest.Edition, color bool, p manifest.Profile, other []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, " -std=%s", edition.StdFlag())
	if color {
		b.WriteString(" -fdiagnostics-color")
	}
	if p.Debug {
		b.WriteString(" -g -DDEBUG")
	} else {
		b.WriteString(" -DNDEBUG")
	}
	fmt.Fprintf(&b, " -O%d", p.OptLevel)
	if p.LTO {
		b.WriteString(" -flto")
	}
	for _, f := range p.Cxxflags {
		b.WriteString(" ")
		b.WriteString(f)
	}
	for _, f := range other {
		b.WriteString(" ")
		b.WriteString(f)
	}
	return b.String()
}

func buildDefines(pkgName, version string, macros []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, " -D%s='\"%s\"'", packageDefineName(pkgName), version)
	for _, m := range macros {
		b.WriteString(" -D")
		b.WriteString(m)
	}
	return b.String()
}

func buildIncludes(flags depinstall.AggregatedFlags) string {
	var b strings.Builder
	b.WriteString(" -Iinclude")
	for _, d := range flags.IncludeDirs {
		b.WriteString(" -I")
		b.WriteString(d)
	}
	for _, d := range flags.IsystemDirs {
		b.WriteString(" -isystem ")
		b.WriteString(d)
	}
	return b.String()
}

func buildLibs(flags depinstall.AggregatedFlags, ldflags []string) string {
	var b strings.Builder
	for _, d := range flags.LibDirs {
		b.WriteString(" -L")
		b.WriteString(d)
	}
	for _, l := range flags.Libs {
		b.WriteString(" -l")
		b.WriteString(l)
	}
	for _, f := range flags.OtherLdflags {
		b.WriteString(" ")
		b.WriteString(f)
	}
	for _, f := range ldflags {
		b.WriteString(" ")
		b.WriteString(f)
	}
	return b.String()
}

// Configure builds the full BuildConfig for one profile: variable
// definitions, the source-file compile pass, the main binary link target,
// and (when the source graph found any) a mirrored test-binary pass plus
// an aggregated "test" phony target, per §4.F/§4.E.
func Configure(opts Options) (*Config, error) {
	m := opts.Manifest
	pkg := m.Package.Name
	outDir := filepath.Join(depinstall.OutDirName, depinstall.ProfileOutDir(opts.Profile))
	buildOutDir := pkg + ".d"

	cfg := NewConfig(pkg, buildOutDir)
	cfg.OutDir = outDir

	cfg.DefineCondVariable("CXX", resolveCXX(opts.CXX))

	profile := m.Profile(opts.Profile)
	cxxflags := buildCxxflags(m.Package.Edition, opts.Color, profile, opts.Flags.OtherCxxflags)
	cfg.DefineSimpleVariable("CXXFLAGS", cxxflags)

	defines := buildDefines(pkg, m.Package.Version.String(), opts.Flags.Macros)
	cfg.DefineSimpleVariable("DEFINES", defines)

	includes := buildIncludes(opts.Flags)
	cfg.DefineSimpleVariable("INCLUDES", includes)

	libs := buildLibs(opts.Flags, profile.Ldflags)
	cfg.DefineSimpleVariable("LIBS", libs)

	hasTests := len(opts.Graph.Tests) > 0
	if hasTests {
		testProfile := m.Profile(manifest.ProfileTest)
		testCxxflags := buildCxxflags(m.Package.Edition, opts.Color, testProfile, opts.Flags.OtherCxxflags)
		cfg.DefineSimpleVariable("TESTCXXFLAGS", testCxxflags)
	}

	cfg.DefineTarget(buildOutDir, []string{buildCmd(opts.Verbose, "mkdir -p $@")})
	cfg.SetAll(pkg)
	cfg.AddPhony("all")

	knownDirs := map[string]bool{buildOutDir: true}
	ensureDirTarget := func(dir string) {
		if knownDirs[dir] {
			return
		}
		knownDirs[dir] = true
		cfg.DefineTarget(dir, []string{buildCmd(opts.Verbose, "mkdir -p $@")})
	}

	// Source pass: one compile target per discovered translation unit.
	objTargets := make(map[string]string, len(opts.Graph.Objects)) // root-relative object -> full Makefile target
	for _, obj := range opts.Graph.Objects {
		buildObjTarget := filepath.Join(buildOutDir, obj.Object)
		objTargets[obj.Object] = buildObjTarget

		deps := make([]string, 0, len(obj.Prereqs)+2)
		for _, p := range obj.Prereqs {
			deps = append(deps, rootRelToOutDirRel(p))
		}
		deps = append(deps, "|", buildOutDir)
		if dir := filepath.Dir(buildObjTarget); dir != buildOutDir && dir != "." {
			ensureDirTarget(dir)
			deps = append(deps, dir)
		}

		commands := []string{
			echoCmd(opts.Color, "Compiling", obj.Source),
			buildCmd(opts.Verbose, "$(CXX) $(CXXFLAGS) $(DEFINES) $(INCLUDES) -c $< -o $@"),
		}
		cfg.DefineTarget(buildObjTarget, commands, deps...)
	}

	// Main binary link target: its own main object plus every
	// transitively reached header-derived object.
	mainObj, ok := objTargets["main.o"]
	if !ok {
		return nil, fmt.Errorf("buildgraph: no main.o among discovered objects")
	}
	linkDeps := []string{mainObj}
	for _, hdrObj := range opts.Graph.TransitiveHeaderObjs(objPrereqsFor(opts.Graph, "main.o"), "") {
		linkDeps = append(linkDeps, filepath.Join(buildOutDir, hdrObj))
	}
	cfg.DefineTarget(pkg, []string{
		echoCmd(opts.Color, "Linking", pkg),
		buildCmd(opts.Verbose, "$(CXX) $(CXXFLAGS) $^ $(LIBS) -o $@"),
	}, linkDeps...)

	// Test pass: one compile+link pair per translation unit the source
	// graph flagged as containing tests, plus an aggregated phony target.
	if hasTests {
		ensureDirTarget(testOutDir)

		var testCommands []string
		var testTargets []string
		for _, tb := range opts.Graph.Tests {
			testTargetBaseDir := testOutDir
			if dir := filepath.Dir(tb.Source); dir != "src" && dir != "." {
				rel := strings.TrimPrefix(dir, "src"+string(filepath.Separator))
				testTargetBaseDir = filepath.Join(testOutDir, rel)
				ensureDirTarget(testTargetBaseDir)
			}

			testObjTarget := filepath.Join(testTargetBaseDir, filepath.Base(tb.TestObject.Object))
			testDeps := make([]string, 0, len(tb.TestObject.Prereqs)+2)
			for _, p := range tb.TestObject.Prereqs {
				testDeps = append(testDeps, rootRelToOutDirRel(p))
			}
			testDeps = append(testDeps, "|", testTargetBaseDir)

			cfg.DefineTarget(testObjTarget, []string{
				echoCmd(opts.Color, "Compiling", tb.Source),
				buildCmd(opts.Verbose, "$(CXX) $(TESTCXXFLAGS) $(DEFINES) $(INCLUDES) -DCABIN_TEST -c $< -o $@"),
			}, testDeps...)

			stem := strings.TrimSuffix(filepath.Base(tb.Source), filepath.Ext(tb.Source))
			testTarget := filepath.Join(testTargetBaseDir, "test_"+stem)

			linkTestDeps := []string{testObjTarget}
			for _, hdrObj := range tb.HeaderObjs {
				linkTestDeps = append(linkTestDeps, filepath.Join(buildOutDir, hdrObj))
			}
			cfg.DefineTarget(testTarget, []string{
				echoCmd(opts.Color, "Linking", testTarget),
				buildCmd(opts.Verbose, "$(CXX) $(TESTCXXFLAGS) $^ $(LIBS) -o $@"),
			}, linkTestDeps...)

			testCommands = append(testCommands, echoCmd(opts.Color, "Testing", stem), buildCmd(opts.Verbose, testTarget))
			testTargets = append(testTargets, testTarget)
		}

		cfg.DefineTarget("test", testCommands, testTargets...)
		cfg.AddPhony("test")
	}

	// Tidy pass.
	cfg.DefineCondVariable("CABIN_TIDY", "clang-tidy")
	tidyCmd := "$(CABIN_TIDY) $(INCLUDES)"
	cfg.DefineTarget("tidy", []string{buildCmd(opts.Verbose, tidyCmd)})
	cfg.AddPhony("tidy")

	return cfg, nil
}

// objPrereqsFor looks up a discovered object's own prerequisite list by
// its root-relative object name.
func objPrereqsFor(g *sourcegraph.Graph, object string) []string {
	for _, obj := range g.Objects {
		if obj.Object == object {
			return obj.Prereqs
		}
	}
	return nil
}
