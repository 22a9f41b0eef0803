// SPDX-License-Identifier: MPL-2.0

package buildgraph

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEmitMakefileVariableTopologicalOrder(t *testing.T) {
	t.Parallel()
	c := NewConfig("pkg", "pkg.d")
	c.DefineSimpleVariable("c", "3", "b")
	c.DefineSimpleVariable("b", "2", "a")
	c.DefineSimpleVariable("a", "1")

	got, err := c.EmitMakefile()
	if err != nil {
		t.Fatalf("EmitMakefile: %v", err)
	}
	want := "a := 1\nb := 2\nc := 3\n"
	if got != want {
		t.Errorf("EmitMakefile() = %q, want %q", got, want)
	}
}

func TestEmitMakefileTargetsReverseTopologicalOrder(t *testing.T) {
	t.Parallel()
	c := NewConfig("pkg", "pkg.d")
	c.DefineTarget("a", []string{"echo a"})
	c.DefineTarget("b", []string{"echo b"}, "a")
	c.DefineTarget("c", []string{"echo c"}, "b")

	got, err := c.EmitMakefile()
	if err != nil {
		t.Fatalf("EmitMakefile: %v", err)
	}
	idxC := strings.Index(got, "c:")
	idxB := strings.Index(got, "b:")
	idxA := strings.Index(got, "a:")
	if idxC < 0 || idxB < 0 || idxA < 0 {
		t.Fatalf("EmitMakefile() = %q, missing a target", got)
	}
	if !(idxC < idxB && idxB < idxA) {
		t.Errorf("target order = c@%d b@%d a@%d, want c first (reverse topological)", idxC, idxB, idxA)
	}
}

func TestEmitMakefileCycleFails(t *testing.T) {
	t.Parallel()
	c := NewConfig("pkg", "pkg.d")
	c.DefineTarget("a", nil, "b")
	c.DefineTarget("b", nil, "a")

	_, err := c.EmitMakefile()
	if err == nil {
		t.Fatal("EmitMakefile: expected cycle error, got nil")
	}
	if !strings.Contains(err.Error(), "too complex build graph") {
		t.Errorf("error = %q, want it to mention 'too complex build graph'", err.Error())
	}
}

func TestEmitTargetWrapsLongDependencyLists(t *testing.T) {
	t.Parallel()
	c := NewConfig("pkg", "pkg.d")
	deps := make([]string, 12)
	for i := range deps {
		deps[i] = "pkg.d/some/pretty/long/object/name/file" + string(rune('a'+i)) + ".o"
	}
	c.DefineTarget("bin", []string{"echo linking"}, deps...)

	got, err := c.EmitMakefile()
	if err != nil {
		t.Fatalf("EmitMakefile: %v", err)
	}
	if !strings.Contains(got, "\\\n") {
		t.Errorf("EmitMakefile() with %d long deps did not wrap: %q", len(deps), got)
	}
	for _, dep := range deps {
		if !strings.Contains(got, dep) {
			t.Errorf("EmitMakefile() missing dependency %q", dep)
		}
	}
}

func TestEmitCompdbFiltersToCompileTargets(t *testing.T) {
	t.Parallel()
	c := NewConfig("pkg", "pkg.d")
	c.DefineSimpleVariable("CXX", "clang++")
	c.DefineSimpleVariable("CXXFLAGS", " -std=c++17")
	c.DefineSimpleVariable("DEFINES", " -DPKG_VERSION='\"1.0.0\"'")
	c.DefineSimpleVariable("INCLUDES", " -Iinclude")

	c.DefineTarget("pkg.d/main.o", []string{
		"@echo Compiling",
		"@$(CXX) $(CXXFLAGS) $(DEFINES) $(INCLUDES) -c $< -o $@",
	}, "../../src/main.cc")
	c.DefineTarget("pkg", []string{
		"@echo Linking",
		"@$(CXX) $(CXXFLAGS) $^ $(LIBS) -o $@",
	}, "pkg.d/main.o")
	c.AddPhony("all")
	c.SetAll("pkg")

	raw, err := c.EmitCompdb("/proj/cabinet-out/debug")
	if err != nil {
		t.Fatalf("EmitCompdb: %v", err)
	}

	var entries []map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		t.Fatalf("EmitCompdb produced invalid JSON: %v\n%s", err, raw)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1 (link target excluded)", len(entries))
	}
	e := entries[0]
	if e["file"] != "../../src/main.cc" {
		t.Errorf("file = %q, want ../../src/main.cc", e["file"])
	}
	if e["output"] != "pkg.d/main.o" {
		t.Errorf("output = %q, want pkg.d/main.o", e["output"])
	}
	if strings.HasPrefix(e["command"], "@") {
		t.Errorf("command = %q, should not carry the make verbosity prefix", e["command"])
	}
	if !strings.Contains(e["command"], "clang++") || !strings.Contains(e["command"], "-std=c++17") {
		t.Errorf("command = %q, want expanded CXX/CXXFLAGS", e["command"])
	}
}
