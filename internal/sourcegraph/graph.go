// SPDX-License-Identifier: MPL-2.0

package sourcegraph

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cabinet/cabinet/internal/parallel"
)

// ObjectTarget is one compiled translation unit: its object name, its
// source file, and its insertion-ordered prerequisite list with the
// source file always first (§4.E's "Ordering policy").
type ObjectTarget struct {
	Object  string
	Source  string
	Prereqs []string
}

// TestBinary is a unit-test binary implied by a translation unit
// containing TestSentinel: its own test-mode object plus the transitively
// reached header-object dependencies, per §4.E step 4.
type TestBinary struct {
	Source     string
	TestObject ObjectTarget
	HeaderObjs []string
}

// Graph is the full result of one source-discovery pass.
type Graph struct {
	Objects []ObjectTarget
	Tests   []TestBinary

	root            string
	knownObjects    map[string]bool
	prereqsByObject map[string][]string
}

// TransitiveHeaderObjs re-runs the same header-object transitive walk used
// for test-binary detection against an arbitrary prerequisite list
// (notably the project's own main-binary link target), so callers outside
// this package never re-implement §4.E step 4.
func (g *Graph) TransitiveHeaderObjs(prereqs []string, excludeStem string) []string {
	seen := make(map[string]bool)
	var out []string
	collectTransitiveHeaderObjs(g.root, prereqs, excludeStem, g.knownObjects, g.prereqsByObject, seen, &out)
	return out
}

// headerToObjectCandidate maps a header prerequisite path (relative to
// root, e.g. "src/foo/bar.hpp") to its candidate object target
// ("foo/bar.o"), per §4.E step 4.
func headerToObjectCandidate(root, header string) string {
	rel, err := filepath.Rel(filepath.Join(root, "src"), filepath.Join(root, header))
	if err != nil {
		rel = header
	}
	ext := filepath.Ext(rel)
	return strings.TrimSuffix(rel, ext) + ObjExt
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// collectTransitiveHeaderObjs walks prereqs (a source or object's
// prerequisite list) collecting, in insertion order, every header-derived
// object candidate that is a known real object target, excluding the one
// sharing excludeStem (the compiling unit's own object). Ported from the
// original's collectBinDepObjs recursion.
func collectTransitiveHeaderObjs(
	root string, prereqs []string, excludeStem string,
	knownObjects map[string]bool, prereqsByObject map[string][]string,
	seen map[string]bool, out *[]string,
) {
	for _, dep := range prereqs {
		ext := filepath.Ext(dep)
		if !HeaderExts[ext] {
			continue
		}
		if stemOf(dep) == excludeStem {
			continue
		}

		candidate := headerToObjectCandidate(root, dep)
		if seen[candidate] {
			continue
		}
		if !knownObjects[candidate] {
			continue
		}

		seen[candidate] = true
		*out = append(*out, candidate)
		collectTransitiveHeaderObjs(root, prereqsByObject[candidate], excludeStem, knownObjects, prereqsByObject, seen, out)
	}
}

type extraction struct {
	source  string
	object  string
	prereqs []string
}

// BuildGraph runs the full §4.E pipeline: source discovery, parallel -MM
// extraction bounded by cap, header→object mapping, and test-binary
// detection.
func BuildGraph(ctx context.Context, root string, c Compiler, cap parallel.Cap) (*Graph, error) {
	sources, err := DiscoverSources(root)
	if err != nil {
		return nil, err
	}

	type indexed struct {
		idx    int
		source string
	}
	items := make([]indexed, len(sources))
	for i, s := range sources {
		items[i] = indexed{idx: i, source: s}
	}

	extractions := make([]extraction, len(sources))
	err = parallel.Group(ctx, cap, items, func(ctx context.Context, it indexed) error {
		_, prereqs, err := ExtractPrereqs(ctx, c, root, it.source, false)
		if err != nil {
			return err
		}
		extractions[it.idx] = extraction{
			source:  it.source,
			object:  headerToObjectCandidate(root, it.source),
			prereqs: prereqs,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	knownObjects := make(map[string]bool, len(extractions))
	prereqsByObject := make(map[string][]string, len(extractions))
	for _, e := range extractions {
		knownObjects[e.object] = true
		prereqsByObject[e.object] = e.prereqs
	}

	objects := make([]ObjectTarget, len(extractions))
	for i, e := range extractions {
		objects[i] = ObjectTarget{Object: e.object, Source: e.source, Prereqs: e.prereqs}
	}

	var tests []TestBinary
	for _, e := range extractions {
		hasTest, err := ContainsTestSentinel(filepath.Join(root, e.source))
		if err != nil {
			return nil, err
		}
		if !hasTest {
			continue
		}

		_, testPrereqs, err := ExtractPrereqs(ctx, c, root, e.source, true)
		if err != nil {
			return nil, err
		}

		testObjName := filepath.Join(filepath.Dir(e.object), "test_"+filepath.Base(e.object))
		testObj := ObjectTarget{Object: testObjName, Source: e.source, Prereqs: testPrereqs}

		excludeStem := stemOf(e.source)
		seen := make(map[string]bool)
		var headerObjs []string
		collectTransitiveHeaderObjs(root, testPrereqs, excludeStem, knownObjects, prereqsByObject, seen, &headerObjs)

		tests = append(tests, TestBinary{Source: e.source, TestObject: testObj, HeaderObjs: headerObjs})
	}

	return &Graph{
		Objects:         objects,
		Tests:           tests,
		root:            root,
		knownObjects:    knownObjects,
		prereqsByObject: prereqsByObject,
	}, nil
}
