// SPDX-License-Identifier: MPL-2.0

package buildgraph

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cabinet/cabinet/internal/dag"
)

// wrapCol is the column at which a target's dependency list wraps onto a
// continuation line, per §4.F step 5.
const wrapCol = 80

// emitTarget writes "name: dep1 dep2 …" wrapping near wrapCol, followed by
// one tab-indented line per command and a trailing blank line. Ported from
// the original emitter's std::setw right-justified continuation padding.
func emitTarget(w *strings.Builder, name string, dependsOn, commands []string) {
	w.WriteString(name)
	w.WriteString(":")
	offset := len(name) + 2 // ':' plus the space before the first dep

	const cont = " \\\n "
	for _, dep := range dependsOn {
		if offset+len(dep)+2 > wrapCol {
			field := 83 - offset
			if field > len(cont) {
				w.WriteString(strings.Repeat(" ", field-len(cont)))
			}
			w.WriteString(cont)
			offset = 2
		}
		w.WriteString(" ")
		w.WriteString(dep)
		offset += len(dep) + 1
	}
	w.WriteString("\n")

	for _, cmd := range commands {
		w.WriteString("\t")
		w.WriteString(cmd)
		w.WriteString("\n")
	}
	w.WriteString("\n")
}

// EmitMakefile renders the full BuildConfig as Makefile text: variables in
// topological order, then .PHONY, then all, then real targets in reverse
// topological order, per §4.F.
func (c *Config) EmitMakefile() (string, error) {
	var b strings.Builder

	sortedVars, err := dag.TopologicalSortFrom(c.varOrder, c.VarDeps)
	if err != nil {
		return "", err
	}
	for _, name := range sortedVars {
		v := c.Variables[name]
		fmt.Fprintf(&b, "%s %s %s\n", name, v.Type, v.Value)
	}
	if len(sortedVars) > 0 && (len(c.targetOrder) > 0 || c.Phony != nil || c.All != nil) {
		b.WriteString("\n")
	}

	if c.Phony != nil {
		emitTarget(&b, ".PHONY", c.Phony.DependsOn, nil)
	}
	if c.All != nil {
		emitTarget(&b, "all", c.All.DependsOn, nil)
	}

	sortedTargets, err := dag.TopologicalSortFrom(c.targetOrder, c.TargetDeps)
	if err != nil {
		return "", err
	}
	for i := len(sortedTargets) - 1; i >= 0; i-- {
		name := sortedTargets[i]
		t := c.Targets[name]
		emitTarget(&b, name, t.DependsOn, t.Commands)
	}

	return b.String(), nil
}

// compdbEntry is one compile_commands.json record.
type compdbEntry struct {
	Directory string `json:"directory"`
	File      string `json:"file"`
	Output    string `json:"output"`
	Command   string `json:"command"`
}

// EmitCompdb renders the compilation database: every non-phony target
// whose recipe starts with "$(CXX)"/"@$(CXX)" and contains "-c", per §4.F's
// compile-commands emission rule. Unlike the original's manual
// std::quoted string assembly, this uses encoding/json so escaping of
// paths containing spaces or quotes is handled correctly by the standard
// library rather than by hand.
func (c *Config) EmitCompdb(baseDir string) ([]byte, error) {
	phonyMembers := make(map[string]bool)
	if c.Phony != nil {
		for _, p := range c.Phony.DependsOn {
			phonyMembers[p] = true
		}
	}

	replacer := strings.NewReplacer(
		"$(CXX)", c.Variables["CXX"].Value,
		"$(CXXFLAGS)", c.Variables["CXXFLAGS"].Value,
		"$(TESTCXXFLAGS)", c.Variables["TESTCXXFLAGS"].Value,
		"$(DEFINES)", c.Variables["DEFINES"].Value,
		"$(INCLUDES)", c.Variables["INCLUDES"].Value,
	)

	var entries []compdbEntry
	for _, name := range c.targetOrder {
		if phonyMembers[name] {
			continue
		}
		t := c.Targets[name]
		compileCmd, ok := compileCommandLine(t.Commands)
		if !ok {
			continue
		}
		if len(t.DependsOn) == 0 {
			continue
		}
		file := t.DependsOn[0]
		cmd := replacer.Replace(compileCmd)
		cmd = strings.ReplaceAll(cmd, "$<", file)
		cmd = strings.ReplaceAll(cmd, "$@", name)
		cmd = strings.TrimPrefix(cmd, "@")
		entries = append(entries, compdbEntry{
			Directory: filepath.Clean(baseDir),
			File:      file,
			Output:    name,
			Command:   cmd,
		})
	}

	if entries == nil {
		entries = []compdbEntry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// compileCommandLine returns the first recipe line that looks like a
// compile invocation (starts with "$(CXX)"/"@$(CXX)" and contains "-c",
// excluding link recipes), per §4.F's compile-target filter.
func compileCommandLine(commands []string) (string, bool) {
	for _, cmd := range commands {
		if !strings.HasPrefix(cmd, "$(CXX)") && !strings.HasPrefix(cmd, "@$(CXX)") {
			continue
		}
		if strings.Contains(cmd, "-c") {
			return cmd, true
		}
	}
	return "", false
}
