// SPDX-License-Identifier: MPL-2.0

package buildgraph

// VarType selects a Make variable's assignment operator, per §4.F.
type VarType int

const (
	VarRecursive VarType = iota // =
	VarSimple                   // :=
	VarCond                     // ?=
	VarAppend                   // +=
	VarShell                    // !=
)

func (t VarType) String() string {
	switch t {
	case VarRecursive:
		return "="
	case VarSimple:
		return ":="
	case VarCond:
		return "?="
	case VarAppend:
		return "+="
	case VarShell:
		return "!="
	default:
		return "="
	}
}

// Variable is one Make variable assignment.
type Variable struct {
	Value string
	Type  VarType
}

// Target is one Make rule: its recipe commands and its prerequisite list,
// in insertion order (an order-only separator "|" may appear as a literal
// element, per make's own syntax).
type Target struct {
	Commands  []string
	DependsOn []string
}

// Config accumulates the variables and targets of one BuildConfig
// emission pass, plus the reverse-dependency maps (dep -> dependents)
// used to topologically order emission.
type Config struct {
	PackageName string
	BuildOutDir string
	// OutDir is the profile build directory the generated Makefile and
	// compile_commands.json are meant to be written into, e.g.
	// "cabinet-out/debug".
	OutDir string

	Variables map[string]Variable
	VarDeps   map[string][]string
	Targets   map[string]Target
	TargetDeps map[string][]string

	Phony *Target
	All   *Target

	// varOrder/targetOrder record definition order so TopologicalSortFrom
	// has a deterministic node list even when a node has no edges.
	varOrder    []string
	targetOrder []string
}

// NewConfig starts an empty BuildConfig for the named package, with
// buildOutDir as the directory object files are compiled into (relative
// to wherever the Makefile itself will live).
func NewConfig(packageName, buildOutDir string) *Config {
	return &Config{
		PackageName: packageName,
		BuildOutDir: buildOutDir,
		Variables:   make(map[string]Variable),
		VarDeps:     make(map[string][]string),
		Targets:     make(map[string]Target),
		TargetDeps:  make(map[string][]string),
	}
}

// DefineVariable records name's value/type and, for every entry in
// dependsOn, a reverse edge marking that name must be emitted after it.
func (c *Config) DefineVariable(name string, v Variable, dependsOn ...string) {
	if _, exists := c.Variables[name]; !exists {
		c.varOrder = append(c.varOrder, name)
	}
	c.Variables[name] = v
	for _, dep := range dependsOn {
		c.VarDeps[dep] = append(c.VarDeps[dep], name)
	}
}

// DefineSimpleVariable defines a ":="-assigned variable.
func (c *Config) DefineSimpleVariable(name, value string, dependsOn ...string) {
	c.DefineVariable(name, Variable{Value: value, Type: VarSimple}, dependsOn...)
}

// DefineCondVariable defines a "?="-assigned variable, letting an
// environment override (e.g. CXX) take precedence over the Makefile's
// own default.
func (c *Config) DefineCondVariable(name, value string, dependsOn ...string) {
	c.DefineVariable(name, Variable{Value: value, Type: VarCond}, dependsOn...)
}

// DefineTarget records a rule and its reverse dependency edges.
func (c *Config) DefineTarget(name string, commands []string, dependsOn ...string) {
	if _, exists := c.Targets[name]; !exists {
		c.targetOrder = append(c.targetOrder, name)
	}
	c.Targets[name] = Target{Commands: commands, DependsOn: dependsOn}
	for _, dep := range dependsOn {
		if dep == "|" {
			continue
		}
		c.TargetDeps[dep] = append(c.TargetDeps[dep], name)
	}
}

// AddPhony appends target to the .PHONY rule's dependency set, creating
// it on first use.
func (c *Config) AddPhony(target string) {
	if c.Phony == nil {
		c.Phony = &Target{}
	}
	c.Phony.DependsOn = append(c.Phony.DependsOn, target)
}

// SetAll defines the "all" rule's dependency set.
func (c *Config) SetAll(dependsOn ...string) {
	c.All = &Target{DependsOn: dependsOn}
}
