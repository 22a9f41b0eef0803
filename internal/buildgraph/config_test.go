// SPDX-License-Identifier: MPL-2.0

package buildgraph

import "testing"

func TestDefineVariablePreservesInsertionOrder(t *testing.T) {
	t.Parallel()
	c := NewConfig("pkg", "pkg.d")
	c.DefineSimpleVariable("b", "2")
	c.DefineSimpleVariable("a", "1")
	c.DefineSimpleVariable("b", "20") // redefinition must not duplicate order

	want := []string{"b", "a"}
	if len(c.varOrder) != len(want) {
		t.Fatalf("varOrder = %v, want %v", c.varOrder, want)
	}
	for i, name := range want {
		if c.varOrder[i] != name {
			t.Errorf("varOrder[%d] = %q, want %q", i, c.varOrder[i], name)
		}
	}
	if c.Variables["b"].Value != "20" {
		t.Errorf("Variables[b].Value = %q, want %q (redefinition should win)", c.Variables["b"].Value, "20")
	}
}

func TestDefineTargetRecordsReverseDeps(t *testing.T) {
	t.Parallel()
	c := NewConfig("pkg", "pkg.d")
	c.DefineTarget("a", []string{"echo a"})
	c.DefineTarget("b", []string{"echo b"}, "a")
	c.DefineTarget("c", []string{"echo c"}, "b")

	if got := c.TargetDeps["a"]; len(got) != 1 || got[0] != "b" {
		t.Errorf("TargetDeps[a] = %v, want [b]", got)
	}
	if got := c.TargetDeps["b"]; len(got) != 1 || got[0] != "c" {
		t.Errorf("TargetDeps[b] = %v, want [c]", got)
	}
}

func TestAddPhonyAndSetAll(t *testing.T) {
	t.Parallel()
	c := NewConfig("pkg", "pkg.d")
	c.AddPhony("all")
	c.AddPhony("test")
	c.SetAll("pkg")

	if c.Phony == nil || len(c.Phony.DependsOn) != 2 {
		t.Fatalf("Phony = %+v, want 2 members", c.Phony)
	}
	if c.All == nil || len(c.All.DependsOn) != 1 || c.All.DependsOn[0] != "pkg" {
		t.Fatalf("All = %+v, want [pkg]", c.All)
	}
}

func TestVarTypeString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		vt   VarType
		want string
	}{
		{VarRecursive, "="},
		{VarSimple, ":="},
		{VarCond, "?="},
		{VarAppend, "+="},
		{VarShell, "!="},
	}
	for _, tt := range tests {
		if got := tt.vt.String(); got != tt.want {
			t.Errorf("VarType(%d).String() = %q, want %q", tt.vt, got, tt.want)
		}
	}
}
