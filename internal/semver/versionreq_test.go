// SPDX-License-Identifier: MPL-2.0

package semver

import "testing"

func TestCanonicalizeScenarios(t *testing.T) {
	t.Parallel()
	cases := []struct {
		req  string
		want string
	}{
		{"1.2.3", ">=1.2.3 && <2.0.0"},
		{"<=1", "<2.0.0"},
		{"1", ">=1.0.0 && <2.0.0"},
		{"1.2", ">=1.2.0 && <2.0.0"},
		{"0.2.3", ">=0.2.3 && <0.3.0"},
		{"0.0.3", "=0.0.3"},
		{"0.0", ">=0.0.0 && <0.1.0"},
		{"=1", ">=1.0.0 && <2.0.0"},
		{"=1.2", ">=1.2.0 && <1.3.0"},
		{"=1.2.3", "=1.2.3"},
		{">1.2.3", ">=1.2.4"},
		{">1.2", ">=1.3.0"},
		{">1.9.0 && >2.0.0", ">=1.9.1 && >=2.0.1"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.req, func(t *testing.T) {
			t.Parallel()
			req, err := ParseReq(c.req)
			if err != nil {
				t.Fatalf("ParseReq(%q): %v", c.req, err)
			}
			got := req.Canonicalize().String()
			if got != c.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", c.req, got, c.want)
			}
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"1.2.3", "<=1", "1", "0.2.3", "0.0.3", "=1.2", ">1.2.3"} {
		req, err := ParseReq(s)
		if err != nil {
			t.Fatalf("ParseReq(%q): %v", s, err)
		}
		once := req.Canonicalize()
		twice := once.Canonicalize()
		if once.String() != twice.String() {
			t.Errorf("canonicalize not idempotent for %q: %q vs %q", s, once.String(), twice.String())
		}
	}
}

func TestPkgConfigString(t *testing.T) {
	t.Parallel()
	req, err := ParseReq("  <1.2.3  &&>=1.0 ")
	if err != nil {
		t.Fatalf("ParseReq: %v", err)
	}
	got := req.ToPkgConfigString("foo")
	want := "foo < 1.2.3, foo >= 1.0.0"
	if got != want {
		t.Errorf("ToPkgConfigString() = %q, want %q", got, want)
	}
}

func TestSatisfiedByNoOp(t *testing.T) {
	t.Parallel()
	req, err := ParseReq("1.2.3")
	if err != nil {
		t.Fatalf("ParseReq: %v", err)
	}
	match := []string{"1.2.3", "1.2.4", "1.9.0"}
	noMatch := []string{"1.2.2", "2.0.0", "0.9.0"}
	for _, s := range match {
		if !req.SatisfiedBy(mustParse(t, s)) {
			t.Errorf("expected %q to satisfy %q", s, req)
		}
	}
	for _, s := range noMatch {
		if req.SatisfiedBy(mustParse(t, s)) {
			t.Errorf("expected %q to not satisfy %q", s, req)
		}
	}
}

func TestChainCannotStartWithNoOpOrExact(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"1.2.3 && >=1.0.0", "=1.2.3 && <2.0.0"} {
		if _, err := ParseReq(s); err == nil {
			t.Errorf("ParseReq(%q) succeeded, want error (NoOp/Exact cannot chain)", s)
		}
	}
}

func TestCanSimplify(t *testing.T) {
	t.Parallel()
	simplifiable, err := ParseReq(">1.0.0 && >=2.0.0")
	if err != nil {
		t.Fatalf("ParseReq: %v", err)
	}
	if !simplifiable.CanSimplify() {
		t.Errorf("expected >1.0.0 && >=2.0.0 to be simplifiable")
	}
	notSimplifiable, err := ParseReq(">1.0.0 && <2.0.0")
	if err != nil {
		t.Fatalf("ParseReq: %v", err)
	}
	if notSimplifiable.CanSimplify() {
		t.Errorf("expected >1.0.0 && <2.0.0 to not be simplifiable")
	}
}
