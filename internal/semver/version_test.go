// SPDX-License-Identifier: MPL-2.0

package semver

import "testing"

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()
	cases := []string{
		"1.2.3",
		"0.0.0",
		"1.0.0-alpha",
		"1.0.0-alpha.1",
		"1.0.0-0.3.7",
		"1.0.0-x.7.z.92",
		"1.0.0+20130313144700",
		"1.0.0-beta+exp.sha.5114f85",
	}
	for _, in := range cases {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			v, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", in, err)
			}
			if got := v.String(); got != in {
				t.Errorf("String() = %q, want %q", got, in)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	t.Parallel()
	cases := []string{
		"1.2",
		"1.2.03",
		"1.2.3-",
		"1.2.3+1.",
		"01.2.3",
		"1.2.3-01",
		"",
	}
	for _, in := range cases {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse(in); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", in)
			}
		})
	}
}

func TestOrdering(t *testing.T) {
	t.Parallel()
	ordered := []string{
		"1.0.0-alpha",
		"1.0.0-alpha.1",
		"1.0.0-alpha.beta",
		"1.0.0-beta",
		"1.0.0-beta.2",
		"1.0.0-beta.11",
		"1.0.0-rc.1",
		"1.0.0",
	}
	for i := 0; i < len(ordered)-1; i++ {
		a := mustParse(t, ordered[i])
		b := mustParse(t, ordered[i+1])
		if c := a.Compare(b); c >= 0 {
			t.Errorf("%s should be < %s, got Compare=%d", ordered[i], ordered[i+1], c)
		}
		if c := b.Compare(a); c <= 0 {
			t.Errorf("%s should be > %s, got Compare=%d", ordered[i+1], ordered[i], c)
		}
	}
}

func TestTotalOrderConsistency(t *testing.T) {
	t.Parallel()
	a := mustParse(t, "1.2.3")
	b := mustParse(t, "1.2.3")
	if a.Compare(b) != 0 || !a.Equal(b) {
		t.Errorf("equal versions must compare equal")
	}
}

func mustParse(t *testing.T, s string) Version {
	t.Helper()
	v, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return v
}
