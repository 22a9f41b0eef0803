// SPDX-License-Identifier: MPL-2.0

package semver

import (
	"strings"
)

// Op is a version-requirement comparator operator. The zero value, OpNoOp,
// means "no explicit operator" (Cargo-style caret/compatible matching).
type Op int

const (
	OpNoOp Op = iota
	OpExact
	OpGt
	OpGte
	OpLt
	OpLte
)

func (op Op) String() string {
	switch op {
	case OpExact:
		return "="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	default:
		return ""
	}
}

// Comparator is one operator plus an OptVersion: major is required, minor
// and patch are optional, mirroring the wildcard shorthand grammar.
type Comparator struct {
	Op    Op
	Major uint64
	Minor *uint64
	Patch *uint64
	Pre   IdentifierList
}

func u64p(n uint64) *uint64 { return &n }

func valOr(p *uint64, def uint64) uint64 {
	if p == nil {
		return def
	}
	return *p
}

// String renders the comparator using its stored operator (NoOp renders
// with no prefix).
func (c Comparator) String() string {
	var b strings.Builder
	b.WriteString(c.Op.String())
	c.writeOptVersion(&b)
	return b.String()
}

// ToPkgConfigString renders "<op> <ver>" with a mandatory separating space,
// as consumed by pkg-config's requirement expression grammar.
func (c Comparator) ToPkgConfigString() string {
	var b strings.Builder
	if c.Op != OpNoOp {
		b.WriteString(c.Op.String())
		b.WriteByte(' ')
	}
	c.writeOptVersion(&b)
	return b.String()
}

func (c Comparator) writeOptVersion(b *strings.Builder) {
	writeUint(b, c.Major)
	if c.Minor != nil {
		b.WriteByte('.')
		writeUint(b, *c.Minor)
		if c.Patch != nil {
			b.WriteByte('.')
			writeUint(b, *c.Patch)
			if len(c.Pre) > 0 {
				b.WriteByte('-')
				b.WriteString(c.Pre.String())
			}
		}
	}
}

func writeUint(b *strings.Builder, n uint64) {
	// small values dominate (semver components); strconv would also work,
	// but this avoids importing it a second time for a single call site.
	if n == 0 {
		b.WriteByte('0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	b.Write(buf[i:])
}

// satisfiedByExact implements matchesExact from the C++ implementation:
// every specified component must match exactly, and pre-release sequences
// must be identical.
func (c Comparator) satisfiedByExact(v Version) bool {
	if v.Major != c.Major {
		return false
	}
	if c.Minor != nil && v.Minor != *c.Minor {
		return false
	}
	if c.Patch != nil && v.Patch != *c.Patch {
		return false
	}
	return comparePre(v.Pre, c.Pre) == 0
}

// satisfiedByGreater implements matchesGreater: compare major, then minor,
// then patch, then pre-release, short-circuiting on the first component
// that differs. An absent minor/patch on the comparator side is treated as
// "no further constraint", matching the C++ source's `return false` when
// the comparator omits the component.
func (c Comparator) satisfiedByGreater(v Version) bool {
	if v.Major != c.Major {
		return v.Major > c.Major
	}
	if c.Minor == nil {
		return false
	}
	if v.Minor != *c.Minor {
		return v.Minor > *c.Minor
	}
	if c.Patch == nil {
		return false
	}
	if v.Patch != *c.Patch {
		return v.Patch > *c.Patch
	}
	return comparePre(v.Pre, c.Pre) > 0
}

func (c Comparator) satisfiedByLess(v Version) bool {
	if v.Major != c.Major {
		return v.Major < c.Major
	}
	if c.Minor == nil {
		return false
	}
	if v.Minor != *c.Minor {
		return v.Minor < *c.Minor
	}
	if c.Patch == nil {
		return false
	}
	if v.Patch != *c.Patch {
		return v.Patch < *c.Patch
	}
	return comparePre(v.Pre, c.Pre) < 0
}

// satisfiedByNoOp implements matchesNoOp, Cargo's caret ("compatible
// update") matching rule.
func (c Comparator) satisfiedByNoOp(v Version) bool {
	if v.Major != c.Major {
		return false
	}
	if c.Minor == nil {
		return true
	}
	minor := *c.Minor

	if c.Patch == nil {
		if c.Major > 0 {
			return v.Minor >= minor
		}
		return v.Minor == minor
	}
	patch := *c.Patch

	switch {
	case c.Major > 0:
		if v.Minor != minor {
			return v.Minor > minor
		}
		if v.Patch != patch {
			return v.Patch > patch
		}
	case minor > 0:
		if v.Minor != minor {
			return false
		}
		if v.Patch != patch {
			return v.Patch > patch
		}
	default:
		if v.Minor != minor || v.Patch != patch {
			return false
		}
	}
	return comparePre(v.Pre, c.Pre) >= 0
}

// SatisfiedBy reports whether v satisfies this single comparator.
func (c Comparator) SatisfiedBy(v Version) bool {
	switch c.Op {
	case OpNoOp:
		return c.satisfiedByNoOp(v)
	case OpExact:
		return c.satisfiedByExact(v)
	case OpGt:
		return c.satisfiedByGreater(v)
	case OpGte:
		return c.satisfiedByExact(v) || c.satisfiedByGreater(v)
	case OpLt:
		return c.satisfiedByLess(v)
	case OpLte:
		return c.satisfiedByExact(v) || c.satisfiedByLess(v)
	default:
		return false
	}
}

// Canonicalize reduces a single Gt/Gte/Lt/Lte comparator to a
// fully-specified >=/< form. NoOp and Exact comparators canonicalize at the
// VersionReq level instead, since they may expand into two comparators.
func (c Comparator) Canonicalize() Comparator {
	if c.Op == OpNoOp || c.Op == OpExact {
		return c
	}

	out := c
	switch c.Op {
	case OpGt:
		out.Op = OpGte
	case OpLte:
		out.Op = OpLt
	default: // Gte, Lt already canonical: fill in zero minor/patch.
		out.Minor = u64p(valOr(c.Minor, 0))
		out.Patch = u64p(valOr(c.Patch, 0))
		return out
	}

	if c.Patch != nil {
		out.Patch = u64p(*c.Patch + 1)
		return out
	}
	out.Patch = u64p(0)

	if c.Minor != nil {
		out.Minor = u64p(*c.Minor + 1)
		return out
	}
	out.Minor = u64p(0)

	out.Major = c.Major + 1
	return out
}

// VersionReq is a version requirement: at most two comparators joined by
// logical AND. A NoOp or Exact left comparator may not chain with a right
// one.
type VersionReq struct {
	Left  Comparator
	Right *Comparator
}

// ParseReq parses s as a version requirement per the grammar implemented
// by reqParser in reqparse.go.
func ParseReq(s string) (VersionReq, error) {
	p := &reqParser{lex: reqLexer{s: s}}
	return p.parse()
}

// preIsCompatible mirrors preIsCompatible in VersionReq.cc: a prerelease
// version only satisfies a requirement if some comparator explicitly names
// the identical (major, minor, patch) triple with a nonempty pre sequence.
func preIsCompatible(c Comparator, v Version) bool {
	return c.Major == v.Major &&
		c.Minor != nil && *c.Minor == v.Minor &&
		c.Patch != nil && *c.Patch == v.Patch &&
		len(c.Pre) > 0
}

// SatisfiedBy reports whether v satisfies the requirement.
func (r VersionReq) SatisfiedBy(v Version) bool {
	if !r.Left.SatisfiedBy(v) {
		return false
	}
	if r.Right != nil && !r.Right.SatisfiedBy(v) {
		return false
	}
	if len(v.Pre) == 0 {
		return true
	}
	if preIsCompatible(r.Left, v) {
		return true
	}
	if r.Right != nil && preIsCompatible(*r.Right, v) {
		return true
	}
	return false
}

// String renders the requirement in its original (non-canonicalized) form.
func (r VersionReq) String() string {
	if r.Right == nil {
		return r.Left.String()
	}
	return r.Left.String() + " && " + r.Right.String()
}

// ToPkgConfigString renders the canonicalized requirement as a pkg-config
// requirement expression: "<name> <op> <X.Y.Z>[, <name> <op> <X.Y.Z>]".
func (r VersionReq) ToPkgConfigString(name string) string {
	req := r.Canonicalize()
	result := name + " " + req.Left.ToPkgConfigString()
	if req.Right != nil {
		result += ", " + name + " " + req.Right.ToPkgConfigString()
	}
	return result
}

// Canonicalize rewrites the requirement per the canonicalization table in
// spec §4.B, ported from VersionReq::canonicalize/canonicalizeNoOp/
// canonicalizeExact.
func (r VersionReq) Canonicalize() VersionReq {
	switch r.Left.Op {
	case OpNoOp:
		return canonicalizeNoOp(r)
	case OpExact:
		return canonicalizeExact(r)
	default:
		out := VersionReq{Left: r.Left.Canonicalize()}
		if r.Right != nil {
			right := r.Right.Canonicalize()
			out.Right = &right
		}
		return out
	}
}

func gte(major, minor, patch uint64, pre IdentifierList) Comparator {
	return Comparator{Op: OpGte, Major: major, Minor: u64p(minor), Patch: u64p(patch), Pre: pre}
}

func lt(major, minor, patch uint64, pre IdentifierList) Comparator {
	return Comparator{Op: OpLt, Major: major, Minor: u64p(minor), Patch: u64p(patch), Pre: pre}
}

// canonicalizeNoOp implements the six NoOp cases documented in
// VersionReq.hpp/.cc (1.1 through 1.6, collapsed since 1.2 delegates to 1.1
// and 1.3/1.5/1.6 fold into the exact-form cases directly here).
func canonicalizeNoOp(r VersionReq) VersionReq {
	left := r.Left

	if left.Minor == nil && left.Patch == nil {
		// `A` == `=A` == `>=A.0.0 && <(A+1).0.0`
		return VersionReq{
			Left:  gte(left.Major, 0, 0, left.Pre),
			Right: ptr(lt(left.Major+1, 0, 0, left.Pre)),
		}
	}

	if left.Major > 0 {
		if left.Patch != nil {
			// `A.B.C` (A>0) == `>=A.B.C && <(A+1).0.0`
			return VersionReq{
				Left:  gte(left.Major, *left.Minor, *left.Patch, left.Pre),
				Right: ptr(lt(left.Major+1, 0, 0, left.Pre)),
			}
		}
		// `A.B` (A>0) == `^A.B.0` == `>=A.B.0 && <(A+1).0.0`
		return VersionReq{
			Left:  gte(left.Major, *left.Minor, 0, left.Pre),
			Right: ptr(lt(left.Major+1, 0, 0, left.Pre)),
		}
	}

	// A == 0, minor present.
	if *left.Minor > 0 {
		// `0.B.C` (B>0) == `>=0.B.C && <0.(B+1).0`
		return VersionReq{
			Left:  gte(0, *left.Minor, valOr(left.Patch, 0), left.Pre),
			Right: ptr(lt(0, *left.Minor+1, 0, left.Pre)),
		}
	}

	// A == 0, B == 0.
	if left.Patch != nil {
		// `0.0.C` == `=0.0.C`
		return VersionReq{Left: Comparator{Op: OpExact, Major: 0, Minor: u64p(0), Patch: u64p(*left.Patch), Pre: left.Pre}}
	}

	// `0.0` == `>=0.0.0 && <0.1.0`
	return VersionReq{
		Left:  gte(0, 0, 0, left.Pre),
		Right: ptr(lt(0, 1, 0, left.Pre)),
	}
}

// canonicalizeExact implements the three Exact cases (2.1-2.3).
func canonicalizeExact(r VersionReq) VersionReq {
	left := r.Left

	if left.Minor != nil && left.Patch != nil {
		// `=A.B.C` is exactly A.B.C.
		return r
	}
	if left.Minor != nil {
		// `=A.B` == `>=A.B.0 && <A.(B+1).0`
		return VersionReq{
			Left:  gte(left.Major, *left.Minor, 0, left.Pre),
			Right: ptr(lt(left.Major, *left.Minor+1, 0, left.Pre)),
		}
	}
	// `=A` == `>=A.0.0 && <(A+1).0.0`
	return VersionReq{
		Left:  gte(left.Major, 0, 0, left.Pre),
		Right: ptr(lt(left.Major+1, 0, 0, left.Pre)),
	}
}

func ptr(c Comparator) *Comparator { return &c }

// CanSimplify reports whether the requirement's two comparators can be
// merged into one (present in original_source). This is a pure query:
// nothing in this repository calls it, and Canonicalize/ToPkgConfigString
// never merge comparators.
func (r VersionReq) CanSimplify() bool {
	if r.Left.Op == OpNoOp || r.Left.Op == OpExact {
		return false
	}
	if r.Right == nil {
		return false
	}
	if r.Left.Op == r.Right.Op {
		return true
	}
	if r.Left.Op == OpLt && r.Right.Op == OpLte {
		return true
	}
	if r.Left.Op == OpLte && r.Right.Op == OpLt {
		return true
	}
	if r.Left.Op == OpGt && r.Right.Op == OpGte {
		return true
	}
	if r.Left.Op == OpGte && r.Right.Op == OpGt {
		return true
	}
	return false
}
