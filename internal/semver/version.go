// SPDX-License-Identifier: MPL-2.0

package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a malformed semver or version-requirement input,
// carrying the column at which parsing failed so callers can render a caret
// diagnostic.
type ParseError struct {
	// Kind names what was being parsed, e.g. "semver" or "version requirement".
	Kind   string
	Input  string
	Column int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(
		"invalid %s:\n%s\n%s^ %s",
		e.Kind, e.Input, strings.Repeat(" ", e.Column), e.Reason,
	)
}

// Identifier is one dot-separated component of a pre-release or build
// metadata sequence. It is either purely numeric (no leading zero, per
// SemVer 2.0.0) or an opaque alphanumeric token.
type Identifier struct {
	Numeric bool
	Num     uint64
	Text    string // original digits/text, used for round-tripping either way.
}

func (id Identifier) String() string {
	if id.Numeric {
		return id.Text
	}
	return id.Text
}

// compareIdentifier implements the SemVer 2.0.0 precedence rule: numeric
// identifiers always have lower precedence than alphanumeric ones; two
// numeric identifiers compare numerically; two alphanumeric identifiers
// compare lexicographically (ASCII).
func compareIdentifier(a, b Identifier) int {
	if a.Numeric && b.Numeric {
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		default:
			return 0
		}
	}
	if a.Numeric && !b.Numeric {
		return -1
	}
	if !a.Numeric && b.Numeric {
		return 1
	}
	return strings.Compare(a.Text, b.Text)
}

// IdentifierList is an ordered pre-release or build metadata sequence.
type IdentifierList []Identifier

func (l IdentifierList) String() string {
	parts := make([]string, len(l))
	for i, id := range l {
		parts[i] = id.String()
	}
	return strings.Join(parts, ".")
}

// comparePre orders two pre-release sequences per SemVer 2.0.0 §11: compare
// identifier-by-identifier; a sequence that runs out first (all shared
// identifiers equal) is smaller.
func comparePre(a, b IdentifierList) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := compareIdentifier(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Version is a parsed SemVer 2.0.0 version.
type Version struct {
	Major, Minor, Patch uint64
	Pre                 IdentifierList
	Build               IdentifierList
}

// Parse parses s as a SemVer 2.0.0 version, returning a *ParseError on any
// malformed input.
func Parse(s string) (Version, error) {
	p := &versionParser{s: s}
	return p.parse()
}

type versionParser struct {
	s   string
	pos int
}

func (p *versionParser) fail(reason string) error {
	return &ParseError{Kind: "semver", Input: p.s, Column: p.pos, Reason: reason}
}

func (p *versionParser) eof() bool { return p.pos >= len(p.s) }

func (p *versionParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

// parseNum parses a run of ASCII digits as a numeric core component
// (major/minor/patch), rejecting a leading zero in a multi-digit run.
func (p *versionParser) parseNum() (uint64, error) {
	start := p.pos
	for !p.eof() && isDigit(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return 0, p.failAt(start, "expected number")
	}
	digits := p.s[start:p.pos]
	if len(digits) > 1 && digits[0] == '0' {
		return 0, p.failAt(start, "invalid leading zero")
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, p.failAt(start, "expected number")
	}
	return n, nil
}

func (p *versionParser) failAt(col int, reason string) error {
	return &ParseError{Kind: "semver", Input: p.s, Column: col, Reason: reason}
}

// parseIdentifier parses one dot-separated pre-release or build identifier:
// a nonempty run of [0-9A-Za-z-]. rejectLeadingZero controls whether a
// leading-zero numeric identifier is rejected (true for pre-release,
// false for build metadata, per SemVer 2.0.0).
func (p *versionParser) parseIdentifier(rejectLeadingZero bool) (Identifier, error) {
	start := p.pos
	for !p.eof() && isIdentChar(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return Identifier{}, p.failAt(start, "expected identifier")
	}
	text := p.s[start:p.pos]
	if isAllDigits(text) {
		if rejectLeadingZero && len(text) > 1 && text[0] == '0' {
			return Identifier{}, p.failAt(start, "invalid leading zero")
		}
		n, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			// Numeric-looking but out of uint64 range: treat as alphanumeric,
			// matching the tolerant behavior of Cargo-style semver parsers.
			return Identifier{Numeric: false, Text: text}, nil
		}
		return Identifier{Numeric: true, Num: n, Text: text}, nil
	}
	return Identifier{Numeric: false, Text: text}, nil
}

func (p *versionParser) parseIdentifierList(rejectLeadingZero bool) (IdentifierList, error) {
	var list IdentifierList
	for {
		id, err := p.parseIdentifier(rejectLeadingZero)
		if err != nil {
			return nil, err
		}
		list = append(list, id)
		if p.peek() != '.' {
			return list, nil
		}
		p.pos++
	}
}

func (p *versionParser) parse() (Version, error) {
	var v Version

	major, err := p.parseNum()
	if err != nil {
		return Version{}, err
	}
	v.Major = major

	if err := p.expect('.'); err != nil {
		return Version{}, err
	}
	minor, err := p.parseNum()
	if err != nil {
		return Version{}, err
	}
	v.Minor = minor

	if err := p.expect('.'); err != nil {
		return Version{}, err
	}
	patch, err := p.parseNum()
	if err != nil {
		return Version{}, err
	}
	v.Patch = patch

	if p.peek() == '-' {
		p.pos++
		pre, err := p.parseIdentifierList(true)
		if err != nil {
			return Version{}, err
		}
		v.Pre = pre
	}

	if p.peek() == '+' {
		p.pos++
		build, err := p.parseIdentifierList(false)
		if err != nil {
			return Version{}, err
		}
		v.Build = build
	}

	if !p.eof() {
		return Version{}, p.fail("expected number or identifier")
	}

	return v, nil
}

func (p *versionParser) expect(c byte) error {
	if p.peek() != c {
		return p.fail("expected number")
	}
	p.pos++
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentChar(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-'
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// String renders v back to its canonical SemVer 2.0.0 textual form,
// preserving build metadata.
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if len(v.Pre) > 0 {
		b.WriteByte('-')
		b.WriteString(v.Pre.String())
	}
	if len(v.Build) > 0 {
		b.WriteByte('+')
		b.WriteString(v.Build.String())
	}
	return b.String()
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than
// other, per SemVer 2.0.0 precedence (build metadata is ignored).
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return cmpU64(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return cmpU64(v.Minor, other.Minor)
	}
	if v.Patch != other.Patch {
		return cmpU64(v.Patch, other.Patch)
	}
	if len(v.Pre) == 0 && len(other.Pre) == 0 {
		return 0
	}
	if len(v.Pre) == 0 {
		return 1 // no-pre > pre
	}
	if len(other.Pre) == 0 {
		return -1
	}
	return comparePre(v.Pre, other.Pre)
}

func cmpU64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether v and other are semantically equal, ignoring
// build metadata.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }
