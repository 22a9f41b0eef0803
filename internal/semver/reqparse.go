// SPDX-License-Identifier: MPL-2.0

package semver

import "strings"

// reqLexer tokenizes a version requirement string. It mirrors
// ComparatorLexer/VersionReqLexer from the C++ source: comparator operators,
// an OptVersion (bare digits), and "&&" are the only tokens; whitespace is
// skipped between tokens.
type reqLexer struct {
	s   string
	pos int
}

func (l *reqLexer) eof() bool { return l.pos >= len(l.s) }

func (l *reqLexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.s[l.pos]
}

func (l *reqLexer) skipWs() {
	for !l.eof() && (l.peek() == ' ' || l.peek() == '\t' || l.peek() == '\n' || l.peek() == '\r') {
		l.pos++
	}
}

func isCompStart(c byte) bool { return c == '=' || c == '>' || c == '<' }

// reqParser drives comparator and requirement parsing.
type reqParser struct {
	lex reqLexer
}

func (p *reqParser) fail(reason string) error {
	return &ParseError{Kind: "version requirement", Input: p.lex.s, Column: p.lex.pos, Reason: reason}
}

// parseOptVersion parses a bare "num(.num(.num(-pre)?(+build)?)?)?" at the
// lexer's current position, per OptVersion in VersionReq.hpp.
func (p *reqParser) parseOptVersion() (Comparator, error) {
	vp := &versionParser{s: p.lex.s, pos: p.lex.pos}
	major, err := vp.parseNum()
	if err != nil {
		return Comparator{}, p.wrapVersionErr(err)
	}
	c := Comparator{Major: major}

	if vp.peek() != '.' {
		p.lex.pos = vp.pos
		return c, nil
	}
	vp.pos++
	minor, err := vp.parseNum()
	if err != nil {
		return Comparator{}, p.wrapVersionErr(err)
	}
	c.Minor = u64p(minor)

	if vp.peek() != '.' {
		p.lex.pos = vp.pos
		return c, nil
	}
	vp.pos++
	patch, err := vp.parseNum()
	if err != nil {
		return Comparator{}, p.wrapVersionErr(err)
	}
	c.Patch = u64p(patch)

	if vp.peek() == '-' {
		vp.pos++
		pre, err := vp.parseIdentifierList(true)
		if err != nil {
			return Comparator{}, p.wrapVersionErr(err)
		}
		c.Pre = pre
	}
	if vp.peek() == '+' {
		vp.pos++
		if _, err := vp.parseIdentifierList(false); err != nil {
			return Comparator{}, p.wrapVersionErr(err)
		}
	}

	p.lex.pos = vp.pos
	return c, nil
}

func (p *reqParser) wrapVersionErr(err error) error {
	if pe, ok := err.(*ParseError); ok {
		pe.Kind = "version requirement"
		return pe
	}
	return err
}

// parseComparatorToken parses a single comparator (optional operator plus
// OptVersion, or a bare OptVersion for NoOp) at the current position.
func (p *reqParser) parseComparatorToken() (Comparator, error) {
	if p.lex.eof() {
		return Comparator{}, p.fail("expected =, >=, <=, >, <, or version")
	}

	c := p.lex.peek()
	var op Op
	switch {
	case c == '=':
		op = OpExact
		p.lex.pos++
	case c == '>':
		p.lex.pos++
		if p.lex.peek() == '=' {
			op = OpGte
			p.lex.pos++
		} else {
			op = OpGt
		}
	case c == '<':
		p.lex.pos++
		if p.lex.peek() == '=' {
			op = OpLte
			p.lex.pos++
		} else {
			op = OpLt
		}
	case isDigit(c):
		return p.parseOptVersion()
	default:
		return Comparator{}, p.fail("expected =, >=, <=, >, <, or version")
	}

	p.lex.skipWs()
	if p.lex.eof() || !isDigit(p.lex.peek()) {
		return Comparator{}, p.fail("expected version")
	}
	cmp, err := p.parseOptVersion()
	if err != nil {
		return Comparator{}, err
	}
	cmp.Op = op
	return cmp, nil
}

// parseChainedComparator parses the right-hand side of an "&&": it must be
// a comparator with an explicit non-NoOp, non-Exact operator.
func (p *reqParser) parseChainedComparator() (Comparator, error) {
	p.lex.skipWs()
	if p.lex.eof() || !isCompStart(p.lex.peek()) || p.lex.peek() == '=' {
		return Comparator{}, p.fail("expected >=, <=, >, or <")
	}
	return p.parseComparatorToken()
}

func (p *reqParser) parse() (VersionReq, error) {
	p.lex.skipWs()
	left, err := p.parseComparatorToken()
	if err != nil {
		return VersionReq{}, err
	}

	if left.Op == OpNoOp || left.Op == OpExact {
		p.lex.skipWs()
		if !p.lex.eof() {
			return VersionReq{}, p.fail("NoOp and Exact cannot chain")
		}
		return VersionReq{Left: left}, nil
	}

	p.lex.skipWs()
	if p.lex.eof() {
		return VersionReq{Left: left}, nil
	}
	if !strings.HasPrefix(p.lex.s[p.lex.pos:], "&&") {
		return VersionReq{}, p.fail("expected `&&`")
	}
	p.lex.pos += 2

	right, err := p.parseChainedComparator()
	if err != nil {
		return VersionReq{}, err
	}

	p.lex.skipWs()
	if !p.lex.eof() {
		return VersionReq{}, p.fail("expected end of string")
	}

	return VersionReq{Left: left, Right: &right}, nil
}
