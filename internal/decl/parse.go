// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package decl

import (
	"strings"

	"go.e43.eu/ri/internal/errors"
	"go.e43.eu/ri/internal/token"
	"go.e43.eu/ri/internal/typeinfo"
)

const maxCardinality = int(^uint32(0) >> 1)

// cursor is a read position within a declaration. Matchers take a cursor by
// value and return the advanced cursor only on success, so a failed match
// leaves the caller's position untouched.
type cursor struct {
	s   string
	pos int
}

func (c cursor) eof() bool {
	return c.pos >= len(c.s)
}

func (c cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.s[c.pos]
}

func (c cursor) rest() string {
	return c.s[c.pos:]
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (c cursor) skipSpace() cursor {
	for !c.eof() && isSpace(c.s[c.pos]) {
		c.pos++
	}
	return c
}

// atBoundary reports whether the cursor is at a point where a keyword may
// end: white space, the start of a cardinality, or the end of the text
func (c cursor) atBoundary() bool {
	return c.eof() || isSpace(c.peek()) || c.peek() == '['
}

// keyword matches the first entry of kw which is a prefix of the remaining
// text and is followed by a boundary. "floatx" does not match "float".
func (c cursor) keyword(kw []typeinfo.Keyword) (uint8, cursor, bool) {
	rest := c.rest()
	for _, k := range kw {
		if !strings.HasPrefix(rest, k.Text) {
			continue
		}
		n := c
		n.pos += len(k.Text)
		if n.atBoundary() {
			return k.Value, n, true
		}
	}
	return 0, c, false
}

// word consumes everything up to the next white space
func (c cursor) word() (string, cursor) {
	start := c.pos
	for !c.eof() && !isSpace(c.s[c.pos]) {
		c.pos++
	}
	return c.s[start:c.pos], c
}

type parser struct {
	input string
	typed bool
}

func (p *parser) fail(c cursor, reason string) error {
	return &errors.SyntaxError{What: "declaration", Input: p.input, Offset: c.pos, Reason: reason}
}

// cardinality matches `[digits]`. A missing bracket yields 1.
func (p *parser) cardinality(c cursor) (int, cursor, error) {
	if c.peek() != '[' {
		return 1, c, nil
	}
	open := c
	c.pos++
	c = c.skipSpace()

	switch {
	case c.peek() == '-':
		return 0, open, p.fail(c, "negative array cardinality")
	case !isDigit(c.peek()):
		if c.eof() {
			return 0, open, p.fail(c, "unterminated array cardinality")
		}
		return 0, open, p.fail(c, "expected digits in array cardinality")
	}

	n := 0
	for isDigit(c.peek()) {
		d := int(c.peek() - '0')
		if n > (maxCardinality-d)/10 {
			return 0, open, p.fail(c, "array cardinality overflow")
		}
		n = n*10 + d
		c.pos++
	}

	c = c.skipSpace()
	if c.peek() != ']' {
		return 0, open, p.fail(c, "unterminated array cardinality")
	}
	if n == 0 {
		return 0, open, p.fail(open, "array cardinality must not be zero")
	}
	c.pos++
	return n, c, nil
}

// splitQualified splits `[namespace:][table:]var`
func splitQualified(name string) (namespace, table, variable string, ok bool) {
	parts := strings.Split(name, ":")
	for _, p := range parts {
		if p == "" {
			return "", "", "", false
		}
	}

	switch len(parts) {
	case 1:
		return "", "", parts[0], true
	case 2:
		return "", parts[0], parts[1], true
	case 3:
		return parts[0], parts[1], parts[2], true
	default:
		return "", "", "", false
	}
}

func (p *parser) parse(in *token.Interner, name string, hasName bool, spec string) (Declaration, error) {
	var d Declaration
	c := cursor{s: spec}.skipSpace()

	if v, n, ok := c.keyword(typeinfo.ClassKeywords()); ok {
		d.class = typeinfo.Class(v)
		c = n
	} else {
		d.class = typeinfo.ClassUniform
	}

	c = c.skipSpace()
	if v, n, ok := c.keyword(typeinfo.TypeKeywords()); ok {
		d.typ = typeinfo.Type(v)
		c = n
	} else {
		d.typ = typeinfo.TypeUnknown
	}

	c = c.skipSpace()
	card, c, err := p.cardinality(c)
	if err != nil {
		return Declaration{}, err
	}
	d.card = card

	c = c.skipSpace()
	if hasName {
		name = strings.TrimSpace(name)
		if name == "" {
			return Declaration{}, p.fail(c, "missing declaration name")
		}
	} else {
		at := c
		name, c = c.word()
		if name == "" {
			return Declaration{}, p.fail(at, "missing inline name")
		}
		d.inline = true
	}

	c = c.skipSpace()
	if !c.eof() {
		if d.typ == typeinfo.TypeUnknown && hasName {
			return Declaration{}, p.fail(c, "unknown type")
		}
		return Declaration{}, p.fail(c, "unexpected trailing text")
	}

	if p.typed && d.typ == typeinfo.TypeUnknown {
		return Declaration{}, &errors.SyntaxError{
			What:   "declaration",
			Input:  p.input,
			Reason: "missing type",
			Kind:   errors.ErrMissingType,
		}
	}

	ns, table, variable, ok := splitQualified(name)
	if !ok {
		return Declaration{}, p.fail(c, "malformed qualified name")
	}
	d.namespace, d.table, d.variable = ns, table, variable

	// Only intern once the whole declaration is known to be good
	d.name = in.FindCreate(name)
	d.nameStr = in.String(d.name)
	d.fullName = buildFullName(d)
	return d, nil
}

// Parse parses the type specifier spec of a declaration called name, as
// passed to RiDeclare. spec must not contain a name of its own.
func Parse(in *token.Interner, name, spec string) (Declaration, error) {
	p := parser{input: spec}
	return p.parse(in, name, true, spec)
}

// ParseInline parses an inline declaration such as "varying float[2] st",
// where the name is the final word of spec
func ParseInline(in *token.Interner, spec string) (Declaration, error) {
	p := parser{input: spec}
	return p.parse(in, "", false, spec)
}

// ParseTypedInline is ParseInline for callers which need a data type. An
// inline declaration without one fails with ErrMissingType and interns
// nothing.
func ParseTypedInline(in *token.Interner, spec string) (Declaration, error) {
	p := parser{input: spec, typed: true}
	return p.parse(in, "", false, spec)
}
