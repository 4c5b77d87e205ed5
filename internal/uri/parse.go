// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package uri

// parser accumulates the components of the reference being parsed. The
// furthest position reached is kept for diagnostics.
type parser struct {
	u   URI
	far int
}

func (p *parser) reach(c cursor) {
	if c.pos > p.far {
		p.far = c.pos
	}
}

// Parse parses s as a URI-reference. Malformed text yields a URI for which
// Valid reports false; Err describes the failure.
func Parse(s string) URI {
	p := parser{}
	c := cursor{s: s}

	var ok bool
	if c, ok = p.uriReference(c); ok && c.eof() {
		p.u.valid = true
		p.u.input = s
		return p.u
	}
	p.reach(c)
	return URI{input: s, failPos: p.far}
}

// uriReference = ( URI / relative-ref ) [ "#" fragment ]
//
// The fragment is matched once here rather than separately in the absolute
// and relative alternatives.
func (p *parser) uriReference(c cursor) (cursor, bool) {
	next, ok := p.absolute(c)
	if !ok {
		p.u = URI{}
		if next, ok = p.relative(c); !ok {
			return c, false
		}
	}
	c = next

	if f, ok := c.char('#'); ok {
		end, _ := f.many(queryChar)
		p.u.fragment = end.since(f)
		p.u.hasFragment = true
		c = end
	}
	p.reach(c)
	return c, true
}

// absolute = scheme ":" hier-part [ "?" query ]
func (p *parser) absolute(c cursor) (cursor, bool) {
	start := c
	c, ok := scheme(c)
	if !ok {
		return start, false
	}
	name := c.since(start)
	if c, ok = c.char(':'); !ok {
		p.reach(start)
		return start, false
	}

	if c, ok = p.hierPart(c, false); !ok {
		return start, false
	}
	p.u.scheme = name
	p.u.hasScheme = true
	return p.query(c), true
}

// relative = relative-part [ "?" query ]
func (p *parser) relative(c cursor) (cursor, bool) {
	c, ok := p.hierPart(c, true)
	if !ok {
		return c, false
	}
	return p.query(c), true
}

func (p *parser) query(c cursor) cursor {
	q, ok := c.char('?')
	if !ok {
		return c
	}
	end, _ := q.many(queryChar)
	p.u.query = end.since(q)
	p.u.hasQuery = true
	return end
}

// queryChar matches pchar / "/" / "?", the characters of query and fragment
func queryChar(c cursor) (cursor, bool) {
	return c.unreservedOrEncoded(":@/?")
}

// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
func scheme(c cursor) (cursor, bool) {
	c, ok := c.class(isAlpha)
	if !ok {
		return c, false
	}
	c, _ = c.many(func(c cursor) (cursor, bool) {
		return c.class(func(b byte) bool {
			return isAlpha(b) || isDigit(b) || b == '+' || b == '-' || b == '.'
		})
	})
	return c, true
}

// hierPart matches hier-part, or relative-part if relative is set:
//
//	"//" authority path-abempty
//	/ path-absolute
//	/ path-rootless (hier-part) or path-noscheme (relative-part)
//	/ path-empty
func (p *parser) hierPart(c cursor, relative bool) (cursor, bool) {
	if a, ok := c.lit("//"); ok {
		if next, ok := p.authority(a); ok {
			end, _ := next.many(slashSegment)
			p.u.path = end.since(next)
			p.u.pathKind = PathAbEmpty
			return end, true
		}
		return c, false
	}

	if next, ok := pathAbsolute(c); ok {
		p.u.path = next.since(c)
		p.u.pathKind = PathAbsolute
		return next, true
	}

	if relative {
		if next, ok := pathNoScheme(c); ok {
			p.u.path = next.since(c)
			p.u.pathKind = PathNoScheme
			return next, true
		}
	} else if next, ok := pathRootless(c); ok {
		p.u.path = next.since(c)
		p.u.pathKind = PathRootless
		return next, true
	}

	p.u.path = ""
	p.u.pathKind = PathEmpty
	return c, true
}

// slashSegment matches "/" segment
func slashSegment(c cursor) (cursor, bool) {
	c, ok := c.char('/')
	if !ok {
		return c, false
	}
	c, _ = c.many(cursor.pchar)
	return c, true
}

// segmentNZ matches 1*pchar
func segmentNZ(c cursor) (cursor, bool) {
	end, n := c.many(cursor.pchar)
	return end, n > 0
}

// pathAbsolute = "/" [ segment-nz *( "/" segment ) ]
func pathAbsolute(c cursor) (cursor, bool) {
	start := c
	c, ok := c.char('/')
	if !ok {
		return start, false
	}
	if next, ok := segmentNZ(c); ok {
		c, _ = next.many(slashSegment)
	}
	return c, true
}

// pathRootless = segment-nz *( "/" segment )
func pathRootless(c cursor) (cursor, bool) {
	start := c
	c, ok := segmentNZ(c)
	if !ok {
		return start, false
	}
	c, _ = c.many(slashSegment)
	return c, true
}

// pathNoScheme = segment-nz-nc *( "/" segment )
func pathNoScheme(c cursor) (cursor, bool) {
	start := c
	c, n := c.many(func(c cursor) (cursor, bool) {
		return c.unreservedOrEncoded("@")
	})
	if n == 0 || c.peek() == ':' {
		return start, false
	}
	c, _ = c.many(slashSegment)
	return c, true
}

// authority = [ userinfo "@" ] host [ ":" port ]
func (p *parser) authority(c cursor) (cursor, bool) {
	start := c

	p.u.hasUserinfo = false
	if ui, _ := c.many(userinfoChar); ui.peek() == '@' {
		p.u.userinfo = ui.since(c)
		p.u.hasUserinfo = true
		c, _ = ui.char('@')
	}

	hostStart := c
	c, kind, ok := host(c)
	if !ok {
		p.reach(c)
		return start, false
	}
	p.u.host = c.since(hostStart)
	p.u.hostKind = kind

	p.u.hasPort = false
	if pc, ok := c.char(':'); ok {
		end, _ := pc.many(func(c cursor) (cursor, bool) { return c.class(isDigit) })
		p.u.port = end.since(pc)
		p.u.hasPort = true
		c = end
	}

	p.u.authority = c.since(start)
	p.u.hasAuthority = true
	return c, true
}

// userinfo = *( unreserved / pct-encoded / sub-delims / ":" )
func userinfoChar(c cursor) (cursor, bool) {
	return c.unreservedOrEncoded(":")
}

// host = IP-literal / IPv4address / reg-name
//
// reg-name matches every IPv4address, so the reg-name span is matched and
// then classified.
func host(c cursor) (cursor, HostKind, bool) {
	if c.peek() == '[' {
		return ipLiteral(c)
	}

	start := c
	end, _ := c.many(func(c cursor) (cursor, bool) { return c.unreservedOrEncoded("") })
	if v4, ok := ipv4(start); ok && v4.pos == end.pos {
		return end, HostIPv4, true
	}
	return end, HostRegName, true
}

// IP-literal = "[" ( IPv6address / IPvFuture ) "]"
func ipLiteral(c cursor) (cursor, HostKind, bool) {
	start := c
	c, _ = c.char('[')

	kind := HostIPv6
	next, ok := ipv6(c)
	if !ok {
		if next, ok = ipvFuture(c); !ok {
			return start, HostNone, false
		}
		kind = HostIPvFuture
	}

	if next, ok = next.char(']'); !ok {
		return start, HostNone, false
	}
	return next, kind, true
}

// IPvFuture = "v" 1*HEXDIG "." 1*( unreserved / sub-delims / ":" )
func ipvFuture(c cursor) (cursor, bool) {
	start := c
	if c.peek() != 'v' && c.peek() != 'V' {
		return start, false
	}
	c.pos++

	c, n := c.many(func(c cursor) (cursor, bool) { return c.class(isHexDigit) })
	if n == 0 {
		return start, false
	}
	c, ok := c.char('.')
	if !ok {
		return start, false
	}
	c, n = c.many(func(c cursor) (cursor, bool) {
		return c.class(func(b byte) bool { return isUnreserved(b) || isSubDelim(b) || b == ':' })
	})
	if n == 0 {
		return start, false
	}
	return c, true
}

// h16 = 1*4HEXDIG
func h16(c cursor) (cursor, bool) {
	start := c
	n := 0
	for n < 4 && isHexDigit(c.peek()) {
		c.pos++
		n++
	}
	if n == 0 {
		return start, false
	}
	return c, true
}

// ipv6 matches IPv6address. The nine forms of RFC 3986 §3.2.2 reduce to: at
// most one "::", h16 pieces separated by single colons, an optional IPv4
// tail counting as two pieces, and exactly eight pieces without elision or
// at most seven with it. The address must be followed by "]".
func ipv6(c cursor) (cursor, bool) {
	start := c
	pieces := 0
	elided := false
	needPiece := false

	if next, ok := c.lit("::"); ok {
		c = next
		elided = true
	}

	for pieces < 8 {
		if pieces <= 6 {
			if next, ok := ipv4(c); ok && next.peek() == ']' {
				c = next
				pieces += 2
				needPiece = false
				break
			}
		}

		next, ok := h16(c)
		if !ok {
			break
		}
		c = next
		pieces++
		needPiece = false

		if next, ok := c.lit("::"); ok {
			if elided {
				return start, false
			}
			c = next
			elided = true
			continue
		}
		if next, ok := c.char(':'); ok {
			c = next
			needPiece = true
			continue
		}
		break
	}

	switch {
	case needPiece:
		return start, false
	case elided && pieces > 7:
		return start, false
	case !elided && pieces != 8:
		return start, false
	case c.peek() != ']':
		return start, false
	}
	return c, true
}

// ipv4 matches IPv4address = dec-octet "." dec-octet "." dec-octet "." dec-octet
func ipv4(c cursor) (cursor, bool) {
	start := c
	for i := 0; i < 4; i++ {
		var ok bool
		if i > 0 {
			if c, ok = c.char('.'); !ok {
				return start, false
			}
		}
		if c, ok = decOctet(c); !ok {
			return start, false
		}
	}
	return c, true
}

// decOctet matches a decimal 0-255 without leading zeros
func decOctet(c cursor) (cursor, bool) {
	start := c
	n := 0
	v := 0
	for n < 3 && isDigit(c.peek()) {
		v = v*10 + int(c.peek()-'0')
		c.pos++
		n++
	}
	switch {
	case n == 0:
		return start, false
	case n > 1 && start.peek() == '0':
		return start, false
	case v > 255:
		return start, false
	case isDigit(c.peek()):
		return start, false
	}
	return c, true
}
