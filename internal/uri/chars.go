// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package uri

// Character classes of RFC 3986 §2

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isUnreserved(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '-' || b == '.' || b == '_' || b == '~'
}

func isGenDelim(b byte) bool {
	switch b {
	case ':', '/', '?', '#', '[', ']', '@':
		return true
	default:
		return false
	}
}

func isSubDelim(b byte) bool {
	switch b {
	case '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=':
		return true
	default:
		return false
	}
}

func isReserved(b byte) bool {
	return isGenDelim(b) || isSubDelim(b)
}

func unhex(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

// cursor is a read position in the text being parsed. Every matcher takes
// the cursor by value and returns the advanced cursor with true on success;
// on failure the caller keeps its own unchanged cursor.
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

func (c cursor) peekAt(n int) byte {
	if c.pos+n >= len(c.s) {
		return 0
	}
	return c.s[c.pos+n]
}

func (c cursor) since(start cursor) string {
	return c.s[start.pos:c.pos]
}

// char matches the single byte b
func (c cursor) char(b byte) (cursor, bool) {
	if c.peek() != b || c.eof() {
		return c, false
	}
	c.pos++
	return c, true
}

// lit matches the literal text s
func (c cursor) lit(s string) (cursor, bool) {
	if len(c.s)-c.pos < len(s) || c.s[c.pos:c.pos+len(s)] != s {
		return c, false
	}
	c.pos += len(s)
	return c, true
}

// class matches one byte satisfying pred
func (c cursor) class(pred func(byte) bool) (cursor, bool) {
	if c.eof() || !pred(c.peek()) {
		return c, false
	}
	c.pos++
	return c, true
}

// pctEncoded matches "%" HEXDIG HEXDIG
func (c cursor) pctEncoded() (cursor, bool) {
	if c.peek() != '%' || !isHexDigit(c.peekAt(1)) || !isHexDigit(c.peekAt(2)) {
		return c, false
	}
	c.pos += 3
	return c, true
}

// unreservedOrEncoded matches unreserved / pct-encoded / sub-delims, plus any
// of the bytes in extra
func (c cursor) unreservedOrEncoded(extra string) (cursor, bool) {
	if c.eof() {
		return c, false
	}
	b := c.peek()
	if isUnreserved(b) || isSubDelim(b) {
		c.pos++
		return c, true
	}
	for i := 0; i < len(extra); i++ {
		if b == extra[i] {
			c.pos++
			return c, true
		}
	}
	return c.pctEncoded()
}

// pchar matches unreserved / pct-encoded / sub-delims / ":" / "@"
func (c cursor) pchar() (cursor, bool) {
	return c.unreservedOrEncoded(":@")
}

// many applies m until it fails, returning the final cursor and the number
// of matches
func (c cursor) many(m func(cursor) (cursor, bool)) (cursor, int) {
	n := 0
	for {
		next, ok := m(c)
		if !ok || next.pos == c.pos {
			return c, n
		}
		c = next
		n++
	}
}
