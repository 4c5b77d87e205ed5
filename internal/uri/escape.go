// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package uri

import (
	"strings"

	"go.e43.eu/ri/internal/errors"
)

const upperhex = "0123456789ABCDEF"

// EscapePath percent encodes every byte of p which may not appear in a path:
// anything other than unreserved, sub-delims, ":", "@" and "/"
func EscapePath(p string) string {
	var sb strings.Builder
	for i := 0; i < len(p); i++ {
		b := p[i]
		if isUnreserved(b) || isSubDelim(b) || b == ':' || b == '@' || b == '/' {
			sb.WriteByte(b)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[b>>4])
		sb.WriteByte(upperhex[b&15])
	}
	return sb.String()
}

// Unescape decodes percent encoded octets. Reserved characters are decoded
// along with everything else.
func Unescape(s string) (string, error) {
	if strings.IndexByte(s, '%') < 0 {
		return s, nil
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			sb.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) || !isHexDigit(s[i+1]) || !isHexDigit(s[i+2]) {
			return "", &errors.SyntaxError{
				What:   "uri",
				Input:  s,
				Offset: i,
				Reason: "malformed percent encoding",
				Kind:   errors.ErrInvalidURI,
			}
		}
		sb.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
		i += 2
	}
	return sb.String(), nil
}

// IsReservedByte reports whether b is one of the reserved characters of
// RFC 3986 §2.2
func IsReservedByte(b byte) bool {
	return isReserved(b)
}
