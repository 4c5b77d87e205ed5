// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package uri

import (
	"bytes"
	"strings"
)

// popSegment removes the last segment of out and the "/" before it
func popSegment(out []byte) []byte {
	if i := bytes.LastIndexByte(out, '/'); i >= 0 {
		return out[:i]
	}
	return out[:0]
}

// RemoveDotSegments normalises the "." and ".." segments of path with the
// RFC 3986 §5.2.4 algorithm. A ".." with nothing left to remove is dropped,
// which can leave a relative input absolute: "a/../../b" becomes "/b".
func RemoveDotSegments(path string) string {
	in := path
	out := make([]byte, 0, len(path))

	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			out = popSegment(out)
		case in == "/..":
			in = "/"
			out = popSegment(out)
		case in == "." || in == "..":
			in = ""
		default:
			// Move the first segment, with its leading "/" if any
			n := strings.IndexByte(in[1:], '/') + 1
			if n == 0 {
				n = len(in)
			}
			out = append(out, in[:n]...)
			in = in[n:]
		}
	}
	return string(out)
}

// merge joins a relative path onto the base per RFC 3986 §5.2.3
func merge(base URI, path string) string {
	if base.hasAuthority && base.path == "" {
		return "/" + path
	}
	if i := strings.LastIndexByte(base.path, '/'); i >= 0 {
		return base.path[:i+1] + path
	}
	return path
}

// MakeAbsolute resolves ref against base per RFC 3986 §5.2.2, returning a new
// URI. Neither input is modified.
//
// In strict mode a reference with a scheme is always taken as is. Otherwise
// a reference whose scheme equals the base's is treated as relative, as
// older resolvers did ("http:g" against "http://a/b" gives "http://a/g").
//
// The result is invalid if either input is.
func MakeAbsolute(base, ref URI, strict bool) URI {
	if !base.valid || !ref.valid {
		return URI{input: ref.input}
	}

	r := ref
	if !strict && r.hasScheme && strings.EqualFold(r.scheme, base.scheme) {
		r.hasScheme = false
		r.scheme = ""
	}

	t := URI{valid: true}
	switch {
	case r.hasScheme:
		t = r
		t.path = RemoveDotSegments(r.path)

	case r.hasAuthority:
		t = r
		t.path = RemoveDotSegments(r.path)
		t.scheme, t.hasScheme = base.scheme, base.hasScheme

	default:
		t.copyAuthority(base)
		t.scheme, t.hasScheme = base.scheme, base.hasScheme

		switch {
		case r.path == "":
			t.path = base.path
			if r.hasQuery {
				t.query, t.hasQuery = r.query, true
			} else {
				t.query, t.hasQuery = base.query, base.hasQuery
			}
		case strings.HasPrefix(r.path, "/"):
			t.path = RemoveDotSegments(r.path)
			t.query, t.hasQuery = r.query, r.hasQuery
		default:
			t.path = RemoveDotSegments(merge(base, r.path))
			t.query, t.hasQuery = r.query, r.hasQuery
		}
	}

	t.fragment, t.hasFragment = r.fragment, r.hasFragment
	t.classifyPath()
	t.input = ""
	return t
}

func (u *URI) copyAuthority(o URI) {
	u.authority, u.hasAuthority = o.authority, o.hasAuthority
	u.userinfo, u.hasUserinfo = o.userinfo, o.hasUserinfo
	u.host, u.hostKind = o.host, o.hostKind
	u.port, u.hasPort = o.port, o.hasPort
}

// classifyPath recomputes the path kind after the path has been replaced
func (u *URI) classifyPath() {
	switch {
	case u.hasAuthority:
		u.pathKind = PathAbEmpty
	case u.path == "":
		u.pathKind = PathEmpty
	case u.path[0] == '/':
		u.pathKind = PathAbsolute
	case u.hasScheme:
		u.pathKind = PathRootless
	default:
		u.pathKind = PathNoScheme
	}
}

// Resolve parses ref and resolves it against u
func (u URI) Resolve(ref string, strict bool) URI {
	return MakeAbsolute(u, Parse(ref), strict)
}
