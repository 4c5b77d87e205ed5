// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package uri implements the RFC 3986 generic URI syntax: a recursive
// descent parser for URI references, dot segment removal and reference
// resolution.
package uri

import (
	"fmt"
	"strings"

	"go.e43.eu/ri/internal/errors"
)

// PathKind classifies the path production a URI's path was parsed from
type PathKind uint8

const (
	PathEmpty PathKind = iota
	// Paths following an authority: empty or beginning with "/"
	PathAbEmpty
	PathAbsolute
	PathRootless
	// The first segment of a relative reference, which must not contain ":"
	PathNoScheme
)

var pathKindNames = [...]string{"empty", "abempty", "absolute", "rootless", "noscheme"}

func (k PathKind) String() string {
	if int(k) < len(pathKindNames) {
		return pathKindNames[k]
	}
	return fmt.Sprintf("PathKind(%d)", uint8(k))
}

// HostKind classifies the host production of an authority
type HostKind uint8

const (
	HostNone HostKind = iota
	HostRegName
	HostIPv4
	HostIPv6
	HostIPvFuture
)

var hostKindNames = [...]string{"none", "reg-name", "IPv4", "IPv6", "IPvFuture"}

func (k HostKind) String() string {
	if int(k) < len(hostKindNames) {
		return hostKindNames[k]
	}
	return fmt.Sprintf("HostKind(%d)", uint8(k))
}

// URI is a parsed URI reference. Components are kept exactly as written,
// without percent decoding. The zero value is an invalid URI.
type URI struct {
	valid bool

	scheme    string
	authority string
	userinfo  string
	host      string
	port      string
	path      string
	query     string
	fragment  string

	hasScheme    bool
	hasAuthority bool
	hasUserinfo  bool
	hasPort      bool
	hasQuery     bool
	hasFragment  bool

	hostKind HostKind
	pathKind PathKind

	// Diagnostics for invalid URIs
	input   string
	failPos int
}

func (u URI) Valid() bool { return u.valid }

func (u URI) Scheme() string    { return u.scheme }
func (u URI) Authority() string { return u.authority }
func (u URI) UserInfo() string  { return u.userinfo }
func (u URI) Host() string      { return u.host }
func (u URI) Port() string      { return u.port }
func (u URI) Path() string      { return u.path }
func (u URI) Query() string     { return u.query }
func (u URI) Fragment() string  { return u.fragment }

func (u URI) HasScheme() bool    { return u.hasScheme }
func (u URI) HasAuthority() bool { return u.hasAuthority }
func (u URI) HasUserInfo() bool  { return u.hasUserinfo }
func (u URI) HasPort() bool      { return u.hasPort }
func (u URI) HasQuery() bool     { return u.hasQuery }
func (u URI) HasFragment() bool  { return u.hasFragment }

func (u URI) HostKind() HostKind { return u.hostKind }
func (u URI) PathKind() PathKind { return u.pathKind }

// IsRelative reports whether u is a relative reference (has no scheme)
func (u URI) IsRelative() bool { return !u.hasScheme }

// Segments returns the path split on "/". An absolute path yields a leading
// empty segment.
func (u URI) Segments() []string {
	if u.path == "" {
		return nil
	}
	return strings.Split(u.path, "/")
}

// Err describes why u is invalid, or returns nil for a valid URI
func (u URI) Err() error {
	if u.valid {
		return nil
	}
	reason := "unexpected end of text"
	if u.failPos < len(u.input) {
		reason = fmt.Sprintf("unexpected character %q", u.input[u.failPos])
	}
	return &errors.SyntaxError{
		What:   "uri",
		Input:  u.input,
		Offset: u.failPos,
		Reason: reason,
		Kind:   errors.ErrInvalidURI,
	}
}

// String reassembles the URI reference from its components. The result
// reparses to an equal URI. An invalid URI yields its original text.
func (u URI) String() string {
	if !u.valid {
		return u.input
	}

	var sb strings.Builder
	if u.hasScheme {
		sb.WriteString(u.scheme)
		sb.WriteByte(':')
	}
	if u.hasAuthority {
		sb.WriteString("//")
		sb.WriteString(u.authority)
	}
	sb.WriteString(u.path)
	if u.hasQuery {
		sb.WriteByte('?')
		sb.WriteString(u.query)
	}
	if u.hasFragment {
		sb.WriteByte('#')
		sb.WriteString(u.fragment)
	}
	return sb.String()
}

// Equal reports whether u and o have the same components. Scheme and host
// comparison is case insensitive.
func (u URI) Equal(o URI) bool {
	if !u.valid || !o.valid {
		return false
	}
	return u.hasScheme == o.hasScheme &&
		strings.EqualFold(u.scheme, o.scheme) &&
		u.hasAuthority == o.hasAuthority &&
		u.hasUserinfo == o.hasUserinfo && u.userinfo == o.userinfo &&
		strings.EqualFold(u.host, o.host) &&
		u.hasPort == o.hasPort && u.port == o.port &&
		u.path == o.path &&
		u.hasQuery == o.hasQuery && u.query == o.query &&
		u.hasFragment == o.hasFragment && u.fragment == o.fragment
}

// WithoutFragment returns u with its fragment removed
func (u URI) WithoutFragment() URI {
	u.fragment = ""
	u.hasFragment = false
	return u
}

// MustParse is like Parse but panics if s is not a valid URI reference.
// For static tables and tests.
func MustParse(s string) URI {
	u := Parse(s)
	if err := u.Err(); err != nil {
		panic(err)
	}
	return u
}
