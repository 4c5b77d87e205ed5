// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package resolve turns archive references into absolute URIs
package resolve

import (
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.e43.eu/ri/internal/errors"
	"go.e43.eu/ri/internal/uri"
)

// DefaultCacheSize is the number of resolved references kept when none is
// configured
const DefaultCacheSize = 128

// Resolver resolves references (ReadArchive and procedural names) against a
// base URI. Results are cached by reference text.
type Resolver struct {
	base   uri.URI
	strict bool
	cache  *lru.Cache[string, uri.URI]
}

// New returns a resolver for base, which must be a valid URI reference. A
// cacheSize below one selects DefaultCacheSize.
func New(base string, strict bool, cacheSize int) (*Resolver, error) {
	b := uri.Parse(base)
	if err := b.Err(); err != nil {
		return nil, errors.WithFieldError(err, "base")
	}
	return NewFromURI(b, strict, cacheSize), nil
}

// NewFromURI is like New for an already parsed base. It panics if base is
// invalid.
func NewFromURI(base uri.URI, strict bool, cacheSize int) *Resolver {
	if !base.Valid() {
		panic("resolve: invalid base URI " + base.String())
	}
	if cacheSize < 1 {
		cacheSize = DefaultCacheSize
	}
	c, err := lru.New[string, uri.URI](cacheSize)
	if err != nil {
		panic(err)
	}
	return &Resolver{base: base, strict: strict, cache: c}
}

// Base returns the base URI
func (r *Resolver) Base() uri.URI {
	return r.base
}

// Strict reports whether references are resolved in strict mode
func (r *Resolver) Strict() bool {
	return r.strict
}

// Resolve resolves ref against the base. Invalid references return a
// SyntaxError matching ErrInvalidURI.
func (r *Resolver) Resolve(ref string) (uri.URI, error) {
	if u, ok := r.cache.Get(ref); ok {
		return u, nil
	}

	u := uri.Parse(ref)
	if err := u.Err(); err != nil {
		return uri.URI{}, err
	}
	abs := uri.MakeAbsolute(r.base, u, r.strict)
	r.cache.Add(ref, abs)
	return abs, nil
}

// ResolveString is Resolve returning the URI text
func (r *Resolver) ResolveString(ref string) (string, error) {
	u, err := r.Resolve(ref)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Cached returns the number of cached resolutions
func (r *Resolver) Cached() int {
	return r.cache.Len()
}

// Purge empties the cache
func (r *Resolver) Purge() {
	r.cache.Purge()
}

// isDriveLetter reports whether p begins with "X:"
func isDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0] | 0x20
	return c >= 'a' && c <= 'z'
}

// FromFilePath converts a file system path to a "file" URI. Backslashes are
// taken as separators, so DOS paths convert on every platform: "c:\dir\x.rib"
// becomes "file:///c:/dir/x.rib". Relative paths yield relative references.
func FromFilePath(p string) (uri.URI, error) {
	p = strings.ReplaceAll(p, `\`, "/")

	var s string
	switch {
	case isDriveLetter(p):
		s = "file:///" + p[:2] + uri.EscapePath(p[2:])
	case strings.HasPrefix(p, "/"):
		s = "file://" + uri.EscapePath(p)
	default:
		s = uri.EscapePath(p)
		// A leading segment containing ':' would read as a scheme
		if i := strings.IndexByte(s, ':'); i >= 0 && !strings.Contains(s[:i], "/") {
			s = "./" + s
		}
	}

	u := uri.Parse(s)
	if err := u.Err(); err != nil {
		return uri.URI{}, err
	}
	return u, nil
}

// ToFilePath converts a "file" URI or relative reference back to a path
// using the host's separator
func ToFilePath(u uri.URI) (string, error) {
	if err := u.Err(); err != nil {
		return "", err
	}
	if u.HasScheme() && !strings.EqualFold(u.Scheme(), "file") {
		return "", errors.WithFieldError(errors.ErrInvalidURI, "scheme", u.Scheme())
	}

	p, err := uri.Unescape(u.Path())
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(p, "/") && isDriveLetter(p[1:]) {
		p = p[1:]
	}
	return filepath.FromSlash(p), nil
}

// hasScheme reports whether s starts with a scheme of at least two
// characters, which no drive letter can be mistaken for
func hasScheme(s string) bool {
	i := strings.IndexByte(s, ':')
	if i < 2 {
		return false
	}
	for j := 0; j < i; j++ {
		c := s[j] | 0x20
		switch {
		case c >= 'a' && c <= 'z':
		case j > 0 && (isDigitByte(s[j]) || s[j] == '+' || s[j] == '-' || s[j] == '.'):
		default:
			return false
		}
	}
	return true
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

// ParseName parses an archive name. Names which are not valid URI
// references are taken as file paths, so "my scene.rib" and `C:\a.rib` are
// accepted. A name with a scheme must be a valid URI.
func ParseName(name string) (uri.URI, error) {
	u := uri.Parse(name)
	err := u.Err()
	if err == nil {
		return u, nil
	}
	if hasScheme(name) {
		return uri.URI{}, err
	}
	fu, ferr := FromFilePath(name)
	if ferr != nil {
		return uri.URI{}, err
	}
	return fu, nil
}
