// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package ri

import (
	"bytes"
	"io"

	"go.e43.eu/ri/internal/coder"
	"go.e43.eu/ri/internal/filter"
	"go.e43.eu/ri/internal/macro"
	"go.e43.eu/ri/internal/resolve"
	"go.e43.eu/ri/internal/uri"
)

// ParseURI parses s as a URI reference. The result is invalid (see URI.Err)
// if s does not match the grammar.
func ParseURI(s string) URI {
	return uri.Parse(s)
}

// MakeAbsolute resolves ref against base. In strict mode a reference with a
// scheme is always taken as absolute; otherwise one whose scheme matches the
// base is resolved as if it had none.
func MakeAbsolute(base, ref URI, strict bool) URI {
	return uri.MakeAbsolute(base, ref, strict)
}

// RemoveDotSegments removes "." and ".." segments from path
func RemoveDotSegments(path string) string {
	return uri.RemoveDotSegments(path)
}

// NewResolver returns a resolver for references relative to base
func NewResolver(base string, strict bool, cacheSize int) (*Resolver, error) {
	return resolve.New(base, strict, cacheSize)
}

// FileURI converts a local file path to a file URI reference
func FileURI(path string) (URI, error) {
	return resolve.FromFilePath(path)
}

// FilterByName returns the built-in filter function with the given name
func FilterByName(name string) (FilterFunc, error) {
	return filter.ByName(name)
}

// FilterNames returns the names of the built-in filter functions
func FilterNames() []string {
	return filter.Names()
}

// NewArchive returns an empty archive
func NewArchive() *Archive {
	return macro.NewArchive()
}

// Marshals a into the returned buffer
func MarshalArchive(a *Archive) ([]byte, error) {
	return coder.Marshal(a)
}

// WriteArchive writes the binary form of a to w
func WriteArchive(w io.Writer, a *Archive) error {
	return coder.Write(w, a)
}

func (c *Context) limits() coder.Limits {
	lim := coder.DefaultLimits
	if c.opts.MaxParameterBytes != 0 {
		lim.MaxBytes = c.opts.MaxParameterBytes
	}
	return lim
}

// ReadArchive reads a binary archive from r. Declarations are interned in the
// context; parameters are limited to Options.MaxParameterBytes.
func (c *Context) ReadArchive(r io.Reader) (*Archive, error) {
	a, err := coder.Read(r, c.in, c.limits())
	if err != nil {
		c.log.Debug().Err(err).Msg("archive rejected")
		return nil, err
	}
	return a, nil
}

// UnmarshalArchive decodes the binary archive in buf
func (c *Context) UnmarshalArchive(buf []byte) (*Archive, error) {
	return c.ReadArchive(bytes.NewReader(buf))
}
