// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package ri

import (
	"fmt"

	"github.com/rs/zerolog"
	"go.e43.eu/ri/internal/decl"
	"go.e43.eu/ri/internal/dict"
	"go.e43.eu/ri/internal/param"
	"go.e43.eu/ri/internal/resolve"
	"go.e43.eu/ri/internal/token"
	"go.e43.eu/ri/internal/uri"
)

// Context is the state of one rendering context: its interned names, its
// declaration dictionary with the built-in declarations installed, and the
// number of color samples in effect.
type Context struct {
	opts         Options
	in           *token.Interner
	dict         *dict.Dictionary
	colorSamples int
	resolver     *resolve.Resolver
	log          zerolog.Logger
}

// NewContext returns a context configured by opts. Diagnostics are discarded
// until a logger is set with WithLogger.
func NewContext(opts Options) (*Context, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	c := &Context{
		opts:         opts,
		in:           token.New(),
		colorSamples: opts.ColorSamples,
		log:          zerolog.Nop(),
	}
	c.dict = dict.New(c.in)
	c.dict.DeclareDefaults()
	c.dict.SetStrict(opts.StrictRedeclare)

	if opts.BaseURI != "" {
		r, err := resolve.New(opts.BaseURI, opts.StrictURI, opts.ResolverCacheSize)
		if err != nil {
			return nil, err
		}
		c.resolver = r
	}
	return c, nil
}

// MustNewContext is like NewContext but panics on error
func MustNewContext(opts Options) *Context {
	c, err := NewContext(opts)
	if err != nil {
		panic(err)
	}
	return c
}

// WithLogger sets the logger diagnostics are written to and returns c. The
// logger is limited to Options.LogLevel.
func (c *Context) WithLogger(l zerolog.Logger) *Context {
	lvl, _ := c.opts.Level()
	c.log = l.Level(lvl)
	return c
}

// Logger returns the context's logger
func (c *Context) Logger() *zerolog.Logger {
	return &c.log
}

func (c *Context) Options() Options             { return c.opts }
func (c *Context) Interner() *token.Interner    { return c.in }
func (c *Context) Dictionary() *dict.Dictionary { return c.dict }

// Resolver returns the archive resolver, or nil if no base URI was
// configured
func (c *Context) Resolver() *resolve.Resolver {
	return c.resolver
}

// ColorSamples returns the number of color components in effect
func (c *Context) ColorSamples() int {
	return c.colorSamples
}

// SetColorSamples changes the number of color components used to size
// color parameters created after the call
func (c *Context) SetColorSamples(n int) error {
	if n < 1 {
		return fmt.Errorf("ri: color samples must be at least 1, not %d", n)
	}
	c.colorSamples = n
	return nil
}

// Declare declares name with the type specifier spec
func (c *Context) Declare(name, spec string) (Token, error) {
	return c.dict.Declare(name, spec, false)
}

// Find returns the declaration in effect for name
func (c *Context) Find(name string) (Declaration, bool) {
	return c.dict.Lookup(name)
}

// Push saves the dictionary; Pop restores the most recently saved state
func (c *Context) Push() {
	c.dict.Push()
	c.log.Debug().Int("depth", c.dict.Depth()).Msg("declarations pushed")
}

// Pop panics with a StateError if there is no matching Push
func (c *Context) Pop() {
	c.dict.Pop()
	c.log.Debug().Int("depth", c.dict.Depth()).Msg("declarations popped")
}

// Release removes every declaration in the current mapping which is not a
// default, including those copied in from before the last Push. It returns
// the number removed.
func (c *Context) Release() int {
	n := c.dict.ReleaseNonDefault()
	c.log.Debug().Int("released", n).Msg("declarations released")
	return n
}

// Sizing returns the sizing of a parameter attached to a primitive with
// counts n
func (c *Context) Sizing(n Counts) Sizing {
	return param.Sizing{
		Counts:       n,
		ColorSamples: c.colorSamples,
		MaxBytes:     c.opts.MaxParameterBytes,
	}
}

// Params builds a parameter list for a primitive with counts n. See
// param.Build for how failures are reported.
func (c *Context) Params(n Counts, args ...Pair) (*ParameterList, error) {
	return param.Build(c.dict, c.Sizing(n), args...)
}

// ParseDeclaration parses spec as a declaration of name without entering it
// into the dictionary
func (c *Context) ParseDeclaration(name, spec string) (Declaration, error) {
	return decl.Parse(c.in, name, spec)
}

// ResolveArchive resolves an archive reference against the base URI. With
// no base configured a valid reference is returned as given. A name which is
// not a URI reference is converted from a file path first, so "my scene.rib"
// becomes "my%20scene.rib".
func (c *Context) ResolveArchive(ref string) (string, error) {
	if u := uri.Parse(ref); u.Valid() {
		if c.resolver == nil {
			return ref, nil
		}
		return c.resolver.ResolveString(ref)
	}

	u, err := resolve.ParseName(ref)
	if err != nil {
		return "", err
	}
	if c.resolver == nil {
		return u.String(), nil
	}
	return c.resolver.ResolveString(u.String())
}
