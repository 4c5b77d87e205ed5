// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package dict implements the declaration dictionary of a rendering context:
// a token to declaration mapping with a LIFO stack of snapshots.
package dict

import (
	"slices"

	"go.e43.eu/ri/internal/decl"
	"go.e43.eu/ri/internal/errors"
	"go.e43.eu/ri/internal/token"
	"src.elv.sh/pkg/persistent/hash"
	"src.elv.sh/pkg/persistent/hashmap"
)

func equalToken(a, b interface{}) bool {
	return a.(token.Token) == b.(token.Token)
}

func hashToken(k interface{}) uint32 {
	return hash.UInt32(uint32(k.(token.Token)))
}

var empty = hashmap.New(equalToken, hashToken)

// Dictionary maps name tokens to declarations. The mapping is persistent,
// so Push is a constant time snapshot and Pop restores it exactly.
//
// A Dictionary is not safe for concurrent use.
type Dictionary struct {
	in     *token.Interner
	cur    hashmap.Map
	stack  []hashmap.Map
	strict bool
}

// New returns an empty dictionary which interns names in in
func New(in *token.Interner) *Dictionary {
	if in == nil {
		in = token.New()
	}
	return &Dictionary{in: in, cur: empty}
}

// Interner returns the token interner names are registered in
func (d *Dictionary) Interner() *token.Interner {
	return d.in
}

// SetStrict controls whether redeclaring a default declaration is an error.
// The default is to allow it, replacing the built-in.
func (d *Dictionary) SetStrict(strict bool) {
	d.strict = strict
}

// Strict reports whether strict redeclaration checking is enabled
func (d *Dictionary) Strict() bool {
	return d.strict
}

// Declare parses spec as the type of name and registers it, replacing any
// previous declaration of the same name. The type must not be omitted.
//
// On error the mapping is unchanged.
func (d *Dictionary) Declare(name, spec string, isDefault bool) (token.Token, error) {
	dl, err := decl.Parse(d.in, name, spec)
	if err != nil {
		return token.Null, err
	}
	if err := dl.RequireType(); err != nil {
		return token.Null, err
	}
	if err := d.Add(dl.WithDefault(isDefault)); err != nil {
		return token.Null, err
	}
	return dl.Token(), nil
}

// Add registers an already constructed declaration
func (d *Dictionary) Add(dl decl.Declaration) error {
	if d.strict {
		if old, ok := d.FindToken(dl.Token()); ok && old.IsDefault() {
			return errors.WithFieldError(errors.ErrRedeclareDefault, dl.Name())
		}
	}
	d.cur = d.cur.Assoc(dl.Token(), dl.WithInline(false))
	return nil
}

// Remove deletes the declaration of name, if any
func (d *Dictionary) Remove(name string) bool {
	t := d.in.Find(name)
	if t.IsNull() {
		return false
	}
	if _, ok := d.cur.Index(t); !ok {
		return false
	}
	d.cur = d.cur.Dissoc(t)
	return true
}

// FindToken returns the declaration registered for t
func (d *Dictionary) FindToken(t token.Token) (decl.Declaration, bool) {
	if t.IsNull() {
		return decl.Declaration{}, false
	}
	v, ok := d.cur.Index(t)
	if !ok {
		return decl.Declaration{}, false
	}
	return v.(decl.Declaration), true
}

// Find returns the declaration registered for name. It never interns.
func (d *Dictionary) Find(name string) (decl.Declaration, bool) {
	return d.FindToken(d.in.Find(name))
}

// FindQualified looks up a declaration by the parts of a qualified name,
// trying "namespace:table:var", then "table:var", then "var". Empty parts
// are skipped.
func (d *Dictionary) FindQualified(namespace, table, variable string) (decl.Declaration, bool) {
	if variable == "" {
		return decl.Declaration{}, false
	}
	if namespace != "" && table != "" {
		if dl, ok := d.Find(namespace + ":" + table + ":" + variable); ok {
			return dl, true
		}
	}
	if table != "" {
		if dl, ok := d.Find(table + ":" + variable); ok {
			return dl, true
		}
	}
	return d.Find(variable)
}

// Lookup resolves a possibly qualified name as FindQualified does
func (d *Dictionary) Lookup(name string) (decl.Declaration, bool) {
	if dl, ok := d.Find(name); ok {
		return dl, true
	}

	var parts [3]string
	n := 0
	start := 0
	for i := 0; i <= len(name); i++ {
		if i == len(name) || name[i] == ':' {
			if n == len(parts) {
				return decl.Declaration{}, false
			}
			parts[n] = name[start:i]
			n++
			start = i + 1
		}
	}

	switch n {
	case 2:
		return d.FindQualified("", parts[0], parts[1])
	case 3:
		return d.FindQualified(parts[0], parts[1], parts[2])
	default:
		return decl.Declaration{}, false
	}
}

// Len returns the number of live declarations
func (d *Dictionary) Len() int {
	return d.cur.Len()
}

// Depth returns the number of snapshots on the stack
func (d *Dictionary) Depth() int {
	return len(d.stack)
}

// Push saves the current mapping
func (d *Dictionary) Push() {
	d.stack = append(d.stack, d.cur)
}

// Pop restores the mapping saved by the matching Push. Popping an empty
// stack indicates mismatched nesting in the caller and panics.
func (d *Dictionary) Pop() {
	if len(d.stack) == 0 {
		panic(errors.StateError{Op: "declaration dictionary pop with empty stack"})
	}
	n := len(d.stack) - 1
	d.cur = d.stack[n]
	d.stack[n] = nil
	d.stack = d.stack[:n]
}

// ReleaseNonDefault removes every declaration which is not a renderer
// default, returning the number removed. Tokens are left in the interner and
// saved snapshots are untouched.
func (d *Dictionary) ReleaseNonDefault() int {
	var drop []token.Token
	for it := d.cur.Iterator(); it.HasElem(); it.Next() {
		k, v := it.Elem()
		if !v.(decl.Declaration).IsDefault() {
			drop = append(drop, k.(token.Token))
		}
	}
	for _, t := range drop {
		d.cur = d.cur.Dissoc(t)
	}
	return len(drop)
}

// Declarations returns the live declarations ordered by token, which is the
// order their names were first interned
func (d *Dictionary) Declarations() []decl.Declaration {
	out := make([]decl.Declaration, 0, d.cur.Len())
	for it := d.cur.Iterator(); it.HasElem(); it.Next() {
		_, v := it.Elem()
		out = append(out, v.(decl.Declaration))
	}
	slices.SortFunc(out, func(a, b decl.Declaration) int {
		return int(a.Token()) - int(b.Token())
	})
	return out
}
