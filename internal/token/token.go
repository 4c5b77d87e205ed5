// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package token interns names into identity-comparable tokens.
//
// A Token is an index into the interner's backing store. Two tokens from the
// same Interner are equal iff their strings are byte-identical, so callers
// compare tokens with == instead of comparing string content.
package token

import "strings"

// Token is an interned name. The zero value is the null token; it is never
// allocated for a real name.
type Token uint32

// Null is the reserved token returned for the empty name and for failed lookups
const Null Token = 0

// IsNull reports whether t is the null token
func (t Token) IsNull() bool {
	return t == Null
}

type span struct {
	off, len uint32
}

// Interner owns the strings behind its tokens. Strings are appended to a
// single blob which only ever grows, so a token stays valid for the lifetime
// of the interner.
//
// An Interner is not safe for concurrent mutation.
type Interner struct {
	index map[string]Token
	spans []span
	blob  []byte
}

// New constructs an empty interner
func New() *Interner {
	return &Interner{
		index: make(map[string]Token),
		// Slot 0 backs the null token
		spans: make([]span, 1),
	}
}

func (in *Interner) lazyInit() {
	if in.index == nil {
		in.index = make(map[string]Token)
		in.spans = make([]span, 1)
	}
}

// FindCreate returns the token for name (with surrounding white space
// removed), creating it if it does not exist yet. The empty name maps to Null.
func (in *Interner) FindCreate(name string) Token {
	name = strings.TrimSpace(name)
	if name == "" {
		return Null
	}

	in.lazyInit()
	if t, ok := in.index[name]; ok {
		return t
	}

	t := Token(len(in.spans))
	sp := span{uint32(len(in.blob)), uint32(len(name))}
	in.blob = append(in.blob, name...)
	in.spans = append(in.spans, sp)
	// Key the index by the blob copy so that we do not retain the caller's string
	in.index[in.str(sp)] = t
	return t
}

// Find returns the token for name without allocating, or Null if name has
// not been interned
func (in *Interner) Find(name string) Token {
	name = strings.TrimSpace(name)
	if name == "" || in.index == nil {
		return Null
	}
	return in.index[name]
}

func (in *Interner) str(sp span) string {
	return string(in.blob[sp.off : sp.off+sp.len])
}

// String returns the name behind t. It returns "" for Null and for tokens not
// created by this interner.
func (in *Interner) String(t Token) string {
	if t == Null || int(t) >= len(in.spans) {
		return ""
	}
	return in.str(in.spans[t])
}

// Owns reports whether t was created by this interner
func (in *Interner) Owns(t Token) bool {
	return t != Null && int(t) < len(in.spans)
}

// Len returns the number of interned names (excluding Null)
func (in *Interner) Len() int {
	if len(in.spans) == 0 {
		return 0
	}
	return len(in.spans) - 1
}

// Bytes returns the size of the backing store
func (in *Interner) Bytes() int {
	return len(in.blob)
}

// Each calls fn for each token in creation order
func (in *Interner) Each(fn func(t Token, name string)) {
	for i := 1; i < len(in.spans); i++ {
		fn(Token(i), in.str(in.spans[i]))
	}
}
