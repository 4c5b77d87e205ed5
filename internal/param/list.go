// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package param

import (
	stderrors "errors"

	"go.e43.eu/ri/internal/decl"
	"go.e43.eu/ri/internal/errors"
	"go.e43.eu/ri/internal/token"
)

// Pair is one (name, value) argument as passed to an interface call. Name is
// either a declared name or an inline declaration.
type Pair struct {
	Name  string
	Value interface{}
}

// Declarations is the dictionary a list is built against
type Declarations interface {
	Lookup(name string) (decl.Declaration, bool)
	Interner() *token.Interner
}

// List is the ordered parameter list of one interface call
type List struct {
	params []*Parameter
}

// Build pairs each argument with its declaration and creates its parameter.
// Names found in decls use that declaration; any other name must be a typed
// inline declaration.
//
// Arguments which fail are left out of the list. The returned error joins
// one ParameterError per failed argument; the list of the good arguments is
// returned alongside it.
func Build(decls Declarations, sz Sizing, args ...Pair) (*List, error) {
	l := &List{params: make([]*Parameter, 0, len(args))}
	var errs []error

	for i, a := range args {
		p, err := buildOne(decls, sz, i, a)
		if err != nil {
			errs = append(errs, errors.WithParameterError(err, i, a.Name))
			continue
		}
		l.params = append(l.params, p)
	}
	return l, stderrors.Join(errs...)
}

func buildOne(decls Declarations, sz Sizing, position int, a Pair) (*Parameter, error) {
	if d, ok := decls.Lookup(a.Name); ok {
		return New(d, sz, position, a.Value)
	}

	// A bare name which is not declared is not an inline declaration either
	d, err := decl.ParseTypedInline(decls.Interner(), a.Name)
	if stderrors.Is(err, errors.ErrMissingType) {
		return nil, errors.ErrUnknownDeclaration
	}
	if err != nil {
		return nil, err
	}
	return build(d, sz, position, a.Value)
}

// NewList returns a list holding params in order. The list takes ownership.
func NewList(params ...*Parameter) *List {
	return &List{params: params}
}

// Len returns the number of parameters
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.params)
}

// At returns parameter i
func (l *List) At(i int) *Parameter {
	return l.params[i]
}

// Params returns the parameters in order. The slice must not be modified.
func (l *List) Params() []*Parameter {
	if l == nil {
		return nil
	}
	return l.params
}

// Find returns the first parameter whose name is t
func (l *List) Find(t token.Token) (*Parameter, bool) {
	for _, p := range l.Params() {
		if p.Token() == t {
			return p, true
		}
	}
	return nil, false
}

// Append adds p to the end of the list
func (l *List) Append(p *Parameter) {
	l.params = append(l.params, p)
}

// Duplicate returns a deep copy of l
func (l *List) Duplicate() *List {
	if l == nil {
		return nil
	}
	n := &List{params: make([]*Parameter, len(l.params))}
	for i, p := range l.params {
		n.params[i] = p.Duplicate()
	}
	return n
}

// Names returns the declared names in order
func (l *List) Names() []string {
	out := make([]string, 0, l.Len())
	for _, p := range l.Params() {
		out = append(out, p.Name())
	}
	return out
}
