// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package decl implements RenderMan parameter declarations: the textual
// `class type[cardinality] name` specifier and the sizing rules derived
// from it.
package decl

import (
	"fmt"
	"math"
	"strings"

	"go.e43.eu/ri/internal/errors"
	"go.e43.eu/ri/internal/token"
	"go.e43.eu/ri/internal/typeinfo"
)

// Counts holds the primitive counts used to size a parameter
type Counts struct {
	Vertices     int
	Corners      int
	Facets       int
	FaceVertices int
	FaceCorners  int
}

// Declaration is one parsed declaration. It is a value type: copies share
// nothing mutable.
type Declaration struct {
	class typeinfo.Class
	typ   typeinfo.Type
	card  int

	name                       token.Token
	nameStr                    string
	namespace, table, variable string

	inline    bool
	isDefault bool

	fullName string
}

// New constructs a declaration directly from its parts, as is done for the
// built-in declarations of a renderer
func New(in *token.Interner, class typeinfo.Class, typ typeinfo.Type, card int, name string, isDefault bool) (Declaration, error) {
	p := parser{input: name}
	switch {
	case !class.Valid() || class == typeinfo.ClassUnknown:
		return Declaration{}, p.fail(cursor{}, "invalid storage class")
	case !typ.Valid():
		return Declaration{}, p.fail(cursor{}, "invalid type")
	case card < 1:
		return Declaration{}, p.fail(cursor{}, "array cardinality must be at least one")
	}

	name = strings.TrimSpace(name)
	ns, table, variable, ok := splitQualified(name)
	if !ok {
		return Declaration{}, p.fail(cursor{}, "malformed qualified name")
	}

	d := Declaration{
		class:     class,
		typ:       typ,
		card:      card,
		namespace: ns,
		table:     table,
		variable:  variable,
		isDefault: isDefault,
	}
	d.name = in.FindCreate(name)
	d.nameStr = in.String(d.name)
	d.fullName = buildFullName(d)
	return d, nil
}

// MustNew is like New but panics on error. For static tables only.
func MustNew(in *token.Interner, class typeinfo.Class, typ typeinfo.Type, card int, name string, isDefault bool) Declaration {
	d, err := New(in, class, typ, card, name, isDefault)
	if err != nil {
		panic(err)
	}
	return d
}

func buildFullName(d Declaration) string {
	return fmt.Sprintf("%s %s[%d] %s", d.class, d.typ, d.card, d.nameStr)
}

func (d Declaration) Class() typeinfo.Class         { return d.class }
func (d Declaration) Type() typeinfo.Type           { return d.typ }
func (d Declaration) BasicType() typeinfo.BasicType { return d.typ.Basic() }
func (d Declaration) Cardinality() int              { return d.card }
func (d Declaration) Token() token.Token            { return d.name }
func (d Declaration) Name() string                  { return d.nameStr }
func (d Declaration) Namespace() string             { return d.namespace }
func (d Declaration) Table() string                 { return d.table }
func (d Declaration) Var() string                   { return d.variable }
func (d Declaration) IsInline() bool                { return d.inline }
func (d Declaration) IsDefault() bool               { return d.isDefault }

// IsZero reports whether d is the zero Declaration
func (d Declaration) IsZero() bool {
	return d.name == token.Null && d.typ == typeinfo.TypeUnknown
}

// FullName returns "<class> <type>[<cardinality>] <name>"
func (d Declaration) FullName() string {
	return d.fullName
}

func (d Declaration) String() string {
	return d.fullName
}

// Spec returns the type specifier (without name) which reparses to d
func (d Declaration) Spec() string {
	var sb strings.Builder
	sb.WriteString(d.class.String())
	if d.typ != typeinfo.TypeUnknown {
		sb.WriteByte(' ')
		sb.WriteString(d.typ.String())
	}
	if d.card != 1 {
		fmt.Fprintf(&sb, "[%d]", d.card)
	}
	return sb.String()
}

// WithDefault returns a copy of d with the default flag set to def
func (d Declaration) WithDefault(def bool) Declaration {
	d.isDefault = def
	return d
}

// WithInline returns a copy of d with the inline flag set to inline
func (d Declaration) WithInline(inline bool) Declaration {
	d.inline = inline
	return d
}

// Equal reports whether d and o describe the same declaration
func (d Declaration) Equal(o Declaration) bool {
	return d.class == o.class &&
		d.typ == o.typ &&
		d.card == o.card &&
		d.name == o.name &&
		d.inline == o.inline &&
		d.isDefault == o.isDefault
}

// IsFaceClass reports whether the storage class is facevarying or facevertex
func (d Declaration) IsFaceClass() bool {
	return d.class.IsFace()
}

// ElementCount returns the number of elements the storage class calls for,
// never less than one
func (d Declaration) ElementCount(c Counts) int {
	var n int
	switch d.class {
	case typeinfo.ClassUniform:
		n = c.Facets
	case typeinfo.ClassVarying:
		n = c.Corners
	case typeinfo.ClassVertex:
		n = c.Vertices
	case typeinfo.ClassFaceVarying:
		n = c.FaceCorners
	case typeinfo.ClassFaceVertex:
		n = c.FaceVertices
	default:
		n = 1
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ArrayElementCount returns ElementCount × cardinality
func (d Declaration) ArrayElementCount(c Counts) int {
	return satInt(mulSat(uint64(d.ElementCount(c)), uint64(d.card)))
}

// Components returns the number of components per element
func (d Declaration) Components(colorSamples int) int {
	return d.typ.Components(colorSamples)
}

// ComponentCount returns the total number of components (the index bound of
// the value array): ArrayElementCount × Components
func (d Declaration) ComponentCount(c Counts, colorSamples int) int {
	return satInt(d.componentCount(c, colorSamples))
}

func (d Declaration) componentCount(c Counts, colorSamples int) uint64 {
	comps := d.Components(colorSamples)
	if comps < 0 {
		comps = 0
	}
	return mulSat(mulSat(uint64(d.ElementCount(c)), uint64(d.card)), uint64(comps))
}

// ByteSize returns ArrayElementCount × Components × ComponentSize,
// saturating at math.MaxInt
func (d Declaration) ByteSize(c Counts, colorSamples int) int {
	return satInt(d.ByteSize64(c, colorSamples))
}

// ByteSize64 is ByteSize computed without truncation, saturating at
// math.MaxUint64
func (d Declaration) ByteSize64(c Counts, colorSamples int) uint64 {
	return mulSat(d.componentCount(c, colorSamples), uint64(d.typ.ComponentSize()))
}

// RequireType returns ErrMissingType if d has no data type
func (d Declaration) RequireType() error {
	if d.typ == typeinfo.TypeUnknown {
		return &errors.SyntaxError{
			What:   "declaration",
			Input:  d.nameStr,
			Reason: "missing type",
			Kind:   errors.ErrMissingType,
		}
	}
	return nil
}

func mulSat(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxUint64/b {
		return math.MaxUint64
	}
	return a * b
}

func satInt(v uint64) int {
	if v > uint64(math.MaxInt) {
		return math.MaxInt
	}
	return int(v)
}
