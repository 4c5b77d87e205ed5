// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package param implements the containers for the parameter lists of
// interface calls. A Parameter owns a copy of its declaration and of its
// values; nothing is shared between two Parameters.
package param

import (
	"fmt"
	"math"

	"go.e43.eu/ri/internal/decl"
	"go.e43.eu/ri/internal/errors"
	"go.e43.eu/ri/internal/token"
	"go.e43.eu/ri/internal/typeinfo"
)

// Sizing is the state a parameter is sized against when it is created
type Sizing struct {
	decl.Counts

	// Number of color components currently in effect
	ColorSamples int

	// Upper limit on the bytes held by one parameter. Zero means only the
	// platform limit applies.
	MaxBytes uint64
}

// Parameter is one argument of one interface call
type Parameter struct {
	decl         decl.Declaration
	counts       decl.Counts
	colorSamples int
	position     int

	// Declared byte size of the value, or zero when the parameter is empty
	size int

	floats []float32
	ints   []int32
	ptrs   []interface{}
	strs   stringTable
}

// New creates a parameter for an existing declaration. The declaration is
// copied and marked as not inline. value may be nil, in which case the
// parameter is empty.
func New(d decl.Declaration, sz Sizing, position int, value interface{}) (*Parameter, error) {
	return build(d.WithInline(false), sz, position, value)
}

// Restore recreates a parameter from decoded parts, keeping the inline flag
// of d
func Restore(d decl.Declaration, sz Sizing, position int, value interface{}) (*Parameter, error) {
	return build(d, sz, position, value)
}

// NewInline parses spec as an inline declaration (which must carry a type and
// a name) and creates a parameter for it
func NewInline(in *token.Interner, spec string, sz Sizing, position int, value interface{}) (*Parameter, error) {
	d, err := decl.ParseTypedInline(in, spec)
	if err != nil {
		return nil, err
	}
	return build(d, sz, position, value)
}

func checkAlloc(n uint64, limit uint64) error {
	switch {
	case n > uint64(math.MaxInt):
		return &errors.AllocationError{Requested: n, Limit: uint64(math.MaxInt)}
	case limit != 0 && n > limit:
		return &errors.AllocationError{Requested: n, Limit: limit}
	default:
		return nil
	}
}

func build(d decl.Declaration, sz Sizing, position int, value interface{}) (*Parameter, error) {
	p := &Parameter{
		decl:         d,
		counts:       sz.Counts,
		colorSamples: sz.ColorSamples,
		position:     position,
	}

	size := d.ByteSize64(sz.Counts, sz.ColorSamples)
	if size == 0 || value == nil {
		return p, nil
	}
	if err := checkAlloc(size, sz.MaxBytes); err != nil {
		return nil, err
	}

	n := d.ComponentCount(sz.Counts, sz.ColorSamples)
	var err error
	switch d.BasicType() {
	case typeinfo.BasicFloat:
		p.floats, err = floatValues(value, n)
	case typeinfo.BasicInteger:
		p.ints, err = intValues(value, n)
	case typeinfo.BasicString:
		var src []*string
		src, err = stringValues(value, n)
		if err == nil {
			if aerr := checkAlloc(size+stringBlockSize(src), sz.MaxBytes); aerr != nil {
				return nil, aerr
			}
			p.strs = newStringTable(src)
		}
	case typeinfo.BasicPointer:
		p.ptrs, err = pointerValues(value, n)
	default:
		return p, nil
	}
	if err != nil {
		return nil, err
	}

	p.size = int(size)
	return p, nil
}

func floatValues(value interface{}, n int) ([]float32, error) {
	out := make([]float32, n)
	switch v := value.(type) {
	case []float32:
		if len(v) < n {
			return nil, errors.ShortValue(n, len(v))
		}
		copy(out, v)
	case []float64:
		if len(v) < n {
			return nil, errors.ShortValue(n, len(v))
		}
		for i := range out {
			out[i] = float32(v[i])
		}
	case float32:
		if n != 1 {
			return nil, errors.ShortValue(n, 1)
		}
		out[0] = v
	case float64:
		if n != 1 {
			return nil, errors.ShortValue(n, 1)
		}
		out[0] = float32(v)
	default:
		return nil, errors.TypeMismatch("[]float32", value)
	}
	return out, nil
}

func intValues(value interface{}, n int) ([]int32, error) {
	out := make([]int32, n)
	switch v := value.(type) {
	case []int32:
		if len(v) < n {
			return nil, errors.ShortValue(n, len(v))
		}
		copy(out, v)
	case []int:
		if len(v) < n {
			return nil, errors.ShortValue(n, len(v))
		}
		for i := range out {
			if v[i] > math.MaxInt32 || v[i] < math.MinInt32 {
				return nil, &errors.ValueError{Kind: errors.ErrValueType, Want: "int32", Got: fmt.Sprint(v[i])}
			}
			out[i] = int32(v[i])
		}
	case []bool:
		if len(v) < n {
			return nil, errors.ShortValue(n, len(v))
		}
		for i := range out {
			if v[i] {
				out[i] = 1
			}
		}
	case int32:
		if n != 1 {
			return nil, errors.ShortValue(n, 1)
		}
		out[0] = v
	case int:
		if n != 1 {
			return nil, errors.ShortValue(n, 1)
		}
		if v > math.MaxInt32 || v < math.MinInt32 {
			return nil, &errors.ValueError{Kind: errors.ErrValueType, Want: "int32", Got: fmt.Sprint(v)}
		}
		out[0] = int32(v)
	default:
		return nil, errors.TypeMismatch("[]int32", value)
	}
	return out, nil
}

// stringValues normalises the accepted string inputs to a slice of optional
// strings, where nil marks a null entry
func stringValues(value interface{}, n int) ([]*string, error) {
	out := make([]*string, n)
	switch v := value.(type) {
	case []string:
		if len(v) < n {
			return nil, errors.ShortValue(n, len(v))
		}
		for i := range out {
			out[i] = &v[i]
		}
	case []*string:
		if len(v) < n {
			return nil, errors.ShortValue(n, len(v))
		}
		copy(out, v)
	case string:
		if n != 1 {
			return nil, errors.ShortValue(n, 1)
		}
		out[0] = &v
	default:
		return nil, errors.TypeMismatch("[]string", value)
	}
	return out, nil
}

func pointerValues(value interface{}, n int) ([]interface{}, error) {
	out := make([]interface{}, n)
	switch v := value.(type) {
	case []interface{}:
		if len(v) < n {
			return nil, errors.ShortValue(n, len(v))
		}
		copy(out, v)
	default:
		if n != 1 {
			return nil, errors.ShortValue(n, 1)
		}
		out[0] = v
	}
	return out, nil
}

// Declaration returns the parameter's copy of its declaration
func (p *Parameter) Declaration() decl.Declaration { return p.decl }

// Token returns the name token of the declaration
func (p *Parameter) Token() token.Token { return p.decl.Token() }

// Name returns the declared name
func (p *Parameter) Name() string { return p.decl.Name() }

// Counts returns the primitive counts recorded at construction
func (p *Parameter) Counts() decl.Counts { return p.counts }

// ColorSamples returns the color component count recorded at construction
func (p *Parameter) ColorSamples() int { return p.colorSamples }

// Position returns the index of the parameter in its original argument list
func (p *Parameter) Position() int { return p.position }

// IsEmpty reports whether the parameter holds no value
func (p *Parameter) IsEmpty() bool { return p.size == 0 }

// IsFaceClass reports whether the storage class is facevarying or facevertex
func (p *Parameter) IsFaceClass() bool { return p.decl.IsFaceClass() }

// ElementCount returns the number of elements called for by the storage class
func (p *Parameter) ElementCount() int { return p.decl.ElementCount(p.counts) }

// ArrayElementCount returns ElementCount × cardinality
func (p *Parameter) ArrayElementCount() int { return p.decl.ArrayElementCount(p.counts) }

// Components returns the number of components per element
func (p *Parameter) Components() int { return p.decl.Components(p.colorSamples) }

// Len returns the number of components held, which bounds the index
// accepted by the element accessors. It is zero for an empty parameter.
func (p *Parameter) Len() int {
	if p.IsEmpty() {
		return 0
	}
	return p.decl.ComponentCount(p.counts, p.colorSamples)
}

// ByteSize returns the byte size of the value: ArrayElementCount ×
// Components × the component size of the type, or zero when empty.
// Strings and pointers count one pointer-sized slot each.
func (p *Parameter) ByteSize() int { return p.size }

// Floats returns the float components. The slice must not be modified.
func (p *Parameter) Floats() []float32 { return p.floats }

// Ints returns the integer components. The slice must not be modified.
func (p *Parameter) Ints() []int32 { return p.ints }

// Pointers returns the opaque pointer components. The slice must not be
// modified.
func (p *Parameter) Pointers() []interface{} { return p.ptrs }

// Strings returns a copy of the string components. Null entries are "".
func (p *Parameter) Strings() []string {
	out := make([]string, p.strs.len())
	for i := range out {
		out[i], _ = p.strs.at(i)
	}
	return out
}

// Float returns float component i
func (p *Parameter) Float(i int) (float32, bool) {
	if i < 0 || i >= len(p.floats) {
		return 0, false
	}
	return p.floats[i], true
}

// Int returns integer component i
func (p *Parameter) Int(i int) (int32, bool) {
	if i < 0 || i >= len(p.ints) {
		return 0, false
	}
	return p.ints[i], true
}

// StringAt returns string component i. ok is false if i is out of range or
// the entry is null.
func (p *Parameter) StringAt(i int) (s string, ok bool) {
	if i < 0 || i >= p.strs.len() {
		return "", false
	}
	return p.strs.at(i)
}

// Pointer returns pointer component i
func (p *Parameter) Pointer(i int) (interface{}, bool) {
	if i < 0 || i >= len(p.ptrs) {
		return nil, false
	}
	return p.ptrs[i], true
}

// Value returns the whole value in its native representation: []float32,
// []int32, []*string or []interface{}. It returns nil for an empty
// parameter. The result shares nothing with p.
func (p *Parameter) Value() interface{} {
	if p.IsEmpty() {
		return nil
	}
	switch p.decl.BasicType() {
	case typeinfo.BasicFloat:
		return append([]float32(nil), p.floats...)
	case typeinfo.BasicInteger:
		return append([]int32(nil), p.ints...)
	case typeinfo.BasicString:
		out := make([]*string, p.strs.len())
		for i := range out {
			if s, ok := p.strs.at(i); ok {
				out[i] = &s
			}
		}
		return out
	case typeinfo.BasicPointer:
		return append([]interface{}(nil), p.ptrs...)
	default:
		return nil
	}
}

// Duplicate returns a deep copy of p. The string table is copied with its
// index so the copy remains readable after p is discarded. Pointer
// components are opaque and copied by value.
func (p *Parameter) Duplicate() *Parameter {
	if p == nil {
		return nil
	}
	n := *p
	n.floats = cloneSlice(p.floats)
	n.ints = cloneSlice(p.ints)
	n.ptrs = cloneSlice(p.ptrs)
	n.strs = p.strs.clone()
	return &n
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func (p *Parameter) String() string {
	if p.IsEmpty() {
		return fmt.Sprintf("%q (empty)", p.decl.FullName())
	}
	switch p.decl.BasicType() {
	case typeinfo.BasicFloat:
		return fmt.Sprintf("%q %v", p.decl.FullName(), p.floats)
	case typeinfo.BasicInteger:
		return fmt.Sprintf("%q %v", p.decl.FullName(), p.ints)
	case typeinfo.BasicString:
		return fmt.Sprintf("%q %q", p.decl.FullName(), p.Strings())
	default:
		return fmt.Sprintf("%q [%d pointers]", p.decl.FullName(), len(p.ptrs))
	}
}
