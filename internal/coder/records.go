// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package coder

import (
	"fmt"

	riinterfaces "go.e43.eu/ri/interfaces"
	"go.e43.eu/ri/internal/decl"
	"go.e43.eu/ri/internal/errors"
	"go.e43.eu/ri/internal/filter"
	"go.e43.eu/ri/internal/macro"
	"go.e43.eu/ri/internal/param"
	"go.e43.eu/ri/internal/token"
	"go.e43.eu/ri/internal/typeinfo"
)

// EncodeRecord writes the kind of rec followed by its fields
func (e *Encoder) EncodeRecord(rec macro.Record) error {
	if err := e.EncodeUnsignedInt(uint32(rec.Kind())); err != nil {
		return err
	}

	switch r := rec.(type) {
	case *macro.Declare:
		return e.encodeStrings(r.Name, r.Declaration)
	case *macro.Color:
		return e.EncodeFloats(r.C)
	case *macro.Attribute:
		if err := e.EncodeString(r.Name); err != nil {
			return err
		}
		return e.EncodeParams(r.Params)
	case *macro.AttributeBegin, *macro.AttributeEnd, *macro.WorldBegin, *macro.WorldEnd,
		*macro.ObjectEnd, *macro.ArchiveEnd:
		return nil
	case *macro.Sphere:
		for _, f := range [...]float32{r.Radius, r.ZMin, r.ZMax, r.ThetaMax} {
			if err := e.EncodeFloat(f); err != nil {
				return err
			}
		}
		return e.EncodeParams(r.Params)
	case *macro.Polygon:
		if err := e.EncodeLength(r.NVertices); err != nil {
			return err
		}
		return e.EncodeParams(r.Params)
	case *macro.MakeTexture:
		var fname string
		if r.Filter != nil {
			fname = r.Filter.Name()
		}
		if err := e.encodeStrings(r.Pic, r.Tex, r.SWrap, r.TWrap, fname); err != nil {
			return err
		}
		if err := e.EncodeFloat(r.SWidth); err != nil {
			return err
		}
		if err := e.EncodeFloat(r.TWidth); err != nil {
			return err
		}
		return e.EncodeParams(r.Params)
	case *macro.ObjectBegin:
		if err := e.EncodeString(r.Name); err != nil {
			return err
		}
		return e.EncodeUnsignedInt(uint32(r.Handle))
	case *macro.ObjectInstance:
		return e.EncodeString(r.Name)
	case *macro.ArchiveBegin:
		if err := e.EncodeString(r.Name); err != nil {
			return err
		}
		if err := e.EncodeParams(r.Params); err != nil {
			return err
		}
		return e.EncodeUnsignedInt(uint32(r.Handle))
	case *macro.ReadArchive:
		if err := e.EncodeString(r.Name); err != nil {
			return err
		}
		return e.EncodeParams(r.Params)
	case *macro.ArchiveRecord:
		return e.encodeStrings(r.Type, r.Text)
	default:
		panic(fmt.Sprintf("coder: unhandled record %T", rec))
	}
}

func (e *Encoder) encodeStrings(ss ...string) error {
	for _, s := range ss {
		if err := e.EncodeString(s); err != nil {
			return err
		}
	}
	return nil
}

// EncodeParams writes a parameter list. A nil list is written as an empty
// one.
func (e *Encoder) EncodeParams(l *param.List) error {
	if err := e.EncodeLength(l.Len()); err != nil {
		return err
	}
	for i, p := range l.Params() {
		if err := e.EncodeParameter(p); err != nil {
			return errors.WithFieldError(err, fmt.Sprintf("params[%d]", i), p.Name())
		}
	}
	return nil
}

func (e *Encoder) encodeDeclaration(d decl.Declaration) error {
	for _, u := range [...]uint32{uint32(d.Class()), uint32(d.Type()), uint32(d.Cardinality())} {
		if err := e.EncodeUnsignedInt(u); err != nil {
			return err
		}
	}
	if err := e.EncodeString(d.Name()); err != nil {
		return err
	}
	if err := e.EncodeBool(d.IsDefault()); err != nil {
		return err
	}
	return e.EncodeBool(d.IsInline())
}

func (e *Encoder) encodeCounts(c decl.Counts, colorSamples int) error {
	for _, n := range [...]int{c.Vertices, c.Corners, c.Facets, c.FaceVertices, c.FaceCorners, colorSamples} {
		if err := e.EncodeLength(n); err != nil {
			return err
		}
	}
	return nil
}

// EncodeParameter writes one parameter: its declaration, the counts and
// color samples it was sized with, its position and its value. Pointer
// values cannot be encoded.
func (e *Encoder) EncodeParameter(p *param.Parameter) error {
	if p.Declaration().BasicType() == typeinfo.BasicPointer && !p.IsEmpty() {
		return errors.ErrNotEncodable
	}
	if err := e.encodeDeclaration(p.Declaration()); err != nil {
		return err
	}
	if err := e.encodeCounts(p.Counts(), p.ColorSamples()); err != nil {
		return err
	}
	if err := e.EncodeLength(p.Position()); err != nil {
		return err
	}
	if err := e.EncodeBool(p.IsEmpty()); err != nil || p.IsEmpty() {
		return err
	}

	switch p.Declaration().BasicType() {
	case typeinfo.BasicFloat:
		return e.EncodeFloats(p.Floats())
	case typeinfo.BasicInteger:
		return e.EncodeInts(p.Ints())
	case typeinfo.BasicString:
		if err := e.EncodeLength(p.Len()); err != nil {
			return err
		}
		for i := 0; i < p.Len(); i++ {
			var sp *string
			if s, ok := p.StringAt(i); ok {
				sp = &s
			}
			if err := e.EncodeOptString(sp); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.ErrNotEncodable
	}
}

type recordDecoder struct {
	d   *Decoder
	in  *token.Interner
	lim Limits
}

func (rd *recordDecoder) str() (string, error) {
	return rd.d.DecodeString(rd.lim.MaxString)
}

func (rd *recordDecoder) strs(ps ...*string) (err error) {
	for _, p := range ps {
		if *p, err = rd.str(); err != nil {
			return err
		}
	}
	return nil
}

func (rd *recordDecoder) floats(ps ...*float32) (err error) {
	for _, p := range ps {
		if *p, err = rd.d.DecodeFloat(); err != nil {
			return err
		}
	}
	return nil
}

func (rd *recordDecoder) record() (macro.Record, error) {
	k, err := rd.d.DecodeUnsignedInt()
	if err != nil {
		return nil, err
	}
	rec, ok := macro.New(macro.Kind(k))
	if !ok {
		return nil, errors.WithFieldError(errors.ErrUnknownRecord, fmt.Sprintf("kind %d", k))
	}

	switch r := rec.(type) {
	case *macro.Declare:
		err = rd.strs(&r.Name, &r.Declaration)
	case *macro.Color:
		r.C, err = rd.d.DecodeFloats(rd.lim.MaxItems)
	case *macro.Attribute:
		if err = rd.strs(&r.Name); err == nil {
			r.Params, err = rd.params()
		}
	case *macro.Sphere:
		if err = rd.floats(&r.Radius, &r.ZMin, &r.ZMax, &r.ThetaMax); err == nil {
			r.Params, err = rd.params()
		}
	case *macro.Polygon:
		if r.NVertices, err = rd.d.DecodeLength(maxInt32); err == nil {
			r.Params, err = rd.params()
		}
	case *macro.MakeTexture:
		var fname string
		if err = rd.strs(&r.Pic, &r.Tex, &r.SWrap, &r.TWrap, &fname); err != nil {
			break
		}
		if r.Filter, err = filterByName(fname); err != nil {
			break
		}
		if err = rd.floats(&r.SWidth, &r.TWidth); err == nil {
			r.Params, err = rd.params()
		}
	case *macro.ObjectBegin:
		var h uint32
		if err = rd.strs(&r.Name); err == nil {
			h, err = rd.d.DecodeUnsignedInt()
			r.Handle = riinterfaces.ObjectHandle(h)
		}
	case *macro.ObjectInstance:
		err = rd.strs(&r.Name)
	case *macro.ArchiveBegin:
		var h uint32
		if err = rd.strs(&r.Name); err != nil {
			break
		}
		if r.Params, err = rd.params(); err == nil {
			h, err = rd.d.DecodeUnsignedInt()
			r.Handle = riinterfaces.ArchiveHandle(h)
		}
	case *macro.ReadArchive:
		if err = rd.strs(&r.Name); err == nil {
			r.Params, err = rd.params()
		}
	case *macro.ArchiveRecord:
		err = rd.strs(&r.Type, &r.Text)
	}
	if err != nil {
		return nil, errors.WithFieldError(err, rec.Kind().String())
	}
	return rec, nil
}

const maxInt32 = 1<<31 - 1

// filterByName maps an encoded filter name back to a filter. Tabulated
// filters decode as the standard filter they were built from.
func filterByName(name string) (riinterfaces.FilterFunc, error) {
	if name == "" {
		return nil, nil
	}
	return filter.ByName(name)
}

func (rd *recordDecoder) params() (*param.List, error) {
	n, err := rd.d.DecodeLength(rd.lim.MaxItems)
	if err != nil {
		return nil, err
	}
	l := param.NewList()
	for i := 0; i < n; i++ {
		p, err := rd.parameter()
		if err != nil {
			return nil, errors.WithFieldError(err, fmt.Sprintf("params[%d]", i))
		}
		l.Append(p)
	}
	return l, nil
}

func (rd *recordDecoder) declaration() (decl.Declaration, error) {
	var u [3]uint32
	for i := range u {
		var err error
		if u[i], err = rd.d.DecodeUnsignedInt(); err != nil {
			return decl.Declaration{}, err
		}
	}
	class, typ := typeinfo.Class(u[0]), typeinfo.Type(u[1])
	if uint64(class) != uint64(u[0]) || uint64(typ) != uint64(u[1]) || u[2] > maxInt32 {
		return decl.Declaration{}, errors.ErrInvalidValue
	}

	name, err := rd.str()
	if err != nil {
		return decl.Declaration{}, err
	}
	isDefault, err := rd.d.DecodeBool()
	if err != nil {
		return decl.Declaration{}, err
	}
	inline, err := rd.d.DecodeBool()
	if err != nil {
		return decl.Declaration{}, err
	}

	d, err := decl.New(rd.in, class, typ, int(u[2]), name, isDefault)
	if err != nil {
		return decl.Declaration{}, err
	}
	return d.WithInline(inline), nil
}

func (rd *recordDecoder) parameter() (*param.Parameter, error) {
	d, err := rd.declaration()
	if err != nil {
		return nil, errors.WithFieldError(err, "declaration")
	}

	var n [6]int
	for i := range n {
		if n[i], err = rd.d.DecodeLength(maxInt32); err != nil {
			return nil, errors.WithFieldError(err, "counts")
		}
	}
	sz := param.Sizing{
		Counts: decl.Counts{
			Vertices:     n[0],
			Corners:      n[1],
			Facets:       n[2],
			FaceVertices: n[3],
			FaceCorners:  n[4],
		},
		ColorSamples: n[5],
		MaxBytes:     rd.lim.MaxBytes,
	}

	pos, err := rd.d.DecodeLength(maxInt32)
	if err != nil {
		return nil, err
	}
	empty, err := rd.d.DecodeBool()
	if err != nil {
		return nil, err
	}
	if empty {
		return param.Restore(d, sz, pos, nil)
	}

	// Bound the value by what the declaration says before reading it
	want := d.ComponentCount(sz.Counts, sz.ColorSamples)
	if size := d.ByteSize64(sz.Counts, sz.ColorSamples); sz.MaxBytes != 0 && size > sz.MaxBytes {
		return nil, &errors.AllocationError{Requested: size, Limit: sz.MaxBytes}
	}

	var value interface{}
	switch d.BasicType() {
	case typeinfo.BasicFloat:
		value, err = rd.d.DecodeFloats(want)
	case typeinfo.BasicInteger:
		value, err = rd.d.DecodeInts(want)
	case typeinfo.BasicString:
		var cnt int
		if cnt, err = rd.d.DecodeLength(want); err != nil {
			break
		}
		ss := make([]*string, cnt)
		for i := range ss {
			if ss[i], err = rd.d.DecodeOptString(rd.lim.MaxString); err != nil {
				break
			}
		}
		value = ss
	default:
		return nil, errors.ErrInvalidValue
	}
	if err != nil {
		return nil, errors.WithFieldError(err, "value")
	}

	p, err := param.Restore(d, sz, pos, value)
	if err != nil {
		return nil, errors.WithFieldError(err, "value")
	}
	return p, nil
}
