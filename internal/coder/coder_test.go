// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package coder

import (
	"bytes"
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	riinterfaces "go.e43.eu/ri/interfaces"
	"go.e43.eu/ri/internal/decl"
	"go.e43.eu/ri/internal/dict"
	"go.e43.eu/ri/internal/errors"
	"go.e43.eu/ri/internal/filter"
	"go.e43.eu/ri/internal/macro"
	"go.e43.eu/ri/internal/param"
	"go.e43.eu/ri/internal/token"
)

func TestPrimitives(t *testing.T) {
	var b bytes.Buffer
	e := NewEncoder(&b)
	require.NoError(t, e.EncodeInt(-1))
	require.NoError(t, e.EncodeBool(true))
	require.NoError(t, e.EncodeFloat(1))
	require.NoError(t, e.EncodeString("Hi!"))
	require.NoError(t, e.EncodeOpaque([]byte{0x0A}))
	require.NoError(t, e.EncodeOptString(nil))

	assert.Equal(t, []byte{
		0xff, 0xff, 0xff, 0xff,
		0, 0, 0, 1,
		0x3f, 0x80, 0, 0,
		0, 0, 0, 3, 'H', 'i', '!', 0,
		0, 0, 0, 1, 0x0A, 0, 0, 0,
		0, 0, 0, 0,
	}, b.Bytes())

	d := NewDecoder(&singleByteReader{bytes.NewReader(b.Bytes())})
	i, err := d.DecodeInt()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), i)
	v, err := d.DecodeBool()
	require.NoError(t, err)
	assert.True(t, v)
	f, err := d.DecodeFloat()
	require.NoError(t, err)
	assert.Equal(t, float32(1), f)
	s, err := d.DecodeString(4)
	require.NoError(t, err)
	assert.Equal(t, "Hi!", s)
	o, err := d.DecodeOpaque(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0A}, o)
	sp, err := d.DecodeOptString(4)
	require.NoError(t, err)
	assert.Nil(t, sp)
}

func TestDecodeBoolInvalid(t *testing.T) {
	d := NewDecoder(bytes.NewReader([]byte{0, 0, 0, 2}))
	_, err := d.DecodeBool()
	assert.True(t, stderrors.Is(err, errors.ErrInvalidValue))
}

func TestDecodeStringTooLong(t *testing.T) {
	d := NewDecoder(bytes.NewReader([]byte{0, 0, 0, 5, 'H', 'e', 'l', 'l', 'o', 0, 0, 0}))
	_, err := d.DecodeString(4)
	assert.True(t, stderrors.Is(err, errors.ErrLengthExceedsMax))
}

func TestCodecsBasic(t *testing.T) {
	testcases := []testcase{
		{
			Name:    "empty archive",
			Records: []macro.Record{},
			Bytes:   header(0),
		}, {
			Name:    "WorldBegin",
			Records: []macro.Record{&macro.WorldBegin{}},
			Bytes:   cat(header(1), []byte{0, 0, 0, 6}),
		}, {
			Name:    "structure",
			Records: []macro.Record{&macro.AttributeBegin{}, &macro.AttributeEnd{}, &macro.ObjectEnd{}, &macro.ArchiveEnd{}},
			Bytes:   cat(header(4), []byte{0, 0, 0, 4, 0, 0, 0, 5, 0, 0, 0, 12, 0, 0, 0, 15}),
		}, {
			Name:    "ObjectInstance",
			Records: []macro.Record{&macro.ObjectInstance{Name: "obj"}},
			Bytes:   cat(header(1), []byte{0, 0, 0, 13, 0, 0, 0, 3, 'o', 'b', 'j', 0}),
		}, {
			Name:    "Color",
			Records: []macro.Record{&macro.Color{C: []float32{1, 0, 0}}},
			Bytes: cat(header(1), []byte{
				0, 0, 0, 2,
				0, 0, 0, 3,
				0x3f, 0x80, 0, 0,
				0, 0, 0, 0,
				0, 0, 0, 0,
			}),
		}, {
			Name:    "Declare",
			Records: []macro.Record{&macro.Declare{Name: "Cs", Declaration: "varying color"}},
			Bytes: cat(header(1), []byte{
				0, 0, 0, 1,
				0, 0, 0, 2, 'C', 's', 0, 0,
				0, 0, 0, 13, 'v', 'a', 'r', 'y', 'i', 'n', 'g', ' ', 'c', 'o', 'l', 'o', 'r', 0, 0, 0,
			}),
		}, {
			Name:    "ObjectBegin keeps handle",
			Records: []macro.Record{&macro.ObjectBegin{Name: "o", Handle: 7}},
			Bytes: cat(header(1), []byte{
				0, 0, 0, 11,
				0, 0, 0, 1, 'o', 0, 0, 0,
				0, 0, 0, 7,
			}),
		}, {
			Name:    "Polygon without parameters",
			Records: []macro.Record{&macro.Polygon{NVertices: 4, Params: param.NewList()}},
			Bytes: cat(header(1), []byte{
				0, 0, 0, 9,
				0, 0, 0, 4,
				0, 0, 0, 0,
			}),
		}, {
			Name:    "ArchiveRecord",
			Records: []macro.Record{&macro.ArchiveRecord{Type: "comment", Text: "hi"}},
			Bytes: cat(header(1), []byte{
				0, 0, 0, 17,
				0, 0, 0, 7, 'c', 'o', 'm', 'm', 'e', 'n', 't', 0,
				0, 0, 0, 2, 'h', 'i', 0, 0,
			}),
		}, {
			Name:       "bad magic",
			Direction:  decodeTest,
			Bytes:      []byte{'R', 'I', 'A', 'X', 0, 0, 0, 1, 0, 0, 0, 0},
			DecErrorIs: errors.ErrInvalidValue,
		}, {
			Name:       "bad version",
			Direction:  decodeTest,
			Bytes:      []byte{'R', 'I', 'A', 'R', 0, 0, 0, 9, 0, 0, 0, 0},
			DecErrorIs: errors.ErrInvalidValue,
		}, {
			Name:       "unknown kind",
			Direction:  decodeTest,
			Bytes:      cat(header(1), []byte{0, 0, 0, 99}),
			DecErrorIs: errors.ErrUnknownRecord,
		}, {
			Name:       "invalid kind",
			Direction:  decodeTest,
			Bytes:      cat(header(1), []byte{0, 0, 0, 0}),
			DecErrorIs: errors.ErrUnknownRecord,
		}, {
			Name:       "record count too large",
			Direction:  decodeTest,
			Bytes:      []byte{'R', 'I', 'A', 'R', 0, 0, 0, 1, 0xff, 0xff, 0xff, 0xff},
			DecErrorIs: errors.ErrLengthExceedsMax,
		}, {
			Name:       "name too long",
			Direction:  decodeTest,
			Bytes:      cat(header(1), []byte{0, 0, 0, 13, 0xff, 0xff, 0xff, 0xff}),
			DecErrorIs: errors.ErrLengthExceedsMax,
		}, {
			Name:       "missing record",
			Direction:  decodeTest,
			Bytes:      header(1),
			DecErrorIs: io.EOF,
		}, {
			Name:       "unknown filter",
			Direction:  decodeTest,
			Bytes: cat(header(1), []byte{
				0, 0, 0, 10,
				0, 0, 0, 0,
				0, 0, 0, 0,
				0, 0, 0, 0,
				0, 0, 0, 0,
				0, 0, 0, 3, 'z', 'i', 'p', 0,
			}),
			DecErrorIs: errors.ErrUnknownFilter,
		},
	}

	runTestcases(t, testcases)
}

func sampleList(t *testing.T, d *dict.Dictionary) *param.List {
	t.Helper()
	sz := param.Sizing{
		Counts:       decl.Counts{Vertices: 4, Corners: 4, Facets: 1, FaceVertices: 4, FaceCorners: 4},
		ColorSamples: 3,
	}
	l, err := param.Build(d, sz,
		param.Pair{Name: "Cs", Value: []float32{1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 1, 1}},
		param.Pair{Name: "uniform integer[2] ids", Value: []int32{3, -4}},
		param.Pair{Name: "uniform string[2] labels", Value: []*string{strp("a"), nil}},
		param.Pair{Name: "width", Value: nil},
	)
	require.NoError(t, err)
	return l
}

func strp(s string) *string {
	return &s
}

func assertListsEqual(t *testing.T, want, got *param.List) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	for i, w := range want.Params() {
		g := got.At(i)
		assert.Equal(t, w.Declaration().FullName(), g.Declaration().FullName())
		assert.Equal(t, w.Token(), g.Token())
		assert.Equal(t, w.Declaration().IsDefault(), g.Declaration().IsDefault())
		assert.Equal(t, w.Declaration().IsInline(), g.Declaration().IsInline())
		assert.Equal(t, w.Counts(), g.Counts())
		assert.Equal(t, w.ColorSamples(), g.ColorSamples())
		assert.Equal(t, w.Position(), g.Position())
		assert.Equal(t, w.IsEmpty(), g.IsEmpty())
		assert.Equal(t, w.ByteSize(), g.ByteSize())
		assert.Equal(t, w.Value(), g.Value())
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	in := token.New()
	d := dict.New(in)
	d.DeclareDefaults()
	l := sampleList(t, d)

	tbl := filter.NewTable(mustFilter(t, filter.Gaussian), 2, 2, 8)
	orig := archiveOf(
		&macro.Declare{Name: "Cs", Declaration: "varying color"},
		&macro.WorldBegin{},
		&macro.Attribute{Name: "identifier", Params: l},
		&macro.Sphere{Radius: 1, ZMin: -1, ZMax: 1, ThetaMax: 360, Params: l},
		&macro.MakeTexture{Pic: "a.tif", Tex: "a.tx", SWrap: "periodic", TWrap: "black",
			Filter: tbl, SWidth: 2, TWidth: 2, Params: l},
		&macro.MakeTexture{Pic: "b.tif", Tex: "b.tx", Params: param.NewList()},
		&macro.ArchiveBegin{Name: "inline", Params: l, Handle: 3},
		&macro.ReadArchive{Name: "inc.rib", Params: param.NewList()},
		&macro.ArchiveEnd{},
		&macro.WorldEnd{},
	)

	buf, err := Marshal(orig)
	require.NoError(t, err)
	assert.Zero(t, len(buf)%4, "encoding is 4-byte aligned")

	got, err := Unmarshal(buf, in)
	require.NoError(t, err)
	require.Equal(t, orig.Kinds(), got.Kinds())

	for i := 0; i < orig.Len(); i++ {
		assertListsEqual(t, macro.Params(orig.At(i)), macro.Params(got.At(i)))
	}

	mt := got.At(4).(*macro.MakeTexture)
	assert.Equal(t, filter.Gaussian, mt.Filter.Name())
	assert.Equal(t, float32(1), mt.Filter.Filter(0, 0, 2, 2))
	assert.Equal(t, "black", mt.TWrap)
	assert.Nil(t, got.At(5).(*macro.MakeTexture).Filter)
	assert.Equal(t, uint32(3), uint32(got.At(6).(*macro.ArchiveBegin).Handle))
	assert.Equal(t, float32(360), got.At(3).(*macro.Sphere).ThetaMax)

	// Re-encoding the decoded archive gives the same bytes
	again, err := Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, buf, again)
}

func TestStringWithNUL(t *testing.T) {
	in := token.New()
	d := dict.New(in)
	sz := param.Sizing{Counts: decl.Counts{Facets: 1}, ColorSamples: 3}
	l, err := param.Build(d, sz,
		param.Pair{Name: "uniform string[2] names", Value: []*string{strp("a\x00b"), nil}},
	)
	require.NoError(t, err)

	buf, err := Marshal(archiveOf(&macro.Attribute{Name: "user", Params: l}))
	require.NoError(t, err)
	got, err := Unmarshal(buf, in)
	require.NoError(t, err)

	p := macro.Params(got.At(0)).At(0)
	s, ok := p.StringAt(0)
	assert.True(t, ok)
	assert.Equal(t, "a\x00b", s)
	_, ok = p.StringAt(1)
	assert.False(t, ok)
}

func TestDecodeIntoFreshInterner(t *testing.T) {
	d := dict.New(nil)
	d.DeclareDefaults()
	orig := archiveOf(&macro.Attribute{Name: "user", Params: sampleList(t, d)})

	buf, err := Marshal(orig)
	require.NoError(t, err)

	in := token.New()
	got, err := Unmarshal(buf, in)
	require.NoError(t, err)

	l := macro.Params(got.At(0))
	require.Equal(t, 4, l.Len())
	assert.Equal(t, []string{"Cs", "ids", "labels", "width"}, l.Names())
	assert.Equal(t, in.Find("ids"), l.At(1).Token())
	assert.True(t, l.At(1).Declaration().IsInline())
	assert.True(t, l.At(0).Declaration().IsDefault())
	assert.True(t, l.At(3).IsEmpty())

	s, ok := l.At(2).StringAt(0)
	assert.True(t, ok)
	assert.Equal(t, "a", s)
	_, ok = l.At(2).StringAt(1)
	assert.False(t, ok)
}

func TestEncodePointerParameter(t *testing.T) {
	in := token.New()
	p, err := param.NewInline(in, "uniform pointer data", param.Sizing{ColorSamples: 3}, 0, []interface{}{42})
	require.NoError(t, err)

	_, err = Marshal(archiveOf(&macro.Attribute{Name: "user", Params: param.NewList(p)}))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrNotEncodable))
	assert.Contains(t, err.Error(), "record[0]")
	assert.Contains(t, err.Error(), "params[0]")
}

func TestDecodeParameterLimit(t *testing.T) {
	d := dict.New(nil)
	d.DeclareDefaults()
	buf, err := Marshal(archiveOf(&macro.Attribute{Name: "user", Params: sampleList(t, d)}))
	require.NoError(t, err)

	lim := DefaultLimits
	lim.MaxBytes = 8
	_, err = Read(bytes.NewReader(buf), token.New(), lim)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrOutOfMemory))
}

func TestWriteUnbuffered(t *testing.T) {
	a := archiveOf(&macro.WorldBegin{}, &macro.WorldEnd{})
	w := newComparingWriter(t, bytes.NewReader(cat(header(2), []byte{0, 0, 0, 6, 0, 0, 0, 7})))
	require.NoError(t, Write(w, a))
	w.Assert()
}

func mustFilter(t *testing.T, name string) riinterfaces.FilterFunc {
	f, err := filter.ByName(name)
	require.NoError(t, err)
	return f
}
