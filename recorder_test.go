// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package ri

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.e43.eu/ri/internal/macro"
)

// callLog is a renderer which notes the Do hook of every call it receives
type callLog struct {
	NopRenderer
	calls  []string
	params map[string]*ParameterList
}

func newCallLog() *callLog {
	return &callLog{params: map[string]*ParameterList{}}
}

func (c *callLog) note(call string, params *ParameterList) {
	c.calls = append(c.calls, call)
	if params != nil {
		c.params[call] = params
	}
}

func (c *callLog) DoDeclare(name, declaration string) { c.note("Declare "+name, nil) }
func (c *callLog) DoColor(col []float32)              { c.note("Color", nil) }
func (c *callLog) DoWorldBegin()                      { c.note("WorldBegin", nil) }
func (c *callLog) DoWorldEnd()                        { c.note("WorldEnd", nil) }

func (c *callLog) DoPolygon(nvertices int, params *ParameterList) {
	c.note("Polygon", params)
}

func (c *callLog) DoSphere(radius, zmin, zmax, thetamax float32, params *ParameterList) {
	c.note("Sphere", params)
}

func (c *callLog) DoArchiveBegin(h ArchiveHandle, name string, params *ParameterList) {
	c.note("ArchiveBegin "+name, params)
}

func (c *callLog) DoArchiveEnd() { c.note("ArchiveEnd", nil) }

func newRecorder(t *testing.T, opts Options) *Recorder {
	t.Helper()
	ctx, err := NewContext(opts)
	require.NoError(t, err)
	return NewRecorder(ctx)
}

func square() []float32 {
	return []float32{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
}

func requireStatePanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		assert.True(t, errors.Is(err, ErrStateMisuse), "got %s", err)
	}()
	fn()
}

func TestRecorderPolygon(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())

	err := rec.Polygon(4,
		P("P", square()),
		P("varying color Cs", []float32{1, 0, 0, 0, 1, 0, 0, 0, 1, 1, 1, 1}),
	)
	require.NoError(t, err)
	require.Equal(t, 1, rec.Len())

	poly := rec.Archive().At(0).(*macro.Polygon)
	assert.Equal(t, 4, poly.NVertices)
	require.Equal(t, 2, poly.Params.Len())
	assert.Equal(t, []string{"P", "Cs"}, poly.Params.Names())

	cs := poly.Params.At(1)
	assert.True(t, cs.Declaration().IsInline())
	assert.Equal(t, 12, cs.Len())
	assert.Equal(t, 48, cs.ByteSize())
	assert.Equal(t, 4, cs.Counts().Corners)
	assert.Equal(t, 1, cs.Position())
}

func TestRecorderSphereSizing(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())

	require.NoError(t, rec.Sphere(1, -1, 1, 360,
		P("Kd", float32(0.5)),
		P("varying float width", []float32{1, 2, 3, 4}),
	))

	sph := rec.Archive().At(0).(*macro.Sphere)
	assert.Equal(t, float32(360), sph.ThetaMax)
	assert.Equal(t, 1, sph.Params.At(0).Len())
	assert.Equal(t, 4, sph.Params.At(1).Len())

	// A varying value with too few elements is dropped
	err := rec.Sphere(1, -1, 1, 360, P("width", []float32{1}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValueShort))
	require.Equal(t, 2, rec.Len())
	assert.Equal(t, 0, rec.Archive().At(1).(*macro.Sphere).Params.Len())
}

func TestRecorderDeclare(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())
	ctx := rec.Context()

	tok, err := rec.Declare("foo", "varying float[2]")
	require.NoError(t, err)
	assert.Equal(t, ctx.Interner().Find("foo"), tok)

	d, ok := ctx.Find("foo")
	require.True(t, ok)
	assert.Equal(t, 2, d.Cardinality())

	_, err = rec.Declare("bar", "varying float[0]")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))
	assert.Equal(t, 1, rec.Len())

	_, ok = ctx.Find("bar")
	assert.False(t, ok)

	// The new declaration sizes later parameters
	require.NoError(t, rec.Polygon(3, P("foo", []float32{1, 2, 3, 4, 5, 6})))
	assert.Equal(t, 6, rec.Archive().At(1).(*macro.Polygon).Params.At(0).Len())
}

func TestRecorderBadParameters(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())

	err := rec.Attribute("identifier",
		P("name", "ball"),
		P("nosuch", float32(1)),
		P("uniform float", float32(1)),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDeclaration))
	assert.True(t, errors.Is(err, ErrSyntax))

	var perr ParameterError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Position)
	assert.Equal(t, "nosuch", perr.Name)

	// The call is still recorded with the good parameter
	require.Equal(t, 1, rec.Len())
	attr := rec.Archive().At(0).(*macro.Attribute)
	assert.Equal(t, "identifier", attr.Name)
	assert.Equal(t, []string{"name"}, attr.Params.Names())
	assert.Equal(t, []string{"ball"}, attr.Params.At(0).Strings())
}

func TestRecorderOutOfMemory(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxParameterBytes = 16
	rec := newRecorder(t, opts)

	err := rec.Polygon(4, P("P", square()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfMemory))
	assert.False(t, errors.Is(err, ErrSyntax))
	assert.Equal(t, 0, rec.Len())

	require.NoError(t, rec.Polygon(1, P("Kd", float32(1))))
	assert.Equal(t, 1, rec.Len())
}

func TestRecorderColor(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())

	require.NoError(t, rec.Color([]float32{1, 0.5, 0.25}))
	assert.Equal(t, []float32{1, 0.5, 0.25}, rec.Archive().At(0).(*macro.Color).C)

	err := rec.Color([]float32{1, 0.5})
	assert.True(t, errors.Is(err, ErrValueShort))
	assert.Equal(t, 1, rec.Len())

	require.NoError(t, rec.Context().SetColorSamples(1))
	require.NoError(t, rec.Color([]float32{1, 0.5}))
	assert.Equal(t, []float32{1}, rec.Archive().At(1).(*macro.Color).C)
}

func TestRecorderPolygonNoVertices(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())
	err := rec.Polygon(0)
	assert.True(t, errors.Is(err, ErrValueShort))
	assert.Equal(t, 0, rec.Len())
}

func TestRecorderArchiveScope(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())
	ctx := rec.Context()

	_, err := rec.Declare("outer", "uniform float")
	require.NoError(t, err)

	require.NoError(t, rec.ArchiveBegin("inline", P("uniform string tag", "x")))
	assert.Equal(t, 1, rec.Depth())

	_, err = rec.Declare("inner", "uniform float")
	require.NoError(t, err)
	_, err = rec.Declare("outer", "varying point")
	require.NoError(t, err)

	d, _ := ctx.Find("outer")
	assert.Equal(t, "varying point", d.Spec())

	rec.ArchiveEnd()
	assert.Equal(t, 0, rec.Depth())

	_, ok := ctx.Find("inner")
	assert.False(t, ok)
	d, ok = ctx.Find("outer")
	require.True(t, ok)
	assert.Equal(t, "uniform float", d.Spec())

	requireStatePanic(t, rec.ArchiveEnd)
}

func TestRecorderEnd(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())
	ctx := rec.Context()

	_, err := rec.Declare("mine", "uniform float")
	require.NoError(t, err)
	require.NoError(t, rec.ArchiveBegin("left open"))

	a := rec.End()
	assert.Equal(t, 0, rec.Depth())
	assert.Equal(t, []Kind{macro.KindDeclare, macro.KindArchiveBegin, macro.KindArchiveEnd}, a.Kinds())

	_, ok := ctx.Find("mine")
	assert.False(t, ok)
	_, ok = ctx.Find("P")
	assert.True(t, ok)
}

func TestRecorderReadArchive(t *testing.T) {
	opts := DefaultOptions()
	opts.BaseURI = "file:///scenes/main.rib"
	rec := newRecorder(t, opts)

	require.NoError(t, rec.ReadArchive("inc/../lib/chair.rib"))
	assert.Equal(t, "file:///scenes/lib/chair.rib", rec.Archive().At(0).(*macro.ReadArchive).Name)

	err := rec.ReadArchive("http://a b")
	assert.True(t, errors.Is(err, ErrInvalidURI))
	assert.Equal(t, 1, rec.Len())

	// Without a base the name is kept as given
	plain := newRecorder(t, DefaultOptions())
	require.NoError(t, plain.ReadArchive("inc/../lib/chair.rib"))
	assert.Equal(t, "inc/../lib/chair.rib", plain.Archive().At(0).(*macro.ReadArchive).Name)
}

func TestRecorderReadArchiveFileNames(t *testing.T) {
	tcs := []struct {
		Name string
		Base string
		Want string
	}{
		{`C:\scenes\a.rib`, "", "file:///C:/scenes/a.rib"},
		{"my scene.rib", "", "my%20scene.rib"},
		{`C:\scenes\a.rib`, "file:///scenes/", "file:///C:/scenes/a.rib"},
		{"my scene.rib", "file:///scenes/", "file:///scenes/my%20scene.rib"},
		{"../my scene.rib", "file:///scenes/cur/", "file:///scenes/my%20scene.rib"},
	}

	for _, tc := range tcs {
		t.Run(tc.Name+" "+tc.Base, func(t *testing.T) {
			opts := DefaultOptions()
			opts.BaseURI = tc.Base
			rec := newRecorder(t, opts)

			require.NoError(t, rec.ReadArchive(tc.Name))
			require.Equal(t, 1, rec.Len())
			assert.Equal(t, tc.Want, rec.Archive().At(0).(*macro.ReadArchive).Name)
		})
	}
}

func TestRecorderMakeTexture(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())
	f, err := FilterByName("gaussian")
	require.NoError(t, err)

	require.NoError(t, rec.MakeTexture("in.tif", "out.tex", "periodic", "clamp", f, 2, 2))
	tex := rec.Archive().At(0).(*macro.MakeTexture)
	assert.Equal(t, "gaussian", tex.Filter.Name())
	assert.Equal(t, "clamp", tex.TWrap)
}

func TestRecorderSnapshot(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())
	rec.WorldBegin()
	a := rec.Archive()
	rec.WorldEnd()

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, rec.Len())
}

func TestRecorderReplay(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())
	_, err := rec.Declare("foo", "uniform float")
	require.NoError(t, err)
	require.NoError(t, rec.Color([]float32{1, 1, 1}))
	rec.WorldBegin()
	require.NoError(t, rec.ArchiveBegin("part"))
	require.NoError(t, rec.Polygon(4, P("P", square())))
	rec.ArchiveEnd()
	require.NoError(t, rec.Sphere(1, -1, 1, 360))
	rec.WorldEnd()

	log := newCallLog()
	rec.Replay(log, nil)
	assert.Equal(t, []string{
		"Declare foo",
		"Color",
		"WorldBegin",
		"ArchiveBegin part",
		"Polygon",
		"ArchiveEnd",
		"Sphere",
		"WorldEnd",
	}, log.calls)

	p, ok := log.params["Polygon"].Find(rec.Context().Interner().Find("P"))
	require.True(t, ok)
	assert.Equal(t, square(), p.Floats())
}

func TestRecorderLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := MustNewContext(DefaultOptions()).WithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))
	rec := NewRecorder(ctx)

	_, err := rec.Declare("bad", "varying float[0]")
	require.Error(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, `"level":"warn"`), out)
	assert.True(t, strings.Contains(out, `"call":"Declare"`), out)
	assert.True(t, strings.Contains(out, `"name":"bad"`), out)

	// Debug events are below the configured level
	buf.Reset()
	rec.ArchiveBegin("x")
	rec.ArchiveEnd()
	assert.Equal(t, "", buf.String())
}

func TestRecorderBinaryRoundTrip(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())
	_, err := rec.Declare("foo", "varying float[2]")
	require.NoError(t, err)
	require.NoError(t, rec.Polygon(3,
		P("foo", []float32{1, 2, 3, 4, 5, 6}),
		P("uniform string label", "tri"),
	))
	rec.ArchiveRecord("comment", "done")

	buf, err := MarshalArchive(rec.Archive())
	require.NoError(t, err)

	other := MustNewContext(DefaultOptions())
	a, err := other.UnmarshalArchive(buf)
	require.NoError(t, err)
	assert.Equal(t, rec.Archive().Kinds(), a.Kinds())

	poly := a.At(1).(*macro.Polygon)
	assert.Equal(t, []string{"foo", "label"}, poly.Params.Names())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, poly.Params.At(0).Floats())
	assert.True(t, other.Interner().Owns(poly.Params.At(0).Token()))

	var w bytes.Buffer
	require.NoError(t, WriteArchive(&w, a))
	assert.Equal(t, buf, w.Bytes())
}

func TestRecorderStructure(t *testing.T) {
	rec := newRecorder(t, DefaultOptions())
	rec.ObjectBegin("tree")
	rec.AttributeBegin()
	rec.AttributeEnd()
	rec.ObjectEnd()
	rec.ObjectInstance("tree")
	rec.ArchiveRecord("structure", "Scene tree")

	assert.Equal(t, []Kind{
		macro.KindObjectBegin,
		macro.KindAttributeBegin,
		macro.KindAttributeEnd,
		macro.KindObjectEnd,
		macro.KindObjectInstance,
		macro.KindArchiveRecord,
	}, rec.Archive().Kinds())
	assert.Equal(t, "tree", rec.Archive().At(4).(*macro.ObjectInstance).Name)
}
