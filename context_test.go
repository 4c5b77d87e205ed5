// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package ri

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	ctx, err := NewContext(DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, ctx.ColorSamples())
	assert.Nil(t, ctx.Resolver())

	d, ok := ctx.Find("Cs")
	require.True(t, ok)
	assert.True(t, d.IsDefault())
	assert.Equal(t, "varying color", d.Spec())

	opts := DefaultOptions()
	opts.ColorSamples = 0
	_, err = NewContext(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.BaseURI = "not a uri"
	_, err = NewContext(opts)
	assert.True(t, errors.Is(err, ErrInvalidURI))
	assert.Panics(t, func() { MustNewContext(opts) })
}

func TestContextStrictRedeclare(t *testing.T) {
	opts := DefaultOptions()
	opts.StrictRedeclare = true
	ctx := MustNewContext(opts)

	_, err := ctx.Declare("Cs", "vertex color")
	assert.True(t, errors.Is(err, ErrRedeclareDefault))

	loose := MustNewContext(DefaultOptions())
	_, err = loose.Declare("Cs", "vertex color")
	require.NoError(t, err)
	d, _ := loose.Find("Cs")
	assert.Equal(t, "vertex color", d.Spec())
}

func TestContextPushPop(t *testing.T) {
	ctx := MustNewContext(DefaultOptions())

	ctx.Push()
	_, err := ctx.Declare("temp", "uniform integer")
	require.NoError(t, err)
	_, ok := ctx.Find("temp")
	assert.True(t, ok)

	ctx.Pop()
	_, ok = ctx.Find("temp")
	assert.False(t, ok)

	requireStatePanic(t, ctx.Pop)
}

func TestContextRelease(t *testing.T) {
	ctx := MustNewContext(DefaultOptions())
	_, err := ctx.Declare("a", "uniform float")
	require.NoError(t, err)
	_, err = ctx.Declare("b", "uniform float")
	require.NoError(t, err)

	assert.Equal(t, 2, ctx.Release())
	_, ok := ctx.Find("a")
	assert.False(t, ok)
	_, ok = ctx.Find("P")
	assert.True(t, ok)
}

func TestContextColorSamples(t *testing.T) {
	ctx := MustNewContext(DefaultOptions())
	require.NoError(t, ctx.SetColorSamples(4))
	assert.Error(t, ctx.SetColorSamples(0))
	assert.Equal(t, 4, ctx.ColorSamples())

	l, err := ctx.Params(Counts{Vertices: 1, Corners: 1, Facets: 1, FaceVertices: 1, FaceCorners: 1},
		P("Cs", []float32{1, 2, 3, 4}))
	require.NoError(t, err)
	assert.Equal(t, 4, l.At(0).Len())
	assert.Equal(t, 4, l.At(0).ColorSamples())
}

func TestContextParseDeclaration(t *testing.T) {
	ctx := MustNewContext(DefaultOptions())

	d, err := ctx.ParseDeclaration("Ri:Attribute:id", "uniform string")
	require.NoError(t, err)
	assert.Equal(t, "Ri", d.Namespace())
	assert.Equal(t, "Attribute", d.Table())
	assert.Equal(t, "id", d.Var())

	_, ok := ctx.Find("Ri:Attribute:id")
	assert.False(t, ok)

	_, err = ctx.ParseDeclaration("x", "uniform float[")
	assert.True(t, errors.Is(err, ErrSyntax))
}

func TestContextResolveArchive(t *testing.T) {
	ctx := MustNewContext(DefaultOptions())
	got, err := ctx.ResolveArchive("a/b.rib")
	require.NoError(t, err)
	assert.Equal(t, "a/b.rib", got)

	// Names which are not URI references are taken as file paths
	got, err = ctx.ResolveArchive("%zz")
	require.NoError(t, err)
	assert.Equal(t, "%25zz", got)

	_, err = ctx.ResolveArchive("http://a b")
	assert.True(t, errors.Is(err, ErrInvalidURI))

	opts := DefaultOptions()
	opts.BaseURI = "http://example.com/scenes/"
	ctx = MustNewContext(opts)
	got, err = ctx.ResolveArchive("../lib/a.rib")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/lib/a.rib", got)
	assert.Equal(t, 1, ctx.Resolver().Cached())
}

func TestContextLogLevel(t *testing.T) {
	var buf bytes.Buffer
	ctx := MustNewContext(DefaultOptions()).WithLogger(zerolog.New(&buf))
	ctx.Push()
	assert.Equal(t, "", buf.String(), "debug events are below the default level")

	opts := DefaultOptions()
	opts.LogLevel = "debug"
	ctx = MustNewContext(opts).WithLogger(zerolog.New(&buf))
	ctx.Push()
	assert.Contains(t, buf.String(), "declarations pushed")
}

func TestContextReleaseAcrossPush(t *testing.T) {
	ctx := MustNewContext(DefaultOptions())
	_, err := ctx.Declare("before", "uniform float")
	require.NoError(t, err)
	ctx.Push()
	_, err = ctx.Declare("after", "uniform float")
	require.NoError(t, err)

	// Declarations from before the Push go too
	assert.Equal(t, 2, ctx.Release())
	_, ok := ctx.Find("before")
	assert.False(t, ok)
	_, ok = ctx.Find("Cs")
	assert.True(t, ok)

	ctx.Pop()
	_, ok = ctx.Find("before")
	assert.True(t, ok)
}
