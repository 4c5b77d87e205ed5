// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xerrors "go.e43.eu/ri/internal/errors"
)

func TestByName(t *testing.T) {
	for _, name := range Names() {
		f, err := ByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, f.Name())
	}

	_, err := ByName("mitchell")
	assert.True(t, errors.Is(err, xerrors.ErrUnknownFilter))
}

func TestCenterValues(t *testing.T) {
	for _, name := range Names() {
		f, _ := ByName(name)
		assert.InDelta(t, 1.0, f.Filter(0, 0, 2, 2), 1e-6, name)
	}
}

func TestSupport(t *testing.T) {
	for _, tc := range []struct {
		name string
		x, y float32
		want float32
	}{
		{Box, 5, 5, 1},
		{Triangle, 1, 0, 0},
		{Triangle, 0.5, 0, 0.5},
		{CatmullRom, 2, 0, 0},
		{CatmullRom, 1, 0, 0},
		{SeparableCatmullRom, 1, 0, 0},
		{BSpline, 1, 0, 0},
		{Disk, 0.9, 0, 1},
		{Disk, 0.8, 0.8, 0},
		{Sinc, 1, 0, 0},
	} {
		f, _ := ByName(tc.name)
		assert.InDelta(t, tc.want, f.Filter(tc.x, tc.y, 2, 2), 1e-6, "%s(%v, %v)", tc.name, tc.x, tc.y)
	}
}

func TestSymmetric(t *testing.T) {
	for _, name := range Names() {
		f, _ := ByName(name)
		assert.InDelta(t, f.Filter(0.3, 0.2, 2, 2), f.Filter(-0.3, -0.2, 2, 2), 1e-6, name)
	}
}

func TestCloneBuiltinIsShared(t *testing.T) {
	f, _ := ByName(Gaussian)
	assert.Same(t, f, Clone(f))
}

func TestTable(t *testing.T) {
	g, _ := ByName(Gaussian)
	tab := NewTable(g, 2, 2, 8)
	assert.Equal(t, Gaussian, tab.Name())
	assert.InDelta(t, g.Filter(0.125, 0.125, 2, 2), tab.Filter(0.1, 0.1, 2, 2), 1e-6)
	assert.Equal(t, float32(0), tab.Filter(1.5, 0, 2, 2))
	assert.Equal(t, float32(0), tab.Filter(-1.5, 0, 2, 2))

	c := Clone(tab).(*Table)
	tab.Set(4, 4, 42)
	assert.Equal(t, float32(42), tab.Filter(0.1, 0.1, 2, 2))
	assert.NotEqual(t, float32(42), c.Filter(0.1, 0.1, 2, 2), "clone must not share samples")
}

func TestTableResolution(t *testing.T) {
	g, _ := ByName(Box)
	assert.Panics(t, func() { NewTable(g, 2, 2, 0) })
}
