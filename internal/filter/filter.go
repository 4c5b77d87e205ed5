// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package filter provides the standard pixel filter functions
package filter

import (
	"math"

	riinterfaces "go.e43.eu/ri/interfaces"
	"go.e43.eu/ri/internal/errors"
)

// Standard filter names
const (
	Box                 = "box"
	Triangle            = "triangle"
	CatmullRom          = "catmull-rom"
	BSpline             = "b-spline"
	Gaussian            = "gaussian"
	Sinc                = "sinc"
	SeparableCatmullRom = "separable-catmull-rom"
	Disk                = "disk"
)

type builtin struct {
	name string
	fn   func(x, y, xwidth, ywidth float64) float64
}

func (b *builtin) Name() string {
	return b.name
}

func (b *builtin) Filter(x, y, xwidth, ywidth float32) float32 {
	return float32(b.fn(float64(x), float64(y), float64(xwidth), float64(ywidth)))
}

var builtins = map[string]*builtin{
	Box:                 {Box, boxFilter},
	Triangle:            {Triangle, triangleFilter},
	CatmullRom:          {CatmullRom, catmullRomFilter},
	BSpline:             {BSpline, bSplineFilter},
	Gaussian:            {Gaussian, gaussianFilter},
	Sinc:                {Sinc, sincFilter},
	SeparableCatmullRom: {SeparableCatmullRom, separableCatmullRomFilter},
	Disk:                {Disk, diskFilter},
}

// ByName returns the standard filter called name
func ByName(name string) (riinterfaces.FilterFunc, error) {
	if f, ok := builtins[name]; ok {
		return f, nil
	}
	return nil, errors.WithFieldError(errors.ErrUnknownFilter, name)
}

// Names returns the names of the standard filters
func Names() []string {
	return []string{Box, Triangle, CatmullRom, BSpline, Gaussian, Sinc, SeparableCatmullRom, Disk}
}

// Clone returns an independent copy of f if it holds state, and f itself
// otherwise
func Clone(f riinterfaces.FilterFunc) riinterfaces.FilterFunc {
	if c, ok := f.(riinterfaces.FilterCloner); ok {
		return c.Clone()
	}
	return f
}

func boxFilter(x, y, xwidth, ywidth float64) float64 {
	return 1
}

func triangleFilter(x, y, xwidth, ywidth float64) float64 {
	hx, hy := xwidth/2, ywidth/2
	fx := 1 - math.Abs(x)/hx
	fy := 1 - math.Abs(y)/hy
	if fx <= 0 || fy <= 0 {
		return 0
	}
	return fx * fy
}

func catmullRom1(t float64) float64 {
	t = math.Abs(t)
	switch {
	case t < 1:
		return 1.5*t*t*t - 2.5*t*t + 1
	case t < 2:
		return -0.5*t*t*t + 2.5*t*t - 4*t + 2
	default:
		return 0
	}
}

// catmullRomFilter is radially symmetric over r = |(x, y)|
func catmullRomFilter(x, y, xwidth, ywidth float64) float64 {
	return catmullRom1(math.Sqrt(x*x + y*y))
}

func separableCatmullRomFilter(x, y, xwidth, ywidth float64) float64 {
	return catmullRom1(x*4/xwidth) * catmullRom1(y*4/ywidth)
}

// bSpline1 is the cubic B-spline basis scaled to 1 at the origin
func bSpline1(t float64) float64 {
	t = math.Abs(t)
	switch {
	case t < 1:
		return (3*t*t*t - 6*t*t + 4) / 4
	case t < 2:
		u := 2 - t
		return u * u * u / 4
	default:
		return 0
	}
}

func bSplineFilter(x, y, xwidth, ywidth float64) float64 {
	return bSpline1(x*4/xwidth) * bSpline1(y*4/ywidth)
}

func gaussianFilter(x, y, xwidth, ywidth float64) float64 {
	x = 2 * x / xwidth
	y = 2 * y / ywidth
	return math.Exp(-2 * (x*x + y*y))
}

func sinc1(t float64) float64 {
	if t == 0 {
		return 1
	}
	t *= math.Pi
	return math.Sin(t) / t
}

func sincFilter(x, y, xwidth, ywidth float64) float64 {
	return sinc1(x) * sinc1(y)
}

func diskFilter(x, y, xwidth, ywidth float64) float64 {
	x = 2 * x / xwidth
	y = 2 * y / ywidth
	if x*x+y*y < 1 {
		return 1
	}
	return 0
}
