// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package filter

import (
	"fmt"

	riinterfaces "go.e43.eu/ri/interfaces"
)

// Table is a filter tabulated over a fixed support. Evaluation reads the
// nearest sample; offsets outside the support evaluate to zero.
type Table struct {
	name           string
	xwidth, ywidth float32
	res            int
	samples        []float32
}

var _ riinterfaces.FilterCloner = (*Table)(nil)

// NewTable samples f on a res × res grid covering xwidth × ywidth
func NewTable(f riinterfaces.FilterFunc, xwidth, ywidth float32, res int) *Table {
	if res < 1 {
		panic(fmt.Sprintf("filter table resolution %d", res))
	}

	t := &Table{
		name:    f.Name(),
		xwidth:  xwidth,
		ywidth:  ywidth,
		res:     res,
		samples: make([]float32, res*res),
	}
	for j := 0; j < res; j++ {
		y := (float32(j)+0.5)/float32(res)*ywidth - ywidth/2
		for i := 0; i < res; i++ {
			x := (float32(i)+0.5)/float32(res)*xwidth - xwidth/2
			t.samples[j*res+i] = f.Filter(x, y, xwidth, ywidth)
		}
	}
	return t
}

// Name returns the name of the tabulated filter
func (t *Table) Name() string {
	return t.name
}

// Filter evaluates the table; the widths passed are ignored in favour of
// those the table was built for
func (t *Table) Filter(x, y, xwidth, ywidth float32) float32 {
	i := int((x + t.xwidth/2) / t.xwidth * float32(t.res))
	j := int((y + t.ywidth/2) / t.ywidth * float32(t.res))
	if x < -t.xwidth/2 || y < -t.ywidth/2 || i < 0 || j < 0 || i >= t.res || j >= t.res {
		return 0
	}
	return t.samples[j*t.res+i]
}

// Clone returns a copy of t sharing no samples with it
func (t *Table) Clone() riinterfaces.FilterFunc {
	n := *t
	n.samples = append([]float32(nil), t.samples...)
	return &n
}

// Set overwrites one sample
func (t *Table) Set(i, j int, v float32) {
	t.samples[j*t.res+i] = v
}
