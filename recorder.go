// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package ri

import (
	stderrors "errors"

	"go.e43.eu/ri/internal/errors"
	"go.e43.eu/ri/internal/filter"
	"go.e43.eu/ri/internal/macro"
)

// Counts for calls which are not attached to a primitive: every class holds
// a single element
var unitCounts = Counts{Vertices: 1, Corners: 1, Facets: 1, FaceVertices: 1, FaceCorners: 1}

// P is shorthand for a parameter argument
func P(name string, value interface{}) Pair {
	return Pair{Name: name, Value: value}
}

// Recorder captures interface calls as records appended to an archive.
// Parameter lists are built against the context's dictionary at the time of
// the call.
//
// A call whose parameters fail keeps the parameters which succeeded and
// returns the joined failures. A call which cannot be recorded at all (a
// malformed Declare, an unresolvable archive name, a parameter too large to
// allocate) appends nothing.
type Recorder struct {
	ctx     *Context
	archive *macro.Archive

	// Names of the open archive blocks, innermost last
	blocks []string
}

// NewRecorder returns a recorder appending to a new, empty archive
func NewRecorder(ctx *Context) *Recorder {
	return &Recorder{ctx: ctx, archive: macro.NewArchive()}
}

// Context returns the context the recorder builds parameters against
func (r *Recorder) Context() *Context {
	return r.ctx
}

// Archive returns a snapshot of the records captured so far. Later calls do
// not change the returned archive.
func (r *Recorder) Archive() *Archive {
	return r.archive.Snapshot()
}

// Len returns the number of captured records
func (r *Recorder) Len() int {
	return r.archive.Len()
}

// Depth returns the number of archive blocks opened by ArchiveBegin which
// have not been closed
func (r *Recorder) Depth() int {
	return len(r.blocks)
}

// Replay processes every captured record in order against rend
func (r *Recorder) Replay(rend Renderer, cb ArchiveCallback) {
	r.archive.Replay(rend, cb)
}

func (r *Recorder) params(call string, n Counts, args []Pair) (*ParameterList, error) {
	l, err := r.ctx.Params(n, args...)
	if err == nil {
		return l, nil
	}

	log := r.ctx.Logger()
	if stderrors.Is(err, ErrOutOfMemory) {
		log.Error().Str("call", call).Err(err).Msg("call dropped")
		return nil, err
	}
	log.Warn().Str("call", call).Err(err).Msg("parameters dropped")
	return l, err
}

func (r *Recorder) record(rec macro.Record) {
	r.archive.Append(rec)
}

// Declare enters name into the dictionary with the declaration spec and
// records the call
func (r *Recorder) Declare(name, spec string) (Token, error) {
	t, err := r.ctx.Declare(name, spec)
	if err != nil {
		r.ctx.Logger().Warn().Str("call", "Declare").Str("name", name).Err(err).Msg("call dropped")
		return t, err
	}
	r.record(&macro.Declare{Name: name, Declaration: spec})
	return t, nil
}

// Color records the current color. c must hold one component per color
// sample; any further components are ignored.
func (r *Recorder) Color(c []float32) error {
	n := r.ctx.ColorSamples()
	if len(c) < n {
		err := errors.ShortValue(n, len(c))
		r.ctx.Logger().Warn().Str("call", "Color").Err(err).Msg("call dropped")
		return err
	}
	r.record(&macro.Color{C: append([]float32(nil), c[:n]...)})
	return nil
}

// Attribute records the attribute name with the given parameters
func (r *Recorder) Attribute(name string, args ...Pair) error {
	l, err := r.params("Attribute", unitCounts, args)
	if l != nil {
		r.record(&macro.Attribute{Name: name, Params: l})
	}
	return err
}

func (r *Recorder) AttributeBegin() { r.record(&macro.AttributeBegin{}) }
func (r *Recorder) AttributeEnd()   { r.record(&macro.AttributeEnd{}) }
func (r *Recorder) WorldBegin()     { r.record(&macro.WorldBegin{}) }
func (r *Recorder) WorldEnd()       { r.record(&macro.WorldEnd{}) }

// Sphere records a sphere. Its parameters are sized as a bilinear patch:
// one uniform element and four varying, vertex and face elements.
func (r *Recorder) Sphere(radius, zmin, zmax, thetamax float32, args ...Pair) error {
	n := Counts{Vertices: 4, Corners: 4, Facets: 1, FaceVertices: 4, FaceCorners: 4}
	l, err := r.params("Sphere", n, args)
	if l != nil {
		r.record(&macro.Sphere{Radius: radius, ZMin: zmin, ZMax: zmax, ThetaMax: thetamax, Params: l})
	}
	return err
}

// Polygon records a convex polygon of nvertices vertices
func (r *Recorder) Polygon(nvertices int, args ...Pair) error {
	if nvertices < 1 {
		err := &errors.ValueError{Kind: errors.ErrValueShort, Want: "at least 1 vertex", Got: "0"}
		r.ctx.Logger().Warn().Str("call", "Polygon").Err(err).Msg("call dropped")
		return err
	}

	n := Counts{
		Vertices:     nvertices,
		Corners:      nvertices,
		Facets:       1,
		FaceVertices: nvertices,
		FaceCorners:  nvertices,
	}
	l, err := r.params("Polygon", n, args)
	if l != nil {
		r.record(&macro.Polygon{NVertices: nvertices, Params: l})
	}
	return err
}

// MakeTexture records a texture conversion. The record owns a clone of
// filter.
func (r *Recorder) MakeTexture(pic, tex, swrap, twrap string, f FilterFunc, swidth, twidth float32, args ...Pair) error {
	l, err := r.params("MakeTexture", unitCounts, args)
	if l == nil {
		return err
	}
	if f != nil {
		f = filter.Clone(f)
	}
	r.record(&macro.MakeTexture{
		Pic:    pic,
		Tex:    tex,
		SWrap:  swrap,
		TWrap:  twrap,
		Filter: f,
		SWidth: swidth,
		TWidth: twidth,
		Params: l,
	})
	return err
}

func (r *Recorder) ObjectBegin(name string)    { r.record(&macro.ObjectBegin{Name: name}) }
func (r *Recorder) ObjectEnd()                 { r.record(&macro.ObjectEnd{}) }
func (r *Recorder) ObjectInstance(name string) { r.record(&macro.ObjectInstance{Name: name}) }

// ArchiveBegin opens an inline archive block. Declarations made inside the
// block are discarded by the matching ArchiveEnd.
func (r *Recorder) ArchiveBegin(name string, args ...Pair) error {
	l, err := r.params("ArchiveBegin", unitCounts, args)
	if l == nil {
		return err
	}
	r.record(&macro.ArchiveBegin{Name: name, Params: l})
	r.ctx.Push()
	r.blocks = append(r.blocks, name)
	return err
}

// ArchiveEnd closes the innermost archive block. It panics with a StateError
// if no block is open.
func (r *Recorder) ArchiveEnd() {
	if len(r.blocks) == 0 {
		panic(errors.StateError{Op: "ArchiveEnd without ArchiveBegin"})
	}
	r.blocks = r.blocks[:len(r.blocks)-1]
	r.ctx.Pop()
	r.record(&macro.ArchiveEnd{})
}

// ReadArchive records a reference to an archive. With a base URI configured
// the recorded name is the resolved reference.
func (r *Recorder) ReadArchive(name string, args ...Pair) error {
	resolved, err := r.ctx.ResolveArchive(name)
	if err != nil {
		r.ctx.Logger().Warn().Str("call", "ReadArchive").Str("name", name).Err(err).Msg("call dropped")
		return err
	}

	l, err := r.params("ReadArchive", unitCounts, args)
	if l == nil {
		return err
	}
	r.record(&macro.ReadArchive{Name: resolved, Params: l})
	return err
}

// ArchiveRecord records a comment or structure hint
func (r *Recorder) ArchiveRecord(recordType, text string) {
	r.record(&macro.ArchiveRecord{Type: recordType, Text: text})
}

// End closes any archive blocks left open and releases every declaration
// which is not a default. It returns the archive captured so far.
func (r *Recorder) End() *Archive {
	for len(r.blocks) > 0 {
		name := r.blocks[len(r.blocks)-1]
		r.ctx.Logger().Warn().Str("call", "End").Str("name", name).Msg("archive block left open")
		r.ArchiveEnd()
	}
	r.ctx.Release()
	return r.Archive()
}
