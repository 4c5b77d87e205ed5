// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package macro implements records of interface calls and the archives
// which hold them for replay.
package macro

import (
	riinterfaces "go.e43.eu/ri/interfaces"
	"go.e43.eu/ri/internal/filter"
	"go.e43.eu/ri/internal/param"
)

type (
	Renderer        = riinterfaces.Renderer
	ArchiveCallback = riinterfaces.ArchiveCallback
)

// Record is one captured interface call. The set of records is closed:
// every implementation is defined in this package.
type Record interface {
	// Kind returns the call the record represents
	Kind() Kind

	// Duplicate returns a deep copy sharing no owned state with the record
	Duplicate() Record

	// PreProcess, DoProcess and PostProcess forward the call to the
	// matching hook of r
	PreProcess(r Renderer, cb ArchiveCallback)
	DoProcess(r Renderer, cb ArchiveCallback)
	PostProcess(r Renderer, cb ArchiveCallback)

	isRecord()
}

// Process runs all three phases of rec against r
func Process(rec Record, r Renderer, cb ArchiveCallback) {
	rec.PreProcess(r, cb)
	rec.DoProcess(r, cb)
	rec.PostProcess(r, cb)
}

// Params returns the parameter list of rec, or nil if its call takes none
func Params(rec Record) *param.List {
	switch r := rec.(type) {
	case *Attribute:
		return r.Params
	case *Sphere:
		return r.Params
	case *Polygon:
		return r.Params
	case *MakeTexture:
		return r.Params
	case *ArchiveBegin:
		return r.Params
	case *ReadArchive:
		return r.Params
	default:
		return nil
	}
}

type Declare struct {
	Name        string
	Declaration string
}

func (*Declare) Kind() Kind { return KindDeclare }
func (*Declare) isRecord()  {}
func (d *Declare) Duplicate() Record {
	n := *d
	return &n
}
func (d *Declare) PreProcess(r Renderer, cb ArchiveCallback) {
	r.PreDeclare(d.Name, d.Declaration)
}
func (d *Declare) DoProcess(r Renderer, cb ArchiveCallback) {
	r.DoDeclare(d.Name, d.Declaration)
}
func (d *Declare) PostProcess(r Renderer, cb ArchiveCallback) {
	r.PostDeclare(d.Name, d.Declaration)
}

// Color sets the current color. C has one entry per color sample.
type Color struct {
	C []float32
}

func (*Color) Kind() Kind { return KindColor }
func (*Color) isRecord()  {}
func (c *Color) Duplicate() Record {
	return &Color{C: append([]float32(nil), c.C...)}
}
func (c *Color) PreProcess(r Renderer, cb ArchiveCallback)  { r.PreColor(c.C) }
func (c *Color) DoProcess(r Renderer, cb ArchiveCallback)   { r.DoColor(c.C) }
func (c *Color) PostProcess(r Renderer, cb ArchiveCallback) { r.PostColor(c.C) }

type Attribute struct {
	Name   string
	Params *param.List
}

func (*Attribute) Kind() Kind { return KindAttribute }
func (*Attribute) isRecord()  {}
func (a *Attribute) Duplicate() Record {
	return &Attribute{Name: a.Name, Params: a.Params.Duplicate()}
}
func (a *Attribute) PreProcess(r Renderer, cb ArchiveCallback) {
	r.PreAttribute(a.Name, a.Params)
}
func (a *Attribute) DoProcess(r Renderer, cb ArchiveCallback) {
	r.DoAttribute(a.Name, a.Params)
}
func (a *Attribute) PostProcess(r Renderer, cb ArchiveCallback) {
	r.PostAttribute(a.Name, a.Params)
}

type AttributeBegin struct{}

func (*AttributeBegin) Kind() Kind                                 { return KindAttributeBegin }
func (*AttributeBegin) isRecord()                                  {}
func (*AttributeBegin) Duplicate() Record                          { return &AttributeBegin{} }
func (*AttributeBegin) PreProcess(r Renderer, cb ArchiveCallback)  { r.PreAttributeBegin() }
func (*AttributeBegin) DoProcess(r Renderer, cb ArchiveCallback)   { r.DoAttributeBegin() }
func (*AttributeBegin) PostProcess(r Renderer, cb ArchiveCallback) { r.PostAttributeBegin() }

type AttributeEnd struct{}

func (*AttributeEnd) Kind() Kind                                 { return KindAttributeEnd }
func (*AttributeEnd) isRecord()                                  {}
func (*AttributeEnd) Duplicate() Record                          { return &AttributeEnd{} }
func (*AttributeEnd) PreProcess(r Renderer, cb ArchiveCallback)  { r.PreAttributeEnd() }
func (*AttributeEnd) DoProcess(r Renderer, cb ArchiveCallback)   { r.DoAttributeEnd() }
func (*AttributeEnd) PostProcess(r Renderer, cb ArchiveCallback) { r.PostAttributeEnd() }

type WorldBegin struct{}

func (*WorldBegin) Kind() Kind                                 { return KindWorldBegin }
func (*WorldBegin) isRecord()                                  {}
func (*WorldBegin) Duplicate() Record                          { return &WorldBegin{} }
func (*WorldBegin) PreProcess(r Renderer, cb ArchiveCallback)  { r.PreWorldBegin() }
func (*WorldBegin) DoProcess(r Renderer, cb ArchiveCallback)   { r.DoWorldBegin() }
func (*WorldBegin) PostProcess(r Renderer, cb ArchiveCallback) { r.PostWorldBegin() }

type WorldEnd struct{}

func (*WorldEnd) Kind() Kind                                 { return KindWorldEnd }
func (*WorldEnd) isRecord()                                  {}
func (*WorldEnd) Duplicate() Record                          { return &WorldEnd{} }
func (*WorldEnd) PreProcess(r Renderer, cb ArchiveCallback)  { r.PreWorldEnd() }
func (*WorldEnd) DoProcess(r Renderer, cb ArchiveCallback)   { r.DoWorldEnd() }
func (*WorldEnd) PostProcess(r Renderer, cb ArchiveCallback) { r.PostWorldEnd() }

type Sphere struct {
	Radius, ZMin, ZMax, ThetaMax float32
	Params                       *param.List
}

func (*Sphere) Kind() Kind { return KindSphere }
func (*Sphere) isRecord()  {}
func (s *Sphere) Duplicate() Record {
	n := *s
	n.Params = s.Params.Duplicate()
	return &n
}
func (s *Sphere) PreProcess(r Renderer, cb ArchiveCallback) {
	r.PreSphere(s.Radius, s.ZMin, s.ZMax, s.ThetaMax, s.Params)
}
func (s *Sphere) DoProcess(r Renderer, cb ArchiveCallback) {
	r.DoSphere(s.Radius, s.ZMin, s.ZMax, s.ThetaMax, s.Params)
}
func (s *Sphere) PostProcess(r Renderer, cb ArchiveCallback) {
	r.PostSphere(s.Radius, s.ZMin, s.ZMax, s.ThetaMax, s.Params)
}

type Polygon struct {
	NVertices int
	Params    *param.List
}

func (*Polygon) Kind() Kind { return KindPolygon }
func (*Polygon) isRecord()  {}
func (p *Polygon) Duplicate() Record {
	return &Polygon{NVertices: p.NVertices, Params: p.Params.Duplicate()}
}
func (p *Polygon) PreProcess(r Renderer, cb ArchiveCallback) {
	r.PrePolygon(p.NVertices, p.Params)
}
func (p *Polygon) DoProcess(r Renderer, cb ArchiveCallback) {
	r.DoPolygon(p.NVertices, p.Params)
}
func (p *Polygon) PostProcess(r Renderer, cb ArchiveCallback) {
	r.PostPolygon(p.NVertices, p.Params)
}

// MakeTexture owns its filter function: duplicating the record clones a
// stateful filter
type MakeTexture struct {
	Pic, Tex       string
	SWrap, TWrap   string
	Filter         riinterfaces.FilterFunc
	SWidth, TWidth float32
	Params         *param.List
}

func (*MakeTexture) Kind() Kind { return KindMakeTexture }
func (*MakeTexture) isRecord()  {}
func (m *MakeTexture) Duplicate() Record {
	n := *m
	if m.Filter != nil {
		n.Filter = filter.Clone(m.Filter)
	}
	n.Params = m.Params.Duplicate()
	return &n
}
func (m *MakeTexture) PreProcess(r Renderer, cb ArchiveCallback) {
	r.PreMakeTexture(m.Pic, m.Tex, m.SWrap, m.TWrap, m.Filter, m.SWidth, m.TWidth, m.Params)
}
func (m *MakeTexture) DoProcess(r Renderer, cb ArchiveCallback) {
	r.DoMakeTexture(m.Pic, m.Tex, m.SWrap, m.TWrap, m.Filter, m.SWidth, m.TWidth, m.Params)
}
func (m *MakeTexture) PostProcess(r Renderer, cb ArchiveCallback) {
	r.PostMakeTexture(m.Pic, m.Tex, m.SWrap, m.TWrap, m.Filter, m.SWidth, m.TWidth, m.Params)
}

// ObjectBegin starts a retained object. Handle is assigned by the renderer
// in PreProcess and reused by DoProcess and PostProcess.
type ObjectBegin struct {
	Name   string
	Handle riinterfaces.ObjectHandle
}

func (*ObjectBegin) Kind() Kind { return KindObjectBegin }
func (*ObjectBegin) isRecord()  {}
func (o *ObjectBegin) Duplicate() Record {
	n := *o
	return &n
}
func (o *ObjectBegin) PreProcess(r Renderer, cb ArchiveCallback) {
	o.Handle = r.PreObjectBegin(o.Name)
}
func (o *ObjectBegin) DoProcess(r Renderer, cb ArchiveCallback) {
	r.DoObjectBegin(o.Handle, o.Name)
}
func (o *ObjectBegin) PostProcess(r Renderer, cb ArchiveCallback) {
	r.PostObjectBegin(o.Handle, o.Name)
}

type ObjectEnd struct{}

func (*ObjectEnd) Kind() Kind                                 { return KindObjectEnd }
func (*ObjectEnd) isRecord()                                  {}
func (*ObjectEnd) Duplicate() Record                          { return &ObjectEnd{} }
func (*ObjectEnd) PreProcess(r Renderer, cb ArchiveCallback)  { r.PreObjectEnd() }
func (*ObjectEnd) DoProcess(r Renderer, cb ArchiveCallback)   { r.DoObjectEnd() }
func (*ObjectEnd) PostProcess(r Renderer, cb ArchiveCallback) { r.PostObjectEnd() }

type ObjectInstance struct {
	Name string
}

func (*ObjectInstance) Kind() Kind { return KindObjectInstance }
func (*ObjectInstance) isRecord()  {}
func (o *ObjectInstance) Duplicate() Record {
	n := *o
	return &n
}
func (o *ObjectInstance) PreProcess(r Renderer, cb ArchiveCallback) {
	r.PreObjectInstance(o.Name)
}
func (o *ObjectInstance) DoProcess(r Renderer, cb ArchiveCallback) {
	r.DoObjectInstance(o.Name)
}
func (o *ObjectInstance) PostProcess(r Renderer, cb ArchiveCallback) {
	r.PostObjectInstance(o.Name)
}

// ArchiveBegin starts an inline archive. Handle is assigned by the renderer
// in PreProcess.
type ArchiveBegin struct {
	Name   string
	Params *param.List
	Handle riinterfaces.ArchiveHandle
}

func (*ArchiveBegin) Kind() Kind { return KindArchiveBegin }
func (*ArchiveBegin) isRecord()  {}
func (a *ArchiveBegin) Duplicate() Record {
	n := *a
	n.Params = a.Params.Duplicate()
	return &n
}
func (a *ArchiveBegin) PreProcess(r Renderer, cb ArchiveCallback) {
	a.Handle = r.PreArchiveBegin(a.Name, a.Params)
}
func (a *ArchiveBegin) DoProcess(r Renderer, cb ArchiveCallback) {
	r.DoArchiveBegin(a.Handle, a.Name, a.Params)
}
func (a *ArchiveBegin) PostProcess(r Renderer, cb ArchiveCallback) {
	r.PostArchiveBegin(a.Handle, a.Name, a.Params)
}

type ArchiveEnd struct{}

func (*ArchiveEnd) Kind() Kind                                 { return KindArchiveEnd }
func (*ArchiveEnd) isRecord()                                  {}
func (*ArchiveEnd) Duplicate() Record                          { return &ArchiveEnd{} }
func (*ArchiveEnd) PreProcess(r Renderer, cb ArchiveCallback)  { r.PreArchiveEnd() }
func (*ArchiveEnd) DoProcess(r Renderer, cb ArchiveCallback)   { r.DoArchiveEnd() }
func (*ArchiveEnd) PostProcess(r Renderer, cb ArchiveCallback) { r.PostArchiveEnd() }

// ReadArchive reads the archive Name. The callback given to the process
// hooks receives the archive records encountered while reading.
type ReadArchive struct {
	Name   string
	Params *param.List
}

func (*ReadArchive) Kind() Kind { return KindReadArchive }
func (*ReadArchive) isRecord()  {}
func (a *ReadArchive) Duplicate() Record {
	return &ReadArchive{Name: a.Name, Params: a.Params.Duplicate()}
}
func (a *ReadArchive) PreProcess(r Renderer, cb ArchiveCallback) {
	r.PreReadArchive(a.Name, cb, a.Params)
}
func (a *ReadArchive) DoProcess(r Renderer, cb ArchiveCallback) {
	r.DoReadArchive(a.Name, cb, a.Params)
}
func (a *ReadArchive) PostProcess(r Renderer, cb ArchiveCallback) {
	r.PostReadArchive(a.Name, cb, a.Params)
}

// ArchiveRecord is a comment or structure record ("comment", "structure",
// "verbatim")
type ArchiveRecord struct {
	Type string
	Text string
}

func (*ArchiveRecord) Kind() Kind { return KindArchiveRecord }
func (*ArchiveRecord) isRecord()  {}
func (a *ArchiveRecord) Duplicate() Record {
	n := *a
	return &n
}
func (a *ArchiveRecord) PreProcess(r Renderer, cb ArchiveCallback) {
	r.PreArchiveRecord(a.Type, a.Text)
}
func (a *ArchiveRecord) DoProcess(r Renderer, cb ArchiveCallback) {
	r.DoArchiveRecord(a.Type, a.Text)
}
func (a *ArchiveRecord) PostProcess(r Renderer, cb ArchiveCallback) {
	r.PostArchiveRecord(a.Type, a.Text)
}

// New returns an empty record of kind k, for decoders to fill in
func New(k Kind) (Record, bool) {
	switch k {
	case KindDeclare:
		return &Declare{}, true
	case KindColor:
		return &Color{}, true
	case KindAttribute:
		return &Attribute{}, true
	case KindAttributeBegin:
		return &AttributeBegin{}, true
	case KindAttributeEnd:
		return &AttributeEnd{}, true
	case KindWorldBegin:
		return &WorldBegin{}, true
	case KindWorldEnd:
		return &WorldEnd{}, true
	case KindSphere:
		return &Sphere{}, true
	case KindPolygon:
		return &Polygon{}, true
	case KindMakeTexture:
		return &MakeTexture{}, true
	case KindObjectBegin:
		return &ObjectBegin{}, true
	case KindObjectEnd:
		return &ObjectEnd{}, true
	case KindObjectInstance:
		return &ObjectInstance{}, true
	case KindArchiveBegin:
		return &ArchiveBegin{}, true
	case KindArchiveEnd:
		return &ArchiveEnd{}, true
	case KindReadArchive:
		return &ReadArchive{}, true
	case KindArchiveRecord:
		return &ArchiveRecord{}, true
	default:
		return nil, false
	}
}
