// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package riinterfaces

// NopRenderer implements every Renderer hook as a no-op, minting handles
// from a counter. Embed it to implement only the hooks of interest.
type NopRenderer struct {
	lastObject  ObjectHandle
	lastArchive ArchiveHandle
}

var _ Renderer = (*NopRenderer)(nil)

func (*NopRenderer) PreDeclare(name, declaration string)  {}
func (*NopRenderer) DoDeclare(name, declaration string)   {}
func (*NopRenderer) PostDeclare(name, declaration string) {}

func (*NopRenderer) PreColor(c []float32)  {}
func (*NopRenderer) DoColor(c []float32)   {}
func (*NopRenderer) PostColor(c []float32) {}

func (*NopRenderer) PreAttribute(name string, params *ParameterList)  {}
func (*NopRenderer) DoAttribute(name string, params *ParameterList)   {}
func (*NopRenderer) PostAttribute(name string, params *ParameterList) {}

func (*NopRenderer) PreAttributeBegin()  {}
func (*NopRenderer) DoAttributeBegin()   {}
func (*NopRenderer) PostAttributeBegin() {}

func (*NopRenderer) PreAttributeEnd()  {}
func (*NopRenderer) DoAttributeEnd()   {}
func (*NopRenderer) PostAttributeEnd() {}

func (*NopRenderer) PreWorldBegin()  {}
func (*NopRenderer) DoWorldBegin()   {}
func (*NopRenderer) PostWorldBegin() {}

func (*NopRenderer) PreWorldEnd()  {}
func (*NopRenderer) DoWorldEnd()   {}
func (*NopRenderer) PostWorldEnd() {}

func (*NopRenderer) PreSphere(radius, zmin, zmax, thetamax float32, params *ParameterList)  {}
func (*NopRenderer) DoSphere(radius, zmin, zmax, thetamax float32, params *ParameterList)   {}
func (*NopRenderer) PostSphere(radius, zmin, zmax, thetamax float32, params *ParameterList) {}

func (*NopRenderer) PrePolygon(nvertices int, params *ParameterList)  {}
func (*NopRenderer) DoPolygon(nvertices int, params *ParameterList)   {}
func (*NopRenderer) PostPolygon(nvertices int, params *ParameterList) {}

func (*NopRenderer) PreMakeTexture(pic, tex, swrap, twrap string, filter FilterFunc, swidth, twidth float32, params *ParameterList) {
}
func (*NopRenderer) DoMakeTexture(pic, tex, swrap, twrap string, filter FilterFunc, swidth, twidth float32, params *ParameterList) {
}
func (*NopRenderer) PostMakeTexture(pic, tex, swrap, twrap string, filter FilterFunc, swidth, twidth float32, params *ParameterList) {
}

func (r *NopRenderer) PreObjectBegin(name string) ObjectHandle {
	r.lastObject++
	return r.lastObject
}
func (*NopRenderer) DoObjectBegin(h ObjectHandle, name string)   {}
func (*NopRenderer) PostObjectBegin(h ObjectHandle, name string) {}

func (*NopRenderer) PreObjectEnd()  {}
func (*NopRenderer) DoObjectEnd()   {}
func (*NopRenderer) PostObjectEnd() {}

func (*NopRenderer) PreObjectInstance(name string)  {}
func (*NopRenderer) DoObjectInstance(name string)   {}
func (*NopRenderer) PostObjectInstance(name string) {}

func (r *NopRenderer) PreArchiveBegin(name string, params *ParameterList) ArchiveHandle {
	r.lastArchive++
	return r.lastArchive
}
func (*NopRenderer) DoArchiveBegin(h ArchiveHandle, name string, params *ParameterList)   {}
func (*NopRenderer) PostArchiveBegin(h ArchiveHandle, name string, params *ParameterList) {}

func (*NopRenderer) PreArchiveEnd()  {}
func (*NopRenderer) DoArchiveEnd()   {}
func (*NopRenderer) PostArchiveEnd() {}

func (*NopRenderer) PreReadArchive(name string, cb ArchiveCallback, params *ParameterList)  {}
func (*NopRenderer) DoReadArchive(name string, cb ArchiveCallback, params *ParameterList)   {}
func (*NopRenderer) PostReadArchive(name string, cb ArchiveCallback, params *ParameterList) {}

func (*NopRenderer) PreArchiveRecord(recordType, text string)  {}
func (*NopRenderer) DoArchiveRecord(recordType, text string)   {}
func (*NopRenderer) PostArchiveRecord(recordType, text string) {}
