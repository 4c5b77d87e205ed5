// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package riinterfaces defines the interfaces between recorded interface
// calls and the renderer which executes them
//
// (This package is primarily separated out in order to permit the implementation to
// be broken down into multiple packages)
package riinterfaces

import "go.e43.eu/ri/internal/param"

// ParameterList is the parameter list of one interface call
type ParameterList = param.List

// ObjectHandle identifies a retained object. Handles are minted by the
// renderer.
type ObjectHandle uint32

// ArchiveHandle identifies an inline archive. Handles are minted by the
// renderer.
type ArchiveHandle uint32

// interface FilterFunc is a pixel filter function, as passed to MakeTexture
type FilterFunc interface {
	// Name returns the standard name of the filter ("box",
	// "catmull-rom", ...) or a renderer specific identifier
	Name() string

	// Filter evaluates the filter at offset (x, y) from the center of a
	// filter of the given widths
	Filter(x, y, xwidth, ywidth float32) float32
}

// interface FilterCloner is implemented by filter functions which hold
// state. Duplicating a record which owns such a filter clones it.
type FilterCloner interface {
	FilterFunc
	Clone() FilterFunc
}

// ArchiveCallback receives the archive records (comments and structure
// hints) found while reading an archive
type ArchiveCallback func(recordType, text string)

// interface Renderer is implemented by the backend which executes recorded
// calls. Each call kind has three hooks: Pre runs before the call takes
// effect (and mints the handle for calls that create one), Do performs it,
// and Post runs afterwards.
type Renderer interface {
	PreDeclare(name, declaration string)
	DoDeclare(name, declaration string)
	PostDeclare(name, declaration string)

	PreColor(c []float32)
	DoColor(c []float32)
	PostColor(c []float32)

	PreAttribute(name string, params *ParameterList)
	DoAttribute(name string, params *ParameterList)
	PostAttribute(name string, params *ParameterList)

	PreAttributeBegin()
	DoAttributeBegin()
	PostAttributeBegin()

	PreAttributeEnd()
	DoAttributeEnd()
	PostAttributeEnd()

	PreWorldBegin()
	DoWorldBegin()
	PostWorldBegin()

	PreWorldEnd()
	DoWorldEnd()
	PostWorldEnd()

	PreSphere(radius, zmin, zmax, thetamax float32, params *ParameterList)
	DoSphere(radius, zmin, zmax, thetamax float32, params *ParameterList)
	PostSphere(radius, zmin, zmax, thetamax float32, params *ParameterList)

	PrePolygon(nvertices int, params *ParameterList)
	DoPolygon(nvertices int, params *ParameterList)
	PostPolygon(nvertices int, params *ParameterList)

	PreMakeTexture(pic, tex, swrap, twrap string, filter FilterFunc, swidth, twidth float32, params *ParameterList)
	DoMakeTexture(pic, tex, swrap, twrap string, filter FilterFunc, swidth, twidth float32, params *ParameterList)
	PostMakeTexture(pic, tex, swrap, twrap string, filter FilterFunc, swidth, twidth float32, params *ParameterList)

	PreObjectBegin(name string) ObjectHandle
	DoObjectBegin(h ObjectHandle, name string)
	PostObjectBegin(h ObjectHandle, name string)

	PreObjectEnd()
	DoObjectEnd()
	PostObjectEnd()

	PreObjectInstance(name string)
	DoObjectInstance(name string)
	PostObjectInstance(name string)

	PreArchiveBegin(name string, params *ParameterList) ArchiveHandle
	DoArchiveBegin(h ArchiveHandle, name string, params *ParameterList)
	PostArchiveBegin(h ArchiveHandle, name string, params *ParameterList)

	PreArchiveEnd()
	DoArchiveEnd()
	PostArchiveEnd()

	PreReadArchive(name string, cb ArchiveCallback, params *ParameterList)
	DoReadArchive(name string, cb ArchiveCallback, params *ParameterList)
	PostReadArchive(name string, cb ArchiveCallback, params *ParameterList)

	PreArchiveRecord(recordType, text string)
	DoArchiveRecord(recordType, text string)
	PostArchiveRecord(recordType, text string)
}
