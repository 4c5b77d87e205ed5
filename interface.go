// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package ri implements the core of a RenderMan Interface: the parameter
// type system, the declaration dictionary, typed parameter containers, the
// record model used to capture and replay interface calls, and an RFC 3986
// URI parser used to locate archives.
//
// Declarations are written as
//
//	[class] [type] ["[" cardinality "]"] [name]
//
// where class is one of constant, uniform, varying, vertex, facevarying or
// facevertex (uniform when omitted), and type is one of the parameter types
// (float, integer or int, string, point, vector, normal, hpoint, matrix,
// color and so on). A name found in the dictionary uses its declaration;
// any other parameter name must itself be a typed declaration, an "inline"
// declaration such as "varying float[2] st".
//
// The number of values a parameter holds follows from its class and the
// primitive it is attached to:
//
//	      class | elements
//	------------+----------------------
//	   constant | 1
//	    uniform | facets
//	    varying | corners
//	     vertex | vertices
//	facevarying | corners of each face
//	 facevertex | vertices of each face
//
// multiplied by the cardinality and by the components of its type (3 for a
// point, 16 for a matrix, the current number of color samples for a color).
//
// A Context owns the interned names and the dictionary of one rendering
// context; it is not safe for concurrent use. A Recorder turns interface
// calls into records appended to an Archive, which can be replayed against
// any Renderer, duplicated, filtered or written in a binary form.
//
// Malformed declarations and URIs are ordinary errors matching ErrSyntax;
// a parameter buffer which cannot be allocated reports ErrOutOfMemory.
// Popping an empty dictionary or ending an archive which was never begun
// panics with an error matching ErrStateMisuse.
package ri

import (
	riinterfaces "go.e43.eu/ri/interfaces"
	"go.e43.eu/ri/internal/decl"
	"go.e43.eu/ri/internal/dict"
	"go.e43.eu/ri/internal/macro"
	"go.e43.eu/ri/internal/param"
	"go.e43.eu/ri/internal/resolve"
	"go.e43.eu/ri/internal/token"
	"go.e43.eu/ri/internal/typeinfo"
	"go.e43.eu/ri/internal/uri"
)

// Renderer receives replayed interface calls
type Renderer = riinterfaces.Renderer

// NopRenderer implements Renderer with no-ops; embed it to receive a subset
// of the calls
type NopRenderer = riinterfaces.NopRenderer

type (
	FilterFunc      = riinterfaces.FilterFunc
	ArchiveCallback = riinterfaces.ArchiveCallback
	ObjectHandle    = riinterfaces.ObjectHandle
	ArchiveHandle   = riinterfaces.ArchiveHandle
)

type (
	Class     = typeinfo.Class
	Type      = typeinfo.Type
	BasicType = typeinfo.BasicType
)

// Token is an interned name. Tokens from one interner compare equal exactly
// when their names are equal.
type Token = token.Token

// Interner maps names to tokens
type Interner = token.Interner

// Declaration is a parsed parameter declaration
type Declaration = decl.Declaration

// Counts are the primitive counts a parameter is sized against
type Counts = decl.Counts

// Dictionary maps parameter names to declarations, with push and pop
type Dictionary = dict.Dictionary

type (
	Parameter     = param.Parameter
	ParameterList = param.List
	Pair          = param.Pair
	Sizing        = param.Sizing
)

type (
	Archive = macro.Archive
	Record  = macro.Record
	Kind    = macro.Kind
)

// URI is a parsed URI reference. An invalid URI reports why through Err.
type URI = uri.URI

// Resolver resolves archive references against a base URI
type Resolver = resolve.Resolver
