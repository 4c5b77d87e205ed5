// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package typeinfo holds the constant tables describing RenderMan storage
// classes, data types and their byte layout.
package typeinfo

import "unsafe"

// Class is a parameter storage class
type Class uint8

const (
	ClassUnknown Class = iota
	ClassConstant
	ClassUniform
	ClassVarying
	ClassVertex
	ClassFaceVarying
	ClassFaceVertex

	numClasses
)

// Type is a parameter data type
type Type uint8

const (
	TypeUnknown Type = iota
	TypeBoolean
	TypeInteger
	TypeFloat
	TypeToken
	TypeColor
	TypePoint
	TypeVector
	TypeNormal
	TypeHPoint
	TypeMPoint
	TypeMatrix
	TypeBasis
	TypeBound
	TypeString
	TypePointer
	TypeVoid
	TypeFilterFunc
	TypeErrorHandler
	TypeProcSubdivFunc
	TypeProcFreeFunc
	TypeArchiveCallback
	TypeLightHandle
	TypeObjectHandle
	TypeArchiveHandle

	numTypes
)

// BasicType is the storage type of a single component
type BasicType uint8

const (
	BasicUnknown BasicType = iota
	BasicInteger
	BasicFloat
	BasicString
	BasicPointer

	numBasicTypes
)

// Size of the component used to hold strings and pointers
const PointerSize = int(unsafe.Sizeof(uintptr(0)))

var classNames = [numClasses]string{
	ClassUnknown:     "",
	ClassConstant:    "constant",
	ClassUniform:     "uniform",
	ClassVarying:     "varying",
	ClassVertex:      "vertex",
	ClassFaceVarying: "facevarying",
	ClassFaceVertex:  "facevertex",
}

var typeNames = [numTypes]string{
	TypeUnknown:         "",
	TypeBoolean:         "boolean",
	TypeInteger:         "integer",
	TypeFloat:           "float",
	TypeToken:           "token",
	TypeColor:           "color",
	TypePoint:           "point",
	TypeVector:          "vector",
	TypeNormal:          "normal",
	TypeHPoint:          "hpoint",
	TypeMPoint:          "mpoint",
	TypeMatrix:          "matrix",
	TypeBasis:           "basis",
	TypeBound:           "bound",
	TypeString:          "string",
	TypePointer:         "pointer",
	TypeVoid:            "void",
	TypeFilterFunc:      "filterfunc",
	TypeErrorHandler:    "errorhandler",
	TypeProcSubdivFunc:  "procsubdivfunc",
	TypeProcFreeFunc:    "procfreefunc",
	TypeArchiveCallback: "archivecallback",
	TypeLightHandle:     "lighthandle",
	TypeObjectHandle:    "objecthandle",
	TypeArchiveHandle:   "archivehandle",
}

// Components per element. Color is 0 here: its width is the runtime number
// of color samples.
var typeComponents = [numTypes]int{
	TypeUnknown:         0,
	TypeBoolean:         1,
	TypeInteger:         1,
	TypeFloat:           1,
	TypeToken:           1,
	TypeColor:           0,
	TypePoint:           3,
	TypeVector:          3,
	TypeNormal:          3,
	TypeHPoint:          4,
	TypeMPoint:          16,
	TypeMatrix:          16,
	TypeBasis:           16,
	TypeBound:           6,
	TypeString:          1,
	TypePointer:         1,
	TypeVoid:            0,
	TypeFilterFunc:      1,
	TypeErrorHandler:    1,
	TypeProcSubdivFunc:  1,
	TypeProcFreeFunc:    1,
	TypeArchiveCallback: 1,
	TypeLightHandle:     1,
	TypeObjectHandle:    1,
	TypeArchiveHandle:   1,
}

var typeBasics = [numTypes]BasicType{
	TypeUnknown:         BasicUnknown,
	TypeBoolean:         BasicInteger,
	TypeInteger:         BasicInteger,
	TypeFloat:           BasicFloat,
	TypeToken:           BasicString,
	TypeColor:           BasicFloat,
	TypePoint:           BasicFloat,
	TypeVector:          BasicFloat,
	TypeNormal:          BasicFloat,
	TypeHPoint:          BasicFloat,
	TypeMPoint:          BasicFloat,
	TypeMatrix:          BasicFloat,
	TypeBasis:           BasicFloat,
	TypeBound:           BasicFloat,
	TypeString:          BasicString,
	TypePointer:         BasicPointer,
	TypeVoid:            BasicUnknown,
	TypeFilterFunc:      BasicPointer,
	TypeErrorHandler:    BasicPointer,
	TypeProcSubdivFunc:  BasicPointer,
	TypeProcFreeFunc:    BasicPointer,
	TypeArchiveCallback: BasicPointer,
	TypeLightHandle:     BasicPointer,
	TypeObjectHandle:    BasicPointer,
	TypeArchiveHandle:   BasicPointer,
}

var basicNames = [numBasicTypes]string{
	BasicUnknown: "",
	BasicInteger: "integer",
	BasicFloat:   "float",
	BasicString:  "string",
	BasicPointer: "pointer",
}

var basicSizes = [numBasicTypes]int{
	BasicUnknown: 0,
	BasicInteger: 4,
	BasicFloat:   4,
	BasicString:  PointerSize,
	BasicPointer: PointerSize,
}

// NumClasses is the number of entries in the class table
func NumClasses() int { return int(numClasses) }

// NumTypes is the number of entries in the type table
func NumTypes() int { return int(numTypes) }

// Valid reports whether c is inside the class table
func (c Class) Valid() bool { return c < numClasses }

// Valid reports whether t is inside the type table
func (t Type) Valid() bool { return t < numTypes }

// Valid reports whether b is inside the basic type table
func (b BasicType) Valid() bool { return b < numBasicTypes }

// String returns the keyword of the class, or "" for unknown/out of range
func (c Class) String() string {
	if !c.Valid() {
		return ""
	}
	return classNames[c]
}

// IsFace reports whether c is one of the per-face classes
func (c Class) IsFace() bool {
	return c == ClassFaceVarying || c == ClassFaceVertex
}

// String returns the keyword of the type, or "" for unknown/out of range
func (t Type) String() string {
	if !t.Valid() {
		return ""
	}
	return typeNames[t]
}

// Basic returns the component storage type of t
func (t Type) Basic() BasicType {
	if !t.Valid() {
		return BasicUnknown
	}
	return typeBasics[t]
}

// Components returns the components per element of t. colorSamples is the
// number of color components currently in effect and only applies to color.
func (t Type) Components(colorSamples int) int {
	if !t.Valid() {
		return 0
	}
	if t == TypeColor {
		return colorSamples
	}
	return typeComponents[t]
}

// ComponentSize returns the byte size of one component of t
func (t Type) ComponentSize() int {
	return t.Basic().Size()
}

// String returns the name of the basic type
func (b BasicType) String() string {
	if !b.Valid() {
		return ""
	}
	return basicNames[b]
}

// Size returns the byte size of one component of basic type b
func (b BasicType) Size() int {
	if !b.Valid() {
		return 0
	}
	return basicSizes[b]
}

// ClassByName looks up a storage class keyword
func ClassByName(s string) (Class, bool) {
	for c := ClassConstant; c < numClasses; c++ {
		if classNames[c] == s {
			return c, true
		}
	}
	return ClassUnknown, false
}

// TypeByName looks up a type keyword; "int" is accepted for integer
func TypeByName(s string) (Type, bool) {
	if s == "int" {
		return TypeInteger, true
	}
	for t := TypeBoolean; t < numTypes; t++ {
		if typeNames[t] == s {
			return t, true
		}
	}
	return TypeUnknown, false
}

// A Keyword is one entry of a keyword matching table
type Keyword struct {
	Text string
	// Class or Type value, depending on which table it came from
	Value uint8
}

var (
	classKeywords = buildClassKeywords()
	typeKeywords  = buildTypeKeywords()
)

func buildClassKeywords() []Keyword {
	kw := make([]Keyword, 0, numClasses-1)
	for c := ClassConstant; c < numClasses; c++ {
		kw = append(kw, Keyword{classNames[c], uint8(c)})
	}
	return kw
}

func buildTypeKeywords() []Keyword {
	kw := make([]Keyword, 0, numTypes)
	for t := TypeBoolean; t < numTypes; t++ {
		kw = append(kw, Keyword{typeNames[t], uint8(t)})
	}
	return append(kw, Keyword{"int", uint8(TypeInteger)})
}

// ClassKeywords returns the storage class keywords in table order.
// The returned slice must not be modified.
func ClassKeywords() []Keyword {
	return classKeywords
}

// TypeKeywords returns the type keywords in table order, followed by the
// "int" alias of integer. The returned slice must not be modified.
func TypeKeywords() []Keyword {
	return typeKeywords
}
