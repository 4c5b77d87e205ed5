// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package macro

import "fmt"

// Kind identifies the interface call a record represents. Values are stable
// and are written to binary archives.
type Kind uint32

const (
	KindInvalid Kind = iota
	KindDeclare
	KindColor
	KindAttribute
	KindAttributeBegin
	KindAttributeEnd
	KindWorldBegin
	KindWorldEnd
	KindSphere
	KindPolygon
	KindMakeTexture
	KindObjectBegin
	KindObjectEnd
	KindObjectInstance
	KindArchiveBegin
	KindArchiveEnd
	KindReadArchive
	KindArchiveRecord

	numKinds
)

var kindNames = [numKinds]string{
	KindInvalid:        "Invalid",
	KindDeclare:        "Declare",
	KindColor:          "Color",
	KindAttribute:      "Attribute",
	KindAttributeBegin: "AttributeBegin",
	KindAttributeEnd:   "AttributeEnd",
	KindWorldBegin:     "WorldBegin",
	KindWorldEnd:       "WorldEnd",
	KindSphere:         "Sphere",
	KindPolygon:        "Polygon",
	KindMakeTexture:    "MakeTexture",
	KindObjectBegin:    "ObjectBegin",
	KindObjectEnd:      "ObjectEnd",
	KindObjectInstance: "ObjectInstance",
	KindArchiveBegin:   "ArchiveBegin",
	KindArchiveEnd:     "ArchiveEnd",
	KindReadArchive:    "ReadArchive",
	KindArchiveRecord:  "ArchiveRecord",
}

// Valid reports whether k names a record kind
func (k Kind) Valid() bool {
	return k > KindInvalid && k < numKinds
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint32(k))
}

// NumKinds returns one more than the largest valid kind
func NumKinds() int {
	return int(numKinds)
}
