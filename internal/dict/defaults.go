// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package dict

import (
	"go.e43.eu/ri/internal/decl"
	"go.e43.eu/ri/internal/typeinfo"
)

type defaultDecl struct {
	class typeinfo.Class
	typ   typeinfo.Type
	card  int
	name  string
}

// Standard parameters every renderer knows about
var defaults = []defaultDecl{
	// Geometry
	{typeinfo.ClassVertex, typeinfo.TypePoint, 1, "P"},
	{typeinfo.ClassVertex, typeinfo.TypeFloat, 1, "Pz"},
	{typeinfo.ClassVertex, typeinfo.TypeHPoint, 1, "Pw"},
	{typeinfo.ClassVarying, typeinfo.TypeNormal, 1, "N"},
	{typeinfo.ClassUniform, typeinfo.TypeNormal, 1, "Np"},
	{typeinfo.ClassVarying, typeinfo.TypeColor, 1, "Cs"},
	{typeinfo.ClassVarying, typeinfo.TypeColor, 1, "Os"},
	{typeinfo.ClassVarying, typeinfo.TypeFloat, 1, "s"},
	{typeinfo.ClassVarying, typeinfo.TypeFloat, 1, "t"},
	{typeinfo.ClassVarying, typeinfo.TypeFloat, 2, "st"},
	{typeinfo.ClassVarying, typeinfo.TypeFloat, 1, "width"},
	{typeinfo.ClassConstant, typeinfo.TypeFloat, 1, "constantwidth"},

	// Shaders
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "Ka"},
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "Kd"},
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "Ks"},
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "Kr"},
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "roughness"},
	{typeinfo.ClassUniform, typeinfo.TypeColor, 1, "specularcolor"},
	{typeinfo.ClassUniform, typeinfo.TypeString, 1, "texturename"},
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "amplitude"},

	// Lights
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "intensity"},
	{typeinfo.ClassUniform, typeinfo.TypeColor, 1, "lightcolor"},
	{typeinfo.ClassUniform, typeinfo.TypePoint, 1, "from"},
	{typeinfo.ClassUniform, typeinfo.TypePoint, 1, "to"},
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "coneangle"},
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "conedeltaangle"},
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "beamdistribution"},

	// Volumes and imagers
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "mindistance"},
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "maxdistance"},
	{typeinfo.ClassUniform, typeinfo.TypeColor, 1, "background"},
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "distance"},

	// Options and attributes
	{typeinfo.ClassUniform, typeinfo.TypeFloat, 1, "fov"},
	{typeinfo.ClassUniform, typeinfo.TypeString, 1, "name"},
	{typeinfo.ClassUniform, typeinfo.TypeString, 1, "identifier:name"},
	{typeinfo.ClassUniform, typeinfo.TypeInteger, 1, "sides"},
}

// DefaultNames returns the names installed by DeclareDefaults, in order
func DefaultNames() []string {
	names := make([]string, len(defaults))
	for i, d := range defaults {
		names[i] = d.name
	}
	return names
}

// DeclareDefaults installs the standard declarations with the default flag
// set. Strict mode is ignored while doing so.
func (d *Dictionary) DeclareDefaults() {
	strict := d.strict
	d.strict = false
	defer func() { d.strict = strict }()

	for _, def := range defaults {
		dl := decl.MustNew(d.in, def.class, def.typ, def.card, def.name, true)
		// Add only fails in strict mode
		_ = d.Add(dl)
	}
}
