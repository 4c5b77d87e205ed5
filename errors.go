// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package ri

import "go.e43.eu/ri/internal/errors"

// Error kinds. Every error returned by this module matches one of these
// through errors.Is.
var (
	ErrSyntax             error = errors.ErrSyntax
	ErrOutOfMemory        error = errors.ErrOutOfMemory
	ErrStateMisuse        error = errors.ErrStateMisuse
	ErrUnknownDeclaration error = errors.ErrUnknownDeclaration
	ErrMissingType        error = errors.ErrMissingType
	ErrValueType          error = errors.ErrValueType
	ErrValueShort         error = errors.ErrValueShort
	ErrRedeclareDefault   error = errors.ErrRedeclareDefault
	ErrInvalidURI         error = errors.ErrInvalidURI
	ErrUnknownFilter      error = errors.ErrUnknownFilter
	ErrUnknownRecord      error = errors.ErrUnknownRecord
	ErrInvalidValue       error = errors.ErrInvalidValue
	ErrNotEncodable       error = errors.ErrNotEncodable
	ErrLengthExceedsMax   error = errors.ErrLengthExceedsMax
)

type (
	SyntaxError     = errors.SyntaxError
	AllocationError = errors.AllocationError
	StateError      = errors.StateError
	ValueError      = errors.ValueError
	ParameterError  = errors.ParameterError
)
