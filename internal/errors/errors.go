// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package errors

import (
	"fmt"
	"strings"
)

const (
	// maxUint is the maximum value a uint can hold
	maxUint = ^uint(0)
	// maxInt is the maximum value an int can hold
	maxInt = int(maxUint >> 1)
)

type xerror string

func (e xerror) Error() string {
	return string(e)
}

const (
	// Declaration or URI text does not match its grammar. Always recoverable.
	ErrSyntax = xerror("ri: Syntax error")

	// The buffer for a parameter value could not be obtained. Treated as fatal
	// by callers; it is never reported as ErrSyntax.
	ErrOutOfMemory = xerror("ri: Out of memory")

	// Programmer or integration error (mismatched push/pop, End without Begin)
	ErrStateMisuse = xerror("ri: State misuse")

	// A parameter name has no declaration and is not an inline declaration
	ErrUnknownDeclaration = xerror("ri: Unknown declaration")

	// A declaration was parsed without a type where one is required
	ErrMissingType = xerror("ri: Declaration has no type")

	// The Go value supplied for a parameter does not match its basic type
	ErrValueType = xerror("ri: Value of wrong type for declaration")

	// The Go value supplied for a parameter has fewer components than required
	ErrValueShort = xerror("ri: Value too short for declaration")

	// Redeclaration of a default declaration in strict mode
	ErrRedeclareDefault = xerror("ri: Redeclaration of default declaration")

	// URI text could not be parsed
	ErrInvalidURI = xerror("ri: Invalid URI")

	// Filter function name not known to the decoder
	ErrUnknownFilter = xerror("ri: Unknown filter function")

	// Record discriminant not known to the decoder
	ErrUnknownRecord = xerror("ri: Unknown record kind")

	// Encoded data holds a value its field cannot take (bad bool, bad magic,
	// count disagreeing with its declaration)
	ErrInvalidValue = xerror("ri: Invalid encoded value")

	// Value which has no binary encoding (pointer parameters)
	ErrNotEncodable = xerror("ri: Value cannot be encoded")

	// Variable length object longer than the decoder will accept
	ErrLengthExceedsMax = xerror("ri: Variable length object too long")
)

// SyntaxError reports what failed to parse and why. It carries no line
// number: the layer which owns the file position adds that.
type SyntaxError struct {
	// What was being parsed ("declaration", "uri")
	What string
	// The complete input text
	Input string
	// Byte offset of the failure within Input
	Offset int
	// Short reason, e.g. "unterminated array cardinality"
	Reason string
	// Optional more specific kind (e.g. ErrMissingType) also matched by Is
	Kind xerror
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax || (e.Kind != "" && target == e.Kind)
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s %q at offset %d: %s", ErrSyntax, e.What, e.Input, e.Offset, e.Reason)
}

// AllocationError is returned when a parameter buffer would exceed the
// configured limit or the platform's addressable size
type AllocationError struct {
	Requested, Limit uint64
}

func (e *AllocationError) Is(target error) bool {
	return target == ErrOutOfMemory
}

func (e *AllocationError) Error() string {
	if e.Requested > uint64(maxInt) {
		return fmt.Sprintf("%s (%d bytes exceeds platform limit)", ErrOutOfMemory, e.Requested)
	}
	return fmt.Sprintf("%s (%d > %d bytes)", ErrOutOfMemory, e.Requested, e.Limit)
}

// StateError is the panic value used for programmer misuse
type StateError struct {
	Op string
}

func (e StateError) Is(target error) bool {
	return target == ErrStateMisuse
}

func (e StateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrStateMisuse, e.Op)
}

// ValueError describes a value which does not fit its declaration
type ValueError struct {
	Kind      xerror
	Want, Got string
}

func (e *ValueError) Is(target error) bool {
	return target == e.Kind
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s (want %s, got %s)", e.Kind, e.Want, e.Got)
}

// TypeMismatch builds a ValueError for a value of the wrong Go type
func TypeMismatch(want string, got interface{}) error {
	return &ValueError{ErrValueType, want, fmt.Sprintf("%T", got)}
}

// ShortValue builds a ValueError for a value with too few components
func ShortValue(want, got int) error {
	return &ValueError{ErrValueShort, fmt.Sprintf("%d components", want), fmt.Sprintf("%d", got)}
}

type LengthError struct {
	Actual, Max uint64
}

func (err LengthError) Is(target error) bool {
	return target == ErrLengthExceedsMax && err.Actual > err.Max
}

func (err LengthError) Error() string {
	return fmt.Sprintf("%s (%d > %d)", ErrLengthExceedsMax, err.Actual, err.Max)
}

// ParameterError annotates an error with the parameter it occurred on
type ParameterError struct {
	Underlying error
	Position   int
	Name       string
}

func (err ParameterError) Unwrap() error {
	return err.Underlying
}

func (err ParameterError) Error() string {
	uerr := strings.TrimPrefix(err.Underlying.Error(), "ri: ")
	return fmt.Sprintf("ri: %s (parameter %d %q)", uerr, err.Position, err.Name)
}

func WithParameterError(err error, position int, name string) error {
	if err == nil {
		return nil
	}
	return ParameterError{err, position, name}
}

// FieldError annotates a codec error with the record field path
type FieldError struct {
	Underlying error
	Path       string
}

func (err FieldError) Unwrap() error {
	return err.Underlying
}

func (err FieldError) Error() string {
	uerr := strings.TrimPrefix(err.Underlying.Error(), "ri: ")
	return fmt.Sprintf("ri: %s (at %s)", uerr, err.Path)
}

func WithFieldError(err error, parts ...string) error {
	if err == nil {
		return nil
	}

	var combined string
	if parts[0] == "" {
		parts[0] = "<anonymous>"
	}

	switch len(parts) {
	case 1:
		combined = parts[0]
	default:
		combined = strings.Join(parts, ".")
	}

	switch err := err.(type) {
	case FieldError:
		err.Path = fmt.Sprintf("%s %s", combined, err.Path)
		return err
	default:
		return FieldError{err, combined}
	}
}
