// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package coder

import (
	"io"
	"math"
	"sync"

	"go.e43.eu/ri/internal/errors"
)

// 4 byte array which will always contain zeroes that we use whenever
// we need to emit padding
var pad [4]byte

var encoderPool = sync.Pool{
	New: func() interface{} {
		return new(Encoder)
	},
}

// Encoder writes big-endian, 4-byte aligned primitives
type Encoder struct {
	// Underlying writer
	w io.Writer
	// If the underlying writer is also an io.StringWriter, use that when writing
	// strings (to avoid allocs)
	ws io.StringWriter

	// Small scratch buffer (avoids needing to ever allocate when writing primitives)
	scratch [4]byte
}

// NewEncoder returns an encoder writing to w
func NewEncoder(w io.Writer) *Encoder {
	e := new(Encoder)
	e.reset(w)
	return e
}

func newPooledEncoder(w io.Writer) *Encoder {
	e := encoderPool.Get().(*Encoder)
	e.reset(w)
	return e
}

func (e *Encoder) reset(w io.Writer) {
	e.w = w
	if ws, ok := w.(io.StringWriter); ok {
		e.ws = ws
	} else {
		e.ws = nil
	}
}

func (e *Encoder) release() {
	e.reset(nil)
	encoderPool.Put(e)
}

func (e *Encoder) EncodeInt(i int32) error {
	e.scratch[0] = byte(i >> 24)
	e.scratch[1] = byte(i >> 16)
	e.scratch[2] = byte(i >> 8)
	e.scratch[3] = byte(i)
	_, err := e.w.Write(e.scratch[0:4])
	return err
}

func (e *Encoder) EncodeUnsignedInt(i uint32) error {
	return e.EncodeInt(int32(i))
}

func (e *Encoder) EncodeBool(b bool) error {
	if b {
		return e.EncodeInt(1)
	}
	return e.EncodeInt(0)
}

func (e *Encoder) EncodeFloat(f float32) error {
	return e.EncodeUnsignedInt(math.Float32bits(f))
}

// EncodeLength writes a count, failing if it does not fit the wire type
func (e *Encoder) EncodeLength(n int) error {
	if uint64(n) > uint64(math.MaxUint32) {
		return errors.LengthError{Actual: uint64(n), Max: math.MaxUint32}
	}
	return e.EncodeUnsignedInt(uint32(n))
}

func (e *Encoder) EncodeOpaque(buf []byte) error {
	if err := e.EncodeLength(len(buf)); err != nil {
		return err
	}
	return e.EncodeFixedOpaque(buf)
}

func (e *Encoder) EncodeFixedOpaque(buf []byte) error {
	if _, err := e.w.Write(buf); err != nil {
		return err
	}

	padding := (4 - (len(buf) & 3)) & 3
	_, err := e.w.Write(pad[0:padding])
	return err
}

func (e *Encoder) EncodeString(s string) error {
	if err := e.EncodeLength(len(s)); err != nil {
		return err
	}
	return e.EncodeFixedString(s)
}

func (e *Encoder) EncodeFixedString(s string) (err error) {
	if e.ws != nil {
		_, err = e.ws.WriteString(s)
	} else {
		_, err = e.w.Write([]byte(s))
	}
	if err != nil {
		return err
	}

	padding := (4 - (len(s) & 3)) & 3
	_, err = e.w.Write(pad[0:padding])
	return err
}

// EncodeFloats writes a counted array of floats
func (e *Encoder) EncodeFloats(fs []float32) error {
	if err := e.EncodeLength(len(fs)); err != nil {
		return err
	}
	for _, f := range fs {
		if err := e.EncodeFloat(f); err != nil {
			return err
		}
	}
	return nil
}

// EncodeInts writes a counted array of ints
func (e *Encoder) EncodeInts(is []int32) error {
	if err := e.EncodeLength(len(is)); err != nil {
		return err
	}
	for _, i := range is {
		if err := e.EncodeInt(i); err != nil {
			return err
		}
	}
	return nil
}

// EncodeOptString writes a string which may be absent, as a bool followed
// by the string if present
func (e *Encoder) EncodeOptString(s *string) error {
	if err := e.EncodeBool(s != nil); err != nil || s == nil {
		return err
	}
	return e.EncodeString(*s)
}
