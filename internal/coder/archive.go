// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package coder implements the binary archive format.
//
// An archive is encoded as the magic "RIAR", a format version, a record
// count and then each record as its kind followed by its fields. All
// integers are big-endian and every item is padded to a multiple of four
// bytes. Parameter lists are written with enough of their declarations
// (class, type, cardinality, name) that the decoder can re-create them
// through its own interner.
package coder

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"

	"go.e43.eu/ri/internal/errors"
	"go.e43.eu/ri/internal/macro"
	"go.e43.eu/ri/internal/token"
)

const (
	magic = "RIAR"

	// Version is the format version written by this package
	Version = 1
)

// Limits bounds what a decoder will accept, so that corrupt input
// cannot cause unbounded allocation
type Limits struct {
	// Longest string, in bytes
	MaxString int
	// Most records in one archive
	MaxRecords int
	// Most parameters in one list, and most components of a color
	MaxItems int
	// Largest parameter value, in bytes. Zero means only the platform limit.
	MaxBytes uint64
}

// DefaultLimits are the limits used by Unmarshal
var DefaultLimits = Limits{
	MaxString:  1 << 20,
	MaxRecords: 1 << 24,
	MaxItems:   1 << 12,
	MaxBytes:   1 << 30,
}

var writerPool = sync.Pool{
	New: func() interface{} {
		return bufio.NewWriter(nil)
	},
}

// Write encodes a to w
func Write(w io.Writer, a *macro.Archive) error {
	switch w.(type) {
	case *bytes.Buffer, *bufio.Writer:
		// Already buffered
		e := newPooledEncoder(w)
		err := e.EncodeArchive(a)
		e.release()
		return err
	}

	bw := writerPool.Get().(*bufio.Writer)
	bw.Reset(w)
	e := newPooledEncoder(bw)
	err := e.EncodeArchive(a)
	e.release()
	if err == nil {
		err = bw.Flush()
	}
	bw.Reset(nil)
	writerPool.Put(bw)
	return err
}

// Marshal encodes a into the returned buffer
func Marshal(a *macro.Archive) ([]byte, error) {
	var b bytes.Buffer
	err := Write(&b, a)
	return b.Bytes(), err
}

// Read decodes an archive from r. Declaration names are interned in in.
func Read(r io.Reader, in *token.Interner, lim Limits) (*macro.Archive, error) {
	return NewDecoder(r).DecodeArchive(in, lim)
}

// Unmarshal decodes an archive from buf using DefaultLimits
func Unmarshal(buf []byte, in *token.Interner) (*macro.Archive, error) {
	return Read(bytes.NewReader(buf), in, DefaultLimits)
}

// EncodeArchive writes the header and every record of a
func (e *Encoder) EncodeArchive(a *macro.Archive) error {
	if err := e.EncodeFixedString(magic); err != nil {
		return err
	}
	if err := e.EncodeUnsignedInt(Version); err != nil {
		return err
	}
	if err := e.EncodeLength(a.Len()); err != nil {
		return err
	}

	var err error
	a.Each(func(i int, rec macro.Record) bool {
		if err = e.EncodeRecord(rec); err != nil {
			err = errors.WithFieldError(err, fmt.Sprintf("record[%d]", i), rec.Kind().String())
			return false
		}
		return true
	})
	return err
}

// DecodeArchive reads an archive written by EncodeArchive
func (d *Decoder) DecodeArchive(in *token.Interner, lim Limits) (*macro.Archive, error) {
	m, err := d.DecodeFixedString(len(magic))
	if err != nil {
		return nil, err
	}
	if m != magic {
		return nil, errors.WithFieldError(errors.ErrInvalidValue, "magic")
	}

	v, err := d.DecodeUnsignedInt()
	switch {
	case err != nil:
		return nil, err
	case v != Version:
		return nil, errors.WithFieldError(errors.ErrInvalidValue, "version")
	}

	n, err := d.DecodeLength(lim.MaxRecords)
	if err != nil {
		return nil, errors.WithFieldError(err, "count")
	}

	a := macro.NewArchive()
	rd := recordDecoder{d: d, in: in, lim: lim}
	for i := 0; i < n; i++ {
		rec, err := rd.record()
		if err != nil {
			return nil, errors.WithFieldError(err, fmt.Sprintf("record[%d]", i))
		}
		a.Append(rec)
	}
	return a, nil
}
