// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package coder

import (
	"io"
	"math"

	"go.e43.eu/ri/internal/errors"
)

// Decoder reads the primitives written by Encoder
type Decoder struct {
	r io.Reader
}

// NewDecoder returns a decoder reading from r
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

func (d *Decoder) DecodeBool() (bool, error) {
	i, err := d.DecodeUnsignedInt()
	switch {
	case err != nil:
		return false, err
	case i == 0:
		return false, nil
	case i == 1:
		return true, nil
	default:
		return false, errors.ErrInvalidValue
	}
}

func (d *Decoder) DecodeInt() (int32, error) {
	u, err := d.DecodeUnsignedInt()
	return int32(u), err
}

func (d *Decoder) DecodeUnsignedInt() (uint32, error) {
	var b [4]byte
	_, err := io.ReadFull(d.r, b[:])
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), err
}

func (d *Decoder) DecodeFloat() (float32, error) {
	i, err := d.DecodeUnsignedInt()
	return math.Float32frombits(i), err
}

// DecodeLength reads a count and checks it against maxLen
func (d *Decoder) DecodeLength(maxLen int) (int, error) {
	l, err := d.DecodeUnsignedInt()
	switch {
	case err != nil:
		return 0, err
	case uint64(l) > uint64(maxLen):
		return 0, errors.LengthError{Actual: uint64(l), Max: uint64(maxLen)}
	}
	return int(l), nil
}

func (d *Decoder) DecodeOpaque(maxLen int) ([]byte, error) {
	l, err := d.DecodeLength(maxLen)
	switch {
	case err != nil:
		return nil, err
	case l == 0:
		return nil, nil
	}

	buf := make([]byte, (l + 3) & ^3)
	if _, err = io.ReadFull(d.r, buf); err != nil {
		return nil, err
	}
	return buf[0:l], nil
}

func (d *Decoder) DecodeFixedOpaque(buf []byte) error {
	var discard [4]byte

	n, err := io.ReadFull(d.r, buf)
	if err != nil {
		return err
	}

	// Discard any padding
	n = ((n + 3) & ^3) - n
	if n != 0 {
		_, err = io.ReadFull(d.r, discard[0:n])
	}
	return err
}

func (d *Decoder) DecodeString(maxLen int) (string, error) {
	b, err := d.DecodeOpaque(maxLen)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *Decoder) DecodeFixedString(len int) (string, error) {
	b := make([]byte, len)
	err := d.DecodeFixedOpaque(b)
	return string(b), err
}

// DecodeFloats reads a counted array of at most maxLen floats
func (d *Decoder) DecodeFloats(maxLen int) ([]float32, error) {
	n, err := d.DecodeLength(maxLen)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		if out[i], err = d.DecodeFloat(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DecodeInts reads a counted array of at most maxLen ints
func (d *Decoder) DecodeInts(maxLen int) ([]int32, error) {
	n, err := d.DecodeLength(maxLen)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		if out[i], err = d.DecodeInt(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *Decoder) DecodeOptString(maxLen int) (*string, error) {
	present, err := d.DecodeBool()
	if err != nil || !present {
		return nil, err
	}
	s, err := d.DecodeString(maxLen)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
