// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package coder

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.e43.eu/ri/internal/macro"
	"go.e43.eu/ri/internal/token"
)

type testDirection int

const (
	bothTest testDirection = iota
	encodeTest
	decodeTest
	// decodeTest through a singleByteReader
	singleByteTest
)

// comparingWriter is an io.Writer which immediately compares every byte
// written to it against the values read from the passed reader. This
// enables capturing the call stack at the time any discrepancy in the
// written data occurs
//
// It captures the written data so that a final comparison (which may somtimes
// be more informative) can also be made
type comparingWriter struct {
	T *testing.T

	// The reader
	R io.Reader

	// Error returned by reader
	Rerr error

	// Bytes written
	B []byte

	// Bytes expected
	X []byte
}

func newComparingWriter(t *testing.T, r io.Reader) *comparingWriter {
	return &comparingWriter{
		T: t,
		R: r,
	}
}

func (w *comparingWriter) Write(buf []byte) (int, error) {
	w.T.Helper()

	w.B = append(w.B, buf...)

	var expected []byte
	if w.Rerr == nil {
		expected = make([]byte, len(buf))
		nr, err := io.ReadFull(w.R, expected)
		expected = expected[0:nr]
		w.X = append(w.X, expected...)
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}

		if err != nil {
			require.Equal(w.T, io.EOF, err, "comparingWriter: Comparison reader returned non-EOF error")
			assert.Failf(w.T, "Attempt to write after end", "Attempt to write %d bytes after end of expected data", len(buf)-nr)
			w.Rerr = err
		}
	}

	if len(expected) != 0 {
		assert.Equalf(w.T, expected, buf[0:len(expected)], "Expected equal value during %d byte write", len(buf))
	}

	return len(buf), nil
}

func (w *comparingWriter) Assert() {
	buf := make([]byte, 1024)
	err := w.Rerr

	var n int
	for err == nil {
		n, err = w.R.Read(buf)
		w.X = append(w.X, buf[0:n]...)
		if err != nil {
			require.Equal(w.T, io.EOF, err, "comparingWriter: Comparison reader must only return io.EOF error")
		}
	}

	assert.Equalf(w.T, w.X, w.B, "Expected written data to match expected")
}

// singleByteReader is a really annoying io.Reader which returns a single byte at a time
type singleByteReader struct {
	R io.Reader
}

func (r *singleByteReader) Read(buf []byte) (int, error) {
	switch {
	case len(buf) == 0:
		return 0, nil
	default:
		return r.R.Read(buf[0:1])
	}
}

type testcase struct {
	// Name of this test case
	Name string

	// Which directions to run this test in (defaults to both)
	Direction testDirection

	// The records to encode, or to compare against after decoding
	Records []macro.Record

	// The encoded representation
	Bytes []byte

	// Error expected on en/decode
	EncErrorIs error
	DecErrorIs error
}

func archiveOf(recs ...macro.Record) *macro.Archive {
	a := macro.NewArchive()
	for _, r := range recs {
		a.Append(r)
	}
	return a
}

// header returns the archive header for n records
func header(n byte) []byte {
	return []byte{'R', 'I', 'A', 'R', 0, 0, 0, 1, 0, 0, 0, n}
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func runTestcases(t *testing.T, tcs []testcase) {
	generated := append([]testcase(nil), tcs...)

	// For every case where the decoder is tested, build a variant with
	// the single byte reader
	for _, tc := range tcs {
		if tc.Direction == encodeTest {
			continue
		}
		tc := tc
		tc.Name += "+singleByteReader"
		tc.Direction = singleByteTest
		generated = append(generated, tc)
	}

	for _, tc := range generated {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			if tc.Direction == bothTest || tc.Direction == encodeTest {
				var w io.Writer = io.Discard
				if tc.EncErrorIs == nil {
					w = newComparingWriter(t, bytes.NewReader(tc.Bytes))
				}
				err := Write(w, archiveOf(tc.Records...))
				if tc.EncErrorIs != nil {
					require.Error(t, err, "Encoding should have returned an error")
					require.Truef(t, errors.Is(err, tc.EncErrorIs), "Error expected to be %s, but was %s", tc.EncErrorIs, err)
				} else {
					require.NoError(t, err, "Encode should succeed")
					w.(*comparingWriter).Assert()
				}
			}

			if tc.Direction != encodeTest {
				var r io.Reader = bytes.NewReader(tc.Bytes)
				if tc.Direction == singleByteTest {
					r = &singleByteReader{r}
				}

				a, err := Read(r, token.New(), DefaultLimits)
				if tc.DecErrorIs != nil {
					if assert.Error(t, err, "Decoding should have returned an error") {
						assert.Truef(t, errors.Is(err, tc.DecErrorIs), "Error expected to be %s, but was %s", tc.DecErrorIs, err)
					}
					return
				}

				require.NoError(t, err, "Decode should succeed")
				nb, err := io.Copy(io.Discard, r)
				assert.NoError(t, err, "Should have no error draining tail")
				assert.Equal(t, int64(0), nb, "Decoder left trailing bytes after end")
				assert.Equal(t, tc.Records, a.Records(), "decoded records should match")
			}
		})
	}
}
