// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package ri

import (
	"bytes"
	"io"
	"testing"
)

func benchArchive(b *testing.B, polys int) *Archive {
	rec := NewRecorder(MustNewContext(DefaultOptions()))
	if _, err := rec.Declare("uv", "facevarying float[2]"); err != nil {
		b.Fatalf("Declare: %s", err)
	}
	rec.WorldBegin()
	for i := 0; i < polys; i++ {
		err := rec.Polygon(4,
			P("P", square()),
			P("uv", []float32{0, 0, 1, 0, 1, 1, 0, 1}),
			P("uniform string label", "quad"),
		)
		if err != nil {
			b.Fatalf("Polygon: %s", err)
		}
	}
	rec.WorldEnd()
	return rec.Archive()
}

func ArchiveBenchmarkCommon(b *testing.B, a *Archive) {
	b.Run("Marshal", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := MarshalArchive(a); err != nil {
				b.Fatalf("Marshal: %s", err)
			}
		}
	})

	b.Run("WriteDiscard", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if err := WriteArchive(io.Discard, a); err != nil {
				b.Fatalf("Write: %s", err)
			}
		}
	})

	b.Run("WriteBuffer", func(b *testing.B) {
		var buf bytes.Buffer
		for i := 0; i < b.N; i++ {
			if err := WriteArchive(&buf, a); err != nil {
				b.Fatalf("Write: %s", err)
			}

			if (i % 64) == 0 {
				buf.Reset()
			}
		}
	})

	buf, err := MarshalArchive(a)
	if err != nil {
		b.Fatalf("Marshal: %s", err)
	}
	b.Run("Unmarshal", func(b *testing.B) {
		ctx := MustNewContext(DefaultOptions())
		b.SetBytes(int64(len(buf)))
		for i := 0; i < b.N; i++ {
			if _, err := ctx.UnmarshalArchive(buf); err != nil {
				b.Fatalf("Unmarshal: %s", err)
			}
		}
	})

	b.Run("Duplicate", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			a.Duplicate()
		}
	})

	b.Run("Replay", func(b *testing.B) {
		var r NopRenderer
		for i := 0; i < b.N; i++ {
			a.Replay(&r, nil)
		}
	})
}

func BenchmarkArchiveSmall(b *testing.B) {
	ArchiveBenchmarkCommon(b, benchArchive(b, 1))
}

func BenchmarkArchiveLarge(b *testing.B) {
	ArchiveBenchmarkCommon(b, benchArchive(b, 256))
}

func BenchmarkRecorderPolygon(b *testing.B) {
	rec := NewRecorder(MustNewContext(DefaultOptions()))
	pts := square()
	for i := 0; i < b.N; i++ {
		if err := rec.Polygon(4, P("P", pts), P("Kd", float32(0.8))); err != nil {
			b.Fatalf("Polygon: %s", err)
		}
	}
}
