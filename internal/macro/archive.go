// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package macro

import "src.elv.sh/pkg/persistent/vector"

// Archive is an append-only sequence of records. The sequence is persistent:
// Snapshot and the transforms are constant or linear time and never change
// the receiver, and replay iterates a snapshot taken when it starts.
//
// An Archive is not safe for concurrent use; take a Snapshot to hand one to
// another goroutine.
type Archive struct {
	v vector.Vector
}

// NewArchive returns an empty archive
func NewArchive() *Archive {
	return &Archive{v: vector.Empty}
}

func (a *Archive) vec() vector.Vector {
	if a.v == nil {
		return vector.Empty
	}
	return a.v
}

// Append adds rec to the end of the archive. The archive takes ownership.
func (a *Archive) Append(rec Record) {
	if rec == nil {
		panic("macro: append of nil record")
	}
	a.v = a.vec().Conj(rec)
}

// Len returns the number of records
func (a *Archive) Len() int {
	return a.vec().Len()
}

// At returns record i
func (a *Archive) At(i int) Record {
	v, ok := a.vec().Index(i)
	if !ok {
		panic("macro: archive index out of range")
	}
	return v.(Record)
}

// Each calls fn for each record in append order until fn returns false
func (a *Archive) Each(fn func(i int, rec Record) bool) {
	i := 0
	for it := a.vec().Iterator(); it.HasElem(); it.Next() {
		if !fn(i, it.Elem().(Record)) {
			return
		}
		i++
	}
}

// Records returns the records in append order
func (a *Archive) Records() []Record {
	out := make([]Record, 0, a.Len())
	a.Each(func(_ int, rec Record) bool {
		out = append(out, rec)
		return true
	})
	return out
}

// Kinds returns the kind of each record in order
func (a *Archive) Kinds() []Kind {
	out := make([]Kind, 0, a.Len())
	a.Each(func(_ int, rec Record) bool {
		out = append(out, rec.Kind())
		return true
	})
	return out
}

// Snapshot returns an archive holding the current records. Records
// appended to either archive afterwards are not seen by the other; the
// records themselves are shared.
func (a *Archive) Snapshot() *Archive {
	return &Archive{v: a.vec()}
}

// Duplicate returns an archive holding a deep copy of every record
func (a *Archive) Duplicate() *Archive {
	return a.Map(func(rec Record) Record { return rec.Duplicate() })
}

// Filter returns an archive of the records for which keep returns true
func (a *Archive) Filter(keep func(Record) bool) *Archive {
	n := NewArchive()
	a.Each(func(_ int, rec Record) bool {
		if keep(rec) {
			n.v = n.v.Conj(rec)
		}
		return true
	})
	return n
}

// Map returns an archive of fn applied to each record. Records for which
// fn returns nil are dropped.
func (a *Archive) Map(fn func(Record) Record) *Archive {
	n := NewArchive()
	a.Each(func(_ int, rec Record) bool {
		if m := fn(rec); m != nil {
			n.v = n.v.Conj(m)
		}
		return true
	})
	return n
}

// Replay runs each record against r in append order. Only records which
// receive handles from the renderer are modified.
func (a *Archive) Replay(r Renderer, cb ArchiveCallback) {
	a.Snapshot().Each(func(_ int, rec Record) bool {
		Process(rec, r, cb)
		return true
	})
}
