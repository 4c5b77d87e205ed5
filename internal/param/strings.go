// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package param

// stringTable holds the contents of a string array in one owned block, with
// each string followed by a NUL terminator. index gives the offset of each
// entry within block, or -1 for a null entry, and ends the offset of its
// terminator. Strings may themselves contain NUL.
type stringTable struct {
	block []byte
	index []int32
	ends  []int32
}

func stringBlockSize(src []*string) uint64 {
	var n uint64
	for _, s := range src {
		if s != nil {
			n += uint64(len(*s)) + 1
		}
	}
	return n
}

func newStringTable(src []*string) stringTable {
	t := stringTable{
		block: make([]byte, 0, stringBlockSize(src)),
		index: make([]int32, len(src)),
		ends:  make([]int32, len(src)),
	}
	for i, s := range src {
		if s == nil {
			t.index[i], t.ends[i] = -1, -1
			continue
		}
		t.index[i] = int32(len(t.block))
		t.block = append(t.block, *s...)
		t.ends[i] = int32(len(t.block))
		t.block = append(t.block, 0)
	}
	return t
}

func (t stringTable) len() int {
	return len(t.index)
}

func (t stringTable) at(i int) (string, bool) {
	off := t.index[i]
	if off < 0 {
		return "", false
	}
	return string(t.block[off:t.ends[i]]), true
}

// clone copies the block together with its index
func (t stringTable) clone() stringTable {
	return stringTable{
		block: cloneSlice(t.block),
		index: cloneSlice(t.index),
		ends:  cloneSlice(t.ends),
	}
}
