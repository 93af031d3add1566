// Package ints defines set of small non-negative integers.
package ints

import (
	"math/bits"
)

const chunkBits = 64

// Set is a bit set of non-negative integers. Zero value is an empty set.
type Set struct {
	chunks []uint64
}

// NewSet creates set containing items.
func NewSet(items ...int) *Set {
	s := &Set{}
	s.Add(items...)
	return s
}

func (s *Set) grow(item int) {
	need := item/chunkBits + 1
	if need > len(s.chunks) {
		s.chunks = append(s.chunks, make([]uint64, need-len(s.chunks))...)
	}
}

// Add adds items to the set, negative items are ignored.
func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}
		s.grow(item)
		s.chunks[item/chunkBits] |= 1 << (item % chunkBits)
	}
	return s
}

// Remove removes items from the set.
func (s *Set) Remove(items ...int) *Set {
	for _, item := range items {
		if item >= 0 && item/chunkBits < len(s.chunks) {
			s.chunks[item/chunkBits] &^= 1 << (item % chunkBits)
		}
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if item < 0 || item/chunkBits >= len(s.chunks) {
		return false
	}
	return s.chunks[item/chunkBits]&(1<<(item%chunkBits)) != 0
}

func (s *Set) Len() int {
	res := 0
	for _, chunk := range s.chunks {
		res += bits.OnesCount64(chunk)
	}
	return res
}

// Union adds all items of other set, reports whether the set has changed.
func (s *Set) Union(other *Set) bool {
	changed := false
	if len(other.chunks) > len(s.chunks) {
		s.grow(len(other.chunks)*chunkBits - 1)
	}
	for i, chunk := range other.chunks {
		merged := s.chunks[i] | chunk
		if merged != s.chunks[i] {
			s.chunks[i] = merged
			changed = true
		}
	}
	return changed
}

// Copy returns an independent copy of the set.
func (s *Set) Copy() *Set {
	return &Set{chunks: append([]uint64(nil), s.chunks...)}
}

// ToSlice returns set items in ascending order.
func (s *Set) ToSlice() []int {
	res := make([]int, 0, s.Len())
	for i, chunk := range s.chunks {
		for chunk != 0 {
			bit := bits.TrailingZeros64(chunk)
			res = append(res, i*chunkBits+bit)
			chunk &= chunk - 1
		}
	}
	return res
}
