// Package random provides a seeded random state whose permutations match
// NumPy's legacy numpy.random.RandomState bit for bit.
//
// The generator is the 32-bit Mersenne Twister seeded with init_genrand, and
// bounded integers are drawn by masked rejection sampling, so a split made
// with seed 42 selects the same rows as the reference Python tooling.
package random

import (
	"gonum.org/v1/gonum/mathext/prng"
)

// RandomState is a deterministic source of permutations.
// It is not safe for concurrent use.
type RandomState struct {
	seed uint32
	src  *prng.MT19937
}

// NewRandomState returns a RandomState seeded like RandomState(seed).
func NewRandomState(seed uint32) *RandomState {
	src := prng.NewMT19937()
	src.Seed(uint64(seed))
	return &RandomState{seed: seed, src: src}
}

// Seed returns the seed the state was created with.
func (rs *RandomState) Seed() uint32 {
	return rs.seed
}

// Uint32 returns the next raw 32-bit output of the generator.
func (rs *RandomState) Uint32() uint32 {
	return rs.src.Uint32()
}

// Interval returns a uniformly distributed integer in [0, max].
//
// Draws are masked to the smallest all-ones bit pattern covering max and
// rejected while they exceed it. Values of max that fit in 32 bits consume
// one 32-bit output per draw.
func (rs *RandomState) Interval(max uint64) uint64 {
	if max == 0 {
		return 0
	}

	mask := max
	mask |= mask >> 1
	mask |= mask >> 2
	mask |= mask >> 4
	mask |= mask >> 8
	mask |= mask >> 16
	mask |= mask >> 32

	if max <= 0xffffffff {
		for {
			if value := uint64(rs.src.Uint32()) & mask; value <= max {
				return value
			}
		}
	}
	for {
		if value := rs.src.Uint64() & mask; value <= max {
			return value
		}
	}
}

// Shuffle permutes idx in place, walking from the last element down.
func (rs *RandomState) Shuffle(idx []int) {
	for i := len(idx) - 1; i > 0; i-- {
		j := int(rs.Interval(uint64(i)))
		idx[i], idx[j] = idx[j], idx[i]
	}
}

// Permutation returns a shuffled copy of 0..n-1.
func (rs *RandomState) Permutation(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rs.Shuffle(idx)
	return idx
}
