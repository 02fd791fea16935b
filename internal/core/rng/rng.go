// Package rng provides the seeded random source threaded through every generator
package rng

import "math/rand/v2"

// Source is the draw surface generators consume
// *rand.Rand satisfies it; tests may plug in scripted sources
type Source interface {
	IntN(n int) int
	Float64() float64
}

// New returns a PCG-backed source seeded from seed
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Between returns a uniform int in the closed range [lo, hi]
func Between(r Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Pick returns a uniform element of xs, panics on an empty slice
func Pick[T any](r Source, xs []T) T {
	if len(xs) == 0 {
		panic("rng: pick from empty slice")
	}
	return xs[r.IntN(len(xs))]
}

// Chance reports true with probability p
func Chance(r Source, p float64) bool {
	return r.Float64() < p
}
