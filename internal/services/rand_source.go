package services

import "math/rand/v2"

// RandSource hands out a generator for one request. Generators are not shared
// between goroutines.
type RandSource func() *rand.Rand

// NewRandSource seeds every generator from the runtime's random source.
func NewRandSource() RandSource {
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// FixedRandSource returns identically seeded generators, so repeated calls
// replay the same sequence.
func FixedRandSource(seed1, seed2 uint64) RandSource {
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(seed1, seed2))
	}
}
