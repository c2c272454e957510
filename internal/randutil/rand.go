// Package randutil centralises how deterministic random sources are built so
// that a table seed always reproduces the same sequence of shuffles.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// ForHand returns the RNG used to shuffle a specific hand of a table.
// Each hand gets an independent stream so a hand can be reshuffled from
// (seed, hand) alone without replaying earlier hands.
func ForHand(seed int64, hand int) *rand.Rand {
	return New(HandSeed(seed, hand))
}

// HandSeed derives the per-hand seed recorded in hand histories.
func HandSeed(seed int64, hand int) int64 {
	return int64(mix(uint64(seed) ^ (uint64(hand) * goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
