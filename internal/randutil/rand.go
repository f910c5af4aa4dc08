// Package randutil builds the seedable random sources used for shuffling.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a PCG-backed *rand.Rand derived deterministically from seed.
// Two sources built from the same seed produce the same shuffle sequence.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(splitmix(u), splitmix(u+goldenRatio64)))
}

// Resolve returns seed unchanged unless it is zero, in which case a
// time-derived seed is returned so the caller can log and replay it.
func Resolve(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// Derive returns the seed for the n-th independent stream under base.
func Derive(base int64, n int) int64 {
	return int64(splitmix(uint64(base) + uint64(n)*goldenRatio64))
}

func splitmix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
