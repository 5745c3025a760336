package core

import "math/rand/v2"

// RNG is the single random stream a simulation draws from. It wraps
// math/rand/v2 with PCG seeding so runs are reproducible per seed.
type RNG struct {
	r    *rand.Rand
	seed int64
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0)), seed: seed}
}

// Seed returns the seed the stream was last reset with.
func (r *RNG) Seed() int64 { return r.seed }

// Reseed restarts the stream from the provided seed.
func (r *RNG) Reseed(seed int64) {
	r.seed = seed
	r.r = rand.New(rand.NewPCG(uint64(seed), 0))
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Chance reports whether a uniform draw falls below p. Values of p at or
// below zero never succeed and values at or above one always do, without
// consuming a draw in either case.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.r.Float64() < p
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Sign returns -1 or +1 with equal probability.
func (r *RNG) Sign() int {
	if r.r.IntN(2) == 1 {
		return 1
	}
	return -1
}

// Shuffle randomizes the order of n elements using swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.r.Shuffle(n, swap)
}
