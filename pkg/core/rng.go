package core

import "math/rand/v2"

// RNG wraps math/rand/v2 with deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.r.Float64() < p
}

// Int64 returns a non-negative pseudo-random int64, used to derive child seeds.
func (r *RNG) Int64() int64 { return r.r.Int64() }

// FillDensity sets each cell alive with probability density.
func (r *RNG) FillDensity(buf []uint8, density float64) {
	for i := range buf {
		if r.Chance(density) {
			buf[i] = Alive
		} else {
			buf[i] = Dead
		}
	}
}
