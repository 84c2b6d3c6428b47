package roadgrowth

import (
	"math/rand"
	"time"
)

// Random is a seeded RandomF64Provider.
type Random struct {
	seed int64
	rng  *rand.Rand
}

// NewRandom returns a Random with the given seed. A seed of 0 picks one
// from the clock.
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Seed returns the seed in use, useful to reproduce a clock seeded run.
func (r *Random) Seed() int64 {
	return r.seed
}

// Float64 returns a number in [0,1)
func (r *Random) Float64() float64 {
	return r.rng.Float64()
}
