package sim

import (
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce identical sink traces.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// RandomSource is the single random stream of a run. It is owned by the
// Sampler; nothing in the module reads the global math/rand state.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type RandomSource struct {
	key   SimulationKey
	rng   *rand.Rand
	draws uint64
}

// NewRandomSource seeds a RandomSource from key.
func NewRandomSource(key SimulationKey) *RandomSource {
	return &RandomSource{
		key: key,
		rng: rand.New(rand.NewSource(int64(key))),
	}
}

// Float64 returns a uniform value in [0.0, 1.0).
func (r *RandomSource) Float64() float64 {
	r.draws++
	return r.rng.Float64()
}

// Intn returns a uniform value in [0, n). Panics if n <= 0.
func (r *RandomSource) Intn(n int) int {
	r.draws++
	return r.rng.Intn(n)
}

// Draws reports how many values have been taken from the stream.
// Two runs that diverge will usually disagree on this count first.
func (r *RandomSource) Draws() uint64 {
	return r.draws
}

// Key returns the SimulationKey used to seed this source.
func (r *RandomSource) Key() SimulationKey {
	return r.key
}
