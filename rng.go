// rng.go - deterministic PRNG for grain scheduling jitter

package glaive

import "math/rand"

// engineRNG wraps a seeded math/rand source. The retrieval pack carries no
// MT19937-class generator for Go (the original engine used
// std::mt19937); math/rand's default generator is the closest stdlib
// equivalent and is what every other Go DSP example in the pack reaches
// for (e.g. the granular effect in CWBudde-algo-dsp seeds a *rand.Rand
// per instance rather than touching the global source). It is accessed
// only from the audio thread, never shared.
type engineRNG struct {
	r *rand.Rand
}

func newEngineRNG(seed int64) *engineRNG {
	return &engineRNG{r: rand.New(rand.NewSource(seed))}
}

// unitOpen returns a uniform value in (0, 1], matching the original's
// std::uniform_int_distribution<>(1,100) scaled back to a fraction.
func (e *engineRNG) unitOpen() float32 {
	return float32(e.r.Intn(100)+1) / 100
}

// percent returns a uniform integer in [1, 100], used for the reverse
// probability coin flip.
func (e *engineRNG) percent() int {
	return e.r.Intn(100) + 1
}
