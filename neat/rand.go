package neat

import "math/rand"

// Rand is the source of randomness used by every mutation and breeding
// operation. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// globalRand forwards to the package-level math/rand functions.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) Intn(n int) int   { return rand.Intn(n) }

// orGlobal returns rng, or the shared math/rand source when rng is nil.
func orGlobal(rng Rand) Rand {
	if rng == nil {
		return globalRand{}
	}
	return rng
}

// uniformWeight draws a weight uniformly from [-1, 1).
func uniformWeight(rng Rand) float64 {
	return orGlobal(rng).Float64()*2.0 - 1.0
}

// chance reports whether an event with probability p happens.
// p <= 0 never fires and p >= 1 always does.
func chance(rng Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return orGlobal(rng).Float64() < p
}
