package nn

import (
	"fmt"
	"math/rand"
)

// Initializer produces the initial value of one parameter.
//
// Implementations should return values in [-1, 1].
type Initializer func() float64

// Uniform draws parameters from U(-1, 1) using rng.
//
// Example:
//
//	init := nn.Uniform(rand.New(rand.NewSource(1337)))
func Uniform(rng *rand.Rand) Initializer {
	return func() float64 {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		return rng.Float64()*2.0 - 1.0
	}
}

// Constant initializes every parameter to v.
func Constant(v float64) Initializer {
	return func() float64 {
		return v
	}
}

// Sequence replays vs in order, one value per parameter.
//
// Parameters are drawn neuron by neuron: every weight of a neuron in input
// order, then its bias. Panics if more values are requested than provided.
func Sequence(vs ...float64) Initializer {
	i := 0
	return func() float64 {
		if i >= len(vs) {
			panic(fmt.Sprintf("nn.Sequence: requested value %d, only %d provided", i+1, len(vs)))
		}
		v := vs[i]
		i++
		return v
	}
}

// defaultInitializer is used when a constructor receives a nil Initializer.
func defaultInitializer() Initializer {
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	return Uniform(rand.New(rand.NewSource(rand.Int63())))
}
