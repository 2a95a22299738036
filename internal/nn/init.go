package nn

import (
	"math"
	"math/rand"
)

// Initializer draws an initial parameter value for a neuron with fanIn
// inputs in a layer of fanOut neurons.
type Initializer func(rng *rand.Rand, fanIn, fanOut int) float64

// Uniform draws from U(-1, 1) regardless of layer size.
func Uniform(rng *rand.Rand, _, _ int) float64 {
	return rng.Float64()*2 - 1
}

// Xavier (Glorot) initialization.
//
// Draws from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))), which
// keeps the variance of activations roughly constant across layers.
func Xavier(rng *rand.Rand, fanIn, fanOut int) float64 {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return (rng.Float64()*2 - 1) * bound
}

// Zeros always returns 0.
func Zeros(_ *rand.Rand, _, _ int) float64 {
	return 0
}

// defaultRand returns the generator used when a config leaves Rand nil.
func defaultRand() *rand.Rand {
	//nolint:gosec // Weight initialization is not security-critical.
	return rand.New(rand.NewSource(1))
}
