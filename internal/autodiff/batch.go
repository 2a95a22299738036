package autodiff

import "github.com/born-ml/scalargrad/internal/parallel"

// BatchGradients runs one per-pass backward for each root and returns the
// sets in the same order.
//
// Passes run concurrently according to cfg. The graph must not be extended
// while the call is in progress.
func (g *Graph) BatchGradients(roots []Value, cfg parallel.Config) []*GradientSet {
	for _, r := range roots {
		g.check(r)
	}
	sets := make([]*GradientSet, len(roots))
	parallel.For(len(roots), func(i int) {
		sets[i] = g.Gradients(roots[i])
	}, cfg)
	return sets
}

// GradientSum adds the gradients of several passes.
//
// For roots r₁…rₙ the result equals the gradients of r₁ + … + rₙ.
type GradientSum []*GradientSet

// Grad returns Σ d(rootᵢ)/dv.
func (s GradientSum) Grad(v Value) float64 {
	var sum float64
	for _, set := range s {
		sum += set.Grad(v)
	}
	return sum
}
