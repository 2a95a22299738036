package nn

import (
	"fmt"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// SumSquaredError computes Σ (predictionᵢ - targetᵢ)².
//
// Panics if the slices are empty or differ in length.
func SumSquaredError(predictions, targets []autodiff.Value) autodiff.Value {
	if len(predictions) != len(targets) {
		panic(fmt.Sprintf("SumSquaredError: %d predictions for %d targets", len(predictions), len(targets)))
	}
	if len(predictions) == 0 {
		panic("SumSquaredError: empty input")
	}

	g := predictions[0].Graph()
	terms := make([]autodiff.Value, len(predictions))
	for i, p := range predictions {
		terms[i] = p.Sub(targets[i]).Pow(2)
	}

	return g.Sum(terms)
}

// MSE computes mean((predictionᵢ - targetᵢ)²).
func MSE(predictions, targets []autodiff.Value) autodiff.Value {
	sse := SumSquaredError(predictions, targets)
	return sse.MulScalar(1 / float64(len(predictions)))
}
