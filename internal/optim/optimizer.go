// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
//	mark := g.Len()
//
//	for epoch := range epochs {
//	    g.Truncate(mark)
//	    loss := nn.SumSquaredError(predict(model, xs), ys)
//	    loss.Backward()
//	    optimizer.Step(g)
//	}
package optim

import "github.com/born-ml/scalargrad/internal/autodiff"

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers update leaf parameters from the gradients of one backward pass
// to minimize the loss.
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	//
	// grads is either the graph itself (after Backward) or a GradientSet
	// returned by Graph.Gradients.
	Step(grads autodiff.Gradients)

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}
