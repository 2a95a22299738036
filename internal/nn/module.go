// Package nn implements neural network modules on top of scalar autodiff.
//
// This package provides building blocks for small fully connected networks:
//   - Module interface: anything that owns trainable parameters
//   - Parameter: a named leaf value with a gradient
//   - Neuron, Layer, MLP: act(b + Σ wᵢ·xᵢ) stacked into layers
//   - Activations: Tanh, ReLU, Linear
//   - Loss functions: SumSquaredError, MSE
//
// Every forward call records new nodes in the graph that owns the
// parameters. Training loops usually truncate the graph back to its size
// after construction before each step.
package nn

// Module is the base interface for all neural network components.
//
// Parameters returns every trainable parameter of the module, including the
// parameters of nested modules, in a stable order.
type Module interface {
	Parameters() []*Parameter
}
