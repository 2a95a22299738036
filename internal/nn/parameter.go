package nn

import "github.com/born-ml/scalargrad/internal/autodiff"

// Parameter represents a trainable scalar in a neural network.
//
// It wraps a leaf Value. After a backward pass Grad reports d(loss)/d(param),
// and optimizers write the updated value back with SetData.
type Parameter struct {
	name  string
	value autodiff.Value
}

// NewParameter creates a parameter from a leaf value.
//
// Panics if value is not a leaf.
func NewParameter(name string, value autodiff.Value) *Parameter {
	if !value.IsLeaf() {
		panic("NewParameter: " + name + " must be a leaf value")
	}
	return &Parameter{name: name, value: value}
}

// Name returns the parameter name (e.g., "0.3.weight.1").
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the underlying leaf, for use in forward expressions.
func (p *Parameter) Value() autodiff.Value {
	return p.value
}

// Data returns the current parameter value.
func (p *Parameter) Data() float64 {
	return p.value.Data()
}

// SetData overwrites the parameter value.
func (p *Parameter) SetData(x float64) {
	p.value.SetData(x)
}

// Grad returns the gradient stored in the graph by the last Backward call.
func (p *Parameter) Grad() float64 {
	return p.value.Grad()
}
