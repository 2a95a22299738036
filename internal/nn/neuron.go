package nn

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Neuron computes act(b + Σ wᵢ·xᵢ) over scalar inputs.
//
// Example:
//
//	g := autodiff.NewGraph()
//	n := nn.NewNeuron(g, 3, nn.Tanh, rand.New(rand.NewSource(42)))
//	y := n.Forward(g.Leaves([]float64{2, 3, -1}))
type Neuron struct {
	weights    []*Parameter
	bias       *Parameter
	activation Activation
}

// NewNeuron creates a neuron with nin weights drawn from U(-1, 1).
// A nil rng uses the default seed.
func NewNeuron(g *autodiff.Graph, nin int, activation Activation, rng *rand.Rand) *Neuron {
	if rng == nil {
		rng = defaultRand()
	}
	return newNeuron(g, "", nin, 1, activation, Uniform, rng)
}

func newNeuron(g *autodiff.Graph, prefix string, nin, fanOut int, activation Activation, initFn Initializer, rng *rand.Rand) *Neuron {
	if nin <= 0 {
		panic(fmt.Sprintf("NewNeuron: input count must be positive, got %d", nin))
	}
	weights := make([]*Parameter, nin)
	for i := range weights {
		name := fmt.Sprintf("%sweight.%d", prefix, i)
		weights[i] = NewParameter(name, g.Leaf(initFn(rng, nin, fanOut)))
	}
	bias := NewParameter(prefix+"bias", g.Leaf(initFn(rng, nin, fanOut)))

	return &Neuron{
		weights:    weights,
		bias:       bias,
		activation: activation,
	}
}

// Forward computes the neuron output for input x.
//
// Panics if len(x) differs from the number of weights.
func (n *Neuron) Forward(x []autodiff.Value) autodiff.Value {
	if len(x) != len(n.weights) {
		panic(fmt.Sprintf("Neuron.Forward: expected %d inputs, got %d", len(n.weights), len(x)))
	}

	act := n.bias.Value()
	for i, w := range n.weights {
		act = act.Add(w.Value().Mul(x[i]))
	}

	return n.activation.Apply(act)
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*Parameter {
	params := make([]*Parameter, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}

// Weights returns the weight parameters.
func (n *Neuron) Weights() []*Parameter {
	return n.weights
}

// Bias returns the bias parameter.
func (n *Neuron) Bias() *Parameter {
	return n.bias
}

// Activation returns the neuron's activation.
func (n *Neuron) Activation() Activation {
	return n.activation
}

// String formats the neuron as "W:[w0 w1 ...] B:b".
func (n *Neuron) String() string {
	ws := make([]float64, len(n.weights))
	for i, w := range n.weights {
		ws[i] = w.Data()
	}
	return fmt.Sprintf("W:%v B:%g", ws, n.bias.Data())
}
