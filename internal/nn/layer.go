package nn

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Layer is a set of independent neurons that all read the same input.
type Layer struct {
	inFeatures int
	neurons    []*Neuron
}

// NewLayer creates a layer of nout neurons with nin inputs each.
func NewLayer(g *autodiff.Graph, nin, nout int, activation Activation, rng *rand.Rand) *Layer {
	if rng == nil {
		rng = defaultRand()
	}
	return newLayer(g, "", nin, nout, activation, Uniform, rng)
}

func newLayer(g *autodiff.Graph, prefix string, nin, nout int, activation Activation, initFn Initializer, rng *rand.Rand) *Layer {
	if nout <= 0 {
		panic(fmt.Sprintf("NewLayer: output count must be positive, got %d", nout))
	}
	neurons := make([]*Neuron, nout)
	for i := range neurons {
		neurons[i] = newNeuron(g, fmt.Sprintf("%s%d.", prefix, i), nin, nout, activation, initFn, rng)
	}
	return &Layer{inFeatures: nin, neurons: neurons}
}

// Forward returns one output per neuron.
func (l *Layer) Forward(x []autodiff.Value) []autodiff.Value {
	out := make([]autodiff.Value, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = n.Forward(x)
	}
	return out
}

// Parameters returns the parameters of every neuron in order.
func (l *Layer) Parameters() []*Parameter {
	var params []*Parameter
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// Neurons returns the neurons of the layer.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// InFeatures returns the number of inputs.
func (l *Layer) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of neurons.
func (l *Layer) OutFeatures() int {
	return len(l.neurons)
}

func (l *Layer) String() string {
	parts := make([]string, len(l.neurons))
	for i, n := range l.neurons {
		parts[i] = n.String()
	}
	return "[ " + strings.Join(parts, " ") + " ]"
}
