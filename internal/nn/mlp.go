package nn

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// ErrMissingParameter is returned by LoadStateDict when a parameter has no entry.
var ErrMissingParameter = errors.New("missing parameter")

// MLPConfig holds configuration for a multi-layer perceptron.
type MLPConfig struct {
	Inputs     int         // Number of input values
	Outputs    []int       // Neurons per layer; the last entry is the network output size
	Activation Activation  // Applied by every neuron (default: Tanh)
	Init       Initializer // Weight and bias initializer (default: Uniform)
	Rand       *rand.Rand  // Source for Init (default: seeded with 1)
}

// MLP chains layers so that each layer's output is the next layer's input.
//
// Example:
//
//	g := autodiff.NewGraph()
//	model := nn.NewMLP(g, nn.MLPConfig{
//	    Inputs:  3,
//	    Outputs: []int{4, 4, 1},
//	    Rand:    rand.New(rand.NewSource(42)),
//	})
//
//	out := model.Forward(g.Leaves([]float64{2, 3, -1}))
type MLP struct {
	layers []*Layer
}

// NewMLP creates the network described by config, allocating all parameters in g.
//
// Panics if Inputs is not positive or Outputs is empty.
func NewMLP(g *autodiff.Graph, config MLPConfig) *MLP {
	if config.Inputs <= 0 {
		panic(fmt.Sprintf("NewMLP: input count must be positive, got %d", config.Inputs))
	}
	if len(config.Outputs) == 0 {
		panic("NewMLP: at least one layer is required")
	}
	if config.Init == nil {
		config.Init = Uniform
	}
	if config.Rand == nil {
		config.Rand = defaultRand()
	}

	layers := make([]*Layer, len(config.Outputs))
	nin := config.Inputs
	for i, nout := range config.Outputs {
		layers[i] = newLayer(g, fmt.Sprintf("%d.", i), nin, nout, config.Activation, config.Init, config.Rand)
		nin = nout
	}

	return &MLP{layers: layers}
}

// Forward applies all layers in sequence.
func (m *MLP) Forward(x []autodiff.Value) []autodiff.Value {
	out := x
	for _, l := range m.layers {
		out = l.Forward(out)
	}
	return out
}

// Parameters returns all parameters, layer by layer.
func (m *MLP) Parameters() []*Parameter {
	var params []*Parameter
	for _, l := range m.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// NumParameters returns the number of trainable scalars.
func (m *MLP) NumParameters() int {
	n := 0
	for _, l := range m.layers {
		n += l.OutFeatures() * (l.InFeatures() + 1)
	}
	return n
}

// Len returns the number of layers.
func (m *MLP) Len() int {
	return len(m.layers)
}

// Layer returns the layer at the given index.
//
// Panics if index is out of bounds.
func (m *MLP) Layer(index int) *Layer {
	if index < 0 || index >= len(m.layers) {
		panic("MLP.Layer: index out of bounds")
	}
	return m.layers[index]
}

// StateDict returns a map of parameter names to values.
//
// Names have the form "<layer>.<neuron>.weight.<input>" and
// "<layer>.<neuron>.bias".
func (m *MLP) StateDict() map[string]float64 {
	params := m.Parameters()
	state := make(map[string]float64, len(params))
	for _, p := range params {
		state[p.Name()] = p.Data()
	}
	return state
}

// LoadStateDict loads parameter values from a state dictionary.
//
// All parameters must be present; on error nothing is modified. Extra keys
// are ignored.
func (m *MLP) LoadStateDict(state map[string]float64) error {
	params := m.Parameters()
	for _, p := range params {
		if _, ok := state[p.Name()]; !ok {
			return fmt.Errorf("LoadStateDict: %q: %w", p.Name(), ErrMissingParameter)
		}
	}
	for _, p := range params {
		p.SetData(state[p.Name()])
	}
	return nil
}

func (m *MLP) String() string {
	parts := make([]string, len(m.layers))
	for i, l := range m.layers {
		parts[i] = l.String()
	}
	return "MLP(" + strings.Join(parts, ", ") + ")"
}
