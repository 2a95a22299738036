package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Activation is the non-linearity applied to a neuron's weighted sum.
type Activation uint8

// Supported activations.
const (
	Tanh Activation = iota
	ReLU
	Linear
)

// Apply applies the activation to v.
func (a Activation) Apply(v autodiff.Value) autodiff.Value {
	switch a {
	case Tanh:
		return v.Tanh()
	case ReLU:
		return v.ReLU()
	case Linear:
		return v
	default:
		panic(fmt.Sprintf("Activation.Apply: unknown activation %d", a))
	}
}

// String returns the activation name.
func (a Activation) String() string {
	switch a {
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Activation(%d)", uint8(a))
	}
}

// ParseActivation converts a name ("tanh", "relu", "linear") to an Activation.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(name) {
	case "tanh":
		return Tanh, nil
	case "relu":
		return ReLU, nil
	case "linear", "none":
		return Linear, nil
	default:
		return 0, fmt.Errorf("unknown activation %q", name)
	}
}
