// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/nn"
)

// Module interface defines the common interface for all neural network modules.
type Module = nn.Module

// Parameter represents a trainable scalar.
type Parameter = nn.Parameter

// NewParameter creates a new parameter from a leaf value.
func NewParameter(name string, value autodiff.Value) *Parameter {
	return nn.NewParameter(name, value)
}

// Activation is the non-linearity applied by a neuron.
type Activation = nn.Activation

// Activations.
const (
	Tanh   = nn.Tanh
	ReLU   = nn.ReLU
	Linear = nn.Linear
)

// ParseActivation converts a name to an Activation.
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// Initializer draws initial parameter values.
type Initializer = nn.Initializer

// Initializers.
var (
	Uniform Initializer = nn.Uniform
	Xavier  Initializer = nn.Xavier
	Zeros   Initializer = nn.Zeros
)

// Neuron computes act(b + Σ wᵢ·xᵢ).
type Neuron = nn.Neuron

// NewNeuron creates a neuron with nin inputs.
func NewNeuron(g *autodiff.Graph, nin int, activation Activation, rng *rand.Rand) *Neuron {
	return nn.NewNeuron(g, nin, activation, rng)
}

// Layer is a set of neurons reading the same input.
type Layer = nn.Layer

// NewLayer creates a layer of nout neurons with nin inputs each.
func NewLayer(g *autodiff.Graph, nin, nout int, activation Activation, rng *rand.Rand) *Layer {
	return nn.NewLayer(g, nin, nout, activation, rng)
}

// MLP is a multi-layer perceptron.
type MLP = nn.MLP

// MLPConfig holds configuration for NewMLP.
type MLPConfig = nn.MLPConfig

// NewMLP creates a multi-layer perceptron.
//
// Example:
//
//	model := nn.NewMLP(g, nn.MLPConfig{Inputs: 3, Outputs: []int{4, 4, 1}})
func NewMLP(g *autodiff.Graph, config MLPConfig) *MLP {
	return nn.NewMLP(g, config)
}

// ErrMissingParameter is returned by LoadStateDict when a parameter has no entry.
var ErrMissingParameter = nn.ErrMissingParameter

// SumSquaredError computes Σ (predictionᵢ - targetᵢ)².
func SumSquaredError(predictions, targets []autodiff.Value) autodiff.Value {
	return nn.SumSquaredError(predictions, targets)
}

// MSE computes mean((predictionᵢ - targetᵢ)²).
func MSE(predictions, targets []autodiff.Value) autodiff.Value {
	return nn.MSE(predictions, targets)
}
