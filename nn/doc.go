// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides scalar neural network building blocks.
//
// # Overview
//
// This package contains:
//   - Neuron, Layer, MLP: fully connected networks over autodiff values
//   - Activations: Tanh, ReLU, Linear
//   - Loss functions: SumSquaredError, MSE
//   - Initialization: Uniform, Xavier, Zeros
//   - Utilities: Module interface, Parameter, StateDict
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/scalargrad/autodiff"
//	    "github.com/born-ml/scalargrad/nn"
//	)
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    model := nn.NewMLP(g, nn.MLPConfig{
//	        Inputs:  3,
//	        Outputs: []int{4, 4, 1},
//	        Rand:    rand.New(rand.NewSource(42)),
//	    })
//
//	    out := model.Forward(g.Leaves([]float64{2, 3, -1}))
//	    loss := nn.SumSquaredError(out, g.Leaves([]float64{1}))
//	    loss.Backward()
//
//	    for _, p := range model.Parameters() {
//	        p.SetData(p.Data() - 0.01*p.Grad())
//	    }
//	}
//
// # Parameter Management
//
// Parameters are created in the graph before any forward pass. Record
// g.Len() after construction and call g.Truncate with it before each step
// to discard the previous step's expressions.
package nn
