// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over scalars.
//
// Example:
//
//	import "github.com/born-ml/scalargrad/autodiff"
//
//	func main() {
//	    g := autodiff.NewGraph()
//	    x := g.Leaf(2)
//	    w := g.Leaf(0.5)
//	    b := g.Leaf(1)
//
//	    z := x.Mul(w).Add(b).Tanh() // recorded in g
//	    z.Backward()
//
//	    fmt.Println(x.Grad(), w.Grad(), b.Grad())
//	}
package autodiff

import (
	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/parallel"
)

// Graph is an arena that records every value built through it.
type Graph = autodiff.Graph

// NewGraph creates an empty computation graph.
func NewGraph() *Graph {
	return autodiff.NewGraph()
}

// Value is a handle to one scalar node of a Graph.
type Value = autodiff.Value

// Op identifies the primitive that produced a Value.
type Op = autodiff.Op

// Primitives.
const (
	OpLeaf = autodiff.OpLeaf
	OpAdd  = autodiff.OpAdd
	OpMul  = autodiff.OpMul
	OpPow  = autodiff.OpPow
	OpExp  = autodiff.OpExp
	OpTanh = autodiff.OpTanh
	OpReLU = autodiff.OpReLU
	OpLog  = autodiff.OpLog
)

// Gradients is read access to the result of a backward pass.
type Gradients = autodiff.Gradients

// GradientSet holds the gradients of one pass computed with Graph.Gradients.
type GradientSet = autodiff.GradientSet

// GradientSum adds the gradients of several passes.
type GradientSum = autodiff.GradientSum

// ParallelConfig controls how Graph.BatchGradients spreads passes over goroutines.
type ParallelConfig = parallel.Config

// DefaultParallelConfig uses one worker per CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// Backward computes d(root)/dv for every v root depends on and stores the
// results in root's graph.
func Backward(root Value) {
	root.Backward()
}
