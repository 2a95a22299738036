package autodiff

import (
	"fmt"
	"math"
)

// Op identifies the primitive that produced a node.
//
// Local backward rules, for incoming gradient g on the result y:
//   - Add:  a.grad += g, b.grad += g
//   - Mul:  a.grad += b·g, b.grad += a·g
//   - Pow:  a.grad += n·a^(n-1)·g
//   - Exp:  a.grad += y·g
//   - Tanh: a.grad += (1 - y²)·g
//   - ReLU: a.grad += g if a > 0
//   - Log:  a.grad += g / a
//
// Neg, Sub and Div are not primitives: they are built from Mul, Add and Pow
// and therefore leave real intermediate nodes in the graph.
type Op uint8

// Supported primitives.
const (
	OpLeaf Op = iota
	OpAdd
	OpMul
	OpPow
	OpExp
	OpTanh
	OpReLU
	OpLog
)

var opNames = [...]string{
	OpLeaf: "leaf",
	OpAdd:  "add",
	OpMul:  "mul",
	OpPow:  "pow",
	OpExp:  "exp",
	OpTanh: "tanh",
	OpReLU: "relu",
	OpLog:  "log",
}

// String returns the lowercase name of the op.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Arity returns the number of operand nodes the op consumes.
func (o Op) Arity() int {
	switch o {
	case OpLeaf:
		return 0
	case OpAdd, OpMul:
		return 2
	default:
		return 1
	}
}

// Add returns v + o.
func (v Value) Add(o Value) Value {
	a := v.rec().data
	v.g.check(o)
	b := v.g.nodes[o.id].data
	return v.g.push(node{data: a + b, op: OpAdd, inputs: [2]int{v.id, o.id}})
}

// Mul returns v · o.
func (v Value) Mul(o Value) Value {
	a := v.rec().data
	v.g.check(o)
	b := v.g.nodes[o.id].data
	return v.g.push(node{data: a * b, op: OpMul, inputs: [2]int{v.id, o.id}})
}

// Pow returns v^n for a constant exponent n.
func (v Value) Pow(n float64) Value {
	a := v.rec().data
	return v.g.push(node{data: math.Pow(a, n), op: OpPow, inputs: [2]int{v.id}, exponent: n})
}

// Exp returns e^v.
func (v Value) Exp() Value {
	a := v.rec().data
	return v.g.push(node{data: math.Exp(a), op: OpExp, inputs: [2]int{v.id}})
}

// Tanh returns the hyperbolic tangent of v.
func (v Value) Tanh() Value {
	a := v.rec().data
	return v.g.push(node{data: math.Tanh(a), op: OpTanh, inputs: [2]int{v.id}})
}

// ReLU returns max(0, v).
func (v Value) ReLU() Value {
	a := v.rec().data
	return v.g.push(node{data: math.Max(0, a), op: OpReLU, inputs: [2]int{v.id}})
}

// Log returns the natural logarithm of v.
func (v Value) Log() Value {
	a := v.rec().data
	return v.g.push(node{data: math.Log(a), op: OpLog, inputs: [2]int{v.id}})
}

// Neg returns -v, computed as v · (-1).
func (v Value) Neg() Value {
	return v.Mul(v.g.Leaf(-1))
}

// Sub returns v - o, computed as v + (-o).
func (v Value) Sub(o Value) Value {
	return v.Add(o.Neg())
}

// Div returns v / o, computed as v · o^(-1).
//
// Division by zero follows IEEE-754 and yields ±Inf or NaN.
func (v Value) Div(o Value) Value {
	return v.Mul(o.Pow(-1))
}

// AddScalar returns v + x with x recorded as a new leaf.
func (v Value) AddScalar(x float64) Value {
	return v.Add(v.g.Leaf(x))
}

// MulScalar returns v · x with x recorded as a new leaf.
func (v Value) MulScalar(x float64) Value {
	return v.Mul(v.g.Leaf(x))
}

// Sum returns the sum of values, folded left onto a zero leaf.
func (g *Graph) Sum(values []Value) Value {
	acc := g.Leaf(0)
	for _, v := range values {
		acc = acc.Add(v)
	}
	return acc
}

// propagate applies the local backward rule of node id, adding its
// contribution into grads of the operands.
func (g *Graph) propagate(id int, grads []float64) {
	n := &g.nodes[id]
	out := grads[id]
	switch n.op {
	case OpLeaf:
	case OpAdd:
		grads[n.inputs[0]] += out
		grads[n.inputs[1]] += out
	case OpMul:
		a, b := n.inputs[0], n.inputs[1]
		grads[a] += g.nodes[b].data * out
		grads[b] += g.nodes[a].data * out
	case OpPow:
		if out == 0 {
			return
		}
		a := n.inputs[0]
		grads[a] += powDerivative(g.nodes[a].data, n.exponent) * out
	case OpExp:
		grads[n.inputs[0]] += n.data * out
	case OpTanh:
		grads[n.inputs[0]] += (1 - n.data*n.data) * out
	case OpReLU:
		a := n.inputs[0]
		if g.nodes[a].data > 0 {
			grads[a] += out
		}
	case OpLog:
		a := n.inputs[0]
		grads[a] += out / g.nodes[a].data
	default:
		panic(fmt.Sprintf("autodiff: no backward rule for %s", n.op))
	}
}

// powDerivative returns d(x^n)/dx = n·x^(n-1).
//
// x = 0 is special-cased so finite derivatives stay finite: n = 0 and n > 1
// give 0, n = 1 gives 1. For 0 < n < 1 the true derivative is +Inf and that is
// what math.Pow returns.
func powDerivative(x, n float64) float64 {
	switch {
	case n == 0:
		return 0
	case n == 1:
		return 1
	case x == 0 && n > 1:
		return 0
	}
	return n * math.Pow(x, n-1)
}
