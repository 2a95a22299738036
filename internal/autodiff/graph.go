// Package autodiff implements reverse-mode automatic differentiation over scalars.
//
// A Graph is an arena of nodes. Every arithmetic call on a Value appends one
// node to the arena that refers to its operands by index, so evaluating an
// ordinary expression records the computation graph as a side effect:
//
//	g := autodiff.NewGraph()
//	x := g.Leaf(3.0)
//	y := x.Mul(x) // y = x²
//
//	y.Backward()
//	fmt.Println(x.Grad()) // dy/dx = 2x = 6.0
//
// Architecture:
//   - Graph: node records plus a parallel gradient slice, addressed by index
//   - Value: a {graph, index} handle, cheap to copy and compare
//   - Op: the fixed set of differentiable primitives with local backward rules
//   - Backward: topological order by iterative DFS, then one reverse sweep
//
// Operands always have smaller indices than their results, so the graph is
// acyclic by construction. A Graph is not safe for concurrent mutation.
package autodiff

import "fmt"

// node is one arena record. Only the first op.Arity() entries of inputs are
// meaningful.
type node struct {
	data     float64
	op       Op
	inputs   [2]int
	exponent float64 // OpPow only
	gen      uint32  // value of Graph.gen when the node was created
}

// Graph owns every node created through it together with their gradients.
type Graph struct {
	nodes []node
	grads []float64
	gen   uint32 // bumped by Truncate
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]node, 0, 256),
		grads: make([]float64, 0, 256),
	}
}

// Leaf creates a leaf Value holding x with zero gradient.
func (g *Graph) Leaf(x float64) Value {
	return g.push(node{data: x, op: OpLeaf})
}

// Leaves creates one leaf per element of xs.
func (g *Graph) Leaves(xs []float64) []Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = g.Leaf(x)
	}
	return out
}

// Len returns the number of nodes in the graph.
//
// The result can be passed to Truncate later to discard everything built
// after this point.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Truncate drops every node with index >= n.
//
// Training loops create their parameters first, remember Len, and truncate
// back to it at the start of every step so forward expressions of previous
// steps do not accumulate. Values that referred to dropped nodes become
// invalid and panic on use, also after new nodes have reused their indices.
func (g *Graph) Truncate(n int) {
	if n < 0 || n > len(g.nodes) {
		panic(fmt.Sprintf("Graph.Truncate: %d out of range [0, %d]", n, len(g.nodes)))
	}
	g.nodes = g.nodes[:n]
	g.grads = g.grads[:n]
	g.gen++
}

// Grad returns the gradient of v accumulated by the last Backward call.
func (g *Graph) Grad(v Value) float64 {
	g.check(v)
	return g.grads[v.id]
}

func (g *Graph) push(n node) Value {
	n.gen = g.gen
	g.nodes = append(g.nodes, n)
	g.grads = append(g.grads, 0)
	return Value{g: g, id: len(g.nodes) - 1, gen: n.gen}
}

// value returns the handle of the live node at index id.
func (g *Graph) value(id int) Value {
	return Value{g: g, id: id, gen: g.nodes[id].gen}
}

func (g *Graph) check(v Value) {
	if v.g == nil {
		panic("autodiff: use of zero Value")
	}
	if v.g != g {
		panic("autodiff: values belong to different graphs")
	}
	if v.id >= len(g.nodes) || g.nodes[v.id].gen != v.gen {
		panic(fmt.Sprintf("autodiff: value %d was truncated (graph has %d nodes)", v.id, len(g.nodes)))
	}
}

// Value is a handle to one node of a Graph.
//
// The zero Value is invalid. Values are compared by identity: two handles are
// equal exactly when they refer to the same node.
type Value struct {
	g   *Graph
	id  int
	gen uint32
}

// Graph returns the graph v belongs to.
func (v Value) Graph() *Graph {
	return v.g
}

// Index returns the arena index of v.
func (v Value) Index() int {
	return v.id
}

// Data returns the forward value.
func (v Value) Data() float64 {
	return v.rec().data
}

// Grad returns the gradient accumulated by the last Backward call on v's graph.
func (v Value) Grad() float64 {
	return v.g.Grad(v)
}

// Op returns the primitive that produced v (OpLeaf for leaves).
func (v Value) Op() Op {
	return v.rec().op
}

// IsLeaf reports whether v was constructed directly from a number.
func (v Value) IsLeaf() bool {
	return v.Op() == OpLeaf
}

// Exponent returns the fixed exponent of a Pow node and 0 otherwise.
func (v Value) Exponent() float64 {
	return v.rec().exponent
}

// Operands returns the values v was computed from, in call order.
func (v Value) Operands() []Value {
	n := v.rec()
	out := make([]Value, n.op.Arity())
	for i := range out {
		out[i] = v.g.value(n.inputs[i])
	}
	return out
}

// SetData overwrites the forward value of a leaf.
//
// This is how optimizers update parameters between steps. Derived nodes are
// immutable; calling SetData on one panics.
func (v Value) SetData(x float64) {
	n := v.rec()
	if n.op != OpLeaf {
		panic(fmt.Sprintf("Value.SetData: node %d is %s, only leaves can be assigned", v.id, n.op))
	}
	n.data = x
}

// Backward computes the gradient of v with respect to every node it depends on.
// See Graph.Backward.
func (v Value) Backward() {
	v.g.Backward(v)
}

// String returns a short description of v.
func (v Value) String() string {
	if v.g == nil {
		return "Value(<nil>)"
	}
	n := v.rec()
	return fmt.Sprintf("Value(data=%g, grad=%g, op=%s)", n.data, v.g.grads[v.id], n.op)
}

func (v Value) rec() *node {
	v.g.check(v)
	return &v.g.nodes[v.id]
}
