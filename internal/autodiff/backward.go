package autodiff

// Gradients is read access to the result of a backward pass.
//
// Both *Graph (in-place gradients from Backward) and *GradientSet (per-pass
// gradients from Gradients) implement it.
type Gradients interface {
	Grad(v Value) float64
}

// TopologicalOrder returns the indices of all nodes reachable from root,
// every node after all of its operands and each node exactly once.
//
// The order is produced by a depth-first traversal over operand edges that
// appends a node after its operands. The traversal uses an explicit stack, so
// arbitrarily deep graphs do not grow the goroutine stack.
func (g *Graph) TopologicalOrder(root Value) []int {
	g.check(root)
	return g.topoOrder(root.id)
}

// frame is one entry of the DFS stack: a node and the next operand to visit.
type frame struct {
	id   int
	next int
}

func (g *Graph) topoOrder(root int) []int {
	// Operands have smaller indices than results, so root+1 covers every
	// reachable node.
	visited := make([]bool, root+1)
	order := make([]int, 0, root+1)
	stack := []frame{{id: root}}
	visited[root] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := &g.nodes[top.id]
		if top.next < n.op.Arity() {
			child := n.inputs[top.next]
			top.next++
			if !visited[child] {
				visited[child] = true
				stack = append(stack, frame{id: child})
			}
			continue
		}
		order = append(order, top.id)
		stack = stack[:len(stack)-1]
	}

	return order
}

// Backward computes the gradient of root with respect to every node reachable
// from it and stores the results in the graph.
//
// Algorithm:
//  1. Topological order of the reachable nodes (operands before results)
//  2. Reset the gradient of every node in that set to 0
//  3. Seed the root gradient with 1
//  4. Walk the order in reverse, applying each node's local backward rule
//
// At the time a node is processed every consumer of it has already been
// processed, so its gradient is complete before it is passed on. Gradients of
// nodes not reachable from root are left untouched.
//
// Only one Backward may run on a graph at a time. Use Gradients for passes
// that must not share storage.
func (g *Graph) Backward(root Value) {
	g.check(root)
	g.backward(root.id, g.grads)
}

// Gradients runs the same backward pass as Backward but accumulates into fresh
// storage owned by the returned set, leaving the graph's own gradients as they
// were.
//
// Calls to Gradients on the same graph are safe to run concurrently as long
// as no goroutine is adding nodes to the graph.
func (g *Graph) Gradients(root Value) *GradientSet {
	g.check(root)
	grads := make([]float64, root.id+1)
	g.backward(root.id, grads)
	return &GradientSet{g: g, root: root.id, grads: grads}
}

func (g *Graph) backward(root int, grads []float64) {
	order := g.topoOrder(root)

	for _, id := range order {
		grads[id] = 0
	}
	grads[root] = 1

	for i := len(order) - 1; i >= 0; i-- {
		g.propagate(order[i], grads)
	}
}

// GradientSet holds the gradients of one backward pass started at a root.
type GradientSet struct {
	g     *Graph
	root  int
	grads []float64
}

// Root returns the value the pass was started from.
func (s *GradientSet) Root() Value {
	return s.g.value(s.root)
}

// Grad returns d(root)/dv. Nodes the root does not depend on report 0.
func (s *GradientSet) Grad(v Value) float64 {
	s.g.check(v)
	if v.id >= len(s.grads) {
		return 0
	}
	return s.grads[v.id]
}
