package autodiff_test

import (
	"math"
	"sync"
	"testing"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

// TestLeaf tests leaf construction.
func TestLeaf(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Leaf(2.5)

	assert.Equal(t, 2.5, x.Data())
	assert.Equal(t, 0.0, x.Grad())
	assert.True(t, x.IsLeaf())
	assert.Equal(t, autodiff.OpLeaf, x.Op())
	assert.Empty(t, x.Operands())
	assert.Equal(t, 1, g.Len())
}

// TestForward tests forward values of every primitive and composition.
func TestForward(t *testing.T) {
	g := autodiff.NewGraph()
	a, b := g.Leaf(3), g.Leaf(-2)

	tests := []struct {
		name string
		got  autodiff.Value
		want float64
	}{
		{"add", a.Add(b), 1},
		{"mul", a.Mul(b), -6},
		{"neg", a.Neg(), -3},
		{"sub", a.Sub(b), 5},
		{"pow", a.Pow(2), 9},
		{"exp", b.Exp(), math.Exp(-2)},
		{"div", a.Div(b), -1.5},
		{"tanh", b.Tanh(), math.Tanh(-2)},
		{"relu_pos", a.ReLU(), 3},
		{"relu_neg", b.ReLU(), 0},
		{"log", a.Log(), math.Log(3)},
		{"add_scalar", a.AddScalar(0.5), 3.5},
		{"mul_scalar", a.MulScalar(4), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.got.Data(), tol)
		})
	}
}

// TestCompositionsBuildIntermediateNodes tests that Neg, Sub and Div are
// recorded through their primitives.
func TestCompositionsBuildIntermediateNodes(t *testing.T) {
	g := autodiff.NewGraph()
	a, b := g.Leaf(3), g.Leaf(4)

	neg := a.Neg()
	require.Equal(t, autodiff.OpMul, neg.Op())
	ops := neg.Operands()
	require.Len(t, ops, 2)
	assert.Equal(t, a, ops[0])
	assert.Equal(t, -1.0, ops[1].Data())

	sub := a.Sub(b)
	require.Equal(t, autodiff.OpAdd, sub.Op())
	assert.Equal(t, autodiff.OpMul, sub.Operands()[1].Op())

	div := a.Div(b)
	require.Equal(t, autodiff.OpMul, div.Op())
	inv := div.Operands()[1]
	assert.Equal(t, autodiff.OpPow, inv.Op())
	assert.Equal(t, -1.0, inv.Exponent())
	assert.Equal(t, b, inv.Operands()[0])
}

// TestBackward_LocalRules tests the gradient each primitive passes to its operands.
func TestBackward_LocalRules(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		build func(x autodiff.Value) autodiff.Value
		want  float64
	}{
		{"add", 2, func(x autodiff.Value) autodiff.Value { return x.AddScalar(7) }, 1},
		{"mul", 2, func(x autodiff.Value) autodiff.Value { return x.MulScalar(7) }, 7},
		{"neg", 2, func(x autodiff.Value) autodiff.Value { return x.Neg() }, -1},
		{"pow3", 2, func(x autodiff.Value) autodiff.Value { return x.Pow(3) }, 12},
		{"pow_half", 4, func(x autodiff.Value) autodiff.Value { return x.Pow(0.5) }, 0.25},
		{"exp", 1.5, func(x autodiff.Value) autodiff.Value { return x.Exp() }, math.Exp(1.5)},
		{"tanh", 0.3, func(x autodiff.Value) autodiff.Value { return x.Tanh() }, 1 - math.Pow(math.Tanh(0.3), 2)},
		{"relu_pos", 0.3, func(x autodiff.Value) autodiff.Value { return x.ReLU() }, 1},
		{"relu_neg", -0.3, func(x autodiff.Value) autodiff.Value { return x.ReLU() }, 0},
		{"log", 4, func(x autodiff.Value) autodiff.Value { return x.Log() }, 0.25},
		{"div_numerator", 3, func(x autodiff.Value) autodiff.Value { return x.Div(x.Graph().Leaf(4)) }, 0.25},
		{"div_denominator", 4, func(x autodiff.Value) autodiff.Value { return x.Graph().Leaf(3).Div(x) }, -3.0 / 16},
		{"sub_rhs", 4, func(x autodiff.Value) autodiff.Value { return x.Graph().Leaf(3).Sub(x) }, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := autodiff.NewGraph()
			x := g.Leaf(tt.x)
			y := tt.build(x)
			y.Backward()

			assert.Equal(t, 1.0, y.Grad(), "root is seeded with 1")
			assert.InDelta(t, tt.want, x.Grad(), tol)
		})
	}
}

// TestBackward_SharedOperand tests y = x*x accumulates through both edges.
func TestBackward_SharedOperand(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Leaf(3)
	y := x.Mul(x)

	y.Backward()

	assert.Equal(t, 9.0, y.Data())
	assert.Equal(t, 6.0, x.Grad())
}

// TestBackward_Diamond tests a node reached through two intermediate paths.
func TestBackward_Diamond(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Leaf(2)
	a := x.MulScalar(3) // 3x
	b := x.Pow(2)       // x²
	y := a.Mul(b)       // 3x³

	y.Backward()

	assert.InDelta(t, 24.0, y.Data(), tol)
	assert.InDelta(t, 36.0, x.Grad(), tol) // 9x²
	assert.InDelta(t, 4.0, a.Grad(), tol)  // b
	assert.InDelta(t, 6.0, b.Grad(), tol)  // a
}

// TestBackward_ChainRule tests z = tanh(x*w + b) against the hand-derived gradient.
func TestBackward_ChainRule(t *testing.T) {
	g := autodiff.NewGraph()
	x, w, b := g.Leaf(2), g.Leaf(0.5), g.Leaf(1)
	z := x.Mul(w).Add(b).Tanh()

	z.Backward()

	th := math.Tanh(2*0.5 + 1)
	dz := 1 - th*th
	assert.InDelta(t, th, z.Data(), tol)
	assert.InDelta(t, dz*0.5, x.Grad(), tol)
	assert.InDelta(t, dz*2, w.Grad(), tol)
	assert.InDelta(t, dz, b.Grad(), tol)
}

// TestBackward_AdditiveIdentity tests that adding a zero leaf does not change gradients.
func TestBackward_AdditiveIdentity(t *testing.T) {
	g := autodiff.NewGraph()
	a := g.Leaf(1.7)
	f := a.Pow(3).Tanh()

	f.Backward()
	direct := a.Grad()

	f.AddScalar(0).Backward()
	assert.InDelta(t, direct, a.Grad(), tol)
}

// TestBackward_DivSelf tests that a/a is constant so its gradient vanishes.
func TestBackward_DivSelf(t *testing.T) {
	for _, x := range []float64{-3, -0.25, 0.5, 1, 7} {
		g := autodiff.NewGraph()
		a := g.Leaf(x)
		y := a.Div(a)

		y.Backward()

		assert.InDelta(t, 1.0, y.Data(), tol, "x=%v", x)
		assert.InDelta(t, 0.0, a.Grad(), tol, "x=%v", x)
	}
}

// TestBackward_Repeated tests that two passes over the same graph agree.
func TestBackward_Repeated(t *testing.T) {
	g := autodiff.NewGraph()
	x, w := g.Leaf(0.7), g.Leaf(-1.3)
	h := x.Mul(w).Tanh()
	y := h.Mul(h).Add(x.Exp())

	y.Backward()
	first := []float64{x.Grad(), w.Grad(), h.Grad(), y.Grad()}

	y.Backward()
	second := []float64{x.Grad(), w.Grad(), h.Grad(), y.Grad()}

	assert.Equal(t, first, second)
}

// TestBackward_OverlappingRoots tests that a pass from a different root does not
// keep contributions from an earlier pass.
func TestBackward_OverlappingRoots(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Leaf(2)
	sq := x.Pow(2)
	cube := x.Mul(sq)

	cube.Backward()
	assert.InDelta(t, 12.0, x.Grad(), tol)

	sq.Backward()
	assert.InDelta(t, 4.0, x.Grad(), tol)
	assert.InDelta(t, 1.0, sq.Grad(), tol)
}

// TestBackward_UnreachableUntouched tests that nodes outside the root's
// dependencies keep their gradient.
func TestBackward_UnreachableUntouched(t *testing.T) {
	g := autodiff.NewGraph()
	x, y := g.Leaf(1), g.Leaf(2)
	fy := y.MulScalar(5)
	fy.Backward()
	require.Equal(t, 5.0, y.Grad())

	fx := x.MulScalar(3)
	fx.Backward()

	assert.Equal(t, 3.0, x.Grad())
	assert.Equal(t, 5.0, y.Grad())
}

// TestPow_ZeroBase tests that x = 0 does not produce NaN where the derivative is finite.
func TestPow_ZeroBase(t *testing.T) {
	tests := []struct {
		name string
		n    float64
		want float64
		data float64
	}{
		{"n=0", 0, 0, 1},
		{"n=1", 1, 1, 0},
		{"n=2", 2, 0, 0},
		{"n=3.5", 3.5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := autodiff.NewGraph()
			x := g.Leaf(0)
			y := x.Pow(tt.n)
			y.Backward()

			assert.Equal(t, tt.data, y.Data())
			assert.Equal(t, tt.want, x.Grad())
			assert.False(t, math.IsNaN(x.Grad()))
		})
	}
}

// TestPow_ZeroExponent tests that x^0 contributes nothing for any base.
func TestPow_ZeroExponent(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Leaf(-4)
	y := x.Pow(0)
	y.Backward()

	assert.Equal(t, 1.0, y.Data())
	assert.Equal(t, 0.0, x.Grad())
}

// TestDivByZero tests that division by zero propagates IEEE-754 values.
func TestDivByZero(t *testing.T) {
	g := autodiff.NewGraph()
	a, b := g.Leaf(1), g.Leaf(0)
	y := a.Div(b)

	assert.True(t, math.IsInf(y.Data(), 1))
	assert.NotPanics(t, func() { y.Backward() })
	assert.True(t, math.IsInf(a.Grad(), 1))
}

// TestTanh_Large tests that tanh saturates instead of overflowing.
func TestTanh_Large(t *testing.T) {
	g := autodiff.NewGraph()
	y := g.Leaf(1000).Tanh()
	y.Backward()

	assert.Equal(t, 1.0, y.Data())
	assert.Equal(t, 0.0, y.Operands()[0].Grad())
}

// TestTopologicalOrder tests ordering and uniqueness on a shared graph.
func TestTopologicalOrder(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Leaf(1)
	unused := g.Leaf(5)
	a := x.Mul(x)
	b := a.Add(x)
	root := b.Mul(a)

	order := g.TopologicalOrder(root)

	require.Len(t, order, 4)
	assert.NotContains(t, order, unused.Index())
	assert.Equal(t, root.Index(), order[len(order)-1])

	pos := make(map[int]int, len(order))
	for i, id := range order {
		_, dup := pos[id]
		require.False(t, dup, "node %d appears twice", id)
		pos[id] = i
	}
	for _, v := range []autodiff.Value{a, b, root} {
		for _, op := range v.Operands() {
			assert.Less(t, pos[op.Index()], pos[v.Index()])
		}
	}
}

// TestBackward_DeepChain tests that very deep graphs do not rely on recursion.
func TestBackward_DeepChain(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Leaf(1)
	y := x
	const depth = 200000
	for i := 0; i < depth; i++ {
		y = y.Add(x)
	}

	y.Backward()

	assert.Equal(t, float64(depth+1), y.Data())
	assert.Equal(t, float64(depth+1), x.Grad())
}

// TestSum tests folding a slice into a sum.
func TestSum(t *testing.T) {
	g := autodiff.NewGraph()
	xs := g.Leaves([]float64{1, 2, 3})
	s := g.Sum(xs)
	s.Backward()

	assert.Equal(t, 6.0, s.Data())
	for _, x := range xs {
		assert.Equal(t, 1.0, x.Grad())
	}
	assert.Equal(t, 0.0, g.Sum(nil).Data())
}

// TestGradients_Isolated tests per-pass storage against in-place gradients.
func TestGradients_Isolated(t *testing.T) {
	g := autodiff.NewGraph()
	x, w := g.Leaf(0.4), g.Leaf(2)
	y := x.Mul(w).Tanh().Pow(2)
	other := x.MulScalar(10)

	set := g.Gradients(y)
	assert.Equal(t, 0.0, x.Grad(), "shared gradients untouched")
	assert.Equal(t, y, set.Root())

	y.Backward()
	assert.InDelta(t, x.Grad(), set.Grad(x), tol)
	assert.InDelta(t, w.Grad(), set.Grad(w), tol)
	assert.Equal(t, 0.0, set.Grad(other), "nodes created after the root")
}

// TestGradients_Concurrent tests that independent passes can run in parallel.
func TestGradients_Concurrent(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Leaf(1.1)
	roots := []autodiff.Value{x.Pow(2), x.Pow(3), x.Exp(), x.Tanh()}
	want := []float64{2 * 1.1, 3 * 1.1 * 1.1, math.Exp(1.1), 1 - math.Pow(math.Tanh(1.1), 2)}

	got := make([]float64, len(roots))
	var wg sync.WaitGroup
	for i, r := range roots {
		wg.Add(1)
		go func(i int, r autodiff.Value) {
			defer wg.Done()
			got[i] = g.Gradients(r).Grad(x)
		}(i, r)
	}
	wg.Wait()

	for i := range want {
		assert.InDelta(t, want[i], got[i], tol)
	}
}

// TestTruncate tests rewinding a graph to an earlier length.
func TestTruncate(t *testing.T) {
	g := autodiff.NewGraph()
	w := g.Leaf(2)
	mark := g.Len()

	y := w.MulScalar(3)
	y.Backward()
	require.Equal(t, 3.0, w.Grad())

	g.Truncate(mark)
	assert.Equal(t, mark, g.Len())
	assert.Equal(t, 3.0, w.Grad(), "surviving nodes keep their gradient")
	assert.Panics(t, func() { _ = y.Data() })

	z := w.Pow(2)
	z.Backward()
	assert.Equal(t, 4.0, w.Grad())

	// y's index is live again but holds a different node.
	g.Leaf(7)
	require.Greater(t, g.Len(), y.Index())
	assert.Panics(t, func() { _ = y.Data() })
	assert.Panics(t, func() { _ = y.Grad() })
	assert.Panics(t, func() { w.Add(y) })
	assert.Equal(t, 4.0, z.Data(), "nodes built after truncation stay valid")
	assert.Equal(t, w, z.Operands()[0])

	assert.Panics(t, func() { g.Truncate(g.Len() + 1) })
	assert.Panics(t, func() { g.Truncate(-1) })
}

// TestSetData tests leaf assignment and immutability of derived nodes.
func TestSetData(t *testing.T) {
	g := autodiff.NewGraph()
	x := g.Leaf(1)
	x.SetData(4)
	assert.Equal(t, 4.0, x.Data())

	y := x.Neg()
	assert.Panics(t, func() { y.SetData(1) })
}

// TestMisuse tests panics on programming errors.
func TestMisuse(t *testing.T) {
	g1, g2 := autodiff.NewGraph(), autodiff.NewGraph()
	a, b := g1.Leaf(1), g2.Leaf(2)

	assert.PanicsWithValue(t, "autodiff: values belong to different graphs", func() { a.Add(b) })
	assert.PanicsWithValue(t, "autodiff: values belong to different graphs", func() { a.Mul(b) })
	assert.Panics(t, func() { g1.Backward(b) })

	var zero autodiff.Value
	assert.Panics(t, func() { zero.Data() })
	assert.Panics(t, func() { a.Add(zero) })
	assert.Equal(t, "Value(<nil>)", zero.String())
}

// TestOpString tests op names.
func TestOpString(t *testing.T) {
	assert.Equal(t, "tanh", autodiff.OpTanh.String())
	assert.Equal(t, "Op(200)", autodiff.Op(200).String())
	assert.Equal(t, 2, autodiff.OpMul.Arity())
	assert.Equal(t, 1, autodiff.OpPow.Arity())
	assert.Equal(t, 0, autodiff.OpLeaf.Arity())

	g := autodiff.NewGraph()
	assert.Equal(t, "Value(data=2, grad=0, op=leaf)", g.Leaf(2).String())
}

// TestBatchGradients tests that summed per-root passes match the pass of the sum.
func TestBatchGradients(t *testing.T) {
	for _, cfg := range []parallel.Config{parallel.Sequential(), {Enabled: true, NumWorkers: 3}} {
		g := autodiff.NewGraph()
		w, b := g.Leaf(0.3), g.Leaf(-0.2)

		var roots []autodiff.Value
		for _, x := range []float64{1, -2, 0.5, 4} {
			roots = append(roots, w.MulScalar(x).Add(b).Tanh().AddScalar(-1).Pow(2))
		}
		total := g.Sum(roots)
		total.Backward()

		sets := g.BatchGradients(roots, cfg)
		require.Len(t, sets, len(roots))
		for i, s := range sets {
			assert.Equal(t, roots[i], s.Root())
		}

		sum := autodiff.GradientSum(sets)
		assert.InDelta(t, w.Grad(), sum.Grad(w), tol)
		assert.InDelta(t, b.Grad(), sum.Grad(b), tol)
	}
}
