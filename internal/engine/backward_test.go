package engine_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBackward_SelfAddition tests y = x + x, where x reaches y twice.
func TestBackward_SelfAddition(t *testing.T) {
	x := engine.New(3)
	y := x.Add(x)
	y.Backward()

	assert.InDelta(t, 2.0, x.Grad(), eps)
}

// TestBackward_Diamond tests accumulation through two paths sharing a source.
func TestBackward_Diamond(t *testing.T) {
	a := engine.New(3)
	b := a.AddScalar(1) // a + 1
	c := a.MulScalar(2) // 2a
	d := b.Mul(c)       // 2a² + 2a
	d.Backward()

	// dd/da = 4a + 2
	assert.InDelta(t, 14.0, a.Grad(), eps)
	assert.InDelta(t, 6.0, b.Grad(), eps)
	assert.InDelta(t, 4.0, c.Grad(), eps)
}

// TestBackward_NeuronScenario tests a hand-derived single neuron.
func TestBackward_NeuronScenario(t *testing.T) {
	x1 := engine.New(2.0)
	x2 := engine.New(0.0)
	w1 := engine.New(-3.0)
	w2 := engine.New(1.0)
	b := engine.New(6.8813735870195432)

	n := x1.Mul(w1).Add(x2.Mul(w2)).Add(b)
	o := n.Tanh()

	assert.InDelta(t, 0.7071, o.Data(), 1e-3)

	o.Backward()

	assert.InDelta(t, 0.5, n.Grad(), 1e-3)
	assert.InDelta(t, -1.5, x1.Grad(), 1e-3)
	assert.InDelta(t, 1.0, w1.Grad(), 1e-3)
	assert.InDelta(t, 0.5, x2.Grad(), 1e-3)
	assert.InDelta(t, 0.0, w2.Grad(), 1e-3)
	assert.InDelta(t, 0.5, b.Grad(), 1e-3)
}

// TestBackward_CompoundsWithoutZeroing tests that a second pass adds on top.
func TestBackward_CompoundsWithoutZeroing(t *testing.T) {
	x := engine.New(2)
	y := x.MulScalar(3)

	y.Backward()
	assert.InDelta(t, 3.0, x.Grad(), eps)

	y.Backward()
	assert.InDelta(t, 6.0, x.Grad(), eps)

	x.ZeroGrad()
	y.Backward()
	assert.InDelta(t, 3.0, x.Grad(), eps)
}

// TestBackward_Leaf tests that a leaf root only seeds itself.
func TestBackward_Leaf(t *testing.T) {
	x := engine.New(5)
	other := engine.New(1)
	_ = x.Add(other)

	x.Backward()
	assert.InDelta(t, 1.0, x.Grad(), eps)
	assert.Zero(t, other.Grad())

	assert.NotPanics(t, func() { engine.Backward(nil) })
}

// TestBackward_DisconnectedValues tests that values outside the graph are untouched.
func TestBackward_DisconnectedValues(t *testing.T) {
	x := engine.New(2)
	y := x.MulScalar(4)
	unrelated := x.MulScalar(10)

	y.Backward()
	assert.InDelta(t, 4.0, x.Grad(), eps)
	assert.Zero(t, unrelated.Grad())
}

// TestBackward_DeepChain tests a graph far deeper than a recursive walk would tolerate.
func TestBackward_DeepChain(t *testing.T) {
	const depth = 200_000

	x := engine.New(1.5)
	v := x
	for i := 0; i < depth; i++ {
		v = v.Neg()
	}

	order := engine.TopologicalOrder(v)
	require.Len(t, order, depth+1)
	assert.Same(t, x, order[0])
	assert.Same(t, v, order[depth])

	v.Backward()
	assert.InDelta(t, 1.0, x.Grad(), eps)
}

// TestTopologicalOrder_OperandsFirst tests ordering on random graphs with shared nodes.
func TestTopologicalOrder_OperandsFirst(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 25; trial++ {
		root := randomGraph(rng, 40)
		order := engine.TopologicalOrder(root)

		position := make(map[*engine.Value]int, len(order))
		for i, v := range order {
			_, dup := position[v]
			require.False(t, dup, "trial %d: value visited twice", trial)
			position[v] = i
		}

		for i, v := range order {
			for _, operand := range v.Operands() {
				p, ok := position[operand]
				require.True(t, ok, "trial %d: operand missing from order", trial)
				assert.Less(t, p, i, "trial %d: operand placed after consumer", trial)
			}
		}

		assert.Len(t, order, countReachable(root))
		assert.Same(t, root, order[len(order)-1])
	}
}

// TestTopologicalOrder_SharedSubexpression tests exactly-once inclusion.
func TestTopologicalOrder_SharedSubexpression(t *testing.T) {
	a := engine.New(1)
	b := engine.New(2)
	s := a.Mul(b)
	r := s.Add(s).Mul(s) // s reached three times

	order := engine.TopologicalOrder(r)
	assert.Len(t, order, 5) // a, b, s, s+s, r

	count := 0
	for _, v := range order {
		if v == s {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

// TestTopologicalOrder_EqualValuesAreDistinct tests identity-based deduplication.
func TestTopologicalOrder_EqualValuesAreDistinct(t *testing.T) {
	a := engine.New(0)
	b := engine.New(0)
	c := a.Add(b)

	order := engine.TopologicalOrder(c)
	require.Len(t, order, 3)

	c.Backward()
	assert.InDelta(t, 1.0, a.Grad(), eps)
	assert.InDelta(t, 1.0, b.Grad(), eps)

	// Two equal-valued intermediates in the same graph.
	x := engine.New(2)
	p := x.MulScalar(1)
	q := x.MulScalar(1)
	r := p.Mul(q)
	assert.Len(t, engine.TopologicalOrder(r), 6) // x, 1, p, 1, q, r
	r.Backward()
	assert.InDelta(t, 4.0, x.Grad(), eps)
}

// TestTopologicalOrder_Nil tests the nil root.
func TestTopologicalOrder_Nil(t *testing.T) {
	assert.Nil(t, engine.TopologicalOrder(nil))
}

// randomGraph builds a DAG of n values where each new value combines
// earlier ones, so most values are shared by several consumers.
func randomGraph(rng *rand.Rand, n int) *engine.Value {
	nodes := []*engine.Value{
		engine.New(rng.Float64()),
		engine.New(rng.Float64()),
		engine.New(0),
		engine.New(0),
	}
	for len(nodes) < n {
		a := nodes[rng.Intn(len(nodes))]
		b := nodes[rng.Intn(len(nodes))]
		var v *engine.Value
		switch rng.Intn(4) {
		case 0:
			v = a.Add(b)
		case 1:
			v = a.Mul(b)
		case 2:
			v = a.Tanh()
		default:
			v = a.Sub(b)
		}
		nodes = append(nodes, v)
	}
	root := nodes[len(nodes)-1]
	for _, v := range nodes[len(nodes)-8:] {
		root = root.Add(v)
	}
	return root
}

func countReachable(root *engine.Value) int {
	seen := map[*engine.Value]bool{}
	stack := []*engine.Value{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[v] {
			continue
		}
		seen[v] = true
		stack = append(stack, v.Operands()...)
	}
	return len(seen)
}

// TestCheckGradients_Expressions tests finite-difference agreement.
func TestCheckGradients_Expressions(t *testing.T) {
	tests := []struct {
		name  string
		f     func(x []*engine.Value) *engine.Value
		point []float64
	}{
		{
			name:  "neuron",
			f:     func(x []*engine.Value) *engine.Value { return x[0].Mul(x[1]).Add(x[2]).Tanh() },
			point: []float64{0.4, -1.1, 0.3},
		},
		{
			name: "rational",
			f: func(x []*engine.Value) *engine.Value {
				return x[0].Sub(x[1]).Div(x[0].Mul(x[1]).AddScalar(2))
			},
			point: []float64{1.3, 0.7},
		},
		{
			name: "shared",
			f: func(x []*engine.Value) *engine.Value {
				s := x[0].Mul(x[0])
				return s.Add(s).Mul(x[1]).Neg()
			},
			point: []float64{-0.8, 1.9},
		},
		{
			name: "exp pow",
			f: func(x []*engine.Value) *engine.Value {
				return x[0].Exp().Add(x[1].Pow(3)).DivScalar(4)
			},
			point: []float64{0.2, -0.6},
		},
		{
			name: "polynomial",
			f: func(x []*engine.Value) *engine.Value {
				// 3x² - 4x + 5
				return engine.Add(engine.Sub(engine.Mul(3.0, x[0].Pow(2)), engine.Mul(4.0, x[0])), 5.0)
			},
			point: []float64{0.66},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.CheckGradients(tt.f, tt.point, engine.GradCheckConfig{Step: 1e-3, Tolerance: 1e-4})
			assert.NoError(t, err)
		})
	}
}

// TestCheckGradients_RandomGraphs tests finite-difference agreement on random DAGs.
func TestCheckGradients_RandomGraphs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 10; i++ {
		ops := make([]int, 12)
		picks := make([][2]int, 12)
		for i := range ops {
			ops[i] = rng.Intn(5)
			picks[i] = [2]int{rng.Intn(3 + i), rng.Intn(3 + i)}
		}
		point := []float64{rng.Float64() - 0.5, rng.Float64() - 0.5, rng.Float64() - 0.5}

		f := func(x []*engine.Value) *engine.Value {
			nodes := append([]*engine.Value{}, x...)
			for i, op := range ops {
				a, b := nodes[picks[i][0]], nodes[picks[i][1]]
				switch op {
				case 0:
					nodes = append(nodes, a.Add(b).MulScalar(0.5))
				case 1:
					nodes = append(nodes, a.Mul(b))
				case 2:
					nodes = append(nodes, a.Sub(b).MulScalar(0.5))
				case 3:
					nodes = append(nodes, a.Tanh())
				default:
					nodes = append(nodes, a.Div(b.Mul(b).AddScalar(1)))
				}
			}
			out := nodes[len(nodes)-1]
			for _, v := range nodes[3:] {
				out = out.Add(v.Tanh())
			}
			return out
		}

		require.NoError(t, engine.CheckGradients(f, point, engine.GradCheckConfig{Step: 1e-4}))
	}
}

// TestCheckGradients_ReportsMismatch tests the error path at a kink.
func TestCheckGradients_ReportsMismatch(t *testing.T) {
	err := engine.CheckGradients(func(x []*engine.Value) *engine.Value {
		return x[0].ReLU().Add(x[1])
	}, []float64{0, 1}, engine.GradCheckConfig{})
	require.Error(t, err)

	var mismatch *engine.GradientMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 0, mismatch.Index)
	assert.InDelta(t, 0.0, mismatch.Analytic, eps)
	assert.InDelta(t, 0.5, mismatch.Numeric, 1e-9)
	assert.Contains(t, mismatch.Error(), "leaf 0")
}

// TestCheckGradients_EmptyPoint tests the empty input.
func TestCheckGradients_EmptyPoint(t *testing.T) {
	err := engine.CheckGradients(func(x []*engine.Value) *engine.Value { return engine.New(0) }, nil, engine.GradCheckConfig{})
	assert.ErrorIs(t, err, engine.ErrEmptyPoint)
}

// TestCheckGradients_NaN tests that NaN gradients never pass.
func TestCheckGradients_NaN(t *testing.T) {
	err := engine.CheckGradients(func(x []*engine.Value) *engine.Value {
		return x[0].Div(engine.New(math.NaN()))
	}, []float64{1}, engine.GradCheckConfig{})
	assert.Error(t, err)
}

// TestCheckGradients_StepAndTolerance tests that Step reaches the finite
// difference and that a zero Tolerance falls back to the default.
func TestCheckGradients_StepAndTolerance(t *testing.T) {
	cube := func(x []*engine.Value) *engine.Value {
		return x[0].Pow(3)
	}

	// Centered difference of x³ at 1 overshoots 3 by exactly h².
	err := engine.CheckGradients(cube, []float64{1}, engine.GradCheckConfig{Step: 0.1})
	var mismatch *engine.GradientMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.InDelta(t, 3.0, mismatch.Analytic, eps)
	assert.InDelta(t, 3.01, mismatch.Numeric, 1e-9)

	// h² = 2.5e-5 passes the default 1e-4 but not a tighter tolerance.
	require.NoError(t, engine.CheckGradients(cube, []float64{1}, engine.GradCheckConfig{Step: 0.005}))
	err = engine.CheckGradients(cube, []float64{1}, engine.GradCheckConfig{Step: 0.005, Tolerance: 1e-6})
	assert.ErrorAs(t, err, &mismatch)
}
