// Package engine implements reverse-mode automatic differentiation over scalars.
//
// Every arithmetic operation on a Value eagerly computes its result and returns a
// new Value that remembers its operands and the local derivative rule of the
// operation that produced it. Calling Backward on any Value then walks the graph
// in reverse topological order and accumulates gradients into every upstream Value.
//
// Architecture:
//   - Value: scalar node holding data, gradient, operands and a backward rule
//   - Operations: Add, Sub, Mul, Div, Neg, Tanh (plus Pow, Exp, ReLU)
//   - TopologicalOrder: iterative depth-first ordering keyed on node identity
//   - Backward: seeds the root gradient and applies rules in reverse order
//   - Tape: optional arena recording the values created during one step
//
// Usage:
//
//	x := engine.New(2.0)
//	w := engine.New(-3.0)
//	y := x.Mul(w).AddScalar(1).Tanh()
//	y.Backward()
//	fmt.Println(x.Grad(), w.Grad())
//
// Gradients are never reset implicitly: call ZeroGrad between iterations.
package engine

// BackwardFunc propagates the gradient of out into the gradients of its operands.
//
// Rules read out.Grad() and must accumulate (+=) into operand gradients,
// never assign, so that a value consumed by several operations receives the
// sum of all contributions.
type BackwardFunc func(out *Value)

// Value is a scalar node in the computation graph.
//
// The data and operands of a Value are fixed once it is created. Only the
// gradient (and, for leaves updated by an optimizer, the data) is mutated
// afterwards. Graph membership is decided by pointer identity: two distinct
// Values holding the same number are different vertices.
type Value struct {
	data     float64
	grad     float64
	operands []*Value     // 0, 1 or 2 operands, positional
	op       Op           // Producing operation (OpNone for leaves)
	backward BackwardFunc // nil for leaves
	tape     *Tape        // Arena that recorded this value, if any
}

// New creates a leaf Value.
//
// Leaves are the inputs and trainable parameters of a graph. They have no
// operands and no backward rule.
func New(data float64) *Value {
	return &Value{data: data}
}

// Const lifts a scalar literal to a leaf Value.
func Const(data float64) *Value {
	return New(data)
}

// newResult creates the output of an operation over operands.
// The result joins the first recording tape found among its operands.
func newResult(data float64, op Op, backward BackwardFunc, operands ...*Value) *Value {
	out := &Value{
		data:     data,
		operands: operands,
		op:       op,
		backward: backward,
	}
	for _, operand := range operands {
		if operand.tape != nil && operand.tape.recording {
			operand.tape.record(out)
			break
		}
	}
	return out
}

// Data returns the scalar value.
func (v *Value) Data() float64 {
	return v.data
}

// SetData overwrites the scalar value.
//
// Intended for optimizer updates of leaf parameters. Changing the data of an
// intermediate value does not recompute anything downstream.
func (v *Value) SetData(data float64) {
	v.data = data
}

// Grad returns the accumulated gradient.
//
// The gradient is only meaningful after a backward pass that reached v.
func (v *Value) Grad() float64 {
	return v.grad
}

// SetGrad overwrites the accumulated gradient.
func (v *Value) SetGrad(grad float64) {
	v.grad = grad
}

// ZeroGrad resets the gradient to zero.
func (v *Value) ZeroGrad() {
	v.grad = 0
}

// Op returns the tag of the operation that produced v.
func (v *Value) Op() Op {
	return v.op
}

// Operands returns a copy of the operands of v in positional order.
func (v *Value) Operands() []*Value {
	if len(v.operands) == 0 {
		return nil
	}
	out := make([]*Value, len(v.operands))
	copy(out, v.operands)
	return out
}

// IsLeaf reports whether v has no operands.
func (v *Value) IsLeaf() bool {
	return len(v.operands) == 0
}

// ZeroGrad resets the gradient of every given value.
func ZeroGrad(values ...*Value) {
	for _, v := range values {
		v.grad = 0
	}
}
