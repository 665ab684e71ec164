package engine

import "math"

// Operand is anything that can appear as an operand of an operation.
// Plain float64 literals are lifted to constant leaves.
type Operand interface {
	*Value | float64
}

// Lift converts an Operand to a Value, creating a leaf for literals.
func Lift[T Operand](x T) *Value {
	switch x := any(x).(type) {
	case *Value:
		return x
	case float64:
		return Const(x)
	}
	panic("unreachable")
}

// Add returns a + b, lifting literals to leaves.
func Add[A, B Operand](a A, b B) *Value {
	return Lift(a).Add(Lift(b))
}

// Sub returns a - b, lifting literals to leaves.
func Sub[A, B Operand](a A, b B) *Value {
	return Lift(a).Sub(Lift(b))
}

// Mul returns a * b, lifting literals to leaves.
func Mul[A, B Operand](a A, b B) *Value {
	return Lift(a).Mul(Lift(b))
}

// Div returns a / b, lifting literals to leaves.
func Div[A, B Operand](a A, b B) *Value {
	return Lift(a).Div(Lift(b))
}

// Add returns v + other.
//
// d(a+b)/da = 1, d(a+b)/db = 1.
func (v *Value) Add(other *Value) *Value {
	return newResult(v.data+other.data, OpAdd, addBackward, v, other)
}

func addBackward(out *Value) {
	out.operands[0].grad += out.grad
	out.operands[1].grad += out.grad
}

// Sub returns v - other, built as v + (-other).
//
// The operands of the result are [v, -other]; the negation node forwards
// the negated gradient to other.
func (v *Value) Sub(other *Value) *Value {
	neg := other.Neg()
	return newResult(v.data+neg.data, OpSub, addBackward, v, neg)
}

// Mul returns v * other.
//
// d(a*b)/da = b, d(a*b)/db = a.
func (v *Value) Mul(other *Value) *Value {
	return newResult(v.data*other.data, OpMul, mulBackward, v, other)
}

func mulBackward(out *Value) {
	a, b := out.operands[0], out.operands[1]
	a.grad += out.grad * b.data
	b.grad += out.grad * a.data
}

// Div returns v / other.
//
// d(a/b)/da = 1/b, d(a/b)/db = -a/b². Division by zero is not intercepted:
// the result follows IEEE-754 (±Inf or NaN).
func (v *Value) Div(other *Value) *Value {
	return newResult(v.data/other.data, OpDiv, divBackward, v, other)
}

func divBackward(out *Value) {
	a, b := out.operands[0], out.operands[1]
	a.grad += out.grad / b.data
	b.grad += out.grad * (-a.data) / (b.data * b.data)
}

// Neg returns -v.
func (v *Value) Neg() *Value {
	return newResult(-v.data, OpNeg, negBackward, v)
}

func negBackward(out *Value) {
	out.operands[0].grad += -out.grad
}

// Tanh returns the hyperbolic tangent of v.
//
// d(tanh(x))/dx = 1 - tanh²(x), computed from the output.
func (v *Value) Tanh() *Value {
	return newResult(math.Tanh(v.data), OpTanh, tanhBackward, v)
}

func tanhBackward(out *Value) {
	out.operands[0].grad += out.grad * (1 - out.data*out.data)
}

// Pow returns v raised to the constant power p.
//
// d(x^p)/dx = p * x^(p-1).
func (v *Value) Pow(p float64) *Value {
	return newResult(math.Pow(v.data, p), OpPow, func(out *Value) {
		a := out.operands[0]
		a.grad += out.grad * p * math.Pow(a.data, p-1)
	}, v)
}

// Exp returns e^v.
func (v *Value) Exp() *Value {
	return newResult(math.Exp(v.data), OpExp, expBackward, v)
}

func expBackward(out *Value) {
	out.operands[0].grad += out.grad * out.data
}

// ReLU returns max(0, v). The gradient is 1 where the output is positive.
func (v *Value) ReLU() *Value {
	return newResult(math.Max(0, v.data), OpReLU, reluBackward, v)
}

func reluBackward(out *Value) {
	if out.data > 0 {
		out.operands[0].grad += out.grad
	}
}

// AddScalar returns v + c.
func (v *Value) AddScalar(c float64) *Value {
	return v.Add(Const(c))
}

// SubScalar returns v - c.
func (v *Value) SubScalar(c float64) *Value {
	return v.Sub(Const(c))
}

// MulScalar returns v * c.
func (v *Value) MulScalar(c float64) *Value {
	return v.Mul(Const(c))
}

// DivScalar returns v / c.
func (v *Value) DivScalar(c float64) *Value {
	return v.Div(Const(c))
}
