// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine provides scalar reverse-mode automatic differentiation.
//
// Every Value holds a float64, its accumulated gradient and the operands it
// was computed from. Calling Backward on a result propagates gradients to
// every Value reachable from it.
//
// Example:
//
//	import "github.com/born-ml/micrograd/engine"
//
//	func main() {
//	    a := engine.New(2)
//	    b := engine.New(-3)
//	    c := engine.Add(a.Mul(b), 10.0).Tanh()
//
//	    c.Backward()
//	    fmt.Println(a.Grad(), b.Grad())
//	}
package engine

import (
	"io"

	"github.com/born-ml/micrograd/internal/engine"
)

// Value is a scalar node in a computation graph.
type Value = engine.Value

// Op identifies the operation that produced a Value.
type Op = engine.Op

// BackwardFunc distributes a result's gradient to its operands.
type BackwardFunc = engine.BackwardFunc

// Operand is a *Value or a float64 constant.
type Operand = engine.Operand

// Operation tags.
const (
	OpNone = engine.OpNone
	OpAdd  = engine.OpAdd
	OpSub  = engine.OpSub
	OpMul  = engine.OpMul
	OpDiv  = engine.OpDiv
	OpNeg  = engine.OpNeg
	OpTanh = engine.OpTanh
	OpPow  = engine.OpPow
	OpExp  = engine.OpExp
	OpReLU = engine.OpReLU
)

// New creates a leaf Value with zero gradient.
func New(data float64) *Value {
	return engine.New(data)
}

// Const creates a leaf Value for a constant input.
func Const(data float64) *Value {
	return engine.Const(data)
}

// Lift converts an operand to a *Value.
func Lift[T Operand](x T) *Value {
	return engine.Lift(x)
}

// Add returns a + b. Either side may be a float64.
func Add[A, B Operand](a A, b B) *Value {
	return engine.Add(a, b)
}

// Sub returns a - b. Either side may be a float64.
func Sub[A, B Operand](a A, b B) *Value {
	return engine.Sub(a, b)
}

// Mul returns a * b. Either side may be a float64.
func Mul[A, B Operand](a A, b B) *Value {
	return engine.Mul(a, b)
}

// Div returns a / b. Either side may be a float64.
func Div[A, B Operand](a A, b B) *Value {
	return engine.Div(a, b)
}

// Backward computes gradients of root with respect to every Value it depends on.
//
// Gradients accumulate; call ZeroGrad between independent passes.
func Backward(root *Value) {
	engine.Backward(root)
}

// TopologicalOrder returns the Values reachable from root, operands first.
func TopologicalOrder(root *Value) []*Value {
	return engine.TopologicalOrder(root)
}

// ZeroGrad resets the gradient of each value.
func ZeroGrad(values ...*Value) {
	engine.ZeroGrad(values...)
}

// ZeroGradGraph resets the gradient of root and of every Value reachable from it.
func ZeroGradGraph(root *Value) {
	engine.ZeroGradGraph(root)
}

// Dump writes the graph rooted at root to w, one Value per line, operands first.
func Dump(w io.Writer, root *Value) error {
	return root.Dump(w)
}

// Tape records Values in creation order for bulk gradient resets.
type Tape = engine.Tape

// NewTape creates a new tape that is not recording.
func NewTape() *Tape {
	return engine.NewTape()
}

// GradCheckConfig controls numerical gradient checking.
// Zero fields take their defaults (Step 1e-3, Tolerance 1e-4).
type GradCheckConfig = engine.GradCheckConfig

// GradientMismatchError reports a leaf whose analytic and numeric gradients differ.
type GradientMismatchError = engine.GradientMismatchError

// ErrEmptyPoint is returned by CheckGradients for an empty evaluation point.
var ErrEmptyPoint = engine.ErrEmptyPoint

// CheckGradients compares Backward against centered finite differences of f at point.
func CheckGradients(f func(leaves []*Value) *Value, point []float64, cfg GradCheckConfig) error {
	return engine.CheckGradients(f, point, cfg)
}
