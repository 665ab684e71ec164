// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/nn"
)

// Module is anything that owns trainable parameters.
type Module = nn.Module

// ZeroGrad resets the gradients of every parameter of m.
func ZeroGrad(m Module) {
	nn.ZeroGrad(m)
}

// Initializer produces initial parameter values.
type Initializer = nn.Initializer

// Uniform draws parameters uniformly from [-1, 1) using rng.
func Uniform(rng *rand.Rand) Initializer {
	return nn.Uniform(rng)
}

// Constant initializes every parameter to v.
func Constant(v float64) Initializer {
	return nn.Constant(v)
}

// Sequence yields vs in order. It panics once exhausted.
func Sequence(vs ...float64) Initializer {
	return nn.Sequence(vs...)
}

// Neuron computes tanh(w·x + b).
type Neuron = nn.Neuron

// NewNeuron creates a neuron with the given number of inputs.
// A nil init draws from a time-seeded uniform source.
func NewNeuron(inputs int, init Initializer) *Neuron {
	return nn.NewNeuron(inputs, init)
}

// Layer is a set of neurons applied to the same inputs.
type Layer = nn.Layer

// NewLayer creates a layer mapping inputs values to outputs values.
func NewLayer(inputs, outputs int, init Initializer) *Layer {
	return nn.NewLayer(inputs, outputs, init)
}

// MLP is a multi-layer perceptron.
type MLP = nn.MLP

// NewMLP creates a network taking inputWidth values, with one layer per
// entry of widths.
//
// Example:
//
//	mlp := nn.NewMLP(3, []int{4, 4, 1}, nn.Uniform(rand.New(rand.NewSource(1))))
func NewMLP(inputWidth int, widths []int, init Initializer) *MLP {
	return nn.NewMLP(inputWidth, widths, init)
}

// Column extracts output k of every sample in preds.
func Column(preds [][]*engine.Value, k int) []*engine.Value {
	return nn.Column(preds, k)
}

// Loss functions

// MSELoss returns the mean squared error between predictions and targets.
func MSELoss(predictions []*engine.Value, targets []float64) *engine.Value {
	return nn.MSELoss(predictions, targets)
}

// SumSquaredError returns the summed squared error between predictions and targets.
func SumSquaredError(predictions []*engine.Value, targets []float64) *engine.Value {
	return nn.SumSquaredError(predictions, targets)
}

// Checkpoint errors returned by MLP.LoadStateDict.
var (
	ErrMissingParameter    = nn.ErrMissingParameter
	ErrUnexpectedParameter = nn.ErrUnexpectedParameter
	ErrShapeMismatch       = nn.ErrShapeMismatch
)
