// Package nn implements a small feed-forward network over scalar values.
//
// This package provides building blocks for constructing networks:
//   - Module interface: Base interface for all NN components
//   - Neuron: weighted sum of its inputs plus a bias, squashed by tanh
//   - Layer: a row of neurons applied to the same inputs
//   - MLP: layers applied in sequence
//   - Loss functions: MSE, sum of squared errors
//
// Every weight and bias is a leaf *engine.Value owned by the network for its
// whole lifetime. Intermediate values are created fresh on every forward pass.
package nn

import (
	"github.com/born-ml/micrograd/internal/engine"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build larger networks:
//
//	mlp := nn.NewMLP(3, []int{4, 4, 1}, nn.Uniform(rng))
//	for _, p := range mlp.Parameters() {
//	    p.SetData(p.Data() - lr*p.Grad())
//	}
type Module interface {
	// Parameters returns all trainable parameters of this module, in a
	// stable order.
	Parameters() []*engine.Value
}

// ZeroGrad clears the gradient of every parameter of m.
//
// This should be called before each backward pass to avoid accumulating
// gradients from previous iterations.
func ZeroGrad(m Module) {
	engine.ZeroGrad(m.Parameters()...)
}
