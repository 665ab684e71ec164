package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/engine"
)

// Neuron computes tanh(b + Σ wᵢ·xᵢ) over its inputs.
//
// Example:
//
//	n := nn.NewNeuron(2, nn.Uniform(rng))
//	out := n.Forward([]*engine.Value{engine.New(1), engine.New(-1)})
type Neuron struct {
	weights []*engine.Value // One per input
	bias    *engine.Value
}

// NewNeuron creates a neuron with the given number of inputs.
//
// Weights are drawn from init in input order, then the bias.
// A nil init falls back to U(-1, 1).
func NewNeuron(inputs int, init Initializer) *Neuron {
	if inputs <= 0 {
		panic(fmt.Sprintf("NewNeuron: inputs must be positive, got %d", inputs))
	}
	if init == nil {
		init = defaultInitializer()
	}

	weights := make([]*engine.Value, inputs)
	for i := range weights {
		weights[i] = engine.New(init())
	}

	return &Neuron{
		weights: weights,
		bias:    engine.New(init()),
	}
}

// Forward computes tanh(b + Σ wᵢ·xᵢ).
//
// Panics if len(x) differs from the number of weights.
func (n *Neuron) Forward(x []*engine.Value) *engine.Value {
	if len(x) != len(n.weights) {
		panic(fmt.Sprintf("Neuron.Forward: expected %d inputs, got %d", len(n.weights), len(x)))
	}

	act := n.bias
	for i, w := range n.weights {
		act = act.Add(w.Mul(x[i]))
	}
	return act.Tanh()
}

// Weights returns the weight parameters in input order.
func (n *Neuron) Weights() []*engine.Value {
	out := make([]*engine.Value, len(n.weights))
	copy(out, n.weights)
	return out
}

// Bias returns the bias parameter.
func (n *Neuron) Bias() *engine.Value {
	return n.bias
}

// NumInputs returns the number of inputs the neuron expects.
func (n *Neuron) NumInputs() int {
	return len(n.weights)
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*engine.Value {
	params := make([]*engine.Value, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}
