package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/engine"
)

// Layer is a row of neurons that all read the same inputs.
type Layer struct {
	neurons []*Neuron
}

// NewLayer creates a layer of outputs neurons, each with inputs weights.
func NewLayer(inputs, outputs int, init Initializer) *Layer {
	if outputs <= 0 {
		panic(fmt.Sprintf("NewLayer: outputs must be positive, got %d", outputs))
	}
	if init == nil {
		init = defaultInitializer()
	}

	neurons := make([]*Neuron, outputs)
	for i := range neurons {
		neurons[i] = NewNeuron(inputs, init)
	}
	return &Layer{neurons: neurons}
}

// Forward applies every neuron to x and returns their outputs in order.
func (l *Layer) Forward(x []*engine.Value) []*engine.Value {
	out := make([]*engine.Value, len(l.neurons))
	for i, n := range l.neurons {
		out[i] = n.Forward(x)
	}
	return out
}

// Neurons returns the neurons of the layer.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// NumInputs returns the input width of the layer.
func (l *Layer) NumInputs() int {
	return l.neurons[0].NumInputs()
}

// NumOutputs returns the number of neurons.
func (l *Layer) NumOutputs() int {
	return len(l.neurons)
}

// Parameters returns the parameters of every neuron, neuron by neuron.
func (l *Layer) Parameters() []*engine.Value {
	var params []*engine.Value
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}
