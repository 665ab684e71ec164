package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/engine"
)

// MLP is a multi-layer perceptron: layers applied in sequence, each layer's
// outputs becoming the next layer's inputs.
//
// Example:
//
//	mlp := nn.NewMLP(3, []int{4, 4, 1}, nn.Uniform(rng))
//	preds := mlp.Forward([][]float64{{2, 3, -1}, {3, -1, 0.5}})
//	loss := nn.MSELoss(nn.Column(preds, 0), targets)
//	nn.ZeroGrad(mlp)
//	loss.Backward()
type MLP struct {
	inputWidth int
	layers     []*Layer
}

// NewMLP creates an MLP reading inputWidth features, with one layer per entry
// of widths.
//
// Panics if inputWidth or any width is not positive, or widths is empty.
func NewMLP(inputWidth int, widths []int, init Initializer) *MLP {
	if inputWidth <= 0 {
		panic(fmt.Sprintf("NewMLP: input width must be positive, got %d", inputWidth))
	}
	if len(widths) == 0 {
		panic("NewMLP: at least one layer width is required")
	}
	if init == nil {
		init = defaultInitializer()
	}

	layers := make([]*Layer, len(widths))
	in := inputWidth
	for i, out := range widths {
		if out <= 0 {
			panic(fmt.Sprintf("NewMLP: layer %d width must be positive, got %d", i, out))
		}
		layers[i] = NewLayer(in, out, init)
		in = out
	}

	return &MLP{
		inputWidth: inputWidth,
		layers:     layers,
	}
}

// Call threads one sample through every layer and returns the outputs of the
// last layer.
func (m *MLP) Call(x []*engine.Value) []*engine.Value {
	for _, l := range m.layers {
		x = l.Forward(x)
	}
	return x
}

// Forward evaluates the network on a batch of samples.
//
// Each sample is lifted to constant leaves. The result holds one prediction
// vector per sample, of width equal to the last layer.
//
// Panics if a sample does not have InputWidth features.
func (m *MLP) Forward(batch [][]float64) [][]*engine.Value {
	preds := make([][]*engine.Value, len(batch))
	for i, sample := range batch {
		if len(sample) != m.inputWidth {
			panic(fmt.Sprintf("MLP.Forward: sample %d has %d features, expected %d", i, len(sample), m.inputWidth))
		}
		x := make([]*engine.Value, len(sample))
		for j, f := range sample {
			x[j] = engine.Const(f)
		}
		preds[i] = m.Call(x)
	}
	return preds
}

// Layers returns the layers in order.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// InputWidth returns the number of features per sample.
func (m *MLP) InputWidth() int {
	return m.inputWidth
}

// OutputWidth returns the width of the last layer.
func (m *MLP) OutputWidth() int {
	return m.layers[len(m.layers)-1].NumOutputs()
}

// Parameters returns every weight and bias, layer by layer and neuron by
// neuron. The order is stable for the lifetime of the network.
func (m *MLP) Parameters() []*engine.Value {
	var params []*engine.Value
	for _, l := range m.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// NumParameters returns len(m.Parameters()) without allocating.
func (m *MLP) NumParameters() int {
	n := 0
	in := m.inputWidth
	for _, l := range m.layers {
		n += (in + 1) * l.NumOutputs()
		in = l.NumOutputs()
	}
	return n
}

// Column extracts output k of every prediction, e.g. the single output of a
// network whose last layer has width 1.
func Column(preds [][]*engine.Value, k int) []*engine.Value {
	out := make([]*engine.Value, len(preds))
	for i, p := range preds {
		out[i] = p[k]
	}
	return out
}
