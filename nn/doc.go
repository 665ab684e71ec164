// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides fully connected networks built from scalar Values.
//
// # Overview
//
// This package contains:
//   - Neuron: tanh(w·x + b) over a fixed number of inputs
//   - Layer: independent neurons sharing the same inputs
//   - MLP: layers chained so each output width feeds the next layer
//   - Loss functions: MSELoss, SumSquaredError
//   - Initialization: Uniform, Constant, Sequence
//   - Checkpoints: MLP.StateDict, MLP.LoadStateDict
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/micrograd/engine"
//	    "github.com/born-ml/micrograd/nn"
//	)
//
//	func main() {
//	    mlp := nn.NewMLP(3, []int{4, 4, 1}, nil)
//
//	    preds := mlp.Forward([][]float64{{2, 3, -1}, {3, -1, 0.5}})
//	    loss := nn.MSELoss(nn.Column(preds, 0), []float64{1, -1})
//
//	    nn.ZeroGrad(mlp)
//	    loss.Backward()
//	    for _, p := range mlp.Parameters() {
//	        p.SetData(p.Data() - 0.05*p.Grad())
//	    }
//	}
//
// # Parameter Order
//
// Parameters are listed layer by layer, neuron by neuron, each neuron's
// weights followed by its bias. Optimizers and checkpoints rely on this order.
package nn
