package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/engine"
)

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// Example:
//
//	preds := nn.Column(mlp.Forward(xs), 0)
//	loss := nn.MSELoss(preds, ys)
//	loss.Backward()
func MSELoss(predictions []*engine.Value, targets []float64) *engine.Value {
	sum := sumSquaredError("MSELoss", predictions, targets)
	return sum.DivScalar(float64(len(predictions)))
}

// SumSquaredError computes Σ(predictions - targets)².
func SumSquaredError(predictions []*engine.Value, targets []float64) *engine.Value {
	return sumSquaredError("SumSquaredError", predictions, targets)
}

func sumSquaredError(caller string, predictions []*engine.Value, targets []float64) *engine.Value {
	if len(predictions) != len(targets) {
		panic(fmt.Sprintf("%s: %d predictions but %d targets", caller, len(predictions), len(targets)))
	}
	if len(predictions) == 0 {
		panic(fmt.Sprintf("%s: empty input", caller))
	}

	var sum *engine.Value
	for i, p := range predictions {
		sq := p.SubScalar(targets[i]).Pow(2)
		if sum == nil {
			sum = sq
			continue
		}
		sum = sum.Add(sq)
	}
	return sum
}
