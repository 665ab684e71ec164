package engine

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// ErrEmptyPoint is returned when a gradient check is asked to evaluate a
// function of zero variables.
var ErrEmptyPoint = errors.New("gradient check: empty evaluation point")

// GradCheckConfig holds configuration for CheckGradients.
//
// Zero fields take their defaults, so an exact match (Tolerance 0) cannot be
// requested; pass a tiny positive tolerance such as 1e-300 instead.
type GradCheckConfig struct {
	Step      float64 // Finite difference step h (default: 1e-3)
	Tolerance float64 // Maximum absolute difference allowed (default: 1e-4)
}

// GradientMismatchError reports a leaf whose analytic gradient disagrees with
// the finite-difference estimate.
type GradientMismatchError struct {
	Index    int     // Position of the leaf in the evaluation point
	Analytic float64 // Gradient computed by Backward
	Numeric  float64 // Centered finite-difference estimate
}

// Error implements the error interface.
func (e *GradientMismatchError) Error() string {
	return fmt.Sprintf("leaf %d: analytic gradient %g differs from numeric %g by %g",
		e.Index, e.Analytic, e.Numeric, math.Abs(e.Analytic-e.Numeric))
}

// CheckGradients compares the analytic gradient of f against a centered
// finite-difference estimate at point.
//
// f receives one fresh leaf per coordinate of point and must build the graph
// from those leaves only. It is called 2*len(point)+1 times.
//
// Returns nil if every coordinate agrees within cfg.Tolerance, otherwise the
// join of one *GradientMismatchError per disagreeing coordinate.
//
// Example:
//
//	err := engine.CheckGradients(func(x []*engine.Value) *engine.Value {
//	    return x[0].Mul(x[1]).Tanh()
//	}, []float64{0.5, -1.2}, engine.GradCheckConfig{})
func CheckGradients(f func(leaves []*Value) *Value, point []float64, cfg GradCheckConfig) error {
	if len(point) == 0 {
		return ErrEmptyPoint
	}
	if cfg.Step == 0 {
		cfg.Step = 1e-3
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = 1e-4
	}

	leaves := leavesAt(point)
	f(leaves).Backward()

	numeric := fd.Gradient(nil, func(x []float64) float64 {
		return f(leavesAt(x)).Data()
	}, point, &fd.Settings{
		Formula: fd.Central,
		Step:    cfg.Step,
	})

	var errs []error
	for i, leaf := range leaves {
		analytic := leaf.Grad()
		if !(math.Abs(analytic-numeric[i]) <= cfg.Tolerance) {
			errs = append(errs, &GradientMismatchError{
				Index:    i,
				Analytic: analytic,
				Numeric:  numeric[i],
			})
		}
	}

	return errors.Join(errs...)
}

func leavesAt(point []float64) []*Value {
	leaves := make([]*Value, len(point))
	for i, x := range point {
		leaves[i] = New(x)
	}
	return leaves
}
