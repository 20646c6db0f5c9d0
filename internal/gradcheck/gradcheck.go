// Package gradcheck compares gradients from the backward pass against
// central finite differences.
package gradcheck

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/fumitoshi0524/ixeoriGrad/scalar"
)

// Func builds a graph over its inputs and returns the output node.
type Func func(inputs []scalar.Scalar) scalar.Scalar

type Settings struct {
	// Step is the finite-difference step; zero uses the gonum default.
	Step float64
	// Tolerance bounds the largest absolute difference between the two
	// gradients. Zero means 1e-6.
	Tolerance float64
}

type Result struct {
	Analytic   []float64
	Numeric    []float64
	MaxAbsDiff float64
}

var ErrMismatch = errors.New("analytic and numeric gradients disagree")

func leaves(x []float64) []scalar.Scalar {
	out := make([]scalar.Scalar, len(x))
	for i, v := range x {
		out[i] = scalar.New(v)
	}
	return out
}

// Analytic returns the gradient of f at x computed by one backward pass.
func Analytic(f Func, x []float64) ([]float64, error) {
	inputs := leaves(x)
	out := f(inputs)
	if err := out.Backward(); err != nil {
		return nil, errors.Wrap(err, "backward")
	}
	grads := make([]float64, len(inputs))
	for i, in := range inputs {
		grads[i] = in.Grad()
	}
	return grads, nil
}

// Numeric returns the central-difference gradient of f at x.
func Numeric(f Func, x []float64, step float64) []float64 {
	eval := func(p []float64) float64 {
		return f(leaves(p)).Data()
	}
	return fd.Gradient(nil, eval, x, &fd.Settings{
		Formula: fd.Central,
		Step:    step,
	})
}

func Check(f Func, x []float64, settings *Settings) (Result, error) {
	if len(x) == 0 {
		return Result{}, errors.New("gradcheck needs at least one input")
	}
	var s Settings
	if settings != nil {
		s = *settings
	}
	if s.Tolerance <= 0 {
		s.Tolerance = 1e-6
	}
	analytic, err := Analytic(f, x)
	if err != nil {
		return Result{}, err
	}
	numeric := Numeric(f, x, s.Step)

	var diff mat.VecDense
	diff.SubVec(mat.NewVecDense(len(x), analytic), mat.NewVecDense(len(x), numeric))
	res := Result{
		Analytic:   analytic,
		Numeric:    numeric,
		MaxAbsDiff: mat.Norm(&diff, math.Inf(1)),
	}
	if !(res.MaxAbsDiff <= s.Tolerance) {
		return res, errors.Wrapf(ErrMismatch, "max abs diff %.3g exceeds %.3g at %v", res.MaxAbsDiff, s.Tolerance, x)
	}
	return res, nil
}
