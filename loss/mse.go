package loss

import (
	"github.com/pkg/errors"

	"github.com/fumitoshi0524/ixeoriGrad/scalar"
)

var (
	ErrLengthMismatch = errors.New("prediction and target lengths differ")
	ErrEmpty          = errors.New("no predictions")
)

// MSE returns mean((pred_i - target_i)^2) as a node of the predictions' graph.
func MSE(preds []scalar.Scalar, targets []float64) (scalar.Scalar, error) {
	if len(preds) != len(targets) {
		return scalar.Scalar{}, errors.Wrapf(ErrLengthMismatch, "%d predictions, %d targets", len(preds), len(targets))
	}
	wrapped := make([]scalar.Scalar, len(targets))
	for i, v := range targets {
		wrapped[i] = scalar.NewWithLabel(v, "target")
	}
	return MSEScalars(preds, wrapped)
}

func MSEScalars(preds, targets []scalar.Scalar) (scalar.Scalar, error) {
	if len(preds) != len(targets) {
		return scalar.Scalar{}, errors.Wrapf(ErrLengthMismatch, "%d predictions, %d targets", len(preds), len(targets))
	}
	if len(preds) == 0 {
		return scalar.Scalar{}, ErrEmpty
	}
	terms := make([]scalar.Scalar, len(preds))
	for i := range preds {
		terms[i] = preds[i].Sub(targets[i]).Pow(2)
	}
	out := scalar.Sum(terms...).MulNumber(1 / float64(len(terms)))
	out.SetLabel("mse")
	return out, nil
}
