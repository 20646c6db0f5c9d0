package nn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/fumitoshi0524/ixeoriGrad/scalar"
)

// ErrInputCount is the cause of every error returned when a neuron receives
// the wrong number of inputs.
var ErrInputCount = errors.New("input count mismatch")

const initRange = 1.0

// Neuron computes tanh(b + sum(x_i * w_i)).
type Neuron struct {
	weights []scalar.Scalar
	bias    scalar.Scalar
}

func NewNeuron(inFeatures int) *Neuron {
	values := Uniform(inFeatures+1, -initRange, initRange)
	weights := make([]scalar.Scalar, inFeatures)
	for i := range weights {
		weights[i] = scalar.NewWithLabel(values[i], fmt.Sprintf("w%d", i))
	}
	return &Neuron{
		weights: weights,
		bias:    scalar.NewWithLabel(values[inFeatures], "b"),
	}
}

// Forward builds the neuron's graph over inputs. Nothing is built when the
// input count does not match.
func (n *Neuron) Forward(inputs []scalar.Scalar) (scalar.Scalar, error) {
	if len(inputs) != len(n.weights) {
		return scalar.Scalar{}, errors.Wrapf(ErrInputCount, "expected %d inputs, not %d", len(n.weights), len(inputs))
	}
	sum := n.bias
	for i, x := range inputs {
		sum = sum.Add(x.Mul(n.weights[i]))
	}
	return sum.Tanh(), nil
}

func (n *Neuron) ForwardValues(inputs []float64) (scalar.Scalar, error) {
	return n.Forward(Leaves(inputs))
}

func (n *Neuron) Weights() []scalar.Scalar {
	return append([]scalar.Scalar(nil), n.weights...)
}

func (n *Neuron) Bias() scalar.Scalar {
	return n.bias
}

func (n *Neuron) Parameters() []scalar.Scalar {
	params := make([]scalar.Scalar, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}

func (n *Neuron) ZeroGrad() {
	zeroGrad(n.Parameters())
}
