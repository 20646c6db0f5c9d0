package nn

import (
	"github.com/pkg/errors"

	"github.com/fumitoshi0524/ixeoriGrad/scalar"
)

type Layer struct {
	inFeatures int
	neurons    []*Neuron
}

func NewLayer(inFeatures, outFeatures int) *Layer {
	neurons := make([]*Neuron, outFeatures)
	for i := range neurons {
		neurons[i] = NewNeuron(inFeatures)
	}
	return &Layer{inFeatures: inFeatures, neurons: neurons}
}

// Forward feeds the same inputs to every neuron and returns one output each.
// A wrong input count fails at the first neuron, before any node is built.
func (l *Layer) Forward(inputs []scalar.Scalar) ([]scalar.Scalar, error) {
	outputs := make([]scalar.Scalar, len(l.neurons))
	for i, n := range l.neurons {
		out, err := n.Forward(inputs)
		if err != nil {
			return nil, errors.Wrapf(err, "neuron %d", i)
		}
		outputs[i] = out
	}
	return outputs, nil
}

func (l *Layer) ForwardValues(inputs []float64) ([]scalar.Scalar, error) {
	return l.Forward(Leaves(inputs))
}

func (l *Layer) Neurons() []*Neuron {
	return append([]*Neuron(nil), l.neurons...)
}

func (l *Layer) InFeatures() int {
	return l.inFeatures
}

func (l *Layer) OutFeatures() int {
	return len(l.neurons)
}

func (l *Layer) Parameters() []scalar.Scalar {
	var params []scalar.Scalar
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

func (l *Layer) ZeroGrad() {
	for _, n := range l.neurons {
		n.ZeroGrad()
	}
}
