package nn

import (
	"github.com/pkg/errors"

	"github.com/fumitoshi0524/ixeoriGrad/scalar"
)

// MLP chains layers so each layer's outputs are the next layer's inputs.
type MLP struct {
	layers []*Layer
}

func NewMLP(inFeatures int, sizes []int) *MLP {
	layers := make([]*Layer, len(sizes))
	in := inFeatures
	for i, out := range sizes {
		layers[i] = NewLayer(in, out)
		in = out
	}
	return &MLP{layers: layers}
}

func (m *MLP) Forward(inputs []scalar.Scalar) ([]scalar.Scalar, error) {
	var err error
	out := inputs
	for i, l := range m.layers {
		out, err = l.Forward(out)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
	}
	return out, nil
}

func (m *MLP) ForwardValues(inputs []float64) ([]scalar.Scalar, error) {
	return m.Forward(Leaves(inputs))
}

func (m *MLP) Layers() []*Layer {
	return append([]*Layer(nil), m.layers...)
}

func (m *MLP) Parameters() []scalar.Scalar {
	var params []scalar.Scalar
	for _, l := range m.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

func (m *MLP) ZeroGrad() {
	for _, l := range m.layers {
		l.ZeroGrad()
	}
}
