package nn

import (
	"github.com/pkg/errors"

	"github.com/fumitoshi0524/ixeoriGrad/scalar"
)

// Parameterized is anything that owns trainable leaves. Neurons are
// Parameterized but not Modules since they produce a single output.
type Parameterized interface {
	Parameters() []scalar.Scalar
	ZeroGrad()
}

type Module interface {
	Parameterized
	Forward(inputs []scalar.Scalar) ([]scalar.Scalar, error)
}

func ZeroGradAll(mods ...Parameterized) {
	for _, m := range mods {
		if m == nil {
			continue
		}
		m.ZeroGrad()
	}
}

func zeroGrad(params []scalar.Scalar) {
	for _, p := range params {
		p.ZeroGrad()
	}
}

// Leaves wraps plain numbers as unlabeled leaf scalars.
func Leaves(values []float64) []scalar.Scalar {
	out := make([]scalar.Scalar, len(values))
	for i, v := range values {
		out[i] = scalar.New(v)
	}
	return out
}

// StateValues snapshots the data of every parameter of mod in Parameters order.
func StateValues(mod Parameterized) []float64 {
	params := mod.Parameters()
	state := make([]float64, len(params))
	for i, p := range params {
		state[i] = p.Data()
	}
	return state
}

// LoadValues writes a snapshot taken by StateValues back into mod.
func LoadValues(mod Parameterized, state []float64) error {
	if mod == nil {
		return errors.New("LoadValues requires non-nil module")
	}
	params := mod.Parameters()
	if len(params) != len(state) {
		return errors.Errorf("LoadValues: module has %d parameters, state has %d", len(params), len(state))
	}
	for i, p := range params {
		p.SetData(state[i])
	}
	return nil
}
