package optim

import (
	"math"

	"github.com/fumitoshi0524/ixeoriGrad/scalar"
)

// Constraint is applied to a parameter after each optimizer update.
type Constraint interface {
	Apply(param scalar.Scalar) error
}

// MaxAbsConstraint clamps a parameter's data to [-maxAbs, maxAbs].
type MaxAbsConstraint struct {
	maxAbs float64
}

func NewMaxAbsConstraint(maxAbs float64) *MaxAbsConstraint {
	return &MaxAbsConstraint{maxAbs: maxAbs}
}

func (c *MaxAbsConstraint) Apply(param scalar.Scalar) error {
	if !param.Valid() || c.maxAbs <= 0 {
		return nil
	}
	v := param.Data()
	if math.Abs(v) <= c.maxAbs {
		return nil
	}
	param.SetData(math.Copysign(c.maxAbs, v))
	return nil
}
