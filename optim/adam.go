package optim

import (
	"math"

	"github.com/pkg/errors"

	"github.com/fumitoshi0524/ixeoriGrad/scalar"
)

type Adam struct {
	params []scalar.Scalar
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	m      map[scalar.Scalar]float64
	v      map[scalar.Scalar]float64
	step   int
}

func NewAdam(params []scalar.Scalar, lr, beta1, beta2, eps float64) *Adam {
	return &Adam{
		params: append([]scalar.Scalar(nil), params...),
		lr:     lr,
		beta1:  beta1,
		beta2:  beta2,
		eps:    eps,
		m:      map[scalar.Scalar]float64{},
		v:      map[scalar.Scalar]float64{},
	}
}

func (o *Adam) Step() error {
	if o.beta1 < 0 || o.beta1 >= 1 || o.beta2 < 0 || o.beta2 >= 1 {
		return errors.Errorf("adam: betas must lie in [0, 1), got %v and %v", o.beta1, o.beta2)
	}
	if math.IsNaN(o.lr) || math.IsInf(o.lr, 0) {
		return errors.Errorf("adam: invalid learning rate %v", o.lr)
	}
	o.step++
	biasCorr1 := 1 - math.Pow(o.beta1, float64(o.step))
	biasCorr2 := 1 - math.Pow(o.beta2, float64(o.step))
	if biasCorr1 == 0 {
		biasCorr1 = math.SmallestNonzeroFloat64
	}
	if biasCorr2 == 0 {
		biasCorr2 = math.SmallestNonzeroFloat64
	}
	for _, p := range o.params {
		if !p.Valid() {
			continue
		}
		grad := p.Grad()
		m := o.beta1*o.m[p] + (1-o.beta1)*grad
		v := o.beta2*o.v[p] + (1-o.beta2)*grad*grad
		o.m[p] = m
		o.v[p] = v
		mHat := m / biasCorr1
		vHat := v / biasCorr2
		p.AddToData(-o.lr * mHat / (math.Sqrt(vHat) + o.eps))
	}
	return nil
}

func (o *Adam) ZeroGrad() {
	for _, p := range o.params {
		if p.Valid() {
			p.ZeroGrad()
		}
	}
}
