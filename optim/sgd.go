package optim

import (
	"math"

	"github.com/pkg/errors"

	"github.com/fumitoshi0524/ixeoriGrad/scalar"
)

type Optimizer interface {
	Step() error
	ZeroGrad()
}

type SGD struct {
	params        []scalar.Scalar
	lr            float64
	momentum      float64
	weightDecay   float64
	nesterov      bool
	velocity      map[scalar.Scalar]float64
	maxGradNorm   float64
	gradNormType  float64
	gradValueClip float64
	constraints   []Constraint
}

type SGDConfig struct {
	LR            float64
	Momentum      float64
	WeightDecay   float64
	Nesterov      bool
	MaxGradNorm   float64
	GradNormType  float64
	GradValueClip float64
	Constraints   []Constraint
}

func NewSGD(params []scalar.Scalar, lr float64, momentum float64) *SGD {
	return NewSGDWithConfig(params, SGDConfig{LR: lr, Momentum: momentum})
}

func NewSGDWithConfig(params []scalar.Scalar, cfg SGDConfig) *SGD {
	return &SGD{
		params:        append([]scalar.Scalar(nil), params...),
		lr:            cfg.LR,
		momentum:      cfg.Momentum,
		weightDecay:   cfg.WeightDecay,
		nesterov:      cfg.Nesterov,
		velocity:      make(map[scalar.Scalar]float64),
		maxGradNorm:   cfg.MaxGradNorm,
		gradNormType:  cfg.GradNormType,
		gradValueClip: cfg.GradValueClip,
		constraints:   append([]Constraint(nil), cfg.Constraints...),
	}
}

// Step moves every parameter against its gradient: p -= lr * update.
func (o *SGD) Step() error {
	if math.IsNaN(o.lr) || math.IsInf(o.lr, 0) {
		return errors.Errorf("sgd: invalid learning rate %v", o.lr)
	}
	if o.maxGradNorm > 0 {
		ClipGradNorm(o.params, o.maxGradNorm, o.gradNormType)
	}
	if o.gradValueClip > 0 {
		ClipGradValue(o.params, o.gradValueClip)
	}
	for _, p := range o.params {
		if !p.Valid() {
			continue
		}
		update := p.Grad()
		if o.weightDecay > 0 {
			update += o.weightDecay * p.Data()
		}
		if o.momentum > 0 {
			v := o.momentum*o.velocity[p] + update
			o.velocity[p] = v
			if o.nesterov {
				update += o.momentum * v
			} else {
				update = v
			}
		}
		p.AddToData(-o.lr * update)
		for _, c := range o.constraints {
			if err := c.Apply(p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *SGD) LR() float64 {
	return o.lr
}

func (o *SGD) SetLR(lr float64) {
	o.lr = lr
}

func (o *SGD) SetWeightDecay(v float64) {
	o.weightDecay = v
}

func (o *SGD) SetNesterov(enabled bool) {
	o.nesterov = enabled
}

func (o *SGD) WeightDecay() float64 {
	return o.weightDecay
}

func (o *SGD) Nesterov() bool {
	return o.nesterov
}

func (o *SGD) SetGradNorm(maxNorm, normType float64) {
	o.maxGradNorm = maxNorm
	o.gradNormType = normType
}

func (o *SGD) GradNorm() (float64, float64) {
	return o.maxGradNorm, o.gradNormType
}

func (o *SGD) SetGradValueClip(limit float64) {
	o.gradValueClip = limit
}

func (o *SGD) GradValueClip() float64 {
	return o.gradValueClip
}

func (o *SGD) AddConstraint(c Constraint) {
	o.constraints = append(o.constraints, c)
}

func (o *SGD) Constraints() []Constraint {
	return append([]Constraint(nil), o.constraints...)
}

func (o *SGD) ZeroGrad() {
	for _, p := range o.params {
		if p.Valid() {
			p.ZeroGrad()
		}
	}
}
