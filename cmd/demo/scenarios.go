package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/fumitoshi0524/ixeoriGrad/internal/gradcheck"
	"github.com/fumitoshi0524/ixeoriGrad/loss"
	"github.com/fumitoshi0524/ixeoriGrad/nn"
	"github.com/fumitoshi0524/ixeoriGrad/optim"
	"github.com/fumitoshi0524/ixeoriGrad/scalar"
)

func printAll(w io.Writer, xs ...scalar.Scalar) {
	for _, x := range xs {
		fmt.Fprintln(w, x)
	}
}

func labeled(data float64, label string) scalar.Scalar {
	return scalar.NewWithLabel(data, label)
}

// neuronSum builds x1*w1 + x2*w2 + b for the fixed two-input neuron.
func neuronSum() (sum scalar.Scalar, shown []scalar.Scalar) {
	x1 := labeled(2, "x1")
	x2 := labeled(0, "x2")
	w1 := labeled(-3, "w1")
	w2 := labeled(1, "w2")
	b := labeled(6.8814, "b")
	x1w1 := x1.Mul(w1)
	x1w1.SetLabel("x1w1")
	x2w2 := x2.Mul(w2)
	x2w2.SetLabel("x2w2")
	x1w1x2w2 := x1w1.Add(x2w2)
	x1w1x2w2.SetLabel("x1w1_x2w2")
	sum = x1w1x2w2.Add(b)
	sum.SetLabel("sum")
	return sum, []scalar.Scalar{sum, x1w1x2w2, x2w2, x1w1, w2, w1, x2, x1, b}
}

func runTanh(w io.Writer, _ trainConfig) error {
	fmt.Fprintln(w, "------ tanh ------")
	sum, shown := neuronSum()
	out := sum.Tanh()
	out.SetLabel("tanh")
	if err := out.Backward(); err != nil {
		return err
	}
	printAll(w, out)
	printAll(w, shown...)

	fmt.Fprintln(w, "\n------ manual tanh ------")
	sum, shown = neuronSum()
	e := sum.MulNumber(2).Exp()
	manual := e.AddNumber(-1).Div(e.AddNumber(1))
	manual.SetLabel("manual_tanh")
	if err := manual.Backward(); err != nil {
		return err
	}
	printAll(w, manual)
	printAll(w, shown...)
	return nil
}

func runBasics(w io.Writer, _ trainConfig) error {
	fmt.Fprintln(w, "------ variable reuse ------")
	a := labeled(3, "a")
	b := a.Add(a)
	b.SetLabel("b")
	if err := b.Backward(); err != nil {
		return err
	}
	printAll(w, a, b)

	fmt.Fprintln(w, "\n------ constants and exp ------")
	x := labeled(2, "x")
	number := x.AddNumber(1)
	number.SetLabel("number")
	exp := x.Exp()
	exp.SetLabel("exp")
	printAll(w, number, exp)

	fmt.Fprintln(w, "\n------ power ------")
	x = labeled(3, "x")
	power := x.Pow(2)
	power.SetLabel("power")
	if err := power.Backward(); err != nil {
		return err
	}
	printAll(w, power, x)

	fmt.Fprintln(w, "\n------ division and subtraction ------")
	x = labeled(2, "x")
	y := labeled(4, "y")
	div := x.Div(y)
	div.SetLabel("div")
	if err := div.Backward(); err != nil {
		return err
	}
	printAll(w, div, x, y)
	sub := x.Sub(y)
	if err := sub.Backward(); err != nil {
		return err
	}
	printAll(w, sub, x, y)
	return nil
}

func runMLP(w io.Writer, _ trainConfig) error {
	inputs := []float64{2, 3, -1}

	fmt.Fprintln(w, "------ neuron ------")
	neuron := nn.NewNeuron(len(inputs))
	out, err := neuron.ForwardValues(inputs)
	if err != nil {
		return err
	}
	printAll(w, out)

	fmt.Fprintln(w, "\n------ layer ------")
	layer := nn.NewLayer(len(inputs), 4)
	outs, err := layer.ForwardValues(inputs)
	if err != nil {
		return err
	}
	printAll(w, outs...)

	fmt.Fprintln(w, "\n------ mlp ------")
	mlp := nn.NewMLP(len(inputs), []int{4, 4, 1})
	outs, err = mlp.ForwardValues(inputs)
	if err != nil {
		return err
	}
	if err := outs[0].Backward(); err != nil {
		return err
	}
	printAll(w, outs...)
	fmt.Fprintf(w, "%d parameters\n", len(mlp.Parameters()))
	return nil
}

var (
	trainInputs = [][]float64{
		{2, 3, -1},
		{3, -1, 0.5},
		{0.5, 1, 1},
		{1, 1, -1},
	}
	trainTargets = []float64{1, -1, -1, 1}
)

func newOptimizer(params []scalar.Scalar, cfg trainConfig) (optim.Optimizer, error) {
	switch cfg.Optimizer {
	case "sgd":
		sgd := optim.NewSGD(params, cfg.LR, cfg.Momentum)
		sgd.SetWeightDecay(cfg.WeightDecay)
		sgd.SetNesterov(cfg.Nesterov)
		sgd.SetGradNorm(cfg.MaxGradNorm, 2)
		sgd.SetGradValueClip(cfg.ClipValue)
		if cfg.MaxAbs > 0 {
			sgd.AddConstraint(optim.NewMaxAbsConstraint(cfg.MaxAbs))
		}
		return sgd, nil
	case "adam":
		return optim.NewAdam(params, cfg.LR, 0.9, 0.999, 1e-8), nil
	}
	return nil, errors.Errorf("unknown optimizer %q", cfg.Optimizer)
}

// train fits a 3-[4,4,1] MLP to the fixed rows and returns the loss before
// each step.
func train(cfg trainConfig) ([]float64, *nn.MLP, error) {
	model := nn.NewMLP(3, []int{4, 4, 1})
	opt, err := newOptimizer(model.Parameters(), cfg)
	if err != nil {
		return nil, nil, err
	}
	losses := make([]float64, 0, cfg.Steps)
	for step := 0; step < cfg.Steps; step++ {
		preds := make([]scalar.Scalar, len(trainInputs))
		for i, x := range trainInputs {
			out, err := model.ForwardValues(x)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "row %d", i)
			}
			preds[i] = out[0]
		}
		l, err := loss.MSE(preds, trainTargets)
		if err != nil {
			return nil, nil, err
		}
		opt.ZeroGrad()
		if err := l.Backward(); err != nil {
			return nil, nil, err
		}
		if err := opt.Step(); err != nil {
			return nil, nil, errors.Wrapf(err, "step %d", step)
		}
		losses = append(losses, l.Data())
	}
	return losses, model, nil
}

func runTrain(w io.Writer, cfg trainConfig) error {
	losses, model, err := train(cfg)
	if err != nil {
		return err
	}
	for step, l := range losses {
		fmt.Fprintf(w, "step %d loss %.4f\n", step, l)
	}
	for i, x := range trainInputs {
		out, err := model.ForwardValues(x)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "input %v target %.1f prediction %.4f\n", x, trainTargets[i], out[0].Data())
	}
	return nil
}

func runGradCheck(w io.Writer, _ trainConfig) error {
	checks := []struct {
		name string
		f    gradcheck.Func
	}{
		{"tanh", func(in []scalar.Scalar) scalar.Scalar { return in[0].Tanh() }},
		{"exp", func(in []scalar.Scalar) scalar.Scalar { return in[0].Exp() }},
		{"cube", func(in []scalar.Scalar) scalar.Scalar { return in[0].Pow(3) }},
		{"reciprocal", func(in []scalar.Scalar) scalar.Scalar { return scalar.New(1).Div(in[0].AddNumber(3)) }},
	}
	for _, c := range checks {
		worst := 0.0
		for _, x := range scalar.Arange(-2, 2, 0.5) {
			res, err := gradcheck.Check(c.f, []float64{x}, &gradcheck.Settings{Tolerance: 1e-5})
			if err != nil {
				return errors.Wrap(err, c.name)
			}
			if res.MaxAbsDiff > worst {
				worst = res.MaxAbsDiff
			}
		}
		fmt.Fprintf(w, "%-10s ok  max abs diff %.2e\n", c.name, worst)
	}
	return nil
}
