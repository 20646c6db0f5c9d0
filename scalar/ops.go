package scalar

import (
	"fmt"
	"math"
)

func (s Scalar) Add(other Scalar) Scalar {
	return derived(s.n.data+other.n.data, OpAdd,
		fmt.Sprintf("(%s + %s)", s.n.label, other.n.label), s.n, other.n)
}

func (s Scalar) Mul(other Scalar) Scalar {
	return derived(s.n.data*other.n.data, OpMul,
		fmt.Sprintf("(%s * %s)", s.n.label, other.n.label), s.n, other.n)
}

// Sub is built as s + (-other); only the label reads as a subtraction.
func (s Scalar) Sub(other Scalar) Scalar {
	out := s.Add(other.Neg())
	out.n.label = fmt.Sprintf("(%s - %s)", s.n.label, other.n.label)
	return out
}

// Div is built as s * other^-1. A zero divisor is not checked and yields
// infinities or NaN in both data and gradients.
func (s Scalar) Div(other Scalar) Scalar {
	return s.Mul(other.Pow(-1))
}

func (s Scalar) Neg() Scalar {
	out := s.MulNumber(-1)
	out.n.label = fmt.Sprintf("(-%s)", s.n.label)
	return out
}

// Pow raises s to a constant exponent. The exponent is not part of the graph
// and receives no gradient.
func (s Scalar) Pow(exponent float64) Scalar {
	out := derived(math.Pow(s.n.data, exponent), OpPow,
		fmt.Sprintf("(%s^%g)", s.n.label, exponent), s.n)
	out.n.exponent = exponent
	return out
}

func (s Scalar) Exp() Scalar {
	return derived(math.Exp(s.n.data), OpExp, fmt.Sprintf("exp(%s)", s.n.label), s.n)
}

func (s Scalar) Tanh() Scalar {
	return derived(math.Tanh(s.n.data), OpTanh, fmt.Sprintf("tanh(%s)", s.n.label), s.n)
}

func (s Scalar) AddNumber(k float64) Scalar {
	return s.Add(constant(k))
}

func (s Scalar) MulNumber(k float64) Scalar {
	return s.Mul(constant(k))
}

func constant(k float64) Scalar {
	return NewWithLabel(k, fmt.Sprintf("(Constant %g)", k))
}

// Sum folds Add over xs from the left. An empty sum is a new leaf holding 0.
func Sum(xs ...Scalar) Scalar {
	if len(xs) == 0 {
		return New(0)
	}
	out := xs[0]
	for _, x := range xs[1:] {
		out = out.Add(x)
	}
	return out
}

// Arange returns ceil((stop-start)/step) values start, start+step, ...
func Arange(start, stop, step float64) []float64 {
	count := math.Ceil((stop - start) / step)
	if !(count > 0) || math.IsInf(count, 0) {
		return nil
	}
	out := make([]float64, int(count))
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}
