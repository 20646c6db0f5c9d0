package scalar

func (s Scalar) ScaleGrad(factor float64) {
	s.n.grad *= factor
}

func (s Scalar) ClipGradValue(limit float64) {
	if limit <= 0 {
		return
	}
	if s.n.grad > limit {
		s.n.grad = limit
	} else if s.n.grad < -limit {
		s.n.grad = -limit
	}
}
