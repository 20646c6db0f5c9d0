package scalar

import "fmt"

func (s Scalar) String() string {
	if s.n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s { data: %.4f, grad: %.4f }", s.n.label, s.n.data, s.n.grad)
}
