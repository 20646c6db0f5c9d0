package scalar

import (
	"github.com/pkg/errors"
)

// ErrInvalidScalar is returned when an operation is given the zero Scalar.
var ErrInvalidScalar = errors.New("scalar has no graph node")

// Op identifies the operation that produced a node.
type Op uint8

const (
	OpLeaf Op = iota
	OpAdd
	OpMul
	OpPow
	OpExp
	OpTanh
)

func (o Op) String() string {
	switch o {
	case OpLeaf:
		return "leaf"
	case OpAdd:
		return "add"
	case OpMul:
		return "mul"
	case OpPow:
		return "pow"
	case OpExp:
		return "exp"
	case OpTanh:
		return "tanh"
	}
	return "unknown"
}

type node struct {
	data      float64
	grad      float64
	label     string
	op        Op
	exponent  float64
	producers []*node
}

// Scalar is a handle to one node of the computation graph. Copies share the
// node, and == compares node identity rather than value.
type Scalar struct {
	n *node
}

func New(data float64) Scalar {
	return Scalar{n: &node{data: data}}
}

func NewWithLabel(data float64, label string) Scalar {
	s := New(data)
	s.n.label = label
	return s
}

func derived(data float64, op Op, label string, producers ...*node) Scalar {
	return Scalar{n: &node{
		data:      data,
		op:        op,
		label:     label,
		producers: producers,
	}}
}

func (s Scalar) Valid() bool {
	return s.n != nil
}

// Clone returns another handle to the same node.
func (s Scalar) Clone() Scalar {
	return s
}

func (s Scalar) Data() float64 {
	return s.n.data
}

func (s Scalar) Grad() float64 {
	return s.n.grad
}

// SetData overwrites the value in place. Nodes computed from s keep their
// previous data until the graph is rebuilt.
func (s Scalar) SetData(v float64) {
	s.n.data = v
}

func (s Scalar) AddToData(delta float64) {
	s.n.data += delta
}

func (s Scalar) ZeroGrad() {
	s.n.grad = 0
}

func (s Scalar) Label() string {
	return s.n.label
}

func (s Scalar) SetLabel(label string) {
	s.n.label = label
}

func (s Scalar) Op() Op {
	return s.n.op
}

func (s Scalar) IsLeaf() bool {
	return len(s.n.producers) == 0
}

// Exponent is the fixed power of an OpPow node and zero otherwise.
func (s Scalar) Exponent() float64 {
	return s.n.exponent
}

func (s Scalar) Producers() []Scalar {
	out := make([]Scalar, len(s.n.producers))
	for i, p := range s.n.producers {
		out[i] = Scalar{n: p}
	}
	return out
}
