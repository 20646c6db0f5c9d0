package scalar

import (
	"context"
	"log/slog"
	"math"
)

// Backward computes d(s)/d(n) for every node n that s depends on and adds it
// to n's gradient. Existing gradients are never reset, so two calls without
// an intervening ZeroGrad leave every reachable node with twice the gradient
// of a single call. Gradients already stored on interior nodes are not
// propagated; only this call's contributions flow to the producers.
func (s Scalar) Backward() error {
	if s.n == nil {
		return ErrInvalidScalar
	}
	order := topo(s.n)
	grads := map[*node]float64{s.n: 1}
	log := Logger()
	debug := log.Enabled(context.Background(), slog.LevelDebug)
	for i := len(order) - 1; i >= 0; i-- {
		current := order[i]
		grad := grads[current]
		current.grad += grad
		if current.op != OpLeaf {
			propagate(current, grad, grads)
		}
		if debug {
			log.Debug("backward", "label", current.label, "op", current.op.String(), "grad", current.grad)
		}
	}
	return nil
}

// TopologicalOrder lists the nodes reachable from s with every node placed
// after all of its producers; s is last.
func (s Scalar) TopologicalOrder() []Scalar {
	if s.n == nil {
		return nil
	}
	order := topo(s.n)
	out := make([]Scalar, len(order))
	for i, n := range order {
		out[i] = Scalar{n: n}
	}
	return out
}

func topo(root *node) []*node {
	visited := map[*node]bool{}
	var order []*node
	var visit func(*node)
	visit = func(n *node) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, p := range n.producers {
			visit(p)
		}
		order = append(order, n)
	}
	visit(root)
	return order
}

// propagate pushes this pass's gradient of n onto its producers. Reverse
// topological order guarantees grad already holds every consumer's share.
func propagate(n *node, grad float64, grads map[*node]float64) {
	local := localGradients(n)
	for i, p := range n.producers {
		grads[p] += local[i] * grad
	}
}

// localGradients returns d(n)/d(producer) for each producer, reading the
// producers' data as it is now rather than when n was built.
func localGradients(n *node) []float64 {
	switch n.op {
	case OpAdd:
		return []float64{1, 1}
	case OpMul:
		return []float64{n.producers[1].data, n.producers[0].data}
	case OpPow:
		base := n.producers[0].data
		return []float64{n.exponent * math.Pow(base, n.exponent-1)}
	case OpExp:
		return []float64{n.data}
	case OpTanh:
		return []float64{1 - n.data*n.data}
	}
	return nil
}
