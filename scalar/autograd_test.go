package scalar

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

type neuronGraph struct {
	x1, x2, w1, w2, b Scalar
	x1w1, x2w2, sum   Scalar
}

func buildNeuron() neuronGraph {
	g := neuronGraph{
		x1: NewWithLabel(2, "x1"),
		x2: NewWithLabel(0, "x2"),
		w1: NewWithLabel(-3, "w1"),
		w2: NewWithLabel(1, "w2"),
		b:  NewWithLabel(6.8814, "b"),
	}
	g.x1w1 = g.x1.Mul(g.w1)
	g.x1w1.SetLabel("x1w1")
	g.x2w2 = g.x2.Mul(g.w2)
	g.x2w2.SetLabel("x2w2")
	g.sum = g.x1w1.Add(g.x2w2).Add(g.b)
	g.sum.SetLabel("sum")
	return g
}

func (g neuronGraph) leafGrads() []float64 {
	return []float64{g.x1.Grad(), g.x2.Grad(), g.w1.Grad(), g.w2.Grad(), g.b.Grad(), g.sum.Grad()}
}

func TestBackwardTanhNeuron(t *testing.T) {
	g := buildNeuron()
	out := g.sum.Tanh()
	out.SetLabel("tanh")
	if err := out.Backward(); err != nil {
		t.Fatal(err)
	}
	if !almostEqual(out.Data(), 0.7071, 1e-4) {
		t.Fatalf("tanh data: %v", out.Data())
	}
	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"out", out.Grad(), 1},
		{"sum", g.sum.Grad(), 0.5},
		{"x1w1", g.x1w1.Grad(), 0.5},
		{"x2w2", g.x2w2.Grad(), 0.5},
		{"b", g.b.Grad(), 0.5},
		{"w1", g.w1.Grad(), 1},
		{"w2", g.w2.Grad(), 0},
		{"x1", g.x1.Grad(), -1.5},
		{"x2", g.x2.Grad(), 0.5},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want, 1e-4) {
			t.Fatalf("%s grad: got %.6f want %.4f", c.name, c.got, c.want)
		}
	}
	if got := out.String(); got != "tanh { data: 0.7071, grad: 1.0000 }" {
		t.Fatalf("unexpected display %q", got)
	}
}

func TestManualTanhMatchesTanh(t *testing.T) {
	direct := buildNeuron()
	out := direct.sum.Tanh()
	if err := out.Backward(); err != nil {
		t.Fatal(err)
	}

	manual := buildNeuron()
	s := manual.sum
	num := s.MulNumber(2).Exp().AddNumber(-1)
	den := s.MulNumber(2).Exp().AddNumber(1)
	composed := num.Div(den)
	if err := composed.Backward(); err != nil {
		t.Fatal(err)
	}

	if !almostEqual(out.Data(), composed.Data(), 1e-12) {
		t.Fatalf("data mismatch: %v vs %v", out.Data(), composed.Data())
	}
	want := direct.leafGrads()
	got := manual.leafGrads()
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-9) {
			t.Fatalf("grad %d mismatch: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestReusedOperandAccumulates(t *testing.T) {
	a := NewWithLabel(3, "a")
	b := a.Add(a)
	b.SetLabel("b")
	if err := b.Backward(); err != nil {
		t.Fatal(err)
	}
	if a.Grad() != 2 || b.Grad() != 1 {
		t.Fatalf("a=%v b=%v", a, b)
	}
	if order := b.TopologicalOrder(); len(order) != 2 {
		t.Fatalf("shared operand should be visited once, order has %d nodes", len(order))
	}

	x := New(3)
	sq := x.Mul(x)
	if err := sq.Backward(); err != nil {
		t.Fatal(err)
	}
	if x.Grad() != 6 {
		t.Fatalf("x*x grad: %v", x.Grad())
	}
}

func TestSharedSubexpression(t *testing.T) {
	a := New(-2)
	b := New(3)
	c := a.Mul(b)
	d := c.Add(c.Pow(2))
	if err := d.Backward(); err != nil {
		t.Fatal(err)
	}
	// d = ab + (ab)^2, dd/dc = 1 + 2c = -11
	if c.Grad() != -11 {
		t.Fatalf("c grad: %v", c.Grad())
	}
	if a.Grad() != -33 || b.Grad() != 22 {
		t.Fatalf("a=%v b=%v", a.Grad(), b.Grad())
	}
}

func TestTopologicalOrder(t *testing.T) {
	g := buildNeuron()
	out := g.sum.Tanh()
	order := out.TopologicalOrder()
	pos := map[Scalar]int{}
	for i, s := range order {
		pos[s] = i
	}
	if order[len(order)-1] != out {
		t.Fatalf("root should be last")
	}
	for _, s := range order {
		for _, p := range s.Producers() {
			if pos[p] >= pos[s] {
				t.Fatalf("producer %q placed after consumer %q", p.Label(), s.Label())
			}
		}
	}
	if len(order) != 10 {
		t.Fatalf("expected 10 nodes, got %d", len(order))
	}
}

func TestZeroGradThenBackwardMatchesFresh(t *testing.T) {
	fresh := buildNeuron()
	if err := fresh.sum.Tanh().Backward(); err != nil {
		t.Fatal(err)
	}

	reused := buildNeuron()
	out := reused.sum.Tanh()
	if err := out.Backward(); err != nil {
		t.Fatal(err)
	}
	for _, s := range out.TopologicalOrder() {
		s.ZeroGrad()
	}
	if err := out.Backward(); err != nil {
		t.Fatal(err)
	}
	want := fresh.leafGrads()
	got := reused.leafGrads()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("grad %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestBackwardTwiceDoubles(t *testing.T) {
	g := buildNeuron()
	out := g.sum.Tanh()
	if err := out.Backward(); err != nil {
		t.Fatal(err)
	}
	order := out.TopologicalOrder()
	once := make([]float64, len(order))
	for i, s := range order {
		once[i] = s.Grad()
	}
	if err := out.Backward(); err != nil {
		t.Fatal(err)
	}
	for i, s := range order {
		if !almostEqual(s.Grad(), 2*once[i], 1e-12) {
			t.Fatalf("%q: got %v want %v", s.Label(), s.Grad(), 2*once[i])
		}
	}
}

func TestDisconnectedLeafUntouched(t *testing.T) {
	a := New(1)
	b := New(2)
	stray := New(5)
	stray.n.grad = 0.25
	c := a.Mul(b)
	if err := c.Backward(); err != nil {
		t.Fatal(err)
	}
	if stray.Grad() != 0.25 {
		t.Fatalf("disconnected leaf changed: %v", stray.Grad())
	}
}

func TestBackwardDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	x := NewWithLabel(3, "x")
	y := x.Pow(2)
	y.SetLabel("y")
	if err := y.Backward(); err != nil {
		t.Fatal(err)
	}
	logged := buf.String()
	if !strings.Contains(logged, "label=y") || !strings.Contains(logged, "label=x") {
		t.Fatalf("expected both nodes in debug output, got %q", logged)
	}
	if x.Grad() != 6 {
		t.Fatalf("logging changed result: %v", x.Grad())
	}
}

func TestBackwardIgnoresStoredInteriorGrads(t *testing.T) {
	a := NewWithLabel(2, "a")
	b := NewWithLabel(-3, "b")
	c := a.Mul(b)
	if err := c.Backward(); err != nil {
		t.Fatal(err)
	}
	if c.Grad() != 1 || a.Grad() != -3 {
		t.Fatalf("first pass: c=%v a=%v", c.Grad(), a.Grad())
	}

	// c keeps grad 1 from the first pass; only d's contribution reaches a.
	d := c.Tanh()
	if err := d.Backward(); err != nil {
		t.Fatal(err)
	}
	local := 1 - d.Data()*d.Data()
	if !almostEqual(c.Grad(), 1+local, 1e-12) {
		t.Fatalf("c grad: got %v want %v", c.Grad(), 1+local)
	}
	if !almostEqual(a.Grad(), -3+local*-3, 1e-12) {
		t.Fatalf("a grad: got %v want %v", a.Grad(), -3+local*-3)
	}
}
