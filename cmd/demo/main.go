package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/fumitoshi0524/ixeoriGrad/nn"
	"github.com/fumitoshi0524/ixeoriGrad/scalar"
)

type trainConfig struct {
	LR          float64
	Steps       int
	Optimizer   string
	Seed        int64
	Momentum    float64
	WeightDecay float64
	Nesterov    bool
	MaxGradNorm float64
	ClipValue   float64
	MaxAbs      float64
}

type scenario func(w io.Writer, cfg trainConfig) error

var scenarios = map[string]scenario{
	"tanh":      runTanh,
	"basics":    runBasics,
	"mlp":       runMLP,
	"train":     runTrain,
	"gradcheck": runGradCheck,
}

func scenarioNames() string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func main() {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	lr := fs.Float64("lr", 0.05, "learning rate for the train scenario")
	steps := fs.Int("steps", 20, "gradient descent steps for the train scenario")
	opt := fs.String("optimizer", "sgd", "optimizer for the train scenario: sgd or adam")
	seed := fs.Int64("seed", time.Now().UnixNano(), "seed for parameter initialization")
	momentum := fs.Float64("momentum", 0, "sgd momentum")
	weightDecay := fs.Float64("weight-decay", 0, "sgd L2 weight decay")
	nesterov := fs.Bool("nesterov", false, "use nesterov momentum with sgd")
	maxGradNorm := fs.Float64("max-grad-norm", 0, "rescale sgd gradients to this L2 norm (0 disables)")
	clip := fs.Float64("clip", 0, "clamp each sgd gradient to [-clip, clip] (0 disables)")
	maxAbs := fs.Float64("max-abs", 0, "keep sgd parameters within [-max-abs, max-abs] (0 disables)")
	verbose := fs.Bool("v", false, "log every backward step at debug level")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: demo [flags] <scenario>\nscenarios: %s\n", scenarioNames())
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	scalar.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := trainConfig{
		LR:          *lr,
		Steps:       *steps,
		Optimizer:   *opt,
		Seed:        *seed,
		Momentum:    *momentum,
		WeightDecay: *weightDecay,
		Nesterov:    *nesterov,
		MaxGradNorm: *maxGradNorm,
		ClipValue:   *clip,
		MaxAbs:      *maxAbs,
	}
	if err := run(fs.Args(), os.Stdout, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer, cfg trainConfig) error {
	if len(args) != 1 {
		return errors.Errorf("expected exactly one scenario (%s), got %d arguments", scenarioNames(), len(args))
	}
	fn, ok := scenarios[args[0]]
	if !ok {
		return errors.Errorf("unknown scenario %q (want one of %s)", args[0], scenarioNames())
	}
	nn.Seed(cfg.Seed)
	return errors.Wrapf(fn(w, cfg), "scenario %s", args[0])
}
