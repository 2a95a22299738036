package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/born-ml/scalargrad/autodiff"
	"github.com/born-ml/scalargrad/nn"
	"github.com/born-ml/scalargrad/optim"
)

// Four inputs and their desired outputs: ys[i] is the target for xs[i].
var (
	xs = [][]float64{
		{2.0, 3.0, -1.0},
		{3.0, -1.0, 0.5},
		{0.5, 1.0, 1.0},
		{1.0, 1.0, -1.0},
	}
	ys = []float64{1.0, -1.0, -1.0, 1.0}
)

type trainConfig struct {
	Epochs     int
	LR         float64
	Momentum   float64
	Optimizer  string
	Hidden     []int
	Seed       int64
	Activation nn.Activation
	Workers    int // > 1 computes per-sample gradients concurrently
}

// train fits an MLP to xs/ys and returns the loss of the last epoch.
func train(cfg trainConfig, out io.Writer) (float64, error) {
	//nolint:gosec // Weight initialization is not security-critical.
	rng := rand.New(rand.NewSource(cfg.Seed))

	g := autodiff.NewGraph()
	model := nn.NewMLP(g, nn.MLPConfig{
		Inputs:     len(xs[0]),
		Outputs:    append(append([]int(nil), cfg.Hidden...), 1),
		Activation: cfg.Activation,
		Rand:       rng,
	})

	var opt optim.Optimizer
	switch cfg.Optimizer {
	case "sgd", "":
		opt = optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: cfg.LR, Momentum: cfg.Momentum})
	case "adam":
		opt = optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: cfg.LR})
	default:
		return 0, fmt.Errorf("unknown optimizer %q", cfg.Optimizer)
	}

	fmt.Fprintf(out, "%d parameters\n", model.NumParameters())
	mark := g.Len()

	var last float64
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		g.Truncate(mark)

		preds := predict(g, model)
		if cfg.Workers > 1 {
			last = stepPerSample(g, opt, preds, cfg.Workers)
		} else {
			loss := nn.SumSquaredError(preds, g.Leaves(ys))
			loss.Backward()
			opt.Step(g)
			last = loss.Data()
		}
		fmt.Fprintf(out, "Loss %d: %.6f\n", epoch, last)
	}

	g.Truncate(mark)
	for i, p := range predict(g, model) {
		fmt.Fprintf(out, "x=%v target=%+.1f predicted=%+.4f\n", xs[i], ys[i], p.Data())
	}

	return last, nil
}

func predict(g *autodiff.Graph, model *nn.MLP) []autodiff.Value {
	preds := make([]autodiff.Value, len(xs))
	for i, x := range xs {
		preds[i] = model.Forward(g.Leaves(x))[0]
	}
	return preds
}

// stepPerSample builds one loss per sample, runs their backward passes on
// separate gradient storage and steps with the summed gradients. The result
// is the same update as a single pass over the summed loss.
func stepPerSample(g *autodiff.Graph, opt optim.Optimizer, preds []autodiff.Value, workers int) float64 {
	losses := make([]autodiff.Value, len(preds))
	var total float64
	for i := range preds {
		losses[i] = nn.SumSquaredError(preds[i:i+1], []autodiff.Value{g.Leaf(ys[i])})
		total += losses[i].Data()
	}

	sets := g.BatchGradients(losses, autodiff.ParallelConfig{Enabled: true, NumWorkers: workers})
	opt.Step(autodiff.GradientSum(sets))
	return total
}
