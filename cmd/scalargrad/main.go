// Package main provides the scalargrad training CLI.
//
// It fits a small tanh MLP to a fixed four-sample dataset and prints the loss
// after every epoch.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/scalargrad/nn"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("scalargrad %s\n", version)
		return
	}

	epochs := flag.Int("epochs", 20, "Number of training epochs")
	lr := flag.Float64("lr", 0.05, "Learning rate")
	momentum := flag.Float64("momentum", 0, "SGD momentum factor")
	optimizer := flag.String("optimizer", "sgd", "Optimizer: sgd or adam")
	hidden := flag.String("hidden", "4,4", "Comma-separated hidden layer sizes")
	seed := flag.Int64("seed", 42, "Seed for weight initialization")
	activation := flag.String("activation", "tanh", "Activation: tanh, relu or linear")
	workers := flag.Int("workers", 1, "Goroutines for per-sample backward passes (1 = single pass)")
	flag.Parse()

	sizes, err := parseSizes(*hidden)
	if err != nil {
		log.Fatalf("invalid -hidden: %v", err)
	}
	act, err := nn.ParseActivation(*activation)
	if err != nil {
		log.Fatalf("invalid -activation: %v", err)
	}

	cfg := trainConfig{
		Epochs:     *epochs,
		LR:         *lr,
		Momentum:   *momentum,
		Optimizer:  *optimizer,
		Hidden:     sizes,
		Seed:       *seed,
		Activation: act,
		Workers:    *workers,
	}

	fmt.Printf("scalargrad %s: MLP 3 -> %v -> 1 (%s), %s lr=%g\n", version, sizes, act, cfg.Optimizer, cfg.LR)
	if _, err := train(cfg, os.Stdout); err != nil {
		log.Fatalf("training failed: %v", err)
	}
}

// parseSizes parses "4,4" into []int{4, 4}. An empty string means no hidden layers.
func parseSizes(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("layer %d: size must be positive, got %d", i, n)
		}
		sizes[i] = n
	}
	return sizes, nil
}
