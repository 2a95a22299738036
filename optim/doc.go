// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
//	mark := g.Len()
//
//	for epoch := 0; epoch < epochs; epoch++ {
//	    g.Truncate(mark)
//	    loss := computeLoss(model)
//	    loss.Backward()
//	    optimizer.Step(g)
//	}
package optim
