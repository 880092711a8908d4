// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for region pooling.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - Per-region argmax tracking
//   - Optional parallel execution across regions
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/roipool/backend/cpu"
//	    "github.com/born-ml/roipool/tensor"
//	    "github.com/born-ml/roipool/nn"
//	)
//
//	func main() {
//	    // Create CPU backend
//	    backend := cpu.New()
//
//	    // Use with tensors
//	    features := tensor.Randn[float32](tensor.Shape{1, 256, 14, 14}, backend)
//
//	    // Use with the pooling layer
//	    pool, _ := nn.NewROIMaskPool2D(tensor.RegionPoolConfig{
//	        PooledH: 7, PooledW: 7, SpatialScale: 1.0 / 16.0,
//	    }, backend)
//	}
//
// # Parallelism
//
// NewParallel shards the forward pass across regions. Each worker writes
// to a disjoint slice of the output and argmax buffers, so results are
// bitwise identical to the sequential path.
//
//	backend := cpu.NewParallel(cpu.Config{
//	    Enabled:    true,
//	    NumWorkers: runtime.NumCPU(),
//	})
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each pooling call is
// isolated and does not share mutable state.
package cpu
