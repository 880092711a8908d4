// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/roipool/internal/backend/cpu"
	"github.com/born-ml/roipool/internal/parallel"
	"github.com/born-ml/roipool/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of the region pooling
// operations with optional parallel sharding across regions.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// Config controls parallel execution of the pooling kernel.
type Config = parallel.Config

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/roipool/backend/cpu"
//	    "github.com/born-ml/roipool/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{1, 256, 14, 14}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewParallel creates a CPU backend that shards work across regions
// according to cfg.
//
// Example:
//
//	backend := cpu.NewParallel(cpu.Config{
//	    Enabled:    true,
//	    NumWorkers: runtime.NumCPU(),
//	})
func NewParallel(cfg Config) *Backend {
	return internalcpu.NewParallel(cfg)
}
