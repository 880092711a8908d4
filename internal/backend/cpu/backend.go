// Package cpu implements the CPU backend for region pooling operations.
package cpu

import (
	"github.com/born-ml/roipool/internal/parallel"
	"github.com/born-ml/roipool/internal/tensor"
)

// CPUBackend implements region pooling on CPU.
//
// The forward pass is sequential by default. NewParallel enables
// sharding across regions; every (region, channel, cell) triple writes
// to a disjoint output location, so the parallel path is numerically
// identical to the sequential one.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new sequential CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// NewParallel creates a CPU backend that shards the forward pass across
// regions according to cfg.
func NewParallel(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}
