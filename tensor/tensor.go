// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor types in the roipool library.
//
// The package defines core types for type-safe region pooling:
//   - Tensor[T, B]: High-level generic tensor with type safety
//   - RawTensor: Low-level tensor for advanced use cases
//   - Backend: Interface for device-specific compute implementations
//   - RegionPoolConfig, HalfPart: Region pooling configuration
//   - Shape, DataType, Device: Core type definitions
//
// Example:
//
//	backend := cpu.New()
//	features := tensor.Randn[float32](tensor.Shape{1, 256, 14, 14}, backend)
//	rois, err := tensor.FromSlice(roiData, tensor.Shape{numRegions, 5}, backend)
package tensor

import (
	"github.com/born-ml/roipool/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: float32, float64, int32, int64.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU Device = tensor.CPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the low-level tensor representation.
type RawTensor = tensor.RawTensor

// Tensor is a generic type-safe tensor.
//
// T is the data type (float32, float64, int32, int64).
// B is the backend implementation (CPU, mock).
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// RegionPoolConfig holds the immutable configuration of the region
// mask-pooling operator.
type RegionPoolConfig = tensor.RegionPoolConfig

// HalfPart restricts region pooling to one half of the rescaled region.
type HalfPart = tensor.HalfPart

// Half-part selection values.
const (
	HalfNone   HalfPart = tensor.HalfNone
	HalfLeft   HalfPart = tensor.HalfLeft
	HalfRight  HalfPart = tensor.HalfRight
	HalfTop    HalfPart = tensor.HalfTop
	HalfBottom HalfPart = tensor.HalfBottom
)

// Common errors.
var (
	// ErrInvalidPooledSize reports a non-positive pooled output dimension.
	ErrInvalidPooledSize = tensor.ErrInvalidPooledSize
	// ErrBatchIndexOutOfRange reports a region whose batch index lies
	// outside the feature map's batch.
	ErrBatchIndexOutOfRange = tensor.ErrBatchIndexOutOfRange
	// ErrBackwardNotImplemented reports a gradient request on the
	// forward-only pooling operator.
	ErrBackwardNotImplemented = tensor.ErrBackwardNotImplemented
)

// Creation functions

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// Rand creates a tensor filled with uniform random values in [0, 1).
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Rand[T, B](shape, b)
}

// Randn creates a tensor filled with random values from standard normal distribution N(0, 1).
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Randn[T, B](shape, b)
}

// Arange creates a 1D tensor with values from start to end (exclusive).
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	return tensor.Arange[T, B](start, end, b)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	backend := cpu.New()
//	rois, err := tensor.FromSlice([]float32{0, 8, 8, 56, 56}, tensor.Shape{1, 5}, backend)
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// New creates a tensor from a raw tensor.
//
// This is a low-level function. Most users should use creation functions like
// Zeros or FromSlice instead.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// NewRaw creates a new raw tensor with the given shape, dtype, and device.
//
// This is a low-level function. Most users should use high-level creation functions instead.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}
