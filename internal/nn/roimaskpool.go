// Package nn implements the region mask-pooling layer for the roipool library.
package nn

import (
	"fmt"

	"github.com/born-ml/roipool/internal/tensor"
)

// ROIMaskPool2D is a region-of-interest max pooling layer with optional
// mask suppression, used in detection and segmentation pipelines.
//
// Given a feature map [batch, channels, height, width] and a set of
// regions [numRegions, 5] with rows (batch_index, x1, y1, x2, y2) in
// image coordinates, the layer pools each region into a fixed
// pooledH x pooledW grid per channel and records, per output cell, the
// flat spatial index of the contributing maximum.
//
// The layer has no learnable parameters. Its configuration is immutable
// after construction; output buffers are sized from the observed region
// count and channel count and reused until either changes.
//
// Example:
//
//	backend := cpu.New()
//	pool, err := nn.NewROIMaskPool2D(tensor.RegionPoolConfig{
//	    PooledH:      7,
//	    PooledW:      7,
//	    SpatialScale: 1.0 / 16,
//	    RoIScale:     1,
//	}, backend)
//	output, err := pool.Forward(features, rois) // [numRegions, C, 7, 7]
type ROIMaskPool2D[B tensor.Backend] struct {
	cfg     tensor.RegionPoolConfig
	backend B

	// Pre-sized output buffers, reallocated only when the observed
	// region count or feature-map channel count changes.
	output *tensor.RawTensor
	argmax *tensor.RawTensor
}

// NewROIMaskPool2D creates a new region mask-pooling layer.
//
// The configuration is validated here, once: non-positive pooled
// dimensions fail with tensor.ErrInvalidPooledSize rather than on a
// later forward call.
func NewROIMaskPool2D[B tensor.Backend](cfg tensor.RegionPoolConfig, backend B) (*ROIMaskPool2D[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("roimaskpool2d: %w", err)
	}

	return &ROIMaskPool2D[B]{
		cfg:     cfg,
		backend: backend,
	}, nil
}

// Resize pre-sizes the output and argmax buffers for numRegions regions
// and channels feature channels. Existing buffers are kept when the
// shape is unchanged. Forward calls Resize implicitly from the observed
// input shapes; callers only need it to pre-allocate ahead of a pass.
//
// Resize must not run concurrently with Forward on the same instance.
func (p *ROIMaskPool2D[B]) Resize(numRegions, channels int) {
	shape := tensor.Shape{numRegions, channels, p.cfg.PooledH, p.cfg.PooledW}
	if p.output != nil && p.output.Shape().Equal(shape) {
		return
	}

	output, err := tensor.NewRaw(shape, tensor.Float32, p.backend.Device())
	if err != nil {
		panic(fmt.Sprintf("roimaskpool2d: resize: %v", err))
	}
	argmax, err := tensor.NewRaw(shape, tensor.Int32, p.backend.Device())
	if err != nil {
		panic(fmt.Sprintf("roimaskpool2d: resize: %v", err))
	}
	p.output = output
	p.argmax = argmax
}

// Forward performs the forward pass.
//
// features: [batch, channels, height, width]
// rois:     [numRegions, 5], rows (batch_index, x1, y1, x2, y2)
// Output:   [numRegions, channels, pooledH, pooledW]
//
// The output buffer is fully overwritten on every call. On error
// (a region batch index outside the feature map's batch) the buffers
// are left partially written and must not be read.
func (p *ROIMaskPool2D[B]) Forward(features, rois *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	featShape := features.Shape()
	if len(featShape) != 4 {
		panic(fmt.Sprintf("roimaskpool2d: expected 4D features [N,C,H,W], got %dD", len(featShape)))
	}
	roisShape := rois.Shape()
	if len(roisShape) != 2 || roisShape[1] != 5 {
		panic(fmt.Sprintf("roimaskpool2d: expected regions [numRegions, 5], got %v", roisShape))
	}

	p.Resize(roisShape[0], featShape[1])

	if err := p.backend.ROIMaskPool2D(features.Raw(), rois.Raw(), p.cfg, p.output, p.argmax); err != nil {
		return nil, err
	}

	return tensor.New[float32, B](p.output, p.backend), nil
}

// Argmax returns the argmax tensor of the most recent forward pass:
// per output cell, the flat h*width+w index into the corresponding
// channel plane, or -1 for empty bins. It is retained so a host can
// route an eventual backward pass. Returns nil before the first
// Resize/Forward.
func (p *ROIMaskPool2D[B]) Argmax() *tensor.Tensor[int32, B] {
	if p.argmax == nil {
		return nil
	}
	return tensor.New[int32, B](p.argmax, p.backend)
}

// Backward is unsupported: the operator is forward-only. The method
// exists so the capability surface is visible to callers.
func (p *ROIMaskPool2D[B]) Backward(grad, rois *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	var gradRaw, roisRaw *tensor.RawTensor
	if grad != nil {
		gradRaw = grad.Raw()
	}
	if rois != nil {
		roisRaw = rois.Raw()
	}
	return nil, p.backend.ROIMaskPool2DBackward(gradRaw, roisRaw, p.argmax, p.cfg, nil)
}

// Parameters returns nil: the layer has no learnable parameters.
func (p *ROIMaskPool2D[B]) Parameters() []*tensor.Tensor[float32, B] {
	return nil
}

// Config returns the layer's immutable configuration.
func (p *ROIMaskPool2D[B]) Config() tensor.RegionPoolConfig {
	return p.cfg
}

// PooledSize returns the output grid dimensions [pooledH, pooledW].
func (p *ROIMaskPool2D[B]) PooledSize() [2]int {
	return [2]int{p.cfg.PooledH, p.cfg.PooledW}
}

// String returns a string representation of the layer.
func (p *ROIMaskPool2D[B]) String() string {
	return fmt.Sprintf("ROIMaskPool2D(pooled=%dx%d, spatial_scale=%g, spatial_shift=%g, half_part=%s, roi_scale=%g, mask_scale=%g)",
		p.cfg.PooledH, p.cfg.PooledW, p.cfg.SpatialScale, p.cfg.SpatialShift,
		p.cfg.HalfPart, p.cfg.RoIScale, p.cfg.MaskScale)
}
