// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/roipool/internal/nn"
	"github.com/born-ml/roipool/internal/tensor"
)

// ROIMaskPool2D is a region-of-interest max pooling layer with optional
// rectangular mask suppression.
//
// The layer extracts a fixed-size pooled grid from each region of a batched
// feature map and records the argmax location of every pooled cell.
type ROIMaskPool2D[B tensor.Backend] = nn.ROIMaskPool2D[B]

// NewROIMaskPool2D creates a new ROI mask pooling layer.
//
// Example:
//
//	backend := cpu.New()
//	pool, err := nn.NewROIMaskPool2D(tensor.RegionPoolConfig{
//	    PooledH:      7,
//	    PooledW:      7,
//	    SpatialScale: 1.0 / 16.0,
//	}, backend)
func NewROIMaskPool2D[B tensor.Backend](cfg tensor.RegionPoolConfig, backend B) (*ROIMaskPool2D[B], error) {
	return nn.NewROIMaskPool2D(cfg, backend)
}
