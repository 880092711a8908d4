// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the region pooling layer API.
//
// # Overview
//
// This package contains:
//   - ROIMaskPool2D: region-of-interest max pooling with argmax tracking,
//     optional mask suppression, half-part restriction, and region rescaling
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/roipool/nn"
//	    "github.com/born-ml/roipool/tensor"
//	    "github.com/born-ml/roipool/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    pool, err := nn.NewROIMaskPool2D(tensor.RegionPoolConfig{
//	        PooledH:      7,
//	        PooledW:      7,
//	        SpatialScale: 1.0 / 16.0,
//	    }, backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // features: [N, C, H, W], rois: [numRegions, 5]
//	    output, err := pool.Forward(features, rois)
//	}
//
// # Region Layout
//
// Each region is a row of five values:
//
//	(batch_index, x1, y1, x2, y2)
//
// where (x1, y1) and (x2, y2) describe the region in input-image
// coordinates. The configured spatial scale and shift map them onto the
// feature map.
//
// # Argmax
//
// After a forward pass, Argmax returns an int32 tensor of the same shape
// as the output. Each entry holds the flat h*W+w index of the winning
// element within its channel plane, or -1 for pooled cells whose bin was
// empty.
package nn
