// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/roipool/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for region pooling operations.
//
// Implementations:
//   - backend/cpu: Production CPU implementation with optional parallel
//     sharding across regions
//   - internal mock: Naive reference implementation used by tests
//
// Example:
//
//	import (
//	    "github.com/born-ml/roipool/tensor"
//	    "github.com/born-ml/roipool/backend/cpu"
//	)
//
//	backend := cpu.New()
//	features := tensor.Randn[float32](tensor.Shape{1, 256, 14, 14}, backend)
type Backend = tensor.Backend
