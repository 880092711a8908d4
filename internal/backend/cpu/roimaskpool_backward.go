package cpu

import (
	"fmt"

	"github.com/born-ml/roipool/internal/tensor"
)

// ROIMaskPool2DBackward would scatter the output gradient back through
// the argmax indices recorded by the forward pass. The operator is
// forward-only; the method exists so the capability surface stays
// visible to callers and future implementers.
func (cpu *CPUBackend) ROIMaskPool2DBackward(_, _, _ *tensor.RawTensor, _ tensor.RegionPoolConfig, _ *tensor.RawTensor) error {
	return fmt.Errorf("roimaskpool2d: backward: %w", tensor.ErrBackwardNotImplemented)
}
