package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for region pooling operations.
//
// Implementations:
//   - backend/cpu: Production CPU implementation with optional parallel
//     sharding across regions
//   - MockBackend: Naive reference implementation for correctness
//     verification in tests
type Backend interface {
	// ROIMaskPool2D max-pools features (N, C, H, W) over each region in
	// rois (numRegions, 5) into the pre-sized output tensor
	// (numRegions, C, pooledH, pooledW), recording the flat spatial
	// index (h*W + w) of each bin's maximum in argmax (same shape,
	// Int32). Each region row is (batch_index, x1, y1, x2, y2).
	//
	// Both output buffers are fully overwritten. Empty bins produce 0
	// with argmax -1. A batch index outside [0, N) fails the whole
	// invocation with ErrBatchIndexOutOfRange, leaving the buffers in
	// an undefined, partially written state.
	ROIMaskPool2D(features, rois *RawTensor, cfg RegionPoolConfig, output, argmax *RawTensor) error

	// ROIMaskPool2DBackward would route gradients through the argmax
	// indices recorded by the forward pass. The operator is
	// forward-only: every implementation returns
	// ErrBackwardNotImplemented.
	ROIMaskPool2DBackward(grad, rois, argmax *RawTensor, cfg RegionPoolConfig, inputGrad *RawTensor) error

	// Metadata
	Name() string
	Device() Device
}
