package tensor

import "errors"

// Common errors.
var (
	ErrInvalidPooledSize      = errors.New("pooled dimensions must be positive")
	ErrBatchIndexOutOfRange   = errors.New("region batch index outside feature map batch")
	ErrBackwardNotImplemented = errors.New("backward pass not implemented")
)
