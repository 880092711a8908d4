package tensor

import "fmt"

// HalfPart restricts region pooling to one half of the rescaled region.
type HalfPart int

// Half-part selection values. Values outside this range behave as HalfNone.
const (
	HalfNone HalfPart = iota
	HalfLeft
	HalfRight
	HalfTop
	HalfBottom
)

// String returns a human-readable half-part name.
func (h HalfPart) String() string {
	switch h {
	case HalfNone:
		return "none"
	case HalfLeft:
		return "left"
	case HalfRight:
		return "right"
	case HalfTop:
		return "top"
	case HalfBottom:
		return "bottom"
	default:
		return "none"
	}
}

// RegionPoolConfig holds the immutable configuration of the region
// mask-pooling operator.
//
// A region (batch, x1, y1, x2, y2) in image coordinates is rescaled by
// RoIScale around its center, optionally restricted to one half, and
// mapped onto the feature map by the affine transform
// round(x*SpatialScale + SpatialShift). Features are then max-pooled
// into a PooledH x PooledW grid per channel.
//
// MaskScale > 0 additionally defines a sub-rectangle of the unscaled
// region whose feature values are treated as zero during the max
// reduction. MaskScale <= 0 disables masking.
type RegionPoolConfig struct {
	PooledH      int      // Output grid height per region. Must be > 0.
	PooledW      int      // Output grid width per region. Must be > 0.
	SpatialScale float32  // Scale from region coordinates to feature-map coordinates.
	SpatialShift float32  // Shift from region coordinates to feature-map coordinates.
	HalfPart     HalfPart // Which half of the rescaled region to keep.
	RoIScale     float32  // Rescaling factor applied to the region before pooling. <= 0 means 1.
	MaskScale    float32  // Rescaling factor defining the masked sub-rectangle. <= 0 disables.
}

// Masked reports whether mask suppression is enabled.
func (c RegionPoolConfig) Masked() bool {
	return c.MaskScale > 0
}

// Validate checks the configuration. Non-positive pooled dimensions are
// a fatal configuration error, surfaced at setup time rather than per
// forward call.
func (c RegionPoolConfig) Validate() error {
	if c.PooledH <= 0 {
		return fmt.Errorf("pooled height %d must be > 0: %w", c.PooledH, ErrInvalidPooledSize)
	}
	if c.PooledW <= 0 {
		return fmt.Errorf("pooled width %d must be > 0: %w", c.PooledW, ErrInvalidPooledSize)
	}
	return nil
}

// String returns a human-readable representation of the configuration.
func (c RegionPoolConfig) String() string {
	return fmt.Sprintf("RegionPoolConfig(pooled=%dx%d, scale=%g, shift=%g, half=%s, roi_scale=%g, mask_scale=%g)",
		c.PooledH, c.PooledW, c.SpatialScale, c.SpatialShift, c.HalfPart, c.RoIScale, c.MaskScale)
}
