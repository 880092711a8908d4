package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/roipool/internal/backend/cpu"
	"github.com/born-ml/roipool/internal/tensor"
)

func quadrantConfig() tensor.RegionPoolConfig {
	return tensor.RegionPoolConfig{
		PooledH:      2,
		PooledW:      2,
		SpatialScale: 1,
		RoIScale:     1,
	}
}

// TestNewROIMaskPool2D_InvalidConfig rejects non-positive pooled dims at setup.
func TestNewROIMaskPool2D_InvalidConfig(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name string
		cfg  tensor.RegionPoolConfig
	}{
		{"zero height", tensor.RegionPoolConfig{PooledH: 0, PooledW: 7}},
		{"zero width", tensor.RegionPoolConfig{PooledH: 7, PooledW: 0}},
		{"negative height", tensor.RegionPoolConfig{PooledH: -2, PooledW: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewROIMaskPool2D(tt.cfg, backend)
			require.Error(t, err)
			assert.ErrorIs(t, err, tensor.ErrInvalidPooledSize)
			assert.Nil(t, pool)
		})
	}
}

// TestROIMaskPool2D_Forward runs the 4x4 quadrant scenario end to end.
func TestROIMaskPool2D_Forward(t *testing.T) {
	backend := cpu.New()

	pool, err := NewROIMaskPool2D(quadrantConfig(), backend)
	require.NoError(t, err)

	featData := make([]float32, 16)
	for i := range featData {
		featData[i] = float32(i)
	}
	features, err := tensor.FromSlice(featData, tensor.Shape{1, 1, 4, 4}, backend)
	require.NoError(t, err)

	rois, err := tensor.FromSlice([]float32{0, 0, 0, 3, 3}, tensor.Shape{1, 5}, backend)
	require.NoError(t, err)

	output, err := pool.Forward(features, rois)
	require.NoError(t, err)

	assert.True(t, output.Shape().Equal(tensor.Shape{1, 1, 2, 2}), "output shape %v", output.Shape())
	assert.Equal(t, []float32{5, 7, 13, 15}, output.Data())

	argmax := pool.Argmax()
	require.NotNil(t, argmax)
	assert.True(t, argmax.Shape().Equal(tensor.Shape{1, 1, 2, 2}))
	assert.Equal(t, []int32{5, 7, 13, 15}, argmax.Data())
}

// TestROIMaskPool2D_ResizeOnShapeChange reuses buffers for stable shapes
// and reallocates when the region count changes.
func TestROIMaskPool2D_ResizeOnShapeChange(t *testing.T) {
	backend := cpu.New()

	pool, err := NewROIMaskPool2D(quadrantConfig(), backend)
	require.NoError(t, err)

	features := tensor.Ones[float32](tensor.Shape{1, 3, 4, 4}, backend)

	oneROI, err := tensor.FromSlice([]float32{0, 0, 0, 3, 3}, tensor.Shape{1, 5}, backend)
	require.NoError(t, err)
	twoROIs, err := tensor.FromSlice([]float32{
		0, 0, 0, 3, 3,
		0, 1, 1, 2, 2,
	}, tensor.Shape{2, 5}, backend)
	require.NoError(t, err)

	out1, err := pool.Forward(features, oneROI)
	require.NoError(t, err)
	assert.True(t, out1.Shape().Equal(tensor.Shape{1, 3, 2, 2}))

	// Same shapes: the buffer is reused.
	out2, err := pool.Forward(features, oneROI)
	require.NoError(t, err)
	assert.Same(t, out1.Raw(), out2.Raw())

	// More regions: the buffer is reallocated.
	out3, err := pool.Forward(features, twoROIs)
	require.NoError(t, err)
	assert.True(t, out3.Shape().Equal(tensor.Shape{2, 3, 2, 2}))
	assert.NotSame(t, out1.Raw(), out3.Raw())
	assert.True(t, pool.Argmax().Shape().Equal(tensor.Shape{2, 3, 2, 2}))
}

// TestROIMaskPool2D_OutOfRangeBatch surfaces the error through the layer.
func TestROIMaskPool2D_OutOfRangeBatch(t *testing.T) {
	backend := cpu.New()

	pool, err := NewROIMaskPool2D(quadrantConfig(), backend)
	require.NoError(t, err)

	features := tensor.Ones[float32](tensor.Shape{1, 1, 4, 4}, backend)
	rois, err := tensor.FromSlice([]float32{1, 0, 0, 3, 3}, tensor.Shape{1, 5}, backend)
	require.NoError(t, err)

	output, err := pool.Forward(features, rois)
	require.Error(t, err)
	assert.ErrorIs(t, err, tensor.ErrBatchIndexOutOfRange)
	assert.Nil(t, output)
}

// TestROIMaskPool2D_Backward checks the forward-only contract.
func TestROIMaskPool2D_Backward(t *testing.T) {
	backend := cpu.New()

	pool, err := NewROIMaskPool2D(quadrantConfig(), backend)
	require.NoError(t, err)

	grad, err := pool.Backward(nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, tensor.ErrBackwardNotImplemented)
	assert.Nil(t, grad)
}

// TestROIMaskPool2D_InputValidation panics on malformed input shapes.
func TestROIMaskPool2D_InputValidation(t *testing.T) {
	backend := cpu.New()

	pool, err := NewROIMaskPool2D(quadrantConfig(), backend)
	require.NoError(t, err)

	features3D := tensor.Ones[float32](tensor.Shape{1, 4, 4}, backend)
	features := tensor.Ones[float32](tensor.Shape{1, 1, 4, 4}, backend)
	badROIs := tensor.Ones[float32](tensor.Shape{1, 4}, backend)
	rois := tensor.Zeros[float32](tensor.Shape{1, 5}, backend)

	assert.Panics(t, func() { _, _ = pool.Forward(features3D, rois) })
	assert.Panics(t, func() { _, _ = pool.Forward(features, badROIs) })
}

// TestROIMaskPool2D_Accessors covers the metadata surface.
func TestROIMaskPool2D_Accessors(t *testing.T) {
	backend := cpu.New()

	cfg := tensor.RegionPoolConfig{
		PooledH:      7,
		PooledW:      6,
		SpatialScale: 0.0625,
		HalfPart:     tensor.HalfLeft,
		RoIScale:     1,
		MaskScale:    0.8,
	}
	pool, err := NewROIMaskPool2D(cfg, backend)
	require.NoError(t, err)

	assert.Equal(t, cfg, pool.Config())
	assert.Equal(t, [2]int{7, 6}, pool.PooledSize())
	assert.Contains(t, pool.String(), "pooled=7x6")
	assert.Contains(t, pool.String(), "half_part=left")
	assert.Nil(t, pool.Argmax(), "argmax is nil before the first forward")
}
