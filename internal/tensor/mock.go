package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements region pooling naively, in float64 throughout, for
// correctness verification of the production backends.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// ROIMaskPool2D is a brute-force reference implementation.
// For each output cell it gathers every candidate value of the bin
// (masked values forced to zero) and reduces with floats.MaxIdx.
func (m *MockBackend) ROIMaskPool2D(features, rois *RawTensor, cfg RegionPoolConfig, output, argmax *RawTensor) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	featShape := features.Shape()
	batchSize := featShape[0]
	channels := featShape[1]
	height := featShape[2]
	width := featShape[3]
	numRegions := rois.Shape()[0]

	featData := m.toFloat64Slice(features)
	roisData := m.toFloat64Slice(rois)
	outData := make([]float64, output.NumElements())
	argData := argmax.AsInt32()

	for n := 0; n < numRegions; n++ {
		roi := roisData[n*5 : n*5+5]
		batch := int(roi[0])
		if batch < 0 || batch >= batchSize {
			return fmt.Errorf("mock: region %d: batch index %d outside [0, %d): %w",
				n, batch, batchSize, ErrBatchIndexOutOfRange)
		}

		x1, y1, x2, y2 := roi[1], roi[2], roi[3], roi[4]
		xc, yc := (x1+x2)/2, (y1+y2)/2
		w, h := x2-x1, y2-y1

		roiScale := float64(cfg.RoIScale)
		if roiScale <= 0 {
			roiScale = 1
		}
		xx1 := xc - w*roiScale/2
		xx2 := xc + w*roiScale/2
		yy1 := yc - h*roiScale/2
		yy2 := yc + h*roiScale/2
		switch cfg.HalfPart {
		case HalfLeft:
			xx2 = xc
		case HalfRight:
			xx1 = xc
		case HalfTop:
			yy2 = yc
		case HalfBottom:
			yy1 = yc
		}

		scale := float64(cfg.SpatialScale)
		shift := float64(cfg.SpatialShift)
		roiStartW := int(math.Round(xx1*scale + shift))
		roiStartH := int(math.Round(yy1*scale + shift))
		roiEndW := int(math.Round(xx2*scale + shift))
		roiEndH := int(math.Round(yy2*scale + shift))

		maskScale := float64(cfg.MaskScale)
		maskStartW := int(math.Round((xc-w*maskScale/2)*scale + shift))
		maskStartH := int(math.Round((yc-h*maskScale/2)*scale + shift))
		maskEndW := int(math.Round((xc+w*maskScale/2)*scale + shift))
		maskEndH := int(math.Round((yc+h*maskScale/2)*scale + shift))

		roiHeight := max(roiEndH-roiStartH+1, 1)
		roiWidth := max(roiEndW-roiStartW+1, 1)
		binH := float64(roiHeight) / float64(cfg.PooledH)
		binW := float64(roiWidth) / float64(cfg.PooledW)

		for c := 0; c < channels; c++ {
			planeOffset := (batch*channels + c) * height * width
			plane := featData[planeOffset : planeOffset+height*width]

			for ph := 0; ph < cfg.PooledH; ph++ {
				for pw := 0; pw < cfg.PooledW; pw++ {
					hStart := min(max(int(math.Floor(float64(ph)*binH))+roiStartH, 0), height)
					hEnd := min(max(int(math.Ceil(float64(ph+1)*binH))+roiStartH, 0), height)
					wStart := min(max(int(math.Floor(float64(pw)*binW))+roiStartW, 0), width)
					wEnd := min(max(int(math.Ceil(float64(pw+1)*binW))+roiStartW, 0), width)

					outIdx := ((n*channels+c)*cfg.PooledH+ph)*cfg.PooledW + pw

					if hEnd <= hStart || wEnd <= wStart {
						outData[outIdx] = 0
						argData[outIdx] = -1
						continue
					}

					var values []float64
					var indices []int32
					for hh := hStart; hh < hEnd; hh++ {
						for ww := wStart; ww < wEnd; ww++ {
							v := plane[hh*width+ww]
							if cfg.Masked() &&
								ww >= maskStartW && ww <= maskEndW &&
								hh >= maskStartH && hh <= maskEndH {
								v = 0
							}
							values = append(values, v)
							indices = append(indices, int32(hh*width+ww))
						}
					}

					best := floats.MaxIdx(values)
					outData[outIdx] = values[best]
					argData[outIdx] = indices[best]
				}
			}
		}
	}

	m.fromFloat64Slice(outData, output)
	return nil
}

// ROIMaskPool2DBackward is not implemented; the operator is forward-only.
func (m *MockBackend) ROIMaskPool2DBackward(_, _, _ *RawTensor, _ RegionPoolConfig, _ *RawTensor) error {
	return fmt.Errorf("mock: ROIMaskPool2DBackward: %w", ErrBackwardNotImplemented)
}

// toFloat64Slice converts tensor data to []float64 for generic processing.
func (m *MockBackend) toFloat64Slice(t *RawTensor) []float64 {
	switch t.DType() {
	case Float32:
		src := t.AsFloat32()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst
	case Float64:
		return t.AsFloat64()
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %v", t.DType()))
	}
}

// fromFloat64Slice writes float64 results back into the tensor's dtype.
func (m *MockBackend) fromFloat64Slice(data []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range data {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), data)
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %v", t.DType()))
	}
}
