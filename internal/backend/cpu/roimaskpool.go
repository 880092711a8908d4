package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/roipool/internal/parallel"
	"github.com/born-ml/roipool/internal/tensor"
)

// ROIMaskPool2D performs max pooling over a set of regions of interest,
// optionally suppressing a masked sub-rectangle of each region.
//
// Feature shape: [batch, channels, height, width]
// Region shape:  [numRegions, 5], rows (batch_index, x1, y1, x2, y2)
// Output shape:  [numRegions, channels, pooledH, pooledW] (pre-sized)
// Argmax shape:  same as output, Int32 (pre-sized)
//
// Algorithm, per region:
//  1. Rescale the region around its center by RoIScale and keep the
//     configured half (left/right/top/bottom, or the whole region).
//  2. Map to feature-map coordinates with round(x*scale + shift),
//     rounding half away from zero.
//  3. Derive the mask rectangle from the unscaled center/extent using
//     MaskScale, mapped the same way. Mask bounds are inclusive.
//  4. Partition the region span (at least 1x1, even for degenerate
//     regions) into pooledH x pooledW bins with floor/ceil edges,
//     clamped to the feature map.
//  5. Max-reduce each bin per channel, forcing masked values to zero at
//     comparison time and recording the flat h*width+w argmax index.
//     Empty bins produce 0 with argmax -1.
//
// The output buffers are fully overwritten. A region batch index
// outside [0, batch) fails the invocation with
// tensor.ErrBatchIndexOutOfRange and leaves the buffers undefined.
func (cpu *CPUBackend) ROIMaskPool2D(features, rois *tensor.RawTensor, cfg tensor.RegionPoolConfig, output, argmax *tensor.RawTensor) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	featShape := features.Shape()
	if len(featShape) != 4 {
		panic(fmt.Sprintf("roimaskpool2d: expected 4D features [N,C,H,W], got %dD", len(featShape)))
	}
	roisShape := rois.Shape()
	if len(roisShape) != 2 || roisShape[1] != 5 {
		panic(fmt.Sprintf("roimaskpool2d: expected regions [numRegions, 5], got %v", roisShape))
	}
	if rois.DType() != features.DType() {
		panic(fmt.Sprintf("roimaskpool2d: features are %s but regions are %s",
			features.DType(), rois.DType()))
	}

	batchSize := featShape[0]
	channels := featShape[1]
	height := featShape[2]
	width := featShape[3]
	numRegions := roisShape[0]

	wantShape := tensor.Shape{numRegions, channels, cfg.PooledH, cfg.PooledW}
	if !output.Shape().Equal(wantShape) {
		panic(fmt.Sprintf("roimaskpool2d: output shape %v, want %v", output.Shape(), wantShape))
	}
	if !argmax.Shape().Equal(wantShape) || argmax.DType() != tensor.Int32 {
		panic(fmt.Sprintf("roimaskpool2d: argmax must be int32 of shape %v, got %s %v",
			wantShape, argmax.DType(), argmax.Shape()))
	}

	// Initialize to the lowest representable value and -1 so empty bins
	// resolve to 0/-1 and any scanned value overwrites the sentinel.
	argData := argmax.AsInt32()
	for i := range argData {
		argData[i] = -1
	}

	switch features.DType() {
	case tensor.Float32:
		featData := features.AsFloat32()
		roisData := rois.AsFloat32()
		outData := output.AsFloat32()
		for i := range outData {
			outData[i] = -math.MaxFloat32
		}
		return parallel.ForErr(numRegions, func(n int) error {
			return roiMaskPoolRegionFloat32(outData, argData, featData, roisData, cfg,
				n, batchSize, channels, height, width)
		}, cpu.par)
	case tensor.Float64:
		featData := features.AsFloat64()
		roisData := rois.AsFloat64()
		outData := output.AsFloat64()
		for i := range outData {
			outData[i] = -math.MaxFloat64
		}
		return parallel.ForErr(numRegions, func(n int) error {
			return roiMaskPoolRegionFloat64(outData, argData, featData, roisData, cfg,
				n, batchSize, channels, height, width)
		}, cpu.par)
	default:
		panic(fmt.Sprintf("roimaskpool2d: unsupported dtype %v", features.DType()))
	}
}

// roundHalfAway rounds to the nearest integer, halves away from zero.
// Matches the C round() used by the reference coordinate mapping.
func roundHalfAway(v float64) int {
	return int(math.Round(v))
}

// roiMaskPoolRegionFloat32 pools one region across all channels for float32 tensors.
//
//nolint:dupl // Type-specific implementations are intentionally similar for performance
func roiMaskPoolRegionFloat32(outData []float32, argData []int32, featData, roisData []float32,
	cfg tensor.RegionPoolConfig, n, batchSize, channels, height, width int) error {
	roi := roisData[n*5 : n*5+5]
	batch := int(roi[0])
	if batch < 0 || batch >= batchSize {
		return fmt.Errorf("roimaskpool2d: region %d: batch index %d outside [0, %d): %w",
			n, batch, batchSize, tensor.ErrBatchIndexOutOfRange)
	}

	x1, y1, x2, y2 := roi[1], roi[2], roi[3], roi[4]
	xc := (x1 + x2) / 2
	yc := (y1 + y2) / 2
	w := x2 - x1
	h := y2 - y1

	// Rescale the region around its center, then keep the configured half.
	roiScale := cfg.RoIScale
	if roiScale <= 0 {
		roiScale = 1
	}
	xx1 := xc - w*roiScale/2
	xx2 := xc + w*roiScale/2
	yy1 := yc - h*roiScale/2
	yy2 := yc + h*roiScale/2
	switch cfg.HalfPart {
	case tensor.HalfLeft:
		xx2 = xc
	case tensor.HalfRight:
		xx1 = xc
	case tensor.HalfTop:
		yy2 = yc
	case tensor.HalfBottom:
		yy1 = yc
	}

	roiStartW := roundHalfAway(float64(xx1*cfg.SpatialScale + cfg.SpatialShift))
	roiStartH := roundHalfAway(float64(yy1*cfg.SpatialScale + cfg.SpatialShift))
	roiEndW := roundHalfAway(float64(xx2*cfg.SpatialScale + cfg.SpatialShift))
	roiEndH := roundHalfAway(float64(yy2*cfg.SpatialScale + cfg.SpatialShift))

	// The mask rectangle comes from the unscaled center/extent and is
	// inclusive on both ends.
	isMask := cfg.Masked()
	maskStartW := roundHalfAway(float64((xc-w*cfg.MaskScale/2)*cfg.SpatialScale + cfg.SpatialShift))
	maskStartH := roundHalfAway(float64((yc-h*cfg.MaskScale/2)*cfg.SpatialScale + cfg.SpatialShift))
	maskEndW := roundHalfAway(float64((xc+w*cfg.MaskScale/2)*cfg.SpatialScale + cfg.SpatialShift))
	maskEndH := roundHalfAway(float64((yc+h*cfg.MaskScale/2)*cfg.SpatialScale + cfg.SpatialShift))

	// Degenerate regions still span at least one row and column.
	roiHeight := max(roiEndH-roiStartH+1, 1)
	roiWidth := max(roiEndW-roiStartW+1, 1)
	binH := float32(roiHeight) / float32(cfg.PooledH)
	binW := float32(roiWidth) / float32(cfg.PooledW)

	planeSize := height * width
	poolSize := cfg.PooledH * cfg.PooledW

	for c := 0; c < channels; c++ {
		plane := featData[(batch*channels+c)*planeSize : (batch*channels+c+1)*planeSize]
		outBase := (n*channels + c) * poolSize
		outPlane := outData[outBase : outBase+poolSize]
		argPlane := argData[outBase : outBase+poolSize]

		for ph := 0; ph < cfg.PooledH; ph++ {
			hStart := int(math.Floor(float64(float32(ph) * binH)))
			hEnd := int(math.Ceil(float64(float32(ph+1) * binH)))
			hStart = min(max(hStart+roiStartH, 0), height)
			hEnd = min(max(hEnd+roiStartH, 0), height)

			for pw := 0; pw < cfg.PooledW; pw++ {
				wStart := int(math.Floor(float64(float32(pw) * binW)))
				wEnd := int(math.Ceil(float64(float32(pw+1) * binW)))
				wStart = min(max(wStart+roiStartW, 0), width)
				wEnd = min(max(wEnd+roiStartW, 0), width)

				poolIdx := ph*cfg.PooledW + pw

				if hEnd <= hStart || wEnd <= wStart {
					outPlane[poolIdx] = 0
					argPlane[poolIdx] = -1
					continue
				}

				for hh := hStart; hh < hEnd; hh++ {
					row := plane[hh*width : hh*width+width]
					for ww := wStart; ww < wEnd; ww++ {
						value := row[ww]
						// Masked values are suppressed at comparison time.
						if isMask &&
							ww >= maskStartW && ww <= maskEndW &&
							hh >= maskStartH && hh <= maskEndH {
							value = 0
						}
						if value > outPlane[poolIdx] {
							outPlane[poolIdx] = value
							argPlane[poolIdx] = int32(hh*width + ww)
						}
					}
				}
			}
		}
	}
	return nil
}

// roiMaskPoolRegionFloat64 pools one region across all channels for float64 tensors.
//
//nolint:dupl // Type-specific implementations are intentionally similar for performance
func roiMaskPoolRegionFloat64(outData []float64, argData []int32, featData, roisData []float64,
	cfg tensor.RegionPoolConfig, n, batchSize, channels, height, width int) error {
	roi := roisData[n*5 : n*5+5]
	batch := int(roi[0])
	if batch < 0 || batch >= batchSize {
		return fmt.Errorf("roimaskpool2d: region %d: batch index %d outside [0, %d): %w",
			n, batch, batchSize, tensor.ErrBatchIndexOutOfRange)
	}

	x1, y1, x2, y2 := roi[1], roi[2], roi[3], roi[4]
	xc := (x1 + x2) / 2
	yc := (y1 + y2) / 2
	w := x2 - x1
	h := y2 - y1

	roiScale := float64(cfg.RoIScale)
	if roiScale <= 0 {
		roiScale = 1
	}
	xx1 := xc - w*roiScale/2
	xx2 := xc + w*roiScale/2
	yy1 := yc - h*roiScale/2
	yy2 := yc + h*roiScale/2
	switch cfg.HalfPart {
	case tensor.HalfLeft:
		xx2 = xc
	case tensor.HalfRight:
		xx1 = xc
	case tensor.HalfTop:
		yy2 = yc
	case tensor.HalfBottom:
		yy1 = yc
	}

	scale := float64(cfg.SpatialScale)
	shift := float64(cfg.SpatialShift)
	roiStartW := roundHalfAway(xx1*scale + shift)
	roiStartH := roundHalfAway(yy1*scale + shift)
	roiEndW := roundHalfAway(xx2*scale + shift)
	roiEndH := roundHalfAway(yy2*scale + shift)

	isMask := cfg.Masked()
	maskScale := float64(cfg.MaskScale)
	maskStartW := roundHalfAway((xc-w*maskScale/2)*scale + shift)
	maskStartH := roundHalfAway((yc-h*maskScale/2)*scale + shift)
	maskEndW := roundHalfAway((xc+w*maskScale/2)*scale + shift)
	maskEndH := roundHalfAway((yc+h*maskScale/2)*scale + shift)

	roiHeight := max(roiEndH-roiStartH+1, 1)
	roiWidth := max(roiEndW-roiStartW+1, 1)
	binH := float64(roiHeight) / float64(cfg.PooledH)
	binW := float64(roiWidth) / float64(cfg.PooledW)

	planeSize := height * width
	poolSize := cfg.PooledH * cfg.PooledW

	for c := 0; c < channels; c++ {
		plane := featData[(batch*channels+c)*planeSize : (batch*channels+c+1)*planeSize]
		outBase := (n*channels + c) * poolSize
		outPlane := outData[outBase : outBase+poolSize]
		argPlane := argData[outBase : outBase+poolSize]

		for ph := 0; ph < cfg.PooledH; ph++ {
			hStart := int(math.Floor(float64(ph) * binH))
			hEnd := int(math.Ceil(float64(ph+1) * binH))
			hStart = min(max(hStart+roiStartH, 0), height)
			hEnd = min(max(hEnd+roiStartH, 0), height)

			for pw := 0; pw < cfg.PooledW; pw++ {
				wStart := int(math.Floor(float64(pw) * binW))
				wEnd := int(math.Ceil(float64(pw+1) * binW))
				wStart = min(max(wStart+roiStartW, 0), width)
				wEnd = min(max(wEnd+roiStartW, 0), width)

				poolIdx := ph*cfg.PooledW + pw

				if hEnd <= hStart || wEnd <= wStart {
					outPlane[poolIdx] = 0
					argPlane[poolIdx] = -1
					continue
				}

				for hh := hStart; hh < hEnd; hh++ {
					row := plane[hh*width : hh*width+width]
					for ww := wStart; ww < wEnd; ww++ {
						value := row[ww]
						if isMask &&
							ww >= maskStartW && ww <= maskEndW &&
							hh >= maskStartH && hh <= maskEndH {
							value = 0
						}
						if value > outPlane[poolIdx] {
							outPlane[poolIdx] = value
							argPlane[poolIdx] = int32(hh*width + ww)
						}
					}
				}
			}
		}
	}
	return nil
}
