// Package main provides the roipool command line tool.
//
// It offers a small demo of the pooling layer and a benchmark that
// compares sequential and parallel execution of the CPU backend.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/roipool/backend/cpu"
	"github.com/born-ml/roipool/nn"
	"github.com/born-ml/roipool/tensor"
)

const version = "v0.1.0-dev"

var (
	bold   = color.New(color.Bold)
	blue   = color.New(color.FgBlue)
	yellow = color.New(color.FgYellow)
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("roipool %s\n", version)
	case "demo":
		runDemo(os.Args[2:])
	case "bench":
		runBench(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("roipool - Region mask pooling for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  demo       Pool a small feature map and print the result grid")
	fmt.Println("  bench      Benchmark sequential vs parallel pooling")
}

// runDemo pools a single region from a synthetic feature map and prints
// the pooled grid together with the argmax locations.
func runDemo(args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	var (
		height  = fs.Int("height", 16, "feature map height")
		width   = fs.Int("width", 16, "feature map width")
		pooledH = fs.Int("pooled-h", 4, "pooled grid height")
		pooledW = fs.Int("pooled-w", 4, "pooled grid width")
		scale   = fs.Float64("scale", 1.0, "spatial scale applied to region coordinates")
		mask    = fs.Float64("mask", 0, "mask scale (0 disables masking)")
	)
	_ = fs.Parse(args)

	backend := cpu.New()

	features := tensor.Randn[float32](tensor.Shape{1, 1, *height, *width}, backend)

	// One region covering the full map.
	rois, err := tensor.FromSlice(
		[]float32{0, 0, 0, float32(*width - 1), float32(*height - 1)},
		tensor.Shape{1, 5}, backend)
	if err != nil {
		fatal(err)
	}

	cfg := tensor.RegionPoolConfig{
		PooledH:      *pooledH,
		PooledW:      *pooledW,
		SpatialScale: float32(*scale),
		MaskScale:    float32(*mask),
	}

	pool, err := nn.NewROIMaskPool2D(cfg, backend)
	if err != nil {
		fatal(err)
	}

	output, err := pool.Forward(features, rois)
	if err != nil {
		fatal(err)
	}
	argmax := pool.Argmax()

	_, _ = bold.Printf("ROI mask pooling demo (%s)\n\n", cfg.String())

	_, _ = blue.Println("Pooled values:")
	renderGrid(output.Data(), *pooledH, *pooledW, func(v float32) string {
		return fmt.Sprintf("%.4f", v)
	})

	_, _ = blue.Println("Argmax (flat h*W+w per channel plane, -1 = empty bin):")
	renderGrid(argmax.Data(), *pooledH, *pooledW, func(v int32) string {
		return fmt.Sprintf("%d", v)
	})
}

func renderGrid[T float32 | int32](data []T, rows, cols int, format func(T) string) {
	table := tablewriter.NewWriter(os.Stdout)

	header := make([]any, cols+1)
	header[0] = ""
	for w := 0; w < cols; w++ {
		header[w+1] = fmt.Sprintf("pw=%d", w)
	}
	table.Header(header...)

	for h := 0; h < rows; h++ {
		row := make([]any, cols+1)
		row[0] = fmt.Sprintf("ph=%d", h)
		for w := 0; w < cols; w++ {
			row[w+1] = format(data[h*cols+w])
		}
		_ = table.Append(row...)
	}

	if err := table.Render(); err != nil {
		fatal(err)
	}
	fmt.Println()
}

// runBench measures forward latency of the CPU backend with and without
// parallel region sharding.
func runBench(args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	var (
		regions  = fs.Int("regions", 128, "number of regions")
		channels = fs.Int("channels", 256, "feature map channels")
		height   = fs.Int("height", 50, "feature map height")
		width    = fs.Int("width", 50, "feature map width")
		pooled   = fs.Int("pooled", 7, "pooled grid size (square)")
		iters    = fs.Int("iters", 20, "iterations per backend")
		workers  = fs.Int("workers", runtime.NumCPU(), "parallel worker count")
	)
	_ = fs.Parse(args)

	_, _ = bold.Println("Running ROI pooling benchmark...")
	_, _ = blue.Printf("  features: [1, %d, %d, %d]  regions: %d  pooled: %dx%d  workers: %d\n\n",
		*channels, *height, *width, *regions, *pooled, *pooled, *workers)

	seq := cpu.New()
	par := cpu.NewParallel(cpu.Config{
		Enabled:      true,
		NumWorkers:   *workers,
		MinChunkSize: 1,
	})

	backends := []struct {
		name    string
		backend *cpu.Backend
	}{
		{"sequential", seq},
		{fmt.Sprintf("parallel (%d workers)", *workers), par},
	}

	bar := makeProgressBar(len(backends) * *iters)

	type result struct {
		name         string
		mean, stddev float64
		regionsPerS  float64
	}
	results := make([]result, 0, len(backends))

	for _, b := range backends {
		bar.Describe(fmt.Sprintf("Testing: %s", b.name))

		features := tensor.Randn[float32](tensor.Shape{1, *channels, *height, *width}, b.backend)
		rois := makeRegions(*regions, *height, *width, b.backend)

		pool, err := nn.NewROIMaskPool2D(tensor.RegionPoolConfig{
			PooledH:      *pooled,
			PooledW:      *pooled,
			SpatialScale: 1.0,
		}, b.backend)
		if err != nil {
			fatal(err)
		}

		times := make([]float64, 0, *iters)
		for i := 0; i < *iters; i++ {
			start := time.Now()
			if _, err := pool.Forward(features, rois); err != nil {
				fatal(err)
			}
			times = append(times, time.Since(start).Seconds())
			_ = bar.Add(1)
		}

		mean := stat.Mean(times, nil)
		results = append(results, result{
			name:        b.name,
			mean:        mean,
			stddev:      stat.StdDev(times, nil),
			regionsPerS: float64(*regions) / mean,
		})
	}

	_ = bar.Finish()
	fmt.Println()

	baseline := results[0].mean
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Backend", "Mean", "StdDev", "Regions/sec", "Speedup")
	for _, r := range results {
		_ = table.Append(
			r.name,
			formatSeconds(r.mean),
			formatSeconds(r.stddev),
			fmt.Sprintf("%.0f", r.regionsPerS),
			fmt.Sprintf("%.2fx", baseline/r.mean),
		)
	}
	if err := table.Render(); err != nil {
		fatal(err)
	}
}

// makeRegions tiles regions of varying size across the feature map.
func makeRegions[B tensor.Backend](n, height, width int, backend B) *tensor.Tensor[float32, B] {
	data := make([]float32, 0, n*5)
	for i := 0; i < n; i++ {
		x1 := float32(i % (width / 2))
		y1 := float32(i % (height / 2))
		x2 := x1 + float32(width/4+i%7)
		y2 := y1 + float32(height/4+i%5)
		data = append(data, 0, x1, y1, x2, y2)
	}
	rois, err := tensor.FromSlice(data, tensor.Shape{n, 5}, backend)
	if err != nil {
		fatal(err)
	}
	return rois
}

func makeProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Benchmarking"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func formatSeconds(s float64) string {
	switch {
	case s < 1e-3:
		return fmt.Sprintf("%.1fµs", s*1e6)
	case s < 1:
		return fmt.Sprintf("%.2fms", s*1e3)
	default:
		return fmt.Sprintf("%.2fs", s)
	}
}

func fatal(err error) {
	_, _ = yellow.Fprintf(os.Stderr, "roipool: %v\n", err)
	os.Exit(1)
}
