// Package parallel provides parallel execution utilities for the roipool library.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1, // Region workloads are coarse; shard even small batches.
	}
}

// ForErr executes f(i) for i in [0, n) with optional parallelism,
// propagating the first error encountered. Falls back to sequential
// execution if parallelism is disabled or n is too small.
//
// Iterations must write to disjoint locations; ForErr provides no
// synchronization beyond the final join.
func ForErr(n int, f func(i int) error, cfg Config) error {
	if !cfg.Enabled || n <= cfg.MinChunkSize {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)

	for start := 0; start < n; start += chunkSize {
		s, e := start, min(start+chunkSize, n)
		g.Go(func() error {
			for i := s; i < e; i++ {
				if err := f(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
