package mrc

import (
	"io"
	"log"

	"github.com/IvanBrykalov/kosmo/cache"
	"github.com/IvanBrykalov/kosmo/curve"
	"github.com/IvanBrykalov/kosmo/trace"
)

// accurateGranularity sets the step between the cache sizes accurate
// simulates: wss/accurateGranularity rounded down, or 1 when wss is at most
// accurateGranularity. That gives 100 sizes when wss is a multiple of 100 and
// up to 199 otherwise.
const accurateGranularity = 100

// RunAccurate brute-force simulates policy at every multiple of the step
// size (see accurateGranularity) up to wss, reading the trace once per size (never in parallel, to keep peak
// memory bounded, unlike Kosmo and MiniSim) and writing a best-effort
// partial curve to outputPath after every size so a crash mid-run still
// leaves a usable result.
func RunAccurate(path string, wss uint64, policy cache.Policy, outputPath string, logger *log.Logger) (*curve.Curve, error) {
	stepSize := uint64(1)
	if wss > accurateGranularity {
		stepSize = wss / accurateGranularity
	}

	var cacheSizes []uint64
	for size := stepSize; size <= wss; size += stepSize {
		cacheSizes = append(cacheSizes, size)
	}

	c := curve.New()

	for _, cacheSize := range cacheSizes {
		logger.Printf("accurate: simulating cache size %d", cacheSize)

		missRatio, size, err := simulateOneSize(path, policy, cacheSize, logger)
		if err != nil {
			return nil, err
		}

		c.Add(size, missRatio)

		if err := c.ToFile(outputPath); err != nil {
			logger.Printf("accurate: could not save curve to %q: %v", outputPath, err)
		}
	}

	return c, nil
}

func simulateOneSize(path string, policy cache.Policy, cacheSize uint64, logger *log.Logger) (missRatio float64, size uint64, err error) {
	c := policy.NewCache(cacheSize)

	r, err := trace.Open(path)
	if err != nil {
		return 0, 0, newError(IoError, "open trace", err)
	}
	defer r.Close()

	progress := NewProgress(logger, r.Size())

	var count uint64
	for {
		a, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, newError(InvalidTraceRecord, "read access", err)
		}

		if a.IsValidSelfPopulating() {
			// The reference simulator replaces the on-disk timestamp with a
			// dense monotonic counter so relative order, not original
			// timestamp spacing, drives policy comparisons. This module's
			// cache package tracks its own intrinsic clock for LRFU (see
			// cache/lrfu.go), so the reassignment is inert here; it is kept
			// for fidelity with the reference trace-processing behavior.
			count++
			a.Timestamp = count

			c.HandleSelfPopulating(a)
		}

		progress.Tick(r.BytesRead())
	}

	return c.MissRatio(), c.Size(), nil
}
