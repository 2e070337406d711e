// Package mrc orchestrates the wss, accurate, and mrc command-line tools:
// trace I/O, algorithm construction (Kosmo or MiniSim) from parsed flags,
// SHARDS sampler construction, and the two run-type reporting modes
// (peak memory, or throughput).
package mrc

import (
	"fmt"
	"io"
	"log"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/algorithm"
	"github.com/IvanBrykalov/kosmo/cache"
	"github.com/IvanBrykalov/kosmo/curve"
	"github.com/IvanBrykalov/kosmo/kosmo"
	"github.com/IvanBrykalov/kosmo/minisim"
	"github.com/IvanBrykalov/kosmo/shards"
	"github.com/IvanBrykalov/kosmo/trace"
)

// batchSize is the throughput run-type's batching unit: the algorithm is
// timed in chunks this large rather than access-by-access.
const batchSize = 10_000_000

// RunType selects what mrc reports alongside the produced curve.
type RunType uint8

const (
	// RunMemory clears and then tracks peak heap usage over the run.
	RunMemory RunType = iota
	// RunThroughput buffers accesses into batches and reports
	// accesses/ms, excluding the time spent buffering and reading.
	RunThroughput
)

// ParseRunType parses a --run-type flag value.
func ParseRunType(value string) (RunType, error) {
	switch value {
	case "memory":
		return RunMemory, nil
	case "throughput":
		return RunThroughput, nil
	default:
		return 0, newError(InvalidPolicyConfig, fmt.Sprintf("run-type %q (want memory or throughput)", value), nil)
	}
}

// Config is the fully parsed and validated configuration for one mrc run.
type Config struct {
	Path string
	WSS  uint64

	// Exactly one of KosmoPolicy or MinisimPolicy must be set.
	KosmoPolicy   *kosmo.Policy
	MinisimPolicy *cache.Policy

	// ShardsS requires ShardsT; ShardsT alone selects fixed-rate SHARDS.
	ShardsT *uint64
	ShardsS *uint32

	Output       string
	AccuratePath string
	RunType      RunType

	// Metrics is optional; when nil, Run skips all instrumentation.
	Metrics Metrics
}

// Stats reports the run-type-specific measurement taken alongside the
// curve, plus the MAE against an accurate curve when one was supplied.
type Stats struct {
	MemoryHWMBytes  uint64
	ThroughputPerMs uint64
	MAE             float64
	HasMAE          bool
}

// BuildAlgorithm validates cfg's algorithm/SHARDS selection and constructs
// the driver it names.
func BuildAlgorithm(cfg Config) (algorithm.Algorithm, error) {
	if cfg.KosmoPolicy != nil && cfg.MinisimPolicy != nil {
		return nil, newError(ConfigConflict, "you may not configure both --kosmo-policy and --minisim-policy", nil)
	}
	if cfg.KosmoPolicy == nil && cfg.MinisimPolicy == nil {
		return nil, newError(ConfigConflict, "you must configure one of --kosmo-policy or --minisim-policy", nil)
	}

	sampler, err := buildShards(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.KosmoPolicy != nil {
		return kosmo.New([]kosmo.Policy{*cfg.KosmoPolicy}, sampler), nil
	}
	return minisim.New(*cfg.MinisimPolicy, cfg.WSS, sampler), nil
}

func buildShards(cfg Config) (shards.Shards, error) {
	switch {
	case cfg.ShardsT != nil && cfg.ShardsS != nil:
		return shards.NewFixedSize(*cfg.ShardsT, *cfg.ShardsS), nil
	case cfg.ShardsT != nil:
		return shards.NewFixedRate(*cfg.ShardsT), nil
	case cfg.ShardsS != nil:
		return nil, newError(ConfigConflict, "you must specify --shards-t when using --shards-s", nil)
	default:
		return nil, nil
	}
}

// Run builds the configured algorithm, streams the trace through it once,
// and returns the resulting miss-ratio curve alongside run-type stats. The
// curve is written to cfg.Output; if cfg.AccuratePath is set, Stats.MAE
// reports the curve's mean absolute error against the curve at that path.
func Run(cfg Config, logger *log.Logger) (*curve.Curve, Stats, error) {
	runStart := time.Now()

	algo, err := BuildAlgorithm(cfg)
	if err != nil {
		return nil, Stats{}, err
	}

	r, err := trace.Open(cfg.Path)
	if err != nil {
		return nil, Stats{}, newError(IoError, "open trace", err)
	}
	defer r.Close()

	var stats Stats
	switch cfg.RunType {
	case RunMemory:
		stats.MemoryHWMBytes, err = runMemory(algo, r, logger, cfg.Metrics)
	case RunThroughput:
		stats.ThroughputPerMs, err = runThroughput(algo, r, logger, cfg.Metrics)
	}
	if err != nil {
		return nil, Stats{}, err
	}

	c := algo.Curve()

	if cfg.Metrics != nil {
		cfg.Metrics.SetCurvePoints(c.Len())
		cfg.Metrics.ObserveRunDuration(time.Since(runStart))
	}

	if err := c.ToFile(cfg.Output); err != nil {
		return nil, Stats{}, newError(IoError, "write curve", err)
	}

	if cfg.AccuratePath != "" {
		accurate, err := curve.FromFile(cfg.AccuratePath)
		if err != nil {
			return nil, Stats{}, newError(IoError, "read accurate curve", err)
		}
		stats.MAE = accurate.MAE(c)
		stats.HasMAE = true
	}

	return c, stats, nil
}

func runMemory(algo algorithm.Algorithm, r *trace.Reader, logger *log.Logger, metrics Metrics) (uint64, error) {
	debug.FreeOSMemory()

	progress := NewProgress(logger, r.Size())

	var m runtime.MemStats
	var peak uint64
	var processed uint64

	for {
		a, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, newError(InvalidTraceRecord, "read access", err)
		}

		algo.Handle(a)
		processed++
		if metrics != nil {
			metrics.IncAccesses()
		}

		if processed%(1<<16) == 0 {
			runtime.ReadMemStats(&m)
			if m.HeapAlloc > peak {
				peak = m.HeapAlloc
			}
		}

		progress.Tick(r.BytesRead())
	}

	runtime.ReadMemStats(&m)
	if m.HeapAlloc > peak {
		peak = m.HeapAlloc
	}

	progress.Done()
	return peak, nil
}

func runThroughput(algo algorithm.Algorithm, r *trace.Reader, logger *log.Logger, metrics Metrics) (uint64, error) {
	progress := NewProgress(logger, r.Size())

	batch := make([]access.Access, 0, batchSize)
	var totalTimeMs, totalAccesses uint64

	flush := func() {
		totalTimeMs += uint64(runBatch(algo, batch))
		totalAccesses += uint64(len(batch))
		if metrics != nil {
			for range batch {
				metrics.IncAccesses()
			}
		}
		batch = batch[:0]
	}

	for {
		a, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, newError(InvalidTraceRecord, "read access", err)
		}

		batch = append(batch, a)
		if len(batch) == batchSize {
			flush()
		}

		progress.Tick(r.BytesRead())
	}
	if len(batch) > 0 {
		flush()
	}

	progress.Done()

	if totalTimeMs == 0 {
		return 0, nil
	}
	return totalAccesses / totalTimeMs, nil
}

func runBatch(algo algorithm.Algorithm, batch []access.Access) int64 {
	start := time.Now()
	for _, a := range batch {
		algo.Handle(a)
	}
	return time.Since(start).Milliseconds()
}
