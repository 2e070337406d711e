// Package shards implements SHARDS spatial sampling: a subset of trace keys
// is admitted for simulation based on a hash of the key falling below a
// threshold, letting MRC construction run over a fraction of a trace while
// still producing statistically corrected curves.
package shards

import (
	"github.com/spaolacci/murmur3"

	"github.com/IvanBrykalov/kosmo/access"
)

// Modulus is the hash-space size sample thresholds are drawn from: 2^24, the
// same value the reference implementation samples against.
const Modulus uint64 = 16777216

// Shards is implemented by both sampling strategies (fixed-rate and
// fixed-size) and is the interface every consumer (histogram, Kosmo,
// MiniSim) depends on.
type Shards interface {
	// GlobalT is the current sampling threshold in [0, Modulus).
	GlobalT() uint64

	// Rate is GlobalT/Modulus, the fraction of key-space currently sampled.
	Rate() float64

	// SampledCount and TotalCount track how many accesses were admitted
	// versus observed overall, since the sampler was created or last reset.
	SampledCount() uint64
	TotalCount() uint64

	// ExpectedCount estimates the true access count implied by the
	// observed rate; Correction is the signed gap between that estimate
	// and SampledCount, applied to reuse-distance histogram totals.
	ExpectedCount() uint64
	Correction() int64

	// Sample records one access and reports whether it was admitted.
	Sample(a access.Access) bool

	// SampleKey reports the admitted hash value for key, or ok=false if
	// the key falls outside the current threshold.
	SampleKey(key access.Key) (t uint64, ok bool)

	// Scale and Unscale convert a size between trace space and sampled
	// space (size*rate and size/rate respectively).
	Scale(size uint64) uint64
	Unscale(size uint64) uint64

	// Removal reports a key the sampler has decided to evict from its
	// bookkeeping (fixed-size only; fixed-rate never removes anything),
	// shrinking GlobalT in the process. Callers must purge that key's
	// state wherever it is cached.
	Removal() (key access.Key, ok bool)
}

func hash(key access.Key) uint64 {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(key >> (8 * i))
	}
	lo, _ := murmur3.Sum128(buf[:])
	return lo % Modulus
}

func sampleKey(globalT uint64, key access.Key) (uint64, bool) {
	t := hash(key)
	if t < globalT {
		return t, true
	}
	return 0, false
}

func rate(globalT uint64) float64 {
	return float64(globalT) / float64(Modulus)
}

func scale(globalT uint64, size uint64) uint64 {
	return uint64(float64(size) * rate(globalT))
}

func unscale(globalT uint64, size uint64) uint64 {
	r := rate(globalT)
	if r == 0 {
		return 0
	}
	return uint64(float64(size) / r)
}
