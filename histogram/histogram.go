// Package histogram maintains a reuse-distance frequency histogram, rescaled
// as the SHARDS sampling rate drifts, with reuse distances rounded up into
// fixed-width buckets (multiples of BucketSize).
package histogram

import (
	"sort"
)

// BucketSize is the width of a single reuse-distance bucket. Reuse distances
// are rounded up to the next multiple of BucketSize before being counted.
const BucketSize uint64 = 64 * 1024

// Shards is the subset of shards.Shards the histogram needs: the current
// global sampling threshold (for rescaling buckets recorded under an older
// threshold), unscaling of a sampled reuse distance back to trace space, and
// the SHARDS statistical correction term.
type Shards interface {
	GlobalT() uint64
	Unscale(size uint64) uint64
	Correction() int64
}

// bucket counts occurrences of one rounded reuse distance, tracking the
// SHARDS global_t it was last observed under so it can be rescaled forward
// as global_t shrinks (fixed-size SHARDS) over the life of the histogram.
type bucket struct {
	size          uint64
	count         float64
	shardsGlobalT uint64
}

func newBucket(size uint64, shardsGlobalT uint64) bucket {
	return bucket{size: size, count: 1, shardsGlobalT: shardsGlobalT}
}

func (b *bucket) rescale(globalT uint64) {
	if b.shardsGlobalT == 0 || b.shardsGlobalT == globalT {
		return
	}
	b.count *= float64(globalT) / float64(b.shardsGlobalT)
	b.shardsGlobalT = globalT
}

// Histogram is a sparse, sorted-by-size set of reuse-distance buckets plus a
// dedicated "infinity" bucket for first-time (cold) accesses.
type Histogram struct {
	infinity bucket
	buckets  []bucket // sorted ascending by size
}

// New creates an empty histogram. shards may be nil when no spatial sampling
// is in effect (the infinity bucket is then never rescaled).
func New(shards Shards) *Histogram {
	var globalT uint64
	if shards != nil {
		globalT = shards.GlobalT()
	}
	return &Histogram{infinity: newBucket(0, globalT)}
}

// IsEmpty reports whether any finite reuse distance has ever been recorded.
func (h *Histogram) IsEmpty() bool { return len(h.buckets) == 0 }

// Clear resets every bucket's count to 1 (the original implementation's
// convention for "unobserved, about to be re-seeded") without dropping the
// bucket boundaries themselves.
func (h *Histogram) Clear() {
	h.infinity.count = 1
	for i := range h.buckets {
		h.buckets[i].count = 1
	}
}

// Increment records one occurrence of reuseDistance (nil meaning a cold,
// first-time access, counted in the infinity bucket). When shards is
// non-nil, reuseDistance is first unscaled back to trace space and the
// target bucket is rescaled to the sampler's current global_t before the
// increment is applied.
func (h *Histogram) Increment(shards Shards, reuseDistance *uint64) {
	if reuseDistance == nil {
		if shards != nil {
			h.infinity.rescale(shards.GlobalT())
		}
		h.infinity.count++
		return
	}

	rd := *reuseDistance
	if shards != nil {
		rd = shards.Unscale(rd)
	}
	rd = roundedReuseDistance(rd)

	i := sort.Search(len(h.buckets), func(i int) bool { return h.buckets[i].size >= rd })
	if i < len(h.buckets) && h.buckets[i].size == rd {
		if shards != nil {
			h.buckets[i].rescale(shards.GlobalT())
		}
		h.buckets[i].count++
		return
	}

	var globalT uint64
	if shards != nil {
		globalT = shards.GlobalT()
	}
	h.buckets = append(h.buckets, bucket{})
	copy(h.buckets[i+1:], h.buckets[i:])
	h.buckets[i] = newBucket(rd, globalT)
}

// RescaleBuckets brings every bucket's count up to date with the sampler's
// current global_t, so that histogram mass recorded under a looser threshold
// is corrected for the tighter one. kosmo.Driver calls it when it extracts a
// curve.
func (h *Histogram) RescaleBuckets(shards Shards) {
	globalT := shards.GlobalT()
	for i := range h.buckets {
		h.buckets[i].rescale(globalT)
	}
}

// Total returns the sum of every bucket's count, including infinity.
func (h *Histogram) Total() float64 {
	total := h.infinity.count
	for _, b := range h.buckets {
		total += b.count
	}
	return total
}

// CorrectedTotal is Total adjusted by the sampler's statistical correction
// term, compensating for the expected-vs-sampled access count divergence.
func (h *Histogram) CorrectedTotal(shards Shards) float64 {
	return h.Total() + float64(shards.Correction())
}

// Resize discards every bucket whose size exceeds size, leaving the
// infinity bucket untouched.
func (h *Histogram) Resize(size uint64) {
	kept := h.buckets[:0]
	for _, b := range h.buckets {
		if b.size <= size {
			kept = append(kept, b)
		}
	}
	h.buckets = kept
}

// ScaledResize is Resize against a SHARDS-sampled size, unscaled back to
// trace space first.
func (h *Histogram) ScaledResize(shards Shards, size uint64) {
	h.Resize(shards.Unscale(size))
}

// Each calls fn once per finite bucket, in ascending size order.
func (h *Histogram) Each(fn func(size uint64, count float64)) {
	for _, b := range h.buckets {
		fn(b.size, b.count)
	}
}

func roundedReuseDistance(reuseDistance uint64) uint64 {
	if reuseDistance == 0 {
		return 0
	}
	quotient := reuseDistance / BucketSize
	if reuseDistance%BucketSize != 0 {
		quotient++
	}
	return quotient * BucketSize
}
