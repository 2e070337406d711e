package shards

import (
	"container/heap"

	"github.com/IvanBrykalov/kosmo/access"
)

// FixedSize bounds the number of resident sampled entries at sMax, shrinking
// globalT whenever admitting a new key would exceed that bound. This keeps
// memory flat at the cost of a drifting sampling rate, corrected for via
// RescaleBuckets on the histogram side.
type FixedSize struct {
	globalT uint64
	sMax    uint32

	sampledCount   uint64
	totalCount     uint64
	expectedCount  float64

	entries entryHeap     // max-heap by t; membership mirrors keys
	keys    map[access.Key]uint64 // key -> t, also the dedup guard
}

// NewFixedSize constructs a sampler that never holds more than sMax sampled
// keys, starting from an initial threshold of globalT.
func NewFixedSize(globalT uint64, sMax uint32) *FixedSize {
	return &FixedSize{
		globalT: globalT,
		sMax:    sMax,
		keys:    make(map[access.Key]uint64),
	}
}

func (s *FixedSize) GlobalT() uint64      { return s.globalT }
func (s *FixedSize) Rate() float64        { return rate(s.globalT) }
func (s *FixedSize) SampledCount() uint64 { return s.sampledCount }
func (s *FixedSize) TotalCount() uint64   { return s.totalCount }

func (s *FixedSize) ExpectedCount() uint64 {
	return uint64(s.expectedCount + float64(s.totalCount)*s.Rate())
}

// Correction is always zero for fixed-size sampling: the reference
// implementation folds the correction directly into ExpectedCount via the
// running expectedCount accumulator instead of a post-hoc adjustment.
func (s *FixedSize) Correction() int64 { return 0 }

func (s *FixedSize) Sample(a access.Access) bool {
	s.totalCount++

	t, ok := s.SampleKey(a.Key)
	if !ok {
		return false
	}
	s.sampledCount++

	if _, present := s.keys[a.Key]; !present {
		heap.Push(&s.entries, entry{key: a.Key, t: t})
		s.keys[a.Key] = t
	}
	return true
}

func (s *FixedSize) SampleKey(key access.Key) (uint64, bool) {
	return sampleKey(s.globalT, key)
}

func (s *FixedSize) Scale(size uint64) uint64   { return scale(s.globalT, size) }
func (s *FixedSize) Unscale(size uint64) uint64 { return unscale(s.globalT, size) }

// Removal evicts the resident entry with the largest t once the sampler
// overflows sMax, lowering globalT to that entry's t so that key (and all
// keys never admitted above it) drop out of future sampling.
func (s *FixedSize) Removal() (access.Key, bool) {
	if s.entries.Len() <= int(s.sMax) {
		return 0, false
	}

	e := heap.Pop(&s.entries).(entry)
	s.globalT = e.t
	delete(s.keys, e.key)

	s.expectedCount += float64(s.totalCount) * s.Rate()
	s.totalCount = 0

	return e.key, true
}

type entry struct {
	key access.Key
	t   uint64
}

// entryHeap is a max-heap by t: Pop always returns the resident entry with
// the largest sampled value, matching a BTreeSet ordered by (other.t, self.t)
// whose first element (pop_first) is the maximum-t entry.
type entryHeap []entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].t > h[j].t }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(entry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
