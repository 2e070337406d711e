package kosmo

import (
	"container/heap"

	"github.com/IvanBrykalov/kosmo/access"
)

// twoQReconstructedStack rebuilds 2Q residency at one cache size with two
// independent heaps, mirroring twoQEvictionMap's own A1/Am split: A1
// evicts by insertion order (oldest first), Am evicts by recency (least
// recently used first), and A1 is drained ahead of Am whenever it alone
// exceeds its quota.
type twoQReconstructedStack struct {
	maxSize uint64

	a1UsedSize, amUsedSize uint64

	kin, kout float64

	a1 twoQA1Heap
	am twoQAmHeap
}

type twoQA1Heap []*twoQLocalObject

func (h twoQA1Heap) Len() int      { return len(h) }
func (h twoQA1Heap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h twoQA1Heap) Less(i, j int) bool {
	return h[i].location.insertedTimestamp < h[j].location.insertedTimestamp
}
func (h *twoQA1Heap) Push(x any) { *h = append(*h, x.(*twoQLocalObject)) }
func (h *twoQA1Heap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type twoQAmHeap []*twoQLocalObject

func (h twoQAmHeap) Len() int      { return len(h) }
func (h twoQAmHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h twoQAmHeap) Less(i, j int) bool {
	return h[i].g.object.Timestamp < h[j].g.object.Timestamp
}
func (h *twoQAmHeap) Push(x any) { *h = append(*h, x.(*twoQLocalObject)) }
func (h *twoQAmHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func newTwoQReconstructedStack(maxSize uint64, kin, kout float64) *twoQReconstructedStack {
	return &twoQReconstructedStack{maxSize: maxSize, kin: kin, kout: kout}
}

func (s *twoQReconstructedStack) insert(lo localObject) {
	o := lo.(*twoQLocalObject)
	if !o.exists() {
		return
	}

	switch o.location.kind {
	case twoQStackA1:
		heap.Push(&s.a1, o)
		s.a1UsedSize += uint64(o.size())
	case twoQStackAm:
		heap.Push(&s.am, o)
		s.amUsedSize += uint64(o.size())
	}
}

func (s *twoQReconstructedStack) getEviction(excludeKey access.Key) (access.Key, bool) {
	ainSize := uint64(float64(s.maxSize) * s.kin)
	a1Size := uint64(float64(s.maxSize) * (s.kin + s.kout))
	usedSize := s.a1UsedSize + s.amUsedSize

	if s.a1UsedSize > a1Size || (s.a1UsedSize > ainSize && usedSize > s.maxSize) {
		return s.getA1Eviction(excludeKey)
	}

	if usedSize <= s.maxSize {
		return 0, false
	}

	return s.getAmEviction(excludeKey)
}

func (s *twoQReconstructedStack) getA1Eviction(excludeKey access.Key) (access.Key, bool) {
	if s.a1.Len() == 0 {
		return 0, false
	}
	o := heap.Pop(&s.a1).(*twoQLocalObject)
	if o.key() != excludeKey {
		s.a1UsedSize -= uint64(o.size())
	}
	return o.key(), true
}

func (s *twoQReconstructedStack) getAmEviction(excludeKey access.Key) (access.Key, bool) {
	if s.am.Len() == 0 {
		return 0, false
	}
	o := heap.Pop(&s.am).(*twoQLocalObject)
	if o.key() != excludeKey {
		s.amUsedSize -= uint64(o.size())
	}
	return o.key(), true
}
