package kosmo

import (
	"container/heap"

	"github.com/IvanBrykalov/kosmo/access"
)

// lfuReconstructedStack rebuilds LFU residency at one cache size: the
// object with the fewest accesses evicts first, ties broken by recency
// (the least recently touched of equally-infrequent objects evicts first).
type lfuReconstructedStack struct {
	maxSize, usedSize uint64
	h                 lfuObjectHeap
}

type lfuObjectHeap []*lfuLocalObject

func (h lfuObjectHeap) Len() int      { return len(h) }
func (h lfuObjectHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h lfuObjectHeap) Less(i, j int) bool {
	if h[i].count != h[j].count {
		return h[i].count < h[j].count
	}
	return h[i].g.object.Timestamp < h[j].g.object.Timestamp
}

func (h *lfuObjectHeap) Push(x any) { *h = append(*h, x.(*lfuLocalObject)) }

func (h *lfuObjectHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func newLfuReconstructedStack(maxSize uint64) *lfuReconstructedStack {
	return &lfuReconstructedStack{maxSize: maxSize}
}

func (s *lfuReconstructedStack) insert(lo localObject) {
	o := lo.(*lfuLocalObject)
	if !o.exists() {
		return
	}
	heap.Push(&s.h, o)
	s.usedSize += uint64(o.size())
}

func (s *lfuReconstructedStack) getEviction(excludeKey access.Key) (access.Key, bool) {
	if s.usedSize <= s.maxSize {
		return 0, false
	}

	o := heap.Pop(&s.h).(*lfuLocalObject)
	if o.key() != excludeKey {
		s.usedSize -= uint64(o.size())
	}
	return o.key(), true
}
