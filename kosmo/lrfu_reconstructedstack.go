package kosmo

import (
	"container/heap"

	"github.com/IvanBrykalov/kosmo/access"
)

// lrfuReconstructedStack rebuilds LRFU residency at one cache size: the
// object with the lowest CRF evicts first, ties broken by recency.
type lrfuReconstructedStack struct {
	maxSize, usedSize uint64
	h                 lrfuObjectHeap
}

type lrfuObjectHeap []*lrfuLocalObject

func (h lrfuObjectHeap) Len() int      { return len(h) }
func (h lrfuObjectHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h lrfuObjectHeap) Less(i, j int) bool {
	if h[i].crf != h[j].crf {
		return h[i].crf < h[j].crf
	}
	return h[i].g.object.Timestamp < h[j].g.object.Timestamp
}

func (h *lrfuObjectHeap) Push(x any) { *h = append(*h, x.(*lrfuLocalObject)) }

func (h *lrfuObjectHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func newLrfuReconstructedStack(maxSize uint64) *lrfuReconstructedStack {
	return &lrfuReconstructedStack{maxSize: maxSize}
}

func (s *lrfuReconstructedStack) insert(lo localObject) {
	o := lo.(*lrfuLocalObject)
	if !o.exists() {
		return
	}
	heap.Push(&s.h, o)
	s.usedSize += uint64(o.size())
}

func (s *lrfuReconstructedStack) getEviction(excludeKey access.Key) (access.Key, bool) {
	if s.usedSize <= s.maxSize {
		return 0, false
	}

	o := heap.Pop(&s.h).(*lrfuLocalObject)
	if o.key() != excludeKey {
		s.usedSize -= uint64(o.size())
	}
	return o.key(), true
}
