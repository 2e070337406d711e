package kosmo

import (
	"container/heap"

	"github.com/IvanBrykalov/kosmo/access"
)

// lruReconstructedStack is inferred by analogy: the reference
// implementation's lru_reconstructed_stack.rs is an empty file. It follows
// the same single-heap shape as its siblings, ordered by the object's own
// last-access timestamp so the least recently used resident object evicts
// first.
type lruReconstructedStack struct {
	maxSize, usedSize uint64
	h                 lruObjectHeap
}

type lruObjectHeap []*lruLocalObject

func (h lruObjectHeap) Len() int      { return len(h) }
func (h lruObjectHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h lruObjectHeap) Less(i, j int) bool {
	return h[i].g.object.Timestamp < h[j].g.object.Timestamp
}

func (h *lruObjectHeap) Push(x any) { *h = append(*h, x.(*lruLocalObject)) }

func (h *lruObjectHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func newLruReconstructedStack(maxSize uint64) *lruReconstructedStack {
	return &lruReconstructedStack{maxSize: maxSize}
}

func (s *lruReconstructedStack) insert(lo localObject) {
	o := lo.(*lruLocalObject)
	if !o.exists() {
		return
	}
	heap.Push(&s.h, o)
	s.usedSize += uint64(o.size())
}

func (s *lruReconstructedStack) getEviction(excludeKey access.Key) (access.Key, bool) {
	if s.usedSize <= s.maxSize {
		return 0, false
	}

	o := heap.Pop(&s.h).(*lruLocalObject)
	if o.key() != excludeKey {
		s.usedSize -= uint64(o.size())
	}
	return o.key(), true
}
