package kosmo

import (
	"container/heap"

	"github.com/IvanBrykalov/kosmo/access"
)

// fifoReconstructedStack rebuilds FIFO residency at one cache size: objects
// pop in insertion order, oldest first, once the stack overflows maxSize.
type fifoReconstructedStack struct {
	maxSize, usedSize uint64
	h                 fifoObjectHeap
}

type fifoObjectHeap []*fifoLocalObject

func (h fifoObjectHeap) Len() int      { return len(h) }
func (h fifoObjectHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// Less reports that the object inserted longest ago should be evicted
// first — the root of this min-heap is always the next FIFO eviction.
func (h fifoObjectHeap) Less(i, j int) bool {
	return h[i].insertedTimestamp < h[j].insertedTimestamp
}

func (h *fifoObjectHeap) Push(x any) { *h = append(*h, x.(*fifoLocalObject)) }

func (h *fifoObjectHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func newFifoReconstructedStack(maxSize uint64) *fifoReconstructedStack {
	return &fifoReconstructedStack{maxSize: maxSize}
}

func (s *fifoReconstructedStack) insert(lo localObject) {
	o := lo.(*fifoLocalObject)
	if !o.exists() {
		return
	}
	heap.Push(&s.h, o)
	s.usedSize += uint64(o.size())
}

func (s *fifoReconstructedStack) getEviction(excludeKey access.Key) (access.Key, bool) {
	if s.usedSize <= s.maxSize {
		return 0, false
	}

	o := heap.Pop(&s.h).(*fifoLocalObject)
	if o.key() != excludeKey {
		s.usedSize -= uint64(o.size())
	}
	return o.key(), true
}
