package cache

import (
	"container/heap"
	"math"

	"github.com/IvanBrykalov/kosmo/access"
)

// lrfuEngine implements LRFU: every resident object carries a combined
// recency/frequency score (CRF) that decays between accesses and jumps on
// each hit, f(x) = (1/p)^(lambda*x). Eviction always removes the lowest
// CRF, breaking ties by oldest last access. Time here is the cache's own
// intrinsic counter (incremented on every request), not the trace
// timestamp, matching the baseline this policy is grounded on.
type lrfuEngine struct {
	maxSize     uint64
	currentSize uint64

	p, lambda float64

	intrinsicTime uint64

	index map[access.Key]*lrfuItem
	heap  lrfuHeap
}

type lrfuItem struct {
	obj        Object
	lastAccess uint64
	crf        float64
	idx        int // position in heap, maintained by container/heap
}

func newLrfuEngine(size uint64, p, lambda float64) *lrfuEngine {
	return &lrfuEngine{
		maxSize: size,
		p:       p,
		lambda:  lambda,
		index:   make(map[access.Key]*lrfuItem),
	}
}

// NewLRFUCache constructs an LRFU-policy cache. p must be >= 2 and lambda
// in [0, 1]; these are not re-validated here (CLI parsing is the boundary
// that enforces them).
func NewLRFUCache(size uint64, p, lambda float64) Cache {
	return newShell(newLrfuEngine(size, p, lambda))
}

func (e *lrfuEngine) size() uint64 { return e.maxSize }

func (e *lrfuEngine) f(x uint64) float64 {
	return math.Pow(1/e.p, e.lambda*float64(x))
}

func (e *lrfuEngine) updatedCRF(now uint64, item *lrfuItem) float64 {
	return e.f(0) + e.f(now-item.lastAccess)*item.crf
}

func (e *lrfuEngine) processGet(a access.Access) bool {
	e.intrinsicTime++

	item, ok := e.index[a.Key]
	if !ok {
		return false
	}

	crf := e.updatedCRF(e.intrinsicTime, item)
	item.lastAccess = e.intrinsicTime
	item.crf = crf
	heap.Fix(&e.heap, item.idx)

	return true
}

func (e *lrfuEngine) processSet(a access.Access) {
	e.intrinsicTime++

	if uint64(a.Size) > e.maxSize || e.processHas(a.Key) {
		return
	}

	e.reduce(e.maxSize - uint64(a.Size))

	item := &lrfuItem{
		obj:        objectFromAccess(a),
		lastAccess: e.intrinsicTime,
		crf:        e.f(0),
	}
	e.index[a.Key] = item
	heap.Push(&e.heap, item)
	e.currentSize += uint64(a.Size)
}

func (e *lrfuEngine) processDel(key access.Key) {
	e.intrinsicTime++

	item, ok := e.index[key]
	if !ok {
		return
	}
	heap.Remove(&e.heap, item.idx)
	delete(e.index, key)
	e.currentSize -= uint64(item.obj.Size)
}

func (e *lrfuEngine) processHas(key access.Key) bool {
	_, ok := e.index[key]
	return ok
}

func (e *lrfuEngine) reduce(targetSize uint64) {
	for e.currentSize > targetSize {
		if e.heap.Len() == 0 {
			return
		}
		worst := heap.Pop(&e.heap).(*lrfuItem)
		delete(e.index, worst.obj.Key)
		e.currentSize -= uint64(worst.obj.Size)
	}
}

func (e *lrfuEngine) resize(size uint64) {
	e.reduce(size)
	e.maxSize = size
}

// lrfuHeap is a min-heap ordered by (crf asc, lastAccess asc): Pop always
// yields the least valuable resident object — lowest CRF, and among ties
// the one least recently touched — the same eviction target a BTreeSet
// ordered by reversed CRF would give up via pop_last.
type lrfuHeap []*lrfuItem

func (h lrfuHeap) Len() int { return len(h) }

func (h lrfuHeap) Less(i, j int) bool {
	if h[i].crf != h[j].crf {
		return h[i].crf < h[j].crf
	}
	return h[i].lastAccess < h[j].lastAccess
}

func (h lrfuHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].idx = i
	h[j].idx = j
}

func (h *lrfuHeap) Push(x interface{}) {
	item := x.(*lrfuItem)
	item.idx = len(*h)
	*h = append(*h, item)
}

func (h *lrfuHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.idx = -1
	*h = old[:n-1]
	return item
}
