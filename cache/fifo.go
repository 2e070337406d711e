package cache

import (
	"container/list"

	"github.com/IvanBrykalov/kosmo/access"
)

// fifoEngine evicts strictly in admission order: Get never reorders the
// list, it only reports residency.
type fifoEngine struct {
	maxSize     uint64
	currentSize uint64

	stack *list.List // front = most recently admitted, back = oldest
	index map[access.Key]*list.Element
}

func newFifoEngine(size uint64) *fifoEngine {
	return &fifoEngine{
		maxSize: size,
		stack:   list.New(),
		index:   make(map[access.Key]*list.Element),
	}
}

// NewFIFOCache constructs a FIFO-policy cache with the given capacity.
func NewFIFOCache(size uint64) Cache { return newShell(newFifoEngine(size)) }

func (e *fifoEngine) size() uint64 { return e.maxSize }

func (e *fifoEngine) processGet(a access.Access) bool {
	return e.processHas(a.Key)
}

func (e *fifoEngine) processSet(a access.Access) {
	if uint64(a.Size) > e.maxSize || e.processHas(a.Key) {
		return
	}

	e.reduce(e.maxSize - uint64(a.Size))

	el := e.stack.PushFront(objectFromAccess(a))
	e.index[a.Key] = el
	e.currentSize += uint64(a.Size)
}

func (e *fifoEngine) processDel(key access.Key) {
	el, ok := e.index[key]
	if !ok {
		return
	}
	obj := el.Value.(Object)
	e.stack.Remove(el)
	delete(e.index, key)
	e.currentSize -= uint64(obj.Size)
}

func (e *fifoEngine) processHas(key access.Key) bool {
	_, ok := e.index[key]
	return ok
}

func (e *fifoEngine) reduce(targetSize uint64) {
	for e.currentSize > targetSize {
		back := e.stack.Back()
		if back == nil {
			return
		}
		obj := back.Value.(Object)
		e.stack.Remove(back)
		delete(e.index, obj.Key)
		e.currentSize -= uint64(obj.Size)
	}
}

func (e *fifoEngine) resize(size uint64) {
	e.reduce(size)
	e.maxSize = size
}
