package cache

import (
	"container/list"

	"github.com/IvanBrykalov/kosmo/access"
)

// lruEngine is identical to fifoEngine except that a hit promotes its
// object to the front of the list, so eviction order tracks recency rather
// than admission order.
type lruEngine struct {
	maxSize     uint64
	currentSize uint64

	stack *list.List
	index map[access.Key]*list.Element
}

func newLruEngine(size uint64) *lruEngine {
	return &lruEngine{
		maxSize: size,
		stack:   list.New(),
		index:   make(map[access.Key]*list.Element),
	}
}

// NewLRUCache constructs an LRU-policy cache with the given capacity.
func NewLRUCache(size uint64) Cache { return newShell(newLruEngine(size)) }

func (e *lruEngine) size() uint64 { return e.maxSize }

func (e *lruEngine) processGet(a access.Access) bool {
	el, ok := e.index[a.Key]
	if !ok {
		return false
	}
	e.stack.MoveToFront(el)
	return true
}

func (e *lruEngine) processSet(a access.Access) {
	if uint64(a.Size) > e.maxSize || e.processHas(a.Key) {
		return
	}

	e.reduce(e.maxSize - uint64(a.Size))

	el := e.stack.PushFront(objectFromAccess(a))
	e.index[a.Key] = el
	e.currentSize += uint64(a.Size)
}

func (e *lruEngine) processDel(key access.Key) {
	el, ok := e.index[key]
	if !ok {
		return
	}
	obj := el.Value.(Object)
	e.stack.Remove(el)
	delete(e.index, key)
	e.currentSize -= uint64(obj.Size)
}

func (e *lruEngine) processHas(key access.Key) bool {
	_, ok := e.index[key]
	return ok
}

func (e *lruEngine) reduce(targetSize uint64) {
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

func (e *lruEngine) resize(size uint64) {
	e.reduce(size)
	e.maxSize = size
}
