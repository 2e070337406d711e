package cache

import (
	"container/list"

	"github.com/IvanBrykalov/kosmo/access"
)

// lfuEngine is the classic O(1) LFU: an outer list of count-buckets, sorted
// ascending by access count, each holding an inner LRU-ordered list of the
// objects currently at that count. A hit moves its object from its bucket
// to the (count+1) bucket, creating one if the next bucket isn't already at
// exactly count+1; eviction always takes from the lowest-count bucket's
// least-recently-used object.
type lfuEngine struct {
	maxSize     uint64
	currentSize uint64

	buckets *list.List // of *countBucket, ascending by count
	index   map[access.Key]*lfuEntry
}

type countBucket struct {
	count uint64
	items *list.List // of *lfuEntry
}

type lfuEntry struct {
	obj    Object
	bucket *list.Element // element of buckets, .Value.(*countBucket)
	inner  *list.Element // element of bucket.items, .Value.(*lfuEntry)
}

func newLfuEngine(size uint64) *lfuEngine {
	return &lfuEngine{
		maxSize: size,
		buckets: list.New(),
		index:   make(map[access.Key]*lfuEntry),
	}
}

// NewLFUCache constructs an LFU-policy cache with the given capacity.
func NewLFUCache(size uint64) Cache { return newShell(newLfuEngine(size)) }

func (e *lfuEngine) size() uint64 { return e.maxSize }

func (e *lfuEngine) processGet(a access.Access) bool {
	entry, ok := e.index[a.Key]
	if !ok {
		return false
	}

	curBucketElem := entry.bucket
	curBucket := curBucketElem.Value.(*countBucket)
	curBucket.items.Remove(entry.inner)
	curBucketEmpty := curBucket.items.Len() == 0

	var targetElem *list.Element
	if next := curBucketElem.Next(); next != nil && next.Value.(*countBucket).count == curBucket.count+1 {
		targetElem = next
	} else {
		targetElem = e.buckets.InsertAfter(&countBucket{count: curBucket.count + 1, items: list.New()}, curBucketElem)
	}

	target := targetElem.Value.(*countBucket)
	entry.inner = target.items.PushFront(entry)
	entry.bucket = targetElem

	if curBucketEmpty {
		e.buckets.Remove(curBucketElem)
	}

	return true
}

func (e *lfuEngine) processSet(a access.Access) {
	if uint64(a.Size) > e.maxSize || e.processHas(a.Key) {
		return
	}

	e.reduce(e.maxSize - uint64(a.Size))

	front := e.buckets.Front()
	if front == nil || front.Value.(*countBucket).count > 1 {
		front = e.buckets.PushFront(&countBucket{count: 1, items: list.New()})
	}
	bucket := front.Value.(*countBucket)

	entry := &lfuEntry{obj: objectFromAccess(a), bucket: front}
	entry.inner = bucket.items.PushFront(entry)

	e.index[a.Key] = entry
	e.currentSize += uint64(a.Size)
}

func (e *lfuEngine) processDel(key access.Key) {
	entry, ok := e.index[key]
	if !ok {
		return
	}

	bucket := entry.bucket.Value.(*countBucket)
	bucket.items.Remove(entry.inner)
	delete(e.index, key)
	e.currentSize -= uint64(entry.obj.Size)

	if bucket.items.Len() == 0 {
		e.buckets.Remove(entry.bucket)
	}
}

func (e *lfuEngine) processHas(key access.Key) bool {
	_, ok := e.index[key]
	return ok
}

func (e *lfuEngine) reduce(targetSize uint64) {
	for e.currentSize > targetSize {
		front := e.buckets.Front()
		if front == nil {
			return
		}
		bucket := front.Value.(*countBucket)

		back := bucket.items.Back()
		entry := back.Value.(*lfuEntry)
		bucket.items.Remove(back)

		delete(e.index, entry.obj.Key)
		e.currentSize -= uint64(entry.obj.Size)

		if bucket.items.Len() == 0 {
			e.buckets.Remove(front)
		}
	}
}

func (e *lfuEngine) resize(size uint64) {
	e.reduce(size)
	e.maxSize = size
}
