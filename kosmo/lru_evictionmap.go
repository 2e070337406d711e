package kosmo

import (
	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/algorithm"
)

// lruEvictionMap tracks a single watermark: the largest cache size this
// object has been evicted from so far. Unlike the other policies' eviction
// maps, LRU needs no stack of records because a single growing size is all
// that is needed to answer existsAt for every cache size simulated so far
// (an object evicted from size S was necessarily already evicted from every
// size < S).
type lruEvictionMap struct {
	evictedSize uint64
}

func newLruEvictionMap(a access.Access) *lruEvictionMap {
	return &lruEvictionMap{evictedSize: uint64(a.Size) - 1}
}

func (m *lruEvictionMap) insert(size uint64) {
	if size > m.evictedSize {
		m.evictedSize = size
	}
}

func (m *lruEvictionMap) existsAt(size uint64) bool {
	return m.evictedSize < size
}

func (m *lruEvictionMap) reuseDistance(obj algorithm.Object) uint64 {
	if m.evictedSize > 0 {
		return m.evictedSize
	}
	return uint64(obj.Size)
}

func (m *lruEvictionMap) update(a access.Access) {
	m.evictedSize = uint64(a.Size) - 1
}

func (m *lruEvictionMap) asLocalObject(g *GlobalObject, cacheSize uint64) localObject {
	return &lruLocalObject{g: g, objectExists: m.existsAt(cacheSize)}
}
