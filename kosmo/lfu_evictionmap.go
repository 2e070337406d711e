package kosmo

import (
	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/algorithm"
)

// lfuEvictionMap mirrors fifoEvictionMap but keys its stack of records on a
// monotonically increasing global access count instead of a timestamp,
// compressing "this object had been accessed globalCount-record.count times
// fewer than now, as of the point it was evicted at this size".
type lfuEvictionMap struct {
	globalCount uint64
	records     []lfuEvictionRecord
}

type lfuEvictionRecord struct {
	size  uint64
	count uint64
}

func newLfuEvictionMap() *lfuEvictionMap {
	return &lfuEvictionMap{globalCount: 1}
}

func (m *lfuEvictionMap) insert(size uint64) {
	for n := len(m.records); n > 0 && m.records[n-1].size <= size; n = len(m.records) {
		m.records = m.records[:n-1]
	}
	m.records = append(m.records, lfuEvictionRecord{size: size, count: m.globalCount})
}

func (m *lfuEvictionMap) existsAt(size uint64) bool {
	_, ok := m.countAt(size)
	return ok
}

func (m *lfuEvictionMap) reuseDistance(obj algorithm.Object) uint64 {
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].count == m.globalCount {
			return m.records[i].size + 1
		}
	}
	return uint64(obj.Size)
}

func (m *lfuEvictionMap) update(a access.Access) {
	m.globalCount++
}

func (m *lfuEvictionMap) asLocalObject(g *GlobalObject, cacheSize uint64) localObject {
	count, ok := m.countAt(cacheSize)
	return &lfuLocalObject{g: g, count: count, hasCount: ok}
}

// countAt returns this object's access count at size, as of the eviction
// history recorded so far: the accesses since it was last evicted at a size
// at or above size (all of its accesses if it never was). It returns false
// when it has not been accessed since that eviction.
func (m *lfuEvictionMap) countAt(size uint64) (uint64, bool) {
	for i := len(m.records) - 1; i >= 0; i-- {
		record := m.records[i]
		if record.size >= size {
			if m.globalCount == record.count {
				return 0, false
			}
			return m.globalCount - record.count, true
		}
	}
	return m.globalCount, true
}
