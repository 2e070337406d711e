package kosmo

import (
	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/algorithm"
)

// fifoEvictionMap compresses an object's FIFO eviction history as a
// monotonically-decreasing-by-size stack of (size threshold, timestamp)
// records: the object is resident at every cache size at or above the top
// record's size, and at such a size it was inserted at the timestamp of the
// record with the greatest size at or below it.
type fifoEvictionMap struct {
	records []fifoEvictionRecord
}

type fifoEvictionRecord struct {
	size      uint64
	timestamp access.Timestamp
}

func newFifoEvictionMap(a access.Access) *fifoEvictionMap {
	return &fifoEvictionMap{records: []fifoEvictionRecord{{size: 0, timestamp: a.Timestamp}}}
}

func (m *fifoEvictionMap) insert(size uint64) {
	if n := len(m.records); n > 0 && m.records[n-1].size > size {
		return
	}

	var updatedTimestamp access.Timestamp

	if n := len(m.records); n > 0 && m.records[n-1].size <= size {
		updatedTimestamp = m.records[n-1].timestamp
		m.records = m.records[:n-1]
	}

	for n := len(m.records); n > 0 && m.records[n-1].size <= size; n = len(m.records) {
		m.records = m.records[:n-1]
	}

	shouldInsert := true
	if n := len(m.records); n > 0 {
		shouldInsert = m.records[n-1].size != size+1
	}
	if shouldInsert {
		m.records = append(m.records, fifoEvictionRecord{size: size + 1, timestamp: updatedTimestamp})
	}
}

func (m *fifoEvictionMap) existsAt(size uint64) bool {
	_, ok := m.timestampAt(size)
	return ok
}

func (m *fifoEvictionMap) reuseDistance(obj algorithm.Object) uint64 {
	if n := len(m.records); n > 0 {
		return max(m.records[n-1].size, uint64(obj.Size))
	}
	return uint64(obj.Size)
}

func (m *fifoEvictionMap) update(a access.Access) {
	shouldInsert := true
	if n := len(m.records); n > 0 {
		shouldInsert = m.records[n-1].size != 0
	}
	if shouldInsert {
		m.records = append(m.records, fifoEvictionRecord{size: 0, timestamp: a.Timestamp})
	}
}

func (m *fifoEvictionMap) asLocalObject(g *GlobalObject, cacheSize uint64) localObject {
	ts, ok := m.timestampAt(cacheSize)
	return &fifoLocalObject{g: g, insertedTimestamp: ts, hasTimestamp: ok}
}

// timestampAt returns the timestamp this object was last inserted at, as of
// the eviction history recorded so far, if it is resident at size.
func (m *fifoEvictionMap) timestampAt(size uint64) (access.Timestamp, bool) {
	var timestamp access.Timestamp
	var have bool

	for i := len(m.records) - 1; i >= 0; i-- {
		record := m.records[i]

		if record.size == size {
			return record.timestamp, true
		}
		if record.size > size {
			return timestamp, have
		}

		timestamp, have = record.timestamp, true
	}

	return timestamp, have
}
