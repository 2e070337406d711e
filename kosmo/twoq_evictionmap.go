package kosmo

import (
	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/algorithm"
)

// twoQEvictionMap tracks 2Q residency with two independent eviction
// histories: a FIFO stack over the combined Ain+Aout region (A1) keyed by
// insertion timestamp, and an LFU-style stack over the whole cache keyed by
// global access count, used to detect which A1-resident objects have
// actually been promoted into Am (two or more accesses since entering A1).
type twoQEvictionMap struct {
	kin, kout float64

	fifoMap []twoQFifoRecord

	lfuGlobalCount uint64
	lfuMap         []twoQLfuRecord
}

type twoQFifoRecord struct {
	size      uint64
	timestamp access.Timestamp
}

type twoQLfuRecord struct {
	size  uint64
	count uint64
}

func newTwoQEvictionMap(a access.Access, kin, kout float64) *twoQEvictionMap {
	return &twoQEvictionMap{
		kin:            kin,
		kout:           kout,
		fifoMap:        []twoQFifoRecord{{size: 0, timestamp: a.Timestamp}},
		lfuGlobalCount: 1,
	}
}

func (m *twoQEvictionMap) insert(size uint64) {
	m.insertFifo(size)
	m.insertLfu(size)
}

func (m *twoQEvictionMap) existsAt(size uint64) bool {
	_, ok := m.stackLocationAt(size)
	return ok
}

func (m *twoQEvictionMap) reuseDistance(obj algorithm.Object) uint64 {
	var smallestA1 uint64
	if n := len(m.fifoMap); n > 0 {
		smallestA1 = uint64(float64(max(m.fifoMap[n-1].size, uint64(obj.Size))) / (m.kin + m.kout))
	} else {
		smallestA1 = uint64(float64(obj.Size) / (m.kin + m.kout))
	}

	for i := len(m.lfuMap) - 1; i >= 0; i-- {
		record := m.lfuMap[i]
		if m.lfuGlobalCount-record.count >= 2 {
			return min(smallestA1, record.size)
		}
	}

	return smallestA1
}

func (m *twoQEvictionMap) update(a access.Access) {
	m.lfuGlobalCount++

	shouldInsert := true
	if n := len(m.fifoMap); n > 0 {
		shouldInsert = m.fifoMap[n-1].size != 0
	}
	if shouldInsert {
		m.fifoMap = append(m.fifoMap, twoQFifoRecord{size: 0, timestamp: a.Timestamp})
	}
}

func (m *twoQEvictionMap) asLocalObject(g *GlobalObject, cacheSize uint64) localObject {
	loc, ok := m.stackLocationAt(cacheSize)
	return &twoQLocalObject{g: g, location: loc, hasLocation: ok}
}

func (m *twoQEvictionMap) ainSize(size uint64) uint64 { return uint64(float64(size) * m.kin) }
func (m *twoQEvictionMap) aoutSize(size uint64) uint64 { return uint64(float64(size) * m.kout) }
func (m *twoQEvictionMap) a1Size(size uint64) uint64 {
	return m.ainSize(size) + m.aoutSize(size)
}

func (m *twoQEvictionMap) insertFifo(size uint64) {
	size = m.a1Size(size)

	if n := len(m.fifoMap); n > 0 && m.fifoMap[n-1].size > size {
		return
	}

	var updatedTimestamp access.Timestamp

	if n := len(m.fifoMap); n > 0 && m.fifoMap[n-1].size <= size {
		updatedTimestamp = m.fifoMap[n-1].timestamp
		m.fifoMap = m.fifoMap[:n-1]
	}

	for n := len(m.fifoMap); n > 0 && m.fifoMap[n-1].size <= size; n = len(m.fifoMap) {
		m.fifoMap = m.fifoMap[:n-1]
	}

	shouldInsert := true
	if n := len(m.fifoMap); n > 0 {
		shouldInsert = m.fifoMap[n-1].size != size+1
	}
	if shouldInsert {
		m.fifoMap = append(m.fifoMap, twoQFifoRecord{size: size + 1, timestamp: updatedTimestamp})
	}
}

func (m *twoQEvictionMap) insertLfu(size uint64) {
	for n := len(m.lfuMap); n > 0 && m.lfuMap[n-1].size <= size; n = len(m.lfuMap) {
		m.lfuMap = m.lfuMap[:n-1]
	}
	m.lfuMap = append(m.lfuMap, twoQLfuRecord{size: size, count: m.lfuGlobalCount})
}

// stackLocationAt reports where this object sits in the 2Q stack
// (combined A1 region with an insertion timestamp, or Am) at the given
// cache size, if it is resident at all.
func (m *twoQEvictionMap) stackLocationAt(size uint64) (twoQStackLocation, bool) {
	ainSize := m.ainSize(size)
	a1Size := m.a1Size(size)

	var ainTimestamp, aoutTimestamp access.Timestamp
	var haveAin, haveAout bool

	for i := len(m.fifoMap) - 1; i >= 0; i-- {
		record := m.fifoMap[i]

		if record.size > a1Size {
			break
		}
		if record.size == a1Size {
			aoutTimestamp, haveAout = record.timestamp, true
			break
		}
		if record.size > ainSize {
			aoutTimestamp, haveAout = record.timestamp, true
		} else {
			ainTimestamp, haveAin = record.timestamp, true
			aoutTimestamp, haveAout = record.timestamp, true
		}
	}

	if !haveAout {
		if haveAin {
			return twoQStackLocation{kind: twoQStackA1, insertedTimestamp: ainTimestamp}, true
		}
		return twoQStackLocation{}, false
	}

	amExists := false
	for _, record := range m.lfuMap {
		if record.size > ainSize && record.size <= a1Size && m.lfuGlobalCount-record.count >= 2 {
			amExists = true
			break
		}
	}

	if amExists {
		return twoQStackLocation{kind: twoQStackAm}, true
	}
	return twoQStackLocation{kind: twoQStackA1, insertedTimestamp: aoutTimestamp}, true
}
