package kosmo

import (
	"math"

	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/algorithm"
)

// lrfuEvictionMap mirrors fifoEvictionMap but keys its stack of records on
// CRF (combined recency/frequency) instead of a timestamp, decaying every
// live record's CRF on each update the way cache.lrfuEngine does for a
// live cache.
type lrfuEvictionMap struct {
	p, lambda float64

	timestamp access.Timestamp
	records   []lrfuEvictionRecord
}

type lrfuEvictionRecord struct {
	size uint64
	crf  float64
}

func newLrfuEvictionMap(a access.Access, p, lambda float64) *lrfuEvictionMap {
	return &lrfuEvictionMap{
		p:         p,
		lambda:    lambda,
		timestamp: a.Timestamp,
		records:   []lrfuEvictionRecord{{size: 0, crf: lrfuF(p, lambda, 0)}},
	}
}

func lrfuF(p, lambda float64, x uint64) float64 {
	return math.Pow(1/p, lambda*float64(x))
}

func (m *lrfuEvictionMap) insert(size uint64) {
	if n := len(m.records); n > 0 && m.records[n-1].size > size {
		return
	}

	updatedCRF := lrfuF(m.p, m.lambda, 0)

	for n := len(m.records); n > 0 && m.records[n-1].size <= size; n = len(m.records) {
		updatedCRF = m.records[n-1].crf
		m.records = m.records[:n-1]
	}

	if n := len(m.records); n == 0 || m.records[n-1].size != size+1 {
		m.records = append(m.records, lrfuEvictionRecord{size: size + 1, crf: updatedCRF})
	}
}

func (m *lrfuEvictionMap) existsAt(size uint64) bool {
	_, ok := m.crfAt(size)
	return ok
}

func (m *lrfuEvictionMap) reuseDistance(obj algorithm.Object) uint64 {
	if n := len(m.records); n > 0 {
		return max(m.records[n-1].size, uint64(obj.Size))
	}
	return uint64(obj.Size)
}

func (m *lrfuEvictionMap) update(a access.Access) {
	dt := a.Timestamp - m.timestamp
	for i := range m.records {
		m.records[i].crf = lrfuF(m.p, m.lambda, 0) + lrfuF(m.p, m.lambda, dt)*m.records[i].crf
	}
	m.timestamp = a.Timestamp

	if n := len(m.records); n == 0 || m.records[n-1].size != 0 {
		m.records = append(m.records, lrfuEvictionRecord{size: 0, crf: lrfuF(m.p, m.lambda, 0)})
	}
}

func (m *lrfuEvictionMap) asLocalObject(g *GlobalObject, cacheSize uint64) localObject {
	crf, ok := m.crfAt(cacheSize)
	return &lrfuLocalObject{g: g, crf: crf, hasCRF: ok}
}

func (m *lrfuEvictionMap) crfAt(size uint64) (float64, bool) {
	var crf float64
	var have bool

	for i := len(m.records) - 1; i >= 0; i-- {
		record := m.records[i]

		if record.size == size {
			return record.crf, true
		}
		if record.size > size {
			return crf, have
		}

		crf, have = record.crf, true
	}

	return crf, have
}
