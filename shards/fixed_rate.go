package shards

import "github.com/IvanBrykalov/kosmo/access"

// FixedRate samples at a constant threshold for the lifetime of the run: a
// key is admitted iff hash(key) < globalT, and globalT never changes.
type FixedRate struct {
	globalT uint64

	sampledCount uint64
	totalCount   uint64
}

// NewFixedRate constructs a sampler admitting keys whose hash falls below
// globalT (in [0, Modulus)).
func NewFixedRate(globalT uint64) *FixedRate {
	return &FixedRate{globalT: globalT}
}

func (s *FixedRate) GlobalT() uint64     { return s.globalT }
func (s *FixedRate) Rate() float64       { return rate(s.globalT) }
func (s *FixedRate) SampledCount() uint64 { return s.sampledCount }
func (s *FixedRate) TotalCount() uint64  { return s.totalCount }

func (s *FixedRate) ExpectedCount() uint64 {
	return uint64(s.Rate() * float64(s.totalCount))
}

func (s *FixedRate) Correction() int64 {
	return int64(s.ExpectedCount()) - int64(s.sampledCount)
}

func (s *FixedRate) Sample(a access.Access) bool {
	s.totalCount++
	if _, ok := s.SampleKey(a.Key); !ok {
		return false
	}
	s.sampledCount++
	return true
}

func (s *FixedRate) SampleKey(key access.Key) (uint64, bool) {
	return sampleKey(s.globalT, key)
}

func (s *FixedRate) Scale(size uint64) uint64   { return scale(s.globalT, size) }
func (s *FixedRate) Unscale(size uint64) uint64 { return unscale(s.globalT, size) }

// Removal never fires: fixed-rate sampling never shrinks its threshold.
func (s *FixedRate) Removal() (access.Key, bool) { return 0, false }
