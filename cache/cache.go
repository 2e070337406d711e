package cache

import "github.com/IvanBrykalov/kosmo/access"

// Cache is a single, size-bounded cache under one eviction policy. Unlike
// the generic sharded cache this module started from, a Cache here has a
// single owner (either the accurate brute-force simulator driving one cache
// size at a time, or one goroutine in MiniSim's parallel fan-out driving
// its own cache size) and needs no internal locking.
type Cache interface {
	// Size returns the cache's capacity.
	Size() uint64

	// MissRatio returns hits/count since the last ClearCounters, as a miss
	// ratio (1 - hit ratio). Returns 0 before any request has been made.
	MissRatio() float64

	// Get performs a read. On hit, the entry is promoted per the active
	// policy and the hit counter advances; on miss, only the request
	// counter advances. Requests for an object larger than Size always
	// miss without touching any counter, mirroring a request that could
	// never have been admitted.
	Get(a access.Access) bool

	// Set inserts access.Key, evicting other entries first if needed. A key
	// that is already resident is left as it is, and a request larger than
	// Size is silently dropped.
	Set(a access.Access)

	// Del removes key if present.
	Del(key access.Key)

	// Has reports residency without affecting ordering or counters.
	Has(key access.Key) bool

	// HandleSelfPopulating performs a read-through access: a hit returns
	// true; a miss inserts the accessed object before returning false.
	HandleSelfPopulating(a access.Access) bool

	// ClearCounters resets the running request/hit counts to zero.
	ClearCounters()

	// Reduce evicts until resident size is at most targetSize.
	Reduce(targetSize uint64)

	// Resize changes the cache's capacity, reducing first if it shrank.
	Resize(size uint64)

	// Rescale multiplies the running request/hit counters by ratio, used
	// when the SHARDS sampling threshold shrinks (see minisim.Driver).
	Rescale(ratio float64)
}

// engine is the policy-specific half of a Cache: everything that differs
// between LRU/LFU/FIFO/2Q/LRFU. shell supplies the common bookkeeping
// (size-gating, request/hit counters) around it, the same split the donor's
// shard/policy pair used between list mechanics and eviction decisions.
type engine interface {
	size() uint64
	processGet(a access.Access) bool
	processSet(a access.Access)
	processDel(key access.Key)
	processHas(key access.Key) bool
	reduce(targetSize uint64)
	resize(size uint64)
}

// shell wraps an engine with the request-counting and size-gating behavior
// shared by every policy (see cache.rs's default Cache trait methods in the
// simulator this package is grounded on).
type shell struct {
	e     engine
	count float64
	hits  float64
}

func newShell(e engine) *shell { return &shell{e: e} }

func (s *shell) Size() uint64 { return s.e.size() }

func (s *shell) MissRatio() float64 {
	if s.count > 0 {
		return 1 - s.hits/s.count
	}
	return 0
}

func (s *shell) Get(a access.Access) bool {
	if uint64(a.Size) > s.e.size() {
		return false
	}

	s.count++

	if s.e.processGet(a) {
		s.hits++
		return true
	}
	return false
}

func (s *shell) Set(a access.Access) {
	if uint64(a.Size) > s.e.size() {
		return
	}
	s.e.processSet(a)
}

func (s *shell) Del(key access.Key) { s.e.processDel(key) }

func (s *shell) Has(key access.Key) bool { return s.e.processHas(key) }

func (s *shell) HandleSelfPopulating(a access.Access) bool {
	if s.Get(a) {
		return true
	}
	s.Set(a)
	return false
}

func (s *shell) ClearCounters() {
	s.count = 0
	s.hits = 0
}

func (s *shell) Reduce(targetSize uint64) { s.e.reduce(targetSize) }
func (s *shell) Resize(size uint64)       { s.e.resize(size) }

func (s *shell) Rescale(ratio float64) {
	s.count *= ratio
	s.hits *= ratio
}
