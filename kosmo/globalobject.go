package kosmo

import (
	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/algorithm"
)

// GlobalObject is the whole-trace state Kosmo keeps per key: the object's
// most recent access plus one eviction map per configured policy, each
// compressing that object's entire eviction history across every
// reconstructed cache size into a handful of records.
type GlobalObject struct {
	object       algorithm.Object
	evictionMaps []evictionMap
}

func newGlobalObject(a access.Access, policies []Policy) *GlobalObject {
	maps := make([]evictionMap, len(policies))
	for i, p := range policies {
		maps[i] = newEvictionMap(p, a)
	}
	return &GlobalObject{object: algorithm.NewObject(a), evictionMaps: maps}
}

func (g *GlobalObject) Object() algorithm.Object { return g.object }

// ReuseDistances returns one reuse distance per configured policy, in
// policy order.
func (g *GlobalObject) ReuseDistances() []uint64 {
	out := make([]uint64, len(g.evictionMaps))
	for i, m := range g.evictionMaps {
		out[i] = m.reuseDistance(g.object)
	}
	return out
}

// Update refreshes the object's own recency and then feeds the access to
// every eviction map (the maps' updates read only the access).
func (g *GlobalObject) Update(a access.Access) {
	g.object.Update(a)
	for _, m := range g.evictionMaps {
		m.update(a)
	}
}

// EvictByPolicyIndex records, for the policy at index, that this object was
// evicted from the reconstructed stack at cacheSize.
func (g *GlobalObject) EvictByPolicyIndex(index int, cacheSize uint64) {
	g.evictionMaps[index].insert(cacheSize)
}

// ExistsAt reports whether this object is resident under any configured
// policy's eviction map at the given cache size, used to decide whether a
// key can be dropped entirely once a minimum simulated size shrinks past it.
func (g *GlobalObject) ExistsAt(size uint64) bool {
	for _, m := range g.evictionMaps {
		if m.existsAt(size) {
			return true
		}
	}
	return false
}
