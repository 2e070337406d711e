package kosmo

import (
	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/algorithm"
)

// evictionMap is the per-policy, per-object compressed eviction history
// Kosmo builds incrementally as it reconstructs cache stacks at increasing
// sizes: insert(size) records that this object was evicted at that
// reconstructed cache size, and existsAt/reuseDistance answer queries about
// the object's residency without needing the full reconstructed stack.
type evictionMap interface {
	insert(size uint64)

	existsAt(size uint64) bool
	reuseDistance(obj algorithm.Object) uint64

	update(a access.Access)

	// asLocalObject produces the per-policy view reconstructedStack.insert
	// expects when rebuilding the stack at cacheSize.
	asLocalObject(g *GlobalObject, cacheSize uint64) localObject
}

func newEvictionMap(policy Policy, a access.Access) evictionMap {
	switch policy.Kind {
	case PolicyLFU:
		return newLfuEvictionMap()
	case PolicyFIFO:
		return newFifoEvictionMap(a)
	case PolicyTwoQ:
		return newTwoQEvictionMap(a, policy.Kin, policy.Kout)
	case PolicyLRFU:
		return newLrfuEvictionMap(a, policy.P, policy.Lambda)
	case PolicyLRU:
		return newLruEvictionMap(a)
	default:
		panic("kosmo: unknown policy kind")
	}
}
