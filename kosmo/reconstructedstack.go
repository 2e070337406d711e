package kosmo

import "github.com/IvanBrykalov/kosmo/access"

// reconstructedStack rebuilds, for one policy at one specific cache size,
// which objects are resident and in what eviction order: insert is called
// once per key in the global table, then getEviction is drained until the
// stack's used size falls back within its capacity.
type reconstructedStack interface {
	insert(lo localObject)

	// getEviction pops the next object that must be evicted to bring the
	// stack back under capacity, or ok=false once it already fits.
	getEviction(excludeKey access.Key) (key access.Key, ok bool)
}

func newReconstructedStack(policy Policy, size uint64) reconstructedStack {
	switch policy.Kind {
	case PolicyLFU:
		return newLfuReconstructedStack(size)
	case PolicyFIFO:
		return newFifoReconstructedStack(size)
	case PolicyTwoQ:
		return newTwoQReconstructedStack(size, policy.Kin, policy.Kout)
	case PolicyLRFU:
		return newLrfuReconstructedStack(size)
	case PolicyLRU:
		return newLruReconstructedStack(size)
	default:
		panic("kosmo: unknown policy kind")
	}
}

// getEvictions drains a reconstructed stack of every eviction, dropping
// excludeKey (the key of the access currently being processed, which must
// never be evicted by its own simulation step).
func getEvictions(s reconstructedStack, excludeKey access.Key) []access.Key {
	var keys []access.Key
	for {
		key, ok := s.getEviction(excludeKey)
		if !ok {
			break
		}
		if key != excludeKey {
			keys = append(keys, key)
		}
	}
	return keys
}
