package kosmo

import "github.com/IvanBrykalov/kosmo/access"

// evictions holds, for one reconstructed cache size, the keys each
// configured policy's stack decided to evict, drained on demand by the
// driver so it can apply them to the global table one at a time.
type evictions struct {
	policyEvictions [][]access.Key
	evictedKeys     []map[access.Key]bool
}

func newEvictions(stacks []reconstructedStack, excludeKey access.Key) *evictions {
	policyEvictions := make([][]access.Key, len(stacks))
	evictedKeys := make([]map[access.Key]bool, len(stacks))

	for i, s := range stacks {
		policyEvictions[i] = getEvictions(s, excludeKey)
		evictedKeys[i] = make(map[access.Key]bool)
	}

	return &evictions{policyEvictions: policyEvictions, evictedKeys: evictedKeys}
}

// getKey pops the next eviction for policyIndex. Evictions for a policy are
// collected oldest-first but drained newest-first here (last-in-first-out
// against the collection order), and the first repeat of a key for a given
// policy stops the caller's drain loop one step early rather than being
// skipped over: both behaviors are carried over unchanged from the
// reference implementation's use of a seen-set as the pop guard.
func (e *evictions) getKey(policyIndex int) (access.Key, bool) {
	list := e.policyEvictions[policyIndex]
	if len(list) == 0 {
		return 0, false
	}

	key := list[len(list)-1]
	e.policyEvictions[policyIndex] = list[:len(list)-1]

	if e.evictedKeys[policyIndex][key] {
		return 0, false
	}
	e.evictedKeys[policyIndex][key] = true

	return key, true
}
