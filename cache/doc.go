// Package cache implements the five concrete, size-bounded eviction
// policies used to simulate a real cache at one fixed size: LRU, LFU, FIFO,
// 2Q and LRFU. These are what MiniSim runs many of in parallel and what the
// accurate brute-force baseline runs one at a time; Kosmo does not use them
// directly (it reconstructs the same eviction orders analytically via
// package kosmo), but the policies here share its ground truth.
//
// Design
//
//   - Each concrete cache is an "engine" implementing the policy-specific
//     admission/eviction rules; a shared shell (cache.go) wraps it with the
//     request/hit counters and size-gating every policy needs identically.
//     This mirrors the split this module's donor used between its shard
//     (generic list mechanics) and its pluggable policy hooks.
//   - Ownership is single-threaded: no internal locking. No two goroutines
//     drive the same Cache value at the same time (see package minisim and
//     the accurate command).
//   - Eviction order for LRU/FIFO/2Q is kept with an intrusive
//     container/list, the same structure the donor used for its MRU/LRU
//     list; LFU buckets objects by access count in an outer container/list
//     of per-count container/lists; LRFU keeps a small priority heap over a
//     combined recency/frequency score (CRF), recomputed on each hit.
//
// Selecting a policy
//
//	p, err := cache.ParsePolicy("2q-0.25-0.5")
//	c := p.NewCache(1 << 20) // 1 MiB cache
//	c.HandleSelfPopulating(a)
package cache
