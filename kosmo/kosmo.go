// Package kosmo implements the Kosmo miss-ratio-curve algorithm: a single
// pass over the trace builds, for every key, a compressed "eviction map"
// per configured policy recording which reconstructed cache sizes it would
// have been evicted at, letting one pass produce miss-ratio curves for
// several policies simultaneously without replaying the trace once per
// policy or per candidate cache size.
package kosmo

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/algorithm"
	"github.com/IvanBrykalov/kosmo/curve"
	"github.com/IvanBrykalov/kosmo/histogram"
	"github.com/IvanBrykalov/kosmo/shards"
)

const (
	granularity               = 10
	minReconstructedStackSize = 1024
)

// Driver is the Kosmo algorithm. It implements algorithm.Algorithm.
type Driver struct {
	globalTable map[access.Key]*GlobalObject
	totalSize   uint64

	policies []Policy

	shardsSampler shards.Shards
	histograms    []*histogram.Histogram
}

// New builds a Kosmo driver simulating every policy in policies
// simultaneously, optionally thinning the trace with a SHARDS sampler.
// Panics if policies is empty or contains a duplicate, matching the
// reference implementation's own configuration assertions.
func New(policies []Policy, sampler shards.Shards) *Driver {
	if len(policies) == 0 {
		panic("kosmo: must be configured with at least one policy")
	}
	if hasDuplicatePolicies(policies) {
		panic("kosmo: cannot have duplicate policies")
	}

	histograms := make([]*histogram.Histogram, len(policies))
	for i := range histograms {
		histograms[i] = histogram.New(sampler)
	}

	return &Driver{
		globalTable:   make(map[access.Key]*GlobalObject),
		policies:      append([]Policy(nil), policies...),
		shardsSampler: sampler,
		histograms:    histograms,
	}
}

// Handle runs the standard access/SHARDS filtering before Process.
func (d *Driver) Handle(a access.Access) { algorithm.Handle(d, a) }

// Process records one access: it first feeds every policy's histogram the
// object's current reuse distance (or marks a cold access), then, for a
// genuinely new key, seeds a GlobalObject and grows the simulated total
// size. It then reconstructs per-policy cache stacks across the size range
// implied by this access and applies whatever evictions fall out.
func (d *Driver) Process(a access.Access) {
	maxReuseDistance, existed := d.updateHistograms(a)

	simulateSize := maxReuseDistance
	if !existed {
		d.totalSize += uint64(a.Size)
		d.globalTable[a.Key] = newGlobalObject(a, d.policies)
		simulateSize = d.totalSize
	}

	d.performEvictions(a, simulateSize)
}

// Remove drops key from the global table entirely (used both for explicit
// DEL-style traffic and for keys SHARDS decides to stop tracking).
func (d *Driver) Remove(key access.Key) {
	delete(d.globalTable, key)
}

// Clean resets every policy's histogram, keeping its bucket boundaries.
func (d *Driver) Clean() {
	for _, h := range d.histograms {
		h.Clear()
	}
}

// Resize drops every tracked key no longer resident under any policy at
// size and shrinks every histogram to match.
func (d *Driver) Resize(size uint64) {
	for key, g := range d.globalTable {
		if !g.ExistsAt(size) {
			delete(d.globalTable, key)
		}
	}
	for _, h := range d.histograms {
		h.Resize(size)
	}
}

// Curve returns the miss-ratio curve for the first configured policy,
// satisfying algorithm.Algorithm for callers that only configured one.
// Callers simulating several policies at once should use PolicyCurve.
func (d *Driver) Curve() *curve.Curve {
	c, ok := d.PolicyCurve(d.policies[0])
	if !ok {
		return curve.New()
	}
	return c
}

// PolicyCurve returns the miss-ratio curve for one of the policies this
// driver was configured with, rescaling and statistically correcting it
// against the SHARDS sampler if one is in effect.
func (d *Driver) PolicyCurve(policy Policy) (*curve.Curve, bool) {
	index := d.findPolicyIndex(policy)
	if index < 0 {
		return nil, false
	}

	h := d.histograms[index]

	if d.shardsSampler != nil {
		h.RescaleBuckets(d.shardsSampler)
		return curve.FromCorrectedHistogram(h, d.shardsSampler), true
	}

	return curve.FromHistogram(h), true
}

// VerifyShards samples a through the configured SHARDS sampler, if any,
// removing any key the sampler reports it has stopped tracking.
func (d *Driver) VerifyShards(a access.Access) bool {
	if d.shardsSampler == nil {
		return true
	}
	if !d.shardsSampler.Sample(a) {
		return false
	}
	if key, ok := d.shardsSampler.Removal(); ok {
		d.Remove(key)
	}
	return true
}

func (d *Driver) findPolicyIndex(policy Policy) int {
	for i, p := range d.policies {
		if p.Equal(policy) {
			return i
		}
	}
	return -1
}

// updateHistograms increments every policy's histogram for a. It returns
// the largest reuse distance observed across policies and whether the key
// already existed in the global table; a brand-new key increments every
// histogram's infinity bucket instead and reports existed=false.
func (d *Driver) updateHistograms(a access.Access) (maxReuseDistance uint64, existed bool) {
	g, ok := d.globalTable[a.Key]
	if !ok {
		for _, h := range d.histograms {
			h.Increment(d.shardsSampler, nil)
		}
		return 0, false
	}

	reuseDistances := g.ReuseDistances()
	g.Update(a)

	for i, rd := range reuseDistances {
		d.histograms[i].Increment(d.shardsSampler, &reuseDistances[i])
		if rd > maxReuseDistance {
			maxReuseDistance = rd
		}
	}

	return maxReuseDistance, true
}

// performEvictions reconstructs every configured policy's cache stack at a
// range of candidate sizes stepping up to simulateSize, in parallel, then
// applies the resulting evictions to the global table serially in
// descending size order (so an object evicted at a larger size is recorded
// before any conflicting eviction recorded at a smaller one is applied).
func (d *Driver) performEvictions(a access.Access, simulateSize uint64) {
	stepSize := max(uint64(minReconstructedStackSize), uint64(a.Size))
	stepSize = max(stepSize, uint64(math.Ceil(float64(simulateSize)/float64(granularity))))

	if stepSize > simulateSize {
		return
	}

	steps := 0
	for size := stepSize; size < simulateSize+stepSize; size += stepSize {
		steps++
	}

	policyEvictions := make([]*evictions, steps)

	var g errgroup.Group
	index := 0
	for size := stepSize; size < simulateSize+stepSize; size += stepSize {
		i, sz := index, size
		g.Go(func() error {
			policyEvictions[i] = d.reconstructPolicyStacks(sz, a.Key)
			return nil
		})
		index++
	}
	_ = g.Wait()

	for i := steps - 1; i >= 0; i-- {
		cacheSize := uint64(i+1) * stepSize
		ev := policyEvictions[i]

		for policyIndex := range d.policies {
			for {
				key, ok := ev.getKey(policyIndex)
				if !ok {
					break
				}
				d.evictWithKey(policyIndex, key, cacheSize)
			}
		}
	}
}

func (d *Driver) evictWithKey(policyIndex int, key access.Key, cacheSize uint64) {
	if g, ok := d.globalTable[key]; ok {
		g.EvictByPolicyIndex(policyIndex, cacheSize)
	}
}

// reconstructPolicyStacks rebuilds every configured policy's cache stack at
// size from the current global table, then drains the evictions each
// stack produces once it overflows size.
func (d *Driver) reconstructPolicyStacks(size uint64, excludeKey access.Key) *evictions {
	stacks := make([]reconstructedStack, len(d.policies))
	for i, p := range d.policies {
		stacks[i] = newReconstructedStack(p, size)
	}

	for _, g := range d.globalTable {
		for i, em := range g.evictionMaps {
			stacks[i].insert(em.asLocalObject(g, size))
		}
	}

	return newEvictions(stacks, excludeKey)
}
