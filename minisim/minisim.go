// Package minisim implements the MiniSim miss-ratio-curve algorithm: a
// fixed fleet of concrete caches spanning the size range of interest, each
// driven straight off the trace in parallel, trading Kosmo's single-pass
// exactness for a much simpler (and still highly parallel) brute-force
// simulation at a fixed resolution.
package minisim

import (
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/algorithm"
	"github.com/IvanBrykalov/kosmo/cache"
	"github.com/IvanBrykalov/kosmo/curve"
	"github.com/IvanBrykalov/kosmo/shards"
)

// numCaches is the resolution of the curve: one concrete cache is built per
// 1/numCaches slice of maxCacheSize.
const numCaches = 100

// Driver is the MiniSim algorithm. It implements algorithm.Algorithm.
type Driver struct {
	maxCacheSize uint64
	caches       []cache.Cache

	shardsSampler shards.Shards
	shardsGlobalT uint64
}

// New builds a MiniSim driver of numCaches concrete caches under policy,
// spanning up to maxCacheSize, optionally thinning the trace with a SHARDS
// sampler (which also shrinks each cache's sampled-space size).
func New(policy cache.Policy, maxCacheSize uint64, sampler shards.Shards) *Driver {
	var globalT uint64
	if sampler != nil {
		globalT = sampler.GlobalT()
	}

	return &Driver{
		maxCacheSize:  maxCacheSize,
		caches:        makeCaches(policy, maxCacheSize, sampler),
		shardsSampler: sampler,
		shardsGlobalT: globalT,
	}
}

func makeCaches(policy cache.Policy, maxCacheSize uint64, sampler shards.Shards) []cache.Cache {
	caches := make([]cache.Cache, numCaches)

	for i := 0; i < numCaches; i++ {
		size := uint64(i+1) * (maxCacheSize / numCaches)
		if sampler != nil {
			size = sampler.Scale(size)
		}
		caches[i] = policy.NewCache(size)
	}

	return caches
}

// Handle runs the standard access/SHARDS filtering before Process.
func (d *Driver) Handle(a access.Access) { algorithm.Handle(d, a) }

// Process rescales every cache if the SHARDS threshold has shrunk since the
// last access, then fans a out to every cache concurrently as a
// read-through (self-populating) access.
func (d *Driver) Process(a access.Access) {
	var globalT uint64
	if d.shardsSampler != nil {
		globalT = d.shardsSampler.GlobalT()
	}

	if globalT != d.shardsGlobalT {
		d.rescale(globalT)
		d.shardsGlobalT = globalT
	}

	d.fanOut(func(c cache.Cache) { c.HandleSelfPopulating(a) })
}

// Remove deletes key from every cache concurrently.
func (d *Driver) Remove(key access.Key) {
	d.fanOut(func(c cache.Cache) { c.Del(key) })
}

// Clean resets every cache's request/hit counters concurrently.
func (d *Driver) Clean() {
	d.fanOut(func(c cache.Cache) { c.ClearCounters() })
}

// Resize reduces every cache's resident size down to at most size,
// concurrently, without changing any cache's configured capacity.
func (d *Driver) Resize(size uint64) {
	d.fanOut(func(c cache.Cache) { c.Reduce(size) })
}

// Curve samples one point per cache: its capacity and observed miss ratio,
// unscaled and statistically corrected against the SHARDS sampler if one
// is in effect.
func (d *Driver) Curve() *curve.Curve {
	c := curve.New()

	for _, cc := range d.caches {
		size := cc.Size()
		missRatio := cc.MissRatio()

		if d.shardsSampler != nil {
			size = d.shardsSampler.Unscale(size)
			missRatio = clamp01(missRatio * float64(d.shardsSampler.SampledCount()) / float64(d.shardsSampler.ExpectedCount()))
		}

		c.Add(size, missRatio)
	}

	return c
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

// rescale follows a SHARDS threshold shrink: every cache's capacity is
// recomputed against the new threshold and its running counters are
// multiplied by the ratio of new to old threshold, compensating for the
// history collected under the looser one.
func (d *Driver) rescale(newGlobalT uint64) {
	ratio := float64(newGlobalT) / float64(d.shardsGlobalT)
	numCachesU := uint64(len(d.caches))

	rate := 1.0
	if d.shardsSampler != nil {
		rate = d.shardsSampler.Rate()
	}

	var g errgroup.Group
	for i, c := range d.caches {
		i, c := i, c
		g.Go(func() error {
			size := float64(i+1) * float64(d.maxCacheSize/numCachesU) * rate
			c.Resize(uint64(size))
			c.Rescale(ratio)
			return nil
		})
	}
	_ = g.Wait()
}

func (d *Driver) fanOut(fn func(cache.Cache)) {
	var g errgroup.Group
	for _, c := range d.caches {
		c := c
		g.Go(func() error {
			fn(c)
			return nil
		})
	}
	_ = g.Wait()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
