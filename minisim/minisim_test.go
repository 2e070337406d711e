package minisim

import (
	"testing"

	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/cache"
)

func TestNew_BuildsNumCachesSpanningMaxSize(t *testing.T) {
	t.Parallel()

	d := New(cache.Policy{Kind: cache.KindLRU}, 1000, nil)
	if len(d.caches) != numCaches {
		t.Fatalf("len(caches) = %d, want %d", len(d.caches), numCaches)
	}

	for i, c := range d.caches {
		want := uint64(i+1) * (1000 / numCaches)
		if c.Size() != want {
			t.Fatalf("caches[%d].Size() = %d, want %d", i, c.Size(), want)
		}
	}
}

func TestDriver_CurveReflectsEachCacheSize(t *testing.T) {
	t.Parallel()

	d := New(cache.Policy{Kind: cache.KindLRU}, 1000, nil)

	// Fill well past the largest cache with distinct 1-byte keys so every
	// cache size is exercised at capacity.
	for i := access.Key(0); i < 1200; i++ {
		d.Handle(access.Access{Command: access.Get, Key: i, Size: 1})
	}

	c := d.Curve()
	if c.Len() != numCaches {
		t.Fatalf("curve has %d points, want %d", c.Len(), numCaches)
	}
}

func TestDriver_RemoveFansOutToEveryCache(t *testing.T) {
	t.Parallel()

	d := New(cache.Policy{Kind: cache.KindLRU}, 1000, nil)
	a := access.Access{Command: access.Get, Key: 1, Size: 1}
	d.Handle(a)

	for i, c := range d.caches {
		if c.Size() == 0 {
			continue // a zero-capacity cache can never admit anything
		}
		if !c.Has(1) {
			t.Fatalf("caches[%d] should have admitted key 1 on a miss", i)
		}
	}

	d.Remove(1)
	for i, c := range d.caches {
		if c.Has(1) {
			t.Fatalf("caches[%d] should no longer have key 1 after Remove", i)
		}
	}
}

func TestClamp01(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 1},
	}
	for _, tc := range cases {
		if got := clamp01(tc.in); got != tc.want {
			t.Fatalf("clamp01(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
