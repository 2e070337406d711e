package cache

import (
	"testing"

	"github.com/IvanBrykalov/kosmo/access"
)

func TestFIFO_EvictsInAdmissionOrder(t *testing.T) {
	t.Parallel()

	c := NewFIFOCache(20)
	c.Set(access.Access{Key: 1, Size: 10})
	c.Set(access.Access{Key: 2, Size: 10})

	if !c.Get(access.Access{Key: 1, Size: 10}) {
		t.Fatal("key 1 should still be resident")
	}

	// Admitting key 3 must evict the oldest admission (key 1), not the
	// least-recently-used one (FIFO ignores the Get above).
	c.Set(access.Access{Key: 3, Size: 10})

	if c.Has(1) {
		t.Fatal("key 1 should have been evicted (oldest admission), despite the recent Get")
	}
	if !c.Has(2) || !c.Has(3) {
		t.Fatal("keys 2 and 3 should remain resident")
	}
}

func TestFIFO_OversizedRequestNeverAdmitted(t *testing.T) {
	t.Parallel()

	c := NewFIFOCache(10)
	c.Set(access.Access{Key: 1, Size: 20})

	if c.Has(1) {
		t.Fatal("an object larger than the cache must never be admitted")
	}
}

func TestFIFO_DelRemovesAndFreesSpace(t *testing.T) {
	t.Parallel()

	c := NewFIFOCache(10)
	c.Set(access.Access{Key: 1, Size: 10})
	c.Del(1)

	if c.Has(1) {
		t.Fatal("key 1 should have been removed")
	}
	c.Set(access.Access{Key: 2, Size: 10})
	if !c.Has(2) {
		t.Fatal("space freed by Del should be usable")
	}
}

func TestFIFO_MissRatio(t *testing.T) {
	t.Parallel()

	c := NewFIFOCache(10)
	if c.MissRatio() != 0 {
		t.Fatal("miss ratio before any request must be 0")
	}

	c.Set(access.Access{Key: 1, Size: 10})
	c.Get(access.Access{Key: 1, Size: 10}) // hit
	c.Get(access.Access{Key: 2, Size: 10}) // miss

	if got, want := c.MissRatio(), 0.5; got != want {
		t.Fatalf("MissRatio() = %v, want %v", got, want)
	}
}
