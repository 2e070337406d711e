package cache

import (
	"testing"

	"github.com/IvanBrykalov/kosmo/access"
)

func TestLRU_GetPromotesAwayFromEviction(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(20)
	c.Set(access.Access{Key: 1, Size: 10})
	c.Set(access.Access{Key: 2, Size: 10})
	c.Get(access.Access{Key: 1, Size: 10}) // promote 1 to MRU

	c.Set(access.Access{Key: 3, Size: 10}) // evicts LRU, which is now 2

	if c.Has(2) {
		t.Fatal("key 2 should have been evicted as the least recently used")
	}
	if !c.Has(1) || !c.Has(3) {
		t.Fatal("keys 1 and 3 should remain resident")
	}
}

func TestLRU_ResizeEvictsDownToNewCapacity(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(30)
	c.Set(access.Access{Key: 1, Size: 10})
	c.Set(access.Access{Key: 2, Size: 10})
	c.Set(access.Access{Key: 3, Size: 10})

	c.Resize(10)

	if c.Size() != 10 {
		t.Fatalf("Size() = %d, want 10", c.Size())
	}
	count := 0
	for _, k := range []access.Key{1, 2, 3} {
		if c.Has(k) {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 resident key after shrinking to 10, got %d", count)
	}
}

func TestLRU_RescaleMultipliesCounters(t *testing.T) {
	t.Parallel()

	c := NewLRUCache(10)
	c.Set(access.Access{Key: 1, Size: 10})
	c.Get(access.Access{Key: 1, Size: 10})
	c.Get(access.Access{Key: 2, Size: 10})

	before := c.MissRatio()
	c.Rescale(2.0)
	after := c.MissRatio()

	if before != after {
		t.Fatalf("MissRatio should be scale-invariant, got %v before and %v after", before, after)
	}
}
