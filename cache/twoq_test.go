package cache

import (
	"testing"

	"github.com/IvanBrykalov/kosmo/access"
)

func TestTwoQ_FirstTimeAdmissionGoesToAin(t *testing.T) {
	t.Parallel()

	c := NewTwoQCache(100, 0.25, 0.5)
	c.Set(access.Access{Key: 1, Size: 10})

	ref := c.(*shell).e.(*twoQEngine).index[1]
	if ref.kind != queueAin {
		t.Fatalf("first admission should land in Ain, got kind %v", ref.kind)
	}
}

func TestTwoQ_HitOnAoutPromotesToAm(t *testing.T) {
	t.Parallel()

	// Tiny Ain so the first object is promoted to Aout almost immediately.
	c := NewTwoQCache(100, 0.01, 0.9)
	e := c.(*shell).e.(*twoQEngine)

	c.Set(access.Access{Key: 1, Size: 10})
	c.Set(access.Access{Key: 2, Size: 10}) // forces key 1 out of the tiny Ain into Aout

	if e.index[1].kind != queueAout {
		t.Fatalf("key 1 should have been demoted to Aout, got kind %v", e.index[1].kind)
	}

	c.Get(access.Access{Key: 1, Size: 10})

	if e.index[1].kind != queueAm {
		t.Fatalf("a hit on an Aout object should promote it to Am, got kind %v", e.index[1].kind)
	}
}

func TestTwoQ_AmHitStaysInAmAndMovesToFront(t *testing.T) {
	t.Parallel()

	c := NewTwoQCache(100, 0.01, 0.9)
	e := c.(*shell).e.(*twoQEngine)

	c.Set(access.Access{Key: 1, Size: 10})
	c.Set(access.Access{Key: 2, Size: 10})
	c.Get(access.Access{Key: 1, Size: 10}) // Aout -> Am

	c.Get(access.Access{Key: 1, Size: 10}) // Am -> Am, still present

	if e.index[1].kind != queueAm {
		t.Fatalf("repeated hits on an Am object should keep it in Am, got kind %v", e.index[1].kind)
	}
	if !c.Has(1) {
		t.Fatal("key 1 should still be resident")
	}
}

func TestTwoQ_DelRemovesFromWhicheverQueue(t *testing.T) {
	t.Parallel()

	c := NewTwoQCache(100, 0.25, 0.5)
	c.Set(access.Access{Key: 1, Size: 10})
	c.Del(1)

	if c.Has(1) {
		t.Fatal("key 1 should have been removed")
	}
}
