package mrc

import (
	"path/filepath"
	"testing"

	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/cache"
	"github.com/IvanBrykalov/kosmo/curve"
)

func TestRunAccurate_ProducesCurveWithinUnitRange(t *testing.T) {
	t.Parallel()

	var accesses []access.Access
	keys := []access.Key{1, 2, 3, 1, 4, 2, 1, 5, 6, 1, 2, 3}
	for i, k := range keys {
		accesses = append(accesses, access.Access{Timestamp: access.Timestamp(i), Command: access.Get, Key: k, Size: 10})
	}
	path := writeTrace(t, accesses)
	outputPath := filepath.Join(t.TempDir(), "curve.csv")

	c, err := RunAccurate(path, 60, cache.Policy{Kind: cache.KindLRU}, outputPath, discardLogger())
	if err != nil {
		t.Fatalf("RunAccurate: %v", err)
	}

	if c.IsEmpty() {
		t.Fatal("expected a non-empty curve")
	}

	c.Each(func(p curve.Point) {
		if p.MissRatio < 0 || p.MissRatio > 1 {
			t.Fatalf("miss ratio %v at size %d out of [0,1]", p.MissRatio, p.Size)
		}
	})
}

func TestSimulateOneSize_ReportsMissRatioAndSize(t *testing.T) {
	t.Parallel()

	accesses := []access.Access{
		{Timestamp: 0, Command: access.Get, Key: 1, Size: 5},
		{Timestamp: 1, Command: access.Get, Key: 1, Size: 5}, // repeat key: a hit under any reasonable policy
		{Timestamp: 2, Command: access.Get, Key: 2, Size: 5},
	}
	path := writeTrace(t, accesses)

	missRatio, size, err := simulateOneSize(path, cache.Policy{Kind: cache.KindLRU}, 100, discardLogger())
	if err != nil {
		t.Fatalf("simulateOneSize: %v", err)
	}

	if size != 100 {
		t.Fatalf("size = %d, want 100 (cache capacity, not occupied bytes)", size)
	}
	if missRatio < 0 || missRatio > 1 {
		t.Fatalf("missRatio = %v, out of [0,1]", missRatio)
	}
}
