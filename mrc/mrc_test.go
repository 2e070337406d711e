package mrc

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/cache"
	"github.com/IvanBrykalov/kosmo/kosmo"
)

func TestParseRunType(t *testing.T) {
	t.Parallel()

	if rt, err := ParseRunType("memory"); err != nil || rt != RunMemory {
		t.Fatalf("ParseRunType(memory) = %v, %v", rt, err)
	}
	if rt, err := ParseRunType("throughput"); err != nil || rt != RunThroughput {
		t.Fatalf("ParseRunType(throughput) = %v, %v", rt, err)
	}
	if _, err := ParseRunType("bogus"); err == nil {
		t.Fatal("expected an error for an unrecognized run-type")
	}
}

func TestBuildAlgorithm_RejectsBothPoliciesSet(t *testing.T) {
	t.Parallel()

	kp := kosmo.Policy{Kind: kosmo.PolicyLRU}
	cp := cache.Policy{Kind: cache.KindLRU}
	_, err := BuildAlgorithm(Config{KosmoPolicy: &kp, MinisimPolicy: &cp})

	var mErr *Error
	if !errors.As(err, &mErr) || mErr.Kind != ConfigConflict {
		t.Fatalf("expected a ConfigConflict *Error, got %v", err)
	}
}

func TestBuildAlgorithm_RejectsNeitherPolicySet(t *testing.T) {
	t.Parallel()

	_, err := BuildAlgorithm(Config{})

	var mErr *Error
	if !errors.As(err, &mErr) || mErr.Kind != ConfigConflict {
		t.Fatalf("expected a ConfigConflict *Error, got %v", err)
	}
}

func TestBuildAlgorithm_RejectsShardsSWithoutShardsT(t *testing.T) {
	t.Parallel()

	kp := kosmo.Policy{Kind: kosmo.PolicyLRU}
	s := uint32(1000)
	_, err := BuildAlgorithm(Config{KosmoPolicy: &kp, ShardsS: &s})

	var mErr *Error
	if !errors.As(err, &mErr) || mErr.Kind != ConfigConflict {
		t.Fatalf("expected a ConfigConflict *Error, got %v", err)
	}
}

func TestBuildAlgorithm_BuildsKosmoDriver(t *testing.T) {
	t.Parallel()

	kp := kosmo.Policy{Kind: kosmo.PolicyLRU}
	algo, err := BuildAlgorithm(Config{KosmoPolicy: &kp})
	if err != nil {
		t.Fatalf("BuildAlgorithm: %v", err)
	}
	if algo == nil {
		t.Fatal("expected a non-nil algorithm")
	}
}

func TestBuildAlgorithm_BuildsMinisimDriver(t *testing.T) {
	t.Parallel()

	cp := cache.Policy{Kind: cache.KindLRU}
	algo, err := BuildAlgorithm(Config{MinisimPolicy: &cp, WSS: 1000})
	if err != nil {
		t.Fatalf("BuildAlgorithm: %v", err)
	}
	if algo == nil {
		t.Fatal("expected a non-nil algorithm")
	}
}

func TestBuildAlgorithm_ShardsTAloneSelectsFixedRate(t *testing.T) {
	t.Parallel()

	kp := kosmo.Policy{Kind: kosmo.PolicyLRU}
	tVal := uint64(1000)
	algo, err := BuildAlgorithm(Config{KosmoPolicy: &kp, ShardsT: &tVal})
	if err != nil {
		t.Fatalf("BuildAlgorithm: %v", err)
	}
	if algo == nil {
		t.Fatal("expected a non-nil algorithm")
	}
}

func TestRun_EndToEndThroughputRunReturnsCurve(t *testing.T) {
	t.Parallel()

	var accesses []access.Access
	keys := []access.Key{1, 2, 3, 1, 2, 4, 1, 5, 6, 1}
	for i, k := range keys {
		accesses = append(accesses, access.Access{Timestamp: access.Timestamp(i), Command: access.Get, Key: k, Size: 10})
	}
	path := writeTrace(t, accesses)
	outputPath := filepath.Join(t.TempDir(), "curve.csv")

	kp := kosmo.Policy{Kind: kosmo.PolicyLRU}
	cfg := Config{
		Path:        path,
		WSS:         100,
		KosmoPolicy: &kp,
		Output:      outputPath,
		RunType:     RunThroughput,
	}

	c, stats, err := Run(cfg, discardLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if c.IsEmpty() {
		t.Fatal("expected a non-empty curve")
	}
	if stats.HasMAE {
		t.Fatal("did not configure an accurate path, expected HasMAE = false")
	}
}
