package shards

import (
	"testing"

	"github.com/IvanBrykalov/kosmo/access"
)

func TestFixedRate_SampleTracksCounts(t *testing.T) {
	t.Parallel()

	s := NewFixedRate(Modulus) // admit everything
	for i := uint64(0); i < 10; i++ {
		if !s.Sample(access.Access{Key: i}) {
			t.Fatalf("key %d should be admitted at full rate", i)
		}
	}

	if s.TotalCount() != 10 || s.SampledCount() != 10 {
		t.Fatalf("counts = (%d,%d), want (10,10)", s.TotalCount(), s.SampledCount())
	}
}

func TestFixedRate_ZeroThresholdAdmitsNothing(t *testing.T) {
	t.Parallel()

	s := NewFixedRate(0)
	for i := uint64(0); i < 20; i++ {
		if s.Sample(access.Access{Key: i}) {
			t.Fatalf("key %d should never be admitted at globalT=0", i)
		}
	}
	if s.SampledCount() != 0 {
		t.Fatalf("SampledCount() = %d, want 0", s.SampledCount())
	}
}

func TestFixedRate_ScaleUnscaleRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewFixedRate(Modulus / 2) // rate = 0.5
	scaled := s.Scale(1000)
	if got, want := scaled, uint64(500); got != want {
		t.Fatalf("Scale(1000) = %d, want %d", got, want)
	}
	if got, want := s.Unscale(scaled), uint64(1000); got != want {
		t.Fatalf("Unscale(Scale(1000)) = %d, want %d", got, want)
	}
}

func TestFixedRate_NeverRemoves(t *testing.T) {
	t.Parallel()

	s := NewFixedRate(Modulus)
	s.Sample(access.Access{Key: 1})

	if _, ok := s.Removal(); ok {
		t.Fatal("FixedRate.Removal() must never fire")
	}
}

func TestFixedSize_ShrinksWhenOverCapacity(t *testing.T) {
	t.Parallel()

	s := NewFixedSize(Modulus, 2) // admit all keys, cap at 2 resident

	admitted := 0
	for i := uint64(0); i < 200 && admitted < 3; i++ {
		if s.Sample(access.Access{Key: i}) {
			admitted++
		}
	}

	before := s.GlobalT()
	key, ok := s.Removal()
	if !ok {
		t.Fatal("expected a removal once sMax is exceeded")
	}
	_ = key
	if s.GlobalT() >= before {
		t.Fatalf("GlobalT() should shrink after removal: before=%d after=%d", before, s.GlobalT())
	}
}

func TestFixedSize_NoRemovalUnderCapacity(t *testing.T) {
	t.Parallel()

	s := NewFixedSize(Modulus, 10)
	s.Sample(access.Access{Key: 1})

	if _, ok := s.Removal(); ok {
		t.Fatal("Removal() should not fire while under sMax")
	}
}

func TestFixedSize_DuplicateKeyNotDoubleCounted(t *testing.T) {
	t.Parallel()

	s := NewFixedSize(Modulus, 1000)
	s.Sample(access.Access{Key: 7})
	s.Sample(access.Access{Key: 7})
	s.Sample(access.Access{Key: 7})

	if s.entries.Len() != 1 {
		t.Fatalf("entries.Len() = %d, want 1 (duplicate key must not add a second entry)", s.entries.Len())
	}
	if s.SampledCount() != 3 {
		t.Fatalf("SampledCount() = %d, want 3 (every admitted access still counts)", s.SampledCount())
	}
}
