package cache

import "testing"

func TestParsePolicy_BareNames(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in   string
		kind Kind
	}{
		{"lfu", KindLFU},
		{"fifo", KindFIFO},
		{"lru", KindLRU},
	} {
		p, err := ParsePolicy(tt.in)
		if err != nil {
			t.Fatalf("ParsePolicy(%q): %v", tt.in, err)
		}
		if p.Kind != tt.kind {
			t.Errorf("ParsePolicy(%q).Kind = %v, want %v", tt.in, p.Kind, tt.kind)
		}
	}
}

func TestParsePolicy_TwoQ(t *testing.T) {
	t.Parallel()

	p, err := ParsePolicy("2q-0.25-0.5")
	if err != nil {
		t.Fatalf("ParsePolicy: %v", err)
	}
	if p.Kind != KindTwoQ || p.Kin != 0.25 || p.Kout != 0.5 {
		t.Fatalf("got %+v, want Kind=TwoQ Kin=0.25 Kout=0.5", p)
	}
}

func TestParsePolicy_LRFU(t *testing.T) {
	t.Parallel()

	p, err := ParsePolicy("lrfu-2-0.5")
	if err != nil {
		t.Fatalf("ParsePolicy: %v", err)
	}
	if p.Kind != KindLRFU || p.P != 2 || p.Lambda != 0.5 {
		t.Fatalf("got %+v, want Kind=LRFU P=2 Lambda=0.5", p)
	}
}

func TestParsePolicy_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "bogus", "2q-0.25", "lrfu-x-0.5"} {
		if _, err := ParsePolicy(in); err == nil {
			t.Errorf("ParsePolicy(%q) should have failed", in)
		}
	}
}

func TestPolicy_NewCacheDispatchesToRightConstructor(t *testing.T) {
	t.Parallel()

	for _, p := range []Policy{
		{Kind: KindLFU},
		{Kind: KindFIFO},
		{Kind: KindLRU},
		{Kind: KindTwoQ, Kin: 0.25, Kout: 0.5},
		{Kind: KindLRFU, P: 2, Lambda: 0.5},
	} {
		c := p.NewCache(100)
		if c.Size() != 100 {
			t.Errorf("%s: Size() = %d, want 100", p, c.Size())
		}
	}
}
