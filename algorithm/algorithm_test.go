package algorithm

import (
	"testing"

	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/curve"
)

type fakeAlgorithm struct {
	processed   []access.Access
	shardsOK    bool
	shardsCalls int
}

func (f *fakeAlgorithm) Handle(a access.Access)        { Handle(f, a) }
func (f *fakeAlgorithm) Process(a access.Access)       { f.processed = append(f.processed, a) }
func (f *fakeAlgorithm) Remove(key access.Key)         {}
func (f *fakeAlgorithm) Clean()                        {}
func (f *fakeAlgorithm) Resize(size uint64)            {}
func (f *fakeAlgorithm) Curve() *curve.Curve { return curve.New() }
func (f *fakeAlgorithm) VerifyShards(a access.Access) bool {
	f.shardsCalls++
	return f.shardsOK
}

func TestHandle_RejectsInvalidSelfPopulating(t *testing.T) {
	t.Parallel()

	f := &fakeAlgorithm{shardsOK: true}
	f.Handle(access.Access{Command: access.Get, Size: 0}) // zero-size GET never populates

	if len(f.processed) != 0 {
		t.Fatalf("Process should not run for an invalid self-populating access")
	}
}

func TestHandle_RejectsWhenShardsRefuses(t *testing.T) {
	t.Parallel()

	f := &fakeAlgorithm{shardsOK: false}
	f.Handle(access.Access{Command: access.Get, Size: 10, Key: 1})

	if f.shardsCalls != 1 {
		t.Fatalf("VerifyShards should be consulted exactly once, got %d calls", f.shardsCalls)
	}
	if len(f.processed) != 0 {
		t.Fatalf("Process should not run when VerifyShards rejects the access")
	}
}

func TestHandle_ProcessesValidSampledAccess(t *testing.T) {
	t.Parallel()

	f := &fakeAlgorithm{shardsOK: true}
	a := access.Access{Command: access.Get, Size: 10, Key: 1}
	f.Handle(a)

	if len(f.processed) != 1 || f.processed[0] != a {
		t.Fatalf("Process should run exactly once with the original access")
	}
}

func TestVerifyAccess(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a    access.Access
		want bool
	}{
		{"get with size", access.Access{Command: access.Get, Size: 1}, true},
		{"get with zero size", access.Access{Command: access.Get, Size: 0}, false},
		{"set", access.Access{Command: access.Set, Size: 1}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := VerifyAccess(tc.a); got != tc.want {
				t.Fatalf("VerifyAccess(%+v) = %v, want %v", tc.a, got, tc.want)
			}
		})
	}
}

func TestObject_UpdateAndEqual(t *testing.T) {
	t.Parallel()

	a := access.Access{Timestamp: 1, Key: 5, Size: 100}
	o := NewObject(a)

	if o.Key != 5 || o.Size != 100 || o.Timestamp != 1 {
		t.Fatalf("NewObject(%+v) = %+v, fields mismatch", a, o)
	}

	o.Update(access.Access{Timestamp: 9, Key: 5, Size: 100})
	if o.Timestamp != 9 {
		t.Fatalf("Update should advance Timestamp, got %d", o.Timestamp)
	}

	if !o.Equal(Object{Key: 5}) {
		t.Fatal("Equal should compare by Key only")
	}
	if o.Equal(Object{Key: 6}) {
		t.Fatal("Equal should be false for differing keys")
	}
}
