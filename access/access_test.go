package access

import (
	"bytes"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []Access{
		{Timestamp: 0, Command: Get, Key: 0, Size: 0, TTL: 0, HasTTL: false},
		{Timestamp: 1234567890, Command: Set, Key: 42, Size: 4096, TTL: 60, HasTTL: true},
		{Timestamp: ^uint64(0), Command: Get, Key: ^uint64(0), Size: ^uint32(0), TTL: 0, HasTTL: false},
	}

	for _, want := range cases {
		buf := Encode(want, nil)
		if len(buf) != EncodedSize {
			t.Fatalf("Encode produced %d bytes, want %d", len(buf), EncodedSize)
		}

		got, err := Decode(buf)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got != want {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
		}
	}
}

func TestDecode_ShortBuffer(t *testing.T) {
	t.Parallel()

	_, err := Decode(make([]byte, EncodedSize-1))
	if err == nil {
		t.Fatal("expected error decoding short buffer")
	}
}

func TestDecode_InvalidCommand(t *testing.T) {
	t.Parallel()

	buf := Encode(Access{Command: Get}, nil)
	buf[8] = 2 // neither Get(0) nor Set(1)

	if _, err := Decode(buf); err == nil {
		t.Fatal("expected error decoding invalid command byte")
	}
}

func TestIsValidSelfPopulating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    Access
		want bool
	}{
		{"get with size", Access{Command: Get, Size: 1}, true},
		{"get with zero size", Access{Command: Get, Size: 0}, false},
		{"set with size", Access{Command: Set, Size: 1}, false},
	}

	for _, tt := range tests {
		if got := tt.a.IsValidSelfPopulating(); got != tt.want {
			t.Errorf("%s: IsValidSelfPopulating() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWriteTo(t *testing.T) {
	t.Parallel()

	a := Access{Timestamp: 7, Command: Set, Key: 9, Size: 16, TTL: 30, HasTTL: true}

	var buf bytes.Buffer
	if err := WriteTo(&buf, a); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != a {
		t.Fatalf("got %+v, want %+v", got, a)
	}
}
