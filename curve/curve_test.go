package curve

import (
	"bytes"
	"testing"
)

func TestGetMissRatio_FloorLookup(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(100, 0.8)
	c.Add(200, 0.5)
	c.Add(300, 0.1)

	cases := []struct {
		size uint64
		want float64
	}{
		{50, 1.0},  // before first point
		{100, 0.8}, // exact match
		{150, 0.8}, // floor of 100
		{300, 0.1}, // exact last point
		{500, 0.1}, // past the last point, holds
	}

	for _, tt := range cases {
		if got := c.GetMissRatio(tt.size); got != tt.want {
			t.Errorf("GetMissRatio(%d) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestGetMissRatio_EmptyCurve(t *testing.T) {
	t.Parallel()

	c := New()
	if got := c.GetMissRatio(1000); got != 1.0 {
		t.Fatalf("GetMissRatio on empty curve = %v, want 1.0", got)
	}
}

func TestMAE_IdenticalCurvesIsZero(t *testing.T) {
	t.Parallel()

	a := New()
	a.Add(1000, 0.5)
	a.Add(2000, 0.2)

	b := New()
	b.Add(1000, 0.5)
	b.Add(2000, 0.2)

	if got := a.MAE(b); got != 0 {
		t.Fatalf("MAE between identical curves = %v, want 0", got)
	}
}

func TestMAE_ConstantOffset(t *testing.T) {
	t.Parallel()

	a := New()
	a.Add(0, 0.5)
	a.Add(1000, 0.5)

	b := New()
	b.Add(0, 0.6)
	b.Add(1000, 0.6)

	got := a.MAE(b)
	if diff := got - 0.1; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("MAE() = %v, want ~0.1", got)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(10, 0.9)
	c.Add(20, 0.4)

	var buf bytes.Buffer
	if err := c.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if got.Len() != c.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), c.Len())
	}
	for _, size := range []uint64{10, 20} {
		if got.GetMissRatio(size) != c.GetMissRatio(size) {
			t.Errorf("mismatch at size %d", size)
		}
	}
}

func TestAdd_OverwritesExistingSize(t *testing.T) {
	t.Parallel()

	c := New()
	c.Add(100, 0.5)
	c.Add(100, 0.9)

	if got := c.GetMissRatio(100); got != 0.9 {
		t.Fatalf("GetMissRatio(100) = %v, want 0.9 (Add must overwrite)", got)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
}
