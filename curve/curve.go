// Package curve builds and queries miss-ratio curves: sorted size -> miss
// ratio points derived from a reuse-distance histogram, with CSV
// persistence and mean-absolute-error comparison between two curves.
package curve

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/IvanBrykalov/kosmo/histogram"
	"github.com/IvanBrykalov/kosmo/shards"
)

// Point is one size -> miss-ratio sample.
type Point struct {
	Size      uint64
	MissRatio float64
}

// Curve is a sorted-by-size set of Points.
type Curve struct {
	points []Point // kept sorted ascending by Size; unique by Size
}

// New returns an empty curve.
func New() *Curve { return &Curve{} }

// Len returns the number of points on the curve.
func (c *Curve) Len() int { return len(c.points) }

// IsEmpty reports whether the curve has no points.
func (c *Curve) IsEmpty() bool { return len(c.points) == 0 }

// FromHistogram builds a curve directly from raw histogram mass: the miss
// ratio at each observed size is 1 minus the cumulative fraction of all
// recorded reuse distances at or below that size.
func FromHistogram(h *histogram.Histogram) *Curve {
	c := New()
	total := h.Total()
	var current float64

	h.Each(func(size uint64, count float64) {
		current += count
		c.points = append(c.points, Point{Size: size, MissRatio: 1 - current/total})
	})

	return c
}

// FromCorrectedHistogram builds a curve the same way as FromHistogram, but
// folds the SHARDS statistical correction into the cumulative count as it
// walks the buckets: a positive correction is absorbed into the very first
// bucket that can hold it, a negative one is absorbed by subtracting from
// cumulative mass until exhausted.
func FromCorrectedHistogram(h *histogram.Histogram, s shards.Shards) *Curve {
	c := New()

	correction := float64(s.Correction())
	total := h.CorrectedTotal(s)
	var current float64

	h.Each(func(size uint64, count float64) {
		current += count

		switch {
		case correction > 0 || absF64(correction) < current:
			current += correction
			correction = 0
		case correction < 0:
			correction += current
			current = 0
		}

		c.points = append(c.points, Point{Size: size, MissRatio: 1 - current/total})
	})

	return c
}

func absF64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// MaxSize returns the largest size on the curve, or 0 if empty.
func (c *Curve) MaxSize() uint64 {
	if len(c.points) == 0 {
		return 0
	}
	return c.points[len(c.points)-1].Size
}

// GetMissRatio returns the miss ratio at size: the miss ratio of the
// greatest point whose size is <= the requested size, or 1.0 if no such
// point exists (including when the curve is empty).
func (c *Curve) GetMissRatio(size uint64) float64 {
	if len(c.points) == 0 {
		return 1.0
	}

	// i is the index of the first point with Size >= size.
	i := sort.Search(len(c.points), func(i int) bool { return c.points[i].Size >= size })

	if i < len(c.points) && c.points[i].Size == size {
		return c.points[i].MissRatio
	}
	if i == 0 {
		// No point at or below size.
		return 1.0
	}
	return c.points[i-1].MissRatio
}

// Add inserts or overwrites the point at size.
func (c *Curve) Add(size uint64, missRatio float64) {
	i := sort.Search(len(c.points), func(i int) bool { return c.points[i].Size >= size })
	if i < len(c.points) && c.points[i].Size == size {
		c.points[i].MissRatio = missRatio
		return
	}
	c.points = append(c.points, Point{})
	copy(c.points[i+1:], c.points[i:])
	c.points[i] = Point{Size: size, MissRatio: missRatio}
}

// MAE computes the mean absolute error between c and other, sampled at every
// multiple of step_size from step_size up to max(c.MaxSize(), other.MaxSize())
// plus step_size, where step_size is that max divided by 100 (rounded down).
// It returns 0 when that max is below 100.
func (c *Curve) MAE(other *Curve) float64 {
	const numPoints = 100

	maxSize := c.MaxSize()
	if other.MaxSize() > maxSize {
		maxSize = other.MaxSize()
	}

	stepSize := maxSize / numPoints
	if stepSize == 0 {
		return 0
	}

	var total float64
	var samples int
	for size := stepSize; size <= maxSize+stepSize; size += stepSize {
		total += absF64(c.GetMissRatio(size) - other.GetMissRatio(size))
		samples++
	}

	return total / float64(samples)
}

// Each calls fn once per point, in ascending size order.
func (c *Curve) Each(fn func(Point)) {
	for _, p := range c.points {
		fn(p)
	}
}

// WriteCSV writes the curve as "size,miss_ratio" rows to w.
func (c *Curve) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	for _, p := range c.points {
		row := []string{
			strconv.FormatUint(p.Size, 10),
			strconv.FormatFloat(p.MissRatio, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ToFile writes the curve to path as CSV.
func (c *Curve) ToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.WriteCSV(f)
}

// ReadCSV parses "size,miss_ratio" rows from r into a new curve.
func ReadCSV(r io.Reader) (*Curve, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	c := New()
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		size, err := strconv.ParseUint(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("curve: invalid point size %q: %w", row[0], err)
		}
		missRatio, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("curve: invalid point miss ratio %q: %w", row[1], err)
		}

		c.Add(size, missRatio)
	}

	return c, nil
}

// FromFile reads a curve previously written by ToFile.
func FromFile(path string) (*Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}
