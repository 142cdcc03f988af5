// internal/histogram/histogram.go
// Package histogram partitions numeric samples into labelled bins.
package histogram

import (
	"fmt"
	"math"
	"strings"
)

// Strategy names accepted by ByName.
const (
	FixedCountName   = "fixed-count"
	IntegerWidthName = "integer-width"
)

// Bins is a labelled count per interval. Labels and Counts always have the same length.
type Bins struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// Total returns the number of values counted across all bins.
func (b Bins) Total() int {
	total := 0
	for _, c := range b.Counts {
		total += c
	}
	return total
}

// Len returns the number of bins.
func (b Bins) Len() int {
	return len(b.Counts)
}

// Binner partitions values into bins.
type Binner interface {
	Bin(values []float64) Bins
	Name() string
}

// FixedCount splits [min, max] into Bins equal-width intervals.
// Every interval is half-open except the last, which is closed at max.
type FixedCount struct {
	Bins int
}

// Name implements Binner.
func (FixedCount) Name() string { return FixedCountName }

// Bin implements Binner.
func (f FixedCount) Bin(values []float64) Bins {
	if len(values) == 0 || f.Bins <= 0 {
		return Bins{Labels: []string{}, Counts: []int{}}
	}
	lo, hi := extent(values)
	width := (hi - lo) / float64(f.Bins)

	out := Bins{
		Labels: make([]string, f.Bins),
		Counts: make([]int, f.Bins),
	}
	last := f.Bins - 1
	for i := 0; i < f.Bins; i++ {
		start := lo + float64(i)*width
		end := start + width
		if i == last {
			end = hi
		}
		out.Labels[i] = fmt.Sprintf("%.0f-%.0f", start, end)
	}
	for _, v := range values {
		out.Counts[fixedIndex(v, lo, width, f.Bins)]++
	}
	return out
}

// fixedIndex finds the bin holding v using the same boundaries the labels use.
func fixedIndex(v, lo, width float64, n int) int {
	last := n - 1
	if width == 0 {
		return last
	}
	for i := 0; i < last; i++ {
		start := lo + float64(i)*width
		end := lo + float64(i+1)*width
		if v >= start && v < end {
			return i
		}
	}
	return last
}

// IntegerWidth uses unit-wide bins from floor(min) up to ceil(max).
// Every interval is half-open except the last, which is closed.
type IntegerWidth struct{}

// Name implements Binner.
func (IntegerWidth) Name() string { return IntegerWidthName }

// Bin implements Binner.
func (IntegerWidth) Bin(values []float64) Bins {
	if len(values) == 0 {
		return Bins{Labels: []string{}, Counts: []int{}}
	}
	lo, hi := extent(values)
	start := int(math.Floor(lo))
	stop := int(math.Ceil(hi))
	n := stop - start
	if n < 1 {
		n = 1
	}

	out := Bins{
		Labels: make([]string, n),
		Counts: make([]int, n),
	}
	for i := 0; i < n; i++ {
		out.Labels[i] = fmt.Sprintf("%d-%d", start+i, start+i+1)
	}
	for _, v := range values {
		idx := int(math.Floor(v)) - start
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		out.Counts[idx]++
	}
	return out
}

// ByName returns the binner for a configured strategy name.
func ByName(name string, bins int) (Binner, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FixedCountName:
		if bins <= 0 {
			return nil, fmt.Errorf("fixed-count histogram needs a positive bin count, got %d", bins)
		}
		return FixedCount{Bins: bins}, nil
	case IntegerWidthName:
		return IntegerWidth{}, nil
	default:
		return nil, fmt.Errorf("unknown histogram strategy %q", name)
	}
}

func extent(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
