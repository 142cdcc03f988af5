// internal/stats/stats.go
// Package stats reduces result records to descriptive statistics and per-organization aggregates.
package stats

import (
	"math"
	"sort"
)

// Summary holds descriptive statistics for a numeric sample.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Compute returns mean, median, population standard deviation and extrema.
// An empty sample yields the zero Summary.
func Compute(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	meanVal := mean(values)
	return Summary{
		Count:  len(values),
		Mean:   meanVal,
		Median: median(values),
		StdDev: stddev(values, meanVal),
		Min:    minValue(values),
		Max:    maxValue(values),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stddev divides by N, not N-1.
func stddev(values []float64, meanVal float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		diff := v - meanVal
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values)))
}

func minValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	minVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
	}
	return minVal
}

func maxValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	maxVal := values[0]
	for _, v := range values[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}
