// internal/leaderboard/heatmap.go
package leaderboard

import (
	"fmt"
	"sort"

	"github.com/mwiater/evaloop/internal/results"
)

// Bucket is one of the four heatmap colour bands.
type Bucket int

const (
	Red Bucket = iota
	Orange
	Yellow
	Green
)

// Default heatmap normalization range.
const (
	DefaultHeatmapLow  = 60.0
	DefaultHeatmapHigh = 100.0
)

var bucketNames = [...]string{"red", "orange", "yellow", "green"}

var bucketRGBA = [...]string{
	"rgba(239, 68, 68, 0.8)",
	"rgba(245, 158, 11, 0.8)",
	"rgba(251, 191, 36, 0.8)",
	"rgba(16, 185, 129, 0.8)",
}

func (b Bucket) String() string {
	if b < Red || b > Green {
		return "unknown"
	}
	return bucketNames[b]
}

// RGBA returns the CSS background colour for the bucket.
func (b Bucket) RGBA() string {
	if b < Red || b > Green {
		return bucketRGBA[Red]
	}
	return bucketRGBA[b]
}

// ColorFor maps a value onto a bucket using (value-lo)/(hi-lo) against 0.25, 0.5 and 0.75.
// Values outside [lo, hi] are not clamped; they fall into the end buckets.
// When hi <= lo the range is degenerate: values below hi are red, the rest green.
func ColorFor(value, lo, hi float64) Bucket {
	if hi <= lo {
		if value < hi {
			return Red
		}
		return Green
	}
	normalized := (value - lo) / (hi - lo)
	switch {
	case normalized < 0.25:
		return Red
	case normalized < 0.5:
		return Orange
	case normalized < 0.75:
		return Yellow
	default:
		return Green
	}
}

// Canonical category order for heatmap columns.
var CanonicalCategories = []string{"algorithms", "dataStructures", "systemDesign", "debugging"}

// HeatmapCell is one coloured cell.
type HeatmapCell struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Text     string  `json:"text"`
	Bucket   Bucket  `json:"bucket"`
	Color    string  `json:"color"`
	Missing  bool    `json:"missing,omitempty"`
}

// HeatmapRow is one model's row of category cells plus its overall score cell.
type HeatmapRow struct {
	Rank    int           `json:"rank"`
	Name    string        `json:"name"`
	Cells   []HeatmapCell `json:"cells"`
	Overall HeatmapCell   `json:"overall"`
}

// HeatmapColumns returns the category columns present in models: the canonical
// categories first, in order, then any others sorted by name.
func HeatmapColumns(models []results.ModelResult) []string {
	seen := make(map[string]bool)
	for _, m := range models {
		if m.Details == nil {
			continue
		}
		for name := range m.Details.Categories {
			seen[name] = true
		}
	}
	var cols []string
	for _, name := range CanonicalCategories {
		if seen[name] {
			cols = append(cols, name)
			delete(seen, name)
		}
	}
	var extra []string
	for name := range seen {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	return append(cols, extra...)
}

// HeatmapRows builds rows for the first n models. Models without details get no
// category cells; a model missing one category gets an uncoloured N/A cell.
func HeatmapRows(models []results.ModelResult, n int, lo, hi float64) []HeatmapRow {
	top := TopN(models, n)
	cols := HeatmapColumns(top)
	rows := make([]HeatmapRow, 0, len(top))
	for _, m := range top {
		row := HeatmapRow{Rank: m.Rank, Name: m.Name}
		if m.Details != nil {
			for _, col := range cols {
				v, ok := m.Details.Categories[col]
				if !ok {
					row.Cells = append(row.Cells, HeatmapCell{Category: col, Text: NotAvailable, Missing: true})
					continue
				}
				row.Cells = append(row.Cells, newCell(col, v, fmt.Sprintf("%.1f%%", v), lo, hi))
			}
		}
		row.Overall = newCell("overall", m.ASLScore, fmt.Sprintf("%.1f", m.ASLScore), lo, hi)
		rows = append(rows, row)
	}
	return rows
}

func newCell(category string, value float64, text string, lo, hi float64) HeatmapCell {
	b := ColorFor(value, lo, hi)
	return HeatmapCell{
		Category: category,
		Value:    value,
		Text:     text,
		Bucket:   b,
		Color:    b.RGBA(),
	}
}
