// internal/leaderboard/filter.go
package leaderboard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mwiater/evaloop/internal/results"
)

// Sort keys.
const (
	SortRank    = "rank"
	SortASL     = "asl"
	SortSuccess = "success"
)

// SortKeys lists the keys Sort accepts, in the order the browser cycles them.
var SortKeys = []string{SortASL, SortSuccess, SortRank}

// Filter narrows the visible models. Zero values match everything.
type Filter struct {
	Organization string
	MinScore     *float64
	MaxScore     *float64
}

// ParseScoreRange reads a "min-max" ASL range. Both ends are inclusive.
func ParseScoreRange(text string) (float64, float64, error) {
	parts := strings.SplitN(strings.TrimSpace(text), "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("score range %q must look like min-max", text)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range minimum %q: %w", parts[0], err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range maximum %q: %w", parts[1], err)
	}
	if hi < lo {
		return 0, 0, fmt.Errorf("score range %q is inverted", text)
	}
	return lo, hi, nil
}

// Match reports whether m passes the filter.
func (f Filter) Match(m results.ModelResult) bool {
	if f.Organization != "" && m.Organization != f.Organization {
		return false
	}
	if f.MinScore != nil && m.ASLScore < *f.MinScore {
		return false
	}
	if f.MaxScore != nil && m.ASLScore > *f.MaxScore {
		return false
	}
	return true
}

// Apply returns the models that pass the filter, in their original order.
func (f Filter) Apply(models []results.ModelResult) []results.ModelResult {
	out := make([]results.ModelResult, 0, len(models))
	for _, m := range models {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// Sort returns a sorted copy. Ties fall back to rank order.
func Sort(models []results.ModelResult, key string, descending bool) ([]results.ModelResult, error) {
	var value func(results.ModelResult) float64
	switch strings.ToLower(strings.TrimSpace(key)) {
	case SortASL, "":
		value = func(m results.ModelResult) float64 { return m.ASLScore }
	case SortSuccess:
		value = func(m results.ModelResult) float64 { return m.SuccessRate.Float() }
	case SortRank:
		value = func(m results.ModelResult) float64 { return float64(m.Rank) }
	default:
		return nil, fmt.Errorf("unknown sort key %q", key)
	}

	out := append([]results.ModelResult(nil), models...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := value(out[i]), value(out[j])
		if a == b {
			return out[i].Rank < out[j].Rank
		}
		if descending {
			return a > b
		}
		return a < b
	})
	return out, nil
}

// ByRank returns a copy ordered by rank ascending.
func ByRank(models []results.ModelResult) []results.ModelResult {
	out, _ := Sort(models, SortRank, false)
	return out
}

// TopN returns at most n models from the front of the slice.
func TopN(models []results.ModelResult, n int) []results.ModelResult {
	if n < 0 || n >= len(models) {
		return models
	}
	return models[:n]
}

// Organizations lists distinct organization strings in first-seen order, skipping blanks.
func Organizations(models []results.ModelResult) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range models {
		if m.Organization == "" || seen[m.Organization] {
			continue
		}
		seen[m.Organization] = true
		out = append(out, m.Organization)
	}
	return out
}

// FindByRank returns the model holding a rank.
func FindByRank(models []results.ModelResult, rank int) (results.ModelResult, bool) {
	for _, m := range models {
		if m.Rank == rank {
			return m, true
		}
	}
	return results.ModelResult{}, false
}
