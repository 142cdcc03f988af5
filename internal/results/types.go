// internal/results/types.go
// Package results defines the benchmark results document and its normalization rules.
package results

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Fraction is a success rate held in the canonical [0,1] unit.
// Display code calls Percent rather than multiplying by hand.
type Fraction float64

// Percent returns the fraction scaled to 0-100.
func (f Fraction) Percent() float64 {
	return float64(f) * 100
}

// Float returns the raw fraction.
func (f Fraction) Float() float64 {
	return float64(f)
}

// Document is the top-level results file.
type Document struct {
	LastUpdated string        `json:"lastUpdated"`
	Models      []ModelResult `json:"models"`
}

// ModelResult is one evaluated model on the leaderboard.
type ModelResult struct {
	Rank                           int      `json:"rank"`
	Name                           string   `json:"name"`
	Organization                   string   `json:"organization"`
	ASLScore                       float64  `json:"aslScore"`
	SuccessRate                    Fraction `json:"successRate"`
	AvgTime                        *float64 `json:"avgTime,omitempty"`
	RobustnessScore                *float64 `json:"robustnessScore,omitempty"`
	Size                           *float64 `json:"size,omitempty"`
	TestDate                       string   `json:"testDate,omitempty"`
	Trend                          *string  `json:"trend,omitempty"`
	RankChange                     *Delta   `json:"rankChange,omitempty"`
	RankByRobustnessChange         *Delta   `json:"rankByRobustnessChange,omitempty"`
	RankBySemanticSimilarityChange *Delta   `json:"rankBySemanticSimilarityChange,omitempty"`
	Details                        *Details `json:"details,omitempty"`
	Link                           string   `json:"link,omitempty"`
	ModelID                        string   `json:"model_id,omitempty"`
}

// Details carries the optional per-test breakdown of a model.
type Details struct {
	TotalTests int                `json:"totalTests"`
	Passed     int                `json:"passed"`
	Failed     int                `json:"failed"`
	Categories map[string]float64 `json:"categories,omitempty"`
}

// SamplingComparison is one row of the optional greedy-vs-temperature file.
type SamplingComparison struct {
	TaskID      TaskID  `json:"task_id"`
	Greedy      float64 `json:"greedy"`
	Temperature float64 `json:"temperature"`
}

// TaskID accepts both numeric and string task identifiers.
type TaskID string

// UnmarshalJSON implements json.Unmarshaler.
func (t *TaskID) UnmarshalJSON(data []byte) error {
	s, err := decodeLoose(data)
	if err != nil {
		return fmt.Errorf("task_id: %w", err)
	}
	*t = TaskID(s)
	return nil
}

// Delta is a signed rank movement as published: "+2", "-1", "=" or a bare number.
// Numbers in the source file are kept in their printed form so "-1" and -1 read the same.
type Delta string

// UnmarshalJSON implements json.Unmarshaler.
func (d *Delta) UnmarshalJSON(data []byte) error {
	s, err := decodeLoose(data)
	if err != nil {
		return fmt.Errorf("rank change: %w", err)
	}
	*d = Delta(s)
	return nil
}

// decodeLoose reads a JSON string or number as its string form.
func decodeLoose(data []byte) (string, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return "", nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", fmt.Errorf("must be a string or number: %w", err)
	}
	if f, err := n.Float64(); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10), nil
	}
	return n.String(), nil
}

// Float is a small helper for building optional numeric fields.
func Float(v float64) *float64 {
	return &v
}

// String is a small helper for building optional string fields.
func String(v string) *string {
	return &v
}

// Change is a small helper for building optional rank movements.
func Change(v string) *Delta {
	d := Delta(v)
	return &d
}

// Value returns the value behind an optional float and whether it was present.
func Value(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
