// internal/results/parse.go
package results

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDuplicateRank is returned when two models share a rank.
var ErrDuplicateRank = errors.New("duplicate rank")

// NormalizeReport describes what Normalize changed so callers can log it.
type NormalizeReport struct {
	PercentSuccessRates int `json:"percentSuccessRates"`
}

// Changed reports whether normalization touched any record.
func (r NormalizeReport) Changed() bool {
	return r.PercentSuccessRates > 0
}

// Parse validates, decodes and normalizes a results document.
func Parse(raw []byte) (Document, NormalizeReport, error) {
	if err := ValidateDocument(raw); err != nil {
		return Document{}, NormalizeReport{}, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, NormalizeReport{}, fmt.Errorf("unable to decode results JSON: %w", err)
	}
	if err := checkRanks(doc.Models); err != nil {
		return Document{}, NormalizeReport{}, err
	}
	normalized, report := Normalize(doc)
	return normalized, report, nil
}

// ParseSampling validates and decodes the greedy-vs-temperature comparison file.
func ParseSampling(raw []byte) ([]SamplingComparison, error) {
	if err := ValidateSampling(raw); err != nil {
		return nil, err
	}
	var rows []SamplingComparison
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("unable to decode sampling JSON: %w", err)
	}
	return rows, nil
}

// Normalize returns a copy of doc with every success rate expressed as a fraction.
// Values above 1 are taken to be percentages.
func Normalize(doc Document) (Document, NormalizeReport) {
	var report NormalizeReport
	out := Document{
		LastUpdated: doc.LastUpdated,
		Models:      make([]ModelResult, len(doc.Models)),
	}
	for i, m := range doc.Models {
		if m.SuccessRate > 1 {
			m.SuccessRate = m.SuccessRate / 100
			report.PercentSuccessRates++
		}
		out.Models[i] = m
	}
	return out, report
}

func checkRanks(models []ModelResult) error {
	seen := make(map[int]string, len(models))
	for _, m := range models {
		if prev, ok := seen[m.Rank]; ok {
			return fmt.Errorf("%w %d: %q and %q", ErrDuplicateRank, m.Rank, prev, m.Name)
		}
		seen[m.Rank] = m.Name
	}
	return nil
}
