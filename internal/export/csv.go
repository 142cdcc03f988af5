// internal/export/csv.go
// Package export serialises result records to CSV, JSON and a zip bundle.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mwiater/evaloop/internal/results"
)

// Field is one CSV column. Value returns a string, a number, or nil for an empty cell.
type Field struct {
	Name  string
	Value func(results.ModelResult) any
}

// SummaryFields is the column set of the summary CSV.
var SummaryFields = []Field{
	{Name: "rank", Value: func(m results.ModelResult) any { return m.Rank }},
	{Name: "name", Value: func(m results.ModelResult) any { return m.Name }},
	{Name: "organization", Value: func(m results.ModelResult) any { return m.Organization }},
	{Name: "asl_score", Value: func(m results.ModelResult) any { return m.ASLScore }},
	{Name: "success_rate", Value: func(m results.ModelResult) any { return m.SuccessRate.Float() }},
	{Name: "avg_time", Value: func(m results.ModelResult) any { return optional(m.AvgTime) }},
	{Name: "robustness_score", Value: func(m results.ModelResult) any { return optional(m.RobustnessScore) }},
}

// LeaderboardFields is the column set of the leaderboard CSV.
var LeaderboardFields = []Field{
	{Name: "Rank", Value: func(m results.ModelResult) any { return m.Rank }},
	{Name: "Model", Value: func(m results.ModelResult) any { return m.Name }},
	{Name: "Organization", Value: func(m results.ModelResult) any { return m.Organization }},
	{Name: "ASL Semantic", Value: func(m results.ModelResult) any { return fmt.Sprintf("%.3f", m.ASLScore) }},
	{Name: "Pass Rate", Value: func(m results.ModelResult) any { return fmt.Sprintf("%.1f", m.SuccessRate.Percent()) }},
}

func optional(v *float64) any {
	if val, ok := results.Value(v); ok {
		return val
	}
	return nil
}

// ToCSV writes a header row and one row per model, joined with "\n".
// String values containing a comma are wrapped in double quotes. Embedded quotes and
// newlines are written as-is. No models yields an empty string.
func ToCSV(models []results.ModelResult, fields []Field) string {
	if len(models) == 0 || len(fields) == 0 {
		return ""
	}
	lines := make([]string, 0, len(models)+1)

	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.Name
	}
	lines = append(lines, strings.Join(headers, ","))

	for _, m := range models {
		cells := make([]string, len(fields))
		for i, f := range fields {
			cells[i] = cell(f.Value(m))
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if strings.Contains(val, ",") {
			return `"` + val + `"`
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprint(val)
	}
}
