// internal/stats/aggregate.go
package stats

import (
	"math"

	"github.com/mwiater/evaloop/internal/results"
)

// OrganizationAggregate is the per-organization mean of each score.
// AvgTime and RobustnessScore are nil when no member reports them.
type OrganizationAggregate struct {
	Organization    string   `json:"organization"`
	Count           int      `json:"count"`
	ASLScore        float64  `json:"aslScore"`
	SuccessRate     float64  `json:"successRate"`
	AvgTime         *float64 `json:"avgTime,omitempty"`
	RobustnessScore *float64 `json:"robustnessScore,omitempty"`
}

type orgAccumulator struct {
	count      int
	asl        float64
	success    float64
	times      []float64
	robustness []float64
}

// AggregateByOrganization groups models by exact organization string in first-seen order.
func AggregateByOrganization(models []results.ModelResult) []OrganizationAggregate {
	var order []string
	groups := make(map[string]*orgAccumulator)

	for _, m := range models {
		acc, ok := groups[m.Organization]
		if !ok {
			acc = &orgAccumulator{}
			groups[m.Organization] = acc
			order = append(order, m.Organization)
		}
		acc.count++
		acc.asl += m.ASLScore
		acc.success += m.SuccessRate.Float()
		if v, ok := results.Value(m.AvgTime); ok {
			acc.times = append(acc.times, v)
		}
		if v, ok := results.Value(m.RobustnessScore); ok {
			acc.robustness = append(acc.robustness, v)
		}
	}

	out := make([]OrganizationAggregate, 0, len(order))
	for _, name := range order {
		acc := groups[name]
		agg := OrganizationAggregate{
			Organization: name,
			Count:        acc.count,
			ASLScore:     acc.asl / float64(acc.count),
			SuccessRate:  acc.success / float64(acc.count),
		}
		if len(acc.times) > 0 {
			agg.AvgTime = results.Float(mean(acc.times))
		}
		if len(acc.robustness) > 0 {
			agg.RobustnessScore = results.Float(mean(acc.robustness))
		}
		out = append(out, agg)
	}
	return out
}

// Overview is the set of headline numbers shown above the leaderboard.
type Overview struct {
	TotalModels int     `json:"totalModels"`
	AvgASL      float64 `json:"avgASL"`
	HighestASL  float64 `json:"highestASL"`
	AvgSuccess  float64 `json:"avgSuccess"`
	LastUpdated string  `json:"lastUpdated"`
}

// NewOverview summarizes a document. An empty document yields zeros.
func NewOverview(doc results.Document) Overview {
	ov := Overview{
		TotalModels: len(doc.Models),
		LastUpdated: doc.LastUpdated,
	}
	if len(doc.Models) == 0 {
		return ov
	}
	asl := ASLScores(doc.Models)
	ov.AvgASL = mean(asl)
	ov.HighestASL = maxValue(asl)
	ov.AvgSuccess = mean(SuccessRates(doc.Models))
	return ov
}

// ASLScores extracts every model's ASL score.
func ASLScores(models []results.ModelResult) []float64 {
	out := make([]float64, len(models))
	for i, m := range models {
		out[i] = m.ASLScore
	}
	return out
}

// SuccessRates extracts every model's success rate as a fraction.
func SuccessRates(models []results.ModelResult) []float64 {
	out := make([]float64, len(models))
	for i, m := range models {
		out[i] = m.SuccessRate.Float()
	}
	return out
}

// AvgTimes extracts the average times of the models that report one.
func AvgTimes(models []results.ModelResult) []float64 {
	var out []float64
	for _, m := range models {
		if v, ok := results.Value(m.AvgTime); ok {
			out = append(out, v)
		}
	}
	return out
}

// Comparison describes how two models differ.
type Comparison struct {
	ASLDifference float64 `json:"aslDifference"`
	Leader        string  `json:"leader"`
	// SuccessGap is in percentage points.
	SuccessGap float64 `json:"successGap"`
}

// Compare returns the absolute differences between two models. Ties go to a.
func Compare(a, b results.ModelResult) Comparison {
	leader := a.Name
	if b.ASLScore > a.ASLScore {
		leader = b.Name
	}
	return Comparison{
		ASLDifference: math.Abs(a.ASLScore - b.ASLScore),
		Leader:        leader,
		SuccessGap:    math.Abs(a.SuccessRate.Percent() - b.SuccessRate.Percent()),
	}
}

// SamplingSummary reduces greedy-vs-temperature rows.
type SamplingSummary struct {
	Tasks           int     `json:"tasks"`
	MeanGreedy      float64 `json:"meanGreedy"`
	MeanTemperature float64 `json:"meanTemperature"`
	MeanDelta       float64 `json:"meanDelta"`
	TemperatureWins int     `json:"temperatureWins"`
}

// SummarizeSampling computes means over the sampling rows. Empty input yields zeros.
func SummarizeSampling(rows []results.SamplingComparison) SamplingSummary {
	if len(rows) == 0 {
		return SamplingSummary{}
	}
	greedy := make([]float64, len(rows))
	temp := make([]float64, len(rows))
	deltas := make([]float64, len(rows))
	wins := 0
	for i, r := range rows {
		greedy[i] = r.Greedy
		temp[i] = r.Temperature
		deltas[i] = r.Temperature - r.Greedy
		if r.Temperature > r.Greedy {
			wins++
		}
	}
	return SamplingSummary{
		Tasks:           len(rows),
		MeanGreedy:      mean(greedy),
		MeanTemperature: mean(temp),
		MeanDelta:       mean(deltas),
		TemperatureWins: wins,
	}
}
