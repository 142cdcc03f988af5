// internal/charts/charts.go
package charts

import (
	"github.com/mwiater/evaloop/internal/histogram"
	"github.com/mwiater/evaloop/internal/leaderboard"
	"github.com/mwiater/evaloop/internal/results"
	"github.com/mwiater/evaloop/internal/stats"
)

// ASLBar is the top-n ASL bar chart.
func ASLBar(models []results.ModelResult, n int) Config {
	top := leaderboard.TopN(models, n)
	labels := make([]string, len(top))
	for i, m := range top {
		labels[i] = m.Name
	}
	opts := baseOptions()
	opts["plugins"] = hiddenLegend()
	opts["scales"] = map[string]any{
		"y": map[string]any{"beginAtZero": true, "title": axisTitle("ASL Semantic")},
	}
	return Config{
		Type: "bar",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           "ASL Semantic",
				Data:            stats.ASLScores(top),
				BackgroundColor: Palette(0, 0.8),
				BorderColor:     Palette(0, 1),
				BorderWidth:     1,
			}},
		},
		Options: opts,
	}
}

// Distribution is the histogram of ASL scores.
func Distribution(models []results.ModelResult, binner histogram.Binner) Config {
	bins := binner.Bin(stats.ASLScores(models))
	opts := baseOptions()
	opts["plugins"] = hiddenLegend()
	opts["scales"] = map[string]any{
		"x": map[string]any{"title": axisTitle("ASL Score Range")},
		"y": map[string]any{"title": axisTitle("Number of Models"), "beginAtZero": true},
	}
	return Config{
		Type: "bar",
		Data: Data{
			Labels: bins.Labels,
			Datasets: []Dataset{{
				Label:           "Number of Models",
				Data:            bins.Counts,
				BackgroundColor: Palette(0, 0.8),
				BorderColor:     Palette(0, 1),
				BorderWidth:     1,
			}},
		},
		Options: opts,
	}
}

// SuccessScatter plots success rate (percent, x) against ASL score (y).
func SuccessScatter(models []results.ModelResult) Config {
	points := make([]Point, len(models))
	for i, m := range models {
		points[i] = Point{X: m.SuccessRate.Percent(), Y: m.ASLScore, Label: m.Name}
	}
	opts := baseOptions()
	opts["plugins"] = hiddenLegend()
	opts["scales"] = map[string]any{
		"x": map[string]any{"title": axisTitle("Success Rate (%)")},
		"y": map[string]any{"title": axisTitle("ASL Score")},
	}
	return Config{
		Type: "scatter",
		Data: Data{Datasets: []Dataset{{
			Label:           "Models",
			Data:            points,
			BackgroundColor: Palette(0, 0.6),
			BorderColor:     Palette(0, 1),
			BorderWidth:     1,
		}}},
		Options: opts,
	}
}

// TimeLine plots average time for the top-n models. Missing times are null gaps.
func TimeLine(models []results.ModelResult, n int) Config {
	top := leaderboard.TopN(models, n)
	labels := make([]string, len(top))
	values := make([]any, len(top))
	for i, m := range top {
		labels[i] = m.Name
		if v, ok := results.Value(m.AvgTime); ok {
			values[i] = v
		}
	}
	opts := baseOptions()
	opts["plugins"] = hiddenLegend()
	opts["scales"] = map[string]any{
		"x": map[string]any{"display": false},
		"y": map[string]any{"title": axisTitle("Time (seconds)"), "beginAtZero": true},
	}
	return Config{
		Type: "line",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           "Average Time (s)",
				Data:            values,
				BorderColor:     Palette(1, 1),
				BackgroundColor: Palette(1, 0.1),
				Tension:         0.4,
			}},
		},
		Options: opts,
	}
}

var categoryLabels = map[string]string{
	"algorithms":     "Algorithms",
	"dataStructures": "Data Structures",
	"systemDesign":   "System Design",
	"debugging":      "Debugging",
}

// CategoryComparison is a grouped bar chart of category scores for the top five
// models that carry details. A model missing a category gets a null bar.
func CategoryComparison(models []results.ModelResult) Config {
	var withDetails []results.ModelResult
	for _, m := range leaderboard.TopN(models, 5) {
		if m.Details != nil {
			withDetails = append(withDetails, m)
		}
	}
	labels := make([]string, len(withDetails))
	for i, m := range withDetails {
		labels[i] = m.Name
	}

	cols := leaderboard.HeatmapColumns(withDetails)
	datasets := make([]Dataset, 0, len(cols))
	for i, col := range cols {
		values := make([]any, len(withDetails))
		for j, m := range withDetails {
			if v, ok := m.Details.Categories[col]; ok {
				values[j] = v
			}
		}
		label := categoryLabels[col]
		if label == "" {
			label = col
		}
		datasets = append(datasets, Dataset{
			Label:           label,
			Data:            values,
			BackgroundColor: Palette(i, 0.8),
		})
	}

	opts := baseOptions()
	opts["plugins"] = map[string]any{"legend": map[string]any{"position": "top"}}
	opts["scales"] = map[string]any{
		"y": map[string]any{"beginAtZero": true, "max": 100, "title": axisTitle("Score (%)")},
	}
	return Config{
		Type:    "bar",
		Data:    Data{Labels: labels, Datasets: datasets},
		Options: opts,
	}
}

// RadarAxes are the organization radar's axes.
var RadarAxes = []string{"ASL Score", "Success Rate", "Speed", "Robustness"}

// SpeedScore converts an average time in seconds to the radar's speed axis.
func SpeedScore(avgTime float64) float64 {
	return 100 - avgTime*50
}

// OrganizationRadar plots per-organization means. Success is shown in percent.
// Axes an organization has no data for are null.
func OrganizationRadar(aggs []stats.OrganizationAggregate) Config {
	datasets := make([]Dataset, 0, len(aggs))
	for i, org := range aggs {
		values := []any{org.ASLScore, org.SuccessRate * 100, nil, nil}
		if v, ok := results.Value(org.AvgTime); ok {
			values[2] = SpeedScore(v)
		}
		if v, ok := results.Value(org.RobustnessScore); ok {
			values[3] = v
		}
		datasets = append(datasets, Dataset{
			Label:           org.Organization,
			Data:            values,
			BorderColor:     Palette(i, 1),
			BackgroundColor: Palette(i, 0.2),
		})
	}
	opts := baseOptions()
	opts["scales"] = map[string]any{"r": map[string]any{"beginAtZero": true, "max": 100}}
	return Config{
		Type:    "radar",
		Data:    Data{Labels: RadarAxes, Datasets: datasets},
		Options: opts,
	}
}

// TopRadar compares the top five models on ASL and success rate.
func TopRadar(models []results.ModelResult) Config {
	top := leaderboard.TopN(models, 5)
	datasets := make([]Dataset, 0, len(top))
	for i, m := range top {
		datasets = append(datasets, Dataset{
			Label:           m.Name,
			Data:            []float64{m.ASLScore, m.SuccessRate.Percent()},
			BackgroundColor: gradient(i, 0.2),
			BorderColor:     gradient(i, 1),
			BorderWidth:     2,
		})
	}
	opts := baseOptions()
	opts["scales"] = map[string]any{"r": map[string]any{"beginAtZero": true, "max": 100}}
	return Config{
		Type:    "radar",
		Data:    Data{Labels: []string{"ASL Semantic", "Success Rate"}, Datasets: datasets},
		Options: opts,
	}
}

// BubbleRadius sizes a bubble from its score.
func BubbleRadius(y float64) float64 {
	return 5 + y/10
}

// SizeBubble plots parameter count against ASL score. Models without a size are left out.
func SizeBubble(models []results.ModelResult) Config {
	var points []Point
	for _, m := range models {
		size, ok := results.Value(m.Size)
		if !ok {
			continue
		}
		r := BubbleRadius(m.ASLScore)
		points = append(points, Point{X: size, Y: m.ASLScore, R: &r, Label: m.Name})
	}
	if points == nil {
		points = []Point{}
	}
	opts := baseOptions()
	opts["plugins"] = hiddenLegend()
	opts["scales"] = map[string]any{
		"x": map[string]any{"title": axisTitle("Model Size (Billion Parameters)")},
		"y": map[string]any{"title": axisTitle("ASL Score")},
	}
	return Config{
		Type: "bubble",
		Data: Data{Datasets: []Dataset{{
			Label:           "Models",
			Data:            points,
			BackgroundColor: Palette(4, 0.6),
			BorderColor:     Palette(4, 1),
		}}},
		Options: opts,
	}
}

// Sampling compares greedy decoding with temperature sampling per task.
func Sampling(rows []results.SamplingComparison) Config {
	labels := make([]string, len(rows))
	greedy := make([]float64, len(rows))
	temp := make([]float64, len(rows))
	for i, r := range rows {
		labels[i] = string(r.TaskID)
		greedy[i] = r.Greedy
		temp[i] = r.Temperature
	}
	opts := baseOptions()
	opts["plugins"] = map[string]any{"legend": map[string]any{"position": "top"}}
	opts["scales"] = map[string]any{
		"x": map[string]any{"title": axisTitle("Task")},
		"y": map[string]any{"title": axisTitle("Score"), "beginAtZero": true},
	}
	return Config{
		Type: "bar",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{
				{Label: "Greedy", Data: greedy, BackgroundColor: Palette(0, 0.8)},
				{Label: "Temperature", Data: temp, BackgroundColor: Palette(2, 0.8)},
			},
		},
		Options: opts,
	}
}

// Published correlation of each metric with human evaluation.
var (
	CorrelationMetrics = []string{"ASL", "Pass@1", "Pass@10", "BLEU", "HumanEval"}
	CorrelationValues  = []float64{0.87, 0.72, 0.75, 0.45, 0.68}
)

// Correlation is the methodology page's metric correlation chart.
func Correlation() Config {
	bg := make([]string, len(CorrelationMetrics))
	border := make([]string, len(CorrelationMetrics))
	for i := range CorrelationMetrics {
		bg[i] = Palette(i, 0.8)
		border[i] = Palette(i, 1)
	}
	opts := baseOptions()
	opts["plugins"] = map[string]any{
		"legend": map[string]any{"display": false},
		"title":  axisTitle("Metric Correlation with Human Evaluation"),
	}
	opts["scales"] = map[string]any{
		"y": map[string]any{"beginAtZero": true, "max": 1, "title": axisTitle("Correlation Coefficient (r)")},
		"x": map[string]any{"title": axisTitle("Evaluation Metrics")},
	}
	return Config{
		Type: "bar",
		Data: Data{
			Labels: append([]string(nil), CorrelationMetrics...),
			Datasets: []Dataset{{
				Label:           "Correlation with Human Evaluation",
				Data:            append([]float64(nil), CorrelationValues...),
				BackgroundColor: bg,
				BorderColor:     border,
				BorderWidth:     2,
			}},
		},
		Options: opts,
	}
}
