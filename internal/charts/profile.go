// internal/charts/profile.go
package charts

import (
	"fmt"

	"github.com/mwiater/evaloop/internal/histogram"
	"github.com/mwiater/evaloop/internal/results"
	"github.com/mwiater/evaloop/internal/stats"
)

// Input is everything a page's charts are projected from.
type Input struct {
	Document results.Document
	Sampling []results.SamplingComparison
	Binner   histogram.Binner
	TopN     int
}

// Project builds the charts a page profile shows, in page order.
// The sampling chart is only included when sampling rows are present.
func Project(profile string, in Input) ([]Named, error) {
	models := in.Document.Models
	topN := in.TopN
	if topN <= 0 {
		topN = 10
	}

	switch results.ProfileOrDefault(profile) {
	case results.ProfileLeaderboard:
		return []Named{
			{ID: "aslChart", Title: "ASL Semantic Scores", Config: ASLBar(models, topN)},
			{ID: "categoryChart", Title: "Top Model Comparison", Config: TopRadar(models)},
		}, nil
	case results.ProfileResults:
		binner := in.Binner
		if binner == nil {
			binner = histogram.FixedCount{Bins: 10}
		}
		out := []Named{
			{ID: "performanceChart", Title: "Performance Distribution", Config: Distribution(models, binner)},
			{ID: "scatterChart", Title: "Success Rate vs ASL", Config: SuccessScatter(models)},
			{ID: "timeChart", Title: "Execution Time", Config: TimeLine(models, topN)},
			{ID: "categoryComparisonChart", Title: "Category Comparison", Config: CategoryComparison(models)},
			{ID: "orgTrendsChart", Title: "Organization Trends", Config: OrganizationRadar(stats.AggregateByOrganization(models))},
			{ID: "sizePerformanceChart", Title: "Size vs Performance", Config: SizeBubble(models)},
		}
		if len(in.Sampling) > 0 {
			out = append(out, Named{ID: "samplingChart", Title: "Greedy vs Temperature Sampling", Config: Sampling(in.Sampling)})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown page profile %q", profile)
	}
}

// MethodCharts are the charts on the methodology page. They do not depend on results.
func MethodCharts() []Named {
	return []Named{
		{ID: "correlationChart", Title: "Metric Correlation", Config: Correlation()},
	}
}
