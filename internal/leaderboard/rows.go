// internal/leaderboard/rows.go
package leaderboard

import (
	"fmt"

	"github.com/mwiater/evaloop/internal/results"
)

// Row is the display form of one model in the leaderboard table.
type Row struct {
	Rank             int              `json:"rank"`
	RankClass        string           `json:"rankClass"`
	Name             string           `json:"name"`
	Link             string           `json:"link,omitempty"`
	HasLink          bool             `json:"hasLink"`
	Organization     string           `json:"organization"`
	ASLText          string           `json:"aslText"`
	SuccessText      string           `json:"successText"`
	AvgTimeText      string           `json:"avgTimeText"`
	RobustnessText   string           `json:"robustnessText"`
	Trend            string           `json:"trend"`
	Change           RankChange       `json:"change"`
	RobustnessChange RankChange       `json:"robustnessChange"`
	SimilarityChange RankChange       `json:"similarityChange"`
	Details          *results.Details `json:"details,omitempty"`
}

// NotAvailable is shown for missing values.
const NotAvailable = "N/A"

// BuildRows converts models into table rows, keeping their order.
func BuildRows(models []results.ModelResult) []Row {
	rows := make([]Row, 0, len(models))
	for _, m := range models {
		rows = append(rows, BuildRow(m))
	}
	return rows
}

// BuildRow converts one model.
func BuildRow(m results.ModelResult) Row {
	org := m.Organization
	if org == "" {
		org = NotAvailable
	}
	return Row{
		Rank:             m.Rank,
		RankClass:        RankClass(m.Rank),
		Name:             m.Name,
		Link:             m.Link,
		HasLink:          m.Link != "",
		Organization:     org,
		ASLText:          fmt.Sprintf("%.3f", m.ASLScore),
		SuccessText:      fmt.Sprintf("%.1f%%", m.SuccessRate.Percent()),
		AvgTimeText:      optional(m.AvgTime, "%.2fs"),
		RobustnessText:   optional(m.RobustnessScore, "%.1f"),
		Trend:            Trend(m),
		Change:           FormatRankChange(m.RankChange),
		RobustnessChange: FormatRankChange(m.RankByRobustnessChange),
		SimilarityChange: FormatRankChange(m.RankBySemanticSimilarityChange),
		Details:          m.Details,
	}
}

// RankClass returns the badge class: podium places get their own, the rest are secondary.
func RankClass(rank int) string {
	switch rank {
	case 1, 2, 3:
		return fmt.Sprintf("rank-%d", rank)
	default:
		return "bg-secondary"
	}
}

func optional(v *float64, format string) string {
	if val, ok := results.Value(v); ok {
		return fmt.Sprintf(format, val)
	}
	return NotAvailable
}
