// internal/cli/stats.go
package evaloop

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mwiater/evaloop/internal/stats"
	"github.com/mwiater/evaloop/internal/util"
)

// statsCmd prints summary statistics and per-organization aggregates.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print summary statistics for the loaded results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config()
		outcome, err := loadResults(cmdContext(cmd), cfg)
		if err != nil {
			return err
		}
		sampling, err := loadSampling(cmdContext(cmd), cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		writeBanner(out, outcome)
		models := outcome.Document.Models
		ov := stats.NewOverview(outcome.Document)

		fmt.Fprintln(out, titleStyle.Render("Overview"))
		fmt.Fprintf(out, "Models:            %d\n", ov.TotalModels)
		fmt.Fprintf(out, "Average ASL:       %.3f\n", ov.AvgASL)
		fmt.Fprintf(out, "Highest ASL:       %.3f\n", ov.HighestASL)
		fmt.Fprintf(out, "Average pass rate: %.1f%%\n", ov.AvgSuccess*100)
		if ov.LastUpdated != "" {
			fmt.Fprintf(out, "Last updated:      %s\n", ov.LastUpdated)
		}
		fmt.Fprintln(out)

		writeSummary(out, "ASL Semantic", stats.Compute(stats.ASLScores(models)), 1)
		writeSummary(out, "Pass rate (%)", stats.Compute(stats.SuccessRates(models)), 100)
		if times := stats.AvgTimes(models); len(times) > 0 {
			writeSummary(out, "Average time (s)", stats.Compute(times), 1)
		}

		fmt.Fprintln(out, titleStyle.Render("Organizations"))
		for _, agg := range stats.AggregateByOrganization(models) {
			line := fmt.Sprintf("%s  models=%d  asl=%.3f  pass=%.1f%%", util.PadRight(agg.Organization, 16), agg.Count, agg.ASLScore, agg.SuccessRate*100)
			if agg.AvgTime != nil {
				line += fmt.Sprintf("  time=%.2fs", *agg.AvgTime)
			}
			if agg.RobustnessScore != nil {
				line += fmt.Sprintf("  robust=%.1f", *agg.RobustnessScore)
			}
			fmt.Fprintln(out, line)
		}

		if len(sampling) > 0 {
			s := stats.SummarizeSampling(sampling)
			fmt.Fprintln(out)
			fmt.Fprintln(out, titleStyle.Render("Sampling"))
			fmt.Fprintf(out, "Tasks: %d  greedy=%.3f  temperature=%.3f  delta=%+.3f  temperature wins=%d\n",
				s.Tasks, s.MeanGreedy, s.MeanTemperature, s.MeanDelta, s.TemperatureWins)
		}
		return nil
	},
}

func writeSummary(out io.Writer, label string, s stats.Summary, scale float64) {
	fmt.Fprintf(out, "%s (n=%d)\n", label, s.Count)
	fmt.Fprintf(out, "  mean %.3f  median %.3f  std %.3f  min %.3f  max %.3f\n\n",
		s.Mean*scale, s.Median*scale, s.StdDev*scale, s.Min*scale, s.Max*scale)
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
