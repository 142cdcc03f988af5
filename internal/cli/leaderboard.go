// internal/cli/leaderboard.go
package evaloop

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwiater/evaloop/internal/leaderboard"
	"github.com/mwiater/evaloop/internal/results"
)

var (
	boardSort  string
	boardDesc  bool
	boardOrg   string
	boardRange string
	boardAll   bool
)

// leaderboardCmd prints the leaderboard table.
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the leaderboard table",
	Long:  `Load the configured results and print them as a table, optionally filtered by organization or ASL range and sorted by asl, success or rank.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config()
		outcome, err := loadResults(cmdContext(cmd), cfg)
		if err != nil {
			return err
		}

		filter := leaderboard.Filter{Organization: boardOrg}
		if boardRange != "" {
			lo, hi, err := leaderboard.ParseScoreRange(boardRange)
			if err != nil {
				return err
			}
			filter.MinScore, filter.MaxScore = results.Float(lo), results.Float(hi)
		}
		models, err := leaderboard.Sort(filter.Apply(outcome.Document.Models), boardSort, boardDesc)
		if err != nil {
			return err
		}
		if !boardAll {
			models = leaderboard.TopN(models, cfg.TopCount())
		}

		out := cmd.OutOrStdout()
		writeBanner(out, outcome)
		title := fmt.Sprintf("EvaLoop Leaderboard (%d of %d models)", len(models), len(outcome.Document.Models))
		if outcome.Document.LastUpdated != "" {
			title += " · updated " + outcome.Document.LastUpdated
		}
		fmt.Fprintln(out, titleStyle.Render(title))
		fmt.Fprintln(out)
		if len(models) == 0 {
			fmt.Fprintln(out, "No models match the filter.")
			return nil
		}
		writeTable(out, leaderboard.BuildRows(models))
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().StringVar(&boardSort, "sort", leaderboard.SortRank, "sort key: asl, success or rank")
	leaderboardCmd.Flags().BoolVar(&boardDesc, "desc", false, "sort descending")
	leaderboardCmd.Flags().StringVar(&boardOrg, "org", "", "only show this organization")
	leaderboardCmd.Flags().StringVar(&boardRange, "range", "", "only show ASL scores in min-max")
	leaderboardCmd.Flags().BoolVar(&boardAll, "all", false, "show every model instead of the top N")
	rootCmd.AddCommand(leaderboardCmd)
}
