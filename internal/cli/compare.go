// internal/cli/compare.go
package evaloop

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mwiater/evaloop/internal/leaderboard"
	"github.com/mwiater/evaloop/internal/results"
	"github.com/mwiater/evaloop/internal/stats"
)

// compareCmd compares two models picked by rank.
var compareCmd = &cobra.Command{
	Use:   "compare RANK RANK",
	Short: "Compare two models by rank",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ranks := make([]int, 2)
		for i, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("rank %q is not a number", arg)
			}
			ranks[i] = n
		}

		outcome, err := loadResults(cmdContext(cmd), config())
		if err != nil {
			return err
		}
		a, ok := leaderboard.FindByRank(outcome.Document.Models, ranks[0])
		if !ok {
			return fmt.Errorf("no model with rank %d", ranks[0])
		}
		b, ok := leaderboard.FindByRank(outcome.Document.Models, ranks[1])
		if !ok {
			return fmt.Errorf("no model with rank %d", ranks[1])
		}

		out := cmd.OutOrStdout()
		writeBanner(out, outcome)
		writeTable(out, leaderboard.BuildRows([]results.ModelResult{a, b}))
		fmt.Fprintln(out)

		c := stats.Compare(a, b)
		fmt.Fprintf(out, "Leader:            %s\n", c.Leader)
		fmt.Fprintf(out, "ASL difference:    %.3f\n", c.ASLDifference)
		fmt.Fprintf(out, "Pass rate gap:     %.1f points\n", c.SuccessGap)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}
