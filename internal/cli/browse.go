// internal/cli/browse.go
package evaloop

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/evaloop/internal/tui"
)

// browseCmd opens the interactive leaderboard browser.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the leaderboard interactively",
	Long:  `Open a terminal table of the loaded results. Keys: s cycles the sort key, d toggles direction, o cycles the organization filter, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome, err := loadResults(cmdContext(cmd), config())
		if err != nil {
			return err
		}
		return tui.Run(outcome)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
