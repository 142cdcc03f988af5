// internal/cli/validate.go
package evaloop

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwiater/evaloop/internal/results"
)

var validateSampling bool

// validateCmd checks a results or sampling file against the schema.
var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a results file",
	Long:  `Check a results document against the schema, report duplicate ranks and list any success rates that were published as percentages. With --sampling the file is read as a sampling comparison array.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read %s: %w", path, err)
		}
		out := cmd.OutOrStdout()

		if validateSampling {
			rows, err := results.ParseSampling(raw)
			if err != nil {
				return fmt.Errorf("%s is not a valid sampling file: %w", path, err)
			}
			fmt.Fprintf(out, "%s: valid sampling file with %d tasks\n", path, len(rows))
			return nil
		}

		doc, report, err := results.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s is not a valid results file: %w", path, err)
		}
		fmt.Fprintf(out, "%s: valid results file with %d models", path, len(doc.Models))
		if doc.LastUpdated != "" {
			fmt.Fprintf(out, " (updated %s)", doc.LastUpdated)
		}
		fmt.Fprintln(out)
		if report.Changed() {
			fmt.Fprintf(out, "  %d success rate(s) were percentages and were converted to fractions\n", report.PercentSuccessRates)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateSampling, "sampling", false, "validate a sampling comparison file")
	rootCmd.AddCommand(validateCmd)
}
