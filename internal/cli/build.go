// internal/cli/build.go
package evaloop

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwiater/evaloop/internal/appconfig"
	"github.com/mwiater/evaloop/internal/site"
)

// buildCmd renders the static site.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static leaderboard site",
	Long:  `Load the configured results and write the leaderboard, results and method pages, the data exports and the PNG plots into the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config()
		report, err := buildSite(cmd, cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Site written to %s\n", report.OutputDir)
		for _, p := range report.Pages {
			fmt.Fprintf(out, "  %s\n", p)
		}
		for _, e := range report.Exports {
			fmt.Fprintf(out, "  %s\n", e)
		}
		for _, p := range report.Plots {
			switch {
			case p.Err == nil:
				fmt.Fprintf(out, "  %s/%s\n", site.PlotsDir, p.Filename)
			case p.Skipped():
				fmt.Fprintf(out, "  %s/%s skipped: %v\n", site.PlotsDir, p.Filename, p.Err)
			default:
				fmt.Fprintf(out, "  %s/%s failed: %v\n", site.PlotsDir, p.Filename, p.Err)
			}
		}
		if report.Degraded {
			fmt.Fprintln(out, warnBanner(" DEGRADED DATA ")+" pages show the embedded dataset")
		}
		return nil
	},
}

// buildSite loads everything the site needs and renders it.
func buildSite(cmd *cobra.Command, cfg appconfig.Config) (site.Report, error) {
	ctx := cmdContext(cmd)
	outcome, err := loadResults(ctx, cfg)
	if err != nil {
		return site.Report{}, err
	}
	sampling, err := loadSampling(ctx, cfg)
	if err != nil {
		return site.Report{}, err
	}
	b, err := binner(cfg)
	if err != nil {
		return site.Report{}, err
	}
	methodology, err := site.LoadMethodology(cfg.MethodologyPath)
	if err != nil {
		return site.Report{}, err
	}
	lo, hi := cfg.HeatmapBounds()
	return site.Build(ctx, site.Options{
		OutputDir:   cfg.OutputDirectory(),
		Outcome:     outcome,
		Sampling:    sampling,
		Binner:      b,
		TopN:        cfg.TopCount(),
		HeatmapLow:  lo,
		HeatmapHigh: hi,
		Methodology: methodology,
		RenderPlots: cfg.RenderPlots,
		Now:         time.Now(),
	})
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
