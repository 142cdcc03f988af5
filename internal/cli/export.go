// internal/cli/export.go
package evaloop

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwiater/evaloop/internal/export"
	"github.com/mwiater/evaloop/internal/logging"
)

var (
	exportDir string
	exportZip bool
)

// exportCmd writes the dataset exports without building the site.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the JSON and CSV exports",
	Long:  `Write the full dataset JSON, the summary and leaderboard CSVs and the leaderboard JSON, optionally bundled into a zip archive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config()
		outcome, err := loadResults(cmdContext(cmd), cfg)
		if err != nil {
			return err
		}

		dir := exportDir
		if dir == "" {
			dir = filepath.Join(cfg.OutputDirectory(), "data")
		}
		now := time.Now()
		files, err := export.All(outcome.Document.Models, now)
		if err != nil {
			return err
		}
		if err := export.WriteFiles(dir, files); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		writeBanner(out, outcome)
		for _, f := range files {
			fmt.Fprintln(out, filepath.Join(dir, f.Name))
		}

		if exportZip {
			path := filepath.Join(dir, export.BundleFile)
			fh, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("unable to create %s: %w", path, err)
			}
			if err := export.WriteBundle(fh, files, now); err != nil {
				_ = fh.Close()
				return err
			}
			if err := fh.Close(); err != nil {
				return fmt.Errorf("unable to close %s: %w", path, err)
			}
			fmt.Fprintln(out, path)
		}
		logging.LogEvent("[EXPORT] wrote %d files to %s", len(files), dir)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "directory for the export files (default <outputDir>/data)")
	exportCmd.Flags().BoolVar(&exportZip, "zip", false, "also write "+export.BundleFile)
	rootCmd.AddCommand(exportCmd)
}
