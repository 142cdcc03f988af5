// internal/site/build.go
// Package site renders the static leaderboard site: the leaderboard, results
// and method pages plus the downloadable exports and PNG plots.
package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/mwiater/evaloop/internal/charts"
	"github.com/mwiater/evaloop/internal/export"
	"github.com/mwiater/evaloop/internal/histogram"
	"github.com/mwiater/evaloop/internal/leaderboard"
	"github.com/mwiater/evaloop/internal/loader"
	"github.com/mwiater/evaloop/internal/logging"
	"github.com/mwiater/evaloop/internal/plots"
	"github.com/mwiater/evaloop/internal/results"
	"github.com/mwiater/evaloop/internal/stats"
)

// Page and directory names inside the output directory.
const (
	IndexPage   = "index.html"
	ResultsPage = "results.html"
	MethodPage  = "method.html"
	DataDir     = "data"
	PlotsDir    = "plots"
)

// Options controls a site build.
type Options struct {
	OutputDir   string
	Outcome     loader.Outcome
	Sampling    []results.SamplingComparison
	Binner      histogram.Binner
	TopN        int
	HeatmapLow  float64
	HeatmapHigh float64
	Methodology []byte
	RenderPlots bool
	Now         time.Time
}

// Report lists what a build wrote, relative to the output directory.
type Report struct {
	OutputDir string
	Pages     []string
	Exports   []string
	Plots     []plots.Plot
	Degraded  bool
}

type overviewView struct {
	Total   string
	Average string
	Highest string
	Success string
}

type summaryView struct {
	Label  string
	Mean   string
	Median string
	StdDev string
	Min    string
	Max    string
}

type pageData struct {
	Title          string
	Page           string
	Degraded       bool
	DegradedReason string
	Generated      string
	LastUpdated    string
	ChartsJSON     template.JS
	Charts         []charts.Named

	Overview overviewView
	Rows     []leaderboard.Row

	Summaries      []summaryView
	Heatmap        []leaderboard.HeatmapRow
	HeatmapColumns []string
	HeatmapWidth   int
	Sampling       *stats.SamplingSummary

	Methodology template.HTML
}

// Build writes the whole site into opts.OutputDir.
func Build(ctx context.Context, opts Options) (Report, error) {
	report := Report{OutputDir: opts.OutputDir, Degraded: opts.Outcome.Degraded()}
	if !opts.Outcome.Usable() {
		return report, fmt.Errorf("no results to build from: %w", opts.Outcome.Err())
	}
	if opts.OutputDir == "" {
		return report, errors.New("output directory is required")
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	if opts.HeatmapHigh == 0 && opts.HeatmapLow == 0 {
		opts.HeatmapLow, opts.HeatmapHigh = leaderboard.DefaultHeatmapLow, leaderboard.DefaultHeatmapHigh
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return report, fmt.Errorf("unable to create output directory %s: %w", opts.OutputDir, err)
	}
	logging.LogOutcome("site", opts.Outcome)

	pages := []struct {
		name  string
		build func(Options) (pageData, error)
	}{
		{IndexPage, indexData},
		{ResultsPage, resultsData},
		{MethodPage, methodData},
	}
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		data, err := p.build(opts)
		if err != nil {
			return report, err
		}
		if err := writePage(filepath.Join(opts.OutputDir, p.name), data); err != nil {
			return report, err
		}
		report.Pages = append(report.Pages, p.name)
		logging.LogEvent("[SITE] wrote %s", p.name)
	}

	files, err := export.All(opts.Outcome.Document.Models, opts.Now)
	if err != nil {
		return report, fmt.Errorf("unable to build exports: %w", err)
	}
	if err := export.WriteFiles(filepath.Join(opts.OutputDir, DataDir), files); err != nil {
		return report, err
	}
	for _, f := range files {
		report.Exports = append(report.Exports, DataDir+"/"+f.Name)
	}

	if opts.RenderPlots {
		rendered, err := plots.RenderAll(ctx, plots.Input{
			Models: opts.Outcome.Document.Models,
			Binner: opts.Binner,
			TopN:   opts.TopN,
		})
		if err != nil {
			return report, fmt.Errorf("plot rendering interrupted: %w", err)
		}
		report.Plots = rendered
		var pngs []export.File
		for _, p := range rendered {
			if p.Err == nil {
				pngs = append(pngs, export.File{Name: p.Filename, Data: p.PNG})
			}
		}
		if err := export.WriteFiles(filepath.Join(opts.OutputDir, PlotsDir), pngs); err != nil {
			return report, err
		}
		for _, f := range pngs {
			files = append(files, export.File{Name: PlotsDir + "/" + f.Name, Data: f.Data})
		}
	}

	var bundle bytes.Buffer
	if err := export.WriteBundle(&bundle, files, opts.Now); err != nil {
		return report, err
	}
	bundlePath := filepath.Join(opts.OutputDir, DataDir, export.BundleFile)
	if err := os.WriteFile(bundlePath, bundle.Bytes(), 0o644); err != nil {
		return report, fmt.Errorf("unable to write %s: %w", bundlePath, err)
	}
	report.Exports = append(report.Exports, DataDir+"/"+export.BundleFile)
	logging.LogEvent("[SITE] wrote %d exports to %s", len(report.Exports), filepath.Join(opts.OutputDir, DataDir))

	return report, nil
}

func basePage(opts Options, title, page string, named []charts.Named) (pageData, error) {
	payload, err := json.Marshal(named)
	if err != nil {
		return pageData{}, fmt.Errorf("unable to encode %s charts: %w", page, err)
	}
	data := pageData{
		Title:       title,
		Page:        page,
		Degraded:    opts.Outcome.Degraded(),
		Generated:   opts.Now.UTC().Format("2006-01-02 15:04 UTC"),
		LastUpdated: opts.Outcome.Document.LastUpdated,
		ChartsJSON:  template.JS(payload),
		Charts:      named,
	}
	if data.Degraded {
		data.DegradedReason = opts.Outcome.Summary()
	}
	return data, nil
}

func chartInput(opts Options) charts.Input {
	return charts.Input{
		Document: opts.Outcome.Document,
		Sampling: opts.Sampling,
		Binner:   opts.Binner,
		TopN:     opts.TopN,
	}
}

func indexData(opts Options) (pageData, error) {
	named, err := charts.Project(results.ProfileLeaderboard, chartInput(opts))
	if err != nil {
		return pageData{}, err
	}
	data, err := basePage(opts, "EvaLoop Leaderboard", "index", named)
	if err != nil {
		return pageData{}, err
	}
	ov := stats.NewOverview(opts.Outcome.Document)
	data.Overview = overviewView{
		Total:   FormatCount(ov.TotalModels),
		Average: FormatScore(ov.AvgASL),
		Highest: FormatScore(ov.HighestASL),
		Success: FormatPercent(ov.AvgSuccess),
	}
	data.Rows = leaderboard.BuildRows(leaderboard.ByRank(opts.Outcome.Document.Models))
	return data, nil
}

func resultsData(opts Options) (pageData, error) {
	named, err := charts.Project(results.ProfileResults, chartInput(opts))
	if err != nil {
		return pageData{}, err
	}
	data, err := basePage(opts, "EvaLoop Results", "results", named)
	if err != nil {
		return pageData{}, err
	}
	models := leaderboard.ByRank(opts.Outcome.Document.Models)
	data.Summaries = []summaryView{
		scoreSummary("ASL Semantic", stats.Compute(stats.ASLScores(models))),
		percentSummary("Pass Rate", stats.Compute(stats.SuccessRates(models))),
	}
	if times := stats.AvgTimes(models); len(times) > 0 {
		data.Summaries = append(data.Summaries, secondsSummary("Average Time", stats.Compute(times)))
	}
	data.Heatmap = leaderboard.HeatmapRows(models, opts.TopN, opts.HeatmapLow, opts.HeatmapHigh)
	data.HeatmapColumns = leaderboard.HeatmapColumns(leaderboard.TopN(models, opts.TopN))
	data.HeatmapWidth = len(data.HeatmapColumns)
	if len(opts.Sampling) > 0 {
		s := stats.SummarizeSampling(opts.Sampling)
		data.Sampling = &s
	}
	return data, nil
}

func methodData(opts Options) (pageData, error) {
	src := opts.Methodology
	if len(src) == 0 {
		src = defaultMethodology
	}
	html, err := RenderMarkdown(src)
	if err != nil {
		return pageData{}, err
	}
	data, err := basePage(opts, "EvaLoop Methodology", "method", charts.MethodCharts())
	if err != nil {
		return pageData{}, err
	}
	data.Methodology = html
	return data, nil
}

func scoreSummary(label string, s stats.Summary) summaryView {
	return summaryView{
		Label:  label,
		Mean:   FormatScore(s.Mean),
		Median: FormatScore(s.Median),
		StdDev: FormatScore(s.StdDev),
		Min:    FormatScore(s.Min),
		Max:    FormatScore(s.Max),
	}
}

func percentSummary(label string, s stats.Summary) summaryView {
	return summaryView{
		Label:  label,
		Mean:   FormatPercent(s.Mean),
		Median: FormatPercent(s.Median),
		StdDev: FormatPercent(s.StdDev),
		Min:    FormatPercent(s.Min),
		Max:    FormatPercent(s.Max),
	}
}

func secondsSummary(label string, s stats.Summary) summaryView {
	sec := func(v float64) string { return printer.Sprintf("%.2fs", v) }
	return summaryView{
		Label:  label,
		Mean:   sec(s.Mean),
		Median: sec(s.Median),
		StdDev: sec(s.StdDev),
		Min:    sec(s.Min),
		Max:    sec(s.Max),
	}
}

func writePage(path string, data pageData) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, data.Page, data); err != nil {
		return fmt.Errorf("unable to render %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return nil
}
