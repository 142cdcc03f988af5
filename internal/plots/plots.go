// internal/plots/plots.go
// Package plots renders static PNG versions of the main charts.
package plots

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/sync/errgroup"

	"github.com/mwiater/evaloop/internal/histogram"
	"github.com/mwiater/evaloop/internal/leaderboard"
	"github.com/mwiater/evaloop/internal/logging"
	"github.com/mwiater/evaloop/internal/results"
	"github.com/mwiater/evaloop/internal/stats"
)

// ErrNotEnoughData is returned when a chart has fewer than two distinct values to scale against.
var ErrNotEnoughData = errors.New("not enough distinct values to plot")

const (
	defaultWidth  = 960
	defaultHeight = 540
)

var (
	blue   = drawing.Color{R: 37, G: 99, B: 235, A: 255}
	green  = drawing.Color{R: 16, G: 185, B: 129, A: 255}
	violet = drawing.Color{R: 139, G: 92, B: 246, A: 255}
)

// Plot is one rendered chart. Err is set when that chart could not be rendered.
type Plot struct {
	Name     string
	Filename string
	PNG      []byte
	Err      error
}

// Skipped reports whether the plot was left out for lack of data.
func (p Plot) Skipped() bool {
	return errors.Is(p.Err, ErrNotEnoughData)
}

// Input is the data the plots are drawn from.
type Input struct {
	Models []results.ModelResult
	Binner histogram.Binner
	TopN   int
	Width  int
	Height int
}

func (in Input) size() (int, int) {
	w, h := in.Width, in.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

type job struct {
	name     string
	filename string
	render   func(Input) ([]byte, error)
}

var jobs = []job{
	{name: "asl", filename: "asl_scores.png", render: renderASLBar},
	{name: "distribution", filename: "asl_distribution.png", render: renderDistribution},
	{name: "scatter", filename: "success_vs_asl.png", render: renderScatter},
}

// RenderAll renders every plot concurrently. A failing plot does not stop the others;
// its error is kept on the returned Plot. The returned error is only set when ctx ends.
func RenderAll(ctx context.Context, in Input) ([]Plot, error) {
	out := make([]Plot, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			out[i] = Plot{Name: j.name, Filename: j.filename}
			if err := gCtx.Err(); err != nil {
				out[i].Err = err
				return err
			}
			png, err := j.render(in)
			if err != nil {
				out[i].Err = err
				if errors.Is(err, ErrNotEnoughData) {
					logging.LogEvent("[PLOTS] skipped %s: %v", j.name, err)
				} else {
					logging.LogEvent("[PLOTS] failed to render %s: %v", j.name, err)
				}
				return nil
			}
			out[i].PNG = png
			logging.LogDebug("[PLOTS] rendered %s (%d bytes)", j.filename, len(png))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

func renderASLBar(in Input) ([]byte, error) {
	n := in.TopN
	if n <= 0 {
		n = 10
	}
	top := leaderboard.TopN(in.Models, n)
	if distinct(stats.ASLScores(top)) < 2 {
		return nil, ErrNotEnoughData
	}
	bars := make([]chart.Value, len(top))
	for i, m := range top {
		bars[i] = chart.Value{
			Value: m.ASLScore,
			Label: m.Name,
			Style: chart.Style{FillColor: blue.WithAlpha(204), StrokeColor: blue, StrokeWidth: 1},
		}
	}
	w, h := in.size()
	bc := chart.BarChart{
		Title:      "ASL Semantic (top models)",
		Width:      w,
		Height:     h,
		BarWidth:   barWidth(w, len(bars)),
		BarSpacing: barWidth(w, len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		YAxis:      chart.YAxis{Name: "ASL"},
		Bars:       bars,
	}
	return renderPNG(bc.Render)
}

func renderDistribution(in Input) ([]byte, error) {
	binner := in.Binner
	if binner == nil {
		binner = histogram.FixedCount{Bins: 10}
	}
	scores := stats.ASLScores(in.Models)
	if distinct(scores) < 2 {
		return nil, ErrNotEnoughData
	}
	bins := binner.Bin(scores)
	bars := make([]chart.Value, bins.Len())
	for i := range bins.Counts {
		bars[i] = chart.Value{
			Value: float64(bins.Counts[i]),
			Label: bins.Labels[i],
			Style: chart.Style{FillColor: green.WithAlpha(204), StrokeColor: green, StrokeWidth: 1},
		}
	}
	w, h := in.size()
	bc := chart.BarChart{
		Title:      "ASL Score Distribution",
		Width:      w,
		Height:     h,
		BarWidth:   barWidth(w, len(bars)),
		BarSpacing: barWidth(w, len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		YAxis:      chart.YAxis{Name: "Models", Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount(bins.Counts))}},
		Bars:       bars,
	}
	return renderPNG(bc.Render)
}

func renderScatter(in Input) ([]byte, error) {
	xs := make([]float64, len(in.Models))
	ys := make([]float64, len(in.Models))
	for i, m := range in.Models {
		xs[i] = m.SuccessRate.Percent()
		ys[i] = m.ASLScore
	}
	if distinct(xs) < 2 || distinct(ys) < 2 {
		return nil, ErrNotEnoughData
	}
	w, h := in.size()
	ch := chart.Chart{
		Title:      "Success Rate vs ASL",
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Success Rate (%)"},
		YAxis:      chart.YAxis{Name: "ASL Score"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Models",
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(violet),
			},
		},
	}
	return renderPNG(ch.Render)
}

// pointStyle draws dots without connecting lines.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    5,
		DotColor:    col,
	}
}

func renderPNG(render func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return buf.Bytes(), nil
}

// barWidth sizes bars so that bars plus equal spacing fit the canvas.
func barWidth(width, bars int) int {
	if bars <= 0 {
		return 0
	}
	w := (width - 120) / (bars * 2)
	if w < 8 {
		w = 8
	}
	if w > 80 {
		w = 80
	}
	return w
}

func distinct(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

func maxCount(counts []int) int {
	m := 1
	for _, c := range counts {
		if c > m {
			m = c
		}
	}
	return m
}
