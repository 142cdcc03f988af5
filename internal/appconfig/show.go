package appconfig

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}

	strategy, bins := cfg.Histogram()
	low, high := cfg.HeatmapBounds()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:            %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Profile:          %s\n", cfg.PageProfile())
	fmt.Fprintf(out, "  Sources:          %v\n", cfg.SourceList())
	fmt.Fprintf(out, "  Sampling Source:  %s\n", cfg.SamplingSource)
	fmt.Fprintf(out, "  Fallback:         %v\n", cfg.Fallback)
	fmt.Fprintf(out, "  Output Dir:       %s\n", cfg.OutputDirectory())
	fmt.Fprintf(out, "  Request Timeout:  %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Histogram:        %s (%d bins)\n", strategy, bins)
	fmt.Fprintf(out, "  Heatmap Bounds:   %.0f-%.0f\n", low, high)
	fmt.Fprintf(out, "  Top N:            %d\n", cfg.TopCount())
	fmt.Fprintf(out, "  Render Plots:     %v\n", cfg.RenderPlots)
	fmt.Fprintf(out, "  Serve Port:       %d\n", cfg.Port())
}

// DumpConfig pretty-prints the raw configuration struct.
func DumpConfig(out io.Writer, cfg Config, colored bool) {
	pp.ColoringEnabled = colored
	_, _ = pp.Fprintln(out, cfg)
}
