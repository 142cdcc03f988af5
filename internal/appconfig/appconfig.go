// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// LegacyConfigPath is tried when DefaultConfigPath does not exist.
	LegacyConfigPath = "config.json"
	// defaultRequestTimeout bounds a single HTTP fetch of a results source.
	defaultRequestTimeout = 15 * time.Second
	// defaultHistogramBins matches the distribution chart on the results page.
	defaultHistogramBins = 10
	// defaultTopN is how many models the bar, line and heatmap views show.
	defaultTopN = 10
	// defaultHeatmapLow and defaultHeatmapHigh bound the heatmap normalization.
	defaultHeatmapLow  = 60.0
	defaultHeatmapHigh = 100.0
	// defaultServePort is used by the static file server.
	defaultServePort = 8080
)

// Histogram strategy names.
const (
	HistogramFixedCount   = "fixed-count"
	HistogramIntegerWidth = "integer-width"
)

// DefaultSources are tried in order when the config names none.
var DefaultSources = []string{"assets/data/results.json", "assets/data/models.json"}

// Config represents the top-level application configuration.
type Config struct {
	Sources           []string `json:"sources" mapstructure:"sources"`
	SamplingSource    string   `json:"samplingSource,omitempty" mapstructure:"samplingSource"`
	Fallback          bool     `json:"fallback" mapstructure:"fallback"`
	Profile           string   `json:"profile" mapstructure:"profile"`
	OutputDir         string   `json:"outputDir,omitempty" mapstructure:"outputDir"`
	MethodologyPath   string   `json:"methodologyPath,omitempty" mapstructure:"methodologyPath"`
	LogFile           string   `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug             bool     `json:"debug" mapstructure:"debug"`
	TimeoutSeconds    int      `json:"timeout,omitempty" mapstructure:"timeout"`
	HistogramStrategy string   `json:"histogramStrategy,omitempty" mapstructure:"histogramStrategy"`
	HistogramBins     int      `json:"histogramBins,omitempty" mapstructure:"histogramBins"`
	HeatmapLow        float64  `json:"heatmapLow,omitempty" mapstructure:"heatmapLow"`
	HeatmapHigh       float64  `json:"heatmapHigh,omitempty" mapstructure:"heatmapHigh"`
	TopN              int      `json:"topN,omitempty" mapstructure:"topN"`
	RenderPlots       bool     `json:"renderPlots" mapstructure:"renderPlots"`
	ServePort         int      `json:"servePort,omitempty" mapstructure:"servePort"`
	ConfigPath        string   `json:"-" mapstructure:"-"`
}

// SetDefaults registers the default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sources", DefaultSources)
	v.SetDefault("fallback", true)
	v.SetDefault("profile", "leaderboard")
	v.SetDefault("outputDir", "site")
	v.SetDefault("debug", false)
	v.SetDefault("timeout", int(defaultRequestTimeout.Seconds()))
	v.SetDefault("histogramStrategy", HistogramFixedCount)
	v.SetDefault("histogramBins", defaultHistogramBins)
	v.SetDefault("heatmapLow", defaultHeatmapLow)
	v.SetDefault("heatmapHigh", defaultHeatmapHigh)
	v.SetDefault("topN", defaultTopN)
	v.SetDefault("renderPlots", true)
	v.SetDefault("servePort", defaultServePort)
}

// Default returns the configuration used when no file is present.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

// RequestTimeout returns the timeout for a single HTTP fetch, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SourceList returns the configured candidate sources with blanks removed.
func (c Config) SourceList() []string {
	var out []string
	for _, s := range c.Sources {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultSources...)
	}
	return out
}

// LogFilePath returns the path to the application log file. Empty means stdout only.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// OutputDirectory returns the site output directory, applying a default if not set.
func (c Config) OutputDirectory() string {
	if dir := strings.TrimSpace(c.OutputDir); dir != "" {
		return dir
	}
	return "site"
}

// PageProfile returns the configured profile name, applying a default if not set.
func (c Config) PageProfile() string {
	if p := strings.TrimSpace(c.Profile); p != "" {
		return p
	}
	return "leaderboard"
}

// Histogram returns the histogram strategy name and bin count with defaults applied.
func (c Config) Histogram() (string, int) {
	strategy := strings.TrimSpace(c.HistogramStrategy)
	if strategy == "" {
		strategy = HistogramFixedCount
	}
	bins := c.HistogramBins
	if bins <= 0 {
		bins = defaultHistogramBins
	}
	return strategy, bins
}

// HeatmapBounds returns the heatmap normalization range, falling back to 60-100
// when the configured range is empty or inverted.
func (c Config) HeatmapBounds() (float64, float64) {
	if c.HeatmapHigh <= c.HeatmapLow {
		return defaultHeatmapLow, defaultHeatmapHigh
	}
	return c.HeatmapLow, c.HeatmapHigh
}

// TopCount returns how many models the top-N views show.
func (c Config) TopCount() int {
	if c.TopN <= 0 {
		return defaultTopN
	}
	return c.TopN
}

// Port returns the static server port.
func (c Config) Port() int {
	if c.ServePort <= 0 {
		return defaultServePort
	}
	return c.ServePort
}

// Validate reports configuration values that cannot work.
func (c Config) Validate() error {
	strategy, _ := c.Histogram()
	switch strategy {
	case HistogramFixedCount, HistogramIntegerWidth:
	default:
		return fmt.Errorf("unknown histogram strategy %q (want %q or %q)", strategy, HistogramFixedCount, HistogramIntegerWidth)
	}
	if c.TimeoutSeconds < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

// Load reads the configuration at path through viper. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if _, err := os.Stat(LegacyConfigPath); err == nil {
				path = LegacyConfigPath
			}
		}
	}

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) || isNotFound(err) {
			cfg := Default()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not decode config file %q: %w", path, err)
	}
	cfg.ConfigPath = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration in %q: %w", path, err)
	}
	return cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}
