// internal/cli/root.go
// Package evaloop wires the evaloop commands.
package evaloop

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/evaloop/internal/appconfig"
	"github.com/mwiater/evaloop/internal/histogram"
	"github.com/mwiater/evaloop/internal/loader"
	"github.com/mwiater/evaloop/internal/logging"
	"github.com/mwiater/evaloop/internal/results"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

var boolFlags = []string{"debug", "fallback", "renderPlots"}
var stringFlags = []string{"logFile", "profile", "outputDir", "samplingSource"}
var intFlags = []string{"timeout", "topN"}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "evaloop",
	Short:         "evaloop: build and browse code-generation leaderboards",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// Copy config values into unset flags so flags and viper agree.
		for _, name := range boolFlags {
			if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
				_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(name)))
			}
		}
		for _, name := range stringFlags {
			if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
				_ = cmd.Flags().Set(name, viper.GetString(name))
			}
		}
		for _, name := range intFlags {
			if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
				_ = cmd.Flags().Set(name, strconv.Itoa(viper.GetInt(name)))
			}
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = cfgFile
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath(), currentConfig.Debug); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (JSON or YAML)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().StringSlice("sources", nil, "results sources to try in order (files or http(s) URLs)")
	rootCmd.PersistentFlags().String("samplingSource", "", "optional greedy vs temperature sampling JSON")
	rootCmd.PersistentFlags().Bool("fallback", true, "use the embedded dataset when every source fails")
	rootCmd.PersistentFlags().String("profile", results.ProfileLeaderboard, "page profile (leaderboard or results)")
	rootCmd.PersistentFlags().String("outputDir", "site", "site output directory")
	rootCmd.PersistentFlags().Int("timeout", 15, "seconds allowed for each HTTP source")
	rootCmd.PersistentFlags().Int("topN", 10, "models shown in top-N views")
	rootCmd.PersistentFlags().Bool("renderPlots", true, "render PNG plots during build")

	for _, name := range []string{"debug", "logFile", "sources", "samplingSource", "fallback", "profile", "outputDir", "timeout", "topN", "renderPlots"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig points viper at the config file.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and sets safe defaults.
func ensureConfigLoaded() error {
	appconfig.SetDefaults(viper.GetViper())
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// config returns the merged configuration, or the defaults when the pre-run hook did not run.
func config() appconfig.Config {
	if currentConfig == nil {
		return appconfig.Default()
	}
	return *currentConfig
}

// cmdContext returns the command's context, or a background context when run outside Execute.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func loaderOptions(cfg appconfig.Config) loader.Options {
	return loader.Options{
		Fallback: cfg.Fallback,
		Profile:  cfg.PageProfile(),
		Timeout:  cfg.RequestTimeout(),
	}
}

// loadResults runs the candidate chain and logs how it went.
func loadResults(ctx context.Context, cfg appconfig.Config) (loader.Outcome, error) {
	outcome := loader.Load(ctx, cfg.SourceList(), loaderOptions(cfg))
	logging.LogOutcome("loader", outcome)
	if !outcome.Usable() {
		return outcome, fmt.Errorf("no results available: %w", outcome.Err())
	}
	return outcome, nil
}

func loadSampling(ctx context.Context, cfg appconfig.Config) ([]results.SamplingComparison, error) {
	location := strings.TrimSpace(cfg.SamplingSource)
	if location == "" {
		return nil, nil
	}
	return loader.LoadSampling(ctx, location, loaderOptions(cfg))
}

func binner(cfg appconfig.Config) (histogram.Binner, error) {
	strategy, bins := cfg.Histogram()
	return histogram.ByName(strategy, bins)
}
