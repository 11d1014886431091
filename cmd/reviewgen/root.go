package main

import (
	"log/slog"
	"os"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mlorentedev/hotelreviews/internal/config"
	"github.com/mlorentedev/hotelreviews/internal/generator"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var style string

//nolint:gochecknoglobals // Cobra boilerplate
var taxonomyPath string

//nolint:gochecknoglobals // Cobra boilerplate
var seed int64

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "reviewgen",
	Short: "Generate synthetic negative hotel reviews",
	Long: `reviewgen builds balanced, labeled datasets of short negative hotel
reviews from a fixed aspect taxonomy without running the HTTP service.

It can also follow a run started on a remote hotelreviews server.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (per-aspect distribution)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config.yaml (HOTELREVIEWS_* env vars also apply)")
	rootCmd.PersistentFlags().StringVar(&style, "style", "", "Template style: descriptive or booking (default from config)")
	rootCmd.PersistentFlags().StringVar(&taxonomyPath, "taxonomy", "", "Path to a custom taxonomy YAML file")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed, 0 for time-based (default from config)")
}

// loadConfig reads the config file and applies the persistent flag
// overrides that were set on the command line.
func loadConfig(cmd *cobra.Command) (cfg config.Config, err error) {
	cfg, err = config.Load(configFile)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("style") {
		cfg.Style = style
	}
	if flags.Changed("taxonomy") {
		cfg.TaxonomyPath = taxonomyPath
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

// newLogger returns a text logger on stderr. Generation progress is drawn
// by the bar, so the generator only logs at warn unless verbose is set.
func newLogger(cfg config.Config) logr.Logger {
	level, _ := config.ParseLevel(cfg.LogLevel)
	switch {
	case verbose:
		level = slog.Level(-1)
	case level < slog.LevelWarn:
		level = slog.LevelWarn
	}
	return logr.FromSlogHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newGenerator(cfg config.Config, logger logr.Logger) (*generator.Generator, error) {
	gen, err := generator.ForStyle(cfg.Style, cfg.TaxonomyPath,
		generator.WithLogger(logger.WithName("generator")),
		generator.WithSeed(cfg.Seed),
		generator.WithLogInterval(cfg.LogInterval),
	)
	if err != nil {
		return nil, errors.Wrap(err, "building generator")
	}
	return gen, nil
}
