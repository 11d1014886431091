package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mlorentedev/hotelreviews/internal/job"
	"github.com/mlorentedev/hotelreviews/internal/progress"
	"github.com/mlorentedev/hotelreviews/internal/sink"
)

//nolint:gochecknoglobals // Cobra boilerplate
var totalRecords int

//nolint:gochecknoglobals // Cobra boilerplate
var chunkSize int

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var quiet bool

//nolint:gochecknoglobals // Cobra boilerplate
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a balanced dataset into chunked JSON files",
	Long: `Generate a full balanced dataset locally and write it as numbered JSON
parts plus a README.md dataset card.

Example:
  reviewgen generate
  reviewgen generate --total 10000 --chunk-size 2500 --out small_run
  reviewgen generate --style booking --seed 42`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVar(&totalRecords, "total", 0, "Number of reviews to generate (default from config)")
	generateCmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Reviews per output file (default from config)")
	generateCmd.Flags().StringVar(&outputDir, "out", "", "Output directory (default output_root/output_dir from config)")
	generateCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not draw the progress bar")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("total") {
		cfg.TotalRecords = totalRecords
	}
	if cmd.Flags().Changed("chunk-size") {
		cfg.ChunkSize = chunkSize
	}
	dir := filepath.Join(cfg.OutputRoot, cfg.OutputDir)
	if outputDir != "" {
		dir = outputDir
	}

	gen, err := newGenerator(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	runner := job.New(gen, job.WithMaxTotal(cfg.MaxTotalRecords))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = runner.Start(ctx, job.Request{
		TotalRecords: cfg.TotalRecords,
		ChunkSize:    cfg.ChunkSize,
		Sink:         &sink.DirSink{Dir: dir},
	})
	if err != nil {
		return errors.Wrap(err, "starting generation")
	}
	cancelOnSignal := context.AfterFunc(ctx, func() { _ = runner.Cancel() })
	defer cancelOnSignal()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating %d %s reviews over %d aspects into %s\n",
		cfg.TotalRecords, gen.Style(), gen.Taxonomy().Len(), dir)

	var barOut io.Writer = out
	if quiet {
		barOut = io.Discard
	}
	bar := progress.New(barOut, cfg.TotalRecords, "reviews")
	poll := func(context.Context) (job.Status, error) { return runner.Status(), nil }
	status, err := follow(context.Background(), poll, bar, 200*time.Millisecond)
	if err != nil {
		return err
	}
	if status.Phase == job.PhaseFailed {
		bar.Fail("generation failed: " + status.Error)
		return errors.Errorf("generation failed: %s", status.Error)
	}
	bar.Complete(fmt.Sprintf("Generated %d reviews", status.Produced))

	for _, o := range status.Outputs {
		fmt.Fprintf(out, "  %s\n", o)
	}
	return nil
}
