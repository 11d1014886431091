package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlorentedev/hotelreviews/internal/generator"
)

//nolint:gochecknoglobals // Cobra boilerplate
var sampleCount int

//nolint:gochecknoglobals // Cobra boilerplate
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a few unbalanced sample reviews as JSON",
	Long: `Render sample reviews with an unbalanced draw over the whole taxonomy
and print them to stdout. Useful for checking a custom taxonomy or style.

Example:
  reviewgen sample
  reviewgen sample --count 5 --style booking`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().IntVarP(&sampleCount, "count", "n", 3, fmt.Sprintf("Number of reviews to print (1-%d)", generator.MaxBatch))
}

func runSample(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg, newLogger(cfg))
	if err != nil {
		return err
	}

	records, err := gen.Batch(sampleCount)
	if err != nil {
		return err
	}
	return printJSON(cmd, records)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
