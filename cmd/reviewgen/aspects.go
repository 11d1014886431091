package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var aspectsJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var aspectsCmd = &cobra.Command{
	Use:   "aspects",
	Short: "List the aspects of the active taxonomy",
	Args:  cobra.NoArgs,
	RunE:  runAspects,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(aspectsCmd)
	aspectsCmd.Flags().BoolVar(&aspectsJSON, "json", false, "Print aspect -> synonyms as JSON")
}

func runAspects(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	tax := gen.Taxonomy()

	if aspectsJSON {
		return printJSON(cmd, map[string]interface{}{
			"total_aspects": tax.Len(),
			"aspects":       tax.SynonymMap(),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d aspects (%s)\n", tax.Len(), gen.Style())
	for _, key := range tax.Keys() {
		fmt.Fprintf(out, "  %-22s %d problems  %s\n", key, len(tax.Problems(key)), strings.Join(tax.Synonyms(key), ", "))
	}
	return nil
}
