package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tokenworks/atlas/pkg/hardware"
	"tokenworks/atlas/pkg/license"
)

var quoteCmd = &cobra.Command{
	Use:   "quote [hardware]",
	Short: "Show current GPU hourly rates",
	Long: `Show per-hour GPU rates across providers, cheapest first.

With no argument every hardware class is listed. Rates carry a
confidence marker: live (fetched now), cached (recent fetch), or
fallback (bundled table).

Examples:
  # All classes
  atlas quote

  # One class
  atlas quote a100`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	lic := license.NewManager(license.Tier(cfg.License.Tier))
	source := newPricingSource(cfg, lic, logger, nil)

	var classes []hardware.Class
	if len(args) == 1 {
		spec, err := hardware.Get(hardware.Class(args[0]))
		if err != nil {
			return err
		}
		classes = []hardware.Class{spec.Class}
	} else {
		for _, spec := range hardware.List() {
			classes = append(classes, spec.Class)
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HARDWARE\tPROVIDER\tUSD/HOUR\tCONFIDENCE")
	for _, class := range classes {
		for _, q := range source.QuoteAll(ctx, class) {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", q.Hardware, q.Provider, q.HourlyUSD, q.Confidence)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// For a single class, summarize the best rate.
	if len(classes) == 1 {
		if best, ok := source.Cheapest(ctx, classes[0]); ok {
			fmt.Printf("\ncheapest: %s at $%.2f/hour (%s)\n", best.Provider, best.HourlyUSD, best.Confidence)
		}
	}
	return nil
}
