package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tokenworks/atlas/pkg/catalog"
	"tokenworks/atlas/pkg/costing"
	"tokenworks/atlas/pkg/license"
	"tokenworks/atlas/pkg/recommend"
	"tokenworks/atlas/pkg/report"
)

var estimateFlags struct {
	tokens     int64
	approaches []string
	rank       string
	format     string
	output     string
	pretty     bool
}

var estimateCmd = &cobra.Command{
	Use:   "estimate <model>",
	Short: "Estimate fine-tuning costs for a model",
	Long: `Estimate fine-tuning costs across every feasible approach and
hardware combination, sorted cheapest first.

Examples:
  # Full comparison matrix
  atlas estimate llama-2-7b --tokens 10000000

  # Only adapter approaches
  atlas estimate llama-2-7b --tokens 10000000 --approaches local_lora,local_qlora

  # Ranked recommendations as JSON
  atlas estimate mistral-7b --tokens 5000000 --rank balanced --format json

  # CSV export to a file (premium)
  atlas estimate llama-2-13b --tokens 10000000 --format csv --output report.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().Int64VarP(&estimateFlags.tokens, "tokens", "t", 0, "training corpus size in tokens (required)")
	estimateCmd.Flags().StringSliceVar(&estimateFlags.approaches, "approaches", nil, "restrict to specific approaches")
	estimateCmd.Flags().StringVar(&estimateFlags.rank, "rank", "", "rank results by priority (cost, speed, balanced)")
	estimateCmd.Flags().StringVarP(&estimateFlags.format, "format", "f", "table", "output format (table, json, csv)")
	estimateCmd.Flags().StringVarP(&estimateFlags.output, "output", "o", "", "write output to a file instead of stdout")
	estimateCmd.Flags().BoolVar(&estimateFlags.pretty, "pretty", true, "indent JSON output")
	_ = estimateCmd.MarkFlagRequired("tokens")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	lic := license.NewManager(license.Tier(cfg.License.Tier))

	if estimateFlags.format == "csv" && !lic.HasAccess(license.FeatureCSVExport) {
		return fmt.Errorf("csv export requires a premium plan (current tier: %s)", lic.Tier())
	}

	registry := catalog.NewRegistry()
	model, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	requested, err := parseApproaches(estimateFlags.approaches)
	if err != nil {
		return err
	}
	approaches := gateApproaches(requested, lic)

	source := newPricingSource(cfg, lic, logger, nil)
	engine := costing.NewEngine(source, scalingFromConfig(cfg.Costing), logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	estimates, err := engine.Estimate(ctx, costing.Request{
		Model:             model,
		Tokens:            estimateFlags.tokens,
		Approaches:        approaches,
		ElectricityRegion: cfg.Costing.ElectricityRegion,
	})
	if err != nil {
		return err
	}
	if len(estimates) == 0 {
		return fmt.Errorf("no feasible training options for %s under the requested constraints", model.ID)
	}

	rep := report.New(model.ID, estimateFlags.tokens)
	rep.Estimates = estimates

	if estimateFlags.rank != "" {
		weights := recommend.Weights{
			Cost: cfg.Recommend.CostWeight,
			Time: cfg.Recommend.TimeWeight,
		}
		ranking, err := recommend.NewRecommender(weights, logger).
			Recommend(estimates, recommend.Priority(estimateFlags.rank))
		if err != nil {
			return err
		}
		rep.Ranking = &ranking
	}

	return writeReport(rep, estimateFlags.format, estimateFlags.output, estimateFlags.pretty)
}

// writeReport serializes the report in the requested format, to a file
// when output names one.
func writeReport(rep *report.Report, format, output string, pretty bool) error {
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "json":
		return report.NewJSONExporter(pretty).Export(rep, w)
	case "csv":
		return report.NewCSVExporter(true).Export(rep, w)
	case "table":
		return printEstimateTable(rep, w)
	default:
		return fmt.Errorf("unknown format %q (valid: table, json, csv)", format)
	}
}

func printEstimateTable(rep *report.Report, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "APPROACH\tHARDWARE\tGPUS\tPROVIDER\tHOURS\tCOST\tRANGE\tCONFIDENCE\tNOTES")
	for _, est := range rep.Estimates {
		hw := string(est.Hardware)
		if hw == "" {
			hw = "-"
		}
		gpus := "-"
		if est.GPUCount > 0 {
			gpus = fmt.Sprintf("%d", est.GPUCount)
		}
		hours := "-"
		if est.TrainingHours > 0 {
			hours = fmt.Sprintf("%.1f", est.TrainingHours)
		}
		notes := ""
		if est.Borderline {
			notes = "tight fit"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t$%.2f\t$%.2f-$%.2f\t%s\t%s\n",
			est.Approach, hw, gpus, est.Provider, hours,
			est.CostUSD, est.CostLowUSD, est.CostHighUSD, est.Confidence, notes)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if rep.Ranking != nil {
		if top, ok := rep.Ranking.Top(); ok {
			fmt.Fprintf(w, "\nRecommended (%s): %s on %s via %s\n  %s\n",
				rep.Ranking.Priority, top.Estimate.Approach, top.Estimate.Hardware,
				top.Estimate.Provider, top.Justification)
			if top.Caution != "" {
				fmt.Fprintf(w, "  Caution: %s\n", top.Caution)
			}
		}
	}
	return nil
}
