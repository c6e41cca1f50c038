package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tokenworks/atlas/pkg/catalog"
	"tokenworks/atlas/pkg/costing"
	"tokenworks/atlas/pkg/license"
	"tokenworks/atlas/pkg/report"
	"tokenworks/atlas/pkg/roi"
)

var roiFlags struct {
	tokens        int64
	monthlyTokens int64
	format        string
	output        string
}

var roiCmd = &cobra.Command{
	Use:   "roi <model>",
	Short: "Analyze return on investment for fine-tuning",
	Long: `Compare fine-tuning cost against ongoing hosted-API spend and
compute the break-even timeline, savings projections, and investment
risks.

Examples:
  # Break-even for a 10M-token corpus at 500K tokens/month usage
  atlas roi llama-2-7b --tokens 10000000 --monthly-tokens 500000

  # Full analysis as JSON
  atlas roi mistral-7b --tokens 5000000 --monthly-tokens 1000000 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runROI,
}

func init() {
	rootCmd.AddCommand(roiCmd)

	roiCmd.Flags().Int64VarP(&roiFlags.tokens, "tokens", "t", 0, "training corpus size in tokens (required)")
	roiCmd.Flags().Int64VarP(&roiFlags.monthlyTokens, "monthly-tokens", "m", 0, "expected monthly inference volume in tokens (required)")
	roiCmd.Flags().StringVarP(&roiFlags.format, "format", "f", "text", "output format (text, json)")
	roiCmd.Flags().StringVarP(&roiFlags.output, "output", "o", "", "write output to a file instead of stdout")
	_ = roiCmd.MarkFlagRequired("tokens")
	_ = roiCmd.MarkFlagRequired("monthly-tokens")
}

func runROI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	lic := license.NewManager(license.Tier(cfg.License.Tier))
	if !lic.HasAccess(license.FeatureROIAnalysis) {
		return fmt.Errorf("roi analysis requires a premium plan (current tier: %s)", lic.Tier())
	}

	registry := catalog.NewRegistry()
	model, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	source := newPricingSource(cfg, lic, logger, nil)
	engine := costing.NewEngine(source, scalingFromConfig(cfg.Costing), logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	estimates, err := engine.Estimate(ctx, costing.Request{
		Model:             model,
		Tokens:            roiFlags.tokens,
		ElectricityRegion: cfg.Costing.ElectricityRegion,
	})
	if err != nil {
		return err
	}

	analysis, err := roi.NewAnalyzer(logger).Analyze(model, estimates, roiFlags.monthlyTokens)
	if err != nil {
		return err
	}

	if roiFlags.format == "json" {
		rep := report.New(model.ID, roiFlags.tokens)
		rep.Estimates = estimates
		rep.ROI = &analysis
		return writeReport(rep, "json", roiFlags.output, true)
	}
	return printROI(analysis)
}

func printROI(a roi.Analysis) error {
	w := os.Stdout
	fmt.Fprintf(w, "ROI analysis for %s\n", a.ModelID)
	fmt.Fprintf(w, "  Usage pattern:    %s (%d tokens/month)\n", a.Pattern, a.MonthlyTokens)
	fmt.Fprintf(w, "  Monthly API cost: $%.2f\n", a.MonthlyAPICostUSD)
	fmt.Fprintf(w, "  Monthly savings:  $%.2f\n", a.MonthlySavingsUSD)
	if a.HasBreakEven() {
		fmt.Fprintf(w, "  Break-even:       %.1f months (%s)\n", a.BreakEvenMonths, a.Category)
	} else {
		fmt.Fprintf(w, "  Break-even:       never (%s)\n", a.Category)
	}

	fmt.Fprintln(w, "\nScenarios:")
	for _, s := range a.Scenarios {
		be := "never"
		if s.HasBreakEven() {
			be = fmt.Sprintf("%.1f months", s.BreakEvenMonths)
		}
		fmt.Fprintf(w, "  %-16s %s via %s: $%.2f, break-even %s, 24mo net $%.2f\n",
			s.Name, s.Estimate.Approach, s.Estimate.Provider,
			s.Estimate.CostUSD, be, s.Savings24MoUSD)
	}

	fmt.Fprintln(w, "\nProjections:")
	for _, p := range a.Projections {
		marker := " "
		if p.BreakEvenAchieved {
			marker = "+"
		}
		fmt.Fprintf(w, "  %s %2d months: $%.2f cumulative (%.0f%% ROI)\n",
			marker, p.Months, p.CumulativeSavingsUSD, p.ROIPercent)
	}

	fmt.Fprintf(w, "\nRisk: %s\n", a.Risk.Overall)
	for _, note := range a.Risk.Notes {
		fmt.Fprintf(w, "  - %s\n", note)
	}
	return nil
}
