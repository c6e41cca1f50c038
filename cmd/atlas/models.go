package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tokenworks/atlas/pkg/catalog"
	"tokenworks/atlas/pkg/hardware"
)

var modelsFlags struct {
	family      string
	feasibility string
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect the model catalog",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog models",
	Long: `List the models Atlas can estimate, optionally filtered.

Examples:
  # All models
  atlas models list

  # Only Meta models
  atlas models list --family meta

  # Only models trainable on consumer hardware
  atlas models list --feasibility local_feasible`,
	RunE: runModelsList,
}

var modelsShowCmd = &cobra.Command{
	Use:   "show <model>",
	Short: "Show one model's specification",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsShow,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsShowCmd)

	modelsListCmd.Flags().StringVar(&modelsFlags.family, "family", "", "filter by model family")
	modelsListCmd.Flags().StringVar(&modelsFlags.feasibility, "feasibility", "", "filter by feasibility (local_feasible, cloud_only, api_only)")
}

func runModelsList(cmd *cobra.Command, args []string) error {
	registry := catalog.NewRegistry()
	specs := registry.List(catalog.Filter{
		Family:      catalog.Family(modelsFlags.family),
		Feasibility: catalog.Feasibility(modelsFlags.feasibility),
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tFAMILY\tPARAMS\tMEMORY\tFEASIBILITY")
	for _, s := range specs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fB\t%.0fGB\t%s\n",
			s.ID, s.DisplayName, s.Family, s.ParamsBillions(), s.MemoryGB, s.Feasibility)
	}
	return w.Flush()
}

func runModelsShow(cmd *cobra.Command, args []string) error {
	registry := catalog.NewRegistry()
	s, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", s.DisplayName, s.ID)
	fmt.Printf("  Family:            %s\n", s.Family)
	fmt.Printf("  Parameters:        %.1fB\n", s.ParamsBillions())
	fmt.Printf("  Context window:    %d tokens\n", s.ContextWindow)
	fmt.Printf("  Base memory:       %.0f GB\n", s.MemoryGB)
	fmt.Printf("  Memory multiplier: %.1fx\n", s.MemoryMultiplier)
	fmt.Printf("  Feasibility:       %s\n", s.Feasibility)
	if s.APITrainPricePer1K > 0 {
		fmt.Printf("  API training:      $%.4f per 1K tokens\n", s.APITrainPricePer1K)
	}
	if s.HasAPI() {
		fmt.Printf("  API usage:         $%.4f per 1K tokens\n", s.APIUsagePricePer1K)
	}

	optimal := catalog.ChinchillaTokens(s.Params)
	fmt.Printf("  Optimal corpus:    %.1fB tokens (%.2g FLOPs full tune)\n",
		float64(optimal)/1e9, catalog.ComputeBudget(s.Params, optimal))

	trainMemory := s.MemoryGB * s.MemoryMultiplier
	if spec, count, ok := hardware.Select(trainMemory, true); ok {
		fmt.Printf("  Full-tune rig:     %dx %s (%.0f GB needed)\n", count, spec.DisplayName, trainMemory)
	} else {
		fmt.Printf("  Full-tune rig:     none (%.0f GB exceeds consumer hardware)\n", trainMemory)
	}
	return nil
}
