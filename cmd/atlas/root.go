package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Atlas - AI fine-tuning cost estimator",
	Long: `Atlas estimates and compares fine-tuning costs across local hardware,
cloud GPU rentals, and managed fine-tuning APIs.

It provides:
  - Cost estimates for full, LoRA, and QLoRA fine-tuning
  - Live GPU pricing with cached and static fallbacks
  - ROI and break-even analysis against hosted-API usage
  - Priority-based recommendations (cost, speed, balanced)
  - Chunk efficiency analysis for training corpora`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "atlas.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
