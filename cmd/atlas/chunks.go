package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tokenworks/atlas/pkg/chunks"
)

var chunksFlags struct {
	limit  int
	format string
}

var chunksCmd = &cobra.Command{
	Use:   "chunks <file>",
	Short: "Analyze training-data chunk efficiency",
	Long: `Grade how well a chunked corpus fills its token budget.

The input file carries one integer token count per line (blank lines
ignored). The analysis reports distribution, over-limit chunks, and an
efficiency score in [0,100].

Examples:
  # Against the configured default limit
  atlas chunks counts.txt

  # Against an explicit limit
  atlas chunks counts.txt --limit 1024 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runChunks,
}

func init() {
	rootCmd.AddCommand(chunksCmd)

	chunksCmd.Flags().IntVarP(&chunksFlags.limit, "limit", "l", 0, "per-chunk token limit (default from config)")
	chunksCmd.Flags().StringVarP(&chunksFlags.format, "format", "f", "text", "output format (text, json)")
}

func runChunks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	counts, err := readTokenCounts(args[0])
	if err != nil {
		return err
	}

	limit := chunksFlags.limit
	if limit == 0 {
		limit = cfg.Chunks.DefaultTokenLimit
	}

	stats, err := chunks.NewAnalyzer(cfg.Chunks.BucketEdges).Analyze(counts, limit)
	if err != nil {
		return err
	}

	if chunksFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	printChunkStats(stats)
	return nil
}

// readTokenCounts parses one integer per line.
func readTokenCounts(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open counts file: %w", err)
	}
	defer f.Close()

	var counts []int
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("invalid token count on line %d: %q", line, text)
		}
		counts = append(counts, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read counts file: %w", err)
	}
	return counts, nil
}

func printChunkStats(s chunks.Stats) {
	fmt.Printf("Chunks:      %d (%d tokens total)\n", s.TotalChunks, s.TotalTokens)
	if s.TotalChunks > 0 {
		fmt.Printf("Tokens:      min %d, mean %.1f, max %d (limit %d)\n",
			s.MinTokens, s.MeanTokens, s.MaxTokens, s.TokenLimit)
		fmt.Printf("Over limit:  %d (%.1f%%)\n", s.OverLimit, s.OverLimitPercent)
	}
	fmt.Printf("Efficiency:  %.1f/100\n", s.EfficiencyScore)

	fmt.Println("\nDistribution:")
	for _, b := range s.Distribution {
		fmt.Printf("  %-10s %d\n", b.Label, b.Count)
	}

	if len(s.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, r := range s.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
	}
}
