package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVExporter writes the estimate matrix as one flat row per approach.
// Ranking data, when present, contributes rank and caution columns;
// nested ROI and chunk structures are out of scope for the tabular
// format and live in the JSON export.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{IncludeHeader: includeHeader}
}

// csvHeader is the stable column order.
var csvHeader = []string{
	"analysis_id",
	"model_id",
	"tokens",
	"approach",
	"hardware",
	"gpu_count",
	"provider",
	"hourly_usd",
	"training_hours",
	"cost_usd",
	"cost_low_usd",
	"cost_high_usd",
	"confidence",
	"rank",
	"caution",
}

// Export writes the report's estimates to w, one row per approach.
func (e *CSVExporter) Export(r *Report, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write(csvHeader); err != nil {
			return &ExportError{Format: "csv", Cause: err}
		}
	}

	ranks := rankIndex(r)
	for _, est := range r.Estimates {
		rank, cautionText := "", ""
		if entry, ok := ranks[optionKey(string(est.Approach), string(est.Hardware), est.Provider)]; ok {
			rank = strconv.Itoa(entry.Rank)
			cautionText = entry.Caution
		}

		row := []string{
			r.AnalysisID,
			r.ModelID,
			strconv.FormatInt(r.Tokens, 10),
			string(est.Approach),
			string(est.Hardware),
			strconv.Itoa(est.GPUCount),
			est.Provider,
			formatUSD(est.HourlyUSD),
			strconv.FormatFloat(est.TrainingHours, 'f', 2, 64),
			formatUSD(est.CostUSD),
			formatUSD(est.CostLowUSD),
			formatUSD(est.CostHighUSD),
			string(est.Confidence),
			rank,
			cautionText,
		}
		if err := writer.Write(row); err != nil {
			return &ExportError{Format: "csv", Cause: err}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &ExportError{Format: "csv", Cause: err}
	}
	return nil
}

type rankEntry struct {
	Rank    int
	Caution string
}

func rankIndex(r *Report) map[string]rankEntry {
	out := make(map[string]rankEntry)
	if r.Ranking == nil {
		return out
	}
	for _, entry := range r.Ranking.Entries {
		est := entry.Estimate
		out[optionKey(string(est.Approach), string(est.Hardware), est.Provider)] = rankEntry{
			Rank:    entry.Rank,
			Caution: entry.Caution,
		}
	}
	return out
}

func optionKey(approach, hw, provider string) string {
	return fmt.Sprintf("%s|%s|%s", approach, hw, provider)
}

func formatUSD(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
