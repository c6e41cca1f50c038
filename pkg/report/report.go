// Package report assembles analysis results into a stable serializable
// shape and exports them as JSON or CSV.
//
// Field names are part of the export contract: downstream tooling
// parses them, so renames are breaking changes.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tokenworks/atlas/pkg/chunks"
	"tokenworks/atlas/pkg/costing"
	"tokenworks/atlas/pkg/recommend"
	"tokenworks/atlas/pkg/roi"
)

// Report is a complete analysis result.
type Report struct {
	// AnalysisID uniquely identifies this run.
	AnalysisID string `json:"analysis_id"`

	// GeneratedAt is the report timestamp.
	GeneratedAt time.Time `json:"generated_at"`

	// ModelID is the catalog model analyzed.
	ModelID string `json:"model_id"`

	// Tokens is the training corpus size the estimates priced.
	Tokens int64 `json:"tokens"`

	// Estimates is the full comparison matrix, cheapest first.
	Estimates []costing.Estimate `json:"estimates"`

	// Ranking is the prioritized recommendation list, when requested.
	Ranking *recommend.Ranking `json:"ranking,omitempty"`

	// ROI is the break-even analysis, when requested.
	ROI *roi.Analysis `json:"roi,omitempty"`

	// ChunkStats is the chunk efficiency analysis, when the input
	// arrived as chunks.
	ChunkStats *chunks.Stats `json:"chunk_stats,omitempty"`
}

// New creates a report skeleton with a fresh analysis ID.
func New(modelID string, tokens int64) *Report {
	return &Report{
		AnalysisID:  uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		ModelID:     modelID,
		Tokens:      tokens,
	}
}

// ExportError wraps a failure while writing a report.
type ExportError struct {
	// Format is the export format ("json", "csv").
	Format string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("failed to export report as %s: %v", e.Format, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ExportError) Unwrap() error {
	return e.Cause
}
