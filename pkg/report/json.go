package report

import (
	"encoding/json"
	"io"
)

// JSONExporter writes reports as a single JSON document.
type JSONExporter struct {
	// Pretty enables indented output.
	Pretty bool
}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{Pretty: pretty}
}

// Export writes the report to w.
func (e *JSONExporter) Export(r *Report, w io.Writer) error {
	var (
		data []byte
		err  error
	)
	if e.Pretty {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = json.Marshal(r)
	}
	if err != nil {
		return &ExportError{Format: "json", Cause: err}
	}
	if _, err := w.Write(data); err != nil {
		return &ExportError{Format: "json", Cause: err}
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return &ExportError{Format: "json", Cause: err}
	}
	return nil
}
