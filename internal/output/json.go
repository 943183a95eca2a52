package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mrzor/approxclock/internal/report"
)

// JSONFormatter renders a report as one JSON document.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter.
func (f JSONFormatter) Format(w io.Writer, r *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
