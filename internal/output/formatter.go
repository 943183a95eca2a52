package output

import (
	"fmt"
	"io"

	"github.com/mrzor/approxclock/internal/config"
	"github.com/mrzor/approxclock/internal/report"
)

// Formatter writes a report in one output format.
type Formatter interface {
	Format(w io.Writer, r *report.Report) error
}

// New returns the formatter for a config format name.
func New(format string) (Formatter, error) {
	switch format {
	case config.FormatText:
		return TextFormatter{}, nil
	case config.FormatJSON:
		return JSONFormatter{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", format)
	}
}
