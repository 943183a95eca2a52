package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mrzor/approxclock/internal/report"
	"github.com/olekukonko/tablewriter"
)

// TextFormatter renders a report as aligned tables.
type TextFormatter struct{}

// Format implements Formatter.
func (TextFormatter) Format(w io.Writer, r *report.Report) error {
	summary := tablewriter.NewWriter(w)
	summary.SetHeader([]string{"Calibration", "Value"})
	summary.SetAutoWrapText(false)
	summary.SetAlignment(tablewriter.ALIGN_LEFT)
	summary.AppendBulk([][]string{
		{"unit", r.Unit},
		{"monotonic wall clock", strconv.FormatBool(r.Monotonic)},
		{"replicates", strconv.Itoa(r.Replicates)},
		{"rate (ns/unit)", strconv.FormatFloat(r.Rate, 'g', 9, 64)},
		{"frequency", formatHz(r.FrequencyHz)},
		{"degenerate", strconv.FormatBool(r.Degenerate)},
		{"spanning fit", strconv.FormatBool(r.Spanning)},
		{"hold", time.Duration(r.HoldNs).String()},
		{"wall anchor", time.Unix(0, r.WallAnchorNs).UTC().Format(time.RFC3339Nano)},
		{"approx anchor", strconv.FormatUint(r.ApproxAnchor, 10)},
		{"window", time.Duration(r.WindowNs).String()},
		{"skew min/median/max", fmt.Sprintf("%.1fns / %.1fns / %.1fns", r.SkewMinNs, r.SkewMedianNs, r.SkewMaxNs)},
		{"backward pairs", strconv.Itoa(r.BackwardPairs)},
		{"max residual", time.Duration(r.ResidualMaxNs).String()},
		{"verify error", time.Duration(r.VerifyErrorNs).String()},
		{"wall read cost", fmt.Sprintf("%.1fns", r.WallReadNs)},
		{"approx read cost", fmt.Sprintf("%.1fns", r.ApproxReadNs)},
	})
	summary.Render()

	if len(r.Phases) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	phases := tablewriter.NewWriter(w)
	phases.SetHeader([]string{"Phase", "Start", "Duration"})
	phases.SetAutoWrapText(false)
	for _, p := range r.Phases {
		phases.Append([]string{
			p.Name,
			time.Unix(0, p.StartNs).UTC().Format(time.RFC3339Nano),
			time.Duration(p.DurationNs).String(),
		})
	}
	phases.Render()

	return nil
}

func formatHz(hz float64) string {
	switch {
	case hz >= 1e9:
		return fmt.Sprintf("%.3f GHz", hz/1e9)
	case hz >= 1e6:
		return fmt.Sprintf("%.3f MHz", hz/1e6)
	default:
		return fmt.Sprintf("%.0f Hz", hz)
	}
}
