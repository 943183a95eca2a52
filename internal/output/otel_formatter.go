package output

import (
	"context"
	"time"

	"github.com/mrzor/approxclock/internal/attributes"
	"github.com/mrzor/approxclock/internal/report"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanFormatter publishes reports as OpenTelemetry spans.
type SpanFormatter struct {
	tracer    trace.Tracer
	evaluator *attributes.Evaluator
	warnings  []attribute.KeyValue
}

// NewSpanFormatter creates a SpanFormatter. evaluator may be nil. warnings
// are attached to every root span, typically from attributes.ResolveTraceID.
func NewSpanFormatter(tracer trace.Tracer, evaluator *attributes.Evaluator, warnings []attribute.KeyValue) *SpanFormatter {
	return &SpanFormatter{
		tracer:    tracer,
		evaluator: evaluator,
		warnings:  warnings,
	}
}

// Emit records r as a clock.calibration span with one child per phase.
func (f *SpanFormatter) Emit(ctx context.Context, r *report.Report) {
	start, end := runBounds(r)

	ctx, root := f.tracer.Start(ctx, "clock.calibration",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithTimestamp(start),
		trace.WithAttributes(calibrationAttributes(r)...),
	)

	if f.evaluator != nil {
		root.SetAttributes(f.evaluator.Evaluate(r)...)
	}
	if len(f.warnings) > 0 {
		root.SetAttributes(f.warnings...)
	}

	for _, p := range r.Phases {
		_, span := f.tracer.Start(ctx, "clock.phase."+p.Name,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithTimestamp(time.Unix(0, p.StartNs)),
		)
		span.SetAttributes(attribute.Int64("clock.phase.duration_ns", p.DurationNs))
		span.End(trace.WithTimestamp(time.Unix(0, p.EndNs)))
	}

	if r.Degenerate {
		root.SetStatus(codes.Error, "approximate clock did not advance during calibration")
	} else {
		root.SetStatus(codes.Ok, "")
	}
	root.End(trace.WithTimestamp(end))
}

// runBounds spans all phases, or the calibration window when none were
// recorded.
func runBounds(r *report.Report) (time.Time, time.Time) {
	if len(r.Phases) == 0 {
		start := time.Unix(0, r.WallAnchorNs)
		return start, start.Add(time.Duration(r.WindowNs))
	}

	startNs, endNs := r.Phases[0].StartNs, r.Phases[0].EndNs
	for _, p := range r.Phases[1:] {
		startNs = min(startNs, p.StartNs)
		endNs = max(endNs, p.EndNs)
	}
	return time.Unix(0, startNs), time.Unix(0, endNs)
}

func calibrationAttributes(r *report.Report) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("clock.approx.unit", r.Unit),
		attribute.Bool("clock.wall.monotonic", r.Monotonic),
		attribute.Int("clock.calibration.replicates", r.Replicates),
		attribute.Float64("clock.calibration.rate_ns_per_unit", r.Rate),
		attribute.Float64("clock.calibration.frequency_hz", r.FrequencyHz),
		attribute.Bool("clock.calibration.degenerate", r.Degenerate),
		attribute.Bool("clock.calibration.spanning", r.Spanning),
		attribute.Int64("clock.calibration.window_ns", r.WindowNs),
		attribute.Float64("clock.calibration.skew_median_ns", r.SkewMedianNs),
		attribute.Int64("clock.calibration.residual_max_ns", r.ResidualMaxNs),
		attribute.Int64("clock.verify.error_ns", r.VerifyErrorNs),
		attribute.Float64("clock.read.wall_ns", r.WallReadNs),
		attribute.Float64("clock.read.approx_ns", r.ApproxReadNs),
	}
}
