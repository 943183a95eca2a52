// clockcal calibrates the approximate clock against the wall clock and
// reports how well the conversion holds up.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mrzor/approxclock/internal/attributes"
	"github.com/mrzor/approxclock/internal/config"
	"github.com/mrzor/approxclock/internal/metrics"
	"github.com/mrzor/approxclock/internal/otel"
	"github.com/mrzor/approxclock/internal/output"
	"github.com/mrzor/approxclock/internal/report"
	"github.com/mrzor/approxclock/internal/timesync"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Version information injected by GoReleaser at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, config.ErrVersionRequested) || errors.Is(err, pflag.ErrHelp) {
			return
		}
		logrus.Fatalf("Error: %v", err)
	}
}

func setupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// calibrate runs the calibration phases and returns the report.
func calibrate(cfg *config.Config) *report.Report {
	src := timesync.SystemSource(cfg.AllowMonotonic)
	rec := report.NewRecorder(timesync.GetApproximateTime)

	var conv *timesync.Converter
	rec.Time("calibrate", func() {
		conv = timesync.NewConverter(src)
	})

	est := conv.Estimate()
	if cfg.Hold > 0 {
		rec.Time("hold", func() {
			time.Sleep(cfg.Hold)
		})
		rec.Time("recalibrate", func() {
			est = conv.SpanningEstimate()
		})
	}

	if est.Degenerate {
		logrus.Warnf("Approximate clock did not advance across %d calibration pairs, using rate 1", timesync.Replicates)
	}
	logrus.Debugf("Fitted rate %.6g ns/%s (spanning: %v)", est.Rate, est.Unit, est.Spanning)

	var rep *report.Report
	rec.Time("measure", func() {
		rep = report.Build(conv, est, src, report.Options{
			Monotonic: cfg.AllowMonotonic,
			Hold:      cfg.Hold,
			Samples:   cfg.Samples,
		})
	})

	// The measure phase only closes after Build, so phases are converted here.
	convert := est.Func()
	for _, p := range rec.Phases() {
		start, end := convert(p.Start), convert(p.End)
		rep.Phases = append(rep.Phases, report.PhaseTiming{Name: p.Name, StartNs: start, EndNs: end, DurationNs: end - start})
	}

	return rep
}

// exportSpans publishes rep over OTLP/HTTP.
func exportSpans(cfg *config.Config, rep *report.Report) error {
	otelCfg, err := config.ParseOTELConfig()
	if err != nil {
		return err
	}

	evaluator, err := attributes.NewEvaluator(cfg.CustomAttributes)
	if err != nil {
		return err
	}

	traceID, warnings := attributes.ResolveTraceID(cfg.TraceID)
	if len(warnings) > 0 {
		logrus.Warnf("Trace ID %q is not 32 hex chars, using its SHA-256 hash %s", cfg.TraceID, traceID)
	}

	tp, err := otel.InitProvider(otelCfg, version, traceID)
	if err != nil {
		return fmt.Errorf("ABORT: failed to initialize OTEL provider: %w", err)
	}

	formatter := output.NewSpanFormatter(tp.Tracer("clockcal"), evaluator, warnings)
	formatter.Emit(context.Background(), rep)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := otel.ShutdownProvider(shutdownCtx, tp); err != nil {
		return err
	}

	logrus.Infof("Exported calibration spans to %s", otelCfg.GetEndpoint())
	return nil
}

func run() error {
	envCfg, err := config.ParseEnvConfig()
	if err != nil {
		return err
	}

	cfg, err := config.ParseArgs(os.Args, envCfg, os.Stdout, version, commit, date)
	if err != nil {
		return err
	}

	if err := setupLogging(cfg.LogLevel); err != nil {
		return err
	}

	formatter, err := output.New(cfg.Format)
	if err != nil {
		return err
	}

	logrus.Debugf("Starting clockcal %s (commit: %s, built: %s)", version, commit, date)

	rep := calibrate(cfg)

	if err := formatter.Format(os.Stdout, rep); err != nil {
		return err
	}

	if cfg.Textfile != "" {
		collectors := metrics.New(version)
		collectors.Observe(rep)
		if err := collectors.WriteTextfile(cfg.Textfile); err != nil {
			return err
		}
		logrus.Infof("Wrote calibration metrics to %s", cfg.Textfile)
	}

	if cfg.ExportOTEL {
		if err := exportSpans(cfg, rep); err != nil {
			return err
		}
	}

	return nil
}
