// Package metrics exposes a calibration report as Prometheus gauges and
// writes them in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/mrzor/approxclock/internal/report"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "clockcal"

// Collectors holds the calibration gauges registered on their own registry.
type Collectors struct {
	Registry *prometheus.Registry

	info        *prometheus.GaugeVec
	rate        prometheus.Gauge
	frequency   prometheus.Gauge
	degenerate  prometheus.Gauge
	window      prometheus.Gauge
	skew        *prometheus.GaugeVec
	residualMax prometheus.Gauge
	verifyError prometheus.Gauge
	readCost    *prometheus.GaugeVec
	lastRun     prometheus.Gauge
}

// New creates and registers the calibration gauges.
func New(version string) *Collectors {
	c := &Collectors{
		Registry: prometheus.NewRegistry(),
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "info",
			Help:        "Clock calibration environment.",
			ConstLabels: prometheus.Labels{"version": version},
		}, []string{"unit", "monotonic", "spanning"}),
		rate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rate_ns_per_unit",
			Help:      "Wall-clock nanoseconds per approximate-clock unit.",
		}),
		frequency: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "approx_frequency_hz",
			Help:      "Estimated approximate-clock frequency.",
		}),
		degenerate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "degenerate",
			Help:      "1 if the approximate clock did not advance during calibration.",
		}),
		window: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "window_seconds",
			Help:      "Wall-clock span of the calibration set.",
		}),
		skew: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pair_skew_seconds",
			Help:      "Bracket width of calibration pairs.",
		}, []string{"stat"}),
		residualMax: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "residual_max_seconds",
			Help:      "Largest distance between a calibration pair and the fitted line.",
		}),
		verifyError: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "verify_error_seconds",
			Help:      "Converted approximate time minus wall time for a fresh reading.",
		}),
		readCost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "read_cost_seconds",
			Help:      "Mean cost of one clock read.",
		}, []string{"clock"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Wall-clock time of the calibration anchor.",
		}),
	}

	c.Registry.MustRegister(
		c.info,
		c.rate,
		c.frequency,
		c.degenerate,
		c.window,
		c.skew,
		c.residualMax,
		c.verifyError,
		c.readCost,
		c.lastRun,
	)
	return c
}

// Observe sets every gauge from r.
func (c *Collectors) Observe(r *report.Report) {
	c.info.Reset()
	c.info.WithLabelValues(r.Unit, strconv.FormatBool(r.Monotonic), strconv.FormatBool(r.Spanning)).Set(1)
	c.rate.Set(r.Rate)
	c.frequency.Set(r.FrequencyHz)
	c.degenerate.Set(boolGauge(r.Degenerate))
	c.window.Set(seconds(float64(r.WindowNs)))
	c.skew.WithLabelValues("min").Set(seconds(r.SkewMinNs))
	c.skew.WithLabelValues("median").Set(seconds(r.SkewMedianNs))
	c.skew.WithLabelValues("max").Set(seconds(r.SkewMaxNs))
	c.residualMax.Set(seconds(float64(r.ResidualMaxNs)))
	c.verifyError.Set(seconds(float64(r.VerifyErrorNs)))
	c.readCost.WithLabelValues("wall").Set(seconds(r.WallReadNs))
	c.readCost.WithLabelValues("approx").Set(seconds(r.ApproxReadNs))
	c.lastRun.Set(seconds(float64(r.WallAnchorNs)))
}

// WriteTextfile writes the registry to path atomically.
func (c *Collectors) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.Registry); err != nil {
		return fmt.Errorf("writing textfile %s: %w", path, err)
	}
	return nil
}

func seconds(ns float64) float64 {
	return ns / 1e9
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
