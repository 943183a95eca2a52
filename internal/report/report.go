package report

import (
	"os"
	"slices"
	"strings"
	"time"

	"github.com/mrzor/approxclock/internal/timesync"
)

// PhaseTiming is a Phase converted to wall-clock nanoseconds.
type PhaseTiming struct {
	Name       string `json:"name"`
	StartNs    int64  `json:"start_ns"`
	EndNs      int64  `json:"end_ns"`
	DurationNs int64  `json:"duration_ns"`
}

// Report describes one calibration run.
type Report struct {
	Unit       string `json:"unit"`
	Monotonic  bool   `json:"monotonic"`
	Replicates int    `json:"replicates"`

	// Rate is wall nanoseconds per approximate-clock unit.
	Rate        float64 `json:"rate_ns_per_unit"`
	FrequencyHz float64 `json:"frequency_hz"`
	Degenerate  bool    `json:"degenerate"`
	Spanning    bool    `json:"spanning"`
	HoldNs      int64   `json:"hold_ns"`

	WallAnchorNs int64  `json:"wall_anchor_ns"`
	ApproxAnchor uint64 `json:"approx_anchor"`
	WindowNs     int64  `json:"window_ns"`

	SkewMinNs    float64 `json:"skew_min_ns"`
	SkewMedianNs float64 `json:"skew_median_ns"`
	SkewMaxNs    float64 `json:"skew_max_ns"`
	// BackwardPairs counts pairs whose approximate clock ran backwards.
	BackwardPairs int `json:"backward_pairs"`
	// ResidualMaxNs is the largest distance between a calibration pair's
	// wall time and its converted approximate time.
	ResidualMaxNs int64 `json:"residual_max_ns"`

	// VerifyErrorNs is convert(approx) - wall for a fresh pair read after
	// the fit.
	VerifyErrorNs int64   `json:"verify_error_ns"`
	WallReadNs    float64 `json:"wall_read_ns"`
	ApproxReadNs  float64 `json:"approx_read_ns"`

	Phases []PhaseTiming `json:"phases"`

	// Environ is the process environment, exposed to attribute expressions.
	Environ map[string]string `json:"-"`
}

// Options controls Build.
type Options struct {
	Monotonic bool
	Hold      time.Duration
	// Samples is the number of reads per reader cost measurement. Zero
	// skips the measurement.
	Samples int
	Phases  []Phase
}

// Build evaluates est against the calibration held by conv, measures the
// readers of src and converts the recorded phases.
func Build(conv *timesync.Converter, est timesync.Estimate, src timesync.Source, opts Options) *Report {
	set := conv.Calibration()
	convert := est.Func()

	r := &Report{
		Unit:         est.Unit.String(),
		Monotonic:    opts.Monotonic,
		Replicates:   timesync.Replicates,
		Rate:         est.Rate,
		Degenerate:   est.Degenerate,
		Spanning:     est.Spanning,
		HoldNs:       int64(opts.Hold),
		WallAnchorNs: est.WallAnchor,
		ApproxAnchor: uint64(est.ApproxAnchor),
		WindowNs:     set.Window(),
		Environ:      environ(),
	}
	if est.Rate > 0 {
		r.FrequencyHz = 1e9 / est.Rate
	}

	r.fillSkew(&set, est.Rate)
	r.ResidualMaxNs = maxResidual(&set, convert)

	if opts.Samples > 0 {
		r.WallReadNs = readCost(opts.Samples, func() { _ = src.Wall() })
		r.ApproxReadNs = readCost(opts.Samples, func() { _ = src.Approx() })
	}

	approx := src.Approx()
	wall := src.Wall()
	r.VerifyErrorNs = convert(approx) - wall

	for _, p := range opts.Phases {
		start, end := convert(p.Start), convert(p.End)
		r.Phases = append(r.Phases, PhaseTiming{
			Name:       p.Name,
			StartNs:    start,
			EndNs:      end,
			DurationNs: end - start,
		})
	}

	return r
}

func (r *Report) fillSkew(set *timesync.CalibrationSet, rate float64) {
	skews := make([]float64, 0, timesync.Replicates)
	for _, p := range set {
		if p.Skew == timesync.UnboundedSkew {
			r.BackwardPairs++
			continue
		}
		skews = append(skews, float64(p.Skew)*rate)
	}
	if len(skews) == 0 {
		return
	}
	slices.Sort(skews)
	r.SkewMinNs = skews[0]
	r.SkewMedianNs = skews[len(skews)/2]
	r.SkewMaxNs = skews[len(skews)-1]
}

func maxResidual(set *timesync.CalibrationSet, convert timesync.Func) int64 {
	var worst int64
	for _, p := range set {
		d := p.Wall - convert(p.Approx)
		if d < 0 {
			d = -d
		}
		worst = max(worst, d)
	}
	return worst
}

// readCost returns the mean wall-clock nanoseconds per call of read.
func readCost(samples int, read func()) float64 {
	start := time.Now()
	for i := 0; i < samples; i++ {
		read()
	}
	return float64(time.Since(start).Nanoseconds()) / float64(samples)
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok && key != "" {
			env[key] = value
		}
	}
	return env
}
