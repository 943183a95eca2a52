package timesync

import (
	"math"
	"slices"
	"time"
)

// Estimate holds the constants of a linear approximate-to-wall mapping.
type Estimate struct {
	// WallAnchor and ApproxAnchor are one point on the mapping.
	WallAnchor   int64
	ApproxAnchor ApproxTime
	// Rate is wall nanoseconds per approximate-clock unit.
	Rate float64
	Unit Unit
	// Degenerate is set when the rate could not be estimated and 1 was
	// substituted.
	Degenerate bool
	// Spanning is set when Rate came from two sets captured apart in time.
	Spanning bool
}

// Func maps an approximate-clock reading to nanoseconds since the Unix epoch.
type Func func(ApproxTime) int64

// Time converts x and returns it as a time.Time.
func (f Func) Time(x ApproxTime) time.Time {
	return time.Unix(0, f(x))
}

// Convert maps x to wall-clock nanoseconds:
// WallAnchor + round((x - ApproxAnchor) * Rate).
func (e Estimate) Convert(x ApproxTime) int64 {
	delta := x.Sub(e.ApproxAnchor)
	if e.Rate == 1 {
		return e.WallAnchor + delta
	}
	return e.WallAnchor + int64(math.Round(float64(delta)*e.Rate))
}

// Func returns a conversion function over a copy of e.
func (e Estimate) Func() Func {
	return e.Convert
}

// Fit derives an Estimate from a single calibration set.
//
// Pairs with an unbounded bracket, or one wider than twice the median
// bracket, are left out. For Cycles the rate is the median slope over all
// pairs of remaining samples; for Nanoseconds it is exactly 1. The anchor
// is the pair with the narrowest bracket, shifted by the median residual
// of the remaining samples against the fitted line.
func Fit(set CalibrationSet, unit Unit) Estimate {
	est := anchorEstimate(&set, unit)
	kept := narrowPairs(&set)
	if len(kept) == 0 {
		est.Degenerate = unit == Cycles
		return est
	}
	if unit == Cycles {
		if rate, ok := medianSlope(kept); ok {
			est.Rate = rate
		} else {
			est.Degenerate = true
		}
	}
	est.WallAnchor += medianResidual(kept, est)
	return est
}

// FitSpanning derives an Estimate from two calibration sets captured some
// time apart. The rate is the median over replicates of
// (end.Wall - start.Wall) / (end.Approx - start.Approx), which is far less
// sensitive to read jitter than a slope measured inside one set. The anchor
// comes from start. Replicates whose approximate clock did not advance are
// skipped; if none remain the result is Fit(start, unit).
func FitSpanning(start, end CalibrationSet, unit Unit) Estimate {
	if unit != Cycles {
		return Fit(start, unit)
	}

	ratios := make([]float64, 0, Replicates)
	for i := range start {
		dWall := end[i].Wall - start[i].Wall
		dApprox := end[i].Approx.Sub(start[i].Approx)
		if dWall <= 0 || dApprox <= 0 {
			continue
		}
		ratios = append(ratios, float64(dWall)/float64(dApprox))
	}
	if len(ratios) == 0 {
		return Fit(start, unit)
	}
	slices.Sort(ratios)

	est := anchorEstimate(&start, unit)
	est.Rate = ratios[len(ratios)/2]
	est.Spanning = true
	if kept := narrowPairs(&start); len(kept) > 0 {
		est.WallAnchor += medianResidual(kept, est)
	}
	return est
}

// anchorEstimate returns a rate-1 estimate anchored on the pair with the
// smallest skew. Ties keep the earliest pair.
func anchorEstimate(set *CalibrationSet, unit Unit) Estimate {
	best := 0
	for i := 1; i < Replicates; i++ {
		if set[i].Skew < set[best].Skew {
			best = i
		}
	}
	return Estimate{
		WallAnchor:   set[best].Wall,
		ApproxAnchor: set[best].Approx,
		Rate:         1,
		Unit:         unit,
	}
}

// narrowPairs returns the pairs whose bracket is bounded and at most twice
// the median bounded bracket.
func narrowPairs(set *CalibrationSet) []Pair {
	skews := make([]ApproxTime, 0, Replicates)
	for i := range set {
		if set[i].Skew != UnboundedSkew {
			skews = append(skews, set[i].Skew)
		}
	}
	if len(skews) == 0 {
		return nil
	}
	slices.Sort(skews)
	cutoff := 2 * skews[len(skews)/2]

	kept := make([]Pair, 0, len(skews))
	for i := range set {
		if set[i].Skew <= cutoff {
			kept = append(kept, set[i])
		}
	}
	return kept
}

// medianSlope returns the median of (wall_j - wall_i) / (approx_j - approx_i)
// over all pairs i < j with distinct approximate readings.
func medianSlope(pairs []Pair) (float64, bool) {
	slopes := make([]float64, 0, len(pairs)*(len(pairs)-1)/2)
	for i := range pairs {
		for j := i + 1; j < len(pairs); j++ {
			dApprox := pairs[j].Approx.Sub(pairs[i].Approx)
			if dApprox == 0 {
				continue
			}
			dWall := pairs[j].Wall - pairs[i].Wall
			slopes = append(slopes, float64(dWall)/float64(dApprox))
		}
	}
	if len(slopes) == 0 {
		return 0, false
	}
	slices.Sort(slopes)

	rate := slopes[len(slopes)/2]
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 0, false
	}
	return rate, true
}

// medianResidual returns the median of wall - est.Convert(approx) over pairs.
func medianResidual(pairs []Pair, est Estimate) int64 {
	residuals := make([]int64, len(pairs))
	for i, p := range pairs {
		residuals[i] = p.Wall - est.Convert(p.Approx)
	}
	slices.Sort(residuals)
	return residuals[len(residuals)/2]
}
