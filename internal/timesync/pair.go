package timesync

// UnboundedSkew marks a pair whose bracket could not be measured because the
// approximate clock went backwards during the capture.
const UnboundedSkew = ^ApproxTime(0)

// Pair is one correlated reading of both clocks.
type Pair struct {
	// Wall is the wall-clock reading in nanoseconds.
	Wall int64
	// Approx is the approximate-clock reading taken at Wall.
	Approx ApproxTime
	// Skew is the approximate-clock width of the window the wall read
	// happened in. Zero for pairs that were not measured.
	Skew ApproxTime
}

// MeasurePair brackets one wall-clock read between two approximate reads.
// The wall read dominates the elapsed time, so the midpoint of the bracket
// is the best estimate of where it happened.
func (s Source) MeasurePair() Pair {
	before := s.Approx()
	wall := s.Wall()
	after := s.Approx()

	skew := after - before
	// A counter that ran backwards between reads (cross-core migration on
	// unsynchronized counters) has no meaningful bracket.
	if int64(skew) < 0 {
		return Pair{Wall: wall, Approx: before, Skew: UnboundedSkew}
	}

	return Pair{
		Wall:   wall,
		Approx: before + skew/2,
		Skew:   skew,
	}
}
