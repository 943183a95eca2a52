package timesync

// Replicates is the number of pairs in a CalibrationSet.
const Replicates = 101

// warmupReads primes caches and branch predictors on both read paths.
const warmupReads = 10

// CalibrationSet is a snapshot of Replicates pairs captured back to back.
// It is an array, so every copy is independent.
type CalibrationSet [Replicates]Pair

// MeasurePairs captures a CalibrationSet in a tight loop. Nothing else runs
// between captures so the whole set spans microseconds and clock-rate drift
// inside it is negligible.
func (s Source) MeasurePairs() CalibrationSet {
	for i := 0; i < warmupReads; i++ {
		_ = s.Approx()
		_ = s.Wall()
	}

	var set CalibrationSet
	for i := range set {
		set[i] = s.MeasurePair()
	}
	return set
}

// Window returns the wall-clock nanoseconds between the first and last pair.
func (cs *CalibrationSet) Window() int64 {
	return cs[Replicates-1].Wall - cs[0].Wall
}
