package timesync

// Source bundles the two clock readers a calibration samples from.
type Source struct {
	// Wall returns nanoseconds since the Unix epoch.
	Wall func() int64
	// Approx returns an approximate-clock reading.
	Approx func() ApproxTime
	// Unit is the encoding of Approx readings.
	Unit Unit
}

// SystemSource returns the build's native readers. allowMonotonic is passed
// through to GetTime.
func SystemSource(allowMonotonic bool) Source {
	return Source{
		Wall: func() int64 {
			return readWallTime(allowMonotonic)
		},
		Approx: readApproxTime,
		Unit:   ApproxUnit,
	}
}
