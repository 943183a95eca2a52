package timesync

// ApproxTime is an opaque reading of the approximate clock. It is only
// meaningful when passed through a Func built from the same clock.
type ApproxTime uint64

// Sub returns x - y in approximate-clock units. The unsigned difference is
// reinterpreted as signed, so a counter that wrapped between the two reads
// still yields a small positive delta.
func (x ApproxTime) Sub(y ApproxTime) int64 {
	return int64(x - y)
}

// Unit describes how ApproxTime values are encoded.
type Unit uint8

const (
	// Nanoseconds means approximate readings are wall-clock nanoseconds.
	Nanoseconds Unit = iota
	// Cycles means approximate readings are hardware counter ticks of
	// unknown frequency.
	Cycles
)

func (u Unit) String() string {
	switch u {
	case Nanoseconds:
		return "nanoseconds"
	case Cycles:
		return "cycles"
	default:
		return "unknown"
	}
}

// ApproxUnit is the encoding used by GetApproximateTime in this build.
const ApproxUnit = approxUnit

// GetApproximateTime returns a reading of the cheapest available clock.
// Readings increase with wall time on a single processing unit but carry no
// absolute epoch.
func GetApproximateTime() ApproxTime {
	return readApproxTime()
}
