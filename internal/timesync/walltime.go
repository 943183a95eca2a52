package timesync

import "time"

// GetTime returns the current time in nanoseconds since the Unix epoch.
//
// If allowMonotonic is set, a monotonic clock may be read instead. Such a
// clock is immune to adjustments (NTP steps, manual changes) during a
// measurement session but is not guaranteed to share the epoch.
func GetTime(allowMonotonic bool) int64 {
	return readWallTime(allowMonotonic)
}

// processStart anchors the monotonic fallback on platforms without
// clock_gettime.
var processStart = time.Now()

func runtimeWallTime(allowMonotonic bool) int64 {
	if allowMonotonic {
		return processStart.UnixNano() + int64(time.Since(processStart))
	}
	return time.Now().UnixNano()
}
