//go:build ios

package timesync

import "golang.org/x/sys/unix"

// iOS cannot rely on clock_gettime, so read the microsecond time of day.
func readWallTime(allowMonotonic bool) int64 {
	var tv unix.Timeval
	if err := unix.Gettimeofday(&tv); err != nil {
		return runtimeWallTime(allowMonotonic)
	}
	return int64(tv.Sec)*1_000_000_000 + int64(tv.Usec)*1_000
}
