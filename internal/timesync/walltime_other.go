//go:build !linux && !freebsd && !netbsd && !openbsd && !dragonfly && !solaris && !darwin

package timesync

func readWallTime(allowMonotonic bool) int64 {
	return runtimeWallTime(allowMonotonic)
}
