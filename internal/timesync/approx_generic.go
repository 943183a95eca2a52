//go:build !(amd64 || 386 || arm64) || purego

package timesync

const approxUnit = Nanoseconds

func readApproxTime() ApproxTime {
	return ApproxTime(GetTime(false))
}
