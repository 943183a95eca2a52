//go:build (amd64 || 386 || arm64) && !purego

package timesync

const approxUnit = Cycles

// readCounter is implemented in counter_$GOARCH.s.
func readCounter() uint64

func readApproxTime() ApproxTime {
	return ApproxTime(readCounter())
}
