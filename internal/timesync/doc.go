// Package timesync converts cheap approximate clock readings into calibrated
// wall-clock timestamps.
//
// Instrumentation code stamps events with GetApproximateTime, which reads a
// hardware cycle counter where one is available. A Converter correlates that
// counter with the wall clock once, at construction, by capturing a
// CalibrationSet of paired readings. Its MakeConverter method then returns a
// Func that maps any later approximate reading to nanoseconds since the Unix
// epoch.
//
// Reader selection is resolved at build time:
//
//	wall clock:   clock_gettime (unix, macOS) | gettimeofday (ios) | time.Now (other)
//	approx clock: RDTSC (amd64, 386) | CNTVCT_EL0 (arm64) | wall clock (other)
//
// A Func holds only copied constants and may be shared across goroutines
// without synchronization.
package timesync
