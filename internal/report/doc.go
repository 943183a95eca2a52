// Package report measures how well a calibration fits and collects the
// result into a Report that formatters, attribute expressions and metrics
// read from.
//
// Phase timings are recorded with approximate timestamps while the
// calibration runs and converted to wall time only once the conversion
// function exists, which is the intended use of the timesync package.
package report
