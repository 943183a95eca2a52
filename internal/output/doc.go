// Package output renders calibration reports.
//
// Text and JSON formatters write a Report to an io.Writer. SpanFormatter
// publishes the same report as OpenTelemetry spans:
//
//	clock.calibration            whole run, calibration attributes
//	├── clock.phase.calibrate    construction-time calibration set
//	├── clock.phase.hold         optional wait before the spanning fit
//	└── clock.phase.<name>       any other recorded phase
//
// Span timestamps are the report's phase timings, which were stamped with
// the approximate clock and converted afterwards.
package output
