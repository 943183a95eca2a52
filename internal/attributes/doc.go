// Package attributes provides expression evaluation for custom span
// attributes and trace ID derivation.
//
// Expressions use the expr language and are evaluated against a calibration
// report (rate, unit, skew and verification figures, plus the process
// environment under "env").
//
// Trace IDs given as 32 hex characters are used as is; any other string is
// hashed with SHA-256 to produce a valid ID.
package attributes
