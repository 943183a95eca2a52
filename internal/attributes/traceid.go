package attributes

import (
	"crypto/sha256"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ResolveTraceID turns a user-supplied string into a trace ID.
// An empty string yields the zero ID (the SDK generates a random one).
// 32 valid hex chars are parsed directly; anything else is hashed with
// SHA-256, and warnings describing the substitution are returned so they can
// be attached to the span.
func ResolveTraceID(raw string) (trace.TraceID, []attribute.KeyValue) {
	if raw == "" {
		return trace.TraceID{}, nil
	}

	if len(raw) == 32 {
		if traceID, err := trace.TraceIDFromHex(raw); err == nil {
			return traceID, nil
		}
	}

	var traceID trace.TraceID
	hash := sha256.Sum256([]byte(raw))
	copy(traceID[:], hash[:len(traceID)])

	warnings := []attribute.KeyValue{
		attribute.String("_trace_id_input", raw),
		attribute.String("_trace_id_invalid_warning", fmt.Sprintf("%q is not a valid 32-char hex trace ID, used SHA-256 hash instead", raw)),
	}
	return traceID, warnings
}
