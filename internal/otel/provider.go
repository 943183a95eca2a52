// Package otel provides OpenTelemetry tracer provider initialization and management.
package otel

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/mrzor/approxclock/internal/config"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitProvider builds a tracer provider exporting over OTLP/HTTP.
// A valid traceID pins every root span to that trace; the zero ID lets the
// SDK pick random ones.
//
// The HTTP client honors HTTP_PROXY, HTTPS_PROXY and NO_PROXY through Go's
// standard net/http transport.
func InitProvider(cfg *config.OTELConfig, version string, traceID trace.TraceID) (*sdktrace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	endpoint := cfg.GetEndpoint()
	logrus.WithFields(logrus.Fields{
		"service":  cfg.ServiceName,
		"endpoint": endpoint,
		"insecure": cfg.Insecure,
	}).Debug("configuring OTLP/HTTP exporter")

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithTimeout(10 * time.Second),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	res, err := buildResource(ctx, cfg, version)
	if err != nil {
		return nil, err
	}

	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	}
	if traceID.IsValid() {
		providerOpts = append(providerOpts, sdktrace.WithIDGenerator(&fixedTraceIDGenerator{traceID: traceID}))
	}

	return sdktrace.NewTracerProvider(providerOpts...), nil
}

func buildResource(ctx context.Context, cfg *config.OTELConfig, version string) (*resource.Resource, error) {
	attrs := resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(version),
	)
	opts := []resource.Option{attrs}
	if custom := cfg.ResourceAttributeList(); len(custom) > 0 {
		opts = append(opts, resource.WithAttributes(custom...))
	}

	res, err := resource.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// ShutdownProvider gracefully shuts down the tracer provider, flushing any remaining spans.
func ShutdownProvider(ctx context.Context, tp *sdktrace.TracerProvider) error {
	if tp == nil {
		return nil
	}

	if err := tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}

	return nil
}

// fixedTraceIDGenerator hands out one trace ID and random span IDs.
type fixedTraceIDGenerator struct {
	traceID trace.TraceID
}

var _ sdktrace.IDGenerator = (*fixedTraceIDGenerator)(nil)

func (g *fixedTraceIDGenerator) NewIDs(ctx context.Context) (trace.TraceID, trace.SpanID) {
	return g.traceID, g.NewSpanID(ctx, g.traceID)
}

func (g *fixedTraceIDGenerator) NewSpanID(_ context.Context, _ trace.TraceID) trace.SpanID {
	var spanID trace.SpanID
	for !spanID.IsValid() {
		_, _ = rand.Read(spanID[:])
	}
	return spanID
}
