// Package trace exports finished test runs as OpenTelemetry spans.
package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"ssbprep/internal/session"
)

// OTLPExporter exports run spans to an OTLP endpoint
type OTLPExporter struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// NewOTLPExporter creates an OTLP exporter if OTEL_EXPORTER_OTLP_ENDPOINT is set.
// Returns nil if endpoint not configured (disabled); a nil exporter is safe to use.
func NewOTLPExporter(ctx context.Context) (*OTLPExporter, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil, nil // Disabled
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "ssbprep"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	return newExporter(sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)), nil
}

func newExporter(provider *sdktrace.TracerProvider) *OTLPExporter {
	return &OTLPExporter{
		provider: provider,
		tracer:   provider.Tracer("ssbprep/session"),
	}
}

// RecordRun emits one span covering a finished run. setting is the time
// configuration of the run: seconds per word for WAT, total minutes for SRT.
func (e *OTLPExporter) RecordRun(ctx context.Context, r session.Recap, setting int) {
	if e == nil || r.Started.IsZero() {
		return
	}

	_, span := e.tracer.Start(ctx, string(r.Kind)+".run",
		oteltrace.WithTimestamp(r.Started),
		oteltrace.WithAttributes(
			attribute.String("ssbprep.test.kind", string(r.Kind)),
			attribute.Int("ssbprep.items.total", len(r.Items)),
			attribute.Int("ssbprep.items.seen", r.Seen),
			attribute.Int("ssbprep.time_setting", setting),
			attribute.Bool("ssbprep.ended_early", r.EndedEarly),
		),
	)
	span.End(oteltrace.WithTimestamp(r.Finished))
}

// Shutdown flushes and closes the exporter
func (e *OTLPExporter) Shutdown(ctx context.Context) error {
	if e == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
