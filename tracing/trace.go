package tracing

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/konveyor/termbar/progress"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "termbar"

type Options struct {
	EnableJaeger   bool
	JaegerEndpoint string

	// Exporter replaces the jaeger exporter when set. Tests use it to
	// record spans in memory.
	Exporter tracesdk.SpanExporter
}

func newJaegerExporter(endpoint string) (tracesdk.SpanExporter, error) {
	exp, err := jaeger.New(
		jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)),
	)
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func InitTracerProvider(log logr.Logger, o Options) (*tracesdk.TracerProvider, error) {
	tracerOptions := []tracesdk.TracerProviderOption{
		tracesdk.WithSampler(tracesdk.AlwaysSample()),
		// Record information about this application in a Resource.
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	}
	switch {
	case o.Exporter != nil:
		tracerOptions = append(tracerOptions, tracesdk.WithSyncer(o.Exporter))
	case o.EnableJaeger:
		exp, err := newJaegerExporter(o.JaegerEndpoint)
		if err != nil {
			log.Error(err, "failed to create jaeger exporter")
			return nil, err
		}
		tracerOptions = append(tracerOptions,
			tracesdk.WithBatcher(exp))
	}

	tp := tracesdk.NewTracerProvider(tracerOptions...)
	otel.SetTracerProvider(tp)

	return tp, nil
}

func Shutdown(ctx context.Context, log logr.Logger, tp *tracesdk.TracerProvider) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	if err := tp.Shutdown(ctx); err != nil {
		log.Error(err, "error shutting down tracer provider")
	}
}

func StartNewSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := otel.Tracer("").Start(ctx, name)
	span.SetAttributes(attrs...)
	return ctx, span
}

// RecordSnapshots adds a span event for each snapshot received until the
// channel is closed. The final snapshot is also set as span attributes.
func RecordSnapshots(span trace.Span, snapshots <-chan progress.Snapshot) {
	var last progress.Snapshot
	var seen bool
	for s := range snapshots {
		last, seen = s, true
		span.AddEvent("progress."+string(s.Phase),
			trace.WithTimestamp(s.Timestamp),
			trace.WithAttributes(snapshotAttributes(s)...),
		)
	}
	if seen {
		span.SetAttributes(snapshotAttributes(last)...)
	}
}

func snapshotAttributes(s progress.Snapshot) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Int64("progress.current", s.Current),
		attribute.Int64("progress.total", s.Total),
		attribute.Float64("progress.percent", s.Percent),
		attribute.Int64("progress.updates", s.Updates),
		attribute.String("progress.elapsed", s.Elapsed.String()),
	}
	if s.HasRemaining {
		attrs = append(attrs, attribute.String("progress.remaining", s.Remaining.String()))
	}
	return attrs
}
