package tracer

import (
	"context"

	traceSpan "go.opentelemetry.io/otel/trace"
)

// Client is the tracing contract consumed by the decoder.
//
// This interface is implemented by the concrete *Tracer type.
type Client interface {
	StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span)
	RecordErrorOnSpan(span traceSpan.Span, err error)
	SetAttributes(span traceSpan.Span, attrs map[string]interface{})
}
