package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingTracer() (*Tracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewWithProvider(tp, nil), recorder
}

func TestStartSpanAndAttributes(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), "decode-page")
	tr.SetAttributes(span, map[string]interface{}{
		"sheet.page": "Sheet1",
		"rows":       3,
		"auto":       true,
		"ratio":      0.5,
		"id":         int64(9),
		"other":      []string{"a"},
	})
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "decode-page", ended[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "Sheet1", attrs["sheet.page"].AsString())
	assert.EqualValues(t, 3, attrs["rows"].AsInt64())
	assert.True(t, attrs["auto"].AsBool())
	assert.Equal(t, "[a]", attrs["other"].AsString())
}

func TestRecordErrorOnSpan(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), "decode-page")
	tr.RecordErrorOnSpan(span, errors.New("unsupported layout"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "unsupported layout", ended[0].Status().Description)
}

func TestSetAttributesEmpty(t *testing.T) {
	tr, recorder := newRecordingTracer()
	_, span := tr.StartSpan(context.Background(), "noop")
	tr.SetAttributes(span, nil)
	span.End()

	require.Len(t, recorder.Ended(), 1)
	assert.Empty(t, recorder.Ended()[0].Attributes())
}

func TestShutdown(t *testing.T) {
	tr, err := NewClient(Config{ServiceName: "sheetmap-test", AppEnv: "test"}, nil)
	require.NoError(t, err)
	require.NoError(t, tr.Shutdown(context.Background()))
}
