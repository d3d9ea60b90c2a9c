// Package observability defines the hook through which sheetmap components
// report the operations they perform.
//
// Components never depend on a concrete metrics or tracing backend. Instead they
// accept an Observer and call ObserveOperation once per completed operation.
// The metrics package ships an Observer backed by Prometheus; tests use small
// recording doubles.
//
// Example:
//
//	reg, err := schema_registry.NewBuilder(cfg).
//	    WithObserver(metricsClient).
//	    Build(ctx)
package observability

import "time"

// Observer receives a notification for every operation a component completes.
// Implementations must be safe for concurrent use; decoders report rows from
// several goroutines at once.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "decoder", "schema_registry", "minio".
	Component string

	// Operation is the action performed, e.g. "decode_page", "reload", "get".
	Operation string

	// Resource is the primary subject of the operation (schema id, bucket).
	Resource string

	// SubResource adds detail such as a page name or object key.
	SubResource string

	// Duration is the wall time the operation took.
	Duration time.Duration

	// Error is the failure, if any.
	Error error

	// Size is an operation specific count: rows decoded, bytes read, schemas loaded.
	Size int64

	// Metadata carries optional extra labels.
	Metadata map[string]interface{}
}

// Status returns "success" or "error" depending on whether the operation failed.
func (o OperationContext) Status() string {
	if o.Error != nil {
		return "error"
	}
	return "success"
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
