package schema_registry

import (
	"context"
	"time"

	"github.com/Aleph-Alpha/sheetmap/v1/observability"
)

// hooks carries the optional logger and observer shared by Builder and Registry.
type hooks struct {
	logger   Logger
	observer observability.Observer
}

// observeOperation notifies the observer about an operation if one is configured.
//
// Notes:
//   - resource: schema id, or the configuration source for reloads
func (h *hooks) observeOperation(operation, resource string, duration time.Duration, err error, size int64) {
	if h.observer == nil {
		return
	}
	h.observer.ObserveOperation(observability.OperationContext{
		Component: "schema_registry",
		Operation: operation,
		Resource:  resource,
		Duration:  duration,
		Error:     err,
		Size:      size,
	})
}

func (h *hooks) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if h.logger != nil {
		h.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (h *hooks) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if h.logger != nil {
		h.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
