package decoder

import (
	"context"
	"time"

	"github.com/Aleph-Alpha/sheetmap/v1/observability"
)

// observeOperation notifies the observer about a page if one is configured.
//
// Notes:
//   - resource: schema id, empty for pass-through pages
//   - subResource: page name
//   - size: records decoded
func (d *Decoder) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if d.observer == nil {
		return
	}
	d.observer.ObserveOperation(observability.OperationContext{
		Component:   "decoder",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}

func (d *Decoder) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if d.logger != nil {
		d.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (d *Decoder) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if d.logger != nil {
		d.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
