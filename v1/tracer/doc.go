// Package tracer provides distributed tracing using OpenTelemetry.
//
// The decoder opens one span per decoded page when a tracer is attached, and
// the logger adds the active trace and span ids to entries written with the
// *WithContext methods.
//
// Basic Usage:
//
//	tr, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "sheetmap",
//		AppEnv:       "development",
//		EnableExport: true,
//	}, log)
//	if err != nil {
//		return err
//	}
//	defer tr.Shutdown(ctx)
//
//	ctx, span := tr.StartSpan(ctx, "decode-page")
//	defer span.End()
//	tr.SetAttributes(span, map[string]interface{}{"sheet.page": "Sheet1"})
//
// Thread Safety:
//
// All methods on Tracer are safe for concurrent use.
package tracer
