// Package logger provides structured logging for the sheetmap packages.
//
// The logger wraps Uber's zap with a small message/error/fields API so callers
// never build zap.Field values themselves. Every other package accepts a narrow
// Logger interface and treats a nil logger as "do not log".
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: the contract consumers depend on
//   - LoggerClient struct: the zap backed implementation
//   - NewLoggerClient constructor: returns *LoggerClient
//   - FX module: provides both *LoggerClient and Logger
//
// # Direct Usage (Without FX)
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		EnableTracing: true,
//	})
//
//	log.Warn("configuration document rejected", err, map[string]interface{}{
//		"source": "msio.json",
//	})
//
//	// Adds trace_id and span_id of the span stored in ctx.
//	log.InfoWithContext(ctx, "page decoded", nil, map[string]interface{}{
//		"page": "Sheet1",
//		"rows": 120,
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: logger.Info, ServiceName: "sheetmap"}
//		}),
//	)
//
// # Log Levels
//
//   - Debug: per-row detail, disabled in production
//   - Info: lifecycle events such as registry construction
//   - Warn: failures that are swallowed (hot reload parse errors, per-field conversion errors)
//   - Error: failures that stop an operation
//   - Fatal: logs then exits the process
package logger
