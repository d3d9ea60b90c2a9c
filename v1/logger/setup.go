package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient wraps a zap.Logger with the message/error/fields call shape
// used throughout sheetmap.
type LoggerClient struct {
	// Zap is exposed for callers that need zap directly (e.g. to hand a named
	// child logger to a library).
	Zap *zap.Logger

	// tracingEnabled makes the *WithContext methods attach trace_id and span_id.
	tracingEnabled bool
}

// NewLoggerClient builds a logger writing to stderr.
//
// Entries carry an ISO8601 "timestamp", an upper case level, the caller and
// the fields pid and service. Decoded records go to stdout in the CLI, so
// diagnostics never mix with them.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info})
//	log.Info("schemas loaded", nil, map[string]interface{}{"count": 3})
func NewLoggerClient(cfg Config) *LoggerClient {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	core := zapcore.NewCore(newEncoder(cfg.Encoding), zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(parseLevel(cfg.Level)))
	z := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.Int("pid", os.Getpid()), zap.String("service", serviceName)),
	)

	return &LoggerClient{Zap: z, tracingEnabled: cfg.EnableTracing}
}

// NewNop returns a LoggerClient that discards everything.
func NewNop() *LoggerClient {
	return &LoggerClient{Zap: zap.NewNop()}
}

// NewWithZap wraps an existing zap logger, e.g. one built with zaptest or an
// observer core.
func NewWithZap(z *zap.Logger, enableTracing bool) *LoggerClient {
	return &LoggerClient{Zap: z, tracingEnabled: enableTracing}
}

func newEncoder(encoding string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	if encoding == EncodingConsole {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderCfg)
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case Debug:
		return zap.DebugLevel
	case Info:
		return zap.InfoLevel
	case Warning:
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	}
	return zap.InfoLevel
}
