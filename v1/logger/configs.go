package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Encodings accepted by Config.Encoding.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// Config defines the configuration of the zap backed logger.
type Config struct {
	// Level is the minimum level that is written. Unknown values fall back to info.
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// Encoding is "json" (default) or "console".
	Encoding string `yaml:"encoding" envconfig:"ZAP_LOGGER_ENCODING"`

	// EnableTracing adds trace_id and span_id of the active OpenTelemetry span
	// to entries written through the *WithContext methods.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`
}

// DefaultServiceName is used when Config.ServiceName is empty.
const DefaultServiceName = "sheetmap"
