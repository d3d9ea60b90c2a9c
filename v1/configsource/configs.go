package configsource

import "context"

// DefaultFileName is the name of the configuration document looked up next to
// the running executable.
const DefaultFileName = "msio.json"

// Config selects where the configuration document is loaded from.
type Config struct {
	// FileName is the document name inside Dir. Default: msio.json.
	FileName string `yaml:"file_name" envconfig:"SHEETMAP_CONFIG_FILE"`

	// Dir is the directory holding the document. Default: the directory of the
	// running executable.
	Dir string `yaml:"dir" envconfig:"SHEETMAP_CONFIG_DIR"`

	// Watch caches the document and invalidates the cache on file system
	// events instead of reading the file on every load.
	Watch bool `yaml:"watch" envconfig:"SHEETMAP_CONFIG_WATCH"`

	// ObjectKey is the key of the document in object storage, used by ObjectSource.
	ObjectKey string `yaml:"object_key" envconfig:"SHEETMAP_CONFIG_OBJECT_KEY"`
}

// Logger is the logging contract of the file watcher.
type Logger interface {
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
