package sheet

// Extensions recognised by Open.
const (
	ExtXLSX = "xlsx"
	ExtXLSM = "xlsm"
	ExtCSV  = "csv"
)

// DefaultExtensions are the file types Open can read.
var DefaultExtensions = []string{ExtXLSX, ExtXLSM, ExtCSV}

// FilterConfig restricts which files are accepted for decoding.
type FilterConfig struct {
	// NamePattern is a regular expression the file name without extension
	// must match. Empty accepts any name.
	NamePattern string `yaml:"name_pattern" envconfig:"SHEETMAP_FILTER_NAME_PATTERN"`

	// Extensions lists accepted extensions without the dot. Empty accepts any.
	Extensions []string `yaml:"extensions" envconfig:"SHEETMAP_FILTER_EXTENSIONS"`

	// MinSize and MaxSize bound the file size in bytes. Zero disables a bound.
	MinSize int64 `yaml:"min_size" envconfig:"SHEETMAP_FILTER_MIN_SIZE"`
	MaxSize int64 `yaml:"max_size" envconfig:"SHEETMAP_FILTER_MAX_SIZE"`
}
