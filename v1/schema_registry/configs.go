package schema_registry

import (
	"context"
	"fmt"
	"strings"
)

// DefaultMatchWorkers bounds the goroutines evaluating match candidates.
const DefaultMatchWorkers = 8

// Reserved text of the configuration document.
const (
	// ClassNameKey names the backing type of an entry.
	ClassNameKey = "className"
	// EscapedClassNameKey declares a field that is literally called className.
	EscapedClassNameKey = `\className`
	// TransformDelimiter separates the display name from a transform method.
	TransformDelimiter = "$$"
	// EscapedTransformDelimiter is a literal "$$" inside a display name.
	EscapedTransformDelimiter = `\$$`
)

// Config defines the registry behaviour.
type Config struct {
	// HotReload re-reads the configuration document on every lookup and lets
	// configuration schemas shadow declared ones. DefaultConfig enables it.
	HotReload bool `yaml:"hot_reload" envconfig:"SHEETMAP_HOT_RELOAD"`

	// MatchWorkers bounds parallel candidate evaluation in Match.
	MatchWorkers int `yaml:"match_workers" envconfig:"SHEETMAP_MATCH_WORKERS"`
}

// DefaultConfig returns the configuration with hot reload enabled.
func DefaultConfig() Config {
	return Config{
		HotReload:    true,
		MatchWorkers: DefaultMatchWorkers,
	}
}

// MatchBy selects which field names headers are compared with.
type MatchBy int

const (
	// MatchExternal compares headers with external (display) names.
	MatchExternal MatchBy = iota
	// MatchInternal compares headers with internal field names.
	MatchInternal
)

func (m MatchBy) String() string {
	if m == MatchInternal {
		return "internal"
	}
	return "external"
}

// UnmarshalText lets MatchBy be read from yaml documents and environment variables.
func (m *MatchBy) UnmarshalText(text []byte) error {
	parsed, err := ParseMatchBy(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText writes the String form.
func (m MatchBy) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMatchBy parses "external" or "internal".
func ParseMatchBy(s string) (MatchBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "external":
		return MatchExternal, nil
	case "internal":
		return MatchInternal, nil
	}
	return MatchExternal, fmt.Errorf("unknown match mode %q", s)
}

// Logger is the context-aware logging contract of the registry.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
