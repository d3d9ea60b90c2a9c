package convert

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Func converts the text of a cell into a typed value.
type Func func(raw string) (any, error)

// TimeLayouts are tried in order by the default time.Time conversion.
var TimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Registry maps type keys to conversion functions. A type is looked up under
// its short key first (the type name, or its literal form for unnamed types)
// and then under its qualified key (import path and name).
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// NewDefaultRegistry returns a registry with conversions for the integer,
// unsigned, float and bool kinds, time.Time and time.Duration.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, bits := range []int{0, 8, 16, 32, 64} {
		r.Register(intKey("int", bits), intFunc(bits))
		r.Register(intKey("uint", bits), uintFunc(bits))
	}
	r.Register("float32", floatFunc(32))
	r.Register("float64", floatFunc(64))
	r.Register("bool", func(raw string) (any, error) {
		return strconv.ParseBool(strings.TrimSpace(raw))
	})
	r.RegisterType(reflect.TypeOf(time.Time{}), parseTime)
	r.RegisterType(reflect.TypeOf(time.Duration(0)), func(raw string) (any, error) {
		return time.ParseDuration(strings.TrimSpace(raw))
	})
	return r
}

// Register stores fn under key, replacing any previous function.
func (r *Registry) Register(key string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[key] = fn
}

// RegisterType stores fn under the qualified key of t.
func (r *Registry) RegisterType(t reflect.Type, fn Func) {
	r.Register(QualifiedKey(t), fn)
}

// Lookup returns the conversion for t, trying ShortKey(t) then QualifiedKey(t).
// When neither is registered the error is a *NoSuchConversionError.
func (r *Registry) Lookup(t reflect.Type) (Func, error) {
	short, qualified := ShortKey(t), QualifiedKey(t)

	r.mu.RLock()
	defer r.mu.RUnlock()
	if fn, ok := r.funcs[short]; ok {
		return fn, nil
	}
	if fn, ok := r.funcs[qualified]; ok {
		return fn, nil
	}
	return nil, &NoSuchConversionError{Type: t, ShortKey: short, QualifiedKey: qualified}
}

// Len returns the number of registered conversions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.funcs)
}

// ShortKey is the type name, or the type literal for unnamed types.
func ShortKey(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// QualifiedKey is "<import path>.<name>" for named types of a package and the
// type literal otherwise.
func QualifiedKey(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

func intKey(prefix string, bits int) string {
	if bits == 0 {
		return prefix
	}
	return fmt.Sprintf("%s%d", prefix, bits)
}

func intFunc(bits int) Func {
	size := bits
	if size == 0 {
		size = strconv.IntSize
	}
	return func(raw string) (any, error) {
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, size)
		if err != nil {
			return nil, err
		}
		switch bits {
		case 8:
			return int8(v), nil
		case 16:
			return int16(v), nil
		case 32:
			return int32(v), nil
		case 64:
			return v, nil
		}
		return int(v), nil
	}
}

func uintFunc(bits int) Func {
	size := bits
	if size == 0 {
		size = strconv.IntSize
	}
	return func(raw string) (any, error) {
		v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, size)
		if err != nil {
			return nil, err
		}
		switch bits {
		case 8:
			return uint8(v), nil
		case 16:
			return uint16(v), nil
		case 32:
			return uint32(v), nil
		case 64:
			return v, nil
		}
		return uint(v), nil
	}
}

func floatFunc(bits int) Func {
	return func(raw string) (any, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), bits)
		if err != nil {
			return nil, err
		}
		if bits == 32 {
			return float32(v), nil
		}
		return v, nil
	}
}

func parseTime(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	var firstErr error
	for _, layout := range TimeLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
