package convert

import (
	"reflect"
	"sort"
	"sync"
	"unicode"
	"unicode/utf8"
)

// TransformFunc converts the text of a cell with user code.
type TransformFunc func(raw string) (any, error)

// Container is a named set of transform methods.
type Container interface {
	// Transform returns the method called name.
	Transform(name string) (TransformFunc, bool)

	// Name identifies the container in error messages.
	Name() string
}

// MethodSet is a Container populated explicitly or from the methods of a value.
// It is safe for concurrent use.
type MethodSet struct {
	name    string
	mu      sync.RWMutex
	methods map[string]TransformFunc
}

// NewMethodSet returns an empty set called name.
func NewMethodSet(name string) *MethodSet {
	return &MethodSet{name: name, methods: make(map[string]TransformFunc)}
}

// Add registers fn under name and returns the set for chaining.
func (m *MethodSet) Add(name string, fn TransformFunc) *MethodSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.methods[name] = fn
	return m
}

// Name returns the container name.
func (m *MethodSet) Name() string {
	return m.name
}

// Transform returns the method called name. A lower-case first letter also
// matches the exported Go method, so configuration documents may write
// "parseDate" for ParseDate.
func (m *MethodSet) Transform(name string) (TransformFunc, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if fn, ok := m.methods[name]; ok {
		return fn, true
	}
	fn, ok := m.methods[upperFirst(name)]
	return fn, ok
}

// Names returns the registered method names sorted.
func (m *MethodSet) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.methods))
	for name := range m.methods {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// MethodsOf binds every exported method of v shaped func(string) (T, error)
// into a MethodSet named after the type of v. Methods of any other shape are
// ignored.
//
// Example:
//
//	type Transforms struct{}
//
//	func (Transforms) ParseDate(raw string) (time.Time, error) { ... }
//
//	container := convert.MethodsOf(Transforms{})
//	fn, _ := container.Transform("parseDate")
func MethodsOf(v any) *MethodSet {
	rv := reflect.ValueOf(v)
	set := NewMethodSet(rv.Type().String())

	for i := 0; i < rv.NumMethod(); i++ {
		// rv.Method has the receiver bound, so its type has no receiver argument.
		bound := rv.Method(i)
		bt := bound.Type()
		if bt.NumIn() != 1 || bt.In(0).Kind() != reflect.String ||
			bt.NumOut() != 2 || bt.Out(1) != errorType {
			continue
		}
		set.Add(rv.Type().Method(i).Name, wrapMethod(bound))
	}
	return set
}

func wrapMethod(fn reflect.Value) TransformFunc {
	argType := fn.Type().In(0)
	return func(raw string) (any, error) {
		out := fn.Call([]reflect.Value{reflect.ValueOf(raw).Convert(argType)})
		if errV := out[1]; !errV.IsNil() {
			return nil, errV.Interface().(error)
		}
		return out[0].Interface(), nil
	}
}

// Resolve looks name up on c. A nil container or a missing method returns a
// *MissingMethodError.
func Resolve(c Container, name string) (TransformFunc, error) {
	if c == nil {
		return nil, &MissingMethodError{Method: name, Container: "<none>"}
	}
	fn, ok := c.Transform(name)
	if !ok {
		return nil, &MissingMethodError{Method: name, Container: c.Name()}
	}
	return fn, nil
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
