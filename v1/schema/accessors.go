package schema

import (
	"reflect"
	"strings"
	"sync"
)

// AccessorTable maps the exported field names of a struct type to their index
// paths. Tables are built once per type.
type AccessorTable struct {
	Type  reflect.Type
	names []string
	index map[string]reflect.StructField
}

var accessorCache sync.Map // reflect.Type -> *AccessorTable

// Accessors returns the accessor table of the struct type t (pointers are
// dereferenced). It returns nil for non-struct types.
func Accessors(t reflect.Type) *AccessorTable {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := accessorCache.Load(t); ok {
		return cached.(*AccessorTable)
	}

	table := &AccessorTable{
		Type:  t,
		index: make(map[string]reflect.StructField, t.NumField()),
	}
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		if _, dup := table.index[sf.Name]; dup {
			continue
		}
		table.names = append(table.names, sf.Name)
		table.index[sf.Name] = sf
	}

	actual, _ := accessorCache.LoadOrStore(t, table)
	return actual.(*AccessorTable)
}

// Names returns the field names in declaration order.
func (a *AccessorTable) Names() []string {
	return append([]string(nil), a.names...)
}

// Index returns the index path of name.
func (a *AccessorTable) Index(name string) ([]int, bool) {
	sf, ok := a.index[name]
	if !ok {
		return nil, false
	}
	return sf.Index, true
}

// FieldType returns the declared type of name.
func (a *AccessorTable) FieldType(name string) (reflect.Type, bool) {
	sf, ok := a.index[name]
	if !ok {
		return nil, false
	}
	return sf.Type, true
}

// Lookup returns the field called name, falling back to a case-insensitive
// match so configuration documents may write "name" for Name.
func (a *AccessorTable) Lookup(name string) (reflect.StructField, bool) {
	if sf, ok := a.index[name]; ok {
		return sf, true
	}
	for _, n := range a.names {
		if strings.EqualFold(n, name) {
			return a.index[n], true
		}
	}
	return reflect.StructField{}, false
}

// Settable returns the addressable field name of the struct v points to,
// allocating nil embedded pointers along the way.
func (a *AccessorTable) Settable(v reflect.Value, name string) (reflect.Value, bool) {
	sf, ok := a.index[name]
	if !ok {
		return reflect.Value{}, false
	}
	return FieldByIndexAlloc(v, sf.Index), true
}

// FieldByIndexAlloc walks index from v, allocating nil pointers it passes.
// v must be addressable or a pointer.
func FieldByIndexAlloc(v reflect.Value, index []int) reflect.Value {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
	for i, x := range index {
		if i > 0 {
			for v.Kind() == reflect.Ptr {
				if v.IsNil() {
					v.Set(reflect.New(v.Type().Elem()))
				}
				v = v.Elem()
			}
		}
		v = v.Field(x)
	}
	return v
}
