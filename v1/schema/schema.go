package schema

import (
	"fmt"
	"reflect"

	"github.com/Aleph-Alpha/sheetmap/v1/convert"
)

// Strategy selects how the text of a cell becomes the field value.
type Strategy int

const (
	// StrategyDefault converts by target type through the conversion registry.
	StrategyDefault Strategy = iota
	// StrategyConverter delegates to a converter operator instance.
	StrategyConverter
	// StrategyTransform invokes a named method of the transform container.
	StrategyTransform
)

func (s Strategy) String() string {
	switch s {
	case StrategyConverter:
		return "converter"
	case StrategyTransform:
		return "transform"
	}
	return "default"
}

// Field describes one field of a schema. Fields are immutable once the schema
// owning them is built.
type Field struct {
	// Name is the internal field name (Go field name or config key).
	Name string

	// ExternalName is the column label expected in the header row.
	ExternalName string

	// TargetType is the type the cell text becomes. A nil TargetType means text.
	TargetType reflect.Type

	Strategy Strategy

	// Transform is the bound method name and TransformFunc the method itself.
	Transform     string
	TransformFunc convert.TransformFunc

	// Operator is set for StrategyConverter.
	Operator convert.Operator

	// Child is the schema of a nested record field.
	Child *Schema

	// Index is the reflect index path inside the backing type, nil for
	// generic schemas.
	Index []int
}

// IsText reports whether the cell text is assigned without conversion.
func (f *Field) IsText() bool {
	if f.Child != nil {
		return false
	}
	t := Indirect(f.TargetType)
	return t == nil || t.Kind() == reflect.String
}

// IsNested reports whether the field holds a nested record.
func (f *Field) IsNested() bool {
	return f.Child != nil
}

// FieldSet is an insertion-ordered set of fields keyed by internal name.
type FieldSet struct {
	order      []*Field
	byName     map[string]int
	byExternal map[string]int
}

// NewFieldSet returns an empty set.
func NewFieldSet() *FieldSet {
	return &FieldSet{
		byName:     make(map[string]int),
		byExternal: make(map[string]int),
	}
}

// Add appends f. Adding a second field with the same internal name fails.
// When two fields share an external name the first one wins the label lookup.
func (s *FieldSet) Add(f *Field) error {
	if _, ok := s.byName[f.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateField, f.Name)
	}
	s.byName[f.Name] = len(s.order)
	if _, ok := s.byExternal[f.ExternalName]; !ok {
		s.byExternal[f.ExternalName] = len(s.order)
	}
	s.order = append(s.order, f)
	return nil
}

// Get returns the field with internal name name.
func (s *FieldSet) Get(name string) (*Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.order[i], true
}

// ByExternal returns the field labelled label.
func (s *FieldSet) ByExternal(label string) (*Field, bool) {
	i, ok := s.byExternal[label]
	if !ok {
		return nil, false
	}
	return s.order[i], true
}

// Len returns the number of fields.
func (s *FieldSet) Len() int {
	return len(s.order)
}

// Each calls fn for every field in insertion order until fn returns false.
func (s *FieldSet) Each(fn func(*Field) bool) {
	for _, f := range s.order {
		if !fn(f) {
			return
		}
	}
}

// Schema is a named, ordered set of fields describing how one row becomes one
// record.
type Schema struct {
	// ID is the schema id.
	ID string

	// BackingType is the struct type rows are decoded into; nil for generic
	// schemas which decode into ordered rows.
	BackingType reflect.Type

	// Depth is 0 for flat schemas and at least 2 for complex ones.
	Depth int

	// Source names where the schema came from: a Go type or a configuration
	// document entry.
	Source string

	fields *FieldSet
}

// New builds a schema from fields in the given order.
func New(id, source string, backing reflect.Type, depth int, fields ...*Field) (*Schema, error) {
	set := NewFieldSet()
	for _, f := range fields {
		if err := set.Add(f); err != nil {
			return nil, fmt.Errorf("schema %q from %s: %w", id, source, err)
		}
	}
	return &Schema{
		ID:          id,
		BackingType: backing,
		Depth:       depth,
		Source:      source,
		fields:      set,
	}, nil
}

// Field returns the field with internal name name.
func (s *Schema) Field(name string) (*Field, bool) {
	return s.fields.Get(name)
}

// ByExternal returns the field labelled label.
func (s *Schema) ByExternal(label string) (*Field, bool) {
	return s.fields.ByExternal(label)
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return s.fields.Len()
}

// Each iterates the fields in order until fn returns false.
func (s *Schema) Each(fn func(*Field) bool) {
	s.fields.Each(fn)
}

// Names returns the internal field names in order.
func (s *Schema) Names() []string {
	out := make([]string, 0, s.Len())
	s.Each(func(f *Field) bool {
		out = append(out, f.Name)
		return true
	})
	return out
}

// ExternalNames returns the external labels in order.
func (s *Schema) ExternalNames() []string {
	out := make([]string, 0, s.Len())
	s.Each(func(f *Field) bool {
		out = append(out, f.ExternalName)
		return true
	})
	return out
}

// IsGeneric reports whether rows decode into ordered generic rows.
func (s *Schema) IsGeneric() bool {
	return s.BackingType == nil
}

// Path is the chain of fields from a schema down to a leaf field. It has one
// element for flat fields and one more per nested level.
type Path []*Field

// Leaf returns the last field of the path.
func (p Path) Leaf() *Field {
	return p[len(p)-1]
}

// Lookup finds the leaf field named key, searching this schema first and then
// nested children depth first. When external is true key is compared with
// external labels, otherwise with internal names.
func (s *Schema) Lookup(key string, external bool) (Path, bool) {
	get := s.fields.Get
	if external {
		get = s.fields.ByExternal
	}
	if f, ok := get(key); ok && !f.IsNested() {
		return Path{f}, true
	}

	var found Path
	s.Each(func(f *Field) bool {
		if !f.IsNested() {
			return true
		}
		if p, ok := f.Child.Lookup(key, external); ok {
			found = append(Path{f}, p...)
			return false
		}
		return true
	})
	return found, found != nil
}

// LeafNames returns the names of all leaf fields, flattening nested children.
// Matching uses them so complex schemas match headers of their child fields.
func (s *Schema) LeafNames(external bool) []string {
	var out []string
	s.Each(func(f *Field) bool {
		if f.IsNested() {
			out = append(out, f.Child.LeafNames(external)...)
			return true
		}
		if external {
			out = append(out, f.ExternalName)
		} else {
			out = append(out, f.Name)
		}
		return true
	})
	return out
}
