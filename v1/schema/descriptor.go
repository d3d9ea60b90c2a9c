package schema

import (
	"reflect"
)

// Descriptor declares a record type that schemas are built from. It is the
// explicit replacement for annotating a type: the id, the optional table name,
// the nested record types and per-field overrides.
//
// Descriptors are usually created with Describe:
//
//	type Address struct {
//		City string `sheet:"City"`
//	}
//
//	type Person struct {
//		Name    string   `sheet:"Name"`
//		Age     int      `sheet:"Age"`
//		Address *Address `sheet:"Address"`
//	}
//
//	address := schema.Describe[Address]("address")
//	person := schema.Describe[Person]("person", schema.WithNested(address))
type Descriptor struct {
	// ID is the schema id the type is registered under. Required.
	ID string

	// Table is an optional alternative name for the type. Configuration
	// documents may refer to the type by it in their className entry.
	Table string

	// Type is the struct type rows are decoded into.
	Type reflect.Type

	// Nested lists record types that fields of Type refer to. A descriptor with
	// nested types produces a complex schema.
	Nested []*Descriptor

	// Fields overrides the struct tag of the named Go field.
	Fields map[string]FieldSpec
}

// FieldSpec is the mapping metadata of one Go field.
type FieldSpec struct {
	// Label is the external (display) column name. Empty means the Go field name.
	Label string

	// Transform names a method of the transform container used to convert the
	// cell text.
	Transform string

	// Converter names a converter type registered with the schema registry.
	Converter string

	// ConverterType is the converter type itself. It takes precedence over Converter.
	ConverterType reflect.Type

	// Ignore excludes the field from the schema.
	Ignore bool
}

// Strategy returns the conversion strategy selected by s.
func (s FieldSpec) Strategy() Strategy {
	switch {
	case s.Transform != "":
		return StrategyTransform
	case s.Converter != "" || s.ConverterType != nil:
		return StrategyConverter
	}
	return StrategyDefault
}

// Option configures a Descriptor.
type Option func(*Descriptor)

// WithTable sets the alternative type name.
func WithTable(table string) Option {
	return func(d *Descriptor) {
		d.Table = table
	}
}

// WithNested declares the nested record types.
func WithNested(nested ...*Descriptor) Option {
	return func(d *Descriptor) {
		d.Nested = append(d.Nested, nested...)
	}
}

// WithField overrides the mapping metadata of the Go field name.
func WithField(name string, spec FieldSpec) Option {
	return func(d *Descriptor) {
		if d.Fields == nil {
			d.Fields = make(map[string]FieldSpec)
		}
		d.Fields[name] = spec
	}
}

// Describe builds a Descriptor for the struct type T.
func Describe[T any](id string, opts ...Option) *Descriptor {
	return DescribeType(id, reflect.TypeOf((*T)(nil)).Elem(), opts...)
}

// DescribeType is the non-generic form of Describe.
func DescribeType(id string, t reflect.Type, opts ...Option) *Descriptor {
	d := &Descriptor{ID: id, Type: t}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Source names the declared type for error messages.
func (d *Descriptor) Source() string {
	if d.Type == nil {
		return "<nil>"
	}
	return d.Type.String()
}

// IsComplex reports whether the descriptor declares nested record types.
func (d *Descriptor) IsComplex() bool {
	return len(d.Nested) > 0
}

// NestedFor returns the nested descriptor whose type is t or *t.
func (d *Descriptor) NestedFor(t reflect.Type) (*Descriptor, bool) {
	t = Indirect(t)
	for _, n := range d.Nested {
		if n != nil && n.Type == t {
			return n, true
		}
	}
	return nil, false
}

// Validate checks that d and its nested descriptors can be built:
// the id is set, the type is a struct, overrides name existing fields, and no
// field selects two conversion strategies.
func Validate(d *Descriptor) error {
	return validate(d, map[*Descriptor]bool{})
}

func validate(d *Descriptor, seen map[*Descriptor]bool) error {
	if d == nil {
		return invalid("", "nil descriptor")
	}
	if seen[d] {
		return nil
	}
	seen[d] = true

	if d.ID == "" {
		return invalid(d.ID, "empty schema id for %s", d.Source())
	}
	if d.Type == nil || d.Type.Kind() != reflect.Struct {
		return invalid(d.ID, "%s is not a struct type", d.Source())
	}
	for name, spec := range d.Fields {
		if _, ok := d.Type.FieldByName(name); !ok {
			return invalid(d.ID, "override for unknown field %s.%s", d.Source(), name)
		}
		if spec.Transform != "" && (spec.Converter != "" || spec.ConverterType != nil) {
			return invalid(d.ID, "field %s names both a transform and a converter", name)
		}
	}
	for _, n := range d.Nested {
		if err := validate(n, seen); err != nil {
			return err
		}
	}
	return nil
}

// Indirect strips pointer indirections from t.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
