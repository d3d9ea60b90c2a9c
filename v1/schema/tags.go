package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// TagName is the struct tag key that carries mapping metadata.
const TagName = "sheet"

// Mapping is the resolved mapping metadata of one Go field of a declared type.
type Mapping struct {
	// Name is the Go field name, used as the internal field name.
	Name string

	// Spec is the field metadata from the tag or the descriptor override.
	Spec FieldSpec

	// Type is the declared Go type of the field.
	Type reflect.Type

	// Index is the reflect index path of the field.
	Index []int
}

// Label returns the external name, defaulting to the field name.
func (m Mapping) Label() string {
	if m.Spec.Label != "" {
		return m.Spec.Label
	}
	return m.Name
}

// Mappings returns the mapped fields of d.Type in declaration order. Ignored
// fields, unexported fields and fields without a tag or override are left out.
func Mappings(d *Descriptor) ([]Mapping, error) {
	if d.Type == nil || d.Type.Kind() != reflect.Struct {
		return nil, invalid(d.ID, "%s is not a struct type", d.Source())
	}

	var out []Mapping
	for i := 0; i < d.Type.NumField(); i++ {
		sf := d.Type.Field(i)
		if !sf.IsExported() {
			continue
		}

		spec, ok := d.Fields[sf.Name]
		if !ok {
			tag, tagged := sf.Tag.Lookup(TagName)
			if !tagged {
				continue
			}
			parsed, err := ParseTag(tag)
			if err != nil {
				return nil, invalid(d.ID, "field %s: %v", sf.Name, err)
			}
			spec = parsed
		}
		if spec.Ignore {
			continue
		}
		if spec.Transform != "" && (spec.Converter != "" || spec.ConverterType != nil) {
			return nil, invalid(d.ID, "field %s names both a transform and a converter", sf.Name)
		}

		out = append(out, Mapping{
			Name:  sf.Name,
			Spec:  spec,
			Type:  sf.Type,
			Index: sf.Index,
		})
	}
	return out, nil
}

// ParseTag parses `label[,transform=name][,converter=name]`. A tag of "-"
// marks the field ignored.
func ParseTag(tag string) (FieldSpec, error) {
	if tag == "-" {
		return FieldSpec{Ignore: true}, nil
	}

	parts := strings.Split(tag, ",")
	spec := FieldSpec{Label: strings.TrimSpace(parts[0])}
	for _, opt := range parts[1:] {
		key, value, found := strings.Cut(strings.TrimSpace(opt), "=")
		if !found || value == "" {
			return FieldSpec{}, fmt.Errorf("malformed tag option %q", opt)
		}
		switch key {
		case "transform":
			spec.Transform = value
		case "converter":
			spec.Converter = value
		default:
			return FieldSpec{}, fmt.Errorf("unknown tag option %q", key)
		}
	}
	return spec, nil
}
