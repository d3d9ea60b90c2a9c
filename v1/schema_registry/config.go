package schema_registry

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aleph-Alpha/sheetmap/v1/convert"
	"github.com/Aleph-Alpha/sheetmap/v1/schema"
)

// configEntry is one schema declared by the configuration document, with its
// fields in document order.
type configEntry struct {
	ID        string
	ClassName string
	HasClass  bool
	Fields    []configField
	Line      int
	err       error
}

type configField struct {
	Name string
	Text string
}

// parseDocument reads the configuration document. JSON is valid YAML, so both
// formats are accepted; yaml.Node keeps the declaration order of entries and
// fields. Entries that cannot be used carry their error and are reported when
// built.
func parseDocument(doc []byte) ([]configEntry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedConfig, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	top := resolveAlias(root.Content[0])
	if top.Kind == yaml.ScalarNode && top.Tag == "!!null" {
		return nil, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: document root must be a mapping of schema ids", ErrMalformedConfig, top.Line)
	}

	seen := make(map[string]int, len(top.Content)/2)
	entries := make([]configEntry, 0, len(top.Content)/2)
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], resolveAlias(top.Content[i+1])
		entry := configEntry{ID: key.Value, Line: key.Line}

		if line, dup := seen[entry.ID]; dup {
			entry.err = &DuplicateSchemaIDError{
				ID:       entry.ID,
				Existing: fmt.Sprintf("configuration line %d", line),
				Incoming: fmt.Sprintf("configuration line %d", key.Line),
			}
			entries = append(entries, entry)
			continue
		}
		seen[entry.ID] = key.Line

		if value.Kind != yaml.MappingNode {
			entry.err = fmt.Errorf("%w: line %d: entry must be a mapping of fields", ErrMalformedConfig, value.Line)
			entries = append(entries, entry)
			continue
		}
		parseFields(&entry, value)
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseFields(entry *configEntry, m *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i].Value, resolveAlias(m.Content[i+1])
		if value.Kind != yaml.ScalarNode {
			entry.err = fmt.Errorf("%w: field %q at line %d", ErrComplexConfig, key, value.Line)
			return
		}

		text := value.Value
		if value.Tag == "!!null" {
			text = ""
		}
		switch key {
		case ClassNameKey:
			entry.ClassName = strings.TrimSpace(text)
			entry.HasClass = true
			continue
		case EscapedClassNameKey:
			key = ClassNameKey
		}
		entry.Fields = append(entry.Fields, configField{Name: key, Text: text})
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// splitDescriptor splits "label$$method" into its display name and transform
// method. `\$$` stands for a literal "$$" in the label. hasMethod reports
// whether an unescaped delimiter was present, even when the method is empty.
func splitDescriptor(text string) (label, method string, hasMethod bool) {
	var b strings.Builder
	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], EscapedTransformDelimiter):
			b.WriteString(TransformDelimiter)
			i += len(EscapedTransformDelimiter)
		case strings.HasPrefix(text[i:], TransformDelimiter):
			return strings.TrimSpace(b.String()), strings.TrimSpace(text[i+len(TransformDelimiter):]), true
		default:
			b.WriteByte(text[i])
			i++
		}
	}
	return strings.TrimSpace(b.String()), "", false
}

func entrySource(origin, id string) string {
	return fmt.Sprintf("configuration %s#%s", origin, id)
}

// buildFromEntry turns one configuration entry into a schema. With a className
// the fields are typed by the backing type; without one they are textual.
func (r *Registry) buildFromEntry(e configEntry, origin string) (*schema.Schema, error) {
	if e.err != nil {
		return nil, &EntryError{ID: e.ID, Err: e.err}
	}

	var (
		backing reflect.Type
		table   *schema.AccessorTable
	)
	if e.HasClass {
		t, ok := r.types[e.ClassName]
		if !ok {
			return nil, &EntryError{ID: e.ID, Err: fmt.Errorf("%w %q", ErrUnknownType, e.ClassName)}
		}
		backing = t
		table = schema.Accessors(t)
	}

	fields := make([]*schema.Field, 0, len(e.Fields))
	for _, cf := range e.Fields {
		label, method, hasMethod := splitDescriptor(cf.Text)
		if label == "" {
			label = cf.Name
		}
		f := &schema.Field{Name: cf.Name, ExternalName: label}

		if table != nil {
			sf, ok := table.Lookup(cf.Name)
			if !ok {
				return nil, &EntryError{ID: e.ID, Err: fmt.Errorf("%w: %s.%s", ErrNoSuchField, backing, cf.Name)}
			}
			f.TargetType = sf.Type
			f.Index = sf.Index
		}

		if hasMethod {
			fn, err := convert.Resolve(r.transforms, method)
			if err != nil {
				return nil, &EntryError{ID: e.ID, Err: fmt.Errorf("field %s: %w", cf.Name, err)}
			}
			f.Strategy = schema.StrategyTransform
			f.Transform = method
			f.TransformFunc = fn
		}
		fields = append(fields, f)
	}

	s, err := schema.New(e.ID, entrySource(origin, e.ID), backing, 0, fields...)
	if err != nil {
		return nil, &EntryError{ID: e.ID, Err: err}
	}
	return s, nil
}
