package schema_registry

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/Aleph-Alpha/sheetmap/v1/configsource"
	"github.com/Aleph-Alpha/sheetmap/v1/convert"
	"github.com/Aleph-Alpha/sheetmap/v1/observability"
	"github.com/Aleph-Alpha/sheetmap/v1/schema"
)

// Builder collects declared record types into the cold tier. Build is the
// startup barrier: the Registry only exists once every declared type and, when
// hot reload is off, the configuration document have been loaded.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	hooks

	cfg        Config
	transforms convert.Container
	converters map[string]reflect.Type
	types      map[string]reflect.Type
	source     configsource.Source
	instances  *convert.Instances

	cold      map[string]*schema.Schema
	coldTypes map[string]reflect.Type
	typeIDs   map[reflect.Type]string
	built     bool
}

// NewBuilder returns an empty builder.
//
// Example:
//
//	b := schema_registry.NewBuilder(schema_registry.DefaultConfig()).
//	    WithTransforms(convert.MethodsOf(Transforms{})).
//	    WithSource(src).
//	    WithLogger(log)
//	if err := b.Register(schema.Describe[Person]("person")); err != nil {
//	    return err
//	}
//	reg, err := b.Build(ctx)
func NewBuilder(cfg Config) *Builder {
	if cfg.MatchWorkers <= 0 {
		cfg.MatchWorkers = DefaultMatchWorkers
	}
	return &Builder{
		cfg:        cfg,
		converters: make(map[string]reflect.Type),
		types:      make(map[string]reflect.Type),
		instances:  &convert.Instances{},
		cold:       make(map[string]*schema.Schema),
		coldTypes:  make(map[string]reflect.Type),
		typeIDs:    make(map[reflect.Type]string),
	}
}

// WithTransforms sets the container transform methods are resolved on.
func (b *Builder) WithTransforms(c convert.Container) *Builder {
	b.transforms = c
	return b
}

// WithConverter registers a converter type under name for `converter=name` tags.
func (b *Builder) WithConverter(name string, t reflect.Type) *Builder {
	b.converters[name] = t
	return b
}

// WithTypes adds className entries to the type table. Declared types are added
// automatically when registered.
func (b *Builder) WithTypes(types map[string]reflect.Type) *Builder {
	for name, t := range types {
		b.types[name] = schema.Indirect(t)
	}
	return b
}

// WithSource sets the configuration document source.
func (b *Builder) WithSource(src configsource.Source) *Builder {
	b.source = src
	return b
}

// WithLogger attaches a logger.
func (b *Builder) WithLogger(logger Logger) *Builder {
	b.logger = logger
	return b
}

// WithObserver attaches an observer.
func (b *Builder) WithObserver(observer observability.Observer) *Builder {
	b.observer = observer
	return b
}

// Register builds the schema of d, and of every nested type it refers to that
// is not registered yet, into the cold tier.
//
// Registration is all or nothing: on DuplicateSchemaID, MissingMethod, an
// unknown converter or a cycle no schema of d is added and the builder keeps
// its previous state.
func (b *Builder) Register(d *schema.Descriptor) error {
	if b.built {
		return ErrBuilderClosed
	}
	start := time.Now()
	err := b.register(d)
	id := ""
	if d != nil {
		id = d.ID
	}
	b.observeOperation("register", id, time.Since(start), err, 0)
	return err
}

// MustRegister is like Register but panics on error. It is meant for package
// level declarations in main.
func (b *Builder) MustRegister(ds ...*schema.Descriptor) *Builder {
	for _, d := range ds {
		if err := b.Register(d); err != nil {
			panic(err)
		}
	}
	return b
}

type staging struct {
	schemas map[string]*schema.Schema
	order   []*schema.Descriptor
}

func (b *Builder) register(d *schema.Descriptor) error {
	if err := schema.Validate(d); err != nil {
		return err
	}
	if _, err := schema.ComplexDepth(d); err != nil {
		return err
	}

	st := &staging{schemas: make(map[string]*schema.Schema)}
	if _, err := b.build(d, st, false); err != nil {
		return err
	}

	for _, sd := range st.order {
		s := st.schemas[sd.ID]
		b.cold[sd.ID] = s
		b.coldTypes[sd.ID] = s.BackingType
		if _, ok := b.typeIDs[s.BackingType]; !ok {
			b.typeIDs[s.BackingType] = sd.ID
		}
		b.addTypeNames(sd)
	}
	return nil
}

// build creates the schema of d into st. Nested types already present with the
// same backing type are reused; any other id collision is a duplicate.
func (b *Builder) build(d *schema.Descriptor, st *staging, nested bool) (*schema.Schema, error) {
	if s, ok := st.schemas[d.ID]; ok {
		if s.BackingType == d.Type {
			return s, nil
		}
		return nil, &DuplicateSchemaIDError{ID: d.ID, Existing: s.Source, Incoming: d.Source()}
	}
	if s, ok := b.cold[d.ID]; ok {
		if nested && s.BackingType == d.Type {
			return s, nil
		}
		return nil, &DuplicateSchemaIDError{ID: d.ID, Existing: s.Source, Incoming: d.Source()}
	}

	mappings, err := schema.Mappings(d)
	if err != nil {
		return nil, err
	}
	depth, err := schema.ComplexDepth(d)
	if err != nil {
		return nil, err
	}

	fields := make([]*schema.Field, 0, len(mappings))
	for _, m := range mappings {
		f := &schema.Field{
			Name:         m.Name,
			ExternalName: m.Label(),
			TargetType:   m.Type,
			Strategy:     m.Spec.Strategy(),
			Index:        m.Index,
		}
		if child, ok := d.NestedFor(m.Type); ok && d.IsComplex() {
			cs, err := b.build(child, st, true)
			if err != nil {
				return nil, err
			}
			f.Child = cs
			f.Strategy = schema.StrategyDefault
			fields = append(fields, f)
			continue
		}
		if err := b.bindConversion(d.ID, f, m.Spec); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	s, err := schema.New(d.ID, d.Source(), d.Type, depth, fields...)
	if err != nil {
		return nil, err
	}
	st.schemas[d.ID] = s
	st.order = append(st.order, d)
	return s, nil
}

func (b *Builder) bindConversion(id string, f *schema.Field, spec schema.FieldSpec) error {
	switch f.Strategy {
	case schema.StrategyTransform:
		fn, err := convert.Resolve(b.transforms, spec.Transform)
		if err != nil {
			return fmt.Errorf("schema %q field %s: %w", id, f.Name, err)
		}
		f.Transform = spec.Transform
		f.TransformFunc = fn

	case schema.StrategyConverter:
		t := spec.ConverterType
		if t == nil {
			var ok bool
			if t, ok = b.converters[spec.Converter]; !ok {
				return fmt.Errorf("schema %q field %s: %w %q", id, f.Name, ErrUnknownConverter, spec.Converter)
			}
		}
		op, err := b.instances.Get(t)
		if err != nil {
			return fmt.Errorf("schema %q field %s: %w", id, f.Name, err)
		}
		f.Operator = op
	}
	return nil
}

// addTypeNames makes a declared type addressable from className entries by
// its table name, its Go type string, its qualified name and its bare name.
func (b *Builder) addTypeNames(d *schema.Descriptor) {
	t := d.Type
	names := []string{t.String(), convert.QualifiedKey(t)}
	if d.Table != "" {
		names = append(names, d.Table)
	}
	for _, n := range names {
		b.types[n] = t
	}
	if _, ok := b.types[t.Name()]; !ok && t.Name() != "" {
		b.types[t.Name()] = t
	}
}

// Build finishes construction and returns the registry. With hot reload off
// the configuration document is parsed into the cold tier here; an entry whose
// id collides with a declared schema fails the build naming both sources. With
// hot reload on the document becomes the first hot snapshot.
//
// A missing document means no configuration. A malformed document or a
// failing entry is logged as a warning and skipped.
func (b *Builder) Build(ctx context.Context) (*Registry, error) {
	if b.built {
		return nil, ErrBuilderClosed
	}
	b.built = true
	start := time.Now()

	r := &Registry{
		hooks:      b.hooks,
		cfg:        b.cfg,
		transforms: b.transforms,
		types:      b.types,
		source:     b.source,
		cold:       b.cold,
		coldTypes:  b.coldTypes,
		typeIDs:    b.typeIDs,
	}
	r.hotReload.Store(b.cfg.HotReload)
	r.hot.Store(newSnapshot(""))

	if err := r.loadInitial(ctx); err != nil {
		b.observeOperation("build", "", time.Since(start), err, 0)
		return nil, err
	}
	r.coldIDs = sortedKeys(r.cold)

	b.observeOperation("build", "", time.Since(start), nil, int64(len(r.cold)))
	b.logInfo(ctx, "schema registry built", map[string]interface{}{
		"cold_schemas": len(r.cold),
		"hot_schemas":  len(r.hot.Load().schemas),
		"hot_reload":   b.cfg.HotReload,
	})
	return r, nil
}
