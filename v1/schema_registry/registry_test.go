package schema_registry

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/sheetmap/v1/configsource"
	"github.com/Aleph-Alpha/sheetmap/v1/convert"
	"github.com/Aleph-Alpha/sheetmap/v1/observability"
	"github.com/Aleph-Alpha/sheetmap/v1/schema"
)

type person struct {
	Name string `sheet:"Full Name"`
	Age  int    `sheet:"Age,transform=parseAge"`
}

type address struct {
	City string `sheet:"City"`
	Zip  string `sheet:"Zip"`
}

type customer struct {
	Name    string   `sheet:"Name"`
	Address *address `sheet:"Address"`
}

type broken struct {
	When string `sheet:"When,transform=noSuchMethod"`
}

type withBroken struct {
	ID     string  `sheet:"ID"`
	Broken *broken `sheet:"Broken"`
}

// mutableSource is a configuration source tests can rewrite between lookups.
type mutableSource struct {
	mu    sync.Mutex
	doc   []byte
	err   error
	loads int
}

func (s *mutableSource) Load(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	if s.doc == nil {
		return nil, configsource.ErrNotFound
	}
	return append([]byte(nil), s.doc...), nil
}

func (s *mutableSource) Name() string { return "mutable" }

func (s *mutableSource) set(doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc, s.err = []byte(doc), nil
}

func (s *mutableSource) remove() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = nil
}

type recorder struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (r *recorder) ObserveOperation(ctx observability.OperationContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, ctx)
}

func (r *recorder) operations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.ops))
	for _, op := range r.ops {
		out = append(out, op.Operation)
	}
	return out
}

func transforms() *convert.MethodSet {
	return convert.NewMethodSet("testTransforms").
		Add("parseAge", func(raw string) (any, error) { return len(raw), nil }).
		Add("upper", func(raw string) (any, error) { return raw + "!", nil })
}

func coldConfig() Config {
	return Config{HotReload: false, MatchWorkers: 2}
}

func TestBuilder_RegisterAndResolve(t *testing.T) {
	reg, err := NewBuilder(coldConfig()).
		WithTransforms(transforms()).
		MustRegister(schema.Describe[person]("person")).
		Build(context.Background())
	require.NoError(t, err)

	s, ok := reg.Resolve(context.Background(), "person")
	require.True(t, ok)
	assert.Equal(t, []string{"Name", "Age"}, s.Names())
	assert.Equal(t, []string{"Full Name", "Age"}, s.ExternalNames())
	assert.Equal(t, reflect.TypeOf(person{}), s.BackingType)

	age, ok := s.Field("Age")
	require.True(t, ok)
	assert.Equal(t, schema.StrategyTransform, age.Strategy)
	require.NotNil(t, age.TransformFunc)

	_, ok = reg.Resolve(context.Background(), "nobody")
	assert.False(t, ok)

	id, ok := reg.IDOf(reflect.TypeOf(&person{}))
	require.True(t, ok)
	assert.Equal(t, "person", id)

	bt, ok := reg.BackingType("person")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(person{}), bt)
	assert.Equal(t, 0, reg.DepthOf("person"))
}

func TestBuilder_DuplicateIDKeepsPriorState(t *testing.T) {
	b := NewBuilder(coldConfig()).WithTransforms(transforms())
	require.NoError(t, b.Register(schema.Describe[person]("shared")))

	err := b.Register(schema.Describe[address]("shared"))
	require.Error(t, err)
	assert.True(t, IsDuplicateSchemaID(err))

	var dup *DuplicateSchemaIDError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "shared", dup.ID)
	assert.Contains(t, dup.Existing, "person")
	assert.Contains(t, dup.Incoming, "address")

	reg, err := b.Build(context.Background())
	require.NoError(t, err)
	s, ok := reg.Resolve(context.Background(), "shared")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(person{}), s.BackingType)
}

func TestBuilder_MissingMethodIsAllOrNothing(t *testing.T) {
	b := NewBuilder(coldConfig()).WithTransforms(transforms())
	err := b.Register(schema.Describe[withBroken]("parent",
		schema.WithNested(schema.Describe[broken]("broken"))))
	require.Error(t, err)
	assert.True(t, convert.IsMissingMethod(err))

	reg, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reg.IDs(context.Background()))
}

func TestBuilder_UnknownConverter(t *testing.T) {
	type money struct {
		Amount int64 `sheet:"Amount,converter=cents"`
	}
	err := NewBuilder(coldConfig()).Register(schema.Describe[money]("money"))
	assert.ErrorIs(t, err, ErrUnknownConverter)
}

func TestBuilder_ComplexSchema(t *testing.T) {
	reg, err := NewBuilder(coldConfig()).
		MustRegister(schema.Describe[customer]("customer",
			schema.WithNested(schema.Describe[address]("address")))).
		Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"address", "customer"}, reg.IDs(context.Background()))
	assert.Equal(t, 2, reg.DepthOf("customer"))
	assert.Equal(t, 0, reg.DepthOf("address"))

	s, _ := reg.Resolve(context.Background(), "customer")
	path, ok := s.Lookup("Zip", true)
	require.True(t, ok)
	require.Len(t, path, 2)
	assert.Equal(t, "Address", path[0].Name)
	assert.Equal(t, "Zip", path.Leaf().Name)
}

func TestBuilder_ClosedAfterBuild(t *testing.T) {
	b := NewBuilder(coldConfig())
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, b.Register(schema.Describe[person]("person")), ErrBuilderClosed)
	_, err = b.Build(context.Background())
	assert.ErrorIs(t, err, ErrBuilderClosed)
}

func TestBuild_ConfigIntoColdTier(t *testing.T) {
	src := configsource.NewStatic("test", []byte(`{
		"contact": {"email": "E-Mail", "phone": "Phone$$upper"},
		"people": {"className": "person", "name": "Nom"},
		"ghost": {"className": "Ghost", "x": "X"},
		"nested": {"inner": {"a": "b"}}
	}`))

	reg, err := NewBuilder(coldConfig()).
		WithTransforms(transforms()).
		WithSource(src).
		MustRegister(schema.Describe[person]("person")).
		Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"contact", "people", "person"}, reg.IDs(context.Background()))

	contact, ok := reg.Resolve(context.Background(), "contact")
	require.True(t, ok)
	assert.True(t, contact.IsGeneric())
	assert.Equal(t, []string{"email", "phone"}, contact.Names())
	assert.Equal(t, []string{"E-Mail", "Phone"}, contact.ExternalNames())
	phone, _ := contact.Field("phone")
	assert.Equal(t, schema.StrategyTransform, phone.Strategy)
	assert.Equal(t, "upper", phone.Transform)

	people, ok := reg.Resolve(context.Background(), "people")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(person{}), people.BackingType)
	name, ok := people.Field("name")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(""), name.TargetType)
	assert.Equal(t, []int{0}, name.Index)

	bt, ok := reg.BackingType("people")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(person{}), bt)
	_, ok = reg.BackingType("contact")
	assert.False(t, ok)
}

func TestBuild_ConfigCollidesWithDeclared(t *testing.T) {
	src := configsource.NewStatic("test", []byte(`{"person": {"a": "A"}}`))
	_, err := NewBuilder(coldConfig()).
		WithTransforms(transforms()).
		WithSource(src).
		MustRegister(schema.Describe[person]("person")).
		Build(context.Background())
	require.Error(t, err)
	assert.True(t, IsDuplicateSchemaID(err))
	assert.Contains(t, err.Error(), "configuration test#person")
}

func TestBuild_MissingAndMalformedConfig(t *testing.T) {
	for name, src := range map[string]configsource.Source{
		"missing":   &mutableSource{},
		"malformed": configsource.NewStatic("bad", []byte(`[1, 2`)),
		"not a map": configsource.NewStatic("list", []byte(`[1, 2]`)),
	} {
		t.Run(name, func(t *testing.T) {
			reg, err := NewBuilder(coldConfig()).WithSource(src).Build(context.Background())
			require.NoError(t, err)
			assert.Empty(t, reg.IDs(context.Background()))
		})
	}
}

func TestRegistry_HotReload(t *testing.T) {
	ctx := context.Background()
	src := &mutableSource{}
	src.set(`{"person": {"nick": "Nickname"}}`)

	reg, err := NewBuilder(DefaultConfig()).
		WithTransforms(transforms()).
		WithSource(src).
		MustRegister(schema.Describe[person]("person")).
		Build(ctx)
	require.NoError(t, err)
	require.True(t, reg.HotReload())

	s, ok := reg.Resolve(ctx, "person")
	require.True(t, ok)
	assert.True(t, s.IsGeneric(), "hot schema shadows the declared one")

	src.set(`{"extra": {"a": "A"}}`)
	s, ok = reg.Resolve(ctx, "person")
	require.True(t, ok)
	assert.False(t, s.IsGeneric())
	_, ok = reg.Resolve(ctx, "extra")
	assert.True(t, ok)
	assert.Equal(t, []string{"extra", "person"}, reg.IDs(ctx))

	reg.SetHotReload(false)
	_, ok = reg.Resolve(ctx, "extra")
	assert.False(t, ok)
	assert.Equal(t, []string{"person"}, reg.IDs(ctx))

	reg.SetHotReload(true)
	src.remove()
	_, ok = reg.Resolve(ctx, "extra")
	assert.False(t, ok, "missing document empties the hot tier")
	_, ok = reg.Resolve(ctx, "person")
	assert.True(t, ok)
}

func TestRegistry_ReloadFailureKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	src := &mutableSource{}
	src.set(`{"extra": {"a": "A"}}`)

	reg, err := NewBuilder(DefaultConfig()).WithSource(src).Build(ctx)
	require.NoError(t, err)

	src.set(`{"extra": `)
	err = reg.Reload(ctx)
	assert.True(t, IsMalformedConfig(err))
	_, ok := reg.Resolve(ctx, "extra")
	assert.True(t, ok)

	src.mu.Lock()
	src.err = errors.New("disk on fire")
	src.mu.Unlock()
	assert.Error(t, reg.Reload(ctx))
	_, ok = reg.Resolve(ctx, "extra")
	assert.True(t, ok)
}

func TestRegistry_LoadConfigEntryErrors(t *testing.T) {
	reg, err := NewBuilder(DefaultConfig()).
		WithTransforms(transforms()).
		MustRegister(schema.Describe[person]("person")).
		Build(context.Background())
	require.NoError(t, err)

	err = reg.LoadConfig([]byte(`{
		"ok": {"a": "A"},
		"nested": {"a": {"b": "c"}},
		"unknown": {"className": "Nope", "a": "A"},
		"badfield": {"className": "person", "missing": "M"},
		"badmethod": {"a": "A$$nothing"}
	}`))
	require.Error(t, err)
	assert.True(t, IsComplexConfig(err))
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.ErrorIs(t, err, ErrNoSuchField)
	assert.True(t, convert.IsMissingMethod(err))

	assert.Equal(t, []string{"ok", "person"}, reg.visibleIDs())
}

func TestRegistry_LoadConfigEmptyMethodFails(t *testing.T) {
	reg, err := NewBuilder(DefaultConfig()).
		WithTransforms(transforms()).
		Build(context.Background())
	require.NoError(t, err)

	err = reg.LoadConfig([]byte(`{"g": {"name": "Name$$"}, "ok": {"name": "Name"}}`))
	require.Error(t, err)
	assert.True(t, convert.IsMissingMethod(err))

	var entryErr *EntryError
	require.ErrorAs(t, err, &entryErr)
	assert.Equal(t, "g", entryErr.ID)

	var missing *convert.MissingMethodError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "", missing.Method)
	assert.Equal(t, "testTransforms", missing.Container)

	assert.Equal(t, []string{"ok"}, reg.visibleIDs())
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	src := &mutableSource{}
	src.set(`{"a": {"x": "X"}}`)
	reg, err := NewBuilder(DefaultConfig()).WithSource(src).Build(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if i%2 == 0 {
					src.set(`{"a": {"x": "X"}, "b": {"y": "Y"}}`)
				}
				_, ok := reg.Resolve(ctx, "a")
				assert.True(t, ok)
			}
		}(i)
	}
	wg.Wait()
}

func TestRegistry_Observer(t *testing.T) {
	rec := &recorder{}
	reg, err := NewBuilder(coldConfig()).
		WithTransforms(transforms()).
		WithObserver(rec).
		MustRegister(schema.Describe[person]("person")).
		Build(context.Background())
	require.NoError(t, err)

	_, _ = reg.Match(context.Background(), []string{"Age"}, MatchExternal)
	assert.Equal(t, []string{"register", "build", "match"}, rec.operations())
}
