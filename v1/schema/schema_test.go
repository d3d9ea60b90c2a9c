package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	City string `sheet:"City"`
	Zip  string `sheet:"Zip code"`
}

type person struct {
	Name     string   `sheet:"Full name"`
	Age      int      `sheet:""`
	Nickname string   `sheet:"-"`
	Notes    string
	Joined   string   `sheet:"Joined,transform=parseJoined"`
	Salary   int64    `sheet:"Salary,converter=money"`
	Address  *address `sheet:"Address"`
	secret   string   `sheet:"Secret"`
}

type cycleA struct {
	B *cycleB `sheet:"B"`
}

type cycleB struct {
	A *cycleA `sheet:"A"`
}

type company struct {
	Name string  `sheet:"Company"`
	Boss *person `sheet:"Boss"`
}

func TestParseTag(t *testing.T) {
	spec, err := ParseTag("Label, transform=fn")
	require.NoError(t, err)
	assert.Equal(t, FieldSpec{Label: "Label", Transform: "fn"}, spec)
	assert.Equal(t, StrategyTransform, spec.Strategy())

	spec, err = ParseTag(",converter=money")
	require.NoError(t, err)
	assert.Equal(t, "", spec.Label)
	assert.Equal(t, StrategyConverter, spec.Strategy())

	spec, err = ParseTag("-")
	require.NoError(t, err)
	assert.True(t, spec.Ignore)

	_, err = ParseTag("x,unknown=1")
	assert.Error(t, err)
	_, err = ParseTag("x,transform")
	assert.Error(t, err)
}

func TestMappings(t *testing.T) {
	d := Describe[person]("person")
	mappings, err := Mappings(d)
	require.NoError(t, err)

	var names, labels []string
	for _, m := range mappings {
		names = append(names, m.Name)
		labels = append(labels, m.Label())
	}
	assert.Equal(t, []string{"Name", "Age", "Joined", "Salary", "Address"}, names)
	assert.Equal(t, []string{"Full name", "Age", "Joined", "Salary", "Address"}, labels)
	assert.Equal(t, reflect.TypeOf(0), mappings[1].Type)
	assert.Equal(t, "money", mappings[3].Spec.Converter)
}

func TestMappings_Override(t *testing.T) {
	d := Describe[person]("person",
		WithField("Notes", FieldSpec{Label: "Remarks"}),
		WithField("Age", FieldSpec{Ignore: true}),
	)
	mappings, err := Mappings(d)
	require.NoError(t, err)

	var labels []string
	for _, m := range mappings {
		labels = append(labels, m.Label())
	}
	assert.Equal(t, []string{"Full name", "Remarks", "Joined", "Salary", "Address"}, labels)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(Describe[person]("person")))

	err := Validate(Describe[person](""))
	assert.True(t, IsInvalidDescriptor(err))

	err = Validate(DescribeType("int", reflect.TypeOf(0)))
	assert.True(t, IsInvalidDescriptor(err))

	err = Validate(Describe[person]("person", WithField("Missing", FieldSpec{})))
	assert.True(t, IsInvalidDescriptor(err))

	err = Validate(Describe[person]("person", WithField("Name", FieldSpec{Transform: "a", Converter: "b"})))
	assert.True(t, IsInvalidDescriptor(err))

	err = Validate(Describe[company]("company", WithNested(Describe[person]("", WithTable("p")))))
	assert.True(t, IsInvalidDescriptor(err))
}

func TestComplexDepth(t *testing.T) {
	addr := Describe[address]("address")
	depth, err := ComplexDepth(addr)
	require.NoError(t, err)
	assert.Equal(t, 0, depth)

	p := Describe[person]("person", WithNested(addr))
	depth, err = ComplexDepth(p)
	require.NoError(t, err)
	assert.Equal(t, 2, depth)

	c := Describe[company]("company", WithNested(p, Describe[address]("address")))
	depth, err = ComplexDepth(c)
	require.NoError(t, err)
	assert.Equal(t, 3, depth)
}

func TestComplexDepth_Cycle(t *testing.T) {
	a := Describe[cycleA]("a")
	b := Describe[cycleB]("b", WithNested(a))
	a.Nested = []*Descriptor{b}

	_, err := ComplexDepth(a)
	require.Error(t, err)
	assert.True(t, IsCyclicSchema(err))
	assert.Contains(t, err.Error(), "a -> b -> a")
}

func TestSchema_LookupAndNames(t *testing.T) {
	child, err := New("address", "address", reflect.TypeOf(address{}), 0,
		&Field{Name: "City", ExternalName: "City", TargetType: reflect.TypeOf("")},
		&Field{Name: "Zip", ExternalName: "Zip code", TargetType: reflect.TypeOf("")},
	)
	require.NoError(t, err)

	parent, err := New("person", "person", reflect.TypeOf(person{}), 2,
		&Field{Name: "Name", ExternalName: "Full name", TargetType: reflect.TypeOf("")},
		&Field{Name: "Age", ExternalName: "Age", TargetType: reflect.TypeOf(0)},
		&Field{Name: "Address", ExternalName: "Address", TargetType: reflect.TypeOf(&address{}), Child: child},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age", "Address"}, parent.Names())
	assert.Equal(t, []string{"Full name", "Age", "City", "Zip code"}, parent.LeafNames(true))
	assert.Equal(t, []string{"Name", "Age", "City", "Zip"}, parent.LeafNames(false))

	path, ok := parent.Lookup("Zip code", true)
	require.True(t, ok)
	require.Len(t, path, 2)
	assert.Equal(t, "Address", path[0].Name)
	assert.Equal(t, "Zip", path.Leaf().Name)

	_, ok = parent.Lookup("Address", true)
	assert.False(t, ok)

	f, ok := parent.Field("Age")
	require.True(t, ok)
	assert.False(t, f.IsText())
	nameField, _ := parent.ByExternal("Full name")
	assert.True(t, nameField.IsText())
}

func TestNew_DuplicateField(t *testing.T) {
	_, err := New("x", "test", nil, 0,
		&Field{Name: "a", ExternalName: "A"},
		&Field{Name: "a", ExternalName: "B"},
	)
	assert.ErrorIs(t, err, ErrDuplicateField)
}

func TestAccessors(t *testing.T) {
	table := Accessors(reflect.TypeOf(&person{}))
	require.NotNil(t, table)
	assert.Same(t, table, Accessors(reflect.TypeOf(person{})))
	assert.NotContains(t, table.Names(), "secret")

	ft, ok := table.FieldType("Address")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(&address{}), ft)

	var p person
	v := reflect.ValueOf(&p).Elem()
	idx, ok := table.Index("Address")
	require.True(t, ok)
	addrField := FieldByIndexAlloc(v, idx)
	city := FieldByIndexAlloc(addrField, []int{0})
	city.SetString("Berlin")
	require.NotNil(t, p.Address)
	assert.Equal(t, "Berlin", p.Address.City)

	assert.Nil(t, Accessors(reflect.TypeOf(0)))
}
