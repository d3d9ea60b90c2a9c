package decoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Aleph-Alpha/sheetmap/v1/configsource"
	"github.com/Aleph-Alpha/sheetmap/v1/convert"
	"github.com/Aleph-Alpha/sheetmap/v1/logger"
	"github.com/Aleph-Alpha/sheetmap/v1/observability"
	"github.com/Aleph-Alpha/sheetmap/v1/schema"
	"github.com/Aleph-Alpha/sheetmap/v1/schema_registry"
	"github.com/Aleph-Alpha/sheetmap/v1/sheet"
	"github.com/Aleph-Alpha/sheetmap/v1/tracer"
)

type person struct {
	Name string `sheet:"Name"`
	Age  int    `sheet:"Age"`
}

type address struct {
	City string `sheet:"City"`
	Zip  string `sheet:"Zip"`
}

type customer struct {
	Name    string   `sheet:"Customer"`
	Since   *int     `sheet:"Since"`
	Address *address `sheet:"Address"`
}

type point struct {
	X, Y int
}

type shipment struct {
	ID     string  `sheet:"ID"`
	Weight float64 `sheet:"Weight"`
	Where  point   `sheet:"Where"`
	Note   string  `sheet:"Note,transform=explode"`
}

func transforms() *convert.MethodSet {
	return convert.NewMethodSet("decoderTransforms").
		Add("explode", func(raw string) (any, error) {
			if raw == "boom" {
				panic("kaboom")
			}
			if raw == "bad" {
				return nil, errors.New("bad note")
			}
			return "note: " + raw, nil
		}).
		Add("double", func(raw string) (any, error) {
			n, err := strconv.Atoi(raw)
			return n * 2, err
		})
}

func newRegistry(t *testing.T, doc string) *schema_registry.Registry {
	t.Helper()
	b := schema_registry.NewBuilder(schema_registry.Config{MatchWorkers: 2}).
		WithTransforms(transforms()).
		MustRegister(
			schema.Describe[person]("person"),
			schema.Describe[customer]("customer", schema.WithNested(schema.Describe[address]("address"))),
			schema.Describe[shipment]("shipment"),
		)
	if doc != "" {
		b.WithSource(configsource.NewStatic("test", []byte(doc)))
	}
	reg, err := b.Build(context.Background())
	require.NoError(t, err)
	return reg
}

func table(rows ...[]string) *sheet.Table {
	return sheet.NewTable(sheet.NewPage("Sheet1", rows))
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

func TestDecodePage_TypedRecord(t *testing.T) {
	dec := NewDecoder(newRegistry(t, ""), nil)

	res, err := dec.DecodePage(context.Background(), table(
		[]string{"Name", "Age"},
		[]string{"Alice", "30"},
		[]string{"Bob", " 41 "},
	), 0, Options{})
	require.NoError(t, err)

	assert.Equal(t, "person", res.SchemaID)
	assert.Equal(t, 0, res.HeaderRow)
	assert.Equal(t, []*person{{Name: "Alice", Age: 30}, {Name: "Bob", Age: 41}}, Collect[person](res))
	assert.Equal(t, 1, res.Records[0].Row)
	assert.Equal(t, 2, res.Records[1].Row)
	assert.Empty(t, res.RowErrors)
	assert.Empty(t, res.FieldErrors())
}

func TestDecodeRow_Direct(t *testing.T) {
	reg := newRegistry(t, "")
	s, ok := reg.Resolve(context.Background(), "person")
	require.True(t, ok)

	rec, err := NewDecoder(reg, nil).DecodeRow(context.Background(), s, []string{"Name", "Age"}, []string{"Alice", "30"})
	require.NoError(t, err)
	p, ok := As[person](rec)
	require.True(t, ok)
	assert.Equal(t, person{Name: "Alice", Age: 30}, *p)
}

func TestDecodePage_RejectedLayoutReadsNoRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := sheet.NewMockPage(ctrl)
	wb := sheet.NewMockWorkbook(ctrl)

	wb.EXPECT().PageCount().Return(1).AnyTimes()
	wb.EXPECT().Page(0).Return(page, nil)
	page.EXPECT().Name().Return("merged").AnyTimes()
	page.EXPECT().MergedRegions().Return([]sheet.Region{
		{FirstRow: 0, LastRow: 0, FirstCol: 0, LastCol: 3},
		{FirstRow: 4, LastRow: 5, FirstCol: 0, LastCol: 1},
	}, nil)
	page.EXPECT().Row(gomock.Any()).Times(0)
	page.EXPECT().LastRow().Times(0)

	rec := &recorder{}
	res, err := NewDecoder(newRegistry(t, ""), nil).WithObserver(rec).DecodePage(context.Background(), wb, 0, Options{})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, sheet.IsUnsupportedLayout(err))

	require.Len(t, rec.ops, 1)
	assert.Equal(t, "decode_page", rec.ops[0].Operation)
	assert.Equal(t, "merged", rec.ops[0].SubResource)
	assert.Equal(t, "error", rec.ops[0].Status())
}

func TestDecodePage_TitleBlock(t *testing.T) {
	wb := sheet.NewTable(sheet.NewPage("titled", [][]string{
		{"People"},
		{"Name", "Age"},
		{"Carol", "25"},
	}).WithMerged(sheet.Region{FirstRow: 0, LastRow: 0, FirstCol: 0, LastCol: 1}))

	res, err := NewDecoder(newRegistry(t, ""), nil).DecodePage(context.Background(), wb, 0, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.HeaderRow)
	assert.Equal(t, []*person{{Name: "Carol", Age: 25}}, Collect[person](res))
}

func TestDecodePage_IndexOutOfRange(t *testing.T) {
	_, err := NewDecoder(newRegistry(t, ""), nil).DecodePage(context.Background(), table([]string{"Name"}), 3, Options{})
	assert.True(t, sheet.IsIndexOutOfRange(err))
}

func TestDecodePage_Nested(t *testing.T) {
	res, err := NewDecoder(newRegistry(t, ""), nil).DecodePage(context.Background(), table(
		[]string{"Customer", "City", "Zip", "Since"},
		[]string{"ACME", "Berlin", "10115", "1999"},
		[]string{"Initech", "", "", ""},
	), 0, Options{})
	require.NoError(t, err)
	require.Equal(t, "customer", res.SchemaID)

	got := Collect[customer](res)
	require.Len(t, got, 2)
	assert.Equal(t, "ACME", got[0].Name)
	require.NotNil(t, got[0].Address)
	assert.Equal(t, address{City: "Berlin", Zip: "10115"}, *got[0].Address)
	require.NotNil(t, got[0].Since)
	assert.Equal(t, 1999, *got[0].Since)

	assert.Equal(t, "Initech", got[1].Name)
	assert.Nil(t, got[1].Since, "empty cell leaves the zero value")
	assert.Empty(t, res.FieldErrors())
}

func TestDecodePage_FieldErrorsAreIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := logger.NewWithZap(zap.New(core), false)

	res, err := NewDecoder(newRegistry(t, ""), nil).WithLogger(log).DecodePage(context.Background(), table(
		[]string{"ID", "Weight", "Where", "Note"},
		[]string{"S1", "2.5", "here", "fragile"},
		[]string{"S2", "heavy", "", "bad"},
	), 0, Options{SchemaID: "shipment"})
	require.NoError(t, err)

	got := Collect[shipment](res)
	require.Len(t, got, 2)
	assert.Equal(t, shipment{ID: "S1", Weight: 2.5, Note: "note: fragile"}, *got[0])
	assert.Equal(t, shipment{ID: "S2"}, *got[1])

	first := res.Records[0].Errors
	require.Len(t, first, 1)
	assert.Equal(t, "Where", first[0].Field)
	assert.True(t, convert.IsNoSuchConversion(first[0].Err))
	var nsc *convert.NoSuchConversionError
	require.True(t, errors.As(first[0].Err, &nsc))
	assert.Equal(t, "point", nsc.ShortKey)
	assert.Contains(t, nsc.QualifiedKey, "decoder.point")

	second := res.Records[1].Errors
	require.Len(t, second, 2)
	assert.Equal(t, "Weight", second[0].Field)
	assert.Equal(t, "Note", second[1].Field)
	assert.Equal(t, 2, second[1].Row)

	assert.Equal(t, 3, logs.FilterMessage("field could not be converted").Len())
}

func TestDecodePage_PanicIsolatedToRow(t *testing.T) {
	res, err := NewDecoder(newRegistry(t, ""), nil).
		WithConfig(Config{Workers: 3}).
		DecodePage(context.Background(), table(
			[]string{"ID", "Note"},
			[]string{"S1", "ok"},
			[]string{"S2", "boom"},
			[]string{"S3", "fine"},
		), 0, Options{SchemaID: "shipment"})
	require.NoError(t, err)

	got := Collect[shipment](res)
	require.Len(t, got, 2)
	assert.Equal(t, "S1", got[0].ID)
	assert.Equal(t, "S3", got[1].ID)

	require.Len(t, res.RowErrors, 1)
	assert.Equal(t, 2, res.RowErrors[0].Row)
	assert.True(t, IsRowPanic(res.RowErrors[0]))
	assert.Contains(t, res.RowErrors[0].Error(), "kaboom")
}

func TestDecodePage_GenericRows(t *testing.T) {
	reg := newRegistry(t, `{"contact": {"mail": "E-Mail", "score": "Score$$double"}}`)
	dec := NewDecoder(reg, nil)

	res, err := dec.DecodePage(context.Background(), table(
		[]string{"E-Mail", "Score"},
		[]string{"a@example.com", "21"},
	), 0, Options{})
	require.NoError(t, err)
	assert.Equal(t, "contact", res.SchemaID)

	row, ok := res.Records[0].Generic()
	require.True(t, ok)
	assert.Equal(t, []string{"mail", "score"}, row.Keys())
	score, _ := row.Get("score")
	assert.Equal(t, 42, score)

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"mail":"a@example.com","score":42}`, string(data))

	res, err = dec.DecodePage(context.Background(), table(
		[]string{"Unknown", "", "Header"},
		[]string{"x", "ignored", "y", "beyond"},
		[]string{"", " "},
	), 0, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.SchemaID)
	require.Len(t, res.Records, 1, "blank rows are skipped")
	row, _ = res.Records[0].Generic()
	assert.Equal(t, map[string]any{"Unknown": "x", "Header": "y"}, row.Map())
	assert.Equal(t, 2, row.Len())
}

func TestDecodePage_UnknownSchemaIDFallsBackToGeneric(t *testing.T) {
	res, err := NewDecoder(newRegistry(t, ""), nil).DecodePage(context.Background(), table(
		[]string{"Name", "Age"},
		[]string{"Alice", "30"},
	), 0, Options{SchemaID: "nope"})
	require.NoError(t, err)
	row, ok := res.Records[0].Generic()
	require.True(t, ok)
	age, _ := row.Get("Age")
	assert.Equal(t, "30", age)
}

func TestDecodePage_InternalNames(t *testing.T) {
	dec := NewDecoder(newRegistry(t, ""), nil).WithConfig(Config{MatchBy: schema_registry.MatchInternal})
	res, err := dec.DecodePage(context.Background(), table(
		[]string{"Name", "Age"},
		[]string{"Dora", "52"},
	), 0, Options{})
	require.NoError(t, err)
	assert.Equal(t, []*person{{Name: "Dora", Age: 52}}, Collect[person](res))
}

func TestDecodePage_OrderUnderParallelism(t *testing.T) {
	rows := [][]string{{"Name", "Age"}}
	for i := 0; i < 200; i++ {
		rows = append(rows, []string{fmt.Sprintf("p%03d", i), strconv.Itoa(i)})
	}
	res, err := NewDecoder(newRegistry(t, ""), nil).
		WithConfig(Config{Workers: 8}).
		DecodePage(context.Background(), sheet.NewTable(sheet.NewPage("big", rows)), 0, Options{})
	require.NoError(t, err)

	got := Collect[person](res)
	require.Len(t, got, 200)
	for i, p := range got {
		assert.Equal(t, i, p.Age)
		assert.Equal(t, i+1, res.Records[i].Row)
	}
}

func TestDecodePage_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDecoder(newRegistry(t, ""), nil).DecodePage(ctx, table(
		[]string{"Name", "Age"},
		[]string{"Alice", "30"},
	), 0, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeWorkbook(t *testing.T) {
	wb := sheet.NewTable(
		sheet.NewPage("people", [][]string{{"Name", "Age"}, {"Alice", "30"}}),
		sheet.NewPage("broken", [][]string{{"x"}}).WithMerged(sheet.Region{FirstRow: 2, LastRow: 3}),
		sheet.NewPage("places", [][]string{{"City", "Zip"}, {"Paris", "75001"}}),
	)
	reg := newRegistry(t, "")

	results, err := NewDecoder(reg, nil).DecodeWorkbook(context.Background(), wb, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "people", results[0].Name)

	results, err = NewDecoder(reg, nil).
		WithConfig(Config{AutoPaging: true}).
		DecodeWorkbook(context.Background(), wb, Options{})
	require.Error(t, err)
	assert.True(t, sheet.IsUnsupportedLayout(err))
	require.Len(t, results, 2)
	assert.Equal(t, "person", results[0].SchemaID)
	assert.Equal(t, "address", results[1].SchemaID)
	assert.Equal(t, []*address{{City: "Paris", Zip: "75001"}}, Collect[address](results...))
}

func TestDecodePage_Tracing(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tr := tracer.NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)), nil)

	_, err := NewDecoder(newRegistry(t, ""), nil).WithTracer(tr).DecodePage(context.Background(), table(
		[]string{"Name", "Age"},
		[]string{"Alice", "30"},
	), 0, Options{})
	require.NoError(t, err)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "sheetmap.decode_page", ended[0].Name())
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "person", attrs["schema.id"].AsString())
	assert.Equal(t, int64(1), attrs["records"].AsInt64())
}

func TestDecoder_DefaultConfig(t *testing.T) {
	dec := NewDecoder(newRegistry(t, ""), nil).WithConfig(Config{})
	assert.Positive(t, dec.Config().Workers)
	assert.False(t, dec.Config().AutoPaging)
}
