package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/sheetmap/v1/convert"
	"github.com/Aleph-Alpha/sheetmap/v1/metrics"
	"github.com/Aleph-Alpha/sheetmap/v1/sheet"
)

func writeFixtures(t *testing.T) (dir, book string) {
	t.Helper()
	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "msio.json"),
		[]byte(`{"contact": {"name": "Name", "mail": "E-Mail"}}`), 0o600))
	book = filepath.Join(dir, "book.csv")
	require.NoError(t, os.WriteFile(book, []byte("Name,E-Mail\nAda,ada@example.com\n,\nGrace,grace@example.com\n"), 0o600))
	return dir, book
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDecodeCommand(t *testing.T) {
	dir, book := writeFixtures(t)

	out, err := run(t, "decode", book, "--config-dir", dir, "--log-level", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"page":"book.csv","row":1,"schema":"contact","record":{"name":"Ada","mail":"ada@example.com"}}`, lines[0])
	assert.JSONEq(t, `{"page":"book.csv","row":3,"schema":"contact","record":{"name":"Grace","mail":"grace@example.com"}}`, lines[1])
}

func TestDecodeCommand_EnvironmentAndSchemaFlag(t *testing.T) {
	dir, book := writeFixtures(t)
	t.Setenv("SHEETMAP_CONFIG_DIR", dir)
	t.Setenv("SHEETMAP_LOG_LEVEL", "error")

	out, err := run(t, "decode", book, "--schema", "unknown")
	require.NoError(t, err)
	first := strings.SplitN(out, "\n", 2)[0]
	assert.JSONEq(t, `{"page":"book.csv","row":1,"record":{"Name":"Ada","E-Mail":"ada@example.com"}}`, first)
}

func TestDecodeCommand_Rejections(t *testing.T) {
	dir, book := writeFixtures(t)

	_, err := run(t, "decode", "--config-dir", dir)
	assert.Error(t, err)

	_, err = run(t, "decode", book, "--config-dir", dir, "--accept", "xlsx")
	assert.Error(t, err)

	_, err = run(t, "decode", book, "--config-dir", dir, "--match-by", "fuzzy")
	assert.Error(t, err)

	_, err = run(t, "decode", book, "--config-dir", dir, "--object", "x.csv")
	assert.Error(t, err)
}

func TestSchemasCommand(t *testing.T) {
	dir, _ := writeFixtures(t)

	out, err := run(t, "schemas", "--config-dir", dir, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "contact")
	assert.Contains(t, out, "Name, E-Mail")
}

func TestCountRejection(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{ServiceName: "sheetmap-test"})
	filter, err := sheet.NewFilter(sheet.FilterConfig{MaxSize: 10})
	require.NoError(t, err)

	countRejection(services{}, filter.Check("big.xlsx", 100))
	countRejection(services{Metrics: m}, errors.New("not a rejection"))
	countRejection(services{Metrics: m}, filter.Check("big.xlsx", 100))
	require.NotPanics(t, func() {
		countRejection(services{Metrics: m}, filter.Check("huge.xlsx", 200))
	})

	n, err := testutil.GatherAndCount(m.Registry, rejectedFilesMetric)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	c := m.CreateCounter(rejectedFilesMetric, rejectedFilesHelp, []string{"rule"})
	assert.Equal(t, 2.0, testutil.ToFloat64(c.WithLabelValues(sheet.RuleSize)))
}

func TestSchemasCommand_TransformEntrySkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "msio.json"),
		[]byte(`{"contact": {"name": "Name"}, "priced": {"price": "Price$$toCents"}}`), 0o600))

	out, err := run(t, "schemas", "--config-dir", dir, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "contact")
	assert.NotContains(t, out, "priced")
}

func TestNewCLITransforms(t *testing.T) {
	c := newCLITransforms()
	assert.Equal(t, cliTransformsName, c.Name())

	_, err := convert.Resolve(c, "toCents")
	var missing *convert.MissingMethodError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, cliTransformsName, missing.Container)
}
