package schema_registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/sheetmap/v1/schema"
)

type supplier struct {
	Code string `sheet:"Code"`
}

func TestFXModule_CollectsDeclaredSchemas(t *testing.T) {
	var reg SchemaRegistry
	app := fxtest.New(t,
		FXModule,
		fx.Supply(coldConfig()),
		Declare(schema.Describe[customer]("customer", schema.WithNested(schema.Describe[address]("address")))),
		Declare(schema.Describe[supplier]("supplier")),
		fx.Populate(&reg),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, reg)
	_, ok := reg.Resolve(context.Background(), "customer")
	assert.True(t, ok)
	_, ok = reg.Resolve(context.Background(), "supplier")
	assert.True(t, ok)
}
