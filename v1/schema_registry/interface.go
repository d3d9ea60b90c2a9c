package schema_registry

import (
	"context"
	"reflect"

	"github.com/Aleph-Alpha/sheetmap/v1/schema"
)

// SchemaRegistry is the lookup surface decoders depend on. *Registry
// implements it.
type SchemaRegistry interface {
	// Resolve returns the visible schema registered under id.
	Resolve(ctx context.Context, id string) (*schema.Schema, bool)

	// Match returns the id of the schema covering every header.
	Match(ctx context.Context, headers []string, by MatchBy) (string, bool)

	// DepthOf returns the depth of the schema registered under id.
	DepthOf(id string) int

	// BackingType returns the record type registered under id.
	BackingType(id string) (reflect.Type, bool)

	// IDOf returns the id a record type is registered under.
	IDOf(t reflect.Type) (string, bool)

	// IDs returns the visible schema ids sorted.
	IDs(ctx context.Context) []string

	// Reload re-reads the configuration document.
	Reload(ctx context.Context) error

	// SetHotReload toggles hot reload at runtime.
	SetHotReload(enabled bool)
}

var _ SchemaRegistry = (*Registry)(nil)
