package schema_registry

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Aleph-Alpha/sheetmap/v1/configsource"
	"github.com/Aleph-Alpha/sheetmap/v1/convert"
	"github.com/Aleph-Alpha/sheetmap/v1/schema"
)

// Registry stores schemas in two tiers. The cold tier holds declared schemas
// and is never modified after Build. The hot tier is an immutable snapshot
// built from the configuration document and replaced wholesale on reload, so
// concurrent lookups see either the old or the new snapshot, never a mix.
//
// Registry is safe for concurrent use.
type Registry struct {
	hooks

	cfg        Config
	transforms convert.Container
	types      map[string]reflect.Type
	source     configsource.Source

	cold      map[string]*schema.Schema
	coldTypes map[string]reflect.Type
	typeIDs   map[reflect.Type]string
	coldIDs   []string

	hot       atomic.Pointer[snapshot]
	hotReload atomic.Bool
	reloads   singleflight.Group
}

// snapshot is one generation of the hot tier. It is never mutated after it is
// stored.
type snapshot struct {
	origin  string
	schemas map[string]*schema.Schema
	types   map[string]reflect.Type
	ids     []string
	loaded  time.Time
}

func newSnapshot(origin string) *snapshot {
	return &snapshot{
		origin:  origin,
		schemas: make(map[string]*schema.Schema),
		types:   make(map[string]reflect.Type),
		loaded:  time.Now(),
	}
}

func (s *snapshot) add(sc *schema.Schema) {
	s.schemas[sc.ID] = sc
	if sc.BackingType != nil {
		s.types[sc.ID] = sc.BackingType
	}
}

func (s *snapshot) seal() *snapshot {
	s.ids = sortedKeys(s.schemas)
	return s
}

// Resolve returns the schema registered under id. With hot reload enabled the
// configuration document is re-read first and a hot schema shadows a cold one
// with the same id; with hot reload disabled only the cold tier is consulted.
// An unknown id returns false.
func (r *Registry) Resolve(ctx context.Context, id string) (*schema.Schema, bool) {
	if r.hotReload.Load() {
		_ = r.Reload(ctx)
	}
	return r.visible(id)
}

func (r *Registry) visible(id string) (*schema.Schema, bool) {
	if r.hotReload.Load() {
		if s, ok := r.hot.Load().schemas[id]; ok {
			return s, true
		}
	}
	s, ok := r.cold[id]
	return s, ok
}

// Reload fetches the configuration document and replaces the hot tier.
// Concurrent callers share one reload. A missing document empties the hot
// tier; a malformed one keeps the current snapshot. Failures are logged as
// warnings and also returned for callers that want them.
func (r *Registry) Reload(ctx context.Context) error {
	if r.source == nil {
		return nil
	}
	_, err, _ := r.reloads.Do("reload", func() (interface{}, error) {
		start := time.Now()
		err := r.reload(ctx)
		r.observeOperation("reload", r.source.Name(), time.Since(start), err, int64(len(r.hot.Load().schemas)))
		return nil, err
	})
	return err
}

func (r *Registry) reload(ctx context.Context) error {
	doc, err := r.source.Load(ctx)
	if configsource.IsNotFound(err) {
		r.hot.Store(newSnapshot(r.source.Name()).seal())
		return nil
	}
	if err != nil {
		r.logWarn(ctx, "configuration document could not be loaded", err, map[string]interface{}{
			"source": r.source.Name(),
		})
		return err
	}
	if err := r.loadHot(doc, r.source.Name()); err != nil {
		r.logWarn(ctx, "configuration document rejected", err, map[string]interface{}{
			"source": r.source.Name(),
		})
		return err
	}
	return nil
}

// LoadConfig parses doc into a fresh hot snapshot that replaces the current one.
// Entries that fail are skipped and returned joined. A document that cannot
// be parsed returns ErrMalformedConfig and leaves the current snapshot in place.
func (r *Registry) LoadConfig(doc []byte) error {
	return r.loadHot(doc, "inline")
}

func (r *Registry) loadHot(doc []byte, origin string) error {
	entries, err := parseDocument(doc)
	if err != nil {
		return err
	}

	snap := newSnapshot(origin)
	var errs []error
	for _, e := range entries {
		s, err := r.buildFromEntry(e, origin)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		snap.add(s)
	}
	r.hot.Store(snap.seal())
	return errors.Join(errs...)
}

// loadInitial reads the configuration document during Build.
func (r *Registry) loadInitial(ctx context.Context) error {
	if r.source == nil {
		return nil
	}
	doc, err := r.source.Load(ctx)
	switch {
	case configsource.IsNotFound(err):
		r.logInfo(ctx, "no configuration document found", map[string]interface{}{"source": r.source.Name()})
		return nil
	case err != nil:
		r.logWarn(ctx, "configuration document could not be loaded", err, map[string]interface{}{"source": r.source.Name()})
		return nil
	}

	if r.cfg.HotReload {
		if err := r.loadHot(doc, r.source.Name()); err != nil {
			r.logWarn(ctx, "configuration document rejected", err, map[string]interface{}{"source": r.source.Name()})
		}
		return nil
	}
	return r.loadCold(ctx, doc, r.source.Name())
}

// loadCold merges configuration entries into the cold tier. Only id collisions
// with declared schemas are fatal.
func (r *Registry) loadCold(ctx context.Context, doc []byte, origin string) error {
	entries, err := parseDocument(doc)
	if err != nil {
		r.logWarn(ctx, "configuration document rejected", err, map[string]interface{}{"source": origin})
		return nil
	}

	for _, e := range entries {
		if existing, ok := r.cold[e.ID]; ok {
			return &DuplicateSchemaIDError{ID: e.ID, Existing: existing.Source, Incoming: entrySource(origin, e.ID)}
		}
		s, err := r.buildFromEntry(e, origin)
		if err != nil {
			if IsDuplicateSchemaID(err) {
				return err
			}
			r.logWarn(ctx, "configuration entry skipped", err, map[string]interface{}{"source": origin, "schema_id": e.ID})
			continue
		}
		r.cold[s.ID] = s
		r.coldTypes[s.ID] = s.BackingType
		if s.BackingType != nil {
			if _, ok := r.typeIDs[s.BackingType]; !ok {
				r.typeIDs[s.BackingType] = s.ID
			}
		}
	}
	return nil
}

// DepthOf returns the depth of the visible schema registered under id, or 0.
// It does not trigger a reload.
func (r *Registry) DepthOf(id string) int {
	s, ok := r.visible(id)
	if !ok {
		return 0
	}
	return s.Depth
}

// BackingType returns the record type of id from the type catalog.
func (r *Registry) BackingType(id string) (reflect.Type, bool) {
	if r.hotReload.Load() {
		if t, ok := r.hot.Load().types[id]; ok {
			return t, true
		}
		if _, ok := r.hot.Load().schemas[id]; ok {
			return nil, false
		}
	}
	t, ok := r.coldTypes[id]
	return t, ok && t != nil
}

// IDOf returns the id a record type is registered under.
func (r *Registry) IDOf(t reflect.Type) (string, bool) {
	t = schema.Indirect(t)
	if r.hotReload.Load() {
		snap := r.hot.Load()
		for _, id := range snap.ids {
			if snap.types[id] == t {
				return id, true
			}
		}
	}
	id, ok := r.typeIDs[t]
	return id, ok
}

// IDs returns the visible schema ids sorted. With hot reload enabled the
// configuration document is re-read first.
func (r *Registry) IDs(ctx context.Context) []string {
	if r.hotReload.Load() {
		_ = r.Reload(ctx)
	}
	return r.visibleIDs()
}

func (r *Registry) visibleIDs() []string {
	if !r.hotReload.Load() {
		return append([]string(nil), r.coldIDs...)
	}
	snap := r.hot.Load()
	seen := make(map[string]bool, len(r.coldIDs)+len(snap.ids))
	out := make([]string, 0, len(r.coldIDs)+len(snap.ids))
	for _, ids := range [][]string{r.coldIDs, snap.ids} {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	sort.Strings(out)
	return out
}

// SetHotReload toggles hot reload. Disabling it makes the cold tier
// authoritative again without discarding the hot snapshot.
func (r *Registry) SetHotReload(enabled bool) {
	r.hotReload.Store(enabled)
}

// HotReload reports whether hot reload is enabled.
func (r *Registry) HotReload() bool {
	return r.hotReload.Load()
}

func sortedKeys(m map[string]*schema.Schema) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
