// Package schema_registry keeps the schemas rows are decoded with.
//
// Schemas come from two places. Record types declared in Go are registered on
// a Builder and form the cold tier, which never changes after Build. The
// configuration document (msio.json by default) declares further schemas; with
// hot reload enabled it is re-read on every lookup and forms the hot tier,
// which shadows cold schemas with the same id.
//
// Configuration document:
//
//	{
//	  "person": {
//	    "className": "Person",
//	    "name": "Full Name",
//	    "age": "Age$$parseAge"
//	  },
//	  "contact": {
//	    "email": "E-Mail",
//	    "\\className": "Class"
//	  }
//	}
//
// Each entry maps field names to display names. "label$$method" binds a
// transform method; a literal "$$" in a label is written `\$$`. "className"
// names the backing type; a field literally called className is written
// `\className`. Entries without className decode into generic rows.
//
// Basic Usage:
//
//	src, _ := configsource.NewFileSource(configsource.Config{Watch: true})
//	reg, err := schema_registry.NewBuilder(schema_registry.DefaultConfig()).
//	    WithSource(src).
//	    WithTransforms(convert.MethodsOf(Transforms{})).
//	    MustRegister(schema.Describe[Person]("person")).
//	    Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	id, ok := reg.Match(ctx, []string{"Full Name", "Age"}, schema_registry.MatchExternal)
//
// Thread Safety:
//
// A Builder is single goroutine. A Registry is safe for concurrent use: the
// hot tier is an immutable snapshot swapped atomically, and concurrent reloads
// are collapsed into one.
package schema_registry
