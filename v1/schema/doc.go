// Package schema holds the record metadata sheetmap decodes rows with.
//
// A Descriptor declares a Go struct type under a schema id, optionally with
// nested record types. Field metadata comes from the `sheet` struct tag:
//
//	type Person struct {
//		Name     string    `sheet:"Full name"`
//		Age      int       `sheet:"Age"`
//		Joined   time.Time `sheet:"Joined,transform=ParseJoined"`
//		Salary   Money     `sheet:"Salary,converter=money"`
//		Internal string    `sheet:"-"`
//	}
//
// Fields without a tag carry no mapping metadata and are skipped; an empty
// label defaults to the Go field name. WithField overrides the tag of a single
// field without touching the type.
//
// A Schema is the built, immutable result: an ordered FieldSet, the backing
// type (nil for schemas declared only in a configuration document) and the
// depth of nested record types. Schemas are built by the schema_registry
// package; this package only provides the types, tag parsing, accessor tables
// and depth computation.
package schema
