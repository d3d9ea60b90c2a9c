// Package convert turns cell text into typed values.
//
// Three mechanisms exist, matching the conversion strategies of a schema field:
//
//   - Registry: conversion functions keyed by target type. A type is looked up
//     under its short key ("int", "Money") and then its qualified key
//     ("time.Time", "example.com/billing.Money"). NewDefaultRegistry covers the
//     numeric kinds, bool, time.Time and time.Duration.
//   - Container: named transform methods, bound with MethodsOf or MethodSet.Add
//     and resolved by name with Resolve.
//   - Operator: converter types instantiated once per type through Instances.
//
// Assign stores the produced value in a struct field.
//
//	reg := convert.NewDefaultRegistry()
//	reg.RegisterType(reflect.TypeOf(Money{}), parseMoney)
//
//	fn, err := reg.Lookup(reflect.TypeOf(0))
//	v, err := fn("30") // int(30)
package convert
