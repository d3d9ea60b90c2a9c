package convert

import (
	"fmt"
	"reflect"
	"sync"
)

// Operator converts cell text into a value of the target type. Converter types
// named in field metadata implement it.
type Operator interface {
	Convert(raw string, target reflect.Type) (any, error)
}

// OperatorFunc adapts a function to Operator.
type OperatorFunc func(raw string, target reflect.Type) (any, error)

// Convert calls f.
func (f OperatorFunc) Convert(raw string, target reflect.Type) (any, error) {
	return f(raw, target)
}

// DefaultOperator converts through a Registry by target type.
type DefaultOperator struct {
	Registry *Registry
}

// Convert looks up the conversion for target and applies it.
func (o DefaultOperator) Convert(raw string, target reflect.Type) (any, error) {
	fn, err := o.Registry.Lookup(target)
	if err != nil {
		return nil, err
	}
	return fn(raw)
}

// Instances caches one Operator per converter type, so every field that names
// the same converter shares one instance.
type Instances struct {
	cache sync.Map // reflect.Type -> Operator
}

// Get returns the cached instance of t, creating it on first use. t may be the
// struct type or a pointer to it; the instance is always a pointer so pointer
// receivers work.
func (c *Instances) Get(t reflect.Type) (Operator, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrNotOperator)
	}
	if op, ok := c.cache.Load(t); ok {
		return op.(Operator), nil
	}

	base := t
	if base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	instance := reflect.New(base).Interface()
	op, ok := instance.(Operator)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotOperator, t)
	}

	actual, _ := c.cache.LoadOrStore(t, op)
	return actual.(Operator), nil
}

// Len returns the number of cached instances.
func (c *Instances) Len() int {
	n := 0
	c.cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
