package convert

import (
	"fmt"
	"reflect"
)

// Assign stores v in dst. Pointer destinations are allocated, numeric values
// are converted between kinds when the value fits, and a nil v leaves the
// zero value.
func Assign(dst reflect.Value, v any) error {
	if !dst.CanSet() {
		return fmt.Errorf("%w: destination %v is not settable", ErrNotAssignable, dst.Type())
	}
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}

	if dst.Kind() == reflect.Ptr {
		elem := reflect.New(dst.Type().Elem())
		if err := Assign(elem.Elem(), v); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}

	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		return Assign(dst, rv.Elem().Interface())
	}

	if converted, ok := convertNumeric(rv, dst.Type()); ok {
		dst.Set(converted)
		return nil
	}
	if rv.Kind() == dst.Kind() && rv.Type().ConvertibleTo(dst.Type()) {
		dst.Set(rv.Convert(dst.Type()))
		return nil
	}
	return fmt.Errorf("%w: %v to %v", ErrNotAssignable, rv.Type(), dst.Type())
}

func convertNumeric(v reflect.Value, to reflect.Type) (reflect.Value, bool) {
	out := reflect.New(to).Elem()
	switch {
	case isInt(v.Kind()) && isInt(to.Kind()):
		if out.OverflowInt(v.Int()) {
			return reflect.Value{}, false
		}
		out.SetInt(v.Int())
	case isUint(v.Kind()) && isUint(to.Kind()):
		if out.OverflowUint(v.Uint()) {
			return reflect.Value{}, false
		}
		out.SetUint(v.Uint())
	case isInt(v.Kind()) && isUint(to.Kind()):
		if v.Int() < 0 || out.OverflowUint(uint64(v.Int())) {
			return reflect.Value{}, false
		}
		out.SetUint(uint64(v.Int()))
	case isUint(v.Kind()) && isInt(to.Kind()):
		if v.Uint() > 1<<63-1 || out.OverflowInt(int64(v.Uint())) {
			return reflect.Value{}, false
		}
		out.SetInt(int64(v.Uint()))
	case isFloat(v.Kind()) && isFloat(to.Kind()):
		if out.OverflowFloat(v.Float()) {
			return reflect.Value{}, false
		}
		out.SetFloat(v.Float())
	case isInt(v.Kind()) && isFloat(to.Kind()):
		out.SetFloat(float64(v.Int()))
	default:
		return reflect.Value{}, false
	}
	return out, true
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
