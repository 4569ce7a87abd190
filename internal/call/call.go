package call

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")

	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// Func calls fn with the given positional values and returns its results. If the last result of fn is an
// error, it is returned as is, unwrapped.
func Func(fn reflect.Value, values []any) (any, error) {
	in, err := Args(fn.Type(), values)
	if err != nil {
		return nil, err
	}

	return Results(fn.Type(), fn.Call(in))
}

// Args converts values into arguments for a function of type typ. Trailing values of a variadic function
// are converted to the element type of its last parameter.
func Args(typ reflect.Type, values []any) ([]reflect.Value, error) {
	fixed := typ.NumIn()
	if typ.IsVariadic() {
		fixed--
	}

	if len(values) < fixed || (!typ.IsVariadic() && len(values) > fixed) {
		return nil, fmt.Errorf("%w: %s called with %d arguments", ErrInvalidArgument, typ, len(values))
	}

	in := make([]reflect.Value, len(values))
	for i, value := range values {
		var paramType reflect.Type
		if i < fixed {
			paramType = typ.In(i)
		} else {
			paramType = typ.In(fixed).Elem()
		}

		arg, err := Value(paramType, value)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}

		in[i] = arg
	}

	return in, nil
}

// Value converts value into a reflect.Value of typ. Values are never coerced: nil is accepted only for
// nillable types and anything else must be assignable to typ.
func Value(typ reflect.Type, value any) (reflect.Value, error) {
	if value == nil {
		if !Nillable(typ) {
			return reflect.Value{}, fmt.Errorf("%w: nil given for %s", ErrInvalidArgument, typ)
		}
		return reflect.Zero(typ), nil
	}

	val := reflect.ValueOf(value)
	if !val.Type().AssignableTo(typ) {
		return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrInvalidArgument, val.Type(), typ)
	}

	return val, nil
}

// Results interprets the output of a call of a function of type typ. A trailing error result is split off,
// no other results make nil, a single result is returned as is, several are returned as []any.
func Results(typ reflect.Type, out []reflect.Value) (any, error) {
	var err error

	if n := typ.NumOut(); n > 0 && typ.Out(n-1) == errorType {
		err, _ = out[n-1].Interface().(error)
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	default:
		values := make([]any, len(out))
		for i, v := range out {
			values[i] = v.Interface()
		}
		return values, err
	}
}

func Nillable(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
