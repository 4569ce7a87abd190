// Package resolvers contains ready-made invoker.Resolver implementations for common out-of-band values:
// fixed values injected by type or by name, a context, a clock and generated identifiers.
package resolvers

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhulik/invoker"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	timeType    = reflect.TypeOf(time.Time{})
	uuidType    = reflect.TypeOf(uuid.UUID{})
)

// Value supplies value to every parameter whose declared type value is assignable to.
func Value(value any) invoker.Resolver {
	typ := reflect.TypeOf(value)

	return invoker.ResolverFunc(
		func(param invoker.Parameter) bool {
			return typ != nil && param.Type != nil && typ.AssignableTo(param.Type)
		},
		constant(value),
	)
}

// Typed supplies value to parameters declared exactly as T.
func Typed[T any](value T) invoker.Resolver {
	typ := reflect.TypeOf((*T)(nil)).Elem()

	return invoker.ResolverFunc(
		func(param invoker.Parameter) bool {
			return param.Type == typ
		},
		constant(value),
	)
}

// Named supplies value to the parameter called name, regardless of its type.
func Named(name string, value any) invoker.Resolver {
	return invoker.ResolverFunc(
		func(param invoker.Parameter) bool {
			return param.Name == name
		},
		constant(value),
	)
}

// Lookup supplies values by parameter name from values. The map must not be modified while in use.
func Lookup(values map[string]any) invoker.Resolver {
	return invoker.ResolverFunc(
		func(param invoker.Parameter) bool {
			_, ok := values[param.Name]
			return ok
		},
		func(param invoker.Parameter) (any, error) {
			return values[param.Name], nil
		},
	)
}

// Prefix supplies values produced by fn to parameters whose names start with prefix.
func Prefix(prefix string, fn func(param invoker.Parameter) (any, error)) invoker.Resolver {
	return invoker.ResolverFunc(
		func(param invoker.Parameter) bool {
			return strings.HasPrefix(param.Name, prefix)
		},
		fn,
	)
}

// Context supplies ctx to parameters declared as context.Context.
func Context(ctx context.Context) invoker.Resolver {
	return invoker.ResolverFunc(
		func(param invoker.Parameter) bool {
			return param.Type == contextType
		},
		constant(ctx),
	)
}

// Clock supplies now to parameters declared as time.Time.
func Clock(now time.Time) invoker.Resolver {
	return invoker.ResolverFunc(
		func(param invoker.Parameter) bool {
			return param.Type == timeType
		},
		constant(now),
	)
}

// UUID supplies identifiers produced by gen to parameters declared as uuid.UUID, a new random one
// for each parameter. A nil gen means uuid.NewRandom.
func UUID(gen func() (uuid.UUID, error)) invoker.Resolver {
	if gen == nil {
		gen = uuid.NewRandom
	}

	return invoker.ResolverFunc(
		func(param invoker.Parameter) bool {
			return param.Type == uuidType
		},
		func(_ invoker.Parameter) (any, error) {
			id, err := gen()
			if err != nil {
				return nil, err
			}
			return id, nil
		},
	)
}

func constant(value any) func(invoker.Parameter) (any, error) {
	return func(_ invoker.Parameter) (any, error) {
		return value, nil
	}
}
