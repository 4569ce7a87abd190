package invoker

import (
	"context"
	"fmt"

	"github.com/zhulik/invoker/internal/call"
)

// Caller is implemented by *Invoker.
type Caller interface {
	Call(ctx context.Context, callable any, args map[string]any, resolver Resolver) (any, error)
}

// DefaultRegistry is the registry used by the package-level functions.
var DefaultRegistry = NewRegistry()

var defaultInvoker = New(DefaultRegistry)

// DefaultInvoker returns the Invoker backed by DefaultRegistry.
func DefaultInvoker() *Invoker {
	return defaultInvoker
}

// RegisterFunction registers fn in DefaultRegistry.
func RegisterFunction(name string, fn any, params ...ParamSpec) error {
	return DefaultRegistry.Function(name, fn, params...)
}

// RegisterClass registers T in DefaultRegistry.
func RegisterClass[T any](name string, opts ...ClassOption) error {
	return Class[T](DefaultRegistry, name, opts...)
}

// Call invokes callable using the default Invoker. See Invoker.Call.
func Call(ctx context.Context, callable any, args map[string]any, resolver Resolver) (any, error) {
	return defaultInvoker.Call(ctx, callable, args, resolver)
}

// MustCall is like Call but panics if an error occurs.
func MustCall(ctx context.Context, callable any, args map[string]any, resolver Resolver) any {
	return must(Call(ctx, callable, args, resolver))
}

// CallAs invokes callable with the given Caller and casts its result to T.
func CallAs[T any](ctx context.Context, caller Caller, callable any, args map[string]any, resolver Resolver) (T, error) {
	result, err := caller.Call(ctx, callable, args, resolver)
	if err != nil {
		return empty[T](), err
	}

	if result == nil && call.Nillable(elem[T]()) {
		return empty[T](), nil
	}

	casted, ok := result.(T)
	if !ok {
		return empty[T](), fmt.Errorf("%w: %T is not %s", ErrInvalidResult, result, elem[T]())
	}

	return casted, nil
}

// MustCallAs is like CallAs but panics if an error occurs.
func MustCallAs[T any](ctx context.Context, caller Caller, callable any, args map[string]any, resolver Resolver) T {
	return must(CallAs[T](ctx, caller, callable, args, resolver))
}

func must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}
