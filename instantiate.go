package invoker

import (
	"fmt"
	"reflect"

	"github.com/zhulik/invoker/internal/call"
)

// instantiate creates an instance of c, resolving its constructor parameters from args and resolver.
// The returned value is always a pointer.
func (i *Invoker) instantiate(c *class, args map[string]any, resolver Resolver) (reflect.Value, error) {
	if c.ctor == nil {
		i.logger.Debug("Creating an instance", "class", c.name)
		return reflect.New(c.typ), nil
	}

	if c.privateCtor {
		return reflect.Value{}, &NonInstantiatableError{Class: c.name}
	}

	values, err := Resolve(c.ctor.params, args, resolver)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("constructing '%s': %w", c.name, err)
	}

	i.logger.Debug("Calling constructor", "class", c.name, "arguments", len(values))

	instance, err := call.Func(c.ctor.fn, values)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("constructing '%s': %w", c.name, err)
	}

	val, ok := pointerTo(instance)
	if !ok {
		return reflect.Value{}, fmt.Errorf("constructing '%s': constructor returned nil", c.name)
	}

	return val, nil
}
