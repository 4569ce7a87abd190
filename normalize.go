package invoker

import (
	"fmt"
	"reflect"
)

// target is a normalized callable. The handle is bound lazily, so that instances are only constructed
// after the target's own arguments have been resolved.
type target struct {
	params Parameters
	bind   func() (reflect.Value, error)
}

func constant(fn reflect.Value) func() (reflect.Value, error) {
	return func() (reflect.Value, error) {
		return fn, nil
	}
}

// normalize turns ref into a parameter list and a handle binder. args and resolver are used to construct
// instances when ref refers to a class.
func (i *Invoker) normalize(ref Callable, args map[string]any, resolver Resolver) (*target, error) {
	switch ref := ref.(type) {
	case FunctionRef:
		f, ok := i.registry.function(ref.Name)
		if !ok {
			return nil, &InvalidCallableError{Value: ref.Name, Reason: "function is not registered"}
		}

		return &target{params: f.params, bind: constant(f.fn)}, nil

	case ClassRef:
		c, ok := i.registry.class(ref.Name)
		if !ok {
			return nil, &InvalidCallableError{Value: ref.Name, Reason: "class is not registered"}
		}

		return i.classMethod(ref, c, i.config.InvocationMethod, args, resolver)

	case MethodRef:
		if c, ok, err := i.classReference(ref.Target); err != nil {
			return nil, &InvalidCallableError{Value: ref, Reason: err.Error()}
		} else if ok {
			return i.classMethod(ref, c, ref.Method, args, resolver)
		}

		return i.instanceMethod(ref, ref.Target, ref.Method)

	case ObjectRef:
		return i.instanceMethod(ref, ref.Instance, i.config.InvocationMethod)

	case FuncRef:
		params, err := Describe(ref.Fn, ref.Params...)
		if err != nil {
			return nil, &InvalidCallableError{Value: ref, Reason: err.Error()}
		}

		return &target{params: params, bind: constant(reflect.ValueOf(ref.Fn))}, nil
	}

	return nil, &InvalidCallableError{Value: ref, Reason: "unsupported callable reference"}
}

// classReference reports whether t refers to a class rather than to an instance.
func (i *Invoker) classReference(t any) (*class, bool, error) {
	var (
		c  *class
		ok bool
	)

	switch t := t.(type) {
	case string:
		c, ok = i.registry.class(t)
	case ClassRef:
		c, ok = i.registry.class(t.Name)
	case reflect.Type:
		c, ok = i.registry.classOf(t)
	default:
		return nil, false, nil
	}

	if !ok {
		return nil, false, fmt.Errorf("class %v is not registered", t)
	}

	return c, true, nil
}

// classMethod normalizes a method of a class reference. Static methods never construct the class,
// instance methods construct it when the handle is bound.
func (i *Invoker) classMethod(ref Callable, c *class, method string, args map[string]any, resolver Resolver) (*target, error) {
	if f, ok := c.static(method); ok {
		return &target{params: f.params, bind: constant(f.fn)}, nil
	}

	params, err := c.method(method)
	if err != nil {
		return nil, &InvalidCallableError{Value: ref, Reason: err.Error()}
	}

	bind := func() (reflect.Value, error) {
		instance, err := i.instantiate(c, args, resolver)
		if err != nil {
			return reflect.Value{}, err
		}

		return instance.MethodByName(method), nil
	}

	return &target{params: params, bind: bind}, nil
}

// instanceMethod normalizes a method of an existing instance.
func (i *Invoker) instanceMethod(ref Callable, instance any, method string) (*target, error) {
	val, ok := pointerTo(instance)
	if !ok {
		return nil, &InvalidCallableError{Value: ref, Reason: "instance is nil"}
	}

	var (
		params Parameters
		err    error
	)

	if c, registered := i.registry.classOf(val.Type()); registered {
		if f, ok := c.static(method); ok {
			return &target{params: f.params, bind: constant(f.fn)}, nil
		}

		params, err = c.method(method)
	} else {
		params, err = describeMethod(val.Type(), method)
	}

	if err != nil {
		return nil, &InvalidCallableError{Value: ref, Reason: err.Error()}
	}

	return &target{params: params, bind: constant(val.MethodByName(method))}, nil
}

// pointerTo returns a pointer to instance, copying it if it is not a pointer already, so that methods
// with both value and pointer receivers are available.
func pointerTo(instance any) (reflect.Value, bool) {
	if instance == nil {
		return reflect.Value{}, false
	}

	val := reflect.ValueOf(instance)
	if val.Kind() == reflect.Ptr {
		return val, !val.IsNil()
	}

	ptr := reflect.New(val.Type())
	ptr.Elem().Set(val)

	return ptr, true
}
