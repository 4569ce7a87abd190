package invoker

import (
	"fmt"
	"reflect"
)

// class is a Go type registered under a name. It may have a constructor, static functions and
// instance methods with declared parameters.
type class struct {
	name string
	typ  reflect.Type

	ctor        *function
	privateCtor bool

	methods map[string]Parameters
	statics map[string]*function
}

// ClassOption configures a class during registration.
type ClassOption func(*class) error

// Class registers T as a class named name. T may be given either as a struct type or as a pointer to it,
// instances are always handled as pointers so that both value and pointer receiver methods are callable.
// Without a Constructor option instances are created with new(T).
func Class[T any](r *Registry, name string, opts ...ClassOption) error {
	typ := elem[T]()
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	if typ.Kind() == reflect.Interface {
		return fmt.Errorf("%w: class '%s' must be a concrete type, %s given", ErrInvalidSignature, name, typ)
	}

	c := &class{
		name:    name,
		typ:     typ,
		methods: make(map[string]Parameters),
		statics: make(map[string]*function),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return fmt.Errorf("class '%s': %w", name, err)
		}
	}

	return r.addClass(c)
}

// Constructor sets the function used to create instances of the class. It must return either the class type
// or a pointer to it, optionally followed by an error.
func Constructor(fn any, specs ...ParamSpec) ClassOption {
	return func(c *class) error {
		f, err := newFunction("constructor", fn, specs)
		if err != nil {
			return err
		}

		if err := c.validateConstructor(f.fn.Type()); err != nil {
			return err
		}

		c.ctor = f
		c.privateCtor = false

		return nil
	}
}

// PrivateConstructor declares a constructor that is not meant to be called from outside. Such a class
// cannot be instantiated by the invoker: static functions remain callable, instance methods only on
// existing instances.
func PrivateConstructor(fn any, specs ...ParamSpec) ClassOption {
	return func(c *class) error {
		if err := Constructor(fn, specs...)(c); err != nil {
			return err
		}

		c.privateCtor = true

		return nil
	}
}

// Method declares parameters of an instance method. Methods that are not declared are still callable,
// their parameters are named positionally.
func Method(name string, specs ...ParamSpec) ClassOption {
	return func(c *class) error {
		if _, ok := c.statics[name]; ok {
			return fmt.Errorf("%w: '%s' is already declared static", ErrInvalidSignature, name)
		}

		m, ok := reflect.PointerTo(c.typ).MethodByName(name)
		if !ok {
			return fmt.Errorf("%w: %s has no method '%s'", ErrInvalidSignature, c.typ, name)
		}

		params, err := describe(m.Type, 1, specs)
		if err != nil {
			return fmt.Errorf("method '%s': %w", name, err)
		}

		c.methods[name] = params

		return nil
	}
}

// Static attaches fn to the class as a static method. Calling it never creates an instance.
func Static(name string, fn any, specs ...ParamSpec) ClassOption {
	return func(c *class) error {
		if _, ok := c.methods[name]; ok {
			return fmt.Errorf("%w: '%s' is already declared as an instance method", ErrInvalidSignature, name)
		}

		f, err := newFunction(name, fn, specs)
		if err != nil {
			return err
		}

		c.statics[name] = f

		return nil
	}
}

func (c *class) String() string {
	return c.name
}

func (c *class) static(name string) (*function, bool) {
	f, ok := c.statics[name]
	return f, ok
}

// method returns declared parameters of the instance method name.
func (c *class) method(name string) (Parameters, error) {
	if params, ok := c.methods[name]; ok {
		return params, nil
	}

	return describeMethod(reflect.PointerTo(c.typ), name)
}

func (c *class) validateConstructor(typ reflect.Type) error {
	out := typ.NumOut()
	if out == 0 || out > 2 || (out == 2 && typ.Out(1) != errorType) {
		return fmt.Errorf("%w: constructor must return %s, optionally followed by an error, %s given", ErrInvalidSignature, c.typ, typ)
	}

	if ret := typ.Out(0); ret != c.typ && ret != reflect.PointerTo(c.typ) {
		return fmt.Errorf("%w: constructor must return %s or a pointer to it, %s given", ErrInvalidSignature, c.typ, ret)
	}

	return nil
}

// describeMethod describes the method name of typ with positional parameter names.
func describeMethod(typ reflect.Type, name string) (Parameters, error) {
	m, ok := typ.MethodByName(name)
	if !ok {
		return nil, fmt.Errorf("%s has no method '%s'", typ, name)
	}

	return describe(m.Type, 1, nil)
}
