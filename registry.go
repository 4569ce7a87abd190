package invoker

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// function is a registered function value along with its parameters.
type function struct {
	name   string
	fn     reflect.Value
	params Parameters
}

func newFunction(name string, fn any, specs []ParamSpec) (*function, error) {
	params, err := Describe(fn, specs...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &function{name: name, fn: reflect.ValueOf(fn), params: params}, nil
}

// Registry holds functions and classes that can be referred to by name. It replaces global
// function and class lookup: only what is registered can be called by name.
// It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	functions map[string]*function
	classes   map[string]*class
	types     map[reflect.Type]*class
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		functions: make(map[string]*function),
		classes:   make(map[string]*class),
		types:     make(map[reflect.Type]*class),
	}
}

// Function registers fn under name. specs declare parameter names and defaults in declaration order,
// when omitted parameters are named positionally.
func (r *Registry) Function(name string, fn any, specs ...ParamSpec) error {
	f, err := newFunction(name, fn, specs)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.functions[name]; ok {
		return fmt.Errorf("%w: function '%s'", ErrAlreadyRegistered, name)
	}

	r.functions[name] = f

	return nil
}

// Functions returns names of registered functions, sorted.
func (r *Registry) Functions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Classes returns names of registered classes, sorted.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

func (r *Registry) addClass(c *class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.classes[c.name]; ok {
		return fmt.Errorf("%w: class '%s'", ErrAlreadyRegistered, c.name)
	}

	if existing, ok := r.types[c.typ]; ok {
		return fmt.Errorf("%w: type %s as class '%s'", ErrAlreadyRegistered, c.typ, existing.name)
	}

	r.classes[c.name] = c
	r.types[c.typ] = c

	return nil
}

func (r *Registry) function(name string) (*function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.functions[name]
	return f, ok
}

func (r *Registry) class(name string) (*class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classes[name]
	return c, ok
}

// classOf returns the class typ or the type typ points to is registered as.
func (r *Registry) classOf(typ reflect.Type) (*class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.types[typ]; ok {
		return c, true
	}

	if typ.Kind() == reflect.Ptr {
		c, ok := r.types[typ.Elem()]
		return c, ok
	}

	return nil, false
}
