package invoker

import (
	"fmt"
	"reflect"
	"strings"
)

// MethodSeparator separates a class name from a method name in the "Class::method" notation.
const MethodSeparator = "::"

// Callable is a reference to something invocable. It is one of FunctionRef, ClassRef, MethodRef,
// ObjectRef or FuncRef.
type Callable interface {
	fmt.Stringer

	callable()
}

// FunctionRef refers to a function registered by name.
type FunctionRef struct {
	Name string
}

// ClassRef refers to a registered class. Calling it creates an instance and calls its invocation method.
type ClassRef struct {
	Name string
}

// MethodRef refers to a method of Target. Target is either a class reference (a ClassRef, a class name or
// a reflect.Type of a registered class) or an instance.
type MethodRef struct {
	Target any
	Method string
}

// ObjectRef refers to the invocation method of an existing instance.
type ObjectRef struct {
	Instance any
}

// FuncRef refers to a function value, typically a closure. Params declare its parameter names and
// defaults, when omitted parameters are named positionally.
type FuncRef struct {
	Fn     any
	Params []ParamSpec
}

// Func builds a FuncRef.
func Func(fn any, params ...ParamSpec) FuncRef {
	return FuncRef{Fn: fn, Params: params}
}

func (FunctionRef) callable() {}
func (ClassRef) callable()    {}
func (MethodRef) callable()   {}
func (ObjectRef) callable()   {}
func (FuncRef) callable()     {}

func (f FunctionRef) String() string {
	return f.Name
}

func (c ClassRef) String() string {
	return c.Name
}

func (m MethodRef) String() string {
	var target string

	switch t := m.Target.(type) {
	case string:
		target = t
	case ClassRef:
		target = t.Name
	case reflect.Type:
		target = t.String()
	default:
		target = fmt.Sprintf("%T", t)
	}

	return target + MethodSeparator + m.Method
}

func (o ObjectRef) String() string {
	return fmt.Sprintf("%T", o.Instance)
}

func (f FuncRef) String() string {
	return fmt.Sprintf("%T", f.Fn)
}

// Ref infers the kind of callable v refers to. Accepted forms, first match wins:
//   - a Callable is returned as is, a pointer to one is dereferenced;
//   - a string naming a registered function;
//   - a string naming a registered class;
//   - a "Class::method" string;
//   - a two-element []any or [2]any of a target and a method name;
//   - a function value;
//   - any other value is treated as an instance whose invocation method is called.
func (r *Registry) Ref(v any) (Callable, error) {
	switch ref := v.(type) {
	case nil:
		return nil, &InvalidCallableError{Value: v}
	case Callable:
		return callableValue(ref)
	case string:
		return r.stringRef(ref)
	case []any:
		return pairRef(v, ref)
	case [2]any:
		return pairRef(v, ref[:])
	}

	if val := reflect.ValueOf(v); val.Kind() == reflect.Func {
		if val.IsNil() {
			return nil, &InvalidCallableError{Value: v, Reason: "function is nil"}
		}
		return FuncRef{Fn: v}, nil
	}

	return ObjectRef{Instance: v}, nil
}

// callableValue dereferences pointers to callable references, e.g. *FuncRef.
func callableValue(ref Callable) (Callable, error) {
	val := reflect.ValueOf(ref)
	if val.Kind() != reflect.Ptr {
		return ref, nil
	}

	if val.IsNil() {
		return nil, &InvalidCallableError{Value: ref, Reason: "reference is nil"}
	}

	return callableValue(val.Elem().Interface().(Callable))
}

func (r *Registry) stringRef(name string) (Callable, error) {
	if _, ok := r.function(name); ok {
		return FunctionRef{Name: name}, nil
	}

	if _, ok := r.class(name); ok {
		return ClassRef{Name: name}, nil
	}

	if class, method, ok := strings.Cut(name, MethodSeparator); ok {
		return MethodRef{Target: ClassRef{Name: class}, Method: method}, nil
	}

	return nil, &InvalidCallableError{Value: name}
}

func pairRef(v any, pair []any) (Callable, error) {
	if len(pair) != 2 {
		return nil, &InvalidCallableError{Value: v, Reason: "expected a pair of a target and a method name"}
	}

	method, ok := pair[1].(string)
	if !ok || pair[0] == nil {
		return nil, &InvalidCallableError{Value: v, Reason: "expected a pair of a target and a method name"}
	}

	return MethodRef{Target: pair[0], Method: method}, nil
}
