package invoker

import (
	"errors"
	"fmt"

	"github.com/zhulik/invoker/internal/call"
)

// Error variables used throughout the package
var (
	// ErrInvalidCallable is returned when a callable reference matches none of the recognized shapes.
	// This typically happens when a string names neither a registered function, nor a registered class,
	// nor uses the "Class::method" notation.
	ErrInvalidCallable = errors.New("invalid callable")

	// ErrUnresolvedParameter is returned when a parameter cannot be satisfied by an explicit argument,
	// a resolver or a default value.
	ErrUnresolvedParameter = errors.New("unresolved parameter")

	// ErrNonInstantiatable is returned when a class that needs to be constructed has a non-public constructor.
	ErrNonInstantiatable = errors.New("class cannot be instantiated")

	// ErrInvalidSignature is returned when registered parameter metadata does not match a function.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidArgument is returned when a resolved value cannot be passed to the target.
	ErrInvalidArgument = call.ErrInvalidArgument

	// ErrInvalidResult is returned when a call result cannot be cast to the expected type.
	ErrInvalidResult = errors.New("invalid result")

	// ErrAlreadyRegistered is returned when a function or a class is registered twice under the same name.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrInvalidConfig is returned when the invoker configuration is invalid.
	ErrInvalidConfig = errors.New("invalid config")
)

// InvalidCallableError identifies the offending callable reference.
type InvalidCallableError struct {
	Value  any
	Reason string
}

func (e *InvalidCallableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: '%v' given", ErrInvalidCallable, e.Value)
	}
	return fmt.Sprintf("%s: '%v' given, %s", ErrInvalidCallable, e.Value, e.Reason)
}

func (e *InvalidCallableError) Unwrap() error {
	return ErrInvalidCallable
}

// UnresolvedParameterError carries the name and the declared type of the parameter that could not be resolved.
type UnresolvedParameterError struct {
	Name string
	Type string
}

func (e *UnresolvedParameterError) Error() string {
	return fmt.Sprintf("cannot resolve parameter '%s %s'", e.Type, e.Name)
}

func (e *UnresolvedParameterError) Unwrap() error {
	return ErrUnresolvedParameter
}

// NonInstantiatableError identifies the class whose constructor is not public.
type NonInstantiatableError struct {
	Class string
}

func (e *NonInstantiatableError) Error() string {
	return fmt.Sprintf("constructor of a class '%s' is not public, therefore class cannot be instantiated", e.Class)
}

func (e *NonInstantiatableError) Unwrap() error {
	return ErrNonInstantiatable
}

func unresolved(param Parameter) *UnresolvedParameterError {
	return &UnresolvedParameterError{Name: param.Name, Type: param.TypeName}
}
