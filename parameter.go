package invoker

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zhulik/invoker/internal/call"
)

// Parameter describes a single formal parameter of a callable.
// For a variadic parameter Type is the type of a single element.
type Parameter struct {
	Name       string       `validate:"required"`
	Type       reflect.Type `validate:"-"`
	TypeName   string
	Variadic   bool
	HasDefault bool
	Default    any `validate:"-"`
}

func (p Parameter) String() string {
	if p.Variadic {
		return fmt.Sprintf("%s ...%s", p.Name, p.TypeName)
	}
	return fmt.Sprintf("%s %s", p.Name, p.TypeName)
}

// Parameters is an ordered list of parameter descriptors. A variadic parameter, if any, is always the last one.
type Parameters []Parameter

// Names returns parameter names in declaration order.
func (ps Parameters) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

func (ps Parameters) String() string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ParamSpec is the registration-time metadata of a parameter which reflection cannot provide: its name and
// its default value.
type ParamSpec struct {
	name       string
	hasDefault bool
	def        any
}

// ParamOption configures a ParamSpec.
type ParamOption func(*ParamSpec)

// Param declares a parameter name.
func Param(name string, opts ...ParamOption) ParamSpec {
	spec := ParamSpec{name: name}
	for _, opt := range opts {
		opt(&spec)
	}
	return spec
}

// Default sets the value used when nothing else can satisfy the parameter.
func Default(value any) ParamOption {
	return func(spec *ParamSpec) {
		spec.hasDefault = true
		spec.def = value
	}
}

// Params is a shortcut for declaring parameters without defaults.
func Params(names ...string) []ParamSpec {
	specs := make([]ParamSpec, len(names))
	for i, name := range names {
		specs[i] = Param(name)
	}
	return specs
}

// Describe builds the parameter list of a function value using the given specs. Without specs parameters
// get positional names: arg0, arg1 and so on.
func Describe(fn any, specs ...ParamSpec) (Parameters, error) {
	typ := reflect.TypeOf(fn)
	if typ == nil || typ.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %T is not a function", ErrInvalidSignature, fn)
	}

	if reflect.ValueOf(fn).IsNil() {
		return nil, fmt.Errorf("%w: %T is nil", ErrInvalidSignature, fn)
	}

	return describe(typ, 0, specs)
}

// describe builds parameters of typ skipping the first skip inputs, used for method expressions where
// the first input is the receiver.
func describe(typ reflect.Type, skip int, specs []ParamSpec) (Parameters, error) {
	count := typ.NumIn() - skip

	if len(specs) == 0 {
		specs = make([]ParamSpec, count)
		for i := range specs {
			specs[i] = Param(fmt.Sprintf("arg%d", i))
		}
	}

	if len(specs) != count {
		return nil, fmt.Errorf("%w: %s takes %d parameters, %d declared", ErrInvalidSignature, typ, count, len(specs))
	}

	params := make(Parameters, count)
	for i, spec := range specs {
		paramType := typ.In(i + skip)
		variadic := typ.IsVariadic() && i == count-1
		if variadic {
			paramType = paramType.Elem()
		}

		param := Parameter{
			Name:       spec.name,
			Type:       paramType,
			TypeName:   typeName(paramType),
			Variadic:   variadic,
			HasDefault: spec.hasDefault,
			Default:    spec.def,
		}

		if err := validateDefault(param); err != nil {
			return nil, err
		}

		params[i] = param
	}

	if err := validateParameters(params); err != nil {
		return nil, err
	}

	return params, nil
}

func validateDefault(param Parameter) error {
	if !param.HasDefault {
		return nil
	}

	if param.Variadic {
		return fmt.Errorf("%w: variadic parameter '%s' cannot have a default value", ErrInvalidSignature, param.Name)
	}

	if param.Default == nil {
		if !call.Nillable(param.Type) {
			return fmt.Errorf("%w: nil is not a valid default for '%s'", ErrInvalidSignature, param)
		}
		return nil
	}

	if !reflect.TypeOf(param.Default).AssignableTo(param.Type) {
		return fmt.Errorf("%w: default %T is not assignable to '%s'", ErrInvalidSignature, param.Default, param)
	}

	return nil
}
