package invoker

import (
	"context"
	"fmt"
	"go/token"

	"github.com/go-playground/validator/v10"
)

const defaultInvocationMethod = "Invoke"

var (
	configValidator = newValidator()
)

// Config is the configuration of an Invoker.
type Config struct {
	// InvocationMethod is the name of the method called when a class or an object is given as a callable.
	InvocationMethod string `validate:"required,exported"`
}

func (c *Config) Validate(_ context.Context) error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// signature wraps a parameter list so that its invariants can be checked as a struct.
type signature struct {
	Params Parameters `validate:"unique=Name,dive"`
}

func validateParameters(params Parameters) error {
	if err := configValidator.Struct(signature{Params: params}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("exported", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return token.IsExported(fl.Field().String())
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		params := sl.Current().Interface().(signature).Params
		for i, param := range params {
			if param.Variadic && i != len(params)-1 {
				sl.ReportError(params, "Params", "Params", "variadiclast", param.Name)
			}
		}
	}, signature{})

	return v
}
