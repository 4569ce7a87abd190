package invoker

import (
	"fmt"
	"reflect"
)

// Resolve produces the positional arguments for params. For every parameter, in declaration order:
//   - an explicit argument with the same name is used as is, a variadic argument must be a slice whose
//     elements become the trailing arguments;
//   - a variadic parameter with no explicit argument yields no trailing arguments, resolvers and
//     defaults are never consulted for it;
//   - otherwise a value from resolver, if it supports the parameter;
//   - otherwise the default value.
//
// Any other parameter fails the whole resolution with an *UnresolvedParameterError, no partial
// result is returned. resolver may be nil.
func Resolve(params Parameters, args map[string]any, resolver Resolver) ([]any, error) {
	canonical := make([]any, 0, len(params))

	for _, param := range params {
		if value, ok := args[param.Name]; ok {
			if param.Variadic {
				values, err := spread(param, value)
				if err != nil {
					return nil, err
				}

				canonical = append(canonical, values...)
				break
			}

			canonical = append(canonical, value)
			continue
		}

		if param.Variadic {
			break
		}

		if resolver != nil && resolver.Supports(param) {
			value, err := resolver.Resolve(param)
			if err != nil {
				return nil, fmt.Errorf("resolving parameter '%s': %w", param, err)
			}

			canonical = append(canonical, value)
			continue
		}

		if param.HasDefault {
			canonical = append(canonical, param.Default)
			continue
		}

		return nil, unresolved(param)
	}

	return canonical, nil
}

func spread(param Parameter, value any) ([]any, error) {
	if value == nil {
		return nil, nil
	}

	if values, ok := value.([]any); ok {
		return values, nil
	}

	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: variadic parameter '%s' expects a sequence, %T given", ErrInvalidArgument, param, value)
	}

	values := make([]any, val.Len())
	for i := range values {
		values[i] = val.Index(i).Interface()
	}

	return values, nil
}
