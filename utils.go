package invoker

import (
	"reflect"

	typetostring "github.com/samber/go-type-to-string"
)

func empty[T any]() T {
	var t T
	return t
}

func elem[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// typeName returns a human-readable name of typ.
func typeName(typ reflect.Type) string {
	return typetostring.GetReflectType(typ)
}

var errorType = elem[error]()
