package invoker_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zhulik/invoker"
	"github.com/zhulik/invoker/pkg/resolvers"
)

var (
	errTest = errors.New("test error")

	testDate = time.Date(1945, time.July, 22, 0, 0, 0, 0, time.UTC)
)

// Object is a plain value passed around by the fixtures.
type Object struct {
	Foo string
	Bar string
}

// Check receives parameters in a fixed order, fixtures call it with their own parameters
// which are declared in different orders.
type Check func(boolean bool, float float64, integer int, str string, array []string, object *Object,
	datetime time.Time, special int, def string, variadic ...*Object)

func someFunction(check Check, boolean bool, float float64, integer int, str string, array []string,
	datetime time.Time, object *Object, special int, def string, variadic ...*Object) {
	check(boolean, float, integer, str, array, object, datetime, special, def, variadic...)
}

var someFunctionParams = []invoker.ParamSpec{
	invoker.Param("assertion"),
	invoker.Param("boolean"),
	invoker.Param("float"),
	invoker.Param("integer"),
	invoker.Param("string"),
	invoker.Param("array"),
	invoker.Param("datetime"),
	invoker.Param("object"),
	invoker.Param("__special"),
	invoker.Param("default", invoker.Default("")),
	invoker.Param("variadic"),
}

// ClassWithInvokeMethod requires a timestamp to be constructed.
type ClassWithInvokeMethod struct {
	Timestamp time.Time
}

func NewClassWithInvokeMethod(timestamp time.Time) *ClassWithInvokeMethod {
	return &ClassWithInvokeMethod{Timestamp: timestamp}
}

func (c *ClassWithInvokeMethod) Invoke(check Check, special int, boolean bool, datetime time.Time, float float64,
	integer int, str string, array []string, object *Object, def string, variadic ...*Object) {
	check(boolean, float, integer, str, array, object, datetime, special, def, variadic...)
}

var invokeMethodParams = []invoker.ParamSpec{
	invoker.Param("assertion"),
	invoker.Param("__special"),
	invoker.Param("boolean"),
	invoker.Param("datetime"),
	invoker.Param("float"),
	invoker.Param("integer"),
	invoker.Param("string"),
	invoker.Param("array"),
	invoker.Param("object"),
	invoker.Param("default", invoker.Default("")),
	invoker.Param("variadic"),
}

// ClassWithPublicMethod has a constructor with a default.
type ClassWithPublicMethod struct {
	Foo string
}

func NewClassWithPublicMethod(foo string) ClassWithPublicMethod {
	return ClassWithPublicMethod{Foo: foo}
}

func (c ClassWithPublicMethod) Bar(check Check, boolean bool, special int, float float64, integer int,
	datetime time.Time, str string, array []string, object *Object, def string, variadic ...*Object) {
	check(boolean, float, integer, str, array, object, datetime, special, def, variadic...)
}

var barMethodParams = []invoker.ParamSpec{
	invoker.Param("assertion"),
	invoker.Param("boolean"),
	invoker.Param("__special"),
	invoker.Param("float"),
	invoker.Param("integer"),
	invoker.Param("datetime"),
	invoker.Param("string"),
	invoker.Param("array"),
	invoker.Param("object"),
	invoker.Param("default", invoker.Default("")),
	invoker.Param("variadic"),
}

// ClassWithStaticMethod cannot be constructed, its only method is static.
type ClassWithStaticMethod struct{}

func newClassWithStaticMethod() *ClassWithStaticMethod {
	return &ClassWithStaticMethod{}
}

func (c *ClassWithStaticMethod) Name() string {
	return "static"
}

func staticFoo(check Check, datetime time.Time, boolean bool, float float64, integer int, str string, special int,
	array []string, object *Object, def string, variadic ...*Object) {
	check(boolean, float, integer, str, array, object, datetime, special, def, variadic...)
}

var staticFooParams = []invoker.ParamSpec{
	invoker.Param("assertion"),
	invoker.Param("datetime"),
	invoker.Param("boolean"),
	invoker.Param("float"),
	invoker.Param("integer"),
	invoker.Param("string"),
	invoker.Param("__special"),
	invoker.Param("array"),
	invoker.Param("object"),
	invoker.Param("default", invoker.Default("")),
	invoker.Param("variadic"),
}

// newRegistry returns a registry with all the fixtures registered.
func newRegistry(t *testing.T) *invoker.Registry {
	t.Helper()

	r := invoker.NewRegistry()

	require.NoError(t, r.Function("some_function", someFunction, someFunctionParams...))

	require.NoError(t, invoker.Class[ClassWithInvokeMethod](r, "ClassWithInvokeMethod",
		invoker.Constructor(NewClassWithInvokeMethod, invoker.Param("timestamp")),
		invoker.Method("Invoke", invokeMethodParams...),
	))

	require.NoError(t, invoker.Class[ClassWithPublicMethod](r, "ClassWithPublicMethod",
		invoker.Constructor(NewClassWithPublicMethod, invoker.Param("foo", invoker.Default("bar"))),
		invoker.Method("Bar", barMethodParams...),
	))

	require.NoError(t, invoker.Class[ClassWithStaticMethod](r, "ClassWithStaticMethod",
		invoker.PrivateConstructor(newClassWithStaticMethod),
		invoker.Static("Foo", staticFoo, staticFooParams...),
	))

	return r
}

// newResolvers mirrors a typical setup: a fixed clock and a resolver for "special" parameters.
func newResolvers() *invoker.Resolvers {
	return invoker.Chain(
		resolvers.Clock(testDate),
		resolvers.Prefix("__", func(_ invoker.Parameter) (any, error) {
			return math.MaxInt, nil
		}),
	)
}

// newArguments returns explicit arguments for the fixtures along with a flag set by the assertion.
func newArguments(t *testing.T) (map[string]any, *bool) {
	t.Helper()

	called := false

	check := Check(func(boolean bool, float float64, integer int, str string, array []string, object *Object,
		datetime time.Time, special int, def string, variadic ...*Object) {
		called = true

		assert.False(t, boolean)
		assert.InDelta(t, 3.14, float, 0.0001)
		assert.Equal(t, 1024, integer)
		assert.Equal(t, "foo", str)
		assert.Equal(t, []string{"bar"}, array)
		assert.Equal(t, "b", object.Foo)
		assert.Equal(t, "1945-07-22", datetime.Format(time.DateOnly))
		assert.Equal(t, math.MaxInt, special)
		assert.Empty(t, def)

		if assert.Len(t, variadic, 2) {
			assert.Equal(t, "bar", variadic[0].Foo)
			assert.Equal(t, "foo", variadic[1].Bar)
		}
	})

	return map[string]any{
		"variadic":  []*Object{{Foo: "bar"}, {Bar: "foo"}},
		"object":    &Object{Foo: "b"},
		"array":     []string{"bar"},
		"string":    "foo",
		"integer":   1024,
		"float":     3.14,
		"boolean":   false,
		"assertion": check,
	}, &called
}

// MockResolver is a mock implementation of the Resolver interface
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Supports(param invoker.Parameter) bool {
	args := m.Called(param)
	return args.Bool(0)
}

func (m *MockResolver) Resolve(param invoker.Parameter) (any, error) {
	args := m.Called(param)
	return args.Get(0), args.Error(1)
}

func named(name string) any {
	return mock.MatchedBy(func(param invoker.Parameter) bool {
		return param.Name == name
	})
}
